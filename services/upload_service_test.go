package services

import (
	"context"
	"testing"
)

func TestUploadImageRejectsUnsupportedType(t *testing.T) {
	svc := NewUploadService(nil)

	_, err := svc.UploadImage(context.Background(), 1, "notes.pdf", "application/pdf", []byte("%PDF"))
	if err != ErrUnsupportedImageType {
		t.Errorf("expected ErrUnsupportedImageType, got %v", err)
	}

	_, err = svc.UploadImage(context.Background(), 1, "file", "", []byte("data"))
	if err != ErrUnsupportedImageType {
		t.Errorf("expected ErrUnsupportedImageType for empty content type, got %v", err)
	}
}

func TestUploadImageRejectsOversized(t *testing.T) {
	svc := NewUploadService(nil)

	data := make([]byte, MaxImageSize+1)
	_, err := svc.UploadImage(context.Background(), 1, "big.png", "image/png", data)
	if err != ErrImageTooLarge {
		t.Errorf("expected ErrImageTooLarge, got %v", err)
	}
}
