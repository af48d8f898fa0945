package model

import (
	"encoding/json"
	"strings"
	"testing"
)

func TestIsValidPostCategory(t *testing.T) {
	for _, category := range []string{"jobs", "advice", "memories", "events", "general"} {
		if !IsValidPostCategory(category) {
			t.Errorf("expected %q to be a valid category", category)
		}
	}
	for _, category := range []string{"", "all", "JOBS", "random"} {
		if IsValidPostCategory(category) {
			t.Errorf("expected %q to be invalid", category)
		}
	}
}

func TestIsValidAttendanceStatus(t *testing.T) {
	for _, status := range []string{"going", "maybe", "not_going"} {
		if !IsValidAttendanceStatus(status) {
			t.Errorf("expected %q to be a valid status", status)
		}
	}
	for _, status := range []string{"", "GOING", "notgoing", "interested"} {
		if IsValidAttendanceStatus(status) {
			t.Errorf("expected %q to be invalid", status)
		}
	}
}

func TestToPublicProfileStripsPrivateFields(t *testing.T) {
	user := User{
		Email:        "private@example.com",
		PasswordHash: "secret-hash",
		FirstName:    "Asha",
		LastName:     "Verma",
		Role:         RoleStudent,
		Department:   "Computer Science",
		Batch:        "2022-2026",
	}
	user.ID = 9

	profile := user.ToPublicProfile()
	if profile.ID != 9 || profile.FirstName != "Asha" || profile.Role != RoleStudent {
		t.Errorf("unexpected profile: %+v", profile)
	}

	// The profile payload must not leak email or credentials
	data, err := json.Marshal(profile)
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}
	payload := string(data)
	if strings.Contains(payload, "private@example.com") || strings.Contains(payload, "secret-hash") {
		t.Errorf("public profile leaked private data: %s", payload)
	}
}

func TestUserJSONHidesCredentials(t *testing.T) {
	user := User{
		Email:        "user@example.com",
		PasswordHash: "bcrypt-hash",
		TokenVersion: 5,
	}

	data, err := json.Marshal(user)
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}
	payload := string(data)
	if strings.Contains(payload, "bcrypt-hash") {
		t.Error("password hash leaked into JSON")
	}
	if strings.Contains(payload, "token_version") {
		t.Error("token version leaked into JSON")
	}
}

func TestNotificationToResponse(t *testing.T) {
	n := UserNotification{
		UserID:   3,
		Type:     NotificationTypeInfo,
		Category: NotificationCategoryPostLike,
		Title:    "New like on your post",
		Message:  "Asha Verma liked your post",
		Read:     false,
		Metadata: []byte(`{"post_id":12}`),
	}
	n.ID = 77

	res := n.ToResponse()
	if res.ID != 77 || res.Category != NotificationCategoryPostLike || res.Read {
		t.Errorf("unexpected response: %+v", res)
	}
	if string(res.Metadata) != `{"post_id":12}` {
		t.Errorf("metadata not carried over: %s", res.Metadata)
	}
}
