package response

import "testing"

func TestCalculatePagination(t *testing.T) {
	tests := []struct {
		name       string
		page       int
		limit      int
		total      int64
		wantPage   int
		wantLimit  int
		wantPages  int
	}{
		{"first page", 1, 20, 100, 1, 20, 5},
		{"partial last page", 1, 20, 101, 1, 20, 6},
		{"zero total", 1, 20, 0, 1, 20, 0},
		{"page below one is clamped", 0, 20, 40, 1, 20, 2},
		{"negative page is clamped", -5, 20, 40, 1, 20, 2},
		{"limit below one gets default", 2, 0, 40, 2, 20, 2},
		{"limit above cap is clamped", 1, 500, 300, 1, 100, 3},
		{"total smaller than limit", 1, 20, 7, 1, 20, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			meta := CalculatePagination(tt.page, tt.limit, tt.total)
			if meta.CurrentPage != tt.wantPage {
				t.Errorf("CurrentPage = %d, want %d", meta.CurrentPage, tt.wantPage)
			}
			if meta.PerPage != tt.wantLimit {
				t.Errorf("PerPage = %d, want %d", meta.PerPage, tt.wantLimit)
			}
			if meta.TotalPages != tt.wantPages {
				t.Errorf("TotalPages = %d, want %d", meta.TotalPages, tt.wantPages)
			}
			if meta.Total != tt.total {
				t.Errorf("Total = %d, want %d", meta.Total, tt.total)
			}
		})
	}
}
