package pkg

import (
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/acmlab/labsite/internal/domain"
)

func ginContextForURL(t *testing.T, url string) *gin.Context {
	t.Helper()
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest("GET", url, nil)
	return c
}

func TestParsePageRequest(t *testing.T) {
	tests := []struct {
		name        string
		url         string
		wantPage    int
		wantPerPage int
		wantPaged   bool
	}{
		{name: "no params is unpaged", url: "/x", wantPage: 0, wantPerPage: defaultPerPage, wantPaged: false},
		{name: "page only", url: "/x?page=2", wantPage: 2, wantPerPage: defaultPerPage, wantPaged: true},
		{name: "page and per_page", url: "/x?page=1&per_page=50", wantPage: 1, wantPerPage: 50, wantPaged: true},
		{name: "per_page capped", url: "/x?page=1&per_page=5000", wantPage: 1, wantPerPage: maxPerPage, wantPaged: true},
		{name: "negative page treated as unpaged", url: "/x?page=-3", wantPage: 0, wantPerPage: defaultPerPage, wantPaged: false},
		{name: "garbage per_page falls back", url: "/x?page=1&per_page=abc", wantPage: 1, wantPerPage: defaultPerPage, wantPaged: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := ParsePageRequest(ginContextForURL(t, tt.url))
			if req.Page != tt.wantPage || req.PerPage != tt.wantPerPage {
				t.Errorf("got page=%d per_page=%d; want page=%d per_page=%d",
					req.Page, req.PerPage, tt.wantPage, tt.wantPerPage)
			}
			if req.Paged() != tt.wantPaged {
				t.Errorf("Paged() = %v; want %v", req.Paged(), tt.wantPaged)
			}
		})
	}
}

func TestParsePageRequestFilters(t *testing.T) {
	req := ParsePageRequest(ginContextForURL(t, "/x?page=1&per_page=10&status=active&grade=2024&empty="))

	if len(req.Filter) != 2 {
		t.Fatalf("filter = %v; want 2 entries", req.Filter)
	}
	if req.Filter["status"] != "active" || req.Filter["grade"] != "2024" {
		t.Errorf("filter = %v", req.Filter)
	}
	if _, ok := req.Filter["page"]; ok {
		t.Error("reserved param leaked into filter")
	}
}

func TestNewPageResult(t *testing.T) {
	tests := []struct {
		name           string
		items          []string
		total          int64
		req            domain.PageRequest
		wantTotalPages int
		wantItems      int
	}{
		{name: "exact division", items: []string{"a", "b"}, total: 4, req: domain.PageRequest{Page: 1, PerPage: 2}, wantTotalPages: 2, wantItems: 2},
		{name: "remainder rounds up", items: []string{"a"}, total: 5, req: domain.PageRequest{Page: 3, PerPage: 2}, wantTotalPages: 3, wantItems: 1},
		{name: "empty result", items: nil, total: 0, req: domain.PageRequest{Page: 1, PerPage: 20}, wantTotalPages: 0, wantItems: 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NewPageResult(tt.items, tt.total, tt.req)
			if got.TotalPages != tt.wantTotalPages {
				t.Errorf("TotalPages = %d; want %d", got.TotalPages, tt.wantTotalPages)
			}
			if got.Items == nil {
				t.Error("Items is nil; want empty slice")
			}
			if len(got.Items) != tt.wantItems {
				t.Errorf("len(Items) = %d; want %d", len(got.Items), tt.wantItems)
			}
		})
	}
}
