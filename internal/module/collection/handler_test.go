package collection

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/acmlab/labsite/internal/domain"
)

type fakeVerifier struct{}

func (fakeVerifier) Verify(token string) (uint, string, error) {
	switch token {
	case "admin-token":
		return 1, domain.RoleAdmin, nil
	case "user-token":
		return 2, "user", nil
	default:
		return 0, "", domain.ErrUnauthorized
	}
}

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	db := newTestDB(t)

	resources := []Resource{
		NewResource[domain.TeamMember](teamDef(), db, nil, nil),
		NewResource[domain.Advisor](advisorDef(), db, nil, nil),
	}
	m := NewModule(resources, fakeVerifier{})

	r := gin.New()
	m.RegisterRoutes(r.Group("/api"))
	return r
}

func doJSON(t *testing.T, r *gin.Engine, method, path, body, token string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode %q: %v", w.Body.String(), err)
	}
	return body
}

func TestMutationsRequireAdmin(t *testing.T) {
	r := newTestRouter(t)

	cases := []struct {
		method, path, token string
	}{
		{http.MethodPost, "/api/team-members", ""},
		{http.MethodPost, "/api/team-members", "bogus"},
		{http.MethodPost, "/api/team-members", "user-token"},
		{http.MethodPut, "/api/team-members/1", ""},
		{http.MethodDelete, "/api/team-members/1", ""},
		{http.MethodPost, "/api/team-members/reorder", ""},
	}
	for _, tc := range cases {
		w := doJSON(t, r, tc.method, tc.path, `{"name":"X"}`, tc.token)
		if w.Code != http.StatusUnauthorized {
			t.Errorf("%s %s token=%q: status = %d, want 401", tc.method, tc.path, tc.token, w.Code)
		}
		body := decodeBody(t, w)
		if body["error"] == nil {
			t.Errorf("%s %s: missing error envelope: %v", tc.method, tc.path, body)
		}
	}
}

func TestReadsAreOpen(t *testing.T) {
	r := newTestRouter(t)

	w := doJSON(t, r, http.MethodGet, "/api/team-members", "", "")
	if w.Code != http.StatusOK {
		t.Fatalf("list status = %d, want 200", w.Code)
	}
	if got := strings.TrimSpace(w.Body.String()); got != "[]" {
		t.Fatalf("empty list body = %q, want []", got)
	}
}

func TestCreateEnvelope(t *testing.T) {
	r := newTestRouter(t)

	w := doJSON(t, r, http.MethodPost, "/api/team-members",
		`{"name":"Alice","position":"PhD student"}`, "admin-token")
	if w.Code != http.StatusCreated {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}

	body := decodeBody(t, w)
	if body["success"] != true {
		t.Errorf("success = %v", body["success"])
	}
	data, ok := body["data"].(map[string]any)
	if !ok {
		t.Fatalf("data = %v", body["data"])
	}
	if data["name"] != "Alice" || data["sort_order"] != float64(1) {
		t.Errorf("data = %v", data)
	}
}

func TestCreateValidationErrorEnvelope(t *testing.T) {
	r := newTestRouter(t)

	w := doJSON(t, r, http.MethodPost, "/api/team-members", `{"position":"PhD"}`, "admin-token")
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", w.Code)
	}
	body := decodeBody(t, w)
	msg, _ := body["error"].(string)
	if !strings.Contains(msg, "name") {
		t.Errorf("error message %q does not name the missing field", msg)
	}
}

func TestCreateMalformedJSON(t *testing.T) {
	r := newTestRouter(t)

	w := doJSON(t, r, http.MethodPost, "/api/team-members", `{"name":`, "admin-token")
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", w.Code)
	}
}

func TestGetByID(t *testing.T) {
	r := newTestRouter(t)
	doJSON(t, r, http.MethodPost, "/api/team-members", `{"name":"Alice"}`, "admin-token")

	w := doJSON(t, r, http.MethodGet, "/api/team-members/1", "", "")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	if got := decodeBody(t, w)["name"]; got != "Alice" {
		t.Errorf("name = %v", got)
	}

	w = doJSON(t, r, http.MethodGet, "/api/team-members/99", "", "")
	if w.Code != http.StatusNotFound {
		t.Fatalf("missing record status = %d, want 404", w.Code)
	}

	// Unparseable and zero ids address records that cannot exist.
	for _, raw := range []string{"abc", "0", "-1", "1.5"} {
		w = doJSON(t, r, http.MethodGet, "/api/team-members/"+raw, "", "")
		if w.Code != http.StatusNotFound {
			t.Fatalf("id %q status = %d, want 404", raw, w.Code)
		}
		if got := decodeBody(t, w)["error"]; got != "not found" {
			t.Errorf("id %q error = %v", raw, got)
		}
	}
}

func TestUpdateAndDeleteEnvelopes(t *testing.T) {
	r := newTestRouter(t)
	doJSON(t, r, http.MethodPost, "/api/team-members", `{"name":"Alice"}`, "admin-token")

	w := doJSON(t, r, http.MethodPut, "/api/team-members/1", `{"position":"Postdoc"}`, "admin-token")
	if w.Code != http.StatusOK {
		t.Fatalf("update status = %d, body = %s", w.Code, w.Body.String())
	}
	body := decodeBody(t, w)
	if body["success"] != true || body["id"] != float64(1) {
		t.Errorf("update envelope = %v", body)
	}

	w = doJSON(t, r, http.MethodDelete, "/api/team-members/1", "", "admin-token")
	if w.Code != http.StatusOK {
		t.Fatalf("delete status = %d", w.Code)
	}
	if body := decodeBody(t, w); body["success"] != true {
		t.Errorf("delete envelope = %v", body)
	}

	w = doJSON(t, r, http.MethodDelete, "/api/team-members/1", "", "admin-token")
	if w.Code != http.StatusNotFound {
		t.Fatalf("second delete status = %d, want 404", w.Code)
	}
}

func TestReorderEnvelope(t *testing.T) {
	r := newTestRouter(t)
	for _, name := range []string{"A", "B", "C"} {
		doJSON(t, r, http.MethodPost, "/api/team-members",
			fmt.Sprintf(`{"name":%q}`, name), "admin-token")
	}

	w := doJSON(t, r, http.MethodPost, "/api/team-members/reorder",
		`{"member_ids":[3,1,2]}`, "admin-token")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}
	if body := decodeBody(t, w); body["success"] != true {
		t.Errorf("envelope = %v", body)
	}

	w = doJSON(t, r, http.MethodGet, "/api/team-members", "", "")
	var items []map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &items); err != nil {
		t.Fatalf("decode list: %v", err)
	}
	if items[0]["name"] != "C" || items[1]["name"] != "A" || items[2]["name"] != "B" {
		t.Errorf("order after reorder = %v", items)
	}
}

func TestReorderRejectsBadPayloads(t *testing.T) {
	r := newTestRouter(t)
	doJSON(t, r, http.MethodPost, "/api/team-members", `{"name":"A"}`, "admin-token")

	cases := []string{
		`{}`,
		`{"member_ids":"1,2,3"}`,
		`{"member_ids":{"a":1}}`,
		`{"member_ids":[1,"two"]}`,
		`{"member_ids":[0]}`,
		`{"member_ids":[1.5]}`,
		`{"wrong_key":[1]}`,
	}
	for _, body := range cases {
		w := doJSON(t, r, http.MethodPost, "/api/team-members/reorder", body, "admin-token")
		if w.Code != http.StatusBadRequest {
			t.Errorf("body %s: status = %d, want 400", body, w.Code)
		}
	}
}

func TestReorderMissingIDsNamed(t *testing.T) {
	r := newTestRouter(t)
	doJSON(t, r, http.MethodPost, "/api/team-members", `{"name":"A"}`, "admin-token")

	w := doJSON(t, r, http.MethodPost, "/api/team-members/reorder",
		`{"member_ids":[1,42]}`, "admin-token")
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", w.Code)
	}
	msg, _ := decodeBody(t, w)["error"].(string)
	if !strings.Contains(msg, "42") {
		t.Errorf("error %q does not name the missing id", msg)
	}
}

func TestPerCollectionReorderKeys(t *testing.T) {
	r := newTestRouter(t)
	doJSON(t, r, http.MethodPost, "/api/advisors",
		`{"name":"Prof","position":"Professor"}`, "admin-token")

	// The team-members key is not accepted on the advisors route.
	w := doJSON(t, r, http.MethodPost, "/api/advisors/reorder",
		`{"member_ids":[1]}`, "admin-token")
	if w.Code != http.StatusBadRequest {
		t.Fatalf("wrong key status = %d, want 400", w.Code)
	}

	w = doJSON(t, r, http.MethodPost, "/api/advisors/reorder",
		`{"advisor_ids":[1]}`, "admin-token")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}
}
