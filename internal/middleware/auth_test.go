package middleware

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/acmlab/labsite/internal/domain"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type staticVerifier struct {
	userID uint
	role   string
	err    error
}

func (v staticVerifier) Verify(string) (uint, string, error) {
	return v.userID, v.role, v.err
}

func adminGateRequest(t *testing.T, verifier TokenVerifier, authHeader string) *httptest.ResponseRecorder {
	t.Helper()
	r := gin.New()
	r.POST("/x", RequireAdmin(verifier), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"user_id": AuthUserID(c)})
	})

	req := httptest.NewRequest(http.MethodPost, "/x", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestRequireAdmin(t *testing.T) {
	valid := staticVerifier{userID: 7, role: domain.RoleAdmin}

	tests := []struct {
		name       string
		verifier   TokenVerifier
		authHeader string
		wantStatus int
	}{
		{name: "admin token passes", verifier: valid, authHeader: "Bearer token", wantStatus: http.StatusOK},
		{name: "missing header", verifier: valid, authHeader: "", wantStatus: http.StatusUnauthorized},
		{name: "wrong scheme", verifier: valid, authHeader: "Basic dXNlcg==", wantStatus: http.StatusUnauthorized},
		{name: "empty bearer token", verifier: valid, authHeader: "Bearer ", wantStatus: http.StatusUnauthorized},
		{name: "verifier rejects token", verifier: staticVerifier{err: errors.New("expired")}, authHeader: "Bearer token", wantStatus: http.StatusUnauthorized},
		{name: "non-admin role", verifier: staticVerifier{userID: 9, role: "user"}, authHeader: "Bearer token", wantStatus: http.StatusUnauthorized},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := adminGateRequest(t, tt.verifier, tt.authHeader)
			if w.Code != tt.wantStatus {
				t.Fatalf("status = %d; want %d", w.Code, tt.wantStatus)
			}

			var body map[string]any
			if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
				t.Fatalf("unmarshal: %v", err)
			}
			if tt.wantStatus == http.StatusUnauthorized {
				if body["error"] != "unauthorized" {
					t.Errorf("body = %v; want unauthorized envelope", body)
				}
			} else if body["user_id"] != float64(7) {
				t.Errorf("user_id = %v; want 7", body["user_id"])
			}
		})
	}
}

func TestAuthUserID_Unauthenticated(t *testing.T) {
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	if got := AuthUserID(c); got != 0 {
		t.Errorf("AuthUserID = %d; want 0", got)
	}
}
