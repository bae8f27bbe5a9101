package stub_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/garnizeh/emsportal/internal/stub"
)

func signToken(t *testing.T, secret, role string, exp time.Time) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"employee_id": "emp-1",
		"username":    "jdoe",
		"role":        role,
		"exp":         exp.Unix(),
	})
	s, err := token.SignedString([]byte(secret))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return s
}

func TestJWTAuthMiddleware(t *testing.T) {
	var gotID, gotRole string
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotID, _ = r.Context().Value(stub.CtxEmployeeID).(string)
		gotRole, _ = r.Context().Value(stub.CtxRole).(string)
		w.WriteHeader(http.StatusOK)
	})
	handler := stub.JWTAuthMiddlewareWithSecret(testSecret)(next)

	cases := []struct {
		name   string
		header string
		want   int
	}{
		{name: "Missing", header: "", want: http.StatusUnauthorized},
		{name: "NotBearer", header: "Basic abc", want: http.StatusUnauthorized},
		{name: "Garbage", header: "Bearer garbage", want: http.StatusUnauthorized},
		{name: "WrongSecret", header: "Bearer " + signToken(t, "other-secret", "Employee", time.Now().Add(time.Hour)), want: http.StatusUnauthorized},
		{name: "Expired", header: "Bearer " + signToken(t, testSecret, "Employee", time.Now().Add(-time.Hour)), want: http.StatusUnauthorized},
		{name: "Valid", header: "Bearer " + signToken(t, testSecret, "Employee", time.Now().Add(time.Hour)), want: http.StatusOK},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/api/Employee/emp-1", nil)
			if c.header != "" {
				req.Header.Set("Authorization", c.header)
			}
			w := httptest.NewRecorder()
			handler.ServeHTTP(w, req)
			if w.Code != c.want {
				t.Fatalf("status: got %d want %d", w.Code, c.want)
			}
		})
	}

	if gotID != "emp-1" || gotRole != "Employee" {
		t.Fatalf("claims not propagated: id=%q role=%q", gotID, gotRole)
	}
}

func TestAdminOnlyMiddleware(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	handler := stub.JWTAuthMiddlewareWithSecret(testSecret)(stub.AdminOnlyMiddleware(next))

	req := httptest.NewRequest(http.MethodGet, "/api/Admin/employees", nil)
	req.Header.Set("Authorization", "Bearer "+signToken(t, testSecret, "Employee", time.Now().Add(time.Hour)))
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)
	if w.Code != http.StatusForbidden {
		t.Fatalf("employee role: got %d want 403", w.Code)
	}

	req = httptest.NewRequest(http.MethodGet, "/api/Admin/employees", nil)
	req.Header.Set("Authorization", "Bearer "+signToken(t, testSecret, "Admin", time.Now().Add(time.Hour)))
	w = httptest.NewRecorder()
	handler.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("admin role: got %d want 200", w.Code)
	}
}
