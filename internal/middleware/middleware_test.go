package middleware

import (
	"net/http"
	"net/http/httptest"
	"storefront-service/pkg/jwtutil"
	"storefront-service/pkg/logger"
	"testing"

	"github.com/labstack/echo/v4"
)

const cookieName = "storefront_token"

func newJWT() *jwtutil.JWTUtil {
	return jwtutil.NewJWTUtil(&jwtutil.JWTConfig{SigningKey: "middleware-test", ExpirationHours: 1})
}

func protected(jwt *jwtutil.JWTUtil, roles ...string) *echo.Echo {
	e := echo.New()
	g := e.Group("/painel", JWTAuth(jwt, cookieName), RequireRole(roles...))
	g.GET("/ping", func(c echo.Context) error {
		return c.String(http.StatusOK, Claims(c).Email)
	})
	return e
}

func TestRequestIDPropagatesToContextLogger(t *testing.T) {
	e := echo.New()
	e.Use(RequestID())
	var sawLogger bool
	e.GET("/", func(c echo.Context) error {
		sawLogger = logger.FromContext(c.Request().Context()) != logger.GetLogger()
		return c.NoContent(http.StatusOK)
	})

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	if rec.Header().Get(RequestIDHeader) == "" {
		t.Error("expected generated request id header")
	}
	if !sawLogger {
		t.Error("expected request scoped logger in request context")
	}

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(RequestIDHeader, "abc-123")
	rec = httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	if got := rec.Header().Get(RequestIDHeader); got != "abc-123" {
		t.Errorf("request id = %q, want abc-123", got)
	}
}

func TestJWTAuth(t *testing.T) {
	jwt := newJWT()
	e := protected(jwt, "admin")
	admin, _ := jwt.GenerateToken(1, "dona@loja.com", "Dona", "admin")
	customer, _ := jwt.GenerateToken(2, "cliente@loja.com", "Cliente", "customer")

	tests := []struct {
		name   string
		header string
		cookie string
		want   int
	}{
		{"no token", "", "", http.StatusUnauthorized},
		{"malformed header", "Token " + admin, "", http.StatusUnauthorized},
		{"bad token", "Bearer nope", "", http.StatusUnauthorized},
		{"admin header", "Bearer " + admin, "", http.StatusOK},
		{"admin cookie", "", admin, http.StatusOK},
		{"customer", "Bearer " + customer, "", http.StatusForbidden},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/painel/ping", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			if tt.cookie != "" {
				req.AddCookie(&http.Cookie{Name: cookieName, Value: tt.cookie})
			}
			rec := httptest.NewRecorder()
			e.ServeHTTP(rec, req)
			if rec.Code != tt.want {
				t.Errorf("status = %d, want %d (%s)", rec.Code, tt.want, rec.Body.String())
			}
		})
	}
}
