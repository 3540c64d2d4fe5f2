package middleware

import (
	"net/http"
	"storefront-service/pkg/jwtutil"
	"storefront-service/pkg/logger"
	"strings"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// ClaimsKey is the echo context key holding *jwtutil.UserClaims
const ClaimsKey = "user"

func unauthorized(c echo.Context, message string) error {
	return c.JSON(http.StatusUnauthorized, echo.Map{"success": false, "error": message})
}

// tokenFrom reads a bearer token from the Authorization header, falling back
// to the session cookie
func tokenFrom(c echo.Context, cookieName string) string {
	if header := c.Request().Header.Get("Authorization"); header != "" {
		parts := strings.SplitN(header, " ", 2)
		if len(parts) == 2 && strings.EqualFold(parts[0], "Bearer") {
			return strings.TrimSpace(parts[1])
		}
		return ""
	}
	if cookie, err := c.Cookie(cookieName); err == nil {
		return cookie.Value
	}
	return ""
}

// JWTAuth rejects requests without a valid token and stores the claims
func JWTAuth(jwtUtil *jwtutil.JWTUtil, cookieName string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			log := logger.FromEcho(c)

			token := tokenFrom(c, cookieName)
			if token == "" {
				log.Warn("Missing authentication token")
				return unauthorized(c, "Não autenticado")
			}

			claims, err := jwtUtil.ValidateToken(token)
			if err != nil {
				log.Warn("Invalid or expired token", zap.Error(err))
				return unauthorized(c, "Sessão inválida ou expirada")
			}

			c.Set(ClaimsKey, claims)
			log.Debug("JWT token validated successfully",
				zap.Uint("user_id", claims.UserID),
				zap.String("email", claims.Email))

			return next(c)
		}
	}
}

// RequireRole lets through only users whose role is one of roles. It must run
// after JWTAuth.
func RequireRole(roles ...string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			claims := Claims(c)
			if claims == nil {
				return unauthorized(c, "Não autenticado")
			}
			for _, role := range roles {
				if claims.Role == role {
					return next(c)
				}
			}
			logger.FromEcho(c).Warn("Access denied",
				zap.Uint("user_id", claims.UserID),
				zap.String("role", claims.Role))
			return c.JSON(http.StatusForbidden, echo.Map{"success": false, "error": "Acesso negado"})
		}
	}
}

// Claims returns the authenticated user's claims, or nil
func Claims(c echo.Context) *jwtutil.UserClaims {
	claims, _ := c.Get(ClaimsKey).(*jwtutil.UserClaims)
	return claims
}
