package handler

import (
	"net/http"
	"storefront-service/internal/middleware"
	"storefront-service/internal/service"
	"time"

	"github.com/labstack/echo/v4"
)

func (h *Handler) Register(c echo.Context) error {
	var req service.RegisterInput
	if err := c.Bind(&req); err != nil {
		return invalidRequest(c, err)
	}

	user, err := h.auth.Register(c.Request().Context(), req)
	if err != nil {
		return failWith(c, err, "Erro ao cadastrar usuário")
	}
	return respond(c, http.StatusCreated, user)
}

// Login returns the token in the body and also sets it as an HttpOnly cookie
func (h *Handler) Login(c echo.Context) error {
	var req service.LoginInput
	if err := c.Bind(&req); err != nil {
		return invalidRequest(c, err)
	}

	session, err := h.auth.Login(c.Request().Context(), req)
	if err != nil {
		return failWith(c, err, "Erro ao entrar")
	}

	c.SetCookie(&http.Cookie{
		Name:     h.tokenCookie,
		Value:    session.Token,
		Path:     "/",
		Expires:  session.ExpiresAt,
		HttpOnly: true,
		Secure:   h.secureCookies,
		SameSite: http.SameSiteLaxMode,
	})
	return respond(c, http.StatusOK, session)
}

func (h *Handler) Logout(c echo.Context) error {
	c.SetCookie(&http.Cookie{
		Name:     h.tokenCookie,
		Value:    "",
		Path:     "/",
		Expires:  time.Unix(0, 0),
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   h.secureCookies,
		SameSite: http.SameSiteLaxMode,
	})
	return respond(c, http.StatusOK, echo.Map{"message": "Sessão encerrada"})
}

// Session returns the claims of the signed-in user
func (h *Handler) Session(c echo.Context) error {
	claims := middleware.Claims(c)
	if claims == nil {
		return fail(c, http.StatusUnauthorized, "Não autenticado")
	}
	return respond(c, http.StatusOK, echo.Map{
		"id":    claims.UserID,
		"nome":  claims.Name,
		"email": claims.Email,
		"role":  claims.Role,
	})
}
