package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/goodsru/user-panel/internal/api/metrics"
	apimw "github.com/goodsru/user-panel/internal/api/middleware"
	"github.com/goodsru/user-panel/internal/core/domain"
	"github.com/goodsru/user-panel/internal/core/ports"
)

// AuditSink is the interface the handlers use to enqueue audit entries
// without blocking the request path.
type AuditSink interface {
	Enqueue(entry ports.AuditEntryInput)
}

// AuthHandler serves the registration and login/logout surface.
type AuthHandler struct {
	users            ports.UserService
	sessions         ports.SessionManager
	audit            AuditSink
	registrationOpen bool
	secureCookies    bool
}

func NewAuthHandler(users ports.UserService, sessions ports.SessionManager, audit AuditSink, registrationOpen, secureCookies bool) *AuthHandler {
	return &AuthHandler{
		users:            users,
		sessions:         sessions,
		audit:            audit,
		registrationOpen: registrationOpen,
		secureCookies:    secureCookies,
	}
}

// RegisterForm handles GET /auth/register. Authenticated visitors are sent
// home; in closed mode the route is admin-gated before this handler runs.
func (h *AuthHandler) RegisterForm(c echo.Context) error {
	if h.registrationOpen && apimw.IdentityFrom(c).IsAuthenticated() {
		return c.Redirect(http.StatusSeeOther, "/")
	}
	return c.Render(http.StatusOK, "register", newViewData(c, nil))
}

// Register handles POST /auth/register: creates the account and, for an
// anonymous visitor in open mode, establishes the session immediately.
func (h *AuthHandler) Register(c echo.Context) error {
	var form registerForm
	if err := c.Bind(&form); err != nil {
		setFlash(c, "invalid form submission")
		return c.Redirect(http.StatusSeeOther, "/auth/register")
	}
	if err := c.Validate(&form); err != nil {
		metrics.RegistrationsTotal.WithLabelValues("invalid").Inc()
		setFlash(c, err.Error())
		return c.Redirect(http.StatusSeeOther, "/auth/register")
	}

	user, err := h.users.Create(c.Request().Context(), ports.CreateUserInput{
		FirstName: form.FirstName,
		LastName:  form.LastName,
		Username:  form.Username,
		Password:  form.Password,
		Role:      form.Role,
	})
	if err != nil {
		result := "invalid"
		if errors.Is(err, domain.ErrUsernameTaken) {
			result = "conflict"
		}
		metrics.RegistrationsTotal.WithLabelValues(result).Inc()
		setFlash(c, flashMessage(err))
		return c.Redirect(http.StatusSeeOther, "/auth/register")
	}

	metrics.RegistrationsTotal.WithLabelValues("success").Inc()
	h.audit.Enqueue(ports.AuditEntryInput{
		Actor:    actorName(c),
		Action:   domain.AuditRegister,
		TargetID: user.ID,
	})

	// An admin creating accounts stays in the panel; a self-registering
	// visitor is logged straight in.
	if apimw.IdentityFrom(c).IsAuthenticated() {
		setFlash(c, "user created")
		return c.Redirect(http.StatusSeeOther, "/users")
	}

	token, _, err := h.sessions.Login(c.Request().Context(), form.Username, form.Password)
	if err != nil {
		setFlash(c, "account created, please log in")
		return c.Redirect(http.StatusSeeOther, "/auth/login")
	}
	h.setSessionCookie(c, token)
	return c.Redirect(http.StatusSeeOther, "/")
}

// LoginForm handles GET /auth/login.
func (h *AuthHandler) LoginForm(c echo.Context) error {
	if apimw.IdentityFrom(c).IsAuthenticated() {
		return c.Redirect(http.StatusSeeOther, "/")
	}
	return c.Render(http.StatusOK, "login", newViewData(c, nil))
}

// Login handles POST /auth/login. Unknown username and wrong password get
// the same generic message; a blocked account gets its own, but neither
// establishes a session.
func (h *AuthHandler) Login(c echo.Context) error {
	var form loginForm
	if err := c.Bind(&form); err != nil {
		setFlash(c, "invalid form submission")
		return c.Redirect(http.StatusSeeOther, "/auth/login")
	}
	if err := c.Validate(&form); err != nil {
		setFlash(c, err.Error())
		return c.Redirect(http.StatusSeeOther, "/auth/login")
	}

	token, user, err := h.sessions.Login(c.Request().Context(), form.Username, form.Password)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrAccountBlocked):
			metrics.LoginsTotal.WithLabelValues("blocked").Inc()
			h.audit.Enqueue(ports.AuditEntryInput{Actor: form.Username, Action: domain.AuditLoginBlocked})
			setFlash(c, domain.ErrAccountBlocked.Error())
		case errors.Is(err, domain.ErrInvalidCredentials):
			metrics.LoginsTotal.WithLabelValues("invalid").Inc()
			h.audit.Enqueue(ports.AuditEntryInput{Actor: form.Username, Action: domain.AuditLoginFailed})
			setFlash(c, domain.ErrInvalidCredentials.Error())
		default:
			metrics.LoginsTotal.WithLabelValues("invalid").Inc()
			setFlash(c, "login failed, please try again")
		}
		return c.Redirect(http.StatusSeeOther, "/auth/login")
	}

	metrics.LoginsTotal.WithLabelValues("success").Inc()
	h.audit.Enqueue(ports.AuditEntryInput{Actor: user.Username, Action: domain.AuditLogin, TargetID: user.ID})
	h.setSessionCookie(c, token)
	return c.Redirect(http.StatusSeeOther, "/")
}

// Logout handles GET /auth/logout. Requires an authenticated session.
func (h *AuthHandler) Logout(c echo.Context) error {
	ident := apimw.IdentityFrom(c)
	if !ident.IsAuthenticated() {
		return echo.NewHTTPError(http.StatusUnauthorized, "not authenticated")
	}

	if err := h.sessions.Logout(c.Request().Context(), apimw.SessionToken(c)); err != nil {
		// The cookie is cleared regardless; a dangling record expires by TTL.
		c.Logger().Warn("session revocation failed")
	}
	h.audit.Enqueue(ports.AuditEntryInput{
		Actor:    ident.User().Username,
		Action:   domain.AuditLogout,
		TargetID: ident.User().ID,
	})
	h.clearSessionCookie(c)
	return c.Redirect(http.StatusSeeOther, "/")
}

func (h *AuthHandler) setSessionCookie(c echo.Context, token string) {
	c.SetCookie(&http.Cookie{
		Name:     apimw.CookieName,
		Value:    token,
		Path:     "/",
		Expires:  time.Now().Add(h.sessions.TTL()),
		HttpOnly: true,
		Secure:   h.secureCookies,
		SameSite: http.SameSiteLaxMode,
	})
}

func (h *AuthHandler) clearSessionCookie(c echo.Context) {
	c.SetCookie(&http.Cookie{
		Name:     apimw.CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   h.secureCookies,
		SameSite: http.SameSiteLaxMode,
	})
}

// flashMessage maps a domain error to the user-facing flash text. Store
// failures collapse into one generic message.
func flashMessage(err error) string {
	switch {
	case errors.Is(err, domain.ErrInvalidUsername),
		errors.Is(err, domain.ErrEmptyPassword),
		errors.Is(err, domain.ErrEmptyName),
		errors.Is(err, domain.ErrInvalidRole),
		errors.Is(err, domain.ErrInvalidStatus),
		errors.Is(err, domain.ErrUsernameTaken),
		errors.Is(err, domain.ErrUserNotFound):
		return err.Error()
	default:
		return "operation failed, please try again"
	}
}
