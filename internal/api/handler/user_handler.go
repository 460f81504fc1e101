package handler

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/goodsru/user-panel/internal/core/domain"
	"github.com/goodsru/user-panel/internal/core/ports"
)

// UserHandler serves the user listing and the three edit workflows. Role
// checks happen in the route middleware; by the time a handler runs the
// request is already authorized.
type UserHandler struct {
	users ports.UserService
	audit AuditSink
}

func NewUserHandler(users ports.UserService, audit AuditSink) *UserHandler {
	return &UserHandler{users: users, audit: audit}
}

// List handles GET /users.
func (h *UserHandler) List(c echo.Context) error {
	users, err := h.users.List(c.Request().Context())
	if err != nil {
		return fmt.Errorf("list users: %w", err)
	}
	return c.Render(http.StatusOK, "users", newViewData(c, users))
}

// EditForm handles GET /users/:id.
func (h *UserHandler) EditForm(c echo.Context) error {
	return h.renderUserForm(c, "user_edit")
}

// PasswordForm handles GET /users/:id/password.
func (h *UserHandler) PasswordForm(c echo.Context) error {
	return h.renderUserForm(c, "user_password")
}

// UsernameForm handles GET /users/:id/username.
func (h *UserHandler) UsernameForm(c echo.Context) error {
	return h.renderUserForm(c, "user_username")
}

func (h *UserHandler) renderUserForm(c echo.Context, view string) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return domain.ErrUserNotFound
	}
	user, err := h.users.Get(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.Render(http.StatusOK, view, newViewData(c, user))
}

// Update handles POST /users/update.
func (h *UserHandler) Update(c echo.Context) error {
	var form updateProfileForm
	if err := c.Bind(&form); err != nil {
		setFlash(c, "invalid form submission")
		return c.Redirect(http.StatusSeeOther, "/users")
	}
	if err := c.Validate(&form); err != nil {
		setFlash(c, err.Error())
		return c.Redirect(http.StatusSeeOther, formTarget(form.ID, ""))
	}

	err := h.users.UpdateProfile(c.Request().Context(), form.ID, ports.UpdateProfileInput{
		FirstName: form.FirstName,
		LastName:  form.LastName,
		Username:  form.Username,
		Role:      form.Role,
		Status:    form.Status,
	})
	if err != nil {
		setFlash(c, flashMessage(err))
		return c.Redirect(http.StatusSeeOther, formTarget(form.ID, ""))
	}

	h.audit.Enqueue(ports.AuditEntryInput{
		Actor:    actorName(c),
		Action:   domain.AuditProfileUpdate,
		TargetID: form.ID,
	})
	setFlash(c, "profile updated")
	return c.Redirect(http.StatusSeeOther, "/users")
}

// ChangePassword handles POST /password/change.
func (h *UserHandler) ChangePassword(c echo.Context) error {
	var form changePasswordForm
	if err := c.Bind(&form); err != nil {
		setFlash(c, "invalid form submission")
		return c.Redirect(http.StatusSeeOther, "/users")
	}
	if err := c.Validate(&form); err != nil {
		setFlash(c, err.Error())
		return c.Redirect(http.StatusSeeOther, formTarget(form.ID, "/password"))
	}

	if err := h.users.ChangePassword(c.Request().Context(), form.ID, form.Password); err != nil {
		setFlash(c, flashMessage(err))
		return c.Redirect(http.StatusSeeOther, formTarget(form.ID, "/password"))
	}

	h.audit.Enqueue(ports.AuditEntryInput{
		Actor:    actorName(c),
		Action:   domain.AuditPasswordChange,
		TargetID: form.ID,
	})
	setFlash(c, "password changed")
	return c.Redirect(http.StatusSeeOther, "/users")
}

// ChangeUsername handles POST /username/change.
func (h *UserHandler) ChangeUsername(c echo.Context) error {
	var form changeUsernameForm
	if err := c.Bind(&form); err != nil {
		setFlash(c, "invalid form submission")
		return c.Redirect(http.StatusSeeOther, "/users")
	}
	if err := c.Validate(&form); err != nil {
		setFlash(c, err.Error())
		return c.Redirect(http.StatusSeeOther, formTarget(form.ID, "/username"))
	}

	if err := h.users.ChangeUsername(c.Request().Context(), form.ID, form.Username); err != nil {
		setFlash(c, flashMessage(err))
		return c.Redirect(http.StatusSeeOther, formTarget(form.ID, "/username"))
	}

	h.audit.Enqueue(ports.AuditEntryInput{
		Actor:    actorName(c),
		Action:   domain.AuditUsernameChange,
		TargetID: form.ID,
	})
	setFlash(c, "username changed")
	return c.Redirect(http.StatusSeeOther, "/users")
}

func formTarget(id int64, suffix string) string {
	if id <= 0 {
		return "/users"
	}
	return fmt.Sprintf("/users/%d%s", id, suffix)
}
