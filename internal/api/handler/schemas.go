package handler

// --- Form types ---
//
// All mutating routes accept application/x-www-form-urlencoded posts from the
// rendered views; validation errors surface as flash messages, never as raw
// validator output pages.

type registerForm struct {
	FirstName string `form:"firstName" validate:"required"`
	LastName  string `form:"lastName"  validate:"required"`
	Username  string `form:"username"  validate:"required,panel_username"`
	Password  string `form:"password"  validate:"required"`
	Role      string `form:"role"      validate:"omitempty,oneof=admin merchantManager categoryManager employee"`
}

type loginForm struct {
	Username string `form:"username" validate:"required"`
	Password string `form:"password" validate:"required"`
}

type updateProfileForm struct {
	ID        int64  `form:"id"        validate:"required,gt=0"`
	FirstName string `form:"firstName" validate:"required"`
	LastName  string `form:"lastName"  validate:"required"`
	Username  string `form:"username"  validate:"required,panel_username"`
	Role      string `form:"role"      validate:"required,oneof=admin merchantManager categoryManager employee"`
	Status    string `form:"status"    validate:"required,oneof=Active Blocked"`
}

type changePasswordForm struct {
	ID       int64  `form:"id"       validate:"required,gt=0"`
	Password string `form:"password" validate:"required"`
}

type changeUsernameForm struct {
	ID       int64  `form:"id"       validate:"required,gt=0"`
	Username string `form:"username" validate:"required,panel_username"`
}
