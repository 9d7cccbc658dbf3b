package auth

// User is the authenticated account record returned by the profile
// endpoints. The server is the source of truth for these fields; the
// client never patches them locally.
type User struct {
	ID        int64  `json:"id"`
	Username  string `json:"username"`
	Email     string `json:"email"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

// SignUpParams are the registration fields for a new account.
type SignUpParams struct {
	Username        string `json:"username"`
	FirstName       string `json:"first_name"`
	LastName        string `json:"last_name"`
	Email           string `json:"email"`
	Password        string `json:"password"`
	PasswordConfirm string `json:"password2"`
}

// ProfileParams are the editable profile fields.
type ProfileParams struct {
	Username  string `json:"username"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
}

// ChangePasswordParams carry a password change for the signed-in user.
type ChangePasswordParams struct {
	OldPassword     string `json:"old_password"`
	NewPassword     string `json:"new_password"`
	ConfirmPassword string `json:"confirm_password"`
}

// ResetConfirmParams complete a password reset with the emailed OTP.
type ResetConfirmParams struct {
	Email           string `json:"email"`
	OTP             string `json:"otp"`
	NewPassword     string `json:"new_password1"`
	ConfirmPassword string `json:"new_password2"`
}

type signInRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type refreshRequest struct {
	Refresh string `json:"refresh"`
}

type logoutRequest struct {
	Refresh string `json:"refresh"`
}

type passwordResetRequest struct {
	Email string `json:"email"`
}
