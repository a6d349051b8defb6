package model

type RegisterRequest struct {
	Email     string   `json:"email" validate:"required,email"`
	Password  string   `json:"password" validate:"required,min=8"`
	Firstname string   `json:"firstname" validate:"required,min=1,max=255"`
	Lastname  string   `json:"lastname" validate:"required,min=1,max=255"`
	Phone     *string  `json:"phone" validate:"omitempty,phone"`
	ImageURL  *string  `json:"image" validate:"omitempty,url,max=255"`
	Roles     []string `json:"roles" validate:"omitempty,max=4,dive,user_role"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type VerifyAccountRequest struct {
	Token string `json:"token" validate:"required"`
}

type ResendVerificationRequest struct {
	Email string `json:"email" validate:"required,email"`
}

type PasswordResetRequest struct {
	Email string `json:"email" validate:"required,email"`
}

type ValidateResetTokenRequest struct {
	Token string `json:"token" validate:"required"`
}

type PasswordResetChangeRequest struct {
	Token       string `json:"token" validate:"required"`
	NewPassword string `json:"new_password" validate:"required,min=8"`
}

type ChangePasswordRequest struct {
	OldPassword string `json:"old_password" validate:"required"`
	NewPassword string `json:"new_password" validate:"required,min=8"`
}

type UpdateProfileRequest struct {
	Firstname *string `json:"firstname" validate:"omitempty,min=1,max=255"`
	Lastname  *string `json:"lastname" validate:"omitempty,min=1,max=255"`
	Phone     *string `json:"phone" validate:"omitempty,phone"`
	ImageURL  *string `json:"image" validate:"omitempty,url,max=255"`
}

type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh" validate:"required"`
}
