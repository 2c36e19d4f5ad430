package models

import "time"

// RoleAdmin is the role sentinel checked by the admin route guard.
const RoleAdmin = "ADMIN"

type User struct {
	ID        int64     `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"created_at"`
}

// Session is the persisted login state: a token plus the user it belongs
// to. It is serialized as JSON under a single key, the way the browser
// frontend kept it in local storage.
type Session struct {
	Token string `json:"token"`
	User  *User  `json:"user"`
}

type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// UpdateProfileRequest is a partial profile change. Only non-nil fields
// are sent to the user service.
type UpdateProfileRequest struct {
	Email *string `json:"email" validate:"omitempty,email"`
	Name  *string `json:"name" validate:"omitempty,max=100"`
}

type ChangePasswordRequest struct {
	NewPassword string `json:"newPassword" validate:"required,min=8"`
}
