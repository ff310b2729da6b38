package model

import "time"

// Role enumerates the supported account roles.
type Role string

const (
	RoleTeacher Role = "teacher"
	RoleStudent Role = "student"
)

// User represents a registered account.
// JSON field names follow the auth API contract consumed by the web client.
type User struct {
	ID           int       `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	FirstName    string    `json:"firstName"`
	LastName     string    `json:"lastName"`
	Role         Role      `json:"role"`
	Department   string    `json:"department,omitempty"`
	Grade        string    `json:"grade,omitempty"`
	TeacherID    string    `json:"teacherId,omitempty"`
	StudentID    string    `json:"studentId,omitempty"`
	CreatedAt    time.Time `json:"createdAt"`
}

// RegisterRequest is the payload for creating a new account.
type RegisterRequest struct {
	Email      string `json:"email" binding:"required,email"`
	Password   string `json:"password" binding:"required,min=6"`
	FirstName  string `json:"firstName" binding:"required"`
	LastName   string `json:"lastName" binding:"required"`
	Role       Role   `json:"role" binding:"required,oneof=teacher student"`
	Department string `json:"department" binding:"omitempty,max=100"`
	Grade      string `json:"grade" binding:"omitempty,max=20"`
}

// LoginRequest is the payload for authenticating an account.
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// UpdateUserRequest is the payload for updating the authenticated user's email.
type UpdateUserRequest struct {
	Email string `json:"email" binding:"required,email"`
}

// Profile is the legacy header profile object, superseded by User but still
// read and written by older clients.
type Profile struct {
	ProfileName string `json:"profileName"`
	Email       string `json:"email"`
}
