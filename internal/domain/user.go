package domain

import "time"

type User struct {
	UserID       string    `json:"id" dynamodbav:"user_id"`
	Email        string    `json:"email" dynamodbav:"email"`
	PasswordHash string    `json:"-" dynamodbav:"password_hash"`
	CreatedAt    time.Time `json:"created" dynamodbav:"created_at"`
	UpdatedAt    time.Time `json:"updated" dynamodbav:"updated_at"`
}

// PublicUser is the identity projection returned by the API. The password
// hash never leaves the server.
type PublicUser struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}

func (u *User) Public() *PublicUser {
	return &PublicUser{ID: u.UserID, Email: u.Email}
}

type RegisterRequest struct {
	Email string `json:"email" validate:"required,email"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type UpdateEmailRequest struct {
	Email    string `json:"email" validate:"required,email"`
	NewEmail string `json:"newemail" validate:"required,email"`
}

type UpdatePasswordRequest struct {
	Email       string `json:"email" validate:"required,email"`
	NewPassword string `json:"newpassword" validate:"required,min=8,max=72"`
}

type DeleteUserRequest struct {
	Email string `json:"email" validate:"required,email"`
}
