package model

type UserType string

const (
	UserTypePatient      UserType = "patient"
	UserTypePsychologist UserType = "psychologist"
	UserTypeClinic       UserType = "clinic"
)

type User struct {
	Base
	Name         string   `db:"name" json:"name"`
	Email        string   `db:"email" json:"email"`
	PasswordHash string   `db:"password_hash" json:"-"`
	UserType     UserType `db:"user_type" json:"user_type"`
}

func (u *User) Clone() *User {
	clone := *u
	return &clone
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type TokenResponse struct {
	Token    string   `json:"token"`
	UserID   int64    `json:"user_id"`
	Name     string   `json:"name"`
	UserType UserType `json:"user_type"`
}
