package model

import "time"

// Entity status values shared by institutes and students.
const (
	StatusActive   = "active"
	StatusInactive = "inactive"
)

// Institute is an organization students belong to.
type Institute struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Code      string    `json:"code"`
	Address   string    `json:"address,omitempty"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"createdAt"`
}

// Student belongs to exactly one institute.
type Student struct {
	ID          string    `json:"id"`
	InstituteID string    `json:"instituteId"`
	FirstName   string    `json:"firstName"`
	LastName    string    `json:"lastName"`
	Email       string    `json:"email"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"createdAt"`
}

// Course is a unit of study students receive scores for. Code is unique.
type Course struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Code        string    `json:"code"`
	Description string    `json:"description,omitempty"`
	Credits     int       `json:"credits"`
	CreatedAt   time.Time `json:"createdAt"`
}

// InstituteInput is the payload accepted by institute create and update.
type InstituteInput struct {
	Name    string `json:"name" validate:"required"`
	Code    string `json:"code" validate:"required"`
	Address string `json:"address"`
	Status  string `json:"status" validate:"omitempty,oneof=active inactive"`
}

// StudentInput is the payload accepted by student create and update.
type StudentInput struct {
	InstituteID string `json:"instituteId" validate:"required"`
	FirstName   string `json:"firstName" validate:"required"`
	LastName    string `json:"lastName" validate:"required"`
	Email       string `json:"email" validate:"required,email"`
	Status      string `json:"status" validate:"omitempty,oneof=active inactive"`
}

// CourseInput is the payload accepted by course create and update.
type CourseInput struct {
	Name        string `json:"name" validate:"required"`
	Code        string `json:"code" validate:"required"`
	Description string `json:"description"`
	Credits     int    `json:"credits" validate:"gte=0"`
}

// RegisterInput is the payload accepted by user registration.
type RegisterInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

// LoginInput is the payload accepted by login.
type LoginInput struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// User is an API account. PasswordHash is a bcrypt hash and never leaves
// the repository layer.
type User struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"createdAt"`
}
