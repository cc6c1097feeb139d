package models

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// SessionRequest opens a session for a student.
type SessionRequest struct {
	StudentID int `json:"student_id" validate:"required,gt=0"`
}

// SessionResponse returns the issued session token.
type SessionResponse struct {
	Token     string    `json:"token"`
	StudentID int       `json:"student_id"`
	ExpiresAt time.Time `json:"expires_at"`
}

// SessionClaims is the JWT payload naming the current student.
type SessionClaims struct {
	StudentID int    `json:"student_id"`
	Name      string `json:"name"`
	jwt.RegisteredClaims
}
