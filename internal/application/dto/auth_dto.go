package dto

import (
	"time"

	"github.com/jhoicas/impilo-stock/internal/domain/entity"
)

// LoginRequest body de POST /api/auth/login.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// SessionDTO sesión abierta contra el backend.
type SessionDTO struct {
	Token     string       `json:"token"`
	User      *entity.User `json:"user,omitempty"`
	Username  string       `json:"username"`
	Roles     []string     `json:"roles,omitempty"`
	ExpiresAt *time.Time   `json:"expires_at,omitempty"`
}
