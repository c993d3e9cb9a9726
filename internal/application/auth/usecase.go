package auth

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jhoicas/impilo-stock/internal/application/dto"
	"github.com/jhoicas/impilo-stock/internal/domain"
	"github.com/jhoicas/impilo-stock/internal/domain/entity"
	"github.com/jhoicas/impilo-stock/internal/infrastructure/impilo"
	"github.com/jhoicas/impilo-stock/pkg/jwt"
)

// AuthUseCase sesión contra el backend Impilo: login, validación y logout.
// El backend emite y firma los tokens; aquí solo se leen sus claims.
type AuthUseCase struct {
	auth *impilo.AuthService
	now  func() time.Time
}

// NewAuthUseCase construye el caso de uso de auth.
func NewAuthUseCase(auth *impilo.AuthService, now func() time.Time) *AuthUseCase {
	if now == nil {
		now = time.Now
	}
	return &AuthUseCase{auth: auth, now: now}
}

// Login autentica contra /auth/login y arma la sesión con los datos del token.
// No persiste el token; para eso Persist.
func (uc *AuthUseCase) Login(ctx context.Context, in dto.LoginRequest) (*dto.SessionDTO, error) {
	if strings.TrimSpace(in.Username) == "" || in.Password == "" {
		return nil, fmt.Errorf("%w: username y password son requeridos", domain.ErrInvalidInput)
	}
	res, err := uc.auth.Login(ctx, entity.UserLoginDto{Username: in.Username, Password: in.Password})
	if err != nil {
		return nil, err
	}
	if res.Token == "" {
		return nil, domain.ErrUnauthorized
	}

	session := &dto.SessionDTO{Token: res.Token, User: &res.User, Username: res.User.Username, Roles: res.User.Roles}
	if session.Username == "" {
		session.Username = in.Username
	}
	// Un token opaco (no JWT) sigue siendo una sesión válida, solo sin claims.
	if claims, err := jwt.Inspect(res.Token); err == nil {
		applyClaims(session, claims)
	}
	return session, nil
}

// Session lee la sesión de un token sin consultar al backend.
// ErrUnauthorized si no es un JWT; ErrTokenExpired si ya venció.
func (uc *AuthUseCase) Session(token string) (*dto.SessionDTO, error) {
	claims, err := jwt.Inspect(token)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrUnauthorized, err)
	}
	if claims.Expired(uc.now()) {
		return nil, domain.ErrTokenExpired
	}
	session := &dto.SessionDTO{Token: strings.TrimSpace(strings.TrimPrefix(token, "Bearer "))}
	applyClaims(session, claims)
	return session, nil
}

func applyClaims(s *dto.SessionDTO, c *jwt.Claims) {
	if u := c.Username(); u != "" {
		s.Username = u
	}
	if len(c.Roles) > 0 {
		s.Roles = c.Roles
	}
	if exp := c.ExpiresAt(); !exp.IsZero() {
		s.ExpiresAt = &exp
	}
}

// Validate consulta /auth/validate-token. Un token inválido devuelve ErrUnauthorized.
func (uc *AuthUseCase) Validate(ctx context.Context, token string) (*entity.TokenValidation, error) {
	res, err := uc.auth.ValidateToken(ctx, token)
	if err != nil {
		return nil, err
	}
	if !res.Valid {
		return res, domain.ErrUnauthorized
	}
	return res, nil
}

// Register alta de usuario en el backend.
func (uc *AuthUseCase) Register(ctx context.Context, in entity.UserRegistrationDto) (*entity.User, error) {
	if in.Username == "" || in.Password == "" || in.Email == "" {
		return nil, fmt.Errorf("%w: username, password y email son requeridos", domain.ErrInvalidInput)
	}
	return uc.auth.Register(ctx, in)
}

// ResetPassword pide al backend el correo de recuperación.
func (uc *AuthUseCase) ResetPassword(ctx context.Context, email string) (string, error) {
	if !strings.Contains(email, "@") {
		return "", fmt.Errorf("%w: email inválido", domain.ErrInvalidInput)
	}
	return uc.auth.ResetPassword(ctx, email)
}

// Persist guarda el token en el store del servicio y lo usa en el cliente.
func (uc *AuthUseCase) Persist(token string) error { return uc.auth.SetAuthToken(token) }

// Restore carga el token guardado, si hay.
func (uc *AuthUseCase) Restore() error { return uc.auth.InitAuth() }

// Logout limpia el token del cliente y del store.
func (uc *AuthUseCase) Logout() error { return uc.auth.Logout() }
