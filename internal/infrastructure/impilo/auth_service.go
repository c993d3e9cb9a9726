package impilo

import (
	"context"

	"github.com/jhoicas/impilo-stock/internal/domain/entity"
)

// AuthService login, registro y manejo del token de sesión.
type AuthService struct {
	client *Client
	store  TokenStore
}

// NewAuthService construye el servicio. store nil usa un MemoryTokenStore.
func NewAuthService(client *Client, store TokenStore) *AuthService {
	if store == nil {
		store = &MemoryTokenStore{}
	}
	return &AuthService{client: client, store: store}
}

// Login POST /auth/login. No guarda el token; para eso SetAuthToken.
func (s *AuthService) Login(ctx context.Context, in entity.UserLoginDto) (*entity.LoginResponse, error) {
	var out entity.LoginResponse
	if err := s.client.Post(ctx, "/auth/login", in, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Register POST /auth/register.
func (s *AuthService) Register(ctx context.Context, in entity.UserRegistrationDto) (*entity.User, error) {
	var out entity.User
	if err := s.client.Post(ctx, "/auth/register", in, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ResetPassword POST /auth/reset-password?email=. Devuelve el mensaje del backend.
func (s *AuthService) ResetPassword(ctx context.Context, email string) (string, error) {
	var out string
	if err := s.client.Post(ctx, "/auth/reset-password", nil, Params{"email": email}, &out); err != nil {
		return "", err
	}
	return out, nil
}

// ValidateToken GET /auth/validate-token?token=.
func (s *AuthService) ValidateToken(ctx context.Context, token string) (*entity.TokenValidation, error) {
	var out entity.TokenValidation
	if err := s.client.Get(ctx, "/auth/validate-token", Params{"token": token}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// SetAuthToken usa token en el cliente y lo persiste.
func (s *AuthService) SetAuthToken(token string) error {
	s.client.SetToken(token)
	return s.store.Save(token)
}

// Logout limpia el token del cliente y del store.
func (s *AuthService) Logout() error {
	s.client.ClearToken()
	return s.store.Clear()
}

// InitAuth carga el token persistido, si hay, en el cliente.
func (s *AuthService) InitAuth() error {
	token, err := s.store.Load()
	if err != nil {
		return err
	}
	if token != "" {
		s.client.SetToken(token)
	}
	return nil
}
