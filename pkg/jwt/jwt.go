package jwt

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ErrMalformed token que no se puede decodificar como JWT.
var ErrMalformed = errors.New("jwt: token mal formado")

// Claims claims que emite el backend Impilo: los estándar más los roles del usuario.
// El backend firma con su propia llave; aquí solo se leen (ver Inspect).
type Claims struct {
	jwt.RegisteredClaims
	Roles []string `json:"roles,omitempty"`
}

// Inspect decodifica el token SIN verificar la firma y devuelve sus claims.
// Solo sirve para decisiones locales (mostrar el usuario, saber si ya expiró);
// la validación real la hace el backend en /auth/validate-token.
func Inspect(tokenString string) (*Claims, error) {
	tokenString = strings.TrimSpace(strings.TrimPrefix(tokenString, "Bearer "))
	if tokenString == "" {
		return nil, ErrMalformed
	}
	claims := &Claims{}
	if _, _, err := jwt.NewParser().ParseUnverified(tokenString, claims); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	return claims, nil
}

// Username devuelve el subject del token (el backend usa el username).
func (c *Claims) Username() string {
	return c.Subject
}

// ExpiresAt devuelve la expiración; cero si el token no la declara.
func (c *Claims) ExpiresAt() time.Time {
	if c.RegisteredClaims.ExpiresAt == nil {
		return time.Time{}
	}
	return c.RegisteredClaims.ExpiresAt.Time
}

// Expired indica si el token ya expiró en el instante dado. Un token sin exp nunca expira.
func (c *Claims) Expired(now time.Time) bool {
	exp := c.ExpiresAt()
	return !exp.IsZero() && !now.Before(exp)
}
