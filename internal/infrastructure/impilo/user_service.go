package impilo

import (
	"context"
	"net/url"

	"github.com/jhoicas/impilo-stock/internal/domain/entity"
)

// UserService administración de usuarios.
type UserService struct {
	client *Client
}

func NewUserService(client *Client) *UserService {
	return &UserService{client: client}
}

// GetAll GET /users/all?page=&size= (por defecto 0 y 10).
func (s *UserService) GetAll(ctx context.Context, page, size int) (*entity.Page[entity.User], error) {
	if size <= 0 {
		size = 10
	}
	if page < 0 {
		page = 0
	}
	var out entity.Page[entity.User]
	if err := s.client.Get(ctx, "/users/all", Params{"page": page, "size": size}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// GetByUsername GET /users/{username}.
func (s *UserService) GetByUsername(ctx context.Context, username string) (*entity.UserDetails, error) {
	var out entity.UserDetails
	if err := s.client.Get(ctx, "/users/"+url.PathEscape(username), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Update PUT /users/{username}.
func (s *UserService) Update(ctx context.Context, username string, in entity.User) (*entity.User, error) {
	var out entity.User
	if err := s.client.Put(ctx, "/users/"+url.PathEscape(username), in, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateRole PUT /users/{username}/update-role?role=.
func (s *UserService) UpdateRole(ctx context.Context, username, role string) (*entity.User, error) {
	var out entity.User
	if err := s.client.Put(ctx, "/users/"+url.PathEscape(username)+"/update-role", nil, Params{"role": role}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ChangePassword PUT /users/{username}/change-password?newPassword=.
func (s *UserService) ChangePassword(ctx context.Context, username, newPassword string) (string, error) {
	var out string
	err := s.client.Put(ctx, "/users/"+url.PathEscape(username)+"/change-password", nil, Params{"newPassword": newPassword}, &out)
	if err != nil {
		return "", err
	}
	return out, nil
}
