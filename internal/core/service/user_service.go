package service

import (
	"context"
	"fmt"

	"github.com/pvhoang/eventdesk/internal/core/domain"
)

func (s *CatalogService) CreateUser(ctx context.Context, username, password string, role domain.Role) (*domain.User, error) {
	if s.UserByUsername(username) != nil {
		return nil, ErrUsernameTaken
	}
	if len(password) < 6 {
		return nil, ErrPasswordTooShort
	}
	s.users = append(s.users, domain.User{
		ID:       s.takeUserID(),
		Username: username,
		Password: password,
		Role:     role,
	})
	if err := s.store.SaveUsers(ctx, s.users); err != nil {
		return nil, fmt.Errorf("save users: %w", err)
	}
	return &s.users[len(s.users)-1], nil
}

func (s *CatalogService) DeleteUser(ctx context.Context, username string) error {
	for i := range s.users {
		if s.users[i].Username == username {
			s.users = append(s.users[:i], s.users[i+1:]...)
			if err := s.store.SaveUsers(ctx, s.users); err != nil {
				return fmt.Errorf("save users: %w", err)
			}
			return nil
		}
	}
	return ErrUserNotFound
}

// Authenticate checks plain credentials. Credential storage is as
// simple as the rest of the system: one operator, local files.
func (s *CatalogService) Authenticate(username, password string) (*domain.User, error) {
	user := s.UserByUsername(username)
	if user == nil || user.Password != password {
		return nil, ErrInvalidCredentials
	}
	return user, nil
}
