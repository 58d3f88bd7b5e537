// Package store keeps the in-process state behind the login flows: the demo
// user table and the session map.
package store

import (
	"context"
	"errors"
	"fmt"

	"Hello-Servers/internals/auth"
	"Hello-Servers/internals/models"
)

var (
	ErrUserNotFound    = errors.New("user not found")
	ErrSessionNotFound = errors.New("session not found")
)

// UserStore looks users up by username. Implementations must be safe for
// concurrent use.
type UserStore interface {
	GetUser(ctx context.Context, username string) (*models.User, error)
	CreateUser(ctx context.Context, user *models.User) error
}

// Seed hashes each account's password and inserts it into users.
func Seed(ctx context.Context, users UserStore, accounts []models.Account, cost int) error {
	for _, acct := range accounts {
		hash, err := auth.HashPassword(acct.Password, cost)
		if err != nil {
			return fmt.Errorf("seed %s: %w", acct.Username, err)
		}
		user := &models.User{
			ID:       acct.ID,
			Username: acct.Username,
			Name:     acct.Name,
			Password: hash,
		}
		if err := users.CreateUser(ctx, user); err != nil {
			return fmt.Errorf("seed %s: %w", acct.Username, err)
		}
	}
	return nil
}

// Authenticate resolves username and checks password against its hash.
// Unknown users and wrong passwords both return ErrUserNotFound.
func Authenticate(ctx context.Context, users UserStore, username, password string) (*models.User, error) {
	user, err := users.GetUser(ctx, username)
	if err != nil {
		return nil, err
	}
	ok, err := auth.CheckPassword(user.Password, password)
	if err != nil {
		return nil, fmt.Errorf("check password for %s: %w", username, err)
	}
	if !ok {
		return nil, ErrUserNotFound
	}
	return user, nil
}
