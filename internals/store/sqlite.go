package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	_ "github.com/mattn/go-sqlite3"

	"Hello-Servers/internals/models"
)

const createUsersTableSQL = `
	CREATE TABLE IF NOT EXISTS users (
		id INTEGER PRIMARY KEY,
		username TEXT NOT NULL UNIQUE,
		name TEXT NOT NULL,
		password TEXT NOT NULL
	);`

// SQLiteUserStore keeps the user table in a sqlite database. With the path
// ":memory:" nothing outlives the process.
type SQLiteUserStore struct {
	db *sql.DB
}

func NewSQLiteUserStore(path string) (*SQLiteUserStore, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	// every new connection to ":memory:" would see an empty database
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(createUsersTableSQL); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create users table: %w", err)
	}
	return &SQLiteUserStore{db: db}, nil
}

func (s *SQLiteUserStore) CreateUser(ctx context.Context, user *models.User) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO users (id, username, name, password)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(username) DO UPDATE SET id = excluded.id, name = excluded.name, password = excluded.password
	`, user.ID, user.Username, user.Name, user.Password)
	if err != nil {
		return fmt.Errorf("insert user %s: %w", user.Username, err)
	}
	return nil
}

func (s *SQLiteUserStore) GetUser(ctx context.Context, username string) (*models.User, error) {
	var user models.User
	err := s.db.QueryRowContext(ctx,
		"SELECT id, username, name, password FROM users WHERE username = ?", username,
	).Scan(&user.ID, &user.Username, &user.Name, &user.Password)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrUserNotFound
	} else if err != nil {
		return nil, fmt.Errorf("query user %s: %w", username, err)
	}
	return &user, nil
}

func (s *SQLiteUserStore) Close() error {
	return s.db.Close()
}
