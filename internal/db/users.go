package db

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
)

// ErrUserNotFound is returned when no user row matches the given email.
var ErrUserNotFound = errors.New("db: user not found")

// User is one account row. Container is the user's blob/vector namespace.
type User struct {
	ID           int64     `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Container    string    `json:"container"`
	CreatedAt    time.Time `json:"created_at"`
}

// CreateUserParams contains the fields needed to create a user row.
type CreateUserParams struct {
	Email        string
	PasswordHash string
	Container    string
}

// CreateUser inserts a new account row. The email is stored lowercased.
func (q *Queries) CreateUser(ctx context.Context, params CreateUserParams) (User, error) {
	var user User
	err := q.conn.QueryRow(
		ctx,
		`INSERT INTO users (email, password_hash, container)
		 VALUES ($1, $2, $3)
		 RETURNING id, email, password_hash, container, created_at`,
		strings.ToLower(params.Email),
		params.PasswordHash,
		params.Container,
	).Scan(&user.ID, &user.Email, &user.PasswordHash, &user.Container, &user.CreatedAt)
	if err != nil {
		return User{}, err
	}

	return user, nil
}

// GetUserByEmail looks up an account by email, case-insensitively.
func (q *Queries) GetUserByEmail(ctx context.Context, email string) (User, error) {
	var user User
	err := q.conn.QueryRow(
		ctx,
		`SELECT id, email, password_hash, container, created_at
		 FROM users
		 WHERE email = $1`,
		strings.ToLower(email),
	).Scan(&user.ID, &user.Email, &user.PasswordHash, &user.Container, &user.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return User{}, ErrUserNotFound
	}
	if err != nil {
		return User{}, err
	}

	return user, nil
}

// DeleteUser removes an account row. Chat rows cascade via the schema.
func (q *Queries) DeleteUser(ctx context.Context, email string) error {
	_, err := q.conn.Exec(
		ctx,
		`DELETE FROM users WHERE email = $1`,
		strings.ToLower(email),
	)
	return err
}
