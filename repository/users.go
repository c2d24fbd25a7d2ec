package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/lightbnb/lightbnb/data"
)

type users interface {
	GetUserWithEmail(email string) (*data.User, error)
	GetUserWithID(ID int64) (*data.User, error)
	AddUser(user *data.User) error
}

// GetUserWithEmail retrieves a user record by its email.
func (r *repository) GetUserWithEmail(email string) (*data.User, error) {
	query := `
		SELECT id, name, email, password
		FROM users
		WHERE email = $1`
	return r.getUser(query, email)
}

// GetUserWithID retrieves a user record by its ID.
func (r *repository) GetUserWithID(ID int64) (*data.User, error) {
	if ID < 1 {
		return nil, ErrRecordNotFound
	}
	query := `
		SELECT id, name, email, password
		FROM users
		WHERE id = $1`
	return r.getUser(query, ID)
}

func (r *repository) getUser(query string, arg any) (*data.User, error) {
	var user data.User
	ctx, cancel := context.WithTimeout(context.Background(), queryTimeout)
	defer cancel()
	err := r.db.QueryRowContext(ctx, query, arg).Scan(
		&user.ID,
		&user.Name,
		&user.Email,
		&user.Password.Hash,
	)
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			return nil, ErrRecordNotFound
		default:
			return nil, err
		}
	}
	return &user, nil
}

// AddUser inserts a new user record. The ID is assigned by the database.
func (r *repository) AddUser(user *data.User) error {
	query := `
		INSERT INTO users (name, email, password)
		VALUES ($1, $2, $3)
		RETURNING id`
	args := []any{user.Name, user.Email, string(user.Password.Hash)}
	ctx, cancel := context.WithTimeout(context.Background(), queryTimeout)
	defer cancel()
	err := r.db.QueryRowContext(ctx, query, args...).Scan(&user.ID)
	if err != nil {
		switch {
		case isUniqueViolation(err):
			return ErrDuplicateRecord
		default:
			return err
		}
	}
	return nil
}
