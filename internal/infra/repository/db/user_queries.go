package db

import (
	"context"
)

type CreateUserParams struct {
	Email        string
	PasswordHash string
	FirstName    string
	LastName     string
}

// CreateUser provisions an identity row. Registration and login live in the
// external auth center; this exists for provisioning tools and tests.
func (q *Queries) CreateUser(ctx context.Context, arg CreateUserParams) (int64, error) {
	var id int64
	err := q.db.QueryRow(ctx,
		`INSERT INTO users (email, password, first_name, last_name)
		 VALUES ($1, $2, $3, $4) RETURNING id`,
		arg.Email, arg.PasswordHash, arg.FirstName, arg.LastName).Scan(&id)
	return id, err
}
