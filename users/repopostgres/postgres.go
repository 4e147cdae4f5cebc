package userrepopostgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jrsteele09/go-storefront-api/internal/dbx"
	"github.com/jrsteele09/go-storefront-api/users"
)

var _ users.UserRepo = (*PostgresUserRepo)(nil)

const userColumns = `id, username, email, password_hash, role, created_by, updated_by, created_at, updated_at`

type PostgresUserRepo struct {
	db dbx.DBTX
}

func NewPostgresUserRepo(db dbx.DBTX) *PostgresUserRepo {
	return &PostgresUserRepo{db: db}
}

func (r *PostgresUserRepo) Create(ctx context.Context, user *users.User) error {
	if user.ID == "" {
		user.ID = uuid.New().String()
	}

	query :=
		`INSERT INTO users (` + userColumns + `)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`

	_, err := r.db.ExecContext(ctx, query,
		user.ID, user.Username, user.Email, user.PasswordHash, string(user.Role),
		user.CreatedBy, user.UpdatedBy, user.CreatedAt, user.UpdatedAt)
	if err != nil {
		if dbx.IsUniqueViolation(err) {
			return users.DuplicateUserErr
		}
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func (r *PostgresUserRepo) GetByID(ctx context.Context, id string) (*users.User, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, users.InvalidIDErr
	}
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`
	return r.scanOne(r.db.QueryRowContext(ctx, query, id))
}

func (r *PostgresUserRepo) GetByEmail(ctx context.Context, email string) (*users.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE email = $1`
	return r.scanOne(r.db.QueryRowContext(ctx, query, email))
}

func (r *PostgresUserRepo) Update(ctx context.Context, user *users.User) error {
	if _, err := uuid.Parse(user.ID); err != nil {
		return users.InvalidIDErr
	}
	query :=
		`UPDATE users
		 SET username = $2, email = $3, password_hash = $4, role = $5, updated_by = $6, updated_at = $7
		 WHERE id = $1`

	res, err := r.db.ExecContext(ctx, query,
		user.ID, user.Username, user.Email, user.PasswordHash, string(user.Role),
		user.UpdatedBy, user.UpdatedAt)
	if err != nil {
		if dbx.IsUniqueViolation(err) {
			return users.DuplicateUserErr
		}
		return fmt.Errorf("db error: %w", err)
	}
	return requireAffected(res)
}

func (r *PostgresUserRepo) Delete(ctx context.Context, id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return users.InvalidIDErr
	}
	res, err := r.db.ExecContext(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return requireAffected(res)
}

func (r *PostgresUserRepo) scanOne(row *sql.Row) (*users.User, error) {
	var (
		u    users.User
		role string
	)
	err := row.Scan(&u.ID, &u.Username, &u.Email, &u.PasswordHash, &role,
		&u.CreatedBy, &u.UpdatedBy, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, users.UserNotFoundErr
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	u.Role = users.Role(role)
	return &u, nil
}

func requireAffected(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	if n == 0 {
		return users.UserNotFoundErr
	}
	return nil
}
