package postgres

import (
	"context"

	"github.com/patitas-quito/patitas/internal/core/domain"
)

// UserRepo implements ports.UserRepository with pgx.
type UserRepo struct {
	db *DB
}

// NewUserRepo creates a new UserRepo.
func NewUserRepo(db *DB) *UserRepo {
	return &UserRepo{db: db}
}

// Create inserts a user. A taken email maps to domain.ErrConflict.
func (r *UserRepo) Create(ctx context.Context, u *domain.User) error {
	err := r.db.Pool.QueryRow(ctx, `
		INSERT INTO usuarios (nombre, email, password, created_at)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`, u.Name, u.Email, u.PasswordHash, u.CreatedAt).Scan(&u.ID)
	return mapErr(err)
}

// GetByEmail returns a user, including the password hash.
func (r *UserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	var u domain.User
	err := r.db.Pool.QueryRow(ctx, `
		SELECT id, nombre, email, password, created_at
		FROM usuarios WHERE email = $1
	`, email).Scan(&u.ID, &u.Name, &u.Email, &u.PasswordHash, &u.CreatedAt)
	if err != nil {
		return nil, mapErr(err)
	}
	return &u, nil
}

// List returns every user ordered by creation time.
func (r *UserRepo) List(ctx context.Context) ([]domain.User, error) {
	rows, err := r.db.Pool.Query(ctx, `
		SELECT id, nombre, email, created_at
		FROM usuarios ORDER BY created_at, id
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []domain.User
	for rows.Next() {
		var u domain.User
		if err := rows.Scan(&u.ID, &u.Name, &u.Email, &u.CreatedAt); err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	return users, rows.Err()
}
