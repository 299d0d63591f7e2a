package postgres

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/patitas-quito/patitas/internal/core/domain"
)

func TestMapErr(t *testing.T) {
	other := errors.New("boom")

	tests := []struct {
		name string
		in   error
		want error
	}{
		{"nil", nil, nil},
		{"no rows", pgx.ErrNoRows, domain.ErrNotFound},
		{"wrapped no rows", fmt.Errorf("scan: %w", pgx.ErrNoRows), domain.ErrNotFound},
		{"unique violation", &pgconn.PgError{Code: "23505", ConstraintName: "usuarios_email_key"}, domain.ErrConflict},
		{"other pg error", &pgconn.PgError{Code: "23514"}, nil},
		{"other", other, other},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := mapErr(tt.in)
			switch {
			case tt.in == nil:
				if got != nil {
					t.Errorf("expected nil, got %v", got)
				}
			case tt.want == nil:
				if errors.Is(got, domain.ErrNotFound) || errors.Is(got, domain.ErrConflict) {
					t.Errorf("expected passthrough, got %v", got)
				}
			default:
				if !errors.Is(got, tt.want) {
					t.Errorf("expected %v, got %v", tt.want, got)
				}
			}
		})
	}
}
