package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"wapoki-api/internal/domain/auth"
)

// UsersRepo resuelve credenciales para el login. Las altas de usuarios
// pasan por el CRUD genérico (con hash vía hook), acá solo se lee.
type UsersRepo struct {
	db *sqlx.DB
}

func NewUsersRepo(db *sqlx.DB) *UsersRepo {
	return &UsersRepo{db: db}
}

func (r *UsersRepo) FindByUsername(ctx context.Context, username string) (auth.User, error) {
	q := r.db.Rebind(`
		SELECT id_usuario, username, password, rol
		FROM usuarios
		WHERE username = ?`)

	var u auth.User
	row := r.db.QueryRowxContext(ctx, q, username)
	if err := row.Scan(&u.ID, &u.Username, &u.PasswordHash, &u.Rol); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return auth.User{}, auth.ErrUserNotFound
		}
		return auth.User{}, fmt.Errorf("find usuario: %w", err)
	}
	return u, nil
}
