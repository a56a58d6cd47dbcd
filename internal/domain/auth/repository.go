package auth

import (
	"context"
	"errors"
)

// ErrUserNotFound lo devuelve el repositorio cuando el username no existe.
// El service lo colapsa con password errónea en una sola condición.
var ErrUserNotFound = errors.New("usuario no encontrado")

type Repository interface {
	FindByUsername(ctx context.Context, username string) (User, error)
}
