package auth

import (
	"context"
	"errors"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

// ErrInvalidCredentials cubre username inexistente Y password errónea con
// la misma condición: la respuesta no revela cuál de los dos falló.
var ErrInvalidCredentials = errors.New("credenciales inválidas")

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Login compara credenciales contra el hash almacenado y devuelve la
// proyección mínima de identidad. Cero coincidencias es "no autorizado",
// nunca "no encontrado".
func (s *Service) Login(ctx context.Context, username, password string) (Identity, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return Identity{}, ErrInvalidCredentials
	}

	u, err := s.repo.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return Identity{}, ErrInvalidCredentials
		}
		return Identity{}, err
	}

	if bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) != nil {
		return Identity{}, ErrInvalidCredentials
	}

	return Identity{ID: u.ID, Username: u.Username, Rol: u.Rol}, nil
}

// HashPassword genera el hash de almacenamiento (costo default de bcrypt).
func HashPassword(plain string) (string, error) {
	h, err := bcrypt.GenerateFromPassword([]byte(plain), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(h), nil
}

// PasswordHook hashea body["password"] antes de que el CRUD genérico valide
// y ligue una escritura de usuarios. La validación de presencia sigue
// corriendo después, sobre el hash ya presente.
func PasswordHook() func(body map[string]any) error {
	return func(body map[string]any) error {
		pw, ok := body["password"].(string)
		if !ok || strings.TrimSpace(pw) == "" {
			// Que la validación reporte el campo faltante.
			return nil
		}
		h, err := HashPassword(pw)
		if err != nil {
			return err
		}
		body["password"] = h
		return nil
	}
}
