package auth

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRepo struct {
	users map[string]User
}

func (f *fakeRepo) FindByUsername(_ context.Context, username string) (User, error) {
	u, ok := f.users[username]
	if !ok {
		return User{}, ErrUserNotFound
	}
	return u, nil
}

func newFakeRepo(t *testing.T) *fakeRepo {
	t.Helper()
	hash, err := HashPassword("secreta123")
	require.NoError(t, err)
	return &fakeRepo{users: map[string]User{
		"tatiana": {ID: 1, Username: "tatiana", PasswordHash: hash, Rol: "admin"},
	}}
}

func TestLoginOK(t *testing.T) {
	svc := NewService(newFakeRepo(t))

	id, err := svc.Login(context.Background(), "tatiana", "secreta123")
	require.NoError(t, err)
	assert.Equal(t, Identity{ID: 1, Username: "tatiana", Rol: "admin"}, id)
}

func TestLoginMismaCondicionParaAmbosFallos(t *testing.T) {
	// Usuario inexistente y password errónea colapsan en el mismo error:
	// la respuesta no puede revelar cuál de los dos falló.
	svc := NewService(newFakeRepo(t))

	_, errWrongPass := svc.Login(context.Background(), "tatiana", "otra")
	_, errNoUser := svc.Login(context.Background(), "nadie", "secreta123")

	assert.ErrorIs(t, errWrongPass, ErrInvalidCredentials)
	assert.ErrorIs(t, errNoUser, ErrInvalidCredentials)
	assert.Equal(t, errWrongPass, errNoUser)
}

func TestLoginCredencialesVacias(t *testing.T) {
	svc := NewService(newFakeRepo(t))

	_, err := svc.Login(context.Background(), "", "secreta123")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = svc.Login(context.Background(), "tatiana", "")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestPasswordHookHashea(t *testing.T) {
	hook := PasswordHook()

	body := map[string]any{"password": "secreta123"}
	require.NoError(t, hook(body))

	hashed, ok := body["password"].(string)
	require.True(t, ok)
	assert.NotEqual(t, "secreta123", hashed)

	// El hash resultante verifica contra el password original.
	svc := NewService(&fakeRepo{users: map[string]User{
		"x": {ID: 2, Username: "x", PasswordHash: hashed, Rol: "vet"},
	}})
	_, err := svc.Login(context.Background(), "x", "secreta123")
	assert.NoError(t, err)
}

func TestPasswordHookDejaPasarAusente(t *testing.T) {
	// Sin password el hook no inventa nada: la validación de presencia
	// reporta el campo faltante después.
	hook := PasswordHook()

	body := map[string]any{"username": "tatiana"}
	require.NoError(t, hook(body))
	_, ok := body["password"]
	assert.False(t, ok)
}
