package postgres

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"wapoki-api/internal/domain/auth"
	"wapoki-api/internal/testdb"
)

func TestFindByUsername(t *testing.T) {
	db := testdb.New(t)
	_, err := db.Exec(`
		INSERT INTO usuarios (username, password, nombre, apellido, rol)
		VALUES ('tatiana', 'hash', 'Tatiana', 'López', 'admin')`)
	require.NoError(t, err)

	repo := NewUsersRepo(db)
	u, err := repo.FindByUsername(context.Background(), "tatiana")
	require.NoError(t, err)
	assert.Equal(t, int64(1), u.ID)
	assert.Equal(t, "hash", u.PasswordHash)
	assert.Equal(t, "admin", u.Rol)
}

func TestFindByUsernameInexistente(t *testing.T) {
	db := testdb.New(t)

	repo := NewUsersRepo(db)
	_, err := repo.FindByUsername(context.Background(), "nadie")
	assert.ErrorIs(t, err, auth.ErrUserNotFound)
}
