package services

import (
	"testing"
	"time"

	"safra-backend/entity"
	"safra-backend/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAuthService(t *testing.T) (*AuthService, *repository.UserRepository) {
	t.Helper()
	repo := repository.NewUserRepository(testDB(t))
	return NewAuthService(repo, NewTableVerifier(repo), "test-secret", time.Hour), repo
}

func TestRegisterAndLogin(t *testing.T) {
	svc, _ := newAuthService(t)

	user, err := svc.Register("Roberto@Example.com", "s3nh4forte", "Roberto Silva")
	require.NoError(t, err)
	assert.Equal(t, "roberto@example.com", user.Email, "email normalized")
	assert.Equal(t, entity.RoleSeller, user.Role)
	assert.NotEqual(t, "s3nh4forte", user.Password, "password stored hashed")

	token, got, err := svc.Login("roberto@example.com", "s3nh4forte")
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.Equal(t, user.ID, got.ID)

	_, err = svc.Register("roberto@example.com", "outra", "Duplicado")
	assert.Error(t, err)
}

func TestLoginFailuresAreGeneric(t *testing.T) {
	svc, _ := newAuthService(t)

	_, err := svc.Register("admin@example.com", "s3nh4forte", "Administrador")
	require.NoError(t, err)

	// wrong password and unknown account answer identically
	_, _, wrongPass := svc.Login("admin@example.com", "errada")
	_, _, noUser := svc.Login("ghost@example.com", "errada")

	assert.ErrorIs(t, wrongPass, ErrInvalidCredentials)
	assert.ErrorIs(t, noUser, ErrInvalidCredentials)
	assert.Equal(t, wrongPass.Error(), noUser.Error())
}
