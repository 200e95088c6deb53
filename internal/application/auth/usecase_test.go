package auth_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/bodega/internal/application/auth"
	"github.com/jhoicas/bodega/internal/application/dto"
	"github.com/jhoicas/bodega/internal/domain"
	"github.com/jhoicas/bodega/internal/domain/entity"
	"github.com/jhoicas/bodega/internal/infrastructure/memory"
	pkgjwt "github.com/jhoicas/bodega/pkg/jwt"
)

const testSecret = "auth-usecase-test-secret"

func seedUser(t *testing.T, store *memory.Store, username, password, roles string, enabled bool) *entity.User {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	u := &entity.User{
		ID: "u-" + username, Username: username, PasswordHash: string(hash),
		Roles: roles, Enabled: enabled, CreatedAt: time.Now(), UpdatedAt: time.Now(),
	}
	require.NoError(t, store.Users().Create(context.Background(), u))
	return u
}

func newAuth(store *memory.Store) *auth.AuthUseCase {
	return auth.NewAuthUseCase(store.Users(), auth.JWTConfig{Secret: testSecret, ExpMinutes: 30, Issuer: "bodega-test"})
}

func TestLogin_TokenConRoles(t *testing.T) {
	store := memory.NewStore()
	u := seedUser(t, store, "admin", "admin-pass", "ROLE_USER, ROLE_ADMIN", true)

	resp, err := newAuth(store).Login(context.Background(), dto.LoginRequest{Username: "admin", Password: "admin-pass"})
	require.NoError(t, err)
	assert.Equal(t, "admin", resp.User.Username)

	claims, err := pkgjwt.Parse(testSecret, resp.Token)
	require.NoError(t, err)
	assert.Equal(t, u.ID, claims.UserID)
	assert.Equal(t, []string{"ROLE_USER", "ROLE_ADMIN"}, claims.Roles)
}

func TestLogin_CredencialesInvalidas(t *testing.T) {
	store := memory.NewStore()
	seedUser(t, store, "ana", "clave-correcta", "ROLE_USER", true)
	uc := newAuth(store)

	_, err := uc.Login(context.Background(), dto.LoginRequest{Username: "ana", Password: "otra"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)

	_, err = uc.Login(context.Background(), dto.LoginRequest{Username: "nadie", Password: "x"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized, "usuario inexistente no debe distinguirse de password incorrecto")
}

func TestLogin_UsuarioDeshabilitado(t *testing.T) {
	store := memory.NewStore()
	seedUser(t, store, "baja", "clave-123", "ROLE_USER", false)

	_, err := newAuth(store).Login(context.Background(), dto.LoginRequest{Username: "baja", Password: "clave-123"})
	assert.ErrorIs(t, err, domain.ErrUserDisabled)
}

func TestProfile(t *testing.T) {
	store := memory.NewStore()
	u := seedUser(t, store, "luis", "clave-123", "ROLE_USER", true)

	p, err := newAuth(store).Profile(context.Background(), u.ID)
	require.NoError(t, err)
	assert.Equal(t, "luis", p.Username)
	assert.Equal(t, []string{"ROLE_USER"}, p.Authorities)

	_, err = newAuth(store).Profile(context.Background(), "no-existe")
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}
