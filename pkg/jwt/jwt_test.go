package jwt_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pkgjwt "github.com/jhoicas/bodega/pkg/jwt"
)

const (
	testSecret = "test-secret-key-for-unit-tests"
	testUserID = "00000000-0000-0000-0000-000000000001"
)

func TestGenerateAndParse_ConRoles(t *testing.T) {
	tok, err := pkgjwt.Generate(testSecret, testUserID, "bodeguero", []string{"ROLE_USER", "ROLE_ADMIN"}, "bodega-test", 60)
	require.NoError(t, err)
	require.NotEmpty(t, tok)

	claims, err := pkgjwt.Parse(testSecret, tok)
	require.NoError(t, err)

	assert.Equal(t, testUserID, claims.UserID)
	assert.Equal(t, testUserID, claims.Subject)
	assert.Equal(t, "bodeguero", claims.Username)
	assert.Equal(t, []string{"ROLE_USER", "ROLE_ADMIN"}, claims.Roles)
	assert.Equal(t, "bodega-test", claims.Issuer)
}

func TestParse_TokenExpirado(t *testing.T) {
	tok, err := pkgjwt.Generate(testSecret, testUserID, "u", []string{"ROLE_USER"}, "bodega-test", -1)
	require.NoError(t, err)

	_, err = pkgjwt.Parse(testSecret, tok)
	assert.Error(t, err, "token expirado debe retornar error")
}

func TestParse_SecretIncorrecto(t *testing.T) {
	tok, err := pkgjwt.Generate(testSecret, testUserID, "u", []string{"ROLE_USER"}, "bodega-test", 60)
	require.NoError(t, err)

	_, err = pkgjwt.Parse("otro-secret-completamente-distinto", tok)
	assert.Error(t, err)
}

func TestGenerate_SecretVacio(t *testing.T) {
	_, err := pkgjwt.Generate("", testUserID, "u", nil, "bodega-test", 60)
	assert.Error(t, err)

	_, err = pkgjwt.Parse("", "cualquier.cosa.aqui")
	assert.Error(t, err)
}
