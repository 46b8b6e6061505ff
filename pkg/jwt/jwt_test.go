package jwt_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pkgjwt "github.com/jhoicas/Turnos-api/pkg/jwt"
)

const (
	testSecret = "test-secret-key-for-unit-tests"
	testIssuer = "turnos-api-test"
)

func TestJWT_GenerateAndParse_ConPuestos(t *testing.T) {
	in := pkgjwt.Identity{
		UserID:      "00000000-0000-0000-0000-000000000001",
		Email:       "ana@estacion.es",
		Role:        "EMPLOYEE",
		PositionIDs: []string{"pista", "tienda"},
	}
	tok, err := pkgjwt.Generate(testSecret, in, testIssuer, 60)
	require.NoError(t, err)
	require.NotEmpty(t, tok)

	out, err := pkgjwt.Parse(testSecret, tok)
	require.NoError(t, err)
	assert.Equal(t, in, *out)
}

func TestJWT_SinPuestos_DevuelveListaVacia(t *testing.T) {
	tok, err := pkgjwt.Generate(testSecret, pkgjwt.Identity{UserID: "u1", Role: "ADMIN"}, testIssuer, 60)
	require.NoError(t, err)

	out, err := pkgjwt.Parse(testSecret, tok)
	require.NoError(t, err)
	assert.NotNil(t, out.PositionIDs)
	assert.Empty(t, out.PositionIDs)
}

func TestJWT_TokenExpirado_RetornaError(t *testing.T) {
	tok, err := pkgjwt.Generate(testSecret, pkgjwt.Identity{UserID: "u1", Role: "ADMIN"}, testIssuer, -1)
	require.NoError(t, err)

	_, err = pkgjwt.Parse(testSecret, tok)
	assert.Error(t, err, "token expirado debe retornar error")
}

func TestJWT_SecretIncorrecto_RetornaError(t *testing.T) {
	tok, err := pkgjwt.Generate(testSecret, pkgjwt.Identity{UserID: "u1", Role: "ADMIN"}, testIssuer, 60)
	require.NoError(t, err)

	_, err = pkgjwt.Parse("otro-secret-completamente-distinto", tok)
	assert.Error(t, err, "secret incorrecto debe invalidar el token")
}

func TestJWT_SecretVacio_RetornaError(t *testing.T) {
	_, err := pkgjwt.Generate("", pkgjwt.Identity{UserID: "u1"}, testIssuer, 60)
	assert.Error(t, err)

	_, err = pkgjwt.Parse("", "x.y.z")
	assert.Error(t, err)
}
