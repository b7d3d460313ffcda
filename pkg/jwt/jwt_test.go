package jwt_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pkgjwt "github.com/jhoicas/puantaj-api/pkg/jwt"
)

const testSecret = "test-secret-key-for-unit-tests"

func TestGenerateAndParse(t *testing.T) {
	tok, err := pkgjwt.Generate(testSecret, "u-1", "STAFF", "puantaj-test", 60)
	require.NoError(t, err)

	userID, role, err := pkgjwt.Parse(testSecret, tok)
	require.NoError(t, err)
	assert.Equal(t, "u-1", userID)
	assert.Equal(t, "STAFF", role)
}

func TestParse_Expirado(t *testing.T) {
	tok, err := pkgjwt.Generate(testSecret, "u-1", "ADMIN", "puantaj-test", -1)
	require.NoError(t, err)

	_, _, err = pkgjwt.Parse(testSecret, tok)
	assert.Error(t, err)
}

func TestParse_SecretIncorrecto(t *testing.T) {
	tok, err := pkgjwt.Generate(testSecret, "u-1", "ADMIN", "puantaj-test", 60)
	require.NoError(t, err)

	_, _, err = pkgjwt.Parse("otro-secret", tok)
	assert.Error(t, err)
}

func TestGenerate_SecretVacio(t *testing.T) {
	_, err := pkgjwt.Generate("", "u-1", "ADMIN", "puantaj-test", 60)
	assert.Error(t, err)
}
