package jwt_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pkgjwt "github.com/jhoicas/dealflow-api/pkg/jwt"
)

func TestJWT_GenerarYParsear_ConRol(t *testing.T) {
	tok, err := pkgjwt.Generate("s3cret", "party-1", "startup_advisor", "dealflow", 5)
	require.NoError(t, err)

	party, role, err := pkgjwt.Parse("s3cret", "dealflow", tok)
	require.NoError(t, err)
	assert.Equal(t, "party-1", party)
	assert.Equal(t, "startup_advisor", role)
}

func TestJWT_TokensInvalidos_RetornaError(t *testing.T) {
	tok, err := pkgjwt.Generate("s3cret", "party-1", "investor", "dealflow", 5)
	require.NoError(t, err)

	_, _, err = pkgjwt.Parse("otro", "dealflow", tok)
	assert.Error(t, err, "firma incorrecta")

	_, _, err = pkgjwt.Parse("s3cret", "otro-emisor", tok)
	assert.Error(t, err, "emisor distinto")

	expired, err := pkgjwt.Generate("s3cret", "party-1", "investor", "dealflow", -1)
	require.NoError(t, err)
	_, _, err = pkgjwt.Parse("s3cret", "dealflow", expired)
	assert.Error(t, err, "token expirado")

	_, err = pkgjwt.Generate("", "party-1", "investor", "dealflow", 5)
	assert.Error(t, err)
}
