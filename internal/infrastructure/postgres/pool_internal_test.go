package postgres

import (
	"context"
	"errors"
	"net"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/dealflow-api/internal/domain"
	"github.com/jhoicas/dealflow-api/pkg/config"
)

// fakeResolver responde según el resolver usado: nil es el del sistema.
func fakeResolver(system, fallback []net.IP) *ipv4Resolver {
	r := &ipv4Resolver{fallback: &net.Resolver{}}
	r.lookup = func(_ context.Context, res *net.Resolver, _ string) ([]net.IP, error) {
		if res == nil {
			if len(system) == 0 {
				return nil, errors.New("sin registros A")
			}
			return system, nil
		}
		return fallback, nil
	}
	return r
}

// ──────────────────────────────────────────────────────────────────────────────
// Configuración del pool
// ──────────────────────────────────────────────────────────────────────────────

func TestBuildPoolConfig_LimitesSinForzarIPv4(t *testing.T) {
	cfg := config.DBConfig{DatabaseURL: "postgres://u:p@db.internal:5432/dealflow", MaxConns: 10, MinConns: 1}
	pc, err := buildPoolConfig(cfg, fakeResolver([]net.IP{net.ParseIP("10.0.0.7")}, nil))
	require.NoError(t, err)
	assert.EqualValues(t, 10, pc.MaxConns)
	assert.EqualValues(t, 1, pc.MinConns)
	assert.Equal(t, "db.internal", pc.ConnConfig.Host, "sin ForceIPv4 el host no se reescribe")
	assert.NotNil(t, pc.AfterConnect, "registra decimal en cada conexión")
}

func TestBuildPoolConfig_ValoresPorDefecto(t *testing.T) {
	pc, err := buildPoolConfig(config.DBConfig{DatabaseURL: "postgres://u@localhost/dealflow"}, fakeResolver(nil, nil))
	require.NoError(t, err)
	assert.EqualValues(t, defaultMaxConns, pc.MaxConns)
	assert.EqualValues(t, defaultMinConns, pc.MinConns)
}

func TestBuildPoolConfig_ForzarIPv4ReescribeHost(t *testing.T) {
	cfg := config.DBConfig{DatabaseURL: "postgres://u:p@db.internal/dealflow", ForceIPv4: true}
	pc, err := buildPoolConfig(cfg, fakeResolver([]net.IP{net.ParseIP("10.0.0.7")}, nil))
	require.NoError(t, err)
	assert.Equal(t, "10.0.0.7", pc.ConnConfig.Host)
	assert.EqualValues(t, 5432, pc.ConnConfig.Port)
}

func TestIPv4Resolver_UsaResolverAlterno(t *testing.T) {
	r := fakeResolver(nil, []net.IP{net.ParseIP("2001:db8::1"), net.ParseIP("192.0.2.4")})
	ip, err := r.resolve(context.Background(), "db.internal")
	require.NoError(t, err)
	assert.Equal(t, "192.0.2.4", ip)

	_, err = r.resolve(context.Background(), "2001:db8::2")
	assert.Error(t, err, "una IPv6 literal no se puede forzar a IPv4")

	assert.Equal(t, "postgres://u@db.internal/x", fakeResolver(nil, nil).rewriteDSN("postgres://u@db.internal/x"),
		"sin IPv4 el DSN queda igual")
}

// ──────────────────────────────────────────────────────────────────────────────
// Traducción de errores de escritura
// ──────────────────────────────────────────────────────────────────────────────

func TestWriteError_MapeaSQLState(t *testing.T) {
	tests := []struct {
		code string
		want error
	}{
		{sqlUniqueViolation, domain.ErrDuplicate},
		{sqlForeignKeyViolation, domain.ErrInvalidReference},
		{sqlCheckViolation, domain.ErrInvalidInput},
	}
	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			err := writeError("insert offer", &pgconn.PgError{Code: tt.code, ConstraintName: "offers_x"})
			assert.ErrorIs(t, err, tt.want)
		})
	}

	plain := errors.New("conexión cerrada")
	err := writeError("insert offer", plain)
	assert.ErrorIs(t, err, plain)
	assert.NotErrorIs(t, err, domain.ErrDuplicate)
	assert.NoError(t, writeError("insert offer", nil))
}
