package postgres

import (
	"context"
	"fmt"
	"net"
	"net/url"
	"time"

	pgxdecimal "github.com/jackc/pgx-shopspring-decimal"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/dealflow-api/pkg/config"
)

const (
	defaultMaxConns = 25
	defaultMinConns = 2
)

// NewPool abre el pool del almacén de tratos y verifica la conexión.
func NewPool(ctx context.Context, cfg config.DBConfig) (*pgxpool.Pool, error) {
	poolConfig, err := buildPoolConfig(cfg, newIPv4Resolver(cfg.FallbackDNS))
	if err != nil {
		return nil, err
	}
	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("crear pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping DB: %w", err)
	}
	return pool, nil
}

// buildPoolConfig arma la configuración sin conectar. Con ForceIPv4 el DSN y cada dial usan la IPv4 del host.
func buildPoolConfig(cfg config.DBConfig, res *ipv4Resolver) (*pgxpool.Config, error) {
	dsn := cfg.ConnectionString()
	if cfg.ForceIPv4 {
		dsn = res.rewriteDSN(dsn)
	}
	poolConfig, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("parse DSN: %w", err)
	}
	if cfg.ForceIPv4 {
		poolConfig.ConnConfig.DialFunc = res.dial
	}

	poolConfig.MaxConns = int32(orDefault(cfg.MaxConns, defaultMaxConns))
	poolConfig.MinConns = int32(orDefault(cfg.MinConns, defaultMinConns))
	poolConfig.MaxConnLifetime = time.Hour
	poolConfig.MaxConnIdleTime = 30 * time.Minute
	poolConfig.HealthCheckPeriod = time.Minute

	// Montos y porcentajes de participación son NUMERIC -> shopspring/decimal en todas las conexiones.
	poolConfig.AfterConnect = func(ctx context.Context, conn *pgx.Conn) error {
		pgxdecimal.Register(conn.TypeMap())
		return nil
	}
	return poolConfig, nil
}

func orDefault(n, def int) int {
	if n <= 0 {
		return def
	}
	return n
}

// ipv4Resolver resuelve hosts a IPv4; si el DNS del sistema solo devuelve AAAA prueba con el alterno.
type ipv4Resolver struct {
	fallback *net.Resolver
	lookup   func(ctx context.Context, r *net.Resolver, host string) ([]net.IP, error)
}

func newIPv4Resolver(fallbackDNS string) *ipv4Resolver {
	r := &ipv4Resolver{lookup: lookupIP4}
	if fallbackDNS != "" {
		r.fallback = &net.Resolver{
			PreferGo: true,
			Dial: func(ctx context.Context, _, _ string) (net.Conn, error) {
				var d net.Dialer
				return d.DialContext(ctx, "udp", fallbackDNS)
			},
		}
	}
	return r
}

func lookupIP4(ctx context.Context, r *net.Resolver, host string) ([]net.IP, error) {
	if r == nil {
		r = net.DefaultResolver
	}
	return r.LookupIP(ctx, "ip4", host)
}

func (r *ipv4Resolver) resolve(ctx context.Context, host string) (string, error) {
	if ip := net.ParseIP(host); ip != nil {
		if ip.To4() != nil {
			return host, nil
		}
		return "", fmt.Errorf("%s es IPv6", host)
	}
	ips, err := r.lookup(ctx, nil, host)
	if (err != nil || len(ips) == 0) && r.fallback != nil {
		ips, err = r.lookup(ctx, r.fallback, host)
	}
	if err != nil {
		return "", err
	}
	for _, ip := range ips {
		if ip.To4() != nil {
			return ip.String(), nil
		}
	}
	return "", fmt.Errorf("%s sin IPv4", host)
}

// dial conecta por tcp4; sin IPv4 disponible cae al dial normal.
func (r *ipv4Resolver) dial(ctx context.Context, network, addr string) (net.Conn, error) {
	var d net.Dialer
	host, port, err := net.SplitHostPort(addr)
	if err != nil {
		return nil, err
	}
	ipv4, err := r.resolve(ctx, host)
	if err != nil {
		return d.DialContext(ctx, network, addr)
	}
	return d.DialContext(ctx, "tcp4", net.JoinHostPort(ipv4, port))
}

// rewriteDSN reemplaza el host de un DSN en forma URL por su IPv4; si no puede, lo deja igual.
func (r *ipv4Resolver) rewriteDSN(dsn string) string {
	u, err := url.Parse(dsn)
	if err != nil || u.Host == "" {
		return dsn
	}
	port := u.Port()
	if port == "" {
		port = "5432"
	}
	ipv4, err := r.resolve(context.Background(), u.Hostname())
	if err != nil {
		return dsn
	}
	u.Host = net.JoinHostPort(ipv4, port)
	return u.String()
}
