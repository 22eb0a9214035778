package repository

import (
	"context"

	"github.com/jhoicas/dealflow-api/internal/domain/entity"
)

// StartupRepository lectura de startups (el CRUD de perfiles vive fuera de este servicio).
type StartupRepository interface {
	GetByID(ctx context.Context, id string) (*entity.Startup, error)
	// ListFundraising startups en ronda, en orden estable de creación.
	ListFundraising(ctx context.Context) ([]entity.Startup, error)
}

// PlatformRepository lectura de entidades nativas de la plataforma.
type PlatformRepository interface {
	// ListLinkedToAdvisor entidades ya asociadas al asesor (sus inversionistas/startups en plataforma).
	ListLinkedToAdvisor(ctx context.Context, advisorID string) ([]entity.PlatformEntity, error)
	// FindByEmails entidades de plataforma con alguno de los emails (ya normalizados).
	FindByEmails(ctx context.Context, emails []string) ([]entity.PlatformEntity, error)
}
