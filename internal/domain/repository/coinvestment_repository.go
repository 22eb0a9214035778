package repository

import (
	"context"

	"github.com/jhoicas/dealflow-api/internal/domain/entity"
)

// CoInvestmentOfferRepository puerto de persistencia para ofertas de co-inversión.
type CoInvestmentOfferRepository interface {
	Create(ctx context.Context, offer *entity.CoInvestmentOffer) error
	GetByID(ctx context.Context, id string) (*entity.CoInvestmentOffer, error)
	// UpdateStatus condicionado al estado de prev; domain.ErrStaleState si cambió.
	UpdateStatus(ctx context.Context, prev, next *entity.CoInvestmentOffer) error
	// ListByOpportunity en orden de creación (created_at, id).
	ListByOpportunity(ctx context.Context, opportunityID string) ([]*entity.CoInvestmentOffer, error)
}

// OpportunityRepository puerto de persistencia para oportunidades de co-inversión.
type OpportunityRepository interface {
	Create(ctx context.Context, opp *entity.CoInvestmentOpportunity) error
	GetByID(ctx context.Context, id string) (*entity.CoInvestmentOpportunity, error)
	// UpdateState condicionado a etapa, aprobaciones y estado de prev.
	UpdateState(ctx context.Context, prev, next *entity.CoInvestmentOpportunity) error
}
