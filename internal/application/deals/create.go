package deals

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/dealflow-api/internal/application/dto"
	"github.com/jhoicas/dealflow-api/internal/domain"
	"github.com/jhoicas/dealflow-api/internal/domain/approval"
	"github.com/jhoicas/dealflow-api/internal/domain/entity"
)

var hundred = decimal.NewFromInt(100)

func validEquity(e decimal.Decimal) bool {
	return e.IsPositive() && e.LessThanOrEqual(hundred)
}

// CreateOffer registra una oferta directa. La crea el inversionista o su asesor (que aprueba su propia pista).
// La etapa inicial sale de las pistas requeridas: sin asesor del inversionista arranca en etapa 2.
func (s *Service) CreateOffer(ctx context.Context, actor entity.Actor, in dto.CreateOfferRequest) (*dto.OfferResponse, error) {
	if actor.PartyID == "" {
		return nil, fmt.Errorf("%w: identidad del llamador vacía", domain.ErrInvalidReference)
	}
	if actor.Role != entity.RoleInvestor && actor.Role != entity.RoleInvestorAdvisor {
		return nil, fmt.Errorf("%w: solo inversionistas o sus asesores crean ofertas", domain.ErrUnauthorizedAction)
	}
	if strings.TrimSpace(in.InvestorEmail) == "" || !in.Amount.IsPositive() || !validEquity(in.EquityPercentage) {
		return nil, domain.ErrInvalidInput
	}
	if in.StartupID == "" {
		return nil, fmt.Errorf("%w: startup vacía", domain.ErrInvalidReference)
	}
	st, err := s.startups.GetByID(ctx, in.StartupID)
	if err != nil {
		return nil, err
	}
	if st == nil {
		return nil, fmt.Errorf("%w: startup %s", domain.ErrInvalidReference, in.StartupID)
	}

	now := s.now()
	o := &entity.Offer{
		ID:                    uuid.New().String(),
		StartupID:             st.ID,
		InvestorEmail:         strings.TrimSpace(in.InvestorEmail),
		InvestorAdvisorID:     in.InvestorAdvisorID,
		StartupAdvisorID:      in.StartupAdvisorID,
		Amount:                in.Amount,
		EquityPercentage:      in.EquityPercentage,
		Currency:              in.Currency,
		InvestorAdvisorStatus: entity.ApprovalNotRequired,
		StartupAdvisorStatus:  entity.ApprovalNotRequired,
		CreatedAt:             now,
		UpdatedAt:             now,
	}
	if o.Currency == "" {
		o.Currency = "USD"
	}
	switch actor.Role {
	case entity.RoleInvestor:
		o.InvestorID = actor.PartyID
		if in.RequiresInvestorAdvisor || in.InvestorAdvisorID != "" {
			o.InvestorAdvisorStatus = entity.ApprovalPending
		}
	case entity.RoleInvestorAdvisor:
		if strings.TrimSpace(in.InvestorID) == "" {
			return nil, fmt.Errorf("%w: el asesor debe indicar el inversionista", domain.ErrInvalidInput)
		}
		o.InvestorID = strings.TrimSpace(in.InvestorID)
		o.InvestorAdvisorID = actor.PartyID
		o.InvestorAdvisorStatus = entity.ApprovalApproved
	}
	if in.RequiresStartupAdvisor || in.StartupAdvisorID != "" {
		o.StartupAdvisorStatus = entity.ApprovalPending
	}
	o.Stage = approval.InitialStage(o.InvestorAdvisorStatus, o.StartupAdvisorStatus)

	if err := s.offers.Create(ctx, o); err != nil {
		return nil, err
	}
	s.log.Info().Str("offer_id", o.ID).Str("startup_id", o.StartupID).Int("stage", o.Stage).Msg("oferta creada")
	return toOfferResponse(o), nil
}

// CreateOpportunity abre una oportunidad de co-inversión liderada por el inversionista que llama.
func (s *Service) CreateOpportunity(ctx context.Context, actor entity.Actor, in dto.CreateOpportunityRequest) (*dto.OpportunityResponse, error) {
	if actor.PartyID == "" {
		return nil, fmt.Errorf("%w: identidad del llamador vacía", domain.ErrInvalidReference)
	}
	if actor.Role != entity.RoleInvestor {
		return nil, fmt.Errorf("%w: solo el inversionista líder abre oportunidades", domain.ErrUnauthorizedAction)
	}
	if !in.InvestmentAmount.IsPositive() || !in.MinimumCoInvestment.IsPositive() ||
		in.MinimumCoInvestment.GreaterThan(in.MaximumCoInvestment) ||
		in.MaximumCoInvestment.GreaterThan(in.InvestmentAmount) ||
		!validEquity(in.EquityPercentage) {
		return nil, domain.ErrInvalidInput
	}
	if in.StartupID == "" {
		return nil, fmt.Errorf("%w: startup vacía", domain.ErrInvalidReference)
	}
	st, err := s.startups.GetByID(ctx, in.StartupID)
	if err != nil {
		return nil, err
	}
	if st == nil {
		return nil, fmt.Errorf("%w: startup %s", domain.ErrInvalidReference, in.StartupID)
	}

	now := s.now()
	opp := &entity.CoInvestmentOpportunity{
		ID:                        uuid.New().String(),
		StartupID:                 st.ID,
		LeadInvestorID:            actor.PartyID,
		LeadInvestorAdvisorID:     in.LeadInvestorAdvisorID,
		StartupAdvisorID:          in.StartupAdvisorID,
		InvestmentAmount:          in.InvestmentAmount,
		MinimumCoInvestment:       in.MinimumCoInvestment,
		MaximumCoInvestment:       in.MaximumCoInvestment,
		EquityPercentage:          in.EquityPercentage,
		Stage:                     entity.OpportunityStageLeadAdvisor,
		LeadInvestorAdvisorStatus: entity.ApprovalPending,
		StartupAdvisorStatus:      entity.ApprovalPending,
		StartupApprovalStatus:     entity.ApprovalPending,
		Status:                    entity.OpportunityActive,
		CreatedAt:                 now,
		UpdatedAt:                 now,
	}
	if err := s.opps.Create(ctx, opp); err != nil {
		return nil, err
	}
	s.log.Info().Str("opportunity_id", opp.ID).Str("startup_id", opp.StartupID).Msg("oportunidad creada")
	return toOpportunityResponse(opp), nil
}

// CreateCoInvestmentOffer oferta sobre una oportunidad aprobada y activa, dentro del rango [mínimo, máximo].
func (s *Service) CreateCoInvestmentOffer(ctx context.Context, actor entity.Actor, in dto.CreateCoInvestmentOfferRequest) (*dto.CoInvestmentOfferResponse, error) {
	if actor.PartyID == "" {
		return nil, fmt.Errorf("%w: identidad del llamador vacía", domain.ErrInvalidReference)
	}
	if actor.Role != entity.RoleInvestor {
		return nil, fmt.Errorf("%w: solo inversionistas ofertan en co-inversión", domain.ErrUnauthorizedAction)
	}
	if strings.TrimSpace(in.InvestorEmail) == "" || !validEquity(in.EquityPercentage) {
		return nil, domain.ErrInvalidInput
	}
	if in.OpportunityID == "" {
		return nil, fmt.Errorf("%w: oportunidad vacía", domain.ErrInvalidReference)
	}
	opp, err := s.opps.GetByID(ctx, in.OpportunityID)
	if err != nil {
		return nil, err
	}
	if opp == nil {
		return nil, fmt.Errorf("%w: oportunidad %s", domain.ErrInvalidReference, in.OpportunityID)
	}
	if opp.Status != entity.OpportunityActive || opp.Stage != entity.OpportunityStageApproved {
		return nil, fmt.Errorf("%w: la oportunidad no acepta ofertas", domain.ErrConflict)
	}
	if in.Amount.LessThan(opp.MinimumCoInvestment) || in.Amount.GreaterThan(opp.MaximumCoInvestment) {
		return nil, fmt.Errorf("%w: monto fuera de [%s, %s]", domain.ErrInvalidInput,
			opp.MinimumCoInvestment, opp.MaximumCoInvestment)
	}

	now := s.now()
	o := &entity.CoInvestmentOffer{
		ID:                    uuid.New().String(),
		OpportunityID:         opp.ID,
		StartupID:             opp.StartupID,
		InvestorEmail:         strings.TrimSpace(in.InvestorEmail),
		InvestorID:            actor.PartyID,
		InvestorAdvisorID:     in.InvestorAdvisorID,
		Amount:                in.Amount,
		EquityPercentage:      in.EquityPercentage,
		Status:                entity.CoStatusPendingLeadInvestor,
		InvestorAdvisorStatus: entity.ApprovalNotRequired,
		CreatedAt:             now,
		UpdatedAt:             now,
	}
	if in.RequiresInvestorAdvisor || in.InvestorAdvisorID != "" {
		o.Status = entity.CoStatusPendingInvestorAdvisor
		o.InvestorAdvisorStatus = entity.ApprovalPending
	}
	if err := s.coOffers.Create(ctx, o); err != nil {
		return nil, err
	}
	s.log.Info().Str("co_offer_id", o.ID).Str("opportunity_id", o.OpportunityID).Str("status", string(o.Status)).
		Msg("oferta de co-inversión creada")
	return toCoInvestmentOfferResponse(o), nil
}

// GetOffer devuelve (nil, nil) si no existe.
func (s *Service) GetOffer(ctx context.Context, id string) (*dto.OfferResponse, error) {
	o, err := s.offers.GetByID(ctx, id)
	if err != nil || o == nil {
		return nil, err
	}
	return toOfferResponse(o), nil
}

// GetCoInvestmentOffer devuelve (nil, nil) si no existe.
func (s *Service) GetCoInvestmentOffer(ctx context.Context, id string) (*dto.CoInvestmentOfferResponse, error) {
	o, err := s.coOffers.GetByID(ctx, id)
	if err != nil || o == nil {
		return nil, err
	}
	return toCoInvestmentOfferResponse(o), nil
}

// GetOpportunity devuelve (nil, nil) si no existe.
func (s *Service) GetOpportunity(ctx context.Context, id string) (*dto.OpportunityResponse, error) {
	o, err := s.opps.GetByID(ctx, id)
	if err != nil || o == nil {
		return nil, err
	}
	return toOpportunityResponse(o), nil
}

// ListOffersByStartup ofertas recibidas por una startup.
func (s *Service) ListOffersByStartup(ctx context.Context, startupID string) ([]dto.OfferResponse, error) {
	list, err := s.offers.ListByStartup(ctx, startupID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.OfferResponse, 0, len(list))
	for _, o := range list {
		out = append(out, *toOfferResponse(o))
	}
	return out, nil
}

// ListCoInvestmentOffers ofertas recibidas por una oportunidad.
func (s *Service) ListCoInvestmentOffers(ctx context.Context, opportunityID string) ([]dto.CoInvestmentOfferResponse, error) {
	list, err := s.coOffers.ListByOpportunity(ctx, opportunityID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.CoInvestmentOfferResponse, 0, len(list))
	for _, o := range list {
		out = append(out, *toCoInvestmentOfferResponse(o))
	}
	return out, nil
}
