package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/dealflow-api/internal/domain/entity"
	"github.com/jhoicas/dealflow-api/internal/domain/repository"
)

var (
	_ repository.CoInvestmentOfferRepository = (*CoInvestmentOfferRepo)(nil)
	_ repository.OpportunityRepository       = (*OpportunityRepo)(nil)
)

// CoInvestmentOfferRepo ofertas de co-inversión sobre PostgreSQL.
type CoInvestmentOfferRepo struct {
	q Querier
}

// NewCoInvestmentOfferRepository construye el adaptador.
func NewCoInvestmentOfferRepository(q Querier) *CoInvestmentOfferRepo {
	return &CoInvestmentOfferRepo{q: q}
}

const coOfferColumns = `id, opportunity_id, startup_id, investor_email, investor_id, investor_advisor_id,
	amount, equity_percentage, status, investor_advisor_approval_status, created_at, updated_at`

func scanCoOffer(row pgx.Row) (*entity.CoInvestmentOffer, error) {
	var (
		o                entity.CoInvestmentOffer
		investorID, ia   *string
		status, iaStatus string
	)
	err := row.Scan(&o.ID, &o.OpportunityID, &o.StartupID, &o.InvestorEmail, &investorID, &ia,
		&o.Amount, &o.EquityPercentage, &status, &iaStatus, &o.CreatedAt, &o.UpdatedAt)
	if err != nil {
		return nil, err
	}
	o.InvestorID, o.InvestorAdvisorID = deref(investorID), deref(ia)
	o.Status = entity.CoInvestmentStatus(status)
	o.InvestorAdvisorStatus = entity.ApprovalStatus(iaStatus)
	return &o, nil
}

func (r *CoInvestmentOfferRepo) Create(ctx context.Context, o *entity.CoInvestmentOffer) error {
	query := `INSERT INTO co_investment_offers (` + coOfferColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`
	_, err := r.q.Exec(ctx, query,
		o.ID, o.OpportunityID, o.StartupID, o.InvestorEmail, nullable(o.InvestorID), nullable(o.InvestorAdvisorID),
		o.Amount, o.EquityPercentage, string(o.Status), string(o.InvestorAdvisorStatus), o.CreatedAt, o.UpdatedAt,
	)
	if err != nil {
		return writeError("insert co-investment offer", err)
	}
	return nil
}

func (r *CoInvestmentOfferRepo) GetByID(ctx context.Context, id string) (*entity.CoInvestmentOffer, error) {
	o, err := scanCoOffer(r.q.QueryRow(ctx, `SELECT `+coOfferColumns+` FROM co_investment_offers WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get co-investment offer: %w", err)
	}
	return o, nil
}

// UpdateStatus condicionado al estado leído.
func (r *CoInvestmentOfferRepo) UpdateStatus(ctx context.Context, prev, next *entity.CoInvestmentOffer) error {
	cmd, err := r.q.Exec(ctx, `
		UPDATE co_investment_offers SET status = $2, investor_advisor_approval_status = $3, updated_at = $4
		WHERE id = $1 AND status = $5`,
		prev.ID, string(next.Status), string(next.InvestorAdvisorStatus), next.UpdatedAt, string(prev.Status),
	)
	if err != nil {
		return fmt.Errorf("update co-investment offer: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return staleOrMissing(ctx, r.q, "co_investment_offers", prev.ID)
	}
	return nil
}

func (r *CoInvestmentOfferRepo) ListByOpportunity(ctx context.Context, opportunityID string) ([]*entity.CoInvestmentOffer, error) {
	rows, err := r.q.Query(ctx,
		`SELECT `+coOfferColumns+` FROM co_investment_offers WHERE opportunity_id = $1 ORDER BY created_at, id`, opportunityID)
	if err != nil {
		return nil, fmt.Errorf("list co-investment offers: %w", err)
	}
	defer rows.Close()
	var list []*entity.CoInvestmentOffer
	for rows.Next() {
		o, err := scanCoOffer(rows)
		if err != nil {
			return nil, err
		}
		list = append(list, o)
	}
	return list, rows.Err()
}

// OpportunityRepo oportunidades de co-inversión sobre PostgreSQL.
type OpportunityRepo struct {
	q Querier
}

// NewOpportunityRepository construye el adaptador.
func NewOpportunityRepository(q Querier) *OpportunityRepo {
	return &OpportunityRepo{q: q}
}

const opportunityColumns = `id, startup_id, lead_investor_id, lead_investor_advisor_id, startup_advisor_id,
	investment_amount, minimum_co_investment, maximum_co_investment, equity_percentage, stage,
	lead_investor_advisor_approval_status, startup_advisor_approval_status, startup_approval_status, status,
	created_at, updated_at`

func (r *OpportunityRepo) Create(ctx context.Context, o *entity.CoInvestmentOpportunity) error {
	query := `INSERT INTO co_investment_opportunities (` + opportunityColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)`
	_, err := r.q.Exec(ctx, query,
		o.ID, o.StartupID, o.LeadInvestorID, nullable(o.LeadInvestorAdvisorID), nullable(o.StartupAdvisorID),
		o.InvestmentAmount, o.MinimumCoInvestment, o.MaximumCoInvestment, o.EquityPercentage, o.Stage,
		string(o.LeadInvestorAdvisorStatus), string(o.StartupAdvisorStatus), string(o.StartupApprovalStatus),
		o.Status, o.CreatedAt, o.UpdatedAt,
	)
	if err != nil {
		return writeError("insert opportunity", err)
	}
	return nil
}

func (r *OpportunityRepo) GetByID(ctx context.Context, id string) (*entity.CoInvestmentOpportunity, error) {
	var (
		o               entity.CoInvestmentOpportunity
		leadAdvisor, sa *string
		lead, sas, st   string
	)
	err := r.q.QueryRow(ctx, `SELECT `+opportunityColumns+` FROM co_investment_opportunities WHERE id = $1`, id).Scan(
		&o.ID, &o.StartupID, &o.LeadInvestorID, &leadAdvisor, &sa,
		&o.InvestmentAmount, &o.MinimumCoInvestment, &o.MaximumCoInvestment, &o.EquityPercentage, &o.Stage,
		&lead, &sas, &st, &o.Status, &o.CreatedAt, &o.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get opportunity: %w", err)
	}
	o.LeadInvestorAdvisorID, o.StartupAdvisorID = deref(leadAdvisor), deref(sa)
	o.LeadInvestorAdvisorStatus = entity.ApprovalStatus(lead)
	o.StartupAdvisorStatus = entity.ApprovalStatus(sas)
	o.StartupApprovalStatus = entity.ApprovalStatus(st)
	return &o, nil
}

// UpdateState condicionado a etapa, estado y las tres aprobaciones leídas.
func (r *OpportunityRepo) UpdateState(ctx context.Context, prev, next *entity.CoInvestmentOpportunity) error {
	cmd, err := r.q.Exec(ctx, `
		UPDATE co_investment_opportunities SET stage = $2, status = $3, lead_investor_advisor_approval_status = $4,
			startup_advisor_approval_status = $5, startup_approval_status = $6, updated_at = $7
		WHERE id = $1 AND stage = $8 AND status = $9 AND lead_investor_advisor_approval_status = $10
			AND startup_advisor_approval_status = $11 AND startup_approval_status = $12`,
		prev.ID, next.Stage, next.Status, string(next.LeadInvestorAdvisorStatus),
		string(next.StartupAdvisorStatus), string(next.StartupApprovalStatus), next.UpdatedAt,
		prev.Stage, prev.Status, string(prev.LeadInvestorAdvisorStatus),
		string(prev.StartupAdvisorStatus), string(prev.StartupApprovalStatus),
	)
	if err != nil {
		return fmt.Errorf("update opportunity: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return staleOrMissing(ctx, r.q, "co_investment_opportunities", prev.ID)
	}
	return nil
}
