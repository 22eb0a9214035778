package deals

import (
	"github.com/jhoicas/dealflow-api/internal/application/dto"
	"github.com/jhoicas/dealflow-api/internal/domain/approval"
	"github.com/jhoicas/dealflow-api/internal/domain/entity"
)

// toOfferResponse omite el email del inversionista hasta que se revelan los contactos.
func toOfferResponse(o *entity.Offer) *dto.OfferResponse {
	resp := &dto.OfferResponse{
		ID:                     o.ID,
		StartupID:              o.StartupID,
		InvestorID:             o.InvestorID,
		Amount:                 o.Amount,
		EquityPercentage:       o.EquityPercentage,
		Currency:               o.Currency,
		Stage:                  o.Stage,
		InvestorAdvisorStatus:  string(o.InvestorAdvisorStatus),
		StartupAdvisorStatus:   string(o.StartupAdvisorStatus),
		ContactDetailsRevealed: o.ContactDetailsRevealed,
		RevealedAt:             o.RevealedAt,
		CreatedAt:              o.CreatedAt,
	}
	if o.ContactDetailsRevealed {
		resp.InvestorEmail = o.InvestorEmail
	}
	return resp
}

func toCoInvestmentOfferResponse(o *entity.CoInvestmentOffer) *dto.CoInvestmentOfferResponse {
	resp := &dto.CoInvestmentOfferResponse{
		ID:                    o.ID,
		OpportunityID:         o.OpportunityID,
		StartupID:             o.StartupID,
		Amount:                o.Amount,
		EquityPercentage:      o.EquityPercentage,
		Status:                string(o.Status),
		InvestorAdvisorStatus: string(o.InvestorAdvisorStatus),
		CreatedAt:             o.CreatedAt,
	}
	if o.Status == entity.CoStatusAccepted {
		resp.InvestorEmail = o.InvestorEmail
	}
	return resp
}

func toOpportunityResponse(o *entity.CoInvestmentOpportunity) *dto.OpportunityResponse {
	return &dto.OpportunityResponse{
		ID:                        o.ID,
		StartupID:                 o.StartupID,
		LeadInvestorID:            o.LeadInvestorID,
		InvestmentAmount:          o.InvestmentAmount,
		MinimumCoInvestment:       o.MinimumCoInvestment,
		MaximumCoInvestment:       o.MaximumCoInvestment,
		LeadInvestorInvested:      o.LeadInvestorInvested(),
		EquityPercentage:          o.EquityPercentage,
		Stage:                     o.Stage,
		LeadInvestorAdvisorStatus: string(o.LeadInvestorAdvisorStatus),
		StartupAdvisorStatus:      string(o.StartupAdvisorStatus),
		StartupApprovalStatus:     string(o.StartupApprovalStatus),
		Status:                    o.Status,
		CreatedAt:                 o.CreatedAt,
	}
}

func toDealResponse(d approval.Deal) *dto.DealResponse {
	resp := &dto.DealResponse{Kind: string(d.Kind()), ID: d.DealID(), Rejected: d.Rejected()}
	switch v := d.(type) {
	case approval.OfferDeal:
		resp.Offer = toOfferResponse(&v.Offer)
	case approval.CoInvestmentOfferDeal:
		resp.CoInvestmentOffer = toCoInvestmentOfferResponse(&v.Offer)
	case approval.OpportunityDeal:
		resp.Opportunity = toOpportunityResponse(&v.Opportunity)
	}
	return resp
}
