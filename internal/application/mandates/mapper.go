package mandates

import (
	"github.com/jhoicas/dealflow-api/internal/application/dto"
	"github.com/jhoicas/dealflow-api/internal/domain/entity"
)

func toCriteria(c dto.MandateCriteriaDTO) entity.MandateCriteria {
	return entity.MandateCriteria{
		Stage:     c.Stage,
		RoundType: c.RoundType,
		Domain:    c.Domain,
		Country:   c.Country,
		AmountMin: c.AmountMin,
		AmountMax: c.AmountMax,
		EquityMin: c.EquityMin,
		EquityMax: c.EquityMax,
	}
}

func toCriteriaDTO(c entity.MandateCriteria) dto.MandateCriteriaDTO {
	return dto.MandateCriteriaDTO{
		Stage:     c.Stage,
		RoundType: c.RoundType,
		Domain:    c.Domain,
		Country:   c.Country,
		AmountMin: c.AmountMin,
		AmountMax: c.AmountMax,
		EquityMin: c.EquityMin,
		EquityMax: c.EquityMax,
	}
}

func toMandateResponse(m *entity.Mandate) *dto.MandateResponse {
	ids := m.InvestorIDs
	if ids == nil {
		ids = []string{}
	}
	return &dto.MandateResponse{
		ID:          m.ID,
		OwnerID:     m.OwnerID,
		OwnerKind:   m.OwnerKind,
		Name:        m.Name,
		Criteria:    toCriteriaDTO(m.Criteria),
		InvestorIDs: ids,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
}

func toStartup(d dto.StartupDTO) entity.Startup {
	return entity.Startup{
		ID:            d.ID,
		Name:          d.Name,
		Sector:        d.Sector,
		Domain:        d.Domain,
		Stage:         d.Stage,
		RoundType:     d.RoundType,
		Country:       d.Country,
		InvestmentAsk: d.InvestmentAsk,
		EquityAsk:     d.EquityAsk,
		Fundraising:   true,
	}
}

func toStartupDTO(s entity.Startup) dto.StartupDTO {
	return dto.StartupDTO{
		ID:            s.ID,
		Name:          s.Name,
		Sector:        s.Sector,
		Domain:        s.Domain,
		Stage:         s.Stage,
		RoundType:     s.RoundType,
		Country:       s.Country,
		InvestmentAsk: s.InvestmentAsk,
		EquityAsk:     s.EquityAsk,
	}
}
