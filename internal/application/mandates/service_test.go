package mandates_test

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/dealflow-api/internal/application/dto"
	"github.com/jhoicas/dealflow-api/internal/application/mandates"
	"github.com/jhoicas/dealflow-api/internal/domain"
	"github.com/jhoicas/dealflow-api/internal/domain/entity"
	"github.com/jhoicas/dealflow-api/internal/infrastructure/memory"
)

var (
	advisor  = entity.Actor{PartyID: "ia-1", Role: entity.RoleInvestorAdvisor}
	investor = entity.Actor{PartyID: "inv-1", Role: entity.RoleInvestor}
)

func dec(v int64) *decimal.Decimal {
	d := decimal.NewFromInt(v)
	return &d
}

func newService() *mandates.Service {
	startups := memory.NewStartupStore()
	startups.Put(
		entity.Startup{ID: "s1", Sector: "FinTech", RoundType: "Seed", Country: "Colombia",
			InvestmentAsk: decimal.NewFromInt(100000), EquityAsk: decimal.NewFromInt(10), Fundraising: true},
		entity.Startup{ID: "s2", Sector: "Health", RoundType: "Seed", Country: "Colombia",
			InvestmentAsk: decimal.NewFromInt(100000), EquityAsk: decimal.NewFromInt(10), Fundraising: true},
		entity.Startup{ID: "s3", Sector: "fintech", RoundType: "seed", Country: "colombia",
			InvestmentAsk: decimal.NewFromInt(500000), EquityAsk: decimal.NewFromInt(15), Fundraising: false},
	)
	return mandates.NewService(memory.NewMandateStore(), startups, zerolog.Nop())
}

func TestCreate_TipoDeDuenoSegunRol(t *testing.T) {
	svc := newService()
	ctx := context.Background()

	m, err := svc.Create(ctx, advisor, dto.CreateMandateRequest{Name: " Fintech LatAm ", InvestorIDs: []string{"a", "a", " ", "b"}})
	require.NoError(t, err)
	assert.Equal(t, entity.MandateOwnerAdvisor, m.OwnerKind)
	assert.Equal(t, "Fintech LatAm", m.Name)
	assert.Equal(t, []string{"a", "b"}, m.InvestorIDs)

	own, err := svc.Create(ctx, investor, dto.CreateMandateRequest{Name: "Propio"})
	require.NoError(t, err)
	assert.Equal(t, entity.MandateOwnerInvestor, own.OwnerKind)
	assert.Empty(t, own.InvestorIDs)
}

func TestCreate_Errores(t *testing.T) {
	svc := newService()
	ctx := context.Background()

	_, err := svc.Create(ctx, entity.Actor{PartyID: "s1", Role: entity.RoleStartup}, dto.CreateMandateRequest{Name: "x"})
	assert.ErrorIs(t, err, domain.ErrUnauthorizedAction)

	_, err = svc.Create(ctx, investor, dto.CreateMandateRequest{Name: "x", InvestorIDs: []string{"a"}})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = svc.Create(ctx, advisor, dto.CreateMandateRequest{
		Name:     "x",
		Criteria: dto.MandateCriteriaDTO{AmountMin: dec(10), AmountMax: dec(5)},
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = svc.Create(ctx, advisor, dto.CreateMandateRequest{Name: "  "})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestUpdateDelete_SoloElDueno(t *testing.T) {
	svc := newService()
	ctx := context.Background()
	m, err := svc.Create(ctx, advisor, dto.CreateMandateRequest{Name: "A"})
	require.NoError(t, err)

	other := entity.Actor{PartyID: "ia-2", Role: entity.RoleInvestorAdvisor}
	name := "B"
	_, err = svc.Update(ctx, other, m.ID, dto.UpdateMandateRequest{Name: &name})
	assert.ErrorIs(t, err, domain.ErrForbidden)
	assert.ErrorIs(t, svc.Delete(ctx, other, m.ID), domain.ErrForbidden)

	ids := []string{"inv-9"}
	up, err := svc.Update(ctx, advisor, m.ID, dto.UpdateMandateRequest{Name: &name, InvestorIDs: &ids})
	require.NoError(t, err)
	assert.Equal(t, "B", up.Name)
	assert.Equal(t, []string{"inv-9"}, up.InvestorIDs)

	require.NoError(t, svc.Delete(ctx, advisor, m.ID))
	got, err := svc.GetByID(ctx, advisor, m.ID)
	require.NoError(t, err)
	assert.Nil(t, got)
	assert.ErrorIs(t, svc.Delete(ctx, advisor, m.ID), domain.ErrNotFound)
}

func TestMatches_StartupsEnRondaAlmacenadas(t *testing.T) {
	svc := newService()
	ctx := context.Background()
	m, err := svc.Create(ctx, advisor, dto.CreateMandateRequest{
		Name:     "Fintech seed",
		Criteria: dto.MandateCriteriaDTO{RoundType: "SEED", Domain: "tech", Country: " colombia "},
	})
	require.NoError(t, err)

	res, err := svc.Matches(ctx, advisor, m.ID, nil)
	require.NoError(t, err)
	require.Len(t, res.Items, 1, "s3 no está en ronda")
	assert.Equal(t, "s1", res.Items[0].ID)
}

func TestMatches_CandidatasExplicitasConservanOrden(t *testing.T) {
	svc := newService()
	ctx := context.Background()
	m, err := svc.Create(ctx, investor, dto.CreateMandateRequest{
		Name:     "Rango",
		Criteria: dto.MandateCriteriaDTO{AmountMin: dec(100000), AmountMax: dec(500000)},
	})
	require.NoError(t, err)

	res, err := svc.Matches(ctx, investor, m.ID, []dto.StartupDTO{
		{ID: "c", InvestmentAsk: decimal.NewFromInt(500000)},
		{ID: "a", InvestmentAsk: decimal.NewFromInt(99999)},
		{ID: "b", InvestmentAsk: decimal.NewFromInt(100000)},
	})
	require.NoError(t, err)
	ids := make([]string, 0, len(res.Items))
	for _, it := range res.Items {
		ids = append(ids, it.ID)
	}
	assert.Equal(t, []string{"c", "b"}, ids)

	none, err := svc.Matches(ctx, investor, m.ID, []dto.StartupDTO{{ID: "z", InvestmentAsk: decimal.NewFromInt(1)}})
	require.NoError(t, err)
	assert.NotNil(t, none.Items)
	assert.Empty(t, none.Items)
}
