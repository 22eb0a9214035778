package recommendations_test

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/dealflow-api/internal/application/dto"
	"github.com/jhoicas/dealflow-api/internal/application/recommendations"
	"github.com/jhoicas/dealflow-api/internal/domain"
	"github.com/jhoicas/dealflow-api/internal/domain/entity"
	"github.com/jhoicas/dealflow-api/internal/infrastructure/memory"
)

var advisor = entity.Actor{PartyID: "adv-1", Role: entity.RoleInvestorAdvisor}

// flakyRecs falla la inserción para los destinatarios configurados.
type flakyRecs struct {
	*memory.RecommendationStore
	mock.Mock
}

func (f *flakyRecs) Create(ctx context.Context, rec *entity.Recommendation) error {
	if err := f.Called(rec.RecipientID).Error(0); err != nil {
		return err
	}
	return f.RecommendationStore.Create(ctx, rec)
}

type fixture struct {
	svc      *recommendations.Service
	recs     *flakyRecs
	mandates *memory.MandateStore
}

func newFixture(t *testing.T) fixture {
	t.Helper()
	startups := memory.NewStartupStore()
	startups.Put(entity.Startup{ID: "s1", Name: "Acme", Fundraising: true})
	mandates := memory.NewMandateStore()
	require.NoError(t, mandates.Create(context.Background(), &entity.Mandate{
		ID: "m1", OwnerID: advisor.PartyID, OwnerKind: entity.MandateOwnerAdvisor, Name: "Grupo",
		InvestorIDs: []string{"i2", "i3"},
	}))
	require.NoError(t, mandates.Create(context.Background(), &entity.Mandate{
		ID: "m-other", OwnerID: "adv-2", OwnerKind: entity.MandateOwnerAdvisor, Name: "Ajeno",
		InvestorIDs: []string{"i9"},
	}))
	recs := &flakyRecs{RecommendationStore: memory.NewRecommendationStore()}
	svc := recommendations.NewService(recs, mandates, startups, nil, zerolog.Nop())
	return fixture{svc: svc, recs: recs, mandates: mandates}
}

func TestFanOut_ExpandeMandatosYOmiteExistentes(t *testing.T) {
	f := newFixture(t)
	f.recs.On("Create", mock.Anything).Return(nil)
	ctx := context.Background()

	first, err := f.svc.FanOut(ctx, advisor, dto.FanOutRequest{StartupID: "s1", RecipientIDs: []string{"i1", "i2"}})
	require.NoError(t, err)
	assert.Equal(t, []string{"i1", "i2"}, first.Created)

	second, err := f.svc.FanOut(ctx, advisor, dto.FanOutRequest{
		StartupID: "s1", RecipientIDs: []string{"i1"}, MandateIDs: []string{"m1"},
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"i3"}, second.Created)
	assert.Equal(t, []string{"i1", "i2"}, second.Skipped)

	list, err := f.svc.List(ctx, advisor, "s1")
	require.NoError(t, err)
	assert.Len(t, list, 3, "cada destinatario una sola vez")

	none, err := f.svc.FanOut(ctx, advisor, dto.FanOutRequest{StartupID: "s1", MandateIDs: []string{"m1"}})
	require.NoError(t, err)
	assert.Empty(t, none.Created)
	assert.NotNil(t, none.Created)
}

func TestFanOut_FallosPorDestinatario(t *testing.T) {
	f := newFixture(t)
	f.recs.On("Create", "i2").Return(errors.New("conexión perdida"))
	f.recs.On("Create", "i3").Return(domain.ErrDuplicate)
	f.recs.On("Create", mock.Anything).Return(nil)

	res, err := f.svc.FanOut(context.Background(), advisor, dto.FanOutRequest{
		StartupID: "s1", RecipientIDs: []string{"i1", "i2", "i3", "i4"},
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"i1", "i4"}, res.Created)
	assert.Equal(t, []string{"i3"}, res.Skipped)
	require.Len(t, res.Failures, 1)
	assert.Equal(t, "i2", res.Failures[0].ID)
}

func TestFanOut_Errores(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.svc.FanOut(ctx, advisor, dto.FanOutRequest{StartupID: "nope"})
	assert.ErrorIs(t, err, domain.ErrInvalidReference)

	_, err = f.svc.FanOut(ctx, advisor, dto.FanOutRequest{StartupID: "s1", MandateIDs: []string{"m-other"}})
	assert.ErrorIs(t, err, domain.ErrForbidden)

	_, err = f.svc.FanOut(ctx, advisor, dto.FanOutRequest{StartupID: "s1", MandateIDs: []string{"missing"}})
	assert.ErrorIs(t, err, domain.ErrInvalidReference)

	_, err = f.svc.FanOut(ctx, entity.Actor{PartyID: "s1", Role: entity.RoleStartup}, dto.FanOutRequest{StartupID: "s1"})
	assert.ErrorIs(t, err, domain.ErrUnauthorizedAction)
}

func TestFanOut_MandatoRepetidoNoSeAnula(t *testing.T) {
	f := newFixture(t)
	f.recs.On("Create", mock.Anything).Return(nil)

	res, err := f.svc.FanOut(context.Background(), advisor, dto.FanOutRequest{
		StartupID: "s1", MandateIDs: []string{"m1", "m1"},
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"i2", "i3"}, res.Created)
	assert.Empty(t, res.Skipped)
}
