package postgres_test

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/dealflow-api/internal/domain"
	"github.com/jhoicas/dealflow-api/internal/domain/entity"
	"github.com/jhoicas/dealflow-api/internal/infrastructure/postgres"
	"github.com/jhoicas/dealflow-api/pkg/config"
)

// Requiere TEST_DATABASE_URL apuntando a una base desechable; sin ella se omite.
func openDB(t *testing.T) *postgres.TxRunner {
	t.Helper()
	url := os.Getenv("TEST_DATABASE_URL")
	if url == "" {
		t.Skip("TEST_DATABASE_URL no definido")
	}
	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, config.DBConfig{DatabaseURL: url})
	require.NoError(t, err)
	t.Cleanup(pool.Close)
	require.NoError(t, postgres.Migrate(ctx, pool))
	return postgres.NewTxRunner(pool)
}

func TestOfferRepo_ActualizacionCondicional(t *testing.T) {
	runner := openDB(t)
	ctx := context.Background()

	// Todo dentro de una tx que se revierte al final.
	err := runner.Run(ctx, func(q postgres.Querier) error {
		startupID := "st-" + uuid.NewString()
		_, err := q.Exec(ctx, `INSERT INTO startups (id, name, fundraising) VALUES ($1, 'Acme', TRUE)`, startupID)
		require.NoError(t, err)

		repo := postgres.NewOfferRepository(q)
		now := time.Now().UTC().Truncate(time.Microsecond)
		o := &entity.Offer{
			ID: uuid.NewString(), StartupID: startupID, InvestorEmail: "ana@fund.io",
			Amount: decimal.NewFromInt(1000), EquityPercentage: decimal.NewFromInt(5), Currency: "USD",
			Stage: entity.StageInvestorAdvisor, InvestorAdvisorStatus: entity.ApprovalPending,
			StartupAdvisorStatus: entity.ApprovalNotRequired, CreatedAt: now, UpdatedAt: now,
		}
		require.NoError(t, repo.Create(ctx, o))

		next := *o
		next.InvestorAdvisorStatus = entity.ApprovalApproved
		next.Stage = entity.StageReady
		require.NoError(t, repo.UpdateState(ctx, o, &next))
		assert.ErrorIs(t, repo.UpdateState(ctx, o, &next), domain.ErrStaleState)

		got, err := repo.GetByID(ctx, o.ID)
		require.NoError(t, err)
		assert.Equal(t, entity.StageReady, got.Stage)
		assert.True(t, o.Amount.Equal(got.Amount))
		assert.Empty(t, got.InvestorID)

		missing, err := repo.GetByID(ctx, "nope")
		require.NoError(t, err)
		assert.Nil(t, missing)

		recs := postgres.NewRecommendationRepository(q)
		rec := &entity.Recommendation{ID: uuid.NewString(), OwnerID: "adv", StartupID: startupID, RecipientID: "i1", CreatedAt: now}
		require.NoError(t, recs.Create(ctx, rec))
		dup := *rec
		dup.ID = uuid.NewString()
		assert.ErrorIs(t, recs.Create(ctx, &dup), domain.ErrDuplicate)
		return errRollback
	})
	assert.ErrorIs(t, err, errRollback)
}

type rollback struct{}

func (rollback) Error() string { return "rollback" }

var errRollback error = rollback{}
