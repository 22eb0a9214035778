package matching_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/dealflow-api/internal/domain"
	"github.com/jhoicas/dealflow-api/internal/domain/entity"
	"github.com/jhoicas/dealflow-api/internal/domain/matching"
)

func dec(v int64) *decimal.Decimal {
	d := decimal.NewFromInt(v)
	return &d
}

func candidates() []entity.Startup {
	return []entity.Startup{
		{ID: "s1", Name: "AgroData", Sector: "AgriTech", Domain: "Data analytics", Stage: "Seed", RoundType: "Equity",
			Country: "Colombia", InvestmentAsk: decimal.NewFromInt(99_999), EquityAsk: decimal.NewFromInt(8)},
		{ID: "s2", Name: "PayLink", Sector: "Fintech", Domain: "Payments", Stage: " series a ", RoundType: "SAFE",
			Country: "colombia", InvestmentAsk: decimal.NewFromInt(500_000), EquityAsk: decimal.NewFromInt(12)},
		{ID: "s3", Name: "MediCloud", Sector: "Health", Domain: "Telemedicine", Stage: "Seed", RoundType: "equity",
			Country: "Mexico", InvestmentAsk: decimal.NewFromInt(250_000), EquityAsk: decimal.NewFromInt(15)},
		{ID: "s4", Name: "Fintrack", Sector: "Software", Domain: "FinTech tooling", Stage: "Pre-Seed", RoundType: "SAFE",
			Country: "Chile", InvestmentAsk: decimal.NewFromInt(500_001), EquityAsk: decimal.NewFromInt(5)},
	}
}

func ids(list []entity.Startup) []string {
	out := make([]string, 0, len(list))
	for _, s := range list {
		out = append(out, s.ID)
	}
	return out
}

func TestFilter_MandatoComodinDevuelveTodoEnOrden(t *testing.T) {
	in := candidates()
	out := matching.Filter(in, entity.MandateCriteria{})
	assert.Equal(t, in, out)
}

func TestFilter_RangoDeMontoInclusivo(t *testing.T) {
	out := matching.Filter(candidates(), entity.MandateCriteria{AmountMin: dec(100_000), AmountMax: dec(500_000)})
	assert.Equal(t, []string{"s2", "s3"}, ids(out), "99999 queda fuera y 500000 exacto entra")
}

func TestFilter_Criterios(t *testing.T) {
	cases := []struct {
		name     string
		criteria entity.MandateCriteria
		want     []string
	}{
		{"ronda exacta sin mayúsculas", entity.MandateCriteria{RoundType: "  EQUITY "}, []string{"s1", "s3"}},
		{"etapa exacta recortada", entity.MandateCriteria{Stage: "Series A"}, []string{"s2"}},
		{"etapa no es subcadena", entity.MandateCriteria{Stage: "seed"}, []string{"s1", "s3"}},
		{"dominio subcadena en sector o dominio", entity.MandateCriteria{Domain: "fintech"}, []string{"s2", "s4"}},
		{"dominio en campo domain", entity.MandateCriteria{Domain: "TELE"}, []string{"s3"}},
		{"país exacto", entity.MandateCriteria{Country: "COLOMBIA"}, []string{"s1", "s2"}},
		{"equity mínimo", entity.MandateCriteria{EquityMin: dec(12)}, []string{"s2", "s3"}},
		{"equity máximo", entity.MandateCriteria{EquityMax: dec(8)}, []string{"s1", "s4"}},
		{"criterios combinados", entity.MandateCriteria{Country: "colombia", RoundType: "safe", AmountMin: dec(1)}, []string{"s2"}},
		{"sin coincidencias", entity.MandateCriteria{Country: "Peru"}, []string{}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, ids(matching.Filter(candidates(), tc.criteria)))
		})
	}
}

func TestFilter_SinCandidatas(t *testing.T) {
	out := matching.Filter(nil, entity.MandateCriteria{Country: "Colombia"})
	require.NotNil(t, out)
	assert.Empty(t, out)
}

func TestValidate_Criterios(t *testing.T) {
	assert.NoError(t, matching.Validate(entity.MandateCriteria{AmountMin: dec(1), AmountMax: dec(1)}))
	assert.ErrorIs(t, matching.Validate(entity.MandateCriteria{AmountMin: dec(10), AmountMax: dec(1)}), domain.ErrInvalidInput)
	assert.ErrorIs(t, matching.Validate(entity.MandateCriteria{EquityMin: dec(-1)}), domain.ErrInvalidInput)
}
