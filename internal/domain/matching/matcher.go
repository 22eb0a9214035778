// Package matching filtra startups en ronda contra los criterios de un mandato.
package matching

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/cases"

	"github.com/jhoicas/dealflow-api/internal/domain"
	"github.com/jhoicas/dealflow-api/internal/domain/entity"
)

// Normalize recorta espacios y aplica case folding Unicode.
func Normalize(s string) string {
	return cases.Fold().String(strings.TrimSpace(s))
}

// Matcher criterios ya normalizados; se construye una vez por filtrado.
type Matcher struct {
	stage     string
	roundType string
	domain    string
	country   string
	amountMin *decimal.Decimal
	amountMax *decimal.Decimal
	equityMin *decimal.Decimal
	equityMax *decimal.Decimal
}

// NewMatcher compila los criterios. Un criterio vacío o nil es comodín.
func NewMatcher(c entity.MandateCriteria) Matcher {
	return Matcher{
		stage:     Normalize(c.Stage),
		roundType: Normalize(c.RoundType),
		domain:    Normalize(c.Domain),
		country:   Normalize(c.Country),
		amountMin: c.AmountMin,
		amountMax: c.AmountMax,
		equityMin: c.EquityMin,
		equityMax: c.EquityMax,
	}
}

// Match indica si la startup cumple todos los criterios presentes.
func (m Matcher) Match(s entity.Startup) bool {
	if m.roundType != "" && Normalize(s.RoundType) != m.roundType {
		return false
	}
	if m.stage != "" && Normalize(s.Stage) != m.stage {
		return false
	}
	if m.domain != "" &&
		!strings.Contains(Normalize(s.Sector), m.domain) &&
		!strings.Contains(Normalize(s.Domain), m.domain) {
		return false
	}
	if m.country != "" && Normalize(s.Country) != m.country {
		return false
	}
	if !inRange(s.InvestmentAsk, m.amountMin, m.amountMax) {
		return false
	}
	return inRange(s.EquityAsk, m.equityMin, m.equityMax)
}

// inRange rango cerrado [min, max] sobre los límites definidos.
func inRange(v decimal.Decimal, min, max *decimal.Decimal) bool {
	if min != nil && v.LessThan(*min) {
		return false
	}
	if max != nil && v.GreaterThan(*max) {
		return false
	}
	return true
}

// Filter devuelve las candidatas que cumplen el mandato, en su orden original.
// Sin coincidencias devuelve un slice vacío.
func Filter(candidates []entity.Startup, c entity.MandateCriteria) []entity.Startup {
	m := NewMatcher(c)
	out := make([]entity.Startup, 0, len(candidates))
	for _, s := range candidates {
		if m.Match(s) {
			out = append(out, s)
		}
	}
	return out
}

// Validate rechaza rangos invertidos o negativos.
func Validate(c entity.MandateCriteria) error {
	if err := validateRange("amount", c.AmountMin, c.AmountMax); err != nil {
		return err
	}
	return validateRange("equity", c.EquityMin, c.EquityMax)
}

func validateRange(name string, min, max *decimal.Decimal) error {
	if min != nil && min.IsNegative() {
		return fmt.Errorf("%w: %s_min negativo", domain.ErrInvalidInput, name)
	}
	if max != nil && max.IsNegative() {
		return fmt.Errorf("%w: %s_max negativo", domain.ErrInvalidInput, name)
	}
	if min != nil && max != nil && min.GreaterThan(*max) {
		return fmt.Errorf("%w: %s_min mayor que %s_max", domain.ErrInvalidInput, name, name)
	}
	return nil
}
