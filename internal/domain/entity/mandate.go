package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Dueños posibles de un mandato.
const (
	MandateOwnerAdvisor  = "advisor"
	MandateOwnerInvestor = "investor"
)

// MandateCriteria criterios opcionales; vacío/nil = comodín.
type MandateCriteria struct {
	Stage     string
	RoundType string
	Domain    string
	Country   string
	AmountMin *decimal.Decimal
	AmountMax *decimal.Decimal
	EquityMin *decimal.Decimal
	EquityMax *decimal.Decimal
}

// Mandate filtro guardado de criterios de inversión (de asesor o de inversionista).
type Mandate struct {
	ID          string
	OwnerID     string
	OwnerKind   string // ver MandateOwner*
	Name        string
	Criteria    MandateCriteria
	InvestorIDs []string // solo mandatos de asesor
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
