package entity

import "github.com/shopspring/decimal"

// Startup modelo de lectura de una startup en ronda de inversión.
type Startup struct {
	ID            string
	Name          string
	Sector        string
	Domain        string
	Stage         string
	RoundType     string
	Country       string
	InvestmentAsk decimal.Decimal
	EquityAsk     decimal.Decimal
	Fundraising   bool
}

// PlatformEntity registro nativo de la plataforma (inversionista o startup) asociado a un asesor.
type PlatformEntity struct {
	ID    string
	Kind  string
	Email string
	Name  string
}
