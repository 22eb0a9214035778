package entity

// Role rol ya resuelto del llamador (lo entrega el colaborador de identidad).
type Role string

const (
	RoleInvestorAdvisor Role = "investor_advisor"
	RoleStartupAdvisor  Role = "startup_advisor"
	RoleInvestor        Role = "investor"
	RoleStartup         Role = "startup"
)

// Valid indica si el rol es conocido.
func (r Role) Valid() bool {
	switch r {
	case RoleInvestorAdvisor, RoleStartupAdvisor, RoleInvestor, RoleStartup:
		return true
	}
	return false
}

// IsAdvisor indica si el rol corresponde a un asesor.
func (r Role) IsAdvisor() bool {
	return r == RoleInvestorAdvisor || r == RoleStartupAdvisor
}

// Actor identidad del llamador: (party_id, role).
type Actor struct {
	PartyID string
	Role    Role
}
