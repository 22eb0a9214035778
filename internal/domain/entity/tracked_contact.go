package entity

import "time"

// Tipos de contacto rastreado.
const (
	ContactKindInvestor = "investor"
	ContactKindStartup  = "startup"
)

// InviteStatus estado de invitación a la plataforma.
type InviteStatus string

const (
	InviteNone     InviteStatus = "none"
	InviteSent     InviteStatus = "sent"
	InviteAccepted InviteStatus = "accepted"
)

// TrackedContact inversionista o startup agregado manualmente por un asesor antes de unirse a la plataforma.
type TrackedContact struct {
	ID               string
	AdvisorID        string
	Kind             string
	Name             string
	Email            string
	Company          string
	Phone            string
	IsOnPlatform     bool
	PlatformEntityID *string
	InviteStatus     InviteStatus
	InviteToken      string
	InvitedAt        *time.Time
	CreatedAt        time.Time
	UpdatedAt        time.Time
}
