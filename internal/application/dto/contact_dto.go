package dto

import "time"

// CreateContactRequest entrada para rastrear un contacto manualmente.
type CreateContactRequest struct {
	Kind    string `json:"kind" validate:"required,oneof=investor startup"`
	Name    string `json:"name" validate:"required"`
	Email   string `json:"email" validate:"required,email"`
	Company string `json:"company"`
	Phone   string `json:"phone"`
}

// ContactResponse salida de un contacto rastreado.
type ContactResponse struct {
	ID               string     `json:"id"`
	AdvisorID        string     `json:"advisor_id"`
	Kind             string     `json:"kind"`
	Name             string     `json:"name"`
	Email            string     `json:"email"`
	Company          string     `json:"company,omitempty"`
	Phone            string     `json:"phone,omitempty"`
	IsOnPlatform     bool       `json:"is_on_platform"`
	PlatformEntityID *string    `json:"platform_entity_id"`
	InviteStatus     string     `json:"invite_status"`
	InvitedAt        *time.Time `json:"invited_at,omitempty"`
	CreatedAt        time.Time  `json:"created_at"`
}

// ReconcileResponse resultado de una pasada de reconciliación.
type ReconcileResponse struct {
	OwnerID  string        `json:"owner_id"`
	Retired  []string      `json:"retired"`
	Linked   []string      `json:"linked"`
	Failures []ItemFailure `json:"failures"`
}

// InviteResponse estado de la invitación y enlace generado.
type InviteResponse struct {
	ContactID string `json:"contact_id"`
	Status    string `json:"invite_status"`
	Link      string `json:"link,omitempty"`
}
