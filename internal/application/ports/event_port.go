package ports

import (
	"context"
	"time"
)

// Tipos de evento que el núcleo emite para que otros los difundan.
const (
	EventDealDecided           = "deal.decided"
	EventContactsRevealed      = "deal.contacts_revealed"
	EventInvitationRequested   = "contact.invitation_requested"
	EventContactsReconciled    = "contact.reconciled"
	EventRecommendationsFanOut = "recommendation.fan_out"
)

// EventPublisher define el puerto de salida para difundir eventos (Kafka, log, mock).
// Siguiendo DIP, la aplicación solo conoce este contrato.
type EventPublisher interface {
	// Publish serializa el evento y lo envía con la clave dada (id de la entidad, para orden por partición).
	Publish(ctx context.Context, key string, event Event) error
}

// Event sobre común de los eventos publicados.
type Event struct {
	Type       string      `json:"type"`
	OccurredAt time.Time   `json:"occurred_at"`
	Payload    interface{} `json:"payload"`
}

// ContactsRevealed payload de la revelación de datos de contacto de una oferta.
type ContactsRevealed struct {
	OfferID       string `json:"offer_id"`
	StartupID     string `json:"startup_id"`
	InvestorEmail string `json:"investor_email"`
	InvestorID    string `json:"investor_id,omitempty"`
	RevealedBy    string `json:"revealed_by"`
}

// DealDecided payload de una decisión aplicada sobre una compuerta.
type DealDecided struct {
	Kind     string `json:"kind"`
	DealID   string `json:"deal_id"`
	ActorID  string `json:"actor_id"`
	Role     string `json:"role"`
	Decision string `json:"decision"`
	Stage    int    `json:"stage,omitempty"`
	Status   string `json:"status,omitempty"`
}

// InvitationRequested payload: el núcleo decide que se envíe la invitación; la entrega es externa.
type InvitationRequested struct {
	ContactID string `json:"contact_id"`
	AdvisorID string `json:"advisor_id"`
	Email     string `json:"email"`
	Name      string `json:"name"`
	Link      string `json:"link"`
}
