package entity

import "time"

// Recommendation recomendación de una startup, hecha por OwnerID, a un destinatario.
// Única por (OwnerID, StartupID, RecipientID).
type Recommendation struct {
	ID          string
	OwnerID     string
	StartupID   string
	RecipientID string
	CreatedAt   time.Time
}
