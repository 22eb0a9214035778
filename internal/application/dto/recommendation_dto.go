package dto

import "time"

// FanOutRequest destinatarios individuales y mandatos de grupo a expandir.
type FanOutRequest struct {
	StartupID    string   `json:"startup_id" validate:"required"`
	RecipientIDs []string `json:"recipient_ids"`
	MandateIDs   []string `json:"mandate_ids"`
}

// FanOutResponse creados, omitidos por existir ya, y fallos por elemento.
type FanOutResponse struct {
	StartupID string        `json:"startup_id"`
	Created   []string      `json:"created"`
	Skipped   []string      `json:"skipped"`
	Failures  []ItemFailure `json:"failures"`
}

// RecommendationResponse salida de una recomendación.
type RecommendationResponse struct {
	ID          string    `json:"id"`
	OwnerID     string    `json:"owner_id"`
	StartupID   string    `json:"startup_id"`
	RecipientID string    `json:"recipient_id"`
	CreatedAt   time.Time `json:"created_at"`
}
