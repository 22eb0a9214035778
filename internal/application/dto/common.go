package dto

import "github.com/jhoicas/dealflow-api/internal/domain"

// ErrorResponse cuerpo de error HTTP.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ItemFailure fallo de un elemento de un lote (fan-out, reconciliación).
type ItemFailure = domain.ItemFailure
