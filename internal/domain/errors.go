package domain

import (
	"errors"
	"fmt"
	"strings"
)

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound         = errors.New("recurso no encontrado")
	ErrInvalidInput     = errors.New("entrada inválida")
	ErrDuplicate        = errors.New("recurso duplicado")
	ErrConflict         = errors.New("conflicto con el estado actual")
	ErrForbidden        = errors.New("acceso denegado")
	ErrInvalidReference = errors.New("referencia inválida")

	// ErrStaleState: la precondición (etapa/estado) ya no se cumple; el llamador debe releer y reintentar.
	ErrStaleState = errors.New("estado desactualizado")
	// ErrUnauthorizedAction: el rol no tiene autoridad sobre esta compuerta.
	ErrUnauthorizedAction = errors.New("acción no autorizada para el rol")
)

// ItemFailure fallo de un elemento individual dentro de un lote.
type ItemFailure struct {
	ID  string `json:"id"`
	Err string `json:"error"`
}

// PartialFailure agrupa fallos por elemento de un lote que no se aborta.
type PartialFailure struct {
	Items []ItemFailure
}

// Add registra el fallo de un elemento.
func (p *PartialFailure) Add(id string, err error) {
	p.Items = append(p.Items, ItemFailure{ID: id, Err: err.Error()})
}

// Empty indica si no hubo fallos.
func (p *PartialFailure) Empty() bool { return len(p.Items) == 0 }

func (p *PartialFailure) Error() string {
	ids := make([]string, 0, len(p.Items))
	for _, it := range p.Items {
		ids = append(ids, it.ID)
	}
	return fmt.Sprintf("fallo parcial en %d elemento(s): %s", len(p.Items), strings.Join(ids, ", "))
}
