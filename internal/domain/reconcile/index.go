// Package reconcile detecta contactos rastreados por asesores que ya existen de forma nativa en la plataforma.
package reconcile

import (
	"strings"

	"golang.org/x/text/cases"

	"github.com/jhoicas/dealflow-api/internal/domain/entity"
)

// NormalizeEmail recorta y aplica case folding; vacío si no hay email.
func NormalizeEmail(email string) string {
	return cases.Fold().String(strings.TrimSpace(email))
}

// Index búsqueda por clave construida una vez por pasada:
// dueño → ids de plataforma, dueño → email → id, y directorio global email → id.
type Index struct {
	ownedIDs    map[string]map[string]struct{}
	ownedEmails map[string]map[string]string
	directory   map[string]string
}

// NewIndex crea un índice vacío.
func NewIndex() *Index {
	return &Index{
		ownedIDs:    make(map[string]map[string]struct{}),
		ownedEmails: make(map[string]map[string]string),
		directory:   make(map[string]string),
	}
}

// AddOwned registra una entidad de plataforma ya asociada al dueño.
func (ix *Index) AddOwned(ownerID string, e entity.PlatformEntity) {
	if ownerID == "" || e.ID == "" {
		return
	}
	if ix.ownedIDs[ownerID] == nil {
		ix.ownedIDs[ownerID] = make(map[string]struct{})
		ix.ownedEmails[ownerID] = make(map[string]string)
	}
	ix.ownedIDs[ownerID][e.ID] = struct{}{}
	if email := NormalizeEmail(e.Email); email != "" {
		ix.ownedEmails[ownerID][email] = e.ID
	}
	ix.AddDirectory(e)
}

// AddDirectory registra una entidad de plataforma sin asociación al dueño.
func (ix *Index) AddDirectory(e entity.PlatformEntity) {
	if email := NormalizeEmail(e.Email); email != "" && e.ID != "" {
		if _, ok := ix.directory[email]; !ok {
			ix.directory[email] = e.ID
		}
	}
}

// OwnsID indica si el id de plataforma pertenece al dueño.
func (ix *Index) OwnsID(ownerID, platformID string) bool {
	_, ok := ix.ownedIDs[ownerID][platformID]
	return ok
}

// OwnedEmail devuelve el id de plataforma asociado al dueño con ese email.
func (ix *Index) OwnedEmail(ownerID, email string) (string, bool) {
	id, ok := ix.ownedEmails[ownerID][NormalizeEmail(email)]
	return id, ok
}

// Lookup busca el email en el directorio global.
func (ix *Index) Lookup(email string) (string, bool) {
	id, ok := ix.directory[NormalizeEmail(email)]
	return id, ok
}
