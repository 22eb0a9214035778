package reconcile

import "github.com/jhoicas/dealflow-api/internal/domain/entity"

// Link contacto que ya está en la plataforma pero aún no es redundante para su asesor.
type Link struct {
	Contact          entity.TrackedContact
	PlatformEntityID string
}

// Plan resultado de una pasada: qué retirar y qué enlazar.
type Plan struct {
	ToRetire []entity.TrackedContact
	ToLink   []Link
}

// BuildPlan marca para retiro el contacto cuyo platform_entity_id está entre las entidades del mismo dueño,
// o cuyo email coincide con el de una entidad ya asociada al dueño. Los demás que aparecen en el directorio
// se enlazan. Un contacto repetido en la entrada se procesa una sola vez.
func BuildPlan(contacts []entity.TrackedContact, ix *Index) Plan {
	plan := Plan{ToRetire: []entity.TrackedContact{}, ToLink: []Link{}}
	seen := make(map[string]struct{}, len(contacts))
	for _, c := range contacts {
		if c.ID == "" {
			continue
		}
		if _, dup := seen[c.ID]; dup {
			continue
		}
		seen[c.ID] = struct{}{}

		if c.PlatformEntityID != nil && ix.OwnsID(c.AdvisorID, *c.PlatformEntityID) {
			plan.ToRetire = append(plan.ToRetire, c)
			continue
		}
		if _, ok := ix.OwnedEmail(c.AdvisorID, c.Email); ok {
			plan.ToRetire = append(plan.ToRetire, c)
			continue
		}
		id, ok := ix.Lookup(c.Email)
		if !ok {
			continue
		}
		if c.IsOnPlatform && c.PlatformEntityID != nil && *c.PlatformEntityID == id {
			continue
		}
		plan.ToLink = append(plan.ToLink, Link{Contact: c, PlatformEntityID: id})
	}
	return plan
}
