// Package recommendation arma el conjunto de destinatarios de una recomendación.
package recommendation

import "github.com/jhoicas/dealflow-api/internal/domain/entity"

// Selection conjunto pendiente de destinatarios. Un mandato se expande a sus inversionistas en el momento de
// seleccionarlo; deseleccionarlo quita solo a los que no siguen seleccionados por otra vía.
type Selection struct {
	individual map[string]struct{}
	mandates   map[string][]string
	order      []string
	known      map[string]struct{}
}

// NewSelection crea una selección vacía.
func NewSelection() *Selection {
	return &Selection{
		individual: make(map[string]struct{}),
		mandates:   make(map[string][]string),
		known:      make(map[string]struct{}),
	}
}

func (s *Selection) remember(id string) {
	if _, ok := s.known[id]; !ok {
		s.known[id] = struct{}{}
		s.order = append(s.order, id)
	}
}

// SelectInvestor agrega un destinatario individual.
func (s *Selection) SelectInvestor(id string) {
	if id == "" {
		return
	}
	s.individual[id] = struct{}{}
	s.remember(id)
}

// ToggleInvestor alterna la selección individual; devuelve si quedó seleccionado.
func (s *Selection) ToggleInvestor(id string) bool {
	if _, ok := s.individual[id]; ok {
		delete(s.individual, id)
		return false
	}
	s.SelectInvestor(id)
	return id != ""
}

// ToggleMandate alterna un mandato de grupo; devuelve si quedó seleccionado.
func (s *Selection) ToggleMandate(m entity.Mandate) bool {
	if _, ok := s.mandates[m.ID]; ok {
		delete(s.mandates, m.ID)
		return false
	}
	s.SelectMandate(m)
	return true
}

// SelectMandate selecciona un mandato sin alternar: repetirlo no lo quita.
func (s *Selection) SelectMandate(m entity.Mandate) {
	if _, ok := s.mandates[m.ID]; ok {
		return
	}
	members := make([]string, 0, len(m.InvestorIDs))
	for _, id := range m.InvestorIDs {
		if id == "" {
			continue
		}
		members = append(members, id)
		s.remember(id)
	}
	s.mandates[m.ID] = members
}

// Recipients destinatarios únicos en orden de primera selección.
func (s *Selection) Recipients() []string {
	active := make(map[string]struct{}, len(s.individual))
	for id := range s.individual {
		active[id] = struct{}{}
	}
	for _, members := range s.mandates {
		for _, id := range members {
			active[id] = struct{}{}
		}
	}
	out := make([]string, 0, len(active))
	for _, id := range s.order {
		if _, ok := active[id]; ok {
			out = append(out, id)
		}
	}
	return out
}
