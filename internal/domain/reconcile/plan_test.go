package reconcile_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/dealflow-api/internal/domain/entity"
	"github.com/jhoicas/dealflow-api/internal/domain/reconcile"
)

func ptr(s string) *string { return &s }

func contactIDs(list []entity.TrackedContact) []string {
	out := make([]string, 0, len(list))
	for _, c := range list {
		out = append(out, c.ID)
	}
	return out
}

func buildIndex() *reconcile.Index {
	ix := reconcile.NewIndex()
	ix.AddOwned("adv-1", entity.PlatformEntity{ID: "inv-10", Email: "Ana@Fondo.co"})
	ix.AddOwned("adv-1", entity.PlatformEntity{ID: "st-20", Email: "hola@agrodata.io"})
	ix.AddOwned("adv-2", entity.PlatformEntity{ID: "inv-30", Email: "otro@fondo.co"})
	ix.AddDirectory(entity.PlatformEntity{ID: "inv-40", Email: "nuevo@angel.co"})
	return ix
}

func TestBuildPlan_RetiroPorIDOEmail(t *testing.T) {
	contacts := []entity.TrackedContact{
		{ID: "c1", AdvisorID: "adv-1", Email: "x@y.co", PlatformEntityID: ptr("st-20")},
		{ID: "c2", AdvisorID: "adv-1", Email: "  ANA@fondo.CO "},
		{ID: "c3", AdvisorID: "adv-1", Email: "otro@fondo.co"},
		{ID: "c4", AdvisorID: "adv-1", Email: "desconocido@x.co"},
		{ID: "c5", AdvisorID: "adv-1", Email: "z@z.co", PlatformEntityID: ptr("inv-30")},
	}
	plan := reconcile.BuildPlan(contacts, buildIndex())

	assert.Equal(t, []string{"c1", "c2"}, contactIDs(plan.ToRetire))
	if assert.Len(t, plan.ToLink, 1) {
		assert.Equal(t, "c3", plan.ToLink[0].Contact.ID, "existe en plataforma pero asociado a otro asesor")
		assert.Equal(t, "inv-30", plan.ToLink[0].PlatformEntityID)
	}
}

func TestBuildPlan_EnlaceAlDirectorio(t *testing.T) {
	contacts := []entity.TrackedContact{
		{ID: "c1", AdvisorID: "adv-1", Email: "nuevo@angel.co"},
		{ID: "c2", AdvisorID: "adv-1", Email: "nuevo@angel.co", IsOnPlatform: true, PlatformEntityID: ptr("inv-40")},
	}
	plan := reconcile.BuildPlan(contacts, buildIndex())
	assert.Empty(t, plan.ToRetire)
	if assert.Len(t, plan.ToLink, 1, "el ya enlazado se omite") {
		assert.Equal(t, "c1", plan.ToLink[0].Contact.ID)
	}
}

func TestBuildPlan_DuplicadosYVacios(t *testing.T) {
	c := entity.TrackedContact{ID: "c1", AdvisorID: "adv-1", Email: "ana@fondo.co"}
	plan := reconcile.BuildPlan([]entity.TrackedContact{c, c, {Email: "ana@fondo.co"}}, buildIndex())
	assert.Equal(t, []string{"c1"}, contactIDs(plan.ToRetire))
}

func TestBuildPlan_SinEntradas(t *testing.T) {
	plan := reconcile.BuildPlan(nil, reconcile.NewIndex())
	assert.NotNil(t, plan.ToRetire)
	assert.Empty(t, plan.ToRetire)
	assert.Empty(t, plan.ToLink)
}

func TestBuildPlan_DuenoDistintoNoRetira(t *testing.T) {
	contacts := []entity.TrackedContact{{ID: "c1", AdvisorID: "adv-2", Email: "ana@fondo.co"}}
	plan := reconcile.BuildPlan(contacts, buildIndex())
	assert.Empty(t, plan.ToRetire)
	assert.Len(t, plan.ToLink, 1)
}
