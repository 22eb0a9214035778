package contacts_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/dealflow-api/internal/application/contacts"
	"github.com/jhoicas/dealflow-api/internal/application/dto"
	"github.com/jhoicas/dealflow-api/internal/application/ports"
	"github.com/jhoicas/dealflow-api/internal/domain"
	"github.com/jhoicas/dealflow-api/internal/domain/entity"
	"github.com/jhoicas/dealflow-api/internal/infrastructure/memory"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

var (
	advisor = entity.Actor{PartyID: "adv-1", Role: entity.RoleInvestorAdvisor}
	other   = entity.Actor{PartyID: "adv-2", Role: entity.RoleStartupAdvisor}
)

// flakyContacts falla el borrado de los ids configurados y, con linkErr, el enlace a la plataforma.
type flakyContacts struct {
	*memory.ContactStore
	mock.Mock
	linkErr error
}

func (f *flakyContacts) LinkPlatform(ctx context.Context, id, platformEntityID string) error {
	if f.linkErr != nil {
		return f.linkErr
	}
	return f.ContactStore.LinkPlatform(ctx, id, platformEntityID)
}

func (f *flakyContacts) Delete(ctx context.Context, id string) error {
	if err := f.Called(id).Error(0); err != nil {
		return err
	}
	return f.ContactStore.Delete(ctx, id)
}

type publisherMock struct{ mock.Mock }

func (m *publisherMock) Publish(ctx context.Context, key string, ev ports.Event) error {
	return m.Called(ctx, key, ev).Error(0)
}

type fixture struct {
	svc      *contacts.Service
	store    *flakyContacts
	platform *memory.PlatformStore
	pub      *publisherMock
}

func newFixture() fixture {
	store := &flakyContacts{ContactStore: memory.NewContactStore()}
	platform := memory.NewPlatformStore()
	pub := &publisherMock{}
	pub.On("Publish", mock.Anything, mock.Anything, mock.Anything).Return(nil)
	svc := contacts.NewService(store, platform, pub,
		contacts.Config{InviteBaseURL: "https://app.example.com/join/", Concurrency: 2}, zerolog.Nop())
	return fixture{svc: svc, store: store, platform: platform, pub: pub}
}

func (f fixture) add(t *testing.T, actor entity.Actor, name, email string) string {
	t.Helper()
	c, err := f.svc.Create(context.Background(), actor, dto.CreateContactRequest{
		Kind: entity.ContactKindInvestor, Name: name, Email: email,
	})
	require.NoError(t, err)
	return c.ID
}

func ids(list []dto.ContactResponse) []string {
	out := make([]string, 0, len(list))
	for _, c := range list {
		out = append(out, c.ID)
	}
	return out
}

// ──────────────────────────────────────────────────────────────────────────────
// Alta y borrado
// ──────────────────────────────────────────────────────────────────────────────

func TestCreate_Reglas(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	f.add(t, advisor, "Ana", "ana@fund.io")

	_, err := f.svc.Create(ctx, advisor, dto.CreateContactRequest{Kind: "investor", Name: "Ana 2", Email: " ANA@fund.io "})
	assert.ErrorIs(t, err, domain.ErrDuplicate)

	_, err = f.svc.Create(ctx, advisor, dto.CreateContactRequest{Kind: "bank", Name: "X", Email: "x@y.z"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = f.svc.Create(ctx, entity.Actor{PartyID: "inv", Role: entity.RoleInvestor},
		dto.CreateContactRequest{Kind: "investor", Name: "X", Email: "x@y.z"})
	assert.ErrorIs(t, err, domain.ErrUnauthorizedAction)
}

func TestDelete_SoloElDueno(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	id := f.add(t, advisor, "Ana", "ana@fund.io")
	f.store.On("Delete", mock.Anything).Return(nil)

	assert.ErrorIs(t, f.svc.Delete(ctx, other, id), domain.ErrForbidden)
	require.NoError(t, f.svc.Delete(ctx, advisor, id))
	assert.ErrorIs(t, f.svc.Delete(ctx, advisor, id), domain.ErrNotFound)
}

// ──────────────────────────────────────────────────────────────────────────────
// Reconciliación
// ──────────────────────────────────────────────────────────────────────────────

func TestReconcileOwner_RetiraEnlazaYEsIdempotente(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	f.store.On("Delete", mock.Anything).Return(nil)

	f.platform.Put(
		entity.PlatformEntity{ID: "p-ana", Kind: "investor", Email: "Ana@Fund.io"},
		entity.PlatformEntity{ID: "p-luis", Kind: "investor", Email: "luis@vc.co"},
	)
	f.platform.LinkAdvisor(advisor.PartyID, "p-ana")

	dup := f.add(t, advisor, "Ana", " ana@FUND.io")
	link := f.add(t, advisor, "Luis", "luis@vc.co")
	keep := f.add(t, advisor, "Marta", "marta@angel.com")
	otherAna := f.add(t, other, "Ana", "ana@fund.io")

	res, err := f.svc.ReconcileOwner(ctx, advisor)
	require.NoError(t, err)
	assert.Equal(t, []string{dup}, res.Retired)
	assert.Equal(t, []string{link}, res.Linked)
	assert.Empty(t, res.Failures)

	list, err := f.svc.List(ctx, advisor)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{link, keep}, ids(list))
	for _, c := range list {
		if c.ID == link {
			assert.True(t, c.IsOnPlatform)
			require.NotNil(t, c.PlatformEntityID)
			assert.Equal(t, "p-luis", *c.PlatformEntityID)
		}
	}

	again, err := f.svc.ReconcileOwner(ctx, advisor)
	require.NoError(t, err)
	assert.Empty(t, again.Retired)
	assert.Empty(t, again.Linked)

	otherList, err := f.svc.List(ctx, other)
	require.NoError(t, err)
	assert.Equal(t, []string{otherAna}, ids(otherList), "otro asesor no se ve afectado")
}

func TestReconcileOwner_FalloParcial(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	var contactIDs []string
	var platformIDs []string
	for _, email := range []string{"a@x.io", "b@x.io", "c@x.io"} {
		pid := "p-" + strings.Split(email, "@")[0]
		f.platform.Put(entity.PlatformEntity{ID: pid, Email: email})
		platformIDs = append(platformIDs, pid)
		contactIDs = append(contactIDs, f.add(t, advisor, email, email))
	}
	f.platform.LinkAdvisor(advisor.PartyID, platformIDs...)
	f.store.On("Delete", contactIDs[1]).Return(errors.New("timeout"))
	f.store.On("Delete", mock.Anything).Return(nil)

	res, err := f.svc.ReconcileOwner(ctx, advisor)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{contactIDs[0], contactIDs[2]}, res.Retired)
	require.Len(t, res.Failures, 1)
	assert.Equal(t, contactIDs[1], res.Failures[0].ID)
	assert.Contains(t, res.Failures[0].Err, "timeout")

	list, err := f.svc.List(ctx, advisor)
	require.NoError(t, err)
	assert.Equal(t, []string{contactIDs[1]}, ids(list))
}

func TestReconcileAll_TodosLosAsesores(t *testing.T) {
	f := newFixture()
	f.store.On("Delete", mock.Anything).Return(nil)
	f.platform.Put(entity.PlatformEntity{ID: "p1", Email: "one@x.io"})
	f.platform.LinkAdvisor(advisor.PartyID, "p1")
	f.platform.LinkAdvisor(other.PartyID, "p1")
	f.add(t, advisor, "One", "one@x.io")
	f.add(t, other, "One", "one@x.io")

	results, err := f.svc.ReconcileAll(context.Background())
	require.NoError(t, err)
	require.Len(t, results, 2)
	for _, r := range results {
		assert.Len(t, r.Retired, 1, r.OwnerID)
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Invitaciones
// ──────────────────────────────────────────────────────────────────────────────

func TestInvite_EnviarYAceptar(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	id := f.add(t, advisor, "Ana", "ana@fund.io")

	sent, err := f.svc.SendInvite(ctx, advisor, id)
	require.NoError(t, err)
	assert.Equal(t, string(entity.InviteSent), sent.Status)
	assert.True(t, strings.HasPrefix(sent.Link, "https://app.example.com/join/"))
	assert.NotContains(t, sent.Link, "join//")

	again, err := f.svc.SendInvite(ctx, advisor, id)
	require.NoError(t, err)
	assert.Equal(t, sent.Link, again.Link)
	f.pub.AssertNumberOfCalls(t, "Publish", 1)

	token := strings.TrimPrefix(sent.Link, "https://app.example.com/join/")
	newcomer := entity.Actor{PartyID: "p-ana", Role: entity.RoleInvestor}
	acc, err := f.svc.AcceptInvite(ctx, newcomer, token)
	require.NoError(t, err)
	assert.Equal(t, string(entity.InviteAccepted), acc.Status)

	list, err := f.svc.List(ctx, advisor)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.True(t, list[0].IsOnPlatform)

	_, err = f.svc.SendInvite(ctx, advisor, id)
	assert.ErrorIs(t, err, domain.ErrConflict)

	_, err = f.svc.AcceptInvite(ctx, newcomer, "bogus")
	assert.ErrorIs(t, err, domain.ErrInvalidReference)
}

func TestAcceptInvite_FalloAlEnlazarPermiteReintentar(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	id := f.add(t, advisor, "Ana", "ana@fund.io")
	sent, err := f.svc.SendInvite(ctx, advisor, id)
	require.NoError(t, err)
	token := strings.TrimPrefix(sent.Link, "https://app.example.com/join/")
	newcomer := entity.Actor{PartyID: "p-ana", Role: entity.RoleInvestor}

	f.store.linkErr = errors.New("conexión perdida")
	_, err = f.svc.AcceptInvite(ctx, newcomer, token)
	require.Error(t, err)

	list, err := f.svc.List(ctx, advisor)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.False(t, list[0].IsOnPlatform)
	assert.Equal(t, string(entity.InviteSent), list[0].InviteStatus, "la invitación sigue abierta")

	f.store.linkErr = nil
	acc, err := f.svc.AcceptInvite(ctx, newcomer, token)
	require.NoError(t, err)
	assert.Equal(t, string(entity.InviteAccepted), acc.Status)

	list, err = f.svc.List(ctx, advisor)
	require.NoError(t, err)
	assert.True(t, list[0].IsOnPlatform)
	require.NotNil(t, list[0].PlatformEntityID)
	assert.Equal(t, "p-ana", *list[0].PlatformEntityID)
}

func TestAcceptInvite_AceptadaSinEnlaceSeRepara(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	id := f.add(t, advisor, "Ana", "ana@fund.io")
	sent, err := f.svc.SendInvite(ctx, advisor, id)
	require.NoError(t, err)
	token := strings.TrimPrefix(sent.Link, "https://app.example.com/join/")

	// Estado heredado: aceptada pero nunca enlazada.
	require.NoError(t, f.store.ContactStore.UpdateInvite(ctx, &entity.TrackedContact{
		ID: id, InviteStatus: entity.InviteAccepted, InviteToken: token,
	}))

	acc, err := f.svc.AcceptInvite(ctx, entity.Actor{PartyID: "p-ana", Role: entity.RoleInvestor}, token)
	require.NoError(t, err)
	assert.Equal(t, string(entity.InviteAccepted), acc.Status)

	list, err := f.svc.List(ctx, advisor)
	require.NoError(t, err)
	assert.True(t, list[0].IsOnPlatform)
}
