package controller

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/noah-isme/escola-admin-console/internal/models"
	appErrors "github.com/noah-isme/escola-admin-console/pkg/errors"
)

type mockStudentAdapter struct {
	students  []models.Student
	nextID    int64
	listErr   error
	createErr error
	updateErr error
	deleteErr error

	listCalls   int
	createCalls int
	updateCalls int
	deleteCalls int

	listGate chan struct{}
}

func (m *mockStudentAdapter) List(ctx context.Context) ([]models.Student, error) {
	if m.listGate != nil {
		<-m.listGate
	}
	m.listCalls++
	if m.listErr != nil {
		return nil, m.listErr
	}
	return append([]models.Student(nil), m.students...), nil
}

func (m *mockStudentAdapter) Create(ctx context.Context, draft Draft) (models.Student, error) {
	m.createCalls++
	if m.createErr != nil {
		return models.Student{}, m.createErr
	}
	m.nextID++
	student := models.Student{
		ID:       m.nextID,
		Nome:     draft.Get("nome"),
		Email:    draft.Get("email"),
		Telefone: draft.Get("telefone"),
	}
	m.students = append(m.students, student)
	return student, nil
}

func (m *mockStudentAdapter) Update(ctx context.Context, id int64, draft Draft) (models.Student, error) {
	m.updateCalls++
	if m.updateErr != nil {
		return models.Student{}, m.updateErr
	}
	for i, s := range m.students {
		if s.ID == id {
			m.students[i] = models.Student{ID: id, Nome: draft.Get("nome"), Email: draft.Get("email"), Telefone: draft.Get("telefone")}
			return m.students[i], nil
		}
	}
	return models.Student{}, appErrors.Clone(appErrors.ErrNotFound, "aluno não encontrado")
}

func (m *mockStudentAdapter) Delete(ctx context.Context, id int64) error {
	m.deleteCalls++
	if m.deleteErr != nil {
		return m.deleteErr
	}
	for i, s := range m.students {
		if s.ID == id {
			m.students = append(m.students[:i], m.students[i+1:]...)
			return nil
		}
	}
	return appErrors.Clone(appErrors.ErrNotFound, "aluno não encontrado")
}

var studentDesc = Descriptor[models.Student, int64]{
	Name: "alunos",
	Key:  models.Student.Key,
	FilterText: func(s models.Student) []string {
		return []string{s.Nome, s.Email}
	},
	ToDraft: func(s models.Student) Draft {
		return Draft{"nome": s.Nome, "email": s.Email, "telefone": s.Telefone}
	},
	EmptyDraft: func() Draft {
		return Draft{"nome": "", "email": "", "telefone": ""}
	},
	CanDelete: true,
	Messages: Messages{
		LoadFailed:   "Erro ao carregar alunos",
		Saved:        "Aluno criado com sucesso!",
		Updated:      "Aluno atualizado com sucesso!",
		SaveFailed:   "Erro ao salvar aluno",
		Deleted:      "Aluno excluído com sucesso!",
		DeleteFailed: "Erro ao excluir aluno",
		EditVanished: "Aluno não encontrado na lista atual",
	},
}

func newTestController(adapter *mockStudentAdapter) *Controller[models.Student, int64] {
	return New[models.Student, int64](adapter, studentDesc, 6*time.Second, zap.NewNop())
}

func TestControllerMountFetch(t *testing.T) {
	adapter := &mockStudentAdapter{students: []models.Student{{ID: 1, Nome: "Ana", Email: "ana@x.com", Telefone: "1"}}}
	ctrl := newTestController(adapter)

	assert.Equal(t, PhaseIdle, ctrl.Snapshot().Phase)

	ctrl.EnsureLoaded(context.Background())
	snap := ctrl.Snapshot()
	require.Equal(t, PhaseLoaded, snap.Phase)
	require.Len(t, snap.Entities, 1)
	assert.Equal(t, "Ana", snap.Entities[0].Nome)

	// Later mounts reuse the snapshot.
	ctrl.EnsureLoaded(context.Background())
	assert.Equal(t, 1, adapter.listCalls)
}

func TestControllerMountFetchFailure(t *testing.T) {
	adapter := &mockStudentAdapter{listErr: appErrors.Clone(appErrors.ErrNetwork, "down")}
	ctrl := newTestController(adapter)

	ctrl.Refresh(context.Background())
	snap := ctrl.Snapshot()
	assert.Equal(t, PhaseLoaded, snap.Phase)
	assert.Empty(t, snap.Entities)
	require.NotNil(t, snap.Notification)
	assert.Equal(t, models.SeverityError, snap.Notification.Severity)
	assert.Equal(t, "Erro ao carregar alunos", snap.Notification.Message)
}

func TestControllerSearchFilter(t *testing.T) {
	adapter := &mockStudentAdapter{students: []models.Student{{ID: 1, Nome: "Ana", Email: "ana@x.com", Telefone: "1"}}}
	ctrl := newTestController(adapter)
	ctrl.Refresh(context.Background())

	ctrl.SetSearch("ana")
	assert.Len(t, ctrl.Snapshot().Entities, 1)

	ctrl.SetSearch("zzz")
	assert.Len(t, ctrl.Snapshot().Entities, 0)

	ctrl.SetSearch("")
	assert.Len(t, ctrl.Snapshot().Entities, 1)

	// No upstream traffic for any of it.
	assert.Equal(t, 1, adapter.listCalls)
}

func TestControllerSearchMatchesEmailAndPreservesOrder(t *testing.T) {
	adapter := &mockStudentAdapter{students: []models.Student{
		{ID: 3, Nome: "Carlos", Email: "carlos@escola.com"},
		{ID: 1, Nome: "Beatriz", Email: "bia@escola.com"},
		{ID: 2, Nome: "Duarte", Email: "duarte@outra.net"},
	}}
	ctrl := newTestController(adapter)
	ctrl.Refresh(context.Background())

	ctrl.SetSearch("ESCOLA.COM")
	snap := ctrl.Snapshot()
	require.Len(t, snap.Entities, 2)
	assert.Equal(t, int64(3), snap.Entities[0].ID)
	assert.Equal(t, int64(1), snap.Entities[1].ID)
	assert.Equal(t, 3, snap.Total)
}

func TestControllerCreateFlow(t *testing.T) {
	adapter := &mockStudentAdapter{nextID: 10}
	ctrl := newTestController(adapter)
	ctrl.Refresh(context.Background())

	ctrl.OpenCreate()
	snap := ctrl.Snapshot()
	require.Equal(t, PhaseFormOpen, snap.Phase)
	require.NotNil(t, snap.Form)
	assert.Equal(t, FormCreate, snap.Form.Mode)
	assert.Equal(t, "", snap.Form.Draft.Get("nome"))

	err := ctrl.Submit(context.Background(), Draft{"nome": "Bob", "email": "bob@x.com", "telefone": "2"})
	require.NoError(t, err)

	snap = ctrl.Snapshot()
	assert.Nil(t, snap.Form)
	require.NotNil(t, snap.Notification)
	assert.Equal(t, models.SeveritySuccess, snap.Notification.Severity)
	assert.Equal(t, "Aluno criado com sucesso!", snap.Notification.Message)

	// The refresh after create picked Bob up exactly once.
	names := make([]string, 0, len(snap.Entities))
	for _, s := range snap.Entities {
		names = append(names, s.Nome)
	}
	assert.Equal(t, []string{"Bob"}, names)
	assert.Equal(t, 2, adapter.listCalls)
}

func TestControllerFailedCreateKeepsDraft(t *testing.T) {
	adapter := &mockStudentAdapter{createErr: appErrors.Clone(appErrors.ErrUpstream, "boom")}
	ctrl := newTestController(adapter)
	ctrl.Refresh(context.Background())

	ctrl.OpenCreate()
	draft := Draft{"nome": "Bob", "email": "bob@x.com", "telefone": "2"}
	err := ctrl.Submit(context.Background(), draft)
	require.Error(t, err)

	snap := ctrl.Snapshot()
	require.Equal(t, PhaseFormOpen, snap.Phase)
	require.NotNil(t, snap.Form)
	assert.Equal(t, "Bob", snap.Form.Draft.Get("nome"))
	assert.Equal(t, "bob@x.com", snap.Form.Draft.Get("email"))
	require.NotNil(t, snap.Notification)
	assert.Equal(t, models.SeverityError, snap.Notification.Severity)
	// No refresh on failure.
	assert.Equal(t, 1, adapter.listCalls)
}

func TestControllerEditNoopUpdateSucceeds(t *testing.T) {
	adapter := &mockStudentAdapter{students: []models.Student{{ID: 1, Nome: "Ana", Email: "ana@x.com", Telefone: "1"}}}
	ctrl := newTestController(adapter)
	ctrl.Refresh(context.Background())

	ctrl.OpenEdit(1)
	snap := ctrl.Snapshot()
	require.NotNil(t, snap.Form)
	assert.Equal(t, FormEdit, snap.Form.Mode)
	assert.Equal(t, int64(1), snap.Form.Key)
	assert.Equal(t, "Ana", snap.Form.Draft.Get("nome"))

	err := ctrl.Submit(context.Background(), snap.Form.Draft)
	require.NoError(t, err)

	snap = ctrl.Snapshot()
	assert.Nil(t, snap.Form)
	require.NotNil(t, snap.Notification)
	assert.Equal(t, "Aluno atualizado com sucesso!", snap.Notification.Message)
	assert.Equal(t, 1, adapter.updateCalls)
	require.Len(t, snap.Entities, 1)
	assert.Equal(t, "Ana", snap.Entities[0].Nome)
}

func TestControllerEditMissingEntity(t *testing.T) {
	adapter := &mockStudentAdapter{students: []models.Student{{ID: 1, Nome: "Ana"}}}
	ctrl := newTestController(adapter)
	ctrl.Refresh(context.Background())

	ctrl.OpenEdit(99)
	snap := ctrl.Snapshot()
	assert.Nil(t, snap.Form)
	require.NotNil(t, snap.Notification)
	assert.Equal(t, models.SeverityError, snap.Notification.Severity)
}

func TestControllerDeleteFlow(t *testing.T) {
	adapter := &mockStudentAdapter{students: []models.Student{
		{ID: 1, Nome: "Ana"},
		{ID: 2, Nome: "Bob"},
	}}
	ctrl := newTestController(adapter)
	ctrl.Refresh(context.Background())

	ctrl.RequestDelete(1)
	snap := ctrl.Snapshot()
	assert.Equal(t, PhasePendingConfirm, snap.Phase)
	require.NotNil(t, snap.PendingKey)
	assert.Equal(t, int64(1), *snap.PendingKey)
	// Nothing reached the upstream yet.
	assert.Equal(t, 0, adapter.deleteCalls)

	err := ctrl.ConfirmDelete(context.Background())
	require.NoError(t, err)

	snap = ctrl.Snapshot()
	assert.Nil(t, snap.PendingKey)
	require.NotNil(t, snap.Notification)
	assert.Equal(t, "Aluno excluído com sucesso!", snap.Notification.Message)
	require.Len(t, snap.Entities, 1)
	assert.Equal(t, int64(2), snap.Entities[0].ID)
}

func TestControllerDeleteCancel(t *testing.T) {
	adapter := &mockStudentAdapter{students: []models.Student{{ID: 1, Nome: "Ana"}}}
	ctrl := newTestController(adapter)
	ctrl.Refresh(context.Background())

	ctrl.RequestDelete(1)
	ctrl.CancelDelete()

	snap := ctrl.Snapshot()
	assert.Equal(t, PhaseLoaded, snap.Phase)
	assert.Equal(t, 0, adapter.deleteCalls)
	assert.Len(t, snap.Entities, 1)
}

func TestControllerDeleteNotFoundLeavesList(t *testing.T) {
	adapter := &mockStudentAdapter{
		students:  []models.Student{{ID: 1, Nome: "Ana"}},
		deleteErr: appErrors.Clone(appErrors.ErrNotFound, "aluno não encontrado"),
	}
	ctrl := newTestController(adapter)
	ctrl.Refresh(context.Background())

	ctrl.RequestDelete(1)
	err := ctrl.ConfirmDelete(context.Background())
	require.Error(t, err)

	snap := ctrl.Snapshot()
	require.NotNil(t, snap.Notification)
	assert.Equal(t, models.SeverityError, snap.Notification.Severity)
	assert.Equal(t, "Erro ao excluir aluno", snap.Notification.Message)
	// Still there until the next successful fetch says otherwise.
	require.Len(t, snap.Entities, 1)
	assert.Equal(t, int64(1), snap.Entities[0].ID)
	assert.Equal(t, 1, adapter.listCalls)
}

func TestControllerSubmitInFlightGuard(t *testing.T) {
	adapter := &mockStudentAdapter{}
	ctrl := newTestController(adapter)
	ctrl.Refresh(context.Background())
	ctrl.OpenCreate()

	release := make(chan struct{})
	blocked := &blockingAdapter{inner: adapter, release: release, entered: make(chan struct{})}
	ctrl.adapter = blocked

	done := make(chan error, 1)
	go func() {
		done <- ctrl.Submit(context.Background(), Draft{"nome": "Bob", "email": "bob@x.com", "telefone": "2"})
	}()

	// Wait for the first submit to reach the adapter.
	<-blocked.entered

	err := ctrl.Submit(context.Background(), Draft{"nome": "Bob", "email": "bob@x.com", "telefone": "2"})
	assert.ErrorIs(t, err, ErrSubmitInFlight)

	close(release)
	require.NoError(t, <-done)
	assert.Equal(t, 1, adapter.createCalls)
}

type blockingAdapter struct {
	inner   *mockStudentAdapter
	release chan struct{}
	entered chan struct{}
	once    bool
}

func (b *blockingAdapter) List(ctx context.Context) ([]models.Student, error) {
	return b.inner.List(ctx)
}

func (b *blockingAdapter) Create(ctx context.Context, draft Draft) (models.Student, error) {
	if !b.once {
		b.once = true
		close(b.entered)
	}
	<-b.release
	return b.inner.Create(ctx, draft)
}

func (b *blockingAdapter) Update(ctx context.Context, id int64, draft Draft) (models.Student, error) {
	return b.inner.Update(ctx, id, draft)
}

func (b *blockingAdapter) Delete(ctx context.Context, id int64) error {
	return b.inner.Delete(ctx, id)
}

type switchingAdapter struct {
	first   *mockStudentAdapter
	second  *mockStudentAdapter
	entered chan struct{}
	calls   int
}

func (s *switchingAdapter) List(ctx context.Context) ([]models.Student, error) {
	s.calls++
	if s.calls == 1 {
		close(s.entered)
		return s.first.List(ctx)
	}
	return s.second.List(ctx)
}

func (s *switchingAdapter) Create(ctx context.Context, draft Draft) (models.Student, error) {
	return s.first.Create(ctx, draft)
}

func (s *switchingAdapter) Update(ctx context.Context, id int64, draft Draft) (models.Student, error) {
	return s.first.Update(ctx, id, draft)
}

func (s *switchingAdapter) Delete(ctx context.Context, id int64) error {
	return s.first.Delete(ctx, id)
}

func TestControllerStaleFetchDropped(t *testing.T) {
	slow := &mockStudentAdapter{
		students: []models.Student{{ID: 1, Nome: "Old"}},
		listGate: make(chan struct{}),
	}
	fast := &mockStudentAdapter{students: []models.Student{{ID: 2, Nome: "New"}}}
	adapter := &switchingAdapter{first: slow, second: fast, entered: make(chan struct{})}
	ctrl := New[models.Student, int64](adapter, studentDesc, 6*time.Second, zap.NewNop())

	done := make(chan struct{})
	go func() {
		ctrl.Refresh(context.Background())
		close(done)
	}()

	// A second refresh starts and finishes while the first hangs.
	<-adapter.entered
	ctrl.Refresh(context.Background())
	snap := ctrl.Snapshot()
	require.Len(t, snap.Entities, 1)
	assert.Equal(t, "New", snap.Entities[0].Nome)

	// Releasing the superseded fetch must not clobber the snapshot.
	close(slow.listGate)
	<-done

	snap = ctrl.Snapshot()
	require.Len(t, snap.Entities, 1)
	assert.Equal(t, "New", snap.Entities[0].Nome)
	assert.Equal(t, PhaseLoaded, snap.Phase)
}

func TestControllerNotificationPolicy(t *testing.T) {
	adapter := &mockStudentAdapter{}
	ctrl := newTestController(adapter)

	current := time.Now()
	ctrl.now = func() time.Time { return current }

	ctrl.Refresh(context.Background())
	ctrl.OpenCreate()
	require.NoError(t, ctrl.Submit(context.Background(), Draft{"nome": "Bob", "email": "bob@x.com", "telefone": "2"}))

	snap := ctrl.Snapshot()
	require.NotNil(t, snap.Notification)
	assert.Equal(t, models.SeveritySuccess, snap.Notification.Severity)

	// A newer notification replaces the active one.
	ctrl.OpenEdit(99)
	snap = ctrl.Snapshot()
	require.NotNil(t, snap.Notification)
	assert.Equal(t, models.SeverityError, snap.Notification.Severity)

	// And it auto-dismisses after the TTL.
	current = current.Add(6*time.Second + time.Millisecond)
	assert.Nil(t, ctrl.Snapshot().Notification)
}

func TestControllerDismissNotification(t *testing.T) {
	adapter := &mockStudentAdapter{listErr: appErrors.Clone(appErrors.ErrNetwork, "down")}
	ctrl := newTestController(adapter)
	ctrl.Refresh(context.Background())

	require.NotNil(t, ctrl.Snapshot().Notification)
	ctrl.DismissNotification()
	assert.Nil(t, ctrl.Snapshot().Notification)
}
