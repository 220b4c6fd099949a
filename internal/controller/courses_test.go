package controller

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/noah-isme/escola-admin-console/internal/client"
	"github.com/noah-isme/escola-admin-console/internal/models"
	"github.com/noah-isme/escola-admin-console/pkg/config"
)

func newCourseTestController(t *testing.T, handler http.Handler) *CourseController {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	api := client.New(config.SchoolAPIConfig{BaseURL: server.URL, Timeout: 2 * time.Second}, zap.NewNop())
	return NewCourseController(api, nil, 6*time.Second, zap.NewNop())
}

func TestCourseDeleteIsBlocked(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/cursos", func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode([]models.Course{
			{Nome: "Matemática", Codigo: "MAT101", Descricao: "Aritmética e álgebra básicas"},
		})
	})
	ctrl := newCourseTestController(t, mux)
	ctrl.Refresh(context.Background())

	// The delete flow never opens for courses.
	ctrl.RequestDelete("MAT101")
	snap := ctrl.Snapshot()
	assert.Equal(t, PhaseLoaded, snap.Phase)
	assert.Nil(t, snap.PendingKey)
}

func TestCourseInvalidDraftSkipsUpstream(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/cursos", func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost {
			t.Error("upstream must not see an invalid draft")
			return
		}
		_ = json.NewEncoder(w).Encode([]models.Course{})
	})
	ctrl := newCourseTestController(t, mux)
	ctrl.Refresh(context.Background())
	ctrl.OpenCreate()

	// Codigo below the minimum length fails local validation.
	err := ctrl.Submit(context.Background(), Draft{"nome": "Matemática", "codigo": "M", "descricao": "Aritmética e álgebra básicas"})
	require.Error(t, err)

	snap := ctrl.Snapshot()
	require.Equal(t, PhaseFormOpen, snap.Phase)
	assert.Equal(t, "M", snap.Form.Draft.Get("codigo"))
	require.NotNil(t, snap.Notification)
	assert.Equal(t, "Erro ao salvar curso", snap.Notification.Message)
}

func TestCourseEditFlow(t *testing.T) {
	updated := false
	mux := http.NewServeMux()
	mux.HandleFunc("/cursos", func(w http.ResponseWriter, r *http.Request) {
		nome := "Matemática"
		if updated {
			nome = "Matemática Avançada"
		}
		_ = json.NewEncoder(w).Encode([]models.Course{
			{Nome: nome, Codigo: "MAT101", Descricao: "Aritmética e álgebra básicas"},
		})
	})
	mux.HandleFunc("/cursos/MAT101", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPut, r.Method)
		var payload models.CoursePayload
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&payload))
		updated = true
		_ = json.NewEncoder(w).Encode(models.Course{Nome: payload.Nome, Codigo: payload.Codigo, Descricao: payload.Descricao})
	})
	ctrl := newCourseTestController(t, mux)
	ctrl.Refresh(context.Background())

	ctrl.OpenEdit("MAT101")
	snap := ctrl.Snapshot()
	require.NotNil(t, snap.Form)
	assert.Equal(t, "Matemática", snap.Form.Draft.Get("nome"))

	draft := snap.Form.Draft.Clone()
	draft["nome"] = "Matemática Avançada"
	require.NoError(t, ctrl.Submit(context.Background(), draft))

	snap = ctrl.Snapshot()
	assert.Nil(t, snap.Form)
	require.Len(t, snap.Entities, 1)
	assert.Equal(t, "Matemática Avançada", snap.Entities[0].Nome)
	require.NotNil(t, snap.Notification)
	assert.Equal(t, "Curso atualizado com sucesso!", snap.Notification.Message)
}
