package controller

import (
	"context"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/escola-admin-console/internal/client"
	"github.com/noah-isme/escola-admin-console/internal/models"
	appErrors "github.com/noah-isme/escola-admin-console/pkg/errors"
)

// StudentController drives the students page.
type StudentController = Controller[models.Student, int64]

// studentAdapter decodes drafts into student payloads, validates them
// and forwards to the upstream client.
type studentAdapter struct {
	students *client.StudentClient
	validate *validator.Validate
}

func (a *studentAdapter) payload(draft Draft) (models.StudentPayload, error) {
	payload := models.StudentPayload{
		Nome:     draft.Get("nome"),
		Email:    draft.Get("email"),
		Telefone: draft.Get("telefone"),
	}
	if err := a.validate.Struct(payload); err != nil {
		return payload, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid student draft")
	}
	return payload, nil
}

func (a *studentAdapter) List(ctx context.Context) ([]models.Student, error) {
	return a.students.List(ctx)
}

func (a *studentAdapter) Create(ctx context.Context, draft Draft) (models.Student, error) {
	payload, err := a.payload(draft)
	if err != nil {
		return models.Student{}, err
	}
	created, err := a.students.Create(ctx, payload)
	if err != nil {
		return models.Student{}, err
	}
	return *created, nil
}

func (a *studentAdapter) Update(ctx context.Context, id int64, draft Draft) (models.Student, error) {
	payload, err := a.payload(draft)
	if err != nil {
		return models.Student{}, err
	}
	updated, err := a.students.Update(ctx, id, payload)
	if err != nil {
		return models.Student{}, err
	}
	return *updated, nil
}

func (a *studentAdapter) Delete(ctx context.Context, id int64) error {
	return a.students.Delete(ctx, id)
}

// NewStudentController wires the students page state machine.
func NewStudentController(api *client.Client, validate *validator.Validate, notifyTTL time.Duration, logger *zap.Logger) *StudentController {
	if validate == nil {
		validate = validator.New()
	}
	adapter := &studentAdapter{students: api.Students(), validate: validate}
	desc := Descriptor[models.Student, int64]{
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
	return New(Adapter[models.Student, int64](adapter), desc, notifyTTL, logger)
}
