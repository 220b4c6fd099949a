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

// CourseController drives the courses page. Courses are keyed by their
// business code and cannot be deleted through the upstream.
type CourseController = Controller[models.Course, string]

type courseAdapter struct {
	courses  *client.CourseClient
	validate *validator.Validate
}

func (a *courseAdapter) payload(draft Draft) (models.CoursePayload, error) {
	payload := models.CoursePayload{
		Nome:      draft.Get("nome"),
		Codigo:    draft.Get("codigo"),
		Descricao: draft.Get("descricao"),
	}
	if err := a.validate.Struct(payload); err != nil {
		return payload, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid course draft")
	}
	return payload, nil
}

func (a *courseAdapter) List(ctx context.Context) ([]models.Course, error) {
	return a.courses.List(ctx)
}

func (a *courseAdapter) Create(ctx context.Context, draft Draft) (models.Course, error) {
	payload, err := a.payload(draft)
	if err != nil {
		return models.Course{}, err
	}
	created, err := a.courses.Create(ctx, payload)
	if err != nil {
		return models.Course{}, err
	}
	return *created, nil
}

func (a *courseAdapter) Update(ctx context.Context, codigo string, draft Draft) (models.Course, error) {
	payload, err := a.payload(draft)
	if err != nil {
		return models.Course{}, err
	}
	updated, err := a.courses.Update(ctx, codigo, payload)
	if err != nil {
		return models.Course{}, err
	}
	return *updated, nil
}

func (a *courseAdapter) Delete(ctx context.Context, codigo string) error {
	return appErrors.Clone(appErrors.ErrValidation, "cursos não podem ser removidos")
}

// NewCourseController wires the courses page state machine.
func NewCourseController(api *client.Client, validate *validator.Validate, notifyTTL time.Duration, logger *zap.Logger) *CourseController {
	if validate == nil {
		validate = validator.New()
	}
	adapter := &courseAdapter{courses: api.Courses(), validate: validate}
	desc := Descriptor[models.Course, string]{
		Name: "cursos",
		Key:  models.Course.Key,
		FilterText: func(c models.Course) []string {
			return []string{c.Nome, c.Codigo}
		},
		ToDraft: func(c models.Course) Draft {
			return Draft{"nome": c.Nome, "codigo": c.Codigo, "descricao": c.Descricao}
		},
		EmptyDraft: func() Draft {
			return Draft{"nome": "", "codigo": "", "descricao": ""}
		},
		CanDelete: false,
		Messages: Messages{
			LoadFailed:   "Erro ao carregar cursos",
			Saved:        "Curso criado com sucesso!",
			Updated:      "Curso atualizado com sucesso!",
			SaveFailed:   "Erro ao salvar curso",
			EditVanished: "Curso não encontrado na lista atual",
		},
	}
	return New(Adapter[models.Course, string](adapter), desc, notifyTTL, logger)
}
