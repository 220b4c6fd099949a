package controller

import (
	"context"
	"strconv"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/escola-admin-console/internal/client"
	"github.com/noah-isme/escola-admin-console/internal/models"
	appErrors "github.com/noah-isme/escola-admin-console/pkg/errors"
)

// EnrollmentQueryKind selects which aggregate lookup the page shows.
type EnrollmentQueryKind string

const (
	QueryNone      EnrollmentQueryKind = ""
	QueryByStudent EnrollmentQueryKind = "aluno"
	QueryByCourse  EnrollmentQueryKind = "curso"
)

// EnrollmentSnapshot is the render-ready view of the enrollments page.
type EnrollmentSnapshot struct {
	Loading      bool
	FormOpen     bool
	Draft        Draft
	QueryKind    EnrollmentQueryKind
	QueryTerm    string
	ByStudent    *models.StudentEnrollments
	ByCourse     *models.CourseEnrollments
	Notification *models.Notification
}

// EnrollmentController drives the enrollments page. Enrollments are
// creation-only; the page otherwise runs the two upstream lookups, by
// student name or by course code.
type EnrollmentController struct {
	enrollments *client.EnrollmentClient
	validate    *validator.Validate
	notifyTTL   time.Duration
	now         func() time.Time
	logger      *zap.Logger

	mu           sync.Mutex
	loading      bool
	queryGen     uint64
	queryKind    EnrollmentQueryKind
	queryTerm    string
	byStudent    *models.StudentEnrollments
	byCourse     *models.CourseEnrollments
	form         Draft
	formOpen     bool
	submitting   bool
	notification *models.Notification
}

// NewEnrollmentController wires the enrollments page state machine.
func NewEnrollmentController(api *client.Client, validate *validator.Validate, notifyTTL time.Duration, logger *zap.Logger) *EnrollmentController {
	if validate == nil {
		validate = validator.New()
	}
	if notifyTTL <= 0 {
		notifyTTL = 6 * time.Second
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &EnrollmentController{
		enrollments: api.Enrollments(),
		validate:    validate,
		notifyTTL:   notifyTTL,
		now:         time.Now,
		logger:      logger,
	}
}

// Query runs one of the two aggregate lookups and replaces the page's
// result snapshot. A later query supersedes an in-flight one.
func (c *EnrollmentController) Query(ctx context.Context, kind EnrollmentQueryKind, term string) {
	if term == "" || (kind != QueryByStudent && kind != QueryByCourse) {
		c.mu.Lock()
		c.queryKind = QueryNone
		c.queryTerm = ""
		c.byStudent = nil
		c.byCourse = nil
		c.mu.Unlock()
		return
	}

	c.mu.Lock()
	c.queryGen++
	gen := c.queryGen
	c.loading = true
	c.queryKind = kind
	c.queryTerm = term
	c.mu.Unlock()

	var (
		byStudent *models.StudentEnrollments
		byCourse  *models.CourseEnrollments
		err       error
	)
	if kind == QueryByStudent {
		byStudent, err = c.enrollments.ByStudent(ctx, term)
	} else {
		byCourse, err = c.enrollments.ByCourse(ctx, term)
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if gen != c.queryGen {
		return
	}
	c.loading = false
	c.byStudent = nil
	c.byCourse = nil
	if err != nil {
		if appErrors.Is(err, appErrors.ErrNotFound) {
			c.notifyLocked("Nenhuma matrícula encontrada", models.SeverityError)
			return
		}
		c.logger.Warn("enrollment_query_failed", zap.String("kind", string(kind)), zap.Error(err))
		c.notifyLocked("Erro ao buscar matrículas", models.SeverityError)
		return
	}
	c.byStudent = byStudent
	c.byCourse = byCourse
}

// OpenForm opens the create form with an empty draft.
func (c *EnrollmentController) OpenForm() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.formOpen = true
	c.form = Draft{"aluno_id": "", "curso_id": ""}
}

// CloseForm discards the draft.
func (c *EnrollmentController) CloseForm() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.formOpen = false
	c.form = nil
}

// Submit creates an enrollment from the draft. Failure keeps the form
// open with the entered values; success closes it and re-runs the
// current query so the new link shows up.
func (c *EnrollmentController) Submit(ctx context.Context, draft Draft) error {
	c.mu.Lock()
	if !c.formOpen {
		c.mu.Unlock()
		return nil
	}
	if c.submitting {
		c.mu.Unlock()
		return ErrSubmitInFlight
	}
	c.submitting = true
	c.form = draft.Clone()
	kind := c.queryKind
	term := c.queryTerm
	c.mu.Unlock()

	payload, err := c.payload(draft)
	if err == nil {
		_, err = c.enrollments.Create(ctx, payload)
	}

	c.mu.Lock()
	c.submitting = false
	if err != nil {
		c.logger.Warn("enrollment_submit_failed", zap.Error(err))
		c.notifyLocked("Erro ao criar matrícula", models.SeverityError)
		c.mu.Unlock()
		return err
	}
	c.formOpen = false
	c.form = nil
	c.notifyLocked("Matrícula criada com sucesso!", models.SeveritySuccess)
	c.mu.Unlock()

	if kind != QueryNone {
		c.Query(ctx, kind, term)
	}
	return nil
}

// DismissNotification removes the active notification ahead of expiry.
func (c *EnrollmentController) DismissNotification() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.notification = nil
}

// Snapshot returns the render-ready view of the page.
func (c *EnrollmentController) Snapshot() EnrollmentSnapshot {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.notification != nil && !c.notification.Active(c.now()) {
		c.notification = nil
	}

	snap := EnrollmentSnapshot{
		Loading:   c.loading,
		FormOpen:  c.formOpen,
		Draft:     c.form.Clone(),
		QueryKind: c.queryKind,
		QueryTerm: c.queryTerm,
	}
	if c.byStudent != nil {
		result := *c.byStudent
		snap.ByStudent = &result
	}
	if c.byCourse != nil {
		result := *c.byCourse
		snap.ByCourse = &result
	}
	if c.notification != nil {
		notification := *c.notification
		snap.Notification = &notification
	}
	return snap
}

func (c *EnrollmentController) payload(draft Draft) (models.EnrollmentPayload, error) {
	alunoID, errAluno := strconv.ParseInt(draft.Get("aluno_id"), 10, 64)
	cursoID, errCurso := strconv.ParseInt(draft.Get("curso_id"), 10, 64)
	if errAluno != nil || errCurso != nil {
		return models.EnrollmentPayload{}, appErrors.Clone(appErrors.ErrValidation, "identificadores inválidos")
	}
	payload := models.EnrollmentPayload{AlunoID: alunoID, CursoID: cursoID}
	if err := c.validate.Struct(payload); err != nil {
		return payload, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid enrollment draft")
	}
	return payload, nil
}

func (c *EnrollmentController) notifyLocked(message string, severity models.Severity) {
	c.notification = &models.Notification{
		Message:   message,
		Severity:  severity,
		ExpiresAt: c.now().Add(c.notifyTTL),
	}
}
