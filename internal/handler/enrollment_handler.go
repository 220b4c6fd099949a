package handler

import (
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/escola-admin-console/internal/controller"
)

// EnrollmentHandler renders the enrollments page: a create form plus the
// two aggregate lookups (courses of a student, students of a course).
type EnrollmentHandler struct {
	sessions *controller.Registry
}

// NewEnrollmentHandler constructs EnrollmentHandler.
func NewEnrollmentHandler(sessions *controller.Registry) *EnrollmentHandler {
	return &EnrollmentHandler{sessions: sessions}
}

type enrollmentPageData struct {
	Nav      string
	Title    string
	Snapshot controller.EnrollmentSnapshot
}

// Page godoc
// @Summary Enrollments page
// @Tags Enrollments
// @Produce html
// @Param tipo query string false "Lookup kind: aluno or curso"
// @Param q query string false "Student name or course code"
// @Router /matriculas [get]
func (h *EnrollmentHandler) Page(c *gin.Context) {
	ctrl := resolveSession(c, h.sessions).Enrollments
	if c.Request.URL.Query().Has("q") {
		ctrl.Query(c.Request.Context(), controller.EnrollmentQueryKind(c.Query("tipo")), c.Query("q"))
	}

	c.HTML(http.StatusOK, "enrollments.tmpl", enrollmentPageData{
		Nav:      "matriculas",
		Title:    "Gerenciamento de Matrículas",
		Snapshot: ctrl.Snapshot(),
	})
}

// OpenForm opens the create form.
func (h *EnrollmentHandler) OpenForm(c *gin.Context) {
	ctrl := resolveSession(c, h.sessions).Enrollments
	ctrl.OpenForm()
	h.redirect(c, ctrl)
}

// CloseForm discards the draft.
func (h *EnrollmentHandler) CloseForm(c *gin.Context) {
	ctrl := resolveSession(c, h.sessions).Enrollments
	ctrl.CloseForm()
	h.redirect(c, ctrl)
}

// Submit creates an enrollment from the form draft.
func (h *EnrollmentHandler) Submit(c *gin.Context) {
	ctrl := resolveSession(c, h.sessions).Enrollments
	draft := controller.Draft{
		"aluno_id": c.PostForm("aluno_id"),
		"curso_id": c.PostForm("curso_id"),
	}
	_ = ctrl.Submit(c.Request.Context(), draft)
	h.redirect(c, ctrl)
}

// DismissNotification removes the active toast.
func (h *EnrollmentHandler) DismissNotification(c *gin.Context) {
	ctrl := resolveSession(c, h.sessions).Enrollments
	ctrl.DismissNotification()
	h.redirect(c, ctrl)
}

func (h *EnrollmentHandler) redirect(c *gin.Context, ctrl *controller.EnrollmentController) {
	snap := ctrl.Snapshot()
	target := "/matriculas"
	if snap.QueryKind != controller.QueryNone && snap.QueryTerm != "" {
		target += "?tipo=" + url.QueryEscape(string(snap.QueryKind)) + "&q=" + url.QueryEscape(snap.QueryTerm)
	}
	c.Redirect(http.StatusSeeOther, target)
}
