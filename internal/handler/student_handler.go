package handler

import (
	"net/http"
	"net/url"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/escola-admin-console/internal/controller"
	"github.com/noah-isme/escola-admin-console/internal/models"
)

// StudentHandler renders the students page and translates its HTTP
// intents into controller transitions. All mutating intents follow
// post/redirect/get back to the page.
type StudentHandler struct {
	sessions *controller.Registry
}

// NewStudentHandler constructs StudentHandler.
func NewStudentHandler(sessions *controller.Registry) *StudentHandler {
	return &StudentHandler{sessions: sessions}
}

type studentPageData struct {
	Nav      string
	Title    string
	Snapshot controller.Snapshot[models.Student, int64]
}

// Page godoc
// @Summary Students page
// @Tags Students
// @Produce html
// @Param q query string false "Search by name or email"
// @Router /alunos [get]
func (h *StudentHandler) Page(c *gin.Context) {
	ctrl := resolveSession(c, h.sessions).Students
	ctrl.EnsureLoaded(c.Request.Context())
	if c.Request.URL.Query().Has("q") {
		ctrl.SetSearch(c.Query("q"))
	}

	c.HTML(http.StatusOK, "students.tmpl", studentPageData{
		Nav:      "alunos",
		Title:    "Gerenciamento de Alunos",
		Snapshot: ctrl.Snapshot(),
	})
}

// OpenCreate opens the create form.
func (h *StudentHandler) OpenCreate(c *gin.Context) {
	ctrl := resolveSession(c, h.sessions).Students
	ctrl.OpenCreate()
	h.redirect(c, ctrl)
}

// OpenEdit opens the edit form for one student.
func (h *StudentHandler) OpenEdit(c *gin.Context) {
	ctrl := resolveSession(c, h.sessions).Students
	if id, err := strconv.ParseInt(c.Param("id"), 10, 64); err == nil {
		ctrl.OpenEdit(id)
	}
	h.redirect(c, ctrl)
}

// CloseForm discards the open form and its draft.
func (h *StudentHandler) CloseForm(c *gin.Context) {
	ctrl := resolveSession(c, h.sessions).Students
	ctrl.CloseForm()
	h.redirect(c, ctrl)
}

// Submit persists the form draft. The outcome lands in the page
// notification; a failed submit keeps the form open with the entered
// values.
func (h *StudentHandler) Submit(c *gin.Context) {
	ctrl := resolveSession(c, h.sessions).Students
	draft := controller.Draft{
		"nome":     c.PostForm("nome"),
		"email":    c.PostForm("email"),
		"telefone": c.PostForm("telefone"),
	}
	_ = ctrl.Submit(c.Request.Context(), draft)
	h.redirect(c, ctrl)
}

// RequestDelete stages the delete confirmation gate.
func (h *StudentHandler) RequestDelete(c *gin.Context) {
	ctrl := resolveSession(c, h.sessions).Students
	if id, err := strconv.ParseInt(c.Param("id"), 10, 64); err == nil {
		ctrl.RequestDelete(id)
	}
	h.redirect(c, ctrl)
}

// ConfirmDelete performs the staged delete.
func (h *StudentHandler) ConfirmDelete(c *gin.Context) {
	ctrl := resolveSession(c, h.sessions).Students
	_ = ctrl.ConfirmDelete(c.Request.Context())
	h.redirect(c, ctrl)
}

// CancelDelete clears the staged delete.
func (h *StudentHandler) CancelDelete(c *gin.Context) {
	ctrl := resolveSession(c, h.sessions).Students
	ctrl.CancelDelete()
	h.redirect(c, ctrl)
}

// DismissNotification removes the active toast.
func (h *StudentHandler) DismissNotification(c *gin.Context) {
	ctrl := resolveSession(c, h.sessions).Students
	ctrl.DismissNotification()
	h.redirect(c, ctrl)
}

func (h *StudentHandler) redirect(c *gin.Context, ctrl *controller.StudentController) {
	target := "/alunos"
	if search := ctrl.Snapshot().Search; search != "" {
		target += "?q=" + url.QueryEscape(search)
	}
	c.Redirect(http.StatusSeeOther, target)
}
