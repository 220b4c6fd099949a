package handler

import (
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/escola-admin-console/internal/controller"
	"github.com/noah-isme/escola-admin-console/internal/models"
)

// CourseHandler renders the courses page and its intents. Courses have
// no delete flow; the upstream API does not expose one.
type CourseHandler struct {
	sessions *controller.Registry
}

// NewCourseHandler constructs CourseHandler.
func NewCourseHandler(sessions *controller.Registry) *CourseHandler {
	return &CourseHandler{sessions: sessions}
}

type coursePageData struct {
	Nav      string
	Title    string
	Snapshot controller.Snapshot[models.Course, string]
}

// Page godoc
// @Summary Courses page
// @Tags Courses
// @Produce html
// @Param q query string false "Search by name or code"
// @Router /cursos [get]
func (h *CourseHandler) Page(c *gin.Context) {
	ctrl := resolveSession(c, h.sessions).Courses
	ctrl.EnsureLoaded(c.Request.Context())
	if c.Request.URL.Query().Has("q") {
		ctrl.SetSearch(c.Query("q"))
	}

	c.HTML(http.StatusOK, "courses.tmpl", coursePageData{
		Nav:      "cursos",
		Title:    "Gerenciamento de Cursos",
		Snapshot: ctrl.Snapshot(),
	})
}

// OpenCreate opens the create form.
func (h *CourseHandler) OpenCreate(c *gin.Context) {
	ctrl := resolveSession(c, h.sessions).Courses
	ctrl.OpenCreate()
	h.redirect(c, ctrl)
}

// OpenEdit opens the edit form for one course, addressed by code.
func (h *CourseHandler) OpenEdit(c *gin.Context) {
	ctrl := resolveSession(c, h.sessions).Courses
	ctrl.OpenEdit(c.Param("codigo"))
	h.redirect(c, ctrl)
}

// CloseForm discards the open form and its draft.
func (h *CourseHandler) CloseForm(c *gin.Context) {
	ctrl := resolveSession(c, h.sessions).Courses
	ctrl.CloseForm()
	h.redirect(c, ctrl)
}

// Submit persists the form draft.
func (h *CourseHandler) Submit(c *gin.Context) {
	ctrl := resolveSession(c, h.sessions).Courses
	draft := controller.Draft{
		"nome":      c.PostForm("nome"),
		"codigo":    c.PostForm("codigo"),
		"descricao": c.PostForm("descricao"),
	}
	_ = ctrl.Submit(c.Request.Context(), draft)
	h.redirect(c, ctrl)
}

// DismissNotification removes the active toast.
func (h *CourseHandler) DismissNotification(c *gin.Context) {
	ctrl := resolveSession(c, h.sessions).Courses
	ctrl.DismissNotification()
	h.redirect(c, ctrl)
}

func (h *CourseHandler) redirect(c *gin.Context, ctrl *controller.CourseController) {
	target := "/cursos"
	if search := ctrl.Snapshot().Search; search != "" {
		target += "?q=" + url.QueryEscape(search)
	}
	c.Redirect(http.StatusSeeOther, target)
}
