package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/noah-isme/escola-admin-console/internal/controller"
)

// RouteConfig toggles optional route groups.
type RouteConfig struct {
	ExportsEnabled bool
}

// Register mounts the static route table: the landing page, one page per
// resource and its intent endpoints.
func Register(r *gin.Engine, sessions *controller.Registry, cfg RouteConfig) {
	home := NewHomeHandler()
	students := NewStudentHandler(sessions)
	courses := NewCourseHandler(sessions)
	enrollments := NewEnrollmentHandler(sessions)

	r.GET("/", home.Page)

	r.GET("/alunos", students.Page)
	r.POST("/alunos", students.Submit)
	r.POST("/alunos/form", students.OpenCreate)
	r.POST("/alunos/form/close", students.CloseForm)
	r.POST("/alunos/:id/form", students.OpenEdit)
	r.POST("/alunos/:id/delete", students.RequestDelete)
	r.POST("/alunos/delete/confirm", students.ConfirmDelete)
	r.POST("/alunos/delete/cancel", students.CancelDelete)
	r.POST("/alunos/notification/dismiss", students.DismissNotification)

	r.GET("/cursos", courses.Page)
	r.POST("/cursos", courses.Submit)
	r.POST("/cursos/form", courses.OpenCreate)
	r.POST("/cursos/form/close", courses.CloseForm)
	r.POST("/cursos/:codigo/form", courses.OpenEdit)
	r.POST("/cursos/notification/dismiss", courses.DismissNotification)

	r.GET("/matriculas", enrollments.Page)
	r.POST("/matriculas", enrollments.Submit)
	r.POST("/matriculas/form", enrollments.OpenForm)
	r.POST("/matriculas/form/close", enrollments.CloseForm)
	r.POST("/matriculas/notification/dismiss", enrollments.DismissNotification)

	if cfg.ExportsEnabled {
		exports := NewExportHandler(sessions)
		r.GET("/alunos/export", exports.Students)
		r.GET("/cursos/export", exports.Courses)
	}
}
