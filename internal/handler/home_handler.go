package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// HomeHandler renders the landing page.
type HomeHandler struct{}

// NewHomeHandler constructs HomeHandler.
func NewHomeHandler() *HomeHandler {
	return &HomeHandler{}
}

type homePageData struct {
	Nav   string
	Title string
}

// Page godoc
// @Summary Landing page
// @Tags Console
// @Produce html
// @Router / [get]
func (h *HomeHandler) Page(c *gin.Context) {
	c.HTML(http.StatusOK, "home.tmpl", homePageData{
		Nav:   "home",
		Title: "Sistema de Gestão Escolar",
	})
}
