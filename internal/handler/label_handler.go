package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"planboard/internal/workspace"
)

type LabelHandler struct {
	app *workspace.App
}

func NewLabelHandler(app *workspace.App) *LabelHandler {
	return &LabelHandler{app: app}
}

// LabelRequest представляет запрос на создание метки
type LabelRequest struct {
	Name  string `json:"name" binding:"required,max=60"`
	Color string `json:"color" binding:"omitempty,hexcolor"`
}

// Create создает метку проекта
func (h *LabelHandler) Create(c *gin.Context) {
	var req LabelRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		_ = c.Error(err)
		return
	}

	l, err := h.app.CreateLabel(c.Param("slug"), req.Name, req.Color)
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusCreated, l)
}

// Delete удаляет метку и снимает ее со всех задач
func (h *LabelHandler) Delete(c *gin.Context) {
	if err := h.app.DeleteLabel(c.Param("id")); err != nil {
		_ = c.Error(err)
		return
	}
	c.Status(http.StatusNoContent)
}
