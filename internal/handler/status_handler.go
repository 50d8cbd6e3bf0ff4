package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"planboard/internal/model"
	"planboard/internal/service"
	"planboard/internal/workspace"
)

type StatusHandler struct {
	app *workspace.App
}

func NewStatusHandler(app *workspace.App) *StatusHandler {
	return &StatusHandler{app: app}
}

// StatusRequest представляет запрос на создание статуса
type StatusRequest struct {
	Name     string `json:"name" binding:"required,max=60"`
	Color    string `json:"color" binding:"omitempty,hexcolor"`
	Category string `json:"category" binding:"omitempty,oneof=backlog todo in_progress done cancelled"`
}

// StatusUpdateRequest представляет запрос на изменение статуса
type StatusUpdateRequest struct {
	Name     *string `json:"name" binding:"omitempty,min=1,max=60"`
	Color    *string `json:"color" binding:"omitempty,hexcolor"`
	Category *string `json:"category" binding:"omitempty,oneof=backlog todo in_progress done cancelled"`
}

// StatusReorderRequest содержит новый порядок всех статусов проекта
type StatusReorderRequest struct {
	StatusIDs []string `json:"status_ids" binding:"required,min=1"`
}

// GetAll возвращает статусы проекта в порядке workflow
func (h *StatusHandler) GetAll(c *gin.Context) {
	statuses, err := h.app.Statuses(c.Param("slug"))
	if err != nil {
		_ = c.Error(err)
		return
	}
	if statuses == nil {
		statuses = []*model.Status{}
	}
	c.JSON(http.StatusOK, statuses)
}

// Create добавляет статус в конец workflow
func (h *StatusHandler) Create(c *gin.Context) {
	var req StatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		_ = c.Error(err)
		return
	}

	s, err := h.app.CreateStatus(c.Param("slug"), req.Name, req.Color, model.StatusCategory(req.Category))
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusCreated, s)
}

// Update переименовывает статус или меняет его цвет и категорию
func (h *StatusHandler) Update(c *gin.Context) {
	var req StatusUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		_ = c.Error(err)
		return
	}

	patch := service.StatusPatch{Name: req.Name, Color: req.Color}
	if req.Category != nil {
		category := model.StatusCategory(*req.Category)
		patch.Category = &category
	}
	s, err := h.app.UpdateStatus(c.Param("id"), patch)
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, s)
}

// Delete удаляет статус. Если статус используется, нужен ?confirm=true,
// и задачи переносятся в первый оставшийся статус.
func (h *StatusHandler) Delete(c *gin.Context) {
	confirmed, _ := strconv.ParseBool(c.DefaultQuery("confirm", "false"))

	fallback, err := h.app.DeleteStatus(c.Param("id"), confirmed)
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"moved_to": fallback})
}

// Reorder задает новый порядок статусов
func (h *StatusHandler) Reorder(c *gin.Context) {
	var req StatusReorderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		_ = c.Error(err)
		return
	}

	statuses, err := h.app.ReorderStatuses(c.Param("slug"), req.StatusIDs)
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, statuses)
}
