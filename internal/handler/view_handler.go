package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"planboard/internal/render"
	"planboard/internal/viewstate"
	"planboard/internal/workspace"
)

type ViewHandler struct {
	app *workspace.App
}

func NewViewHandler(app *workspace.App) *ViewHandler {
	return &ViewHandler{app: app}
}

// EventRequest представляет событие пользователя для слушателя из кадра.
// Generation должен совпадать с поколением последнего рендера.
type EventRequest struct {
	Generation uint64       `json:"generation" binding:"required"`
	ListenerID string       `json:"listener_id" binding:"required"`
	Event      render.Event `json:"event"`
}

// Render отрисовывает вкладку проекта и возвращает кадр со слушателями
func (h *ViewHandler) Render(c *gin.Context) {
	f, err := h.app.Open(c.Request.Context(), c.Param("slug"), viewstate.Tab(c.Param("tab")))
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, f)
}

// Dispatch доставляет событие слушателю текущего рендера
func (h *ViewHandler) Dispatch(c *gin.Context) {
	var req EventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		_ = c.Error(err)
		return
	}

	resp, err := h.app.Dispatch(c.Request.Context(), req.Generation, req.ListenerID, req.Event)
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Workspace возвращает сведения о рабочем пространстве
func (h *ViewHandler) Workspace(c *gin.Context) {
	c.JSON(http.StatusOK, h.app.Workspace())
}
