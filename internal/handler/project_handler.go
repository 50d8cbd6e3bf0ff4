package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"planboard/internal/model"
	"planboard/internal/render"
	"planboard/internal/service"
	"planboard/internal/workspace"
)

type ProjectHandler struct {
	app *workspace.App
}

func NewProjectHandler(app *workspace.App) *ProjectHandler {
	return &ProjectHandler{app: app}
}

// ProjectRequest представляет запрос на создание проекта
type ProjectRequest struct {
	Name        string   `json:"name" binding:"required,max=120"`
	Identifier  string   `json:"identifier" binding:"omitempty,alphanum,max=8"`
	Description string   `json:"description"`
	Color       string   `json:"color" binding:"omitempty,hexcolor"`
	DefaultView string   `json:"default_view" binding:"omitempty,oneof=list board roadmap insights files members"`
	LeadID      *string  `json:"lead_id"`
	MemberIDs   []string `json:"member_ids"`
}

// ProjectUpdateRequest представляет запрос на изменение настроек проекта.
// Поля, которые не переданы, не меняются.
type ProjectUpdateRequest struct {
	Name        *string `json:"name" binding:"omitempty,min=1,max=120"`
	Identifier  *string `json:"identifier" binding:"omitempty,alphanum,max=8"`
	Description *string `json:"description"`
	Color       *string `json:"color" binding:"omitempty,hexcolor"`
	DefaultView *string `json:"default_view" binding:"omitempty,oneof=list board roadmap insights files members"`
	LeadID      *string `json:"lead_id"`
}

// ProjectUpdateResponse содержит проект и, если slug изменился, новый маршрут
type ProjectUpdateResponse struct {
	Project  *model.Project `json:"project"`
	Redirect *render.Route  `json:"redirect,omitempty"`
}

// DeleteProjectRequest требует ввести имя проекта для подтверждения
type DeleteProjectRequest struct {
	Confirmation string `json:"confirmation" binding:"required"`
}

// GetAll возвращает все проекты рабочего пространства
func (h *ProjectHandler) GetAll(c *gin.Context) {
	projects := h.app.Projects()
	if projects == nil {
		projects = []*model.Project{}
	}
	c.JSON(http.StatusOK, projects)
}

// Create создает новый проект со статусами по умолчанию
func (h *ProjectHandler) Create(c *gin.Context) {
	var req ProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		_ = c.Error(err)
		return
	}

	p, err := h.app.CreateProject(service.ProjectInput{
		Name:        req.Name,
		Identifier:  req.Identifier,
		Description: req.Description,
		Color:       req.Color,
		DefaultView: req.DefaultView,
		LeadID:      req.LeadID,
		MemberIDs:   req.MemberIDs,
	})
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusCreated, p)
}

// Update меняет настройки проекта
func (h *ProjectHandler) Update(c *gin.Context) {
	var req ProjectUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		_ = c.Error(err)
		return
	}

	p, redirect, err := h.app.UpdateProject(c.Param("slug"), service.ProjectPatch{
		Name:        req.Name,
		Identifier:  req.Identifier,
		Description: req.Description,
		Color:       req.Color,
		DefaultView: req.DefaultView,
		LeadID:      req.LeadID,
	})
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, ProjectUpdateResponse{Project: p, Redirect: redirect})
}

// ToggleArchive архивирует проект или возвращает его из архива
func (h *ProjectHandler) ToggleArchive(c *gin.Context) {
	p, err := h.app.ToggleProjectArchive(c.Param("slug"))
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, p)
}

// ToggleFavorite добавляет проект в избранное или убирает его оттуда
func (h *ProjectHandler) ToggleFavorite(c *gin.Context) {
	p, err := h.app.ToggleProjectFavorite(c.Param("slug"))
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, p)
}

// Delete удаляет проект вместе с задачами, статусами и файлами
func (h *ProjectHandler) Delete(c *gin.Context) {
	var req DeleteProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		_ = c.Error(err)
		return
	}

	if err := h.app.DeleteProject(c.Param("slug"), req.Confirmation); err != nil {
		_ = c.Error(err)
		return
	}
	c.Status(http.StatusNoContent)
}
