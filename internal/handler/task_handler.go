package handler

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"planboard/internal/bucket"
	"planboard/internal/dnd"
	"planboard/internal/model"
	"planboard/internal/service"
	"planboard/internal/workspace"
)

type TaskHandler struct {
	app *workspace.App
}

func NewTaskHandler(app *workspace.App) *TaskHandler {
	return &TaskHandler{app: app}
}

// TaskRequest представляет запрос на создание задачи
type TaskRequest struct {
	Title       string   `json:"title" binding:"required,max=255"`
	Description string   `json:"description"`
	StatusID    string   `json:"status_id" binding:"required"`
	PriorityID  *string  `json:"priority_id"`
	AssigneeID  *string  `json:"assignee_id"`
	StartDate   string   `json:"start_date" binding:"omitempty,isodate"`
	DueDate     string   `json:"due_date" binding:"omitempty,isodate"`
	LabelIDs    []string `json:"label_ids"`
}

// TaskUpdateRequest представляет запрос на изменение задачи.
// Приоритет и исполнитель передаются ключами корзин: "priority:<id>",
// "priority-none", "assignee:<id>", "unassigned". Пустая дата очищает поле.
type TaskUpdateRequest struct {
	Title       *string  `json:"title" binding:"omitempty,min=1,max=255"`
	Description *string  `json:"description"`
	StatusID    *string  `json:"status_id"`
	Priority    *string  `json:"priority"`
	Assignee    *string  `json:"assignee"`
	StartDate   *string  `json:"start_date" binding:"omitempty,isodate"`
	DueDate     *string  `json:"due_date" binding:"omitempty,isodate"`
	LabelIDs    []string `json:"label_ids"`
}

// TaskMoveRequest представляет запрос на перемещение задачи.
// Buckets - ключи корзин, TargetTaskID - задача, рядом с которой вставить.
type TaskMoveRequest struct {
	Buckets      []string `json:"buckets"`
	TargetTaskID string   `json:"target_task_id"`
	Side         string   `json:"side" binding:"omitempty,oneof=above below"`
}

// Create создает задачу в конце выбранного статуса
func (h *TaskHandler) Create(c *gin.Context) {
	var req TaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		_ = c.Error(err)
		return
	}

	in := service.TaskInput{
		Title:       req.Title,
		Description: req.Description,
		StatusID:    req.StatusID,
		PriorityID:  req.PriorityID,
		AssigneeID:  req.AssigneeID,
		LabelIDs:    req.LabelIDs,
	}
	var err error
	if in.StartDate, err = optionalDate(req.StartDate); err != nil {
		_ = c.Error(err)
		return
	}
	if in.DueDate, err = optionalDate(req.DueDate); err != nil {
		_ = c.Error(err)
		return
	}

	t, err := h.app.CreateTask(c.Param("slug"), in)
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusCreated, t)
}

// Update меняет поля задачи
func (h *TaskHandler) Update(c *gin.Context) {
	var req TaskUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		_ = c.Error(err)
		return
	}

	patch, err := req.patch()
	if err != nil {
		_ = c.Error(err)
		return
	}
	t, err := h.app.UpdateTask(c.Param("id"), patch)
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, t)
}

// Move переносит задачу в другие корзины и/или меняет ее позицию
func (h *TaskHandler) Move(c *gin.Context) {
	var req TaskMoveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		_ = c.Error(err)
		return
	}

	target := dnd.Target{TaskID: req.TargetTaskID, Side: dnd.ParseSide(req.Side)}
	for _, key := range req.Buckets {
		b, err := bucket.ParseKey(key)
		if err != nil {
			_ = c.Error(err)
			return
		}
		target.Buckets = append(target.Buckets, b)
	}

	res, err := h.app.MoveTask(c.Param("id"), target)
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"result": res, "message": res.Message()})
}

// Archive архивирует задачу
func (h *TaskHandler) Archive(c *gin.Context) {
	t, err := h.app.ArchiveTask(c.Param("id"))
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, t)
}

// Restore возвращает задачу из архива в конец ее статуса
func (h *TaskHandler) Restore(c *gin.Context) {
	t, err := h.app.RestoreTask(c.Param("id"))
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, t)
}

// AddLabel добавляет метку к задаче
func (h *TaskHandler) AddLabel(c *gin.Context) {
	t, err := h.app.AddLabelToTask(c.Param("id"), c.Param("label_id"))
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, t)
}

// RemoveLabel удаляет метку с задачи
func (h *TaskHandler) RemoveLabel(c *gin.Context) {
	t, err := h.app.RemoveLabelFromTask(c.Param("id"), c.Param("label_id"))
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, t)
}

func (r *TaskUpdateRequest) patch() (service.TaskPatch, error) {
	patch := service.TaskPatch{
		Title:       r.Title,
		Description: r.Description,
		LabelIDs:    r.LabelIDs,
	}
	if r.StatusID != nil {
		patch.Status = &bucket.Status{StatusID: *r.StatusID}
	}
	if r.Priority != nil {
		b, err := bucket.ParseKey(*r.Priority)
		if err != nil {
			return patch, err
		}
		p, ok := b.(bucket.Priority)
		if !ok {
			return patch, fmt.Errorf("%w: %q is not a priority", bucket.ErrInvalidKey, *r.Priority)
		}
		patch.Priority = &p
	}
	if r.Assignee != nil {
		b, err := bucket.ParseKey(*r.Assignee)
		if err != nil {
			return patch, err
		}
		a, ok := b.(bucket.Assignee)
		if !ok {
			return patch, fmt.Errorf("%w: %q is not an assignee", bucket.ErrInvalidKey, *r.Assignee)
		}
		patch.Assignee = &a
	}
	if r.StartDate != nil {
		d, err := optionalDate(*r.StartDate)
		if err != nil {
			return patch, err
		}
		patch.StartDate, patch.ClearStartDate = d, d == nil
	}
	if r.DueDate != nil {
		d, err := optionalDate(*r.DueDate)
		if err != nil {
			return patch, err
		}
		patch.DueDate, patch.ClearDueDate = d, d == nil
	}
	return patch, nil
}

func optionalDate(s string) (*model.Date, error) {
	if s == "" {
		return nil, nil
	}
	d, err := model.ParseDate(s)
	if err != nil {
		return nil, err
	}
	return &d, nil
}
