package handler_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"planboard/internal/handler"
	"planboard/internal/loader"
	"planboard/internal/middleware"
	"planboard/internal/model"
	"planboard/internal/render"
	"planboard/internal/repository"
	"planboard/internal/workspace"
)

var today = model.NewDate(2025, time.January, 6)

func setupTest(t *testing.T) (*gin.Engine, *workspace.App) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	require.NoError(t, handler.RegisterValidators())

	app := workspace.New(&loader.Collections{
		Projects: []*model.Project{{ID: "p", Name: "Website", Identifier: "WEB", Slug: "website", MemberIDs: []string{"ada"}}},
		Statuses: []*model.Status{
			{ID: "todo", ProjectID: "p", Name: "Todo", Category: model.CategoryTodo, SortOrder: 1},
			{ID: "done", ProjectID: "p", Name: "Done", Category: model.CategoryDone, SortOrder: 2},
		},
		Priorities: []*model.Priority{{ID: "high", Name: "High", SortOrder: 3}},
		Users:      []*model.User{{ID: "ada", Name: "Ada"}},
		Tasks: []*model.Task{
			{ID: "t1", ProjectID: "p", SequenceID: 1, Title: "Header", StatusID: "todo", SortOrder: 1, LabelIDs: []string{}},
			{ID: "t2", ProjectID: "p", SequenceID: 2, Title: "Footer", StatusID: "todo", SortOrder: 2, LabelIDs: []string{}},
		},
	}, workspace.Options{
		PageSize:     25,
		Renderer:     render.NopRenderer{},
		Today:        func() model.Date { return today },
		StoreOptions: []repository.Option{repository.WithClock(func() time.Time { return today.Time })},
	})

	r := gin.New()
	r.Use(middleware.ErrorHandling())

	projectHandler := handler.NewProjectHandler(app)
	taskHandler := handler.NewTaskHandler(app)
	statusHandler := handler.NewStatusHandler(app)
	viewHandler := handler.NewViewHandler(app)
	notificationHandler := handler.NewNotificationHandler(app)

	r.GET("/projects", projectHandler.GetAll)
	r.POST("/projects", projectHandler.Create)
	r.PUT("/projects/:slug", projectHandler.Update)
	r.DELETE("/projects/:slug", projectHandler.Delete)
	r.GET("/projects/:slug/:tab", viewHandler.Render)
	r.POST("/events", viewHandler.Dispatch)
	r.POST("/projects/:slug/tasks", taskHandler.Create)
	r.PATCH("/tasks/:id", taskHandler.Update)
	r.POST("/tasks/:id/move", taskHandler.Move)
	r.DELETE("/statuses/:id", statusHandler.Delete)
	r.GET("/notifications", notificationHandler.GetAll)
	return r, app
}

func do(r *gin.Engine, method, path string, body interface{}) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req, _ := http.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)
	return resp
}

func TestCreateProject_Success(t *testing.T) {
	// Arrange
	router, _ := setupTest(t)

	// Act
	resp := do(router, http.MethodPost, "/projects", handler.ProjectRequest{Name: "Mobile App", Color: "#22c55e"})

	// Assert
	require.Equal(t, http.StatusCreated, resp.Code)
	var p model.Project
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &p))
	assert.Equal(t, "mobile-app", p.Slug)
	assert.Equal(t, "MA", p.Identifier)
	assert.Equal(t, "list", p.DefaultView)
}

func TestCreateProject_ValidationFailed(t *testing.T) {
	router, _ := setupTest(t)

	resp := do(router, http.MethodPost, "/projects", handler.ProjectRequest{Name: "X", Color: "green"})

	assert.Equal(t, http.StatusBadRequest, resp.Code)
	assert.Contains(t, resp.Body.String(), "bad_request.validation_failed")
}

func TestUpdateProject_ReturnsRedirectForOpenRoute(t *testing.T) {
	router, _ := setupTest(t)
	require.Equal(t, http.StatusOK, do(router, http.MethodGet, "/projects/website/board", nil).Code)

	name := "Landing Page"
	resp := do(router, http.MethodPut, "/projects/website", handler.ProjectUpdateRequest{Name: &name})

	require.Equal(t, http.StatusOK, resp.Code)
	var out handler.ProjectUpdateResponse
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &out))
	assert.Equal(t, "landing-page", out.Project.Slug)
	require.NotNil(t, out.Redirect)
	assert.Equal(t, "landing-page", out.Redirect.ProjectSlug)
	assert.Equal(t, "board", string(out.Redirect.Tab))
}

func TestDeleteProject_ConfirmationMismatch(t *testing.T) {
	router, _ := setupTest(t)

	resp := do(router, http.MethodDelete, "/projects/website", handler.DeleteProjectRequest{Confirmation: "web"})
	assert.Equal(t, http.StatusBadRequest, resp.Code)
	assert.Contains(t, resp.Body.String(), "project.confirmation_mismatch")

	resp = do(router, http.MethodDelete, "/projects/website", handler.DeleteProjectRequest{Confirmation: "Website"})
	assert.Equal(t, http.StatusNoContent, resp.Code)

	resp = do(router, http.MethodGet, "/projects/website/list", nil)
	assert.Equal(t, http.StatusNotFound, resp.Code)
}

func TestRenderAndDispatch(t *testing.T) {
	router, _ := setupTest(t)

	resp := do(router, http.MethodGet, "/projects/website/list", nil)
	require.Equal(t, http.StatusOK, resp.Code)
	var frame struct {
		Generation uint64           `json:"generation"`
		Listeners  []render.Binding `json:"listeners"`
	}
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &frame))
	require.NotEmpty(t, frame.Listeners)

	var search string
	for _, b := range frame.Listeners {
		if b.Target == "search" {
			search = b.ID
		}
	}
	require.NotEmpty(t, search)

	resp = do(router, http.MethodPost, "/events", handler.EventRequest{
		Generation: frame.Generation,
		ListenerID: search,
		Event:      render.Event{Value: "foot"},
	})
	require.Equal(t, http.StatusOK, resp.Code)
	assert.Contains(t, resp.Body.String(), `"rendered":true`)

	// Событие для старого поколения отклоняется
	resp = do(router, http.MethodPost, "/events", handler.EventRequest{
		Generation: frame.Generation,
		ListenerID: search,
	})
	assert.Equal(t, http.StatusConflict, resp.Code)
	assert.Contains(t, resp.Body.String(), "render.stale_generation")
}

func TestCreateTask_InvalidDate(t *testing.T) {
	router, _ := setupTest(t)

	resp := do(router, http.MethodPost, "/projects/website/tasks", handler.TaskRequest{Title: "Hero", StatusID: "todo", DueDate: "2025-13-40"})
	assert.Equal(t, http.StatusBadRequest, resp.Code)

	resp = do(router, http.MethodPost, "/projects/website/tasks", handler.TaskRequest{Title: "Hero", StatusID: "todo", DueDate: "2025-02-01"})
	require.Equal(t, http.StatusCreated, resp.Code)
	var task model.Task
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &task))
	assert.Equal(t, 3, task.SortOrder)
	assert.Equal(t, "2025-02-01", task.DueDate.String())
}

func TestUpdateTask_BucketKeys(t *testing.T) {
	router, app := setupTest(t)

	priority, assignee, due := "priority:high", "assignee:ada", ""
	resp := do(router, http.MethodPatch, "/tasks/t1", handler.TaskUpdateRequest{Priority: &priority, Assignee: &assignee, DueDate: &due})
	require.Equal(t, http.StatusOK, resp.Code)

	tasks, err := app.Tasks("website")
	require.NoError(t, err)
	assert.Equal(t, "high", *tasks[0].PriorityID)
	assert.Equal(t, "ada", *tasks[0].AssigneeID)
	assert.Nil(t, tasks[0].DueDate)

	wrong := "assignee:ada"
	resp = do(router, http.MethodPatch, "/tasks/t1", handler.TaskUpdateRequest{Priority: &wrong})
	assert.Equal(t, http.StatusBadRequest, resp.Code)
	assert.Contains(t, resp.Body.String(), "bad_request.invalid_bucket")
}

func TestMoveTask_ToDone(t *testing.T) {
	router, _ := setupTest(t)

	resp := do(router, http.MethodPost, "/tasks/t2/move", handler.TaskMoveRequest{Buckets: []string{"status:done"}})

	require.Equal(t, http.StatusOK, resp.Code)
	assert.Contains(t, resp.Body.String(), "Moved to status: Done")

	resp = do(router, http.MethodGet, "/notifications", nil)
	assert.Contains(t, resp.Body.String(), "Moved to status: Done")
}

func TestDeleteStatus_InUseNeedsConfirm(t *testing.T) {
	router, _ := setupTest(t)

	resp := do(router, http.MethodDelete, "/statuses/todo", nil)
	assert.Equal(t, http.StatusConflict, resp.Code)

	resp = do(router, http.MethodDelete, "/statuses/todo?confirm=true", nil)
	require.Equal(t, http.StatusOK, resp.Code)
	assert.Contains(t, resp.Body.String(), `"id":"done"`)
}
