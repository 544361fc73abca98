package handler

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/croftview/fieldops-backend-go/internal/models"
	"github.com/croftview/fieldops-backend-go/internal/service"
	"github.com/croftview/fieldops-backend-go/pkg/response"
)

// TaskHandler handles HTTP requests for field-operation tasks
type TaskHandler struct {
	taskService *service.TaskService
}

// NewTaskHandler creates a new task handler
func NewTaskHandler(taskService *service.TaskService) *TaskHandler {
	return &TaskHandler{taskService: taskService}
}

// List handles GET /api/v1/tasks
func (h *TaskHandler) List(c *gin.Context) {
	var filter models.TaskFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		response.BadRequest(c, "Invalid query parameters")
		return
	}

	result, err := h.taskService.List(filter)
	if err != nil {
		response.InternalError(c, err.Error())
		return
	}

	response.Success(c, result)
}

// Create handles POST /api/v1/tasks
func (h *TaskHandler) Create(c *gin.Context) {
	var req service.CreateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid task payload")
		return
	}

	task, err := h.taskService.Create(req)
	if err != nil {
		response.InternalError(c, err.Error())
		return
	}
	if task == nil {
		response.NotFound(c, "Field not found")
		return
	}

	response.Success(c, task)
}

// Get handles GET /api/v1/tasks/:id
func (h *TaskHandler) Get(c *gin.Context) {
	task, err := h.taskService.Get(c.Param("id"))
	if err != nil {
		response.InternalError(c, err.Error())
		return
	}
	if task == nil {
		response.NotFound(c, "Task not found")
		return
	}

	response.Success(c, task)
}

// UpdatePlannedDate handles PATCH /api/v1/tasks/:id/planned-date.
// A null plannedDate clears the date.
func (h *TaskHandler) UpdatePlannedDate(c *gin.Context) {
	var req struct {
		PlannedDate *time.Time `json:"plannedDate"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid planned-date payload")
		return
	}

	ok, err := h.taskService.UpdatePlannedDate(c.Param("id"), req.PlannedDate)
	if err != nil {
		response.InternalError(c, err.Error())
		return
	}
	if !ok {
		response.NotFound(c, "Task not found")
		return
	}

	task, err := h.taskService.Get(c.Param("id"))
	if err != nil {
		response.InternalError(c, err.Error())
		return
	}
	response.Success(c, task)
}

// Delete handles DELETE /api/v1/tasks/:id
func (h *TaskHandler) Delete(c *gin.Context) {
	ok, err := h.taskService.Delete(c.Param("id"))
	if err != nil {
		response.InternalError(c, err.Error())
		return
	}
	if !ok {
		response.NotFound(c, "Task not found")
		return
	}

	response.Success(c, nil)
}

// StageIndices handles GET /api/v1/tasks/stage-indices
func (h *TaskHandler) StageIndices(c *gin.Context) {
	var filter models.TaskFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		response.BadRequest(c, "Invalid query parameters")
		return
	}

	options, err := h.taskService.StageIndexOptions(filter)
	if err != nil {
		response.InternalError(c, err.Error())
		return
	}

	response.Success(c, gin.H{
		"data":  options,
		"count": len(options),
	})
}
