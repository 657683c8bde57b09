package handlers

import (
	"net/http"

	"revamp/models"
	"revamp/services/notification"
	"revamp/services/tasks"
	"revamp/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type TaskHandler struct {
	Tasks tasks.TaskService
}

type EmployeeHandler struct {
	Employees tasks.EmployeeService
}

type NotificationHandler struct {
	Notifications notification.NotificationService
}

func (h *TaskHandler) CreateTaskHandler(c *gin.Context) {
	var payload models.TaskPayload
	if !bindJSON(c, &payload) {
		return
	}
	task, err := h.Tasks.CreateTask(c.Request.Context(), payload)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, task)
}

// GET /tasks/employee/:employeeId[?status=]
func (h *TaskHandler) EmployeeTasksHandler(c *gin.Context) {
	list, err := h.Tasks.GetEmployeeTasksByStatus(c.Request.Context(), c.Param("employeeId"), c.Query("status"))
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

func (h *TaskHandler) AppointmentTasksHandler(c *gin.Context) {
	list, err := h.Tasks.GetTasksForAppointment(c.Request.Context(), c.Param("appointmentId"))
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

type taskAction func(tasksSvc tasks.TaskService, c *gin.Context, taskID string, action models.TaskAction) (any, error)

// actionHandler binds the employee action body and runs one lifecycle step.
func (h *TaskHandler) actionHandler(run taskAction) gin.HandlerFunc {
	return func(c *gin.Context) {
		var action models.TaskAction
		if !bindJSON(c, &action) {
			return
		}
		out, err := run(h.Tasks, c, c.Param("taskId"), action)
		if err != nil {
			utils.RespondError(c, err)
			return
		}
		c.JSON(http.StatusOK, out)
	}
}

func (h *TaskHandler) AcceptHandler() gin.HandlerFunc {
	return h.actionHandler(func(s tasks.TaskService, c *gin.Context, id string, a models.TaskAction) (any, error) {
		return s.AcceptTask(c.Request.Context(), id, a)
	})
}

func (h *TaskHandler) RejectHandler() gin.HandlerFunc {
	return h.actionHandler(func(s tasks.TaskService, c *gin.Context, id string, a models.TaskAction) (any, error) {
		res, err := s.RejectTask(c.Request.Context(), id, a)
		if err == nil && !res.Compensated && res.CompensationError != "" {
			getLogger(c).Warn("task rejected without booking compensation", zap.String("taskId", id))
		}
		return res, err
	})
}

func (h *TaskHandler) StartHandler() gin.HandlerFunc {
	return h.actionHandler(func(s tasks.TaskService, c *gin.Context, id string, a models.TaskAction) (any, error) {
		return s.StartTask(c.Request.Context(), id, a)
	})
}

func (h *TaskHandler) CompleteHandler() gin.HandlerFunc {
	return h.actionHandler(func(s tasks.TaskService, c *gin.Context, id string, a models.TaskAction) (any, error) {
		return s.CompleteTask(c.Request.Context(), id, a)
	})
}

func (h *TaskHandler) DeliverHandler() gin.HandlerFunc {
	return h.actionHandler(func(s tasks.TaskService, c *gin.Context, id string, a models.TaskAction) (any, error) {
		return s.DeliverTask(c.Request.Context(), id, a)
	})
}

func (h *TaskHandler) ReassignHandler(c *gin.Context) {
	var req models.ReassignTaskRequest
	if !bindJSON(c, &req) {
		return
	}
	task, err := h.Tasks.ReassignTask(c.Request.Context(), c.Param("taskId"), req)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, task)
}

func (h *EmployeeHandler) RegisterHandler(c *gin.Context) {
	var req models.RegisterEmployeeRequest
	if !bindJSON(c, &req) {
		return
	}
	emp, err := h.Employees.Register(c.Request.Context(), req)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, emp)
}

// ByUserHandler answers booking's employee resolution with the bare employee object.
func (h *EmployeeHandler) ByUserHandler(c *gin.Context) {
	emp, err := h.Employees.GetByUserID(c.Request.Context(), c.Param("userId"))
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, emp)
}

func (h *EmployeeHandler) ListHandler(c *gin.Context) {
	list, err := h.Employees.List(c.Request.Context())
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

// GET /notifications/:recipientId[?unread=true]
func (h *NotificationHandler) ListHandler(c *gin.Context) {
	list, err := h.Notifications.List(c.Request.Context(), c.Param("recipientId"), c.Query("unread") == "true")
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

func (h *NotificationHandler) MarkReadHandler(c *gin.Context) {
	if err := h.Notifications.MarkRead(c.Request.Context(), c.Param("id")); err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "notification marked read"})
}
