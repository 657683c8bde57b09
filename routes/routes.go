package routes

import (
	"net/http"
	"time"

	"revamp/config"
	"revamp/handlers"
	"revamp/middleware"
	"revamp/models"
	"revamp/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// newEngine builds a router with the middleware both services share.
func newEngine(service string) *gin.Engine {
	r := gin.New()
	r.Use(utils.ErrorHandler())
	r.Use(middleware.RequestLogger(utils.GetLogger(), service))
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
	r.Use(middleware.RateLimitMiddleware(config.AppConfig.MaxRequestsPerMin))
	r.Use(middleware.IdentityMiddleware())

	RegisterHealthRoute(r, service)
	return r
}

// RegisterHealthRoute registers a health-check endpoint backed by the last store probe.
func RegisterHealthRoute(r *gin.Engine, service string) {
	r.GET("/health", func(c *gin.Context) {
		health := utils.GetHealthStatus()
		status, code := "ok", http.StatusOK
		if !health.CheckedAt.IsZero() && !health.Mongo {
			status, code = "degraded", http.StatusServiceUnavailable
		}
		c.JSON(code, gin.H{"status": status, "service": service, "checks": health})
	})
}

// RegisterBookingRoutes registers slot, appointment and calendar endpoints.
func RegisterBookingRoutes(r *gin.Engine, h *handlers.BookingHandler) {
	api := r.Group("/api/bookings")
	admin := middleware.RequireRole(models.RoleAdmin)

	slots := api.Group("/timeslots")
	{
		slots.GET("/available", h.AvailableSlotsHandler)
		slots.GET("/range", h.SlotsInRangeHandler)
		slots.GET("/:id", h.GetSlotHandler)
	}

	appts := api.Group("/appointments/v1")
	{
		appts.POST("", h.CreateAppointmentHandler)
		appts.POST("/validate", h.ValidateBookingHandler)
		appts.GET("", h.ListAppointmentsHandler)
		appts.GET("/range", h.ListByDateRangeHandler)
		appts.GET("/customer/:customerId", h.ListByCustomerHandler)
		appts.GET("/:id", h.GetAppointmentHandler)
		appts.DELETE("/:id", h.CancelAppointmentHandler)

		// Called by staffing, which has no end-user identity.
		appts.PUT("/remove-employee", h.RemoveEmployeeHandler)

		appts.PUT("/:id/status", admin, h.UpdateStatusHandler)
		appts.PUT("/:id/assign-employees", admin, h.AssignEmployeesHandler)
		appts.POST("/:id/recreate-tasks", admin, h.RecreateTasksHandler)
	}

	dates := api.Group("/unavailable-dates")
	{
		dates.GET("", h.ListUnavailableDatesHandler)
		dates.POST("", admin, h.AddUnavailableDateHandler)
		dates.DELETE("/:id", admin, h.RemoveUnavailableDateHandler)
	}
}

// RegisterStaffingRoutes registers employee, task and notification endpoints.
func RegisterStaffingRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	employees := r.Group("/api/employees")
	{
		employees.GET("", hb.Employees.ListHandler)
		employees.POST("", hb.Employees.RegisterHandler)
		employees.GET("/by-user/:userId", hb.Employees.ByUserHandler)
	}

	tasks := r.Group("/api/tasks")
	{
		tasks.POST("", hb.Tasks.CreateTaskHandler)
		tasks.GET("/employee/:employeeId", hb.Tasks.EmployeeTasksHandler)
		tasks.GET("/appointment/:appointmentId", hb.Tasks.AppointmentTasksHandler)
		tasks.POST("/:taskId/accept", hb.Tasks.AcceptHandler())
		tasks.POST("/:taskId/reject", hb.Tasks.RejectHandler())
		tasks.POST("/:taskId/start", hb.Tasks.StartHandler())
		tasks.POST("/:taskId/complete", hb.Tasks.CompleteHandler())
		tasks.POST("/:taskId/deliver", hb.Tasks.DeliverHandler())
		tasks.PUT("/:taskId/reassign", hb.Tasks.ReassignHandler)
	}

	notifications := r.Group("/api/notifications")
	{
		notifications.GET("/:recipientId", hb.Notifications.ListHandler)
		notifications.PUT("/:id/read", hb.Notifications.MarkReadHandler)
	}
}

// NewBookingRouter is the booking service's HTTP surface.
func NewBookingRouter(hb *handlers.HandlerBundle) *gin.Engine {
	r := newEngine("booking")
	RegisterBookingRoutes(r, hb.Booking)
	return r
}

// NewStaffingRouter is the staffing service's HTTP surface.
func NewStaffingRouter(hb *handlers.HandlerBundle) *gin.Engine {
	r := newEngine("staffing")
	RegisterStaffingRoutes(r, hb)
	return r
}
