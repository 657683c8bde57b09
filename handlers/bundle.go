package handlers

// HandlerBundle groups the endpoint handlers of both services.
// A nil member means the process does not host that surface.
type HandlerBundle struct {
	// Booking service
	Booking *BookingHandler

	// Staffing service
	Tasks         *TaskHandler
	Employees     *EmployeeHandler
	Notifications *NotificationHandler
}
