package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"revamp/config"
	"revamp/cron"
	"revamp/database"
	appointmentRepo "revamp/database/repository/appointment"
	employeeRepo "revamp/database/repository/employee"
	notificationRepo "revamp/database/repository/notification"
	taskRepo "revamp/database/repository/task"
	timeslotRepo "revamp/database/repository/timeslot"
	unavailableRepo "revamp/database/repository/unavailable"
	"revamp/handlers"
	"revamp/routes"
	"revamp/services/booking"
	"revamp/services/calendar"
	"revamp/services/notification"
	"revamp/services/peers"
	"revamp/services/tasks"
	"revamp/utils"

	"github.com/hibiken/asynq"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.uber.org/zap"
)

type indexed interface {
	EnsureIndexes(ctx context.Context) error
}

func ensureIndexes(ctx context.Context, logger *zap.Logger, repos ...indexed) {
	for _, r := range repos {
		if err := r.EnsureIndexes(ctx); err != nil {
			logger.Fatal("main: failed to ensure indexes", zap.Error(err))
		}
	}
}

func main() {
	config.LoadConfig()
	utils.InitializeLogger()
	logger := utils.GetLogger()
	defer logger.Sync() //nolint:errcheck

	ctx, stop := context.WithCancel(context.Background())
	defer stop()

	shutdownTracing, err := utils.SetupTracing(ctx, "revamp")
	if err != nil {
		logger.Fatal("main: failed to set up tracing", zap.Error(err))
	}

	database.InitDB()
	utils.InitCache()

	schedule, err := calendar.ScheduleFromConfig(config.AppConfig)
	if err != nil {
		logger.Fatal("main: invalid shop calendar configuration", zap.Error(err))
	}

	peerClient := &http.Client{Transport: otelhttp.NewTransport(http.DefaultTransport)}
	bundle := &handlers.HandlerBundle{}
	var servers []*http.Server

	if config.RunsBooking() {
		db := database.BookingDB()
		slots := timeslotRepo.NewMongoTimeSlotRepo(db)
		appointments := appointmentRepo.NewMongoAppointmentRepo(db)
		unavailable := unavailableRepo.NewMongoUnavailableDateRepo(db)
		ensureIndexes(ctx, logger, slots, appointments, unavailable)

		oracle := &calendar.DefaultOracle{
			Repo:     unavailable,
			Cache:    utils.GetCacheClient(),
			TTL:      config.AppConfig.CalendarCacheTTL,
			Schedule: schedule,
			Logger:   logger.Named("calendar"),
		}
		staffing := peers.NewStaffingGateway(config.AppConfig.EmployeeAPIBase, config.AppConfig.PeerTimeout, peerClient)

		bundle.Booking = &handlers.BookingHandler{
			Reservations: &booking.DefaultReservationService{
				Slots:        slots,
				Appointments: appointments,
				Calendar:     oracle,
				Schedule:     schedule,
				Logger:       logger.Named("reservation"),
			},
			Assignments: &booking.DefaultAssignmentService{
				Appointments:   appointments,
				Staffing:       staffing,
				Schedule:       schedule,
				DefaultAdminID: config.AppConfig.DefaultAdminID,
				Logger:         logger.Named("assignment"),
			},
			Compensation: &booking.DefaultCompensationService{
				Appointments: appointments,
				Logger:       logger.Named("compensation"),
			},
			Calendar: oracle,
		}
		servers = append(servers, &http.Server{
			Addr:    "0.0.0.0:" + config.AppConfig.AppPort,
			Handler: otelhttp.NewHandler(routes.NewBookingRouter(bundle), "booking"),
		})
	}

	var (
		queueClient *asynq.Client
		worker      *asynq.Server
	)
	if config.RunsStaffing() {
		utils.FirebaseInit()

		db := database.StaffingDB()
		taskStore := taskRepo.NewMongoTaskRepo(db)
		employees := employeeRepo.NewMongoEmployeeRepo(db)
		notifications := notificationRepo.NewMongoNotificationRepo(db)
		ensureIndexes(ctx, logger, taskStore, employees, notifications)

		var pusher notification.Pusher
		if utils.FCMClient != nil {
			pusher = utils.FCMClient
		}
		store, err := notification.NewDefaultNotificationService(notifications, pusher, logger.Named("notification"))
		if err != nil {
			logger.Fatal("main: failed to build notification service", zap.Error(err))
		}

		var (
			notifier  notification.Notifier = store
			reminders tasks.ReminderScheduler
		)
		if config.AppConfig.NotifyAsync {
			queueClient = asynq.NewClient(utils.QueueRedisOpt())
			notifier = &notification.QueuedNotifier{Queue: queueClient, Fallback: store, Logger: logger.Named("notification-queue")}
			reminders = &tasks.QueueReminderScheduler{Queue: queueClient}
		}

		taskSvc := &tasks.DefaultTaskService{
			Tasks:          taskStore,
			Employees:      employees,
			Booking:        peers.NewBookingGateway(config.AppConfig.BookingAPIBase, config.AppConfig.PeerTimeout, peerClient),
			Notifier:       notifier,
			Reminders:      reminders,
			DefaultAdminID: config.AppConfig.DefaultAdminID,
			Logger:         logger.Named("tasks"),
		}
		bundle.Tasks = &handlers.TaskHandler{Tasks: taskSvc}
		bundle.Employees = &handlers.EmployeeHandler{Employees: &tasks.DefaultEmployeeService{Employees: employees, Logger: logger.Named("employees")}}
		bundle.Notifications = &handlers.NotificationHandler{Notifications: store}

		if config.AppConfig.NotifyAsync {
			// The worker delivers through the store directly so a queued job is never re-queued.
			worker = cron.InitNotificationWorker(ctx, utils.QueueRedisOpt(), store, taskSvc)
		}
		servers = append(servers, &http.Server{
			Addr:    "0.0.0.0:" + config.AppConfig.StaffingPort,
			Handler: otelhttp.NewHandler(routes.NewStaffingRouter(bundle), "staffing"),
		})
	}

	if len(servers) == 0 {
		logger.Fatal("main: SERVICE_MODE selects no service", zap.String("mode", config.AppConfig.ServiceMode))
	}

	utils.StartHealthMonitor(ctx, utils.GetCacheClient(), database.MongoClient)

	for _, srv := range servers {
		srv := srv
		logger.Info("Starting server", zap.String("addr", srv.Addr))
		go func() {
			if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				logger.Fatal("main: server failed to start", zap.String("addr", srv.Addr), zap.Error(err))
			}
		}()
	}

	// Wait for an OS signal to gracefully shutdown.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("main: server is shutting down...")
	stop()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	for _, srv := range servers {
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error("main: server forced to shutdown", zap.String("addr", srv.Addr), zap.Error(err))
		}
	}
	if worker != nil {
		worker.Shutdown()
	}
	if queueClient != nil {
		if err := queueClient.Close(); err != nil {
			logger.Warn("main: closing queue client", zap.Error(err))
		}
	}
	if err := shutdownTracing(shutdownCtx); err != nil {
		logger.Warn("main: flushing traces", zap.Error(err))
	}
	if err := database.CloseDB(shutdownCtx); err != nil {
		logger.Warn("main: closing MongoDB", zap.Error(err))
	}
	if err := utils.CloseCache(); err != nil {
		logger.Warn("main: closing Redis", zap.Error(err))
	}

	logger.Info("main: server stopped gracefully")
}
