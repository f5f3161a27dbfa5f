package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yeremiapane/rcoffee/cache"
	"github.com/yeremiapane/rcoffee/controllers"
	"github.com/yeremiapane/rcoffee/database"
	"github.com/yeremiapane/rcoffee/events"
	"github.com/yeremiapane/rcoffee/hub"
	"github.com/yeremiapane/rcoffee/middlewares"
	"github.com/yeremiapane/rcoffee/services"
	"gorm.io/gorm"
)

// Services bundles everything the HTTP layer calls into.
type Services struct {
	Users         *services.UserService
	Menu          *services.MenuService
	Reservations  *services.ReservationService
	Payments      *services.PaymentService
	Orders        *services.OrderService
	Notifications *services.NotificationService
	Settings      *services.SettingsService
	Reports       *services.ReportService
}

type ServiceOptions struct {
	Publisher    events.Publisher
	MenuCache    *cache.RedisCache
	QR           services.QRGenerator
	StrictOrders bool
}

// NewServices builds the services over gorm repositories.
func NewServices(db *gorm.DB, opts ServiceOptions) Services {
	users := database.NewUserRepository(db)
	reservations := database.NewReservationRepository(db)
	orders := database.NewOrderRepository(db)
	menu := database.NewMenuRepository(db)

	notifications := services.NewNotificationService(database.NewNotificationRepository(db), users, opts.Publisher)
	settings := services.NewSettingsService(database.NewSettingsRepository(db))

	return Services{
		Users:         services.NewUserService(users),
		Menu:          services.NewMenuService(menu, opts.MenuCache),
		Reservations:  services.NewReservationService(reservations, database.NewTableRepository(db), notifications, opts.Publisher, opts.QR),
		Payments:      services.NewPaymentService(reservations, notifications, opts.Publisher),
		Orders:        services.NewOrderService(orders, menu, opts.Publisher, opts.StrictOrders),
		Notifications: notifications,
		Settings:      settings,
		Reports:       services.NewReportService(reservations, orders, settings),
	}
}

type Options struct {
	CORSOrigins []string
	// Limiter covers every route and AuthLimiter guards login and
	// registration. Either may be nil.
	Limiter     *middlewares.RateLimiter
	AuthLimiter *middlewares.RateLimiter
	Hub         *hub.Hub
}

func SetupRouter(svc Services, opts Options) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middlewares.RequestID())
	r.Use(middlewares.LoggerMiddleware())
	r.Use(middlewares.SecurityHeaders())
	r.Use(middlewares.CORSMiddlewares(opts.CORSOrigins))
	if opts.Limiter != nil {
		r.Use(opts.Limiter.RateLimit())
	}

	userCtrl := controllers.NewUserController(svc.Users)
	menuCtrl := controllers.NewMenuController(svc.Menu)
	tableCtrl := controllers.NewTableController(svc.Reservations)
	reservationCtrl := controllers.NewReservationController(svc.Reservations)
	paymentCtrl := controllers.NewPaymentController(svc.Payments)
	orderCtrl := controllers.NewOrderController(svc.Orders)
	notificationCtrl := controllers.NewNotificationController(svc.Notifications)
	adminCtrl := controllers.NewAdminController(svc.Users, svc.Settings, svc.Reports)

	// ----------------------------------------------------------------
	//                      PUBLIC ROUTES
	// ----------------------------------------------------------------
	r.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})

	public := r.Group("/")
	if opts.AuthLimiter != nil {
		public.Use(opts.AuthLimiter.RateLimit())
	}
	{
		public.POST("/register", userCtrl.Register)
		public.POST("/login", userCtrl.Login)
	}
	r.POST("/logout", userCtrl.Logout)

	r.GET("/menu", menuCtrl.GetAllMenus)
	r.GET("/menu/:menu_id", menuCtrl.GetMenuByID)
	r.GET("/tables", tableCtrl.GetAllTables)
	r.GET("/tables/available", tableCtrl.GetAvailableTables)
	r.GET("/tables/max-capacity", tableCtrl.GetMaxCapacity)
	r.GET("/time-slots", tableCtrl.GetTimeSlots)
	r.GET("/settings", adminCtrl.GetSettings)

	// ----------------------------------------------------------------
	//                      AUTHENTICATED ROUTES
	// ----------------------------------------------------------------
	auth := r.Group("/")
	auth.Use(middlewares.AuthMiddleware(svc.Users))
	{
		auth.GET("/me", userCtrl.Me)
		auth.PATCH("/me", userCtrl.UpdateMe)
		auth.GET("/me/dashboard", userCtrl.Dashboard)

		auth.POST("/reservations", reservationCtrl.CreateReservation)
		auth.GET("/reservations", reservationCtrl.GetReservations)
		auth.GET("/reservations/:reservation_id", reservationCtrl.GetReservationByID)
		auth.POST("/reservations/:reservation_id/cancel", reservationCtrl.CancelReservation)
		auth.GET("/reservations/:reservation_id/qrcode", reservationCtrl.GetCheckInQR)

		auth.POST("/orders", orderCtrl.CreateOrder)
		auth.GET("/orders", orderCtrl.GetMyOrders)
		auth.GET("/orders/:order_id", orderCtrl.GetOrderByID)

		auth.GET("/notifications", notificationCtrl.GetMyNotifications)
		auth.GET("/notifications/unread-count", notificationCtrl.GetUnreadCount)
		auth.PATCH("/notifications/:notif_id/read", notificationCtrl.MarkAsRead)
	}

	// Cashier, admin and super admin
	staff := auth.Group("/staff")
	staff.Use(middlewares.RequireStaff())
	{
		staff.PATCH("/reservations/:reservation_id/status", reservationCtrl.UpdateReservationStatus)
		staff.PATCH("/reservations/:reservation_id/payment", paymentCtrl.UpdatePaymentStatus)
		staff.GET("/orders", orderCtrl.GetAllOrders)
		staff.PATCH("/orders/:order_id/status", orderCtrl.UpdateOrderStatus)
		staff.POST("/notifications", notificationCtrl.CreateNotification)
	}

	// Admin and super admin
	admin := auth.Group("/admin")
	admin.Use(middlewares.RequireAdmin())
	{
		admin.POST("/menu", menuCtrl.CreateMenu)
		admin.PUT("/menu/:menu_id", menuCtrl.UpdateMenu)
		admin.DELETE("/menu/:menu_id", menuCtrl.DeleteMenu)

		admin.GET("/users/pending", adminCtrl.GetPendingUsers)
		admin.POST("/users/:user_id/approve", adminCtrl.ApproveUser)
		admin.DELETE("/users/:user_id", adminCtrl.DeleteUser)

		admin.PUT("/settings", adminCtrl.UpdateSettings)
	}

	super := auth.Group("/super")
	super.Use(middlewares.RequireSuperAdmin())
	{
		super.GET("/users", adminCtrl.GetUsers)
		super.POST("/users", adminCtrl.AddUser)
		super.PATCH("/users/:user_id", adminCtrl.UpdateUser)
		super.GET("/reports/payments", adminCtrl.GetPaymentReport)
		super.GET("/reports/payments/pdf", adminCtrl.ExportPaymentReportPDF)
		super.GET("/stats", adminCtrl.GetDashboardStats)
	}

	// Staff live feed. The token may ride in ?token= for browsers.
	if opts.Hub != nil {
		liveCtrl := controllers.NewLiveController(opts.Hub, opts.CORSOrigins)
		ws := r.Group("/ws")
		ws.Use(middlewares.WebSocketAuthMiddleware(svc.Users))
		ws.Use(middlewares.RequireStaff())
		{
			ws.GET("/dashboard", liveCtrl.Handle)
		}
	}

	return r
}
