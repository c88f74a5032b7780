package api

import (
	"log"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
	"landadmin.com/internal/api/middleware"
	"landadmin.com/internal/auth"
	"landadmin.com/internal/config"
	"landadmin.com/internal/domain"
	"landadmin.com/internal/infra"
)

// Deps 路由层依赖的服务集合
type Deps struct {
	Accounts      domain.AccountService
	Registry      domain.RegistryService
	Transfers     domain.TransferService
	Staff         domain.StaffService
	Payments      domain.PaymentService
	Notifications domain.NotificationService
	Store         *infra.ImageStore
	Hub           *infra.WsManager
}

// Router 负责注册所有路由
type Router struct {
	app    *fiber.App
	cfg    *config.Config
	db     *gorm.DB
	deps   Deps
	router fiber.Router // /api group
}

func NewRouter(app *fiber.App, cfg *config.Config, db *gorm.DB, deps Deps) *Router {
	return &Router{
		app:  app,
		cfg:  cfg,
		db:   db,
		deps: deps,
	}
}

// RegisterRoutes 注册所有业务路由
func (r *Router) RegisterRoutes() {
	// 1. 初始化鉴权与中间件
	enforcer, err := auth.InitCasbin(r.db)
	if err != nil {
		log.Fatalf("Failed to initialize Casbin: %v", err)
	}

	// 2. 初始化各个 Handler
	authHandler := NewAuthHandler(r.deps.Accounts)
	userHandler := NewUserHandler(r.deps.Accounts)
	propertyHandler := NewPropertyHandler(r.deps.Registry, r.deps.Store)
	transferHandler := NewTransferHandler(r.deps.Transfers, r.deps.Store)
	employeeHandler := NewEmployeeHandler(r.deps.Staff)
	taskHandler := NewTaskHandler(r.deps.Staff)
	paymentHandler := NewPaymentHandler(r.deps.Payments)
	notificationHandler := NewNotificationHandler(r.deps.Notifications)

	// 3. 注册 WebSocket 路由 (不需要 JWT 中间件)
	if r.deps.Hub != nil {
		InitWebsocket(r.app, r.deps.Hub)
	}

	// 4. 注册公开路由 (Public)
	r.app.Post("/auth/register", authHandler.Register)
	r.app.Post("/auth/login", authHandler.Login)
	r.app.Post("/auth/google", authHandler.GoogleLogin)

	// 5. 注册受保护的 API 路由 (Protected /api)
	r.router = r.app.Group("/api")
	r.router.Use(middleware.CasbinMiddleware(enforcer, r.cfg.JWT.Secret))

	// 分组注册子路由
	r.registerUserRoutes(userHandler)
	r.registerRegistryRoutes(propertyHandler, transferHandler)
	r.registerStaffRoutes(employeeHandler, taskHandler)
	r.registerPaymentRoutes(paymentHandler)
	r.registerNotificationRoutes(notificationHandler)
}

func (r *Router) registerUserRoutes(h *UserHandler) {
	users := r.router.Group("/users")
	users.Get("/", h.List)
	users.Post("/", h.Create)
	users.Get("/name/:name", h.GetByName)
	users.Put("/:id", h.Update)
	users.Delete("/:id", h.Delete)
	users.Post("/:id/approve", h.Approve)
}

func (r *Router) registerRegistryRoutes(p *PropertyHandler, t *TransferHandler) {
	properties := r.router.Group("/properties")
	properties.Get("/", p.List)
	properties.Get("/search", p.Search)
	properties.Post("/", p.Create)
	properties.Put("/:id", p.Update)
	properties.Delete("/:id", p.Delete)

	r.router.Get("/holders/:name/land-area", p.LandArea)
	r.router.Post("/transfers", t.Transfer)
}

func (r *Router) registerStaffRoutes(e *EmployeeHandler, t *TaskHandler) {
	employees := r.router.Group("/employees")
	employees.Get("/", e.List)
	employees.Post("/", e.Create)
	employees.Put("/:id", e.Update)
	employees.Delete("/:id", e.Delete)

	tasks := r.router.Group("/tasks")
	tasks.Get("/", t.List)
	tasks.Post("/", t.Add)
	tasks.Post("/assign", t.Assign)
}

func (r *Router) registerPaymentRoutes(h *PaymentHandler) {
	r.router.Post("/payments", h.Create)
}

func (r *Router) registerNotificationRoutes(h *NotificationHandler) {
	notifications := r.router.Group("/notifications")
	notifications.Get("/", h.ListPending)
	notifications.Post("/", h.Create)
	notifications.Put("/:id", h.Review)
	notifications.Post("/rejection-email", h.SendRejectionEmail)
}
