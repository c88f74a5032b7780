package main

import (
	"context"
	"log"

	"landadmin.com/internal/api"
	"landadmin.com/internal/config"
	"landadmin.com/internal/gateway"
	"landadmin.com/internal/infra"
	"landadmin.com/internal/service"
)

func main() {
	// 1. 加载配置
	cfg := config.LoadConfig()

	// 2. 初始化基础设施
	// Postgres
	pg, err := infra.NewPostgresClient(cfg.Database)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	// Redis
	rdb := infra.NewRedisClient(cfg.Redis)
	if _, err := rdb.Ping(context.Background()).Result(); err != nil {
		log.Fatalf("Failed to connect to Redis: %v", err)
	}

	// 上传目录
	store, err := infra.NewImageStore(cfg.Uploads, cfg.Server.BaseURL)
	if err != nil {
		log.Fatalf("Failed to prepare upload directory: %v", err)
	}

	// 3. 初始化 WebSocket 管理器
	wsHub := infra.NewWsManager()
	go wsHub.Start()

	// 4. 初始化外部网关
	paypalGateway, err := gateway.NewPayPalGateway(cfg.PayPal, cfg.Server.BaseURL)
	if err != nil {
		log.Fatalf("Failed to initialize PayPal client: %v", err)
	}
	googleVerifier := gateway.NewGoogleVerifier(cfg.Google)

	// 5. 初始化业务服务
	notifications := service.NewNotificationService(pg.DB, wsHub)
	accounts := service.NewAccountService(pg.DB, cfg.JWT.Secret, googleVerifier, notifications)
	registry := service.NewRegistryService(pg.DB, rdb, store)
	transfers := service.NewTransferService(pg.DB, rdb)
	staff := service.NewStaffService(pg.DB)
	payments := service.NewPaymentService(pg.DB, paypalGateway)

	// 6. 设置 Fiber 服务器并注册路由
	app := api.NewServer(cfg, store)
	router := api.NewRouter(app, cfg, pg.DB, api.Deps{
		Accounts:      accounts,
		Registry:      registry,
		Transfers:     transfers,
		Staff:         staff,
		Payments:      payments,
		Notifications: notifications,
		Store:         store,
		Hub:           wsHub,
	})
	router.RegisterRoutes()

	// 7. 启动服务器
	log.Printf("Server starting on port %s", cfg.Server.Port)
	if err := app.Listen(cfg.Server.Port); err != nil {
		log.Fatalf("Server failed to start: %v", err)
	}
}
