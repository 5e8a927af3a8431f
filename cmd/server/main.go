package main

import (
	"context"
	"log"
	"time"

	"pos_manager/internal/cache"
	"pos_manager/internal/config"
	"pos_manager/internal/database"
	"pos_manager/internal/handlers"
	"pos_manager/internal/redis"
	"pos_manager/internal/repository"
	"pos_manager/internal/services"
	"pos_manager/internal/shadowstore"
	"pos_manager/pkg/apiclient"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Initialize database
	db, err := database.Initialize(cfg.DatabaseURL)
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}

	// Initialize Redis
	redisClient, err := redis.Initialize(cfg.RedisURL)
	if err != nil {
		log.Fatal("Failed to connect to Redis:", err)
	}
	defer redisClient.Close()

	// Shadow store: Redis is both the slot storage and the change broadcaster.
	store := shadowstore.New(redisClient, redisClient)

	// Initialize repositories
	userRepo := repository.NewUserRepository(db)
	orderRepo := repository.NewOrderRepository(db)
	customerRepo := repository.NewCustomerRepository(db)
	tableRepo := repository.NewTableRepository(db)
	categoryRepo := repository.NewCategoryRepository(db)
	dishRepo := repository.NewDishRepository(db)
	historyRepo := repository.NewLoginHistoryRepository(db)

	// Initialize services
	userService := services.NewUserService(userRepo, historyRepo, cfg.JWTSecret, time.Duration(cfg.TokenTTL)*time.Second)
	orderService := services.NewOrderService(orderRepo)
	customerService := services.NewCustomerService(customerRepo, orderRepo, store)
	menuService := services.NewMenuService(store)

	// Remote-collection cache fed by the backend API client; the reports read
	// from it so dashboard queries ride the poller.
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	collections := startCollectionCache(ctx, cfg, redisClient, userService)
	reportService := services.NewReportService(orderRepo, userRepo, customerRepo, collections)

	// Sessions older than the token lifetime cannot present a valid token
	// anymore; mark them expired so the login history reflects reality.
	go func() {
		ticker := time.NewTicker(time.Hour)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				cutoff := time.Now().Add(-time.Duration(cfg.TokenTTL) * time.Second)
				if err := historyRepo.ExpireOlderThan(cutoff); err != nil {
					log.Printf("failed to expire stale sessions: %v", err)
				}
			}
		}
	}()

	// Initialize handlers
	userHandler := handlers.NewUserHandler(userService)
	orderHandler := handlers.NewOrderHandler(orderService)
	customerHandler := handlers.NewCustomerHandler(customerService)
	catalogHandler := handlers.NewCatalogHandler(tableRepo, categoryRepo, dishRepo)
	menuHandler := handlers.NewMenuHandler(menuService)
	reportHandler := handlers.NewReportHandler(reportService)

	// Setup routes
	router := gin.Default()
	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "X-Device-Label"},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}))

	api := router.Group("/api")
	{
		api.POST("/user/register", userHandler.Register)
		api.POST("/user/login", userHandler.Login)

		authed := api.Group("")
		authed.Use(handlers.AuthMiddleware(userService))
		{
			authed.POST("/user/logout", userHandler.Logout)
			authed.GET("/user/login-history", userHandler.LoginHistory)

			authed.GET("/orders", orderHandler.List)
			authed.POST("/orders", orderHandler.Create)
			authed.PUT("/orders/:id", orderHandler.Update)
			authed.DELETE("/orders/:id", orderHandler.Delete)

			authed.GET("/table", catalogHandler.ListTables)
			authed.POST("/table", catalogHandler.CreateTable)
			authed.PUT("/table/:id", catalogHandler.UpdateTable)
			authed.DELETE("/table/:id", catalogHandler.DeleteTable)

			authed.GET("/category", catalogHandler.ListCategories)
			authed.POST("/category", catalogHandler.CreateCategory)
			authed.PUT("/category/:id", catalogHandler.UpdateCategory)
			authed.DELETE("/category/:id", catalogHandler.DeleteCategory)

			authed.GET("/dish", catalogHandler.ListDishes)
			authed.POST("/dish", catalogHandler.CreateDish)
			authed.PUT("/dish/:id", catalogHandler.UpdateDish)
			authed.DELETE("/dish/:id", catalogHandler.DeleteDish)

			authed.GET("/customers", customerHandler.List)
			authed.POST("/customers", customerHandler.Create)
			authed.PUT("/customers/:id", customerHandler.Update)
			authed.DELETE("/customers/:id", customerHandler.Delete)
			authed.POST("/customers/sync-stats", customerHandler.SyncStats)

			authed.GET("/menu", menuHandler.ListMenu)
			authed.POST("/menu", menuHandler.AddMenuItem)
			authed.PUT("/menu/:id", menuHandler.UpdateMenuItem)
			authed.DELETE("/menu/:id", menuHandler.DeleteMenuItem)

			authed.GET("/inventory", menuHandler.ListInventory)
			authed.PUT("/inventory/:id/quantity", menuHandler.UpdateQuantity)

			authed.GET("/reports/summary", reportHandler.Summary)
			authed.GET("/reports/staff-sales", reportHandler.StaffSales)
			authed.GET("/reports/top-items", reportHandler.TopItems)

			admin := authed.Group("")
			admin.Use(handlers.RequireAdmin())
			{
				admin.GET("/user", userHandler.List)
				admin.POST("/user", userHandler.Register)
				admin.PUT("/user/:id", userHandler.Update)
				admin.DELETE("/user/:id", userHandler.Delete)
			}
		}
	}

	// Start server
	log.Printf("Server starting on port %s", cfg.ServerPort)
	if err := router.Run(":" + cfg.ServerPort); err != nil {
		log.Fatal("Failed to start server:", err)
	}
}

// startCollectionCache polls the backend API for the order, staff and
// customer collections and refetches eagerly when a change signal arrives on
// the pub/sub channels. The poller authenticates with a service token minted
// fresh for every request so it never expires out from under the loop.
func startCollectionCache(ctx context.Context, cfg *config.Config, redisClient *redis.Client, userService services.UserService) *cache.Cache {
	client := apiclient.New(cfg.BackendAPIURL, func() string {
		token, err := userService.ServiceToken()
		if err != nil {
			log.Printf("failed to mint poller token: %v", err)
			return ""
		}
		return token
	})

	c := cache.New()
	c.Register(services.CollectionOrders, time.Duration(cfg.OrderPollSeconds)*time.Second, func(ctx context.Context) (interface{}, error) {
		return client.Orders(ctx)
	})
	c.Register(services.CollectionStaff, time.Duration(cfg.StaffPollSeconds)*time.Second, func(ctx context.Context) (interface{}, error) {
		return client.Users(ctx)
	})
	c.Register(services.CollectionCustomers, time.Duration(cfg.StaffPollSeconds)*time.Second, func(ctx context.Context) (interface{}, error) {
		return client.Customers(ctx)
	})

	go c.Start(ctx)

	go func() {
		messages := redisClient.Subscribe(ctx, shadowstore.StorageChannel, shadowstore.CustomerUpdatedChannel)
		for msg := range messages {
			switch msg.Channel {
			case shadowstore.CustomerUpdatedChannel:
				if err := c.Invalidate(ctx, services.CollectionCustomers); err != nil {
					log.Printf("customer cache invalidation failed: %v", err)
				}
			case shadowstore.StorageChannel:
				// Shadow slots are read straight from Redis; nothing cached
				// here depends on them.
			}
		}
	}()

	return c
}
