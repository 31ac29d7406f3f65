package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	appbook "github.com/pustaka/bookstore/internal/application/book"
	appgenre "github.com/pustaka/bookstore/internal/application/genre"
	apptx "github.com/pustaka/bookstore/internal/application/transaction"
	appuser "github.com/pustaka/bookstore/internal/application/user"
	"github.com/pustaka/bookstore/internal/domain/book"
	"github.com/pustaka/bookstore/internal/domain/genre"
	"github.com/pustaka/bookstore/internal/domain/user"
	"github.com/pustaka/bookstore/internal/infrastructure/config"
	"github.com/pustaka/bookstore/internal/infrastructure/persistence/mysql"
	"github.com/pustaka/bookstore/internal/infrastructure/persistence/redis"
	"github.com/pustaka/bookstore/internal/interface/http/handler"
	"github.com/pustaka/bookstore/internal/interface/http/middleware"
	"github.com/pustaka/bookstore/pkg/jwt"
	"github.com/pustaka/bookstore/pkg/metrics"
	"github.com/pustaka/bookstore/pkg/mq"
	"github.com/pustaka/bookstore/pkg/response"
	"github.com/pustaka/bookstore/pkg/tracing"
)

// main 主程序入口
// 说明：手动依赖注入，组装链为Repository ← Service ← UseCase ← Handler
// （wire.go提供等价的Wire配置，运行wire gen可生成自动注入版本）
func main() {
	// 1. 加载配置
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	fmt.Printf("config loaded: port=%d mode=%s db=%s:%d/%s redis=%s\n",
		cfg.Server.Port, cfg.Server.Mode,
		cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName,
		cfg.Redis.Addr())

	// 2. 初始化可观测性组件
	metrics.InitMetrics()

	if cfg.Tracing.Enabled {
		shutdown, err := tracing.InitTracer("bookstore-api", cfg.Tracing.Endpoint)
		if err != nil {
			log.Fatalf("failed to init tracer: %v", err)
		}
		defer shutdown(context.Background())
	}

	// 3. 初始化数据库与Redis连接
	db, err := mysql.NewDB(cfg)
	if err != nil {
		log.Fatalf("failed to init database: %v", err)
	}

	redisClient, err := redis.NewClient(cfg)
	if err != nil {
		log.Fatalf("failed to init redis: %v", err)
	}

	// 4. 消息队列（可选组件，连不上只降级不退出）
	var publisher apptx.EventPublisher
	if cfg.MQ.Enabled {
		p, err := mq.NewPublisher(cfg.MQ.URL, cfg.MQ.Exchange, "topic")
		if err != nil {
			log.Printf("RabbitMQ unavailable, events disabled: %v", err)
		} else {
			defer p.Close()
			publisher = p
		}
	}

	// 5. 依赖注入（手动组装）

	// 基础设施层
	userRepo := mysql.NewUserRepository(db)
	genreRepo := mysql.NewGenreRepository(db)
	bookRepo := mysql.NewBookRepository(db)
	txRepo := mysql.NewTransactionRepository(db)
	txManager := mysql.NewTxManager(db)
	sessionStore := redis.NewSessionStore(redisClient)
	jwtManager := jwt.NewManager(
		cfg.JWT.Secret,
		cfg.JWT.AccessTokenExpire,
		cfg.JWT.RefreshTokenExpire,
	)

	// 领域层
	userService := user.NewService(userRepo)
	genreService := genre.NewService(genreRepo)
	bookService := book.NewService(bookRepo, genreRepo)

	// 应用层
	registerUseCase := appuser.NewRegisterUseCase(userService)
	loginUseCase := appuser.NewLoginUseCase(userService, jwtManager, sessionStore)
	logoutUseCase := appuser.NewLogoutUseCase(sessionStore)
	getProfileUseCase := appuser.NewGetProfileUseCase(userService)
	genreUseCase := appgenre.NewManageGenresUseCase(genreService)
	manageBooksUseCase := appbook.NewManageBooksUseCase(bookService)
	listBooksUseCase := appbook.NewListBooksUseCase(bookService)
	checkoutUseCase := apptx.NewCheckoutUseCase(txRepo, bookRepo, txManager, publisher)
	historyUseCase := apptx.NewHistoryUseCase(txRepo)
	statisticsUseCase := apptx.NewStatisticsUseCase(txRepo)

	// 接口层
	userHandler := handler.NewUserHandler(registerUseCase, loginUseCase, logoutUseCase, getProfileUseCase)
	genreHandler := handler.NewGenreHandler(genreUseCase)
	bookHandler := handler.NewBookHandler(manageBooksUseCase, listBooksUseCase)
	transactionHandler := handler.NewTransactionHandler(checkoutUseCase, historyUseCase, statisticsUseCase)
	authMiddleware := middleware.NewAuthMiddleware(jwtManager, sessionStore)

	// 6. 初始化Gin引擎
	if cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(middleware.Logger(), gin.Recovery(), middleware.Metrics())

	registerRoutes(r, userHandler, genreHandler, bookHandler, transactionHandler, authMiddleware)

	// 7. 启动HTTP服务（支持优雅关闭）
	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	go func() {
		fmt.Printf("server listening on %s\n", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("failed to start server: %v", err)
		}
	}()

	// 等待退出信号
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	// 在途请求最多等10秒
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Printf("server forced to shutdown: %v", err)
	}
	fmt.Println("server exited")
}

// registerRoutes 注册路由
func registerRoutes(
	r *gin.Engine,
	userHandler *handler.UserHandler,
	genreHandler *handler.GenreHandler,
	bookHandler *handler.BookHandler,
	transactionHandler *handler.TransactionHandler,
	authMiddleware *middleware.AuthMiddleware,
) {
	// 健康检查
	r.GET("/ping", func(c *gin.Context) {
		response.Success(c, gin.H{
			"message": "pong",
			"status":  "healthy",
		})
	})

	// Prometheus指标端点
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// Swagger文档（http://localhost:8080/swagger/index.html）
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	v1 := r.Group("/api/v1")
	{
		// 认证模块
		auth := v1.Group("/auth")
		{
			auth.POST("/register", userHandler.Register)
			auth.POST("/login", userHandler.Login)
			auth.POST("/logout", authMiddleware.RequireAuth(), userHandler.Logout)
			auth.GET("/me", authMiddleware.RequireAuth(), userHandler.Me)
		}

		// 分类模块（读公开，写需要登录）
		genres := v1.Group("/genres")
		{
			genres.GET("", genreHandler.List)
			genres.GET("/:id", genreHandler.Get)
			genres.POST("", authMiddleware.RequireAuth(), genreHandler.Create)
			genres.PUT("/:id", authMiddleware.RequireAuth(), genreHandler.Update)
			genres.DELETE("/:id", authMiddleware.RequireAuth(), genreHandler.Delete)
		}

		// 图书模块（读公开，写需要登录）
		books := v1.Group("/books")
		{
			books.GET("", bookHandler.List)
			books.GET("/genre/:genreId", bookHandler.ListByGenre)
			books.GET("/:id", bookHandler.Get)
			books.POST("", authMiddleware.RequireAuth(), bookHandler.Create)
			books.PUT("/:id", authMiddleware.RequireAuth(), bookHandler.Update)
			books.DELETE("/:id", authMiddleware.RequireAuth(), bookHandler.Delete)
		}

		// 交易模块（全部需要登录）
		transactions := v1.Group("/transactions")
		transactions.Use(authMiddleware.RequireAuth())
		{
			transactions.POST("", transactionHandler.Checkout)
			transactions.GET("", transactionHandler.List)
			transactions.GET("/statistics", transactionHandler.Statistics)
			transactions.GET("/:id", transactionHandler.Get)
		}
	}
}
