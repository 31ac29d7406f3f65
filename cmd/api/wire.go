//go:build wireinject
// +build wireinject

// Wire依赖注入配置
//
// Wire是编译期依赖注入工具：与运行时反射注入不同，
// 运行`wire gen ./cmd/api`会生成wire_gen.go，
// 包含与main.go手动组装等价的初始化代码。
//
// 核心概念：
// - Provider: 提供依赖的构造函数（如NewUserRepository）
// - Injector: 声明最终要构造的目标类型（*gin.Engine）
// - wire.Build(): 告诉Wire如何组装依赖链

package main

import (
	"github.com/gin-gonic/gin"
	"github.com/google/wire"
	goredis "github.com/redis/go-redis/v9"

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
	"github.com/pustaka/bookstore/pkg/mq"
)

// infrastructureSet 基础设施层依赖
var infrastructureSet = wire.NewSet(
	config.Load,
	mysql.NewDB,
	redis.NewClient,
)

// repositorySet 仓储层依赖
var repositorySet = wire.NewSet(
	mysql.NewUserRepository,
	mysql.NewGenreRepository,
	mysql.NewBookRepository,
	mysql.NewTransactionRepository,
	mysql.NewTxManager,
	wire.Bind(new(apptx.TxManager), new(*mysql.TxManager)),
)

// domainSet 领域层依赖
var domainSet = wire.NewSet(
	user.NewService,
	genre.NewService,
	book.NewService,
)

// applicationSet 应用层依赖
var applicationSet = wire.NewSet(
	appuser.NewRegisterUseCase,
	appuser.NewLoginUseCase,
	appuser.NewLogoutUseCase,
	appuser.NewGetProfileUseCase,
	appgenre.NewManageGenresUseCase,
	appbook.NewManageBooksUseCase,
	appbook.NewListBooksUseCase,
	apptx.NewCheckoutUseCase,
	apptx.NewHistoryUseCase,
	apptx.NewStatisticsUseCase,
)

// middlewareSet 中间件依赖
var middlewareSet = wire.NewSet(
	provideJWTManager,
	provideSessionStore,
	middleware.NewAuthMiddleware,
)

// handlerSet HTTP处理器依赖
var handlerSet = wire.NewSet(
	handler.NewUserHandler,
	handler.NewGenreHandler,
	handler.NewBookHandler,
	handler.NewTransactionHandler,
)

// provideJWTManager 从配置创建JWT管理器
// config.Config包含多个字段，Wire无法自动提取JWT子配置
func provideJWTManager(cfg *config.Config) *jwt.Manager {
	return jwt.NewManager(
		cfg.JWT.Secret,
		cfg.JWT.AccessTokenExpire,
		cfg.JWT.RefreshTokenExpire,
	)
}

// provideSessionStore 从Redis客户端创建Session存储
func provideSessionStore(client *goredis.Client) *redis.SessionStore {
	return redis.NewSessionStore(client)
}

// provideEventPublisher 按配置创建消息发布者
// MQ未启用或连接失败时返回nil，结账用例对nil发布者静默降级
func provideEventPublisher(cfg *config.Config) apptx.EventPublisher {
	if !cfg.MQ.Enabled {
		return nil
	}
	p, err := mq.NewPublisher(cfg.MQ.URL, cfg.MQ.Exchange, "topic")
	if err != nil {
		return nil
	}
	return p
}

// provideGinEngine 创建并配置Gin引擎
func provideGinEngine(
	cfg *config.Config,
	userHandler *handler.UserHandler,
	genreHandler *handler.GenreHandler,
	bookHandler *handler.BookHandler,
	transactionHandler *handler.TransactionHandler,
	authMiddleware *middleware.AuthMiddleware,
) *gin.Engine {
	if cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(middleware.Logger(), gin.Recovery(), middleware.Metrics())

	registerRoutes(r, userHandler, genreHandler, bookHandler, transactionHandler, authMiddleware)

	return r
}

// InitializeApp 初始化整个应用
// Wire会按依赖链的正确顺序调用所有构造函数：
// *gin.Engine ← Handler ← UseCase ← Service ← Repository ← *gorm.DB ← *config.Config
func InitializeApp() (*gin.Engine, error) {
	wire.Build(
		infrastructureSet,
		repositorySet,
		domainSet,
		applicationSet,
		middlewareSet,
		handlerSet,
		provideEventPublisher,
		provideGinEngine,
	)

	// 占位返回值，实际代码由wire gen生成到wire_gen.go
	return nil, nil
}
