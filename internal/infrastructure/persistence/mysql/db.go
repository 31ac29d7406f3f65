package mysql

import (
	"fmt"
	"log"
	"time"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/pustaka/bookstore/internal/infrastructure/config"
)

// NewDB 创建数据库连接
// 设计说明：
// 1. 使用GORM v2作为ORM框架
// 2. 配置连接池参数（MaxOpenConns、MaxIdleConns、ConnMaxLifetime）
// 3. 开发环境开启SQL日志，生产环境关闭
// 4. 自动迁移表结构（AutoMigrate）
func NewDB(cfg *config.Config) (*gorm.DB, error) {
	// 1. 构建DSN连接字符串
	dsn := cfg.Database.DSN()

	// 2. 配置GORM日志
	logLevel := logger.Silent
	if cfg.Server.Mode == "debug" {
		logLevel = logger.Info // 开发环境打印SQL
	}

	// 3. 连接数据库
	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logLevel),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect database: %w", err)
	}

	// 4. 配置连接池
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get sql.DB: %w", err)
	}

	sqlDB.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(cfg.Database.ConnMaxLifetime)

	// 5. 测试连接
	if err := sqlDB.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	log.Println("✓ 数据库连接成功")

	// 6. 自动迁移表结构（开发环境）
	// 注意：生产环境应使用专门的迁移工具（如golang-migrate）
	if err := autoMigrate(db); err != nil {
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return db, nil
}

// autoMigrate 自动迁移表结构
// AutoMigrate只会创建表、添加字段，不会删除或修改现有字段
func autoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&UserModel{},
		&GenreModel{},
		&BookModel{},
		&TransactionModel{},
		&TransactionItemModel{},
	)
}

// UserModel GORM用户模型
// 设计说明：
// 1. 这是infrastructure层的数据模型，包含GORM tag
// 2. domain/user/entity.go是领域实体，不依赖GORM
// 3. Repository负责两者之间的转换
type UserModel struct {
	ID        uint           `gorm:"primaryKey"`
	Email     string         `gorm:"uniqueIndex;size:100;not null;comment:邮箱"`
	Password  string         `gorm:"size:255;not null;comment:密码（bcrypt加密）"`
	Username  string         `gorm:"size:50;not null;comment:显示名称"`
	CreatedAt time.Time      `gorm:"comment:创建时间"`
	UpdatedAt time.Time      `gorm:"comment:更新时间"`
	DeletedAt gorm.DeletedAt `gorm:"index;comment:删除时间（软删除）"`
}

// TableName 指定表名
func (UserModel) TableName() string {
	return "users"
}

// GenreModel GORM分类模型
// 设计说明：
// 1. Name只建普通索引：软删除后名称可复用，
//    "未删除分类中名称唯一"由领域服务校验
// 2. 软删除保证历史交易中的图书仍能追溯到分类
type GenreModel struct {
	ID          uint           `gorm:"primaryKey"`
	Name        string         `gorm:"index;size:100;not null;comment:分类名称"`
	Description string         `gorm:"type:text;comment:分类描述"`
	CreatedAt   time.Time      `gorm:"comment:创建时间"`
	UpdatedAt   time.Time      `gorm:"comment:更新时间"`
	DeletedAt   gorm.DeletedAt `gorm:"index;comment:删除时间（软删除）"`
}

// TableName 指定表名
func (GenreModel) TableName() string {
	return "genres"
}

// BookModel GORM图书模型
// 设计说明：
// 1. 价格使用int64存储最小货币单位（避免浮点数精度问题）
// 2. Title有唯一索引，防止重复上架
// 3. GenreID关联分类表
// 4. 被交易引用过的图书只做软删除，永不物理删除
type BookModel struct {
	ID          uint           `gorm:"primaryKey"`
	Title       string         `gorm:"uniqueIndex;size:200;not null;comment:书名"`
	Author      string         `gorm:"index;size:100;not null;comment:作者"`
	Description string         `gorm:"type:text;comment:图书描述"`
	Price       int64          `gorm:"not null;comment:价格(最小货币单位)"`
	Stock       int            `gorm:"default:0;comment:库存数量"`
	GenreID     uint           `gorm:"index;not null;comment:分类ID"`
	Genre       GenreModel     `gorm:"foreignKey:GenreID"`
	CreatedAt   time.Time      `gorm:"index;comment:创建时间"`
	UpdatedAt   time.Time      `gorm:"comment:更新时间"`
	DeletedAt   gorm.DeletedAt `gorm:"index;comment:删除时间(软删除)"`
}

// TableName 指定表名
func (BookModel) TableName() string {
	return "books"
}

// TransactionModel GORM交易模型
// 设计说明：
// 1. 与TransactionItemModel是一对多关系
// 2. 交易是append-only：没有UpdatedAt，也没有软删除字段
// 3. Total冗余存储创建时刻的合计金额
type TransactionModel struct {
	ID        uint                   `gorm:"primaryKey"`
	UserID    uint                   `gorm:"index;not null;comment:买家用户ID"`
	Total     int64                  `gorm:"not null;comment:合计金额(最小货币单位)"`
	Items     []TransactionItemModel `gorm:"foreignKey:TransactionID"`
	CreatedAt time.Time              `gorm:"index;comment:创建时间"`
}

// TableName 指定表名
func (TransactionModel) TableName() string {
	return "transactions"
}

// TransactionItemModel GORM交易明细模型
// Price是下单时刻的价格快照，与books.price解耦
type TransactionItemModel struct {
	ID            uint      `gorm:"primaryKey"`
	TransactionID uint      `gorm:"index;not null;comment:所属交易ID"`
	BookID        uint      `gorm:"index;not null;comment:图书ID"`
	Quantity      int       `gorm:"not null;comment:购买数量"`
	Price         int64     `gorm:"not null;comment:价格快照(最小货币单位)"`
	Book          BookModel `gorm:"foreignKey:BookID"`
}

// TableName 指定表名
func (TransactionItemModel) TableName() string {
	return "transaction_items"
}
