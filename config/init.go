package config

import (
	"context"
	"fmt"
	"log"
	"os"

	"hotelbooking/services/events"
	"hotelbooking/services/logger"
	"hotelbooking/validator"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/olahol/melody"
	"github.com/redis/go-redis/v9"
	"github.com/robfig/cron/v3"
	"gorm.io/gorm"
)

// App gom các thành phần hạ tầng đã khởi tạo
type App struct {
	Config     Config
	Router     *gin.Engine
	Melody     *melody.Melody
	Cron       *cron.Cron
	DB         *gorm.DB
	Redis      *redis.Client
	Cloudinary *cloudinary.Cloudinary
	Publisher  events.Publisher
	Logger     logger.Logger
}

func InitApp(ctx context.Context) (*App, error) {
	if err := LoadEnv(); err != nil {
		return nil, fmt.Errorf("failed to load .env file: %v", err)
	}
	cfg := Load()
	if cfg.Env == "prod" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.Default()

	configCors := cors.DefaultConfig()
	configCors.AddAllowHeaders("Authorization", "X-Request-ID")
	configCors.AddExposeHeaders("X-Request-ID", "X-RateLimit-Limit", "X-RateLimit-Remaining", "Retry-After")
	configCors.AllowCredentials = true
	configCors.AllowAllOrigins = false
	configCors.AllowOriginFunc = func(origin string) bool {
		return true
	}
	router.Use(cors.New(configCors))

	router.SetTrustedProxies(nil)

	if err := validator.RegisterBindings(); err != nil {
		return nil, fmt.Errorf("failed to register validators: %v", err)
	}

	app := &App{
		Config: cfg,
		Router: router,
		Melody: melody.New(),
		Cron:   cron.New(),
		Logger: newLogger(cfg),
	}
	if err := app.initComponents(ctx); err != nil {
		return nil, fmt.Errorf("failed to initialize components: %v", err)
	}
	return app, nil
}

func newLogger(cfg Config) logger.Logger {
	return logger.NewLogger(os.Stdout, logger.ParseLevel(cfg.LogLevel), cfg.LogColor)
}

func (a *App) initComponents(ctx context.Context) error {
	db, err := ConnectDB(a.Config)
	if err != nil {
		return err
	}
	if a.Config.AutoMigrate {
		if err := Migrate(db); err != nil {
			return err
		}
	}
	a.DB = db

	a.Cloudinary, err = ConnectCloudinary(a.Config)
	if err != nil {
		return fmt.Errorf("failed to connect to Cloudinary: %v", err)
	}

	a.Redis, err = ConnectRedis(ctx, a.Config)
	if err != nil {
		return fmt.Errorf("failed to connect to Redis: %v", err)
	}

	a.Publisher, err = events.NewPublisher(events.Options{
		Broker:       a.Config.EventBroker,
		KafkaBrokers: a.Config.KafkaBrokers,
		KafkaTopic:   a.Config.KafkaTopic,
		RabbitURL:    a.Config.RabbitMQURL,
	})
	if err != nil {
		return fmt.Errorf("failed to init event publisher: %v", err)
	}

	log.Println("All components initialized successfully")
	return nil
}

// Close giải phóng kết nối khi tắt server
func (a *App) Close() {
	a.Cron.Stop()
	if err := a.Publisher.Close(); err != nil {
		a.Logger.Warn("failed to close publisher: %v", err)
	}
	if a.Redis != nil {
		_ = a.Redis.Close()
	}
	if err := a.Melody.Close(); err != nil {
		a.Logger.Warn("failed to close websocket hub: %v", err)
	}
	if sqlDB, err := a.DB.DB(); err == nil {
		_ = sqlDB.Close()
	}
}
