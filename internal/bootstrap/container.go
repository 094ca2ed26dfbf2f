package bootstrap

import (
	"context"
	"log"
	"time"

	"renewal-tracking-be/internal/config"
	"renewal-tracking-be/internal/controller"
	"renewal-tracking-be/internal/handler"
	"renewal-tracking-be/internal/pkg/logger"
	"renewal-tracking-be/internal/pkg/mailer"
	"renewal-tracking-be/internal/repository/unitofwork"
	"renewal-tracking-be/internal/service"
	"renewal-tracking-be/internal/websocket"
	pktNats "renewal-tracking-be/pkg/nats"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type Container struct {
	// Controllers
	AuthController    controller.IAuthController
	RenewalController controller.IRenewalController
	AdminController   controller.IAdminController

	// Background services (exposed for main.go to run)
	ConsumerService          service.IConsumerService
	ReminderService          service.IReminderService
	NotificationEventService service.INotificationEventService

	// WebSockets & notification
	NotificationHandler *handler.NotificationHandler
	WebSocketHub        *websocket.Hub
}

func NewContainer(db *gorm.DB, cfg *config.Config) *Container {
	// 1. Core facades
	uowFactory := unitofwork.NewRepositoryFactory(db)
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")

	emailService := mailer.NewEmailService(
		cfg.SMTP.Host,
		cfg.SMTP.Port,
		cfg.SMTP.Email,
		cfg.SMTP.Password,
		cfg.SMTP.SenderName,
	)

	// 2. Event bus
	watermillLogger := watermill.NewStdLogger(false, false)
	pubSub := gochannel.NewGoChannel(
		gochannel.Config{},
		watermillLogger,
	)

	// 2.5 Infrastructure
	// NATS
	natsPub, err := pktNats.NewPublisher(cfg.App.NatsURL)
	if err != nil {
		log.Printf("[WARN] Failed to connect to NATS Publisher: %v", err)
	}
	natsSub, err := pktNats.NewSubscriber(cfg.App.NatsURL)
	if err != nil {
		log.Printf("[WARN] Failed to connect to NATS Subscriber: %v", err)
	}

	// Redis
	opt, err := redis.ParseURL(cfg.App.RedisURL)
	if err != nil {
		log.Printf("[WARN] Failed to parse Redis URL: %v. Using direct Addr", err)
		opt = &redis.Options{
			Addr: cfg.App.RedisURL,
		}
	}
	rdb := redis.NewClient(opt)
	if _, err := rdb.Ping(context.Background()).Result(); err != nil {
		log.Printf("[WARN] Failed to connect to Redis: %v", err)
	}

	// WebSocket hub
	wsLogger := logger.NewIsolatedLogger("logs/notification.log")
	wsHub := websocket.NewHub(rdb, wsLogger)
	go wsHub.Run()

	// 3. Services
	publisherService := service.NewPublisherService(cfg.Topics.RenewalAudit, pubSub)
	consumerService := service.NewConsumerService(
		pubSub,
		cfg.Topics.RenewalAudit,
		uowFactory,
	)

	authService := service.NewAuthService(uowFactory, natsPub)
	renewalService := service.NewRenewalService(uowFactory, publisherService, natsPub)
	adminService := service.NewAdminService(uowFactory)
	reminderService := service.NewReminderService(
		uowFactory,
		emailService,
		wsHub,
		sysLogger,
		time.Duration(cfg.Reminder.ScanIntervalMinutes)*time.Minute,
	)

	notificationEventService := service.NewNotificationEventService(natsSub, wsHub, wsLogger)

	notifHandler := handler.NewNotificationHandler(wsHub, wsLogger)

	// 4. Controllers
	return &Container{
		AuthController:    controller.NewAuthController(authService),
		RenewalController: controller.NewRenewalController(renewalService),
		AdminController:   controller.NewAdminController(adminService, sysLogger),

		ConsumerService:          consumerService,
		ReminderService:          reminderService,
		NotificationEventService: notificationEventService,

		NotificationHandler: notifHandler,
		WebSocketHub:        wsHub,
	}
}
