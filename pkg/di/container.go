package di

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"buildboard/application/serviceimpl"
	"buildboard/domain/ports"
	"buildboard/domain/repositories"
	"buildboard/domain/services"
	"buildboard/infrastructure/ai"
	"buildboard/infrastructure/memory"
	"buildboard/infrastructure/messaging"
	natspkg "buildboard/infrastructure/nats"
	"buildboard/infrastructure/payment"
	"buildboard/infrastructure/postgres"
	"buildboard/infrastructure/ratelimit"
	redispkg "buildboard/infrastructure/redis"
	"buildboard/infrastructure/storage"
	"buildboard/infrastructure/websocket"
	"buildboard/interfaces/api/handlers"
	"buildboard/pkg/config"
	"buildboard/pkg/logger"
	"buildboard/pkg/scheduler"
)

const jobLifecycleJobID = "job-lifecycle"

type Container struct {
	Config *config.Config

	// Infrastructure
	DB             *gorm.DB
	Store          repositories.Store
	RedisClient    *redispkg.Client // optional: ไม่มีใช้ in-memory limiter
	NATSClient     *natspkg.Client  // optional: ไม่มีใช้ in-process bus
	Storage        ports.StoragePort
	Gemini         *ai.GeminiClient
	Payment        *payment.StripeGateway // optional: ไม่มีแล้ว subscription ใช้ไม่ได้
	EventScheduler scheduler.EventScheduler

	// Messaging ports
	ChatPublisher  ports.ChatEventPublisherPort
	ChatSubscriber ports.ChatEventSubscriberPort
	RateLimiter    ports.RateLimiterPort
	localBus       *messaging.LocalChatBus

	// Services
	UserService         services.UserService
	JobService          services.JobService
	ApplicationService  services.ApplicationService
	ChatService         services.ChatService
	ProfileService      services.ProfileService
	ProjectService      services.ProjectService
	TaskService         services.TaskService
	UploadService       services.UploadService
	AssistantService    services.AssistantService
	SubscriptionService services.SubscriptionService

	// WebSocket
	Hub             *websocket.Hub
	ChatBroadcaster *websocket.ChatBroadcaster
}

func NewContainer() *Container {
	return &Container{}
}

func (c *Container) Initialize() error {
	if err := c.initConfig(); err != nil {
		return err
	}

	if err := c.initLogger(); err != nil {
		return err
	}

	if err := c.initInfrastructure(); err != nil {
		return err
	}

	if err := c.initServices(); err != nil {
		return err
	}

	if err := c.initRealtime(); err != nil {
		return err
	}

	return c.initScheduler()
}

func (c *Container) initConfig() error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return err
	}
	c.Config = cfg
	logger.Info("Configuration loaded")
	return nil
}

func (c *Container) initLogger() error {
	logConfig := logger.Config{
		Level:      c.Config.Log.Level,
		Format:     c.Config.Log.Format,
		Output:     c.Config.Log.Output,
		FilePath:   c.Config.Log.FilePath,
		MaxSize:    c.Config.Log.MaxSize,
		MaxBackups: c.Config.Log.MaxBackups,
		MaxAge:     c.Config.Log.MaxAge,
		Compress:   c.Config.Log.Compress,
	}

	if err := logger.Init(logConfig); err != nil {
		return err
	}

	logger.Info("Logger initialized",
		"level", c.Config.Log.Level,
		"format", c.Config.Log.Format,
		"output", c.Config.Log.Output,
	)
	return nil
}

func (c *Container) initInfrastructure() error {
	if err := c.initStore(); err != nil {
		return err
	}

	// Redis (optional - graceful degradation)
	if c.Config.Redis.URL != "" {
		redisClient, err := redispkg.NewClient(&c.Config.Redis)
		if err != nil {
			logger.Warn("Redis client initialization failed (using in-memory rate limiter)", "error", err)
		} else {
			c.RedisClient = redisClient
			c.RateLimiter = redispkg.NewRateLimiter(redisClient, c.Config.Chat.RateLimit, c.Config.Chat.RateWindow, "ratelimit")
			logger.Info("Redis rate limiter initialized", "url", c.Config.Redis.URL)
		}
	}
	if c.RateLimiter == nil {
		c.RateLimiter = ratelimit.NewMemoryLimiter(c.Config.Chat.RateLimit, c.Config.Chat.RateWindow)
	}

	c.initMessaging()

	if err := c.initStorage(); err != nil {
		return err
	}

	if c.Config.AI.APIKey != "" {
		gemini, err := ai.NewGeminiClient(context.Background(), c.Config.AI.APIKey, c.Config.AI.Model)
		if err != nil {
			logger.Warn("Gemini client initialization failed (assistant uses fallback reply)", "error", err)
		} else {
			c.Gemini = gemini
			logger.Info("Gemini client initialized", "model", c.Config.AI.Model)
		}
	} else {
		logger.Warn("AI_API_KEY not set, assistant uses fallback reply")
	}

	if c.Config.Payment.StripeSecretKey != "" {
		gateway, err := payment.NewStripeGateway(payment.StripeConfig{
			SecretKey: c.Config.Payment.StripeSecretKey,
			Timeout:   c.Config.Payment.Timeout,
		})
		if err != nil {
			logger.Warn("Stripe gateway initialization failed (subscriptions disabled)", "error", err)
		} else {
			c.Payment = gateway
			logger.Info("Payment gateway initialized", "provider", gateway.GetProviderName())
		}
	} else {
		logger.Warn("STRIPE_SECRET_KEY not set, subscriptions disabled")
	}

	return nil
}

func (c *Container) initStore() error {
	if c.Config.UsesMemoryStore() {
		c.Store = memory.NewStore()
		logger.Warn("Using in-memory store, data is lost on restart")
		return nil
	}

	db, err := postgres.NewDatabase(postgres.DatabaseConfig{
		Host:     c.Config.Database.Host,
		Port:     c.Config.Database.Port,
		User:     c.Config.Database.User,
		Password: c.Config.Database.Password,
		DBName:   c.Config.Database.DBName,
		SSLMode:  c.Config.Database.SSLMode,
		LogLevel: c.Config.Database.LogLevel,
	})
	if err != nil {
		return err
	}
	c.DB = db
	logger.Info("Database connected", "host", c.Config.Database.Host, "db", c.Config.Database.DBName)

	if err := postgres.Migrate(db); err != nil {
		return err
	}
	logger.Info("Database migrated")

	c.Store = postgres.NewStore(db)
	return nil
}

// initMessaging NATS ถ้าตั้งค่าไว้และต่อได้ ไม่งั้นใช้ bus ภายใน process
func (c *Container) initMessaging() {
	if c.Config.NATS.URL != "" {
		natsClient, err := natspkg.NewClient(natspkg.ClientConfig{
			URL:  c.Config.NATS.URL,
			Name: c.Config.App.Name,
		})
		if err != nil {
			logger.Warn("NATS client initialization failed (using in-process chat bus)", "error", err)
		} else {
			c.NATSClient = natsClient
			c.ChatPublisher = messaging.NewNATSChatPublisher(natsClient.Conn())
			c.ChatSubscriber = messaging.NewNATSChatSubscriber(natsClient.Conn())
			return
		}
	}

	c.localBus = messaging.NewLocalChatBus(0)
	c.ChatPublisher = c.localBus
	c.ChatSubscriber = c.localBus
	logger.Info("In-process chat bus initialized")
}

func (c *Container) initStorage() error {
	var (
		store ports.StoragePort
		err   error
	)

	switch c.Config.Storage.Type {
	case "s3":
		s3 := c.Config.Storage.S3
		store, err = storage.NewS3Storage(storage.S3StorageConfig{
			Endpoint:  s3.Endpoint,
			AccessKey: s3.AccessKey,
			SecretKey: s3.SecretKey,
			Bucket:    s3.Bucket,
			UseSSL:    s3.UseSSL,
			Region:    s3.Region,
			PublicURL: s3.PublicURL,
		})
	case "r2":
		r2 := c.Config.Storage.R2
		store, err = storage.NewR2Storage(storage.R2StorageConfig{
			Endpoint:  r2.Endpoint,
			AccessKey: r2.AccessKey,
			SecretKey: r2.SecretKey,
			Bucket:    r2.Bucket,
			PublicURL: r2.PublicURL,
		})
	case "local", "":
		store, err = storage.NewLocalStorage(storage.LocalStorageConfig{
			BasePath: c.Config.Storage.BasePath,
			BaseURL:  c.Config.Storage.BaseURL,
		})
	default:
		return fmt.Errorf("unknown STORAGE_TYPE %q", c.Config.Storage.Type)
	}
	if err != nil {
		return err
	}

	c.Storage = store
	logger.Info("Storage initialized", "provider", store.GetProviderName())
	return nil
}

func (c *Container) initServices() error {
	c.UserService = serviceimpl.NewUserService(c.Store.Users(), c.Config.JWT.Secret, c.Config.JWT.TTL)
	c.JobService = serviceimpl.NewJobService(c.Store, c.Storage)
	c.ApplicationService = serviceimpl.NewApplicationService(c.Store, c.ChatPublisher, c.Config.Application.AllowRedecide)
	c.ChatService = serviceimpl.NewChatService(c.Store, c.ChatPublisher, c.RateLimiter)
	c.ProfileService = serviceimpl.NewProfileService(c.Store)
	c.ProjectService = serviceimpl.NewProjectService(c.Store)
	c.TaskService = serviceimpl.NewTaskService(c.Store)
	c.UploadService = serviceimpl.NewUploadService(c.Store, c.Storage, c.Config.Storage.SignedURLTTL)

	// ส่ง nil interface จริงๆ ถ้าไม่มี Gemini (ไม่ใช่ typed nil)
	var assistant ports.AssistantPort
	if c.Gemini != nil {
		assistant = c.Gemini
	}
	c.AssistantService = serviceimpl.NewAssistantService(assistant, c.Config.AI.Timeout)

	var gateway ports.PaymentPort
	if c.Payment != nil {
		gateway = c.Payment
	}
	c.SubscriptionService = serviceimpl.NewSubscriptionService(c.Store, gateway, c.Config.Payment.Prices())

	logger.Info("Services initialized")
	return nil
}

func (c *Container) initRealtime() error {
	c.Hub = websocket.NewHub(c.authorizeRoom)
	c.Hub.Start()

	c.ChatBroadcaster = websocket.NewChatBroadcaster(c.ChatSubscriber, c.Hub)
	if err := c.ChatBroadcaster.Start(); err != nil {
		return fmt.Errorf("failed to start chat broadcaster: %w", err)
	}
	return nil
}

// authorizeRoom ห้อง websocket = chat id; เข้าได้เฉพาะสมาชิก chat
func (c *Container) authorizeRoom(ctx context.Context, userID uuid.UUID, roomID string) bool {
	chatID, err := uuid.Parse(roomID)
	if err != nil || userID == uuid.Nil {
		return false
	}
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	chat, err := c.Store.Chats().GetByID(ctx, chatID)
	if err != nil {
		return false
	}
	return chat.HasMember(userID)
}

func (c *Container) initScheduler() error {
	c.EventScheduler = scheduler.NewEventScheduler()

	cron := strings.TrimSpace(c.Config.Scheduler.JobSweepCron)
	if cron != "" {
		err := c.EventScheduler.AddJob(jobLifecycleJobID, cron, func() {
			ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
			defer cancel()
			if err := c.JobService.AdvanceLifecycle(ctx); err != nil {
				logger.Error("Job lifecycle sweep failed", "error", err)
			}
		})
		if err != nil {
			return fmt.Errorf("failed to schedule job lifecycle sweep: %w", err)
		}
	}

	c.EventScheduler.Start()
	return nil
}

func (c *Container) Cleanup() error {
	logger.Info("Starting cleanup...")

	if c.EventScheduler != nil && c.EventScheduler.IsRunning() {
		c.EventScheduler.Stop()
		logger.Info("Event scheduler stopped")
	}

	if c.ChatBroadcaster != nil {
		c.ChatBroadcaster.Stop()
	}

	if c.ChatSubscriber != nil {
		if err := c.ChatSubscriber.Close(); err != nil {
			logger.Warn("Failed to close chat subscriber", "error", err)
		}
	}
	if c.localBus != nil {
		c.localBus.Wait()
	}

	if c.Hub != nil {
		c.Hub.Stop()
		logger.Info("WebSocket hub stopped")
	}

	if c.NATSClient != nil {
		c.NATSClient.Close()
	}

	if c.RedisClient != nil {
		if err := c.RedisClient.Close(); err != nil {
			logger.Warn("Failed to close Redis connection", "error", err)
		} else {
			logger.Info("Redis connection closed")
		}
	}

	if c.Gemini != nil {
		if err := c.Gemini.Close(); err != nil {
			logger.Warn("Failed to close Gemini client", "error", err)
		}
	}

	if c.DB != nil {
		sqlDB, err := c.DB.DB()
		if err == nil {
			if err := sqlDB.Close(); err != nil {
				logger.Warn("Failed to close database connection", "error", err)
			} else {
				logger.Info("Database connection closed")
			}
		}
	}

	logger.Info("Cleanup completed")
	return nil
}

func (c *Container) GetConfig() *config.Config {
	return c.Config
}

func (c *Container) GetHandlerServices() *handlers.Services {
	return &handlers.Services{
		UserService:         c.UserService,
		JobService:          c.JobService,
		ApplicationService:  c.ApplicationService,
		ChatService:         c.ChatService,
		ProfileService:      c.ProfileService,
		ProjectService:      c.ProjectService,
		TaskService:         c.TaskService,
		UploadService:       c.UploadService,
		AssistantService:    c.AssistantService,
		SubscriptionService: c.SubscriptionService,
		AppName:             c.Config.App.Name,
	}
}
