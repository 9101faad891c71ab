package app

import (
	"context"
	"errors"
	"log"
	"os"
	"os/signal"
	"syscall"

	"nexttalk-backend/internal/cache"
	"nexttalk-backend/internal/db"
	"nexttalk-backend/internal/handlers"
	"nexttalk-backend/internal/models"
	"nexttalk-backend/internal/seed"
	"nexttalk-backend/internal/services"
	"nexttalk-backend/internal/store"
	"nexttalk-backend/internal/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
)

// Services bundles the dependencies the HTTP layer needs.
type Services struct {
	Rooms   *services.RoomService
	Chat    *services.ChatService
	Summary *services.SummaryService
}

// New builds the fiber app with all routes registered.
func New(svc Services) *fiber.App {
	app := fiber.New()

	// Middleware
	app.Use(logger.New())
	app.Use(recover.New())
	app.Use(cors.New())

	// Routes
	api := app.Group("/api")
	api.Use(handlers.ActorMiddleware)

	api.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"message": "NextTalk Dash API"})
	})

	api.Get("/rooms", func(c *fiber.Ctx) error {
		rooms, err := svc.Rooms.ListRooms(c.Context())
		if err != nil {
			return c.Status(500).JSON(fiber.Map{"error": err.Error()})
		}
		return c.JSON(rooms)
	})

	api.Get("/rooms/:room_id/messages", func(c *fiber.Ctx) error {
		limit := c.QueryInt("limit", 0)
		messages, err := svc.Chat.ListMessages(c.Context(), c.Params("room_id"), limit)
		if err != nil {
			return c.Status(500).JSON(fiber.Map{"error": err.Error()})
		}
		return c.JSON(messages)
	})

	api.Post("/messages", func(c *fiber.Ctx) error {
		var req models.SendMessageRequest
		if err := c.BodyParser(&req); err != nil {
			return c.Status(400).JSON(fiber.Map{"error": "Invalid request"})
		}
		if req.RoomID == "" {
			return c.Status(400).JSON(fiber.Map{"error": "room_id required"})
		}

		msg, err := svc.Chat.SendMessage(c.Context(), req.RoomID, handlers.ActorFromCtx(c), req.Content)
		if err != nil {
			if errors.Is(err, services.ErrRoomNotFound) {
				return c.Status(404).JSON(fiber.Map{"error": "Room not found"})
			}
			if errors.Is(err, services.ErrEmptyContent) {
				return c.Status(400).JSON(fiber.Map{"error": err.Error()})
			}
			return c.Status(500).JSON(fiber.Map{"error": err.Error()})
		}
		return c.JSON(msg)
	})

	api.Post("/reactions", func(c *fiber.Ctx) error {
		var req models.ReactionRequest
		if err := c.BodyParser(&req); err != nil {
			return c.Status(400).JSON(fiber.Map{"error": "Invalid request"})
		}
		if req.MessageID == "" {
			return c.Status(400).JSON(fiber.Map{"error": "message_id required"})
		}

		if err := svc.Chat.AddReaction(c.Context(), req.MessageID, handlers.ActorFromCtx(c), req.Emoji); err != nil {
			if errors.Is(err, services.ErrMessageNotFound) {
				return c.Status(404).JSON(fiber.Map{"error": "Message not found"})
			}
			return c.Status(500).JSON(fiber.Map{"error": err.Error()})
		}
		return c.JSON(fiber.Map{"success": true})
	})

	api.Post("/rooms/:room_id/mark-read", func(c *fiber.Ctx) error {
		if err := svc.Rooms.MarkRead(c.Context(), c.Params("room_id")); err != nil {
			if errors.Is(err, services.ErrRoomNotFound) {
				return c.Status(404).JSON(fiber.Map{"error": "Room not found"})
			}
			return c.Status(500).JSON(fiber.Map{"error": err.Error()})
		}
		return c.JSON(fiber.Map{"success": true})
	})

	api.Get("/summary/:room_id", func(c *fiber.Ctx) error {
		return c.JSON(svc.Summary.Summarize(c.Params("room_id")))
	})

	// Health Check
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	return app
}

func Run() {
	// Load Env
	if err := utils.LoadEnv(); err != nil {
		log.Println("Warning: .env file not found")
	}

	ctx := context.Background()

	// Pick the store: PostgreSQL when configured, in-memory otherwise.
	var (
		rooms    store.RoomStore
		messages store.MessageStore
		users    store.UserStore
	)

	connString := utils.GetEnv("DATABASE_URL", "")
	if connString == "" && os.Getenv("POSTGRES_HOST") != "" {
		// Fallback to individual vars
		connString = "postgres://" + utils.GetEnv("POSTGRES_USER", "postgres") + ":" +
			utils.GetEnv("POSTGRES_PASSWORD", "postgres") + "@" +
			utils.GetEnv("POSTGRES_HOST", "localhost") + ":" +
			utils.GetEnv("POSTGRES_PORT", "5432") + "/" +
			utils.GetEnv("POSTGRES_DB", "chatdb") + "?sslmode=disable"
	}

	if connString != "" {
		pool, err := db.Connect(ctx, connString)
		if err != nil {
			log.Fatalf("Failed to connect to database: %v", err)
		}
		defer pool.Close()

		if err := db.EnsureSchema(ctx, pool); err != nil {
			log.Fatalf("Failed to set up schema: %v", err)
		}

		rooms = store.NewPostgresRoomStore(pool)
		messages = store.NewPostgresMessageStore(pool)
		users = store.NewPostgresUserStore(pool)
	} else {
		log.Println("No database configured, using in-memory store")
		rooms = store.NewMemoryRoomStore()
		messages = store.NewMemoryMessageStore()
		users = store.NewMemoryUserStore()
	}

	// Fixture data for first runs
	if err := seed.Run(ctx, rooms, messages, users); err != nil {
		log.Printf("Warning: seeding failed: %v", err)
	}

	// Room cache is optional; without redis every read goes to the store.
	var roomCache cache.RoomCache = cache.Noop{}
	if addr := utils.GetEnv("REDIS_ADDR", ""); addr != "" {
		rc, err := cache.NewRedisRoomCache(addr, utils.GetEnv("REDIS_PASSWORD", ""), utils.GetEnvInt("REDIS_DB", 0))
		if err != nil {
			log.Printf("Warning: redis unavailable, running without room cache: %v", err)
		} else {
			roomCache = rc
			defer rc.Close()
		}
	}

	// Services
	roomService := services.NewRoomService(rooms, roomCache)
	chatService := services.NewChatService(messages, roomService)
	summaryService := services.NewSummaryService()

	app := New(Services{
		Rooms:   roomService,
		Chat:    chatService,
		Summary: summaryService,
	})

	// Start Server
	port := utils.GetEnv("PORT", "3001")
	go func() {
		if err := app.Listen(":" + port); err != nil {
			log.Panic(err)
		}
	}()

	// Graceful Shutdown
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	<-c // Block until signal
	log.Println("Gracefully shutting down...")
	_ = app.Shutdown()
	log.Println("Server shutdown complete")
}
