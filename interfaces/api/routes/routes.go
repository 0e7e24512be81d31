package routes

import (
	"github.com/gofiber/fiber/v2"

	"buildboard/interfaces/api/handlers"
	wsHandler "buildboard/interfaces/api/websocket"
)

// Options ค่าที่ route ต้องใช้นอกเหนือจาก handlers
type Options struct {
	JWTSecret string
	// StaticDir ว่าง = ไม่ serve /files (ใช้เฉพาะ local storage)
	StaticDir string
	WebSocket *wsHandler.WebSocketHandler
}

func SetupRoutes(app *fiber.App, h *handlers.Handlers, opts Options) {
	SetupHealthRoutes(app, h)

	if opts.StaticDir != "" {
		app.Static("/files", opts.StaticDir, fiber.Static{ByteRange: true})
	}

	api := app.Group("/api/v1")

	SetupAuthRoutes(api, h, opts.JWTSecret)
	SetupJobRoutes(api, h, opts.JWTSecret)
	SetupApplicationRoutes(api, h, opts.JWTSecret)
	SetupChatRoutes(api, h, opts.JWTSecret)
	SetupProfileRoutes(api, h, opts.JWTSecret)
	SetupProjectRoutes(api, h, opts.JWTSecret)
	SetupTaskRoutes(api, h, opts.JWTSecret)
	SetupUploadRoutes(api, h, opts.JWTSecret)
	SetupSubscriptionRoutes(api, h, opts.JWTSecret)
	SetupAIRoutes(api, h, opts.JWTSecret)

	if opts.WebSocket != nil {
		SetupWebSocketRoutes(app, opts.WebSocket)
	}
}
