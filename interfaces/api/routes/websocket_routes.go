package routes

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"

	wsHandler "buildboard/interfaces/api/websocket"
)

func SetupWebSocketRoutes(app *fiber.App, ws *wsHandler.WebSocketHandler) {
	app.Use("/ws", ws.WebSocketUpgrade)
	app.Get("/ws", websocket.New(ws.HandleWebSocket))
}
