package controllers

import (
	apperrors "hotelbooking/errors"
	"hotelbooking/response"
	"hotelbooking/services"
	"hotelbooking/services/logger"

	"github.com/gin-gonic/gin"
)

type WebSocketController struct {
	ws     *services.WebSocketService
	logger logger.Logger
}

func NewWebSocketController(ws *services.WebSocketService, log logger.Logger) *WebSocketController {
	if log == nil {
		log = logger.Nop{}
	}
	return &WebSocketController{ws: ws, logger: log}
}

// HandleWebSocket: GET /ws?token=<access token>
func (w *WebSocketController) HandleWebSocket(c *gin.Context) {
	if err := w.ws.HandleRequest(c.Writer, c.Request); err != nil {
		if apperrors.IsAppError(err) {
			response.FromError(c, err)
			return
		}
		// upgrader đã ghi response lỗi
		w.logger.Warn("websocket upgrade failed: %v", err)
	}
}
