package services

import (
	"net/http"

	"hotelbooking/services/logger"
	"hotelbooking/services/notification"

	"github.com/olahol/melody"
)

// WebSocketService gắn mỗi kết nối /ws với user trong token, để thông báo
// trạng thái booking chỉ tới đúng chủ booking.
type WebSocketService struct {
	m      *melody.Melody
	tokens *TokenParser
	logger logger.Logger
}

func NewWebSocketService(m *melody.Melody, tokens *TokenParser, log logger.Logger) *WebSocketService {
	if log == nil {
		log = logger.Nop{}
	}
	s := &WebSocketService{m: m, tokens: tokens, logger: log}
	m.HandleConnect(func(session *melody.Session) {
		if id, ok := session.Get(notification.SessionUserKey); ok {
			s.logger.Debug("ws connected: user %v", id)
		}
	})
	m.HandleDisconnect(func(session *melody.Session) {
		if id, ok := session.Get(notification.SessionUserKey); ok {
			s.logger.Debug("ws disconnected: user %v", id)
		}
	})
	return s
}

// HandleRequest nâng cấp kết nối sau khi xác thực token trong query "token".
func (s *WebSocketService) HandleRequest(w http.ResponseWriter, r *http.Request) error {
	userID, _, err := s.tokens.GetUserIDFromToken(r.URL.Query().Get("token"))
	if err != nil {
		return err
	}
	return s.m.HandleRequestWithKeys(w, r, map[string]interface{}{
		notification.SessionUserKey: userID,
	})
}
