package notification

import (
	"fmt"

	"github.com/goccy/go-json"
	"github.com/olahol/melody"
)

// SessionUserKey is the melody session key holding the connected user id.
const SessionUserKey = "userID"

type Service interface {
	SendMessage(message string) error
	SendToUser(userID uint, message string) error
}

type MelodyService struct {
	m *melody.Melody
}

func NewMelodyService(m *melody.Melody) *MelodyService {
	return &MelodyService{m: m}
}

func (s *MelodyService) SendMessage(message string) error {
	if s.m == nil {
		return fmt.Errorf("melody instance is nil")
	}
	return s.m.Broadcast([]byte(message))
}

// SendToUser chỉ gửi tới các session của userID
func (s *MelodyService) SendToUser(userID uint, message string) error {
	if s.m == nil {
		return fmt.Errorf("melody instance is nil")
	}
	return s.m.BroadcastFilter([]byte(message), func(q *melody.Session) bool {
		id, ok := q.Get(SessionUserKey)
		if !ok {
			return false
		}
		uid, ok := id.(uint)
		return ok && uid == userID
	})
}

type Message struct {
	Type      string `json:"type"`
	BookingID uint   `json:"bookingId"`
	Status    string `json:"status"`
	Text      string `json:"text"`
}

type MessageBuilder struct {
	bookingID uint
	roomID    uint
	status    string
}

func NewMessageBuilder(bookingID, roomID uint, status string) *MessageBuilder {
	return &MessageBuilder{
		bookingID: bookingID,
		roomID:    roomID,
		status:    status,
	}
}

func (b *MessageBuilder) Build() string {
	msg := Message{
		Type:      "booking_status",
		BookingID: b.bookingID,
		Status:    b.status,
		Text:      fmt.Sprintf("🔔 Booking #%d (room %d) is now %s.", b.bookingID, b.roomID, b.status),
	}
	data, err := json.Marshal(msg)
	if err != nil {
		return msg.Text
	}
	return string(data)
}
