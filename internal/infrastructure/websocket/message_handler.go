package websocket

import (
	"context"
	"encoding/json"
	"time"

	"go.uber.org/zap"

	"swapskillz/pkg/logger"
)

const relayCheckTimeout = 5 * time.Second

const (
	MessageTypePing    = "ping"
	MessageTypePong    = "pong"
	MessageTypeMessage = "message"
	MessageTypeTyping  = "typing"
	MessageTypeError   = "error"
)

// WSMessage is the frame format in both directions.
type WSMessage struct {
	Type      string      `json:"type"`
	Data      interface{} `json:"data,omitempty"`
	Timestamp string      `json:"timestamp,omitempty"`
}

type TypingData struct {
	RecipientID string `json:"recipient_id,omitempty"`
	UserID      string `json:"user_id,omitempty"`
}

// Notify pushes an event to userID if connected.
func (m *Manager) Notify(userID, eventType string, data interface{}) bool {
	payload, err := json.Marshal(newFrame(eventType, data))
	if err != nil {
		logger.L().Error("failed to marshal websocket event", zap.String("type", eventType), zap.Error(err))
		return false
	}
	return m.SendToUser(userID, payload)
}

// HandleClientMessage answers pings and relays typing indicators.
// Messages themselves are sent over HTTP so they are persisted.
func (m *Manager) HandleClientMessage(client *Client, raw []byte) {
	var in struct {
		Type string          `json:"type"`
		Data json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(raw, &in); err != nil {
		m.Notify(client.UserID, MessageTypeError, map[string]string{"error": "Invalid message format"})
		return
	}

	switch in.Type {
	case MessageTypePing:
		m.Notify(client.UserID, MessageTypePong, map[string]string{"status": "alive"})

	case MessageTypeTyping:
		var typing TypingData
		if err := json.Unmarshal(in.Data, &typing); err != nil || typing.RecipientID == "" {
			m.Notify(client.UserID, MessageTypeError, map[string]string{"error": "Invalid typing format"})
			return
		}
		if !m.mayRelay(client.UserID, typing.RecipientID) {
			return
		}
		m.Notify(typing.RecipientID, MessageTypeTyping, TypingData{UserID: client.UserID})

	default:
		m.Notify(client.UserID, MessageTypeError, map[string]string{"error": "Unknown message type"})
	}
}

func (m *Manager) mayRelay(senderID, recipientID string) bool {
	if m.relayPolicy == nil {
		return true
	}
	ctx, cancel := context.WithTimeout(context.Background(), relayCheckTimeout)
	defer cancel()

	if err := m.relayPolicy(ctx, senderID, recipientID); err != nil {
		logger.L().Debug("websocket relay refused",
			zap.String("user_id", senderID),
			zap.String("recipient_id", recipientID),
			zap.Error(err))
		return false
	}
	return true
}

func newFrame(eventType string, data interface{}) WSMessage {
	return WSMessage{
		Type:      eventType,
		Data:      data,
		Timestamp: time.Now().Format(time.RFC3339),
	}
}
