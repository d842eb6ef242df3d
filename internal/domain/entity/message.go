package entity

import (
	"time"
)

type Message struct {
	ID          string     `json:"id" firestore:"id" bson:"id"`
	SenderID    string     `json:"sender_id" firestore:"senderId" bson:"senderId"`
	RecipientID string     `json:"recipient_id" firestore:"recipientId" bson:"recipientId"`
	SwapID      string     `json:"swap_id,omitempty" firestore:"swapId,omitempty" bson:"swapId,omitempty"`
	Content     string     `json:"content" firestore:"content" bson:"content"`
	ReadAt      *time.Time `json:"read_at,omitempty" firestore:"readAt,omitempty" bson:"readAt,omitempty"`
	CreatedAt   time.Time  `json:"created_at" firestore:"createdAt" bson:"createdAt"`
}

func (m *Message) IsRead() bool {
	return m.ReadAt != nil
}

// Involves reports whether userID sent or received the message.
func (m *Message) Involves(userID string) bool {
	return m.SenderID == userID || m.RecipientID == userID
}

// MessageEvent is pushed to connected websocket clients.
type MessageEvent struct {
	Type string      `json:"type"`
	Data interface{} `json:"data"`
}
