package models

import "time"

// Message is a single chat message between two users, addressed by email.
type Message struct {
	ID          string    `bson:"_id,omitempty" json:"id"`
	SenderEmail string    `bson:"senderEmail" json:"senderEmail"`
	ToEmail     string    `bson:"toEmail" json:"toEmail"`
	Text        string    `bson:"text" json:"text"`
	Timestamp   time.Time `bson:"timestamp" json:"timestamp"`
	Read        bool      `bson:"read" json:"read"`
}

// Conversation summarizes a message thread with one partner, newest first in
// listings. UnreadCount counts partner messages not yet marked read.
type Conversation struct {
	PartnerEmail    string    `json:"partnerEmail"`
	PartnerName     string    `json:"partnerName,omitempty"`
	PartnerPhotoURL string    `json:"partnerPhotoURL,omitempty"`
	LastMessage     string    `json:"lastMessage"`
	LastMessageTime time.Time `json:"lastMessageTime"`
	UnreadCount     int       `json:"unreadCount"`
}
