package model

import "time"

// Booking is a counsellor session request relayed from the chat
type Booking struct {
	ID            string    `json:"id" bson:"_id"`
	SessionKey    string    `json:"sessionKey" bson:"sessionKey"`
	Date          string    `json:"date" bson:"date"`
	Time          string    `json:"time" bson:"time"`
	ContactMethod string    `json:"contactMethod" bson:"contactMethod"`
	CreatedAt     time.Time `json:"createdAt" bson:"createdAt"`
}
