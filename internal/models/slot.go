package models

// Slot is a bookable (date, time) pair. Client is set iff Booked.
type Slot struct {
	Date   string  `json:"date" bson:"date"`
	Time   string  `json:"time" bson:"time"`
	Booked bool    `json:"booked" bson:"booked"`
	Client *Client `json:"client,omitempty" bson:"client,omitempty"`
}
