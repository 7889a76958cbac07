package models

// Client is the person who booked a slot. There are no accounts.
type Client struct {
	FirstName string `json:"firstName" bson:"firstName"`
	LastName  string `json:"lastName" bson:"lastName"`
	Email     string `json:"email,omitempty" bson:"email,omitempty"`
	Service   string `json:"service" bson:"service"`
}
