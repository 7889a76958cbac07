package slot

import (
	"strings"

	"github.com/lumiere-studio/salon-booking/internal/models"
)

// Key is the natural identity of a slot.
type Key struct {
	Date string `json:"date"`
	Time string `json:"time"`
}

func (k Key) Validate() error {
	if strings.TrimSpace(k.Date) == "" || strings.TrimSpace(k.Time) == "" {
		return ErrInvalidInput
	}
	return nil
}

func (k Key) String() string {
	return k.Date + " " + k.Time
}

// Intent is what a client submits to reserve a slot. It is carried through
// the payment provider and resubmitted at confirm time; it is never stored.
type Intent struct {
	Key
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	Service   string `json:"service"`
}

// Validate requires every field but Email.
func (in Intent) Validate() error {
	if err := in.Key.Validate(); err != nil {
		return err
	}
	for _, v := range []string{in.FirstName, in.LastName, in.Service} {
		if strings.TrimSpace(v) == "" {
			return ErrInvalidInput
		}
	}
	return nil
}

func (in Intent) Client() models.Client {
	return models.Client{
		FirstName: in.FirstName,
		LastName:  in.LastName,
		Email:     in.Email,
		Service:   in.Service,
	}
}

// Owner identifies who is paying for a slot while a hold is active.
func (in Intent) Owner() string {
	if e := strings.TrimSpace(in.Email); e != "" {
		return strings.ToLower(e)
	}
	return strings.ToLower(strings.TrimSpace(in.FirstName) + " " + strings.TrimSpace(in.LastName))
}

func KeyOf(s models.Slot) Key {
	return Key{Date: s.Date, Time: s.Time}
}
