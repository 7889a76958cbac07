package dto

import "github.com/lumiere-studio/salon-booking/internal/models"

// CalendarEntryDTO is the public view of a slot; client details stay admin-only.
type CalendarEntryDTO struct {
	Date   string `json:"date"`
	Time   string `json:"time"`
	Booked bool   `json:"booked"`
}

func NewCalendar(slots []models.Slot) []CalendarEntryDTO {
	out := make([]CalendarEntryDTO, 0, len(slots))
	for _, s := range slots {
		out = append(out, CalendarEntryDTO{
			Date:   s.Date,
			Time:   s.Time,
			Booked: s.Booked,
		})
	}
	return out
}
