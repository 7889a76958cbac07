package slot

import (
	"sort"

	"github.com/lumiere-studio/salon-booking/internal/models"
)

// Less orders slots by date, then time, comparing the raw strings.
func Less(a, b models.Slot) bool {
	if a.Date != b.Date {
		return a.Date < b.Date
	}
	return a.Time < b.Time
}

func Sort(slots []models.Slot) {
	sort.SliceStable(slots, func(i, j int) bool {
		return Less(slots[i], slots[j])
	})
}
