package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	domain "github.com/lumiere-studio/salon-booking/internal/domain/slot"
	"github.com/lumiere-studio/salon-booking/internal/models"
)

// slotDocument is the on-disk layout: one JSON object holding every slot.
type slotDocument struct {
	Slots []models.Slot `json:"slots"`
}

// SlotFileRepository keeps the catalog in memory and rewrites the whole file
// on each mutation. The mutex makes it the single writer, which is what makes
// Insert and Book atomic.
type SlotFileRepository struct {
	path string

	mu    sync.Mutex
	slots []models.Slot
}

func NewSlotFileRepository(path string) (*SlotFileRepository, error) {
	r := &SlotFileRepository{path: path}

	raw, err := os.ReadFile(path)
	switch {
	case errors.Is(err, os.ErrNotExist):
		r.slots = []models.Slot{}
		return r, nil
	case err != nil:
		return nil, fmt.Errorf("%w: read %s: %v", domain.ErrStorageUnavailable, path, err)
	}

	var doc slotDocument
	if len(raw) > 0 {
		if err := json.Unmarshal(raw, &doc); err != nil {
			return nil, fmt.Errorf("%w: decode %s: %v", domain.ErrStorageUnavailable, path, err)
		}
	}
	r.slots = doc.Slots
	if r.slots == nil {
		r.slots = []models.Slot{}
	}
	return r, nil
}

// --------------------------------------------------
// Reads
// --------------------------------------------------

func (r *SlotFileRepository) List(ctx context.Context) ([]models.Slot, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]models.Slot, len(r.slots))
	for i, s := range r.slots {
		out[i] = cloneSlot(s)
	}
	domain.Sort(out)
	return out, nil
}

func (r *SlotFileRepository) Find(ctx context.Context, key domain.Key) (*models.Slot, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	i := r.indexOf(key)
	if i < 0 {
		return nil, domain.ErrNotFound
	}
	s := cloneSlot(r.slots[i])
	return &s, nil
}

// --------------------------------------------------
// Mutations
// --------------------------------------------------

func (r *SlotFileRepository) Insert(ctx context.Context, key domain.Key) error {
	if err := key.Validate(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if r.indexOf(key) >= 0 {
		return domain.ErrDuplicateKey
	}

	next := append(r.copySlots(), models.Slot{Date: key.Date, Time: key.Time})
	return r.commit(next)
}

func (r *SlotFileRepository) Delete(ctx context.Context, key domain.Key) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	i := r.indexOf(key)
	if i < 0 {
		return nil
	}

	next := r.copySlots()
	next = append(next[:i], next[i+1:]...)
	return r.commit(next)
}

func (r *SlotFileRepository) Book(ctx context.Context, key domain.Key, client models.Client) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	i := r.indexOf(key)
	if i < 0 || r.slots[i].Booked {
		return domain.ErrSlotUnavailable
	}

	next := r.copySlots()
	next[i].Booked = true
	next[i].Client = &client
	return r.commit(next)
}

// --------------------------------------------------
// Helpers (caller holds mu)
// --------------------------------------------------

func (r *SlotFileRepository) indexOf(key domain.Key) int {
	for i, s := range r.slots {
		if s.Date == key.Date && s.Time == key.Time {
			return i
		}
	}
	return -1
}

func (r *SlotFileRepository) copySlots() []models.Slot {
	out := make([]models.Slot, len(r.slots), len(r.slots)+1)
	copy(out, r.slots)
	return out
}

// commit persists next and only then makes it the live state, so a failed
// write leaves memory and disk in agreement.
func (r *SlotFileRepository) commit(next []models.Slot) error {
	if err := r.writeFile(next); err != nil {
		return err
	}
	r.slots = next
	return nil
}

func (r *SlotFileRepository) writeFile(slots []models.Slot) error {
	data, err := json.MarshalIndent(slotDocument{Slots: slots}, "", "  ")
	if err != nil {
		return fmt.Errorf("%w: encode: %v", domain.ErrStorageUnavailable, err)
	}

	dir := filepath.Dir(r.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("%w: mkdir %s: %v", domain.ErrStorageUnavailable, dir, err)
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(r.path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("%w: create temp: %v", domain.ErrStorageUnavailable, err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("%w: write temp: %v", domain.ErrStorageUnavailable, err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("%w: sync temp: %v", domain.ErrStorageUnavailable, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("%w: close temp: %v", domain.ErrStorageUnavailable, err)
	}

	if err := os.Rename(tmpName, r.path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("%w: rename: %v", domain.ErrStorageUnavailable, err)
	}
	return nil
}

func cloneSlot(s models.Slot) models.Slot {
	if s.Client != nil {
		c := *s.Client
		s.Client = &c
	}
	return s
}

// Compile-time check
var _ domain.Repository = (*SlotFileRepository)(nil)
