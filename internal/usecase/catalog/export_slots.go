package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	domain "github.com/lumiere-studio/salon-booking/internal/domain/slot"
)

var ErrBackupDisabled = errors.New("backup not configured")

// Uploader stores a blob under key.
type Uploader interface {
	Upload(ctx context.Context, key string, body []byte, contentType string) error
}

type ExportSlots struct {
	repo     domain.Repository
	uploader Uploader
	now      func() time.Time
	log      *zap.Logger
}

// NewExportSlots accepts a nil uploader; Execute then returns ErrBackupDisabled.
func NewExportSlots(repo domain.Repository, uploader Uploader, log *zap.Logger) *ExportSlots {
	return &ExportSlots{
		repo:     repo,
		uploader: uploader,
		now:      time.Now,
		log:      log,
	}
}

// Execute uploads a snapshot in the file store's document layout and returns
// the object key.
func (uc *ExportSlots) Execute(ctx context.Context) (string, error) {
	if uc.uploader == nil {
		return "", ErrBackupDisabled
	}

	slots, err := uc.repo.List(ctx)
	if err != nil {
		return "", err
	}

	body, err := json.MarshalIndent(map[string]any{"slots": slots}, "", "  ")
	if err != nil {
		return "", fmt.Errorf("encode snapshot: %w", err)
	}

	key := "slots/" + uc.now().UTC().Format("20060102T150405Z") + ".json"
	if err := uc.uploader.Upload(ctx, key, body, "application/json"); err != nil {
		return "", fmt.Errorf("upload snapshot: %w", err)
	}

	uc.log.Info("slot catalog exported", zap.String("key", key), zap.Int("slots", len(slots)))
	return key, nil
}
