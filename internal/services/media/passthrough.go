package media

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"

	"go.uber.org/zap"
)

// PassthroughProcessor is the reference MediaProcessor the platform
// injects when no external moderation/transformation pipeline is
// configured: it addresses the upload by content hash under baseURL and
// always marks it unapproved, so every asset flows through human
// moderation (the conservative default for the out-of-scope NSFW/EXIF
// pipeline).
type PassthroughProcessor struct {
	baseURL string
}

func NewPassthroughProcessor(baseURL string) *PassthroughProcessor {
	return &PassthroughProcessor{baseURL: baseURL}
}

func (p *PassthroughProcessor) Process(_ context.Context, userID string, data []byte, contentType string) (ProcessedUpload, error) {
	sum := sha256.Sum256(data)
	url := fmt.Sprintf("%s/%s/%s", p.baseURL, userID, hex.EncodeToString(sum[:]))
	return ProcessedUpload{URL: url, Approved: false}, nil
}

// LogModerationQueue records a pending-review asset via structured
// logging in place of a real human-review queue, which is out of the
// fabric's scope per spec §1.
type LogModerationQueue struct {
	logger *zap.Logger
}

func NewLogModerationQueue(logger *zap.Logger) *LogModerationQueue {
	return &LogModerationQueue{logger: logger}
}

func (q *LogModerationQueue) Enqueue(_ context.Context, assetID string) error {
	q.logger.Info("media asset queued for moderation", zap.String("asset_id", assetID))
	return nil
}
