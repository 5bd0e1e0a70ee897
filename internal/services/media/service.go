// Package media is a thin adaptor edge (SPEC_FULL §6.11): it accepts an
// upload, hands it to a MediaProcessor collaborator for moderation and
// transformation, then records the resulting asset with the data
// collaborator. NSFW detection, EXIF stripping, and thumbnailing are out
// of scope per spec §1 — MediaProcessor is only the interface boundary
// this edge calls through.
package media

import (
	"context"

	"github.com/datingapp/request-fabric/internal/domainerr"
	"github.com/datingapp/request-fabric/internal/platform/outbound"
)

// Asset is the persisted record of a processed upload.
type Asset struct {
	ID          string `json:"id"`
	UserID      string `json:"user_id"`
	URL         string `json:"url"`
	ContentType string `json:"content_type"`
	Approved    bool   `json:"approved"`
}

// ProcessedUpload is what a MediaProcessor hands back after running its
// own moderation/transformation pipeline.
type ProcessedUpload struct {
	URL      string
	Approved bool
}

// MediaProcessor is the out-of-repo collaborator boundary for
// moderation and transformation work.
type MediaProcessor interface {
	Process(ctx context.Context, userID string, data []byte, contentType string) (ProcessedUpload, error)
}

// ModerationQueue receives assets the processor could not auto-approve,
// for human review. Also an out-of-repo collaborator boundary.
type ModerationQueue interface {
	Enqueue(ctx context.Context, assetID string) error
}

type Service struct {
	processor MediaProcessor
	queue     ModerationQueue
	data      *outbound.Client
}

func NewService(processor MediaProcessor, queue ModerationQueue, data *outbound.Client) *Service {
	return &Service{processor: processor, queue: queue, data: data}
}

func (s *Service) Upload(ctx context.Context, userID string, data []byte, contentType string) (Asset, error) {
	if userID == "" || len(data) == 0 {
		return Asset{}, domainerr.Validation("user_id and file contents are required")
	}

	processed, err := s.processor.Process(ctx, userID, data, contentType)
	if err != nil {
		return Asset{}, domainerr.External("process upload", err)
	}

	var asset Asset
	req := Asset{UserID: userID, URL: processed.URL, ContentType: contentType, Approved: processed.Approved}
	if err := s.data.Do(ctx, outbound.Request{Method: "POST", Path: "/media", Body: req}, &asset); err != nil {
		return Asset{}, err
	}

	if !asset.Approved {
		if err := s.queue.Enqueue(ctx, asset.ID); err != nil {
			return Asset{}, domainerr.External("enqueue for moderation", err)
		}
	}
	return asset, nil
}
