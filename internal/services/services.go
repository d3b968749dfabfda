// package services defines interface VideoSource for fetching the video catalog
//
// Notion (database query API)
package services

import (
	"context"

	"github.com/videohub/videohub/internal/models"
)

// VideoSource defines the interface for catalog providers that can produce
// normalized video records.
type VideoSource interface {
	// FetchVideos retrieves the current catalog and normalizes every row.
	// One record per source row, in upstream order; never a partial result.
	FetchVideos(ctx context.Context) ([]models.VideoRecord, error)

	// Name returns the name of the source (e.g., "Notion")
	Name() string
}
