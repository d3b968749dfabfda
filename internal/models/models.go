package models

import "time"

// VideoRecord is the normalized catalog entry produced from one Notion page.
//
// Title, Cover, and Analysis are never empty (placeholder-backed). URL may be
// empty. The tag slices may be empty but are always present in JSON output.
type VideoRecord struct {
	ID            string   `json:"id"`
	Title         string   `json:"title"`
	URL           string   `json:"url"`
	Cover         string   `json:"cover"`
	Analysis      string   `json:"analysis"`
	Company       []string `json:"company"`
	AnimationType []string `json:"animationType"`
	Technique     []string `json:"technique"`
	Features      []string `json:"features"`
}

// Snapshot is a persisted point-in-time capture of the catalog.
type Snapshot struct {
	ID         string    `json:"id"`
	TakenAt    time.Time `json:"taken_at"`
	VideoCount int       `json:"video_count"`
}
