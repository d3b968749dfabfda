package catalog

import (
	"strings"

	"github.com/videohub/videohub/internal/models"
)

// StockCover is the final cover fallback when no image can be resolved.
const StockCover = "https://images.unsplash.com/photo-1618005182384-a83a8bd57fbe?q=80&w=800&auto=format&fit=crop"

// coverResolver produces a candidate cover URL, or "" when this step has none.
type coverResolver func(page models.Page, videoURL string) string

// Resolution order is fixed: page cover, 封面 files property, derived YouTube
// thumbnail, stock photo. First non-empty result wins.
var coverResolvers = []coverResolver{
	pageCover,
	propertyCover,
	youtubeCover,
}

// ResolveCover walks the resolver chain and returns the first non-empty URL.
// Never returns an empty string.
func ResolveCover(page models.Page, videoURL string) string {
	for _, resolve := range coverResolvers {
		if cover := resolve(page, videoURL); cover != "" {
			return cover
		}
	}
	return StockCover
}

// pageCover reads the page-level cover descriptor.
func pageCover(page models.Page, _ string) string {
	cover := page.Cover
	if cover == nil {
		return ""
	}
	switch cover.Type {
	case "external":
		if cover.External != nil {
			return cover.External.URL
		}
	case "file":
		if cover.File != nil {
			return cover.File.URL
		}
	}
	return ""
}

// propertyCover reads the first entry of the 封面 files property, preferring
// the Notion-hosted URL over the external one.
func propertyCover(page models.Page, _ string) string {
	prop, ok := page.Properties[colCover]
	if !ok || prop.Type != "files" || len(prop.Files) == 0 {
		return ""
	}
	entry := prop.Files[0]
	if entry.File != nil && entry.File.URL != "" {
		return entry.File.URL
	}
	if entry.External != nil {
		return entry.External.URL
	}
	return ""
}

// youtubeCover synthesizes a thumbnail URL for recognizable YouTube links.
func youtubeCover(_ models.Page, videoURL string) string {
	return Thumbnail(videoURL)
}

// VideoID extracts the YouTube video identifier from a watch or short link.
//
// youtu.be links take the path segment after the host up to any "?"; otherwise
// the "v=" query value up to any "&". Returns "" when neither pattern matches.
func VideoID(videoURL string) string {
	if videoURL == "" {
		return ""
	}
	if _, after, found := strings.Cut(videoURL, "youtu.be/"); found {
		id, _, _ := strings.Cut(after, "?")
		return id
	}
	if _, after, found := strings.Cut(videoURL, "v="); found {
		id, _, _ := strings.Cut(after, "&")
		return id
	}
	return ""
}

// Thumbnail returns the max-resolution YouTube thumbnail URL for the video
// linked by videoURL, or "" when no video identifier can be derived.
func Thumbnail(videoURL string) string {
	id := VideoID(videoURL)
	if id == "" {
		return ""
	}
	return "https://img.youtube.com/vi/" + id + "/maxresdefault.jpg"
}
