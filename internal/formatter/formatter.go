// package formatter provides functions to export the video catalog to various formats (CSV, Markdown, JSON)
package formatter

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"os"
	"strings"

	"github.com/videohub/videohub/internal/models"
	"github.com/videohub/videohub/internal/shared"
)

// ExportToCSV converts the catalog to CSV with one row per record.
// Multi-valued tag fields are joined with "; " so the cell stays one column.
func ExportToCSV(videos []models.VideoRecord) ([]byte, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	headers := []string{"ID", "Title", "URL", "Cover", "Analysis", "Company", "AnimationType", "Technique", "Features"}
	if err := writer.Write(headers); err != nil {
		return nil, fmt.Errorf("failed to write CSV headers: %w", err)
	}

	for _, video := range videos {
		record := []string{
			video.ID,
			video.Title,
			video.URL,
			video.Cover,
			video.Analysis,
			strings.Join(video.Company, "; "),
			strings.Join(video.AnimationType, "; "),
			strings.Join(video.Technique, "; "),
			strings.Join(video.Features, "; "),
		}
		if err := writer.Write(record); err != nil {
			return nil, fmt.Errorf("failed to write CSV record: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("CSV writer error: %w", err)
	}

	return buf.Bytes(), nil
}

// ExportToMarkdown converts the catalog to a Markdown digest with one section per record.
func ExportToMarkdown(videos []models.VideoRecord) ([]byte, error) {
	var buf bytes.Buffer

	buf.WriteString("# Video Catalog\n\n")
	buf.WriteString(fmt.Sprintf("**Videos**: %d\n\n", len(videos)))

	for _, video := range videos {
		buf.WriteString(fmt.Sprintf("## %s\n\n", video.Title))
		buf.WriteString(fmt.Sprintf("![Cover](%s)\n\n", video.Cover))

		if video.URL != "" {
			buf.WriteString(fmt.Sprintf("**Watch**: %s\n\n", video.URL))
		}

		if len(video.Company) > 0 {
			buf.WriteString(fmt.Sprintf("**Company**: %s\n", strings.Join(video.Company, ", ")))
		}
		if len(video.AnimationType) > 0 {
			buf.WriteString(fmt.Sprintf("**Animation**: %s\n", strings.Join(video.AnimationType, ", ")))
		}
		if len(video.Technique) > 0 {
			buf.WriteString(fmt.Sprintf("**Technique**: %s\n", strings.Join(video.Technique, ", ")))
		}
		if len(video.Features) > 0 {
			buf.WriteString(fmt.Sprintf("**Features**: %s\n", strings.Join(video.Features, ", ")))
		}

		buf.WriteString(fmt.Sprintf("\n%s\n\n", video.Analysis))
	}

	return buf.Bytes(), nil
}

// ExportToJSON converts the catalog to indented JSON.
func ExportToJSON(videos []models.VideoRecord) ([]byte, error) {
	return shared.MarshalJSON(videos, true)
}

// Export renders the catalog in the named format: csv, markdown (md), or json.
func Export(videos []models.VideoRecord, format string) ([]byte, error) {
	switch strings.ToLower(format) {
	case "csv":
		return ExportToCSV(videos)
	case "markdown", "md":
		return ExportToMarkdown(videos)
	case "json", "":
		return ExportToJSON(videos)
	}
	return nil, fmt.Errorf("%w: unknown export format %q", shared.ErrInvalidFlag, format)
}

// extensions maps formats to their file extensions.
var extensions = map[string]string{
	"csv":      ".csv",
	"markdown": ".md",
	"md":       ".md",
	"json":     ".json",
	"":         ".json",
}

// WriteExport renders the catalog and writes it to path.
//
// When path has no extension, the format's extension is appended. Returns the
// final path written.
func WriteExport(videos []models.VideoRecord, format, path string) (string, error) {
	data, err := Export(videos, format)
	if err != nil {
		return "", err
	}

	if ext := extensions[strings.ToLower(format)]; ext != "" && !strings.HasSuffix(path, ext) {
		path += ext
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("failed to write export file: %w", err)
	}

	return path, nil
}
