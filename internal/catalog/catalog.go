// package catalog implements the Notion row normalization pipeline.
//
// Every Notion page yields exactly one [models.VideoRecord]; rows with no
// usable data get placeholder values rather than being dropped.
package catalog

import (
	"strings"

	"github.com/videohub/videohub/internal/models"
)

// Placeholder values backing the never-empty record fields.
const (
	PlaceholderTitle    = "Untitled"
	PlaceholderAnalysis = "No analysis yet"
)

// Column names as they appear in the Notion database. Lookups are exact.
const (
	colTitle     = "名称"
	colURL       = "URL"
	colAnalysis  = "视频分析"
	colCover     = "封面"
	colCompany   = "公司/产品"
	colCompany2  = "公司"
	colAnimation = "动画类型"
	colTechnique = "表现手法"
	colFeatures  = "典型特征"
)

// ExtractValues maps a property value to an ordered list of display strings.
//
// Dispatches on the declared property type:
//   - multi_select: option names in the order Notion returned them
//   - select: zero or one option name
//   - rich_text: all runs concatenated, then comma-split into trimmed tags
//     when a comma is present
//   - title: the first run only
//
// Unknown types yield an empty list, never an error.
func ExtractValues(p models.Property) []string {
	switch p.Type {
	case "multi_select":
		values := make([]string, 0, len(p.MultiSelect))
		for _, opt := range p.MultiSelect {
			values = append(values, opt.Name)
		}
		return values
	case "select":
		if p.Select == nil {
			return nil
		}
		return []string{p.Select.Name}
	case "rich_text":
		raw := joinRuns(p.RichText)
		if strings.Contains(raw, ",") {
			return splitTags(raw)
		}
		if raw == "" {
			return nil
		}
		return []string{raw}
	case "title":
		if len(p.Title) == 0 {
			return nil
		}
		return []string{p.Title[0].PlainText}
	}
	return nil
}

// joinRuns concatenates the plain text of all runs with no separator.
func joinRuns(runs []models.RichTextRun) string {
	var sb strings.Builder
	for _, run := range runs {
		sb.WriteString(run.PlainText)
	}
	return sb.String()
}

// splitTags turns a comma-separated cell into trimmed tags, dropping empties.
func splitTags(raw string) []string {
	parts := strings.Split(raw, ",")
	tags := make([]string, 0, len(parts))
	for _, part := range parts {
		if tag := strings.TrimSpace(part); tag != "" {
			tags = append(tags, tag)
		}
	}
	return tags
}

// Normalize maps one Notion page to its catalog record.
func Normalize(page models.Page) models.VideoRecord {
	props := page.Properties

	record := models.VideoRecord{
		ID:            page.ID,
		Title:         PlaceholderTitle,
		Analysis:      PlaceholderAnalysis,
		Company:       tagsFor(props, colCompany, colCompany2),
		AnimationType: tagsFor(props, colAnimation),
		Technique:     tagsFor(props, colTechnique),
		Features:      tagsFor(props, colFeatures),
	}

	if titles := ExtractValues(props[colTitle]); len(titles) > 0 && titles[0] != "" {
		record.Title = titles[0]
	}

	// URL comes straight off the url-typed property, not through ExtractValues.
	if urlProp, ok := props[colURL]; ok && urlProp.Type == "url" {
		record.URL = urlProp.URL
	}

	// Analysis concatenates every run and is never comma-split.
	if analysisProp, ok := props[colAnalysis]; ok && analysisProp.Type == "rich_text" {
		if text := joinRuns(analysisProp.RichText); text != "" {
			record.Analysis = text
		}
	}

	record.Cover = ResolveCover(page, record.URL)

	return record
}

// tagsFor extracts values from the first listed column present, first match wins.
func tagsFor(props map[string]models.Property, columns ...string) []string {
	for _, column := range columns {
		if prop, ok := props[column]; ok {
			if values := ExtractValues(prop); values != nil {
				return values
			}
			return []string{}
		}
	}
	return []string{}
}

// NormalizeAll maps pages to records one to one, preserving order.
func NormalizeAll(pages []models.Page) []models.VideoRecord {
	records := make([]models.VideoRecord, 0, len(pages))
	for _, page := range pages {
		records = append(records, Normalize(page))
	}
	return records
}
