package models

// QueryResponse mirrors the body of a Notion database-query response.
//
// Results preserves Notion's ordering. A response without a results field
// decodes to a nil slice, which readers treat as an empty catalog.
type QueryResponse struct {
	Results    []Page `json:"results"`
	HasMore    bool   `json:"has_more"`
	NextCursor string `json:"next_cursor"`
}

// Page is one Notion database row.
//
// Properties maps the human-readable column name (may contain non-ASCII
// characters, exact match required) to its value.
type Page struct {
	ID         string              `json:"id"`
	Cover      *Cover              `json:"cover"`
	Properties map[string]Property `json:"properties"`
}

// Property is the Go rendition of Notion's tagged property-value union.
//
// Only the field matching Type is populated; the rest stay at their zero
// values. Dispatch on Type and fall through to empty for unknown variants.
type Property struct {
	Type        string         `json:"type"`
	Title       []RichTextRun  `json:"title,omitempty"`
	RichText    []RichTextRun  `json:"rich_text,omitempty"`
	Select      *SelectOption  `json:"select,omitempty"`
	MultiSelect []SelectOption `json:"multi_select,omitempty"`
	URL         string         `json:"url,omitempty"`
	Files       []FileRef      `json:"files,omitempty"`
}

// RichTextRun is one text run within a title or rich_text property.
type RichTextRun struct {
	PlainText string `json:"plain_text"`
}

// SelectOption is one named option of a select or multi_select property.
type SelectOption struct {
	Name string `json:"name"`
}

// FileRef is one entry of a files property. Exactly one of File or External
// is set depending on whether Notion hosts the file.
type FileRef struct {
	Name     string       `json:"name"`
	File     *HostedFile  `json:"file,omitempty"`
	External *ExternalURL `json:"external,omitempty"`
}

// HostedFile is a Notion-hosted file with a time-limited URL.
type HostedFile struct {
	URL string `json:"url"`
}

// ExternalURL is an externally hosted file reference.
type ExternalURL struct {
	URL string `json:"url"`
}

// Cover is a page-level cover image, tagged external or file.
type Cover struct {
	Type     string       `json:"type"`
	External *ExternalURL `json:"external,omitempty"`
	File     *HostedFile  `json:"file,omitempty"`
}
