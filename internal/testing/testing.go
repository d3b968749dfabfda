// package testing contains shared testing utilities
package testing

import (
	"context"
	"errors"
	"io"
	"net/http"
	"os"
	"testing"

	"github.com/videohub/videohub/internal/models"
)

// MockSource is a test double for [services.VideoSource].
//
// Returns Videos/Err as configured and counts invocations.
type MockSource struct {
	Videos []models.VideoRecord
	Err    error
	Calls  int
}

func (m *MockSource) FetchVideos(ctx context.Context) ([]models.VideoRecord, error) {
	m.Calls++
	if m.Err != nil {
		return nil, m.Err
	}
	if m.Videos == nil {
		return []models.VideoRecord{}, nil
	}
	return m.Videos, nil
}

func (m *MockSource) Name() string { return "mock" }

// FWriter always returns an error on Write
type FWriter struct{}

func (f *FWriter) Write(p []byte) (n int, err error) {
	return 0, errors.New("write failed")
}

// LimitedWriter fails after a certain number of writes
type LimitedWriter struct {
	maxWrites int
	written   int
	target    io.Writer
}

func (l *LimitedWriter) Write(p []byte) (n int, err error) {
	if l.written >= l.maxWrites {
		return 0, errors.New("write limit exceeded")
	}
	l.written++
	return l.target.Write(p)
}

func NewLimitedWriter(maxWrites, written int, target io.Writer) LimitedWriter {
	return LimitedWriter{maxWrites: maxWrites, written: written, target: target}
}

// MockRoundTripper allows custom HTTP responses for testing
type MockRoundTripper struct {
	response *http.Response
	err      error
}

func NewMockRoundTripper(r *http.Response, e error) *MockRoundTripper {
	return &MockRoundTripper{response: r, err: e}
}

func (m *MockRoundTripper) RoundTrip(*http.Request) (*http.Response, error) {
	return m.response, m.err
}

// SampleVideo builds a populated record for tests.
func SampleVideo(id string) models.VideoRecord {
	return models.VideoRecord{
		ID:            id,
		Title:         "Sample " + id,
		URL:           "https://youtu.be/abc12345678",
		Cover:         "https://img.youtube.com/vi/abc12345678/maxresdefault.jpg",
		Analysis:      "Fast cuts and bold typography.",
		Company:       []string{"Acme"},
		AnimationType: []string{"3D"},
		Technique:     []string{"Kinetic"},
		Features:      []string{"Bold"},
	}
}

func AssertFileExists(t *testing.T, path string) {
	t.Helper()
	if _, err := os.Stat(path); os.IsNotExist(err) {
		t.Errorf("File does not exist: %s", path)
	}
}

func MustReadFile(t *testing.T, path string) string {
	t.Helper()
	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read file %s: %v", path, err)
	}
	return string(content)
}
