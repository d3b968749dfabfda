package main

import (
	"bytes"
	"context"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/urfave/cli/v3"

	"github.com/videohub/videohub/internal/models"
	"github.com/videohub/videohub/internal/shared"
	tu "github.com/videohub/videohub/internal/testing"
)

// newTestApp wraps a runner's commands in a root command for Run-driven tests.
func newTestApp(r *Runner) *cli.Command {
	return &cli.Command{Name: "videohub", Commands: r.register()}
}

func TestRunner(t *testing.T) {
	t.Run("NewRunner", func(t *testing.T) {
		t.Run("with all dependencies provided", func(t *testing.T) {
			config := shared.DefaultConfig()
			logger := shared.NewLogger(nil)
			output := &bytes.Buffer{}
			httpClient := &http.Client{}
			source := &tu.MockSource{}

			runner := NewRunner(RunnerOpts{
				Config:     config,
				Source:     source,
				Logger:     logger,
				Output:     output,
				HTTPClient: httpClient,
			})

			if runner.config != config {
				t.Error("expected config to be set")
			}
			if runner.source != source {
				t.Error("expected source to be set")
			}
			if runner.logger != logger {
				t.Error("expected logger to be set")
			}
			if runner.output != output {
				t.Error("expected output to be set")
			}
			if runner.httpClient != httpClient {
				t.Error("expected httpClient to be set")
			}
		})

		t.Run("with nil config uses defaults", func(t *testing.T) {
			runner := NewRunner(RunnerOpts{Config: nil})

			if runner.config == nil {
				t.Error("expected default config to be set")
			}
		})

		t.Run("with nil output uses stdout", func(t *testing.T) {
			runner := NewRunner(RunnerOpts{Output: nil})

			if runner.output != os.Stdout {
				t.Error("expected output to default to os.Stdout")
			}
		})

		t.Run("with nil httpClient uses default", func(t *testing.T) {
			runner := NewRunner(RunnerOpts{HTTPClient: nil})

			if runner.httpClient != http.DefaultClient {
				t.Error("expected httpClient to default to http.DefaultClient")
			}
		})
	})

	t.Run("writeJSON", func(t *testing.T) {
		t.Run("writes formatted JSON successfully", func(t *testing.T) {
			output := &bytes.Buffer{}
			runner := NewRunner(RunnerOpts{Output: output})

			err := runner.writeJSON(map[string]string{"key": "value"}, true)
			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}

			result := output.String()
			if !strings.Contains(result, `"key": "value"`) {
				t.Errorf("expected formatted JSON, got %s", result)
			}
			if !strings.HasSuffix(result, "\n") {
				t.Error("expected output to end with newline")
			}
		})

		t.Run("writes compact JSON successfully", func(t *testing.T) {
			output := &bytes.Buffer{}
			runner := NewRunner(RunnerOpts{Output: output})

			err := runner.writeJSON(map[string]string{"key": "value"}, false)
			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}

			expected := `{"key":"value"}` + "\n"
			if output.String() != expected {
				t.Errorf("expected %q, got %q", expected, output.String())
			}
		})

		t.Run("handles marshal error with non-serializable data", func(t *testing.T) {
			runner := NewRunner(RunnerOpts{Output: &bytes.Buffer{}})

			// channels cannot be marshaled to JSON
			err := runner.writeJSON(make(chan int), false)
			if err == nil {
				t.Fatal("expected error for non-serializable data")
			}
			if !strings.Contains(err.Error(), "failed to marshal JSON") {
				t.Errorf("expected marshal error, got %v", err)
			}
		})

		t.Run("handles write failure", func(t *testing.T) {
			runner := NewRunner(RunnerOpts{Output: &tu.FWriter{}})

			err := runner.writeJSON(map[string]string{"key": "value"}, false)
			if err == nil {
				t.Fatal("expected error from failing writer")
			}
			if !strings.Contains(err.Error(), "failed to write output") {
				t.Errorf("expected write error, got %v", err)
			}
		})

		t.Run("handles newline write failure", func(t *testing.T) {
			limitedWriter := tu.NewLimitedWriter(1, 0, &bytes.Buffer{})
			runner := NewRunner(RunnerOpts{Output: &limitedWriter})

			err := runner.writeJSON(map[string]string{"key": "value"}, false)
			if err == nil {
				t.Fatal("expected error writing newline")
			}
			if !strings.Contains(err.Error(), "failed to write newline") {
				t.Errorf("expected newline write error, got %v", err)
			}
		})
	})

	t.Run("writePlain", func(t *testing.T) {
		t.Run("writes plain text successfully", func(t *testing.T) {
			output := &bytes.Buffer{}
			runner := NewRunner(RunnerOpts{Output: output})

			if err := runner.writePlain("hello %s", "world"); err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			if output.String() != "hello world" {
				t.Errorf("expected 'hello world', got %q", output.String())
			}
		})

		t.Run("writePlainln appends newline", func(t *testing.T) {
			output := &bytes.Buffer{}
			runner := NewRunner(RunnerOpts{Output: output})

			if err := runner.writePlainln("done"); err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			if output.String() != "done\n" {
				t.Errorf("expected 'done\\n', got %q", output.String())
			}
		})

		t.Run("handles write failure", func(t *testing.T) {
			runner := NewRunner(RunnerOpts{Output: &tu.FWriter{}})

			err := runner.writePlain("test")
			if err == nil {
				t.Fatal("expected error from failing writer")
			}
			if !strings.Contains(err.Error(), "failed to write output") {
				t.Errorf("expected write error, got %v", err)
			}
		})
	})

	t.Run("register", func(t *testing.T) {
		runner := NewRunner(RunnerOpts{})
		commands := runner.register()

		if len(commands) == 0 {
			t.Error("expected at least one command to be registered")
		}

		for i, cmd := range commands {
			if cmd == nil {
				t.Errorf("command at index %d is nil", i)
			}
		}
	})

	t.Run("Fetch", func(t *testing.T) {
		t.Run("prints catalog JSON", func(t *testing.T) {
			output := &bytes.Buffer{}
			source := &tu.MockSource{Videos: []models.VideoRecord{tu.SampleVideo("v1")}}
			runner := NewRunner(RunnerOpts{Source: source, Output: output})

			err := newTestApp(runner).Run(context.Background(), []string{"videohub", "fetch", "--json"})
			if err != nil {
				t.Fatalf("fetch failed: %v", err)
			}

			if source.Calls != 1 {
				t.Errorf("expected one fetch call, got %d", source.Calls)
			}
			if !strings.Contains(output.String(), `"title": "Sample v1"`) {
				t.Errorf("expected record JSON, got %s", output.String())
			}
		})

		t.Run("prints readable summary by default", func(t *testing.T) {
			output := &bytes.Buffer{}
			source := &tu.MockSource{Videos: []models.VideoRecord{tu.SampleVideo("v1")}}
			runner := NewRunner(RunnerOpts{Source: source, Output: output})

			err := newTestApp(runner).Run(context.Background(), []string{"videohub", "fetch"})
			if err != nil {
				t.Fatalf("fetch failed: %v", err)
			}

			if !strings.Contains(output.String(), "Sample v1") {
				t.Errorf("expected record title in summary, got %s", output.String())
			}
			if !strings.Contains(output.String(), "Company: Acme") {
				t.Errorf("expected company line in summary, got %s", output.String())
			}
		})

		t.Run("fails without a source", func(t *testing.T) {
			runner := NewRunner(RunnerOpts{Output: &bytes.Buffer{}})

			err := newTestApp(runner).Run(context.Background(), []string{"videohub", "fetch"})
			if err == nil {
				t.Fatal("expected error without a source")
			}
		})
	})

	t.Run("Export", func(t *testing.T) {
		t.Run("writes the catalog to a file", func(t *testing.T) {
			output := &bytes.Buffer{}
			source := &tu.MockSource{Videos: []models.VideoRecord{tu.SampleVideo("v1")}}
			runner := NewRunner(RunnerOpts{Source: source, Output: output})

			outPath := filepath.Join(t.TempDir(), "catalog")
			err := newTestApp(runner).Run(context.Background(), []string{
				"videohub", "export", "--format", "csv", "--output", outPath,
			})
			if err != nil {
				t.Fatalf("export failed: %v", err)
			}

			content := tu.MustReadFile(t, outPath+".csv")
			if !strings.Contains(content, "Sample v1") {
				t.Errorf("expected record in export, got %s", content)
			}
			if !strings.Contains(output.String(), "Exported 1 records") {
				t.Errorf("expected confirmation, got %s", output.String())
			}
		})

		t.Run("rejects unknown formats", func(t *testing.T) {
			source := &tu.MockSource{Videos: []models.VideoRecord{tu.SampleVideo("v1")}}
			runner := NewRunner(RunnerOpts{Source: source, Output: &bytes.Buffer{}})

			err := newTestApp(runner).Run(context.Background(), []string{
				"videohub", "export", "--format", "xml", "--output", filepath.Join(t.TempDir(), "catalog"),
			})
			if err == nil {
				t.Fatal("expected error for unknown format")
			}
		})
	})

	t.Run("Snapshot", func(t *testing.T) {
		newSnapshotRunner := func(t *testing.T, source *tu.MockSource, output *bytes.Buffer) *Runner {
			t.Helper()
			config := shared.DefaultConfig()
			config.Database.Path = filepath.Join(t.TempDir(), "videohub.db")
			return NewRunner(RunnerOpts{Config: config, Source: source, Output: output})
		}

		t.Run("take persists and reports the snapshot", func(t *testing.T) {
			output := &bytes.Buffer{}
			source := &tu.MockSource{Videos: []models.VideoRecord{tu.SampleVideo("v1"), tu.SampleVideo("v2")}}
			runner := newSnapshotRunner(t, source, output)

			err := newTestApp(runner).Run(context.Background(), []string{"videohub", "snapshot", "take"})
			if err != nil {
				t.Fatalf("snapshot take failed: %v", err)
			}

			if !strings.Contains(output.String(), "stored with 2 records") {
				t.Errorf("expected confirmation, got %s", output.String())
			}
		})

		t.Run("show prints the latest snapshot", func(t *testing.T) {
			output := &bytes.Buffer{}
			source := &tu.MockSource{Videos: []models.VideoRecord{tu.SampleVideo("v1")}}
			runner := newSnapshotRunner(t, source, output)

			app := newTestApp(runner)
			if err := app.Run(context.Background(), []string{"videohub", "snapshot", "take"}); err != nil {
				t.Fatalf("snapshot take failed: %v", err)
			}

			output.Reset()
			if err := app.Run(context.Background(), []string{"videohub", "snapshot", "show", "--json"}); err != nil {
				t.Fatalf("snapshot show failed: %v", err)
			}

			if !strings.Contains(output.String(), `"title": "Sample v1"`) {
				t.Errorf("expected stored record, got %s", output.String())
			}
		})

		t.Run("show fails when nothing is stored", func(t *testing.T) {
			runner := newSnapshotRunner(t, &tu.MockSource{}, &bytes.Buffer{})

			err := newTestApp(runner).Run(context.Background(), []string{"videohub", "snapshot", "show"})
			if err == nil {
				t.Fatal("expected error for empty store")
			}
			if !strings.Contains(err.Error(), shared.ErrSnapshotNotFound.Error()) {
				t.Errorf("expected snapshot not found, got %v", err)
			}
		})

		t.Run("list reports when empty", func(t *testing.T) {
			output := &bytes.Buffer{}
			runner := newSnapshotRunner(t, &tu.MockSource{}, output)

			if err := newTestApp(runner).Run(context.Background(), []string{"videohub", "snapshot", "list"}); err != nil {
				t.Fatalf("snapshot list failed: %v", err)
			}

			if !strings.Contains(output.String(), "No snapshots stored yet") {
				t.Errorf("expected empty message, got %s", output.String())
			}
		})
	})

	t.Run("Setup", func(t *testing.T) {
		t.Run("initializes the database from an existing config", func(t *testing.T) {
			tmpDir := t.TempDir()
			configPath := filepath.Join(tmpDir, "config.toml")
			dbPath := filepath.Join(tmpDir, "videohub.db")

			conf := "[database]\npath = \"" + dbPath + "\"\nmax_open_conns = 10\nmax_idle_conns = 5\n"
			if err := os.WriteFile(configPath, []byte(conf), 0644); err != nil {
				t.Fatalf("failed to write test config: %v", err)
			}

			output := &bytes.Buffer{}
			runner := NewRunner(RunnerOpts{Output: output})

			err := newTestApp(runner).Run(context.Background(), []string{"videohub", "setup", "--config", configPath})
			if err != nil {
				t.Fatalf("setup failed: %v", err)
			}

			tu.AssertFileExists(t, dbPath)
			if !strings.Contains(output.String(), "Setup complete") {
				t.Errorf("expected confirmation, got %s", output.String())
			}
		})

		t.Run("creates a config file when missing", func(t *testing.T) {
			tmpDir := t.TempDir()
			configPath := filepath.Join(tmpDir, "config.toml")

			output := &bytes.Buffer{}
			runner := NewRunner(RunnerOpts{Output: output})
			runner.config.Database.Path = filepath.Join(tmpDir, "videohub.db")

			// Loading the created template resets database.path, so run
			// from the temp directory to keep the database file contained.
			t.Chdir(tmpDir)

			err := newTestApp(runner).Run(context.Background(), []string{"videohub", "setup", "--config", configPath})
			if err != nil {
				t.Fatalf("setup failed: %v", err)
			}

			tu.AssertFileExists(t, configPath)
		})
	})
}
