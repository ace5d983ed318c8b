package main

import (
	"bytes"
	"context"
	"database/sql"
	"os"
	"strings"
	"testing"

	"github.com/desertthunder/plx/internal/models"
	"github.com/desertthunder/plx/internal/shared"
	tu "github.com/desertthunder/plx/internal/testing"
	"github.com/urfave/cli/v3"

	_ "github.com/mattn/go-sqlite3"
)

func setupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := sql.Open("sqlite3", ":memory:")
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		t.Fatalf("failed to enable foreign keys: %v", err)
	}
	if err := shared.RunMigrations(db); err != nil {
		t.Fatalf("failed to run migrations: %v", err)
	}
	return db
}

func newTestRunner(t *testing.T) (*Runner, *bytes.Buffer) {
	t.Helper()

	output := &bytes.Buffer{}
	runner := NewRunner(RunnerOpts{
		Config: shared.DefaultConfig(),
		DB:     setupTestDB(t),
		Logger: shared.NewLogger(nopWriter{}),
		Output: output,
	})
	return runner, output
}

type nopWriter struct{}

func (nopWriter) Write(p []byte) (int, error) { return len(p), nil }

func runApp(t *testing.T, runner *Runner, args ...string) error {
	t.Helper()
	app := &cli.Command{Name: "plx", Commands: runner.register()}
	return app.Run(context.Background(), append([]string{"plx"}, args...))
}

func TestRunner(t *testing.T) {
	t.Run("NewRunner", func(t *testing.T) {
		t.Run("with all dependencies provided", func(t *testing.T) {
			config := shared.DefaultConfig()
			logger := shared.NewLogger(nil)
			output := &bytes.Buffer{}

			runner := NewRunner(RunnerOpts{
				Config: config,
				Logger: logger,
				Output: output,
			})

			if runner.config != config {
				t.Error("expected config to be set")
			}
			if runner.logger != logger {
				t.Error("expected logger to be set")
			}
			if runner.output != output {
				t.Error("expected output to be set")
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

		t.Run("with database wires repositories", func(t *testing.T) {
			runner, _ := newTestRunner(t)

			if runner.tracks == nil || runner.playlists == nil || runner.coordinator == nil {
				t.Error("expected repositories and coordinator to be wired")
			}
		})
	})

	t.Run("writeJSON", func(t *testing.T) {
		t.Run("writes formatted JSON successfully", func(t *testing.T) {
			output := &bytes.Buffer{}
			runner := NewRunner(RunnerOpts{Output: output})

			data := map[string]string{"key": "value"}
			if err := runner.writeJSON(data, true); err != nil {
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

			data := map[string]string{"key": "value"}
			if err := runner.writeJSON(data, false); err != nil {
				t.Fatalf("expected no error, got %v", err)
			}

			expected := `{"key":"value"}` + "\n"
			if output.String() != expected {
				t.Errorf("expected %q, got %q", expected, output.String())
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

		t.Run("handles write failure", func(t *testing.T) {
			runner := NewRunner(RunnerOpts{Output: &tu.FWriter{}})

			err := runner.writePlain("test")
			if err == nil {
				t.Fatal("expected error from failing writer")
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
}

func TestCommands(t *testing.T) {
	seedTrack := func(t *testing.T, runner *Runner, title, artist, path string) {
		t.Helper()
		track := &models.Track{Title: title, Artist: artist, Path: path}
		if err := runner.tracks.Create(track); err != nil {
			t.Fatalf("failed to seed track: %v", err)
		}
	}

	t.Run("library add and search", func(t *testing.T) {
		runner, output := newTestRunner(t)

		err := runApp(t, runner, "library", "add",
			"--title", "Bohemian Rhapsody", "--artist", "Queen", "--path", "/music/queen.mp3")
		if err != nil {
			t.Fatalf("library add failed: %v", err)
		}

		output.Reset()
		if err := runApp(t, runner, "library", "search", "rhapsody"); err != nil {
			t.Fatalf("library search failed: %v", err)
		}
		if !strings.Contains(output.String(), "Bohemian Rhapsody - Queen") {
			t.Errorf("expected search hit, got %q", output.String())
		}
	})

	t.Run("library scan indexes audio files", func(t *testing.T) {
		runner, output := newTestRunner(t)

		dir := t.TempDir()
		tu.MustWriteFile(t, dir, "Bohemian Rhapsody - Queen.mp3", "")
		tu.MustWriteFile(t, dir, "notes.txt", "")

		if err := runApp(t, runner, "library", "scan", dir); err != nil {
			t.Fatalf("library scan failed: %v", err)
		}
		if !strings.Contains(output.String(), "1 added") {
			t.Errorf("expected one added track, got %q", output.String())
		}
	})

	t.Run("import run builds a playlist", func(t *testing.T) {
		runner, output := newTestRunner(t)
		seedTrack(t, runner, "Bohemian Rhapsody", "Queen", "/music/queen/bohemian_rhapsody.mp3")

		dir := t.TempDir()
		playlist := "#EXTM3U\n" +
			"#EXTINF:354,Bohemian Rhapsody - Queen\n" +
			"file:///music/queen/bohemian_rhapsody.mp3\n" +
			"#EXTINF:200,Ghost Track - Nobody\n" +
			"file:///missing/ghost.mp3\n"
		file := tu.MustWriteFile(t, dir, "roadtrip.m3u", playlist)

		if err := runApp(t, runner, "import", "run", file); err != nil {
			t.Fatalf("import run failed: %v", err)
		}
		if !strings.Contains(output.String(), "1/2 matched") {
			t.Errorf("expected match summary, got %q", output.String())
		}

		output.Reset()
		if err := runApp(t, runner, "playlist", "show", "roadtrip"); err != nil {
			t.Fatalf("playlist show failed: %v", err)
		}
		if !strings.Contains(output.String(), "1. Bohemian Rhapsody - Queen") {
			t.Errorf("expected playlist member, got %q", output.String())
		}
	})

	t.Run("import run without files errors", func(t *testing.T) {
		runner, _ := newTestRunner(t)

		err := runApp(t, runner, "import", "run")
		if err == nil {
			t.Fatal("expected error for missing files")
		}
	})

	t.Run("playlist delete removes the playlist", func(t *testing.T) {
		runner, output := newTestRunner(t)

		dir := t.TempDir()
		file := tu.MustWriteFile(t, dir, "empty.m3u", "#EXTM3U\n")
		if err := runApp(t, runner, "import", "run", "--name", "Mix", file); err != nil {
			t.Fatalf("import run failed: %v", err)
		}

		if err := runApp(t, runner, "playlist", "delete", "Mix"); err != nil {
			t.Fatalf("playlist delete failed: %v", err)
		}

		output.Reset()
		if err := runApp(t, runner, "playlist", "list"); err != nil {
			t.Fatalf("playlist list failed: %v", err)
		}
		if !strings.Contains(output.String(), "No playlists yet") {
			t.Errorf("expected empty list, got %q", output.String())
		}
	})
}
