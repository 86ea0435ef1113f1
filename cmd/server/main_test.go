// Reelmatch - Item-Based Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

package main

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/goccy/go-json"

	"github.com/tomtom215/reelmatch/internal/dataset"
	"github.com/tomtom215/reelmatch/internal/logging"
)

const (
	testMovies  = "movieId|title|genres\n1|Alien|Horror\n2|Aliens|Action\n3|Clueless|Comedy\n4|Alien|Horror\n"
	testRatings = "userId,movieId,rating\n1,1,5\n1,2,4\n2,1,4\n2,2,5\n3,3,5\n"
)

// writeFixture writes movie, rating and config files into a temp dir and
// returns the config path.
func writeFixture(t *testing.T, moviesPath string) string {
	t.Helper()
	dir := t.TempDir()

	if moviesPath == "" {
		moviesPath = filepath.Join(dir, "movies.csv")
		if err := os.WriteFile(moviesPath, []byte(testMovies), 0o600); err != nil {
			t.Fatal(err)
		}
	}
	ratingsPath := filepath.Join(dir, "ratings.csv")
	if err := os.WriteFile(ratingsPath, []byte(testRatings), 0o600); err != nil {
		t.Fatal(err)
	}

	cfg := "source:\n" +
		"  movies_path: " + moviesPath + "\n" +
		"  ratings_path: " + ratingsPath + "\n" +
		"logging:\n" +
		"  level: error\n"
	cfgPath := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(cfgPath, []byte(cfg), 0o600); err != nil {
		t.Fatal(err)
	}
	return cfgPath
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestNewRootCmd(t *testing.T) {
	cmd := newRootCmd()
	if cmd.Use != "reelmatch" {
		t.Errorf("Use = %q, want reelmatch", cmd.Use)
	}
	for _, name := range []string{"serve", "titles", "recommend"} {
		if sub, _, err := cmd.Find([]string{name}); err != nil || sub.Name() != name {
			t.Errorf("subcommand %q not registered", name)
		}
	}
}

func TestTitlesCmd(t *testing.T) {
	cfgPath := writeFixture(t, "")

	out, err := run(t, "--config", cfgPath, "titles")
	if err != nil {
		t.Fatalf("titles error = %v", err)
	}
	want := "Alien\nAliens\nClueless\n"
	if out != want {
		t.Errorf("titles output = %q, want %q", out, want)
	}
}

func TestTitlesCmd_JSON(t *testing.T) {
	cfgPath := writeFixture(t, "")

	out, err := run(t, "--config", cfgPath, "titles", "--json")
	if err != nil {
		t.Fatalf("titles --json error = %v", err)
	}
	var titles []string
	if err := json.Unmarshal([]byte(out), &titles); err != nil {
		t.Fatalf("invalid JSON %q: %v", out, err)
	}
	if len(titles) != 3 {
		t.Errorf("titles = %v, want 3 entries", titles)
	}
}

func TestRecommendCmd(t *testing.T) {
	cfgPath := writeFixture(t, "")

	tests := []struct {
		name string
		args []string
		want string
	}{
		{
			name: "flag selection",
			args: []string{"recommend", "-t", "Aliens"},
			want: "Alien\nClueless\n",
		},
		{
			name: "positional selection with unknown title",
			args: []string{"recommend", "Aliens", "Nope"},
			want: "Alien\nClueless\n",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := run(t, append([]string{"--config", cfgPath}, tt.args...)...)
			if err != nil {
				t.Fatalf("recommend error = %v", err)
			}
			if out != tt.want {
				t.Errorf("output = %q, want %q", out, tt.want)
			}
		})
	}
}

func TestRecommendCmd_Scores(t *testing.T) {
	cfgPath := writeFixture(t, "")

	out, err := run(t, "--config", cfgPath, "recommend", "--scores", "-t", "Aliens")
	if err != nil {
		t.Fatalf("recommend --scores error = %v", err)
	}
	lines := strings.Split(strings.TrimSpace(out), "\n")
	if len(lines) != 2 {
		t.Fatalf("lines = %q, want 2", lines)
	}
	if !strings.HasSuffix(lines[0], "\tAlien") || !strings.HasPrefix(lines[1], "0.000000\t") {
		t.Errorf("scored output = %q", out)
	}
}

func TestRecommendCmd_NoSelection(t *testing.T) {
	if _, err := run(t, "recommend"); err == nil {
		t.Error("recommend without titles succeeded, want error")
	}
}

func TestMissingSourceIsFatal(t *testing.T) {
	cfgPath := writeFixture(t, filepath.Join(t.TempDir(), "absent.csv"))

	_, err := run(t, "--config", cfgPath, "titles")
	if !errors.Is(err, dataset.ErrSourceUnavailable) {
		t.Errorf("titles error = %v, want ErrSourceUnavailable", err)
	}
}

func TestFlagOverrides(t *testing.T) {
	cfgPath := writeFixture(t, filepath.Join(t.TempDir(), "absent.csv"))
	movies := filepath.Join(t.TempDir(), "movies.csv")
	if err := os.WriteFile(movies, []byte(testMovies), 0o600); err != nil {
		t.Fatal(err)
	}

	out, err := run(t, "--config", cfgPath, "--movies", movies, "titles")
	if err != nil {
		t.Fatalf("titles --movies error = %v", err)
	}
	if !strings.HasPrefix(out, "Alien\n") {
		t.Errorf("titles output = %q", out)
	}

	if _, err := run(t, "--config", cfgPath, "--movies", movies, "--source", "ftp", "titles"); err == nil {
		t.Error("invalid --source accepted, want validation error")
	}
}

func TestRequestBaseContext_CarriesLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := logging.NewTestLogger(&buf).With().Str("component", "http").Logger()

	ctx := requestBaseContext(logger)(nil)
	ctx = logging.ContextWithRequestID(ctx, "req-1")
	logging.Ctx(ctx).Info().Msg("handled")

	var entry map[string]interface{}
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("log line %q: %v", buf.String(), err)
	}
	if entry["component"] != "http" {
		t.Errorf("component = %v, want http", entry["component"])
	}
	if entry["request_id"] != "req-1" {
		t.Errorf("request_id = %v, want req-1", entry["request_id"])
	}
}
