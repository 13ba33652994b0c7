package cli

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/go-cmp/cmp"

	"github.com/matzehuels/trackgraph/pkg/pipeline"
)

const lineTOML = `name = "Valley line"

[[stations]]
id = "A"
km = 0.0
tracks = ["1", "2"]

[[stations]]
id = "B"
km = 5.5

[[stations]]
id = "C"
km = 12.0

[[trains]]
id = "T1"

  [[trains.stops]]
  station = "A"
  track = "2"
  depart = "08:00"

  [[trains.stops]]
  station = "B"
  arrive = "08:06"
  depart = "08:07"

  [[trains.stops]]
  station = "C"
  arrive = "08:15"
`

// setup writes the sample timetable and points the cache at a temp dir.
func setup(t *testing.T) (input string) {
	t.Helper()
	t.Setenv("XDG_CACHE_HOME", t.TempDir())
	input = filepath.Join(t.TempDir(), "valley.toml")
	if err := os.WriteFile(input, []byte(lineTOML), 0o644); err != nil {
		t.Fatal(err)
	}
	return input
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	c := New(io.Discard, LogInfo)
	c.SetOutput(&out)
	root := c.RootCommand()
	root.SetArgs(args)
	root.SetOut(io.Discard)
	root.SetErr(io.Discard)
	err := root.ExecuteContext(context.Background())
	return out.String(), err
}

func TestParseFormats(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{"empty", "", nil},
		{"single format", "svg", []string{"svg"}},
		{"multiple formats", "svg,pdf,png", []string{"svg", "pdf", "png"}},
		{"spaces and blanks", " svg , ,json", []string{"svg", "json"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if diff := cmp.Diff(tt.want, parseFormats(tt.input)); diff != "" {
				t.Errorf("parseFormats(%q) mismatch (-want +got):\n%s", tt.input, diff)
			}
		})
	}
}

func TestCacheDir(t *testing.T) {
	t.Setenv("XDG_CACHE_HOME", "/tmp/xdg")
	dir, err := cacheDir()
	if err != nil {
		t.Fatal(err)
	}
	if want := filepath.Join("/tmp/xdg", "trackgraph"); dir != want {
		t.Errorf("cacheDir() = %q, want %q", dir, want)
	}

	t.Setenv("XDG_CACHE_HOME", "")
	dir, err = cacheDir()
	if err != nil {
		t.Fatal(err)
	}
	home, _ := os.UserHomeDir()
	if want := filepath.Join(home, ".cache", "trackgraph"); dir != want {
		t.Errorf("cacheDir() = %q, want %q", dir, want)
	}
}

func TestFormatBytes(t *testing.T) {
	tests := map[int64]string{
		0:           "0 B",
		1023:        "1023 B",
		1536:        "1.5 KiB",
		5 << 20:     "5.0 MiB",
		3 << 30 / 2: "1.5 GiB",
	}
	for n, want := range tests {
		if got := formatBytes(n); got != want {
			t.Errorf("formatBytes(%d) = %q, want %q", n, got, want)
		}
	}
}

func TestLoadOptionsFlagsWin(t *testing.T) {
	path := filepath.Join(t.TempDir(), "opts.toml")
	if err := os.WriteFile(path, []byte("width = 1600\nheight = 900\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	got, err := loadOptions(path, pipeline.Options{Width: 700})
	if err != nil {
		t.Fatal(err)
	}
	if got.Width != 700 || got.Height != 900 {
		t.Errorf("loadOptions() = %vx%v, want 700x900", got.Width, got.Height)
	}

	if _, err := loadOptions(filepath.Join(t.TempDir(), "missing.toml"), pipeline.Options{}); err == nil {
		t.Error("missing config should fail")
	}
}

func TestRenderCommand(t *testing.T) {
	input := setup(t)
	base := strings.TrimSuffix(input, ".toml")

	out, err := run(t, "render", input, "-f", "svg,json", "--width", "600", "--height", "400")
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	for _, ext := range []string{".svg", ".json"} {
		data, err := os.ReadFile(base + ext)
		if err != nil {
			t.Fatalf("output %s missing: %v", ext, err)
		}
		if len(data) == 0 {
			t.Errorf("output %s is empty", ext)
		}
	}
	if !strings.Contains(out, "fresh") {
		t.Errorf("first render should be fresh:\n%s", out)
	}

	out, err = run(t, "render", input, "-f", "svg,json", "--width", "600", "--height", "400")
	if err != nil {
		t.Fatalf("second render: %v", err)
	}
	if !strings.Contains(out, "cached") {
		t.Errorf("second render should be cached:\n%s", out)
	}
}

func TestRenderCommandOutputPath(t *testing.T) {
	input := setup(t)
	output := filepath.Join(t.TempDir(), "diagram.svg")

	if _, err := run(t, "render", input, "-o", output, "--no-cache"); err != nil {
		t.Fatalf("render: %v", err)
	}
	data, err := os.ReadFile(output)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(string(data), "<svg") {
		t.Errorf("output is not svg: %.40s", data)
	}
}

func TestRenderCommandErrors(t *testing.T) {
	input := setup(t)

	if _, err := run(t, "render", input, "-f", "gif"); err == nil {
		t.Error("unknown format should fail")
	}
	if _, err := run(t, "render", input, "--labels", "sometimes"); err == nil {
		t.Error("unknown label mode should fail")
	}
	if _, err := run(t, "render", filepath.Join(filepath.Dir(input), "nope.toml")); err == nil {
		t.Error("missing input should fail")
	}
}

func TestInspectCommand(t *testing.T) {
	input := setup(t)

	out, err := run(t, "inspect", input, "--width", "800", "--height", "600")
	if err != nil {
		t.Fatalf("inspect: %v", err)
	}
	for _, want := range []string{"Valley line", "Scale", "Segment", "station A", "track A/2"} {
		if !strings.Contains(out, want) {
			t.Errorf("inspect output should contain %q:\n%s", want, out)
		}
	}
}

func TestCacheCommands(t *testing.T) {
	input := setup(t)
	if _, err := run(t, "render", input); err != nil {
		t.Fatal(err)
	}

	out, err := run(t, "cache", "info")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, "Entries") {
		t.Errorf("cache info output:\n%s", out)
	}

	out, err = run(t, "cache", "clear")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, "Cleared 2 cached entries") {
		t.Errorf("cache clear output:\n%s", out)
	}

	out, err = run(t, "cache", "clear")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, "Cache is empty") {
		t.Errorf("second clear output:\n%s", out)
	}
}

func TestSegmentListModel(t *testing.T) {
	input := setup(t)
	c := New(io.Discard, LogInfo)
	d, err := c.layout(context.Background(), input, pipeline.Options{})
	if err != nil {
		t.Fatal(err)
	}

	m := NewSegmentListModel(d)
	m.Height = 3
	n := len(m.Segments)
	if n < 4 {
		t.Fatalf("expected several segments, got %d", n)
	}

	key := func(s string) tea.KeyMsg {
		switch s {
		case "down":
			return tea.KeyMsg{Type: tea.KeyDown}
		case "up":
			return tea.KeyMsg{Type: tea.KeyUp}
		}
		return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
	}
	press := func(m SegmentListModel, keys ...string) SegmentListModel {
		for _, k := range keys {
			next, _ := m.Update(key(k))
			m = next.(SegmentListModel)
		}
		return m
	}

	m = press(m, "up")
	if m.Cursor != 0 {
		t.Errorf("cursor moved above the first row: %d", m.Cursor)
	}
	m = press(m, "down", "j", "down", "down")
	if m.Cursor != 4 || m.Offset != 2 {
		t.Errorf("after 4 down: cursor %d offset %d, want 4, 2", m.Cursor, m.Offset)
	}
	m = press(m, "G")
	if m.Cursor != n-1 {
		t.Errorf("G: cursor %d, want %d", m.Cursor, n-1)
	}
	m = press(m, "g")
	if m.Cursor != 0 || m.Offset != 0 {
		t.Errorf("g: cursor %d offset %d", m.Cursor, m.Offset)
	}

	if _, cmd := m.Update(key("q")); cmd == nil {
		t.Error("q should quit")
	}
	if view := m.View(); !strings.Contains(view, "[1/") {
		t.Errorf("view should show position:\n%s", view)
	}
}
