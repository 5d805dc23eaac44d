package common

import (
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/x/ansi"
)

func TestTruncateLines(t *testing.T) {
	if got := TruncateLines("short", 40, 2); strings.TrimRight(got, " ") != "short" {
		t.Fatalf("short text should pass through: %q", got)
	}

	long := strings.Repeat("word ", 30)
	got := TruncateLines(long, 20, 2)
	if !strings.HasSuffix(got, "…") {
		t.Fatalf("long text should end with ellipsis: %q", got)
	}
	lines := strings.Split(got, "\n")
	if len(lines) != 2 {
		t.Fatalf("expected 2 lines, got %d", len(lines))
	}
	for _, ln := range lines {
		if w := ansi.StringWidth(ln); w > 20 {
			t.Fatalf("line wider than requested width: %d > 20 (%q)", w, ln)
		}
	}

	got = TruncateLines("a\nb\nc", 40, 2)
	lines = strings.Split(got, "\n")
	if len(lines) != 2 || strings.TrimRight(lines[0], " ") != "a" || !strings.HasSuffix(lines[1], "…") {
		t.Fatalf("multi-line truncation: %q", got)
	}

	if got := TruncateLines("x", 0, 2); got != "" {
		t.Fatalf("zero width should return empty: %q", got)
	}
}

func TestTruncateLinesWideRunes(t *testing.T) {
	got := TruncateLines("日本語のブログ記事のテスト", 10, 1)
	lines := strings.Split(got, "\n")
	if len(lines) != 1 {
		t.Fatalf("expected 1 line, got %d", len(lines))
	}
	if w := ansi.StringWidth(lines[0]); w > 10 {
		t.Fatalf("double-width text overflows: width %d > 10 (%q)", w, lines[0])
	}
	if !strings.HasSuffix(got, "…") {
		t.Fatalf("truncated wide text should end with ellipsis: %q", got)
	}

	short := TruncateLines("日本", 10, 1)
	if w := ansi.StringWidth(strings.TrimRight(short, " ")); w != 4 {
		t.Fatalf("short wide text should pass through at width 4, got %d (%q)", w, short)
	}
}

func TestFormatTags(t *testing.T) {
	if got := FormatTags(nil); got != "" {
		t.Fatalf("nil tags should render empty: %q", got)
	}
	if got := FormatTags([]string{"go", "web"}); got != "#go #web" {
		t.Fatalf("unexpected tag rendering: %q", got)
	}
}

func TestRelativeTime(t *testing.T) {
	now := time.Now()
	cases := []struct {
		at   time.Time
		want string
	}{
		{now.Add(-10 * time.Second), "just now"},
		{now.Add(-5 * time.Minute), "5m ago"},
		{now.Add(-3 * time.Hour), "3h ago"},
		{now.Add(-48 * time.Hour), "2d ago"},
	}
	for _, tc := range cases {
		if got := RelativeTime(tc.at); got != tc.want {
			t.Fatalf("RelativeTime(%v) = %q, want %q", tc.at, got, tc.want)
		}
	}

	old := RelativeTime(now.Add(-30 * 24 * time.Hour))
	if !strings.Contains(old, now.Add(-30*24*time.Hour).Format("2006")) {
		t.Fatalf("old timestamps should fall back to a date: %q", old)
	}
}
