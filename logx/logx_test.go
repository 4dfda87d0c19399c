package logx

import (
	"bytes"
	"os"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

func fixedLogger(buf *bytes.Buffer, level Level) *ConsoleLogger {
	l := NewLogger(buf, level)
	l.now = func() time.Time { return time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC) }
	return l
}

func TestConsoleLoggerFormat(t *testing.T) {
	var buf bytes.Buffer
	l := fixedLogger(&buf, DEBUG)

	l.Section("encoder").LogPrintf(INFO, "canvas %dx%d", 12, 8)
	l.Section("cli").LogPrintln(WARN, "slow", "source")

	want := "03:04:05  INFO [encoder] canvas 12x8\n" +
		"03:04:05  WARN [cli] slow source\n"
	if got := buf.String(); got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestConsoleLoggerLevelFilter(t *testing.T) {
	var buf bytes.Buffer
	l := fixedLogger(&buf, WARN)
	s := l.Section("x")

	s.LogPrintf(DEBUG, "hidden")
	s.LogPrintf(INFO, "hidden")
	s.LogPrintf(WARN, "shown")
	s.LogPrintf(ERROR, "shown too")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected 2 lines, got %d: %q", len(lines), buf.String())
	}
	if s.Level() != WARN {
		t.Errorf("section level = %v, want %v", s.Level(), WARN)
	}
}

func TestConsoleLoggerTrimsTrailingNewline(t *testing.T) {
	var buf bytes.Buffer
	l := fixedLogger(&buf, DEBUG)
	l.LogPrintfX("s", ERROR, "boom\n")
	if strings.Count(buf.String(), "\n") != 1 {
		t.Errorf("expected a single newline, got %q", buf.String())
	}
}

func TestConsoleLoggerConcurrent(t *testing.T) {
	var buf bytes.Buffer
	l := fixedLogger(&buf, DEBUG)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			for j := 0; j < 50; j++ {
				l.LogPrintfX("w", INFO, "worker %d line %d", i, j)
			}
		}(i)
	}
	wg.Wait()

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 400 {
		t.Fatalf("expected 400 lines, got %d", len(lines))
	}
	for _, line := range lines {
		if !strings.HasPrefix(line, "03:04:05  INFO [w] worker ") {
			t.Fatalf("interleaved line %q", line)
		}
	}
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want Level
		ok   bool
	}{
		{"debug", DEBUG, true},
		{"INFO", INFO, true},
		{" warn ", WARN, true},
		{"warning", WARN, true},
		{"error", ERROR, true},
		{"loud", 0, false},
	}
	for _, tt := range tests {
		got, err := ParseLevel(tt.in)
		if (err == nil) != tt.ok {
			t.Errorf("ParseLevel(%q) error = %v, want ok=%v", tt.in, err, tt.ok)
			continue
		}
		if tt.ok && got != tt.want {
			t.Errorf("ParseLevel(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestNopLogger(t *testing.T) {
	var l Logger = NopLogger{}
	l.LogPrintf(ERROR, "ignored %d", 1)
	l.LogPrintln(ERROR, "ignored")
	if l.Level() != LevelCount {
		t.Errorf("NopLogger level = %v, want above every real level", l.Level())
	}
}

func TestConsoleLoggerStylesFollowRenderer(t *testing.T) {
	var buf bytes.Buffer
	l := fixedLogger(&buf, DEBUG)
	r := lipgloss.NewRenderer(&buf)
	r.SetColorProfile(termenv.ANSI)
	l.styles = newStyles(r)

	l.LogPrintfX("encoder", WARN, "slow")
	out := buf.String()
	if !strings.Contains(out, "\x1b[") {
		t.Errorf("expected ANSI styling, got %q", out)
	}
	if !strings.HasSuffix(out, "slow\n") {
		t.Errorf("message not at end of line: %q", out)
	}

	// A renderer on a plain writer detects no color support.
	plain := newStyles(lipgloss.NewRenderer(&bytes.Buffer{}))
	if got := plain.level[ERROR].Render("ERROR"); got != "ERROR" {
		t.Errorf("plain renderer styled output: %q", got)
	}
}

func TestNewConsoleLoggerNotTerminal(t *testing.T) {
	f, err := os.CreateTemp(t.TempDir(), "log")
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	l := NewConsoleLogger(f, INFO)
	if l.styles != nil {
		t.Error("styles enabled for a regular file")
	}
	l.LogPrintfX("cli", INFO, "done")
	data, err := os.ReadFile(f.Name())
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasSuffix(string(data), "  INFO [cli] done\n") {
		t.Errorf("log file = %q", data)
	}
}
