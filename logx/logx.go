// Package logx is a small leveled, sectioned logger for console output.
package logx

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/lipgloss"
	colorable "github.com/mattn/go-colorable"
	isatty "github.com/mattn/go-isatty"
)

type Level int

const (
	DEBUG Level = iota
	INFO
	WARN
	ERROR
	LevelCount
)

var levelNames = [LevelCount]string{
	DEBUG: "debug",
	INFO:  "info",
	WARN:  "warn",
	ERROR: "error",
}

func (l Level) String() string {
	if l >= 0 && l < LevelCount {
		return levelNames[l]
	}
	return fmt.Sprintf("Level(%d)", int(l))
}

// ParseLevel accepts the names printed by Level.String, case-insensitively.
func ParseLevel(s string) (Level, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "warning" {
		return WARN, nil
	}
	for i, n := range levelNames {
		if n == s {
			return Level(i), nil
		}
	}
	return 0, fmt.Errorf("unknown log level %q", s)
}

// Logger is what library code logs through.
type Logger interface {
	Level() Level
	LogPrintf(lvl Level, format string, v ...interface{})
	LogPrintln(lvl Level, v ...interface{})
}

// LoggerX is a Logger shared between sections.
type LoggerX interface {
	Level() Level
	LogPrintfX(section string, lvl Level, format string, v ...interface{})
	LogPrintlnX(section string, lvl Level, v ...interface{})
}

var _ Logger = LogToX{}

// LogToX binds a LoggerX to one section.
type LogToX struct {
	section string
	logx    LoggerX
}

func NewLogToX(logx LoggerX, section string) LogToX {
	return LogToX{section: section, logx: logx}
}

func (l LogToX) Level() Level {
	return l.logx.Level()
}
func (l LogToX) LogPrintf(lvl Level, format string, v ...interface{}) {
	l.logx.LogPrintfX(l.section, lvl, format, v...)
}
func (l LogToX) LogPrintln(lvl Level, v ...interface{}) {
	l.logx.LogPrintlnX(l.section, lvl, v...)
}

var _ Logger = NopLogger{}

// NopLogger drops everything.
type NopLogger struct{}

func (NopLogger) Level() Level                            { return LevelCount }
func (NopLogger) LogPrintf(Level, string, ...interface{}) {}
func (NopLogger) LogPrintln(Level, ...interface{})        {}

// styles holds the level and section styles of one output.
type styles struct {
	level   [LevelCount]lipgloss.Style
	section lipgloss.Style
}

// newStyles binds the styles to r, whose color profile is detected from
// the writer the logger actually writes to.
func newStyles(r *lipgloss.Renderer) *styles {
	return &styles{
		level: [LevelCount]lipgloss.Style{
			DEBUG: r.NewStyle().Foreground(lipgloss.Color("8")),
			INFO:  r.NewStyle().Foreground(lipgloss.Color("4")),
			WARN:  r.NewStyle().Foreground(lipgloss.Color("3")).Bold(true),
			ERROR: r.NewStyle().Foreground(lipgloss.Color("1")).Bold(true),
		},
		section: r.NewStyle().Foreground(lipgloss.Color("6")),
	}
}

var _ LoggerX = (*ConsoleLogger)(nil)

// ConsoleLogger writes one line per message:
//
//	15:04:05  INFO [section] message
//
// Level and section are colored when the writer is a terminal.
type ConsoleLogger struct {
	mu     sync.Mutex
	w      io.Writer
	level  Level
	styles *styles // nil for plain output
	now    func() time.Time
}

// NewLogger logs to w without colors.
func NewLogger(w io.Writer, level Level) *ConsoleLogger {
	return &ConsoleLogger{w: w, level: level, now: time.Now}
}

// NewConsoleLogger logs to f, coloring output when f is a terminal.
func NewConsoleLogger(f *os.File, level Level) *ConsoleLogger {
	l := NewLogger(f, level)
	fd := f.Fd()
	if isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd) {
		l.w = colorable.NewColorable(f)
		l.styles = newStyles(lipgloss.NewRenderer(f))
	}
	return l
}

func (l *ConsoleLogger) Level() Level {
	return l.level
}

// Section returns a Logger tagging messages with section.
func (l *ConsoleLogger) Section(section string) Logger {
	return NewLogToX(l, section)
}

func (l *ConsoleLogger) prefix(section string, lvl Level) string {
	lvlStr := fmt.Sprintf("%5s", strings.ToUpper(lvl.String()))
	if l.styles != nil {
		lvlStr = l.styles.level[lvl].Render(lvlStr)
		section = l.styles.section.Render(section)
	}
	return fmt.Sprintf("%s %s [%s] ", l.now().Format("15:04:05"), lvlStr, section)
}

func (l *ConsoleLogger) LogPrintfX(section string, lvl Level, format string, v ...interface{}) {
	if l.level > lvl || lvl >= LevelCount {
		return
	}
	msg := strings.TrimSuffix(fmt.Sprintf(format, v...), "\n")

	l.mu.Lock()
	defer l.mu.Unlock()
	io.WriteString(l.w, l.prefix(section, lvl)+msg+"\n")
}

func (l *ConsoleLogger) LogPrintlnX(section string, lvl Level, v ...interface{}) {
	if l.level > lvl || lvl >= LevelCount {
		return
	}
	msg := strings.TrimSuffix(fmt.Sprintln(v...), "\n")

	l.mu.Lock()
	defer l.mu.Unlock()
	io.WriteString(l.w, l.prefix(section, lvl)+msg+"\n")
}
