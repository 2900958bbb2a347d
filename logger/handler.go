package logger

import (
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/joeycumines/go-utilpkg/jsonenc"
)

// Location identifies the call site a log record originated from.
type Location struct {
	FunctionName string
	FileName     string
	LineNumber   int64
}

// Record is everything the output handler needs to render one log line.
type Record struct {
	Location  Location
	Severity  Severity
	Name      string
	Timestamp int64 // nanoseconds since the Unix epoch
	Message   string
}

// Handler renders a Record. The installed handler is replaceable.
type Handler func(Record)

// bufCap caps an expanded line at 1024 bytes; the default handler renders
// into a single buffer of that capacity.
const bufCap = 1024

// ansiColor returns the severity's ANSI color escape, or "" for none.
func ansiColor(s Severity) string {
	switch s {
	case Debug:
		return "\x1b[36m" // cyan
	case Info:
		return "\x1b[32m" // green
	case Warn:
		return "\x1b[33m" // yellow
	case Error:
		return "\x1b[31m" // red
	case Fatal:
		return "\x1b[1;31m" // bold red
	default:
		return ""
	}
}

const ansiReset = "\x1b[0m"

// defaultHandler builds the handler closure the logger installs by
// default: it expands handlers against rec into buf, applying ANSI
// colorization when colorize is set, then writes one line to w.
func defaultHandler(w io.Writer, handlers []handlerEntry, colorize bool) Handler {
	return func(rec Record) {
		buf := make([]byte, 0, bufCap)

		if colorize {
			if c := ansiColor(rec.Severity); c != "" {
				buf = append(buf, c...)
			}
		}

		for _, h := range handlers {
			buf = appendToken(buf, h, rec)
			if len(buf) >= bufCap {
				buf = buf[:bufCap]
				break
			}
		}

		if colorize && ansiColor(rec.Severity) != "" {
			buf = append(buf, ansiReset...)
		}
		buf = append(buf, '\n')

		_, _ = w.Write(buf)
	}
}

func appendToken(buf []byte, h handlerEntry, rec Record) []byte {
	switch h.kind {
	case tokVerbatim:
		return append(buf, h.verbatim...)
	case tokSeverity:
		return append(buf, rec.Severity.String()...)
	case tokName:
		return appendEscaped(buf, rec.Name)
	case tokMessage:
		return appendEscaped(buf, rec.Message)
	case tokFunctionName:
		return appendEscaped(buf, rec.Location.FunctionName)
	case tokFileName:
		return appendEscaped(buf, rec.Location.FileName)
	case tokLineNumber:
		return strconv.AppendInt(buf, rec.Location.LineNumber, 10)
	case tokTimeSeconds:
		return strconv.AppendFloat(buf, float64(rec.Timestamp)/float64(time.Second), 'f', 9, 64)
	case tokTimeNanoseconds:
		return strconv.AppendInt(buf, rec.Timestamp, 10)
	case tokDateTimeWithMS:
		t := time.Unix(0, rec.Timestamp).UTC()
		return append(buf, t.Format("2006-01-02 15:04:05.000")...)
	default:
		return buf
	}
}

// appendEscaped appends s to buf using jsonenc.AppendString's
// allocation-light control-character escaping (so a message or logger
// name carrying embedded newlines or control bytes cannot corrupt the
// single-line output), stripping the JSON-quote delimiters it adds
// since this is a plain-text line, not a JSON document.
func appendEscaped(buf []byte, s string) []byte {
	start := len(buf)
	buf = jsonenc.AppendString(buf, s)
	return append(buf[:start], buf[start+1:len(buf)-1]...)
}

// formatMessage renders format/args the way fmt.Sprintf would; kept as
// a named seam so Log can be tested against its output independent of
// handler compilation.
func formatMessage(format string, args ...any) string {
	if len(args) == 0 {
		return format
	}
	return fmt.Sprintf(format, args...)
}
