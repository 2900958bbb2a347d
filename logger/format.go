package logger

import (
	"strings"

	"github.com/ros2/rcutils-go/rcerror"
)

// tokenKind identifies a recognized {...} format token, or a verbatim
// run of literal bytes copied unchanged.
type tokenKind int

const (
	tokVerbatim tokenKind = iota
	tokSeverity
	tokName
	tokMessage
	tokFunctionName
	tokFileName
	tokTimeSeconds
	tokDateTimeWithMS
	tokTimeNanoseconds
	tokLineNumber
)

// tokenNames is the recognized-token table, matching the ROS2 rcutils
// logging format-string tokens exactly (see original_source/src/logging.c's
// `tokens` table).
var tokenNames = map[string]tokenKind{
	"severity":           tokSeverity,
	"name":                tokName,
	"message":             tokMessage,
	"function_name":       tokFunctionName,
	"file_name":           tokFileName,
	"time":                tokTimeSeconds,
	"date_time_with_ms":   tokDateTimeWithMS,
	"time_as_nanoseconds": tokTimeNanoseconds,
	"line_number":         tokLineNumber,
}

// handlerEntry is one compiled element of a format template: either a
// token expander or a verbatim literal.
type handlerEntry struct {
	kind     tokenKind
	verbatim string
}

// maxHandlers matches the spec's compiled-handler-sequence cap.
const maxHandlers = 1024

// compileFormat compiles tmpl (after resolving its backslash escapes)
// into an ordered handler sequence. Unrecognized {...} substrings are
// emitted verbatim, braces included.
func compileFormat(tmpl string) ([]handlerEntry, error) {
	tmpl = resolveEscapes(tmpl)

	var handlers []handlerEntry
	appendVerbatim := func(s string) {
		if s == "" {
			return
		}
		if n := len(handlers); n > 0 && handlers[n-1].kind == tokVerbatim {
			handlers[n-1].verbatim += s
			return
		}
		handlers = append(handlers, handlerEntry{kind: tokVerbatim, verbatim: s})
	}

	i := 0
	for i < len(tmpl) {
		start := strings.IndexByte(tmpl[i:], '{')
		if start < 0 {
			appendVerbatim(tmpl[i:])
			break
		}
		start += i
		appendVerbatim(tmpl[i:start])

		end := strings.IndexByte(tmpl[start+1:], '}')
		if end < 0 {
			appendVerbatim(tmpl[start:])
			break
		}
		end += start + 1

		token := tmpl[start+1 : end]
		if kind, ok := tokenNames[token]; ok {
			if len(handlers) >= maxHandlers {
				return nil, rcerror.New(rcerror.Error, "format template exceeds maximum handler count")
			}
			handlers = append(handlers, handlerEntry{kind: kind})
		} else {
			appendVerbatim(tmpl[start : end+1])
		}
		i = end + 1
	}

	if len(handlers) > maxHandlers {
		return nil, rcerror.New(rcerror.Error, "format template exceeds maximum handler count")
	}
	return handlers, nil
}

// resolveEscapes expands the template-level backslash escapes the spec
// recognizes: \a \b \n \r \t and the literal four-character \x1b.
func resolveEscapes(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		if s[i] != '\\' || i+1 >= len(s) {
			b.WriteByte(s[i])
			continue
		}
		if strings.HasPrefix(s[i:], `\x1b`) {
			b.WriteByte(0x1b)
			i += 3
			continue
		}
		switch s[i+1] {
		case 'a':
			b.WriteByte('\a')
			i++
		case 'b':
			b.WriteByte('\b')
			i++
		case 'n':
			b.WriteByte('\n')
			i++
		case 'r':
			b.WriteByte('\r')
			i++
		case 't':
			b.WriteByte('\t')
			i++
		default:
			b.WriteByte(s[i])
		}
	}
	return b.String()
}
