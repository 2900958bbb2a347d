package logger

import (
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/mattn/go-colorable"
	"github.com/mattn/go-isatty"

	"github.com/ros2/rcutils-go/allocator"
	"github.com/ros2/rcutils-go/rcerror"
)

const defaultFormat = "[{severity}] [{time}] [{name}]: {message}"

// state is the logger's process-wide mutable configuration. Per
// spec.md §5 it is the one piece of global state read from many
// goroutines: the severity table is guarded by its own RWMutex, and the
// remaining fields (including the "initialized" flag checked by
// Initialize) by guardMu.
type state struct {
	guardMu     sync.Mutex
	initialized bool
	alloc       allocator.Allocator
	table       *severityTable
	handler     Handler
	writer      io.Writer
	handlers    []handlerEntry
	colorize    bool
}

var global = &state{table: newSeverityTable()}

// Initialize lazily configures the process-wide logger from the
// environment, using the default allocator. Safe to call repeatedly;
// only the first call has effect, matching the spec's idempotence
// requirement.
func Initialize() error {
	return InitializeWithAllocator(allocator.DefaultAllocator())
}

// InitializeWithAllocator is Initialize, but with an explicit allocator.
// The allocator is validated and recorded; the severity table and the
// per-call-site throttle registry are Go maps and do not allocate through
// it.
func InitializeWithAllocator(alloc allocator.Allocator) error {
	global.guardMu.Lock()
	defer global.guardMu.Unlock()
	if global.initialized {
		return nil
	}

	if !allocator.IsValid(&alloc) {
		return rcerror.New(rcerror.InvalidArgument, "invalid allocator")
	}

	format := envOr("RCUTILS_CONSOLE_OUTPUT_FORMAT", defaultFormat)
	handlers, err := compileFormat(format)
	if err != nil {
		return err
	}

	useStdout, err := envBool("RCUTILS_LOGGING_USE_STDOUT", false)
	if err != nil {
		return err
	}

	if _, err := envBool("RCUTILS_LOGGING_BUFFERED_STREAM", false); err != nil {
		return err
	}

	if os.Getenv("RCUTILS_CONSOLE_STDOUT_LINE_BUFFERED") != "" {
		fmt.Fprintln(os.Stderr, "warning: RCUTILS_CONSOLE_STDOUT_LINE_BUFFERED is deprecated")
	}

	var out *os.File
	if useStdout {
		out = os.Stdout
	} else {
		out = os.Stderr
	}

	colorize, err := resolveColorize(out)
	if err != nil {
		return err
	}

	var writer io.Writer = out
	if colorize {
		writer = colorable.NewColorable(out)
	}

	global.alloc = alloc
	global.handlers = handlers
	global.writer = writer
	global.colorize = colorize
	global.handler = defaultHandler(writer, handlers, colorize)
	global.initialized = true
	return nil
}

// resolveColorize implements RCUTILS_COLORIZED_OUTPUT: "0" forces off,
// "1" forces on, empty auto-detects via isatty, matching the teacher
// pack's terminal-detection library.
func resolveColorize(f *os.File) (bool, error) {
	v := os.Getenv("RCUTILS_COLORIZED_OUTPUT")
	switch v {
	case "":
		fd := f.Fd()
		return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd), nil
	case "0":
		return false, nil
	case "1":
		return true, nil
	default:
		return false, rcerror.New(rcerror.InvalidArgument, "RCUTILS_COLORIZED_OUTPUT must be \"0\", \"1\", or unset")
	}
}

func envOr(name, def string) string {
	if v, ok := os.LookupEnv(name); ok {
		return v
	}
	return def
}

func envBool(name string, def bool) (bool, error) {
	v, ok := os.LookupEnv(name)
	if !ok || v == "" {
		return def, nil
	}
	switch v {
	case "0":
		return false, nil
	case "1":
		return true, nil
	default:
		return false, rcerror.New(rcerror.InvalidArgument, fmt.Sprintf("%s must be \"0\", \"1\", or unset", name))
	}
}

// Shutdown frees the severity table and per-call-site throttle state,
// and returns the logger to its uninitialized state.
func Shutdown() {
	global.guardMu.Lock()
	defer global.guardMu.Unlock()
	global.table.Reset()
	resetCallSites()
	global.initialized = false
	global.handler = nil
	global.writer = nil
	global.handlers = nil
}

// SetHandler installs a replacement output handler.
func SetHandler(h Handler) {
	global.guardMu.Lock()
	defer global.guardMu.Unlock()
	global.handler = h
}

// SetLevel sets the severity threshold for name ("" updates the
// process default).
func SetLevel(name string, sev Severity) {
	global.table.Set(name, sev)
}

// IsEnabledFor is the hot-path enablement check.
func IsEnabledFor(name string, sev Severity) bool {
	return global.table.IsEnabledFor(name, sev)
}
