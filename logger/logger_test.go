package logger

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScenario1_SeverityHierarchy(t *testing.T) {
	table := newSeverityTable()
	table.Set("x", Warn)
	table.Set("x.y.z", Error)

	assert.Equal(t, Error, table.Effective("x.y.z.w"))
	assert.Equal(t, Error, table.Effective("x.y.z"))
	assert.Equal(t, Warn, table.Effective("x.y"))
	assert.Equal(t, Warn, table.Effective("x"))
	assert.Equal(t, Info, table.Effective("other"))
}

func TestSeverityTable_SetDoesNotPurgeUserSetDescendants(t *testing.T) {
	table := newSeverityTable()
	table.Set("x.y", Error)
	table.Set("x", Warn)
	assert.Equal(t, Error, table.Effective("x.y"))
}

func TestSeverityTable_SetPurgesCachedDescendantsOnly(t *testing.T) {
	table := newSeverityTable()
	table.Set("x", Warn)
	assert.Equal(t, Warn, table.Effective("x.y.z")) // caches x.y.z -> Warn
	table.Set("x", Error)
	assert.Equal(t, Error, table.Effective("x.y.z")) // stale cache purged
}

func TestSeverityTable_EmptyNameSetsDefault(t *testing.T) {
	table := newSeverityTable()
	table.Set("", Error)
	assert.Equal(t, Error, table.Effective("anything"))
}

func TestIsEnabledFor(t *testing.T) {
	table := newSeverityTable()
	table.Set("x", Warn)
	assert.True(t, table.IsEnabledFor("x", Error))
	assert.False(t, table.IsEnabledFor("x", Debug))
}

func TestScenario6_ColorizationOffAndTokens(t *testing.T) {
	handlers, err := compileFormat("[{severity}] [{name}]: {message}")
	require.NoError(t, err)

	var buf bytes.Buffer
	h := defaultHandler(&buf, handlers, false)
	h(Record{
		Severity: Debug,
		Name:     "a",
		Message:  formatMessage("hi %d", 7),
	})

	assert.Equal(t, "[DEBUG] [a]: hi 7\n", buf.String())
}

func TestCompileFormat_UnrecognizedTokenIsVerbatim(t *testing.T) {
	handlers, err := compileFormat("{nope}{message}")
	require.NoError(t, err)
	var buf bytes.Buffer
	h := defaultHandler(&buf, handlers, false)
	h(Record{Message: "x"})
	assert.Equal(t, "{nope}x\n", buf.String())
}

func TestCompileFormat_BackslashEscapes(t *testing.T) {
	handlers, err := compileFormat(`a\tb\n`)
	require.NoError(t, err)
	var buf bytes.Buffer
	h := defaultHandler(&buf, handlers, false)
	h(Record{})
	assert.Equal(t, "a\tb\n\n", buf.String())
}

func TestLog_EndToEnd(t *testing.T) {
	origTable, origHandler := global.table, global.handler
	defer func() {
		global.table, global.handler = origTable, origHandler
	}()

	global.table = newSeverityTable()
	global.table.Set("", Info)

	var buf bytes.Buffer
	handlers, err := compileFormat("{severity}: {message}")
	require.NoError(t, err)
	global.handler = defaultHandler(&buf, handlers, false)

	Log(Location{}, Debug, "", "skipped") // below threshold
	Log(Location{}, Info, "", "hello %s", "world")

	assert.Equal(t, "INFO: hello world\n", buf.String())
}

func TestThrottle_FiresAtMostOncePerPeriod(t *testing.T) {
	defer resetCallSites()
	cs := callSiteFor(t.Name())
	assert.True(t, cs.throttle(time.Hour))
	assert.False(t, cs.throttle(time.Hour))
}

func TestOnce_FiresExactlyOnce(t *testing.T) {
	defer resetCallSites()
	cs := callSiteFor(t.Name())
	assert.True(t, cs.once())
	assert.False(t, cs.once())
	assert.False(t, cs.once())
}

func TestSkipFirst_SkipsOnlyFirstCall(t *testing.T) {
	defer resetCallSites()
	cs := callSiteFor(t.Name())
	assert.False(t, cs.skipFirst())
	assert.True(t, cs.skipFirst())
	assert.True(t, cs.skipFirst())
}
