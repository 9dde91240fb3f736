package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/npillmayer/axes/ticks"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTimeCommand(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"time", "1970-01-01T00:00:00Z", "1971-01-01T00:00:00Z", "--bands"})
	require.NoError(t, cmd.Execute())
	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	require.Len(t, lines, 13+2)
	assert.Equal(t, "1970-01-01T00:00:00Z\tJan", lines[0])
	assert.Equal(t, "[1970-01-01T00:00:00Z, 1971-01-01T00:00:00Z)\t1970", lines[13])
}

func TestGridCommand(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	pixels = 500
	var out bytes.Buffer
	printGridTicks(&out, ticks.NewGrid().SetAxisLabel("Depth"), newAxis(0, 50000), false)
	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	require.Len(t, lines, 7)
	assert.Equal(t, "Depth (x 1,000)", lines[0])
	assert.Equal(t, "10000\t10", lines[2])
}

func TestInvalidArguments(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	cmd := newRootCmd()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"time", "yesterday", "today"})
	assert.Error(t, cmd.Execute())
	cmd.SetArgs([]string{"grid", "0"})
	assert.Error(t, cmd.Execute())
}
