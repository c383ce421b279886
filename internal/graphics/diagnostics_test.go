package graphics

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func newTestDiagnostics() (*Diagnostics, *bytes.Buffer) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))
	return NewDiagnostics(logger), &buf
}

func TestDiagnosticsLogsEachNameOnce(t *testing.T) {
	d, buf := newTestDiagnostics()

	assert.True(t, d.UniformNotFound("iMouse"))
	assert.False(t, d.UniformNotFound("iMouse"))
	assert.True(t, d.UniformNotFound("iDate"))
	assert.False(t, d.UniformNotFound("iDate"))

	out := buf.String()
	assert.Equal(t, 1, strings.Count(out, "name=iMouse"))
	assert.Equal(t, 1, strings.Count(out, "name=iDate"))
	assert.Equal(t, []string{"iDate", "iMouse"}, d.Missing())
}

func TestDiagnosticsInstancesAreIndependent(t *testing.T) {
	a, _ := newTestDiagnostics()
	b, bufB := newTestDiagnostics()

	a.UniformNotFound("iTime")
	assert.True(t, b.UniformNotFound("iTime"))
	assert.Contains(t, bufB.String(), "name=iTime")
}

func TestDiagnosticsReset(t *testing.T) {
	d, buf := newTestDiagnostics()
	d.UniformNotFound("iFrame")
	d.Reset()
	assert.Empty(t, d.Missing())
	assert.True(t, d.UniformNotFound("iFrame"))
	assert.Equal(t, 2, strings.Count(buf.String(), "name=iFrame"))
}
