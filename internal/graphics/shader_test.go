package graphics

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

// fakeProgram resolves a fixed set of uniform names and counts lookups.
type fakeProgram struct {
	uniforms map[string]int32
	lookups  map[string]int
}

func (f *fakeProgram) lookup(_ uint32, name string) int32 {
	f.lookups[name]++
	if loc, ok := f.uniforms[name]; ok {
		return loc
	}
	return -1
}

func TestShaderLocationReportsMissingOnce(t *testing.T) {
	d, buf := newTestDiagnostics()
	prog := &fakeProgram{
		uniforms: map[string]int32{"iResolution": 0, "iTime": 1},
		lookups:  map[string]int{},
	}
	s := &Shader{id: 3, diag: d, lookup: prog.lookup}

	assert.Equal(t, int32(1), s.location("iTime"))
	assert.Equal(t, int32(-1), s.location("iChannel0"))
	assert.Equal(t, int32(-1), s.location("iChannel0"))

	assert.Equal(t, 1, strings.Count(buf.String(), "name=iChannel0"))
	assert.NotContains(t, buf.String(), "name=iTime")
	assert.Equal(t, []string{"iChannel0"}, d.Missing())
}

func TestShaderLocationIsNotCached(t *testing.T) {
	d, _ := newTestDiagnostics()
	prog := &fakeProgram{uniforms: map[string]int32{"iTime": 4}, lookups: map[string]int{}}
	s := &Shader{id: 3, diag: d, lookup: prog.lookup}

	for i := 0; i < 3; i++ {
		s.location("iTime")
	}
	assert.Equal(t, 3, prog.lookups["iTime"])
}

func TestNewShaderMissingFilesKeepsZeroProgram(t *testing.T) {
	d, _ := newTestDiagnostics()
	s := NewShader(t.TempDir()+"/missing.vert", t.TempDir()+"/missing.frag", d)
	assert.Equal(t, uint32(0), s.ID())
	assert.Error(t, s.Err())

	v, f := s.Paths()
	assert.True(t, strings.HasSuffix(v, "missing.vert"))
	assert.True(t, strings.HasSuffix(f, "missing.frag"))
}

func TestReloadFailureKeepsProgram(t *testing.T) {
	d, _ := newTestDiagnostics()
	s := NewShader(t.TempDir()+"/missing.vert", t.TempDir()+"/missing.frag", d)
	s.id = 7
	d.UniformNotFound("iMouse")

	err := s.Reload()
	assert.Error(t, err)
	assert.Equal(t, uint32(7), s.ID())
	// only a successful rebuild clears the reported names
	assert.False(t, d.UniformNotFound("iMouse"))
}
