package graphics

import (
	"log/slog"
	"sort"
	"sync"
)

// Diagnostics reports unresolved uniform names. Each unique name is logged the
// first time it is seen; later reports of the same name are silent until
// Reset. Shader.Reload resets its reporter after a successful rebuild, so the
// memory lasts for one program build.
type Diagnostics struct {
	mu      sync.Mutex
	logger  *slog.Logger
	missing map[string]struct{}
}

// NewDiagnostics creates a reporter writing to logger, or to slog.Default when logger is nil.
func NewDiagnostics(logger *slog.Logger) *Diagnostics {
	if logger == nil {
		logger = slog.Default()
	}
	return &Diagnostics{
		logger:  logger,
		missing: make(map[string]struct{}),
	}
}

// UniformNotFound records name as unresolved and reports whether this was its first occurrence.
func (d *Diagnostics) UniformNotFound(name string) bool {
	d.mu.Lock()
	_, seen := d.missing[name]
	if !seen {
		d.missing[name] = struct{}{}
	}
	d.mu.Unlock()

	if seen {
		return false
	}
	d.logger.Warn("uniform not found", "name", name)
	return true
}

// Missing returns the unresolved names reported so far, sorted
func (d *Diagnostics) Missing() []string {
	d.mu.Lock()
	defer d.mu.Unlock()

	out := make([]string, 0, len(d.missing))
	for name := range d.missing {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

// Reset forgets every reported name. Used after a program is rebuilt.
func (d *Diagnostics) Reset() {
	d.mu.Lock()
	defer d.mu.Unlock()
	clear(d.missing)
}
