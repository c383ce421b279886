package mesh

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
)

// Status classifies the outcome of Load
type Status int

const (
	Loaded Status = iota
	NotFound
	Malformed
)

func (s Status) String() string {
	switch s {
	case Loaded:
		return "loaded"
	case NotFound:
		return "not found"
	case Malformed:
		return "malformed"
	}
	return "unknown"
}

var (
	// ErrNoTexCoords is reported when texture coordinates were requested but a sub-mesh has none.
	ErrNoTexCoords = errors.New("mesh has no texture coordinates")
	// ErrUnsupported is reported for file extensions without an importer.
	ErrUnsupported = errors.New("unsupported mesh format")
)

// Result is the outcome of loading a mesh file. Mesh is empty unless Status is Loaded.
type Result struct {
	Mesh   Mesh
	Status Status
	Err    error
	// SubMeshes is the number of source chunks merged into Mesh
	SubMeshes int
}

// OK reports whether the mesh was loaded
func (r Result) OK() bool {
	return r.Status == Loaded
}

type importer func(path string) ([]SubMesh, error)

var importers = map[string]importer{
	".obj":  importOBJ,
	".gltf": importGLTF,
	".glb":  importGLTF,
}

// Load imports the mesh at path, post-processes every sub-mesh and merges them
// into one flat mesh carrying the requested attributes. It never panics; failures
// are reported through the returned Result and logged.
func Load(path string, attrs Attributes) Result {
	if _, err := os.Stat(path); err != nil {
		slog.Warn("model file does not exist", "path", path, "error", err)
		return Result{Status: NotFound, Err: fmt.Errorf("model file %s: %w", path, err)}
	}

	imp, ok := importers[strings.ToLower(filepath.Ext(path))]
	if !ok {
		err := fmt.Errorf("%w: %s", ErrUnsupported, filepath.Ext(path))
		slog.Error("can not open model", "path", path, "error", err)
		return Result{Status: Malformed, Err: err}
	}

	subs, err := imp(path)
	if err != nil {
		slog.Error("can not open model", "path", path, "error", err)
		return Result{Status: Malformed, Err: fmt.Errorf("import %s: %w", path, err)}
	}

	for i := range subs {
		subs[i], err = prepare(subs[i], attrs)
		if err != nil {
			slog.Error("can not prepare model", "path", path, "error", err)
			return Result{Status: Malformed, Err: err}
		}
	}

	m, err := Merge(subs, attrs)
	if err != nil {
		slog.Error("can not merge model", "path", path, "error", err)
		return Result{Status: Malformed, Err: err}
	}
	m = m.Strip(attrs)

	slog.Debug("model loaded",
		"path", path,
		"submeshes", len(subs),
		"vertices", m.VertexCount(),
		"triangles", m.TriangleCount(),
	)
	return Result{Mesh: m, Status: Loaded, SubMeshes: len(subs)}
}
