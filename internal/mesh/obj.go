package mesh

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/g3n/engine/loader/obj"
	"github.com/go-gl/mathgl/mgl32"
)

// importOBJ reads a Wavefront OBJ file. Every object (or group) becomes one
// sub-mesh; polygon faces are fan-triangulated.
func importOBJ(path string) ([]SubMesh, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open obj: %w", err)
	}
	defer f.Close()

	// materials are not used, so no .mtl reader is passed
	dec, err := obj.DecodeReader(f, nil)
	if err != nil {
		return nil, fmt.Errorf("decode obj: %w", err)
	}
	for _, w := range dec.Warnings {
		slog.Debug("obj decoder warning", "path", path, "warning", w)
	}

	return objSubMeshes(dec), nil
}

func objSubMeshes(dec *obj.Decoder) []SubMesh {
	positions := []float32(dec.Vertices)
	normals := []float32(dec.Normals)
	uvs := []float32(dec.Uvs)

	subs := make([]SubMesh, 0, len(dec.Objects))
	for _, o := range dec.Objects {
		s := SubMesh{Name: o.Name}
		hasNormals, hasUVs := true, true

		for _, face := range o.Faces {
			corners := make([]uint32, 0, len(face.Vertices))
			for c, vi := range face.Vertices {
				if vi < 0 || vi*3+2 >= len(positions) {
					continue
				}
				corners = append(corners, uint32(len(s.Positions)))
				s.Positions = append(s.Positions, mgl32.Vec3{positions[vi*3], positions[vi*3+1], positions[vi*3+2]})

				n := mgl32.Vec3{}
				if c < len(face.Normals) && validIndex(face.Normals[c], 3, len(normals)) {
					ni := face.Normals[c]
					n = mgl32.Vec3{normals[ni*3], normals[ni*3+1], normals[ni*3+2]}
				} else {
					hasNormals = false
				}
				s.Normals = append(s.Normals, n)

				uv := mgl32.Vec2{}
				if c < len(face.Uvs) && validIndex(face.Uvs[c], 2, len(uvs)) {
					ti := face.Uvs[c]
					uv = mgl32.Vec2{uvs[ti*2], uvs[ti*2+1]}
				} else {
					hasUVs = false
				}
				s.UVs = append(s.UVs, uv)
			}
			s.Indices = append(s.Indices, Fan(corners)...)
		}

		if !hasNormals {
			s.Normals = nil
		}
		if !hasUVs {
			s.UVs = nil
		}
		if len(s.Indices) == 0 {
			continue
		}
		subs = append(subs, s)
	}
	return subs
}

func validIndex(i, stride, size int) bool {
	return i >= 0 && i*stride+stride-1 < size
}
