package mesh

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/modeler"
)

// importGLTF reads a glTF 2.0 document (.gltf or .glb). Every triangle primitive
// of every mesh becomes one sub-mesh; points and lines are skipped.
func importGLTF(path string) ([]SubMesh, error) {
	doc, err := gltf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open gltf: %w", err)
	}

	var subs []SubMesh
	for mi, m := range doc.Meshes {
		for pi, prim := range m.Primitives {
			s, ok, err := gltfPrimitive(doc, prim)
			if err != nil {
				return nil, fmt.Errorf("mesh %d primitive %d: %w", mi, pi, err)
			}
			if !ok {
				continue
			}
			s.Name = fmt.Sprintf("%s#%d", m.Name, pi)
			subs = append(subs, s)
		}
	}
	return subs, nil
}

func gltfPrimitive(doc *gltf.Document, prim *gltf.Primitive) (SubMesh, bool, error) {
	var s SubMesh

	switch prim.Mode {
	case gltf.PrimitiveTriangles, gltf.PrimitiveTriangleStrip, gltf.PrimitiveTriangleFan:
	default:
		return s, false, nil
	}

	posIdx, ok := prim.Attributes[gltf.POSITION]
	if !ok {
		return s, false, fmt.Errorf("no POSITION attribute")
	}
	acr, err := accessor(doc, posIdx)
	if err != nil {
		return s, false, fmt.Errorf("POSITION: %w", err)
	}
	positions, err := modeler.ReadPosition(doc, acr, nil)
	if err != nil {
		return s, false, fmt.Errorf("read positions: %w", err)
	}
	s.Positions = toVec3(positions)

	if idx, ok := prim.Attributes[gltf.NORMAL]; ok {
		acr, err := accessor(doc, idx)
		if err != nil {
			return s, false, fmt.Errorf("NORMAL: %w", err)
		}
		normals, err := modeler.ReadNormal(doc, acr, nil)
		if err != nil {
			return s, false, fmt.Errorf("read normals: %w", err)
		}
		s.Normals = toVec3(normals)
	}

	if idx, ok := prim.Attributes[gltf.TEXCOORD_0]; ok {
		acr, err := accessor(doc, idx)
		if err != nil {
			return s, false, fmt.Errorf("TEXCOORD_0: %w", err)
		}
		uvs, err := modeler.ReadTextureCoord(doc, acr, nil)
		if err != nil {
			return s, false, fmt.Errorf("read texture coordinates: %w", err)
		}
		s.UVs = make([]mgl32.Vec2, len(uvs))
		for i, uv := range uvs {
			s.UVs[i] = mgl32.Vec2{uv[0], uv[1]}
		}
	}

	if idx, ok := prim.Attributes[gltf.TANGENT]; ok && len(s.Normals) == len(s.Positions) {
		acr, err := accessor(doc, idx)
		if err != nil {
			return s, false, fmt.Errorf("TANGENT: %w", err)
		}
		tangents, err := modeler.ReadTangent(doc, acr, nil)
		if err != nil {
			return s, false, fmt.Errorf("read tangents: %w", err)
		}
		s.Tangents = make([]mgl32.Vec3, len(tangents))
		s.Bitangents = make([]mgl32.Vec3, len(tangents))
		for i, t := range tangents {
			s.Tangents[i] = mgl32.Vec3{t[0], t[1], t[2]}
			if i < len(s.Normals) {
				// w holds the handedness of the bitangent
				s.Bitangents[i] = s.Normals[i].Cross(s.Tangents[i]).Mul(t[3])
			}
		}
	}

	var indices []uint32
	if prim.Indices != nil {
		acr, err := accessor(doc, *prim.Indices)
		if err != nil {
			return s, false, fmt.Errorf("indices: %w", err)
		}
		indices, err = modeler.ReadIndices(doc, acr, nil)
		if err != nil {
			return s, false, fmt.Errorf("read indices: %w", err)
		}
	} else {
		indices = make([]uint32, len(s.Positions))
		for i := range indices {
			indices[i] = uint32(i)
		}
	}

	switch prim.Mode {
	case gltf.PrimitiveTriangleStrip:
		indices = StripToList(indices)
	case gltf.PrimitiveTriangleFan:
		indices = Fan(indices)
	default:
		indices = indices[:len(indices)-len(indices)%3]
	}
	s.Indices = indices

	return s, len(s.Indices) > 0, nil
}

// accessor returns accessor i after checking that it and the buffer it reads from exist
func accessor(doc *gltf.Document, i int) (*gltf.Accessor, error) {
	if i < 0 || i >= len(doc.Accessors) || doc.Accessors[i] == nil {
		return nil, fmt.Errorf("accessor %d out of range (%d accessors)", i, len(doc.Accessors))
	}
	acr := doc.Accessors[i]
	if acr.BufferView == nil {
		return acr, nil
	}
	bv := *acr.BufferView
	if bv < 0 || bv >= len(doc.BufferViews) || doc.BufferViews[bv] == nil {
		return nil, fmt.Errorf("accessor %d: buffer view %d out of range (%d views)", i, bv, len(doc.BufferViews))
	}
	if b := doc.BufferViews[bv].Buffer; b < 0 || b >= len(doc.Buffers) {
		return nil, fmt.Errorf("accessor %d: buffer %d out of range (%d buffers)", i, b, len(doc.Buffers))
	}
	return acr, nil
}

func toVec3(in [][3]float32) []mgl32.Vec3 {
	out := make([]mgl32.Vec3, len(in))
	for i, v := range in {
		out[i] = mgl32.Vec3(v)
	}
	return out
}
