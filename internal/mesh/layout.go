package mesh

// Kind identifies one per-vertex attribute array
type Kind int

const (
	KindPosition Kind = iota
	KindNormal
	KindTangent
	KindUV
	KindBitangent
)

func (k Kind) String() string {
	switch k {
	case KindPosition:
		return "position"
	case KindNormal:
		return "normal"
	case KindTangent:
		return "tangent"
	case KindUV:
		return "uv"
	case KindBitangent:
		return "bitangent"
	}
	return "unknown"
}

// Components returns the number of float32 components per vertex
func (k Kind) Components() int32 {
	if k == KindUV {
		return 2
	}
	return 3
}

// Binding pairs an attribute kind with the vertex attribute slot it is bound to
type Binding struct {
	Kind Kind
	Slot uint32
}

// Layout computes the slot assignment for attrs. Position always takes slot 0;
// enabled kinds follow in the order normal, tangent, uv, bitangent, each on the
// next free slot.
func Layout(attrs Attributes) []Binding {
	order := []struct {
		kind    Kind
		enabled bool
	}{
		{KindPosition, true},
		{KindNormal, attrs.Normal},
		{KindTangent, attrs.Tangent},
		{KindUV, attrs.UV},
		{KindBitangent, attrs.Bitangent},
	}

	layout := make([]Binding, 0, len(order))
	var slot uint32
	for _, o := range order {
		if !o.enabled {
			continue
		}
		layout = append(layout, Binding{Kind: o.kind, Slot: slot})
		slot++
	}
	return layout
}

// Data returns the flattened float32 array for kind.
func (m *Mesh) Data(kind Kind) []float32 {
	switch kind {
	case KindPosition:
		return flatten3(m.Positions)
	case KindNormal:
		return flatten3(m.Normals)
	case KindTangent:
		return flatten3(m.Tangents)
	case KindBitangent:
		return flatten3(m.Bitangents)
	case KindUV:
		out := make([]float32, 0, len(m.UVs)*2)
		for _, v := range m.UVs {
			out = append(out, v[0], v[1])
		}
		return out
	}
	return nil
}
