package picking

import (
	"github.com/Faultbox/orrery/internal/engine/lighting"
	"github.com/Faultbox/orrery/internal/engine/scene"
)

// Highlighter tints the emissive color of the mesh under the pointer and
// restores the original emissive color when the pointer moves away.
type Highlighter struct {
	Color lighting.Color

	current *scene.Mesh
	saved   lighting.Color
}

// NewHighlighter creates a highlighter using the given emissive color.
func NewHighlighter(color lighting.Color) *Highlighter {
	return &Highlighter{Color: color}
}

// Current returns the highlighted mesh, or nil.
func (h *Highlighter) Current() *scene.Mesh {
	return h.current
}

// Update highlights the nearest hit that has a material. hits must be sorted
// nearest first. Returns true when the highlighted mesh changed.
func (h *Highlighter) Update(hits []Hit) bool {
	var nearest *scene.Mesh
	for _, hit := range hits {
		if hit.Mesh != nil && hit.Mesh.Material != nil {
			nearest = hit.Mesh
			break
		}
	}
	if nearest == nil {
		if h.current == nil {
			return false
		}
		h.Clear()
		return true
	}

	if nearest == h.current {
		return false
	}

	h.restore()
	h.current = nearest
	h.saved = nearest.Material.Emissive
	nearest.Material.Emissive = h.Color
	return true
}

// Clear restores the highlighted mesh, if any.
func (h *Highlighter) Clear() {
	h.restore()
	h.current = nil
}

func (h *Highlighter) restore() {
	if h.current != nil && h.current.Material != nil {
		h.current.Material.Emissive = h.saved
	}
}
