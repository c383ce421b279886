package graphics

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
)

// MaxChannels is the number of iChannel samplers a preview exposes
const MaxChannels = 4

// Channels holds the textures bound to iChannel0..iChannel3. Textures loaded
// from the same path are shared between channels.
type Channels struct {
	slots [MaxChannels]*Texture
	cache map[string]*Texture
	load  func(path string) (*Texture, error)
}

// NewChannels creates an empty channel set
func NewChannels() *Channels {
	return &Channels{
		cache: make(map[string]*Texture),
		load:  LoadTexture,
	}
}

// Load assigns the texture at path to channel slot. An empty path clears the slot.
func (c *Channels) Load(slot int, path string) error {
	if slot < 0 || slot >= MaxChannels {
		return fmt.Errorf("channel %d out of range [0,%d)", slot, MaxChannels)
	}
	if path == "" {
		c.slots[slot] = nil
		return nil
	}

	if tex, ok := c.cache[path]; ok {
		c.slots[slot] = tex
		return nil
	}

	tex, err := c.load(path)
	if err != nil {
		return fmt.Errorf("channel %d: %w", slot, err)
	}
	c.cache[path] = tex
	c.slots[slot] = tex
	return nil
}

// texture returns the texture on slot, or nil
func (c *Channels) texture(slot int) *Texture {
	if slot < 0 || slot >= MaxChannels {
		return nil
	}
	return c.slots[slot]
}

// Resolutions returns iChannelResolution: width, height and pixel aspect 1 per
// loaded slot, zero for empty slots.
func (c *Channels) Resolutions() []mgl32.Vec3 {
	res := make([]mgl32.Vec3, MaxChannels)
	for i, tex := range c.slots {
		if tex != nil {
			res[i] = mgl32.Vec3{float32(tex.Width), float32(tex.Height), 1}
		}
	}
	return res
}

// Bound reports whether any slot holds a texture
func (c *Channels) Bound() bool {
	for _, tex := range c.slots {
		if tex != nil {
			return true
		}
	}
	return false
}

// Bind points the iChannelN samplers of s at the loaded textures, one texture unit per slot
func (c *Channels) Bind(s *Shader) {
	if !c.Bound() {
		return
	}
	for i := range MaxChannels {
		tex := c.texture(i)
		if tex == nil {
			continue
		}
		s.SetTexture(fmt.Sprintf("iChannel%d", i), tex.ID, uint32(i))
	}
	s.SetVector3Array("iChannelResolution", c.Resolutions())
}

// Delete releases every cached texture
func (c *Channels) Delete() {
	for path, tex := range c.cache {
		tex.Delete()
		delete(c.cache, path)
	}
	c.slots = [MaxChannels]*Texture{}
}
