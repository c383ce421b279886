package preview

import (
	"time"

	"github.com/go-gl/mathgl/mgl32"
)

// Setter is the subset of the shader's uniform setters Uniforms needs
type Setter interface {
	SetFloat(name string, value float32)
	SetInt(name string, value int32)
	SetVector3(name string, v mgl32.Vec3)
	SetVector4(name string, v mgl32.Vec4)
}

// Uniforms holds the ShaderToy inputs for one frame
type Uniforms struct {
	Resolution mgl32.Vec3 // iResolution: width, height, 0
	Time       float32    // iTime
	TimeDelta  float32    // iTimeDelta
	FrameRate  float32    // iFrameRate
	Frame      int32      // iFrame
	Mouse      mgl32.Vec4 // iMouse
	Date       mgl32.Vec4 // iDate: year, month (0-based), day, seconds since midnight
}

// NewUniforms builds the uniform set for a frame of the given framebuffer size
func NewUniforms(width, height int, tick Tick, mouse mgl32.Vec4, now time.Time) Uniforms {
	u := Uniforms{
		Resolution: mgl32.Vec3{float32(width), float32(height), 0},
		Time:       float32(tick.Elapsed),
		TimeDelta:  float32(tick.Delta),
		Frame:      int32(tick.Frame),
		Mouse:      mouse,
		Date:       Date(now),
	}
	if tick.Delta > 0 {
		u.FrameRate = float32(1 / tick.Delta)
	}
	return u
}

// Date encodes t the way iDate expects
func Date(t time.Time) mgl32.Vec4 {
	midnight := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
	return mgl32.Vec4{
		float32(t.Year()),
		float32(t.Month() - 1),
		float32(t.Day()),
		float32(t.Sub(midnight).Seconds()),
	}
}

// Apply sets iResolution and iTime, and the rest of the ShaderToy inputs when extended is set.
func (u Uniforms) Apply(s Setter, extended bool) {
	s.SetVector3("iResolution", u.Resolution)
	s.SetFloat("iTime", u.Time)
	if !extended {
		return
	}
	s.SetFloat("iTimeDelta", u.TimeDelta)
	s.SetFloat("iFrameRate", u.FrameRate)
	s.SetInt("iFrame", u.Frame)
	s.SetVector4("iMouse", u.Mouse)
	s.SetVector4("iDate", u.Date)
}
