package preview

import (
	"fmt"
	"strings"

	"github.com/go-gl/mathgl/mgl32"
)

// TextDrawer renders lines of text in window pixel space
type TextDrawer interface {
	SetViewport(width, height int)
	RenderLines(lines []string, x, y, scale float32, color mgl32.Vec3)
}

// Stats is an on-screen readout of frame rate, time and unresolved uniforms
type Stats struct {
	Text    TextDrawer
	Visible bool
	// FPS reports the current frame rate average
	FPS func() float64
	// Missing reports uniform names the program does not declare
	Missing func() []string
}

// Lines returns the readout for one frame
func (s *Stats) Lines(u Uniforms) []string {
	var fps float64
	if s.FPS != nil {
		fps = s.FPS()
	}
	lines := []string{
		fmt.Sprintf("%.1f fps", fps),
		fmt.Sprintf("iTime %.2f  frame %d", u.Time, u.Frame),
		fmt.Sprintf("%.0fx%.0f", u.Resolution.X(), u.Resolution.Y()),
	}
	if s.Missing != nil {
		if missing := s.Missing(); len(missing) > 0 {
			lines = append(lines, "missing "+strings.Join(missing, " "))
		}
	}
	return lines
}

// Draw renders the readout in the top-left corner when visible
func (s *Stats) Draw(u Uniforms) {
	if !s.Visible || s.Text == nil {
		return
	}
	s.Text.SetViewport(int(u.Resolution.X()), int(u.Resolution.Y()))
	s.Text.RenderLines(s.Lines(u), 8, 20, 1, mgl32.Vec3{1, 1, 1})
}
