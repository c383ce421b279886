package graphics

import (
	"fmt"

	"github.com/go-gl/gl/v4.1-core/gl"
)

// GLError is a code returned by glGetError
type GLError uint32

func (e GLError) Error() string {
	switch uint32(e) {
	case gl.INVALID_ENUM:
		return "gl: invalid enum"
	case gl.INVALID_VALUE:
		return "gl: invalid value"
	case gl.INVALID_OPERATION:
		return "gl: invalid operation"
	case gl.INVALID_FRAMEBUFFER_OPERATION:
		return "gl: invalid framebuffer operation"
	case gl.OUT_OF_MEMORY:
		return "gl: out of memory"
	}
	return fmt.Sprintf("gl: error 0x%04x", uint32(e))
}
