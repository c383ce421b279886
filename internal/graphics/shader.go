package graphics

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"
)

// Shader is a linked vertex+fragment program with name-keyed uniform setters.
// Uniform locations are resolved on every call.
type Shader struct {
	id           uint32
	vertexPath   string
	fragmentPath string
	build        func() (uint32, error)
	err          error

	diag   *Diagnostics
	lookup func(program uint32, name string) int32
}

// NewShader compiles and links the program from two source files. Failures are
// logged with the driver's diagnostic text and kept in Err; the shader is still
// returned, possibly with program 0, so draws fail later instead of here.
func NewShader(vertexPath, fragmentPath string, diag *Diagnostics) *Shader {
	if diag == nil {
		diag = NewDiagnostics(nil)
	}
	s := &Shader{
		vertexPath:   vertexPath,
		fragmentPath: fragmentPath,
		diag:         diag,
		lookup:       uniformLocation,
	}
	s.build = func() (uint32, error) {
		return buildProgram(vertexPath, fragmentPath)
	}
	s.id, s.err = s.build()
	return s
}

// NewShaderSource compiles and links a program from in-memory sources; name
// labels the stages in logs. Failures are handled as in NewShader.
func NewShaderSource(name, vertexSrc, fragmentSrc string, diag *Diagnostics) *Shader {
	if diag == nil {
		diag = NewDiagnostics(nil)
	}
	s := &Shader{
		vertexPath:   name + ".vert",
		fragmentPath: name + ".frag",
		diag:         diag,
		lookup:       uniformLocation,
	}
	s.build = func() (uint32, error) {
		return compileProgram(vertexSrc, fragmentSrc, s.vertexPath, s.fragmentPath)
	}
	s.id, s.err = s.build()
	return s
}

// Reload rebuilds the program from the same sources. If the rebuild fails the
// previous program stays in use.
func (s *Shader) Reload() error {
	id, err := s.build()
	if err != nil {
		if id != 0 {
			gl.DeleteProgram(id)
		}
		slog.Warn("shader reload failed, keeping previous program", "error", err)
		return err
	}
	if s.id != 0 {
		gl.DeleteProgram(s.id)
	}
	s.id = id
	s.err = nil
	s.diag.Reset()
	slog.Info("shader reloaded", "vertex", s.vertexPath, "fragment", s.fragmentPath)
	return nil
}

// ID returns the program handle
func (s *Shader) ID() uint32 {
	return s.id
}

// Err returns the error of the last build, if any
func (s *Shader) Err() error {
	return s.err
}

// Paths returns the vertex and fragment source paths, or the labels of an in-memory shader
func (s *Shader) Paths() (string, string) {
	return s.vertexPath, s.fragmentPath
}

// Use activates the shader program
func (s *Shader) Use() {
	gl.UseProgram(s.id)
}

// Delete releases the program
func (s *Shader) Delete() {
	if s.id != 0 {
		gl.DeleteProgram(s.id)
		s.id = 0
	}
}

func (s *Shader) location(name string) int32 {
	loc := s.lookup(s.id, name)
	if loc == -1 {
		s.diag.UniformNotFound(name)
	}
	return loc
}

// SetMatrix4 sets a 4x4 matrix uniform
func (s *Shader) SetMatrix4(name string, m mgl32.Mat4) {
	gl.UniformMatrix4fv(s.location(name), 1, false, &m[0])
}

// SetBool sets a boolean uniform
func (s *Shader) SetBool(name string, value bool) {
	var intValue int32
	if value {
		intValue = 1
	}
	s.SetInt(name, intValue)
}

// SetInt sets an integer uniform
func (s *Shader) SetInt(name string, value int32) {
	gl.Uniform1i(s.location(name), value)
}

// SetFloat sets a float uniform
func (s *Shader) SetFloat(name string, value float32) {
	gl.Uniform1f(s.location(name), value)
}

// SetVector2 sets a vec2 uniform
func (s *Shader) SetVector2(name string, v mgl32.Vec2) {
	gl.Uniform2fv(s.location(name), 1, &v[0])
}

// SetVector3 sets a vec3 uniform
func (s *Shader) SetVector3(name string, v mgl32.Vec3) {
	gl.Uniform3fv(s.location(name), 1, &v[0])
}

// SetVector4 sets a vec4 uniform
func (s *Shader) SetVector4(name string, v mgl32.Vec4) {
	gl.Uniform4fv(s.location(name), 1, &v[0])
}

// SetVector3Array sets a vec3[] uniform
func (s *Shader) SetVector3Array(name string, vs []mgl32.Vec3) {
	loc := s.location(name)
	if len(vs) == 0 {
		return
	}
	gl.Uniform3fv(loc, int32(len(vs)), &vs[0][0])
}

// SetVector4Array sets a vec4[] uniform
func (s *Shader) SetVector4Array(name string, vs []mgl32.Vec4) {
	loc := s.location(name)
	if len(vs) == 0 {
		return
	}
	gl.Uniform4fv(loc, int32(len(vs)), &vs[0][0])
}

// SetTexture binds a 2D texture to the given texture unit and points the sampler at it
func (s *Shader) SetTexture(name string, texture uint32, unit uint32) {
	gl.ActiveTexture(gl.TEXTURE0 + unit)
	gl.BindTexture(gl.TEXTURE_2D, texture)
	gl.Uniform1i(s.location(name), int32(unit))
}

func uniformLocation(program uint32, name string) int32 {
	return gl.GetUniformLocation(program, gl.Str(name+"\x00"))
}

// buildProgram reads, compiles and links both stages. Compile errors are logged
// and linking still proceeds; the returned handle is whatever the driver produced.
func buildProgram(vertexPath, fragmentPath string) (uint32, error) {
	vertexSource, err := os.ReadFile(vertexPath)
	if err != nil {
		err = fmt.Errorf("could not read vertex shader file: %w", err)
		slog.Error("impossible to open shader", "path", vertexPath, "error", err)
		return 0, err
	}

	fragmentSource, err := os.ReadFile(fragmentPath)
	if err != nil {
		err = fmt.Errorf("could not read fragment shader file: %w", err)
		slog.Error("impossible to open shader", "path", fragmentPath, "error", err)
		return 0, err
	}

	return compileProgram(string(vertexSource), string(fragmentSource), vertexPath, fragmentPath)
}

func compileProgram(vertexSrc, fragmentSrc, vertexName, fragmentName string) (uint32, error) {
	var errs []string

	vertexShader, err := compileShader(vertexSrc, gl.VERTEX_SHADER)
	if err != nil {
		slog.Error("error when compiling vertex shader", "path", vertexName, "log", err.Error())
		errs = append(errs, err.Error())
	}
	fragmentShader, err := compileShader(fragmentSrc, gl.FRAGMENT_SHADER)
	if err != nil {
		slog.Error("error when compiling fragment shader", "path", fragmentName, "log", err.Error())
		errs = append(errs, err.Error())
	}

	program := gl.CreateProgram()
	gl.AttachShader(program, vertexShader)
	gl.AttachShader(program, fragmentShader)
	gl.LinkProgram(program)

	var status int32
	gl.GetProgramiv(program, gl.LINK_STATUS, &status)
	if status == gl.FALSE {
		log := infoLog(program, gl.GetProgramiv, gl.GetProgramInfoLog)
		slog.Error("error when linking program", "vertex", vertexName, "fragment", fragmentName, "log", log)
		errs = append(errs, "failed to link program: "+log)
	}

	gl.DeleteShader(vertexShader)
	gl.DeleteShader(fragmentShader)

	if len(errs) > 0 {
		return program, fmt.Errorf("%s", strings.Join(errs, "; "))
	}
	return program, nil
}

func compileShader(source string, shaderType uint32) (uint32, error) {
	shader := gl.CreateShader(shaderType)
	csources, free := gl.Strs(source + "\x00")
	gl.ShaderSource(shader, 1, csources, nil)
	free()
	gl.CompileShader(shader)

	var status int32
	gl.GetShaderiv(shader, gl.COMPILE_STATUS, &status)
	if status == gl.FALSE {
		log := infoLog(shader, gl.GetShaderiv, gl.GetShaderInfoLog)
		return shader, fmt.Errorf("failed to compile shader: %v", log)
	}
	return shader, nil
}

func infoLog(
	object uint32,
	getiv func(uint32, uint32, *int32),
	getLog func(uint32, int32, *int32, *uint8),
) string {
	var logLength int32
	getiv(object, gl.INFO_LOG_LENGTH, &logLength)
	if logLength == 0 {
		return ""
	}
	log := strings.Repeat("\x00", int(logLength+1))
	getLog(object, logLength, nil, gl.Str(log))
	return strings.TrimRight(log, "\x00")
}
