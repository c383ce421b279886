package input

import (
	"sync"

	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/go-gl/mathgl/mgl32"
)

// Action represents a logical preview action, not a physical key
type Action int

const (
	ActionQuit Action = iota
	ActionReload
	ActionToggleStats
	ActionMouseLeft
	ActionCount // Sentinel value for array sizing
)

// Manager maps physical keys and buttons to logical actions and tracks the
// cursor for the iMouse uniform
type Manager struct {
	mu sync.RWMutex

	keyToActions         map[glfw.Key][]Action
	mouseButtonToActions map[glfw.MouseButton][]Action

	currentState [ActionCount]bool
	justPressed  [ActionCount]bool

	// cursor in framebuffer pixels, origin bottom-left
	cursor mgl32.Vec2
	height float32
	drag   mgl32.Vec2
	click  mgl32.Vec2
}

// NewManager creates a Manager with the default bindings:
// Escape quits, R reloads shaders, V toggles frame stats
func NewManager() *Manager {
	im := &Manager{
		keyToActions:         make(map[glfw.Key][]Action),
		mouseButtonToActions: make(map[glfw.MouseButton][]Action),
	}

	im.BindKey(glfw.KeyEscape, ActionQuit)
	im.BindKey(glfw.KeyR, ActionReload)
	im.BindKey(glfw.KeyV, ActionToggleStats)
	im.BindMouseButton(glfw.MouseButtonLeft, ActionMouseLeft)

	return im
}

// BindKey binds a physical key to a logical action
// Multiple keys can be bound to the same action
func (im *Manager) BindKey(key glfw.Key, action Action) {
	im.mu.Lock()
	defer im.mu.Unlock()

	if action < 0 || action >= ActionCount {
		return
	}

	im.keyToActions[key] = append(im.keyToActions[key], action)
}

// BindMouseButton binds a mouse button to a logical action
func (im *Manager) BindMouseButton(button glfw.MouseButton, action Action) {
	im.mu.Lock()
	defer im.mu.Unlock()

	if action < 0 || action >= ActionCount {
		return
	}

	im.mouseButtonToActions[button] = append(im.mouseButtonToActions[button], action)
}

// HandleKeyEvent processes a key event and updates internal state
func (im *Manager) HandleKeyEvent(key glfw.Key, action glfw.Action) {
	im.mu.RLock()
	actions, exists := im.keyToActions[key]
	im.mu.RUnlock()

	if !exists {
		return
	}

	im.mu.Lock()
	im.apply(actions, action == glfw.Press || action == glfw.Repeat)
	im.mu.Unlock()
}

// HandleMouseButtonEvent processes a mouse button event and updates internal state.
// A left press also records the click position for iMouse.
func (im *Manager) HandleMouseButtonEvent(button glfw.MouseButton, action glfw.Action) {
	im.mu.RLock()
	actions, exists := im.mouseButtonToActions[button]
	im.mu.RUnlock()

	if !exists {
		return
	}

	im.mu.Lock()
	im.apply(actions, action == glfw.Press)
	if im.justPressed[ActionMouseLeft] {
		im.click = im.cursor
		im.drag = im.cursor
	}
	im.mu.Unlock()
}

// apply updates held state and edge flags; caller holds the write lock
func (im *Manager) apply(actions []Action, isPressed bool) {
	for _, act := range actions {
		if act < 0 || act >= ActionCount {
			continue
		}
		// Detect edges immediately when event arrives
		if isPressed && !im.currentState[act] {
			im.justPressed[act] = true
		}
		im.currentState[act] = isPressed
	}
}

// SetFramebufferHeight sets the height used to flip cursor coordinates to a bottom-left origin
func (im *Manager) SetFramebufferHeight(height int) {
	im.mu.Lock()
	defer im.mu.Unlock()
	im.height = float32(height)
}

// HandleCursorEvent records the cursor position, given in framebuffer pixels from the top-left corner
func (im *Manager) HandleCursorEvent(x, y float64) {
	im.mu.Lock()
	defer im.mu.Unlock()

	im.cursor = mgl32.Vec2{float32(x), im.height - float32(y)}
	if im.currentState[ActionMouseLeft] {
		im.drag = im.cursor
	}
}

// Mouse returns the iMouse value: xy is the last position while the left button
// was held, zw the last click position. z is negative while the button is up and
// w is negative except on the frame of the click.
func (im *Manager) Mouse() mgl32.Vec4 {
	im.mu.RLock()
	defer im.mu.RUnlock()

	m := mgl32.Vec4{im.drag.X(), im.drag.Y(), im.click.X(), im.click.Y()}
	if !im.currentState[ActionMouseLeft] {
		m[2] = -m[2]
	}
	if !im.justPressed[ActionMouseLeft] {
		m[3] = -m[3]
	}
	return m
}

// SetCallbacks routes the window's key, mouse button and cursor events to this manager.
// Cursor positions are scaled from screen coordinates to framebuffer pixels.
func (im *Manager) SetCallbacks(window *glfw.Window) {
	window.SetKeyCallback(func(w *glfw.Window, key glfw.Key, scancode int, action glfw.Action, mods glfw.ModifierKey) {
		im.HandleKeyEvent(key, action)
	})
	window.SetMouseButtonCallback(func(w *glfw.Window, button glfw.MouseButton, action glfw.Action, mods glfw.ModifierKey) {
		im.HandleMouseButtonEvent(button, action)
	})
	window.SetCursorPosCallback(func(w *glfw.Window, x, y float64) {
		ww, wh := w.GetSize()
		fw, fh := w.GetFramebufferSize()
		if ww > 0 && wh > 0 {
			x *= float64(fw) / float64(ww)
			y *= float64(fh) / float64(wh)
		}
		im.HandleCursorEvent(x, y)
	})
	window.SetFramebufferSizeCallback(func(w *glfw.Window, width, height int) {
		im.SetFramebufferHeight(height)
	})
	_, height := window.GetFramebufferSize()
	im.SetFramebufferHeight(height)
}

// PostUpdate must be called at the end of each frame to reset edge detection
func (im *Manager) PostUpdate() {
	im.mu.Lock()
	defer im.mu.Unlock()

	for i := range ActionCount {
		im.justPressed[i] = false
	}
}

// EndFrame is PostUpdate under the name the frame driver expects
func (im *Manager) EndFrame() {
	im.PostUpdate()
}

// QuitRequested reports whether the quit action is held or was pressed this frame
func (im *Manager) QuitRequested() bool {
	return im.IsActive(ActionQuit) || im.JustPressed(ActionQuit)
}

// IsActive returns true if the action is currently being held down
func (im *Manager) IsActive(action Action) bool {
	if action < 0 || action >= ActionCount {
		return false
	}

	im.mu.RLock()
	defer im.mu.RUnlock()

	return im.currentState[action]
}

// JustPressed returns true only if the action was pressed in the current frame
func (im *Manager) JustPressed(action Action) bool {
	if action < 0 || action >= ActionCount {
		return false
	}

	im.mu.RLock()
	defer im.mu.RUnlock()

	return im.justPressed[action]
}
