package render

import (
	"errors"
	"image/color"
)

// ErrQuit is returned from Game.Update to end the frame loop normally.
var ErrQuit = errors.New("quit requested")

// Renderer draws the viewer's primitives onto a screen surface. Backends
// implement it so the viewer never touches the graphics engine directly.
type Renderer interface {
	// Cells, markers and routes
	FillRect(dst Image, x, y, width, height float32, clr color.Color)
	FillCircle(dst Image, x, y, radius float32, clr color.Color)
	StrokeCircle(dst Image, x, y, radius float32, strokeWidth float32, clr color.Color)
	StrokeLine(dst Image, x0, y0, x1, y1 float32, strokeWidth float32, clr color.Color)

	// Status text
	DrawText(dst Image, text string, x, y int, clr color.Color)
	MeasureText(text string) (width, height int)
}

// Image is the surface handed to Game.Draw each frame.
type Image interface {
	Size() (width, height int)
	Fill(clr color.Color)
}

// InputManager reports the input events the viewer reacts to.
type InputManager interface {
	IsKeyJustPressed(key Key) bool
	IsMouseButtonJustPressed(button MouseButton) bool
	GetCursorPosition() (x, y int)
}

// Key is a keyboard key the viewer binds.
type Key int

const (
	KeyC      Key = iota // Recompute path
	KeyD                 // Clear path buffers
	KeyR                 // Re-run walkability
	KeyG                 // Toggle grid outline
	KeyM                 // Toggle blocked-cell markers
	KeyEscape            // Quit
)

// MouseButton is a mouse button the viewer binds.
type MouseButton int

const (
	MouseButtonLeft MouseButton = iota
	MouseButtonRight
)

// Game is driven by an Engine once per tick and once per frame.
type Game interface {
	Update() error
	Draw(screen Image)
	// Layout maps the window size to the logical screen size.
	Layout(outsideWidth, outsideHeight int) (screenWidth, screenHeight int)
}

// Engine owns the window and the frame loop.
type Engine interface {
	SetWindowSize(width, height int)
	SetWindowTitle(title string)
	SetWindowResizable(resizable bool)
	// RunGame blocks until the window closes or the game returns ErrQuit.
	RunGame(game Game) error
}
