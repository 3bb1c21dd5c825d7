// Package ebiten implements the render interfaces on top of Ebitengine.
package ebiten

import (
	"errors"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"chosenoffset.com/walkgrid/internal/render"
)

// Debug font cell size in pixels
const (
	debugCharWidth  = 6
	debugCharHeight = 16
)

// Renderer draws with ebiten's vector package and debug font.
type Renderer struct{}

// NewRenderer creates an ebiten-backed renderer.
func NewRenderer() render.Renderer {
	return &Renderer{}
}

func (r *Renderer) FillRect(dst render.Image, x, y, width, height float32, clr color.Color) {
	vector.DrawFilledRect(target(dst), x, y, width, height, clr, false)
}

func (r *Renderer) FillCircle(dst render.Image, x, y, radius float32, clr color.Color) {
	vector.DrawFilledCircle(target(dst), x, y, radius, clr, true)
}

func (r *Renderer) StrokeCircle(dst render.Image, x, y, radius float32, strokeWidth float32, clr color.Color) {
	vector.StrokeCircle(target(dst), x, y, radius, strokeWidth, clr, true)
}

func (r *Renderer) StrokeLine(dst render.Image, x0, y0, x1, y1 float32, strokeWidth float32, clr color.Color) {
	vector.StrokeLine(target(dst), x0, y0, x1, y1, strokeWidth, clr, true)
}

// DrawText prints with the debug font, which is always white; clr is
// ignored.
func (r *Renderer) DrawText(dst render.Image, str string, x, y int, clr color.Color) {
	ebitenutil.DebugPrintAt(target(dst), str, x, y)
}

// MeasureText approximates the size of str in the debug font.
func (r *Renderer) MeasureText(str string) (width, height int) {
	return len(str) * debugCharWidth, debugCharHeight
}

// Screen wraps the frame's ebiten.Image.
type Screen struct {
	img *ebiten.Image
}

func (s *Screen) Size() (width, height int) {
	b := s.img.Bounds()
	return b.Dx(), b.Dy()
}

func (s *Screen) Fill(clr color.Color) {
	s.img.Fill(clr)
}

func target(dst render.Image) *ebiten.Image {
	return dst.(*Screen).img
}

// InputManager polls ebiten's keyboard and mouse state.
type InputManager struct{}

// NewInputManager creates an ebiten-backed input manager.
func NewInputManager() render.InputManager {
	return &InputManager{}
}

func (m *InputManager) IsKeyJustPressed(key render.Key) bool {
	k, ok := ebitenKeys[key]
	return ok && inpututil.IsKeyJustPressed(k)
}

func (m *InputManager) IsMouseButtonJustPressed(button render.MouseButton) bool {
	b := ebiten.MouseButtonLeft
	if button == render.MouseButtonRight {
		b = ebiten.MouseButtonRight
	}
	return inpututil.IsMouseButtonJustPressed(b)
}

func (m *InputManager) GetCursorPosition() (x, y int) {
	return ebiten.CursorPosition()
}

var ebitenKeys = map[render.Key]ebiten.Key{
	render.KeyC:      ebiten.KeyC,
	render.KeyD:      ebiten.KeyD,
	render.KeyR:      ebiten.KeyR,
	render.KeyG:      ebiten.KeyG,
	render.KeyM:      ebiten.KeyM,
	render.KeyEscape: ebiten.KeyEscape,
}

// Engine runs the ebiten window loop.
type Engine struct{}

// NewEngine creates an ebiten-backed engine.
func NewEngine() render.Engine {
	return &Engine{}
}

func (e *Engine) SetWindowSize(width, height int) {
	ebiten.SetWindowSize(width, height)
}

func (e *Engine) SetWindowTitle(title string) {
	ebiten.SetWindowTitle(title)
}

func (e *Engine) SetWindowResizable(resizable bool) {
	mode := ebiten.WindowResizingModeDisabled
	if resizable {
		mode = ebiten.WindowResizingModeEnabled
	}
	ebiten.SetWindowResizingMode(mode)
}

// RunGame runs the frame loop. render.ErrQuit from Update ends it without
// an error.
func (e *Engine) RunGame(game render.Game) error {
	err := ebiten.RunGame(&gameAdapter{game: game})
	if errors.Is(err, ebiten.Termination) {
		return nil
	}
	return err
}

// gameAdapter adapts a render.Game to ebiten.Game.
type gameAdapter struct {
	game render.Game
}

func (a *gameAdapter) Update() error {
	err := a.game.Update()
	if errors.Is(err, render.ErrQuit) {
		return ebiten.Termination
	}
	return err
}

func (a *gameAdapter) Draw(screen *ebiten.Image) {
	a.game.Draw(&Screen{img: screen})
}

func (a *gameAdapter) Layout(outsideWidth, outsideHeight int) (int, int) {
	return a.game.Layout(outsideWidth, outsideHeight)
}
