package graphview

import (
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
)

// EbitenRenderer paints the scene with Ebitengine. Its View is an
// ebiten.Game: Update ticks the renderer's scheduler (running the view's
// frame) and Draw paints the last submitted root.
type EbitenRenderer struct {
	pointerQueue

	w, h  int
	root  *Node
	sched *TickScheduler
	draw  drawer
	game  *ebitenGame

	// Background fills the screen before each draw.
	Background Color
	// ShowFPS prints FPS/TPS in the top-left corner.
	ShowFPS bool
	// ScreenshotDir is where Screenshot writes PNG files.
	ScreenshotDir string

	screenshotQueue []string
	logger          *log.Logger
}

// NewEbitenRenderer creates a renderer with a w by h logical screen.
func NewEbitenRenderer(w, h int) *EbitenRenderer {
	r := &EbitenRenderer{
		w:             w,
		h:             h,
		sched:         NewTickScheduler(),
		Background:    Color{0.97, 0.97, 0.98, 1},
		ScreenshotDir: "screenshots",
		logger:        log.Default(),
	}
	r.game = &ebitenGame{r: r}
	return r
}

// SetLogger replaces the logger used for screenshot failures.
func (r *EbitenRenderer) SetLogger(l *log.Logger) {
	if l != nil {
		r.logger = l
	}
}

// Render stores root to be painted by the next Draw.
func (r *EbitenRenderer) Render(root *Node) { r.root = root }

// Resize changes the logical screen size.
func (r *EbitenRenderer) Resize(w, h int) { r.w, r.h = w, h }

// Width returns the logical screen width.
func (r *EbitenRenderer) Width() int { return r.w }

// Height returns the logical screen height.
func (r *EbitenRenderer) Height() int { return r.h }

// View returns the ebiten.Game to pass to ebiten.RunGame.
func (r *EbitenRenderer) View() any { return r.game }

// Game returns the ebiten.Game driving this renderer.
func (r *EbitenRenderer) Game() ebiten.Game { return r.game }

// Scheduler returns the scheduler ticked from Update.
func (r *EbitenRenderer) Scheduler() FrameScheduler { return r.sched }

func (r *EbitenRenderer) screenPointer() (float64, float64) {
	if r.live {
		return r.current.x, r.current.y
	}
	x, y := ebiten.CursorPosition()
	return float64(x), float64(y)
}

// PointerPosition returns the cursor (or the injected pointer) in
// relativeTo's local space.
func (r *EbitenRenderer) PointerPosition(relativeTo *Node) Vec2 {
	x, y := r.screenPointer()
	if relativeTo == nil {
		return Vec2{x, y}
	}
	lx, ly := relativeTo.WorldToLocal(x, y)
	return Vec2{lx, ly}
}

// PointerPressed reports whether the left button (or a touch) is down.
func (r *EbitenRenderer) PointerPressed() bool {
	if r.live {
		return r.current.pressed
	}
	if ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft) {
		return true
	}
	var touches [1]ebiten.TouchID
	return len(ebiten.AppendTouchIDs(touches[:0])) > 0
}

// RunConfig configures the window opened by Run.
type RunConfig struct {
	Title     string
	Resizable bool
}

// Run opens a window showing view, starts its render loop and blocks until
// the window closes. view must have been created with an EbitenRenderer.
func Run(view *GraphView, cfg RunConfig) error {
	r, ok := view.Renderer().(*EbitenRenderer)
	if !ok {
		return fmt.Errorf("graphview: Run needs an EbitenRenderer, have %T", view.Renderer())
	}
	title := cfg.Title
	if title == "" {
		title = "graphview"
	}
	ebiten.SetWindowTitle(title)
	ebiten.SetWindowSize(r.w, r.h)
	if cfg.Resizable {
		ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
		r.game.view = view
	}
	view.StartRenderLoop()
	defer view.StopRenderLoop()
	return ebiten.RunGame(r.game)
}

// ebitenGame adapts EbitenRenderer to ebiten.Game.
type ebitenGame struct {
	r *EbitenRenderer
	// view is resized with the window when set.
	view *GraphView
}

func (g *ebitenGame) Update() error {
	g.r.sched.Tick()
	return nil
}

func (g *ebitenGame) Draw(screen *ebiten.Image) {
	r := g.r
	screen.Fill(r.Background.RGBA())
	r.draw.draw(screen, r.root)
	if r.ShowFPS {
		ebitenutil.DebugPrint(screen, fmt.Sprintf("FPS: %.1f\nTPS: %.1f", ebiten.ActualFPS(), ebiten.ActualTPS()))
	}
	r.flushScreenshots(screen)
}

func (g *ebitenGame) Layout(outsideWidth, outsideHeight int) (int, int) {
	if g.view != nil && (outsideWidth != g.r.w || outsideHeight != g.r.h) {
		g.view.Resize(outsideWidth, outsideHeight)
	}
	return g.r.w, g.r.h
}
