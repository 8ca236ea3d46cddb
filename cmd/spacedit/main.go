// Command spacedit opens a window with a few shapes on a background that can
// be selected and dragged on a snapping grid.
//
// Press C to pan the camera to the selected shape.
package main

import (
	"fmt"
	"image/color"
	"math"
	"os"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/phanxgames/spacedit"
	"github.com/phanxgames/spacedit/ebitenhost"
	"github.com/spf13/cobra"
	"github.com/tanema/gween/ease"
)

const (
	windowTitle = "spacedit"
	screenW     = 800
	screenH     = 600
)

var (
	bgColor       = color.RGBA{0x23, 0x1e, 0x2d, 0xff}
	gridColor     = color.RGBA{0x3a, 0x34, 0x48, 0xff}
	outlineColor  = color.RGBA{0x9a, 0xc8, 0xe6, 0xff}
	selectedColor = color.RGBA{0xff, 0xb3, 0x33, 0xff}
)

type options struct {
	configPath  string
	scriptPath  string
	snap        float64
	precedence  []string
	debug       bool
	glide       float32
	perspective bool
}

var opts options

var rootCmd = &cobra.Command{
	Use:   "spacedit",
	Short: "Pick and drag 2D shapes placed in 3D space",
	Long: `spacedit opens an editor window with a square, a pentagon and a background.
Click a shape to select it and drag it across the grid. Drags snap to the
grid unit on the reference plane.`,
	Args: cobra.NoArgs,
	RunE: run,
}

func init() {
	f := rootCmd.Flags()
	f.StringVar(&opts.configPath, "config", "", "YAML config file")
	f.StringVar(&opts.scriptPath, "script", "", "JSON input script to replay on start")
	f.Float64Var(&opts.snap, "snap", 0, "grid snap unit, 0 keeps the configured value")
	f.StringSliceVar(&opts.precedence, "precedence", nil, "selectable surface names, highest priority first")
	f.BoolVar(&opts.debug, "debug", false, "log pointer, pick and drag diagnostics")
	f.Float32Var(&opts.glide, "glide", 0, "seconds to animate snapped moves")
	f.BoolVar(&opts.perspective, "perspective", false, "use a perspective camera")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func loadConfig(cmd *cobra.Command) (spacedit.Config, error) {
	cfg := spacedit.DefaultConfig()
	if opts.configPath != "" {
		var err error
		if cfg, err = spacedit.LoadConfigFile(opts.configPath); err != nil {
			return cfg, err
		}
	}
	if cmd.Flags().Changed("snap") {
		cfg.SnapUnit = opts.snap
	}
	if cmd.Flags().Changed("precedence") {
		cfg.Precedence = opts.precedence
	}
	if opts.debug {
		cfg.Debug.Enabled = true
		cfg.Debug.PointerLog = true
		cfg.Debug.PickLog = true
		cfg.Debug.DragLog = true
	}
	return cfg, cfg.Validate()
}

func run(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	scene := buildScene()
	scene.Glide = opts.glide

	var cam *spacedit.Camera
	if opts.perspective {
		cam = spacedit.NewPerspectiveCamera(35, float64(screenW)/float64(screenH))
	} else {
		cam = spacedit.NewOrthographicCamera(screenW, screenH)
	}

	host := ebitenhost.New(nil)
	host.Layout(screenW, screenH)
	engine, err := spacedit.NewEngine(cfg, host, cam, scene)
	if err != nil {
		return err
	}
	host.SetHandler(engine)

	if opts.scriptPath != "" {
		data, err := os.ReadFile(opts.scriptPath)
		if err != nil {
			return fmt.Errorf("read script: %w", err)
		}
		script, err := spacedit.LoadScript(data)
		if err != nil {
			return err
		}
		host.Inject(script.Events()...)
	}

	ed := &editor{scene: scene, cam: cam, engine: engine, host: host, snap: cfg.Snapper().Unit}
	engine.Selection().SubscribeObject(func(id int) { ed.selected = id })

	ebiten.SetWindowSize(screenW, screenH)
	ebiten.SetWindowTitle(windowTitle)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	return ebiten.RunGame(ed)
}

// buildScene places a square and a pentagon over a background.
func buildScene() *spacedit.Scene {
	scene := spacedit.NewScene()

	bg := spacedit.NewBackground(2400, 2400)
	bg.SetPosition(0, 0, -10)
	scene.Root().AddChild(bg)

	sq := spacedit.NewShape([]spacedit.Vec2{{X: -36, Y: -36}, {X: 36, Y: -36}, {X: 36, Y: 36}, {X: -36, Y: 36}})
	sq.SetPosition(-120, 0, 0)
	scene.Root().AddChild(sq)

	pentagon := make([]spacedit.Vec2, 5)
	for i := range pentagon {
		a := math.Pi/2 + float64(i)*2*math.Pi/5
		pentagon[i] = spacedit.Vec2{X: 48 * math.Cos(a), Y: 48 * math.Sin(a)}
	}
	pent := spacedit.NewShape(pentagon)
	pent.SetPosition(120, 24, 0)
	pent.SetRotationZ(math.Pi / 12)
	scene.Root().AddChild(pent)

	return scene
}

type editor struct {
	scene    *spacedit.Scene
	cam      *spacedit.Camera
	engine   *spacedit.Engine
	host     *ebitenhost.Host
	snap     float64
	selected int
	w, h     int
}

func (e *editor) Update() error {
	dt := float32(1.0 / float64(ebiten.TPS()))
	if err := e.host.Update(); err != nil {
		return err
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyC) {
		if n := e.scene.Find(e.selected); n != nil {
			p := n.LocalToWorld(mgl64.Vec3{})
			e.cam.PanTo(p[0], p[1], 0.4, ease.InOutQuad)
		}
	}
	e.scene.Update(dt)
	e.cam.Update(dt)
	return nil
}

func (e *editor) Draw(screen *ebiten.Image) {
	screen.Fill(bgColor)
	vp := e.host.Bounds()
	e.drawGrid(screen, vp)
	for _, n := range e.scene.Root().Children() {
		if n.Name != spacedit.NameShape || len(n.Points) < 2 {
			continue
		}
		clr := outlineColor
		if n.ID == e.selected {
			clr = selectedColor
		}
		e.drawOutline(screen, vp, n, clr)
	}
}

// drawGrid strokes the snap grid around the camera target.
func (e *editor) drawGrid(screen *ebiten.Image, vp spacedit.Rect) {
	if e.snap <= 0 {
		return
	}
	step := e.snap * 4
	const extent = 1200.0
	cx := math.Round(e.cam.Target[0]/step) * step
	cy := math.Round(e.cam.Target[1]/step) * step
	for d := -extent; d <= extent; d += step {
		e.line(screen, vp, mgl64.Vec3{cx + d, cy - extent, 0}, mgl64.Vec3{cx + d, cy + extent, 0}, 1, gridColor)
		e.line(screen, vp, mgl64.Vec3{cx - extent, cy + d, 0}, mgl64.Vec3{cx + extent, cy + d, 0}, 1, gridColor)
	}
}

func (e *editor) drawOutline(screen *ebiten.Image, vp spacedit.Rect, n *spacedit.Node, clr color.Color) {
	for i, p := range n.Points {
		q := n.Points[(i+1)%len(n.Points)]
		a := n.LocalToWorld(mgl64.Vec3{p.X, p.Y, 0})
		b := n.LocalToWorld(mgl64.Vec3{q.X, q.Y, 0})
		e.line(screen, vp, a, b, 2, clr)
	}
}

func (e *editor) line(screen *ebiten.Image, vp spacedit.Rect, a, b mgl64.Vec3, width float32, clr color.Color) {
	ax, ay := e.cam.WorldToScreen(a, vp)
	bx, by := e.cam.WorldToScreen(b, vp)
	vector.StrokeLine(screen, float32(ax), float32(ay), float32(bx), float32(by), width, clr, true)
}

func (e *editor) Layout(outsideWidth, outsideHeight int) (int, int) {
	w, h := e.host.Layout(outsideWidth, outsideHeight)
	if w != e.w || h != e.h {
		e.w, e.h = w, h
		e.cam.Resize(float64(w), float64(h))
	}
	return w, h
}
