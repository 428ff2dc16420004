package main

import (
	"image"
	"log"
	"log/slog"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"gopkg.in/yaml.v3"

	"phasepositions/internal/drag"
	"phasepositions/internal/geom"
	"phasepositions/internal/orbits"
)

// Game hosts the orbits view on the left and the two phase panels on the
// right. The orbits view is a square as tall as the window.
type Game struct {
	scene  *orbits.Scene
	input  *drag.Dispatcher
	poller *inputPoller
	panels [2]*phasePanel

	width, height int
	view          image.Rectangle

	auto autoDrag
}

// newGame wires the scene to the dispatcher and the panels.
func newGame(logger *slog.Logger) *Game {
	g := &Game{input: drag.NewDispatcher()}
	g.panels[0] = newPhasePanel("Blue seen from red", body1Light, body1Dark)
	g.panels[1] = newPhasePanel("Red seen from blue", body2Light, body2Dark)
	g.scene = orbits.NewScene(
		orbits.WithLogger(logger),
		orbits.WithColors(body1Color, body2Color),
		orbits.WithOnChange(g.refreshPhases),
	)
	g.scene.AttachInput(g.input, g.orbitsOrigin)
	g.poller = newInputPoller(g.bounds, g.handleUnconsumed)
	g.refreshPhases()
	return g
}

// Update polls input, or the drag script while one runs, and advances the
// panel animations.
func (g *Game) Update() error {
	if !g.stepAutoDrag() {
		g.poller.poll(g.input)
	}
	g.handleDebugControls()
	for _, p := range g.panels {
		p.update()
	}
	return nil
}

// resize lays out the window when its size changes.
func (g *Game) resize(width, height int) {
	if width == g.width && height == g.height {
		return
	}
	g.width, g.height = width, height
	side := min(width, height)
	g.view = image.Rect(0, (height-side)/2, side, (height-side)/2+side)
	g.scene.SetDimensions(float64(side), float64(side))

	half := height / 2
	g.panels[0].setBounds(image.Rect(side, 0, width, half))
	g.panels[1].setBounds(image.Rect(side, half, width, height))
}

func (g *Game) bounds() image.Rectangle { return image.Rect(0, 0, g.width, g.height) }

func (g *Game) orbitsRect() image.Rectangle { return g.view }

// orbitsOrigin is the window position of the orbits view's top left corner.
func (g *Game) orbitsOrigin() geom.Point {
	return geom.Pt(float64(g.view.Min.X), float64(g.view.Min.Y))
}

func (g *Game) refreshPhases() {
	a1, a2 := g.scene.PhaseAngles()
	g.panels[0].setPhase(a1)
	g.panels[1].setPhase(a2)
}

// handleUnconsumed routes contacts that started no drag to the checkboxes.
func (g *Game) handleUnconsumed(pt image.Point) {
	for _, p := range g.panels {
		if p.toggleAt(pt) {
			return
		}
	}
}

// handleDebugControls processes debug overlay hotkeys.
func (g *Game) handleDebugControls() {
	if !*debugFlag {
		return
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyP) {
		out, err := yaml.Marshal(g.scene.State())
		if err != nil {
			log.Printf("Encoding state failed: %v", err)
			return
		}
		log.Printf("Current state:\n%s", out)
	}
}
