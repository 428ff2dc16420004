package main

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"phasepositions/internal/geom"
	"phasepositions/internal/orbits"
)

// Draw renders the orbits view, the phase panels, and the optional overlay.
func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(backgroundColor)
	g.drawOrbits(screen)
	for _, p := range g.panels {
		p.draw(screen)
	}

	if *debugFlag {
		fps := ebiten.ActualFPS()
		tps := ebiten.ActualTPS()
		a1, a2 := g.scene.PhaseAngles()
		debugMsg := fmt.Sprintf("FPS: %.1f TPS: %.1f\n%s\n%s\nPhases: %.3f %.3f\nDrag sessions: %d",
			fps, tps, describeBody(g.scene.Body1()), describeBody(g.scene.Body2()),
			a1, a2, g.input.Sessions())
		ebitenutil.DebugPrint(screen, debugMsg)
	}
}

// Layout follows the window size so the view can be resized.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	g.resize(outsideWidth, outsideHeight)
	return outsideWidth, outsideHeight
}

// drawOrbits draws the orbit circles, the Sun, and the two bodies. A moon's
// orbit is drawn around its planet.
func (g *Game) drawOrbits(screen *ebiten.Image) {
	origin := g.orbitsOrigin()
	sun := origin.Add(g.scene.Center())
	for _, b := range []*orbits.Body{g.scene.Body1(), g.scene.Body2()} {
		center := sun
		if b.IsMoon() {
			center = origin.Add(g.otherBody(b).Position())
		}
		r := geom.Distance(center, origin.Add(b.Position()))
		strokeCircle(screen, center, r, b.Color())
	}
	fillCircle(screen, sun, sunRadius, sunColor)
	for _, b := range []*orbits.Body{g.scene.Body1(), g.scene.Body2()} {
		fillCircle(screen, origin.Add(b.Position()), bodyRadius, b.Color())
	}
}

func (g *Game) otherBody(b *orbits.Body) *orbits.Body {
	if b == g.scene.Body1() {
		return g.scene.Body2()
	}
	return g.scene.Body1()
}

func strokeCircle(dst *ebiten.Image, c geom.Point, r float64, clr color.Color) {
	vector.StrokeCircle(dst, float32(c.X), float32(c.Y), float32(r), orbitStroke, clr, true)
}

func fillCircle(dst *ebiten.Image, c geom.Point, r float64, clr color.Color) {
	vector.DrawFilledCircle(dst, float32(c.X), float32(c.Y), float32(r), clr, true)
}

func describeBody(b *orbits.Body) string {
	kind := "planet"
	if b.IsMoon() {
		kind = "moon"
	}
	return fmt.Sprintf("%s: %s angle %.3f distance %.3f", b.Name(), kind, b.Angle(), b.Distance())
}
