package main

import (
	"image"
	"image/color"
	"math"

	"github.com/charmbracelet/harmonica"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

const showDiscText = "Show Disc"

// phasePanel shows how one body looks from the other: a caption, the phase
// disc, and a "Show Disc" checkbox. Hiding the disc fades it out.
type phasePanel struct {
	label       string
	light, dark color.RGBA

	bounds   image.Rectangle
	discRect image.Rectangle
	boxRect  image.Rectangle
	hitRect  image.Rectangle

	phase    float64
	show     bool
	spring   harmonica.Spring
	fade     float64
	fadeVel  float64
	disc     *ebiten.Image
	discPix  []byte
	redraw   bool
	drawnFor float64
}

func newPhasePanel(label string, light, dark color.RGBA) *phasePanel {
	return &phasePanel{
		label:  label,
		light:  light,
		dark:   dark,
		show:   true,
		fade:   1,
		spring: harmonica.NewSpring(harmonica.FPS(defaultTPS), fadeFrequency, fadeDamping),
		redraw: true,
	}
}

// setBounds lays the panel out inside r.
func (p *phasePanel) setBounds(r image.Rectangle) {
	if r == p.bounds {
		return
	}
	p.bounds = r
	captionBottom := r.Min.Y + panelPadding + debugGlyphHeight
	boxY := r.Max.Y - panelPadding - checkboxSize
	avail := min(r.Dx()-2*panelPadding, boxY-panelPadding-captionBottom-panelPadding)
	size := int(discFraction * float64(max(avail, 0)))
	cx := r.Min.X + r.Dx()/2
	cy := captionBottom + panelPadding + (boxY-panelPadding-captionBottom-panelPadding)/2
	p.discRect = image.Rect(cx-size/2, cy-size/2, cx-size/2+size, cy-size/2+size)

	rowWidth := checkboxSize + panelPadding/2 + len(showDiscText)*debugGlyphWidth
	boxX := cx - rowWidth/2
	p.boxRect = image.Rect(boxX, boxY, boxX+checkboxSize, boxY+checkboxSize)
	p.hitRect = image.Rect(boxX, boxY-2, boxX+rowWidth, boxY+max(checkboxSize, debugGlyphHeight))

	if p.disc != nil {
		p.disc.Deallocate()
		p.disc = nil
	}
	p.discPix = nil
	p.redraw = true
}

func (p *phasePanel) setPhase(a float64) {
	if a != p.drawnFor {
		p.redraw = true
	}
	p.phase = a
}

// toggleAt flips the checkbox when pt hits the box or its caption.
func (p *phasePanel) toggleAt(pt image.Point) bool {
	if !pt.In(p.hitRect) {
		return false
	}
	p.show = !p.show
	return true
}

// update advances the fade animation by one tick.
func (p *phasePanel) update() {
	target := 0.0
	if p.show {
		target = 1
	}
	p.fade, p.fadeVel = p.spring.Update(p.fade, p.fadeVel, target)
	p.fade = math.Max(0, math.Min(1, p.fade))
}

func (p *phasePanel) draw(screen *ebiten.Image) {
	tx := p.bounds.Min.X + (p.bounds.Dx()-len(p.label)*debugGlyphWidth)/2
	ebitenutil.DebugPrintAt(screen, p.label, tx, p.bounds.Min.Y+panelPadding)

	if size := p.discRect.Dx(); size > 0 {
		if p.disc == nil {
			p.disc = ebiten.NewImage(size, size)
			p.discPix = make([]byte, size*size*4)
		}
		if p.redraw {
			shadeDisc(p.discPix, size, p.phase, p.light, p.dark)
			p.disc.WritePixels(p.discPix)
			p.drawnFor = p.phase
			p.redraw = false
		}
		r := float32(p.discRect.Dx()) / 2
		vector.StrokeCircle(screen, float32(p.discRect.Min.X)+r, float32(p.discRect.Min.Y)+r, r,
			1, outlineColor, true)
		if p.fade > 0.01 {
			op := &ebiten.DrawImageOptions{}
			op.GeoM.Translate(float64(p.discRect.Min.X), float64(p.discRect.Min.Y))
			op.ColorScale.ScaleAlpha(float32(p.fade))
			screen.DrawImage(p.disc, op)
		}
	}

	b := p.boxRect
	vector.StrokeRect(screen, float32(b.Min.X), float32(b.Min.Y), checkboxSize, checkboxSize, 1, textColor, false)
	if p.show {
		vector.DrawFilledRect(screen, float32(b.Min.X+3), float32(b.Min.Y+3), checkboxSize-6, checkboxSize-6, textColor, false)
	}
	ebitenutil.DebugPrintAt(screen, showDiscText, b.Max.X+panelPadding/2, b.Min.Y-1)
}
