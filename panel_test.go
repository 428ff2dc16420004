package main

import (
	"image"
	"testing"
)

func TestPanelLayout(t *testing.T) {
	p := newPhasePanel("Blue seen from red", body1Light, body1Dark)
	p.setBounds(image.Rect(600, 0, 960, 300))

	if !p.discRect.In(p.bounds) || p.discRect.Dx() != p.discRect.Dy() || p.discRect.Empty() {
		t.Fatalf("disc rect %v not a square inside %v", p.discRect, p.bounds)
	}
	if p.boxRect.Min.Y < p.discRect.Max.Y {
		t.Fatalf("checkbox %v overlaps disc %v", p.boxRect, p.discRect)
	}

	p.setBounds(image.Rect(600, 0, 610, 10))
	if !p.discRect.Empty() {
		t.Fatalf("tiny panel should have no disc, got %v", p.discRect)
	}
}

func TestPanelToggle(t *testing.T) {
	p := newPhasePanel("Red seen from blue", body2Light, body2Dark)
	p.setBounds(image.Rect(600, 300, 960, 600))

	if p.toggleAt(image.Pt(0, 0)) {
		t.Fatal("toggle outside the checkbox")
	}
	box := p.boxRect.Min.Add(image.Pt(checkboxSize/2, checkboxSize/2))
	if !p.toggleAt(box) || p.show {
		t.Fatal("checkbox click should hide the disc")
	}
	caption := image.Pt(p.boxRect.Max.X+panelPadding, p.boxRect.Min.Y+2)
	if !p.toggleAt(caption) || !p.show {
		t.Fatal("caption click should show the disc")
	}
}

func TestPanelFade(t *testing.T) {
	p := newPhasePanel("Blue seen from red", body1Light, body1Dark)
	p.show = false
	for i := 0; i < 3*defaultTPS; i++ {
		p.update()
		if p.fade < 0 || p.fade > 1 {
			t.Fatalf("fade %v out of range", p.fade)
		}
	}
	if p.fade > 0.01 {
		t.Fatalf("disc did not fade out, fade %v", p.fade)
	}
	p.show = true
	for i := 0; i < 3*defaultTPS; i++ {
		p.update()
	}
	if p.fade < 0.99 {
		t.Fatalf("disc did not fade in, fade %v", p.fade)
	}
}
