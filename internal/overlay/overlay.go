// Package overlay computes viewport placement for floating popups (row
// action menus, filter dropdowns, suggestion lists) and paints their
// rendered boxes over a base view. The placement math is pure so it can be
// tested independently of how the popup is rendered.
package overlay

import "strings"

// Rect is a cell-grid rectangle anchored at its top-left corner.
type Rect struct {
	X, Y, W, H int
}

// Empty reports whether the rect has no area (e.g. an unmounted anchor).
func (r Rect) Empty() bool { return r.W <= 0 || r.H <= 0 }

// Contains reports whether the cell (x, y) lies inside the rect.
func (r Rect) Contains(x, y int) bool {
	return x >= r.X && x < r.X+r.W && y >= r.Y && y < r.Y+r.H
}

// Placement is the computed position for floating content. Ephemeral:
// recomputed on every open and on resize, never stored across frames.
type Placement struct {
	Top, Left int
	// Above is set when the content flipped to open above the anchor.
	Above bool
}

// Rect returns the area the placed content of the given size occupies.
func (p Placement) Rect(contentW, contentH int) Rect {
	return Rect{X: p.Left, Y: p.Top, W: contentW, H: contentH}
}

// Compute places content of the given size next to the anchor inside the
// viewport. Content opens below the anchor unless the remaining space is
// too small, in which case it flips above. The left edge clamps into
// [0, viewportW-contentW] so content never starts off-screen or overflows
// the right edge. Returns nil when the anchor is gone or the viewport is
// unusable; the caller must then not render the content at all.
func Compute(anchor Rect, contentW, contentH, viewportW, viewportH int) *Placement {
	if anchor.Empty() || contentW <= 0 || contentH <= 0 || viewportW <= 0 || viewportH <= 0 {
		return nil
	}
	p := &Placement{}

	below := viewportH - (anchor.Y + anchor.H)
	if below >= contentH {
		p.Top = anchor.Y + anchor.H
	} else {
		p.Above = true
		p.Top = anchor.Y - contentH
	}
	if p.Top+contentH > viewportH {
		p.Top = viewportH - contentH
	}
	if p.Top < 0 {
		p.Top = 0
	}

	p.Left = anchor.X
	if p.Left+contentW > viewportW {
		p.Left = viewportW - contentW
	}
	if p.Left < 0 {
		p.Left = 0
	}
	return p
}

// Composite paints the rendered box over base at the placement. Box lines
// replace the base lines they cover, indented to the placement column;
// blank box lines are transparent.
func Composite(base, box string, p Placement) string {
	if p.Top < 0 {
		return base
	}
	bLines := strings.Split(base, "\n")
	oLines := strings.Split(box, "\n")
	for len(bLines) < p.Top+len(oLines) {
		bLines = append(bLines, "")
	}
	pad := strings.Repeat(" ", p.Left)
	for i, line := range oLines {
		if strings.TrimSpace(line) == "" {
			continue
		}
		bLines[p.Top+i] = pad + line
	}
	return strings.Join(bLines, "\n")
}
