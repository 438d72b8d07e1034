package geom

// DefaultMargin is the width in pixels of the edge and corner grab bands.
const DefaultMargin = 8

// Zone names the part of a rectangle a point falls in.
type Zone int

const (
	Outside Zone = iota
	Inside
	TopLeft
	TopRight
	BottomLeft
	BottomRight
	Top
	Bottom
	Left
	Right
)

var zoneNames = [...]string{
	Outside:     "outside",
	Inside:      "inside",
	TopLeft:     "top-left",
	TopRight:    "top-right",
	BottomLeft:  "bottom-left",
	BottomRight: "bottom-right",
	Top:         "top",
	Bottom:      "bottom",
	Left:        "left",
	Right:       "right",
}

func (z Zone) String() string {
	if z < 0 || int(z) >= len(zoneNames) {
		return "unknown"
	}
	return zoneNames[z]
}

// IsCorner reports whether z is one of the four corner zones.
func (z Zone) IsCorner() bool {
	switch z {
	case TopLeft, TopRight, BottomLeft, BottomRight:
		return true
	}
	return false
}

// IsEdge reports whether z is one of the four side zones.
func (z Zone) IsEdge() bool {
	switch z {
	case Top, Bottom, Left, Right:
		return true
	}
	return false
}

// Grabs reports which bounds a resize from z moves.
func (z Zone) Grabs() (left, top, right, bottom bool) {
	switch z {
	case TopLeft:
		return true, true, false, false
	case TopRight:
		return false, true, true, false
	case BottomLeft:
		return true, false, false, true
	case BottomRight:
		return false, false, true, true
	case Top:
		return false, true, false, false
	case Bottom:
		return false, false, false, true
	case Left:
		return true, false, false, false
	case Right:
		return false, false, true, false
	}
	return false, false, false, false
}

// FlipHorizontal mirrors the zone left to right.
func (z Zone) FlipHorizontal() Zone {
	switch z {
	case TopLeft:
		return TopRight
	case TopRight:
		return TopLeft
	case BottomLeft:
		return BottomRight
	case BottomRight:
		return BottomLeft
	case Left:
		return Right
	case Right:
		return Left
	}
	return z
}

// FlipVertical mirrors the zone top to bottom.
func (z Zone) FlipVertical() Zone {
	switch z {
	case TopLeft:
		return BottomLeft
	case BottomLeft:
		return TopLeft
	case TopRight:
		return BottomRight
	case BottomRight:
		return TopRight
	case Top:
		return Bottom
	case Bottom:
		return Top
	}
	return z
}

// HitZone classifies p against r. Corner boxes of margin x margin win over
// the edge bands, which win over the interior. Points not in r are Outside.
func HitZone(r Rect, p Point, margin int) Zone {
	n := r.Normalize()
	if !n.Contains(p) {
		return Outside
	}
	if margin <= 0 {
		return Inside
	}
	left := p.X < n.X+margin
	right := p.X >= n.X+n.Width-margin
	top := p.Y < n.Y+margin
	bottom := p.Y >= n.Y+n.Height-margin
	switch {
	case top && left:
		return TopLeft
	case top && right:
		return TopRight
	case bottom && left:
		return BottomLeft
	case bottom && right:
		return BottomRight
	case top:
		return Top
	case bottom:
		return Bottom
	case left:
		return Left
	case right:
		return Right
	}
	return Inside
}
