package layout

import "math"

// Point is a position in canvas units.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Rect is an axis-aligned rectangle anchored at its top-left corner.
type Rect struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Canvas returns a w x h rectangle at the origin.
func Canvas(w, h float64) Rect { return Rect{Width: w, Height: h} }

// Area returns Width * Height.
func (r Rect) Area() float64 { return r.Width * r.Height }

// Right returns the x coordinate of the right edge.
func (r Rect) Right() float64 { return r.X + r.Width }

// Bottom returns the y coordinate of the bottom edge.
func (r Rect) Bottom() float64 { return r.Y + r.Height }

// Intersect returns the overlap of r and o. Disjoint rectangles yield a
// zero-sized rectangle.
func (r Rect) Intersect(o Rect) Rect {
	x0, y0 := math.Max(r.X, o.X), math.Max(r.Y, o.Y)
	x1, y1 := math.Min(r.Right(), o.Right()), math.Min(r.Bottom(), o.Bottom())
	if x1 <= x0 || y1 <= y0 {
		return Rect{X: x0, Y: y0}
	}
	return Rect{X: x0, Y: y0, Width: x1 - x0, Height: y1 - y0}
}

// Block is one packed rectangle. Value is the weight it was sized from.
type Block struct {
	Value  float64 `json:"value"`
	Size   float64 `json:"size"`
	Pos    Point   `json:"pos"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Left returns the x coordinate of the left edge.
func (b Block) Left() float64 { return b.Pos.X }

// Top returns the y coordinate of the top edge.
func (b Block) Top() float64 { return b.Pos.Y }

// Right returns the x coordinate of the right edge.
func (b Block) Right() float64 { return b.Pos.X + b.Width }

// Bottom returns the y coordinate of the bottom edge.
func (b Block) Bottom() float64 { return b.Pos.Y + b.Height }

// CenterX returns the horizontal center point of the block.
func (b Block) CenterX() float64 { return b.Pos.X + b.Width/2 }

// CenterY returns the vertical center point of the block.
func (b Block) CenterY() float64 { return b.Pos.Y + b.Height/2 }

// Rect returns the block's bounds.
func (b Block) Rect() Rect {
	return Rect{X: b.Pos.X, Y: b.Pos.Y, Width: b.Width, Height: b.Height}
}

// Intersection returns the area shared by b and o.
func (b Block) Intersection(o Block) float64 {
	return b.Rect().Intersect(o.Rect()).Area()
}

// Blocks is a packed sequence in input order.
type Blocks []Block

// TotalSize sums block areas in order.
func (bs Blocks) TotalSize() float64 {
	var total float64
	for _, b := range bs {
		total += b.Size
	}
	return total
}

// Bounds returns the smallest rectangle covering every block.
func (bs Blocks) Bounds() Rect {
	if len(bs) == 0 {
		return Rect{}
	}
	x0, y0 := bs[0].Left(), bs[0].Top()
	x1, y1 := bs[0].Right(), bs[0].Bottom()
	for _, b := range bs[1:] {
		x0, y0 = math.Min(x0, b.Left()), math.Min(y0, b.Top())
		x1, y1 = math.Max(x1, b.Right()), math.Max(y1, b.Bottom())
	}
	return Rect{X: x0, Y: y0, Width: x1 - x0, Height: y1 - y0}
}
