package geometry

import "math"

// BoundingBox is an axis-aligned XY rectangle.
type BoundingBox struct {
	MinX, MinY, MaxX, MaxY float64
}

// InvertedBoundingBox returns the degenerate box every accumulation starts
// from: minimums at +MaxFloat64 and maximums at -MaxFloat64.
func InvertedBoundingBox() BoundingBox {
	return BoundingBox{
		MinX: math.MaxFloat64,
		MinY: math.MaxFloat64,
		MaxX: -math.MaxFloat64,
		MaxY: -math.MaxFloat64,
	}
}

// IsInverted reports whether the box holds no coordinate at all.
func (b BoundingBox) IsInverted() bool {
	return b.MinX > b.MaxX || b.MinY > b.MaxY
}

// Contains reports whether (x, y) lies inside or on the edge of b.
func (b BoundingBox) Contains(x, y float64) bool {
	return x >= b.MinX && x <= b.MaxX && y >= b.MinY && y <= b.MaxY
}

// BoundsCalculator accumulates coordinate bounds from vertices
type BoundsCalculator struct {
	minX, minY, maxX, maxY float64
	minZ, maxZ, minM, maxM float64
	initialized            bool
}

// NewBoundsCalculator creates a new bounds calculator
func NewBoundsCalculator() *BoundsCalculator {
	return &BoundsCalculator{}
}

// AddVertex adds one vertex to the bounds calculation
func (b *BoundsCalculator) AddVertex(v Vertex) {
	if !b.initialized {
		b.minX, b.maxX = v.X, v.X
		b.minY, b.maxY = v.Y, v.Y
		b.minZ, b.maxZ = v.Z, v.Z
		b.minM, b.maxM = v.M, v.M
		b.initialized = true
		return
	}

	b.minX = min(b.minX, v.X)
	b.maxX = max(b.maxX, v.X)
	b.minY = min(b.minY, v.Y)
	b.maxY = max(b.maxY, v.Y)
	b.minZ = min(b.minZ, v.Z)
	b.maxZ = max(b.maxZ, v.Z)
	b.minM = min(b.minM, v.M)
	b.maxM = max(b.maxM, v.M)
}

func (b *BoundsCalculator) addCoords(c *Coords) {
	for i := range c.NumPoints() {
		b.AddVertex(c.Vertex(i))
	}
}

// GetBounds returns the calculated XY box, inverted when nothing was added
func (b *BoundsCalculator) GetBounds() (BoundingBox, bool) {
	if !b.initialized {
		return InvertedBoundingBox(), false
	}
	return BoundingBox{MinX: b.minX, MinY: b.minY, MaxX: b.maxX, MaxY: b.maxY}, true
}

// GetZRange returns the Z extent of the added vertices
func (b *BoundsCalculator) GetZRange() (minZ, maxZ float64, ok bool) {
	if !b.initialized {
		return math.MaxFloat64, -math.MaxFloat64, false
	}
	return b.minZ, b.maxZ, true
}

// GetMRange returns the M extent of the added vertices
func (b *BoundsCalculator) GetMRange() (minM, maxM float64, ok bool) {
	if !b.initialized {
		return math.MaxFloat64, -math.MaxFloat64, false
	}
	return b.minM, b.maxM, true
}
