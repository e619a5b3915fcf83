package game

// Grid is the fixed-size wrap-around board
type Grid struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

// Step moves p one cell in dir, wrapping around both axes.
// Wrapping only computes the candidate; the border ring is still lethal.
func (g Grid) Step(p Point, dir Direction) Point {
	return Point{
		X: mod(p.X+dir.X, g.Width),
		Y: mod(p.Y+dir.Y, g.Height),
	}
}

// IsBorder reports whether p lies on the outermost ring
func (g Grid) IsBorder(p Point) bool {
	return p.X == 0 || p.X == g.Width-1 || p.Y == 0 || p.Y == g.Height-1
}

// IsInterior reports whether p is inside the board and off the border ring
func (g Grid) IsInterior(p Point) bool {
	return p.X >= 1 && p.X <= g.Width-2 && p.Y >= 1 && p.Y <= g.Height-2
}

// Contains reports whether p is anywhere on the board
func (g Grid) Contains(p Point) bool {
	return p.X >= 0 && p.X < g.Width && p.Y >= 0 && p.Y < g.Height
}

// Center returns the middle cell
func (g Grid) Center() Point {
	return Point{X: g.Width / 2, Y: g.Height / 2}
}

// InteriorCells returns how many cells placement can choose from
func (g Grid) InteriorCells() int {
	if g.Width < 3 || g.Height < 3 {
		return 0
	}
	return (g.Width - 2) * (g.Height - 2)
}

// Manhattan returns the grid distance between a and b (no wrap)
func Manhattan(a, b Point) int {
	return abs(a.X-b.X) + abs(a.Y-b.Y)
}

func mod(a, n int) int {
	r := a % n
	if r < 0 {
		r += n
	}
	return r
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

func containsPoint(points []Point, p Point) bool {
	for _, q := range points {
		if q == p {
			return true
		}
	}
	return false
}
