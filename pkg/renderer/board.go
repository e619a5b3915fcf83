package renderer

import (
	"github.com/trytobebee/snake_arcade/pkg/config"
	"github.com/trytobebee/snake_arcade/pkg/game"
)

// Cell types for the board
const (
	cellEmpty = iota
	cellWall
	cellHead
	cellBody
	cellP2Head
	cellP2Body
	cellFood
	cellSpecial
	cellStone
	cellIce
	cellDark
	cellCrash
)

// board is a reusable grid of cell types
type board [][]int

func newBoard(width, height int) board {
	// Pre-allocate board to reduce GC pressure
	b := make(board, height)
	for i := range b {
		b[i] = make([]int, width)
	}
	return b
}

// fill classifies every cell of the snapshot. Later layers win: terrain,
// food, snakes, then crash markers. Darkness hides everything but the walls
// outside the flashlight.
func (b board) fill(s *game.Snapshot) {
	for y := range b {
		for x := range b[y] {
			b[y][x] = cellEmpty
			if s.Grid.IsBorder(game.Point{X: x, Y: y}) {
				b[y][x] = cellWall
			}
		}
	}

	b.set(s.Food, cellFood)
	if s.Special != nil {
		b.set(s.Special.Pos, cellSpecial)
	}
	for _, p := range s.Obstacles {
		b.set(p, cellStone)
	}
	for _, p := range s.Ice {
		b.set(p, cellIce)
	}

	// Draw player 2 first so player 1 stays on top where they overlap
	for i := len(s.Players) - 1; i >= 0; i-- {
		head, body := cellHead, cellBody
		if i > 0 {
			head, body = cellP2Head, cellP2Body
		}
		for j := len(s.Players[i].Snake.Body) - 1; j >= 0; j-- {
			if j == 0 {
				b.set(s.Players[i].Snake.Body[j], head)
			} else {
				b.set(s.Players[i].Snake.Body[j], body)
			}
		}
	}

	if s.Config.Terrain == game.TerrainDark {
		for y := range b {
			for x := range b[y] {
				p := game.Point{X: x, Y: y}
				if b[y][x] != cellWall && !s.Lit(p) {
					b[y][x] = cellDark
				}
			}
		}
	}

	for _, p := range s.Crashes {
		b.set(p, cellCrash)
	}
}

func (b board) set(p game.Point, c int) {
	if p.Y >= 0 && p.Y < len(b) && p.X >= 0 && p.X < len(b[p.Y]) {
		b[p.Y][p.X] = c
	}
}

// snakeChars returns the head and body glyphs for a player
func snakeChars(p game.Player) (string, string) {
	head, body := config.CharHead, config.CharBody
	switch p.Color {
	case game.ColorGold:
		head, body = "🟡", "🟨"
	case game.ColorPurple:
		head, body = "🟣", "🟪"
	case game.ColorBlue:
		head, body = config.CharP2Head, config.CharP2Body
	}
	if p.Kind == game.KindHeuristic {
		head = config.CharAIHead
	}
	return head, body
}
