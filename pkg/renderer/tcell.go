package renderer

import (
	"fmt"

	"github.com/gdamore/tcell/v2"

	"github.com/trytobebee/snake_arcade/pkg/config"
	"github.com/trytobebee/snake_arcade/pkg/game"
	"github.com/trytobebee/snake_arcade/pkg/session"
)

// Board placement on the tcell screen; every board cell is two columns wide
const (
	boardLeft = 0
	boardTop  = 2
)

var (
	styleText   = tcell.StyleDefault.Foreground(tcell.ColorWhite)
	styleTitle  = tcell.StyleDefault.Foreground(tcell.ColorLawnGreen).Bold(true)
	styleButton = tcell.StyleDefault.Foreground(tcell.ColorWhite).Background(tcell.ColorDarkSlateGray)
	styleHover  = tcell.StyleDefault.Foreground(tcell.ColorBlack).Background(tcell.ColorYellow).Bold(true)
	styleAlert  = tcell.StyleDefault.Foreground(tcell.ColorWhite).Background(tcell.ColorMaroon).Bold(true)
)

// snakeColors maps the cosmetic colors to head and body backgrounds
var snakeColors = map[game.SnakeColor][2]tcell.Color{
	game.ColorGreen:  {tcell.ColorLime, tcell.ColorGreen},
	game.ColorGold:   {tcell.ColorGold, tcell.ColorDarkGoldenrod},
	game.ColorPurple: {tcell.ColorViolet, tcell.ColorPurple},
	game.ColorBlue:   {tcell.ColorDeepSkyBlue, tcell.ColorRoyalBlue},
}

// TcellRenderer draws views on a tcell screen with clickable buttons
type TcellRenderer struct {
	screen tcell.Screen
	board  board
}

// NewTcellRenderer wraps an initialised screen
func NewTcellRenderer(screen tcell.Screen) *TcellRenderer {
	return &TcellRenderer{
		screen: screen,
		board:  newBoard(config.Width, config.Height),
	}
}

// Render draws the view and shows it
func (r *TcellRenderer) Render(v session.View) {
	r.screen.Clear()
	drawText(r.screen, 2, 0, "SNAKE", styleTitle)

	switch v.State {
	case session.Menu:
		drawText(r.screen, session.MenuLeft, 3, fmt.Sprintf("High score: %d", v.HighScore), styleText)
		drawText(r.screen, session.MenuLeft, 5, fmt.Sprintf("Mode: %s   Terrain: %s   Color: %s", v.Settings.Mode, v.Settings.Terrain, v.Settings.Color), styleText)
	case session.Settings:
		drawText(r.screen, session.MenuLeft, 3, "SETTINGS", styleTitle)
		drawText(r.screen, session.MenuLeft, 5, fmt.Sprintf("Color: %s", v.Settings.Color), styleText)
	case session.NameInput:
		drawText(r.screen, session.MenuLeft, 4, "Player 1 name: "+v.Names[0], styleText)
		if v.NameIndex == 1 {
			drawText(r.screen, session.MenuLeft, 6, "Player 2 name: "+v.Names[1], styleText)
		}
	default:
		if v.Snapshot != nil {
			r.drawRound(v)
		}
	}

	for i, b := range v.Buttons {
		st := styleButton
		if i == v.Hover {
			st = styleHover
		}
		fillRect(r.screen, b.Rect, st)
		drawText(r.screen, b.Rect.X+1, b.Rect.Y, b.Label, st)
	}

	if v.Message != "" {
		_, h := r.screen.Size()
		drawText(r.screen, 2, h-1, v.Message, styleAlert)
	}
	r.screen.Show()
}

func (r *TcellRenderer) drawRound(v session.View) {
	s := v.Snapshot

	x := 10
	for _, p := range s.Players {
		label := fmt.Sprintf("%s: %d", p.Name, p.Score)
		drawText(r.screen, x, 0, label, styleText)
		x += len(label) + 3
	}
	drawText(r.screen, x, 0, fmt.Sprintf("High: %d  Speed: %d", v.HighScore, s.Speed), styleText)
	if s.Special != nil {
		drawText(r.screen, 2, 1, fmt.Sprintf("Bonus %ds", s.Special.RemainingSeconds(s.Clock)), styleText.Foreground(tcell.ColorYellow))
	}

	r.board.fill(s)
	for y, row := range r.board {
		for x, cell := range row {
			ch, st := r.cellStyle(s, cell)
			sx, sy := boardLeft+2*x, boardTop+y
			r.screen.SetContent(sx, sy, ch, nil, st)
			r.screen.SetContent(sx+1, sy, ' ', nil, st)
		}
	}

	switch v.State {
	case session.Paused:
		drawText(r.screen, boardLeft+config.Width-3, boardTop+config.Height/2, " PAUSED ", styleAlert)
	case session.GameOver:
		drawText(r.screen, boardLeft+config.Width-5, boardTop+config.Height/2, " GAME OVER ", styleAlert)
	}
}

func (r *TcellRenderer) cellStyle(s *game.Snapshot, cell int) (rune, tcell.Style) {
	bg := func(c tcell.Color) tcell.Style { return tcell.StyleDefault.Background(c) }
	player := func(i int) [2]tcell.Color {
		if i < len(s.Players) {
			if c, ok := snakeColors[s.Players[i].Color]; ok {
				return c
			}
		}
		return snakeColors[game.ColorGreen]
	}

	switch cell {
	case cellWall:
		return ' ', bg(tcell.ColorSilver)
	case cellHead:
		return ' ', bg(player(0)[0])
	case cellBody:
		return ' ', bg(player(0)[1])
	case cellP2Head:
		return ' ', bg(player(1)[0])
	case cellP2Body:
		return ' ', bg(player(1)[1])
	case cellFood:
		return '●', tcell.StyleDefault.Foreground(tcell.ColorRed)
	case cellSpecial:
		return '★', tcell.StyleDefault.Foreground(tcell.ColorYellow)
	case cellStone:
		return '▓', tcell.StyleDefault.Foreground(tcell.ColorGray)
	case cellIce:
		return '░', bg(tcell.ColorLightCyan).Foreground(tcell.ColorWhite)
	case cellDark:
		return ' ', bg(tcell.ColorBlack)
	case cellCrash:
		return 'X', bg(tcell.ColorRed).Foreground(tcell.ColorWhite)
	}
	return ' ', tcell.StyleDefault
}

func drawText(s tcell.Screen, x, y int, text string, st tcell.Style) {
	for _, ch := range text {
		s.SetContent(x, y, ch, nil, st)
		x++
	}
}

func fillRect(s tcell.Screen, rect session.Rect, st tcell.Style) {
	for y := rect.Y; y < rect.Y+rect.H; y++ {
		for x := rect.X; x < rect.X+rect.W; x++ {
			s.SetContent(x, y, ' ', nil, st)
		}
	}
}
