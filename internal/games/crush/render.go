package crush

import (
	"fmt"
	"strings"

	"github.com/tradenly/poopee-crush/internal/core"
	"github.com/tradenly/poopee-crush/internal/games/crush/match3"
)

const (
	cellWidth  = 3 // " X " per tile
	panelWidth = 28
	hudHeight  = 3
)

type glyph struct {
	r     rune
	color core.Color
}

var glyphs = map[match3.Tile]glyph{
	match3.Empty:             {' ', core.ColorDefault},
	match3.Blocked:           {'█', core.ColorGray},
	match3.Poop:              {'●', core.ColorBrown},
	match3.Coin:              {'$', core.ColorBrightYellow},
	match3.Gem:               {'◆', core.ColorBrightCyan},
	match3.Rocket:            {'▲', core.ColorBrightRed},
	match3.Diamond:           {'♦', core.ColorBrightBlue},
	match3.Moon:              {'☾', core.ColorBrightMagenta},
	match3.StripedHorizontal: {'═', core.ColorBrightWhite},
	match3.StripedVertical:   {'║', core.ColorBrightWhite},
	match3.Wrapped:           {'▣', core.ColorOrange},
	match3.ColorBomb:         {'✱', core.ColorBrightWhite},
}

var tileLabels = map[match3.Tile]string{
	match3.StripedHorizontal: "Striped tile",
	match3.StripedVertical:   "Striped tile",
	match3.Wrapped:           "Wrapped tile",
	match3.ColorBomb:         "Colour bomb",
}

func tileLabel(t match3.Tile) string {
	if l, ok := tileLabels[t]; ok {
		return l
	}
	return t.String()
}

var boosterKeys = map[match3.Booster]string{
	match3.BoosterHammer:     "1",
	match3.BoosterShuffle:    "2",
	match3.BoosterExtraMoves: "3",
	match3.BoosterHint:       "4",
}

func boosterLabel(b match3.Booster) string {
	return strings.ReplaceAll(string(b), "_", " ")
}

// layout places the board and the side panel on the screen.
type layout struct {
	board    core.Rect
	panel    core.Rect
	tooSmall bool
}

func layoutFor(screenW, screenH int, b match3.Board) layout {
	boardW := b.Cols*cellWidth + 2
	boardH := b.Rows + 2
	totalW := boardW + 2 + panelWidth
	x := max((screenW-totalW)/2, 0)
	return layout{
		board:    core.NewRect(x, hudHeight, boardW, boardH),
		panel:    core.NewRect(x+boardW+2, hudHeight, panelWidth, boardH),
		tooSmall: screenW < totalW || screenH < hudHeight+boardH+2,
	}
}

// cellAt maps a screen position inside the board frame to a cell.
func (l layout) cellAt(p core.Point) (match3.Position, bool) {
	inner := core.NewRect(l.board.X+1, l.board.Y+1, l.board.W-2, l.board.H-2)
	if l.tooSmall || !inner.Contains(p.X, p.Y) {
		return match3.Position{}, false
	}
	return match3.Position{Row: p.Y - inner.Y, Col: (p.X - inner.X) / cellWidth}, true
}

// Render draws the game state to the screen.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()

	if g.sess == nil {
		g.renderStartError(dst)
		return
	}

	b := g.board()
	l := layoutFor(dst.Width(), dst.Height(), b)
	if l.tooSmall {
		g.renderTooSmall(dst)
		return
	}

	g.renderHUD(dst)
	g.renderBoard(dst, l, b)
	g.renderPanel(dst, l)

	if g.messageLeft > 0 {
		dst.DrawTextCenteredColored(l.board.Bottom(), g.message, g.messageColor)
	}

	switch {
	case g.sess.Summary() != nil:
		g.renderSummary(dst, l)
	case g.paused:
		drawBanner(dst, l.board, []string{"PAUSED", "", "P to resume"}, core.ColorBrightYellow)
	}
}

func (g *Game) renderTooSmall(dst *core.Screen) {
	y := dst.Height() / 2
	dst.DrawTextCentered(y, "Window too small")
	dst.DrawTextCentered(y+1, "Please resize terminal")
}

func (g *Game) renderStartError(dst *core.Screen) {
	y := dst.Height()/2 - 2
	dst.DrawTextCenteredColored(y, g.Title(), core.ColorBrightYellow)
	msg := "Could not start the level"
	if g.startErr != nil && isInsufficientFunds(g.startErr) {
		msg = fmt.Sprintf("Not enough credits: entry costs %d", g.cfg.Economy.EntryFee)
	}
	dst.DrawTextCenteredColored(y+2, msg, core.ColorBrightRed)
	if g.creditsKnown {
		dst.DrawTextCentered(y+3, fmt.Sprintf("Balance: %d", g.credits))
	}
	dst.DrawTextCentered(y+5, "R: retry   Q: quit")
}

func (g *Game) renderHUD(dst *core.Screen) {
	dst.DrawTextCenteredColored(0, strings.ToUpper(g.Title()), core.ColorBrightYellow)

	p := g.sess.Engine().Progress()
	lvl := g.sess.Engine().Level()
	var parts []string
	if g.classic {
		parts = append(parts, fmt.Sprintf("Score %d", p.Score))
	} else {
		parts = append(parts, fmt.Sprintf("Level %d", lvl.Number), fmt.Sprintf("Score %d/%d", p.Score, lvl.RequiredScore))
	}
	parts = append(parts, fmt.Sprintf("Moves %d", p.Moves))
	if g.creditsKnown {
		parts = append(parts, fmt.Sprintf("Credits %d", g.credits))
	}
	dst.DrawTextCentered(1, strings.Join(parts, "  ·  "))
}

func (g *Game) renderBoard(dst *core.Screen, l layout, b match3.Board) {
	dst.DrawBox(l.board, core.ColorGray)

	selected, hasSel := g.sess.Engine().Selection()
	finished := g.sess.Summary() != nil
	for r := 0; r < b.Rows; r++ {
		for c := 0; c < b.Cols; c++ {
			p := match3.Position{Row: r, Col: c}
			x := l.board.X + 1 + c*cellWidth
			y := l.board.Y + 1 + r

			gl := glyphs[b.At(p)]
			dst.SetColored(x+1, y, gl.r, gl.color)

			left, right, frame := ' ', ' ', core.ColorDefault
			switch {
			case hasSel && p == selected:
				left, right, frame = '<', '>', core.ColorBrightGreen
			case g.hint != nil && (p == g.hint[0] || p == g.hint[1]):
				left, right, frame = '(', ')', core.ColorBrightYellow
			case p == g.cursor && !finished:
				left, right, frame = '[', ']', core.ColorBrightWhite
			}
			dst.SetColored(x, y, left, frame)
			dst.SetColored(x+2, y, right, frame)
		}
	}
}

func (g *Game) renderPanel(dst *core.Screen, l layout) {
	x, y := l.panel.X, l.panel.Y
	line := func(text string, c core.Color) {
		if y < l.panel.Bottom() {
			dst.DrawTextColored(x, y, text, c)
		}
		y++
	}

	p := g.sess.Engine().Progress()
	if len(p.Objectives) > 0 {
		line("Objectives", core.ColorBrightWhite)
		for _, o := range p.Objectives {
			mark, c := "·", core.ColorDefault
			if o.Done() {
				mark, c = "✓", core.ColorBrightGreen
			}
			line(fmt.Sprintf(" %s %-9s %d/%d", mark, o.Type, min(o.Current, o.Target), o.Target), c)
		}
		y++
	}

	line("Boosters", core.ColorBrightWhite)
	econ := g.sess.Economy()
	for _, b := range match3.Boosters {
		price := "free"
		if cost := econ.BoosterCost(b); cost > 0 {
			price = fmt.Sprintf("%d cr", cost)
		}
		line(fmt.Sprintf(" %s %-11s %s", boosterKeys[b], boosterLabel(b), price), core.ColorDefault)
	}
	y++
	if p.Cascades > 0 {
		line(fmt.Sprintf("Best combo x%.1f", p.ComboMultiplier), core.ColorBrightMagenta)
	}
}

func (g *Game) renderSummary(dst *core.Screen, l layout) {
	sum := g.sess.Summary()
	var title string
	var c core.Color
	switch sum.Status {
	case match3.StatusLevelComplete:
		title, c = "LEVEL COMPLETE", core.ColorBrightGreen
	case match3.StatusGameOver:
		title, c = "OUT OF MOVES", core.ColorBrightRed
	default:
		title, c = "LEVEL ENDED", core.ColorYellow
	}

	lines := []string{title}
	if sum.Status == match3.StatusLevelComplete {
		lines = append(lines, strings.Repeat("★", sum.Stars)+strings.Repeat("☆", 3-sum.Stars))
	}
	lines = append(lines, fmt.Sprintf("Score %d", sum.Score))
	if sum.Reward > 0 {
		lines = append(lines, fmt.Sprintf("+%d credits", sum.Reward))
	}
	lines = append(lines, "")
	if g.CanAdvance() {
		lines = append(lines, "N: next level")
	}
	lines = append(lines, "R: replay  Q: quit")
	drawBanner(dst, l.board, lines, c)
}

// drawBanner draws a boxed message centered over area.
func drawBanner(dst *core.Screen, area core.Rect, lines []string, c core.Color) {
	w := 0
	for _, s := range lines {
		w = max(w, len([]rune(s)))
	}
	w += 4
	h := len(lines) + 2
	box := core.NewRect(area.X+(area.W-w)/2, area.Y+(area.H-h)/2, w, h)
	dst.DrawRect(box, ' ')
	dst.DrawBox(box, c)
	for i, s := range lines {
		n := len([]rune(s))
		dst.DrawTextColored(box.X+(w-n)/2, box.Y+1+i, s, c)
	}
}
