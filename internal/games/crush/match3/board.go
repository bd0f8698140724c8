package match3

import "errors"

// Generation errors.
var (
	ErrBoardTooSmall = errors.New("match3: board needs at least 3 rows and 3 columns")
	ErrKindCount     = errors.New("match3: basic kinds must be 3..6")
)

// Rand is the source of randomness used for generation, refill and shuffle.
// *math/rand.Rand satisfies it.
type Rand interface {
	Intn(n int) int
}

// Position addresses a cell as board[Row][Col].
type Position struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

// Adjacent reports whether a and b are 4-directional neighbours.
func Adjacent(a, b Position) bool {
	dr, dc := a.Row-b.Row, a.Col-b.Col
	if dr < 0 {
		dr = -dr
	}
	if dc < 0 {
		dc = -dc
	}
	return dr+dc == 1
}

// Board is a fixed-size grid of tiles stored row-major.
type Board struct {
	Rows  int      `json:"rows"`
	Cols  int      `json:"cols"`
	Cells [][]Tile `json:"cells"`
}

// NewBoard returns a board with every cell Empty.
func NewBoard(rows, cols int) Board {
	cells := make([][]Tile, rows)
	for r := range cells {
		cells[r] = make([]Tile, cols)
	}
	return Board{Rows: rows, Cols: cols, Cells: cells}
}

// FromRows builds a board from literal rows. Used by tests and level files.
func FromRows(rows [][]Tile) Board {
	b := NewBoard(len(rows), 0)
	if len(rows) > 0 {
		b.Cols = len(rows[0])
	}
	for r, row := range rows {
		b.Cells[r] = append([]Tile(nil), row...)
	}
	return b
}

// InBounds reports whether p lies on the board.
func (b Board) InBounds(p Position) bool {
	return p.Row >= 0 && p.Row < b.Rows && p.Col >= 0 && p.Col < b.Cols
}

// At returns the tile at p, or Blocked when p is off the board.
func (b Board) At(p Position) Tile {
	if !b.InBounds(p) {
		return Blocked
	}
	return b.Cells[p.Row][p.Col]
}

// Set writes t at p. Out-of-bounds writes are ignored.
func (b Board) Set(p Position, t Tile) {
	if b.InBounds(p) {
		b.Cells[p.Row][p.Col] = t
	}
}

// Clone returns a deep copy.
func (b Board) Clone() Board {
	c := NewBoard(b.Rows, b.Cols)
	for r := range b.Cells {
		copy(c.Cells[r], b.Cells[r])
	}
	return c
}

// Equal compares dimensions and every cell.
func (b Board) Equal(o Board) bool {
	if b.Rows != o.Rows || b.Cols != o.Cols {
		return false
	}
	for r := range b.Cells {
		for c := range b.Cells[r] {
			if b.Cells[r][c] != o.Cells[r][c] {
				return false
			}
		}
	}
	return true
}

// Count returns how many cells hold kind.
func (b Board) Count(kind Tile) int {
	n := 0
	for _, row := range b.Cells {
		for _, t := range row {
			if t == kind {
				n++
			}
		}
	}
	return n
}

// MostCommonBasic returns the basic kind with the most cells, lowest kind on
// ties. Returns Empty when the board holds no basic tiles.
func (b Board) MostCommonBasic() Tile {
	best, bestN := Empty, 0
	for k := Poop; k <= Moon; k++ {
		if n := b.Count(k); n > bestN {
			best, bestN = k, n
		}
	}
	return best
}

// Generate fills a rows x cols board with basic tiles so that no run of three
// exists. Cells listed in blocked become Blocked.
func Generate(rows, cols, kinds int, blocked []Position, rng Rand) (Board, error) {
	if rows < 3 || cols < 3 {
		return Board{}, ErrBoardTooSmall
	}
	if kinds < 3 || kinds > MaxKinds {
		return Board{}, ErrKindCount
	}
	b := NewBoard(rows, cols)
	for _, p := range blocked {
		b.Set(p, Blocked)
	}
	Randomize(b, kinds, rng)
	return b, nil
}

// Randomize re-places every non-blocked cell in row-major order with a kind
// that does not complete a run with the two cells to its left or above.
func Randomize(b Board, kinds int, rng Rand) {
	for r := 0; r < b.Rows; r++ {
		for c := 0; c < b.Cols; c++ {
			if b.Cells[r][c] == Blocked {
				continue
			}
			b.Cells[r][c] = placeable(b, r, c, kinds, rng)
		}
	}
}

// placeable draws uniformly among the kinds that would not complete a run.
// At most two kinds are forbidden, so with three or more kinds a choice
// always exists.
func placeable(b Board, r, c, kinds int, rng Rand) Tile {
	var forbidden [2]Tile
	if c >= 2 && b.Cells[r][c-1].IsBasic() && b.Cells[r][c-1] == b.Cells[r][c-2] {
		forbidden[0] = b.Cells[r][c-1]
	}
	if r >= 2 && b.Cells[r-1][c].IsBasic() && b.Cells[r-1][c] == b.Cells[r-2][c] {
		forbidden[1] = b.Cells[r-1][c]
	}

	allowed := make([]Tile, 0, kinds)
	for i := range kinds {
		k := BasicKind(i)
		if k != forbidden[0] && k != forbidden[1] {
			allowed = append(allowed, k)
		}
	}
	return allowed[rng.Intn(len(allowed))]
}

// Drop records one tile falling within a column.
type Drop struct {
	From Position `json:"from"`
	To   Position `json:"to"`
	Tile Tile     `json:"tile"`
}

// applyGravity compacts non-empty tiles downward in every column, keeping
// their order. Blocked cells stay put and split a column into segments that
// settle independently.
func applyGravity(b Board) []Drop {
	var drops []Drop
	for c := 0; c < b.Cols; c++ {
		write := b.Rows - 1
		for r := b.Rows - 1; r >= -1; r-- {
			if r >= 0 && b.Cells[r][c] != Blocked {
				continue
			}
			// Segment (r, write] settles toward write.
			dst := write
			for src := write; src > r; src-- {
				t := b.Cells[src][c]
				if t == Empty {
					continue
				}
				if src != dst {
					b.Cells[dst][c] = t
					b.Cells[src][c] = Empty
					drops = append(drops, Drop{
						From: Position{Row: src, Col: c},
						To:   Position{Row: dst, Col: c},
						Tile: t,
					})
				}
				dst--
			}
			write = r - 1
		}
	}
	return drops
}

// refill replaces every Empty cell with a random basic tile. Unlike
// generation this may create runs; those drive the next cascade wave.
func refill(b Board, kinds int, rng Rand) []Position {
	var filled []Position
	for r := 0; r < b.Rows; r++ {
		for c := 0; c < b.Cols; c++ {
			if b.Cells[r][c] == Empty {
				b.Cells[r][c] = BasicKind(rng.Intn(kinds))
				filled = append(filled, Position{Row: r, Col: c})
			}
		}
	}
	return filled
}
