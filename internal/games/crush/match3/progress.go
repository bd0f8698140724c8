package match3

// ObjectiveType names the counter an objective is measured against.
type ObjectiveType string

const (
	ObjectiveScore    ObjectiveType = "score"
	ObjectiveTiles    ObjectiveType = "tiles"
	ObjectiveMoves    ObjectiveType = "moves"
	ObjectiveCascades ObjectiveType = "cascades"
	ObjectiveSpecial  ObjectiveType = "special"
)

// Objective is one level requirement.
type Objective struct {
	Type    ObjectiveType `json:"type"`
	Target  int           `json:"target"`
	Current int           `json:"current"`
}

// Done reports whether the requirement is met.
func (o Objective) Done() bool {
	return o.Current >= o.Target
}

// Progress is the mutable per-level state.
type Progress struct {
	Score               int         `json:"score"`
	Moves               int         `json:"moves"`
	MovesUsed           int         `json:"moves_used"`
	ClearedTiles        int         `json:"cleared_tiles"`
	SpecialTilesCreated int         `json:"special_tiles_created"`
	SpecialTilesCleared int         `json:"special_tiles_cleared"`
	Cascades            int         `json:"cascades"`
	ComboMultiplier     float64     `json:"combo_multiplier"`
	Objectives          []Objective `json:"objectives"`
}

// NewProgress starts a level.
func NewProgress(level LevelConfig) Progress {
	p := Progress{
		Moves:           level.Moves,
		ComboMultiplier: 1,
		Objectives:      make([]Objective, len(level.Objectives)),
	}
	for i, o := range level.Objectives {
		p.Objectives[i] = Objective{Type: o.Type, Target: o.Target}
	}
	return p
}

// Clone returns a copy that shares no memory with p.
func (p Progress) Clone() Progress {
	c := p
	c.Objectives = append([]Objective(nil), p.Objectives...)
	return c
}

// RefreshObjectives recomputes every objective from the counters.
func RefreshObjectives(p *Progress) {
	for i := range p.Objectives {
		o := &p.Objectives[i]
		switch o.Type {
		case ObjectiveScore:
			o.Current = p.Score
		case ObjectiveTiles:
			o.Current = p.ClearedTiles
		case ObjectiveMoves:
			o.Current = p.MovesUsed
		case ObjectiveCascades:
			o.Current = p.Cascades
		case ObjectiveSpecial:
			o.Current = p.SpecialTilesCleared
		}
	}
}

// CheckLevelComplete is true when every objective is met. A progress with no
// objectives never completes.
func CheckLevelComplete(p Progress) bool {
	if len(p.Objectives) == 0 {
		return false
	}
	for _, o := range p.Objectives {
		if !o.Done() {
			return false
		}
	}
	return true
}

// CheckGameOver is true when the move budget is spent and the level is not
// complete.
func CheckGameOver(p Progress) bool {
	return p.Moves <= 0 && !CheckLevelComplete(p)
}

// Stars rates a finished level from 0 to 3 by score against the requirement.
func Stars(p Progress, level LevelConfig) int {
	if level.RequiredScore <= 0 || p.Score < level.RequiredScore {
		return 0
	}
	switch ratio := float64(p.Score) / float64(level.RequiredScore); {
	case ratio >= 2:
		return 3
	case ratio >= 1.5:
		return 2
	default:
		return 1
	}
}
