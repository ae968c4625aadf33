package match

import (
	"context"
	"time"

	"github.com/vovakirdan/tui-jumper/internal/core"
	"github.com/vovakirdan/tui-jumper/internal/world"
)

// EndReason indicates why a match ended.
type EndReason int

const (
	// EndCompleted means at most one player was left standing.
	EndCompleted EndReason = iota

	// EndTickLimit means a headless run hit its tick budget.
	EndTickLimit

	// EndAborted means the players quit or restarted mid-match.
	EndAborted
)

// String returns the reason as stored in match history.
func (r EndReason) String() string {
	switch r {
	case EndCompleted:
		return "completed"
	case EndTickLimit:
		return "tick_limit"
	case EndAborted:
		return "aborted"
	default:
		return "unknown"
	}
}

// PlayerResult is one seat's final state.
type PlayerResult struct {
	Slot   core.PlayerID
	Name   string
	Bot    bool
	Kills  int
	Alive  bool
	DiedAt uint64 // Tick of elimination, 0 for survivors
}

// Kill records one elimination.
type Kill struct {
	Tick   uint64
	Killer string // Empty when nobody gets credit
	Victim string
	Weapon string
}

// Result contains the outcome of a match.
type Result struct {
	MatchID   MatchID
	Mode      Mode
	MapID     string
	Seed      int64
	Reason    EndReason
	Winner    string // Empty for a draw or an unfinished match
	Players   []PlayerResult
	Kills     []Kill
	Ticks     uint64
	Duration  float64 // Simulated seconds
	StartedAt time.Time
}

// ResultSaver persists finished matches.
type ResultSaver interface {
	SaveResult(ctx context.Context, r Result) error
}

// Recorder collects kills from step results while a match runs.
type Recorder struct {
	match *Match
	kills []Kill
}

// NewRecorder starts recording m.
func NewRecorder(m *Match) *Recorder {
	return &Recorder{match: m}
}

// Observe records the kills in one step result.
func (r *Recorder) Observe(w *world.World, res world.StepResult) {
	for _, ev := range res.Events {
		if ev.Kind != world.EventKill {
			continue
		}
		k := Kill{
			Tick:   ev.Tick,
			Victim: w.PlayerName(ev.Victim),
			Weapon: ev.Weapon.String(),
		}
		if ev.Killer != ev.Victim {
			k.Killer = w.PlayerName(ev.Killer)
		}
		r.kills = append(r.kills, k)
	}
}

// Kills returns the kills recorded so far.
func (r *Recorder) Kills() []Kill {
	return append([]Kill(nil), r.kills...)
}

// Result summarizes the match as it stands in w.
func (r *Recorder) Result(w *world.World, reason EndReason) Result {
	res := Result{
		MatchID:   r.match.ID(),
		Mode:      r.match.Mode(),
		MapID:     r.match.MapID,
		Seed:      r.match.Seed,
		Reason:    reason,
		Kills:     r.Kills(),
		Ticks:     w.Tick(),
		Duration:  w.Time(),
		StartedAt: r.match.StartedAt,
	}
	if w.Over() && w.Winner() != world.NoEntity {
		res.Winner = w.PlayerName(w.Winner())
	}
	for _, p := range w.Roster() {
		seat, _ := r.match.Seat(p.Slot)
		res.Players = append(res.Players, PlayerResult{
			Slot:   p.Slot,
			Name:   p.Name,
			Bot:    seat.Bot,
			Kills:  p.Kills,
			Alive:  p.Alive,
			DiedAt: p.DiedAt,
		})
	}
	return res
}
