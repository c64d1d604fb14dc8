package breakout

import (
	"encoding/json"
	"hash/fnv"
)

// Snapshot is a self-contained view of a session for spectators and
// determinism checks. Field order is fixed, so the JSON form is stable.
type Snapshot struct {
	Tick             uint64         `json:"tick"`
	Level            int            `json:"level"`
	LevelName        string         `json:"level_name"`
	State            string         `json:"state"`
	Score            int            `json:"score"`
	Lives            int            `json:"lives"`
	Message          string         `json:"message,omitempty"`
	ExplosionNextHit bool           `json:"explosion_next_hit"`
	World            [2]float64     `json:"world"`
	Paddle           PaddleState    `json:"paddle"`
	Balls            []BallState    `json:"balls"`
	Bricks           []BrickState   `json:"bricks"`
	Powerups         []PowerupState `json:"powerups"`
	Lasers           []LaserState   `json:"lasers"`
}

// PaddleState is the paddle part of a Snapshot.
type PaddleState struct {
	X     float64 `json:"x"`
	Y     float64 `json:"y"`
	Width float64 `json:"width"`
}

// BallState is one ball in a Snapshot.
type BallState struct {
	X     float64 `json:"x"`
	Y     float64 `json:"y"`
	VX    float64 `json:"vx"`
	VY    float64 `json:"vy"`
	Stuck bool    `json:"stuck,omitempty"`
	Main  bool    `json:"main,omitempty"`
}

// BrickState is one standing brick in a Snapshot.
type BrickState struct {
	Index  int     `json:"index"`
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Health int     `json:"health"`
	Boss   bool    `json:"boss,omitempty"`
}

// PowerupState is one falling pickup in a Snapshot.
type PowerupState struct {
	Type string  `json:"type"`
	X    float64 `json:"x"`
	Y    float64 `json:"y"`
}

// LaserState is one live laser in a Snapshot.
type LaserState struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Snapshot captures the current session state.
func (s *Session) Snapshot() Snapshot {
	snap := Snapshot{
		Tick:             s.Tick,
		Level:            s.Level,
		LevelName:        LevelName(s.Level),
		State:            s.State,
		Score:            s.Score,
		Lives:            s.Lives,
		ExplosionNextHit: s.ExplosionNextHit,
		World:            [2]float64{s.cfg.World.Width, s.cfg.World.Height},
		Paddle: PaddleState{
			X:     s.Paddle.X,
			Y:     s.Paddle.Y,
			Width: s.Paddle.HalfWidth * 2,
		},
		Balls:    make([]BallState, 0, len(s.Balls)),
		Bricks:   make([]BrickState, 0, len(s.Bricks)),
		Powerups: make([]PowerupState, 0, len(s.Powerups)),
		Lasers:   make([]LaserState, 0, len(s.Lasers)),
	}
	if s.ShowMessage {
		snap.Message = s.Message
	}

	for _, b := range s.Balls {
		if !b.Active {
			continue
		}
		snap.Balls = append(snap.Balls, BallState{X: b.X, Y: b.Y, VX: b.VX, VY: b.VY, Stuck: b.Stuck, Main: b.Main})
	}
	for i, b := range s.Bricks {
		if !b.Active {
			continue
		}
		snap.Bricks = append(snap.Bricks, BrickState{Index: i, X: b.X, Y: b.Y, Health: b.Health, Boss: b.Boss})
	}
	for _, p := range s.Powerups {
		if !p.Active {
			continue
		}
		snap.Powerups = append(snap.Powerups, PowerupState{Type: p.Type.String(), X: p.X, Y: p.Y})
	}
	for _, l := range s.Lasers {
		if l.Done {
			continue
		}
		snap.Lasers = append(snap.Lasers, LaserState{X: l.X, Y: l.Y})
	}
	return snap
}

// Hash returns an FNV-1a digest of the snapshot for determinism testing.
func (snap *Snapshot) Hash() uint64 {
	h := fnv.New64a()
	// Snapshot holds only plain values, Marshal cannot fail.
	data, _ := json.Marshal(snap)
	_, _ = h.Write(data)
	return h.Sum64()
}
