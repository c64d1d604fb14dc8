package breakout

import (
	"fmt"
	"math"

	"github.com/vovakirdan/brickstorm/internal/config"
)

// Brick footprints in world pixels.
const (
	BrickWidth  = 60.0
	BrickHeight = 24.0
	BossWidth   = 120.0
	BossHeight  = 48.0
)

// fieldMidY splits the field into the upper and lower texture halves.
const fieldMidY = 450.0

// levelLayout describes one hand-designed layout.
type levelLayout struct {
	name   string
	bossX  float64
	bossY  float64
	bricks func() [][2]float64
}

var levels = []levelLayout{
	{name: "Columns", bossX: 600, bossY: 340, bricks: columnsLayout},
	{name: "Halo", bossX: 600, bossY: 300, bricks: haloLayout},
	{name: "Satellites", bossX: 600, bossY: 200, bricks: satellitesLayout},
}

// LevelCount returns the number of levels.
func LevelCount() int {
	return len(levels)
}

// LevelName returns the display name of a 1-based level, or "" if unknown.
func LevelName(level int) string {
	if level < 1 || level > len(levels) {
		return ""
	}
	return levels[level-1].name
}

// BossPosition returns the boss brick center for a 1-based level.
func BossPosition(level int) (float64, float64, bool) {
	if level < 1 || level > len(levels) {
		return 0, 0, false
	}
	l := levels[level-1]
	return l.bossX, l.bossY, true
}

// GenerateLevel builds the brick set for a 1-based level. Regular bricks
// come first in a fixed order, the boss is last.
func GenerateLevel(level int, cfg config.BrickConfig) ([]*Brick, error) {
	if level < 1 || level > len(levels) {
		return nil, fmt.Errorf("breakout: level %d out of range 1..%d", level, len(levels))
	}
	def := levels[level-1]

	positions := def.bricks()
	bricks := make([]*Brick, 0, len(positions)+1)
	for _, pos := range positions {
		bricks = append(bricks, &Brick{
			X:         pos[0],
			Y:         pos[1],
			W:         BrickWidth,
			H:         BrickHeight,
			Health:    cfg.Health,
			MaxHealth: cfg.Health,
			Active:    true,
			Upper:     pos[1] < fieldMidY,
		})
	}

	bricks = append(bricks, &Brick{
		X:         def.bossX,
		Y:         def.bossY,
		W:         BossWidth,
		H:         BossHeight,
		Health:    cfg.BossHealth,
		MaxHealth: cfg.BossHealth,
		Boss:      true,
		Active:    true,
		Decor:     true,
		Upper:     def.bossY < fieldMidY,
	})
	return bricks, nil
}

// columnsLayout: four clusters of two columns, six rows each.
func columnsLayout() [][2]float64 {
	var out [][2]float64
	for _, cx := range []float64{240, 480, 720, 960} {
		for _, dx := range []float64{-32, 32} {
			for r := range 6 {
				out = append(out, [2]float64{cx + dx, 120 + 30*float64(r)})
			}
		}
	}
	return out
}

// haloExclusion is the clear zone around the Halo boss. Every ring radius
// lies outside it, so the rings never crowd the boss.
const haloExclusion = 110.0

// haloRings are the Halo rings, innermost first.
var haloRings = []struct {
	radius float64
	count  int
}{
	{150, 12},
	{230, 18},
}

// haloLayout: two rings around the boss.
func haloLayout() [][2]float64 {
	const cx, cy = 600.0, 300.0

	var out [][2]float64
	for _, ring := range haloRings {
		for k := range ring.count {
			rad := float64(k) * 2 * math.Pi / float64(ring.count)
			x := math.Round(cx + ring.radius*math.Cos(rad))
			y := math.Round(cy + ring.radius*math.Sin(rad))
			out = append(out, [2]float64{x, y})
		}
	}
	return out
}

// satellitesLayout: five 3x3 clusters scattered around the boss.
func satellitesLayout() [][2]float64 {
	centers := [][2]float64{
		{220, 200}, {980, 200},
		{400, 400}, {800, 400},
		{600, 520},
	}

	var out [][2]float64
	for _, c := range centers {
		for row := -1; row <= 1; row++ {
			for col := -1; col <= 1; col++ {
				out = append(out, [2]float64{c[0] + 64*float64(col), c[1] + 30*float64(row)})
			}
		}
	}
	return out
}
