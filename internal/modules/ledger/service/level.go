package service

// XPPerLevelStep scales the level curve: level n starts at 100*(n-1)^2 XP.
const XPPerLevelStep = 100

// LevelOf derives the level from total XP. It is monotonic and never below 1.
func LevelOf(xp int) int {
	if xp <= 0 {
		return 1
	}
	return 1 + isqrt(xp/XPPerLevelStep)
}

// LevelFloor is the XP at which level starts.
func LevelFloor(level int) int {
	if level <= 1 {
		return 0
	}
	return XPPerLevelStep * (level - 1) * (level - 1)
}

// Progress describes where xp sits inside its level.
type Progress struct {
	Level   int
	FloorXP int
	NextXP  int
	Percent float64
}

func ProgressOf(xp int) Progress {
	if xp < 0 {
		xp = 0
	}
	level := LevelOf(xp)
	floor := LevelFloor(level)
	next := LevelFloor(level + 1)
	p := Progress{Level: level, FloorXP: floor, NextXP: next}
	if next > floor {
		p.Percent = float64(xp-floor) / float64(next-floor) * 100
	}
	return p
}

func isqrt(n int) int {
	if n < 2 {
		return n
	}
	x := n
	y := (x + 1) / 2
	for y < x {
		x = y
		y = (x + n/x) / 2
	}
	return x
}
