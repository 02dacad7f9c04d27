package service

import "time"

const (
	selectStride     = 17
	selectProbeLimit = 10
)

// DailySelect picks k indices into a pool of n items from the date string
// alone, so a day's selection is recomputed on every read and rotates when
// the date changes. Collisions are probed forward a bounded number of times
// and then accepted, so uniqueness is best effort.
func DailySelect(date string, n, k int) []int {
	if n <= 0 || k <= 0 {
		return []int{}
	}
	if k > n {
		k = n
	}

	seed := 0
	for _, r := range date {
		seed += int(r)
	}

	picked := make([]int, 0, k)
	used := make(map[int]bool, k)
	for i := 0; i < k; i++ {
		candidate := (seed + i*selectStride) % n
		for attempt := 0; used[candidate] && attempt < selectProbeLimit; attempt++ {
			candidate = (candidate + 1) % n
		}
		used[candidate] = true
		picked = append(picked, candidate)
	}
	return picked
}

// DateKey formats t as the YYYY-MM-DD date in loc.
func DateKey(t time.Time, loc *time.Location) string {
	if loc == nil {
		loc = time.UTC
	}
	return t.In(loc).Format("2006-01-02")
}
