package storage

import "github.com/san-kum/flamemaker/internal/flame"

// ProfileRow totals one grid row: its hits and its mean intensity.
type ProfileRow struct {
	Row       int
	Hits      uint64
	Intensity float64
}

// Profile returns one entry per grid row, bottom row first.
func Profile(acc *flame.Accumulator) []ProfileRow {
	rows := make([]ProfileRow, acc.Height())
	for y := range rows {
		r := ProfileRow{Row: y}
		for x := 0; x < acc.Width(); x++ {
			n, _ := acc.HitCount(x, y)
			in, _ := acc.Intensity(x, y)
			r.Hits += n
			r.Intensity += in
		}
		r.Intensity /= float64(acc.Width())
		rows[y] = r
	}
	return rows
}

// Summarize returns the run metrics recorded in the metadata.
func Summarize(acc *flame.Accumulator) map[string]float64 {
	covered := 0
	for y := 0; y < acc.Height(); y++ {
		for x := 0; x < acc.Width(); x++ {
			if n, _ := acc.HitCount(x, y); n > 0 {
				covered++
			}
		}
	}
	return map[string]float64{
		"total_hits": float64(acc.TotalHits()),
		"max_hits":   float64(acc.MaxHits()),
		"coverage":   float64(covered) / float64(acc.Width()*acc.Height()),
	}
}
