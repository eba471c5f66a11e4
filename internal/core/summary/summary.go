// Package summary folds already-filtered pendency rows into per-room counts.
// Nothing here is stored; the summary is recomputed from every listing.
package summary

import "sort"

// Key identifies one room visit: an ISO report date and a room code.
type Key struct {
	ReportDate string
	RoomCode   string
}

// RoomCount is the number of pendencies raised for one room on one date.
type RoomCount struct {
	ReportDate string
	RoomCode   string
	Count      int
}

// ByRoom groups keys by (report date, room code) and counts them, ordered by
// date descending then room code ascending.
func ByRoom(keys []Key) []RoomCount {
	counts := make(map[Key]int, len(keys))
	for _, k := range keys {
		counts[k]++
	}

	out := make([]RoomCount, 0, len(counts))
	for k, n := range counts {
		out = append(out, RoomCount{ReportDate: k.ReportDate, RoomCode: k.RoomCode, Count: n})
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].ReportDate != out[j].ReportDate {
			return out[i].ReportDate > out[j].ReportDate
		}
		return out[i].RoomCode < out[j].RoomCode
	})
	return out
}

// Total sums the counts.
func Total(counts []RoomCount) int {
	n := 0
	for _, c := range counts {
		n += c.Count
	}
	return n
}
