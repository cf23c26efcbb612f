package summary

import "github.com/stefanpenner/focusone/pkg/goal"

// Bucket is one bar of a histogram.
type Bucket struct {
	Key   string `json:"key"`
	Label string `json:"label"`
	Color string `json:"color"`
	Count int    `json:"count"`
}

// Ratio is Count relative to the histogram peak, in [0,1].
func (b Bucket) Ratio(peak int) float64 {
	if peak == 0 {
		return 0
	}
	return float64(b.Count) / float64(peak)
}

// Histogram is a fixed-order distribution of goals.
type Histogram struct {
	Buckets []Bucket `json:"buckets"`
	Peak    int      `json:"peak"`
	Total   int      `json:"total"`
}

// ByCategory counts goals per category in lane order. Every category gets
// a bucket, including empty ones.
func ByCategory(goals []goal.Goal) Histogram {
	counts := map[goal.Category]int{}
	for _, g := range goals {
		counts[g.Category]++
	}
	h := Histogram{Total: len(goals)}
	for _, c := range goal.Categories {
		h.add(Bucket{Key: string(c), Label: c.Label(), Color: c.Color(), Count: counts[c]})
	}
	return h
}

// ByPriority counts goals per priority from critical down to low.
func ByPriority(goals []goal.Goal) Histogram {
	counts := map[goal.Priority]int{}
	for _, g := range goals {
		counts[g.Priority]++
	}
	h := Histogram{Total: len(goals)}
	for i := len(goal.Priorities) - 1; i >= 0; i-- {
		p := goal.Priorities[i]
		h.add(Bucket{Key: string(p), Label: p.Label(), Color: p.Color(), Count: counts[p]})
	}
	return h
}

func (h *Histogram) add(b Bucket) {
	h.Buckets = append(h.Buckets, b)
	if b.Count > h.Peak {
		h.Peak = b.Count
	}
}
