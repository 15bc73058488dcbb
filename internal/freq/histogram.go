package freq

import "sort"

// Histogram maps a byte value to the number of times it occurs.
// Byte values that do not occur are absent rather than zero.
type Histogram map[byte]int

// Entry is a single histogram bucket.
type Entry struct {
	Byte  byte
	Count int
}

// Build counts the occurrences of every byte value in b.
func Build(b []byte) Histogram {
	h := make(Histogram)
	for _, v := range b {
		h[v]++
	}
	return h
}

// Total returns the sum of all counts, which equals the length of the
// buffer the histogram was built from.
func (h Histogram) Total() int {
	var total int
	for _, n := range h {
		total += n
	}
	return total
}

// Ranked returns the entries ordered by count, highest first.
// Equal counts are ordered by ascending byte value so the ranking never
// depends on map iteration order.
func (h Histogram) Ranked() []Entry {
	entries := make([]Entry, 0, len(h))
	for b, n := range h {
		entries = append(entries, Entry{Byte: b, Count: n})
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Count != entries[j].Count {
			return entries[i].Count > entries[j].Count
		}
		return entries[i].Byte < entries[j].Byte
	})
	return entries
}
