package years

import (
	"github.com/emirpasic/gods/queues/priorityqueue"
)

// Collection accumulates year ranges and drains them as a minimal sorted set
// of disjoint ranges.
type Collection struct {
	queue *priorityqueue.Queue
}

// NewCollection returns an empty collection.
func NewCollection() *Collection {
	return &Collection{queue: priorityqueue.NewWith(byBeginThenWidest)}
}

// byBeginThenWidest orders ranges by ascending begin and, for a shared begin,
// descending end.
func byBeginThenWidest(a, b interface{}) int {
	ra, rb := a.(Range), b.(Range)
	if c := compareYears(ra.begin, rb.begin); c != 0 {
		return c
	}
	return compareYears(rb.end, ra.end)
}

// AddRange records r.
func (c *Collection) AddRange(r Range) {
	c.queue.Enqueue(r)
}

// Add records the years covered by s.
func (c *Collection) Add(s Spec) {
	c.AddRange(s.Range())
}

// Extend records every spec in specs.
func (c *Collection) Extend(specs []Spec) {
	for _, s := range specs {
		c.Add(s)
	}
}

// Len returns the number of ranges recorded and not yet drained.
func (c *Collection) Len() int { return c.queue.Size() }

// Coalesced drains the collection and returns its ranges merged wherever they
// overlap or touch. The collection is empty afterwards.
func (c *Collection) Coalesced() []Range {
	sorted := make([]Range, 0, c.queue.Size())
	for {
		v, ok := c.queue.Dequeue()
		if !ok {
			break
		}
		sorted = append(sorted, v.(Range))
	}
	return reduceAdjacent(sorted)
}

// CoalescedSpecs is Coalesced rendered as specifiers, single years where a
// range spans one year.
func (c *Collection) CoalescedSpecs() []Spec {
	ranges := c.Coalesced()
	specs := make([]Spec, len(ranges))
	for i, r := range ranges {
		specs[i] = FromRange(r)
	}
	return specs
}

// Coalesce returns the minimal sorted set of disjoint ranges covering ranges.
func Coalesce(ranges []Range) []Range {
	c := NewCollection()
	for _, r := range ranges {
		c.AddRange(r)
	}
	return c.Coalesced()
}

// reduceAdjacent merges neighbouring ranges of an already sorted slice in a
// single left-to-right pass.
func reduceAdjacent(sorted []Range) []Range {
	if len(sorted) == 0 {
		return nil
	}
	out := make([]Range, 0, len(sorted))
	current := sorted[0]
	for _, next := range sorted[1:] {
		if current.CanMerge(next) {
			current = current.Merge(next)
			continue
		}
		out = append(out, current)
		current = next
	}
	return append(out, current)
}
