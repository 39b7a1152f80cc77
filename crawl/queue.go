// Package crawl: bounded FIFO queue with deduplication.
// Maintains a seen set so the same page is never tried twice.
package crawl

// Queue is a FIFO queue of URLs with deduplication and an optional cap.
type Queue struct {
	items []string
	seen  map[string]bool
	idx   int // current read position
	limit int // 0 means unbounded
}

// NewQueue creates an empty Queue holding at most limit URLs.
func NewQueue(limit int) *Queue {
	return &Queue{
		seen:  make(map[string]bool),
		limit: limit,
	}
}

// Add enqueues a URL if it hasn't been seen before and the queue is not
// full. It reports whether the URL was added.
func (q *Queue) Add(url string) bool {
	if q.seen[url] || q.Full() {
		return false
	}
	q.seen[url] = true
	q.items = append(q.items, url)
	return true
}

// Full reports whether the cap has been reached.
func (q *Queue) Full() bool {
	return q.limit > 0 && len(q.items) >= q.limit
}

// HasNext returns true if there are unprocessed URLs.
func (q *Queue) HasNext() bool {
	return q.idx < len(q.items)
}

// Next returns the next unprocessed URL and advances the pointer.
func (q *Queue) Next() string {
	url := q.items[q.idx]
	q.idx++
	return url
}

// Len returns the number of URLs queued so far.
func (q *Queue) Len() int {
	return len(q.items)
}

// All returns all queued URLs in insertion order.
func (q *Queue) All() []string {
	return q.items
}
