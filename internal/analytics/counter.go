package analytics

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"
)

// Counter is a string→int counter that remembers first-touch key order.
// JSON marshaling preserves that order, so repeated runs over the same input
// produce byte-identical counter files and top-N views break count ties by
// insertion order.
type Counter struct {
	keys   []string
	counts map[string]int
}

// NewCounter returns an empty counter.
func NewCounter() *Counter {
	return &Counter{counts: make(map[string]int)}
}

// Add increments key by n, registering the key on first touch.
func (c *Counter) Add(key string, n int) {
	if _, ok := c.counts[key]; !ok {
		c.keys = append(c.keys, key)
	}
	c.counts[key] += n
}

// Get returns the count for key, zero if absent.
func (c *Counter) Get(key string) int {
	return c.counts[key]
}

// Len returns the number of distinct keys.
func (c *Counter) Len() int {
	return len(c.keys)
}

// Total returns the sum of all counts.
func (c *Counter) Total() int {
	total := 0
	for _, n := range c.counts {
		total += n
	}
	return total
}

// Keys returns the keys in insertion order. The slice is shared; callers
// must not mutate it.
func (c *Counter) Keys() []string {
	return c.keys
}

// Top returns a new counter holding the n highest-count entries in
// descending count order. Ties keep insertion order.
func (c *Counter) Top(n int) *Counter {
	ordered := make([]string, len(c.keys))
	copy(ordered, c.keys)
	sort.SliceStable(ordered, func(i, j int) bool {
		return c.counts[ordered[i]] > c.counts[ordered[j]]
	})
	if n > len(ordered) {
		n = len(ordered)
	}

	top := NewCounter()
	for _, key := range ordered[:n] {
		top.Add(key, c.counts[key])
	}
	return top
}

// MarshalJSON emits a JSON object with keys in insertion order.
func (c *Counter) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, key := range c.keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		name, err := json.Marshal(key)
		if err != nil {
			return nil, err
		}
		buf.Write(name)
		buf.WriteByte(':')
		fmt.Fprintf(&buf, "%d", c.counts[key])
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON reads a JSON object, preserving the file's key order.
func (c *Counter) UnmarshalJSON(data []byte) error {
	c.keys = nil
	c.counts = make(map[string]int)

	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return fmt.Errorf("counter: expected JSON object, got %v", tok)
	}

	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return err
		}
		key, ok := keyTok.(string)
		if !ok {
			return fmt.Errorf("counter: expected string key, got %v", keyTok)
		}

		var n int
		if err := dec.Decode(&n); err != nil {
			return fmt.Errorf("counter: value for %q: %w", key, err)
		}
		c.Add(key, n)
	}

	if _, err := dec.Token(); err != nil {
		return err
	}
	return nil
}
