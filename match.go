package pyzip

import "strings"

// matcher finds the first declared literal that prefixes the input.
//
// Literals are bucketed by their first byte. Buckets keep declaration order,
// so a lookup only walks the candidates that can possibly match and the
// earliest declared one wins, even when a longer literal also matches.
type matcher struct {
	buckets [256][]matchEntry
}

type matchEntry struct {
	text string
	id   int
}

func newMatcher() *matcher {
	return &matcher{}
}

// insert appends a literal to its bucket.
//
// IMPORTANT: ids must be inserted in declaration order!
func (m *matcher) insert(text string, id int) {
	b := text[0]
	m.buckets[b] = append(m.buckets[b], matchEntry{text: text, id: id})
}

// find returns the id and length of the winning literal at the start of data.
func (m *matcher) find(data string) (int, int, bool) {
	if len(data) == 0 {
		return 0, 0, false
	}
	for _, e := range m.buckets[data[0]] {
		if strings.HasPrefix(data, e.text) {
			return e.id, len(e.text), true
		}
	}
	return 0, 0, false
}
