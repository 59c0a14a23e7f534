package pyzip

// Segment is one piece of tokenized text. Known segments are exact literals
// of the table; unknown segments are the residual text between them.
type Segment struct {
	Text  string
	Known bool
	Code  byte // valid when Known
}

// Tokenize splits text into known and unknown segments using the default table.
func Tokenize(text string) []Segment {
	return defaultTable.Tokenize(text)
}

// Tokenize splits text into alternating known and unknown segments.
//
// The scan is left to right; at each position the first declared literal that
// matches wins. Empty gaps are dropped, so text without literals yields a
// single unknown segment and an empty text yields none.
func (t *Table) Tokenize(text string) []Segment {
	segments := make([]Segment, 0, len(text)/2+1)
	start := 0
	pos := 0
	for pos < len(text) {
		id, length, ok := t.matcher.find(text[pos:])
		if !ok {
			pos++
			continue
		}
		if start < pos {
			segments = append(segments, Segment{Text: text[start:pos]})
		}
		lit := t.literals[id]
		segments = append(segments, Segment{Text: lit.Text, Known: true, Code: lit.Code})
		pos += length
		start = pos
	}
	if start < len(text) {
		segments = append(segments, Segment{Text: text[start:]})
	}
	return segments
}
