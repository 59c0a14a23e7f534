package pyzip

import (
	"encoding/binary"
	"fmt"
	"unicode/utf8"

	"github.com/cespare/xxhash/v2"
)

// Literal pairs a substring with the single byte that replaces it in a payload.
type Literal struct {
	Text string
	Code byte
}

// DefaultLiterals is the Python keyword and punctuation table.
//
// Order matters: when several literals match at the same position the one
// declared first wins, so "as" shadows "assert" and "async".
var DefaultLiterals = []Literal{
	{"False", 'A'}, {"await", 'a'}, {"else", 'B'}, {"import", 'b'},
	{"pass", 'C'}, {"None", 'c'}, {"break", 'D'}, {"except", 'd'},
	{"in", 'E'}, {"raise", 'e'}, {"True", 'F'},
	{"class", 'f'}, {"finally", 'G'}, {"is", 'g'}, {"return", 'H'},
	{"and", 'h'}, {"continue", 'I'}, {"for", 'i'}, {"lambda", 'J'},
	{"try", 'j'}, {"as", 'K'}, {"def", 'k'},
	{"from", 'L'}, {"nonlocal", 'l'}, {"while", 'M'}, {"assert", 'm'},
	{"del", 'N'}, {"global", 'n'}, {"not", 'O'}, {"with", 'o'},
	{"async", 'P'}, {"elif", 'p'}, {"if", 'Q'}, {"or", 'q'}, {"yield", 'R'},

	{"!", 'r'}, {"@", 'S'}, {"#", 's'}, {"%", 't'}, {"^", 'U'}, {"&", 'u'},
	{"*", 'V'}, {"(", 'v'}, {")", 'W'}, {"[", 'w'},
	{"]", 'X'}, {"{", 'x'}, {"}", 'Y'}, {";", 'y'}, {":", 'Z'}, {"'", 'z'},
	{"\"", '1'}, {",", '2'}, {"/", '3'}, {"`", '4'},
	{"\\", '6'}, {"|", '7'}, {"=", '8'},
	{"\n", '0'},
	{"\t", 'T'},
	{" ", '9'},
}

// Table is an immutable bijection between literals and codes.
// It is safe for concurrent use.
type Table struct {
	literals []Literal
	forward  map[string]byte
	reverse  [256]string
	known    [256]bool
	matcher  *matcher
}

var defaultTable = MustNewTable(DefaultLiterals)

// DefaultTable returns the table built from DefaultLiterals.
func DefaultTable() *Table {
	return defaultTable
}

// NewTable validates literals and builds the forward and reverse maps.
func NewTable(literals []Literal) (*Table, error) {
	if len(literals) == 0 {
		return nil, fmt.Errorf("%w: no literals", ErrInvalidTable)
	}

	t := &Table{
		literals: append([]Literal(nil), literals...),
		forward:  make(map[string]byte, len(literals)),
		matcher:  newMatcher(),
	}
	for i, lit := range t.literals {
		switch {
		case lit.Text == "":
			return nil, fmt.Errorf("%w: literal %d is empty", ErrInvalidTable, i)
		case !utf8.ValidString(lit.Text):
			return nil, fmt.Errorf("%w: literal %d is not valid UTF-8", ErrInvalidTable, i)
		case lit.Code >= utf8.RuneSelf:
			return nil, fmt.Errorf("%w: code %#x for %q is not ASCII", ErrInvalidTable, lit.Code, lit.Text)
		case lit.Code == Marker:
			return nil, fmt.Errorf("%w: %q uses the frame marker %q", ErrInvalidTable, lit.Text, Marker)
		}
		if _, dup := t.forward[lit.Text]; dup {
			return nil, fmt.Errorf("%w: literal %q declared twice", ErrInvalidTable, lit.Text)
		}
		if t.known[lit.Code] {
			return nil, fmt.Errorf("%w: code %q shared by %q and %q",
				ErrInvalidTable, lit.Code, t.reverse[lit.Code], lit.Text)
		}
		t.forward[lit.Text] = lit.Code
		t.reverse[lit.Code] = lit.Text
		t.known[lit.Code] = true
		t.matcher.insert(lit.Text, i)
	}
	return t, nil
}

// MustNewTable is like NewTable but panics on an invalid table.
func MustNewTable(literals []Literal) *Table {
	t, err := NewTable(literals)
	if err != nil {
		panic(err)
	}
	return t
}

// Len returns the number of literals.
func (t *Table) Len() int { return len(t.literals) }

// Literals returns a copy of the entries in declaration order.
func (t *Table) Literals() []Literal {
	return append([]Literal(nil), t.literals...)
}

// Code returns the code for an exact literal.
func (t *Table) Code(text string) (byte, bool) {
	c, ok := t.forward[text]
	return c, ok
}

// Literal returns the literal a code stands for.
func (t *Table) Literal(code byte) (string, bool) {
	return t.reverse[code], t.known[code]
}

// Fingerprint hashes the ordered entries. Tables that tokenize identically
// share a fingerprint.
func (t *Table) Fingerprint() uint64 {
	d := xxhash.New()
	var n [4]byte
	for _, lit := range t.literals {
		binary.LittleEndian.PutUint32(n[:], uint32(len(lit.Text)))
		_, _ = d.Write(n[:])
		_, _ = d.WriteString(lit.Text)
		_, _ = d.Write([]byte{lit.Code})
	}
	return d.Sum64()
}
