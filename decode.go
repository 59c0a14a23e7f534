package pyzip

import (
	"strings"
	"unicode/utf8"
)

// Decode restores the text an artifact was encoded from.
func (c *Codec) Decode(artifact string) (string, error) {
	if len(artifact) == 0 {
		return "", &FrameError{Offset: 0, Char: -1, Reason: "missing compression flag"}
	}

	payload := artifact[1:]
	switch artifact[0] {
	case flagRaw:
	case flagCompressed:
		var err error
		payload, err = inflate(payload, c.config.MaxDecodedSize)
		if err != nil {
			return "", err
		}
	default:
		r, _ := utf8.DecodeRuneInString(artifact)
		return "", &FrameError{Offset: 0, Char: r, Reason: "invalid compression flag"}
	}
	return c.expand(payload)
}

// expand walks the payload one token at a time. Ident spans are copied
// verbatim and never re-read as tokens.
func (c *Codec) expand(payload string) (string, error) {
	var sb strings.Builder
	sb.Grow(len(payload) * 2)

	pos := 0
	for pos < len(payload) {
		ch := payload[pos]
		if lit, ok := c.table.Literal(ch); ok {
			sb.WriteString(lit)
			pos++
			continue
		}
		if ch != Marker {
			r, _ := utf8.DecodeRuneInString(payload[pos:])
			return "", &FrameError{Offset: pos, Char: r, Reason: "invalid symbol"}
		}

		pos++
		if pos >= len(payload) {
			return "", &FrameError{Offset: pos, Char: -1, Reason: "missing ident length"}
		}
		length, ok := identLength(payload[pos])
		if !ok {
			r, _ := utf8.DecodeRuneInString(payload[pos:])
			return "", &FrameError{Offset: pos, Char: r, Reason: "invalid ident length"}
		}
		pos++

		start := pos
		for n := 0; n < length; n++ {
			if pos >= len(payload) {
				return "", &FrameError{Offset: pos, Char: -1, Reason: "truncated ident"}
			}
			r, size := utf8.DecodeRuneInString(payload[pos:])
			if r == utf8.RuneError && size == 1 {
				return "", &FrameError{Offset: pos, Char: utf8.RuneError, Reason: "invalid UTF-8 in ident"}
			}
			pos += size
		}
		sb.WriteString(payload[start:pos])
	}
	return sb.String(), nil
}
