package pyzip

import "unicode/utf8"

const (
	// Marker introduces an ident frame.
	Marker = byte('5')

	// Digits is the base-62 length alphabet. Digit i means a raw span of i+1
	// code points.
	Digits = "0123456789abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ"

	// MaxChunk is the longest raw span one frame can declare.
	MaxChunk = len(Digits)
)

// digitValue maps a digit byte to its length minus one, or -1.
var digitValue = func() (v [256]int8) {
	for i := range v {
		v[i] = -1
	}
	for i := 0; i < len(Digits); i++ {
		v[Digits[i]] = int8(i)
	}
	return v
}()

// AppendIdent appends the ident frames covering run to dst.
//
// Frame lengths count code points, not bytes, so run must be valid UTF-8.
// Runs longer than MaxChunk code points are split; an empty run appends
// nothing.
func AppendIdent(dst []byte, run string) []byte {
	for len(run) > 0 {
		n := 0
		end := 0
		for end < len(run) && n < MaxChunk {
			_, size := utf8.DecodeRuneInString(run[end:])
			end += size
			n++
		}
		dst = append(dst, Marker, Digits[n-1])
		dst = append(dst, run[:end]...)
		run = run[end:]
	}
	return dst
}

// identLength returns the raw span length declared by a digit.
func identLength(digit byte) (int, bool) {
	v := digitValue[digit]
	if v < 0 {
		return 0, false
	}
	return int(v) + 1, true
}
