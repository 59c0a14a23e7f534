package pyzip

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidTable indicates a symbol table that is not a bijection.
	ErrInvalidTable = errors.New("invalid symbol table")
	// ErrSyntax indicates the upstream minifier rejected its input.
	ErrSyntax = errors.New("syntax error")
	// ErrFraming indicates a payload that does not follow the token grammar.
	ErrFraming = errors.New("framing error")
	// ErrDecompress indicates a compressed body that could not be restored.
	ErrDecompress = errors.New("decompression error")
	// ErrInvalidText indicates encode input that is not valid UTF-8.
	ErrInvalidText = errors.New("text is not valid UTF-8")
)

// FrameError reports where a decode stopped.
type FrameError struct {
	Offset int  // byte offset into the payload; flag errors use 0
	Char   rune // offending character, or -1 at end of input
	Reason string
}

func (e *FrameError) Error() string {
	if e.Char < 0 {
		return fmt.Sprintf("pyzip: %s at offset %d: unexpected end of input", e.Reason, e.Offset)
	}
	return fmt.Sprintf("pyzip: %s at offset %d: %q", e.Reason, e.Offset, e.Char)
}

func (e *FrameError) Unwrap() error { return ErrFraming }
