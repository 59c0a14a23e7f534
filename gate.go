package pyzip

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/klauspost/compress/zlib"
)

// gate flags the payload and, when it is long enough, swaps in the
// compressed body if that is strictly shorter. Lengths count characters,
// like ident frames, so the artifact never has more characters than the
// payload plus one.
func (c *Codec) gate(payload []byte) (string, error) {
	n := utf8.RuneCount(payload)
	if c.config.Threshold >= 0 && n <= c.config.Threshold {
		return raw(payload), nil
	}

	compressed, err := deflate(payload, c.config.CompressionLevel)
	if err != nil {
		return "", err
	}
	body := base64.StdEncoding.EncodedLen(len(compressed))
	if body >= n {
		c.logger.Debugf("pyzip: keeping raw payload (%d chars, compressed body %d chars)", n, body)
		return raw(payload), nil
	}

	var sb strings.Builder
	sb.Grow(body + 1)
	sb.WriteByte(flagCompressed)
	enc := base64.NewEncoder(base64.StdEncoding, &sb)
	_, _ = enc.Write(compressed)
	_ = enc.Close()
	c.logger.Debugf("pyzip: compressed payload %d -> %d chars", n, body)
	return sb.String(), nil
}

func raw(payload []byte) string {
	var sb strings.Builder
	sb.Grow(len(payload) + 1)
	sb.WriteByte(flagRaw)
	sb.Write(payload)
	return sb.String()
}

func deflate(payload []byte, level int) ([]byte, error) {
	var buf bytes.Buffer
	zw, err := zlib.NewWriterLevel(&buf, level)
	if err != nil {
		return nil, err
	}
	if _, err := zw.Write(payload); err != nil {
		return nil, err
	}
	if err := zw.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// inflate reverses the compressed body. Line breaks inside the base64 text
// are ignored so MIME-wrapped bodies decode as well.
func inflate(body string, limit int) (string, error) {
	body = strings.Map(func(r rune) rune {
		switch r {
		case '\n', '\r', ' ', '\t':
			return -1
		}
		return r
	}, body)

	compressed, err := base64.StdEncoding.DecodeString(body)
	if err != nil {
		return "", fmt.Errorf("%w: base64: %w", ErrDecompress, err)
	}
	zr, err := zlib.NewReader(bytes.NewReader(compressed))
	if err != nil {
		return "", fmt.Errorf("%w: zlib: %w", ErrDecompress, err)
	}
	defer zr.Close()

	out, err := io.ReadAll(io.LimitReader(zr, int64(limit)+1))
	if err != nil {
		return "", fmt.Errorf("%w: zlib: %w", ErrDecompress, err)
	}
	if len(out) > limit {
		return "", fmt.Errorf("%w: payload exceeds %d bytes", ErrDecompress, limit)
	}
	if !utf8.Valid(out) {
		return "", fmt.Errorf("%w: payload is not valid UTF-8", ErrDecompress)
	}
	return string(out), nil
}
