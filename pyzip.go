// Package pyzip shrinks source text into a short, reversible string that can
// be embedded in a URL.
//
// Encoding runs in two layers. Keywords, punctuation and whitespace from a
// fixed table are replaced by single-character codes, and everything else is
// copied into length-prefixed ident frames. Payloads above a size threshold
// are then zlib-compressed and base64-encoded when that is shorter. The
// artifact starts with a flag recording which body follows:
//
//	artifact := '0' payload | '1' base64(zlib(payload))
//	payload  := (code | '5' digit raw{digit+1})*
//
// Compress and Decompress wrap the codec with an optional minifier and URL
// percent-quoting.
package pyzip

import (
	"unicode/utf8"

	"github.com/klauspost/compress/zlib"
	"go.uber.org/zap"
)

const (
	// DefaultThreshold is the payload length above which compression is tried.
	DefaultThreshold = 1900
	// DefaultMaxDecodedSize bounds the inflated payload of a compressed artifact.
	DefaultMaxDecodedSize = 16 << 20

	flagRaw        = '0'
	flagCompressed = '1'
)

// Config holds configuration for the codec.
type Config struct {
	Threshold        int  // Payload length above which compression is tried (negative = always)
	URLSafe          bool // Percent-quote the artifact in Compress
	CompressionLevel int  // zlib level
	MaxDecodedSize   int  // Maximum inflated payload size in bytes
	Table            *Table
	Minifier         Minifier
	Logger           *zap.SugaredLogger
}

// Option is a functional option for configuring the codec.
type Option func(*Config)

// WithThreshold sets the payload length above which compression is tried.
// A negative threshold always tries.
func WithThreshold(n int) Option {
	return func(c *Config) {
		c.Threshold = n
	}
}

// WithURLSafe controls percent-quoting in Compress and Decompress.
func WithURLSafe(on bool) Option {
	return func(c *Config) {
		c.URLSafe = on
	}
}

// WithCompressionLevel sets the zlib level. Values outside
// [zlib.HuffmanOnly, zlib.BestCompression] fall back to the default.
func WithCompressionLevel(level int) Option {
	return func(c *Config) {
		c.CompressionLevel = level
	}
}

// WithMaxDecodedSize caps the inflated size of compressed bodies.
// Non-positive values restore the default.
func WithMaxDecodedSize(n int) Option {
	return func(c *Config) {
		c.MaxDecodedSize = n
	}
}

// WithTable replaces the default symbol table. Encoder and decoder must use
// the same table.
func WithTable(t *Table) Option {
	return func(c *Config) {
		c.Table = t
	}
}

// WithMinifier sets the minifier run by Compress before encoding.
func WithMinifier(m Minifier) Option {
	return func(c *Config) {
		c.Minifier = m
	}
}

// WithLogger sets the logger.
func WithLogger(l *zap.SugaredLogger) Option {
	return func(c *Config) {
		c.Logger = l
	}
}

// Codec encodes and decodes artifacts. It is immutable and safe for
// concurrent use.
type Codec struct {
	config Config
	table  *Table
	logger *zap.SugaredLogger
}

// New creates a codec with the given options.
func New(opts ...Option) *Codec {
	cfg := Config{
		Threshold:        DefaultThreshold,
		URLSafe:          true,
		CompressionLevel: zlib.DefaultCompression,
		MaxDecodedSize:   DefaultMaxDecodedSize,
	}
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.CompressionLevel < zlib.HuffmanOnly || cfg.CompressionLevel > zlib.BestCompression {
		cfg.CompressionLevel = zlib.DefaultCompression
	}
	if cfg.MaxDecodedSize <= 0 {
		cfg.MaxDecodedSize = DefaultMaxDecodedSize
	}
	if cfg.Table == nil {
		cfg.Table = defaultTable
	}
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop().Sugar()
	}
	return &Codec{config: cfg, table: cfg.Table, logger: cfg.Logger}
}

// Config returns a copy of the codec configuration.
func (c *Codec) Config() Config {
	return c.config
}

var defaultCodec = New()

// Encode encodes text with the default codec.
func Encode(text string) (string, error) {
	return defaultCodec.Encode(text)
}

// Decode decodes an artifact with the default codec.
func Decode(artifact string) (string, error) {
	return defaultCodec.Decode(artifact)
}

// Encode returns the flagged artifact for text.
func (c *Codec) Encode(text string) (string, error) {
	payload, err := c.appendPayload(nil, text)
	if err != nil {
		return "", err
	}
	return c.gate(payload)
}

// Payload returns the intermediate payload for text, before the compression
// gate.
func (c *Codec) Payload(text string) (string, error) {
	payload, err := c.appendPayload(nil, text)
	if err != nil {
		return "", err
	}
	return string(payload), nil
}

// appendPayload concatenates codes and ident frames in segment order.
// No separators are needed: codes are one byte and frames declare their
// length.
func (c *Codec) appendPayload(dst []byte, text string) ([]byte, error) {
	if !utf8.ValidString(text) {
		return nil, ErrInvalidText
	}
	if dst == nil {
		dst = make([]byte, 0, len(text)+len(text)/8+2)
	}
	for _, seg := range c.table.Tokenize(text) {
		if seg.Known {
			dst = append(dst, seg.Code)
			continue
		}
		dst = AppendIdent(dst, seg.Text)
	}
	return dst, nil
}
