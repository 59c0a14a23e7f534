package pyzip

import (
	"context"
	"fmt"
	"net/url"
	"strings"
)

// Minifier shrinks source text before it is encoded. Minification is one-way;
// Decompress only inverts the codec.
type Minifier interface {
	Minify(ctx context.Context, code string) (string, error)
}

// Compress minifies code with the configured minifier, encodes it and, when
// URLSafe is set, percent-quotes the artifact.
func Compress(ctx context.Context, code string, opts ...Option) (string, error) {
	return New(opts...).Compress(ctx, code)
}

// Decompress reverses Compress with the default codec.
func Decompress(data string) (string, error) {
	return defaultCodec.Decompress(data)
}

// Compress minifies code, encodes it and quotes the result if configured.
// Minifier failures are returned unchanged.
func (c *Codec) Compress(ctx context.Context, code string) (string, error) {
	if c.config.Minifier != nil {
		minified, err := c.config.Minifier.Minify(ctx, code)
		if err != nil {
			return "", err
		}
		c.logger.Debugf("pyzip: minified %d -> %d bytes", len(code), len(minified))
		code = minified
	}

	artifact, err := c.Encode(code)
	if err != nil {
		return "", err
	}
	if c.config.URLSafe {
		return Quote(artifact), nil
	}
	return artifact, nil
}

// Decompress unquotes data when URLSafe is set and decodes the artifact.
// With URLSafe off the input is taken as an unquoted artifact and decoded
// as is.
func (c *Codec) Decompress(data string) (string, error) {
	artifact := data
	if c.config.URLSafe {
		var err error
		if artifact, err = Unquote(data); err != nil {
			return "", err
		}
	}
	return c.Decode(artifact)
}

// Quote percent-escapes every byte outside A-Z a-z 0-9 and "-_.~".
// Spaces become %20, not '+'.
func Quote(s string) string {
	return strings.ReplaceAll(url.QueryEscape(s), "+", "%20")
}

// Unquote reverses Quote. A literal '+' is kept.
func Unquote(s string) (string, error) {
	out, err := url.PathUnescape(s)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrFraming, err)
	}
	return out, nil
}
