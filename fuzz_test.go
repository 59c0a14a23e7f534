package pyzip

import (
	"errors"
	"testing"
	"unicode/utf8"
)

// Fuzz test for encode/decode round trips
func FuzzRoundTrip(f *testing.F) {
	// Seed corpus with interesting test cases
	f.Add("if xyz")
	f.Add("")
	f.Add("5")
	f.Add("assert async")
	f.Add("hello世界")
	f.Add("🚀rocket")
	f.Add("tab\there\r\n")
	f.Add("null\x00byte")
	f.Add(sampleSource)

	codecs := []*Codec{New(), New(WithThreshold(-1))}

	f.Fuzz(func(t *testing.T, input string) {
		if !utf8.ValidString(input) {
			if _, err := Encode(input); !errors.Is(err, ErrInvalidText) {
				t.Errorf("invalid UTF-8: expected ErrInvalidText, got %v", err)
			}
			return
		}

		for _, c := range codecs {
			payload, err := c.Payload(input)
			if err != nil {
				t.Fatalf("Payload: %v", err)
			}
			artifact, err := c.Encode(input)
			if err != nil {
				t.Fatalf("Encode: %v", err)
			}
			if len(artifact) > len(payload)+1 {
				t.Errorf("artifact %d bytes exceeds payload+1 (%d)", len(artifact), len(payload)+1)
			}

			decoded, err := c.Decode(artifact)
			if err != nil {
				t.Fatalf("Decode(%q): %v", artifact, err)
			}
			if decoded != input {
				t.Errorf("expected %q, got %q", input, decoded)
			}
		}
	})
}

// Fuzz test for decoding arbitrary artifacts: errors are fine, panics are not
func FuzzDecode(f *testing.F) {
	f.Add("0Q952xyz")
	f.Add("05")
	f.Add("05Z")
	f.Add("1eJwLycgsVgCi4vzcVIWU1LQSAA==")
	f.Add("2")
	f.Add("")

	c := New(WithMaxDecodedSize(1 << 16))

	f.Fuzz(func(t *testing.T, artifact string) {
		decoded, err := c.Decode(artifact)
		if err != nil {
			if !errors.Is(err, ErrFraming) && !errors.Is(err, ErrDecompress) {
				t.Errorf("unexpected error kind: %v", err)
			}
			return
		}

		// A decodable raw artifact re-encodes to the same text.
		again, err := c.Decode(mustEncode(c, decoded))
		if err != nil || again != decoded {
			t.Errorf("re-encoding %q failed: %v", decoded, err)
		}
	})
}
