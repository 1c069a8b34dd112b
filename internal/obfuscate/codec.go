// Package obfuscate implements the reversible XOR transforms and the
// checksum signature applied to stored documents.
//
// None of this is cryptography. Both transforms use fixed repeating keys
// compiled into every copy of the program, and the signature is a plain
// 32-bit checksum. The layer deters casual text search and accidental
// edits; it offers no confidentiality or authenticity against anyone who
// has the source.
package obfuscate

import (
	"encoding/base64"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
)

const (
	// DocumentKey obfuscates whole serialized documents (text variant).
	DocumentKey = "BkingPath_Feelings_Secret_Key"

	// ContentKey obfuscates individual record fields (byte variant).
	ContentKey = "BkingPath_Content_Key"
)

// ErrFormat indicates malformed ciphertext passed to DecodeHex.
var ErrFormat = errors.New("malformed ciphertext")

// EncodeText applies the text variant: each code point is XORed with the
// repeating key and the result is base64 encoded. The call never fails.
//
// Values outside common text are not guaranteed to survive a round trip
// through foreign decoders of the same format; the limitation is inherited
// from the legacy format and kept on purpose.
func EncodeText(plaintext, key string) string {
	if plaintext == "" || key == "" {
		return ""
	}

	var b strings.Builder
	i := 0
	for _, r := range plaintext {
		b.WriteRune(r ^ rune(key[i%len(key)]))
		i++
	}

	return base64.StdEncoding.EncodeToString([]byte(b.String()))
}

// DecodeText reverses EncodeText. Input that does not decode as base64 is
// XORed directly as a best-effort fallback for legacy stored values; the
// result may be nonsense but the call never fails.
func DecodeText(encoded, key string) string {
	if encoded == "" || key == "" {
		return ""
	}

	data := encoded
	if raw, err := base64.StdEncoding.DecodeString(encoded); err == nil {
		data = string(raw)
	}

	var b strings.Builder
	i := 0
	for _, r := range data {
		b.WriteRune(r ^ rune(key[i%len(key)]))
		i++
	}

	return b.String()
}

// EncodeHex applies the byte variant: the plaintext's UTF-8 bytes are XORed
// with the repeating key and rendered as lowercase hex. This variant
// round-trips the full Unicode range.
func EncodeHex(plaintext, key string) string {
	if plaintext == "" || key == "" {
		return ""
	}

	data := []byte(plaintext)
	for i := range data {
		data[i] ^= key[i%len(key)]
	}

	return hex.EncodeToString(data)
}

// DecodeHex reverses EncodeHex. The input must be an even-length string of
// hex digits; anything else is reported as ErrFormat rather than decoded
// into garbage.
func DecodeHex(encoded, key string) (string, error) {
	if encoded == "" {
		return "", nil
	}
	if key == "" {
		return "", fmt.Errorf("%w: empty key", ErrFormat)
	}

	raw, err := hex.DecodeString(encoded)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrFormat, err)
	}

	for i := range raw {
		raw[i] ^= key[i%len(key)]
	}

	return string(raw), nil
}
