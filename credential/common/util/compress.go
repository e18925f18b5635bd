// Package util holds the gzip and base64url helpers used to encode status
// list bitstrings.
package util

import (
	"bytes"
	"compress/gzip"
	"encoding/base64"
	"fmt"
	"io"
	"strings"
)

// Compress gzips data.
func Compress(data []byte) ([]byte, error) {
	var buf bytes.Buffer
	gz := gzip.NewWriter(&buf)
	if _, err := gz.Write(data); err != nil {
		return nil, fmt.Errorf("failed to compress: %w", err)
	}
	if err := gz.Close(); err != nil {
		return nil, fmt.Errorf("failed to compress: %w", err)
	}
	return buf.Bytes(), nil
}

// Decompress gunzips data.
func Decompress(data []byte) ([]byte, error) {
	gz, err := gzip.NewReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to decompress: %w", err)
	}
	defer gz.Close()
	return io.ReadAll(gz)
}

// CompressToBase64URL gzips data and encodes it as unpadded base64url.
func CompressToBase64URL(data []byte) (string, error) {
	compressed, err := Compress(data)
	if err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(compressed), nil
}

// DecompressFromBase64URL reverses CompressToBase64URL. Padded input and the
// multibase base64url prefix "u" are accepted.
func DecompressFromBase64URL(data string) ([]byte, error) {
	data = strings.TrimRight(strings.TrimPrefix(data, "u"), "=")
	compressed, err := base64.RawURLEncoding.DecodeString(data)
	if err != nil {
		return nil, fmt.Errorf("failed to decode base64url: %w", err)
	}
	return Decompress(compressed)
}
