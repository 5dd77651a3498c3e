// Package dataurl encodes and decodes base64 data URLs, the embeddable
// image form used for photos, signatures and stamps.
package dataurl

import (
	"encoding/base64"
	"errors"
	"strings"
)

var ErrInvalid = errors.New("invalid data url")

func Encode(mimeType string, data []byte) string {
	return "data:" + mimeType + ";base64," + base64.StdEncoding.EncodeToString(data)
}

// Decode returns the media type and payload of a base64 data URL.
func Decode(s string) (string, []byte, error) {
	rest, ok := strings.CutPrefix(s, "data:")
	if !ok {
		return "", nil, ErrInvalid
	}
	meta, payload, ok := strings.Cut(rest, ",")
	if !ok {
		return "", nil, ErrInvalid
	}
	mimeType, ok := strings.CutSuffix(meta, ";base64")
	if !ok {
		return "", nil, ErrInvalid
	}

	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return "", nil, errors.Join(ErrInvalid, err)
	}
	if mimeType == "" {
		mimeType = "application/octet-stream"
	}
	return mimeType, data, nil
}
