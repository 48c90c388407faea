package assetextract

import (
	"encoding/base64"
	"fmt"
	"net/url"
	"strings"
)

func isDataURL(s string) bool {
	return strings.HasPrefix(s, "data:")
}

// decodeDataURL decodes an RFC 2397 data URL.
func decodeDataURL(s string) (data []byte, mimeType string, err error) {
	rest, ok := strings.CutPrefix(s, "data:")
	if !ok {
		return nil, "", fmt.Errorf("not a data URL")
	}
	meta, payload, ok := strings.Cut(rest, ",")
	if !ok {
		return nil, "", fmt.Errorf("malformed data URL: missing comma")
	}

	isBase64 := false
	if m, found := strings.CutSuffix(meta, ";base64"); found {
		meta = m
		isBase64 = true
	}
	mimeType, _, _ = strings.Cut(meta, ";")
	if mimeType == "" {
		mimeType = "text/plain"
	}

	if isBase64 {
		data, err = base64.StdEncoding.DecodeString(payload)
		if err != nil {
			return nil, "", fmt.Errorf("decode base64 payload: %w", err)
		}
		return data, mimeType, nil
	}

	unescaped, err := url.PathUnescape(payload)
	if err != nil {
		return nil, "", fmt.Errorf("unescape payload: %w", err)
	}
	return []byte(unescaped), mimeType, nil
}
