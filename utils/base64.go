// utils/base64.go
package utils

import (
	"encoding/base64"
	"errors"
	"net/http"
	"strings"
)

var ErrNotAnImage = errors.New("not a base64 encoded image")

// DecodeImage decodes a base64 logo, with or without a data URL prefix, and
// returns its bytes and sniffed content type.
func DecodeImage(b64 string) ([]byte, string, error) {
	if i := strings.Index(b64, ","); strings.HasPrefix(b64, "data:") && i >= 0 {
		b64 = b64[i+1:]
	}
	data, err := base64.StdEncoding.DecodeString(strings.TrimSpace(b64))
	if err != nil {
		return nil, "", ErrNotAnImage
	}
	contentType := http.DetectContentType(data)
	if !strings.HasPrefix(contentType, "image/") {
		return nil, "", ErrNotAnImage
	}
	return data, contentType, nil
}

// DataURI turns a stored base64 logo into a URL usable as an img src.
// Anything that does not decode to an image yields "".
func DataURI(b64 string) string {
	if strings.HasPrefix(b64, "data:image/") {
		return b64
	}
	_, contentType, err := DecodeImage(b64)
	if err != nil {
		return ""
	}
	return "data:" + contentType + ";base64," + strings.TrimSpace(b64)
}
