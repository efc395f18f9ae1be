package util

import (
	"crypto/md5"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"strings"
)

// ETag is the hex MD5 of body's JSON encoding, unquoted.
func ETag(body interface{}) (string, error) {
	data, err := json.Marshal(body)
	if err != nil {
		return "", fmt.Errorf("failed to encode etag body: %w", err)
	}
	sum := md5.Sum(data)
	return hex.EncodeToString(sum[:]), nil
}

// QuoteETag formats etag for the ETag header.
func QuoteETag(etag string) string {
	return `"` + etag + `"`
}

// MatchesETag reports whether an If-Match / If-None-Match header value
// names etag. It accepts "*", comma separated lists, quoted or bare tags and
// the weak prefix W/.
func MatchesETag(header, etag string) bool {
	for _, tag := range strings.Split(header, ",") {
		tag = strings.TrimSpace(tag)
		if tag == "*" {
			return true
		}
		tag = strings.TrimPrefix(tag, "W/")
		tag = strings.Trim(tag, `"`)
		if tag != "" && tag == etag {
			return true
		}
	}
	return false
}
