package pathutil

import (
	"errors"
	"strconv"
	"strings"
)

// ErrInvalidPointer is returned by Split for malformed pointers.
var ErrInvalidPointer = errors.New("invalid json pointer")

// EscapeToken encodes a raw key as a pointer token: "~" becomes "~0" and
// "/" becomes "~1".
func EscapeToken(token string) string {
	if !strings.ContainsAny(token, "~/") {
		return token
	}
	token = strings.ReplaceAll(token, "~", "~0")
	return strings.ReplaceAll(token, "/", "~1")
}

// UnescapeToken decodes a pointer token. The order of replacements matters:
// "~01" must decode to "~1", not "/".
func UnescapeToken(token string) string {
	if !strings.Contains(token, "~") {
		return token
	}
	token = strings.ReplaceAll(token, "~1", "/")
	return strings.ReplaceAll(token, "~0", "~")
}

// Split parses a JSON Pointer into its decoded tokens.
// The empty pointer addresses the whole document and yields no tokens.
// A non-empty pointer must start with "/", and "~" may only be followed by
// "0" or "1".
func Split(pointer string) ([]string, error) {
	if pointer == "" {
		return nil, nil
	}
	if pointer[0] != '/' {
		return nil, ErrInvalidPointer
	}
	parts := strings.Split(pointer[1:], "/")
	for i, part := range parts {
		if !validEscapes(part) {
			return nil, ErrInvalidPointer
		}
		parts[i] = UnescapeToken(part)
	}
	return parts, nil
}

func validEscapes(token string) bool {
	for i := 0; i < len(token); i++ {
		if token[i] != '~' {
			continue
		}
		if i+1 >= len(token) || (token[i+1] != '0' && token[i+1] != '1') {
			return false
		}
	}
	return true
}

// Append extends pointer with one raw key.
func Append(pointer, key string) string {
	return pointer + "/" + EscapeToken(key)
}

// AppendIndex extends pointer with an array index.
func AppendIndex(pointer string, index int) string {
	return pointer + "/" + strconv.Itoa(index)
}

// ParseIndex parses an array index token. Per RFC 6901 an index is "0" or
// a decimal number without leading zeros.
func ParseIndex(token string) (int, bool) {
	if token == "" || (len(token) > 1 && token[0] == '0') {
		return 0, false
	}
	for i := 0; i < len(token); i++ {
		if token[i] < '0' || token[i] > '9' {
			return 0, false
		}
	}
	n, err := strconv.Atoi(token)
	if err != nil {
		return 0, false
	}
	return n, true
}
