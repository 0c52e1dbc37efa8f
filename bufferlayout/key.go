package bufferlayout

import (
	"fmt"
	"strconv"
	"strings"
)

// KeyPrefix marks every key of a Layout.
const KeyPrefix = "@"

// Key returns the layout key for offset: "@" followed by the decimal
// representation of the offset, e.g. Key(96) == "@96".
func Key(offset int64) string {
	return KeyPrefix + strconv.FormatInt(offset, 10)
}

// ParseKey is the inverse of Key.
//
// Only the canonical decimal form is accepted: "@016" and "@+16" are
// rejected because Key never produces them.
func ParseKey(key string) (int64, error) {
	digits, ok := strings.CutPrefix(key, KeyPrefix)
	if !ok {
		return 0, fmt.Errorf("%q: missing %q prefix: %w", key, KeyPrefix, ErrInvalidKey)
	}
	offset, err := strconv.ParseInt(digits, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%q: %w", key, ErrInvalidKey)
	}
	if Key(offset) != key {
		return 0, fmt.Errorf("%q: not canonical: %w", key, ErrInvalidKey)
	}
	return offset, nil
}
