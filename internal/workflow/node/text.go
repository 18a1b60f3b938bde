package node

import (
	"strings"
	"unicode/utf8"
)

// CountWords 统计按空白切分后的非空词条数
func CountWords(s string) int {
	return len(strings.Fields(s))
}

func TruncateByRunes(s string, maxRunes int) string {
	if maxRunes <= 0 {
		return ""
	}
	if utf8.RuneCountInString(s) <= maxRunes {
		return s
	}
	n := 0
	for i := range s {
		if n == maxRunes {
			return s[:i]
		}
		n++
	}
	return s
}
