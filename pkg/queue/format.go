package queue

import (
	"fmt"
	"strings"
)

// Format renders values front-to-back as "[a, b, c]".
func Format[T any](values []T) string {
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = fmt.Sprint(v)
	}
	return "[" + strings.Join(parts, ", ") + "]"
}
