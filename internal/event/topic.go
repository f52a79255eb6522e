package event

import "strings"

// Wildcard constants for pattern matching.
const (
	// WildcardSingle matches exactly one segment.
	WildcardSingle = "*"

	// WildcardMulti matches zero or more segments.
	WildcardMulti = "**"

	// Separator separates topic segments.
	Separator = "."
)

// ValidTopic reports whether s is usable as a topic or pattern: non-empty
// with no empty segments.
func ValidTopic(s string) bool {
	if s == "" {
		return false
	}
	for _, seg := range strings.Split(s, Separator) {
		if seg == "" {
			return false
		}
	}
	return true
}

// IsPattern returns true if s contains a wildcard segment.
func IsPattern(s string) bool {
	for _, seg := range strings.Split(s, Separator) {
		if seg == WildcardSingle || seg == WildcardMulti {
			return true
		}
	}
	return false
}

// Match reports whether topic matches pattern.
//
// Examples:
//
//	Match("input.mode.changed", "input.mode.changed") // true
//	Match("input.*.changed", "input.mode.changed")    // true
//	Match("input.**", "input.sequence.matched")       // true
//	Match("input.*", "input.sequence.matched")        // false
func Match(pattern, topic string) bool {
	if pattern == "" || topic == "" {
		return false
	}
	if pattern == topic {
		return true
	}
	return matchSegments(strings.Split(pattern, Separator), strings.Split(topic, Separator))
}

func matchSegments(pattern, topic []string) bool {
	for len(pattern) > 0 {
		seg := pattern[0]
		if seg == WildcardMulti {
			rest := pattern[1:]
			// Try matching 0, 1, 2, ... remaining segments.
			for i := 0; i <= len(topic); i++ {
				if matchSegments(rest, topic[i:]) {
					return true
				}
			}
			return false
		}
		if len(topic) == 0 {
			return false
		}
		if seg != WildcardSingle && seg != topic[0] {
			return false
		}
		pattern = pattern[1:]
		topic = topic[1:]
	}
	return len(topic) == 0
}
