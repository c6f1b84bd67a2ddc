package css

import "strings"

// Expand splits a 1-4 value box shorthand into its four explicit values
// (top, right, bottom, left; or top-left, top-right, bottom-right,
// bottom-left for radii).
func Expand(value string) [4]string {
	parts := strings.Fields(value)
	if len(parts) == 0 {
		parts = []string{"0"}
	}
	if len(parts) == 1 {
		parts = append(parts, parts[0])
	}
	if len(parts) == 2 {
		parts = append(parts, parts[0])
	}
	if len(parts) == 3 {
		parts = append(parts, parts[1])
	}
	return [4]string{parts[0], parts[1], parts[2], parts[3]}
}

// Contract is the inverse of [Expand]: it drops trailing values that the
// shorthand rules make implicit and joins the rest with spaces.
func Contract(values [4]string) string {
	out := values[:]
	if out[1] == out[3] {
		out = out[:3]
		if out[0] == out[2] {
			out = out[:2]
			if out[0] == out[1] {
				out = out[:1]
			}
		}
	}
	return strings.Join(out, " ")
}
