// Package util holds naming helpers shared by the generators.
package util

import "strings"

// ToSnakeCase converts PascalCase or camelCase to snake_case.
// Handles acronyms (e.g., "ColorToHSV" -> "color_to_hsv") and treats digits
// as part of the preceding word ("Vector2Add" -> "vector2_add",
// "DrawCircle3D" -> "draw_circle3d").
func ToSnakeCase(s string) string {
	var result strings.Builder
	runes := []rune(s)

	for i := 0; i < len(runes); i++ {
		r := runes[i]

		// Check if we need to insert underscore before this character
		if i > 0 && isUpper(r) {
			// Don't insert underscore after an uppercase letter or digit (acronym)
			// unless next char is lowercase (end of acronym)
			prev := runes[i-1]
			prevJoins := isUpper(prev) || isDigit(prev) || prev == '_'
			nextLower := i+1 < len(runes) && isLower(runes[i+1])

			if prev != '_' && (!prevJoins || nextLower) {
				result.WriteRune('_')
			}
		}

		result.WriteRune(r)
	}

	return strings.ToLower(result.String())
}

func isUpper(r rune) bool { return r >= 'A' && r <= 'Z' }
func isLower(r rune) bool { return r >= 'a' && r <= 'z' }
func isDigit(r rune) bool { return r >= '0' && r <= '9' }
