package autocomplete

import "strings"

// ExtractQuery returns the tag being typed at cursor: the text between the
// last comma before the cursor and the cursor, trimmed. cursor is a rune
// offset and is clamped to the text.
func ExtractQuery(text string, cursor int) string {
	runes := []rune(text)
	cursor = clampCursor(cursor, len(runes))

	start := lastComma(runes, cursor) + 1
	return strings.TrimSpace(string(runes[start:cursor]))
}

// Complete splices insert into text in place of the query at cursor.
// Text before the boundary comma and after the cursor is kept; a single
// space separates the comma from the inserted tag.
func Complete(text string, cursor int, insert string) string {
	runes := []rune(text)
	cursor = clampCursor(cursor, len(runes))
	tail := string(runes[cursor:])

	comma := lastComma(runes, cursor)
	if comma == -1 {
		return insert + tail
	}
	return string(runes[:comma+1]) + " " + insert + tail
}

// lastComma returns the index of the last comma strictly before cursor, or -1.
func lastComma(runes []rune, cursor int) int {
	for i := cursor - 1; i >= 0; i-- {
		if runes[i] == ',' {
			return i
		}
	}
	return -1
}

func clampCursor(cursor, length int) int {
	if cursor < 0 {
		return 0
	}
	if cursor > length {
		return length
	}
	return cursor
}

// Completion returns the inline completion for query: the rest of the first
// suggestion's label when that label starts with query (case-sensitive).
func Completion(query string, suggestions []Suggestion) string {
	if query == "" || len(suggestions) == 0 {
		return ""
	}
	label := suggestions[0].Label
	if label == "" || !strings.HasPrefix(label, query) {
		return ""
	}
	return label[len(query):]
}
