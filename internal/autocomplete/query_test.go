package autocomplete

import (
	"strings"
	"testing"
)

func TestExtractQuery(t *testing.T) {
	tests := []struct {
		name   string
		text   string
		cursor int
		want   string
	}{
		{"empty", "", 0, ""},
		{"no comma", "1g", 2, "1g"},
		{"after comma", "blue_eyes, 1g", 13, "1g"},
		{"cursor before comma", "blue_eyes, 1g", 9, "blue_eyes"},
		{"cursor right after comma", "blue_eyes,", 10, ""},
		{"cursor mid word", "blue_eyes, long_hair", 15, "long"},
		{"surrounding whitespace", "a,   red  ", 10, "red"},
		{"multiple commas", "a, b, c", 7, "c"},
		{"cursor at start", "abc", 0, ""},
		{"cursor past end is clamped", "abc", 99, "abc"},
		{"negative cursor is clamped", "abc", -3, ""},
		{"multibyte runes", "猫耳, 青い", 6, "青い"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ExtractQuery(tt.text, tt.cursor)
			if got != tt.want {
				t.Errorf("ExtractQuery(%q, %d) = %q, want %q", tt.text, tt.cursor, got, tt.want)
			}
		})
	}
}

func TestExtractQueryNeverContainsComma(t *testing.T) {
	inputs := []string{
		"",
		",",
		",,,",
		"a,b,c",
		" , x , y ",
		"tag_one, tag_two,tag_three ,",
	}

	for _, text := range inputs {
		for cursor := 0; cursor <= len([]rune(text)); cursor++ {
			q := ExtractQuery(text, cursor)
			if strings.Contains(q, ",") {
				t.Errorf("ExtractQuery(%q, %d) = %q contains a comma", text, cursor, q)
			}
			if again := ExtractQuery(q, len([]rune(q))); again != q {
				t.Errorf("re-deriving %q gave %q", q, again)
			}
		}
	}
}

func TestComplete(t *testing.T) {
	tests := []struct {
		name   string
		text   string
		cursor int
		insert string
		want   string
	}{
		{"after comma", "blue_eyes, 1g", 13, "1girl", "blue_eyes, 1girl"},
		{"no comma", "1g", 2, "1girl", "1girl"},
		{"comma without space", "blue_eyes,1g", 12, "1girl", "blue_eyes, 1girl"},
		{"keeps text after cursor", "1g, smile", 2, "1girl", "1girl, smile"},
		{"middle tag", "a, lo, smile", 5, "long_hair", "a, long_hair, smile"},
		{"empty insert", "a, b", 4, "", "a, "},
		{"empty text", "", 0, "solo", "solo"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Complete(tt.text, tt.cursor, tt.insert)
			if got != tt.want {
				t.Errorf("Complete(%q, %d, %q) = %q, want %q", tt.text, tt.cursor, tt.insert, got, tt.want)
			}
		})
	}
}

func TestInsertText(t *testing.T) {
	if got := (Suggestion{Label: "a", SearchName: "b"}).InsertText(); got != "b" {
		t.Errorf("expected SearchName to win, got %q", got)
	}
	if got := (Suggestion{Label: "a"}).InsertText(); got != "a" {
		t.Errorf("expected Label fallback, got %q", got)
	}
	if got := (Suggestion{}).InsertText(); got != "" {
		t.Errorf("expected empty insert text, got %q", got)
	}
}

func TestCompletion(t *testing.T) {
	girl := []Suggestion{{Label: "1girl"}, {Label: "1boy"}}

	tests := []struct {
		name        string
		query       string
		suggestions []Suggestion
		want        string
	}{
		{"prefix of first", "1g", girl, "irl"},
		{"only first is considered", "1b", girl, ""},
		{"case sensitive", "1G", girl, ""},
		{"exact match", "1girl", girl, ""},
		{"empty query", "", girl, ""},
		{"no suggestions", "1g", nil, ""},
		{"first without label", "1g", []Suggestion{{}, {Label: "1girl"}}, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Completion(tt.query, tt.suggestions); got != tt.want {
				t.Errorf("Completion(%q) = %q, want %q", tt.query, got, tt.want)
			}
		})
	}
}
