package cleaner

import "testing"

func TestCleanLanguages(t *testing.T) {
	cases := []struct {
		name  string
		input *string
		want  string
	}{
		{name: "missing defaults to spanish", input: nil, want: "Spanish"},
		{name: "blank defaults to spanish", input: sp("  "), want: "Spanish"},
		{name: "english connective", input: sp("Spanish and English"), want: "Spanish, English"},
		{name: "spanish connective", input: sp("Español y Inglés"), want: "Español, Inglés"},
		{name: "connective inside a word stays", input: sp("Mandarin"), want: "Mandarin"},
		{name: "already comma separated", input: sp("Spanish, English"), want: "Spanish, English"},
		{name: "trailing period stripped", input: sp("Spanish."), want: "Spanish"},
		{name: "only connectives default", input: sp("and y"), want: "Spanish"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := CleanLanguages(tc.input); got != tc.want {
				t.Fatalf("got %q want %q", got, tc.want)
			}
		})
	}
}
