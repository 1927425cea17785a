package cleaner

import (
	"strings"
	"testing"
)

func sp(v string) *string { return &v }

func TestCleanProvider(t *testing.T) {
	aliases := AliasTable{
		"Cardiologia":            "Cardiology",
		"Cardiovascular Surgery": "Cardiology, Surgery",
	}

	cases := []struct {
		name  string
		input string
		want  string
	}{
		{name: "case insensitive dedupe", input: "Cardiology, cardiology", want: "Cardiology"},
		{name: "alias remap", input: "Cardiologia", want: "Cardiology"},
		{name: "alias expands to several labels", input: "Cardiovascular Surgery", want: "Cardiology, Surgery"},
		{name: "pipe delimiter", input: "Pediatrics|Cardiology", want: "Cardiology, Pediatrics"},
		{name: "connective token dropped", input: "Pediatrics, and, Cardiology", want: "Cardiology, Pediatrics"},
		{name: "sorted output", input: "Surgery, Pediatrics, Cardiology", want: "Cardiology, Pediatrics, Surgery"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := CleanProvider(sp(tc.input), aliases)
			if got == nil {
				t.Fatal("got nil")
			}
			if *got != tc.want {
				t.Fatalf("got %q want %q", *got, tc.want)
			}
		})
	}
}

func TestCleanProviderDeterministic(t *testing.T) {
	aliases := AliasTable{}
	a := CleanProvider(sp("Surgery|Cardiology|Pediatrics"), aliases)
	b := CleanProvider(sp("Pediatrics|Surgery|Cardiology"), aliases)
	if a == nil || b == nil || *a != *b {
		t.Fatalf("order changed output: %v vs %v", a, b)
	}
}

func TestCleanProviderNoDuplicates(t *testing.T) {
	got := CleanProvider(sp("Cardiology, Cardiology|cardiology, CARDIOLOGY"), AliasTable{})
	if got == nil {
		t.Fatal("got nil")
	}
	parts := strings.Split(*got, ", ")
	seen := map[string]struct{}{}
	for _, p := range parts {
		if _, dup := seen[p]; dup {
			t.Fatalf("duplicate %q in %q", p, *got)
		}
		seen[p] = struct{}{}
	}
}

func TestCleanProviderEmpty(t *testing.T) {
	if got := CleanProvider(nil, AliasTable{}); got != nil {
		t.Fatalf("nil input got %v", got)
	}
	if got := CleanProvider(sp(" , and , "), AliasTable{}); got != nil {
		t.Fatalf("connective-only input got %v", got)
	}
}
