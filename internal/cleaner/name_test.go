package cleaner

import (
	"strings"
	"testing"
)

func TestCleanName(t *testing.T) {
	cases := []struct {
		name  string
		input string
		want  string
	}{
		{name: "leading doctor title", input: "Dr. Juan Pérez", want: "Juan Pérez"},
		{name: "female title upper", input: "DRA. MARIA GOMEZ", want: "Maria Gomez"},
		{name: "licenciado title", input: "Lic. Pedro Castillo", want: "Pedro Castillo"},
		{name: "trailing degree", input: "Dr. Juan Pérez M.D.", want: "Juan Pérez"},
		{name: "ampersand removed", input: "Juan & Maria Lopez", want: "Juan Maria Lopez"},
		{name: "lower case input", input: "juan pablo duarte", want: "Juan Pablo Duarte"},
		{name: "double space collapsed", input: "Dr.  Ana   Reyes", want: "Ana Reyes"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := CleanName(tc.input)
			if got != tc.want {
				t.Fatalf("got %q want %q", got, tc.want)
			}
			if strings.Contains(got, "  ") {
				t.Fatalf("double space in %q", got)
			}
			for _, residue := range []string{"Dr.", "M.D.", "&", ","} {
				if strings.Contains(got, residue) {
					t.Fatalf("residual %q in %q", residue, got)
				}
			}
		})
	}
}

func TestDropName(t *testing.T) {
	if !DropName("") {
		t.Fatal("empty name should drop")
	}
	if !DropName(CleanName("#VALUE!")) {
		t.Fatal("formula artifact should drop")
	}
	if DropName("Juan Pérez") {
		t.Fatal("valid name dropped")
	}
}
