package cleaner

import (
	"strings"
	"testing"
)

func TestCleanEmail(t *testing.T) {
	cases := []struct {
		name  string
		input string
		want  string // "" means nil expected
	}{
		{name: "mailto prefix", input: " mailto:foo@bar.com ", want: "foo@bar.com"},
		{name: "garbled prefix variant", input: "Malto:foo@bar.com", want: "foo@bar.com"},
		{name: "label prefix", input: "Email: doc@clinic.do", want: "doc@clinic.do"},
		{name: "quotes and tabs", input: "\t'doc@clinic.do'", want: "doc@clinic.do"},
		{name: "interior spaces", input: "doc @ clinic.do", want: "doc@clinic.do"},
		{name: "no at sign", input: "not-an-email", want: ""},
		{name: "empty local part", input: "@bar.com", want: ""},
		{name: "empty domain", input: "foo@", want: ""},
		{name: "two addresses rejected", input: "a@b.com|c@d.com", want: ""},
		{name: "denylisted mojibake", input: "हबिब्गिनेचो@होत्मैल.कॉम", want: ""},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := CleanEmail(sp(tc.input))
			if tc.want == "" {
				if got != nil {
					t.Fatalf("want nil got %q", *got)
				}
				return
			}
			if got == nil {
				t.Fatal("want value got nil")
			}
			if *got != tc.want {
				t.Fatalf("got %q want %q", *got, tc.want)
			}
			parts := strings.Split(*got, "@")
			if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
				t.Fatalf("shape violated: %q", *got)
			}
		})
	}

	if got := CleanEmail(nil); got != nil {
		t.Fatalf("nil input got %v", got)
	}
}
