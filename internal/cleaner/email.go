package cleaner

import "strings"

// Literal noise scrubbed from raw email text before validation. The
// Devanagari entries are mis-encoded addresses observed verbatim in the
// source data; they carry no recoverable address, so they are blanked.
var emailNoise = []string{
	"mailto:",
	"Malto:",
	"Email:",
	"'",
	"\t",
	"\n",
	" ",
	"हबिब्गिनेचो@होत्मैल.कॉम",
	"जैमेक्लेइमन@याहू.कॉम",
	"की_क्चल@याहू.कॉम",
	"डॉ.रहलमिर@जीमेल.कॉम",
	"चर्मसोफ़@होत्मैल.कॉम",
	"जुअन्सावेद्र@याहू.कॉम",
}

// CleanEmail strips known noise from raw contact text and keeps the
// result only when splitting on '@' yields exactly two non-empty parts.
// No further syntactic validation happens on purpose: malformed but
// two-part strings pass through.
func CleanEmail(raw *string) *string {
	if raw == nil {
		return nil
	}

	s := *raw
	for _, noise := range emailNoise {
		s = strings.ReplaceAll(s, noise, "")
	}
	s = strings.TrimSpace(s)
	s = strings.Join(strings.Split(s, "|"), ", ")
	s = strings.ReplaceAll(s, " ", "")

	parts := strings.Split(s, "@")
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return nil
	}
	return &s
}
