package cleaner

import "testing"

func TestCleanEducation(t *testing.T) {
	raw := "Medical Degree 1995 University of Madrid|Residency 2001"
	entries := CleanEducation(sp(raw))
	if len(entries) != 2 {
		t.Fatalf("got %d entries want 2", len(entries))
	}

	first := entries[0]
	if first.Title != "Medical Degree 1995 University of Madrid" {
		t.Fatalf("title %q", first.Title)
	}
	if first.Date == nil || *first.Date != "1995" {
		t.Fatalf("date %v", first.Date)
	}
	if first.Issuer == nil || *first.Issuer != "University of Madrid" {
		t.Fatalf("issuer %v", first.Issuer)
	}

	second := entries[1]
	if second.Title != "Residency 2001" {
		t.Fatalf("title %q", second.Title)
	}
	if second.Date == nil || *second.Date != "2001" {
		t.Fatalf("date %v", second.Date)
	}
	if second.Issuer != nil {
		t.Fatalf("issuer %q, want nil", *second.Issuer)
	}
}

func TestCleanEducationMultipleYears(t *testing.T) {
	entries := CleanEducation(sp("Fellowship 2003 2005 University of Chicago"))
	if len(entries) != 1 {
		t.Fatalf("got %d entries want 1", len(entries))
	}
	if entries[0].Date == nil || *entries[0].Date != "2003, 2005" {
		t.Fatalf("date %v", entries[0].Date)
	}
}

func TestCleanEducationNoExtraction(t *testing.T) {
	entries := CleanEducation(sp("Board Certified Internist"))
	if len(entries) != 1 {
		t.Fatalf("got %d entries want 1", len(entries))
	}
	e := entries[0]
	if e.Title != "Board Certified Internist" || e.Date != nil || e.Issuer != nil {
		t.Fatalf("entry %+v", e)
	}
}

func TestCleanEducationEmpty(t *testing.T) {
	if got := CleanEducation(nil); got != nil {
		t.Fatalf("nil input got %v", got)
	}
	if got := CleanEducation(sp("  \n ")); got != nil {
		t.Fatalf("blank input got %v", got)
	}
}
