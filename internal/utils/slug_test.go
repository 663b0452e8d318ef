package utils

import "testing"

func TestSlugifyBasic(t *testing.T) {
	cases := map[string]string{
		"Audit & Assurance Services":   "audit-assurance-services",
		"Audit and Assurance Services!": "audit-assurance-services",
		"GST Advisory":                 "gst-advisory",
		"  Direct Tax  ":               "direct-tax",
		"Company Law / Secretarial":    "company-law-secretarial",
		"L'expertise comptable":        "lexpertise-comptable",
		"Fiscalité générale":           "fiscalite-generale",
		"---":                          "",
		"":                             "",
	}
	for input, want := range cases {
		if got := Slugify(input); got != want {
			t.Fatalf("Slugify(%q) = %q, want %q", input, got, want)
		}
	}
}

func TestSlugifyDeterministic(t *testing.T) {
	titles := []string{"Audit & Assurance Services", "Internal Audit", "Transfer Pricing (International)"}
	for _, title := range titles {
		first := Slugify(title)
		second := Slugify(title)
		if first != second {
			t.Fatalf("Slugify(%q) not deterministic: %q vs %q", title, first, second)
		}
	}
}

func TestSlugifyNoBoundaryHyphens(t *testing.T) {
	got := Slugify("!!Important Update!!")
	if got != "important-update" {
		t.Fatalf("unexpected slug: %q", got)
	}
}
