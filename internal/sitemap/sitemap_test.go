package sitemap

import (
	"encoding/xml"
	"strings"
	"testing"
)

func TestBuildIncludesStaticAndDynamicRoutes(t *testing.T) {
	set := Build("https://example.com",
		[]string{"audit-assurance-services"},
		[]string{"budget-highlights-2025"},
	)

	locs := make(map[string]bool, len(set.URLs))
	for _, u := range set.URLs {
		locs[u.Loc] = true
	}
	for _, want := range []string{
		"https://example.com/",
		"https://example.com/careers",
		"https://example.com/services/audit-assurance-services",
		"https://example.com/publications/budget-highlights-2025",
	} {
		if !locs[want] {
			t.Fatalf("missing url %q", want)
		}
	}
	if len(set.URLs) != len(staticRoutes)+2 {
		t.Fatalf("expected no duplicate entries, got %d urls", len(set.URLs))
	}
	for _, u := range set.URLs {
		if u.ChangeFreq == "" || u.Priority == "" {
			t.Fatalf("url %q missing crawl hints", u.Loc)
		}
	}
}

func TestBuildEmptySlugsStillValid(t *testing.T) {
	set := Build("https://example.com", nil, nil)
	if len(set.URLs) != len(staticRoutes) {
		t.Fatalf("expected %d static urls, got %d", len(staticRoutes), len(set.URLs))
	}

	out, err := xml.Marshal(set)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if !strings.Contains(string(out), `xmlns="http://www.sitemaps.org/schemas/sitemap/0.9"`) {
		t.Fatalf("missing namespace: %s", out)
	}
}
