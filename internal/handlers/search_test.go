package handlers

import (
	"testing"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestSearchFilterEscapesRegexMetacharacters(t *testing.T) {
	filter := searchFilter("c++ (tax)")

	or, ok := filter["$or"].([]bson.M)
	if !ok || len(or) != 3 {
		t.Fatalf("unexpected filter shape: %+v", filter)
	}
	pattern := or[0]["title"].(primitive.Regex)
	if pattern.Options != "i" {
		t.Fatalf("expected case-insensitive pattern, got %q", pattern.Options)
	}
	if pattern.Pattern != `c\+\+ \(tax\)` {
		t.Fatalf("metacharacters not escaped: %q", pattern.Pattern)
	}
}

func TestSearchFilterCoversKeywordField(t *testing.T) {
	filter := searchFilter("gst")
	or := filter["$or"].([]bson.M)

	fields := make(map[string]bool)
	for _, clause := range or {
		for k := range clause {
			fields[k] = true
		}
	}
	for _, want := range []string{"title", "description", "keywords"} {
		if !fields[want] {
			t.Fatalf("missing %s clause: %+v", want, or)
		}
	}
}
