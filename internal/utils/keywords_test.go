package utils

import (
	"encoding/json"
	"reflect"
	"testing"
)

func TestKeywordListFromArray(t *testing.T) {
	var k KeywordList
	if err := json.Unmarshal([]byte(`[" tax ", "gst", "", "audit"]`), &k); err != nil {
		t.Fatalf("unmarshal array: %v", err)
	}
	want := KeywordList{"tax", "gst", "audit"}
	if !reflect.DeepEqual(k, want) {
		t.Fatalf("got %v, want %v", k, want)
	}
}

func TestKeywordListFromCommaString(t *testing.T) {
	var k KeywordList
	if err := json.Unmarshal([]byte(`"tax, gst ,audit,"`), &k); err != nil {
		t.Fatalf("unmarshal string: %v", err)
	}
	want := KeywordList{"tax", "gst", "audit"}
	if !reflect.DeepEqual(k, want) {
		t.Fatalf("got %v, want %v", k, want)
	}
}

func TestKeywordListRejectsOtherShapes(t *testing.T) {
	var k KeywordList
	if err := json.Unmarshal([]byte(`42`), &k); err == nil {
		t.Fatalf("expected error for numeric keywords")
	}
}

func TestSplitKeywordsEmpty(t *testing.T) {
	got := SplitKeywords("  , ,")
	if len(got) != 0 {
		t.Fatalf("expected empty list, got %v", got)
	}
}
