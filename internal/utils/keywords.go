package utils

import (
	"encoding/json"
	"strings"
)

// KeywordList accepts either a JSON array of strings or a single
// comma-separated string, and always normalizes to a trimmed list.
type KeywordList []string

func (k *KeywordList) UnmarshalJSON(data []byte) error {
	var list []string
	if err := json.Unmarshal(data, &list); err == nil {
		*k = NormalizeKeywords(list)
		return nil
	}
	var single string
	if err := json.Unmarshal(data, &single); err != nil {
		return err
	}
	*k = SplitKeywords(single)
	return nil
}

func SplitKeywords(raw string) []string {
	return NormalizeKeywords(strings.Split(raw, ","))
}

func NormalizeKeywords(values []string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		v = strings.TrimSpace(v)
		if v == "" {
			continue
		}
		out = append(out, v)
	}
	return out
}
