package textanalysis

import (
	"regexp"
	"strings"
)

// FieldRule is a single heuristic extractor: a pattern whose first capture
// group yields the field value when it matches.
type FieldRule struct {
	Pattern *regexp.Regexp
}

// ModelRules extracts a model name from generation metadata. Structured
// key:value forms come before quoted JSON-style forms; order encodes priority.
var ModelRules = []FieldRule{
	{regexp.MustCompile(`(?i)Model:\s*([^\n,]+)`)},
	{regexp.MustCompile(`(?i)model:\s*([^\n,]+)`)},
	{regexp.MustCompile(`(?i)"model":\s*"([^"]+)"`)},
}

// SizeRules extracts an image size ("WxH") from generation metadata. The bare
// digit pattern is tried last because it is the most likely to false-positive.
var SizeRules = []FieldRule{
	{regexp.MustCompile(`(?i)Size:\s*(\d+x\d+)`)},
	{regexp.MustCompile(`(?i)size:\s*(\d+x\d+)`)},
	{regexp.MustCompile(`(?i)"size":\s*"(\d+x\d+)"`)},
	{regexp.MustCompile(`(\d{3,5}x\d{3,5})`)},
}

// ExtractField tries each rule in order and returns the first non-empty
// capture group match, trimmed of surrounding whitespace. The second return
// value reports whether any rule matched.
func ExtractField(text string, rules []FieldRule) (string, bool) {
	for _, rule := range rules {
		m := rule.Pattern.FindStringSubmatch(text)
		if m == nil || len(m) < 2 {
			continue
		}
		value := strings.TrimSpace(m[1])
		if value != "" {
			return value, true
		}
	}
	return "", false
}
