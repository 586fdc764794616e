package capability

import (
	"encoding/json"
	"regexp"
	"strings"
)

var (
	listItemPattern  = regexp.MustCompile(`^\s*(?:\d+[.)]|[-*•])\s*`)
	jsonBlockPattern = regexp.MustCompile(`(?s)[\[{].*[\]}]`)
)

// ParseClaimList parses generative output into claim strings. It accepts
// a JSON string array, a numbered or bulleted list, or plain prose; each
// surviving non-empty line becomes one claim. Never returns an error:
// unparseable input degrades to the permissive line-based reading.
func ParseClaimList(raw string) []string {
	raw = StripFences(raw)

	// Structured attempt: a JSON array of strings
	if block := jsonBlockPattern.FindString(raw); block != "" {
		var arr []string
		if err := json.Unmarshal([]byte(block), &arr); err == nil {
			return cleanClaims(arr)
		}
	}

	// Permissive fallback: one claim per non-empty line
	var claims []string
	for _, line := range strings.Split(raw, "\n") {
		line = listItemPattern.ReplaceAllString(line, "")
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		claims = append(claims, line)
	}
	return cleanClaims(claims)
}

func cleanClaims(raw []string) []string {
	var out []string
	for _, c := range raw {
		c = strings.Trim(strings.TrimSpace(c), `"`)
		if c == "" {
			continue
		}
		out = append(out, c)
	}
	return out
}

// StripFences removes markdown code fences around a model response
func StripFences(s string) string {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "```json") {
		s = s[len("```json"):]
	} else if strings.HasPrefix(s, "```") {
		s = s[3:]
	}
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}

// ExtractJSONObject pulls the first {...} block out of a response that
// may carry extra prose around the JSON payload
func ExtractJSONObject(s string) (string, bool) {
	start := strings.Index(s, "{")
	end := strings.LastIndex(s, "}")
	if start < 0 || end <= start {
		return "", false
	}
	return s[start : end+1], true
}
