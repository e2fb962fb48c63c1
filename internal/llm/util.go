package llm

import (
	"encoding/json"
	"fmt"
	"strings"

	jsonrepair "github.com/RealAlexandreAI/json-repair"
)

// CleanJSONBlock strips markdown fences and any prose around the first JSON
// object or array in text.
func CleanJSONBlock(text string) string {
	text = strings.TrimSpace(text)

	if strings.HasPrefix(text, "```") {
		text = strings.TrimPrefix(text, "```")
		// Skip a language identifier on the first line
		if idx := strings.Index(text, "\n"); idx >= 0 {
			first := text[:idx]
			if len(first) < 20 && !strings.ContainsAny(first, " {[") {
				text = text[idx+1:]
			}
		}
		if idx := strings.LastIndex(text, "```"); idx >= 0 {
			text = text[:idx]
		}
		text = strings.TrimSpace(text)
	}

	start := strings.IndexAny(text, "{[")
	if start < 0 {
		return text
	}
	if balanced := extractBalanced(text[start:]); balanced != "" {
		return balanced
	}
	return text[start:]
}

// extractBalanced returns the leading object or array of s, honoring strings
// and escapes. It returns "" when s does not start with { or [ or is unbalanced.
func extractBalanced(s string) string {
	if s == "" || (s[0] != '{' && s[0] != '[') {
		return ""
	}

	depth := 0
	inString := false
	escaped := false
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case escaped:
			escaped = false
		case inString && c == '\\':
			escaped = true
		case c == '"':
			inString = !inString
		case inString:
		case c == '{' || c == '[':
			depth++
		case c == '}' || c == ']':
			depth--
			if depth == 0 {
				return s[:i+1]
			}
		}
	}
	return ""
}

// RepairJSON fixes common model output defects: single quotes, unquoted keys,
// trailing commas, comments and unclosed containers.
func RepairJSON(malformed string) (string, error) {
	repaired, err := jsonrepair.RepairJSON(malformed)
	if err != nil {
		return "", fmt.Errorf("failed to repair JSON: %w", err)
	}
	return repaired, nil
}

// NormalizeJSON cleans text and repairs it only when it is not already valid.
func NormalizeJSON(text string) (string, error) {
	cleaned := CleanJSONBlock(text)
	if json.Valid([]byte(cleaned)) {
		return cleaned, nil
	}
	repaired, err := RepairJSON(cleaned)
	if err != nil {
		return "", err
	}
	if !json.Valid([]byte(repaired)) {
		return "", fmt.Errorf("model output is not valid JSON after repair")
	}
	return repaired, nil
}
