package llm

import (
	"encoding/json"
	"fmt"
	"strings"
)

// SchemaValidator validates a parsed struct after JSON extraction.
// Returns nil if valid, or a descriptive error if invalid.
type SchemaValidator[T any] func(T) error

// ExtractJSON extracts a JSON object of type T from raw LLM text output.
// It handles markdown code fences, leading/trailing prose, and nested
// braces. If validator is non-nil, the extracted value is validated
// before return.
func ExtractJSON[T any](raw string, validator SchemaValidator[T]) (T, error) {
	var zero T

	cleaned := StripCodeFences(raw)
	jsonStr := ExtractJSONBlock(cleaned)
	if jsonStr == "" {
		return zero, fmt.Errorf("%w: no JSON object found in response", ErrInvalidOutput)
	}
	jsonStr = stripJSONComments(jsonStr)

	var result T
	if err := json.Unmarshal([]byte(jsonStr), &result); err != nil {
		return zero, fmt.Errorf("%w: %v", ErrInvalidOutput, err)
	}

	if validator != nil {
		if err := validator(result); err != nil {
			return zero, fmt.Errorf("%w: validation failed: %v", ErrInvalidOutput, err)
		}
	}

	return result, nil
}

// StripCodeFences removes markdown code fences (```json ... ``` or ``` ... ```),
// keeping the fenced content.
func StripCodeFences(s string) string {
	lines := strings.Split(s, "\n")
	var result []string
	inFence := false
	for _, line := range lines {
		trimmed := strings.TrimSpace(line)
		if strings.HasPrefix(trimmed, "```") {
			inFence = !inFence
			continue
		}
		result = append(result, line)
	}
	return strings.Join(result, "\n")
}

// FencedBlock returns the inner text of the first fenced code block in
// s, trimmed of surrounding whitespace. An optional language tag on the
// opening fence is discarded. Returns "" when no complete fenced block
// is present.
func FencedBlock(s string) string {
	open := strings.Index(s, "```")
	if open == -1 {
		return ""
	}
	rest := s[open+3:]
	// Drop the language tag up to the first newline.
	if nl := strings.IndexByte(rest, '\n'); nl != -1 {
		rest = rest[nl+1:]
	} else {
		return ""
	}
	closing := strings.Index(rest, "```")
	if closing == -1 {
		return ""
	}
	return strings.TrimSpace(rest[:closing])
}

// Fenced is one fenced code block together with the prose that
// immediately preceded it. Models asked for "rationale, then code"
// interleave the two, so the preamble is worth keeping.
type Fenced struct {
	Preamble string
	Code     string
}

// FencedBlocks returns up to max fenced code blocks in order of
// appearance, each paired with the text between it and the previous
// block. max <= 0 means no bound.
func FencedBlocks(s string, max int) []Fenced {
	var blocks []Fenced
	for {
		if max > 0 && len(blocks) == max {
			return blocks
		}
		open := strings.Index(s, "```")
		if open == -1 {
			return blocks
		}
		preamble := strings.TrimSpace(s[:open])
		rest := s[open+3:]
		nl := strings.IndexByte(rest, '\n')
		if nl == -1 {
			return blocks
		}
		rest = rest[nl+1:]
		closing := strings.Index(rest, "```")
		if closing == -1 {
			return blocks
		}
		blocks = append(blocks, Fenced{
			Preamble: preamble,
			Code:     strings.TrimSpace(rest[:closing]),
		})
		s = rest[closing+3:]
	}
}

// ExtractJSONBlock finds the first balanced { ... } block in the text.
func ExtractJSONBlock(s string) string {
	start := strings.IndexByte(s, '{')
	if start == -1 {
		return ""
	}

	depth := 0
	inString := false
	escaped := false

	for i := start; i < len(s); i++ {
		c := s[i]

		if escaped {
			escaped = false
			continue
		}

		if c == '\\' && inString {
			escaped = true
			continue
		}

		if c == '"' {
			inString = !inString
			continue
		}

		if inString {
			continue
		}

		switch c {
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return s[start : i+1]
			}
		}
	}

	return ""
}

// stripJSONComments removes C-style comments outside of JSON string
// values. LLMs sometimes emit comments in JSON output despite
// instructions not to.
func stripJSONComments(s string) string {
	var b strings.Builder
	b.Grow(len(s))

	inString := false
	escaped := false

	for i := 0; i < len(s); i++ {
		c := s[i]

		if escaped {
			b.WriteByte(c)
			escaped = false
			continue
		}

		if c == '\\' && inString {
			b.WriteByte(c)
			escaped = true
			continue
		}

		if c == '"' {
			b.WriteByte(c)
			inString = !inString
			continue
		}

		if inString {
			b.WriteByte(c)
			continue
		}

		// Line comment: skip to end of line
		if c == '/' && i+1 < len(s) && s[i+1] == '/' {
			for i+1 < len(s) && s[i+1] != '\n' {
				i++
			}
			continue
		}

		// Block comment: skip to closing */
		if c == '/' && i+1 < len(s) && s[i+1] == '*' {
			i += 2
			for i+1 < len(s) {
				if s[i] == '*' && s[i+1] == '/' {
					i++
					break
				}
				i++
			}
			continue
		}

		b.WriteByte(c)
	}

	return b.String()
}
