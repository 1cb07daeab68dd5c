// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package extract turns raw model output into a verdict: the answer content,
// the model's reasoning block, and the irrelevance flag.
//
// Model output is only semi-structured. Extract first looks for a JSON object
// embedded anywhere in the text and, failing that, falls back to pattern
// matching on the markdown conventions the prompt asks for. It never fails.
package extract

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/tidwall/gjson"
)

var (
	// thinkRe matches a reasoning block; the block may span lines.
	thinkRe = regexp.MustCompile(`(?s)<think>(.*?)</think>`)

	// flagRe matches the irrelevance flag in free text, tolerating markdown
	// bold and JSON quoting around the key: isIrrelevant: true,
	// **isIrrelevant:** false, "is_irrelevant": true.
	flagRe = regexp.MustCompile(`(?i)is_?irrelevant["*]*\s*:\s*\**\s*(true|false)`)

	// answerRe captures the rest of the line after an **Answer:** marker.
	answerRe = regexp.MustCompile(`\*\*Answer:\*\*\s*(.*?)(?:\n|$)`)
)

// JSON keys read from structured output. flagAliasKey is accepted when the
// model echoes the snake_case field name.
const (
	contentKey   = "content"
	flagKey      = "isIrrelevant"
	flagAliasKey = "is_irrelevant"
)

// Result is the best-effort reading of one model response.
type Result struct {
	Content      string
	Reasoning    string
	IsIrrelevant bool
}

// Extract parses raw model output. A structured answer defaults to relevant
// when the flag is missing; an unstructured answer defaults to irrelevant.
func Extract(raw string) Result {
	var res Result
	if m := thinkRe.FindStringSubmatch(raw); m != nil {
		res.Reasoning = strings.TrimSpace(m[1])
	}
	cleaned := strings.TrimSpace(thinkRe.ReplaceAllString(raw, ""))

	if obj, ok := FindJSON(cleaned); ok {
		res.Content, res.IsIrrelevant = fromObject(obj)
		return res
	}

	res.IsIrrelevant = true
	if m := flagRe.FindStringSubmatch(cleaned); m != nil {
		res.IsIrrelevant = strings.EqualFold(m[1], "true")
	}
	res.Content = cleaned
	if m := answerRe.FindStringSubmatch(cleaned); m != nil {
		res.Content = strings.TrimSpace(m[1])
	}
	return res
}

func fromObject(obj gjson.Result) (content string, irrelevant bool) {
	content = stringValue(obj.Get(contentKey))

	if len(obj.Map()) == 1 && obj.Get(contentKey).Exists() {
		return content, false
	}

	flag := obj.Get(flagKey)
	if !flag.Exists() {
		flag = obj.Get(flagAliasKey)
	}
	return content, truthy(flag)
}

// FindJSON returns the first balanced JSON candidate in text that parses to
// a non-empty object. Candidates start at every '{' or '[' in turn.
func FindJSON(text string) (gjson.Result, bool) {
	for i := 0; i < len(text); i++ {
		if text[i] != '{' && text[i] != '[' {
			continue
		}
		candidate := balanced(text[i:])
		if candidate == "" || !gjson.Valid(candidate) {
			continue
		}
		r := gjson.Parse(candidate)
		if r.IsObject() && len(r.Map()) > 0 {
			return r, true
		}
	}
	return gjson.Result{}, false
}

// balanced returns the shortest bracket-balanced prefix of s, which must
// start with '{' or '['. An unmatched closer ends the candidate before it; a
// mismatched closer truncates it there. Brackets inside JSON strings are
// ignored. It returns "" when s runs out before the brackets balance.
func balanced(s string) string {
	var stack []byte
	inString, escaped := false, false
	for i := 0; i < len(s); i++ {
		c := s[i]
		if inString {
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inString = false
			}
			continue
		}
		switch c {
		case '"':
			inString = true
		case '{', '[':
			stack = append(stack, c)
		case '}', ']':
			if len(stack) == 0 {
				return s[:i]
			}
			top := stack[len(stack)-1]
			if (c == '}' && top != '{') || (c == ']' && top != '[') {
				return s[:i]
			}
			stack = stack[:len(stack)-1]
			if len(stack) == 0 {
				return s[:i+1]
			}
		}
	}
	return ""
}

func stringValue(r gjson.Result) string {
	switch r.Type {
	case gjson.String:
		return r.Str
	case gjson.Null:
		return ""
	default:
		return r.Raw
	}
}

// truthy reads a JSON value as a flag. Strings spelling a boolean are parsed;
// other values follow the usual empty/zero-is-false rule.
func truthy(r gjson.Result) bool {
	switch r.Type {
	case gjson.True:
		return true
	case gjson.False, gjson.Null:
		return false
	case gjson.Number:
		return r.Num != 0
	case gjson.String:
		if b, err := strconv.ParseBool(strings.TrimSpace(r.Str)); err == nil {
			return b
		}
		return r.Str != ""
	case gjson.JSON:
		if r.IsArray() {
			return len(r.Array()) > 0
		}
		return len(r.Map()) > 0
	}
	return false
}
