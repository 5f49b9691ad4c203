// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package openai

import "strings"

// repairJSON attempts to fix common JSON formatting issues from LLM responses.
// It trims prose around the outermost object, quotes bare keys, and lowercases
// Python-style booleans.
// Example: `Sure! {political: True}` -> `{"political": true}`
func repairJSON(s string) string {
	if start := strings.IndexByte(s, '{'); start >= 0 {
		if end := strings.LastIndexByte(s, '}'); end > start {
			s = s[start : end+1]
		}
	}

	src := []rune(s)
	fixed := make([]rune, 0, len(src)+8)

	i := 0
	for i < len(src) {
		ch := src[i]
		fixed = append(fixed, ch)
		i++

		if ch == '"' {
			// Copy string literals through untouched
			for i < len(src) {
				fixed = append(fixed, src[i])
				if src[i] == '\\' && i+1 < len(src) {
					fixed = append(fixed, src[i+1])
					i += 2
					continue
				}
				i++
				if src[i-1] == '"' {
					break
				}
			}
			continue
		}

		if ch != '{' && ch != ',' {
			continue
		}

		for i < len(src) && isSpace(src[i]) {
			fixed = append(fixed, src[i])
			i++
		}
		if i >= len(src) || !isLetter(src[i]) {
			continue
		}

		keyStart := i
		for i < len(src) && (isLetter(src[i]) || src[i] == '_') {
			i++
		}
		key := src[keyStart:i]

		// `key":` is missing only the opening quote, `key:` is missing both
		switch {
		case i+1 < len(src) && src[i] == '"' && src[i+1] == ':':
			fixed = append(fixed, '"')
			fixed = append(fixed, key...)
			fixed = append(fixed, '"')
			i++
		case i < len(src) && src[i] == ':':
			fixed = append(fixed, '"')
			fixed = append(fixed, key...)
			fixed = append(fixed, '"')
		default:
			fixed = append(fixed, key...)
		}
	}

	out := string(fixed)
	out = strings.ReplaceAll(out, ": True", ": true")
	out = strings.ReplaceAll(out, ": False", ": false")
	out = strings.ReplaceAll(out, ":True", ":true")
	out = strings.ReplaceAll(out, ":False", ":false")
	return out
}

func isLetter(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
}

func isSpace(r rune) bool {
	return r == ' ' || r == '\n' || r == '\t' || r == '\r'
}
