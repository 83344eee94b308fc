// internal/util/util.go
// Package util holds small text and file helpers shared by the commands, the
// renderer and the terminal explorer.
package util

import (
	"html"
	"os"
	"regexp"
	"strings"
	"unicode/utf8"
)

var (
	breakTag = regexp.MustCompile(`(?i)<br\s*/?>`)
	subTag   = regexp.MustCompile(`(?i)<sub>(.*?)</sub>`)
	anyTag   = regexp.MustCompile(`<[^>]*>`)
)

// WriteFile writes data to a file with 0o644 permissions.
func WriteFile(path string, data []byte) error {
	return os.WriteFile(path, data, 0o644)
}

// TruncateRunes truncates a string to a maximum number of runes,
// appending an ellipsis if truncated.
func TruncateRunes(text string, maxRunes int) string {
	if utf8.RuneCountInString(text) <= maxRunes {
		return text
	}
	runes := []rune(text)
	return string(runes[:maxRunes]) + "…"
}

// WrapToWidth wraps the given text to a specified width, breaking long words.
func WrapToWidth(text string, width int) string {
	if width <= 0 {
		return text
	}
	var out []string
	for _, line := range strings.Split(text, "\n") {
		if line == "" {
			out = append(out, "")
			continue
		}
		var cur strings.Builder
		runeCount := 0
		words := strings.Fields(line)
		for wi, w := range words {
			space := 0
			if wi > 0 {
				space = 1
			}
			wLen := utf8.RuneCountInString(w)
			if runeCount+space+wLen <= width {
				if wi > 0 {
					cur.WriteByte(' ')
					runeCount++
				}
				cur.WriteString(w)
				runeCount += wLen
				continue
			}
			if runeCount > 0 {
				out = append(out, cur.String())
				cur.Reset()
				runeCount = 0
			}
			if wLen <= width {
				cur.WriteString(w)
				runeCount = wLen
			} else {
				r := []rune(w)
				for start := 0; start < len(r); start += width {
					end := start + width
					if end > len(r) {
						end = len(r)
					}
					out = append(out, string(r[start:end]))
				}
			}
		}
		if cur.Len() > 0 {
			out = append(out, cur.String())
		} else if len(words) == 0 {
			out = append(out, "")
		}
	}
	return strings.Join(out, "\n")
}

// StripTags turns the small HTML subset used in chart labels into plain text.
// Line breaks become sep, <sub>x</sub> becomes _x and other tags are dropped.
func StripTags(text, sep string) string {
	text = breakTag.ReplaceAllString(text, sep)
	text = subTag.ReplaceAllString(text, "_$1")
	text = anyTag.ReplaceAllString(text, "")
	return html.UnescapeString(text)
}
