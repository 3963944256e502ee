package main

import (
	"os/exec"
	"runtime"
	"strconv"
	"strings"

	"github.com/atotto/clipboard"
)

func readClipboardText() (string, error) {
	if runtime.GOOS == "darwin" {
		if output, err := exec.Command("pbpaste", "-Prefer", "txt").Output(); err == nil {
			return string(output), nil
		}
	}
	return clipboard.ReadAll()
}

func writeClipboardText(text string) error {
	return clipboard.WriteAll(text)
}

// labelFromClipboard reduces pasted text to a single label line. Rich text and HTML
// markup are dropped first.
func labelFromClipboard(text string) string {
	text = cleanClipboardText(text)
	if isHTML(text) {
		text = extractTextFromHTML(text)
	}
	for _, line := range strings.Split(text, "\n") {
		if line = strings.Join(strings.Fields(line), " "); line != "" {
			return line
		}
	}
	return ""
}

func isHTML(text string) bool {
	return strings.HasPrefix(strings.TrimSpace(text), "<") &&
		(strings.Contains(text, "<html") || strings.Contains(text, "<body") || strings.Contains(text, "<div") || strings.Contains(text, "<span"))
}

func extractTextFromHTML(html string) string {
	var result strings.Builder
	result.Grow(len(html))
	inTag := false
	for _, r := range html {
		switch {
		case r == '<':
			inTag = true
		case r == '>':
			inTag = false
		case !inTag:
			result.WriteRune(r)
		}
	}
	return strings.NewReplacer(
		"&lt;", "<",
		"&gt;", ">",
		"&amp;", "&",
		"&quot;", "\"",
		"&#39;", "'",
		"&nbsp;", " ",
	).Replace(result.String())
}

func cleanClipboardText(text string) string {
	if text == "" {
		return text
	}
	if isRTF(text) {
		text = extractTextFromRTF(text)
	}
	var result strings.Builder
	result.Grow(len(text))
	for _, r := range text {
		if r == '\n' || r == '\r' || r == '\t' || r >= 32 {
			result.WriteRune(r)
		}
	}
	normalized := strings.ReplaceAll(result.String(), "\r\n", "\n")
	return strings.ReplaceAll(normalized, "\r", "\n")
}

func isRTF(text string) bool {
	return strings.HasPrefix(text, "{\\rtf") || strings.Contains(text, "\\rtf1")
}

// rtfDestinations open groups that hold document metadata instead of text.
var rtfDestinations = map[string]bool{
	"fonttbl":          true,
	"colortbl":         true,
	"expandedcolortbl": true,
	"stylesheet":       true,
	"listtable":        true,
	"info":             true,
	"pict":             true,
	"header":           true,
	"footer":           true,
}

func extractTextFromRTF(rtf string) string {
	var result strings.Builder
	result.Grow(len(rtf))
	runes := []rune(rtf)

	// one entry per open group, true while the group is a skipped destination
	var skip []bool
	skipping := func() bool { return len(skip) > 0 && skip[len(skip)-1] }
	groupStart := false

	for i := 0; i < len(runes); i++ {
		r := runes[i]
		if r == '{' {
			skip = append(skip, skipping())
			groupStart = true
			continue
		}
		if r == '}' {
			if len(skip) > 0 {
				skip = skip[:len(skip)-1]
			}
			groupStart = false
			continue
		}
		first := groupStart
		groupStart = false

		if r != '\\' {
			// raw line breaks are formatting; \par and \line carry the real ones
			if !skipping() && r != '\n' && r != '\r' {
				result.WriteRune(r)
			}
			continue
		}
		if i+1 >= len(runes) {
			continue
		}
		next := runes[i+1]
		switch {
		case next == '\'' && i+3 < len(runes):
			if val, err := strconv.ParseUint(string(runes[i+2:i+4]), 16, 8); err == nil {
				if !skipping() {
					result.WriteRune(rune(val))
				}
				i += 3
				continue
			}
			i++
		case next == '\\' || next == '{' || next == '}':
			if !skipping() {
				result.WriteRune(next)
			}
			i++
		case next == '-':
			if !skipping() {
				result.WriteRune('-')
			}
			i++
		case next == '_' || next == '~':
			if !skipping() {
				result.WriteRune(' ')
			}
			i++
		case next == '*':
			if len(skip) > 0 {
				skip[len(skip)-1] = true
			}
			i++
		case next == '\n' || next == '\r':
			if !skipping() {
				result.WriteRune('\n')
			}
			i++
		case isASCIILetter(next):
			j := i + 1
			for j < len(runes) && isASCIILetter(runes[j]) {
				j++
			}
			word := string(runes[i+1 : j])
			k := j
			if k < len(runes) && (runes[k] == '-' || isASCIIDigit(runes[k])) {
				k++
				for k < len(runes) && isASCIIDigit(runes[k]) {
					k++
				}
			}
			param := string(runes[j:k])
			if k < len(runes) && runes[k] == ' ' {
				k++
			}
			i = k - 1

			if first && rtfDestinations[word] {
				skip[len(skip)-1] = true
			}
			if skipping() {
				continue
			}
			switch word {
			case "par", "line":
				result.WriteRune('\n')
			case "tab":
				result.WriteRune('\t')
			case "u":
				n, err := strconv.Atoi(param)
				if err != nil {
					continue
				}
				if n < 0 {
					n += 65536
				}
				result.WriteRune(rune(n))
				// skip the ANSI fallback character
				if i+1 < len(runes) && runes[i+1] != '\\' && runes[i+1] != '{' && runes[i+1] != '}' {
					i++
				}
			}
		default:
			i++
		}
	}
	return result.String()
}

func isASCIILetter(r rune) bool { return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') }

func isASCIIDigit(r rune) bool { return r >= '0' && r <= '9' }
