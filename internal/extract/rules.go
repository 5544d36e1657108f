package extract

import (
	"regexp"
	"strings"
)

// Each field is matched by an ordered list of independent rules so the
// heuristics stay tunable and testable rule by rule. Author rules are
// tried per line in line order; publisher rules each scan all lines
// before yielding to the next rule.

type lineRule func(line string) (string, bool)

var (
	squareBracketed = regexp.MustCompile(`\[.*?\]`)
	parenthesized   = regexp.MustCompile(`\(.*?\)`)
	colons          = regexp.MustCompile(`[：:]`)
)

var authorRules = []lineRule{
	authorByMarkerSuffix, // [美] 作者名 著 / 编
	authorByPrefix,       // 作者: XXX
	authorByCompiledBy,   // XX 编著
}

// Author finds the author line in the recognized text. The first line
// matching any rule wins.
func Author(text string) string {
	for _, line := range textLines(text) {
		for _, rule := range authorRules {
			if author, ok := rule(line); ok {
				return author
			}
		}
	}
	return ""
}

func authorByMarkerSuffix(line string) (string, bool) {
	n := len([]rune(line))
	if !strings.Contains(line, "著") && !strings.Contains(line, "编") {
		return "", false
	}
	if n < 3 || n > 80 {
		return "", false
	}

	author := squareBracketed.ReplaceAllString(line, "") // nationality tags like [美]
	author = parenthesized.ReplaceAllString(author, "")
	author = strings.ReplaceAll(author, "著", "")
	author = strings.ReplaceAll(author, "编", "")
	author = strings.ReplaceAll(author, "作者", "")
	author = strings.TrimSpace(colons.ReplaceAllString(author, ""))

	// Keep a romanized name if the line carried one in parentheses.
	if m := parenthesized.FindStringSubmatch(line); m != nil {
		if name := strings.Trim(m[0], "()"); name != "" {
			author = author + " (" + name + ")"
		}
	}

	if a := len([]rune(author)); author != "" && a >= 2 && a <= 50 {
		return author, true
	}
	return "", false
}

func authorByPrefix(line string) (string, bool) {
	if !strings.HasPrefix(line, "作者") || len([]rune(line)) >= 50 {
		return "", false
	}
	author := strings.ReplaceAll(line, "作者", "")
	author = strings.TrimSpace(colons.ReplaceAllString(author, ""))
	if a := len([]rune(author)); author != "" && a >= 2 && a <= 30 {
		return author, true
	}
	return "", false
}

func authorByCompiledBy(line string) (string, bool) {
	n := len([]rune(line))
	if !strings.Contains(line, "编著") || n < 3 || n > 50 {
		return "", false
	}
	author := squareBracketed.ReplaceAllString(line, "")
	author = strings.ReplaceAll(author, "编著", "")
	author = strings.TrimSpace(colons.ReplaceAllString(author, ""))
	if a := len([]rune(author)); author != "" && a >= 2 && a <= 30 {
		return author, true
	}
	return "", false
}

var (
	pressName      = regexp.MustCompile(`[\x{4e00}-\x{9fa5}]{2,20}出版社`)
	publisherGroup = regexp.MustCompile(`[\x{4e00}-\x{9fa5}]{2,20}出版[社集团传媒]{0,4}`)
)

// Publisher finds the publisher in the recognized text. Full press names
// ("XX出版社") are preferred; publishing-group suffixes are the fallback.
func Publisher(text string) string {
	lines := textLines(text)

	for _, line := range lines {
		if !strings.Contains(line, "出版社") || len([]rune(line)) >= 50 {
			continue
		}
		if m := pressName.FindString(line); m != "" {
			return m
		}
		if strings.HasSuffix(line, "出版社") &&
			!strings.Contains(line, "著") && !strings.Contains(line, "作者") {
			return line
		}
	}

	for _, line := range lines {
		if !strings.Contains(line, "出版") || len([]rune(line)) >= 30 {
			continue
		}
		if m := publisherGroup.FindString(line); m != "" {
			return m
		}
	}
	return ""
}

// isbnPattern matches ISBN-13 sequences with optional separators, e.g.
// "ISBN 978-7-111-64198-1" or "9787111641981".
var isbnPattern = regexp.MustCompile(`(?:ISBN[:\s-]*)?(?:978|979)[-\s]?\d{1,5}[-\s]?\d{1,7}[-\s]?\d{1,7}[-\s]?\d`)

var nonDigits = regexp.MustCompile(`[^0-9]`)

// ISBN finds the first ISBN-13 in the recognized text, normalized to
// "ISBN " plus the 13 digits. A match whose digits do not total exactly
// 13 is discarded rather than repaired.
func ISBN(text string) string {
	m := isbnPattern.FindString(text)
	if m == "" {
		return ""
	}
	digits := nonDigits.ReplaceAllString(m, "")
	if len(digits) != 13 {
		return ""
	}
	return "ISBN " + digits
}

// pricePattern matches a labeled price ending in 元, e.g. "定价：39.80元".
var pricePattern = regexp.MustCompile(`(?:定价|价格)[：:￥¥]?\s*([0-9.]+)\s*元`)

// Price finds the cover price in the recognized text.
func Price(text string) string {
	m := pricePattern.FindStringSubmatch(text)
	if m == nil {
		return ""
	}
	return "¥" + m[1]
}
