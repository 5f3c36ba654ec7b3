/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

// Package spl finds rex and regex commands in SPL query lines and extracts
// their quoted pattern literals and options.
package spl

import "strings"

// Span is a quoted literal located in a line of text.
type Span struct {
	// Start is the offset of the opening quote.
	Start int
	// End is the offset just past the closing quote marker(s).
	End int
	// Content is the text between the quote markers.
	// For '...' and "..." an escaped closing quote is resolved to the bare
	// quote character; every other backslash escape is kept verbatim since it
	// belongs to the regex. For ""..."" the content is passed through as is.
	Content string
}

// ScanQuoted scans the quoted literal that starts at offset i of s.
//
// Supported forms, tried in this order:
//
//	""...""  doubled double quotes, as found in exported SPL
//	"..."    backslash escapes honoured
//	'...'    backslash escapes honoured
//
// The second result is false when no quote starts at i or when the literal
// is not terminated before the end of s.
func ScanQuoted(s string, i int) (Span, bool) {
	if i < 0 || i >= len(s) {
		return Span{}, false
	}

	q := s[i]
	if q != '"' && q != '\'' {
		return Span{}, false
	}

	if q == '"' && i+1 < len(s) && s[i+1] == '"' {
		return scanDoubled(s, i)
	}
	return scanStandard(s, i, q)
}

func scanDoubled(s string, start int) (Span, bool) {
	body := start + 2
	n := strings.Index(s[body:], `""`)
	if n < 0 {
		return Span{}, false
	}
	return Span{
		Start:   start,
		End:     body + n + 2,
		Content: s[body : body+n],
	}, true
}

func scanStandard(s string, start int, q byte) (Span, bool) {
	escapedQuote := false
	for i := start + 1; i < len(s); i++ {
		switch s[i] {
		case '\\':
			i++
			if i < len(s) && s[i] == q {
				escapedQuote = true
			}
		case q:
			content := s[start+1 : i]
			if escapedQuote {
				content = unescapeQuote(content, q)
			}
			return Span{Start: start, End: i + 1, Content: content}, true
		}
	}
	return Span{}, false
}

// unescapeQuote replaces \q with q. The scanner guarantees every backslash
// in content is followed by another byte.
func unescapeQuote(content string, q byte) string {
	var b strings.Builder
	b.Grow(len(content))
	for i := 0; i < len(content); i++ {
		c := content[i]
		if c == '\\' && i+1 < len(content) {
			if content[i+1] != q {
				b.WriteByte(c)
			}
			b.WriteByte(content[i+1])
			i++
			continue
		}
		b.WriteByte(c)
	}
	return b.String()
}

// FindQuoted returns every quoted literal in s, left to right.
// Offsets where a quote does not open a terminated literal are skipped one
// byte at a time, so a stray quote does not hide literals after it.
func FindQuoted(s string) []Span {
	var spans []Span
	for i := 0; i < len(s); {
		if s[i] == '"' || s[i] == '\'' {
			if span, ok := ScanQuoted(s, i); ok {
				spans = append(spans, span)
				i = span.End
				continue
			}
		}
		i++
	}
	return spans
}
