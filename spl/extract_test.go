/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

package spl_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"bennypowers.dev/rexaudit/spl"
)

func TestExtract_Rex(t *testing.T) {
	tests := []struct {
		name string
		line string
		want []spl.Pattern
	}{
		{
			name: "plain pattern",
			line: `rex "foo(bar)"`,
			want: []spl.Pattern{{Kind: spl.Rex, Command: 1, Index: 1, Text: "foo(bar)"}},
		},
		{
			name: "doubled quotes",
			line: `rex ""a(?<x>b)""`,
			want: []spl.Pattern{{Kind: spl.Rex, Command: 1, Index: 1, Text: "a(?<x>b)"}},
		},
		{
			name: "options before pattern are skipped",
			line: `search x | rex field=msg max_match=0 "(?<code>\d+)" | stats count`,
			want: []spl.Pattern{{Kind: spl.Rex, Command: 1, Index: 1, Text: `(?<code>\d+)`}},
		},
		{
			name: "pipe inside pattern is not a boundary for rex",
			line: `rex "(?<a>x|y)" | table a`,
			want: []spl.Pattern{{Kind: spl.Rex, Command: 1, Index: 1, Text: "(?<a>x|y)"}},
		},
		{
			name: "no quote before pipe",
			line: `rex field=x | rex "b"`,
			want: []spl.Pattern{{Kind: spl.Rex, Command: 2, Index: 1, Text: "b"}},
		},
		{
			name: "unterminated at end of line",
			line: `rex "abc`,
			want: nil,
		},
		{
			name: "no pattern at all",
			line: `rex`,
			want: nil,
		},
		{
			name: "only first literal is taken",
			line: `rex "a" "b"`,
			want: []spl.Pattern{{Kind: spl.Rex, Command: 1, Index: 1, Text: "a"}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, spl.Extract(tt.line))
		})
	}
}

func TestExtract_Regex(t *testing.T) {
	tests := []struct {
		name string
		line string
		want []spl.Pattern
	}{
		{
			name: "two literals share field",
			line: `regex field=x ("a"|"b")`,
			want: []spl.Pattern{
				{Kind: spl.Regex, Command: 1, Index: 1, Field: "x", Text: "a"},
				{Kind: spl.Regex, Command: 1, Index: 2, Field: "x", Text: "b"},
			},
		},
		{
			name: "leading field assignment",
			line: `regex _raw="^\d{3}$" | stats count`,
			want: []spl.Pattern{{Kind: spl.Regex, Command: 1, Index: 1, Field: "_raw", Text: `^\d{3}$`}},
		},
		{
			name: "negated assignment",
			line: `regex src_ip!="^10\."`,
			want: []spl.Pattern{{Kind: spl.Regex, Command: 1, Index: 1, Text: `^10\.`}},
		},
		{
			name: "no field",
			line: `regex "(?i)error"`,
			want: []spl.Pattern{{Kind: spl.Regex, Command: 1, Index: 1, Text: "(?i)error"}},
		},
		{
			name: "field keyword is case insensitive",
			line: `regex FIELD = host "web\d+"`,
			want: []spl.Pattern{{Kind: spl.Regex, Command: 1, Index: 1, Field: "host", Text: `web\d+`}},
		},
		{
			name: "field value runs up to whitespace",
			line: `regex field=x"y" "z"`,
			want: []spl.Pattern{
				{Kind: spl.Regex, Command: 1, Index: 1, Field: `x"y"`, Text: "y"},
				{Kind: spl.Regex, Command: 1, Index: 2, Field: `x"y"`, Text: "z"},
			},
		},
		{
			name: "pipe inside quotes truncates the body",
			line: `regex _raw="a|b" | regex "c"`,
			want: []spl.Pattern{{Kind: spl.Regex, Command: 2, Index: 1, Text: "c"}},
		},
		{
			name: "open character class does not swallow later commands",
			line: `search x | regex _raw="[(]err" | eval a="b"`,
			want: []spl.Pattern{{Kind: spl.Regex, Command: 1, Index: 1, Field: "_raw", Text: "[(]err"}},
		},
		{
			name: "unclosed group ends at the next pipe",
			line: `regex _raw="(abc" | regex host="web"`,
			want: []spl.Pattern{
				{Kind: spl.Regex, Command: 1, Index: 1, Field: "_raw", Text: "(abc"},
				{Kind: spl.Regex, Command: 2, Index: 1, Field: "host", Text: "web"},
			},
		},
		{
			name: "regex numbered among regex commands",
			line: `rex "a" | regex x="b"`,
			want: []spl.Pattern{
				{Kind: spl.Rex, Command: 1, Index: 1, Text: "a"},
				{Kind: spl.Regex, Command: 1, Index: 1, Field: "x", Text: "b"},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, spl.Extract(tt.line))
		})
	}
}

func TestExtract_MixedCommands(t *testing.T) {
	line := `regex host="web" | rex field=_raw "(?<=id=)\d+" | regex status="5\d\d"`
	want := []spl.Pattern{
		{Kind: spl.Rex, Command: 2, Index: 1, Text: `(?<=id=)\d+`},
		{Kind: spl.Regex, Command: 1, Index: 1, Field: "host", Text: "web"},
		{Kind: spl.Regex, Command: 2, Index: 1, Field: "status", Text: `5\d\d`},
	}
	assert.Equal(t, want, spl.Extract(line))
}

func TestRegexField(t *testing.T) {
	tests := []struct {
		body string
		want string
	}{
		{` field=src "x"`, "src"},
		{` field = src.ip "x"`, "src.ip"},
		{` user-name="x"`, "user-name"},
		{` "x" field=late`, "late"},
		{` "x"`, ""},
		{` FIELD=host "x"`, "host"},
		{` field=`, ""},
		{` x = "v"`, "x"},
		{` myfield=y "x"`, "myfield"},
	}

	for _, tt := range tests {
		t.Run(tt.body, func(t *testing.T) {
			if got := spl.RegexField(tt.body); got != tt.want {
				t.Errorf("RegexField(%q) = %q, want %q", tt.body, got, tt.want)
			}
		})
	}
}
