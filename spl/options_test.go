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

func TestParseRexOptions(t *testing.T) {
	tests := []struct {
		name    string
		command string
		want    spl.RexOptions
	}{
		{
			name:    "extraction on _raw",
			command: `rex "(?<user>\w+)@(?<domain>\S+)"`,
			want: spl.RexOptions{
				MaxMatch:    -1,
				Literal:     `(?<user>\w+)@(?<domain>\S+)`,
				NamedGroups: []string{"user", "domain"},
			},
		},
		{
			name:    "explicit field and max_match",
			command: `rex field=uri max_match=0 "(?<seg>[^/]+)"`,
			want: spl.RexOptions{
				Field:       "uri",
				MaxMatch:    0,
				Literal:     `(?<seg>[^/]+)`,
				NamedGroups: []string{"seg"},
			},
		},
		{
			name:    "quoted field value is not the pattern",
			command: `rex field="src host" "(?'h'\w+)"`,
			want: spl.RexOptions{
				Field:       "src",
				MaxMatch:    -1,
				Literal:     `(?'h'\w+)`,
				NamedGroups: []string{"h"},
			},
		},
		{
			name:    "sed replace with flags",
			command: `rex mode=sed field=msg "s/\d{4}/XXXX/g"`,
			want: spl.RexOptions{
				Field:    "msg",
				ModeSed:  true,
				SedType:  spl.SedReplace,
				SedFlags: []string{"g"},
				MaxMatch: -1,
				Literal:  `s/\d{4}/XXXX/g`,
			},
		},
		{
			name:    "sed substitute",
			command: `rex mode=sed ""y/abc/xyz/""`,
			want: spl.RexOptions{
				ModeSed:  true,
				SedType:  spl.SedSubstitute,
				MaxMatch: -1,
				Literal:  "y/abc/xyz/",
			},
		},
		{
			name:    "offset_field is not field",
			command: `rex offset_field=off "(?<x>a)"`,
			want: spl.RexOptions{
				MaxMatch:    -1,
				OffsetField: "off",
				Literal:     "(?<x>a)",
				NamedGroups: []string{"x"},
			},
		},
		{
			name:    "lookbehind is not a named group",
			command: `rex "(?<=id=)(?<id>\d+)"`,
			want: spl.RexOptions{
				MaxMatch:    -1,
				Literal:     `(?<=id=)(?<id>\d+)`,
				NamedGroups: []string{"id"},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, spl.ParseRexOptions(tt.command))
		})
	}
}
