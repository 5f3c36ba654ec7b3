/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

package compat_test

import (
	"slices"
	"testing"

	"bennypowers.dev/rexaudit/compat"
	"bennypowers.dev/rexaudit/feature"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name       string
		features   []string
		engine     compat.Engine
		wantBad    bool
		wantDetail []string
	}{
		{"no features java", nil, compat.Java, false, []string{}},
		{"no features lucene", nil, compat.Lucene, false, []string{}},
		{"angle capture java", []string{feature.NamedCaptureAngle}, compat.Java, false, []string{}},
		{"angle capture lucene", []string{feature.NamedCaptureAngle}, compat.Lucene, true, []string{feature.NamedCaptureAngle}},
		{"lookahead java", []string{feature.Lookahead}, compat.Java, false, []string{}},
		{"lookahead lucene", []string{feature.Lookahead}, compat.Lucene, true, []string{feature.Lookahead}},
		{"lookbehind java", []string{feature.Lookbehind}, compat.Java, false, []string{}},
		{"possessive java", []string{feature.PossessiveQuantifier}, compat.Java, false, []string{}},
		{"possessive lucene", []string{feature.PossessiveQuantifier}, compat.Lucene, true, []string{feature.PossessiveQuantifier}},
		{"recursion java", []string{feature.Recursion}, compat.Java, true, []string{feature.Recursion}},
		{
			"sorted and filtered",
			[]string{feature.ModeModifier, feature.Lookahead, feature.Callout},
			compat.Java,
			true,
			[]string{feature.Callout, feature.ModeModifier},
		},
		{
			"sorted lucene",
			[]string{feature.ModeModifier, feature.Lookahead, feature.Callout},
			compat.Lucene,
			true,
			[]string{feature.Callout, feature.Lookahead, feature.ModeModifier},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v, err := compat.Classify(feature.NewSet(tt.features...), tt.engine)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if v.Engine != tt.engine {
				t.Errorf("Engine = %q, want %q", v.Engine, tt.engine)
			}
			if v.Incompatible != tt.wantBad {
				t.Errorf("Incompatible = %v, want %v", v.Incompatible, tt.wantBad)
			}
			if !slices.Equal(v.Features, tt.wantDetail) {
				t.Errorf("Features = %v, want %v", v.Features, tt.wantDetail)
			}
		})
	}
}

func TestClassify_UnknownEngine(t *testing.T) {
	if _, err := compat.Classify(feature.NewSet(feature.Lookahead), compat.Engine("pcre")); err == nil {
		t.Error("expected error for unknown engine")
	}
}

func TestClassifyAll(t *testing.T) {
	verdicts := compat.ClassifyAll(feature.Detect(`a(?<x>b)`))
	if len(verdicts) != 2 {
		t.Fatalf("expected 2 verdicts, got %d", len(verdicts))
	}
	if verdicts[0].Engine != compat.Java || verdicts[0].Incompatible {
		t.Errorf("java verdict = %+v, want compatible", verdicts[0])
	}
	if verdicts[1].Engine != compat.Lucene || !verdicts[1].Incompatible {
		t.Errorf("lucene verdict = %+v, want incompatible", verdicts[1])
	}
}

// Every construct java rejects is also rejected by lucene.
func TestTables_JavaSubsetOfLucene(t *testing.T) {
	java, err := compat.Unsupported(compat.Java)
	if err != nil {
		t.Fatal(err)
	}
	lucene, err := compat.Unsupported(compat.Lucene)
	if err != nil {
		t.Fatal(err)
	}
	for _, f := range java {
		if !slices.Contains(lucene, f) {
			t.Errorf("%s is unsupported by java but not lucene", f)
		}
	}
	for _, f := range lucene {
		if !feature.Known(f) {
			t.Errorf("lucene table references unknown feature %q", f)
		}
	}
	if !slices.IsSorted(lucene) {
		t.Errorf("Unsupported(lucene) not sorted: %v", lucene)
	}
}

func TestParseEngine(t *testing.T) {
	tests := []struct {
		in      string
		want    compat.Engine
		wantErr bool
	}{
		{"java", compat.Java, false},
		{"Lucene", compat.Lucene, false},
		{" JAVA ", compat.Java, false},
		{"re2", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := compat.ParseEngine(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseEngine(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ParseEngine(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}
