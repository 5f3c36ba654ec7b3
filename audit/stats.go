/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

package audit

import (
	"encoding/json"

	"bennypowers.dev/rexaudit/compat"
	"bennypowers.dev/rexaudit/spl"
)

// Stats accumulates totals over a run.
type Stats struct {
	// Lines counts non-blank lines.
	Lines int
	// Commands counts, per kind, the commands that yielded at least one pattern.
	Commands map[spl.Kind]int
	// Patterns counts every extracted pattern.
	Patterns int
	// Incompatible counts patterns with at least one offending feature.
	Incompatible map[compat.Engine]int
	// FeatureCounts counts offending features per engine. A pattern with three
	// offending features increments three counters.
	FeatureCounts map[compat.Engine]map[string]int
}

// NewStats returns zeroed stats with a counter map for every engine.
func NewStats() *Stats {
	s := &Stats{
		Commands:      map[spl.Kind]int{spl.Rex: 0, spl.Regex: 0},
		Incompatible:  make(map[compat.Engine]int),
		FeatureCounts: make(map[compat.Engine]map[string]int),
	}
	for _, e := range compat.Engines() {
		s.Incompatible[e] = 0
		s.FeatureCounts[e] = make(map[string]int)
	}
	return s
}

// FeatureCount returns how many patterns had name flagged for e. Unseen
// features count zero.
func (s *Stats) FeatureCount(e compat.Engine, name string) int {
	return s.FeatureCounts[e][name]
}

// addLine folds one line's rows into the totals.
func (s *Stats) addLine(rows []Row) {
	s.Lines++

	seen := make(map[spl.Kind]map[int]bool)
	for _, row := range rows {
		if seen[row.Kind] == nil {
			seen[row.Kind] = make(map[int]bool)
		}
		seen[row.Kind][row.Command] = true

		s.Patterns++
		for _, v := range row.Verdicts {
			if !v.Incompatible {
				continue
			}
			s.Incompatible[v.Engine]++
			counts := s.FeatureCounts[v.Engine]
			if counts == nil {
				counts = make(map[string]int)
				s.FeatureCounts[v.Engine] = counts
			}
			for _, f := range v.Features {
				counts[f]++
			}
		}
	}

	for kind, commands := range seen {
		s.Commands[kind] += len(commands)
	}
}

type statsJSON struct {
	Lines               int            `json:"lines"`
	RexCommands         int            `json:"rex_commands"`
	RegexCommands       int            `json:"regex_commands"`
	TotalPatterns       int            `json:"total_patterns"`
	JavaIncompatible    int            `json:"java_incompatible_patterns"`
	LuceneIncompatible  int            `json:"lucene_incompatible_patterns"`
	JavaFeatureCounts   map[string]int `json:"java_feature_counts"`
	LuceneFeatureCounts map[string]int `json:"lucene_feature_counts"`
}

// MarshalJSON renders the flat report layout.
func (s *Stats) MarshalJSON() ([]byte, error) {
	out := statsJSON{
		Lines:               s.Lines,
		RexCommands:         s.Commands[spl.Rex],
		RegexCommands:       s.Commands[spl.Regex],
		TotalPatterns:       s.Patterns,
		JavaIncompatible:    s.Incompatible[compat.Java],
		LuceneIncompatible:  s.Incompatible[compat.Lucene],
		JavaFeatureCounts:   nonNil(s.FeatureCounts[compat.Java]),
		LuceneFeatureCounts: nonNil(s.FeatureCounts[compat.Lucene]),
	}
	return json.Marshal(out)
}

func nonNil(m map[string]int) map[string]int {
	if m == nil {
		return map[string]int{}
	}
	return m
}
