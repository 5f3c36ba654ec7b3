/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

// Package compat classifies detected regex features against target engines.
package compat

import (
	"fmt"
	"strings"

	"bennypowers.dev/rexaudit/feature"
)

// Engine is a target regex engine.
type Engine string

const (
	// Java is java.util.regex, a backtracking engine.
	Java Engine = "java"
	// Lucene is the Lucene RegExp automaton syntax used for term matching.
	Lucene Engine = "lucene"
)

// javaUnsupported lists PCRE-only extensions java.util.regex rejects.
var javaUnsupported = feature.NewSet(
	feature.BacktrackingControl,
	feature.BranchReset,
	feature.Recursion,
	feature.SubroutineNumber,
	feature.SubroutineName,
	feature.Conditional,
	feature.Callout,
	feature.ModeModifier,
)

// luceneUnsupported lists everything java rejects plus every construct an
// automaton cannot express.
var luceneUnsupported = feature.NewSet(
	feature.Lookahead,
	feature.Lookbehind,
	feature.AtomicGroup,
	feature.PossessiveQuantifier,
	feature.BacktrackingControl,
	feature.BranchReset,
	feature.Recursion,
	feature.SubroutineNumber,
	feature.SubroutineName,
	feature.Conditional,
	feature.Callout,
	feature.NamedBackrefK,
	feature.NamedCaptureAngle,
	feature.NamedCaptureSingle,
	feature.BackrefNumber,
	feature.InlineFlags,
	feature.ModeModifier,
)

// Engines returns the supported engines in report order.
func Engines() []Engine {
	return []Engine{Java, Lucene}
}

// ParseEngine converts a case-insensitive engine name.
func ParseEngine(s string) (Engine, error) {
	switch e := Engine(strings.ToLower(strings.TrimSpace(s))); e {
	case Java, Lucene:
		return e, nil
	}
	return "", fmt.Errorf("unknown engine: %q (valid: java, lucene)", s)
}

// Unsupported returns the features the engine cannot handle, alphabetically.
func Unsupported(e Engine) ([]string, error) {
	table, err := unsupported(e)
	if err != nil {
		return nil, err
	}
	return table.Sorted(), nil
}

func unsupported(e Engine) (feature.Set, error) {
	switch e {
	case Java:
		return javaUnsupported, nil
	case Lucene:
		return luceneUnsupported, nil
	}
	return nil, fmt.Errorf("unknown engine: %q", string(e))
}

// Verdict is the outcome of classifying one pattern for one engine.
type Verdict struct {
	Engine       Engine
	Incompatible bool
	// Features lists the offending features alphabetically.
	Features []string
}

// Classify intersects features with the engine's unsupported table.
func Classify(features feature.Set, e Engine) (Verdict, error) {
	table, err := unsupported(e)
	if err != nil {
		return Verdict{}, err
	}

	bad := make(feature.Set)
	for name := range features {
		if table.Has(name) {
			bad[name] = struct{}{}
		}
	}

	return Verdict{
		Engine:       e,
		Incompatible: len(bad) > 0,
		Features:     bad.Sorted(),
	}, nil
}

// ClassifyAll classifies features for every engine in Engines order.
func ClassifyAll(features feature.Set) []Verdict {
	engines := Engines()
	verdicts := make([]Verdict, len(engines))
	for i, e := range engines {
		// Engines only yields known engines.
		verdicts[i], _ = Classify(features, e)
	}
	return verdicts
}
