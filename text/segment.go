package text

import (
	"github.com/go-text/typesetting/di"
	"github.com/go-text/typesetting/language"
	"golang.org/x/text/unicode/bidi"
)

// Segment is a run of runes sharing one direction and script.
// Start and End are rune indices into the segmented text.
type Segment struct {
	Start, End int
	Direction  di.Direction
	Script     language.Script
	// Level is the bidi embedding level: even is left-to-right.
	Level int
}

// Segments splits runes into bidi and script segments in logical order.
// rtl selects a right-to-left paragraph direction.
func Segments(runes []rune, rtl bool) []Segment {
	if len(runes) == 0 {
		return nil
	}
	levels := bidiLevels(runes, rtl)
	scripts := resolveScripts(runes)

	segments := make([]Segment, 0, 4)
	start := 0
	for i := 1; i <= len(runes); i++ {
		if i < len(runes) && levels[i] == levels[start] && scripts[i] == scripts[start] {
			continue
		}
		dir := di.DirectionLTR
		if levels[start]%2 == 1 {
			dir = di.DirectionRTL
		}
		segments = append(segments, Segment{
			Start:     start,
			End:       i,
			Direction: dir,
			Script:    scripts[start],
			Level:     levels[start],
		})
		start = i
	}
	return segments
}

// bidiLevels returns the embedding level of every rune.
func bidiLevels(runes []rune, rtl bool) []int {
	levels := make([]int, len(runes))

	defaultDir := bidi.Neutral
	if rtl {
		defaultDir = bidi.RightToLeft
	}
	p := bidi.Paragraph{}
	if _, err := p.SetString(string(runes), bidi.DefaultDirection(defaultDir)); err != nil {
		return levels
	}
	ordering, err := p.Order()
	if err != nil {
		return levels
	}

	// run.Pos() returns rune indices, end inclusive.
	for i := 0; i < ordering.NumRuns(); i++ {
		run := ordering.Run(i)
		start, end := run.Pos()
		level := 0
		if run.Direction() == bidi.RightToLeft {
			level = 1
		}
		for j := start; j <= end && j < len(levels); j++ {
			levels[j] = level
		}
	}
	return levels
}

// resolveScripts assigns every rune a concrete script. Common and Inherited
// runes take the script of their neighbors.
func resolveScripts(runes []rune) []language.Script {
	scripts := make([]language.Script, len(runes))
	for i, r := range runes {
		scripts[i] = language.LookupScript(r)
	}

	last := language.Common
	for i, s := range scripts {
		switch s {
		case language.Inherited:
			scripts[i] = last
		case language.Common:
		default:
			last = s
		}
	}

	last = language.Common
	for i, s := range scripts {
		if s != language.Common {
			last = s
			continue
		}
		next := nextConcrete(scripts, i+1)
		switch {
		case last != language.Common:
			scripts[i] = last
		case next != language.Common:
			scripts[i] = next
		default:
			scripts[i] = language.Latin
		}
	}
	return scripts
}

func nextConcrete(scripts []language.Script, start int) language.Script {
	for _, s := range scripts[start:] {
		if s != language.Common && s != language.Inherited {
			return s
		}
	}
	return language.Common
}

// visualOrder returns the indices of segments in display order: maximal
// sequences of right-to-left segments are reversed.
func visualOrder(segments []Segment) []int {
	order := make([]int, len(segments))
	for i := range order {
		order[i] = i
	}
	for i := 0; i < len(order); {
		if segments[order[i]].Level%2 == 0 {
			i++
			continue
		}
		j := i
		for j < len(order) && segments[order[j]].Level%2 == 1 {
			j++
		}
		for a, b := i, j-1; a < b; a, b = a+1, b-1 {
			order[a], order[b] = order[b], order[a]
		}
		i = j
	}
	return order
}
