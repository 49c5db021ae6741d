package synthesizer

import (
	"fmt"
	"strings"
)

// spliceGroup is a run of adjacent chunks joined by the concat protocol
// because none of the internal boundaries carry a transition. A group
// boundary only exists where a chunk's TransitionIn is set.
type spliceGroup struct {
	chunks       []*Chunk
	transitionIn *ChunkTransition // transition shared with the previous group, nil for the first
	offsetMs     float64          // cumulative effective offset at this group's transition boundary
}

func buildSpliceGroups(chunks []*Chunk) []spliceGroup {
	if len(chunks) == 0 {
		return nil
	}

	var groups []spliceGroup
	cur := spliceGroup{chunks: []*Chunk{chunks[0]}}
	var cumulative float64

	for i := 1; i < len(chunks); i++ {
		c := chunks[i]
		if c.TransitionIn != nil {
			groups = append(groups, cur)
			cumulative += effectiveDurationOfGroup(cur.chunks)
			cur = spliceGroup{chunks: []*Chunk{c}, transitionIn: c.TransitionIn, offsetMs: cumulative}
			continue
		}
		cur.chunks = append(cur.chunks, c)
	}
	groups = append(groups, cur)

	return groups
}

func effectiveDurationOfGroup(chunks []*Chunk) float64 {
	var total float64
	for _, c := range chunks {
		total += c.EffectiveDurationMs()
	}
	return total
}

// groupInputSpec returns the ffmpeg -i argument for this group: a bare
// path for a single chunk, or the concat protocol for several
// transition-less adjacent chunks (spec §4.9: "concat:a.ts|b.ts|...").
func groupInputSpec(g spliceGroup) string {
	if len(g.chunks) == 1 {
		return g.chunks[0].OutputPath
	}
	paths := make([]string, len(g.chunks))
	for i, c := range g.chunks {
		paths[i] = c.OutputPath
	}
	return "concat:" + strings.Join(paths, "|")
}

// buildSpliceFilterComplex builds the ffmpeg -i list and, when more than
// one group exists, the cascading Xfade filter_complex chaining them
// (spec §4.9: "offset = cumulativeEffective and duration =
// transition.duration, cascading outputs [v0][v1]..."). Returns the -i
// arguments in order, the filter_complex string (empty when there is
// only one group and no filter is needed), and the video output label to
// -map (either "[vN]" or, with no filter, the literal input index).
func buildSpliceFilterComplex(groups []spliceGroup) (inputs []string, filterComplex string, outLabel string) {
	for _, g := range groups {
		inputs = append(inputs, groupInputSpec(g))
	}

	if len(groups) == 1 {
		return inputs, "", "0:v"
	}

	var parts []string
	prevLabel := "0:v"
	for i := 1; i < len(groups); i++ {
		g := groups[i]
		outputLabel := fmt.Sprintf("v%d", i)
		chain := fmt.Sprintf("[%s][%d:v]xfade=transition=%s:duration=%s:offset=%s[%s]",
			prevLabel, i, g.transitionIn.Transition,
			formatSeconds(g.transitionIn.DurationMs/1000.0),
			formatSeconds(g.offsetMs/1000.0),
			outputLabel)
		parts = append(parts, chain)
		prevLabel = outputLabel
	}

	return inputs, strings.Join(parts, ";"), "[" + prevLabel + "]"
}

func formatSeconds(v float64) string {
	if v < 0 {
		v = 0
	}
	return fmt.Sprintf("%.3f", v)
}
