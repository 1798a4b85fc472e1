// Package textdiff computes line-level diffs between a document and a
// proposed candidate.
//
// Information Hiding:
// - Positional line alignment hidden behind Compare
// - Hunk grouping and context selection hidden behind Unified
// - Word-level refinement delegates to diffmatchpatch internally
//
// The comparison is positional, not minimal: line i of the original is
// compared to line i of the candidate. A changed line always yields a
// removed/added pair at the same index, so reconstructing either side
// from the diff is exact.
package textdiff

import (
	"strings"

	"github.com/sergi/go-diff/diffmatchpatch"
)

// ChangeKind classifies one line of a diff.
type ChangeKind int

const (
	Unchanged ChangeKind = iota
	Added
	Removed
)

func (k ChangeKind) String() string {
	switch k {
	case Unchanged:
		return "unchanged"
	case Added:
		return "added"
	case Removed:
		return "removed"
	default:
		return "unknown"
	}
}

// Line is one entry in a diff. Index is the position in the side the
// line came from: the original for Unchanged and Removed, the candidate
// for Added.
type Line struct {
	Kind  ChangeKind
	Index int
	Text  string
}

// Result is a complete positional diff.
type Result struct {
	Lines     []Line
	AddedN    int
	RemovedN  int
	Unchanged int
}

// Changed reports whether the two sides differ at all.
func (r Result) Changed() bool {
	return r.AddedN > 0 || r.RemovedN > 0
}

// Compare aligns original and candidate line by line. Where both sides
// have a line at index i, equal lines emit one Unchanged entry and
// differing lines emit a Removed entry followed by an Added entry. The
// longer side's tail emits pure Added or Removed entries.
func Compare(original, candidate string) Result {
	origLines := splitLines(original)
	candLines := splitLines(candidate)

	var res Result
	shared := min(len(origLines), len(candLines))

	for i := 0; i < shared; i++ {
		if origLines[i] == candLines[i] {
			res.Lines = append(res.Lines, Line{Kind: Unchanged, Index: i, Text: origLines[i]})
			res.Unchanged++
			continue
		}
		res.Lines = append(res.Lines,
			Line{Kind: Removed, Index: i, Text: origLines[i]},
			Line{Kind: Added, Index: i, Text: candLines[i]},
		)
		res.RemovedN++
		res.AddedN++
	}

	for i := shared; i < len(origLines); i++ {
		res.Lines = append(res.Lines, Line{Kind: Removed, Index: i, Text: origLines[i]})
		res.RemovedN++
	}
	for i := shared; i < len(candLines); i++ {
		res.Lines = append(res.Lines, Line{Kind: Added, Index: i, Text: candLines[i]})
		res.AddedN++
	}

	return res
}

// ReconstructOriginal rebuilds the original text from the diff.
func ReconstructOriginal(r Result) string {
	var lines []string
	for _, l := range r.Lines {
		if l.Kind == Unchanged || l.Kind == Removed {
			lines = append(lines, l.Text)
		}
	}
	return strings.Join(lines, "\n")
}

// ReconstructCandidate rebuilds the candidate text from the diff.
func ReconstructCandidate(r Result) string {
	var lines []string
	for _, l := range r.Lines {
		if l.Kind == Unchanged || l.Kind == Added {
			lines = append(lines, l.Text)
		}
	}
	return strings.Join(lines, "\n")
}

// splitLines splits on newlines. Empty input yields no lines, so an
// empty-vs-empty comparison is a zero diff rather than one unchanged
// empty line.
func splitLines(s string) []string {
	if s == "" {
		return nil
	}
	return strings.Split(s, "\n")
}

// RefineLine computes a word-level diff of one removed/added line pair,
// for display when a single line changed slightly.
func RefineLine(before, after string) []diffmatchpatch.Diff {
	dmp := diffmatchpatch.New()
	diffs := dmp.DiffMain(before, after, false)
	return dmp.DiffCleanupSemantic(diffs)
}
