// Hunk grouping for compact diff display.
package textdiff

import (
	"fmt"
	"strings"

	"github.com/sergi/go-diff/diffmatchpatch"
)

// DefaultContext is the number of unchanged lines shown around each
// change when no explicit context is configured.
const DefaultContext = 2

// Hunk is one contiguous run of diff lines around a change.
type Hunk struct {
	Lines []Line
}

// Hunks groups the diff into runs of changes with up to context
// unchanged lines on either side. Adjacent changes whose context
// overlaps merge into one hunk.
func Hunks(r Result, context int) []Hunk {
	if context < 0 {
		context = DefaultContext
	}

	// Mark which entries are within context distance of a change.
	keep := make([]bool, len(r.Lines))
	for i, l := range r.Lines {
		if l.Kind == Unchanged {
			continue
		}
		lo := max(0, i-context)
		hi := min(len(r.Lines)-1, i+context)
		for j := lo; j <= hi; j++ {
			keep[j] = true
		}
	}

	var hunks []Hunk
	var current []Line
	for i, l := range r.Lines {
		if keep[i] {
			current = append(current, l)
			continue
		}
		if len(current) > 0 {
			hunks = append(hunks, Hunk{Lines: current})
			current = nil
		}
	}
	if len(current) > 0 {
		hunks = append(hunks, Hunk{Lines: current})
	}
	return hunks
}

// Format renders the diff as a unified-style listing with +/- markers.
// A removed/added pair at the same index additionally gets a ~ line
// highlighting the changed span word by word. An empty string means the
// two sides are identical.
func Format(r Result, context int) string {
	hunks := Hunks(r, context)
	if len(hunks) == 0 {
		return ""
	}

	var b strings.Builder
	for i, h := range hunks {
		if i > 0 {
			b.WriteString("...\n")
		}
		for j := 0; j < len(h.Lines); j++ {
			l := h.Lines[j]
			switch l.Kind {
			case Added:
				fmt.Fprintf(&b, "+ %s\n", l.Text)
			case Removed:
				fmt.Fprintf(&b, "- %s\n", l.Text)
				if j+1 < len(h.Lines) && h.Lines[j+1].Kind == Added && h.Lines[j+1].Index == l.Index {
					next := h.Lines[j+1]
					fmt.Fprintf(&b, "+ %s\n", next.Text)
					if marker := refineMarker(l.Text, next.Text); marker != "" {
						fmt.Fprintf(&b, "~ %s\n", marker)
					}
					j++
				}
			default:
				fmt.Fprintf(&b, "  %s\n", l.Text)
			}
		}
	}
	return strings.TrimRight(b.String(), "\n")
}

// refineMarker renders a word-level view of a changed line pair, with
// deletions in [-...-] and insertions in {+...+}. Pairs sharing no text
// produce no marker; the line-level view already says it all.
func refineMarker(before, after string) string {
	diffs := RefineLine(before, after)

	shared := false
	for _, d := range diffs {
		if d.Type == diffmatchpatch.DiffEqual && strings.TrimSpace(d.Text) != "" {
			shared = true
			break
		}
	}
	if !shared {
		return ""
	}

	var b strings.Builder
	for _, d := range diffs {
		switch d.Type {
		case diffmatchpatch.DiffDelete:
			b.WriteString("[-" + d.Text + "-]")
		case diffmatchpatch.DiffInsert:
			b.WriteString("{+" + d.Text + "+}")
		default:
			b.WriteString(d.Text)
		}
	}
	return b.String()
}
