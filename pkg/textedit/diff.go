package textedit

import (
	"fmt"
	"strings"
)

// diffContextLines is the number of unchanged lines shown around each change.
const diffContextLines = 3

// Unified renders a unified diff between original and modified content.
// Returns "" when the contents are identical.
func Unified(path string, original, modified []byte) string {
	origLines := splitLines(original)
	modLines := splitLines(modified)

	ops := diffOps(origLines, modLines)
	changed := false
	for _, op := range ops {
		if op.kind != opEqual {
			changed = true
			break
		}
	}
	if !changed {
		return ""
	}

	var b strings.Builder
	fmt.Fprintf(&b, "--- a/%s\n", path)
	fmt.Fprintf(&b, "+++ b/%s\n", path)

	for _, h := range groupHunks(ops) {
		fmt.Fprintf(&b, "@@ -%d,%d +%d,%d @@\n", h.origStart, h.origCount, h.modStart, h.modCount)
		for _, op := range ops[h.from:h.to] {
			switch op.kind {
			case opEqual:
				fmt.Fprintf(&b, " %s\n", op.text)
			case opDelete:
				fmt.Fprintf(&b, "-%s\n", op.text)
			case opInsert:
				fmt.Fprintf(&b, "+%s\n", op.text)
			}
		}
	}
	return b.String()
}

type opKind int

const (
	opEqual opKind = iota
	opDelete
	opInsert
)

type diffOp struct {
	kind opKind
	text string
}

type hunk struct {
	from, to             int // op index range
	origStart, origCount int
	modStart, modCount   int
}

func splitLines(content []byte) []string {
	if len(content) == 0 {
		return nil
	}
	lines := strings.Split(string(content), "\n")
	if lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	return lines
}

// diffOps produces an edit script from an LCS table over whole lines.
func diffOps(orig, mod []string) []diffOp {
	n, m := len(orig), len(mod)
	dp := make([][]int, n+1)
	for i := range dp {
		dp[i] = make([]int, m+1)
	}
	for i := n - 1; i >= 0; i-- {
		for j := m - 1; j >= 0; j-- {
			if orig[i] == mod[j] {
				dp[i][j] = dp[i+1][j+1] + 1
			} else {
				dp[i][j] = max(dp[i+1][j], dp[i][j+1])
			}
		}
	}

	var ops []diffOp
	i, j := 0, 0
	for i < n && j < m {
		switch {
		case orig[i] == mod[j]:
			ops = append(ops, diffOp{opEqual, orig[i]})
			i++
			j++
		case dp[i+1][j] >= dp[i][j+1]:
			ops = append(ops, diffOp{opDelete, orig[i]})
			i++
		default:
			ops = append(ops, diffOp{opInsert, mod[j]})
			j++
		}
	}
	for ; i < n; i++ {
		ops = append(ops, diffOp{opDelete, orig[i]})
	}
	for ; j < m; j++ {
		ops = append(ops, diffOp{opInsert, mod[j]})
	}
	return ops
}

// groupHunks clusters changed ops into hunks with surrounding context,
// merging clusters whose gaps are within twice the context size.
func groupHunks(ops []diffOp) []hunk {
	type span struct{ from, to int }
	var spans []span
	for i := 0; i < len(ops); {
		if ops[i].kind == opEqual {
			i++
			continue
		}
		j := i
		for j < len(ops) && ops[j].kind != opEqual {
			j++
		}
		spans = append(spans, span{i, j})
		i = j
	}

	var merged []span
	for _, s := range spans {
		if len(merged) > 0 && s.from-merged[len(merged)-1].to <= diffContextLines*2 {
			merged[len(merged)-1].to = s.to
		} else {
			merged = append(merged, s)
		}
	}

	var hunks []hunk
	for _, s := range merged {
		h := hunk{
			from: max(0, s.from-diffContextLines),
			to:   min(len(ops), s.to+diffContextLines),
		}
		origLine, modLine := 1, 1
		for _, op := range ops[:h.from] {
			if op.kind != opInsert {
				origLine++
			}
			if op.kind != opDelete {
				modLine++
			}
		}
		h.origStart, h.modStart = origLine, modLine
		for _, op := range ops[h.from:h.to] {
			if op.kind != opInsert {
				h.origCount++
			}
			if op.kind != opDelete {
				h.modCount++
			}
		}
		hunks = append(hunks, h)
	}
	return hunks
}
