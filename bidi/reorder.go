package bidi

import (
	"fmt"
	"slices"

	"golang.org/x/text/unicode/bidi"
)

// Reverser is implemented by client data which has to follow the
// reordering of a line. Reverse is called for every stretch of the line
// being reversed, with offset being a paragraph position.
type Reverser interface {
	Reverse(length, offset int)
}

// ReverseFunc adapts a function to the Reverser interface.
type ReverseFunc func(length, offset int)

// Reverse calls f(length, offset).
func (f ReverseFunc) Reverse(length, offset int) {
	f(length, offset)
}

// ReverseSlice returns a Reverser keeping s in lock-step with a line.
// s is indexed by paragraph position.
func ReverseSlice[T any](s []T) Reverser {
	return ReverseFunc(func(length, offset int) {
		slices.Reverse(s[offset : offset+length])
	})
}

// Line holds optional buffers to be reordered in place by ReorderLine.
// All of them are indexed by paragraph position, as is the level array.
// Nil buffers are skipped.
type Line struct {
	Visual []rune   // characters, will end up in visual order
	Map    []int    // usually initialized to the identity, will map visual to logical positions
	Extra  Reverser // arbitrary client data
}

func (line *Line) reverse(from, to int) {
	if line == nil || to <= from {
		return
	}
	if line.Visual != nil {
		slices.Reverse(line.Visual[from:to])
	}
	if line.Map != nil {
		slices.Reverse(line.Map[from:to])
	}
	if line.Extra != nil {
		line.Extra.Reverse(to-from, from)
	}
}

func (line *Line) check(end int) error {
	if line == nil {
		return nil
	}
	if line.Visual != nil && len(line.Visual) < end {
		return fmt.Errorf("%w: visual buffer of length %d", ErrLineRange, len(line.Visual))
	}
	if line.Map != nil && len(line.Map) < end {
		return fmt.Errorf("%w: map of length %d", ErrLineRange, len(line.Map))
	}
	return nil
}

// IdentityMap returns a map for a paragraph of length n, with every
// position mapped to itself.
func IdentityMap(n int) []int {
	m := make([]int, n)
	for i := range m {
		m[i] = i
	}
	return m
}

// ReorderLine reorders a line of a paragraph, starting at position offset
// with the given length. types are the original bidi classes of the
// paragraph, levels are the levels resolved by ParagraphLevels, and dir is
// the resolved paragraph direction.
//
// Trailing whitespace and removed codes of the line are reset to the
// paragraph level in levels (rule L1). Then the buffers of line are
// reordered: if enabled, sequences of NSMs at odd levels are reversed
// (rule L3), then every maximal stretch of levels ≥ k is reversed, for k
// from the highest level of the line down to 1 (rule L2).
//
// ReorderLine returns the maximum level of the line plus 1. An empty line
// results in 0 without an error.
func ReorderLine(types []bidi.Class, offset, length int, dir ParagraphDirection,
	levels []Level, line *Line, opts ...Option) (Level, error) {
	//
	if length == 0 {
		return 0, nil
	}
	end := offset + length
	if offset < 0 || length < 0 || end > len(types) || end > len(levels) {
		return 0, fmt.Errorf("%w: [%d,%d) of %d", ErrLineRange, offset, end, len(types))
	}
	if err := line.check(end); err != nil {
		return 0, err
	}
	cfg := newConfig(opts)
	// L1, item 4
	for i := end - 1; i >= offset && isExplicitOrBNOrWS(types[i]); i-- {
		levels[i] = dir.level()
	}
	if cfg.hasMode(optionMirroring) && line != nil && line.Visual != nil {
		Mirror(line.Visual[offset:end], levels[offset:end])
	}
	if cfg.hasMode(optionReorderNSM) {
		reorderNSM(types, offset, end, levels, line)
	}
	var top Level
	for i := offset; i < end; i++ {
		if levels[i] > top {
			top = levels[i]
		}
	}
	// L2
	for level := top; level > 0; level-- {
		for i := end - 1; i >= offset; i-- {
			if levels[i] >= level {
				last := i
				for i--; i >= offset && levels[i] >= level; i-- {
				}
				line.reverse(i+1, last+1)
			}
		}
	}
	return top + 1, nil
}

// reorderNSM applies rule L3. Sequences of NSMs at an odd level, together
// with their base character, are reversed, so that L2 will put them back
// in logical order.
func reorderNSM(types []bidi.Class, offset, end int, levels []Level, line *Line) {
	for i := end - 1; i >= offset; i-- {
		if !levels[i].IsRTL() || types[i] != bidi.NSM {
			continue
		}
		last, level := i, levels[i]
		for i--; i >= offset && isExplicitOrBNOrNSM(types[i]) && levels[i] == level; i-- {
		}
		if i < offset || levels[i] != level {
			tracer().Debugf("bidi: NSM at start of level run, position %d", i+1)
			i++
		}
		line.reverse(i, last+1)
	}
}
