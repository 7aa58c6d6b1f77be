package bidi

import (
	"golang.org/x/text/unicode/bidi"
)

// resolveImplicit applies rules I1 and I2 and records the maximum level.
func (rv *resolver) resolveImplicit() {
	a := rv.a
	rv.maxLevel = rv.baseLevel
	for x := a.next(rv.main); x != rv.main; x = a.next(x) {
		r := a.at(x)
		if isNumber(r.class) {
			r.level = (r.level + 2) &^ 1
		} else {
			_, r.level = strongLevel(r.class, r.level)
		}
		if r.level > rv.maxLevel {
			rv.maxLevel = r.level
		}
	}
	a.compact(rv.main)
	a.dump("implicit", rv.main)
}

// reinsertExplicits weaves the runs removed by rule X9 back into the run
// list. They take the level of their predecessor, or the base level at the
// start of the paragraph, so that they do not affect reordering.
func (rv *resolver) reinsertExplicits() {
	a := rv.a
	if a.next(rv.explicits) == rv.explicits {
		return
	}
	a.shadow(rv.main, rv.explicits, true)
	x := a.next(rv.main)
	if x != rv.main && a.level(x) == levelSentinel {
		a.at(x).level = rv.baseLevel
	}
	for ; x != rv.main; x = a.next(x) {
		if a.level(x) == levelSentinel {
			a.at(x).level = a.level(a.prev(x))
		}
	}
	a.dump("reinserted", rv.main)
}

// resetSeparators applies rule L1, items 1 to 3, plus trailing whitespace
// of the paragraph: segment and paragraph separators, together with any
// whitespace, isolate controls and removed codes before them, are reset to
// the paragraph level.
func (rv *resolver) resetSeparators() {
	a := rv.a
	list := a.newList()
	q := list
	inWS, end := true, len(rv.types)-1
	for j := len(rv.types) - 1; j >= -1; j-- {
		c := bidi.ON // closes an open stretch at the start of the paragraph
		if j >= 0 {
			c = rv.types[j]
		}
		if !inWS && isSeparator(c) {
			inWS, end = true, j
		} else if inWS && !(isExplicitOrSeparatorOrBNOrWS(c) || isIsolate(c)) {
			inWS = false
			x := a.newRun()
			r := a.at(x)
			r.pos = j + 1
			r.length = end - j
			r.class = rv.baseDir
			r.level = rv.baseLevel
			a.moveBefore(x, q)
			q = x
		}
	}
	a.shadow(rv.main, list, false)
	a.dump("L1", rv.main)
}

// fillLevels writes the levels of the run list to levels.
func (rv *resolver) fillLevels(levels []Level) error {
	a := rv.a
	pos := 0
	for x := a.next(rv.main); x != rv.main; x = a.next(x) {
		r := a.at(x)
		if r.length < 0 || pos+r.length > len(levels) {
			return ErrInconsistent
		}
		for i := 0; i < r.length; i++ {
			levels[pos] = r.level
			pos++
		}
	}
	if pos != len(rv.types) {
		return ErrInconsistent
	}
	return nil
}
