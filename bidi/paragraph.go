package bidi

import (
	"errors"
	"fmt"

	"golang.org/x/text/unicode/bidi"
)

// Errors returned by the level resolver and the line reorderer.
var (
	ErrLevelBuffer   = errors.New("bidi: level buffer shorter than paragraph")
	ErrBracketBuffer = errors.New("bidi: bracket types shorter than paragraph")
	ErrLineRange     = errors.New("bidi: line range outside of paragraph")
	ErrInconsistent  = errors.New("bidi: run list inconsistent")
)

// resolver holds the state of resolving a single paragraph.
type resolver struct {
	a         *arena
	types     []bidi.Class
	main      runID      // run list of the paragraph
	explicits runID      // runs removed by rule X9
	baseLevel Level      // paragraph embedding level
	baseDir   bidi.Class // L or R
	maxIso    int        // deepest isolate level in use
	maxLevel  Level      // maximum resolved level
	isoBase   [maxResolvedLevels]Level
}

// ParagraphLevels resolves the embedding levels of a paragraph, given as
// an array of bidi classes. brackets holds the bracket type for every
// position and may be nil if the paragraph is known to contain no paired
// brackets. dir is the requested base direction (see ParagraphDirection);
// on return it holds the resolved direction, either LeftToRight or
// RightToLeft. levels must have room for one level per class.
//
// ParagraphLevels returns the maximum level found plus 1. An empty
// paragraph results in 0 without an error. If an error is returned, the
// result is 0 and the content of levels is unspecified.
// For a paragraph reaching MaxResolvedLevel the result is 127, the largest
// value a Level can hold. Clients must not add to it or count a Level
// variable up to it, as both would overflow; convert to int first.
//
// Only a single paragraph is resolved. A paragraph separator (class B)
// ends explicit embeddings, characters after it keep level 0 and should
// be passed in a call of their own.
func ParagraphLevels(types []bidi.Class, brackets []BracketType, dir *ParagraphDirection,
	levels []Level) (Level, error) {
	//
	if len(types) == 0 {
		return 0, nil
	}
	if len(levels) < len(types) {
		return 0, fmt.Errorf("%w: %d < %d", ErrLevelBuffer, len(levels), len(types))
	}
	if brackets != nil && len(brackets) < len(types) {
		return 0, fmt.Errorf("%w: %d < %d", ErrBracketBuffer, len(brackets), len(types))
	}
	d := Neutral
	if dir != nil {
		d = *dir
	}
	a, err := borrowArena()
	if err != nil {
		return 0, err
	}
	defer releaseArena(a)
	rv := &resolver{a: a, types: types}
	rv.main = a.encode(types, brackets)
	rv.explicits = a.newList()
	a.dump("encoded", rv.main)
	rv.findBaseLevel(d)
	if dir != nil {
		*dir = LeftToRight
		if rv.baseLevel.IsRTL() {
			*dir = RightToLeft
		}
	}
	rv.resolveExplicit()
	rv.resolveWeak()
	rv.resolveBrackets()
	rv.resolveNeutral()
	rv.resolveImplicit()
	rv.reinsertExplicits()
	rv.resetSeparators()
	if err := rv.fillLevels(levels[:len(types)]); err != nil {
		tracer().Errorf("bidi: %v, run list = %s", err, a.String(rv.main))
		return 0, err
	}
	tracer().Debugf("bidi: resolved %d characters, max level = %d", len(types), rv.maxLevel)
	return rv.maxLevel + 1, nil
}

// ParagraphDirectionOf finds the first strong letter of a paragraph,
// skipping isolates (rule P2). It returns LeftToRight or RightToLeft, or
// Neutral if the paragraph contains no strong letter.
func ParagraphDirectionOf(types []bidi.Class) ParagraphDirection {
	open := 0
	for _, c := range types {
		switch {
		case c == bidi.B:
			return Neutral
		case c == bidi.PDI:
			if open > 0 {
				open--
			}
		case isIsolate(c):
			open++
		case open == 0 && isLetter(c):
			if isRTL(c) {
				return RightToLeft
			}
			return LeftToRight
		}
	}
	return Neutral
}
