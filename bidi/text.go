package bidi

import (
	"fmt"
	"unicode"

	"golang.org/x/text/unicode/bidi"
	"golang.org/x/text/unicode/norm"
)

// --- Code-point interface --------------------------------------------------

// ClassOf returns the bidi class of a rune. With option Testing(true),
// UPPERCASE letters are of class R.
func ClassOf(r rune, opts ...Option) bidi.Class {
	return classOf(r, newConfig(opts))
}

func classOf(r rune, cfg *config) bidi.Class {
	if cfg.hasMode(optionTesting) && unicode.IsUpper(r) {
		return bidi.R // during testing, UPPERCASE is R2L
	}
	props, _ := bidi.LookupRune(r)
	return props.Class()
}

// BracketOf returns the bracket type of a rune. Brackets are identified by
// their opening bracket, after canonical decomposition, so that e.g.
// U+2329 and U+3009 form a pair.
func BracketOf(r rune) BracketType {
	props, _ := bidi.LookupRune(r)
	if !props.IsBracket() {
		return NoBracket
	}
	if props.IsOpeningBracket() {
		return OpeningBracket(canonical(r))
	}
	// the paired bracket of a closing bracket is its mirror glyph
	o := []rune(bidi.ReverseString(string(r)))
	if len(o) != 1 {
		return NoBracket
	}
	return ClosingBracket(canonical(o[0]))
}

func canonical(r rune) rune {
	d := []rune(norm.NFD.String(string(r)))
	if len(d) == 1 {
		return d[0]
	}
	return r
}

// Classes returns the bidi classes and bracket types of a text. Bracket
// types are set for characters of class ON only.
func Classes(text []rune, opts ...Option) ([]bidi.Class, []BracketType) {
	cfg := newConfig(opts)
	types := make([]bidi.Class, len(text))
	brackets := make([]BracketType, len(text))
	for i, r := range text {
		types[i] = classOf(r, cfg)
		if types[i] == bidi.ON {
			brackets[i] = BracketOf(r)
		}
	}
	return types, brackets
}

// EmbeddingLevels resolves the embedding levels for a paragraph of runes.
// It behaves like ParagraphLevels, but detects texts which are
// unidirectional and for which the full algorithm is not necessary.
// For such texts the result is 1 (all levels 0) or 2 (all levels 1).
//
// If an error is returned, all levels are set to 0. As with
// ParagraphLevels, the result may be 127, the largest Level.
func EmbeddingLevels(text []rune, dir *ParagraphDirection, levels []Level, opts ...Option) (Level, error) {
	types, brackets := Classes(text, opts...)
	return embeddingLevels(types, brackets, dir, levels)
}

func embeddingLevels(types []bidi.Class, brackets []BracketType, dir *ParagraphDirection,
	levels []Level) (Level, error) {
	//
	if len(levels) < len(types) {
		return 0, fmt.Errorf("%w: %d < %d", ErrLevelBuffer, len(levels), len(types))
	}
	if len(types) == 0 {
		return 0, nil
	}
	base := Neutral
	if dir != nil {
		base = *dir
	}
	var ored uint32
	anded := classMask[bidi.RLE]
	var haveIsolate, haveNumber, haveLetter bool
	for _, c := range types {
		ored |= props(c)
		haveIsolate = haveIsolate || isIsolate(c) || isExplicit(c)
		haveNumber = haveNumber || isNumber(c)
		haveLetter = haveLetter || isLetter(c)
		if isStrong(c) {
			anded &= props(c)
		}
	}
	bm := base.mask()
	var max Level
	switch {
	// all levels will be LTR: no isolates, all strongs are LTR, no Arabic
	// numbers, and either a direction without RTL taste or letters with a
	// weak direction
	case !haveIsolate && ored&mRTL == 0 && ored&mArabic == 0 &&
		(bm&mRTL == 0 || (bm&mWeak != 0 && haveLetter)):
		fill(levels[:len(types)], 0)
		base, max = LeftToRight, 1
	// all levels will be RTL: no isolates, no numbers, all strongs are RTL,
	// and either a direction with RTL taste or letters with a weak direction
	case !haveIsolate && !haveNumber && anded&mRTL != 0 &&
		(bm&mRTL != 0 || (bm&mWeak != 0 && haveLetter)):
		fill(levels[:len(types)], 1)
		base, max = RightToLeft, 2
	default:
		var err error
		if max, err = ParagraphLevels(types, brackets, &base, levels); err != nil {
			fill(levels[:len(types)], 0)
			return 0, err
		}
	}
	tracer().Debugf("bidi: paragraph of length %d has direction %s", len(types), base)
	if dir != nil {
		*dir = RightToLeft
		if base == LeftToRight {
			*dir = LeftToRight
		}
	}
	return max, nil
}

func fill(levels []Level, l Level) {
	for i := range levels {
		levels[i] = l
	}
}

// Mirror replaces paired brackets at odd levels by their mirror glyph
// (rule L4). visual and levels are parallel arrays in logical order.
func Mirror(visual []rune, levels []Level) {
	for i, r := range visual {
		if i >= len(levels) || !levels[i].IsRTL() {
			continue
		}
		if props, _ := bidi.LookupRune(r); props.IsBracket() {
			if m := []rune(bidi.ReverseString(string(r))); len(m) == 1 {
				visual[i] = m[0]
			}
		}
	}
}

// Visual reorders a paragraph of text into a single line of visual order.
// It returns the visual text, without explicit formatting codes and
// boundary neutrals, and a map from visual to logical (rune) positions.
func Visual(text string, dir ParagraphDirection, opts ...Option) (string, []int, error) {
	runes := []rune(text)
	types, brackets := Classes(runes, opts...)
	levels := make([]Level, len(runes))
	if _, err := embeddingLevels(types, brackets, &dir, levels); err != nil {
		return "", nil, err
	}
	line := &Line{Visual: runes, Map: IdentityMap(len(runes))}
	if _, err := ReorderLine(types, 0, len(runes), dir, levels, line, opts...); err != nil {
		return "", nil, err
	}
	j := 0
	for i := range runes {
		if !isExplicitOrBN(types[line.Map[i]]) {
			line.Visual[j] = line.Visual[i]
			line.Map[j] = line.Map[i]
			j++
		}
	}
	return string(line.Visual[:j]), line.Map[:j], nil
}
