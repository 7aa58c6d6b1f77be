package bidi

import (
	"strconv"

	"golang.org/x/text/unicode/bidi"
)

// Level is an embedding level. Resolved levels range from 0 to 126;
// even levels are left-to-right, odd levels are right-to-left.
type Level int8

// Limits of UAX#9.
const (
	MaxExplicitLevel = 125 // deepest level reachable by explicit embeddings
	MaxResolvedLevel = 126 // deepest level after implicit resolution
	BD16MaxNesting   = 63  // capacity of a bracket stack, rule BD16

	maxResolvedLevels = MaxResolvedLevel + 1
)

// levelSentinel marks runs without a level yet (removed by rule X9) and
// list sentinels.
const levelSentinel Level = -1

// IsRTL is true for odd levels.
func (l Level) IsRTL() bool {
	return l&1 == 1
}

// ParagraphDirection is the base direction of a paragraph. Strong
// directions are taken as given, weak ones are a fallback if no strong
// character is found by rule P2. Neutral behaves like WeakLeftToRight.
type ParagraphDirection uint8

// Paragraph directions.
const (
	LeftToRight ParagraphDirection = iota
	RightToLeft
	WeakLeftToRight
	WeakRightToLeft
	Neutral
)

func (d ParagraphDirection) String() string {
	switch d {
	case LeftToRight:
		return "LTR"
	case RightToLeft:
		return "RTL"
	case WeakLeftToRight:
		return "WLTR"
	case WeakRightToLeft:
		return "WRTL"
	case Neutral:
		return "ON"
	}
	return "dir(" + strconv.Itoa(int(d)) + ")"
}

// IsStrong is true for LeftToRight and RightToLeft.
func (d ParagraphDirection) IsStrong() bool {
	return d == LeftToRight || d == RightToLeft
}

// IsRTL is true for RightToLeft and WeakRightToLeft.
func (d ParagraphDirection) IsRTL() bool {
	return d == RightToLeft || d == WeakRightToLeft
}

// mask returns the property bits of a direction, for aggregation with
// class properties.
func (d ParagraphDirection) mask() uint32 {
	switch d {
	case LeftToRight:
		return classMask[bidi.L]
	case RightToLeft:
		return classMask[bidi.R]
	case WeakLeftToRight:
		return mWeak
	case WeakRightToLeft:
		return mWeak | mRTL
	}
	return mNeutral
}

// level returns the base level a direction stands for if taken as given.
func (d ParagraphDirection) level() Level {
	if d.IsRTL() {
		return 1
	}
	return 0
}

// --- Class properties ------------------------------------------------------

// Every class is described by a set of property bits. Rules test these
// bits rather than comparing classes, which allows to aggregate the
// properties of a complete paragraph with a single OR or AND.
const (
	mRTL       uint32 = 0x00000001
	mArabic    uint32 = 0x00000002
	mStrong    uint32 = 0x00000010
	mWeak      uint32 = 0x00000020
	mNeutral   uint32 = 0x00000040
	mSentinel  uint32 = 0x00000080
	mLetter    uint32 = 0x00000100
	mNumber    uint32 = 0x00000200
	mNumSepTer uint32 = 0x00000400
	mExplicit  uint32 = 0x00001000
	mSeparator uint32 = 0x00002000
	mOverride  uint32 = 0x00004000
	mIsolate   uint32 = 0x00008000
	mES        uint32 = 0x00010000
	mET        uint32 = 0x00020000
	mCS        uint32 = 0x00040000
	mNSM       uint32 = 0x00080000
	mBN        uint32 = 0x00100000
	mWS        uint32 = 0x00200000
	mPS        uint32 = 0x00400000
	mSS        uint32 = 0x00800000
)

// classSentinel is a pseudo class for list sentinels.
const classSentinel = bidi.PDI + 1

var classMask = [...]uint32{
	bidi.L:        mStrong | mLetter,
	bidi.R:        mStrong | mLetter | mRTL,
	bidi.EN:       mWeak | mNumber,
	bidi.ES:       mWeak | mNumSepTer | mES,
	bidi.ET:       mWeak | mNumSepTer | mET,
	bidi.AN:       mWeak | mNumber | mArabic,
	bidi.CS:       mWeak | mNumSepTer | mCS,
	bidi.B:        mNeutral | mSeparator | mPS,
	bidi.S:        mNeutral | mSeparator | mSS,
	bidi.WS:       mNeutral | mWS,
	bidi.ON:       mNeutral,
	bidi.BN:       mWeak | mBN,
	bidi.NSM:      mWeak | mNSM,
	bidi.AL:       mStrong | mLetter | mRTL | mArabic,
	bidi.Control:  mNeutral,
	bidi.LRO:      mStrong | mExplicit | mOverride,
	bidi.RLO:      mStrong | mExplicit | mOverride | mRTL,
	bidi.LRE:      mStrong | mExplicit,
	bidi.RLE:      mStrong | mExplicit | mRTL,
	bidi.PDF:      mWeak | mExplicit,
	bidi.LRI:      mNeutral | mIsolate,
	bidi.RLI:      mNeutral | mIsolate | mRTL,
	bidi.FSI:      mNeutral | mIsolate,
	bidi.PDI:      mNeutral | mWeak | mIsolate,
	classSentinel: mSentinel,
}

func props(c bidi.Class) uint32 {
	if int(c) < len(classMask) {
		return classMask[c]
	}
	return mNeutral
}

func isRTL(c bidi.Class) bool       { return props(c)&mRTL != 0 }
func isArabic(c bidi.Class) bool    { return props(c)&mArabic != 0 }
func isStrong(c bidi.Class) bool    { return props(c)&mStrong != 0 }
func isNeutral(c bidi.Class) bool   { return props(c)&mNeutral != 0 }
func isLetter(c bidi.Class) bool    { return props(c)&mLetter != 0 }
func isNumber(c bidi.Class) bool    { return props(c)&mNumber != 0 }
func isNumSepTer(c bidi.Class) bool { return props(c)&mNumSepTer != 0 }
func isExplicit(c bidi.Class) bool  { return props(c)&mExplicit != 0 }
func isIsolate(c bidi.Class) bool   { return props(c)&mIsolate != 0 }
func isSeparator(c bidi.Class) bool { return props(c)&mSeparator != 0 }
func isOverride(c bidi.Class) bool  { return props(c)&mOverride != 0 }
func isSentinel(c bidi.Class) bool  { return props(c)&mSentinel != 0 }

func isExplicitOrBN(c bidi.Class) bool {
	return props(c)&(mExplicit|mBN) != 0
}

func isExplicitOrBNOrNSM(c bidi.Class) bool {
	return props(c)&(mExplicit|mBN|mNSM) != 0
}

func isExplicitOrBNOrWS(c bidi.Class) bool {
	return props(c)&(mExplicit|mBN|mWS) != 0
}

func isExplicitOrSeparatorOrBNOrWS(c bidi.Class) bool {
	return props(c)&(mExplicit|mSeparator|mBN|mWS) != 0
}

func isESOrCS(c bidi.Class) bool {
	return props(c)&(mES|mCS) != 0
}

// levelToDir is the embedding direction of a level.
func levelToDir(l Level) bidi.Class {
	if l.IsRTL() {
		return bidi.R
	}
	return bidi.L
}

// dirToLevel is 1 for right-to-left classes and 0 otherwise.
func dirToLevel(c bidi.Class) Level {
	if isRTL(c) {
		return 1
	}
	return 0
}

// overrideDir is the direction enforced by LRO/RLO, and ON for all other
// classes.
func overrideDir(c bidi.Class) bidi.Class {
	if isOverride(c) {
		return levelToDir(dirToLevel(c))
	}
	return bidi.ON
}

// numberToRTL treats EN and AN as R, as required by rules N1 and N0.
func numberToRTL(c bidi.Class) bidi.Class {
	if isNumber(c) {
		return bidi.R
	}
	return c
}

func maxLevel(a, b Level) Level {
	if a > b {
		return a
	}
	return b
}

// --- Class names -----------------------------------------------------------

var classNames = [...]string{
	bidi.L:        "L",
	bidi.R:        "R",
	bidi.EN:       "EN",
	bidi.ES:       "ES",
	bidi.ET:       "ET",
	bidi.AN:       "AN",
	bidi.CS:       "CS",
	bidi.B:        "B",
	bidi.S:        "S",
	bidi.WS:       "WS",
	bidi.ON:       "ON",
	bidi.BN:       "BN",
	bidi.NSM:      "NSM",
	bidi.AL:       "AL",
	bidi.Control:  "Control",
	bidi.LRO:      "LRO",
	bidi.RLO:      "RLO",
	bidi.LRE:      "LRE",
	bidi.RLE:      "RLE",
	bidi.PDF:      "PDF",
	bidi.LRI:      "LRI",
	bidi.RLI:      "RLI",
	bidi.FSI:      "FSI",
	bidi.PDI:      "PDI",
	classSentinel: "SENTINEL",
}

// ClassString returns a bidi class as a string.
func ClassString(c bidi.Class) string {
	if int(c) < len(classNames) && classNames[c] != "" {
		return classNames[c]
	}
	return "bidi_class(" + strconv.FormatInt(int64(c), 10) + ")"
}

// ClassFromString is the inverse of ClassString, used for reading test
// data. ok is false for unknown names.
func ClassFromString(s string) (c bidi.Class, ok bool) {
	for i, name := range classNames {
		if name != "" && name == s && bidi.Class(i) != classSentinel {
			return bidi.Class(i), true
		}
	}
	return bidi.ON, false
}

// --- Brackets --------------------------------------------------------------

// BracketType identifies a paired bracket. The zero value is used for
// characters which are not brackets. Otherwise the value is the opening
// bracket of the pair, canonicalized, with bit 31 set for opening brackets.
type BracketType uint32

// NoBracket is the bracket type of non-bracket characters.
const NoBracket BracketType = 0

const bracketOpenMask BracketType = 0x80000000

// IsOpen is true for opening brackets.
func (b BracketType) IsOpen() bool {
	return b&bracketOpenMask != 0
}

// ID is the bracket pair identifier, i.e. the code point of the opening
// bracket.
func (b BracketType) ID() rune {
	return rune(b &^ bracketOpenMask)
}

// OpeningBracket returns the bracket type for an opening bracket.
func OpeningBracket(r rune) BracketType {
	return BracketType(r) | bracketOpenMask
}

// ClosingBracket returns the bracket type for a closing bracket matching
// an opening bracket o.
func ClosingBracket(o rune) BracketType {
	return BracketType(o)
}
