package bidi

import (
	"strings"
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
	"golang.org/x/text/unicode/bidi"
)

// parseClasses reads a blank separated sequence of class names.
func parseClasses(t *testing.T, s string) []bidi.Class {
	fields := strings.Fields(s)
	types := make([]bidi.Class, len(fields))
	for i, f := range fields {
		c, ok := ClassFromString(f)
		if !ok {
			t.Fatalf("unknown bidi class %q", f)
		}
		types[i] = c
	}
	return types
}

func TestClassNames(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "uax.bidi")
	defer teardown()
	//
	for i, name := range classNames {
		c := bidi.Class(i)
		if name == "" || c == classSentinel {
			continue
		}
		assert.Equal(t, name, ClassString(c))
		d, ok := ClassFromString(name)
		assert.True(t, ok, "expected %s to be a class name", name)
		assert.Equal(t, c, d)
	}
	_, ok := ClassFromString("SENTINEL")
	assert.False(t, ok, "sentinel class must not be readable")
	assert.Equal(t, "bidi_class(99)", ClassString(bidi.Class(99)))
}

func TestClassProperties(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "uax.bidi")
	defer teardown()
	//
	assert.True(t, isStrong(bidi.AL) && isRTL(bidi.AL) && isArabic(bidi.AL))
	assert.True(t, isNumber(bidi.EN) && isNumber(bidi.AN))
	assert.False(t, isStrong(bidi.EN))
	assert.True(t, isIsolate(bidi.FSI) && isIsolate(bidi.PDI))
	assert.False(t, isExplicit(bidi.LRI), "isolates are not explicit embeddings")
	assert.True(t, isExplicitOrBN(bidi.BN) && isExplicitOrBN(bidi.PDF))
	assert.True(t, isSeparator(bidi.B) && isSeparator(bidi.S))
	assert.Equal(t, bidi.R, overrideDir(bidi.RLO))
	assert.Equal(t, bidi.L, overrideDir(bidi.LRO))
	assert.Equal(t, bidi.ON, overrideDir(bidi.RLE))
	assert.Equal(t, bidi.R, numberToRTL(bidi.AN))
	assert.Equal(t, bidi.ON, numberToRTL(bidi.ON))
	assert.True(t, isSentinel(classSentinel))
}

func TestLevels(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "uax.bidi")
	defer teardown()
	//
	assert.False(t, Level(0).IsRTL())
	assert.True(t, Level(1).IsRTL())
	assert.True(t, Level(MaxExplicitLevel).IsRTL())
	assert.Equal(t, bidi.R, levelToDir(3))
	assert.Equal(t, Level(1), dirToLevel(bidi.AL))
	assert.Equal(t, Level(1), WeakRightToLeft.level())
	assert.Equal(t, "WRTL", WeakRightToLeft.String())
	assert.True(t, RightToLeft.IsStrong())
	assert.False(t, Neutral.IsStrong())
}

func TestBrackets(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "uax.bidi")
	defer teardown()
	//
	assert.Equal(t, OpeningBracket('('), BracketOf('('))
	assert.Equal(t, ClosingBracket('('), BracketOf(')'))
	assert.Equal(t, ClosingBracket('['), BracketOf(']'))
	assert.Equal(t, NoBracket, BracketOf('a'))
	assert.Equal(t, NoBracket, BracketOf('<'), "'<' is mirrored, but not a paired bracket")
	assert.True(t, BracketOf('{').IsOpen())
	assert.False(t, BracketOf('}').IsOpen())
	assert.Equal(t, '{', BracketOf('}').ID())
	// angle brackets have canonical equivalents
	assert.Equal(t, BracketOf(0x3008), BracketOf(0x2329))
	assert.Equal(t, BracketOf(0x3009), BracketOf(0x232A))
	assert.Equal(t, ClosingBracket(0x3008), BracketOf(0x232A))
}

func TestClassOf(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "uax.bidi")
	defer teardown()
	//
	assert.Equal(t, bidi.L, ClassOf('A'))
	assert.Equal(t, bidi.R, ClassOf('A', Testing(true)))
	assert.Equal(t, bidi.L, ClassOf('a', Testing(true)))
	assert.Equal(t, bidi.R, ClassOf('\u05D0'))
	assert.Equal(t, bidi.AL, ClassOf('\u0627'))
	assert.Equal(t, bidi.EN, ClassOf('7'))
	assert.Equal(t, bidi.AN, ClassOf('\u0661'))
	assert.Equal(t, bidi.NSM, ClassOf('\u0301'))
	assert.Equal(t, bidi.RLI, ClassOf('\u2067'))
	assert.Equal(t, bidi.PDF, ClassOf('\u202C'))
	assert.Equal(t, bidi.WS, ClassOf(' '))
	types, brackets := Classes([]rune("a(B)"), Testing(true))
	assert.Equal(t, []bidi.Class{bidi.L, bidi.ON, bidi.R, bidi.ON}, types)
	assert.Equal(t, []BracketType{NoBracket, OpeningBracket('('), NoBracket, ClosingBracket('(')}, brackets)
}
