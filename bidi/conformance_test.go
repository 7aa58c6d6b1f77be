package bidi

import (
	"strings"
	"testing"

	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/npillmayer/unibidi/internal/ucdtest"
	"golang.org/x/text/unicode/bidi"
)

// TestBidiCharacterTest runs the conformance tests of the Unicode
// Consortium. The test file has to be downloaded with
// internal/ucdtest/download.go.
func TestBidiCharacterTest(t *testing.T) {
	const file = "BidiCharacterTest.txt"
	if !ucdtest.Exists(file) {
		t.Skipf("%s not present, run 'go run download.go' in internal/ucdtest", file)
	}
	teardown := gotestingadapter.QuickConfig(t, "uax.bidi")
	defer teardown()
	tracing.Select("uax.bidi").SetTraceLevel(tracing.LevelError)
	//
	tf, err := ucdtest.Open(file)
	if err != nil {
		t.Fatal(err)
	}
	defer tf.Close()
	failcnt, cnt := 0, 0
	for tf.Scan() {
		fields := tf.Fields()
		if len(fields) < 5 {
			t.Fatalf("line %d: expected 5 fields, have %d", tf.Line(), len(fields))
		}
		text, err := ucdtest.CodePoints(fields[0])
		if err != nil {
			t.Fatalf("line %d: %v", tf.Line(), err)
		}
		types, brackets := Classes(text)
		if hasInnerParagraphSeparator(types) {
			continue
		}
		cnt++
		dir := [...]ParagraphDirection{LeftToRight, RightToLeft, Neutral}[fields[1][0]-'0']
		expected, _ := ucdtest.Levels(fields[3])
		order, _ := ucdtest.Positions(fields[4])
		if !conforms(types, brackets, dir, fields[2], expected, order) {
			failcnt++
			if failcnt <= 20 {
				t.Errorf("line %d: %s failed", tf.Line(), fields[0])
			}
		}
	}
	if err := tf.Err(); err != nil {
		t.Fatal(err)
	}
	t.Logf("%d TEST CASES OUT of %d FAILED", failcnt, cnt)
}

// conforms resolves and reorders a paragraph and compares the result to
// the expected levels and visual order. An empty paraLevel is not checked.
// TestBidiTest runs the conformance tests on sequences of bidi classes.
// The test file has to be downloaded with internal/ucdtest/download.go.
func TestBidiTest(t *testing.T) {
	const file = "BidiTest.txt"
	if !ucdtest.Exists(file) {
		t.Skipf("%s not present, run 'go run download.go' in internal/ucdtest", file)
	}
	teardown := gotestingadapter.QuickConfig(t, "uax.bidi")
	defer teardown()
	tracing.Select("uax.bidi").SetTraceLevel(tracing.LevelError)
	//
	tf, err := ucdtest.Open(file)
	if err != nil {
		t.Fatal(err)
	}
	defer tf.Close()
	var expected, order []int
	failcnt, cnt := 0, 0
	for tf.Scan() {
		if name, value, ok := tf.Directive(); ok {
			switch name {
			case "Levels":
				expected, err = ucdtest.Levels(value)
			case "Reorder":
				order, err = ucdtest.Positions(value)
			}
			if err != nil {
				t.Fatalf("line %d: %v", tf.Line(), err)
			}
			continue
		}
		fields := tf.Fields()
		if len(fields) < 2 {
			t.Fatalf("line %d: expected 2 fields, have %d", tf.Line(), len(fields))
		}
		types := make([]bidi.Class, 0, len(expected))
		for _, name := range strings.Fields(fields[0]) {
			c, ok := ClassFromString(name)
			if !ok {
				t.Fatalf("line %d: unknown bidi class %q", tf.Line(), name)
			}
			types = append(types, c)
		}
		if hasInnerParagraphSeparator(types) {
			continue
		}
		bits, err := ucdtest.Bitset(fields[1])
		if err != nil {
			t.Fatalf("line %d: %v", tf.Line(), err)
		}
		for i, dir := range []ParagraphDirection{Neutral, LeftToRight, RightToLeft} {
			if bits&(1<<i) == 0 {
				continue
			}
			cnt++
			if !conforms(types, nil, dir, "", expected, order) {
				failcnt++
				if failcnt <= 20 {
					t.Errorf("line %d: %s with direction %s failed", tf.Line(), fields[0], dir)
				}
			}
		}
	}
	if err := tf.Err(); err != nil {
		t.Fatal(err)
	}
	t.Logf("%d TEST CASES OUT of %d FAILED", failcnt, cnt)
}

func conforms(types []bidi.Class, brackets []BracketType, dir ParagraphDirection,
	paraLevel string, expected []int, order []int) bool {
	//
	levels := make([]Level, len(types))
	if _, err := ParagraphLevels(types, brackets, &dir, levels); err != nil {
		return false
	}
	if paraLevel != "" && (dir == RightToLeft) != (paraLevel == "1") {
		return false
	}
	line := &Line{Map: IdentityMap(len(types))}
	if _, err := ReorderLine(types, 0, len(types), dir, levels, line); err != nil {
		return false
	}
	if len(expected) != len(types) {
		return false
	}
	for i, l := range expected {
		if l != ucdtest.Removed && int(levels[i]) != l {
			return false
		}
	}
	j := 0
	for _, pos := range line.Map {
		if expected[pos] == ucdtest.Removed {
			continue
		}
		if j >= len(order) || order[j] != pos {
			return false
		}
		j++
	}
	return j == len(order)
}

// Paragraphs are resolved one at a time, so test cases with more than one
// paragraph are skipped.
func hasInnerParagraphSeparator(types []bidi.Class) bool {
	for i, c := range types {
		if c == bidi.B && i < len(types)-1 {
			return true
		}
	}
	return false
}
