package bidi

import (
	"errors"
	"strings"
	"testing"

	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/suite"
	"golang.org/x/text/unicode/bidi"
)

// --- Test Suite Preparation ------------------------------------------------

type ParagraphTestEnviron struct {
	suite.Suite
}

// listen for 'go test' command --> run test methods
func TestParagraphFunctions(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "uax.bidi")
	defer teardown()
	suite.Run(t, new(ParagraphTestEnviron))
}

// run once, before test suite methods
func (env *ParagraphTestEnviron) SetupSuite() {
	env.T().Log("Setting up test suite")
	tracing.Select("uax.bidi").SetTraceLevel(tracing.LevelInfo)
}

// run once, after test suite methods
func (env *ParagraphTestEnviron) TearDownSuite() {
	env.T().Log("Tearing down test suite")
}

// --- Tests -----------------------------------------------------------------

type paragraphCase struct {
	types    string
	brackets string // '(' and ')' mark bracket positions, '.' anything else
	dir      ParagraphDirection
	levels   []Level
	max      Level
	resolved ParagraphDirection
}

var paragraphCases = []paragraphCase{
	{"L", "", Neutral, []Level{0}, 1, LeftToRight},
	{"R R", "", Neutral, []Level{1, 1}, 2, RightToLeft},
	{"L WS R", "", Neutral, []Level{0, 0, 1}, 2, LeftToRight},
	{"R WS L", "", LeftToRight, []Level{1, 0, 0}, 2, LeftToRight},
	{"R WS L", "", Neutral, []Level{1, 1, 2}, 3, RightToLeft},
	{"R WS L", "", WeakLeftToRight, []Level{1, 1, 2}, 3, RightToLeft},
	{"WS WS", "", RightToLeft, []Level{1, 1}, 2, RightToLeft},
	{"WS WS", "", WeakRightToLeft, []Level{1, 1}, 2, RightToLeft},
	// weak types
	{"AN", "", Neutral, []Level{2}, 3, LeftToRight},
	{"L WS EN", "", Neutral, []Level{0, 0, 0}, 1, LeftToRight},
	{"R WS EN", "", Neutral, []Level{1, 1, 2}, 3, RightToLeft},
	{"AL WS EN", "", Neutral, []Level{1, 1, 2}, 3, RightToLeft},
	{"EN ES EN", "", LeftToRight, []Level{0, 0, 0}, 1, LeftToRight},
	{"R ET EN", "", Neutral, []Level{1, 2, 2}, 3, RightToLeft},
	// paired brackets
	{"L ON R ON L", ".(.).", LeftToRight, []Level{0, 0, 1, 0, 0}, 2, LeftToRight},
	{"R ON R ON L", ".(.).", LeftToRight, []Level{1, 1, 1, 1, 0}, 2, LeftToRight},
	{"L ON R ON L", ".(.).", RightToLeft, []Level{2, 1, 1, 1, 2}, 3, RightToLeft},
	{"L ON WS ON L", ".(.).", LeftToRight, []Level{0, 0, 0, 0, 0}, 1, LeftToRight},
	// explicit embeddings and isolates
	{"RLE L PDF", "", LeftToRight, []Level{0, 2, 0}, 3, LeftToRight},
	{"LRO R R PDF", "", LeftToRight, []Level{0, 2, 2, 0}, 3, LeftToRight},
	{"L RLI R PDI L", "", LeftToRight, []Level{0, 0, 1, 0, 0}, 2, LeftToRight},
	{"FSI R PDI", "", LeftToRight, []Level{0, 1, 0}, 2, LeftToRight},
	{"R FSI L PDI", "", Neutral, []Level{1, 1, 2, 1}, 3, RightToLeft},
	{"R FSI R PDI", "", Neutral, []Level{1, 1, 3, 1}, 4, RightToLeft},
	{"RLI R PDI L", "", Neutral, []Level{0, 1, 0, 0}, 2, LeftToRight},
	// separators and trailing whitespace
	{"R S R", "", LeftToRight, []Level{1, 0, 1}, 2, LeftToRight},
	{"L WS R WS", "", Neutral, []Level{0, 0, 1, 0}, 2, LeftToRight},
}

func bracketsFor(pattern string, n int) []BracketType {
	if pattern == "" {
		return nil
	}
	brackets := make([]BracketType, n)
	for i, b := range pattern {
		switch b {
		case '(':
			brackets[i] = OpeningBracket('(')
		case ')':
			brackets[i] = ClosingBracket('(')
		}
	}
	return brackets
}

func (env *ParagraphTestEnviron) TestParagraphLevels() {
	for i, c := range paragraphCases {
		types := parseClasses(env.T(), c.types)
		brackets := bracketsFor(c.brackets, len(types))
		levels := make([]Level, len(types))
		dir := c.dir
		max, err := ParagraphLevels(types, brackets, &dir, levels)
		env.Require().NoError(err, "case #%d: %s", i, c.types)
		env.Equal(c.levels, levels, "case #%d: levels of %s (%s)", i, c.types, c.dir)
		env.Equal(c.max, max, "case #%d: max level of %s", i, c.types)
		env.Equal(c.resolved, dir, "case #%d: direction of %s", i, c.types)
	}
}

func (env *ParagraphTestEnviron) TestEmbeddingOverflow() {
	for _, c := range []struct {
		code string
		last Level
	}{
		{"LRE", 124},
		{"RLE", 126},
		{"LRO", 124},
		{"RLI", 126},
	} {
		types := parseClasses(env.T(), strings.Repeat(c.code+" ", 130)+"L")
		levels := make([]Level, len(types))
		dir := LeftToRight
		max, err := ParagraphLevels(types, nil, &dir, levels)
		env.Require().NoError(err)
		if c.code == "RLI" {
			// isolate initiators are not removed; they nest up to level 125
			env.Equal(Level(126), levels[len(types)-1])
			env.Equal(Level(127), max)
			env.Equal(Level(0), levels[0])
			env.Equal(Level(1), levels[1])
			continue
		}
		env.Equal(c.last, levels[len(types)-1], "last level behind %d × %s", 130, c.code)
		env.Equal(c.last+1, max)
		for i := 0; i < 130; i++ {
			env.Equal(Level(0), levels[i], "removed %s at %d should get paragraph level", c.code, i)
		}
	}
}

func (env *ParagraphTestEnviron) TestResultRange() {
	for _, s := range []string{
		"L R AL EN AN WS ON NSM",
		"RLE LRE RLO LRO L R PDF PDF PDF PDF EN",
		"R ON ON ON EN ES EN CS AN ET ET L",
		"FSI LRI RLI AL PDI L PDI WS PDI R",
	} {
		types := parseClasses(env.T(), s)
		for _, dir := range []ParagraphDirection{LeftToRight, RightToLeft, Neutral, WeakRightToLeft} {
			levels := make([]Level, len(types))
			d := dir
			max, err := ParagraphLevels(types, nil, &d, levels)
			env.Require().NoError(err)
			env.True(d == LeftToRight || d == RightToLeft, "resolved direction should be strong")
			top := Level(0)
			for _, l := range levels {
				env.True(l >= 0 && l <= MaxResolvedLevel, "level %d out of range", l)
				if l > top {
					top = l
				}
			}
			env.Equal(top+1, max, "result should be max level + 1 for %s", s)
			if dir.IsStrong() {
				env.Equal(dir, d, "strong direction is kept")
			}
		}
	}
}

func (env *ParagraphTestEnviron) TestParagraphErrors() {
	types := parseClasses(env.T(), "L R L")
	max, err := ParagraphLevels(types, nil, nil, make([]Level, 2))
	env.True(errors.Is(err, ErrLevelBuffer))
	env.Equal(Level(0), max)
	_, err = ParagraphLevels(types, make([]BracketType, 1), nil, make([]Level, 3))
	env.True(errors.Is(err, ErrBracketBuffer))
	max, err = ParagraphLevels(nil, nil, nil, nil)
	env.NoError(err)
	env.Equal(Level(0), max)
	levels := make([]Level, 3)
	max, err = ParagraphLevels(types, nil, nil, levels)
	env.NoError(err, "direction may be omitted")
	env.Equal(Level(2), max)
	env.Equal([]Level{0, 1, 0}, levels)
}

func (env *ParagraphTestEnviron) TestParagraphDirectionOf() {
	for _, c := range []struct {
		types string
		dir   ParagraphDirection
	}{
		{"ON L", LeftToRight},
		{"EN WS AL", RightToLeft},
		{"RLI L PDI R", RightToLeft},
		{"LRI L R", Neutral},
		{"EN ON", Neutral},
		{"WS B R", Neutral},
	} {
		env.Equal(c.dir, ParagraphDirectionOf(parseClasses(env.T(), c.types)), c.types)
	}
}

func (env *ParagraphTestEnviron) TestClassesFromText() {
	types, brackets := Classes([]rune("a(b)C"), Testing(true))
	levels := make([]Level, len(types))
	dir := Neutral
	_, err := ParagraphLevels(types, brackets, &dir, levels)
	env.Require().NoError(err)
	env.Equal(LeftToRight, dir)
	env.Equal([]Level{0, 0, 0, 0, 1}, levels)
	env.Equal([]bidi.Class{bidi.L, bidi.ON, bidi.L, bidi.ON, bidi.R}, types)
}
