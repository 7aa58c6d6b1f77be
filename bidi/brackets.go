package bidi

import (
	"github.com/emirpasic/gods/lists/arraylist"
	"github.com/emirpasic/gods/utils"
	"golang.org/x/text/unicode/bidi"
)

// --- Brackets and bracket stacks -------------------------------------------

// Brackets require a disproportionate amount of work in UAX#9. It reads:
//
// A bracket pair is a pair of characters consisting of an opening paired bracket
// and a closing paired bracket such that the Bidi_Paired_Bracket property value
// of the former or its canonical equivalent equals the latter or its canonical
// equivalent and which are algorithmically identified at specific text positions
// within an isolating run sequence.
//
// Pairs are identified with a fixed-size stack of 63 entries per isolate level
// (rule BD16). An opening bracket is pushed, a closing bracket searches the
// stack top-down for its partner and pops everything above and including it.
// If the stack is full, bracket pairing stops.
//
// Examples of bracket pairs:
//
//	Text                Pairings
//	1 2 3 4 5 6 7 8
//	a ) b ( c           None
//	a ( b ] c           None
//	a ( b ) c           2-4
//	a ( b [ c ) d ]     2-6
//	a ( b ] c ) d       2-6
//	a ( b ) c ) d       2-4
//	a ( b ( c ) d       4-6
//	a ( b ( c ) d )     2-8, 4-6
//	a ( b { c } d )     2-8, 4-6
//
// Brackets are only paired if they still have class ON at this point, i.e.
// they have not been overridden by LRO or RLO.

// bracketPair is an entry of the list of pairs found by BD16.
type bracketPair struct {
	open, close runID
	pos         int // position of the opening bracket
}

func byOpeningPosition(a, b interface{}) int {
	return utils.IntComparator(a.(bracketPair).pos, b.(bracketPair).pos)
}

// findBracketPairs implements rule BD16 and returns the list of bracket
// pairs, sorted by position of the opening bracket.
func (rv *resolver) findBracketPairs() *arraylist.List {
	a := rv.a
	pairs := arraylist.New()
	stacks := make([][]runID, rv.maxIso+1)
	lastLevel, lastIso := a.level(rv.main), 0
	for x := a.next(rv.main); x != rv.main; x = a.next(x) {
		r := a.at(x)
		// an isolating run sequence ends at a level change, unless
		// the isolate level has been raised
		if r.level != lastLevel && lastIso == r.isoLevel {
			stacks[lastIso] = stacks[lastIso][:0]
		}
		if r.bracket != NoBracket && r.class == bidi.ON {
			stack := stacks[r.isoLevel]
			if r.bracket.IsOpen() {
				if len(stack) == BD16MaxNesting {
					tracer().Infof("bidi: bracket stack overflow at position %d", r.pos)
					break
				}
				if stack == nil {
					stack = make([]runID, 0, BD16MaxNesting)
				}
				stacks[r.isoLevel] = append(stack, x)
			} else {
				for i := len(stack) - 1; i >= 0; i-- {
					if a.at(stack[i]).bracket.ID() == r.bracket.ID() {
						stacks[r.isoLevel] = stack[:i]
						pairs.Add(bracketPair{open: stack[i], close: x, pos: a.at(stack[i]).pos})
						break
					}
				}
			}
		}
		lastLevel = r.level
		lastIso = r.isoLevel
	}
	pairs.Sort(byOpeningPosition)
	return pairs
}

// strongLevel is the level a strong class would be resolved to by rules
// I1 and I2, with numbers counting as R.
func strongLevel(c bidi.Class, l Level) (bidi.Class, Level) {
	c = numberToRTL(c)
	rtl := Level(0)
	if l.IsRTL() {
		rtl = 1
	}
	return c, l + (rtl ^ dirToLevel(c))
}

// resolveBrackets resolves paired brackets with rule N0. Afterwards bracket
// tags are cleared and neutral runs are compacted.
func (rv *resolver) resolveBrackets() {
	a := rv.a
	pairs := rv.findBracketPairs()
	pairs.Each(func(_ int, v interface{}) {
		pair := v.(bracketPair)
		iso := a.at(pair.open).isoLevel
		embedding := rv.isoBase[iso]
		// N0b: a strong type matching the embedding direction
		for x := pair.open; x != pair.close; x = a.next(x) {
			c, l := strongLevel(a.class(x), a.level(x))
			if isStrong(c) && l == embedding {
				d := levelToDir(l)
				rv.setBracket(pair.open, d, a.level(pair.open))
				rv.setBracket(pair.close, d, a.level(pair.close))
				return
			}
		}
		// N0c: a strong type of opposite direction; the context before the
		// opening bracket decides
		context := embedding
		for x := a.prev(pair.open); !isSentinel(a.class(x)); x = a.prev(x) {
			c, l := strongLevel(a.class(x), a.level(x))
			if isStrong(c) && a.at(x).isoLevel == iso {
				context = l
				break
			}
		}
		for x := pair.open; x != pair.close; x = a.next(x) {
			c, _ := strongLevel(a.class(x), a.level(x))
			if isStrong(c) && a.at(x).isoLevel == iso {
				d := levelToDir(context)
				rv.setBracket(pair.open, d, context)
				rv.setBracket(pair.close, d, context)
				return
			}
		}
		// N0d: no strong type within, brackets stay neutral
	})
	for x := a.next(rv.main); x != rv.main; x = a.next(x) {
		a.at(x).bracket = NoBracket
	}
	a.compactNeutrals(rv.main)
	a.dump("brackets", rv.main)
}

// setBracket resolves bracket b to class c at level l. NSMs following the
// bracket, which have been changed to ON by rule W1, change along with it.
func (rv *resolver) setBracket(b runID, c bidi.Class, l Level) {
	a := rv.a
	x := a.next(b)
	if r := a.at(x); r.class == bidi.ON && r.bracket == NoBracket &&
		r.level == a.level(b) && r.isoLevel == a.at(b).isoLevel {
		n := 0
		for n < r.length && rv.types[r.pos+n] == bidi.NSM {
			n++
		}
		if n > 0 {
			if n < r.length {
				a.split(x, n)
			}
			r = a.at(x)
			r.class, r.level = c, l
		}
	}
	r := a.at(b)
	r.class, r.level = c, l
}
