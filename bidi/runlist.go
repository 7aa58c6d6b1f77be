package bidi

import (
	"fmt"
	"strings"

	"github.com/npillmayer/schuko/tracing"
	"golang.org/x/text/unicode/bidi"
)

// A run is a maximal stretch of characters sharing a bidi class (and,
// later on, a level). Runs live in an arena and are chained into circular
// doubly linked lists, each headed by a sentinel run. Runs additionally
// link to their neighbours at the same isolate level.
type run struct {
	prev, next       runID
	prevIso, nextIso runID
	pos, length      int
	class            bidi.Class
	bracket          BracketType
	level            Level
	isoLevel         int
}

// runID addresses a run within an arena.
type runID int32

const noRun runID = -1

// endOfSequence is the reserved arena slot returned by adjacent-run lookups
// which fall off an isolating run sequence. Its level is below every real
// level, so every comparison with it fails.
const endOfSequence runID = 0

// arena holds all runs of one paragraph resolution. Runs are never freed
// individually; the arena is reset as a whole.
type arena struct {
	runs []run
}

func newArena(capacity int) *arena {
	a := &arena{runs: make([]run, 0, capacity)}
	a.reset()
	return a
}

// reset drops all runs, keeping the reserved end-of-sequence slot.
func (a *arena) reset() {
	a.runs = a.runs[:0]
	a.runs = append(a.runs, run{
		prev: noRun, next: noRun, prevIso: noRun, nextIso: noRun,
		pos: -1, length: -1,
		class:    classSentinel,
		level:    levelSentinel,
		isoLevel: -1,
	})
}

// at returns a pointer to a run. The pointer is invalidated by the next
// allocation.
func (a *arena) at(x runID) *run {
	return &a.runs[x]
}

func (a *arena) newRun() runID {
	a.runs = append(a.runs, run{prev: noRun, next: noRun, prevIso: noRun, nextIso: noRun})
	return runID(len(a.runs) - 1)
}

// newList allocates a sentinel which is its own predecessor and successor.
func (a *arena) newList() runID {
	x := a.newRun()
	s := a.at(x)
	s.class = classSentinel
	s.level = levelSentinel
	s.isoLevel = -1
	s.pos, s.length = -1, -1
	s.prev, s.next = x, x
	return x
}

func (a *arena) next(x runID) runID { return a.runs[x].next }
func (a *arena) prev(x runID) runID { return a.runs[x].prev }

func (a *arena) class(x runID) bidi.Class { return a.runs[x].class }
func (a *arena) level(x runID) Level      { return a.runs[x].level }

// deleteNode unlinks x from its list.
func (a *arena) deleteNode(x runID) {
	r := a.at(x)
	a.runs[r.prev].next = r.next
	a.runs[r.next].prev = r.prev
	r.prev, r.next = noRun, noRun
}

// insertBefore links the unlinked run x in front of list element y.
func (a *arena) insertBefore(x, y runID) {
	p := a.runs[y].prev
	a.runs[x].prev = p
	a.runs[x].next = y
	a.runs[p].next = x
	a.runs[y].prev = x
}

// moveBefore moves x from wherever it is to the position in front of y.
func (a *arena) moveBefore(x, y runID) {
	if a.runs[x].prev != noRun {
		a.deleteNode(x)
	}
	a.insertBefore(x, y)
}

// prevTypeOrSOR is the class of x's predecessor if both share a level,
// otherwise the direction of the higher of the two levels.
func (a *arena) prevTypeOrSOR(x runID) bidi.Class {
	p := a.runs[x].prev
	if a.runs[p].level == a.runs[x].level {
		return a.runs[p].class
	}
	return levelToDir(maxLevel(a.runs[p].level, a.runs[x].level))
}

// encode builds the initial run list. A run ends wherever the class
// changes. Brackets and isolate controls always form runs of their own.
func (a *arena) encode(types []bidi.Class, brackets []BracketType) runID {
	list := a.newList()
	last := list
	for i, c := range types {
		var bt BracketType
		if brackets != nil {
			bt = brackets[i]
		}
		lr := a.at(last)
		if last == list || c != lr.class || bt != NoBracket || lr.bracket != NoBracket || isIsolate(c) {
			x := a.newRun()
			r := a.at(x)
			r.pos, r.length = i, 1
			r.class = c
			r.bracket = bt
			a.insertBefore(x, list)
			last = x
		} else {
			lr.length++
		}
	}
	return list
}

// mergeWithPrev folds run second into its predecessor and returns the
// predecessor. Isolate links of second are taken over.
func (a *arena) mergeWithPrev(second runID) runID {
	s := a.at(second)
	first := s.prev
	f := a.at(first)
	f.next = s.next
	a.runs[f.next].prev = first
	f.length += s.length
	if s.nextIso != noRun {
		a.runs[s.nextIso].prevIso = first
	}
	f.nextIso = s.nextIso
	s.prev, s.next = noRun, noRun
	return first
}

// split cuts run x after n characters. The remainder becomes a run of its
// own, following x in the run list as well as in the isolate chain.
func (a *arena) split(x runID, n int) runID {
	y := a.newRun()
	r, s := &a.runs[x], &a.runs[y]
	*s = *r
	s.pos, s.length = r.pos+n, r.length-n
	r.length = n
	s.prev = x
	a.runs[s.next].prev = y
	r.next = y
	s.prevIso = x
	if s.nextIso != noRun {
		a.runs[s.nextIso].prevIso = y
	}
	r.nextIso = y
	return y
}

// compact merges neighbouring runs of equal class and level. Brackets
// are never merged.
func (a *arena) compact(list runID) {
	a.compactWith(list, func(p, q *run) bool {
		return p.class == q.class
	})
}

// compactNeutrals is like compact, but additionally merges runs of
// different neutral classes.
func (a *arena) compactNeutrals(list runID) {
	a.compactWith(list, func(p, q *run) bool {
		return p.class == q.class || (isNeutral(p.class) && isNeutral(q.class))
	})
}

func (a *arena) compactWith(list runID, same func(p, q *run) bool) {
	if a.next(list) == list {
		return
	}
	for x := a.next(a.next(list)); x != list; x = a.next(x) {
		p, q := a.at(a.prev(x)), a.at(x)
		if p.level == q.level && same(p, q) && p.bracket == NoBracket && q.bracket == NoBracket {
			x = a.mergeWithPrev(x)
		}
	}
}

// adjacent returns the neighbour of x within its isolating run sequence,
// skipping runs of deeper isolate levels. Going forward, PDIs are skipped
// as well. With skipNeutral set, only strong runs are returned. If the
// sequence ends, endOfSequence is returned.
func (a *arena) adjacent(x runID, forward, skipNeutral bool) runID {
	r := a.at(x)
	y := r.prevIso
	if forward {
		y = r.nextIso
	}
	for y != noRun {
		q := a.at(y)
		if isSentinel(q.class) {
			break
		}
		if q.isoLevel > r.isoLevel || (forward && q.class == bidi.PDI) || (skipNeutral && !isStrong(q.class)) {
			if forward {
				y = q.nextIso
			} else {
				y = q.prevIso
			}
			continue
		}
		return y
	}
	return endOfSequence
}

// shadow overlays the runs of list over onto list base. Runs of base are
// split as needed and replaced where over has runs. With preserveLength
// set, the runs of over fill gaps in base, i.e. the base runs grow by the
// length of the inserted runs. over is emptied.
func (a *arena) shadow(base, over runID, preserveLength bool) {
	p, pos := base, 0
	for q := a.next(over); q != over; q = a.next(q) {
		if a.runs[q].length == 0 || a.runs[q].pos < pos {
			continue
		}
		pos = a.runs[q].pos
		for n := a.next(p); !isSentinel(a.class(n)) && a.runs[n].pos <= pos; n = a.next(p) {
			p = n
		}
		// p is the run q has to be inserted into
		pos2 := pos + a.runs[q].length
		r := p
		for n := a.next(r); !isSentinel(a.class(n)) && a.runs[n].pos < pos2; n = a.next(r) {
			r = n
		}
		if preserveLength {
			a.runs[r].length += a.runs[q].length
		}
		// r is the last run affected by q
		if p == r {
			// split p into at most 3 parts, q replacing the middle one
			if end := a.runs[p].pos + a.runs[p].length; end > pos2 {
				x := a.newRun()
				pr, xr := a.at(p), a.at(x)
				a.runs[pr.next].prev = x
				xr.next = pr.next
				xr.level = pr.level
				xr.isoLevel = pr.isoLevel
				xr.class = pr.class
				xr.length = end - pos2
				xr.pos = pos2
				r = x
			} else {
				r = a.next(r)
			}
			if a.runs[p].pos+a.runs[p].length >= pos {
				if a.runs[p].pos < pos {
					a.runs[p].length = pos - a.runs[p].pos
				} else {
					p = a.prev(p)
				}
			}
		} else {
			if a.runs[p].pos+a.runs[p].length >= pos {
				if a.runs[p].pos < pos {
					a.runs[p].length = pos - a.runs[p].pos
				} else {
					p = a.prev(p)
				}
			}
			if end := a.runs[r].pos + a.runs[r].length; end > pos2 {
				a.runs[r].length = end - pos2
				a.runs[r].pos = pos2
			} else {
				r = a.next(r)
			}
		}
		// runs between p and r are dropped by linking q in between
		t := q
		q = a.prev(q)
		a.deleteNode(t)
		a.runs[p].next = t
		a.runs[t].prev = p
		a.runs[t].next = r
		a.runs[r].prev = t
	}
	a.runs[base].pos, a.runs[base].length = -1, -1
}

// totalLength sums up the lengths of all runs of a list.
func (a *arena) totalLength(list runID) int {
	n := 0
	for x := a.next(list); x != list; x = a.next(x) {
		n += a.runs[x].length
	}
	return n
}

// check verifies the linkage of a list, and that runs are ordered by
// position without overlap.
func (a *arena) check(list runID) error {
	if !isSentinel(a.runs[list].class) {
		return fmt.Errorf("bidi: list head %d is not a sentinel", list)
	}
	last := -1
	for x := a.next(list); x != list; x = a.next(x) {
		r := a.at(x)
		if a.runs[r.next].prev != x || a.runs[r.prev].next != x {
			return fmt.Errorf("bidi: run %d is not properly linked", x)
		}
		if r.length < 0 || r.pos < last {
			return fmt.Errorf("bidi: run %d at %d overlaps previous run", x, r.pos)
		}
		last = r.pos + r.length
	}
	return nil
}

// dump writes a list to the debug trace.
func (a *arena) dump(tag string, list runID) {
	if tracer().GetTraceLevel() != tracing.LevelDebug {
		return
	}
	tracer().Debugf("%s: %s", tag, a.String(list))
}

// String renders a list as a sequence of runs, one per (pos:len,class,level).
func (a *arena) String(list runID) string {
	var sb strings.Builder
	for x := a.next(list); x != list; x = a.next(x) {
		r := a.at(x)
		fmt.Fprintf(&sb, "(%d:%d %s %d)", r.pos, r.length, ClassString(r.class), r.level)
		if r.bracket != NoBracket {
			fmt.Fprintf(&sb, "[%c]", r.bracket.ID())
		}
	}
	return sb.String()
}
