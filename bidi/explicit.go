package bidi

import (
	"golang.org/x/text/unicode/bidi"
)

// findBaseLevel determines the paragraph embedding level. A strong
// direction is taken as given, otherwise rules P2 and P3 look for the
// first strong letter outside of isolates, falling back to dir.
func (rv *resolver) findBaseLevel(dir ParagraphDirection) {
	a := rv.a
	rv.baseLevel = dir.level()
	if !dir.IsStrong() {
		open := 0
		for x := a.next(rv.main); x != rv.main; x = a.next(x) {
			c := a.class(x)
			if c == bidi.B {
				break
			}
			if c == bidi.PDI {
				if open > 0 {
					open--
				}
			} else if isIsolate(c) {
				open++
			} else if open == 0 && isLetter(c) {
				rv.baseLevel = dirToLevel(c)
				break
			}
		}
	}
	rv.baseDir = levelToDir(rv.baseLevel)
	rv.isoBase[0] = rv.baseLevel
	tracer().Debugf("bidi: base level %d, base dir %s", rv.baseLevel, ClassString(rv.baseDir))
}

// statusFrame is an entry of the directional status stack.
type statusFrame struct {
	level    Level
	isoLevel int
	isolate  bool
	override bidi.Class
}

// explicitState is the state of rules X1 to X8 while walking a paragraph.
type explicitState struct {
	stack           [maxResolvedLevels]statusFrame
	size            int
	level           Level
	isoLevel        int
	isolate         bool
	override        bidi.Class
	overPushed      int
	firstInterval   int
	validIsolates   int
	isolateOverflow int
}

// push enters a new embedding level, if the level is valid and no overflow
// is pending. Otherwise the overflow is counted.
func (st *explicitState) push(newLevel int, newOverride bidi.Class) {
	if st.overPushed == 0 && st.isolateOverflow == 0 && newLevel <= MaxExplicitLevel {
		if st.level == MaxExplicitLevel-1 {
			st.firstInterval = st.overPushed
		}
		st.stack[st.size] = statusFrame{
			level:    st.level,
			isoLevel: st.isoLevel,
			isolate:  st.isolate,
			override: st.override,
		}
		st.size++
		st.level = Level(newLevel)
		st.override = newOverride
	} else if st.isolateOverflow == 0 {
		st.overPushed++
	}
}

// pop terminates the innermost embedding, or one overflowed push.
func (st *explicitState) pop() {
	if st.size == 0 {
		return
	}
	if st.overPushed > st.firstInterval {
		st.overPushed--
		return
	}
	if st.overPushed == st.firstInterval {
		st.firstInterval = 0
	}
	st.size--
	f := st.stack[st.size]
	st.level = f.level
	st.override = f.override
	st.isolate = f.isolate
	st.isoLevel = f.isoLevel
}

func (st *explicitState) topIsIsolate() bool {
	return st.size > 0 && st.stack[st.size-1].isolate
}

// resolveExplicit applies rules X1 to X9. Every run receives an embedding
// level and an isolate level. Embedding codes, overrides, PDFs and BNs
// are moved to the explicits list, with a sentinel level, to be re-inserted
// after resolution.
func (rv *resolver) resolveExplicit() {
	a := rv.a
	st := &explicitState{level: rv.baseLevel, override: bidi.ON}
	var nx runID
	for x := a.next(rv.main); x != rv.main; x = nx {
		nx = a.next(x)
		c := a.class(x)
		a.at(x).isoLevel = st.isoLevel
		switch {
		case isExplicitOrBN(c):
			if isStrong(c) { // LRE, RLE, LRO, RLO: rules X2 to X5
				newOverride := overrideDir(c)
				d := int(dirToLevel(c))
				for i := a.at(x).length; i > 0; i-- {
					newLevel := ((int(st.level) + d + 2) &^ 1) - d
					st.isolate = false
					st.push(newLevel, newOverride)
				}
			} else if c == bidi.PDF { // rule X7
				for i := a.at(x).length; i > 0; i-- {
					if st.topIsIsolate() {
						break
					}
					st.pop()
				}
			}
			// rule X9
			a.at(x).level = levelSentinel
			a.moveBefore(x, rv.explicits)
		case c == bidi.PDI: // rule X6a
			for i := a.at(x).length; i > 0; i-- {
				r := a.at(x)
				if st.isolateOverflow > 0 {
					st.isolateOverflow--
					r.level = st.level
				} else if st.validIsolates > 0 {
					// embeddings within the isolate are terminated implicitly
					for st.size > 0 && !st.topIsIsolate() {
						st.pop()
					}
					st.overPushed = 0
					st.pop()
					st.isoLevel--
					st.validIsolates--
					r.level = st.level
					r.isoLevel = st.isoLevel
				} else {
					r.class = bidi.ON
					r.level = st.level
				}
			}
		case isIsolate(c): // rules X5a to X5c
			lv := int(st.level)
			newLevel := lv + 2 - lv%2
			if c == bidi.RLI || (c == bidi.FSI && rv.firstStrongLevel(x).IsRTL()) {
				newLevel = lv + 1 + lv%2
			}
			r := a.at(x)
			r.level = st.level
			r.isoLevel = st.isoLevel
			if !isNeutral(st.override) {
				r.class = st.override
			}
			if newLevel <= MaxExplicitLevel && st.isoLevel+1 < maxResolvedLevels {
				st.isoLevel++
				rv.isoBase[st.isoLevel] = Level(newLevel)
				st.validIsolates++
				st.isolate = true
				st.push(newLevel, bidi.ON)
				st.level = Level(newLevel)
			} else {
				st.isolateOverflow++
			}
		case c == bidi.B: // rule X8
			nx = rv.main
		default: // rule X6
			r := a.at(x)
			r.level = st.level
			if !isNeutral(st.override) {
				r.class = st.override
			}
		}
	}
	rv.linkIsolates()
	a.compact(rv.main)
	a.dump("explicit", rv.main)
}

// firstStrongLevel looks ahead from an FSI for the first strong letter
// up to the matching PDI, skipping nested isolates.
func (rv *resolver) firstStrongLevel(fsi runID) Level {
	a := rv.a
	depth := 0
	for x := a.next(fsi); x != rv.main; x = a.next(x) {
		c := a.class(x)
		if c == bidi.PDI {
			depth--
			if depth < 0 {
				break
			}
		} else if isIsolate(c) {
			depth++
		} else if c == bidi.B {
			break
		} else if depth == 0 && isLetter(c) {
			return dirToLevel(c)
		}
	}
	return 0
}

// linkIsolates chains every run to its neighbours of the same isolate
// level.
func (rv *resolver) linkIsolates() {
	a := rv.a
	var last [maxResolvedLevels]runID
	for i := range last {
		last[i] = noRun
	}
	for x := a.next(rv.main); x != rv.main; x = a.next(x) {
		iso := a.at(x).isoLevel
		if last[iso] != noRun {
			a.at(last[iso]).nextIso = x
			a.at(x).prevIso = last[iso]
		}
		last[iso] = x
	}
}
