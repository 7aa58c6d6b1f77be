package bidi

import (
	"golang.org/x/text/unicode/bidi"
)

// neighbourTypes returns the classes of the runs before and after x within
// its isolating run sequence. At a level boundary, the direction of the
// higher level stands in for the class (sos/eos).
func (rv *resolver) neighbourTypes(x runID) (prev, next runID, prevType, nextType bidi.Class) {
	a := rv.a
	prev = a.adjacent(x, false, false)
	next = a.adjacent(x, true, false)
	lv := a.level(x)
	if a.level(prev) == lv {
		prevType = a.class(prev)
	} else {
		prevType = levelToDir(maxLevel(a.level(prev), lv))
	}
	if a.level(next) == lv {
		nextType = a.class(next)
	} else {
		nextType = levelToDir(maxLevel(a.level(next), lv))
	}
	return
}

// resolveWeak applies rules W1 to W7 in two sweeps over the run list.
// Every isolate level keeps its own memory of the last strong class.
func (rv *resolver) resolveWeak() {
	a := rv.a
	var lastStrong [maxResolvedLevels]bidi.Class
	for i := range lastStrong {
		lastStrong[i] = rv.baseDir
	}
	rv.maxIso = 0
	// W1 and W2
	for x := a.next(rv.main); x != rv.main; x = a.next(x) {
		prev, next, prevType, nextType := rv.neighbourTypes(x)
		c := a.class(x)
		iso := a.at(x).isoLevel
		if iso > rv.maxIso {
			rv.maxIso = iso
		}
		if isStrong(prevType) {
			lastStrong[iso] = prevType
		}
		if c == bidi.NSM {
			if isIsolate(a.class(a.prev(x))) {
				a.at(x).class = bidi.ON
			}
			if a.level(prev) == a.level(x) {
				if prev == a.prev(x) {
					x = a.mergeWithPrev(x)
				}
			} else {
				a.at(x).class = prevType
			}
			if prevType == nextType && a.level(x) == a.level(a.next(x)) {
				if next == a.next(x) {
					x = a.mergeWithPrev(a.next(x))
				}
			}
			continue
		}
		if c == bidi.EN && lastStrong[iso] == bidi.AL {
			a.at(x).class = bidi.AN
			// an NSM following will see EN otherwise
			if nextType == bidi.NSM && next != endOfSequence {
				a.at(next).class = bidi.AN
			}
		}
	}
	// W3 to W7
	lastStrong[0] = rv.baseDir
	w4 := true              // W5 may block W4 for the next run
	prevTypeOrig := bidi.ON // class before W7 changed it
	for x := a.next(rv.main); x != rv.main; x = a.next(x) {
		c := a.class(x)
		iso := a.at(x).isoLevel
		_, _, prevType, nextType := rv.neighbourTypes(x)
		if isStrong(prevType) {
			lastStrong[iso] = prevType
		}
		if c == bidi.AL { // W3
			a.at(x).class = bidi.R
			w4 = true
			prevTypeOrig = bidi.ON
			continue
		}
		// W4
		if w4 && a.at(x).length == 1 && isESOrCS(c) &&
			isNumber(prevTypeOrig) && prevTypeOrig == nextType &&
			(prevTypeOrig == bidi.EN || c == bidi.CS) {
			a.at(x).class = prevType
			c = prevType
		}
		w4 = true
		// W5
		if c == bidi.ET && (prevTypeOrig == bidi.EN || nextType == bidi.EN) {
			a.at(x).class = bidi.EN
			w4 = false
			c = bidi.EN
		}
		// W6
		if isNumSepTer(c) {
			a.at(x).class = bidi.ON
		}
		// W7
		if c == bidi.EN && lastStrong[iso] == bidi.L {
			a.at(x).class = bidi.L
			if a.level(x) == a.level(a.next(x)) {
				prevTypeOrig = bidi.EN
			} else {
				prevTypeOrig = bidi.ON
			}
		} else {
			prevTypeOrig = a.prevTypeOrSOR(a.next(x))
		}
	}
	a.compactNeutrals(rv.main)
	a.dump("weak", rv.main)
}
