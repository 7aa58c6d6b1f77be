package bidi

// resolveNeutral applies rules N1 and N2. A neutral run takes the class of
// its surroundings if both sides agree, with numbers counting as R.
// Otherwise it takes the embedding direction.
func (rv *resolver) resolveNeutral() {
	a := rv.a
	for x := a.next(rv.main); x != rv.main; x = a.next(x) {
		_, _, prevType, nextType := rv.neighbourTypes(x)
		prevType, nextType = numberToRTL(prevType), numberToRTL(nextType)
		if isNeutral(numberToRTL(a.class(x))) {
			if prevType == nextType {
				a.at(x).class = prevType // N1
			} else {
				a.at(x).class = levelToDir(a.level(x)) // N2
			}
		}
	}
	a.compact(rv.main)
	a.dump("neutral", rv.main)
}
