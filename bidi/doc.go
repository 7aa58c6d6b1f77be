/*
Package bidi implements the Unicode Bidirectional Algorithm (UAX#9).

The package resolves embedding levels for one paragraph of text and
reorders lines of a paragraph into visual order. It operates on arrays
of bidi classes, as provided by golang.org/x/text/unicode/bidi, and
does not need to see the characters themselves. Clients holding runes
may use the convenience functions Classes, EmbeddingLevels and Visual,
which look up character properties on the fly.

Resolving levels happens in phases, all of them working on a run list:
maximal stretches of characters sharing a class are collapsed into
runs, and every phase (explicit levels, weak types, bracket pairs,
neutral types, implicit levels) rewrites this list in place. Explicit
formatting codes are moved to a side list early on and woven back in
after levels are final. Lines are reordered with rules L1 to L3 by
ReorderLine, which keeps an optional visual string, an index map and
client data in lock-step.

	types, brackets := bidi.Classes(text)
	dir := bidi.Neutral
	levels := make([]bidi.Level, len(text))
	n, err := bidi.ParagraphLevels(types, brackets, &dir, levels)

The implementation follows the run-list design of GNU FriBidi.
Nesting depth is bounded at 125 explicit levels, isolate and embedding
overflow are handled as prescribed by UAX#9 and never reported as
errors.

# License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © Norbert Pillmayer <norbert@pillmayer.com>
*/
package bidi

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'uax.bidi'.
func tracer() tracing.Trace {
	return tracing.Select("uax.bidi")
}

// UnicodeVersion is the UAX#9 version this implementation follows.
const UnicodeVersion = "15.0.0"
