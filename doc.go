/*
Package unibidi is about the Unicode Bidirectional Algorithm.

# Description

From the Unicode Consortium:

The Unicode Standard prescribes a memory representation order known as
logical order. When text is presented in horizontal lines, most scripts
display characters from left to right. However, there are several
scripts (such as Arabic or Hebrew) where the natural ordering of
horizontal text in display is from right to left. If all of the text has
a uniform horizontal direction, then the ordering of the display text is
unambiguous.

However, because these right-to-left scripts use digits that are written
from left to right, the text is actually bidirectional: a mixture of
right-to-left and left-to-right text. In addition to digits, embedded
words from English and other scripts are also written from left to
right, also producing bidirectional text. Without a clear specification,
ambiguities can arise in determining the ordering of the displayed
characters when the horizontal direction of the text is not uniform.

[...]

# Contents

The algorithm is implemented in package bidi. It resolves the embedding
levels of a paragraph and reorders lines of text into display order.
A small interactive tool for experimenting with bidi text may be found
in cmd/bidicli.

Typical usage is

	text := []rune("car means CAR.")
	dir := bidi.Neutral
	levels := make([]bidi.Level, len(text))
	bidi.EmbeddingLevels(text, &dir, levels)
	visual, vmap, err := bidi.Visual(string(text), dir)

# License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © Norbert Pillmayer <norbert@pillmayer.com>
*/
package unibidi
