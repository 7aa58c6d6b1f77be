package main

import (
	"fmt"

	"github.com/npillmayer/unibidi/bidi"
	"github.com/pterm/pterm"
	xbidi "golang.org/x/text/unicode/bidi"
)

// paragraph is a line of input, resolved and reordered.
type paragraph struct {
	runes  []rune
	types  []xbidi.Class
	levels []bidi.Level
	dir    bidi.ParagraphDirection
	line   *bidi.Line
}

// resolve classifies, resolves and reorders text as a single line.
func (intp *Intp) resolve(text string) (*paragraph, error) {
	p := &paragraph{runes: []rune(text), dir: intp.dir}
	var brackets []bidi.BracketType
	p.types, brackets = bidi.Classes(p.runes, intp.options()...)
	p.levels = make([]bidi.Level, len(p.runes))
	if _, err := bidi.ParagraphLevels(p.types, brackets, &p.dir, p.levels); err != nil {
		return nil, err
	}
	p.line = &bidi.Line{
		Visual: append([]rune(nil), p.runes...),
		Map:    bidi.IdentityMap(len(p.runes)),
	}
	_, err := bidi.ReorderLine(p.types, 0, len(p.runes), p.dir, p.levels, p.line, intp.options()...)
	return p, err
}

// reorder resolves a paragraph and prints it in visual order.
func (intp *Intp) reorder(text string) error {
	p, err := intp.resolve(text)
	if err != nil {
		return err
	}
	pterm.Printf("%s paragraph, visual order:\n", p.dir)
	pterm.Println("    " + string(p.line.Visual))
	if intp.details {
		printDetails(p.runes, p.types, p.levels, p.line.Map)
	}
	return nil
}

func printDetails(runes []rune, types []xbidi.Class, levels []bidi.Level, vmap []int) {
	visualPos := make([]string, len(runes))
	for i := range visualPos {
		visualPos[i] = "-"
	}
	for v, l := range vmap {
		visualPos[l] = fmt.Sprintf("%d", v)
	}
	data := [][]string{
		{"Pos", "Char", "Class", "Level", "Visual"},
	}
	for i, r := range runes {
		data = append(data, []string{
			fmt.Sprintf("%d", i),
			fmt.Sprintf("%U", r),
			bidi.ClassString(types[i]),
			fmt.Sprintf("%d", levels[i]),
			visualPos[i],
		})
	}
	pterm.DefaultTable.WithHasHeader().WithData(data).Render()
}
