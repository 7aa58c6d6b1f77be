/*
Package ucdtest reads test files of the Unicode Character Database.

Test files are not part of this module. They are downloaded by

	go run download.go

which stores them in a sub-folder "ucd" of this package. Tests relying on
them should be skipped if they are missing (see Path).

# License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © Norbert Pillmayer <norbert@pillmayer.com>
*/
package ucdtest

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"strconv"
	"strings"
)

// Path returns the path of a downloaded UCD test file.
func Path(file string) string {
	_, pkgfile, _, ok := runtime.Caller(0)
	if !ok {
		panic("no debug info")
	}
	return filepath.Join(filepath.Dir(pkgfile), "ucd", file)
}

// Exists is true if a test file has been downloaded.
func Exists(file string) bool {
	_, err := os.Stat(Path(file))
	return err == nil
}

// TestFile iterates over the test cases of a UCD test file, i.e. all lines
// except comments and empty lines.
type TestFile struct {
	in      io.Closer
	scanner *bufio.Scanner
	line    int
	text    string
	comment string
}

// Open opens a downloaded UCD test file.
func Open(file string) (*TestFile, error) {
	f, err := os.Open(Path(file))
	if err != nil {
		return nil, err
	}
	tf := NewTestFile(f)
	tf.in = f
	return tf, nil
}

// NewTestFile creates a test file iterator from a reader.
func NewTestFile(r io.Reader) *TestFile {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 4096), 1<<20)
	return &TestFile{scanner: sc}
}

// Scan advances to the next test case.
func (tf *TestFile) Scan() bool {
	for tf.scanner.Scan() {
		tf.line++
		text := strings.TrimSpace(tf.scanner.Text())
		if text == "" || text[0] == '#' {
			continue
		}
		tf.text, tf.comment = text, ""
		if i := strings.IndexByte(text, '#'); i >= 0 {
			tf.text, tf.comment = strings.TrimSpace(text[:i]), strings.TrimSpace(text[i+1:])
		}
		return true
	}
	return false
}

// Text is the current test case, without comment.
func (tf *TestFile) Text() string { return tf.text }

// Comment is the comment trailing the current test case.
func (tf *TestFile) Comment() string { return tf.comment }

// Line is the line number of the current test case.
func (tf *TestFile) Line() int { return tf.line }

// Fields splits the current test case at semicolons.
func (tf *TestFile) Fields() []string {
	fields := strings.Split(tf.text, ";")
	for i := range fields {
		fields[i] = strings.TrimSpace(fields[i])
	}
	return fields
}

// Directive returns name and value of the current line, if it is a
// directive of the form "@Name: value".
func (tf *TestFile) Directive() (name, value string, ok bool) {
	if !strings.HasPrefix(tf.text, "@") {
		return "", "", false
	}
	name, value, ok = strings.Cut(tf.text[1:], ":")
	return strings.TrimSpace(name), strings.TrimSpace(value), ok
}

// Err returns the first read error.
func (tf *TestFile) Err() error {
	return tf.scanner.Err()
}

// Close closes the underlying file, if any.
func (tf *TestFile) Close() error {
	if tf.in == nil {
		return nil
	}
	return tf.in.Close()
}

// CodePoints parses a blank separated list of hexadecimal code points.
func CodePoints(field string) ([]rune, error) {
	cps := strings.Fields(field)
	runes := make([]rune, len(cps))
	for i, cp := range cps {
		n, err := strconv.ParseUint(cp, 16, 32)
		if err != nil {
			return nil, fmt.Errorf("illegal code point %q: %w", cp, err)
		}
		runes[i] = rune(n)
	}
	return runes, nil
}

// Removed is the level of characters removed by rule X9 in bidi test
// files, given as "x".
const Removed = -1

// Levels parses a blank separated list of embedding levels. Characters
// without a level ("x") are reported as Removed.
func Levels(field string) ([]int, error) {
	ls := strings.Fields(field)
	levels := make([]int, len(ls))
	for i, l := range ls {
		if l == "x" {
			levels[i] = Removed
			continue
		}
		n, err := strconv.Atoi(l)
		if err != nil {
			return nil, fmt.Errorf("illegal level %q: %w", l, err)
		}
		levels[i] = n
	}
	return levels, nil
}

// Positions parses a blank separated list of decimal positions.
func Positions(field string) ([]int, error) {
	ps := strings.Fields(field)
	positions := make([]int, len(ps))
	for i, p := range ps {
		n, err := strconv.Atoi(p)
		if err != nil {
			return nil, fmt.Errorf("illegal position %q: %w", p, err)
		}
		positions[i] = n
	}
	return positions, nil
}

// Bitset parses a decimal set of flags, as used for the paragraph
// directions in BidiTest.txt (1 = auto, 2 = LTR, 4 = RTL).
func Bitset(field string) (uint, error) {
	n, err := strconv.ParseUint(strings.TrimSpace(field), 10, 8)
	if err != nil {
		return 0, fmt.Errorf("illegal bitset %q: %w", field, err)
	}
	return uint(n), nil
}
