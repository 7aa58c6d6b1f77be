package bidi

import (
	jj "github.com/cloudfoundry/jibber_jabber"
	"golang.org/x/text/language"
)

// DirectionForLanguage returns a weak paragraph direction suitable for text
// in a given language: WeakRightToLeft for languages written in a
// right-to-left script, WeakLeftToRight otherwise.
//
// The direction is weak, so the first strong letter of a paragraph will
// still decide (rule P2). It only matters for paragraphs without letters.
func DirectionForLanguage(lang language.Tag) ParagraphDirection {
	script, _ := lang.Script()
	switch script.String() {
	case
		"Arab", "Hebr", "Syrc", "Thaa",
		"Nkoo", "Adlm", "Mand", "Samr",
		"Mend", "Rohg", "Yezi":
		return WeakRightToLeft
	}
	return WeakLeftToRight
}

// DirectionFromEnvironment derives a weak paragraph direction from the
// user locale of the environment. If no locale can be detected, it falls
// back to "en-US".
func DirectionFromEnvironment() ParagraphDirection {
	userLocale, err := jj.DetectIETF()
	if err != nil {
		tracer().Errorf(err.Error())
		userLocale = "en-US"
		tracer().Infof("bidi sets default user locale %v", userLocale)
	} else {
		tracer().Infof("bidi detected user locale %v", userLocale)
	}
	return DirectionForLanguage(language.Make(userLocale))
}
