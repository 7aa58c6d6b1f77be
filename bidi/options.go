package bidi

// Option configures the line reorderer and the code-point functions.
type Option func(cfg *config)

type config struct {
	mode uint
}

const (
	optionReorderNSM uint = 1 << 1 // rule L3: keep NSMs after their base in RTL runs
	optionMirroring  uint = 1 << 2 // mirror glyphs at odd levels before reordering
	optionTesting    uint = 1 << 3 // test mode: recognize uppercase as class R
)

func newConfig(opts []Option) *config {
	cfg := &config{mode: optionReorderNSM | optionMirroring}
	for _, opt := range opts {
		opt(cfg)
	}
	return cfg
}

func (cfg *config) hasMode(m uint) bool {
	return cfg.mode&m != 0
}

func (cfg *config) setMode(m uint, b bool) {
	if b {
		cfg.mode |= m
	} else {
		cfg.mode &^= m
	}
}

// ReorderNSM controls rule L3 of UAX#9: sequences of non-spacing marks at
// right-to-left levels are re-reversed, so they follow their base character
// in visual order. This is the default.
func ReorderNSM(b bool) Option {
	return func(cfg *config) {
		cfg.setMode(optionReorderNSM, b)
	}
}

// Mirroring controls mirroring of characters at right-to-left levels (rule
// L4) in the visual buffer of a line. This is the default.
func Mirroring(b bool) Option {
	return func(cfg *config) {
		cfg.setMode(optionMirroring, b)
	}
}

// Testing will set up classification to recognize UPPERCASE letters as
// having R2L class. This is a common pattern in bidi algorithm development.
func Testing(b bool) Option {
	return func(cfg *config) {
		cfg.setMode(optionTesting, b)
	}
}
