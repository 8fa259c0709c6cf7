package telnet

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"pgregory.net/rapid"
)

func TestColorize(t *testing.T) {
	assert.Equal(t, "\033[31mUnknown profession: pilot\033[0m", Colorize(Red, "Unknown profession: pilot"))
	assert.Equal(t, "", Colorize(Red, ""), "blank text emits no codes")
	assert.Equal(t, "\033[32mHLT: 13\033[0m", Colorf(Green, "HLT: %d", 13))
}

func TestStyleHelpers(t *testing.T) {
	assert.Equal(t, "\033[31mMust select exactly 1 burden(s)\033[0m", Problem("Must select exactly 1 burden(s)"))
	assert.Equal(t, "\033[1m\033[97mSkills\033[0m", Heading("Skills"))
	assert.Equal(t, "\033[90mtype help\033[0m", Hint("type help"))
	assert.Equal(t, "", Hint(""))
}

func TestStripANSI(t *testing.T) {
	cases := []struct {
		name, in, want string
	}{
		{"sgr", "\033[31mred\033[0m normal \033[1m\033[32mbold green\033[0m", "red normal bold green"},
		{"multi-parameter", "\033[1;31mwarn\033[0m", "warn"},
		{"cursor and erase", "\033[2K\033[1Gprompt> ", "prompt> "},
		{"plain", "plain text", "plain text"},
		{"empty", "", ""},
		{"lone escape", "a\033b", "a\033b"},
		{"unterminated", "ok\033[31", "ok\033[31"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, StripANSI(tc.in))
		})
	}
}

func TestProperty_StripANSIInvertsStyling(t *testing.T) {
	styles := []string{Red, Green, Blue, Yellow, Cyan, Magenta, White, Bold, Dim, Underline, BrightBlack, BrightWhite}
	rapid.Check(t, func(t *rapid.T) {
		parts := rapid.SliceOfN(rapid.StringMatching(`[a-zA-Z0-9 :!()]{0,20}`), 1, 5).Draw(t, "parts")
		var styled, plain strings.Builder
		for _, p := range parts {
			style := rapid.SampledFrom(styles).Draw(t, "style")
			styled.WriteString(Colorize(style, p))
			plain.WriteString(p)
		}
		stripped := StripANSI(styled.String())
		assert.Equal(t, plain.String(), stripped)
		assert.NotContains(t, stripped, "\033")
	})
}

func TestProperty_StripANSINeverGrows(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		text := rapid.String().Draw(t, "text")
		assert.LessOrEqual(t, len(StripANSI(text)), len(text))
	})
}
