// Package telnet provides the Telnet transport and ANSI styling for the creator.
package telnet

import (
	"fmt"
	"strings"
)

// SGR sequences used by the creator's views.
const (
	Reset     = "\033[0m"
	Bold      = "\033[1m"
	Dim       = "\033[2m"
	Underline = "\033[4m"

	Red     = "\033[31m"
	Green   = "\033[32m"
	Yellow  = "\033[33m"
	Blue    = "\033[34m"
	Magenta = "\033[35m"
	Cyan    = "\033[36m"
	White   = "\033[37m"

	BrightBlack = "\033[90m"
	BrightWhite = "\033[97m"
)

// Colorize wraps text in style and a trailing Reset.
//
// Postcondition: Empty text yields "" so blank fields emit no escape codes.
func Colorize(style, text string) string {
	if text == "" {
		return ""
	}
	return style + text + Reset
}

// Colorf is Colorize over a formatted string.
func Colorf(style, format string, args ...any) string {
	return Colorize(style, fmt.Sprintf(format, args...))
}

// Heading styles a step or section title.
func Heading(text string) string { return Colorize(Bold+BrightWhite, text) }

// Problem styles a validation problem or error message.
func Problem(text string) string { return Colorize(Red, text) }

// Hint styles secondary help text.
func Hint(text string) string { return Colorize(BrightBlack, text) }

// StripANSI removes CSI escape sequences (ESC '[' parameters final-byte),
// leaving the printable text.
//
// Postcondition: An unterminated trailing sequence is kept verbatim.
func StripANSI(s string) string {
	if !strings.Contains(s, "\033[") {
		return s
	}
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); {
		if s[i] != '\033' || i+1 >= len(s) || s[i+1] != '[' {
			b.WriteByte(s[i])
			i++
			continue
		}
		j := i + 2
		for j < len(s) && (s[j] < 0x40 || s[j] > 0x7e) {
			j++
		}
		if j == len(s) {
			b.WriteString(s[i:])
			break
		}
		i = j + 1
	}
	return b.String()
}
