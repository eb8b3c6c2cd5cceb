// Package voice is the utterance channel: text out via Speak, text in via
// Listen. Real speech capture and synthesis live behind this boundary; the
// shipped implementation is console-backed.
package voice

import (
	"bufio"
	"io"
	"strings"

	"github.com/fatih/color"
)

// Channel produces and consumes utterances. Speak is fire-and-forget;
// Listen blocks until a full line is available and returns io.EOF when the
// input ends.
type Channel interface {
	Speak(text string)
	Listen() (string, error)
}

// Console is a Channel over a terminal (or any reader/writer pair).
type Console struct {
	scanner *bufio.Scanner
	out     io.Writer
	speaker *color.Color
	prompt  *color.Color
}

func NewConsole(in io.Reader, out io.Writer) *Console {
	return &Console{
		scanner: bufio.NewScanner(in),
		out:     out,
		speaker: color.New(color.FgCyan, color.Bold),
		prompt:  color.New(color.FgGreen),
	}
}

// Speak writes the assistant's line. No return value: playback failures are
// not actionable here.
func (c *Console) Speak(text string) {
	c.speaker.Fprint(c.out, "Coach: ")
	io.WriteString(c.out, text+"\n")
}

// Listen blocks for one line of user input and returns it lowercased and
// trimmed, matching what a speech recognizer would hand back.
func (c *Console) Listen() (string, error) {
	c.prompt.Fprint(c.out, "You: ")
	if !c.scanner.Scan() {
		if err := c.scanner.Err(); err != nil {
			return "", err
		}
		return "", io.EOF
	}
	return strings.ToLower(strings.TrimSpace(c.scanner.Text())), nil
}
