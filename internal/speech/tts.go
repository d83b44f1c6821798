// Package speech reads assistant replies aloud and turns recorded voice
// input into question text.
package speech

import (
	"context"
	"os/exec"
	"strings"
)

// Synthesizer speaks text and returns when playback ends or ctx is done.
type Synthesizer interface {
	Speak(ctx context.Context, text string) error
}

// CommandSynthesizer speaks through an external TTS program such as
// espeak-ng, say or spd-say. The text is written to the program's stdin.
type CommandSynthesizer struct {
	Command string
	Args    []string
}

// NewCommandSynthesizer parses a command line like "espeak-ng -v tr".
// An empty command line returns nil.
func NewCommandSynthesizer(cmdline string) *CommandSynthesizer {
	fields := strings.Fields(cmdline)
	if len(fields) == 0 {
		return nil
	}
	return &CommandSynthesizer{Command: fields[0], Args: fields[1:]}
}

// Speak runs the TTS command. Cancelling ctx kills the process.
func (s *CommandSynthesizer) Speak(ctx context.Context, text string) error {
	cmd := exec.CommandContext(ctx, s.Command, s.Args...)
	cmd.Stdin = strings.NewReader(text)
	if err := cmd.Run(); err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		return speechErr("tts", err)
	}
	return nil
}

// PlainText strips the markdown markers that TTS engines would read out.
func PlainText(markdown string) string {
	r := strings.NewReplacer("**", "", "__", "", "`", "", "#", "", "* ", " ", "- ", " ", "*", "", "_", " ")
	return strings.Join(strings.Fields(r.Replace(markdown)), " ")
}
