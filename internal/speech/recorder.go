package speech

import (
	"bytes"
	"context"
	"os"
	"os/exec"
	"strings"
	"time"
)

// Recorder captures raw 16-bit little-endian mono PCM from an external
// program (arecord, sox/rec, ffmpeg) that writes audio to stdout until it
// is interrupted.
type Recorder struct {
	Command    string
	Args       []string
	SampleRate int
}

// DefaultRecordCommand records 16 kHz mono PCM with ALSA.
const DefaultRecordCommand = "arecord -q -f S16_LE -r 16000 -c 1 -t raw"

// NewRecorder parses a command line. An empty command line returns nil.
func NewRecorder(cmdline string, sampleRate int) *Recorder {
	fields := strings.Fields(cmdline)
	if len(fields) == 0 {
		return nil
	}
	if sampleRate <= 0 {
		sampleRate = 16000
	}
	return &Recorder{Command: fields[0], Args: fields[1:], SampleRate: sampleRate}
}

// Record runs until ctx is cancelled and returns the captured audio.
// Cancellation interrupts the recorder so it can flush its output.
func (r *Recorder) Record(ctx context.Context) ([]byte, error) {
	var out bytes.Buffer
	cmd := exec.CommandContext(ctx, r.Command, r.Args...)
	cmd.Stdout = &out
	cmd.Cancel = func() error {
		return cmd.Process.Signal(os.Interrupt)
	}
	cmd.WaitDelay = 2 * time.Second

	err := cmd.Run()
	if ctx.Err() == nil && err != nil {
		return nil, speechErr("record", err)
	}
	return out.Bytes(), nil
}
