package audio

import (
	"os"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"
)

// Capture accumulates stereo frames and flushes them to a 16-bit PCM WAV
// file every 4096 samples and on Close, for the --capture-wav debugging
// flag.
type Capture struct {
	enc    *wav.Encoder
	file   *os.File
	frames []int
}

// NewCapture creates (or truncates) path and opens a WAV encoder at
// sampleRate, stereo, 16-bit PCM.
func NewCapture(path string, sampleRate int) (*Capture, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, err
	}
	enc := wav.NewEncoder(f, sampleRate, 16, 2, 1)
	return &Capture{enc: enc, file: f}, nil
}

// Write appends one stereo frame, converting from [-1, 1] float to 16-bit
// signed PCM.
func (c *Capture) Write(f Frame) {
	c.frames = append(c.frames, floatToPCM16(f.L), floatToPCM16(f.R))
	if len(c.frames) >= 4096 {
		c.flush()
	}
}

func (c *Capture) flush() {
	if len(c.frames) == 0 {
		return
	}
	buf := &audio.IntBuffer{
		Format: &audio.Format{NumChannels: 2, SampleRate: c.enc.SampleRate},
		Data:   c.frames,
		SourceBitDepth: 16,
	}
	c.enc.Write(buf)
	c.frames = c.frames[:0]
}

// Close flushes any buffered frames and finalizes the WAV header.
func (c *Capture) Close() error {
	c.flush()
	if err := c.enc.Close(); err != nil {
		c.file.Close()
		return err
	}
	return c.file.Close()
}

func floatToPCM16(v float32) int {
	if v > 1 {
		v = 1
	} else if v < -1 {
		v = -1
	}
	return int(v * 32767)
}
