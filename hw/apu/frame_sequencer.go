package apu

// FrameSequencer is the APU's fixed 8-step, 512Hz sequencer. It fires a
// cyclic pattern of length/sweep/envelope ticks; callers drive it with
// cycle counts. The current step is internal and has no accessor.
type FrameSequencer struct {
	step  uint8
	accum int
}

const frameSequencerPeriod = 8192 // CPU cycles between steps, i.e. 512Hz

// Advance runs the sequencer forward by cycles CPU cycles, invoking
// onLength/onSweep/onEnvelope for each step boundary crossed, in the order
// the spec assigns to steps 0-7.
func (fs *FrameSequencer) Advance(cycles int, onLength, onSweep, onEnvelope func()) {
	fs.accum += cycles
	for fs.accum >= frameSequencerPeriod {
		fs.accum -= frameSequencerPeriod
		fs.fire(onLength, onSweep, onEnvelope)
		fs.step = (fs.step + 1) % 8
	}
}

func (fs *FrameSequencer) fire(onLength, onSweep, onEnvelope func()) {
	switch fs.step {
	case 0, 2, 4, 6:
		onLength()
		if fs.step == 2 || fs.step == 6 {
			onSweep()
		}
	case 7:
		onEnvelope()
	}
}

func (fs *FrameSequencer) Reset() {
	fs.step = 0
	fs.accum = 0
}
