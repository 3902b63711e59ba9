package hw

// Joypad holds the two active-low input nibbles the harness pushes in
// between frames, and the JOYP selection state used to compose a single
// byte read at 0xFF00.
type Joypad struct {
	buttons uint8 // bits: 0=A,1=B,2=Select,3=Start, active-low
	dpad    uint8 // bits: 0=Right,1=Left,2=Up,3=Down, active-low

	selectButtons bool
	selectDPad    bool
}

// NewJoypad returns a joypad with nothing pressed (all bits high).
func NewJoypad() Joypad {
	return Joypad{buttons: 0x0F, dpad: 0x0F}
}

// SetState loads the two nibbles for the upcoming frame; both already
// active-low (0 = pressed) as the harness interface mandates. Returns true
// if any bit newly transitioned into the pressed (0) state, the trigger
// for raising IF.Joypad.
func (j *Joypad) SetState(buttons, dpad uint8) bool {
	buttons &= 0x0F
	dpad &= 0x0F
	pressed := pressedEdge(j.buttons, buttons) || pressedEdge(j.dpad, dpad)
	j.buttons = buttons
	j.dpad = dpad
	return pressed
}

// pressedEdge reports whether any bit transitioned into the pressed (0)
// state between oldVal and newVal.
func pressedEdge(oldVal, newVal uint8) bool {
	return oldVal&^newVal != 0
}

func (j *Joypad) readComposite(selectBits uint8) uint8 {
	j.selectButtons = selectBits&0x20 == 0
	j.selectDPad = selectBits&0x10 == 0

	low := uint8(0x0F)
	if j.selectButtons {
		low &= j.buttons
	}
	if j.selectDPad {
		low &= j.dpad
	}
	return 0xC0 | selectBits&0x30 | low
}
