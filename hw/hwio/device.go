package hwio

// Device is any component that wants full control over reads and writes
// within its mapped window (DMA controllers, mappers, anything whose
// behavior can't be expressed as a single Reg8 or a flat Mem). Components
// supply ReadCb/WriteCb and map the Device with MapDevice.
type Device struct {
	Name    string
	ReadCb  func(addr uint16, peek bool) uint8
	WriteCb func(addr uint16, val uint8)
}

func (d *Device) Read8(addr uint16, peek bool) uint8 {
	if d.ReadCb == nil {
		return 0xFF
	}
	return d.ReadCb(addr, peek)
}

func (d *Device) Write8(addr uint16, val uint8) {
	if d.WriteCb != nil {
		d.WriteCb(addr, val)
	}
}
