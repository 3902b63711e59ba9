package hwio

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"
)

// BankIO8 is anything that can answer a byte-wide bus access. Reg8, Mem
// (via Mem.BankIO8) and Device all satisfy it.
type BankIO8 interface {
	Read8(addr uint16, peek bool) uint8
	Write8(addr uint16, val uint8)
}

// Table is a flat 64KiB bus dispatch table. Every address maps to exactly
// one BankIO8; unmapped addresses read back 0xFF and discard writes. The
// whole address space fits in one flat array here, unlike a banked/mirrored
// bus that would need a tree of windows to dispatch through.
type Table struct {
	entries [65536]BankIO8
}

// NewTable returns an empty bus dispatch table; every address initially
// reads 0xFF and discards writes until mapped.
func NewTable() *Table {
	return &Table{}
}

type unmapped struct{}

func (unmapped) Read8(addr uint16, peek bool) uint8 { return 0xFF }
func (unmapped) Write8(addr uint16, val uint8)      {}

var unmappedIO BankIO8 = unmapped{}

// MapBank maps io across [offset, offset+size) on the bus.
func (t *Table) MapBank(offset uint32, io BankIO8, size uint32) {
	for i := uint32(0); i < size; i++ {
		t.entries[uint16(offset+i)] = io
	}
}

// MapReg8 maps a single-byte register at offset.
func (t *Table) MapReg8(offset uint16, reg *Reg8) {
	t.entries[offset] = reg
}

// MapMem maps a Mem region starting at offset, using its virtual size.
func (t *Table) MapMem(offset uint32, m *Mem) {
	t.MapBank(offset, m.BankIO8(), uint32(m.vsize()))
}

// MapDevice maps a Device across [offset, offset+size).
func (t *Table) MapDevice(offset uint32, dev *Device, size uint32) {
	t.MapBank(offset, dev, size)
}

// MapMemorySlice maps a raw byte slice (e.g. a cartridge ROM bank) directly,
// without an owning Mem, as a read-only (or read-write) window.
func (t *Table) MapMemorySlice(offset uint32, data []byte, readOnly bool) {
	m := &Mem{Data: data}
	if readOnly {
		m.Flags = MemFlag8ReadOnly
	}
	t.MapMem(offset, m)
}

// Unmap clears [offset, offset+size) back to the default unmapped handler.
func (t *Table) Unmap(offset uint32, size uint32) {
	t.MapBank(offset, unmappedIO, size)
}

func (t *Table) Read8(addr uint16) uint8 {
	io := t.entries[addr]
	if io == nil {
		return 0xFF
	}
	return io.Read8(addr, false)
}

// Peek8 reads without side effects, for debugger/state-dump use; falls back
// to a normal read if the underlying handler doesn't distinguish.
func (t *Table) Peek8(addr uint16) uint8 {
	io := t.entries[addr]
	if io == nil {
		return 0xFF
	}
	return io.Read8(addr, true)
}

func (t *Table) Write8(addr uint16, val uint8) {
	io := t.entries[addr]
	if io == nil {
		return
	}
	io.Write8(addr, val)
}

func (t *Table) Read16(addr uint16) uint16 {
	lo := t.Read8(addr)
	hi := t.Read8(addr + 1)
	return uint16(lo) | uint16(hi)<<8
}

func (t *Table) Write16(addr uint16, val uint16) {
	t.Write8(addr, uint8(val))
	t.Write8(addr+1, uint8(val>>8))
}

// tagSpec is the parsed form of an `hwio:"..."` struct tag.
type tagSpec struct {
	offset   int
	hasOff   bool
	bank     int
	size     int
	vsize    int
	readonly bool
	writeonly bool
	rcb      bool
	wcb      bool
}

func parseTag(tag string) (tagSpec, bool) {
	raw, ok := lookupTag(tag, "hwio")
	if !ok {
		return tagSpec{}, false
	}
	var spec tagSpec
	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		kv := strings.SplitN(part, "=", 2)
		key := kv[0]
		switch key {
		case "readonly":
			spec.readonly = true
		case "writeonly":
			spec.writeonly = true
		case "rcb":
			spec.rcb = true
		case "wcb":
			spec.wcb = true
		default:
			if len(kv) != 2 {
				continue
			}
			n64, err := strconv.ParseInt(kv[1], 0, 0)
			if err != nil {
				continue
			}
			n := int(n64)
			switch key {
			case "offset":
				spec.offset = n
				spec.hasOff = true
			case "bank":
				spec.bank = n
			case "size":
				spec.size = n
			case "vsize":
				spec.vsize = n
			}
		}
	}
	return spec, true
}

func lookupTag(tag, key string) (string, bool) {
	st := reflect.StructTag(tag)
	return st.Lookup(key)
}

// MustInitRegs scans owner's fields for `hwio:"..."` tags and maps each
// tagged *Reg8/*Mem/*Device onto table at its declared offset. Read/write
// callbacks are wired by convention: a field named Foo with rcb/wcb set
// looks for methods ReadFoo(val uint8, peek bool) uint8 and
// WriteFoo(old, val uint8) on owner.
func MustInitRegs(owner interface{}, table *Table) {
	v := reflect.ValueOf(owner)
	if v.Kind() != reflect.Ptr || v.Elem().Kind() != reflect.Struct {
		panic("hwio: MustInitRegs requires a pointer to a struct")
	}
	sv := v.Elem()
	st := sv.Type()

	for i := 0; i < st.NumField(); i++ {
		field := st.Field(i)
		spec, ok := parseTag(string(field.Tag))
		if !ok || !spec.hasOff {
			continue
		}
		fv := sv.Field(i)

		switch fv.Kind() {
		case reflect.Ptr, reflect.Struct:
		default:
			panic(fmt.Sprintf("hwio: field %s has hwio tag but unsupported kind %s", field.Name, fv.Kind()))
		}

		switch ptr := fv.Addr().Interface().(type) {
		case *Reg8:
			wireReg8(owner, field.Name, ptr, spec)
			table.MapReg8(uint16(spec.offset), ptr)
		case *Mem:
			if spec.size != 0 {
				ptr.Data = make([]byte, spec.size)
			}
			if spec.vsize != 0 {
				ptr.VSize = spec.vsize
			}
			if spec.readonly {
				ptr.Flags |= MemFlag8ReadOnly
			}
			table.MapMem(uint32(spec.offset), ptr)
		case *Device:
			wireDevice(owner, field.Name, ptr, spec)
			size := spec.size
			if size == 0 {
				size = 1
			}
			table.MapDevice(uint32(spec.offset), ptr, uint32(size))
		default:
			panic(fmt.Sprintf("hwio: field %s has hwio tag but is not *Reg8/*Mem/*Device", field.Name))
		}
	}
}

func wireReg8(owner interface{}, name string, reg *Reg8, spec tagSpec) {
	reg.Name = name
	if spec.readonly {
		reg.Flags |= ReadOnlyFlag
	}
	if spec.writeonly {
		reg.Flags |= WriteOnlyFlag
	}
	ov := reflect.ValueOf(owner)
	if spec.rcb {
		m := ov.MethodByName("Read" + name)
		if !m.IsValid() {
			panic(fmt.Sprintf("hwio: %s has rcb but no Read%s method", name, name))
		}
		reg.ReadCb = func(val uint8, peek bool) uint8 {
			out := m.Call([]reflect.Value{reflect.ValueOf(val), reflect.ValueOf(peek)})
			return uint8(out[0].Uint())
		}
	}
	if spec.wcb {
		m := ov.MethodByName("Write" + name)
		if !m.IsValid() {
			panic(fmt.Sprintf("hwio: %s has wcb but no Write%s method", name, name))
		}
		reg.WriteCb = func(old, val uint8) {
			m.Call([]reflect.Value{reflect.ValueOf(old), reflect.ValueOf(val)})
		}
	}
}

func wireDevice(owner interface{}, name string, dev *Device, spec tagSpec) {
	dev.Name = name
	ov := reflect.ValueOf(owner)
	if rm := ov.MethodByName("Read" + name); rm.IsValid() {
		dev.ReadCb = func(addr uint16, peek bool) uint8 {
			out := rm.Call([]reflect.Value{reflect.ValueOf(addr), reflect.ValueOf(peek)})
			return uint8(out[0].Uint())
		}
	}
	if wm := ov.MethodByName("Write" + name); wm.IsValid() {
		dev.WriteCb = func(addr uint16, val uint8) {
			wm.Call([]reflect.Value{reflect.ValueOf(addr), reflect.ValueOf(val)})
		}
	}
}
