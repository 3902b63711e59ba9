package log

import (
	"fmt"

	"gopkg.in/Sirupsen/logrus.v0"
)

// EntryZ is a small fluent builder over a logrus.Entry, letting call sites
// in hot paths (CPU step, PPU scanline) build structured fields without
// constructing a map literal by hand:
//
//	log.ModCPU.DebugZ("exec").Hex16("pc", cpu.PC).Uint8("op", op).End()
type EntryZ struct {
	mod    Module
	level  logrus.Level
	msg    string
	fields logrus.Fields
	skip   bool
}

func (m Module) newZ(level logrus.Level, msg string) *EntryZ {
	if !m.isEnabled() {
		return &EntryZ{skip: true}
	}
	return &EntryZ{
		mod:    m,
		level:  level,
		msg:    msg,
		fields: logrus.Fields{"mod": m.String()},
	}
}

func (m Module) DebugZ(msg string) *EntryZ { return m.newZ(logrus.DebugLevel, msg) }
func (m Module) InfoZ(msg string) *EntryZ  { return m.newZ(logrus.InfoLevel, msg) }
func (m Module) WarnZ(msg string) *EntryZ  { return m.newZ(logrus.WarnLevel, msg) }
func (m Module) ErrorZ(msg string) *EntryZ { return m.newZ(logrus.ErrorLevel, msg) }

func (e *EntryZ) Hex16(key string, v uint16) *EntryZ {
	if e.skip {
		return e
	}
	e.fields[key] = fmt.Sprintf("0x%04X", v)
	return e
}

func (e *EntryZ) Hex8(key string, v uint8) *EntryZ {
	if e.skip {
		return e
	}
	e.fields[key] = fmt.Sprintf("0x%02X", v)
	return e
}

func (e *EntryZ) Uint8(key string, v uint8) *EntryZ {
	if e.skip {
		return e
	}
	e.fields[key] = v
	return e
}

func (e *EntryZ) Uint16(key string, v uint16) *EntryZ {
	if e.skip {
		return e
	}
	e.fields[key] = v
	return e
}

func (e *EntryZ) Int(key string, v int) *EntryZ {
	if e.skip {
		return e
	}
	e.fields[key] = v
	return e
}

func (e *EntryZ) Bool(key string, v bool) *EntryZ {
	if e.skip {
		return e
	}
	e.fields[key] = v
	return e
}

func (e *EntryZ) String(key string, v string) *EntryZ {
	if e.skip {
		return e
	}
	e.fields[key] = v
	return e
}

func (e *EntryZ) Err(err error) *EntryZ {
	if e.skip || err == nil {
		return e
	}
	e.fields["err"] = err.Error()
	return e
}

// End flushes the entry to the backend logger. No-op if the owning module
// was masked out when the entry was created.
func (e *EntryZ) End() {
	if e.skip {
		return
	}
	entry := backend.WithFields(e.fields)
	switch e.level {
	case logrus.DebugLevel:
		entry.Debug(e.msg)
	case logrus.InfoLevel:
		entry.Info(e.msg)
	case logrus.WarnLevel:
		entry.Warn(e.msg)
	case logrus.ErrorLevel:
		entry.Error(e.msg)
	default:
		entry.Debug(e.msg)
	}
}
