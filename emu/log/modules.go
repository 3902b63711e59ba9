// Package log provides a per-module, level-gated structured logger built
// on top of logrus. Each hardware component logs through its own Module so
// verbosity can be tuned independently (e.g. enable APU tracing without
// drowning in PPU scanline spam).
package log

import (
	"sort"
	"strconv"
	"strings"

	"gopkg.in/Sirupsen/logrus.v0"
)

// Module identifies a logging source (CPU, PPU, APU, Bus, Cart, Timer, ...).
type Module uint32

const (
	ModCPU Module = 1 << iota
	ModPPU
	ModAPU
	ModBus
	ModCart
	ModTimer
	ModDMA
	ModJoypad
	ModEmu

	ModNone Module = 0
	ModAll  Module = ^Module(0)
)

var moduleNames = map[Module]string{
	ModCPU:    "cpu",
	ModPPU:    "ppu",
	ModAPU:    "apu",
	ModBus:    "bus",
	ModCart:   "cart",
	ModTimer:  "timer",
	ModDMA:    "dma",
	ModJoypad: "joypad",
	ModEmu:    "emu",
}

func (m Module) String() string {
	if name, ok := moduleNames[m]; ok {
		return name
	}
	return "?"
}

// Mask is a set of enabled modules, as parsed from a CLI flag like
// "cpu,ppu,apu".
type Mask Module

var nameToModule = func() map[string]Module {
	out := make(map[string]Module, len(moduleNames))
	for mod, name := range moduleNames {
		out[name] = mod
	}
	return out
}()

// ParseMask decodes a comma-separated module list into a Mask. "all" and ""
// both enable everything; that's the most useful default for a CLI flag
// that's often left unset.
func ParseMask(s string) (Mask, error) {
	s = strings.TrimSpace(s)
	if s == "" || s == "all" {
		return Mask(ModAll), nil
	}
	var mask Mask
	for _, name := range strings.Split(s, ",") {
		name = strings.TrimSpace(strings.ToLower(name))
		if name == "" {
			continue
		}
		mod, ok := nameToModule[name]
		if !ok {
			return 0, &UnknownModuleError{Name: name}
		}
		mask |= Mask(mod)
	}
	return mask, nil
}

// ModuleNames returns every valid module name, sorted, for help text.
func ModuleNames() []string {
	names := make([]string, 0, len(nameToModule))
	for name := range nameToModule {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// UnknownModuleError is returned by ParseMask for an unrecognized module name.
type UnknownModuleError struct{ Name string }

func (e *UnknownModuleError) Error() string {
	return "log: unknown module " + strconv.Quote(e.Name)
}

var backend = logrus.New()

// SetLevel adjusts the global logrus level (Debug/Info/Warn/Error).
func SetLevel(level logrus.Level) {
	backend.Level = level
}

// enabled tracks which modules are currently allowed to emit log lines.
var enabled = Mask(ModAll)

// SetMask restricts logging to the given module set.
func SetMask(m Mask) { enabled = m }

func (m Module) isEnabled() bool {
	return Module(enabled)&m != 0
}
