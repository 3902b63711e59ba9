// Package cart loads a cartridge ROM dump and decodes its header: title,
// MBC type, and external RAM size. The ROM size is taken from the image
// length, not from the header.
package cart

import (
	"fmt"
	"io"
	"os"
)

// MBC identifies the bank controller embedded in a cartridge.
type MBC int

const (
	MBCNone MBC = iota
	MBC1
	MBC3
	MBC5
)

func (m MBC) String() string {
	switch m {
	case MBCNone:
		return "none"
	case MBC1:
		return "MBC1"
	case MBC3:
		return "MBC3"
	case MBC5:
		return "MBC5"
	default:
		return "?"
	}
}

// ramSizes maps header byte 0x149 to external RAM size in bytes.
var ramSizes = map[uint8]int{
	0: 0,
	1: 0, // unused code, some dumps use it for 2KiB; treated as 0 here
	2: 8 * 1024,
	3: 32 * 1024,
	4: 128 * 1024,
	5: 64 * 1024,
}

// Cart is a loaded cartridge: raw ROM bytes, decoded header fields, and a
// freshly zeroed external RAM buffer sized per the header.
type Cart struct {
	ROM []byte
	RAM []byte

	Title   string
	MBCType MBC
	RAMSize int
}

// Open reads path from disk and decodes it as a cartridge image.
func Open(path string) (*Cart, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	c := new(Cart)
	if _, err := c.ReadFrom(f); err != nil {
		return nil, err
	}
	return c, nil
}

// ReadFrom implements io.ReaderFrom.
func (c *Cart) ReadFrom(r io.Reader) (int64, error) {
	buf, err := io.ReadAll(r)
	if err != nil {
		return 0, err
	}
	if err := c.decode(buf); err != nil {
		return 0, err
	}
	return int64(len(buf)), nil
}

const headerSize = 0x150

func (c *Cart) decode(buf []byte) error {
	if len(buf) < headerSize {
		return fmt.Errorf("cart: image too small to contain a header (%d bytes)", len(buf))
	}
	if len(buf)%(16*1024) != 0 {
		return fmt.Errorf("cart: image size %d is not a multiple of 16 KiB", len(buf))
	}

	c.ROM = buf
	c.Title = decodeTitle(buf[0x134:0x144])
	c.MBCType = decodeMBC(buf[0x147])

	ramCode := buf[0x149]
	size, ok := ramSizes[ramCode]
	if !ok {
		return fmt.Errorf("cart: unrecognized RAM size code 0x%02X", ramCode)
	}
	c.RAMSize = size
	c.RAM = make([]byte, size)
	return nil
}

func decodeTitle(raw []byte) string {
	end := len(raw)
	for i, b := range raw {
		if b == 0 {
			end = i
			break
		}
	}
	return string(raw[:end])
}

// decodeMBC maps header byte 0x147 to an MBC family. Any code not in the
// recognized ranges falls back to MBC1, per the observed behavior of most
// unofficial dumps that use vendor-specific extensions of the MBC1 protocol.
func decodeMBC(code uint8) MBC {
	switch {
	case code == 0x00:
		return MBCNone
	case code >= 0x01 && code <= 0x03:
		return MBC1
	case code >= 0x0F && code <= 0x13:
		return MBC3
	case code >= 0x19 && code <= 0x1E:
		return MBC5
	default:
		return MBC1
	}
}

// ROMBanks returns the number of 16 KiB ROM banks in the image.
func (c *Cart) ROMBanks() int {
	return len(c.ROM) / (16 * 1024)
}
