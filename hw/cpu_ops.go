package hw

// opcodeTable and cbTable are array-indexed function-pointer dispatch
// tables built once at init time, per the decomposed-opcode approach: the
// regular blocks (register loads, ALU-against-A, increment/decrement,
// rotates/shifts/bit-ops) are generated by looping over the 8-register
// index encoding (0=B,1=C,2=D,3=E,4=H,5=L,6=(HL),7=A); the irregular
// remainder (control flow, stack ops, misc) is assigned individually.
var opcodeTable [256]func(*CPU) int
var cbTable [256]func(*CPU) int

func getR8(c *CPU, idx uint8) uint8 {
	switch idx {
	case 0:
		return c.B
	case 1:
		return c.C
	case 2:
		return c.D
	case 3:
		return c.E
	case 4:
		return c.H
	case 5:
		return c.L
	case 6:
		return c.read8(c.hl())
	default:
		return c.A
	}
}

func setR8(c *CPU, idx uint8, v uint8) {
	switch idx {
	case 0:
		c.B = v
	case 1:
		c.C = v
	case 2:
		c.D = v
	case 3:
		c.E = v
	case 4:
		c.H = v
	case 5:
		c.L = v
	case 6:
		c.write8(c.hl(), v)
	default:
		c.A = v
	}
}

// reg16 group used by LD rr,d16 / INC rr / DEC rr / ADD HL,rr (0=BC,1=DE,2=HL,3=SP).
func getR16(c *CPU, idx uint8) uint16 {
	switch idx {
	case 0:
		return c.bc()
	case 1:
		return c.de()
	case 2:
		return c.hl()
	default:
		return c.SP
	}
}

func setR16(c *CPU, idx uint8, v uint16) {
	switch idx {
	case 0:
		c.setBC(v)
	case 1:
		c.setDE(v)
	case 2:
		c.setHL(v)
	default:
		c.SP = v
	}
}

// stack-group used by PUSH/POP (0=BC,1=DE,2=HL,3=AF).
func getR16Stack(c *CPU, idx uint8) uint16 {
	if idx == 3 {
		return c.af()
	}
	return getR16(c, idx)
}

func setR16Stack(c *CPU, idx uint8, v uint16) {
	if idx == 3 {
		c.setAF(v)
		return
	}
	setR16(c, idx, v)
}

func signExtend(v uint8) int16 { return int16(int8(v)) }

func init() {
	buildMainOpcodes()
	buildCBOpcodes()
}

func buildMainOpcodes() {
	// 0x40-0x7F: LD r,r' (0x76 is HALT, handled after the loop overrides it).
	for dst := uint8(0); dst < 8; dst++ {
		for src := uint8(0); src < 8; src++ {
			op := 0x40 + dst*8 + src
			d, s := dst, src
			cycles := 4
			if d == 6 || s == 6 {
				cycles = 8
			}
			opcodeTable[op] = func(c *CPU) int {
				setR8(c, d, getR8(c, s))
				return cycles
			}
		}
	}
	opcodeTable[0x76] = func(c *CPU) int { c.Halted = true; return 4 }

	// 0x80-0xBF: ALU A,r (ADD,ADC,SUB,SBC,AND,XOR,OR,CP).
	aluOps := [8]func(*CPU, uint8){
		aluADD, aluADC, aluSUB, aluSBC, aluAND, aluXOR, aluOR, aluCP,
	}
	for i := uint8(0); i < 8; i++ {
		for src := uint8(0); src < 8; src++ {
			op := 0x80 + i*8 + src
			fn, s := aluOps[i], src
			cycles := 4
			if s == 6 {
				cycles = 8
			}
			opcodeTable[op] = func(c *CPU) int {
				fn(c, getR8(c, s))
				return cycles
			}
		}
	}

	// ALU A,d8 immediates at 0xC6,0xCE,0xD6,0xDE,0xE6,0xEE,0xF6,0xFE.
	immOps := [8]uint8{0xC6, 0xCE, 0xD6, 0xDE, 0xE6, 0xEE, 0xF6, 0xFE}
	for i, op := range immOps {
		fn := aluOps[i]
		opcodeTable[op] = func(c *CPU) int {
			fn(c, c.fetch8())
			return 8
		}
	}

	// LD r,d8 at 0x06,0x0E,0x16,0x1E,0x26,0x2E,0x36,0x3E (dst order B,C,D,E,H,L,(HL),A).
	ldImm := [8]uint8{0x06, 0x0E, 0x16, 0x1E, 0x26, 0x2E, 0x36, 0x3E}
	for dst, op := range ldImm {
		d := uint8(dst)
		cycles := 8
		if d == 6 {
			cycles = 12
		}
		opcodeTable[op] = func(c *CPU) int {
			v := c.fetch8()
			setR8(c, d, v)
			return cycles
		}
	}

	// INC r / DEC r at 0x04+8n / 0x05+8n.
	for r := uint8(0); r < 8; r++ {
		reg := r
		incOp := 0x04 + r*8
		decOp := 0x05 + r*8
		cycles := 4
		if reg == 6 {
			cycles = 12
		}
		opcodeTable[incOp] = func(c *CPU) int {
			v := getR8(c, reg)
			res := v + 1
			setR8(c, reg, res)
			c.setFlag(FlagZ, res == 0)
			c.setFlag(FlagN, false)
			c.setFlag(FlagH, v&0x0F == 0x0F)
			return cycles
		}
		opcodeTable[decOp] = func(c *CPU) int {
			v := getR8(c, reg)
			res := v - 1
			setR8(c, reg, res)
			c.setFlag(FlagZ, res == 0)
			c.setFlag(FlagN, true)
			c.setFlag(FlagH, v&0x0F == 0x00)
			return cycles
		}
	}

	// 16-bit register-pair block: LD rr,d16 / INC rr / DEC rr / ADD HL,rr.
	for i := uint8(0); i < 4; i++ {
		idx := i
		opcodeTable[0x01+i*0x10] = func(c *CPU) int {
			setR16(c, idx, c.fetch16())
			return 12
		}
		opcodeTable[0x03+i*0x10] = func(c *CPU) int {
			setR16(c, idx, getR16(c, idx)+1)
			return 8
		}
		opcodeTable[0x0B+i*0x10] = func(c *CPU) int {
			setR16(c, idx, getR16(c, idx)-1)
			return 8
		}
		opcodeTable[0x09+i*0x10] = func(c *CPU) int {
			hl := c.hl()
			rr := getR16(c, idx)
			res := uint32(hl) + uint32(rr)
			c.setFlag(FlagN, false)
			c.setFlag(FlagH, (hl&0xFFF)+(rr&0xFFF) > 0xFFF)
			c.setFlag(FlagC, res > 0xFFFF)
			c.setHL(uint16(res))
			return 8
		}
	}

	// PUSH/POP, stack-group order BC,DE,HL,AF.
	for i := uint8(0); i < 4; i++ {
		idx := i
		opcodeTable[0xC1+i*0x10] = func(c *CPU) int {
			setR16Stack(c, idx, c.pop16())
			return 12
		}
		opcodeTable[0xC5+i*0x10] = func(c *CPU) int {
			c.push16(getR16Stack(c, idx))
			return 16
		}
	}

	buildLoadsAndMisc()
	buildControlFlow()
	buildRotateShiftA()
}

func buildLoadsAndMisc() {
	opcodeTable[0x00] = func(c *CPU) int { return 4 }

	opcodeTable[0x02] = func(c *CPU) int { c.write8(c.bc(), c.A); return 8 }
	opcodeTable[0x12] = func(c *CPU) int { c.write8(c.de(), c.A); return 8 }
	opcodeTable[0x0A] = func(c *CPU) int { c.A = c.read8(c.bc()); return 8 }
	opcodeTable[0x1A] = func(c *CPU) int { c.A = c.read8(c.de()); return 8 }

	opcodeTable[0x22] = func(c *CPU) int { // LD (HL+),A
		c.write8(c.hl(), c.A)
		c.setHL(c.hl() + 1)
		return 8
	}
	opcodeTable[0x2A] = func(c *CPU) int { // LD A,(HL+)
		c.A = c.read8(c.hl())
		c.setHL(c.hl() + 1)
		return 8
	}
	opcodeTable[0x32] = func(c *CPU) int { // LD (HL-),A
		c.write8(c.hl(), c.A)
		c.setHL(c.hl() - 1)
		return 8
	}
	opcodeTable[0x3A] = func(c *CPU) int { // LD A,(HL-)
		c.A = c.read8(c.hl())
		c.setHL(c.hl() - 1)
		return 8
	}

	opcodeTable[0x08] = func(c *CPU) int { // LD (a16),SP
		addr := c.fetch16()
		c.write8(addr, uint8(c.SP))
		c.write8(addr+1, uint8(c.SP>>8))
		return 20
	}
	opcodeTable[0xF9] = func(c *CPU) int { c.SP = c.hl(); return 8 } // LD SP,HL

	opcodeTable[0xE0] = func(c *CPU) int { // LDH (a8),A
		addr := 0xFF00 + uint16(c.fetch8())
		c.write8(addr, c.A)
		return 12
	}
	opcodeTable[0xF0] = func(c *CPU) int { // LDH A,(a8)
		addr := 0xFF00 + uint16(c.fetch8())
		c.A = c.read8(addr)
		return 12
	}
	opcodeTable[0xE2] = func(c *CPU) int { c.write8(0xFF00+uint16(c.C), c.A); return 8 } // LD (C),A
	opcodeTable[0xF2] = func(c *CPU) int { c.A = c.read8(0xFF00 + uint16(c.C)); return 8 } // LD A,(C)
	opcodeTable[0xEA] = func(c *CPU) int { c.write8(c.fetch16(), c.A); return 16 }          // LD (a16),A
	opcodeTable[0xFA] = func(c *CPU) int { c.A = c.read8(c.fetch16()); return 16 }          // LD A,(a16)

	opcodeTable[0xF8] = func(c *CPU) int { // LD HL,SP+e8
		e := signExtend(c.fetch8())
		sp := c.SP
		res := uint16(int32(sp) + int32(e))
		c.setFlag(FlagZ, false)
		c.setFlag(FlagN, false)
		c.setFlag(FlagH, (sp&0xF)+(uint16(uint8(e))&0xF) > 0xF)
		c.setFlag(FlagC, (sp&0xFF)+(uint16(uint8(e))&0xFF) > 0xFF)
		c.setHL(res)
		return 12
	}
	opcodeTable[0xE8] = func(c *CPU) int { // ADD SP,e8
		e := signExtend(c.fetch8())
		sp := c.SP
		res := uint16(int32(sp) + int32(e))
		c.setFlag(FlagZ, false)
		c.setFlag(FlagN, false)
		c.setFlag(FlagH, (sp&0xF)+(uint16(uint8(e))&0xF) > 0xF)
		c.setFlag(FlagC, (sp&0xFF)+(uint16(uint8(e))&0xFF) > 0xFF)
		c.SP = res
		return 16
	}

	opcodeTable[0x27] = func(c *CPU) int { daa(c); return 4 }
	opcodeTable[0x2F] = func(c *CPU) int { // CPL
		c.A = ^c.A
		c.setFlag(FlagN, true)
		c.setFlag(FlagH, true)
		return 4
	}
	opcodeTable[0x37] = func(c *CPU) int { // SCF
		c.setFlag(FlagN, false)
		c.setFlag(FlagH, false)
		c.setFlag(FlagC, true)
		return 4
	}
	opcodeTable[0x3F] = func(c *CPU) int { // CCF
		c.setFlag(FlagN, false)
		c.setFlag(FlagH, false)
		c.setFlag(FlagC, !c.flag(FlagC))
		return 4
	}

	opcodeTable[0xF3] = func(c *CPU) int { c.IME = false; c.IMEPending = false; return 4 } // DI
	opcodeTable[0xFB] = func(c *CPU) int { c.IMEPending = true; return 4 }                  // EI
	opcodeTable[0x10] = func(c *CPU) int { // STOP
		c.fetch8() // discard the second byte
		c.Stopped = true
		c.Halted = true
		return 4
	}

	// Undefined opcodes: consume 4 cycles, do nothing.
	for _, op := range []uint8{0xD3, 0xDB, 0xDD, 0xE3, 0xE4, 0xEB, 0xEC, 0xED, 0xF4, 0xFC, 0xFD} {
		opcodeTable[op] = func(c *CPU) int { return 4 }
	}
}

func buildRotateShiftA() {
	opcodeTable[0x07] = func(c *CPU) int { // RLCA
		carry := c.A >> 7
		c.A = c.A<<1 | carry
		c.setFlag(FlagZ, false)
		c.setFlag(FlagN, false)
		c.setFlag(FlagH, false)
		c.setFlag(FlagC, carry != 0)
		return 4
	}
	opcodeTable[0x0F] = func(c *CPU) int { // RRCA
		carry := c.A & 1
		c.A = c.A>>1 | carry<<7
		c.setFlag(FlagZ, false)
		c.setFlag(FlagN, false)
		c.setFlag(FlagH, false)
		c.setFlag(FlagC, carry != 0)
		return 4
	}
	opcodeTable[0x17] = func(c *CPU) int { // RLA
		oldCarry := b2u8(c.flag(FlagC))
		carry := c.A >> 7
		c.A = c.A<<1 | oldCarry
		c.setFlag(FlagZ, false)
		c.setFlag(FlagN, false)
		c.setFlag(FlagH, false)
		c.setFlag(FlagC, carry != 0)
		return 4
	}
	opcodeTable[0x1F] = func(c *CPU) int { // RRA
		oldCarry := b2u8(c.flag(FlagC))
		carry := c.A & 1
		c.A = c.A>>1 | oldCarry<<7
		c.setFlag(FlagZ, false)
		c.setFlag(FlagN, false)
		c.setFlag(FlagH, false)
		c.setFlag(FlagC, carry != 0)
		return 4
	}
}

func buildControlFlow() {
	condTable := [4]func(*CPU) bool{
		func(c *CPU) bool { return !c.flag(FlagZ) },
		func(c *CPU) bool { return c.flag(FlagZ) },
		func(c *CPU) bool { return !c.flag(FlagC) },
		func(c *CPU) bool { return c.flag(FlagC) },
	}

	// JR e8 / JR cc,e8
	opcodeTable[0x18] = func(c *CPU) int {
		e := signExtend(c.fetch8())
		c.PC = uint16(int32(c.PC) + int32(e))
		return 12
	}
	jrCC := [4]uint8{0x20, 0x28, 0x30, 0x38}
	for i, op := range jrCC {
		cond := condTable[i]
		opcodeTable[op] = func(c *CPU) int {
			e := signExtend(c.fetch8())
			if cond(c) {
				c.PC = uint16(int32(c.PC) + int32(e))
				return 12
			}
			return 8
		}
	}

	// JP a16 / JP cc,a16 / JP HL
	opcodeTable[0xC3] = func(c *CPU) int { c.PC = c.fetch16(); return 16 }
	opcodeTable[0xE9] = func(c *CPU) int { c.PC = c.hl(); return 4 }
	jpCC := [4]uint8{0xC2, 0xCA, 0xD2, 0xDA}
	for i, op := range jpCC {
		cond := condTable[i]
		opcodeTable[op] = func(c *CPU) int {
			addr := c.fetch16()
			if cond(c) {
				c.PC = addr
				return 16
			}
			return 12
		}
	}

	// CALL a16 / CALL cc,a16
	opcodeTable[0xCD] = func(c *CPU) int {
		addr := c.fetch16()
		c.push16(c.PC)
		c.PC = addr
		return 24
	}
	callCC := [4]uint8{0xC4, 0xCC, 0xD4, 0xDC}
	for i, op := range callCC {
		cond := condTable[i]
		opcodeTable[op] = func(c *CPU) int {
			addr := c.fetch16()
			if cond(c) {
				c.push16(c.PC)
				c.PC = addr
				return 24
			}
			return 12
		}
	}

	// RET / RET cc / RETI
	opcodeTable[0xC9] = func(c *CPU) int { c.PC = c.pop16(); return 16 }
	opcodeTable[0xD9] = func(c *CPU) int { c.PC = c.pop16(); c.IME = true; return 16 }
	retCC := [4]uint8{0xC0, 0xC8, 0xD0, 0xD8}
	for i, op := range retCC {
		cond := condTable[i]
		opcodeTable[op] = func(c *CPU) int {
			if cond(c) {
				c.PC = c.pop16()
				return 20
			}
			return 8
		}
	}

	// RST n
	for i := uint8(0); i < 8; i++ {
		addr := uint16(i) * 8
		opcodeTable[0xC7+i*8] = func(c *CPU) int {
			c.push16(c.PC)
			c.PC = addr
			return 16
		}
	}

	// CB prefix.
	opcodeTable[0xCB] = func(c *CPU) int {
		op := c.fetch8()
		return cbTable[op](c)
	}
}

func buildCBOpcodes() {
	// Rotate/shift group, opcode = op<<3 | operand, op in 0..7:
	// 0 RLC, 1 RRC, 2 RL, 3 RR, 4 SLA, 5 SRA, 6 SWAP, 7 SRL.
	shiftFns := [8]func(*CPU, uint8) uint8{
		cbRLC, cbRRC, cbRL, cbRR, cbSLA, cbSRA, cbSWAP, cbSRL,
	}
	for op := uint8(0); op < 8; op++ {
		for operand := uint8(0); operand < 8; operand++ {
			opcode := op<<3 | operand
			fn, o := shiftFns[op], operand
			cycles := 8
			if o == 6 {
				cycles = 16
			}
			cbTable[opcode] = func(c *CPU) int {
				v := getR8(c, o)
				setR8(c, o, fn(c, v))
				return cycles
			}
		}
	}

	// BIT b,r: opcodes 0x40-0x7F, b = (opcode>>3)&7, operand = opcode&7.
	for b := uint8(0); b < 8; b++ {
		for operand := uint8(0); operand < 8; operand++ {
			opcode := 0x40 + b*8 + operand
			bit, o := b, operand
			cycles := 8
			if o == 6 {
				cycles = 12
			}
			cbTable[opcode] = func(c *CPU) int {
				v := getR8(c, o)
				c.setFlag(FlagZ, v&(1<<bit) == 0)
				c.setFlag(FlagN, false)
				c.setFlag(FlagH, true)
				return cycles
			}
		}
	}

	// RES b,r: opcodes 0x80-0xBF.
	for b := uint8(0); b < 8; b++ {
		for operand := uint8(0); operand < 8; operand++ {
			opcode := 0x80 + b*8 + operand
			bit, o := b, operand
			cycles := 8
			if o == 6 {
				cycles = 16
			}
			cbTable[opcode] = func(c *CPU) int {
				v := getR8(c, o)
				setR8(c, o, v&^(1<<bit))
				return cycles
			}
		}
	}

	// SET b,r: opcodes 0xC0-0xFF.
	for b := uint8(0); b < 8; b++ {
		for operand := uint8(0); operand < 8; operand++ {
			opcode := 0xC0 + b*8 + operand
			bit, o := b, operand
			cycles := 8
			if o == 6 {
				cycles = 16
			}
			cbTable[opcode] = func(c *CPU) int {
				v := getR8(c, o)
				setR8(c, o, v|(1<<bit))
				return cycles
			}
		}
	}
}

func cbRLC(c *CPU, v uint8) uint8 {
	carry := v >> 7
	res := v<<1 | carry
	c.setFlag(FlagZ, res == 0)
	c.setFlag(FlagN, false)
	c.setFlag(FlagH, false)
	c.setFlag(FlagC, carry != 0)
	return res
}

func cbRRC(c *CPU, v uint8) uint8 {
	carry := v & 1
	res := v>>1 | carry<<7
	c.setFlag(FlagZ, res == 0)
	c.setFlag(FlagN, false)
	c.setFlag(FlagH, false)
	c.setFlag(FlagC, carry != 0)
	return res
}

func cbRL(c *CPU, v uint8) uint8 {
	oldCarry := b2u8(c.flag(FlagC))
	carry := v >> 7
	res := v<<1 | oldCarry
	c.setFlag(FlagZ, res == 0)
	c.setFlag(FlagN, false)
	c.setFlag(FlagH, false)
	c.setFlag(FlagC, carry != 0)
	return res
}

func cbRR(c *CPU, v uint8) uint8 {
	oldCarry := b2u8(c.flag(FlagC))
	carry := v & 1
	res := v>>1 | oldCarry<<7
	c.setFlag(FlagZ, res == 0)
	c.setFlag(FlagN, false)
	c.setFlag(FlagH, false)
	c.setFlag(FlagC, carry != 0)
	return res
}

func cbSLA(c *CPU, v uint8) uint8 {
	carry := v >> 7
	res := v << 1
	c.setFlag(FlagZ, res == 0)
	c.setFlag(FlagN, false)
	c.setFlag(FlagH, false)
	c.setFlag(FlagC, carry != 0)
	return res
}

func cbSRA(c *CPU, v uint8) uint8 {
	carry := v & 1
	res := uint8(int8(v) >> 1)
	c.setFlag(FlagZ, res == 0)
	c.setFlag(FlagN, false)
	c.setFlag(FlagH, false)
	c.setFlag(FlagC, carry != 0)
	return res
}

func cbSWAP(c *CPU, v uint8) uint8 {
	res := v<<4 | v>>4
	c.setFlag(FlagZ, res == 0)
	c.setFlag(FlagN, false)
	c.setFlag(FlagH, false)
	c.setFlag(FlagC, false)
	return res
}

func cbSRL(c *CPU, v uint8) uint8 {
	carry := v & 1
	res := v >> 1
	c.setFlag(FlagZ, res == 0)
	c.setFlag(FlagN, false)
	c.setFlag(FlagH, false)
	c.setFlag(FlagC, carry != 0)
	return res
}

func aluADD(c *CPU, v uint8) {
	a := c.A
	res := uint16(a) + uint16(v)
	c.A = uint8(res)
	c.setFlag(FlagZ, c.A == 0)
	c.setFlag(FlagN, false)
	c.setFlag(FlagH, (a&0xF)+(v&0xF) > 0xF)
	c.setFlag(FlagC, res > 0xFF)
}

func aluADC(c *CPU, v uint8) {
	a := c.A
	carry := b2u8(c.flag(FlagC))
	res := uint16(a) + uint16(v) + uint16(carry)
	c.A = uint8(res)
	c.setFlag(FlagZ, c.A == 0)
	c.setFlag(FlagN, false)
	c.setFlag(FlagH, (a&0xF)+(v&0xF)+carry > 0xF)
	c.setFlag(FlagC, res > 0xFF)
}

func aluSUB(c *CPU, v uint8) {
	a := c.A
	res := a - v
	c.A = res
	c.setFlag(FlagZ, res == 0)
	c.setFlag(FlagN, true)
	c.setFlag(FlagH, a&0xF < v&0xF)
	c.setFlag(FlagC, a < v)
}

func aluSBC(c *CPU, v uint8) {
	a := c.A
	carry := b2u8(c.flag(FlagC))
	res16 := int16(a) - int16(v) - int16(carry)
	res := uint8(res16)
	c.A = res
	c.setFlag(FlagZ, res == 0)
	c.setFlag(FlagN, true)
	c.setFlag(FlagH, int16(a&0xF)-int16(v&0xF)-int16(carry) < 0)
	c.setFlag(FlagC, res16 < 0)
}

func aluAND(c *CPU, v uint8) {
	c.A &= v
	c.setFlag(FlagZ, c.A == 0)
	c.setFlag(FlagN, false)
	c.setFlag(FlagH, true)
	c.setFlag(FlagC, false)
}

func aluXOR(c *CPU, v uint8) {
	c.A ^= v
	c.setFlag(FlagZ, c.A == 0)
	c.setFlag(FlagN, false)
	c.setFlag(FlagH, false)
	c.setFlag(FlagC, false)
}

func aluOR(c *CPU, v uint8) {
	c.A |= v
	c.setFlag(FlagZ, c.A == 0)
	c.setFlag(FlagN, false)
	c.setFlag(FlagH, false)
	c.setFlag(FlagC, false)
}

func aluCP(c *CPU, v uint8) {
	a := c.A
	res := a - v
	c.setFlag(FlagZ, res == 0)
	c.setFlag(FlagN, true)
	c.setFlag(FlagH, a&0xF < v&0xF)
	c.setFlag(FlagC, a < v)
}

// daa implements the post-BCD correction against the canonical decision
// table: check N/H/C and the current nibble values, apply 0x06 and/or
// 0x60 independently.
func daa(c *CPU) {
	a := c.A
	correction := uint8(0)
	setC := false

	if c.flag(FlagN) {
		if c.flag(FlagH) {
			correction += 0x06
		}
		if c.flag(FlagC) {
			correction += 0x60
		}
		a -= correction
		setC = c.flag(FlagC)
	} else {
		if c.flag(FlagH) || a&0x0F > 0x09 {
			correction += 0x06
		}
		if c.flag(FlagC) || a > 0x99 {
			correction += 0x60
			setC = true
		}
		a += correction
	}

	c.A = a
	c.setFlag(FlagZ, a == 0)
	c.setFlag(FlagH, false)
	c.setFlag(FlagC, setC)
}
