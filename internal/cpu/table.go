package cpu

// hexInstructions and bcdInstructions are built once at package init time
// and never mutated afterward. They differ only in the nine ADC and nine
// SBC opcode slots; every other slot is shared logic, just duplicated into
// both arrays so dispatch is a single flat lookup with no branch beyond the
// decimal-mode table selection in CPU.currentTable.
var hexInstructions [256]instruction
var bcdInstructions [256]instruction

func init() {
	fillImplieds(&hexInstructions)
	def := defFn(&hexInstructions)

	// Load/store.
	def(0xA9, "LDA", ModeImmediate, 2, false, (*CPU).lda)
	def(0xA5, "LDA", ModeZeroPage, 3, false, (*CPU).lda)
	def(0xB5, "LDA", ModeZeroPageX, 4, false, (*CPU).lda)
	def(0xAD, "LDA", ModeAbsolute, 4, false, (*CPU).lda)
	def(0xBD, "LDA", ModeAbsoluteX, 4, true, (*CPU).lda)
	def(0xB9, "LDA", ModeAbsoluteY, 4, true, (*CPU).lda)
	def(0xA1, "LDA", ModeIndexedIndirect, 6, false, (*CPU).lda)
	def(0xB1, "LDA", ModeIndirectIndexed, 5, true, (*CPU).lda)
	def(0xB2, "LDA", ModeIndirectZP, 5, false, (*CPU).lda)

	def(0xA2, "LDX", ModeImmediate, 2, false, (*CPU).ldx)
	def(0xA6, "LDX", ModeZeroPage, 3, false, (*CPU).ldx)
	def(0xB6, "LDX", ModeZeroPageY, 4, false, (*CPU).ldx)
	def(0xAE, "LDX", ModeAbsolute, 4, false, (*CPU).ldx)
	def(0xBE, "LDX", ModeAbsoluteY, 4, true, (*CPU).ldx)

	def(0xA0, "LDY", ModeImmediate, 2, false, (*CPU).ldy)
	def(0xA4, "LDY", ModeZeroPage, 3, false, (*CPU).ldy)
	def(0xB4, "LDY", ModeZeroPageX, 4, false, (*CPU).ldy)
	def(0xAC, "LDY", ModeAbsolute, 4, false, (*CPU).ldy)
	def(0xBC, "LDY", ModeAbsoluteX, 4, true, (*CPU).ldy)

	def(0x85, "STA", ModeZeroPage, 3, false, (*CPU).sta)
	def(0x95, "STA", ModeZeroPageX, 4, false, (*CPU).sta)
	def(0x8D, "STA", ModeAbsolute, 4, false, (*CPU).sta)
	def(0x9D, "STA", ModeAbsoluteX, 5, false, (*CPU).sta)
	def(0x99, "STA", ModeAbsoluteY, 5, false, (*CPU).sta)
	def(0x81, "STA", ModeIndexedIndirect, 6, false, (*CPU).sta)
	def(0x91, "STA", ModeIndirectIndexed, 6, false, (*CPU).sta)
	def(0x92, "STA", ModeIndirectZP, 5, false, (*CPU).sta)

	def(0x86, "STX", ModeZeroPage, 3, false, (*CPU).stx)
	def(0x96, "STX", ModeZeroPageY, 4, false, (*CPU).stx)
	def(0x8E, "STX", ModeAbsolute, 4, false, (*CPU).stx)

	def(0x84, "STY", ModeZeroPage, 3, false, (*CPU).sty)
	def(0x94, "STY", ModeZeroPageX, 4, false, (*CPU).sty)
	def(0x8C, "STY", ModeAbsolute, 4, false, (*CPU).sty)

	def(0x64, "STZ", ModeZeroPage, 3, false, (*CPU).stz)
	def(0x74, "STZ", ModeZeroPageX, 4, false, (*CPU).stz)
	def(0x9C, "STZ", ModeAbsolute, 4, false, (*CPU).stz)
	def(0x9E, "STZ", ModeAbsoluteX, 5, false, (*CPU).stz)

	// Arithmetic (hex-mode slots; overwritten in the BCD table below).
	def(0x69, "ADC", ModeImmediate, 2, false, (*CPU).adc)
	def(0x65, "ADC", ModeZeroPage, 3, false, (*CPU).adc)
	def(0x75, "ADC", ModeZeroPageX, 4, false, (*CPU).adc)
	def(0x6D, "ADC", ModeAbsolute, 4, false, (*CPU).adc)
	def(0x7D, "ADC", ModeAbsoluteX, 4, true, (*CPU).adc)
	def(0x79, "ADC", ModeAbsoluteY, 4, true, (*CPU).adc)
	def(0x61, "ADC", ModeIndexedIndirect, 6, false, (*CPU).adc)
	def(0x71, "ADC", ModeIndirectIndexed, 5, true, (*CPU).adc)
	def(0x72, "ADC", ModeIndirectZP, 5, false, (*CPU).adc)

	def(0xE9, "SBC", ModeImmediate, 2, false, (*CPU).sbc)
	def(0xE5, "SBC", ModeZeroPage, 3, false, (*CPU).sbc)
	def(0xF5, "SBC", ModeZeroPageX, 4, false, (*CPU).sbc)
	def(0xED, "SBC", ModeAbsolute, 4, false, (*CPU).sbc)
	def(0xFD, "SBC", ModeAbsoluteX, 4, true, (*CPU).sbc)
	def(0xF9, "SBC", ModeAbsoluteY, 4, true, (*CPU).sbc)
	def(0xE1, "SBC", ModeIndexedIndirect, 6, false, (*CPU).sbc)
	def(0xF1, "SBC", ModeIndirectIndexed, 5, true, (*CPU).sbc)
	def(0xF2, "SBC", ModeIndirectZP, 5, false, (*CPU).sbc)

	// Logical.
	def(0x29, "AND", ModeImmediate, 2, false, (*CPU).and)
	def(0x25, "AND", ModeZeroPage, 3, false, (*CPU).and)
	def(0x35, "AND", ModeZeroPageX, 4, false, (*CPU).and)
	def(0x2D, "AND", ModeAbsolute, 4, false, (*CPU).and)
	def(0x3D, "AND", ModeAbsoluteX, 4, true, (*CPU).and)
	def(0x39, "AND", ModeAbsoluteY, 4, true, (*CPU).and)
	def(0x21, "AND", ModeIndexedIndirect, 6, false, (*CPU).and)
	def(0x31, "AND", ModeIndirectIndexed, 5, true, (*CPU).and)
	def(0x32, "AND", ModeIndirectZP, 5, false, (*CPU).and)

	def(0x09, "ORA", ModeImmediate, 2, false, (*CPU).ora)
	def(0x05, "ORA", ModeZeroPage, 3, false, (*CPU).ora)
	def(0x15, "ORA", ModeZeroPageX, 4, false, (*CPU).ora)
	def(0x0D, "ORA", ModeAbsolute, 4, false, (*CPU).ora)
	def(0x1D, "ORA", ModeAbsoluteX, 4, true, (*CPU).ora)
	def(0x19, "ORA", ModeAbsoluteY, 4, true, (*CPU).ora)
	def(0x01, "ORA", ModeIndexedIndirect, 6, false, (*CPU).ora)
	def(0x11, "ORA", ModeIndirectIndexed, 5, true, (*CPU).ora)
	def(0x12, "ORA", ModeIndirectZP, 5, false, (*CPU).ora)

	def(0x49, "EOR", ModeImmediate, 2, false, (*CPU).eor)
	def(0x45, "EOR", ModeZeroPage, 3, false, (*CPU).eor)
	def(0x55, "EOR", ModeZeroPageX, 4, false, (*CPU).eor)
	def(0x4D, "EOR", ModeAbsolute, 4, false, (*CPU).eor)
	def(0x5D, "EOR", ModeAbsoluteX, 4, true, (*CPU).eor)
	def(0x59, "EOR", ModeAbsoluteY, 4, true, (*CPU).eor)
	def(0x41, "EOR", ModeIndexedIndirect, 6, false, (*CPU).eor)
	def(0x51, "EOR", ModeIndirectIndexed, 5, true, (*CPU).eor)
	def(0x52, "EOR", ModeIndirectZP, 5, false, (*CPU).eor)

	def(0x89, "BIT", ModeImmediate, 2, false, (*CPU).bitImm)
	def(0x24, "BIT", ModeZeroPage, 3, false, (*CPU).bitMem)
	def(0x34, "BIT", ModeZeroPageX, 4, false, (*CPU).bitMem)
	def(0x2C, "BIT", ModeAbsolute, 4, false, (*CPU).bitMem)
	def(0x3C, "BIT", ModeAbsoluteX, 4, true, (*CPU).bitMem)

	def(0x14, "TRB", ModeZeroPage, 5, false, (*CPU).trb)
	def(0x1C, "TRB", ModeAbsolute, 6, false, (*CPU).trb)
	def(0x04, "TSB", ModeZeroPage, 5, false, (*CPU).tsb)
	def(0x0C, "TSB", ModeAbsolute, 6, false, (*CPU).tsb)

	// Shifts/rotates/inc/dec.
	def(0x0A, "ASL", ModeAccumulator, 2, false, (*CPU).aslAcc)
	def(0x06, "ASL", ModeZeroPage, 5, false, (*CPU).aslMem)
	def(0x16, "ASL", ModeZeroPageX, 6, false, (*CPU).aslMem)
	def(0x0E, "ASL", ModeAbsolute, 6, false, (*CPU).aslMem)
	def(0x1E, "ASL", ModeAbsoluteX, 7, false, (*CPU).aslMem)

	def(0x4A, "LSR", ModeAccumulator, 2, false, (*CPU).lsrAcc)
	def(0x46, "LSR", ModeZeroPage, 5, false, (*CPU).lsrMem)
	def(0x56, "LSR", ModeZeroPageX, 6, false, (*CPU).lsrMem)
	def(0x4E, "LSR", ModeAbsolute, 6, false, (*CPU).lsrMem)
	def(0x5E, "LSR", ModeAbsoluteX, 7, false, (*CPU).lsrMem)

	def(0x2A, "ROL", ModeAccumulator, 2, false, (*CPU).rolAcc)
	def(0x26, "ROL", ModeZeroPage, 5, false, (*CPU).rolMem)
	def(0x36, "ROL", ModeZeroPageX, 6, false, (*CPU).rolMem)
	def(0x2E, "ROL", ModeAbsolute, 6, false, (*CPU).rolMem)
	def(0x3E, "ROL", ModeAbsoluteX, 7, false, (*CPU).rolMem)

	def(0x6A, "ROR", ModeAccumulator, 2, false, (*CPU).rorAcc)
	def(0x66, "ROR", ModeZeroPage, 5, false, (*CPU).rorMem)
	def(0x76, "ROR", ModeZeroPageX, 6, false, (*CPU).rorMem)
	def(0x6E, "ROR", ModeAbsolute, 6, false, (*CPU).rorMem)
	def(0x7E, "ROR", ModeAbsoluteX, 7, false, (*CPU).rorMem)

	def(0x1A, "INC", ModeAccumulator, 2, false, (*CPU).incAcc)
	def(0xE6, "INC", ModeZeroPage, 5, false, (*CPU).incMem)
	def(0xF6, "INC", ModeZeroPageX, 6, false, (*CPU).incMem)
	def(0xEE, "INC", ModeAbsolute, 6, false, (*CPU).incMem)
	def(0xFE, "INC", ModeAbsoluteX, 7, false, (*CPU).incMem)

	def(0x3A, "DEC", ModeAccumulator, 2, false, (*CPU).decAcc)
	def(0xC6, "DEC", ModeZeroPage, 5, false, (*CPU).decMem)
	def(0xD6, "DEC", ModeZeroPageX, 6, false, (*CPU).decMem)
	def(0xCE, "DEC", ModeAbsolute, 6, false, (*CPU).decMem)
	def(0xDE, "DEC", ModeAbsoluteX, 7, false, (*CPU).decMem)

	def(0xE8, "INX", ModeImplied, 2, false, (*CPU).inx)
	def(0xC8, "INY", ModeImplied, 2, false, (*CPU).iny)
	def(0xCA, "DEX", ModeImplied, 2, false, (*CPU).dex)
	def(0x88, "DEY", ModeImplied, 2, false, (*CPU).dey)

	// Compares.
	def(0xC9, "CMP", ModeImmediate, 2, false, (*CPU).cmp)
	def(0xC5, "CMP", ModeZeroPage, 3, false, (*CPU).cmp)
	def(0xD5, "CMP", ModeZeroPageX, 4, false, (*CPU).cmp)
	def(0xCD, "CMP", ModeAbsolute, 4, false, (*CPU).cmp)
	def(0xDD, "CMP", ModeAbsoluteX, 4, true, (*CPU).cmp)
	def(0xD9, "CMP", ModeAbsoluteY, 4, true, (*CPU).cmp)
	def(0xC1, "CMP", ModeIndexedIndirect, 6, false, (*CPU).cmp)
	def(0xD1, "CMP", ModeIndirectIndexed, 5, true, (*CPU).cmp)
	def(0xD2, "CMP", ModeIndirectZP, 5, false, (*CPU).cmp)

	def(0xE0, "CPX", ModeImmediate, 2, false, (*CPU).cpx)
	def(0xE4, "CPX", ModeZeroPage, 3, false, (*CPU).cpx)
	def(0xEC, "CPX", ModeAbsolute, 4, false, (*CPU).cpx)

	def(0xC0, "CPY", ModeImmediate, 2, false, (*CPU).cpy)
	def(0xC4, "CPY", ModeZeroPage, 3, false, (*CPU).cpy)
	def(0xCC, "CPY", ModeAbsolute, 4, false, (*CPU).cpy)

	// Transfers.
	def(0xAA, "TAX", ModeImplied, 2, false, (*CPU).tax)
	def(0xA8, "TAY", ModeImplied, 2, false, (*CPU).tay)
	def(0x8A, "TXA", ModeImplied, 2, false, (*CPU).txa)
	def(0x98, "TYA", ModeImplied, 2, false, (*CPU).tya)
	def(0xBA, "TSX", ModeImplied, 2, false, (*CPU).tsx)
	def(0x9A, "TXS", ModeImplied, 2, false, (*CPU).txs)

	// Stack.
	def(0x48, "PHA", ModeImplied, 3, false, (*CPU).pha)
	def(0xDA, "PHX", ModeImplied, 3, false, (*CPU).phx)
	def(0x5A, "PHY", ModeImplied, 3, false, (*CPU).phy)
	def(0x08, "PHP", ModeImplied, 3, false, (*CPU).php)
	def(0x68, "PLA", ModeImplied, 4, false, (*CPU).pla)
	def(0xFA, "PLX", ModeImplied, 4, false, (*CPU).plx)
	def(0x7A, "PLY", ModeImplied, 4, false, (*CPU).ply)
	def(0x28, "PLP", ModeImplied, 4, false, (*CPU).plp)

	// Flags.
	def(0x18, "CLC", ModeImplied, 2, false, (*CPU).clc)
	def(0x38, "SEC", ModeImplied, 2, false, (*CPU).sec)
	def(0x58, "CLI", ModeImplied, 2, false, (*CPU).cli)
	def(0x78, "SEI", ModeImplied, 2, false, (*CPU).sei)
	def(0xB8, "CLV", ModeImplied, 2, false, (*CPU).clv)
	def(0xD8, "CLD", ModeImplied, 2, false, (*CPU).cld)
	def(0xF8, "SED", ModeImplied, 2, false, (*CPU).sed)

	// Control flow.
	def(0x4C, "JMP", ModeAbsolute, 3, false, (*CPU).jmp)
	def(0x6C, "JMP", ModeIndirect, 6, false, (*CPU).jmp)
	def(0x7C, "JMP", ModeAbsoluteIndexedIndirect, 6, false, (*CPU).jmp)
	def(0x20, "JSR", ModeAbsolute, 6, false, (*CPU).jsr)
	def(0x60, "RTS", ModeImplied, 6, false, (*CPU).rts)
	def(0x00, "BRK", ModeImplied, 7, false, (*CPU).brk)
	def(0x40, "RTI", ModeImplied, 6, false, (*CPU).rti)
	def(0xCB, "WAI", ModeImplied, 3, false, (*CPU).wai)

	// Branches.
	def(0x90, "BCC", ModeRelative, 2, false, (*CPU).bcc)
	def(0xB0, "BCS", ModeRelative, 2, false, (*CPU).bcs)
	def(0xF0, "BEQ", ModeRelative, 2, false, (*CPU).beq)
	def(0xD0, "BNE", ModeRelative, 2, false, (*CPU).bne)
	def(0x30, "BMI", ModeRelative, 2, false, (*CPU).bmi)
	def(0x10, "BPL", ModeRelative, 2, false, (*CPU).bpl)
	def(0x50, "BVC", ModeRelative, 2, false, (*CPU).bvc)
	def(0x70, "BVS", ModeRelative, 2, false, (*CPU).bvs)
	def(0x80, "BRA", ModeRelative, 2, false, (*CPU).bra)

	for bit := 0; bit < 8; bit++ {
		bit := bit
		def(uint8(0x0F+bit*0x10), "BBR", ModeZPRelative, 5, false, bbrBit(bit))
		def(uint8(0x8F+bit*0x10), "BBS", ModeZPRelative, 5, false, bbsBit(bit))
		def(uint8(0x07+bit*0x10), "RMB", ModeZeroPage, 5, false, rmbBit(bit))
		def(uint8(0x87+bit*0x10), "SMB", ModeZeroPage, 5, false, smbBit(bit))
	}

	// Build the BCD table as a copy of the hex table, then replace only the
	// eighteen ADC/SBC slots. No dispatch entry is ever mutated after this
	// point; SED/CLD merely select which of the two arrays Step reads from.
	bcdInstructions = hexInstructions
	bdef := defFn(&bcdInstructions)
	bdef(0x69, "ADC", ModeImmediate, 2, false, (*CPU).adcDecimal)
	bdef(0x65, "ADC", ModeZeroPage, 3, false, (*CPU).adcDecimal)
	bdef(0x75, "ADC", ModeZeroPageX, 4, false, (*CPU).adcDecimal)
	bdef(0x6D, "ADC", ModeAbsolute, 4, false, (*CPU).adcDecimal)
	bdef(0x7D, "ADC", ModeAbsoluteX, 4, true, (*CPU).adcDecimal)
	bdef(0x79, "ADC", ModeAbsoluteY, 4, true, (*CPU).adcDecimal)
	bdef(0x61, "ADC", ModeIndexedIndirect, 6, false, (*CPU).adcDecimal)
	bdef(0x71, "ADC", ModeIndirectIndexed, 5, true, (*CPU).adcDecimal)
	bdef(0x72, "ADC", ModeIndirectZP, 5, false, (*CPU).adcDecimal)

	bdef(0xE9, "SBC", ModeImmediate, 2, false, (*CPU).sbcDecimal)
	bdef(0xE5, "SBC", ModeZeroPage, 3, false, (*CPU).sbcDecimal)
	bdef(0xF5, "SBC", ModeZeroPageX, 4, false, (*CPU).sbcDecimal)
	bdef(0xED, "SBC", ModeAbsolute, 4, false, (*CPU).sbcDecimal)
	bdef(0xFD, "SBC", ModeAbsoluteX, 4, true, (*CPU).sbcDecimal)
	bdef(0xF9, "SBC", ModeAbsoluteY, 4, true, (*CPU).sbcDecimal)
	bdef(0xE1, "SBC", ModeIndexedIndirect, 6, false, (*CPU).sbcDecimal)
	bdef(0xF1, "SBC", ModeIndirectIndexed, 5, true, (*CPU).sbcDecimal)
	bdef(0xF2, "SBC", ModeIndirectZP, 5, false, (*CPU).sbcDecimal)
}

func fillImplieds(t *[256]instruction) {
	for i := range t {
		t[i] = instruction{"NOP", ModeImplied, 2, false, (*CPU).nop}
	}
}

func defFn(t *[256]instruction) func(op uint8, name string, mode Mode, cycles uint64, penalty bool, fn func(*CPU, uint16)) {
	return func(op uint8, name string, mode Mode, cycles uint64, penalty bool, fn func(*CPU, uint16)) {
		t[op] = instruction{name, mode, cycles, penalty, fn}
	}
}
