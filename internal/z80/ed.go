package z80

// decodeED dispatches the ED-prefixed opcode space: I/O, 16-bit
// ADC/SBC, 16-bit (nn) loads for BC/DE/SP, NEG, RETN/RETI, IM, the
// I/R interrupt-page registers, RRD/RLD, and the LDxx/CPxx/INxx/OUTxx
// block operations. Opcodes outside the documented 0x40-0xBB range
// behave as an 8-cycle no-op on real silicon.
func (c *CPU) decodeED(op uint8) int {
	x, y, z, p, q := decodeXYZ(op)
	idx := &indexState{}

	switch x {
	case 1:
		switch z {
		case 0:
			v := c.Bus.In(c.BC())
			c.WZ = c.BC() + 1
			c.setFlag(FlagS, v&0x80 != 0)
			c.setFlag(FlagZ, v == 0)
			c.setFlag(FlagH, false)
			c.setFlag(FlagPV, parity(v))
			c.setFlag(FlagN, false)
			c.setXY(v)
			if y != 6 {
				c.setReg8(idx, y, v)
			}
			return 12
		case 1:
			v := uint8(0)
			if y != 6 {
				v = c.reg8(idx, y)
			}
			c.Bus.Out(c.BC(), v)
			c.WZ = c.BC() + 1
			return 12
		case 2:
			if q == 0 {
				c.SetHL(c.sbc16(c.HL(), c.reg16(p, idx)))
			} else {
				c.SetHL(c.adc16(c.HL(), c.reg16(p, idx)))
			}
			return 15
		case 3:
			addr := c.fetch16()
			c.WZ = addr + 1
			if q == 0 {
				v := c.reg16(p, idx)
				c.Bus.Write(addr, uint8(v))
				c.Bus.Write(addr+1, uint8(v>>8))
			} else {
				lo := uint16(c.Bus.Read(addr))
				hi := uint16(c.Bus.Read(addr + 1))
				c.setReg16(p, idx, hi<<8|lo)
			}
			return 20
		case 4:
			c.A = c.sub8(0, c.A, false)
			return 8
		case 5:
			c.PC = c.pop16()
			if y == 1 {
				c.WZ = c.PC
				return 14
			}
			c.IFF1 = c.IFF2
			c.WZ = c.PC
			return 14
		case 6:
			switch y {
			case 2, 6:
				c.Mode = IM1
			case 3, 7:
				c.Mode = IM2
			default:
				c.Mode = IM0
			}
			return 8
		default:
			return c.decodeEDZ7(y)
		}
	case 2:
		if z <= 3 && y >= 4 {
			return c.decodeBlockOp(y, z)
		}
		return 8
	default:
		return 8
	}
}

func (c *CPU) decodeEDZ7(y uint8) int {
	switch y {
	case 0:
		c.I = c.A
		return 9
	case 1:
		c.R = c.A
		return 9
	case 2:
		c.A = c.I
		c.setFlag(FlagS, c.A&0x80 != 0)
		c.setFlag(FlagZ, c.A == 0)
		c.setFlag(FlagH, false)
		c.setFlag(FlagN, false)
		c.setFlag(FlagPV, c.IFF2)
		c.setXY(c.A)
		return 9
	case 3:
		c.A = c.R
		c.setFlag(FlagS, c.A&0x80 != 0)
		c.setFlag(FlagZ, c.A == 0)
		c.setFlag(FlagH, false)
		c.setFlag(FlagN, false)
		c.setFlag(FlagPV, c.IFF2)
		c.setXY(c.A)
		return 9
	case 4:
		hl := c.Bus.Read(c.HL())
		loHL, hiHL := hl&0x0F, hl>>4
		loA := c.A & 0x0F
		newHL := loA<<4 | hiHL
		c.A = c.A&0xF0 | loHL
		c.Bus.Write(c.HL(), newHL)
		c.WZ = c.HL() + 1
		c.setFlag(FlagS, c.A&0x80 != 0)
		c.setFlag(FlagZ, c.A == 0)
		c.setFlag(FlagH, false)
		c.setFlag(FlagN, false)
		c.setFlag(FlagPV, parity(c.A))
		c.setXY(c.A)
		return 18
	case 5:
		hl := c.Bus.Read(c.HL())
		loHL, hiHL := hl&0x0F, hl>>4
		loA := c.A & 0x0F
		newHL := loHL<<4 | loA
		c.A = c.A&0xF0 | hiHL
		c.Bus.Write(c.HL(), newHL)
		c.WZ = c.HL() + 1
		c.setFlag(FlagS, c.A&0x80 != 0)
		c.setFlag(FlagZ, c.A == 0)
		c.setFlag(FlagH, false)
		c.setFlag(FlagN, false)
		c.setFlag(FlagPV, parity(c.A))
		c.setXY(c.A)
		return 18
	default:
		return 8
	}
}

// decodeBlockOp implements LDI/LDD/CPI/CPD/INI/IND/OUTI/OUTD and their
// repeating (IR-suffixed) forms, selected by y (4=single, 5=single
// decrementing, 6/7=repeating variants of the same pair) and z (0=LD,
// 1=CP, 2=IN, 3=OUT).
func (c *CPU) decodeBlockOp(y, z uint8) int {
	dec := y == 5 || y == 7
	repeat := y == 6 || y == 7

	step := func() (done bool) {
		switch z {
		case 0:
			v := c.Bus.Read(c.HL())
			c.Bus.Write(c.DE(), v)
			if dec {
				c.SetHL(c.HL() - 1)
				c.SetDE(c.DE() - 1)
			} else {
				c.SetHL(c.HL() + 1)
				c.SetDE(c.DE() + 1)
			}
			c.SetBC(c.BC() - 1)
			n := v + c.A
			c.setFlag(FlagH, false)
			c.setFlag(FlagN, false)
			c.setFlag(FlagPV, c.BC() != 0)
			c.F = c.F&^(FlagX|FlagY) | n&FlagX
			if n&0x02 != 0 {
				c.F |= FlagY
			} else {
				c.F &^= FlagY
			}
			return c.BC() == 0
		case 1:
			v := c.Bus.Read(c.HL())
			res := c.A - v
			halfBorrow := c.A&0xF < v&0xF
			if dec {
				c.SetHL(c.HL() - 1)
			} else {
				c.SetHL(c.HL() + 1)
			}
			c.SetBC(c.BC() - 1)
			n := res
			if halfBorrow {
				n--
			}
			c.setFlag(FlagS, res&0x80 != 0)
			c.setFlag(FlagZ, res == 0)
			c.setFlag(FlagH, halfBorrow)
			c.setFlag(FlagPV, c.BC() != 0)
			c.setFlag(FlagN, true)
			c.F = c.F&^(FlagX|FlagY) | n&FlagX
			if n&0x02 != 0 {
				c.F |= FlagY
			} else {
				c.F &^= FlagY
			}
			if dec {
				c.WZ--
			} else {
				c.WZ++
			}
			return c.BC() == 0 || res == 0
		case 2:
			v := c.Bus.In(c.BC())
			c.Bus.Write(c.HL(), v)
			var k uint16
			if dec {
				c.SetHL(c.HL() - 1)
				k = uint16(v) + uint16((c.C-1)&0xFF)
			} else {
				c.SetHL(c.HL() + 1)
				k = uint16(v) + uint16((c.C+1)&0xFF)
			}
			c.B--
			c.setFlag(FlagZ, c.B == 0)
			c.setFlag(FlagS, c.B&0x80 != 0)
			c.setFlag(FlagN, v&0x80 != 0)
			c.setFlag(FlagH, k > 0xFF)
			c.setFlag(FlagC, k > 0xFF)
			c.setFlag(FlagPV, parity(uint8(k&7)^c.B))
			c.setXY(c.B)
			return c.B == 0
		default:
			v := c.Bus.Read(c.HL())
			if dec {
				c.SetHL(c.HL() - 1)
			} else {
				c.SetHL(c.HL() + 1)
			}
			c.B--
			c.Bus.Out(c.BC(), v)
			k := uint16(v) + uint16(c.L)
			c.setFlag(FlagZ, c.B == 0)
			c.setFlag(FlagS, c.B&0x80 != 0)
			c.setFlag(FlagN, v&0x80 != 0)
			c.setFlag(FlagH, k > 0xFF)
			c.setFlag(FlagC, k > 0xFF)
			c.setFlag(FlagPV, parity(uint8(k&7)^c.B))
			c.setXY(c.B)
			return c.B == 0
		}
	}

	stop := step()
	if !repeat || stop {
		if z == 0 || z == 1 {
			return 16
		}
		return 16
	}
	c.PC -= 2
	c.WZ = c.PC + 1
	if z == 0 || z == 1 {
		return 21
	}
	return 21
}
