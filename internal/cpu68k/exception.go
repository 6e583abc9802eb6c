package cpu68k

import "log"

// Exception vector numbers (multiply by 4 for the vector table offset).
const (
	vecResetSSP           = 0
	vecResetPC            = 1
	vecBusError           = 2
	vecAddressError       = 3
	vecIllegalInstruction = 4
	vecDivideByZero       = 5
	vecCHK                = 6
	vecTRAPV              = 7
	vecPrivilegeViolation = 8
	vecTrace              = 9
	vecLineA              = 10
	vecLineF              = 11
	vecUninitialized      = 15
	vecSpuriousInterrupt  = 24
	vecAutoVector1        = 25
	vecTrap0              = 32
)

// exception enters supervisor mode, pushes the return frame, and jumps
// to the vector's handler. Group-1 faults (illegal instruction,
// privilege violation, Line-A, Line-F) and divide-by-zero push the
// address of the faulting instruction; every other exception pushes
// the address of the instruction that would have executed next.
// Bus error and address error push the extended group-0 frame (access
// address and a special status word ahead of the normal PC/SR) instead
// of the short frame every other vector uses.
func (c *CPU) exception(vector int) {
	if vector >= vecBusError && vector <= vecLineF {
		log.Printf("cpu68k: exception %d at PC=%#06x SR=%#04x", vector, c.PC, c.SR)
	}

	pushPC := c.PC
	switch vector {
	case vecIllegalInstruction, vecPrivilegeViolation, vecLineA, vecLineF, vecDivideByZero:
		pushPC = c.prevPC
	}

	oldSR := c.SR
	c.enterSupervisor()
	c.SR = (c.SR | FlagS) &^ FlagT

	if vector == vecBusError || vector == vecAddressError {
		var ssw uint16
		if !c.faultWrite {
			ssw |= 1 << 4 // R/W: set for a read, clear for a write
		}
		// I/N (bit 3) distinguishes an instruction fetch from an operand
		// reference; that distinction isn't tracked at the fault site, so
		// it is left clear (operand reference) rather than guessed.
		c.pushWord(ssw)
		c.pushLong(c.faultAddr)
		c.pushWord(0) // instruction register at the fault: not captured
	}

	c.pushLong(pushPC)
	c.pushWord(oldSR)

	addr := c.readBus(Long, uint32(vector)*4)
	if addr == 0 {
		addr = c.readBus(Long, vecUninitialized*4)
		if addr == 0 {
			c.halted = true
			return
		}
	}
	c.PC = addr
	c.cycles += 34
}

// RaiseAddressError is installed as the bus's AddressErrorHook so an
// odd-address access from either the bus or an external caller is
// dispatched through the normal exception mechanism rather than
// surfaced as a Go error. addr and write identify the faulting access
// so the extended stack frame can record them.
func (c *CPU) RaiseAddressError(addr uint32, write bool) {
	c.faultAddr = addr
	c.faultWrite = write
	c.exception(vecAddressError)
}

func (c *CPU) enterSupervisor() {
	if c.SR&FlagS == 0 {
		c.USP = c.A[7]
		c.A[7] = c.SSP
	}
}
