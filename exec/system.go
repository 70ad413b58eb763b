package exec

import (
	"math/bits"

	"github.com/mw8080/emu/i8080"
	"github.com/mw8080/emu/i8080/isa"
)

// System couples a CPU with its memory and executes instructions.
type System struct {
	CPU *CPU
	Mem *Memory
}

// NewSystem creates a system around mem with a reset CPU starting at pc.
func NewSystem(mem *Memory, pc uint16) *System {
	cpu := NewCPU()
	cpu.PC = pc
	return &System{CPU: cpu, Mem: mem}
}

// Fetch decodes the instruction at the program counter.
func (s *System) Fetch() (isa.Instruction, error) {
	in, err := isa.Decode(s.Mem.Bytes(), s.CPU.PC)
	if err != nil {
		return isa.Instruction{}, &FaultError{PC: s.CPU.PC, Err: err}
	}
	return in, nil
}

// Step fetches and executes the next instruction.
func (s *System) Step(bus Bus) (cycles int, halted bool, err error) {
	in, err := s.Fetch()
	if err != nil {
		return 0, false, err
	}
	return s.Execute(in, bus)
}

// Interrupt presents an instruction to the CPU from outside the
// instruction stream, typically a restart. The request is dropped when
// interrupts are disabled. A restart delivered this way pushes the
// current program counter as its return address.
func (s *System) Interrupt(in isa.Instruction, bus Bus) (cycles int, halted bool, err error) {
	if !s.CPU.INTE {
		return 0, false, nil
	}
	s.CPU.PC -= uint16(in.Size())
	return s.Execute(in, bus)
}

// Execute runs a single decoded instruction and returns its cycle count,
// whether the CPU halted, and any fault. A halted CPU keeps its program
// counter on the hlt so that execution parks there.
func (s *System) Execute(in isa.Instruction, bus Bus) (cycles int, halted bool, err error) {
	defer func() {
		if x := recover(); x != nil {
			fault, ok := x.(*FaultError)
			if !ok {
				panic(x)
			}
			cycles, halted, err = 0, false, fault
		}
	}()

	pc := s.CPU.PC + uint16(in.Size())
	cycles = in.Cycles()

	switch in.Op {
	case isa.Nop:

	case isa.Mov:
		s.write(in.Dst, s.read(in.Src))
	case isa.Mvi:
		s.write(in.Dst, in.Imm)
	case isa.Lxi:
		s.CPU.SetPair(in.Pair, in.Addr)
	case isa.Lda:
		s.CPU.SetRegister(i8080.A, s.load(in.Addr))
	case isa.Sta:
		s.store(in.Addr, s.CPU.Register(i8080.A))
	case isa.Lhld:
		s.CPU.SetPair(i8080.HL, s.load16(in.Addr))
	case isa.Shld:
		s.store16(in.Addr, s.CPU.Pair(i8080.HL))
	case isa.Ldax:
		s.CPU.SetRegister(i8080.A, s.load(s.CPU.Pair(in.Pair)))
	case isa.Stax:
		s.store(s.CPU.Pair(in.Pair), s.CPU.Register(i8080.A))
	case isa.Xchg:
		de, hl := s.CPU.Pair(i8080.DE), s.CPU.Pair(i8080.HL)
		s.CPU.SetPair(i8080.DE, hl)
		s.CPU.SetPair(i8080.HL, de)

	case isa.Add:
		s.addA(s.read(in.Src), false)
	case isa.Adi:
		s.addA(in.Imm, false)
	case isa.Adc:
		s.addA(s.read(in.Src), s.CPU.Flag(i8080.FlagCY))
	case isa.Aci:
		s.addA(in.Imm, s.CPU.Flag(i8080.FlagCY))
	case isa.Sub:
		s.subA(s.read(in.Src), false)
	case isa.Sui:
		s.subA(in.Imm, false)
	case isa.Sbb:
		s.subA(s.read(in.Src), s.CPU.Flag(i8080.FlagCY))
	case isa.Sbi:
		s.subA(in.Imm, s.CPU.Flag(i8080.FlagCY))
	case isa.Cmp:
		s.compare(s.read(in.Src))
	case isa.Cpi:
		s.compare(in.Imm)
	case isa.Inr:
		out, _, ac := add8(s.read(in.Dst), 1, false)
		s.write(in.Dst, out)
		s.updateFlagsAC(out, ac)
	case isa.Dcr:
		out, _, ac := sub8(s.read(in.Dst), 1, false)
		s.write(in.Dst, out)
		s.updateFlagsAC(out, ac)
	case isa.Inx:
		s.CPU.SetPair(in.Pair, s.CPU.Pair(in.Pair)+1)
	case isa.Dcx:
		s.CPU.SetPair(in.Pair, s.CPU.Pair(in.Pair)-1)
	case isa.Dad:
		sum, cy := add16(s.CPU.Pair(i8080.HL), s.CPU.Pair(in.Pair))
		s.CPU.SetPair(i8080.HL, sum)
		s.CPU.PutFlag(i8080.FlagCY, cy)
	case isa.Daa:
		s.daa()

	case isa.Ana:
		s.logicA(s.CPU.Register(i8080.A) & s.read(in.Src))
	case isa.Ani:
		s.logicA(s.CPU.Register(i8080.A) & in.Imm)
	case isa.Xra:
		s.logicA(s.CPU.Register(i8080.A) ^ s.read(in.Src))
	case isa.Xri:
		s.logicA(s.CPU.Register(i8080.A) ^ in.Imm)
	case isa.Ora:
		s.logicA(s.CPU.Register(i8080.A) | s.read(in.Src))
	case isa.Ori:
		s.logicA(s.CPU.Register(i8080.A) | in.Imm)
	case isa.Cma:
		s.CPU.SetRegister(i8080.A, ^s.CPU.Register(i8080.A))
	case isa.Rlc:
		a := s.CPU.Register(i8080.A)
		s.CPU.SetRegister(i8080.A, bits.RotateLeft8(a, 1))
		s.CPU.PutFlag(i8080.FlagCY, a&0x80 != 0)
	case isa.Rrc:
		a := s.CPU.Register(i8080.A)
		s.CPU.SetRegister(i8080.A, bits.RotateLeft8(a, -1))
		s.CPU.PutFlag(i8080.FlagCY, a&0x01 != 0)
	case isa.Ral:
		a := s.CPU.Register(i8080.A)
		out := a << 1
		if s.CPU.Flag(i8080.FlagCY) {
			out |= 0x01
		}
		s.CPU.SetRegister(i8080.A, out)
		s.CPU.PutFlag(i8080.FlagCY, a&0x80 != 0)
	case isa.Rar:
		a := s.CPU.Register(i8080.A)
		out := a >> 1
		if s.CPU.Flag(i8080.FlagCY) {
			out |= 0x80
		}
		s.CPU.SetRegister(i8080.A, out)
		s.CPU.PutFlag(i8080.FlagCY, a&0x01 != 0)
	case isa.Cmc:
		s.CPU.PutFlag(i8080.FlagCY, !s.CPU.Flag(i8080.FlagCY))
	case isa.Stc:
		s.CPU.PutFlag(i8080.FlagCY, true)

	case isa.Jmp:
		pc = in.Addr
	case isa.Jnz, isa.Jz, isa.Jnc, isa.Jc, isa.Jpo, isa.Jpe, isa.Jp, isa.Jm:
		if s.cond(in.Op) {
			pc = in.Addr
		}
	case isa.Call:
		pc = s.call(in.Addr, pc)
	case isa.Cnz, isa.Cz, isa.Cnc, isa.Cc, isa.Cpo, isa.Cpe, isa.Cp, isa.Cm:
		if s.cond(in.Op) {
			pc = s.call(in.Addr, pc)
			cycles += 6
		}
	case isa.Ret:
		pc = s.ret()
	case isa.Rnz, isa.Rz, isa.Rnc, isa.Rc, isa.Rpo, isa.Rpe, isa.Rp, isa.Rm:
		if s.cond(in.Op) {
			pc = s.ret()
			cycles += 6
		}
	case isa.Rst:
		pc = s.call(uint16(in.Vector())*8, pc)
	case isa.Pchl:
		pc = s.CPU.Pair(i8080.HL)

	case isa.Push:
		s.push(s.CPU.Pair(in.Pair))
	case isa.Pop:
		s.CPU.SetPair(in.Pair, s.pop())
	case isa.Xthl:
		top := s.load16(s.CPU.SP)
		s.store16(s.CPU.SP, s.CPU.Pair(i8080.HL))
		s.CPU.SetPair(i8080.HL, top)
	case isa.Sphl:
		s.CPU.SP = s.CPU.Pair(i8080.HL)
	case isa.In:
		s.CPU.SetRegister(i8080.A, bus.In(in.Port()))
	case isa.Out:
		bus.Out(in.Port(), s.CPU.Register(i8080.A))
	case isa.Ei:
		s.CPU.INTE = true
	case isa.Di:
		s.CPU.INTE = false
	case isa.Hlt:
		return cycles, true, nil
	}

	s.CPU.PC = pc
	return cycles, false, nil
}

// cond evaluates the condition encoded in a conditional jump, call, or
// return.
func (s *System) cond(op isa.Op) bool {
	switch op {
	case isa.Jnz, isa.Cnz, isa.Rnz:
		return !s.CPU.Flag(i8080.FlagZ)
	case isa.Jz, isa.Cz, isa.Rz:
		return s.CPU.Flag(i8080.FlagZ)
	case isa.Jnc, isa.Cnc, isa.Rnc:
		return !s.CPU.Flag(i8080.FlagCY)
	case isa.Jc, isa.Cc, isa.Rc:
		return s.CPU.Flag(i8080.FlagCY)
	case isa.Jpo, isa.Cpo, isa.Rpo:
		return !s.CPU.Flag(i8080.FlagP)
	case isa.Jpe, isa.Cpe, isa.Rpe:
		return s.CPU.Flag(i8080.FlagP)
	case isa.Jp, isa.Cp, isa.Rp:
		return !s.CPU.Flag(i8080.FlagS)
	case isa.Jm, isa.Cm, isa.Rm:
		return s.CPU.Flag(i8080.FlagS)
	default:
		return false
	}
}

func (s *System) fault(err error) {
	panic(&FaultError{PC: s.CPU.PC, Err: err})
}

func (s *System) load(addr uint16) byte {
	v, err := s.Mem.Byte(addr)
	if err != nil {
		s.fault(err)
	}
	return v
}

func (s *System) store(addr uint16, v byte) {
	if err := s.Mem.PutByte(addr, v); err != nil {
		s.fault(err)
	}
}

func (s *System) load16(addr uint16) uint16 {
	v, err := s.Mem.Uint16At(addr)
	if err != nil {
		s.fault(err)
	}
	return v
}

func (s *System) store16(addr uint16, v uint16) {
	if err := s.Mem.PutUint16At(addr, v); err != nil {
		s.fault(err)
	}
}

// read resolves a register operand, going through memory for m.
func (s *System) read(r i8080.Register) byte {
	if r == i8080.M {
		return s.load(s.CPU.Pair(i8080.HL))
	}
	return s.CPU.Register(r)
}

// write resolves a register operand, going through memory for m.
func (s *System) write(r i8080.Register, v byte) {
	if r == i8080.M {
		s.store(s.CPU.Pair(i8080.HL), v)
		return
	}
	s.CPU.SetRegister(r, v)
}

// push stores a word on the stack, high byte at sp-1 and low byte at
// sp-2.
func (s *System) push(v uint16) {
	s.store(s.CPU.SP-1, byte(v>>8))
	s.store(s.CPU.SP-2, byte(v))
	s.CPU.SP -= 2
}

func (s *System) pop() uint16 {
	v := s.load16(s.CPU.SP)
	s.CPU.SP += 2
	return v
}

func (s *System) call(addr, ret uint16) uint16 {
	s.push(ret)
	return addr
}

func (s *System) ret() uint16 {
	return s.pop()
}

// updateFlags sets the sign, zero, and parity flags from a result.
func (s *System) updateFlags(v byte) {
	s.CPU.PutFlag(i8080.FlagS, int8(v) < 0)
	s.CPU.PutFlag(i8080.FlagZ, v == 0)
	s.CPU.PutFlag(i8080.FlagP, parity(v))
}

func (s *System) updateFlagsAC(v byte, ac bool) {
	s.updateFlags(v)
	s.CPU.PutFlag(i8080.FlagAC, ac)
}

func (s *System) updateFlagsCY(v byte, cy, ac bool) {
	s.updateFlagsAC(v, ac)
	s.CPU.PutFlag(i8080.FlagCY, cy)
}

func (s *System) addA(v byte, carry bool) {
	out, cy, ac := add8(s.CPU.Register(i8080.A), v, carry)
	s.updateFlagsCY(out, cy, ac)
	s.CPU.SetRegister(i8080.A, out)
}

func (s *System) subA(v byte, borrow bool) {
	out, cy, ac := sub8(s.CPU.Register(i8080.A), v, borrow)
	s.updateFlagsCY(out, cy, ac)
	s.CPU.SetRegister(i8080.A, out)
}

// compare subtracts v from the accumulator for the flags alone.
func (s *System) compare(v byte) {
	out, cy, ac := sub8(s.CPU.Register(i8080.A), v, false)
	s.updateFlagsCY(out, cy, ac)
}

// logicA stores a logic result in the accumulator. Logic operations
// clear the carry and leave the auxiliary carry alone.
func (s *System) logicA(v byte) {
	s.updateFlags(v)
	s.CPU.PutFlag(i8080.FlagCY, false)
	s.CPU.SetRegister(i8080.A, v)
}

// daa decimal-adjusts the accumulator after BCD arithmetic. The low
// nibble is corrected by six when it exceeds nine or the auxiliary
// carry is set, then the high nibble by 0x60 when it exceeds nine or
// the carry is set. An accumulator that needs no correction leaves the
// flags untouched.
func (s *System) daa() {
	a := s.CPU.Register(i8080.A)
	if a&0x0f <= 9 && !s.CPU.Flag(i8080.FlagAC) {
		return
	}
	out, cy, ac := add8(a, 0x06, false)
	if (out&0xf0)>>4 <= 9 && !s.CPU.Flag(i8080.FlagCY) {
		s.updateFlagsCY(out, cy, ac)
		s.CPU.SetRegister(i8080.A, out)
		return
	}
	out, cy, ac = add8(out, 0x60, false)
	s.updateFlagsCY(out, cy, ac)
	s.CPU.SetRegister(i8080.A, out)
}
