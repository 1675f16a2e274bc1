package bytecode

import (
	"fmt"
	"strings"
)

// Disassemble performs a linear walk over program's instruction stream,
// printing "IP  MNEMONIC  operand..." one line per instruction
// (docs/architecture/bytecode-vm-design.md). Unknown opcodes are a fatal
// decoding error — they cannot occur in a well-formed program.
func Disassemble(program *ExecutableProgram) string {
	var sb strings.Builder
	ip := 0
	code := program.Instructions
	for ip < len(code) {
		op := OpCode(code[ip])
		width := 1
		if op == Wide {
			ip++
			if ip >= len(code) {
				fmt.Fprintf(&sb, "%04d  Wide  <truncated>\n", ip-1)
				break
			}
			op = OpCode(code[ip])
			width = 2
		}
		n, known := operandBytes[op]
		if !known {
			if _, isOpcode := mnemonics[op]; !isOpcode {
				panic(fmt.Sprintf("bytecode: unknown opcode 0x%02x at ip=%d", byte(op), ip))
			}
		}
		start := ip
		ip++
		switch n {
		case 0:
			fmt.Fprintf(&sb, "%04d  %s\n", start, op)
		default:
			operand := readOperand(code, &ip, n, width)
			switch op {
			case Const:
				fmt.Fprintf(&sb, "%04d  %-12s %4d  ; %v\n", start, op, operand, constAt(program, operand))
			case ResolveBinding, InitializeReferencedBinding:
				fmt.Fprintf(&sb, "%04d  %-12s %4d  ; %s\n", start, op, operand, identAt(program, operand))
			case Jump, JumpIfTrue, JumpIfFalse:
				target := ip + signExtend(operand, 2)
				fmt.Fprintf(&sb, "%04d  %-12s %4d  ; -> %04d\n", start, op, operand, target)
			default:
				fmt.Fprintf(&sb, "%04d  %-12s %4d\n", start, op, operand)
			}
		}
	}
	return sb.String()
}

func readOperand(code []byte, ip *int, n, width int) int {
	value := 0
	bytesPerUnit := 1
	if width == 2 {
		bytesPerUnit = 2
	}
	total := n * bytesPerUnit
	for i := 0; i < total; i++ {
		value = value<<8 | int(code[*ip])
		*ip++
	}
	return value
}

func signExtend(v, width int) int {
	if width == 1 {
		return int(int8(v))
	}
	return int(int16(v))
}

func constAt(p *ExecutableProgram, idx int) string {
	if idx < 0 || idx >= len(p.Constants) {
		return "?"
	}
	return fmt.Sprintf("%v", p.Constants[idx])
}

func identAt(p *ExecutableProgram, idx int) string {
	if idx < 0 || idx >= len(p.Identifiers) {
		return "?"
	}
	return p.Identifiers[idx].Name
}
