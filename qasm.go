package qcircuit

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// QASM grammar accepted by ParseQASM and produced by (*Circuit).QASM:
//
// program   ::= statement*
// statement ::= register | gate | comment
// register  ::= "qreg" ident "[" number "]" ";"
// gate      ::= name [ "(" float ")" ] qubit { "," qubit } ";"
// qubit     ::= ident "[" number "]"
// comment   ::= "//" text

var ErrQASMSyntax = errors.New("qasm syntax error")

var gatesByName = func() map[string]GateKind {
	out := make(map[string]GateKind, len(gateNames))
	for kind, name := range gateNames {
		out[name] = kind
	}
	return out
}()

// QASM renders the circuit, one statement per line.
func (c *Circuit) QASM() string {
	var b strings.Builder
	fmt.Fprintf(&b, "qreg q[%d];\n", c.qubits)
	for _, g := range c.gates {
		b.WriteString(g.String())
		b.WriteString(";\n")
	}
	return b.String()
}

func (c *Circuit) String() string {
	return c.QASM()
}

/*
ParseQASM reads a circuit back from its text form. A single register
declaration must precede the first gate. Errors from every line are
collected and returned together.
*/
func ParseQASM(source string) (*Circuit, error) {
	var (
		circuit *Circuit
		errs    []error
	)

	for i, line := range strings.Split(source, "\n") {
		lineNum := i + 1
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "//") {
			continue
		}

		if !strings.HasSuffix(line, ";") {
			errs = append(errs, fmt.Errorf("%w: line %d: missing semicolon", ErrQASMSyntax, lineNum))
			continue
		}
		line = strings.TrimSpace(strings.TrimSuffix(line, ";"))

		if strings.HasPrefix(line, "qreg") {
			if circuit != nil {
				errs = append(errs, fmt.Errorf("%w: line %d: duplicate qreg", ErrQASMSyntax, lineNum))
				continue
			}
			n, err := parseQubitRef(strings.TrimSpace(strings.TrimPrefix(line, "qreg")))
			if err == nil {
				circuit, err = NewCircuit(n)
			}
			if err != nil {
				errs = append(errs, fmt.Errorf("%w: line %d: %w", ErrQASMSyntax, lineNum, err))
			}
			continue
		}

		if circuit == nil {
			errs = append(errs, fmt.Errorf("%w: line %d: gate before qreg", ErrQASMSyntax, lineNum))
			continue
		}

		g, err := parseGate(line)
		if err != nil {
			errs = append(errs, fmt.Errorf("%w: line %d: %w", ErrQASMSyntax, lineNum, err))
			continue
		}
		circuit.Append(g)
	}

	if circuit == nil && len(errs) == 0 {
		errs = append(errs, fmt.Errorf("%w: no qreg declaration", ErrQASMSyntax))
	}
	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}
	return circuit, nil
}

func parseGate(stmt string) (Gate, error) {
	head, operands, ok := strings.Cut(stmt, " ")
	if !ok {
		return Gate{}, fmt.Errorf("missing operands in %q", stmt)
	}

	name, theta := head, 0.0
	if open := strings.Index(head, "("); open >= 0 {
		if !strings.HasSuffix(head, ")") {
			return Gate{}, fmt.Errorf("unterminated parameter in %q", head)
		}
		v, err := strconv.ParseFloat(head[open+1:len(head)-1], 64)
		if err != nil {
			return Gate{}, fmt.Errorf("bad parameter in %q", head)
		}
		name, theta = head[:open], v
	}

	kind, known := gatesByName[strings.ToLower(name)]
	if !known {
		return Gate{}, fmt.Errorf("%w: %q", ErrUnsupportedGate, name)
	}
	if kind.Parametric() != (name != head) {
		return Gate{}, fmt.Errorf("parameter mismatch for %q", name)
	}

	refs := strings.Split(operands, ",")
	qubits := make([]int, 0, len(refs))
	for _, ref := range refs {
		q, err := parseQubitRef(strings.TrimSpace(ref))
		if err != nil {
			return Gate{}, err
		}
		qubits = append(qubits, q)
	}

	want := 1
	switch kind {
	case ControlledNot, ControlledPhase:
		want = 2
	case MultiControlledPhaseFlip:
		want = max(2, len(qubits))
	}
	if len(qubits) != want {
		return Gate{}, fmt.Errorf("%s takes %d qubits, got %d", name, want, len(qubits))
	}

	g := Gate{Kind: kind, Target: qubits[len(qubits)-1], Theta: theta}
	if len(qubits) > 1 {
		g.Controls = qubits[:len(qubits)-1]
	}
	return g, nil
}

// parseQubitRef parses ident[number] and returns the number.
func parseQubitRef(ref string) (int, error) {
	open := strings.Index(ref, "[")
	if open <= 0 || !strings.HasSuffix(ref, "]") {
		return 0, fmt.Errorf("bad register reference %q", ref)
	}
	n, err := strconv.Atoi(ref[open+1 : len(ref)-1])
	if err != nil || n < 0 {
		return 0, fmt.Errorf("bad index in %q", ref)
	}
	return n, nil
}
