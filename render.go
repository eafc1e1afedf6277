package qrel

import (
	"fmt"
	"io"
	"strings"
	"unicode/utf8"
)

// Draw renders the network as text, one row per line and one column per gate.
func Draw(net *GateNetwork) string {
	labels := make([]string, net.Lines())
	for i := 0; i < net.Inputs; i++ {
		labels[i] = fmt.Sprintf("comp_%d: ", i)
	}
	labels[net.Output] = "out: "

	labelWidth := 0
	for _, label := range labels {
		labelWidth = max(labelWidth, utf8.RuneCountInString(label))
	}

	rows := make([]strings.Builder, net.Lines())
	for i, label := range labels {
		rows[i].WriteString(strings.Repeat(" ", labelWidth-utf8.RuneCountInString(label)))
		rows[i].WriteString(label)
		rows[i].WriteString("─")
	}

	for _, gate := range net.Gates {
		cells := gateCells(gate, net.Lines())

		width := 0
		for _, cell := range cells {
			width = max(width, utf8.RuneCountInString(cell))
		}

		for i, cell := range cells {
			pad := width - utf8.RuneCountInString(cell)
			rows[i].WriteString(cell)
			rows[i].WriteString(strings.Repeat("─", pad+1))
		}
	}

	var sb strings.Builder
	for i := range rows {
		sb.WriteString(rows[i].String())
		sb.WriteString("\n")
	}
	return sb.String()
}

func gateCells(gate Gate, lines int) []string {
	cells := make([]string, lines)
	for i := range cells {
		cells[i] = "─"
	}

	switch gate.Kind {
	case GateRY:
		cells[gate.Target] = fmt.Sprintf("RY(%.4f)", gate.Theta)
	case GateX:
		cells[gate.Target] = "X"
	case GateMeasure:
		cells[gate.Target] = "M"
	case GateMCX:
		lo, hi := gate.Target, gate.Target
		for _, c := range gate.Controls {
			lo, hi = min(lo, c), max(hi, c)
		}
		for i := lo; i <= hi; i++ {
			cells[i] = "┼"
		}
		for _, c := range gate.Controls {
			cells[c] = "■"
		}
		cells[gate.Target] = "⊕"
	}
	return cells
}

// QASM renders the network as OpenQASM 2.0.
func QASM(net *GateNetwork) string {
	var sb strings.Builder
	sb.WriteString("OPENQASM 2.0;\n")
	sb.WriteString("include \"qelib1.inc\";\n\n")
	fmt.Fprintf(&sb, "qreg comp[%d];\n", net.Inputs)
	sb.WriteString("qreg out[1];\n")
	sb.WriteString("creg c[1];\n\n")

	line := func(q int) string {
		if q == net.Output {
			return "out[0]"
		}
		return fmt.Sprintf("comp[%d]", q)
	}

	for _, gate := range net.Gates {
		switch gate.Kind {
		case GateRY:
			fmt.Fprintf(&sb, "ry(%.17g) %s;\n", gate.Theta, line(gate.Target))
		case GateX:
			fmt.Fprintf(&sb, "x %s;\n", line(gate.Target))
		case GateMeasure:
			fmt.Fprintf(&sb, "measure %s -> c[0];\n", line(gate.Target))
		case GateMCX:
			args := make([]string, 0, len(gate.Controls)+1)
			for _, c := range gate.Controls {
				args = append(args, line(c))
			}
			args = append(args, line(gate.Target))

			op := "mcx"
			switch len(gate.Controls) {
			case 1:
				op = "cx"
			case 2:
				op = "ccx"
			}
			fmt.Fprintf(&sb, "%s %s;\n", op, strings.Join(args, ","))
		}
	}

	return sb.String()
}

// Render writes the text diagram framed by rules, the way the report prints it.
func Render(w io.Writer, net *GateNetwork) error {
	rule := strings.Repeat("=", 60)
	_, err := fmt.Fprintf(w, "\n%s\nTHRESHOLD NETWORK (%d-out-of-%d, %s)\n%s\n%s%s\n\n",
		rule, net.Threshold, net.Inputs, net.Construction, rule, Draw(net), rule)
	return err
}
