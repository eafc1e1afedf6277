package qrel

import (
	"bytes"
	"strings"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestDraw(t *testing.T) {
	Convey("Given a 2-out-of-3 network", t, func() {
		net, err := BuildNetwork(mustSystem([]float64{0.5, 0.5, 0.5}, 2), ConstructionCombination)
		So(err, ShouldBeNil)

		diagram := Draw(net)
		rows := strings.Split(strings.TrimRight(diagram, "\n"), "\n")

		Convey("It should draw one row per line", func() {
			So(rows, ShouldHaveLength, 4)
			So(rows[0], ShouldStartWith, "comp_0: ")
			So(rows[3], ShouldStartWith, "   out: ")
		})

		Convey("Every row should have the same width", func() {
			width := len([]rune(rows[0]))
			for _, row := range rows[1:] {
				So(len([]rune(row)), ShouldEqual, width)
			}
		})

		Convey("It should show rotations, controls, targets and the measurement", func() {
			So(rows[0], ShouldContainSubstring, "RY(1.5708)")
			So(strings.Count(rows[3], "⊕"), ShouldEqual, 3)
			So(strings.Count(rows[0], "■"), ShouldEqual, 2)
			So(rows[3], ShouldContainSubstring, "M")
		})

		Convey("Render should frame the diagram", func() {
			buf := &bytes.Buffer{}
			So(Render(buf, net), ShouldBeNil)
			So(buf.String(), ShouldContainSubstring, "THRESHOLD NETWORK (2-out-of-3, combination)")
			So(buf.String(), ShouldContainSubstring, diagram)
		})
	})
}

func TestQASM(t *testing.T) {
	Convey("Given a network with one, two and three controls", t, func() {
		Convey("The combination construction should use ccx for k=2", func() {
			net, _ := BuildNetwork(mustSystem([]float64{0.5, 0.5, 0.5}, 2), ConstructionCombination)
			qasm := QASM(net)

			So(qasm, ShouldStartWith, "OPENQASM 2.0;\ninclude \"qelib1.inc\";")
			So(qasm, ShouldContainSubstring, "qreg comp[3];")
			So(qasm, ShouldContainSubstring, "qreg out[1];")
			So(qasm, ShouldContainSubstring, "ry(1.57079632679489")
			So(qasm, ShouldContainSubstring, "ccx comp[0],comp[1],out[0];")
			So(qasm, ShouldEndWith, "measure out[0] -> c[0];\n")
		})

		Convey("The pattern construction should use mcx and x", func() {
			net, _ := BuildNetwork(mustSystem([]float64{0.5, 0.5, 0.5}, 2), ConstructionPattern)
			qasm := QASM(net)

			So(qasm, ShouldContainSubstring, "x comp[2];")
			So(qasm, ShouldContainSubstring, "mcx comp[0],comp[1],comp[2],out[0];")
		})
	})
}
