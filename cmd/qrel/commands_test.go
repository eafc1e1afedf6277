package main

import (
	"bytes"
	"encoding/json"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
	"github.com/theapemachine/qrel"
)

func TestEvaluateCommand(t *testing.T) {
	Convey("Given the evaluate command", t, func() {
		cmd := newRootCmd()
		stdout := &bytes.Buffer{}
		stderr := &bytes.Buffer{}
		cmd.SetOut(stdout)
		cmd.SetErr(stderr)

		Convey("It should print a JSON report for a valid system", func() {
			cmd.SetArgs([]string{
				"evaluate", "--p", "0.5,0.5,0.5", "--k", "2",
				"--simulations", "5", "--shots", "256", "--seed", "7",
			})

			So(cmd.Execute(), ShouldBeNil)

			var report qrel.Report
			So(json.Unmarshal(stdout.Bytes(), &report), ShouldBeNil)
			So(report.NumComponents, ShouldEqual, 3)
			So(report.Threshold, ShouldEqual, 2)
			So(report.NumSimulations, ShouldEqual, 5)
			So(report.ClassicalReliability, ShouldAlmostEqual, 0.5, 1e-12)
			So(stderr.String(), ShouldContainSubstring, "THRESHOLD NETWORK")
		})

		Convey("It should print QASM when asked", func() {
			cmd.SetArgs([]string{
				"evaluate", "--p", "0.9,0.9", "--k", "1", "--qasm", "--render=false",
				"--simulations", "2", "--shots", "16", "--seed", "3",
			})

			So(cmd.Execute(), ShouldBeNil)
			So(stdout.String(), ShouldStartWith, "OPENQASM 2.0;")
			So(stdout.String(), ShouldContainSubstring, "cx comp[0],out[0];")
		})

		Convey("It should reject a threshold above n", func() {
			cmd.SetArgs([]string{"evaluate", "--p", "0.9,0.9", "--k", "3"})
			So(cmd.Execute(), ShouldNotBeNil)
		})
	})
}
