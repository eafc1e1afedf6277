// Command qrel estimates k-out-of-n system reliability by sampling a threshold
// gate network and checks the estimate against the exact value.
//
// Usage:
//
//	qrel evaluate --p 0.97,0.97,0.97,0.97 --k 3
//	qrel evaluate --p 0.9,0.8,0.7 --k 2 --simulations 200 --interval student-t
//	qrel evaluate --config qrel.yaml --p 0.5,0.5,0.5 --k 2 --qasm
package main

import (
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
