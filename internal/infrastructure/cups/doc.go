// Package cups drives the CUPS command-line programs (lp, lpstat, lpoptions)
// and parses their text output into printing domain records.
//
// The programs are treated as black boxes: every operation is one process
// invocation through a Runner, and every parser is a pure function over the
// captured stdout so it can be tested against fixed outputs.
package cups
