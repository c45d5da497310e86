// Package convert sequences the conversion stages over a directory of RIS
// inputs: parse and project each file, merge the projections, export the
// merged table back to RIS. Per-file failures are isolated; schema failures
// abort the run.
package convert
