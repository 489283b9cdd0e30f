// Package plan derives the ordered list of generation steps from a set of
// answers.
//
// Build is a pure function of the answers and the run date: it touches no
// filesystem or network, and the same inputs always give the same Plan.
// Each step carries the condition label that gated its inclusion so a plan
// can be printed and reviewed before anything is written.
package plan
