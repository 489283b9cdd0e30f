// Package updater checks GitHub for newer archgen releases and remembers the
// answer so later runs can mention it without touching the network.
package updater
