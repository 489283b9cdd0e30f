// Package cli defines the Cobra command tree for the archgen CLI. The root
// command runs the generator; each other file registers one subcommand.
// Commands only parse flags, wire collaborators and format output. The
// generation logic lives in the prompt, plan and engine packages.
package cli
