// Package sink writes generated files into the destination project. Every
// operation goes through an afero.Fs, so production runs write to disk while
// tests use an in-memory filesystem.
//
// Sources are afero.Fs values too: the embedded template set, the transient
// site-generator scaffold, and fetched remote repositories all look the same
// to the sink. Writes over existing files with different content are handed
// to a conflict.Resolver; identical content is left alone.
package sink
