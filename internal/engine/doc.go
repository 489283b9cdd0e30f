// Package engine executes a plan against a sink.
//
// Steps run one at a time in plan order. A FetchRemote step produces a
// handle that later remote steps read from; nothing else can reach remote
// content. The first failing step stops the run without undoing earlier
// steps. When every step succeeds, the transient scaffold directory is
// removed and then front-end dependencies are installed.
package engine
