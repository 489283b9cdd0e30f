// Package remote fetches pinned revisions of third-party repositories and
// exposes them as read-only sources for the sink.
//
// A Provider turns a Ref into a Handle. The handle is the only way to reach
// remote content: Copy, Directory and RenderTemplate read from the fetched
// tree and write through a sink.Sink.
package remote
