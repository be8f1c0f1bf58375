// Package dashboard holds the pipeline and device models shown by pipewatch, the
// client that fetches them from a pipewatch server, and the loader that falls back
// to a cached snapshot or mock data when the server is unavailable.
package dashboard
