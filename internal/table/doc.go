// Package table provides a generic, in-memory table controller for sorting and paginating records.
//
// The controller owns two pieces of state, the active sort (key and direction) and the page
// position (current page and page size), and derives everything else from them:
//   - Sort: stable, locale-aware ordering with null values kept at the tail
//   - Paginate: page slicing with the current page clamped on every read
//   - Controller: the stateful wrapper renderers drive (toggle sort, navigate, resize pages)
//
// A Controller is not safe for concurrent use. It is meant to be owned by a single view
// (a CLI invocation or a TUI model) and mutated only through its own methods.
package table
