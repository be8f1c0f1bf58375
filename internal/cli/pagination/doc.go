// Package pagination binds the --page, --page-size, --sort and --all flags shared by
// the listing commands and applies them to a table controller.
package pagination
