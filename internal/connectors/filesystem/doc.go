// Package filesystem watches a local directory and reports file changes.
//
// Hidden files and directories (names starting with ".") are ignored.
// Subdirectories created while watching are added to the watch set.
package filesystem
