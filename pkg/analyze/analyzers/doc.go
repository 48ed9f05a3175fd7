// Package analyzers provides the built-in analyzers for gorslint.
//
// The set is fixed at build time:
//
//   - path_import: module paths in expressions should be imports
//   - format_args: format macros should use named arguments
//   - empty_lines: function bodies should not contain blank lines
//   - inline_comments: function bodies should not contain inline comments
//
// Analyzers register themselves with the default registry via RegisterAll;
// registration order is the order they run and report in.
package analyzers
