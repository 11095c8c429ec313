// Package expr provides CEL (Common Expression Language) functionality for
// selecting browser profiles.
//
// It creates CEL environments with custom functions for:
//   - File path operations (pathBase, pathDir, pathExt)
//   - File existence checks (hasFile)
package expr
