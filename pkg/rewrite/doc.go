// Package rewrite substitutes one owner for another on the rule lines of a
// CODEOWNERS-style file.
//
// A rule line is a target pattern followed by owners, each introduced by '@':
//
//	/docs/        @alice   @org/writers
//
// Owners are identified by their trimmed name. When a substitution makes two
// owners on the same line equal, the first one keeps its position and the
// later one is dropped together with the whitespace in front of it. Blank
// lines, comments and lines without any owner pass through untouched.
//
// # Usage
//
//	out := rewrite.Content(string(data), "alice", "org/platform")
//
// Both functions are pure and safe to call from many goroutines.
package rewrite
