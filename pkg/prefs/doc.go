// Package prefs patches the preference files (prefs.js) of browser profiles
// with the rules from a [rule.Set].
//
// Preference files are handled as plain lines of text. A rule matches a line
// only when the line is exactly the rule's serialized form followed by the
// configured line suffix.
package prefs
