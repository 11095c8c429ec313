// Package rule parses preference rule files.
//
// A rule file holds one rule per line. The first character of a line selects
// the kind of rule:
//
//	+("browser.startup.page",3)
//	-("app.update.auto",false)
//
// Lines starting with `+` add the preference, lines starting with `-` delete
// it, and any other line is ignored.
package rule
