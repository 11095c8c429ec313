// Package profile reads the Firefox profile registry (profiles.ini) and
// resolves the directory of each registered profile.
package profile
