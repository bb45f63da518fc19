// Package drive holds the canonical volume record and the pure
// classification helpers used while building it.
package drive
