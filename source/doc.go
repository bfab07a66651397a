// Package source provides types.RosterSource implementations.
//
// Static serves rosters held in memory; LoadFile and Parse build a Static
// from a YAML roster document.
package source
