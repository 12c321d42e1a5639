// Package match defines the per-game records produced by the draft pipeline.
//
// A Row is the flattened join of a game's Draft, Roster and Result plus its
// provenance inside a tournament (series index, game index). Draft, Roster and
// Result are pointers: nil means the page did not carry that part, and every
// sink writes an explicit absent marker for it instead of dropping the column.
//
// Pick, ban and roster lists are stored on the page as one combined sequence
// with the blue side's entries first. SplitSides is the single place that
// turns such a sequence into its two halves and it refuses odd lengths.
package match
