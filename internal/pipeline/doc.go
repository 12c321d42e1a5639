// Package pipeline turns a tournament into rows.
//
// An Assembler discovers the series of a tournament, expands each series
// into its games and extracts one row per game. Failures are contained at the
// series or game they affect and collected in the Report; the run itself
// always completes. With more than one worker, series are processed
// concurrently and the rows are merged back into series then game order.
package pipeline
