// Package cli implements the command-line interface for golgg-drafts.
//
// The scrape command takes a tournament and an output path, runs the
// pipeline and writes the rows to a CSV file or SQLite database. Everything
// else (selectors, headers, workers, logging) comes from the optional config
// file. patch-stats and bans are auxiliary commands for champion presence
// per patch and for ban training samples.
package cli
