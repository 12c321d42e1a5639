// Package golgg knows the layout of the gol.gg statistics site.
//
// A Site is built once from the configuration and holds the compiled
// selectors and path rules. It turns a tournament match list into series
// links, a series page into its game links, and a game page into the draft,
// roster and result of that game.
//
// The blue side always renders first on a game page. Every combined list
// (bans, picks, players) is split at its midpoint: first half blue, second
// half red. Lists of odd length are reported as PARSE_INCONSISTENT and the
// affected part is left empty.
package golgg
