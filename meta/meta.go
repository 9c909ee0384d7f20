// meta/meta.go
package meta

// GO_ROUTINES defines the number of games simulated in parallel.
const GO_ROUTINES = 8

// GAMES_PER_MATCHUP defines how many games each pair of bots plays.
const GAMES_PER_MATCHUP = 30

// MAX_TURNS caps a simulated game. Every seat acts at most once per turn.
const MAX_TURNS = 300
