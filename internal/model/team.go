package model

import "strings"

// TeamID identifies a team within a tournament. IDs start at 1.
type TeamID int

// Team is a fixed pair of players competing together
type Team struct {
	ID      TeamID    `json:"id"`
	Players [2]string `json:"players"`
	Wins    int       `json:"wins"`
	Losses  int       `json:"losses"`
}

// Name returns the display name of the team, e.g. "Ana & Bea"
func (t Team) Name() string {
	return strings.Join(t.Players[:], " & ")
}

// Played returns the number of matches with a recorded result
func (t Team) Played() int {
	return t.Wins + t.Losses
}

// HasPlayer reports whether the given name belongs to this team
func (t Team) HasPlayer(name string) bool {
	return t.Players[0] == name || t.Players[1] == name
}
