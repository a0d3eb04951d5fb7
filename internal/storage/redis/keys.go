package redis

import "fmt"

// Key prefix for all tournament data
const keyPrefix = "padel"

// tournamentKey returns the Redis key holding the tournament snapshot
func tournamentKey() string {
	return fmt.Sprintf("%s:tournament", keyPrefix)
}

// userKey returns the Redis key for a User
func userKey(username string) string {
	return fmt.Sprintf("%s:user:%s", keyPrefix, username)
}

// usersIndexKey returns the Redis key for the SET of usernames
func usersIndexKey() string {
	return fmt.Sprintf("%s:idx:users", keyPrefix)
}
