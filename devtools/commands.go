// Package devtools exposes developer shortcuts as commands, applied by the
// game loop, and an optional HTTP endpoint that queues them.
package devtools

import (
	"errors"
	"fmt"
	"time"

	"github.com/akorn123w/FishingInTheVoid/game"
)

// Command is a developer action.
type Command string

const (
	CommandGrant       Command = "grant"      // Add GrantAmount clicks
	CommandReset       Command = "reset"      // Zero the balance
	CommandMultiplier  Command = "multiplier" // Toggle the dev click multiplier
	CommandTogglePause Command = "pause"
)

// GrantAmount is how many clicks CommandGrant adds.
const GrantAmount = 1000

var ErrUnknownCommand = errors.New("unknown command")

// Commands lists every command in display order.
var Commands = []Command{CommandGrant, CommandReset, CommandMultiplier, CommandTogglePause}

// ParseCommand validates a command name.
func ParseCommand(name string) (Command, error) {
	for _, c := range Commands {
		if string(c) == name {
			return c, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownCommand, name)
}

// Apply runs cmd against g and returns a short description of the result.
func Apply(g *game.Game, cmd Command, now time.Time) (string, error) {
	switch cmd {
	case CommandGrant:
		g.Grant(GrantAmount, now)
		return fmt.Sprintf("+%d clicks", GrantAmount), nil
	case CommandReset:
		g.ResetClicks(now)
		return "clicks reset", nil
	case CommandMultiplier:
		return fmt.Sprintf("multiplier x%d", g.ToggleDevMultiplier()), nil
	case CommandTogglePause:
		if g.TogglePause(now) {
			return "paused", nil
		}
		return "resumed", nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownCommand, cmd)
}
