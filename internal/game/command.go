package game

import "strings"

// Command is the closed set of group-channel commands. The state machine
// switches on Command values only; the word matching lives here.
type Command int

const (
	CmdUnrecognized Command = iota
	CmdStartRound           // "new" / "start": open recruiting
	CmdBeginRound           // "go" / "begin": deal and start the round
	CmdReveal               // "done" / "reveal": attempt the reveal
	CmdRules                // "rules": explain the game
	CmdReset                // "reset": abort the session
)

var commandWords = map[string]Command{
	"new":    CmdStartRound,
	"start":  CmdStartRound,
	"go":     CmdBeginRound,
	"begin":  CmdBeginRound,
	"done":   CmdReveal,
	"reveal": CmdReveal,
	"rules":  CmdRules,
	"reset":  CmdReset,
}

// ClassifyCommand maps free group-channel text to a Command. Matching is
// case-insensitive on whole words, so "START" and "let's start" both open
// recruiting while "restart" does not.
func ClassifyCommand(text string) Command {
	for _, w := range strings.Fields(strings.ToLower(text)) {
		if cmd, ok := commandWords[strings.Trim(w, ".,!?:;\"'")]; ok {
			return cmd
		}
	}
	return CmdUnrecognized
}
