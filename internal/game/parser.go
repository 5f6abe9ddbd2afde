package game

import (
	"errors"
	"regexp"
	"sort"
	"strings"

	"wordsmith/internal/deck"
)

var (
	ErrMalformed       = errors.New("submission does not match the expected form")
	ErrNoCardsCited    = errors.New("no dealt cards found in the cited parts")
	ErrMainCardMissing = errors.New("main card not found in the cited parts")
)

// submissionRe matches `word ("parts"): definition`. The quotes around the
// parts are optional; a trailing quote left inside the parens stays part of
// the parts text, which substring matching does not mind.
var submissionRe = regexp.MustCompile(`^\s*(\S+)\s*\("?([^)]+)"?\)\s*:\s*(.*)`)

// ParsedSubmission is the result of a successful parse. Cards are ordered
// by the first occurrence of their word in the cited-parts text.
type ParsedSubmission struct {
	Word       string
	UsedCards  []deck.Card
	Definition string
}

// ParseSubmission parses a player's private reply against their hand and
// the round's main card. It is pure; recording the result is the caller's
// job.
func ParseSubmission(text string, hand []deck.Card, main deck.Card) (*ParsedSubmission, error) {
	m := submissionRe.FindStringSubmatch(text)
	if m == nil {
		return nil, ErrMalformed
	}
	word, parts, definition := m[1], m[2], m[3]

	candidates := make([]deck.Card, 0, len(hand)+1)
	candidates = append(candidates, hand...)
	candidates = append(candidates, main)

	var used []deck.Card
	for _, c := range candidates {
		if strings.Contains(parts, c.Word) {
			used = append(used, c)
		}
	}
	if len(used) == 0 {
		return nil, ErrNoCardsCited
	}
	sort.SliceStable(used, func(i, j int) bool {
		return strings.Index(parts, used[i].Word) < strings.Index(parts, used[j].Word)
	})

	cited := false
	for _, c := range used {
		if c.Word == main.Word && c.Kind == main.Kind {
			cited = true
			break
		}
	}
	if !cited {
		return nil, ErrMainCardMissing
	}

	return &ParsedSubmission{Word: word, UsedCards: used, Definition: definition}, nil
}
