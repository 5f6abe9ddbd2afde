package deck

import (
	"errors"
	"math/rand"
)

var ErrInsufficientCards = errors.New("not enough cards in the catalog for this many players")

// Hand is the 5 cards dealt to one player: 1 prefix, 2 roots, 2 suffixes,
// in that order.
const (
	prefixesPerHand = 1
	rootsPerHand    = 2
	suffixesPerHand = 2
)

// Deal is one round's card assignment. Every card across MainCard and all
// hands is distinct.
type Deal struct {
	MainCard Card
	Players  []string          // roster order the hands were dealt in
	Hands    map[string][]Card // player -> 5 cards
}

// Hand returns the cards dealt to the given player.
func (d *Deal) Hand(player string) []Card {
	return d.Hands[player]
}

// Deal draws a main root card and a hand per player, without replacement,
// from independently shuffled copies of the catalog pools. Players are
// served in the given order; because the pools shrink as hands are dealt,
// later players draw from a smaller remaining pool. That bias is inherent
// to the scheme and immaterial at party sizes.
//
// Fails with ErrInsufficientCards before drawing anything if the catalog
// cannot cover the roster.
func (c *Catalog) Deal(players []string) (*Deal, error) {
	n := len(players)
	if len(c.Roots) < 1+rootsPerHand*n ||
		len(c.Prefixes) < prefixesPerHand*n ||
		len(c.Suffixes) < suffixesPerHand*n {
		return nil, ErrInsufficientCards
	}

	prefixes := shuffled(c.Prefixes)
	roots := shuffled(c.Roots)
	suffixes := shuffled(c.Suffixes)

	d := &Deal{
		MainCard: roots[0],
		Players:  append([]string(nil), players...),
		Hands:    make(map[string][]Card, n),
	}
	roots = roots[1:]

	for _, p := range players {
		hand := []Card{
			prefixes[0],
			roots[0],
			roots[1],
			suffixes[0],
			suffixes[1],
		}
		prefixes = prefixes[1:]
		roots = roots[2:]
		suffixes = suffixes[2:]
		d.Hands[p] = hand
	}
	return d, nil
}

// shuffled returns a shuffled copy; the catalog pools are never mutated.
func shuffled(pool []Card) []Card {
	out := make([]Card, len(pool))
	copy(out, pool)
	rand.Shuffle(len(out), func(i, j int) { out[i], out[j] = out[j], out[i] })
	return out
}
