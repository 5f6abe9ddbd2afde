package deck

import (
	"errors"
	"fmt"
	"testing"
)

func testCatalog(prefixes, roots, suffixes int) *Catalog {
	c := &Catalog{}
	for i := 0; i < prefixes; i++ {
		c.Prefixes = append(c.Prefixes, Card{Word: fmt.Sprintf("pre%d-", i), Kind: KindPrefix})
	}
	for i := 0; i < roots; i++ {
		c.Roots = append(c.Roots, Card{Word: fmt.Sprintf("root%d", i), Kind: KindRoot})
	}
	for i := 0; i < suffixes; i++ {
		c.Suffixes = append(c.Suffixes, Card{Word: fmt.Sprintf("-suf%d", i), Kind: KindSuffix})
	}
	return c
}

func TestDealComposition(t *testing.T) {
	players := []string{"U1", "U2", "U3"}
	cat := testCatalog(3, 7, 6) // exactly enough for 3 players

	d, err := cat.Deal(players)
	if err != nil {
		t.Fatalf("deal failed: %v", err)
	}

	if d.MainCard.Kind != KindRoot {
		t.Fatalf("main card should be a root, got %s", d.MainCard.Kind)
	}
	if len(d.Players) != 3 {
		t.Fatalf("expected 3 players in deal, got %d", len(d.Players))
	}

	seen := map[string]bool{d.MainCard.Word: true}
	for _, p := range players {
		hand := d.Hand(p)
		if len(hand) != 5 {
			t.Fatalf("player %s: expected 5 cards, got %d", p, len(hand))
		}
		kinds := map[Kind]int{}
		for _, c := range hand {
			kinds[c.Kind]++
			if seen[c.Word] {
				t.Fatalf("card %q dealt twice", c.Word)
			}
			seen[c.Word] = true
		}
		if kinds[KindPrefix] != 1 || kinds[KindRoot] != 2 || kinds[KindSuffix] != 2 {
			t.Fatalf("player %s: wrong hand composition: %v", p, kinds)
		}
	}
}

func TestDealPreservesRosterOrder(t *testing.T) {
	players := []string{"U9", "U1", "U5"}
	cat := testCatalog(5, 10, 8)

	d, err := cat.Deal(players)
	if err != nil {
		t.Fatalf("deal failed: %v", err)
	}
	for i, p := range players {
		if d.Players[i] != p {
			t.Fatalf("deal order %v, want %v", d.Players, players)
		}
	}
}

func TestDealInsufficientCards(t *testing.T) {
	cases := []struct {
		name             string
		prefixes, roots, suffixes int
	}{
		{"too few roots", 3, 6, 6},
		{"too few prefixes", 2, 7, 6},
		{"too few suffixes", 3, 7, 5},
	}
	players := []string{"U1", "U2", "U3"}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cat := testCatalog(tc.prefixes, tc.roots, tc.suffixes)
			d, err := cat.Deal(players)
			if !errors.Is(err, ErrInsufficientCards) {
				t.Fatalf("expected ErrInsufficientCards, got %v", err)
			}
			if d != nil {
				t.Fatal("failed deal must not return a partial deal")
			}
		})
	}
}

func TestDealDoesNotMutateCatalog(t *testing.T) {
	cat := testCatalog(4, 9, 8)
	before := cat.Roots[0].Word
	if _, err := cat.Deal([]string{"U1", "U2"}); err != nil {
		t.Fatalf("deal failed: %v", err)
	}
	if cat.Roots[0].Word != before {
		t.Fatal("deal must operate on copies of the pools")
	}
	if len(cat.Roots) != 9 || len(cat.Prefixes) != 4 || len(cat.Suffixes) != 8 {
		t.Fatal("deal must not consume catalog pools")
	}
}
