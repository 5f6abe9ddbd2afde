package slackbot

import (
	"testing"

	"wordsmith/internal/deck"
)

func TestAttachments(t *testing.T) {
	cards := []deck.Card{
		{Word: "chron", Kind: deck.KindRoot, Definition: "time", Example: "chronic"},
		{Word: "super-", Kind: deck.KindPrefix, Definition: "above, beyond", Example: "superhuman"},
		{Word: "-escence", Kind: deck.KindSuffix, Definition: "process of becoming", Example: "adolescence"},
	}
	atts := Attachments(cards)
	if len(atts) != 3 {
		t.Fatalf("got %d attachments, want 3", len(atts))
	}
	if atts[0].Title != "chron" || atts[0].Color != "#0F13DB" {
		t.Fatalf("root attachment wrong: %+v", atts[0])
	}
	if atts[1].Color != "good" || atts[2].Color != "danger" {
		t.Fatalf("kind colors wrong: %q / %q", atts[1].Color, atts[2].Color)
	}
	if atts[0].Text != "root; time" {
		t.Fatalf("attachment text = %q", atts[0].Text)
	}
	if atts[0].Footer != "chronic" {
		t.Fatalf("attachment footer = %q", atts[0].Footer)
	}
}
