package slackbot

import (
	"context"
	"testing"

	"github.com/slack-go/slack/slackevents"

	"wordsmith/internal/game"
)

type call struct {
	kind    string // "group" | "dm" | "reaction"
	user    string
	channel string
	text    string
	r       game.Reaction
}

type fakeGame struct {
	calls []call
}

func (f *fakeGame) HandleGroupMessage(_ context.Context, user, text string) error {
	f.calls = append(f.calls, call{kind: "group", user: user, text: text})
	return nil
}

func (f *fakeGame) HandleDirectMessage(_ context.Context, user, channel, text string) error {
	f.calls = append(f.calls, call{kind: "dm", user: user, channel: channel, text: text})
	return nil
}

func (f *fakeGame) HandleReaction(_ context.Context, r game.Reaction) error {
	f.calls = append(f.calls, call{kind: "reaction", r: r})
	return nil
}

func newTestRouter() (*Router, *fakeGame) {
	g := &fakeGame{}
	return NewRouter(g, "C1", "UBOT"), g
}

func TestDispatchGroupMessage(t *testing.T) {
	r, g := newTestRouter()
	err := r.Dispatch(context.Background(), &slackevents.MessageEvent{
		User: "U1", Channel: "C1", ChannelType: "channel", Text: "start",
	})
	if err != nil {
		t.Fatal(err)
	}
	if len(g.calls) != 1 || g.calls[0].kind != "group" || g.calls[0].text != "start" {
		t.Fatalf("calls = %+v", g.calls)
	}
}

func TestDispatchDirectMessage(t *testing.T) {
	r, g := newTestRouter()
	err := r.Dispatch(context.Background(), &slackevents.MessageEvent{
		User: "U1", Channel: "D1", ChannelType: "im", Text: "w (x): y",
	})
	if err != nil {
		t.Fatal(err)
	}
	if len(g.calls) != 1 || g.calls[0].kind != "dm" || g.calls[0].channel != "D1" {
		t.Fatalf("calls = %+v", g.calls)
	}
}

func TestDispatchIgnoresNoise(t *testing.T) {
	r, g := newTestRouter()
	events := []any{
		// Own messages and reactions.
		&slackevents.MessageEvent{User: "UBOT", Channel: "C1", ChannelType: "channel", Text: "start"},
		&slackevents.ReactionAddedEvent{User: "UBOT", Reaction: "raised_hands"},
		// Other bots and message edits.
		&slackevents.MessageEvent{User: "U1", BotID: "B1", Channel: "C1", ChannelType: "channel", Text: "go"},
		&slackevents.MessageEvent{User: "U1", SubType: "message_changed", Channel: "C1", ChannelType: "channel", Text: "go"},
		// Messages in unmonitored channels.
		&slackevents.MessageEvent{User: "U1", Channel: "C9", ChannelType: "channel", Text: "start"},
		// Events the router has no case for.
		&slackevents.AppMentionEvent{User: "U1"},
	}
	for _, ev := range events {
		if err := r.Dispatch(context.Background(), ev); err != nil {
			t.Fatal(err)
		}
	}
	if len(g.calls) != 0 {
		t.Fatalf("noise should not reach the game, got %+v", g.calls)
	}
}

func TestDispatchReactions(t *testing.T) {
	r, g := newTestRouter()
	added := &slackevents.ReactionAddedEvent{User: "U1", Reaction: "raised_hands"}
	added.Item.Channel = "C1"
	added.Item.Timestamp = "123.456"
	removed := &slackevents.ReactionRemovedEvent{User: "U1", Reaction: "raised_hands"}
	removed.Item.Channel = "C1"
	removed.Item.Timestamp = "123.456"

	if err := r.Dispatch(context.Background(), added); err != nil {
		t.Fatal(err)
	}
	if err := r.Dispatch(context.Background(), removed); err != nil {
		t.Fatal(err)
	}

	if len(g.calls) != 2 {
		t.Fatalf("expected 2 reaction calls, got %+v", g.calls)
	}
	if g.calls[0].r.Removed || !g.calls[1].r.Removed {
		t.Fatalf("add/remove flags wrong: %+v", g.calls)
	}
	if g.calls[0].r.MessageID != "123.456" || g.calls[0].r.Name != "raised_hands" {
		t.Fatalf("reaction fields wrong: %+v", g.calls[0].r)
	}
}
