package slackbot

import (
	"context"

	"github.com/rs/zerolog/log"
	"github.com/slack-go/slack/slackevents"
	"github.com/slack-go/slack/socketmode"

	"wordsmith/internal/game"
)

// Game is the slice of the session the router dispatches into.
type Game interface {
	HandleGroupMessage(ctx context.Context, user, text string) error
	HandleDirectMessage(ctx context.Context, user, channel, text string) error
	HandleReaction(ctx context.Context, r game.Reaction) error
}

// Router classifies inbound Slack events and calls the matching session
// handler. It is driven by a single event loop, so handlers run one at a
// time in arrival order.
type Router struct {
	game    Game
	channel string // the monitored group channel
	selfID  string // the bot's own user ID, whose events are dropped
}

func NewRouter(g Game, channel, selfID string) *Router {
	return &Router{game: g, channel: channel, selfID: selfID}
}

// HandleEvent processes one socketmode event. Events the bot does not care
// about are acked and dropped.
func (r *Router) HandleEvent(ctx context.Context, evt socketmode.Event, client *socketmode.Client) {
	if evt.Type != socketmode.EventTypeEventsAPI {
		return
	}
	apiEvent, ok := evt.Data.(slackevents.EventsAPIEvent)
	if !ok {
		return
	}
	if evt.Request != nil {
		client.Ack(*evt.Request)
	}
	if err := r.Dispatch(ctx, apiEvent.InnerEvent.Data); err != nil {
		log.Error().Err(err).Str("event", apiEvent.InnerEvent.Type).Msg("event handling failed")
	}
}

// Dispatch routes one decoded event into the session.
func (r *Router) Dispatch(ctx context.Context, data any) error {
	switch ev := data.(type) {
	case *slackevents.MessageEvent:
		if ev.User == r.selfID || ev.User == "" || ev.BotID != "" || ev.SubType != "" {
			return nil
		}
		switch {
		case ev.ChannelType == "im":
			log.Debug().Str("user", ev.User).Msg("private message")
			return r.game.HandleDirectMessage(ctx, ev.User, ev.Channel, ev.Text)
		case ev.Channel == r.channel:
			log.Debug().Str("user", ev.User).Str("text", ev.Text).Msg("group message")
			return r.game.HandleGroupMessage(ctx, ev.User, ev.Text)
		}
		return nil

	case *slackevents.ReactionAddedEvent:
		if ev.User == r.selfID {
			return nil
		}
		return r.game.HandleReaction(ctx, game.Reaction{
			User:      ev.User,
			Channel:   ev.Item.Channel,
			MessageID: ev.Item.Timestamp,
			Name:      ev.Reaction,
		})

	case *slackevents.ReactionRemovedEvent:
		if ev.User == r.selfID {
			return nil
		}
		return r.game.HandleReaction(ctx, game.Reaction{
			User:      ev.User,
			Channel:   ev.Item.Channel,
			MessageID: ev.Item.Timestamp,
			Name:      ev.Reaction,
			Removed:   true,
		})
	}
	return nil
}
