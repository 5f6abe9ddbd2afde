package slackbot

import (
	"context"
	"fmt"

	"github.com/slack-go/slack"

	"wordsmith/internal/deck"
)

// Sender adapts the Slack web API to the session's outbound capability.
// Message identity is the Slack timestamp.
type Sender struct {
	api *slack.Client
}

func NewSender(api *slack.Client) *Sender {
	return &Sender{api: api}
}

func (s *Sender) Send(ctx context.Context, channel, text string, cards []deck.Card) (string, error) {
	opts := []slack.MsgOption{slack.MsgOptionText(text, false)}
	if len(cards) > 0 {
		opts = append(opts, slack.MsgOptionAttachments(Attachments(cards)...))
	}
	_, ts, err := s.api.PostMessageContext(ctx, channel, opts...)
	if err != nil {
		return "", fmt.Errorf("post message to %s: %w", channel, err)
	}
	return ts, nil
}

func (s *Sender) React(ctx context.Context, channel, messageID, name string) error {
	err := s.api.AddReactionContext(ctx, name, slack.ItemRef{Channel: channel, Timestamp: messageID})
	if err != nil {
		return fmt.Errorf("add reaction %s: %w", name, err)
	}
	return nil
}

func (s *Sender) OpenDM(ctx context.Context, user string) (string, error) {
	ch, _, _, err := s.api.OpenConversationContext(ctx, &slack.OpenConversationParameters{
		Users: []string{user},
	})
	if err != nil {
		return "", fmt.Errorf("open conversation with %s: %w", user, err)
	}
	return ch.ID, nil
}

// Attachments renders cards as colored Slack attachments, one per card.
func Attachments(cards []deck.Card) []slack.Attachment {
	out := make([]slack.Attachment, len(cards))
	for i, c := range cards {
		out[i] = slack.Attachment{
			Title:  c.Word,
			Text:   fmt.Sprintf("%s; %s", c.Kind, c.Definition),
			Footer: c.Example,
			Color:  c.Color(),
		}
	}
	return out
}
