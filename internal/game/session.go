package game

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"wordsmith/internal/deck"
)

const wantedForm = `Reply in the form: "word (word-o-parts): definition". (E.g. "superchronescence (super-chron-escence): the act of becoming a time-powered superhero")`

const rulesText = `Each round everyone shares one main word part and gets five secret cards: a prefix, two roots and two suffixes. ` +
	`Build a word that uses the main part plus any of your cards, invent a definition, and send it to me privately. ` +
	wantedForm + ` When everyone is ready the submissions are revealed together.`

// Config carries the per-room session settings.
type Config struct {
	Channel       string        // the monitored group channel
	JoinReaction  string        // reaction name toggling roster membership
	ReadyReaction string        // reaction name signaling "I am done"
	RevealTimeout time.Duration // after this, a reveal may proceed with partial submissions
}

// Session is the per-room state machine. One handler runs at a time; the
// mutex also covers snapshot reads from the spectator feed.
type Session struct {
	cfg     Config
	catalog *deck.Catalog
	sender  Sender

	mu          sync.Mutex
	state       State
	roundID     string
	roster      []string // join order
	joinMsgID   string
	readyMsgID  string
	deal        *deck.Deal
	submissions map[string]*Submission
	arrival     []string // submission arrival order, used for the reveal
	ready       map[string]struct{}
	startedAt   time.Time
	dms         map[string]string // user -> DM channel, cached across rounds

	observer func(Snapshot)
	now      func() time.Time
}

func NewSession(catalog *deck.Catalog, sender Sender, cfg Config) *Session {
	return &Session{
		cfg:         cfg,
		catalog:     catalog,
		sender:      sender,
		state:       StateIdle,
		submissions: make(map[string]*Submission),
		ready:       make(map[string]struct{}),
		dms:         make(map[string]string),
		now:         time.Now,
	}
}

// SetObserver registers a callback invoked with a fresh snapshot after
// every handled event. The callback must not call back into the session.
func (s *Session) SetObserver(fn func(Snapshot)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.observer = fn
}

// Snapshot returns the current spectator view.
func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

func (s *Session) snapshotLocked() Snapshot {
	snap := Snapshot{
		State:          s.state,
		RoundID:        s.roundID,
		Players:        append([]string(nil), s.roster...),
		SubmittedCount: len(s.submissions),
		ReadyCount:     len(s.ready),
		StartedAt:      s.startedAt,
	}
	if s.state == StateInProgress && s.deal != nil {
		snap.MainWord = s.deal.MainCard.Word
	}
	return snap
}

func (s *Session) notifyLocked() {
	if s.observer != nil {
		s.observer(s.snapshotLocked())
	}
}

// HandleGroupMessage processes a message posted in the game channel.
// Non-command chatter is ignored.
func (s *Session) HandleGroupMessage(ctx context.Context, user, text string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	defer s.notifyLocked()

	switch ClassifyCommand(text) {
	case CmdStartRound:
		return s.startRound(ctx)
	case CmdBeginRound:
		return s.beginRound(ctx)
	case CmdReveal:
		return s.requestReveal(ctx)
	case CmdRules:
		_, err := s.sender.Send(ctx, s.cfg.Channel, rulesText, nil)
		return err
	case CmdReset:
		return s.reset(ctx)
	default:
		return nil
	}
}

func (s *Session) startRound(ctx context.Context) error {
	switch s.state {
	case StateRecruiting:
		_, err := s.sender.Send(ctx, s.cfg.Channel,
			fmt.Sprintf("Recruiting is already open! React with :%s: on the join message, then say \"begin\".", s.cfg.JoinReaction), nil)
		return err
	case StateInProgress:
		_, err := s.sender.Send(ctx, s.cfg.Channel, "A round is already in progress! Say \"reveal\" to finish it or \"reset\" to abort.", nil)
		return err
	}

	id, err := s.sender.Send(ctx, s.cfg.Channel,
		fmt.Sprintf("A new round is open! React with :%s: to join, then say \"begin\" when everyone is in.", s.cfg.JoinReaction), nil)
	if err != nil {
		return err
	}
	s.state = StateRecruiting
	s.joinMsgID = id
	s.roster = nil
	// Seed the reaction so joining is a single tap.
	return s.sender.React(ctx, s.cfg.Channel, id, s.cfg.JoinReaction)
}

func (s *Session) beginRound(ctx context.Context) error {
	switch s.state {
	case StateIdle:
		_, err := s.sender.Send(ctx, s.cfg.Channel, "No round is open. Say \"start\" to open one.", nil)
		return err
	case StateInProgress:
		_, err := s.sender.Send(ctx, s.cfg.Channel, "A round is already in progress! Say \"reveal\" to finish it or \"reset\" to abort.", nil)
		return err
	}

	if len(s.roster) == 0 {
		_, err := s.sender.Send(ctx, s.cfg.Channel,
			fmt.Sprintf("Nobody has joined yet! React with :%s: on the join message first.", s.cfg.JoinReaction), nil)
		return err
	}

	d, err := s.catalog.Deal(s.roster)
	if err != nil {
		// The session stays in recruiting, untouched.
		_, _ = s.sender.Send(ctx, s.cfg.Channel,
			fmt.Sprintf("The card catalog can't cover %d players. Ask the operator to add cards or shrink the roster.", len(s.roster)), nil)
		return fmt.Errorf("begin round: %w", err)
	}

	s.state = StateInProgress
	s.roundID = uuid.NewString()
	s.deal = d
	s.submissions = make(map[string]*Submission)
	s.arrival = nil
	s.ready = make(map[string]struct{})
	s.startedAt = s.now()

	if _, err := s.sender.Send(ctx, s.cfg.Channel,
		"The main word is: (You have been messaged your cards)", []deck.Card{d.MainCard}); err != nil {
		return err
	}
	for _, user := range s.roster {
		dm, err := s.dmChannel(ctx, user)
		if err != nil {
			return err
		}
		if _, err := s.sender.Send(ctx, dm, "The main word is:", []deck.Card{d.MainCard}); err != nil {
			return err
		}
		if _, err := s.sender.Send(ctx, dm, "Your words are: "+wantedForm, d.Hand(user)); err != nil {
			return err
		}
	}

	id, err := s.sender.Send(ctx, s.cfg.Channel,
		fmt.Sprintf("React with :%s: here once your word is in. I'll reveal when everyone is ready.", s.cfg.ReadyReaction), nil)
	if err != nil {
		return err
	}
	s.readyMsgID = id
	return s.sender.React(ctx, s.cfg.Channel, id, s.cfg.ReadyReaction)
}

func (s *Session) requestReveal(ctx context.Context) error {
	switch s.state {
	case StateIdle:
		_, err := s.sender.Send(ctx, s.cfg.Channel, "No round is running! Say \"start\" to open one.", nil)
		return err
	case StateRecruiting:
		_, err := s.sender.Send(ctx, s.cfg.Channel, "The round hasn't started yet. Say \"begin\" to deal the cards.", nil)
		return err
	}

	outstanding := s.outstanding()
	expired := s.cfg.RevealTimeout > 0 && s.now().Sub(s.startedAt) > s.cfg.RevealTimeout
	if len(outstanding) > 0 && !(expired && len(s.submissions) > 0) {
		mentions := make([]string, len(outstanding))
		for i, u := range outstanding {
			mentions[i] = "<@" + u + ">"
		}
		_, err := s.sender.Send(ctx, s.cfg.Channel,
			"Not everybody has submitted a word! Still waiting on: "+strings.Join(mentions, ", "), nil)
		return err
	}
	return s.reveal(ctx)
}

// outstanding lists roster members without a submission, in join order.
func (s *Session) outstanding() []string {
	var out []string
	for _, u := range s.roster {
		if _, ok := s.submissions[u]; !ok {
			out = append(out, u)
		}
	}
	return out
}

func (s *Session) reveal(ctx context.Context) error {
	if len(s.arrival) == 0 {
		if _, err := s.sender.Send(ctx, s.cfg.Channel, "Nobody submitted a word this round. Better luck next time!", nil); err != nil {
			return err
		}
		s.clear()
		return nil
	}
	for _, user := range s.arrival {
		sub := s.submissions[user]
		text := fmt.Sprintf("<@%s> made the word: *%s*, meaning: \"%s\", out of:", user, sub.Word, sub.Definition)
		if _, err := s.sender.Send(ctx, s.cfg.Channel, text, sub.UsedCards); err != nil {
			return err
		}
	}
	s.clear()
	return nil
}

func (s *Session) reset(ctx context.Context) error {
	s.clear()
	_, err := s.sender.Send(ctx, s.cfg.Channel, "Game reset. Say \"start\" to open a new round.", nil)
	return err
}

// clear drops all round state and returns the session to idle.
func (s *Session) clear() {
	s.state = StateIdle
	s.roundID = ""
	s.roster = nil
	s.joinMsgID = ""
	s.readyMsgID = ""
	s.deal = nil
	s.submissions = make(map[string]*Submission)
	s.arrival = nil
	s.ready = make(map[string]struct{})
	s.startedAt = time.Time{}
}

// HandleDirectMessage processes a player's private reply: a submission
// attempt for the current round.
func (s *Session) HandleDirectMessage(ctx context.Context, user, channel, text string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	defer s.notifyLocked()

	if s.state != StateInProgress {
		_, err := s.sender.Send(ctx, channel, "No round is running! Say \"start\" in the game channel to open one.", nil)
		return err
	}
	if !s.inRoster(user) {
		_, err := s.sender.Send(ctx, channel, "You're not in this round. React to the join message next time a round opens.", nil)
		return err
	}

	parsed, err := ParseSubmission(text, s.deal.Hand(user), s.deal.MainCard)
	switch err {
	case nil:
	case ErrMalformed:
		_, err := s.sender.Send(ctx, channel, wantedForm, nil)
		return err
	case ErrNoCardsCited:
		_, err := s.sender.Send(ctx, channel, "I couldn't find your cards in your word parts. "+wantedForm, nil)
		return err
	case ErrMainCardMissing:
		_, err := s.sender.Send(ctx, channel, "I couldn't find the main word in your word parts. "+wantedForm, nil)
		return err
	default:
		return err
	}

	if _, resubmit := s.submissions[user]; !resubmit {
		s.arrival = append(s.arrival, user)
	}
	s.submissions[user] = &Submission{
		Word:       parsed.Word,
		UsedCards:  parsed.UsedCards,
		Definition: parsed.Definition,
	}

	echo := fmt.Sprintf("Your submission: *%s*: \"%s\"", parsed.Word, parsed.Definition)
	_, err = s.sender.Send(ctx, channel, echo, parsed.UsedCards)
	return err
}

// HandleReaction processes a reaction toggle. Reactions on untracked
// messages, with other names, or from players outside the roster are
// ignored.
func (s *Session) HandleReaction(ctx context.Context, r Reaction) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	defer s.notifyLocked()

	switch {
	case s.state == StateRecruiting && r.MessageID == s.joinMsgID && r.Name == s.cfg.JoinReaction:
		if r.Removed {
			s.removeFromRoster(r.User)
		} else {
			s.addToRoster(r.User)
		}
		return nil

	case s.state == StateInProgress && r.MessageID == s.readyMsgID && r.Name == s.cfg.ReadyReaction:
		if !s.inRoster(r.User) {
			return nil
		}
		if r.Removed {
			// No-op when the player never marked ready.
			delete(s.ready, r.User)
			return nil
		}
		s.ready[r.User] = struct{}{}
		if len(s.ready) == len(s.roster) {
			return s.reveal(ctx)
		}
		return nil
	}
	return nil
}

func (s *Session) inRoster(user string) bool {
	for _, u := range s.roster {
		if u == user {
			return true
		}
	}
	return false
}

func (s *Session) addToRoster(user string) {
	if !s.inRoster(user) {
		s.roster = append(s.roster, user)
	}
}

func (s *Session) removeFromRoster(user string) {
	for i, u := range s.roster {
		if u == user {
			s.roster = append(s.roster[:i], s.roster[i+1:]...)
			return
		}
	}
}

func (s *Session) dmChannel(ctx context.Context, user string) (string, error) {
	if dm, ok := s.dms[user]; ok {
		return dm, nil
	}
	dm, err := s.sender.OpenDM(ctx, user)
	if err != nil {
		return "", fmt.Errorf("open DM with %s: %w", user, err)
	}
	s.dms[user] = dm
	return dm, nil
}
