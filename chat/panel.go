package chat

import (
	"context"
	"io"
	"strings"
	"sync"
	"time"

	"estateinsights/models"
	"estateinsights/validation"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
)

const (
	Greeting           = "Hey! 👋 Upload Excel or ask about an area like 'Wakad'."
	UploadConfirmation = "Excel uploaded ✔ Now ask something!"

	// DefaultConfirmDelay is how long the typing indicator stays up after an upload settles.
	DefaultConfirmDelay = 600 * time.Millisecond
)

var (
	ErrNoFile = errors.New("chat: no file selected")
	ErrClosed = errors.New("chat: panel closed")
)

// State is the panel's reply state.
type State string

const (
	StateIdle          State = "idle"
	StateAwaitingReply State = "awaiting_reply"
)

// Responder is the capability the panel delegates to. The panel never talks
// to the backend itself; it only records what the responder answers.
type Responder interface {
	Query(ctx context.Context, text string) string
	Upload(ctx context.Context, filename string, file io.Reader) string
}

// TranscriptStore keeps the append-only message list of a session.
type TranscriptStore interface {
	AppendMessage(sessionID string, msg models.ChatMessage) error
	GetMessages(sessionID string) ([]models.ChatMessage, error)
}

type Option func(*Panel)

// WithConfirmDelay overrides the delay before the upload confirmation is shown.
func WithConfirmDelay(d time.Duration) Option {
	return func(p *Panel) {
		p.confirmDelay = d
	}
}

// WithClock replaces time.Now for message timestamps.
func WithClock(now func() time.Time) Option {
	return func(p *Panel) {
		p.now = now
	}
}

// Panel is one session's chat: transcript, input handling and the typing indicator.
type Panel struct {
	sessionID    string
	store        TranscriptStore
	responder    Responder
	confirmDelay time.Duration
	now          func() time.Time

	mu      sync.Mutex
	pending int
	closed  bool
}

// New creates a panel and records the greeting as its first message.
func New(sessionID string, store TranscriptStore, responder Responder, opts ...Option) (*Panel, error) {
	p := &Panel{
		sessionID:    sessionID,
		store:        store,
		responder:    responder,
		confirmDelay: DefaultConfirmDelay,
		now:          time.Now,
	}
	for _, opt := range opts {
		opt(p)
	}

	if err := p.addMessage(models.SenderBot, Greeting); err != nil {
		return nil, err
	}
	return p, nil
}

func (p *Panel) SessionID() string {
	return p.sessionID
}

// addMessage appends under the panel lock, so once Close returns nothing
// more is written for the session.
func (p *Panel) addMessage(sender models.Sender, text string) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return ErrClosed
	}

	msg := models.ChatMessage{Sender: sender, Text: text, Timestamp: p.now()}
	if err := p.store.AppendMessage(p.sessionID, msg); err != nil {
		return errors.Wrap(err, "append chat message")
	}
	return nil
}

// Close stops the panel from recording further messages. Replies and upload
// confirmations still in flight are dropped.
func (p *Panel) Close() {
	p.mu.Lock()
	p.closed = true
	p.mu.Unlock()
}

func (p *Panel) begin() {
	p.mu.Lock()
	p.pending++
	p.mu.Unlock()
}

func (p *Panel) end() {
	p.mu.Lock()
	if p.pending > 0 {
		p.pending--
	}
	p.mu.Unlock()
}

// State reports AwaitingReply while any send or upload is unsettled.
func (p *Panel) State() State {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.pending > 0 {
		return StateAwaitingReply
	}
	return StateIdle
}

// Typing reports whether the typing indicator should be shown.
func (p *Panel) Typing() bool {
	return p.State() == StateAwaitingReply
}

// Transcript returns the session's messages, oldest first.
func (p *Panel) Transcript() ([]models.ChatMessage, error) {
	msgs, err := p.store.GetMessages(p.sessionID)
	if err != nil {
		return nil, errors.Wrap(err, "load transcript")
	}
	return msgs, nil
}

// SendMessage records input as a user message, asks the responder with the
// trimmed text and records the reply. Blank input is ignored and reports false.
func (p *Panel) SendMessage(ctx context.Context, input string) (bool, error) {
	if validation.IsBlank(input) {
		return false, nil
	}

	if err := p.addMessage(models.SenderUser, input); err != nil {
		return false, err
	}

	p.begin()
	reply := p.responder.Query(ctx, strings.TrimSpace(input))
	p.end()

	if err := p.addMessage(models.SenderBot, reply); err != nil {
		return true, err
	}
	return true, nil
}

// HandleFile records the upload notice, passes the file to the responder and,
// once the confirm delay has passed, records the fixed confirmation. The
// confirmation does not depend on the responder's reply. The returned channel
// is closed after the confirmation is recorded.
func (p *Panel) HandleFile(ctx context.Context, filename string, file io.Reader) (<-chan struct{}, error) {
	if file == nil {
		return nil, ErrNoFile
	}

	if err := p.addMessage(models.SenderUser, validation.UploadNotice(filename)); err != nil {
		return nil, err
	}

	p.begin()
	reply := p.responder.Upload(ctx, filename, file)
	log.Debug().
		Str("component", "chat").
		Str("session_id", p.sessionID).
		Str("filename", filename).
		Str("reply", reply).
		Msg("upload settled")

	done := make(chan struct{})
	time.AfterFunc(p.confirmDelay, func() {
		defer close(done)
		defer p.end()
		if err := p.addMessage(models.SenderBot, UploadConfirmation); err != nil && !errors.Is(err, ErrClosed) {
			log.Error().Err(err).Str("component", "chat").Str("session_id", p.sessionID).Msg("record upload confirmation")
		}
	})
	return done, nil
}
