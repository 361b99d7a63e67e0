package app

import (
	"context"
	"io"
	"sync"
	"time"

	"estateinsights/cache"
	"estateinsights/chat"
	"estateinsights/models"
	"estateinsights/validation"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
)

// User-facing messages.
const (
	MsgEmptyArea   = "Please enter an area."
	MsgQueryFailed = "Something went wrong!"

	ReplyFetched      = "Fetched insights successfully."
	ReplyFetchFailed  = "⚠️ Couldn't fetch insights."
	ReplyUploaded     = "Excel uploaded successfully!"
	ReplyUploadFailed = "⚠️ Upload failed!"
)

var (
	ErrEmptyArea       = errors.New("app: empty area")
	ErrNoResult        = errors.New("app: no result to download")
	ErrSessionNotFound = errors.New("app: session not found")
)

// Backend is the insights backend as the dashboard uses it. *client.Client implements it.
type Backend interface {
	QueryArea(ctx context.Context, area string) (*models.QueryResult, error)
	UploadFile(ctx context.Context, filename string, file io.Reader) (*models.UploadAck, error)
	DownloadCSV(ctx context.Context, area string) ([]byte, error)
}

// TranscriptStore keeps chat messages per session.
type TranscriptStore interface {
	chat.TranscriptStore
	DeleteSession(sessionID string) error
}

type Option func(*Dashboard)

// WithConfirmDelay sets the chat panel's upload confirmation delay.
func WithConfirmDelay(d time.Duration) Option {
	return func(db *Dashboard) {
		db.confirmDelay = d
	}
}

// Dashboard is the root application: it owns the sessions and wires each
// session's chat panel to the backend.
type Dashboard struct {
	backend      Backend
	sessions     *cache.Cache
	transcripts  TranscriptStore
	confirmDelay time.Duration
}

func New(backend Backend, sessions *cache.Cache, transcripts TranscriptStore, opts ...Option) *Dashboard {
	d := &Dashboard{
		backend:      backend,
		sessions:     sessions,
		transcripts:  transcripts,
		confirmDelay: chat.DefaultConfirmDelay,
	}
	for _, opt := range opts {
		opt(d)
	}

	sessions.OnEvicted(func(key string, value interface{}) {
		// Close first so a pending confirmation cannot write after the delete.
		if s, ok := value.(*Session); ok && s.Chat != nil {
			s.Chat.Close()
		}
		if err := transcripts.DeleteSession(key); err != nil {
			log.Warn().Err(err).Str("component", "app").Str("session_id", key).Msg("drop transcript")
		}
	})
	return d
}

// NewSession starts an empty session with a greeted chat panel.
func (d *Dashboard) NewSession() (*Session, error) {
	s := &Session{ID: uuid.New().String()}

	panel, err := chat.New(s.ID, d.transcripts, &responder{dashboard: d, session: s}, chat.WithConfirmDelay(d.confirmDelay))
	if err != nil {
		return nil, errors.Wrap(err, "create chat panel")
	}
	s.Chat = panel

	d.sessions.SetDefault(s.ID, s)
	log.Debug().Str("component", "app").Str("session_id", s.ID).Msg("session started")
	return s, nil
}

// Session looks up a live session and restarts its idle timer.
func (d *Dashboard) Session(id string) (*Session, error) {
	if id == "" {
		return nil, ErrSessionNotFound
	}
	v, ok := d.sessions.Get(id)
	if !ok {
		return nil, ErrSessionNotFound
	}
	s, ok := v.(*Session)
	if !ok {
		return nil, ErrSessionNotFound
	}
	d.sessions.Touch(id)
	return s, nil
}

// SessionOrNew returns the session for id, or a fresh one. created reports which.
func (d *Dashboard) SessionOrNew(id string) (s *Session, created bool, err error) {
	if existing, err := d.Session(id); err == nil {
		return existing, false, nil
	}
	s, err = d.NewSession()
	if err != nil {
		return nil, false, err
	}
	return s, true, nil
}

// SessionCount reports how many sessions are live.
func (d *Dashboard) SessionCount() int {
	return d.sessions.Count()
}

// EndSession forgets the session and its transcript.
func (d *Dashboard) EndSession(id string) {
	d.sessions.Delete(id)
}

// Ask queries the backend for the typed area. A blank area sets the
// validation message and makes no call. A backend failure sets the generic
// message; the cause is returned for logging only.
func (d *Dashboard) Ask(ctx context.Context, s *Session, area string) error {
	s.update(func(st *models.DashboardState) {
		st.AreaInput = area
	})

	if validation.IsBlank(area) {
		s.update(func(st *models.DashboardState) {
			st.Error = MsgEmptyArea
		})
		return ErrEmptyArea
	}

	s.update(func(st *models.DashboardState) {
		st.Error = ""
		st.Loading = true
	})

	result, err := d.backend.QueryArea(ctx, area)

	s.update(func(st *models.DashboardState) {
		if err != nil {
			st.Error = MsgQueryFailed
		} else {
			st.Result = result
		}
		st.Loading = false
	})

	if err != nil {
		log.Warn().Err(err).Str("component", "app").Str("session_id", s.ID).Str("area", area).Msg("query failed")
		return errors.Wrap(err, "query area")
	}
	return nil
}

// Download fetches the CSV for the typed area. It is unavailable until a
// query has succeeded. The filename is derived from the typed area as-is.
func (d *Dashboard) Download(ctx context.Context, s *Session) (filename string, data []byte, err error) {
	st := s.State()
	if !st.HasResult() {
		return "", nil, ErrNoResult
	}

	data, err = d.backend.DownloadCSV(ctx, st.AreaInput)
	if err != nil {
		log.Warn().Err(err).Str("component", "app").Str("session_id", s.ID).Str("area", st.AreaInput).Msg("download failed")
		return "", nil, errors.Wrap(err, "download csv")
	}
	return validation.DownloadFilename(st.AreaInput), data, nil
}

// Session is one browser's dashboard: root state plus its chat panel.
type Session struct {
	ID   string
	Chat *chat.Panel

	mu    sync.Mutex
	state models.DashboardState
}

// State returns a copy of the session's root state.
func (s *Session) State() models.DashboardState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// SetArea records the typed area without querying.
func (s *Session) SetArea(area string) {
	s.update(func(st *models.DashboardState) {
		st.AreaInput = area
	})
}

func (s *Session) update(fn func(*models.DashboardState)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fn(&s.state)
}

// responder answers the chat panel on behalf of one session.
type responder struct {
	dashboard *Dashboard
	session   *Session
}

func (r *responder) Query(ctx context.Context, text string) string {
	result, err := r.dashboard.backend.QueryArea(ctx, validation.NormalizeChatQuery(text))
	if err != nil {
		log.Warn().Err(err).Str("component", "app").Str("session_id", r.session.ID).Msg("chat query failed")
		return ReplyFetchFailed
	}
	r.session.update(func(st *models.DashboardState) {
		st.Result = result
	})
	return ReplyFetched
}

func (r *responder) Upload(ctx context.Context, filename string, file io.Reader) string {
	if _, err := r.dashboard.backend.UploadFile(ctx, filename, file); err != nil {
		log.Warn().Err(err).Str("component", "app").Str("session_id", r.session.ID).Str("filename", filename).Msg("upload failed")
		return ReplyUploadFailed
	}
	return ReplyUploaded
}
