package session

import (
	"log"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"
)

type options struct {
	Logger       *log.Logger
	Debug        bool
	Clock        func() time.Time
	NewID        func() string
	LoginTimeout time.Duration
	Metrics      *Metrics
}

// Option applies configuration to a Session.
type Option func(*options)

func defaultOptions() options {
	return options{
		Logger:  log.New(log.Writer(), "[SESSION] ", log.LstdFlags),
		Debug:   strings.EqualFold(os.Getenv("LOG_LEVEL"), "debug"),
		Clock:   time.Now,
		NewID:   newSessionID,
		Metrics: DefaultMetrics(),
	}
}

// newSessionID returns a time-ordered UUIDv7 string.
func newSessionID() string {
	return uuid.Must(uuid.NewV7()).String()
}

// WithLogger injects a custom logger implementation.
func WithLogger(l *log.Logger) Option {
	return func(o *options) {
		o.Logger = l
	}
}

// WithDebug toggles debug logging regardless of LOG_LEVEL.
func WithDebug(enabled bool) Option {
	return func(o *options) {
		o.Debug = enabled
	}
}

// WithClock overrides the time source used to stamp CreatedAt.
func WithClock(clock func() time.Time) Option {
	return func(o *options) {
		if clock != nil {
			o.Clock = clock
		}
	}
}

// WithIDGenerator overrides session ID generation.
func WithIDGenerator(gen func() string) Option {
	return func(o *options) {
		if gen != nil {
			o.NewID = gen
		}
	}
}

// WithLoginTimeout bounds each User.Login call. Zero disables the bound.
func WithLoginTimeout(d time.Duration) Option {
	return func(o *options) {
		o.LoginTimeout = d
	}
}

// WithMetrics replaces the metrics sink. A nil value disables metrics.
func WithMetrics(m *Metrics) Option {
	return func(o *options) {
		o.Metrics = m
	}
}

func (o options) debugf(format string, v ...any) {
	if o.Debug && o.Logger != nil {
		o.Logger.Printf(format, v...)
	}
}
