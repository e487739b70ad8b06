// Package events publishes daybook lifecycle events to NATS for the
// surrounding integrations (calendar sync, notifications) to consume.
package events

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/nats-io/nats.go"

	"github.com/daybook-app/daybook/internal/resolver"
)

// SubjectEntryResolved is the NATS subject for resolved-entry events.
const SubjectEntryResolved = "daybook.entry.resolved"

// EntryResolvedEvent is emitted after a day entry is saved and its
// buckets resolved into records. ExplicitTimes counts the records
// whose time came from the text itself; the rest were interpolated.
type EntryResolvedEvent struct {
	Date          string    `json:"date"`
	Complete      bool      `json:"complete"`
	Morning       int       `json:"morning_records"`
	Afternoon     int       `json:"afternoon_records"`
	Night         int       `json:"night_records"`
	Records       int       `json:"records"`
	ExplicitTimes int       `json:"explicit_times"`
	TimeRanges    int       `json:"time_ranges"`
	Timestamp     time.Time `json:"timestamp"`
}

// NewEntryResolvedEvent builds the event for one resolved day.
func NewEntryResolvedEvent(entry resolver.ParsedEntry, complete bool) EntryResolvedEvent {
	event := EntryResolvedEvent{
		Date:      entry.Date.Format("2006-01-02"),
		Complete:  complete,
		Morning:   len(entry.Morning),
		Afternoon: len(entry.Afternoon),
		Night:     len(entry.Night),
		Records:   len(entry.All),
		Timestamp: time.Now().UTC(),
	}
	for _, rec := range entry.All {
		if rec.Explicit {
			event.ExplicitTimes++
		}
		if rec.TimeEnd != nil {
			event.TimeRanges++
		}
	}
	return event
}

type Publisher struct {
	conn   *nats.Conn
	logger *slog.Logger
}

func NewPublisher(url, token string, logger *slog.Logger) (*Publisher, error) {
	opts := []nats.Option{
		nats.RetryOnFailedConnect(true),
		nats.MaxReconnects(60),
		nats.ReconnectWait(2 * time.Second),
		nats.DisconnectErrHandler(func(_ *nats.Conn, err error) {
			if err != nil {
				logger.Warn("nats disconnected", "error", err)
			}
		}),
		nats.ReconnectHandler(func(_ *nats.Conn) {
			logger.Info("nats reconnected")
		}),
	}
	if token != "" {
		opts = append(opts, nats.Token(token))
	}

	nc, err := nats.Connect(url, opts...)
	if err != nil {
		return nil, fmt.Errorf("nats connect: %w", err)
	}

	return &Publisher{conn: nc, logger: logger}, nil
}

func (p *Publisher) Close() {
	p.conn.Close()
}

// Publish marshals the payload as JSON and publishes it on the subject.
func (p *Publisher) Publish(subject string, payload any) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}
	if err := p.conn.Publish(subject, data); err != nil {
		return fmt.Errorf("publish %s: %w", subject, err)
	}
	return nil
}

// PublishEntryResolved emits the resolved-entry event for one day.
func (p *Publisher) PublishEntryResolved(entry resolver.ParsedEntry, complete bool) error {
	return p.Publish(SubjectEntryResolved, NewEntryResolvedEvent(entry, complete))
}
