// Package publish ships solve reports to external destinations.
package publish

import (
	"context"
	"errors"
	"fmt"
	"path"
	"time"

	"github.com/signalsfoundry/contact-scheduler/internal/instance"
)

// ErrNoSink is returned by Multi when no sink is configured.
var ErrNoSink = errors.New("no report sink configured")

// Sink publishes a finished report.
type Sink interface {
	Publish(ctx context.Context, r *instance.Report) error
	Close() error
}

// reportName is the file name used for r by file and object sinks.
func reportName(r *instance.Report) string {
	if r.RunID == "" {
		return r.ProblemInstanceID + ".json"
	}
	return fmt.Sprintf("%s_%s.json", r.ProblemInstanceID, r.RunID)
}

// objectKey lays reports out as <prefix>/schedules/YYYY/MM/DD/<name>.
func objectKey(prefix string, ts time.Time, r *instance.Report) string {
	year, month, day := ts.Date()
	return path.Join(prefix, "schedules",
		fmt.Sprintf("%04d", year),
		fmt.Sprintf("%02d", int(month)),
		fmt.Sprintf("%02d", day),
		reportName(r),
	)
}

// MultiSink fans a report out to several sinks.
type MultiSink struct {
	sinks []Sink
}

// Multi combines sinks, skipping nil entries.
func Multi(sinks ...Sink) *MultiSink {
	m := &MultiSink{}
	for _, s := range sinks {
		if s != nil {
			m.sinks = append(m.sinks, s)
		}
	}
	return m
}

// Len returns the number of combined sinks.
func (m *MultiSink) Len() int { return len(m.sinks) }

// Publish sends r to every sink, even when some of them fail, and returns
// the joined errors.
func (m *MultiSink) Publish(ctx context.Context, r *instance.Report) error {
	if len(m.sinks) == 0 {
		return ErrNoSink
	}
	if r == nil {
		return fmt.Errorf("nil report")
	}
	var errs []error
	for _, s := range m.sinks {
		if err := s.Publish(ctx, r); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Close closes every sink.
func (m *MultiSink) Close() error {
	var errs []error
	for _, s := range m.sinks {
		if err := s.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
