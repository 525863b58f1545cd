// Package sweep resolves the descriptors of many discovered devices at once.
//
// Discovery answers are noisy: devices go away, advertise locations this
// client cannot fetch, or answer with something that is not a DIAL
// descriptor. A sweep therefore never aborts on a single device; every
// location gets its own entry with either a resolution or an error.
package sweep

import (
	"context"
	"log/slog"
	"time"

	"github.com/ruteri/dial-descriptor/descriptor"
	"github.com/ruteri/dial-descriptor/interfaces"
	"golang.org/x/sync/errgroup"
)

const DefaultConcurrency = 8

// Entry is the outcome for a single descriptor location.
type Entry struct {
	Location   string
	Resolution interfaces.Resolution
	Err        error
	Duration   time.Duration
}

// Summary counts entries by outcome.
type Summary struct {
	Found  int
	Absent int
	Failed int
}

// Sweeper fans descriptor resolution out over a bounded number of workers.
type Sweeper struct {
	resolver    Resolver
	concurrency int
	log         *slog.Logger
}

// Resolver is the part of descriptor.Resolver a sweep needs.
type Resolver interface {
	Resolve(ctx context.Context, location string) (interfaces.Resolution, error)
}

// ResourceResolver adapts any interfaces.DeviceDescriptorResource to a
// Resolver by parsing raw locations first.
type ResourceResolver struct {
	Resource interfaces.DeviceDescriptorResource
}

func (rr ResourceResolver) Resolve(ctx context.Context, location string) (interfaces.Resolution, error) {
	u, err := descriptor.ParseLocation(location)
	if err != nil {
		return interfaces.Resolution{}, err
	}
	return rr.Resource.GetDescriptor(ctx, u)
}

// NewSweeper creates a sweeper. Concurrency below one selects
// DefaultConcurrency.
func NewSweeper(resolver Resolver, concurrency int, logger *slog.Logger) *Sweeper {
	if concurrency < 1 {
		concurrency = DefaultConcurrency
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &Sweeper{
		resolver:    resolver,
		concurrency: concurrency,
		log:         logger,
	}
}

// Run resolves every location and returns one entry per location, in input
// order. Only cancellation of ctx stops the sweep early; entries that were
// never started carry the context error, which is also returned.
func (s *Sweeper) Run(ctx context.Context, locations []string) ([]Entry, error) {
	start := time.Now()
	entries := make([]Entry, len(locations))

	g := new(errgroup.Group)
	g.SetLimit(s.concurrency)

	for i, location := range locations {
		i, location := i, location
		entries[i].Location = location

		if err := ctx.Err(); err != nil {
			entries[i].Err = err
			continue
		}

		g.Go(func() error {
			entry := &entries[i]
			began := time.Now()
			entry.Resolution, entry.Err = s.resolver.Resolve(ctx, location)
			entry.Duration = time.Since(began)

			if entry.Err != nil {
				s.log.Debug("Descriptor resolution failed",
					slog.String("location", location),
					slog.Any("err", entry.Err))
			}
			return nil
		})
	}

	_ = g.Wait()

	summary := Summarize(entries)
	s.log.Info("Descriptor sweep completed",
		slog.Int("locations", len(locations)),
		slog.Int("found", summary.Found),
		slog.Int("absent", summary.Absent),
		slog.Int("failed", summary.Failed),
		slog.Duration("duration", time.Since(start)))

	return entries, ctx.Err()
}

// Summarize counts the entries of a sweep by outcome.
func Summarize(entries []Entry) Summary {
	var summary Summary
	for _, entry := range entries {
		switch {
		case entry.Err != nil:
			summary.Failed++
		case entry.Resolution.Found():
			summary.Found++
		default:
			summary.Absent++
		}
	}
	return summary
}

// Descriptors returns the resolved descriptors, skipping absent and failed
// entries.
func Descriptors(entries []Entry) []*interfaces.DeviceDescriptor {
	var out []*interfaces.DeviceDescriptor
	for _, entry := range entries {
		if entry.Err == nil && entry.Resolution.Found() {
			out = append(out, entry.Resolution.Descriptor)
		}
	}
	return out
}
