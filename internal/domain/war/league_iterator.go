package war

import (
	"context"
	"errors"
	"iter"
	"slices"

	"golang.org/x/sync/errgroup"
	"google.golang.org/api/iterator"
)

// WarResolver materializes a league war by its war tag. Implementations may serve the
// war from a local cache when cache is true.
type WarResolver interface {
	ResolveLeagueWar(ctx context.Context, warTag string, cache bool, ctor WarConstructor) (*ClanWar, error)
}

// WarResult is one element of a collected round: either a war or the reason it failed
type WarResult struct {
	WarTag string
	War    *ClanWar
	Err    error
}

// LeagueWarIterator yields the wars of one league round in war tag order.
// It is single pass: every tag is resolved at most once and the iterator cannot be rewound.
type LeagueWarIterator struct {
	resolver WarResolver
	tags     []string
	next     int
	cache    bool
	ctor     WarConstructor
}

func newLeagueWarIterator(resolver WarResolver, tags []string, cache bool, ctor WarConstructor) *LeagueWarIterator {
	return &LeagueWarIterator{
		resolver: resolver,
		tags:     slices.Clone(tags),
		cache:    cache,
		ctor:     ctor,
	}
}

// Next resolves and returns the next war. It returns iterator.Done once every tag has
// been consumed. A *ResolutionError only concerns that tag; the caller may keep calling Next.
func (it *LeagueWarIterator) Next(ctx context.Context) (*ClanWar, error) {
	if it.next >= len(it.tags) {
		return nil, iterator.Done
	}
	tag := it.tags[it.next]
	it.next++
	return it.resolve(ctx, tag)
}

// Remaining returns how many war tags have not been consumed yet
func (it *LeagueWarIterator) Remaining() int {
	return len(it.tags) - it.next
}

// All adapts the iterator to a range-over-func sequence. Ranging consumes the iterator.
func (it *LeagueWarIterator) All(ctx context.Context) iter.Seq2[*ClanWar, error] {
	return func(yield func(*ClanWar, error) bool) {
		for {
			w, err := it.Next(ctx)
			if errors.Is(err, iterator.Done) {
				return
			}
			if !yield(w, err) {
				return
			}
		}
	}
}

// Collect resolves every remaining tag, up to parallelism at a time, and returns the
// results in tag order. Failures are reported per element.
func (it *LeagueWarIterator) Collect(ctx context.Context, parallelism int) []WarResult {
	tags := it.tags[it.next:]
	it.next = len(it.tags)

	results := make([]WarResult, len(tags))
	if parallelism < 1 {
		parallelism = 1
	}

	var g errgroup.Group
	g.SetLimit(parallelism)
	for i, tag := range tags {
		g.Go(func() error {
			w, err := it.resolve(ctx, tag)
			results[i] = WarResult{WarTag: tag, War: w, Err: err}
			return nil
		})
	}
	_ = g.Wait()

	return results
}

func (it *LeagueWarIterator) resolve(ctx context.Context, tag string) (*ClanWar, error) {
	w, err := it.resolver.ResolveLeagueWar(ctx, tag, it.cache, it.ctor)
	if err != nil {
		return nil, &ResolutionError{WarTag: tag, Err: err}
	}
	return w, nil
}
