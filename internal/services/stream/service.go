// Package stream turns a layout walk into a sequence of events delivered over a channel.
package stream

import (
	"context"
	"fmt"

	"github.com/temirov/repokit/internal/layout"
)

const errorEmptyRoot = "stream: tree root path is empty"

type emitter struct {
	ctx  context.Context
	out  chan<- Event
	root string
}

func newEmitter(ctx context.Context, out chan<- Event, root string) *emitter {
	if ctx == nil {
		ctx = context.Background()
	}
	return &emitter{ctx: ctx, out: out, root: root}
}

func (e *emitter) send(event Event) error {
	if e.out == nil {
		return fmt.Errorf("stream: event channel is nil")
	}
	event.Version = SchemaVersion
	if event.Root == "" {
		event.Root = e.root
	}
	select {
	case <-e.ctx.Done():
		return e.ctx.Err()
	case e.out <- event:
		return nil
	}
}

type summaryTracker struct {
	directories int
	files       int
	skipped     int
}

func (tracker *summaryTracker) add(line layout.Line) {
	if line.Depth == 0 {
		return
	}
	if line.IsDir {
		tracker.directories++
	} else {
		tracker.files++
	}
	if line.Skipped {
		tracker.skipped++
	}
}

func (tracker *summaryTracker) summary() *SummaryEvent {
	return &SummaryEvent{
		Directories: tracker.directories,
		Files:       tracker.files,
		Skipped:     tracker.skipped,
	}
}

// StreamTree walks opts.Root and emits start, one entry per line, summary and done events.
// The channel is not closed; the caller owns it.
func StreamTree(ctx context.Context, opts layout.Options, out chan<- Event) error {
	if opts.Root == "" {
		return fmt.Errorf(errorEmptyRoot)
	}

	emitter := newEmitter(ctx, out, opts.Root)
	if err := emitter.send(Event{Kind: EventKindStart}); err != nil {
		return err
	}

	tracker := &summaryTracker{}
	walkErr := layout.Walk(emitter.ctx, opts, func(line layout.Line) error {
		tracker.add(line)
		entry := line
		return emitter.send(Event{Kind: EventKindEntry, Entry: &entry})
	})
	if walkErr != nil {
		return walkErr
	}

	if err := emitter.send(Event{Kind: EventKindSummary, Summary: tracker.summary()}); err != nil {
		return err
	}
	return emitter.send(Event{Kind: EventKindDone})
}
