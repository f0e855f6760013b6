package queue

import (
	"context"
	"hash/fnv"

	"github.com/rs/zerolog"

	"github.com/askanything/board/internal/core/ports"
)

const (
	defaultWorkers = 4
	channelBuffer  = 256
)

// Dispatcher hands store changes to a listener off the writer's path. Changes
// are sharded by key so notifications for one key arrive in write order.
type Dispatcher struct {
	workers  []chan ports.Change
	listener ports.ChangeListener
	log      zerolog.Logger
}

// NewDispatcher creates a Dispatcher with numWorkers sharded workers.
// If numWorkers <= 0, defaultWorkers is used.
func NewDispatcher(numWorkers int, listener ports.ChangeListener, log zerolog.Logger) *Dispatcher {
	if numWorkers <= 0 {
		numWorkers = defaultWorkers
	}
	d := &Dispatcher{
		workers:  make([]chan ports.Change, numWorkers),
		listener: listener,
		log:      log,
	}
	for i := range d.workers {
		d.workers[i] = make(chan ports.Change, channelBuffer)
	}
	return d
}

// Start launches all worker goroutines. Workers stop when ctx is cancelled.
func (d *Dispatcher) Start(ctx context.Context) {
	for i, ch := range d.workers {
		go d.runWorker(ctx, i, ch)
	}
}

// Enqueue queues a change for the worker owning its key. A full shard drops
// the change rather than stall the writer.
func (d *Dispatcher) Enqueue(c ports.Change) {
	select {
	case d.workers[d.shardIndex(c.Key)] <- c:
	default:
		d.log.Warn().Str("key", c.Key).Msg("change queue full, notification dropped")
	}
}

// shardIndex maps a key deterministically to a worker index.
func (d *Dispatcher) shardIndex(key string) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(key))
	return int(h.Sum32() % uint32(len(d.workers)))
}

func (d *Dispatcher) runWorker(ctx context.Context, id int, ch <-chan ports.Change) {
	for {
		select {
		case <-ctx.Done():
			return
		case c, ok := <-ch:
			if !ok {
				return
			}
			if err := d.listener.OnChange(ctx, c); err != nil {
				d.log.Error().Err(err).
					Str("key", c.Key).
					Int("worker_id", id).
					Msg("change delivery failed")
			}
		}
	}
}
