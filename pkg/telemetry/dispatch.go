package telemetry

import (
	"sync"
	"sync/atomic"
	"time"
)

const (
	// queueCapacity bounds the in-memory buffer between the host's threads
	// and the background worker. Enqueue drops instead of blocking when the
	// buffer is full.
	queueCapacity = 512
	// batchSize triggers transmission once this many records accumulate.
	batchSize = 50
	// flushInterval triggers transmission of a partial batch.
	flushInterval = 5 * time.Second
)

// queueEntry is one buffered record, owned exclusively by the dispatcher
// until transmitted or dropped.
type queueEntry struct {
	event      Event
	enqueuedAt time.Time
}

// dispatcher owns the asynchronous path between Enqueue and the transport.
// Enqueue performs at most an in-memory append and returns immediately; the
// background worker batches records and transmits on its own schedule.
// Transport failures never propagate anywhere; they bump a counter and emit
// a debug log line at most.
type dispatcher struct {
	logger    *telemetryLogger
	transport *transport

	events   chan queueEntry
	flushReq chan chan struct{}
	done     chan struct{}

	closeOnce sync.Once
	wg        sync.WaitGroup

	// Best-effort internal failure accounting, never surfaced to callers.
	dropped  atomic.Int64
	failures atomic.Int64
}

func newDispatcher(logger *telemetryLogger, tr *transport) *dispatcher {
	d := &dispatcher{
		logger:    logger,
		transport: tr,
		events:    make(chan queueEntry, queueCapacity),
		flushReq:  make(chan chan struct{}),
		done:      make(chan struct{}),
	}
	d.wg.Add(1)
	go d.run()
	return d
}

// enqueue buffers one record without ever blocking the caller. A full
// buffer drops the record.
func (d *dispatcher) enqueue(ev Event) {
	select {
	case d.events <- queueEntry{event: ev, enqueuedAt: time.Now()}:
	default:
		d.dropped.Add(1)
		d.logger.Warn("event dropped", "reason", "buffer_full", "event", ev.Type)
	}
}

func (d *dispatcher) run() {
	defer d.wg.Done()

	ticker := time.NewTicker(flushInterval)
	defer ticker.Stop()

	batch := make([]queueEntry, 0, batchSize)

	for {
		select {
		case entry := <-d.events:
			batch = append(batch, entry)
			if len(batch) >= batchSize {
				d.send(batch)
				batch = batch[:0]
			}
		case <-ticker.C:
			if len(batch) > 0 {
				d.send(batch)
				batch = batch[:0]
			}
		case ack := <-d.flushReq:
			batch = d.drainInto(batch)
			if len(batch) > 0 {
				d.send(batch)
				batch = batch[:0]
			}
			close(ack)
		case <-d.done:
			batch = d.drainInto(batch)
			if len(batch) > 0 {
				d.send(batch)
			}
			return
		}
	}
}

// drainInto empties whatever is currently buffered without waiting for
// more.
func (d *dispatcher) drainInto(batch []queueEntry) []queueEntry {
	for {
		select {
		case entry := <-d.events:
			batch = append(batch, entry)
		default:
			return batch
		}
	}
}

func (d *dispatcher) send(batch []queueEntry) {
	if err := d.transport.sendBatch(batch); err != nil {
		d.failures.Add(1)
		d.logger.Debug("batch transmission failed", "error", err, "records", len(batch))
	}
}

// flush asks the worker to drain and transmit everything buffered, waiting
// at most timeout. If the worker is wedged behind a slow transport the wait
// expires and remaining records are abandoned.
func (d *dispatcher) flush(timeout time.Duration) {
	deadline := time.NewTimer(timeout)
	defer deadline.Stop()

	ack := make(chan struct{})
	select {
	case d.flushReq <- ack:
	case <-deadline.C:
		return
	case <-d.done:
		return
	}

	select {
	case <-ack:
	case <-deadline.C:
	}
}

// close stops the worker after one final drain. Safe to call multiple
// times.
func (d *dispatcher) close() {
	d.closeOnce.Do(func() {
		close(d.done)
	})
	d.wg.Wait()
}
