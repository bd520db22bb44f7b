// Package scheduler drives periodic inbox synchronisation.
//
// A single goroutine owns all poller state. Callers talk to it over a
// control channel, and the sync itself runs in a worker goroutine so that
// Status stays responsive while a run is in flight.
package scheduler

import (
	"context"
	"errors"
	"log"
	"time"
)

// Syncer is the unit of work the poller repeats.
type Syncer interface {
	Sync(ctx context.Context) error
}

// Poller is the control surface exposed to the HTTP layer and main.
type Poller interface {
	// Start enables ticking and triggers an immediate run.
	Start() error
	// Stop disables ticking and waits for an in-flight run to finish.
	Stop() error
	// RunNow triggers one run regardless of the running state. It does not
	// wait for the run to complete.
	RunNow() error
	IsRunning() bool
	Status() (Status, error)
	// Close ends the control loop. Later calls return ErrClosed.
	Close()
}

// Status is a snapshot of the poller state.
type Status struct {
	Running bool      `json:"running"`
	Syncing bool      `json:"syncing"`
	Runs    int       `json:"runs"`
	LastRun time.Time `json:"last_run,omitempty"`
	LastErr string    `json:"last_error,omitempty"`
}

const (
	DefaultInterval     = time.Minute
	DefaultBatchTimeout = 30 * time.Second

	// controlTimeout bounds how long a caller waits for the loop.
	controlTimeout = 2 * time.Second
)

var (
	ErrClosed      = errors.New("poller closed")
	ErrNotResponse = errors.New("poller control loop not responding")
)

type controlOp int

const (
	opStart controlOp = iota
	opStop
	opRunNow
	opStatus
)

type controlMsg struct {
	op   controlOp
	resp chan Status // buffered, so the loop never blocks on a caller that gave up
}

type poller struct {
	syncer       Syncer
	interval     time.Duration
	batchTimeout time.Duration

	ctrl   chan controlMsg
	ctx    context.Context
	cancel context.CancelFunc
}

// NewPoller starts the control loop in the stopped state. Non-positive
// durations fall back to the defaults.
func NewPoller(syncer Syncer, interval, batchTimeout time.Duration) Poller {
	if interval <= 0 {
		interval = DefaultInterval
	}
	if batchTimeout <= 0 {
		batchTimeout = DefaultBatchTimeout
	}

	ctx, cancel := context.WithCancel(context.Background())
	p := &poller{
		syncer:       syncer,
		interval:     interval,
		batchTimeout: batchTimeout,
		ctrl:         make(chan controlMsg),
		ctx:          ctx,
		cancel:       cancel,
	}

	go p.loop()

	return p
}

func (p *poller) Start() error {
	_, err := p.call(opStart, controlTimeout)
	return err
}

// Stop may have to wait for a full run, so its acknowledgement window is
// the batch timeout on top of the control timeout.
func (p *poller) Stop() error {
	_, err := p.call(opStop, p.batchTimeout+controlTimeout)
	return err
}

func (p *poller) RunNow() error {
	_, err := p.call(opRunNow, controlTimeout)
	return err
}

func (p *poller) IsRunning() bool {
	st, err := p.call(opStatus, controlTimeout)
	return err == nil && st.Running
}

func (p *poller) Status() (Status, error) {
	return p.call(opStatus, controlTimeout)
}

func (p *poller) Close() {
	p.cancel()
}

func (p *poller) call(op controlOp, ackTimeout time.Duration) (Status, error) {
	if p.ctx.Err() != nil {
		return Status{}, ErrClosed
	}

	msg := controlMsg{op: op, resp: make(chan Status, 1)}

	select {
	case p.ctrl <- msg:
	case <-p.ctx.Done():
		return Status{}, ErrClosed
	case <-time.After(controlTimeout):
		return Status{}, ErrNotResponse
	}

	select {
	case st := <-msg.resp:
		return st, nil
	case <-p.ctx.Done():
		return Status{}, ErrClosed
	case <-time.After(ackTimeout):
		return Status{}, ErrNotResponse
	}
}

func (p *poller) loop() {
	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	var (
		st          Status
		pendingStop []chan Status
		done        = make(chan error, 1)
	)

	trigger := func(reason string) {
		st.Syncing = true
		log.Printf("[Poller] Sync triggered (%s).", reason)

		go func() {
			ctx, cancel := context.WithTimeout(p.ctx, p.batchTimeout)
			defer cancel()
			done <- p.syncer.Sync(ctx)
		}()
	}

	for {
		select {
		case <-p.ctx.Done():
			log.Println("[Poller] Closed.")
			return

		case msg := <-p.ctrl:
			switch msg.op {
			case opStart:
				if !st.Running {
					log.Printf("[Poller] Started (interval=%s, batchTimeout=%s).", p.interval, p.batchTimeout)
					st.Running = true
					if !st.Syncing {
						trigger("start")
					}
				}
				msg.resp <- st

			case opStop:
				if st.Running {
					log.Println("[Poller] Stop requested.")
				}
				st.Running = false
				if st.Syncing {
					pendingStop = append(pendingStop, msg.resp)
					continue
				}
				msg.resp <- st

			case opRunNow:
				if !st.Syncing {
					trigger("manual")
				}
				msg.resp <- st

			case opStatus:
				msg.resp <- st
			}

		case <-ticker.C:
			if st.Running && !st.Syncing {
				trigger("tick")
			}

		case err := <-done:
			st.Syncing = false
			st.Runs++
			st.LastRun = time.Now().UTC()
			st.LastErr = ""
			if err != nil {
				st.LastErr = err.Error()
				log.Printf("[Poller] Sync failed: %v", err)
			} else {
				log.Println("[Poller] Sync completed.")
			}

			for _, resp := range pendingStop {
				resp <- st
			}
			if len(pendingStop) > 0 {
				log.Println("[Poller] Stopped.")
			}
			pendingStop = nil
		}
	}
}
