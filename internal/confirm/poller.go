// Package confirm waits for submitted transactions to reach a commitment level.
package confirm

import (
	"context"
	"errors"
	"fmt"
	"time"

	"solana-lifecycle/internal/config"
	"solana-lifecycle/internal/rpcs"

	"github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/rpc"
	"github.com/gagliardetto/solana-go/rpc/ws"
	"github.com/zeromicro/go-zero/core/logx"
)

// MinInterval is the shortest pause between two status checks.
const MinInterval = 100 * time.Millisecond

var (
	ErrTimedOut = errors.New("confirmation timed out")
	ErrFailed   = errors.New("transaction failed")
)

type State int

const (
	Confirmed State = iota
	Failed
	TimedOut
)

func (s State) String() string {
	switch s {
	case Confirmed:
		return "confirmed"
	case Failed:
		return "failed"
	case TimedOut:
		return "timed out"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// Outcome is the terminal result of Await. Status is the last status observed.
type Outcome struct {
	State  State
	Status rpcs.Status
	Reason string
}

// Err is nil for a confirmed outcome.
func (o Outcome) Err() error {
	switch o.State {
	case Confirmed:
		return nil
	case Failed:
		return fmt.Errorf("%w: %s", ErrFailed, o.Reason)
	default:
		if o.Reason == "" {
			return ErrTimedOut
		}
		return fmt.Errorf("%w: %s", ErrTimedOut, o.Reason)
	}
}

type Poller struct {
	conn     *rpcs.Connection
	interval time.Duration
	timeout  time.Duration
	wsURL    string
}

// NewPoller polls through conn. When wsURL is set a signature subscription wakes the
// poller early; the status check still decides the outcome.
func NewPoller(conn *rpcs.Connection, c config.PollerConf, wsURL string) *Poller {
	return &Poller{
		conn:     conn,
		interval: c.Interval(),
		timeout:  c.Timeout(),
		wsURL:    wsURL,
	}
}

// Timeout is the configured default for Await.
func (p *Poller) Timeout() time.Duration { return p.timeout }

func (p *Poller) Interval() time.Duration {
	if p.interval < MinInterval {
		return MinInterval
	}
	return p.interval
}

// Await checks the status of sig immediately and then once per interval until it
// reaches commitment, fails, or timeout elapses. Transport errors are logged and
// polling goes on.
func (p *Poller) Await(ctx context.Context, sig solana.Signature, commitment rpc.CommitmentType, timeout time.Duration) Outcome {
	logger := logx.WithContext(ctx)
	deadline := time.Now().Add(timeout)

	subCtx, cancel := context.WithCancel(ctx)
	defer cancel()
	wake := p.subscribe(subCtx, sig, commitment, timeout)

	var last rpcs.Status
	for {
		st, err := p.conn.GetStatus(ctx, sig)
		if err != nil {
			logger.Errorf("status of %s: %v", sig, err)
		} else {
			last = st
			if st.State == rpcs.StatusFailed {
				return Outcome{State: Failed, Status: st, Reason: st.Reason}
			}
			if st.Reaches(commitment) {
				return Outcome{State: Confirmed, Status: st}
			}
		}

		remaining := time.Until(deadline)
		if remaining <= 0 {
			return Outcome{State: TimedOut, Status: last, Reason: fmt.Sprintf("not %s after %s", commitment, timeout)}
		}
		wait := p.Interval()
		if wait > remaining {
			wait = remaining
		}

		timer := time.NewTimer(wait)
		select {
		case <-ctx.Done():
			timer.Stop()
			return Outcome{State: TimedOut, Status: last, Reason: ctx.Err().Error()}
		case <-wake:
			timer.Stop()
			wake = nil
		case <-timer.C:
		}
	}
}

// subscribe returns a channel closed when the node notifies sig, or nil without a
// websocket endpoint. The connection is closed once ctx is done.
func (p *Poller) subscribe(ctx context.Context, sig solana.Signature, commitment rpc.CommitmentType, timeout time.Duration) <-chan struct{} {
	if p.wsURL == "" || timeout <= 0 {
		return nil
	}
	notified := make(chan struct{})
	go func() {
		client, err := ws.Connect(ctx, p.wsURL)
		if err != nil {
			logx.WithContext(ctx).Errorf("ws connect %s: %v", p.wsURL, err)
			return
		}
		defer client.Close()

		sub, err := client.SignatureSubscribe(sig, commitment)
		if err != nil {
			logx.WithContext(ctx).Errorf("signature subscribe %s: %v", sig, err)
			return
		}
		defer sub.Unsubscribe()

		if _, err := sub.Recv(ctx); err != nil {
			return
		}
		close(notified)
	}()
	return notified
}
