package confirm

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"solana-lifecycle/internal/config"
	"solana-lifecycle/internal/rpcs"
	"solana-lifecycle/internal/rpcs/rpcstest"

	"github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/rpc"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newPoller(fake *rpcstest.Client) (*rpcs.Connection, *Poller) {
	conn := rpcs.NewWithClient("http://fake:8899", rpc.CommitmentConfirmed, fake)
	return conn, NewPoller(conn, config.PollerConf{IntervalMs: 1, TimeoutMs: 5000}, "")
}

func TestAwaitZeroTimeoutPending(t *testing.T) {
	fake := rpcstest.New()
	_, p := newPoller(fake)

	out := p.Await(context.Background(), solana.Signature{1}, rpc.CommitmentConfirmed, 0)
	assert.Equal(t, TimedOut, out.State)
	assert.Equal(t, rpcs.StatusPending, out.Status.State)
	assert.ErrorIs(t, out.Err(), ErrTimedOut)
	assert.Equal(t, 1, fake.Count("getSignatureStatuses"))
}

func TestAwaitConfirmedAfterPending(t *testing.T) {
	fake := rpcstest.New()
	fake.Statuses = []*rpc.SignatureStatusesResult{
		nil,
		rpcstest.Confirmed(rpc.ConfirmationStatusProcessed),
		rpcstest.Confirmed(rpc.ConfirmationStatusConfirmed),
	}
	_, p := newPoller(fake)

	start := time.Now()
	out := p.Await(context.Background(), solana.Signature{1}, rpc.CommitmentConfirmed, 5*time.Second)
	require.Equal(t, Confirmed, out.State)
	assert.NoError(t, out.Err())
	assert.Equal(t, rpcs.StatusConfirmed, out.Status.State)
	assert.Equal(t, 3, fake.Count("getSignatureStatuses"))
	// the configured 1ms interval is raised to the floor
	assert.GreaterOrEqual(t, time.Since(start), 2*MinInterval)
}

func TestAwaitFailed(t *testing.T) {
	fake := rpcstest.New()
	fake.Statuses = []*rpc.SignatureStatusesResult{rpcstest.Failed(map[string]any{"InstructionError": []any{0, "Custom"}})}
	_, p := newPoller(fake)

	out := p.Await(context.Background(), solana.Signature{1}, rpc.CommitmentFinalized, time.Second)
	assert.Equal(t, Failed, out.State)
	assert.Contains(t, out.Reason, "InstructionError")
	assert.ErrorIs(t, out.Err(), ErrFailed)
}

func TestAwaitKeepsPollingThroughTransportErrors(t *testing.T) {
	fake := rpcstest.New()
	fake.StatusErr = errors.New("connection reset")
	_, p := newPoller(fake)

	out := p.Await(context.Background(), solana.Signature{1}, rpc.CommitmentConfirmed, 250*time.Millisecond)
	assert.Equal(t, TimedOut, out.State)
	assert.GreaterOrEqual(t, fake.Count("getSignatureStatuses"), 2)
}

func TestAwaitBelowRequestedCommitment(t *testing.T) {
	fake := rpcstest.New()
	fake.Statuses = []*rpc.SignatureStatusesResult{rpcstest.Confirmed(rpc.ConfirmationStatusConfirmed)}
	_, p := newPoller(fake)

	out := p.Await(context.Background(), solana.Signature{1}, rpc.CommitmentFinalized, 150*time.Millisecond)
	assert.Equal(t, TimedOut, out.State)
	assert.Equal(t, rpcs.StatusConfirmed, out.Status.State)
}

func TestAwaitContextCancelled(t *testing.T) {
	fake := rpcstest.New()
	_, p := newPoller(fake)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	out := p.Await(ctx, solana.Signature{1}, rpc.CommitmentConfirmed, time.Minute)
	assert.Equal(t, TimedOut, out.State)
	assert.Contains(t, out.Reason, context.Canceled.Error())
}

// silentNode accepts one websocket connection and never sends a notification.
func silentNode(t *testing.T) (url string, connected, closed chan struct{}) {
	connected = make(chan struct{}, 1)
	closed = make(chan struct{}, 1)
	upgrader := websocket.Upgrader{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		defer conn.Close()
		connected <- struct{}{}
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				closed <- struct{}{}
				return
			}
		}
	}))
	t.Cleanup(srv.Close)
	return "ws" + strings.TrimPrefix(srv.URL, "http"), connected, closed
}

func TestAwaitClosesSubscription(t *testing.T) {
	fake := rpcstest.New()
	fake.Statuses = []*rpc.SignatureStatusesResult{
		nil,
		nil,
		nil,
		nil,
		rpcstest.Confirmed(rpc.ConfirmationStatusConfirmed),
	}
	wsURL, connected, closed := silentNode(t)
	conn := rpcs.NewWithClient("http://fake:8899", rpc.CommitmentConfirmed, fake)
	p := NewPoller(conn, config.PollerConf{IntervalMs: 1, TimeoutMs: 5000}, wsURL)

	out := p.Await(context.Background(), solana.Signature{1}, rpc.CommitmentConfirmed, time.Minute)
	require.Equal(t, Confirmed, out.State)

	select {
	case <-connected:
	case <-time.After(2 * time.Second):
		t.Fatal("no websocket connection was opened")
	}
	select {
	case <-closed:
	case <-time.After(2 * time.Second):
		t.Fatal("websocket connection still open after Await returned")
	}
}

func TestFund(t *testing.T) {
	fake := rpcstest.New()
	fake.Statuses = []*rpc.SignatureStatusesResult{rpcstest.Confirmed(rpc.ConfirmationStatusConfirmed)}
	conn, p := newPoller(fake)
	addr := solana.NewWallet().PublicKey()

	sig, err := Fund(context.Background(), conn, p, addr, solana.LAMPORTS_PER_SOL, 3)
	require.NoError(t, err)
	assert.Equal(t, solana.Signature{9, 9, 9}, sig)
	assert.EqualValues(t, solana.LAMPORTS_PER_SOL, fake.Balances[addr])
	assert.Equal(t, 1, fake.Count("requestAirdrop"))
}

func TestFundRetriesAirdrop(t *testing.T) {
	fake := rpcstest.New()
	fake.AirdropErr = errors.New("rate limited")
	conn, p := newPoller(fake)

	_, err := Fund(context.Background(), conn, p, solana.NewWallet().PublicKey(), 1, 2)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "rate limited")
	assert.Equal(t, 2, fake.Count("requestAirdrop"))
	assert.Zero(t, fake.Count("getSignatureStatuses"))
}
