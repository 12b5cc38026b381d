package confirm

import (
	"context"
	"fmt"
	"time"

	"solana-lifecycle/internal/rpcs"

	"github.com/avast/retry-go"
	"github.com/gagliardetto/solana-go"
	"github.com/zeromicro/go-zero/core/logx"
)

// Fund airdrops lamports to addr, retrying the request up to attempts times, and
// waits for the airdrop to reach the connection's commitment.
func Fund(ctx context.Context, conn *rpcs.Connection, p *Poller, addr solana.PublicKey, lamports uint64, attempts uint) (solana.Signature, error) {
	if attempts == 0 {
		attempts = 1
	}
	var sig solana.Signature
	err := retry.Do(func() error {
		var err error
		sig, err = conn.RequestAirdrop(ctx, addr, lamports)
		return err
	},
		retry.Context(ctx),
		retry.Attempts(attempts),
		retry.Delay(500*time.Millisecond),
		retry.LastErrorOnly(true),
		retry.OnRetry(func(n uint, err error) {
			logx.WithContext(ctx).Errorf("airdrop to %s, attempt %d: %v", addr, n+1, err)
		}),
	)
	if err != nil {
		return solana.Signature{}, fmt.Errorf("airdrop %d lamports to %s: %w", lamports, addr, err)
	}

	if err := p.Await(ctx, sig, conn.Commitment(), p.Timeout()).Err(); err != nil {
		return sig, fmt.Errorf("airdrop %s: %w", sig, err)
	}
	return sig, nil
}
