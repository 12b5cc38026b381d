// Package workflow holds the end-to-end demonstrations: each one builds instructions,
// signs, submits, confirms and reads back state through the service context.
package workflow

import (
	"context"

	"solana-lifecycle/internal/confirm"
	"solana-lifecycle/internal/identity"
	"solana-lifecycle/internal/svc"
	"solana-lifecycle/internal/txn"

	"github.com/gagliardetto/solana-go"
	"github.com/pkg/errors"
	"github.com/zeromicro/go-zero/core/logx"
)

// base carries what every workflow shares.
type base struct {
	logx.Logger
	ctx    context.Context
	svcCtx *svc.ServiceContext
}

func newBase(ctx context.Context, svcCtx *svc.ServiceContext) base {
	return base{
		Logger: logx.WithContext(ctx),
		ctx:    ctx,
		svcCtx: svcCtx,
	}
}

// fund airdrops the configured amount to id and waits for it to land.
func (b *base) fund(id identity.Identity) (solana.Signature, error) {
	c := b.svcCtx.Config.Airdrop
	sig, err := confirm.Fund(b.ctx, b.svcCtx.Conn, b.svcCtx.Poller, id.Address(), c.Lamports, c.Attempts)
	if err != nil {
		return sig, errors.Wrapf(err, "fund %s", id)
	}
	b.Infof("airdropped %d lamports to %s: %s", c.Lamports, id, sig)
	return sig, nil
}

// funded returns id when set, otherwise the configured payer, otherwise a fresh
// keypair funded by airdrop.
func (b *base) funded(id identity.Identity) (identity.Identity, error) {
	if !id.IsZero() {
		return id, nil
	}
	payer, ok, err := b.svcCtx.LoadPayer()
	if err != nil {
		return identity.Identity{}, errors.Wrap(err, "load payer")
	}
	if ok {
		b.Infof("using configured payer %s", payer)
		return payer, nil
	}
	payer = identity.Generate()
	if _, err := b.fund(payer); err != nil {
		return identity.Identity{}, err
	}
	return payer, nil
}

// sign assembles instrs against a fresh blockhash and signs them.
func (b *base) sign(instrs []solana.Instruction, payer identity.Identity, others ...identity.Identity) (*solana.Transaction, error) {
	bh, err := b.svcCtx.Conn.GetLatestBlockhash(b.ctx)
	if err != nil {
		return nil, errors.Wrap(err, "latest blockhash")
	}
	unsigned, err := txn.Assemble(instrs, payer.Address(), bh.Hash)
	if err != nil {
		return nil, err
	}
	return txn.Sign(unsigned, append([]identity.Identity{payer}, others...)...)
}

// submit sends a fully signed transaction and waits for the connection's commitment.
func (b *base) submit(tx *solana.Transaction) (solana.Signature, error) {
	if err := txn.Verify(tx); err != nil {
		return solana.Signature{}, errors.Wrap(err, "refusing to submit")
	}
	sig, err := b.svcCtx.Conn.Submit(b.ctx, tx)
	if err != nil {
		return solana.Signature{}, errors.Wrap(err, "submit")
	}
	out := b.svcCtx.Poller.Await(b.ctx, sig, b.svcCtx.Conn.Commitment(), b.svcCtx.Poller.Timeout())
	if err := out.Err(); err != nil {
		return sig, errors.Wrapf(err, "confirm %s", sig)
	}
	b.Infof("transaction %s %s at slot %d", sig, out.Status.State, out.Status.Slot)
	return sig, nil
}

// precheck fails with txn.ErrMissingSigner before any network call when ids do not
// cover the signers instrs need.
func precheck(instrs []solana.Instruction, payer solana.PublicKey, ids ...identity.Identity) error {
	draft, err := txn.Assemble(instrs, payer, solana.Hash{})
	if err != nil {
		return err
	}
	return txn.CheckSigners(draft, ids...)
}

func orGenerate(id identity.Identity) identity.Identity {
	if id.IsZero() {
		return identity.Generate()
	}
	return id
}
