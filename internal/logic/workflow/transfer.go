package workflow

import (
	"context"

	"solana-lifecycle/internal/identity"
	"solana-lifecycle/internal/instructions"
	"solana-lifecycle/internal/svc"
	"solana-lifecycle/internal/txn"

	"github.com/gagliardetto/solana-go"
	"github.com/pkg/errors"
)

// DefaultTransferLamports is 0.01 SOL.
const DefaultTransferLamports = solana.LAMPORTS_PER_SOL / 100

type Balances struct {
	Sender   uint64
	Receiver uint64
}

type TransferResult struct {
	Sender    solana.PublicKey
	Receiver  solana.PublicKey
	Signature solana.Signature
	Before    Balances
	After     Balances
}

// Transfer moves lamports between two accounts and reports both balances around it.
type Transfer struct {
	base
	Sender   identity.Identity
	Receiver solana.PublicKey
	Lamports uint64
}

func NewTransfer(ctx context.Context, svcCtx *svc.ServiceContext) *Transfer {
	return &Transfer{base: newBase(ctx, svcCtx), Lamports: DefaultTransferLamports}
}

func (l *Transfer) balances(sender, receiver solana.PublicKey) (Balances, error) {
	var (
		b   Balances
		err error
	)
	if b.Sender, err = l.svcCtx.Conn.GetBalance(l.ctx, sender); err != nil {
		return b, errors.Wrap(err, "sender balance")
	}
	if b.Receiver, err = l.svcCtx.Conn.GetBalance(l.ctx, receiver); err != nil {
		return b, errors.Wrap(err, "receiver balance")
	}
	return b, nil
}

func (l *Transfer) Run() (*TransferResult, error) {
	sender, err := l.funded(l.Sender)
	if err != nil {
		return nil, err
	}
	receiver := l.Receiver
	if receiver.IsZero() {
		receiver = identity.Generate().Address()
	}
	res := &TransferResult{Sender: sender.Address(), Receiver: receiver}

	if res.Before, err = l.balances(sender.Address(), receiver); err != nil {
		return nil, err
	}
	l.Infof("before: sender %d, receiver %d", res.Before.Sender, res.Before.Receiver)

	tx, err := l.sign([]solana.Instruction{instructions.Transfer(sender.Address(), receiver, l.Lamports)}, sender)
	if err != nil {
		return nil, err
	}
	if res.Signature, err = l.submit(tx); err != nil {
		return nil, errors.Wrap(err, "transfer")
	}

	if res.After, err = l.balances(sender.Address(), receiver); err != nil {
		return nil, err
	}
	l.Infof("after: sender %d, receiver %d", res.After.Sender, res.After.Receiver)
	return res, nil
}

type MultiTransferResult struct {
	Sender    solana.PublicKey
	Receiver  solana.PublicKey
	Signature solana.Signature
	Signers   []solana.PublicKey
}

// MultiTransfer packs three transfers into one transaction. With WithholdSigner
// the sender's key is left out and the run stops before touching the network.
type MultiTransfer struct {
	base
	Sender         identity.Identity
	Lamports       uint64
	WithholdSigner bool
}

func NewMultiTransfer(ctx context.Context, svcCtx *svc.ServiceContext) *MultiTransfer {
	return &MultiTransfer{base: newBase(ctx, svcCtx), Lamports: DefaultTransferLamports}
}

func (l *MultiTransfer) Run() (*MultiTransferResult, error) {
	sender := orGenerate(l.Sender)
	receiver := identity.Generate().Address()

	instrs := make([]solana.Instruction, 0, 3)
	for i := 0; i < 3; i++ {
		instrs = append(instrs, instructions.Transfer(sender.Address(), receiver, l.Lamports))
	}

	var signers []identity.Identity
	if !l.WithholdSigner {
		signers = append(signers, sender)
	}
	if err := precheck(instrs, sender.Address(), signers...); err != nil {
		return nil, err
	}

	if l.Sender.IsZero() {
		if _, err := l.fund(sender); err != nil {
			return nil, err
		}
	}
	tx, err := l.sign(instrs, sender)
	if err != nil {
		return nil, err
	}
	l.Debug(tx.String())

	sig, err := l.submit(tx)
	if err != nil {
		return nil, errors.Wrap(err, "multi transfer")
	}
	return &MultiTransferResult{
		Sender:    sender.Address(),
		Receiver:  receiver,
		Signature: sig,
		Signers:   txn.RequiredSigners(tx),
	}, nil
}
