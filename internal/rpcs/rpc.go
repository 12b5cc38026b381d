package rpcs

import (
	"context"

	"solana-lifecycle/internal/config"

	"github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/rpc"
	"golang.org/x/time/rate"
)

// RPCClient is the slice of *rpc.Client the connection needs.
type RPCClient interface {
	GetAccountInfoWithOpts(ctx context.Context, account solana.PublicKey, opts *rpc.GetAccountInfoOpts) (*rpc.GetAccountInfoResult, error)
	GetBalance(ctx context.Context, account solana.PublicKey, commitment rpc.CommitmentType) (*rpc.GetBalanceResult, error)
	GetLatestBlockhash(ctx context.Context, commitment rpc.CommitmentType) (*rpc.GetLatestBlockhashResult, error)
	SimulateTransactionWithOpts(ctx context.Context, tx *solana.Transaction, opts *rpc.SimulateTransactionOpts) (*rpc.SimulateTransactionResponse, error)
	SendTransactionWithOpts(ctx context.Context, tx *solana.Transaction, opts rpc.TransactionOpts) (solana.Signature, error)
	GetSignatureStatuses(ctx context.Context, searchTransactionHistory bool, sigs ...solana.Signature) (*rpc.GetSignatureStatusesResult, error)
	RequestAirdrop(ctx context.Context, account solana.PublicKey, lamports uint64, commitment rpc.CommitmentType) (solana.Signature, error)
	GetMinimumBalanceForRentExemption(ctx context.Context, dataSize uint64, commitment rpc.CommitmentType) (uint64, error)
}

var _ RPCClient = (*rpc.Client)(nil)

// Connection is bound to one endpoint and one commitment level. It never retries.
type Connection struct {
	endpoint   string
	commitment rpc.CommitmentType
	cli        RPCClient
}

func New(c config.ClusterConf) *Connection {
	var cli *rpc.Client
	if c.RequestsPerSecond > 0 {
		cli = rpc.NewWithCustomRPCClient(rpc.NewWithLimiter(c.RPC, rate.Limit(c.RequestsPerSecond), c.RequestsPerSecond))
	} else {
		cli = rpc.New(c.RPC)
	}
	return NewWithClient(c.RPC, c.CommitmentType(), cli)
}

func NewWithClient(endpoint string, commitment rpc.CommitmentType, cli RPCClient) *Connection {
	return &Connection{
		endpoint:   endpoint,
		commitment: commitment,
		cli:        cli,
	}
}

func (c *Connection) Endpoint() string                { return c.endpoint }
func (c *Connection) Commitment() rpc.CommitmentType { return c.commitment }

type AccountSnapshot struct {
	Address    solana.PublicKey
	Owner      solana.PublicKey
	Lamports   uint64
	Data       []byte
	Executable bool
}

func (c *Connection) GetAccount(ctx context.Context, addr solana.PublicKey) (*AccountSnapshot, error) {
	out, err := c.cli.GetAccountInfoWithOpts(ctx, addr, &rpc.GetAccountInfoOpts{
		Encoding:   solana.EncodingBase64,
		Commitment: c.commitment,
	})
	if err != nil {
		return nil, c.classify("getAccountInfo", err)
	}
	if out == nil || out.Value == nil {
		return nil, ErrAccountNotFound
	}
	snap := &AccountSnapshot{
		Address:    addr,
		Owner:      out.Value.Owner,
		Lamports:   out.Value.Lamports,
		Executable: out.Value.Executable,
	}
	if out.Value.Data != nil {
		snap.Data = out.Value.Data.GetBinary()
	}
	return snap, nil
}

func (c *Connection) GetBalance(ctx context.Context, addr solana.PublicKey) (uint64, error) {
	out, err := c.cli.GetBalance(ctx, addr, c.commitment)
	if err != nil {
		return 0, c.classify("getBalance", err)
	}
	return out.Value, nil
}

type Blockhash struct {
	Hash                 solana.Hash
	LastValidBlockHeight uint64
}

func (c *Connection) GetLatestBlockhash(ctx context.Context) (Blockhash, error) {
	out, err := c.cli.GetLatestBlockhash(ctx, c.commitment)
	if err != nil {
		return Blockhash{}, c.classify("getLatestBlockhash", err)
	}
	if out == nil || out.Value == nil {
		return Blockhash{}, &RpcError{Op: "getLatestBlockhash", Message: "empty result"}
	}
	return Blockhash{
		Hash:                 out.Value.Blockhash,
		LastValidBlockHeight: out.Value.LastValidBlockHeight,
	}, nil
}

// SimulationResult is advisory only.
type SimulationResult struct {
	UnitsConsumed *uint64
	Err           any
	Logs          []string
}

// Simulate dry-runs tx without signature verification, against a fresh blockhash.
func (c *Connection) Simulate(ctx context.Context, tx *solana.Transaction) (*SimulationResult, error) {
	out, err := c.cli.SimulateTransactionWithOpts(ctx, tx, &rpc.SimulateTransactionOpts{
		SigVerify:              false,
		Commitment:             c.commitment,
		ReplaceRecentBlockhash: true,
	})
	if err != nil {
		return nil, c.classify("simulateTransaction", err)
	}
	if out == nil || out.Value == nil {
		return &SimulationResult{}, nil
	}
	return &SimulationResult{
		UnitsConsumed: out.Value.UnitsConsumed,
		Err:           out.Value.Err,
		Logs:          out.Value.Logs,
	}, nil
}

func (c *Connection) Submit(ctx context.Context, tx *solana.Transaction) (solana.Signature, error) {
	sig, err := c.cli.SendTransactionWithOpts(ctx, tx, rpc.TransactionOpts{
		SkipPreflight:       false,
		PreflightCommitment: c.commitment,
	})
	if err != nil {
		return solana.Signature{}, c.classify("sendTransaction", err)
	}
	return sig, nil
}

func (c *Connection) GetStatus(ctx context.Context, sig solana.Signature) (Status, error) {
	out, err := c.cli.GetSignatureStatuses(ctx, false, sig)
	if err != nil {
		return Status{}, c.classify("getSignatureStatuses", err)
	}
	if out == nil || len(out.Value) == 0 {
		return Status{State: StatusPending}, nil
	}
	return statusFromResult(out.Value[0]), nil
}

func (c *Connection) RequestAirdrop(ctx context.Context, addr solana.PublicKey, lamports uint64) (solana.Signature, error) {
	sig, err := c.cli.RequestAirdrop(ctx, addr, lamports, c.commitment)
	if err != nil {
		return solana.Signature{}, c.classify("requestAirdrop", err)
	}
	return sig, nil
}

func (c *Connection) GetMinimumBalanceForRentExemption(ctx context.Context, size uint64) (uint64, error) {
	lamports, err := c.cli.GetMinimumBalanceForRentExemption(ctx, size, c.commitment)
	if err != nil {
		return 0, c.classify("getMinimumBalanceForRentExemption", err)
	}
	return lamports, nil
}
