// Package rpcstest provides an in-memory rpcs.RPCClient for tests.
package rpcstest

import (
	"context"
	"sync"

	"github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/rpc"
)

// Client answers from its fields and records what it was asked. Zero value answers
// every account lookup with not found and every status lookup with pending.
type Client struct {
	mu sync.Mutex

	Accounts  map[solana.PublicKey]*rpc.Account
	Balances  map[solana.PublicKey]uint64
	Blockhash solana.Hash
	Rent      uint64

	SimulateUnits *uint64
	SimulateErr   any
	SimulateFail  error

	// Statuses are handed out in order; the last one repeats.
	Statuses  []*rpc.SignatureStatusesResult
	StatusErr error

	SendErr    error
	AirdropErr error
	CallErr    error

	Calls     map[string]int
	Simulated []*solana.Transaction
	Sent      []*solana.Transaction
}

func New() *Client {
	return &Client{
		Accounts:  map[solana.PublicKey]*rpc.Account{},
		Balances:  map[solana.PublicKey]uint64{},
		Blockhash: solana.Hash{1, 2, 3},
		Calls:     map[string]int{},
	}
}

func (c *Client) record(method string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.Calls == nil {
		c.Calls = map[string]int{}
	}
	c.Calls[method]++
}

// Count returns how many times method was called.
func (c *Client) Count(method string) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.Calls[method]
}

// Total returns the number of calls across all methods.
func (c *Client) Total() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	n := 0
	for _, v := range c.Calls {
		n += v
	}
	return n
}

func (c *Client) GetAccountInfoWithOpts(_ context.Context, account solana.PublicKey, _ *rpc.GetAccountInfoOpts) (*rpc.GetAccountInfoResult, error) {
	c.record("getAccountInfo")
	if c.CallErr != nil {
		return nil, c.CallErr
	}
	acc, ok := c.Accounts[account]
	if !ok {
		return nil, rpc.ErrNotFound
	}
	return &rpc.GetAccountInfoResult{Value: acc}, nil
}

func (c *Client) GetBalance(_ context.Context, account solana.PublicKey, _ rpc.CommitmentType) (*rpc.GetBalanceResult, error) {
	c.record("getBalance")
	if c.CallErr != nil {
		return nil, c.CallErr
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	return &rpc.GetBalanceResult{Value: c.Balances[account]}, nil
}

func (c *Client) GetLatestBlockhash(_ context.Context, _ rpc.CommitmentType) (*rpc.GetLatestBlockhashResult, error) {
	c.record("getLatestBlockhash")
	if c.CallErr != nil {
		return nil, c.CallErr
	}
	return &rpc.GetLatestBlockhashResult{
		Value: &rpc.LatestBlockhashResult{Blockhash: c.Blockhash, LastValidBlockHeight: 150},
	}, nil
}

func (c *Client) SimulateTransactionWithOpts(_ context.Context, tx *solana.Transaction, _ *rpc.SimulateTransactionOpts) (*rpc.SimulateTransactionResponse, error) {
	c.record("simulateTransaction")
	c.mu.Lock()
	c.Simulated = append(c.Simulated, tx)
	c.mu.Unlock()
	if c.SimulateFail != nil {
		return nil, c.SimulateFail
	}
	return &rpc.SimulateTransactionResponse{
		Value: &rpc.SimulateTransactionResult{
			Err:           c.SimulateErr,
			UnitsConsumed: c.SimulateUnits,
		},
	}, nil
}

func (c *Client) SendTransactionWithOpts(_ context.Context, tx *solana.Transaction, _ rpc.TransactionOpts) (solana.Signature, error) {
	c.record("sendTransaction")
	if c.SendErr != nil {
		return solana.Signature{}, c.SendErr
	}
	c.mu.Lock()
	c.Sent = append(c.Sent, tx)
	c.mu.Unlock()
	if len(tx.Signatures) == 0 {
		return solana.Signature{}, nil
	}
	return tx.Signatures[0], nil
}

func (c *Client) GetSignatureStatuses(_ context.Context, _ bool, sigs ...solana.Signature) (*rpc.GetSignatureStatusesResult, error) {
	c.record("getSignatureStatuses")
	if c.StatusErr != nil {
		return nil, c.StatusErr
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	var st *rpc.SignatureStatusesResult
	if len(c.Statuses) > 0 {
		st = c.Statuses[0]
		if len(c.Statuses) > 1 {
			c.Statuses = c.Statuses[1:]
		}
	}
	out := &rpc.GetSignatureStatusesResult{}
	for range sigs {
		out.Value = append(out.Value, st)
	}
	return out, nil
}

func (c *Client) RequestAirdrop(_ context.Context, account solana.PublicKey, lamports uint64, _ rpc.CommitmentType) (solana.Signature, error) {
	c.record("requestAirdrop")
	if c.AirdropErr != nil {
		return solana.Signature{}, c.AirdropErr
	}
	c.mu.Lock()
	c.Balances[account] += lamports
	c.mu.Unlock()
	return solana.Signature{9, 9, 9}, nil
}

func (c *Client) GetMinimumBalanceForRentExemption(_ context.Context, _ uint64, _ rpc.CommitmentType) (uint64, error) {
	c.record("getMinimumBalanceForRentExemption")
	if c.CallErr != nil {
		return 0, c.CallErr
	}
	return c.Rent, nil
}

// Confirmed is a status result at the given confirmation level.
func Confirmed(level rpc.ConfirmationStatusType) *rpc.SignatureStatusesResult {
	return &rpc.SignatureStatusesResult{Slot: 42, ConfirmationStatus: level}
}

// Failed is a status result carrying a transaction error.
func Failed(reason any) *rpc.SignatureStatusesResult {
	return &rpc.SignatureStatusesResult{Slot: 42, Err: reason, ConfirmationStatus: rpc.ConfirmationStatusProcessed}
}

// Units returns a pointer for SimulateUnits.
func Units(n uint64) *uint64 { return &n }
