// Package sysvar decodes the cluster state accounts owned by the Sysvar program.
package sysvar

import (
	"context"
	"fmt"
	"time"

	"solana-lifecycle/internal/rpcs"

	bin "github.com/gagliardetto/binary"
	"github.com/gagliardetto/solana-go"
)

// Owner is the program that owns every sysvar account.
var Owner = solana.MustPublicKeyFromBase58("Sysvar1111111111111111111111111111111111111")

// accountStorageOverhead is the per-account byte count charged on top of its data.
const accountStorageOverhead = 128

type Clock struct {
	Slot                uint64
	EpochStartTimestamp int64
	Epoch               uint64
	LeaderScheduleEpoch uint64
	UnixTimestamp       int64
}

func (c Clock) Time() time.Time {
	return time.Unix(c.UnixTimestamp, 0).UTC()
}

type Rent struct {
	LamportsPerByteYear uint64
	ExemptionThreshold  float64
	BurnPercent         uint8
}

// MinimumBalance is the rent-exempt balance for an account holding size bytes.
func (r Rent) MinimumBalance(size uint64) uint64 {
	return uint64(float64((accountStorageOverhead+size)*r.LamportsPerByteYear) * r.ExemptionThreshold)
}

type EpochSchedule struct {
	SlotsPerEpoch            uint64
	LeaderScheduleSlotOffset uint64
	Warmup                   bool
	FirstNormalEpoch         uint64
	FirstNormalSlot          uint64
}

func decode[T any](name string, data []byte) (*T, error) {
	v := new(T)
	if err := bin.NewBinDecoder(data).Decode(v); err != nil {
		return nil, fmt.Errorf("decode %s sysvar: %w", name, err)
	}
	return v, nil
}

func DecodeClock(data []byte) (*Clock, error) {
	return decode[Clock]("clock", data)
}

func DecodeRent(data []byte) (*Rent, error) {
	return decode[Rent]("rent", data)
}

func DecodeEpochSchedule(data []byte) (*EpochSchedule, error) {
	return decode[EpochSchedule]("epoch schedule", data)
}

// Snapshot is the raw account alongside its decoded value.
type Snapshot[T any] struct {
	Account *rpcs.AccountSnapshot
	Value   *T
}

func fetch[T any](ctx context.Context, conn *rpcs.Connection, addr solana.PublicKey, dec func([]byte) (*T, error)) (*Snapshot[T], error) {
	acc, err := conn.GetAccount(ctx, addr)
	if err != nil {
		return nil, err
	}
	if !acc.Owner.Equals(Owner) {
		return nil, fmt.Errorf("%s is owned by %s, not the sysvar program", addr, acc.Owner)
	}
	v, err := dec(acc.Data)
	if err != nil {
		return nil, err
	}
	return &Snapshot[T]{Account: acc, Value: v}, nil
}

func FetchClock(ctx context.Context, conn *rpcs.Connection) (*Snapshot[Clock], error) {
	return fetch(ctx, conn, solana.SysVarClockPubkey, DecodeClock)
}

func FetchRent(ctx context.Context, conn *rpcs.Connection) (*Snapshot[Rent], error) {
	return fetch(ctx, conn, solana.SysVarRentPubkey, DecodeRent)
}

func FetchEpochSchedule(ctx context.Context, conn *rpcs.Connection) (*Snapshot[EpochSchedule], error) {
	return fetch(ctx, conn, solana.SysVarEpochSchedulePubkey, DecodeEpochSchedule)
}
