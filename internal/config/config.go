package config

import (
	"time"

	"github.com/gagliardetto/solana-go/rpc"
	"github.com/zeromicro/go-zero/core/logx"
	"github.com/zeromicro/go-zero/core/service"
	"github.com/zeromicro/go-zero/rest"
)

type Config struct {
	Rest    RestConf `json:",optional"`
	Log     LogConf
	Banner  BannerConf
	Cluster ClusterConf
	Poller  PollerConf
	Compute ComputeConf
	Airdrop AirdropConf
	Payer   PayerConf
}

type RestConf struct {
	rest.RestConf
}

type LogConf struct {
	logx.LogConf
	File FileLogConf `json:",optional"`
}

// FileLogConf routes the log into a rotating json file when Path is set.
type FileLogConf struct {
	Path       string `json:",optional"`
	MaxSizeMB  int    `json:",default=100"`
	MaxBackups int    `json:",default=3"`
	MaxAgeDays int    `json:",default=7"`
	Compress   bool   `json:",optional"`
}

type BannerConf struct {
	Text     string `json:",default=SOLANA"`
	Color    string `json:",default=green"`
	FontName string `json:",default=standard,options=big|larry3d|starwars|standard"`
}

// ClusterConf selects one endpoint and one commitment level.
type ClusterConf struct {
	RPC               string `json:",default=http://localhost:8899"`
	WS                string `json:",optional"`
	Commitment        string `json:",default=confirmed,options=processed|confirmed|finalized"`
	RequestsPerSecond int    `json:",default=0"`
}

func (c ClusterConf) CommitmentType() rpc.CommitmentType {
	return ParseCommitment(c.Commitment)
}

type PollerConf struct {
	IntervalMs int `json:",default=500"`
	TimeoutMs  int `json:",default=60000"`
}

func (c PollerConf) Interval() time.Duration {
	return time.Duration(c.IntervalMs) * time.Millisecond
}

func (c PollerConf) Timeout() time.Duration {
	return time.Duration(c.TimeoutMs) * time.Millisecond
}

type ComputeConf struct {
	FallbackUnits uint32 `json:",default=200000"`
	MarginPercent uint32 `json:",default=10"`
	PriorityFee   uint64 `json:",default=1"`
}

type AirdropConf struct {
	Lamports uint64 `json:",default=1000000000"`
	Attempts uint   `json:",default=3"`
}

// PayerConf names where a persistent fee payer is loaded from. Empty means a fresh
// keypair per run.
type PayerConf struct {
	Env        string `json:",default=PAYER_PRIVATE_KEY"`
	KeygenFile string `json:",optional"`
}

func ParseCommitment(s string) rpc.CommitmentType {
	switch rpc.CommitmentType(s) {
	case rpc.CommitmentProcessed:
		return rpc.CommitmentProcessed
	case rpc.CommitmentFinalized:
		return rpc.CommitmentFinalized
	default:
		return rpc.CommitmentConfirmed
	}
}

// Default returns the configuration used when no file is given.
func Default() Config {
	return Config{
		Rest:    DefaultRest(),
		Log:     LogConf{LogConf: defaultLog()},
		Banner:  BannerConf{Text: "SOLANA", Color: "green", FontName: "standard"},
		Cluster: ClusterConf{
			RPC:        "http://localhost:8899",
			Commitment: string(rpc.CommitmentConfirmed),
		},
		Poller:  PollerConf{IntervalMs: 500, TimeoutMs: 60000},
		Compute: ComputeConf{FallbackUnits: 200000, MarginPercent: 10, PriorityFee: 1},
		Airdrop: AirdropConf{Lamports: 1000000000, Attempts: 3},
		Payer:   PayerConf{Env: "PAYER_PRIVATE_KEY"},
	}
}

// DefaultRest serves on :8888 when the configuration has no Rest section.
func DefaultRest() RestConf {
	return RestConf{rest.RestConf{
		ServiceConf: service.ServiceConf{
			Name: "solana-lifecycle",
			Log:  defaultLog(),
		},
		Host:     "0.0.0.0",
		Port:     8888,
		Timeout:  3000,
		MaxBytes: 1 << 20,
	}}
}

func defaultLog() logx.LogConf {
	return logx.LogConf{Mode: "console", Encoding: "plain", Level: "info"}
}
