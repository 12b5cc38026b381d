package types

type DeriveRequest struct {
	Program string `form:"program,default=11111111111111111111111111111111"`
	Seeds   string `form:"seeds,optional"` // comma separated, see pda.ParseSeed
}

type DeriveResponse struct {
	Program string `json:"program"`
	Address string `json:"address"`
	Bump    uint8  `json:"bump"`
}

type AccountRequest struct {
	Address string `path:"address"`
}

type AccountResponse struct {
	Address    string `json:"address"`
	Owner      string `json:"owner"`
	Lamports   uint64 `json:"lamports"`
	Executable bool   `json:"executable"`
	Space      int    `json:"space"`
	Data       string `json:"data"` // base64
}

type BalanceResponse struct {
	Address  string `json:"address"`
	Lamports uint64 `json:"lamports"`
}

type ClockResponse struct {
	Slot                uint64 `json:"slot"`
	EpochStartTimestamp int64  `json:"epochStartTimestamp"`
	Epoch               uint64 `json:"epoch"`
	LeaderScheduleEpoch uint64 `json:"leaderScheduleEpoch"`
	UnixTimestamp       int64  `json:"unixTimestamp"`
}

type EstimateRequest struct {
	From     string `json:"from"`
	To       string `json:"to"`
	Lamports uint64 `json:"lamports,default=10000000"`
}

type EstimateResponse struct {
	Units     uint32 `json:"units"`
	UnitLimit uint32 `json:"unitLimit"`
	Fallback  bool   `json:"fallback"`
}
