package query

import (
	"encoding/binary"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"solana-lifecycle/internal/compute"
	"solana-lifecycle/internal/config"
	"solana-lifecycle/internal/rpcs"
	"solana-lifecycle/internal/rpcs/rpcstest"
	"solana-lifecycle/internal/svc"
	"solana-lifecycle/internal/sysvar"
	"solana-lifecycle/internal/types"

	"github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/rpc"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zeromicro/go-zero/rest/pathvar"
)

func newTestSvc() (*svc.ServiceContext, *rpcstest.Client) {
	fake := rpcstest.New()
	conn := rpcs.NewWithClient("http://fake:8899", rpc.CommitmentConfirmed, fake)
	return svc.NewServiceContextWithConn(config.Default(), conn), fake
}

func serve(h http.HandlerFunc, r *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	h(w, r)
	return w
}

func withAddress(r *http.Request, addr string) *http.Request {
	return pathvar.WithVars(r, map[string]string{"address": addr})
}

func TestDerive(t *testing.T) {
	svcCtx, fake := newTestSvc()

	w := serve(Derive(svcCtx), httptest.NewRequest(http.MethodGet, "/v1/pda?seeds=str:helloWorld", nil))
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp types.DeriveResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	want, bump, err := solana.FindProgramAddress([][]byte{[]byte("helloWorld")}, solana.SystemProgramID)
	require.NoError(t, err)
	assert.Equal(t, want.String(), resp.Address)
	assert.Equal(t, bump, resp.Bump)
	assert.Equal(t, solana.SystemProgramID.String(), resp.Program)
	assert.Zero(t, fake.Total())

	w = serve(Derive(svcCtx), httptest.NewRequest(http.MethodGet, "/v1/pda?program=nope&seeds=a", nil))
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGetAccount(t *testing.T) {
	svcCtx, fake := newTestSvc()
	addr := solana.NewWallet().PublicKey()
	fake.Accounts[addr] = &rpc.Account{
		Owner:    solana.SystemProgramID,
		Lamports: 42,
		Data:     rpc.DataBytesOrJSONFromBytes([]byte{1, 2}),
	}

	w := serve(GetAccount(svcCtx), withAddress(httptest.NewRequest(http.MethodGet, "/v1/accounts/"+addr.String(), nil), addr.String()))
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var resp types.AccountResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.EqualValues(t, 42, resp.Lamports)
	assert.Equal(t, 2, resp.Space)
	assert.Equal(t, "AQI=", resp.Data)

	missing := solana.NewWallet().PublicKey().String()
	w = serve(GetAccount(svcCtx), withAddress(httptest.NewRequest(http.MethodGet, "/v1/accounts/"+missing, nil), missing))
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = serve(GetAccount(svcCtx), withAddress(httptest.NewRequest(http.MethodGet, "/v1/accounts/bad", nil), "bad"))
	assert.Equal(t, http.StatusBadRequest, w.Code)

	fake.CallErr = errors.New("connection refused")
	w = serve(GetAccount(svcCtx), withAddress(httptest.NewRequest(http.MethodGet, "/v1/accounts/"+missing, nil), missing))
	assert.Equal(t, http.StatusBadGateway, w.Code)
}

func TestGetBalance(t *testing.T) {
	svcCtx, fake := newTestSvc()
	addr := solana.NewWallet().PublicKey()
	fake.Balances[addr] = 7

	w := serve(GetBalance(svcCtx), withAddress(httptest.NewRequest(http.MethodGet, "/v1/balance/"+addr.String(), nil), addr.String()))
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var resp types.BalanceResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.EqualValues(t, 7, resp.Lamports)
}

func TestGetClock(t *testing.T) {
	svcCtx, fake := newTestSvc()
	var data []byte
	for _, v := range []uint64{10, 20, 30, 40, 50} {
		data = binary.LittleEndian.AppendUint64(data, v)
	}
	fake.Accounts[solana.SysVarClockPubkey] = &rpc.Account{Owner: sysvar.Owner, Data: rpc.DataBytesOrJSONFromBytes(data)}

	w := serve(GetClock(svcCtx), httptest.NewRequest(http.MethodGet, "/v1/sysvar/clock", nil))
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var resp types.ClockResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.EqualValues(t, 10, resp.Slot)
	assert.EqualValues(t, 30, resp.Epoch)
	assert.EqualValues(t, 50, resp.UnixTimestamp)
}

func TestEstimate(t *testing.T) {
	svcCtx, fake := newTestSvc()
	fake.SimulateUnits = rpcstest.Units(450)
	body := `{"from":"` + solana.NewWallet().PublicKey().String() + `","to":"` + solana.NewWallet().PublicKey().String() + `"}`

	r := httptest.NewRequest(http.MethodPost, "/v1/estimate", strings.NewReader(body))
	r.Header.Set("Content-Type", "application/json")
	w := serve(Estimate(svcCtx), r)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp types.EstimateResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.EqualValues(t, 450, resp.Units)
	assert.EqualValues(t, 495, resp.UnitLimit)
	assert.False(t, resp.Fallback)
	assert.Zero(t, fake.Count("sendTransaction"))

	fake.SimulateFail = errors.New("unavailable")
	r = httptest.NewRequest(http.MethodPost, "/v1/estimate", strings.NewReader(body))
	r.Header.Set("Content-Type", "application/json")
	w = serve(Estimate(svcCtx), r)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, compute.FallbackUnits, resp.Units)
	assert.True(t, resp.Fallback)

	fake.SimulateFail = nil
	fake.SimulateUnits = rpcstest.Units(uint64(compute.FallbackUnits))
	r = httptest.NewRequest(http.MethodPost, "/v1/estimate", strings.NewReader(body))
	r.Header.Set("Content-Type", "application/json")
	w = serve(Estimate(svcCtx), r)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	resp = types.EstimateResponse{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, compute.FallbackUnits, resp.Units)
	assert.False(t, resp.Fallback)
}
