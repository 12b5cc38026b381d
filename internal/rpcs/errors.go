package rpcs

import (
	"errors"
	"fmt"

	"github.com/gagliardetto/solana-go/rpc"
	"github.com/gagliardetto/solana-go/rpc/jsonrpc"
)

var ErrAccountNotFound = errors.New("account not found")

// ConnectionError is a transport level failure: the request never got an answer.
type ConnectionError struct {
	Endpoint string
	Op       string
	Err      error
}

func (e *ConnectionError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Endpoint, e.Err)
}

func (e *ConnectionError) Unwrap() error { return e.Err }

// RpcError is a rejection returned by the node.
type RpcError struct {
	Op      string
	Code    int
	Message string
	Data    any
}

func (e *RpcError) Error() string {
	return fmt.Sprintf("%s: rpc error %d: %s", e.Op, e.Code, e.Message)
}

// classify maps an error from the rpc client onto the connection error taxonomy.
func (c *Connection) classify(op string, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, rpc.ErrNotFound) {
		return ErrAccountNotFound
	}
	var rpcErr *jsonrpc.RPCError
	if errors.As(err, &rpcErr) {
		return &RpcError{Op: op, Code: rpcErr.Code, Message: rpcErr.Message, Data: rpcErr.Data}
	}
	return &ConnectionError{Endpoint: c.endpoint, Op: op, Err: err}
}
