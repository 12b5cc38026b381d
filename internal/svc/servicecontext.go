package svc

import (
	"solana-lifecycle/internal/compute"
	"solana-lifecycle/internal/config"
	"solana-lifecycle/internal/confirm"
	"solana-lifecycle/internal/identity"
	"solana-lifecycle/internal/rpcs"
)

type ServiceContext struct {
	Config config.Config

	Conn      *rpcs.Connection
	Poller    *confirm.Poller
	Estimator *compute.Estimator
}

func NewServiceContext(c config.Config) *ServiceContext {
	return NewServiceContextWithConn(c, rpcs.New(c.Cluster))
}

// NewServiceContextWithConn wires the services around an existing connection.
func NewServiceContextWithConn(c config.Config, conn *rpcs.Connection) *ServiceContext {
	return &ServiceContext{
		Config:    c,
		Conn:      conn,
		Poller:    confirm.NewPoller(conn, c.Poller, c.Cluster.WS),
		Estimator: compute.NewEstimator(conn, c.Compute),
	}
}

// LoadPayer returns the configured fee payer. ok is false when none is configured.
func (s *ServiceContext) LoadPayer() (id identity.Identity, ok bool, err error) {
	if s.Config.Payer.KeygenFile != "" {
		id, err = identity.FromKeygenFile(s.Config.Payer.KeygenFile)
		return id, err == nil, err
	}
	if s.Config.Payer.Env != "" {
		return identity.FromEnv(s.Config.Payer.Env)
	}
	return identity.Identity{}, false, nil
}
