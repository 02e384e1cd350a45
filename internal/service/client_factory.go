package service

import (
	"github.com/MKhiriev/go-todo-sync/internal/adapter"
	"github.com/MKhiriev/go-todo-sync/internal/config"
	"github.com/MKhiriev/go-todo-sync/internal/logger"
	"github.com/MKhiriev/go-todo-sync/internal/push"
)

type clientFactory struct {
	adapterCfg config.ClientAdapter
	pushCfg    config.ClientPush
	logger     *logger.Logger
}

// NewClientFactory returns a [ClientFactory] producing resty remote stores
// and websocket listeners configured from cfg.
func NewClientFactory(cfg *config.ClientConfig, log *logger.Logger) ClientFactory {
	return &clientFactory{adapterCfg: cfg.Adapter, pushCfg: cfg.Push, logger: log}
}

func (f *clientFactory) NewRemoteStore(endpoint config.Endpoint) (adapter.RemoteStore, error) {
	return adapter.NewHTTPRemoteStore(endpoint, f.adapterCfg, f.logger.Named("adapter"))
}

func (f *clientFactory) NewListener(endpoint config.Endpoint, handlers push.Handlers) (push.Listener, error) {
	return push.NewListener(endpoint.SocketURL, f.pushCfg, handlers, f.logger.Named("push"))
}
