// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/MKhiriev/go-todo-sync/internal/adapter"
	"github.com/MKhiriev/go-todo-sync/internal/config"
	"github.com/MKhiriev/go-todo-sync/internal/logger"
	"github.com/MKhiriev/go-todo-sync/internal/push"
	"github.com/MKhiriev/go-todo-sync/internal/workers"
	"github.com/MKhiriev/go-todo-sync/models"
)

type syncController struct {
	factory       ClientFactory
	scheduler     workers.Scheduler
	fallbackDelay time.Duration

	// ctx bounds fallback refetches; cancelled by Close.
	ctx    context.Context
	cancel context.CancelFunc

	mu        sync.Mutex
	gen       uint64
	endpoint  config.Endpoint
	store     adapter.RemoteStore
	listener  push.Listener
	view      models.View
	fallbacks map[uint64]func()
	nextFb    uint64
	closed    bool

	subsMu  sync.Mutex
	subs    map[uint64]func(models.View)
	nextSub uint64
	changed chan struct{}
	done    chan struct{}

	logger *logger.Logger
}

// NewTodoController builds a controller bound to endpoint and starts its push
// listener. The initial list is not issued until LoadInitial is called.
func NewTodoController(
	endpoint config.Endpoint,
	factory ClientFactory,
	scheduler workers.Scheduler,
	syncCfg config.ClientSync,
	log *logger.Logger,
) (TodoController, error) {
	ctx, cancel := context.WithCancel(context.Background())

	c := &syncController{
		factory:       factory,
		scheduler:     scheduler,
		fallbackDelay: syncCfg.FallbackDelay,
		ctx:           ctx,
		cancel:        cancel,
		fallbacks:     make(map[uint64]func()),
		subs:          make(map[uint64]func(models.View)),
		changed:       make(chan struct{}, 1),
		done:          make(chan struct{}),
		logger:        log,
	}

	c.mu.Lock()
	listener, err := c.activateLocked(endpoint)
	c.mu.Unlock()
	if err != nil {
		cancel()
		return nil, err
	}

	go c.notifyLoop()
	listener.Start()

	return c, nil
}

// activateLocked bumps the generation and installs a fresh store and listener
// for endpoint. The returned listener is not started yet.
func (c *syncController) activateLocked(endpoint config.Endpoint) (push.Listener, error) {
	c.gen++
	gen := c.gen

	c.cancelFallbacksLocked()

	c.endpoint = endpoint
	c.store, c.listener = nil, nil
	c.view = models.View{
		Items:      models.Snapshot{},
		Connection: models.ConnectionState{Status: models.Disconnected},
		Endpoint:   endpoint.Name,
		Generation: gen,
	}

	store, err := c.factory.NewRemoteStore(endpoint)
	if err != nil {
		return nil, fmt.Errorf("build remote store: %w", err)
	}

	listener, err := c.factory.NewListener(endpoint, push.Handlers{
		OnState:    func(s models.ConnectionState) { c.applyState(gen, s) },
		OnSnapshot: func(s models.Snapshot) { c.applySnapshot(gen, s, "push") },
	})
	if err != nil {
		return nil, fmt.Errorf("build push listener: %w", err)
	}

	c.store, c.listener = store, listener
	return listener, nil
}

func (c *syncController) LoadInitial(ctx context.Context) error {
	return c.load(ctx, "initial")
}

func (c *syncController) Retry(ctx context.Context) error {
	c.mu.Lock()
	listener := c.listener
	c.mu.Unlock()

	if listener != nil && listener.State().Status == models.Error {
		c.logger.Info().Msg("restarting push channel")
		listener.Retry()
	}

	return c.load(ctx, "retry")
}

func (c *syncController) load(ctx context.Context, source string) error {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return ErrControllerClosed
	}
	gen, store := c.gen, c.store
	if store == nil {
		c.mu.Unlock()
		return ErrNoEndpoint
	}
	c.view.Loading = true
	c.mu.Unlock()
	c.notify()

	items, err := store.List(ctx)
	return c.applyList(gen, items, err, source)
}

func (c *syncController) CreateItem(ctx context.Context, title string) error {
	return c.mutate(ctx, "create", func(store adapter.RemoteStore) error {
		_, err := store.Create(ctx, title)
		return err
	})
}

func (c *syncController) ToggleItem(ctx context.Context, id models.ItemID) error {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return ErrControllerClosed
	}
	item, ok := c.view.Items.Find(id)
	gen := c.gen
	c.mu.Unlock()

	if !ok {
		err := fmt.Errorf("toggle %s: %w", id, adapter.ErrNotFound)
		c.surface(gen, err)
		return err
	}

	// item belongs to gen; it must not be sent to another endpoint.
	return c.mutateAt(ctx, "toggle", gen, func(store adapter.RemoteStore) error {
		return store.Update(ctx, item.Toggled())
	})
}

func (c *syncController) DeleteItem(ctx context.Context, id models.ItemID) error {
	return c.mutate(ctx, "delete", func(store adapter.RemoteStore) error {
		return store.Delete(ctx, id)
	})
}

// mutate runs call against the current store. On success it schedules the
// fallback re-list for the generation the call was issued under; on failure
// it only surfaces the error.
func (c *syncController) mutate(ctx context.Context, op string, call func(adapter.RemoteStore) error) error {
	return c.mutateAt(ctx, op, 0, call)
}

// mutateAt is mutate pinned to generation want; a zero want means the
// current one. A switch since want fails with ErrSuperseded and no call.
func (c *syncController) mutateAt(ctx context.Context, op string, want uint64, call func(adapter.RemoteStore) error) error {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return ErrControllerClosed
	}
	gen, store := c.gen, c.store
	c.mu.Unlock()

	if want != 0 && want != gen {
		c.logger.Debug().Str("op", op).Uint64("generation", want).Msg("mutation superseded by endpoint switch")
		return ErrSuperseded
	}

	if store == nil {
		return ErrNoEndpoint
	}

	if err := call(store); err != nil {
		c.logger.Warn().Err(err).Str("op", op).Uint64("generation", gen).Msg("mutation failed")
		c.surface(gen, err)
		return err
	}

	c.mu.Lock()
	if gen != c.gen || c.closed {
		c.mu.Unlock()
		return nil
	}
	c.clearErrLocked()
	c.scheduleFallbackLocked(gen)
	c.mu.Unlock()
	c.notify()

	return nil
}

func (c *syncController) scheduleFallbackLocked(gen uint64) {
	id := c.nextFb
	c.nextFb++
	c.fallbacks[id] = c.scheduler.After(c.fallbackDelay, workers.WorkerFunc(func() {
		c.refetch(gen, id)
	}))
}

func (c *syncController) cancelFallbacksLocked() {
	for id, cancel := range c.fallbacks {
		cancel()
		delete(c.fallbacks, id)
	}
}

// refetch is the fallback re-list. It never marks the view as loading.
func (c *syncController) refetch(gen, id uint64) {
	c.mu.Lock()
	delete(c.fallbacks, id)
	if gen != c.gen || c.closed {
		c.mu.Unlock()
		return
	}
	store := c.store
	c.mu.Unlock()

	items, err := store.List(c.ctx)
	_ = c.applyList(gen, items, err, "fallback")
}

func (c *syncController) applyList(gen uint64, items models.Snapshot, err error, source string) error {
	c.mu.Lock()
	if gen != c.gen || c.closed {
		c.mu.Unlock()
		c.logger.Debug().Str("source", source).Uint64("generation", gen).Msg("stale list result dropped")
		return ErrSuperseded
	}

	c.view.Loading = false
	if err != nil {
		c.view.Err = err
		c.mu.Unlock()
		c.logger.Warn().Err(err).Str("source", source).Msg("list failed, keeping last view")
		c.notify()
		return err
	}

	c.view.Items = items.Clone()
	c.clearErrLocked()
	c.mu.Unlock()

	c.logger.Debug().Str("source", source).Int("items", len(items)).Msg("view replaced")
	c.notify()
	return nil
}

func (c *syncController) applySnapshot(gen uint64, items models.Snapshot, source string) {
	c.mu.Lock()
	if gen != c.gen || c.closed {
		c.mu.Unlock()
		return
	}
	c.view.Items = items.Clone()
	c.view.Loading = false
	c.mu.Unlock()

	c.logger.Debug().Str("source", source).Int("items", len(items)).Msg("view replaced")
	c.notify()
}

func (c *syncController) applyState(gen uint64, state models.ConnectionState) {
	c.mu.Lock()
	if gen != c.gen || c.closed {
		c.mu.Unlock()
		return
	}
	c.view.Connection = state

	var chErr *push.ChannelError
	switch {
	case state.Status == models.Error:
		c.view.Err = &push.ChannelError{Reason: state.Reason}
	case state.Status == models.Connected && errors.As(c.view.Err, &chErr):
		c.view.Err = nil
	}
	c.mu.Unlock()

	c.notify()
}

// clearErrLocked drops the last operation error. A push channel failure
// stays until the listener reports Connected again.
func (c *syncController) clearErrLocked() {
	var chErr *push.ChannelError
	if errors.As(c.view.Err, &chErr) {
		return
	}
	c.view.Err = nil
}

func (c *syncController) surface(gen uint64, err error) {
	c.mu.Lock()
	if gen != c.gen || c.closed {
		c.mu.Unlock()
		return
	}
	c.view.Err = err
	c.mu.Unlock()

	c.notify()
}

func (c *syncController) Reconfigure(ctx context.Context, endpoint config.Endpoint) error {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return ErrControllerClosed
	}
	old := c.listener
	listener, err := c.activateLocked(endpoint)
	gen := c.gen
	if err != nil {
		c.view.Err = err
	}
	c.mu.Unlock()

	c.logger.Info().Str("endpoint", endpoint.Name).Str("api_url", endpoint.APIURL).
		Uint64("generation", gen).Msg("endpoint switched")

	if old != nil {
		old.Stop()
	}
	c.notify()

	if err != nil {
		return err
	}

	listener.Start()
	return c.LoadInitial(ctx)
}

func (c *syncController) View() models.View {
	c.mu.Lock()
	defer c.mu.Unlock()

	v := c.view
	v.Items = c.view.Items.Clone()
	return v
}

func (c *syncController) Endpoint() config.Endpoint {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.endpoint
}

func (c *syncController) Subscribe(fn func(models.View)) func() {
	c.subsMu.Lock()
	id := c.nextSub
	c.nextSub++
	c.subs[id] = fn
	c.subsMu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			c.subsMu.Lock()
			delete(c.subs, id)
			c.subsMu.Unlock()
		})
	}
}

// notify wakes the notification loop. Pending wake-ups coalesce, so
// subscribers always see the latest view but may skip intermediate ones.
func (c *syncController) notify() {
	select {
	case c.changed <- struct{}{}:
	default:
	}
}

func (c *syncController) notifyLoop() {
	for {
		select {
		case <-c.done:
			return
		case <-c.changed:
		}

		view := c.View()

		c.subsMu.Lock()
		subs := make([]func(models.View), 0, len(c.subs))
		for _, fn := range c.subs {
			subs = append(subs, fn)
		}
		c.subsMu.Unlock()

		for _, fn := range subs {
			fn(view)
		}
	}
}

func (c *syncController) Close() {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	c.closed = true
	c.cancelFallbacksLocked()
	listener := c.listener
	c.mu.Unlock()

	if listener != nil {
		listener.Stop()
	}
	c.cancel()
	c.scheduler.Stop()
	close(c.done)

	c.logger.Info().Msg("controller closed")
}
