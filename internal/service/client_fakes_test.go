// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"errors"
	"sync"
	"time"

	"github.com/MKhiriev/go-todo-sync/internal/adapter"
	"github.com/MKhiriev/go-todo-sync/internal/config"
	"github.com/MKhiriev/go-todo-sync/internal/push"
	"github.com/MKhiriev/go-todo-sync/internal/workers"
	"github.com/MKhiriev/go-todo-sync/models"
)

var (
	endpointA = config.Endpoint{Name: "local", APIURL: "http://a.test/todos", SocketURL: "http://a.test"}
	endpointB = config.Endpoint{Name: "remote", APIURL: "http://b.test/todos", SocketURL: "http://b.test"}
)

// fakeListener — управляемый вручную слушатель push-канала
type fakeListener struct {
	mu       sync.Mutex
	endpoint config.Endpoint
	handlers push.Handlers
	state    models.ConnectionState
	starts   int
	retries  int
	stops    int
}

func (l *fakeListener) Start() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.starts++
}

func (l *fakeListener) Retry() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.retries++
}

func (l *fakeListener) Stop() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.stops++
}

func (l *fakeListener) State() models.ConnectionState {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.state
}

func (l *fakeListener) Err() error  { return nil }
func (l *fakeListener) URL() string { return l.endpoint.SocketURL }

func (l *fakeListener) emitState(s models.ConnectionState) {
	l.mu.Lock()
	l.state = s
	l.mu.Unlock()
	l.handlers.OnState(s)
}

func (l *fakeListener) emitSnapshot(s models.Snapshot) {
	l.handlers.OnSnapshot(s)
}

func (l *fakeListener) counts() (starts, retries, stops int) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.starts, l.retries, l.stops
}

// fakeFactory раздаёт заранее подготовленные хранилища по имени эндпоинта
type fakeFactory struct {
	mu        sync.Mutex
	stores    map[string]adapter.RemoteStore
	listeners []*fakeListener
}

func newFakeFactory(stores map[string]adapter.RemoteStore) *fakeFactory {
	return &fakeFactory{stores: stores}
}

func (f *fakeFactory) NewRemoteStore(endpoint config.Endpoint) (adapter.RemoteStore, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	s, ok := f.stores[endpoint.Name]
	if !ok {
		return nil, errors.New("no store for " + endpoint.Name)
	}
	return s, nil
}

func (f *fakeFactory) NewListener(endpoint config.Endpoint, handlers push.Handlers) (push.Listener, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	l := &fakeListener{
		endpoint: endpoint,
		handlers: handlers,
		state:    models.ConnectionState{Status: models.Disconnected},
	}
	f.listeners = append(f.listeners, l)
	return l, nil
}

func (f *fakeFactory) listener(i int) *fakeListener {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.listeners[i]
}

func (f *fakeFactory) lastListener() *fakeListener {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.listeners[len(f.listeners)-1]
}

// manualScheduler копит отложенные задачи и запускает их только по команде
type manualScheduler struct {
	mu      sync.Mutex
	tasks   []*manualTask
	stopped bool
}

type manualTask struct {
	delay     time.Duration
	worker    workers.Worker
	cancelled bool
	ran       bool
}

func (s *manualScheduler) After(delay time.Duration, w workers.Worker) func() {
	s.mu.Lock()
	defer s.mu.Unlock()

	task := &manualTask{delay: delay, worker: w}
	if s.stopped {
		task.cancelled = true
	}
	s.tasks = append(s.tasks, task)

	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		task.cancelled = true
	}
}

func (s *manualScheduler) Pending() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	n := 0
	for _, t := range s.tasks {
		if !t.cancelled && !t.ran {
			n++
		}
	}
	return n
}

func (s *manualScheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stopped = true
	for _, t := range s.tasks {
		t.cancelled = true
	}
}

// runPending запускает все неотменённые задачи
func (s *manualScheduler) runPending() int {
	s.mu.Lock()
	var due []*manualTask
	for _, t := range s.tasks {
		if !t.cancelled && !t.ran {
			t.ran = true
			due = append(due, t)
		}
	}
	s.mu.Unlock()

	for _, t := range due {
		t.worker.Run()
	}
	return len(due)
}

// fire запускает задачу i даже если она отменена: так выглядит таймер,
// сработавший одновременно с отменой
func (s *manualScheduler) fire(i int) {
	s.mu.Lock()
	t := s.tasks[i]
	t.ran = true
	s.mu.Unlock()

	t.worker.Run()
}

func (s *manualScheduler) task(i int) manualTask {
	s.mu.Lock()
	defer s.mu.Unlock()
	return *s.tasks[i]
}

func (s *manualScheduler) total() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.tasks)
}
