// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package push implements the receive-only, auto-reconnecting push channel
// listener.
//
// A [Listener] keeps one websocket connection to {socket base}/ws. Every
// `todos` event carries a full collection snapshot and is handed to
// [Handlers.OnSnapshot]; lifecycle transitions
// (Disconnected → Connecting → Connected → ...) go to [Handlers.OnState].
//
// Reconnects use exponential backoff bounded by the client push settings. Once the
// attempt budget is exhausted the listener parks in a terminal Error state
// until [Listener.Retry] is called. Handlers are bound at construction, so
// switching endpoints means stopping the listener and building a new one.
package push
