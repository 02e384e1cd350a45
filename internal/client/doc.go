// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package client implements the interactive client application runtime.
//
// It ties the terminal UI to the synchronization controller and owns the
// process lifecycle: signals, shutdown, and closing the push channel.
package client
