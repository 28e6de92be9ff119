// Copyright 2026 The Fichas Authors
// SPDX-License-Identifier: Apache-2.0

// Package cli holds the pieces shared by the fichas command-line
// binaries: session persistence, the error category taxonomy, and
// exit-code signaling.
package cli
