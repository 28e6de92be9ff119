// Copyright 2026 The Fichas Authors
// SPDX-License-Identifier: Apache-2.0

// Package schema defines the wire types exchanged with the shop
// management service: clients, repair fichas, activity log entries,
// statistics, and the paged envelopes that carry them.
//
// All types marshal to the JSON field names the service expects
// (Portuguese, snake_case). Time fields stay strings on the wire;
// display formatting lives in lib/validate.
//
// This package depends on no other fichas packages.
package schema
