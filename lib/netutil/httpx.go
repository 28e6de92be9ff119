// Copyright 2026 The Fichas Authors
// SPDX-License-Identifier: Apache-2.0

// Package netutil provides bounded HTTP response reading for the API
// client.
//
// ReadResponse and ErrorBody cap JSON body reads at MaxResponseSize
// so a misbehaving server cannot exhaust memory. ReadDocument uses
// the larger MaxDocumentSize bound for binary downloads (the ficha
// PDF endpoint).
package netutil

import (
	"fmt"
	"io"
)

// MaxResponseSize is the bound on JSON response body reads: 8 MB.
// The service's largest JSON response is a page of fichas with
// embedded observations, well under a megabyte; the limit only
// guards against a pathological server.
const MaxResponseSize int64 = 8 << 20

// MaxDocumentSize is the bound on binary document downloads: 32 MB.
// Generated ficha PDFs with embedded photos stay in the low
// megabytes.
const MaxDocumentSize int64 = 32 << 20

// ReadResponse reads a JSON response body up to MaxResponseSize
// bytes. Use instead of io.ReadAll on HTTP response bodies.
func ReadResponse(body io.Reader) ([]byte, error) {
	return io.ReadAll(io.LimitReader(body, MaxResponseSize))
}

// ReadDocument reads a binary response body up to MaxDocumentSize
// bytes. An error is returned when the body exceeds the bound, since
// a truncated PDF is worse than no PDF.
func ReadDocument(body io.Reader) ([]byte, error) {
	data, err := io.ReadAll(io.LimitReader(body, MaxDocumentSize+1))
	if err != nil {
		return nil, fmt.Errorf("reading document body: %w", err)
	}
	if int64(len(data)) > MaxDocumentSize {
		return nil, fmt.Errorf("document exceeds %d byte limit", MaxDocumentSize)
	}
	return data, nil
}

// ErrorBody reads an HTTP error response body for diagnostic
// messages. Read errors are ignored; a partial body is still useful.
func ErrorBody(body io.Reader) string {
	data, _ := io.ReadAll(io.LimitReader(body, MaxResponseSize))
	return string(data)
}
