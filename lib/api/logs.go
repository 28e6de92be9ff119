// Copyright 2026 The Fichas Authors
// SPDX-License-Identifier: Apache-2.0

package api

import (
	"context"
	"net/url"
	"strconv"

	"github.com/assistec/fichas/lib/schema"
)

// ListLogs returns one page of the activity log, newest first.
func (c *Client) ListLogs(ctx context.Context, page, pageSize int) (schema.Page[schema.LogEntry], error) {
	query := url.Values{
		"page":      {strconv.Itoa(page)},
		"page_size": {strconv.Itoa(pageSize)},
	}
	var result schema.Page[schema.LogEntry]
	if err := c.getJSON(ctx, "list logs", "/logs", query, true, &result); err != nil {
		return schema.Page[schema.LogEntry]{}, err
	}
	return result, nil
}
