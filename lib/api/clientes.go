// Copyright 2026 The Fichas Authors
// SPDX-License-Identifier: Apache-2.0

package api

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/assistec/fichas/lib/schema"
)

// ListClientes returns one page of the client registry.
func (c *Client) ListClientes(ctx context.Context, page, pageSize int) (schema.Page[schema.Cliente], error) {
	query := url.Values{
		"page":      {strconv.Itoa(page)},
		"page_size": {strconv.Itoa(pageSize)},
	}
	var result schema.Page[schema.Cliente]
	if err := c.getJSON(ctx, "list clientes", "/clientes", query, true, &result); err != nil {
		return schema.Page[schema.Cliente]{}, err
	}
	return result, nil
}

// SearchClientes returns one page of clients matching q. The service
// matches name, phone, and email.
func (c *Client) SearchClientes(ctx context.Context, q string, page, pageSize int) (schema.Page[schema.Cliente], error) {
	query := url.Values{
		"q":         {q},
		"page":      {strconv.Itoa(page)},
		"page_size": {strconv.Itoa(pageSize)},
	}
	var result schema.Page[schema.Cliente]
	if err := c.getJSON(ctx, "search clientes", "/clientes/search", query, true, &result); err != nil {
		return schema.Page[schema.Cliente]{}, err
	}
	return result, nil
}

// GetCliente returns a client and every ficha registered to it.
func (c *Client) GetCliente(ctx context.Context, id int64) (schema.ClienteDetail, error) {
	var detail schema.ClienteDetail
	path := fmt.Sprintf("/clientes/%d", id)
	if err := c.getJSON(ctx, "get cliente", path, nil, true, &detail); err != nil {
		return schema.ClienteDetail{}, err
	}
	return detail, nil
}

// CreateCliente registers a new client and returns the stored record.
func (c *Client) CreateCliente(ctx context.Context, input schema.ClienteInput) (schema.Cliente, error) {
	var created schema.Cliente
	if err := c.sendJSON(ctx, "create cliente", http.MethodPost, "/clientes", input, &created); err != nil {
		return schema.Cliente{}, err
	}
	return created, nil
}

// UpdateCliente replaces a client's editable fields and returns the
// stored record.
func (c *Client) UpdateCliente(ctx context.Context, id int64, input schema.ClienteInput) (schema.Cliente, error) {
	var updated schema.Cliente
	path := fmt.Sprintf("/clientes/%d", id)
	if err := c.sendJSON(ctx, "update cliente", http.MethodPut, path, input, &updated); err != nil {
		return schema.Cliente{}, err
	}
	return updated, nil
}
