// Copyright 2026 The Fichas Authors
// SPDX-License-Identifier: Apache-2.0

package api

import (
	"bytes"
	"context"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"net/url"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/assistec/fichas/lib/schema"
)

// MaxFotoSize is the client-side cap on photo uploads: 11 MB,
// matching the service's limit.
const MaxFotoSize = 11 << 20

// fotoExtensions lists the upload formats the service accepts, keyed
// by lowercase filename extension.
var fotoExtensions = map[string]string{
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".png":  "image/png",
	".webp": "image/webp",
}

// FichaFilter narrows a ficha list read. Zero fields are omitted from
// the query.
type FichaFilter struct {
	Query   string
	Status  schema.Status
	DataIni string
	DataFim string
}

// ListFichas returns one page of fichas matching the filter.
func (c *Client) ListFichas(ctx context.Context, filter FichaFilter, page, pageSize int) (schema.Page[schema.Ficha], error) {
	query := url.Values{
		"page":      {strconv.Itoa(page)},
		"page_size": {strconv.Itoa(pageSize)},
	}
	if filter.Query != "" {
		query.Set("q", filter.Query)
	}
	if filter.Status != "" {
		query.Set("status", string(filter.Status))
	}
	if filter.DataIni != "" {
		query.Set("data_ini", filter.DataIni)
	}
	if filter.DataFim != "" {
		query.Set("data_fim", filter.DataFim)
	}
	var result schema.Page[schema.Ficha]
	if err := c.getJSON(ctx, "list fichas", "/fichas", query, true, &result); err != nil {
		return schema.Page[schema.Ficha]{}, err
	}
	return result, nil
}

// GetFichaDetail returns a ficha, its client, and its activity log.
func (c *Client) GetFichaDetail(ctx context.Context, id int64) (schema.FichaDetail, error) {
	var detail schema.FichaDetail
	path := fmt.Sprintf("/fichas/%d/detail", id)
	if err := c.getJSON(ctx, "get ficha detail", path, nil, true, &detail); err != nil {
		return schema.FichaDetail{}, err
	}
	return detail, nil
}

// CreateFicha opens a new ficha for a client and returns the stored
// record, tracking code included.
func (c *Client) CreateFicha(ctx context.Context, clienteID int64, input schema.FichaInput) (schema.Ficha, error) {
	var created schema.Ficha
	path := fmt.Sprintf("/fichas/%d", clienteID)
	if err := c.sendJSON(ctx, "create ficha", http.MethodPost, path, input, &created); err != nil {
		return schema.Ficha{}, err
	}
	return created, nil
}

// UpdateFicha applies a partial update and returns the stored record.
// Empty patches are rejected locally.
func (c *Client) UpdateFicha(ctx context.Context, id int64, patch schema.FichaPatch) (schema.Ficha, error) {
	if patch.Empty() {
		return schema.Ficha{}, fmt.Errorf("update ficha: empty patch")
	}
	var updated schema.Ficha
	path := fmt.Sprintf("/fichas/%d", id)
	if err := c.sendJSON(ctx, "update ficha", http.MethodPut, path, patch, &updated); err != nil {
		return schema.Ficha{}, err
	}
	return updated, nil
}

// FichaPDF downloads the printable ficha document.
func (c *Client) FichaPDF(ctx context.Context, id int64) ([]byte, error) {
	return c.do(ctx, "ficha pdf", request{
		method:        http.MethodGet,
		path:          fmt.Sprintf("/fichas/%d/pdf", id),
		authenticated: true,
		document:      true,
	})
}

// Statistics returns the monthly ficha counts for the dashboard.
func (c *Client) Statistics(ctx context.Context, limitMonths int) ([]schema.MonthlyStat, error) {
	query := url.Values{"limit_months": {strconv.Itoa(limitMonths)}}
	var stats []schema.MonthlyStat
	if err := c.getJSON(ctx, "statistics", "/fichas/estatisticas", query, true, &stats); err != nil {
		return nil, err
	}
	return stats, nil
}

// Track looks up a ficha by its public tracking code. No
// authentication.
func (c *Client) Track(ctx context.Context, codigo string) (schema.TrackingInfo, error) {
	var info schema.TrackingInfo
	path := "/rastreio/" + url.PathEscape(codigo)
	if err := c.getJSON(ctx, "track", path, nil, false, &info); err != nil {
		return schema.TrackingInfo{}, err
	}
	return info, nil
}

// uploadResponse carries the stored filename of an uploaded photo.
type uploadResponse struct {
	Filename string `json:"filename"`
	URL      string `json:"url,omitempty"`
}

// UploadFoto sends an equipment photo and returns the stored
// filename. The format and size limits are enforced locally before
// any bytes leave the machine.
func (c *Client) UploadFoto(ctx context.Context, filename string, content []byte) (string, error) {
	contentType, ok := fotoExtensions[strings.ToLower(filepath.Ext(filename))]
	if !ok {
		return "", fmt.Errorf("upload foto: unsupported format %q (want jpeg, png, or webp)", filepath.Ext(filename))
	}
	if len(content) > MaxFotoSize {
		return "", fmt.Errorf("upload foto: %d bytes exceeds the %d byte limit", len(content), MaxFotoSize)
	}

	var buffer bytes.Buffer
	writer := multipart.NewWriter(&buffer)
	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition",
		fmt.Sprintf(`form-data; name="foto"; filename=%q`, filepath.Base(filename)))
	header.Set("Content-Type", contentType)
	part, err := writer.CreatePart(header)
	if err != nil {
		return "", fmt.Errorf("upload foto: %w", err)
	}
	if _, err := part.Write(content); err != nil {
		return "", fmt.Errorf("upload foto: %w", err)
	}
	if err := writer.Close(); err != nil {
		return "", fmt.Errorf("upload foto: %w", err)
	}

	data, err := c.do(ctx, "upload foto", request{
		method:        http.MethodPost,
		path:          "/upload-foto",
		rawBody:       buffer.Bytes(),
		contentType:   writer.FormDataContentType(),
		authenticated: true,
		document:      true,
	})
	if err != nil {
		return "", err
	}
	var resp uploadResponse
	if err := decodeInto(data, &resp, "upload foto"); err != nil {
		return "", err
	}
	return resp.Filename, nil
}
