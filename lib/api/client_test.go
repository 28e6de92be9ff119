// Copyright 2026 The Fichas Authors
// SPDX-License-Identifier: Apache-2.0

package api

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/assistec/fichas/lib/schema"
)

// testServer starts an httptest server and returns a Client whose
// requests are rewritten to it.
func testServer(t *testing.T, handler http.Handler) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return NewForTesting(&testServerTransport{serverURL: server.URL})
}

// testServerTransport rewrites request URLs to the test server while
// leaving the rest of the request intact.
type testServerTransport struct {
	serverURL string
}

func (tr *testServerTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	rewritten := req.Clone(req.Context())
	rewritten.URL.Scheme = "http"
	rewritten.URL.Host = tr.serverURL[len("http://"):]
	return http.DefaultTransport.RoundTrip(rewritten)
}

func TestLoginInstallsToken(t *testing.T) {
	t.Parallel()
	mux := http.NewServeMux()
	mux.HandleFunc("POST /admin/login", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"access_token": "tok-123", "token_type": "bearer"}`))
	})
	mux.HandleFunc("GET /usuario/me", func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Authorization"); got != "Bearer tok-123" {
			t.Errorf("Authorization = %q, want Bearer tok-123", got)
		}
		w.Write([]byte(`{"id": 1, "usuario": "admin"}`))
	})
	client := testServer(t, mux)

	token, err := client.Login(context.Background(), "admin", "senha")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if token != "tok-123" {
		t.Errorf("token = %q, want tok-123", token)
	}

	usuario, err := client.CurrentUser(context.Background())
	if err != nil {
		t.Fatalf("CurrentUser: %v", err)
	}
	if usuario.Usuario != "admin" {
		t.Errorf("Usuario = %q, want admin", usuario.Usuario)
	}
}

func TestUnauthorizedClearsTokenAndFiresCallback(t *testing.T) {
	t.Parallel()
	mux := http.NewServeMux()
	mux.HandleFunc("GET /logs", func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"detail": "token expirado"}`, http.StatusUnauthorized)
	})
	client := testServer(t, mux)
	client.SetToken("stale")

	fired := 0
	client.SetOnUnauthorized(func() { fired++ })

	_, err := client.ListLogs(context.Background(), 1, schema.LogPageSize)
	if !ErrStatus(err, http.StatusUnauthorized) {
		t.Fatalf("err = %v, want 401 APIError", err)
	}
	if fired != 1 {
		t.Errorf("callback fired %d times, want 1", fired)
	}
	if got := client.currentToken(); got != "" {
		t.Errorf("token = %q, want cleared", got)
	}
}

func TestAPIErrorCarriesDetail(t *testing.T) {
	t.Parallel()
	mux := http.NewServeMux()
	mux.HandleFunc("GET /fichas/42/detail", func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"detail": "ficha não encontrada"}`, http.StatusNotFound)
	})
	client := testServer(t, mux)

	_, err := client.GetFichaDetail(context.Background(), 42)
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("err = %v, want *APIError", err)
	}
	if apiErr.StatusCode != http.StatusNotFound {
		t.Errorf("StatusCode = %d, want 404", apiErr.StatusCode)
	}
	if apiErr.Message != "ficha não encontrada" {
		t.Errorf("Message = %q", apiErr.Message)
	}
}

func TestAPIErrorNonJSONBody(t *testing.T) {
	t.Parallel()
	mux := http.NewServeMux()
	mux.HandleFunc("GET /logs", func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "bad gateway", http.StatusBadGateway)
	})
	client := testServer(t, mux)

	_, err := client.ListLogs(context.Background(), 1, 20)
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("err = %v, want *APIError", err)
	}
	if apiErr.Message != "bad gateway" {
		t.Errorf("Message = %q, want raw body", apiErr.Message)
	}
}

func TestListFichasQueryParameters(t *testing.T) {
	t.Parallel()
	mux := http.NewServeMux()
	mux.HandleFunc("GET /fichas", func(w http.ResponseWriter, r *http.Request) {
		query := r.URL.Query()
		if got := query.Get("q"); got != "notebook" {
			t.Errorf("q = %q, want notebook", got)
		}
		if got := query.Get("status"); got != "EM_REPARO" {
			t.Errorf("status = %q, want EM_REPARO", got)
		}
		if got := query.Get("page"); got != "2" {
			t.Errorf("page = %q, want 2", got)
		}
		if got := query.Get("page_size"); got != "12" {
			t.Errorf("page_size = %q, want 12", got)
		}
		if query.Has("data_ini") {
			t.Error("data_ini sent for zero filter field")
		}
		w.Write([]byte(`{"items": [], "total": 0, "page": 2, "page_size": 12}`))
	})
	client := testServer(t, mux)

	filter := FichaFilter{Query: "notebook", Status: schema.StatusEmReparo}
	page, err := client.ListFichas(context.Background(), filter, 2, schema.FichaPageSize)
	if err != nil {
		t.Fatalf("ListFichas: %v", err)
	}
	if page.Page != 2 {
		t.Errorf("Page = %d, want 2", page.Page)
	}
}

func TestTrackIsUnauthenticated(t *testing.T) {
	t.Parallel()
	mux := http.NewServeMux()
	mux.HandleFunc("GET /rastreio/AB12CD", func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "" {
			t.Error("tracking request carried an Authorization header")
		}
		w.Write([]byte(`{"codigo": "AB12CD", "equipamento": "Notebook", "status": "EM_REPARO"}`))
	})
	client := testServer(t, mux)
	client.SetToken("tok")

	info, err := client.Track(context.Background(), "AB12CD")
	if err != nil {
		t.Fatalf("Track: %v", err)
	}
	if info.Status != schema.StatusEmReparo {
		t.Errorf("Status = %q, want EM_REPARO", info.Status)
	}
}

func TestUploadFotoRejectsBadInput(t *testing.T) {
	t.Parallel()
	client := NewForTesting(http.DefaultTransport)

	if _, err := client.UploadFoto(context.Background(), "laudo.gif", []byte{1}); err == nil {
		t.Error("gif upload: want error, got nil")
	}
	oversized := make([]byte, MaxFotoSize+1)
	if _, err := client.UploadFoto(context.Background(), "frente.jpg", oversized); err == nil {
		t.Error("oversized upload: want error, got nil")
	}
}

func TestUploadFotoMultipart(t *testing.T) {
	t.Parallel()
	mux := http.NewServeMux()
	mux.HandleFunc("POST /upload-foto", func(w http.ResponseWriter, r *http.Request) {
		file, header, err := r.FormFile("foto")
		if err != nil {
			t.Errorf("FormFile: %v", err)
			http.Error(w, "bad form", http.StatusBadRequest)
			return
		}
		defer file.Close()
		if header.Filename != "frente.jpg" {
			t.Errorf("filename = %q, want frente.jpg", header.Filename)
		}
		w.Write([]byte(`{"filename": "fotos/2026/frente.jpg"}`))
	})
	client := testServer(t, mux)

	stored, err := client.UploadFoto(context.Background(), "/tmp/frente.jpg", []byte("jpegdata"))
	if err != nil {
		t.Fatalf("UploadFoto: %v", err)
	}
	if stored != "fotos/2026/frente.jpg" {
		t.Errorf("stored = %q", stored)
	}
}

func TestEmptyPatchRejectedLocally(t *testing.T) {
	t.Parallel()
	client := NewForTesting(http.DefaultTransport)
	if _, err := client.UpdateFicha(context.Background(), 1, schema.FichaPatch{}); err == nil {
		t.Error("empty patch: want error, got nil")
	}
}
