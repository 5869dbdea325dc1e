package httpserver

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	contentregistry "marlowe/contexts/content-catalog/content-registry"
	contentmemory "marlowe/contexts/content-catalog/content-registry/adapters/memory"
	contenterrors "marlowe/contexts/content-catalog/content-registry/domain/errors"
	licenseregistry "marlowe/contexts/content-catalog/license-registry"
	licensememory "marlowe/contexts/content-catalog/license-registry/adapters/memory"
	licenseerrors "marlowe/contexts/content-catalog/license-registry/domain/errors"
	accessservice "marlowe/contexts/rights-enforcement/access-service"
	accessports "marlowe/contexts/rights-enforcement/access-service/ports"
	"marlowe/internal/shared/events"
)

type testOwnership struct {
	contents *contentmemory.Store
}

func (o testOwnership) OwnerOf(ctx context.Context, contentID uint64) (string, bool, error) {
	content, err := o.contents.GetContent(ctx, contentID)
	if err != nil {
		if errors.Is(err, contenterrors.ErrContentNotFound) {
			return "", false, nil
		}
		return "", false, err
	}
	return content.Creator, true, nil
}

type testLicenseSource struct {
	licenses *licensememory.Store
}

func (s testLicenseSource) LicenseByID(ctx context.Context, licenseID uint64) (accessports.LicenseOffer, bool, error) {
	license, err := s.licenses.GetLicense(ctx, licenseID)
	if err != nil {
		if errors.Is(err, licenseerrors.ErrLicenseNotFound) {
			return accessports.LicenseOffer{}, false, nil
		}
		return accessports.LicenseOffer{}, false, err
	}
	return accessports.LicenseOffer{
		LicenseID:       license.LicenseID,
		ContentID:       license.ContentID,
		Creator:         license.Creator,
		LicenseType:     license.LicenseType,
		Price:           license.Price,
		DurationMinutes: license.DurationMinutes,
		MaxUses:         license.MaxUses,
		Active:          license.Active,
	}, true, nil
}

type dropPublisher struct{}

func (dropPublisher) Publish(context.Context, string, events.Envelope) error {
	return nil
}

type testIDs struct {
	mu sync.Mutex
	n  int
}

func (g *testIDs) NewID(context.Context) (string, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.n++
	return fmt.Sprintf("test-id-%d", g.n), nil
}

func newTestServer() *Server {
	contents := contentregistry.NewInMemoryModule(nil, slog.Default())
	ownership := testOwnership{contents: contents.Store}
	licenses := licenseregistry.NewInMemoryModule(ownership, nil, slog.Default())
	access := accessservice.NewInMemoryModule(
		testLicenseSource{licenses: licenses.Store},
		ownership,
		dropPublisher{},
		nil,
		&testIDs{},
		slog.Default(),
	)
	return New(contents, licenses, access, slog.Default(), ":0")
}

func doJSON(t *testing.T, server *Server, method string, target string, user string, body string) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body == "" {
		reader = bytes.NewReader(nil)
	} else {
		reader = bytes.NewReader([]byte(body))
	}
	req := httptest.NewRequest(method, target, reader)
	req.Header.Set("Content-Type", "application/json")
	if user != "" {
		req.Header.Set("X-User-Id", user)
	}
	rr := httptest.NewRecorder()
	server.mux.ServeHTTP(rr, req)
	return rr
}

func TestRegisterContentRequiresUserHeader(t *testing.T) {
	server := newTestServer()
	rr := doJSON(t, server, http.MethodPost, "/v1/catalog/contents", "", `{"title":"Set","content_hash":"h1"}`)
	if rr.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d body=%s", rr.Code, rr.Body.String())
	}
}

func TestRegisterContentRejectsMalformedBody(t *testing.T) {
	server := newTestServer()
	rr := doJSON(t, server, http.MethodPost, "/v1/catalog/contents", "alice", `{"title":`)
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d body=%s", rr.Code, rr.Body.String())
	}
}

func TestCatalogLicensingAccessFlow(t *testing.T) {
	server := newTestServer()

	rr := doJSON(t, server, http.MethodPost, "/v1/catalog/contents", "alice",
		`{"title":"Set","content_hash":"h1","content_type":"audio","is_public":true}`)
	if rr.Code != http.StatusOK {
		t.Fatalf("register: expected 200, got %d body=%s", rr.Code, rr.Body.String())
	}

	rr = doJSON(t, server, http.MethodPost, "/v1/catalog/contents/1/licenses", "alice",
		`{"license_type":"standard","price":500}`)
	if rr.Code != http.StatusOK {
		t.Fatalf("create license: expected 200, got %d body=%s", rr.Code, rr.Body.String())
	}

	rr = doJSON(t, server, http.MethodPost, "/v1/access/licenses/1/purchase", "bob", "")
	if rr.Code != http.StatusOK {
		t.Fatalf("purchase: expected 200, got %d body=%s", rr.Code, rr.Body.String())
	}

	rr = doJSON(t, server, http.MethodGet, "/v1/access/contents/1/check", "bob", "")
	if rr.Code != http.StatusOK {
		t.Fatalf("check: expected 200, got %d body=%s", rr.Code, rr.Body.String())
	}
	var check struct {
		Allowed bool   `json:"allowed"`
		Reason  string `json:"reason"`
	}
	if err := json.Unmarshal(rr.Body.Bytes(), &check); err != nil {
		t.Fatalf("decode check response: %v", err)
	}
	if !check.Allowed {
		t.Fatalf("expected access, reason=%s", check.Reason)
	}

	rr = doJSON(t, server, http.MethodPost, "/v1/access/contents/1/key", "bob", `{"key_material":"key-one"}`)
	if rr.Code != http.StatusOK {
		t.Fatalf("rotate: expected 200, got %d body=%s", rr.Code, rr.Body.String())
	}

	rr = doJSON(t, server, http.MethodGet, "/v1/access/contents/1/key", "bob", "")
	if rr.Code != http.StatusOK {
		t.Fatalf("key read: expected 200, got %d body=%s", rr.Code, rr.Body.String())
	}

	rr = doJSON(t, server, http.MethodPost, "/v1/access/contents/1/revoke", "alice", `{"user":"bob"}`)
	if rr.Code != http.StatusOK {
		t.Fatalf("revoke: expected 200, got %d body=%s", rr.Code, rr.Body.String())
	}

	rr = doJSON(t, server, http.MethodGet, "/v1/access/contents/1/key", "bob", "")
	if rr.Code != http.StatusForbidden {
		t.Fatalf("key read after revoke: expected 403, got %d body=%s", rr.Code, rr.Body.String())
	}
}

func TestNonOwnerLicenseCreationIsForbidden(t *testing.T) {
	server := newTestServer()

	rr := doJSON(t, server, http.MethodPost, "/v1/catalog/contents", "alice",
		`{"title":"Set","content_hash":"h1"}`)
	if rr.Code != http.StatusOK {
		t.Fatalf("register: expected 200, got %d", rr.Code)
	}

	rr = doJSON(t, server, http.MethodPost, "/v1/catalog/contents/1/licenses", "mallory",
		`{"license_type":"standard"}`)
	if rr.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d body=%s", rr.Code, rr.Body.String())
	}
}

func TestPurchaseUnknownLicenseIsNotFound(t *testing.T) {
	server := newTestServer()
	rr := doJSON(t, server, http.MethodPost, "/v1/access/licenses/404/purchase", "bob", "")
	if rr.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d body=%s", rr.Code, rr.Body.String())
	}
}

func TestInvalidPathIDIsBadRequest(t *testing.T) {
	server := newTestServer()
	rr := doJSON(t, server, http.MethodGet, "/v1/catalog/contents/zero", "", "")
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d body=%s", rr.Code, rr.Body.String())
	}
}
