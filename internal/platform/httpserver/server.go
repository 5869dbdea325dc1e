package httpserver

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	contentregistry "marlowe/contexts/content-catalog/content-registry"
	contenterrors "marlowe/contexts/content-catalog/content-registry/domain/errors"
	contenthttp "marlowe/contexts/content-catalog/content-registry/transport/http"
	licenseregistry "marlowe/contexts/content-catalog/license-registry"
	licenseerrors "marlowe/contexts/content-catalog/license-registry/domain/errors"
	licensehttp "marlowe/contexts/content-catalog/license-registry/transport/http"
	accessservice "marlowe/contexts/rights-enforcement/access-service"
	accesserrors "marlowe/contexts/rights-enforcement/access-service/domain/errors"
	accesshttp "marlowe/contexts/rights-enforcement/access-service/transport/http"
	"marlowe/internal/shared/authz"

	httpSwagger "github.com/swaggo/http-swagger"
	_ "marlowe/internal/platform/httpserver/docs"
)

type Server struct {
	mux      *http.ServeMux
	logger   *slog.Logger
	addr     string
	contents contentregistry.Module
	licenses licenseregistry.Module
	access   accessservice.Module
}

func New(
	contents contentregistry.Module,
	licenses licenseregistry.Module,
	access accessservice.Module,
	logger *slog.Logger,
	addr string,
) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	if addr == "" {
		addr = ":8080"
	}

	s := &Server{
		mux:      http.NewServeMux(),
		logger:   logger,
		addr:     addr,
		contents: contents,
		licenses: licenses,
		access:   access,
	}
	s.registerRoutes()
	return s
}

func (s *Server) Start() error {
	s.logger.Info("http server starting",
		"event", "http_server_starting",
		"module", "internal/platform/httpserver",
		"layer", "platform",
		"addr", s.addr,
	)
	return http.ListenAndServe(s.addr, s.mux)
}

func (s *Server) registerRoutes() {
	s.mux.Handle("/swagger/", httpSwagger.Handler(
		httpSwagger.URL("/swagger/doc.json"),
	))

	s.mux.HandleFunc("POST /v1/catalog/contents", s.handleRegisterContent)
	s.mux.HandleFunc("GET /v1/catalog/contents", s.handleListContents)
	s.mux.HandleFunc("GET /v1/catalog/contents/{content_id}", s.handleGetContent)
	s.mux.HandleFunc("POST /v1/catalog/contents/{content_id}/metadata", s.handleUpdateMetadata)
	s.mux.HandleFunc("POST /v1/catalog/contents/{content_id}/transfer", s.handleTransferOwnership)
	s.mux.HandleFunc("GET /v1/catalog/contents/{content_id}/ownership", s.handleVerifyOwnership)

	s.mux.HandleFunc("POST /v1/catalog/contents/{content_id}/licenses", s.handleCreateLicense)
	s.mux.HandleFunc("GET /v1/catalog/contents/{content_id}/licenses", s.handleListLicenses)
	s.mux.HandleFunc("GET /v1/catalog/licenses/{license_id}", s.handleGetLicense)
	s.mux.HandleFunc("POST /v1/catalog/licenses/{license_id}/terms", s.handleUpdateTerms)
	s.mux.HandleFunc("POST /v1/catalog/licenses/{license_id}/deactivate", s.handleDeactivateLicense)
	s.mux.HandleFunc("GET /v1/catalog/licenses/{license_id}/active", s.handleIsLicenseActive)

	s.mux.HandleFunc("POST /v1/access/licenses/{license_id}/purchase", s.handlePurchaseLicense)
	s.mux.HandleFunc("POST /v1/access/contents/{content_id}/revoke", s.handleRevokeGrant)
	s.mux.HandleFunc("GET /v1/access/contents/{content_id}/check", s.handleHasAccess)
	s.mux.HandleFunc("GET /v1/access/contents/{content_id}/grants", s.handleGetGrant)
	s.mux.HandleFunc("GET /v1/access/users/{user}/grants", s.handleListGrants)
	s.mux.HandleFunc("POST /v1/access/contents/{content_id}/key", s.handleRotateAccessKey)
	s.mux.HandleFunc("GET /v1/access/contents/{content_id}/key", s.handleGetAccessKey)
}

func (s *Server) handleRegisterContent(w http.ResponseWriter, r *http.Request) {
	creator := r.Header.Get("X-User-Id")
	if strings.TrimSpace(creator) == "" {
		writeContentError(w, http.StatusUnauthorized, "missing_user", "X-User-Id header is required")
		return
	}

	var req contenthttp.RegisterContentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeContentError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}

	resp, err := s.contents.Handler.RegisterContentHandler(r.Context(), creator, req)
	if err != nil {
		writeContentDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleGetContent(w http.ResponseWriter, r *http.Request) {
	contentID, ok := parseID(w, r, "content_id", writeContentError)
	if !ok {
		return
	}
	resp, err := s.contents.Handler.GetContentHandler(r.Context(), contentID)
	if err != nil {
		writeContentDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleListContents(w http.ResponseWriter, r *http.Request) {
	creator := r.URL.Query().Get("creator")
	if strings.TrimSpace(creator) == "" {
		writeContentError(w, http.StatusBadRequest, "missing_creator", "creator query parameter is required")
		return
	}
	resp, err := s.contents.Handler.ListContentsHandler(r.Context(), creator)
	if err != nil {
		writeContentDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleUpdateMetadata(w http.ResponseWriter, r *http.Request) {
	caller := r.Header.Get("X-User-Id")
	contentID, ok := parseID(w, r, "content_id", writeContentError)
	if !ok {
		return
	}

	var req contenthttp.UpdateMetadataRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeContentError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}

	resp, err := s.contents.Handler.UpdateMetadataHandler(r.Context(), caller, contentID, req)
	if err != nil {
		writeContentDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleTransferOwnership(w http.ResponseWriter, r *http.Request) {
	caller := r.Header.Get("X-User-Id")
	contentID, ok := parseID(w, r, "content_id", writeContentError)
	if !ok {
		return
	}

	var req contenthttp.TransferOwnershipRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeContentError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}

	resp, err := s.contents.Handler.TransferOwnershipHandler(r.Context(), caller, contentID, req)
	if err != nil {
		writeContentDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleVerifyOwnership(w http.ResponseWriter, r *http.Request) {
	contentID, ok := parseID(w, r, "content_id", writeContentError)
	if !ok {
		return
	}
	principal := r.URL.Query().Get("principal")
	resp, err := s.contents.Handler.VerifyOwnershipHandler(r.Context(), contentID, principal)
	if err != nil {
		writeContentDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleCreateLicense(w http.ResponseWriter, r *http.Request) {
	caller := r.Header.Get("X-User-Id")
	contentID, ok := parseID(w, r, "content_id", writeLicenseError)
	if !ok {
		return
	}

	var req licensehttp.CreateLicenseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeLicenseError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}

	resp, err := s.licenses.Handler.CreateLicenseHandler(r.Context(), caller, contentID, req)
	if err != nil {
		writeLicenseDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleGetLicense(w http.ResponseWriter, r *http.Request) {
	licenseID, ok := parseID(w, r, "license_id", writeLicenseError)
	if !ok {
		return
	}
	resp, err := s.licenses.Handler.GetLicenseHandler(r.Context(), licenseID)
	if err != nil {
		writeLicenseDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleListLicenses(w http.ResponseWriter, r *http.Request) {
	contentID, ok := parseID(w, r, "content_id", writeLicenseError)
	if !ok {
		return
	}
	resp, err := s.licenses.Handler.ListLicensesHandler(r.Context(), contentID)
	if err != nil {
		writeLicenseDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleUpdateTerms(w http.ResponseWriter, r *http.Request) {
	caller := r.Header.Get("X-User-Id")
	licenseID, ok := parseID(w, r, "license_id", writeLicenseError)
	if !ok {
		return
	}

	var req licensehttp.UpdateTermsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeLicenseError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}

	resp, err := s.licenses.Handler.UpdateTermsHandler(r.Context(), caller, licenseID, req)
	if err != nil {
		writeLicenseDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleDeactivateLicense(w http.ResponseWriter, r *http.Request) {
	caller := r.Header.Get("X-User-Id")
	licenseID, ok := parseID(w, r, "license_id", writeLicenseError)
	if !ok {
		return
	}
	resp, err := s.licenses.Handler.DeactivateLicenseHandler(r.Context(), caller, licenseID)
	if err != nil {
		writeLicenseDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleIsLicenseActive(w http.ResponseWriter, r *http.Request) {
	licenseID, ok := parseID(w, r, "license_id", writeLicenseError)
	if !ok {
		return
	}
	resp, err := s.licenses.Handler.IsActiveHandler(r.Context(), licenseID)
	if err != nil {
		writeLicenseDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handlePurchaseLicense(w http.ResponseWriter, r *http.Request) {
	caller := r.Header.Get("X-User-Id")
	if strings.TrimSpace(caller) == "" {
		writeAccessError(w, http.StatusUnauthorized, "missing_user", "X-User-Id header is required")
		return
	}
	licenseID, ok := parseID(w, r, "license_id", writeAccessError)
	if !ok {
		return
	}
	resp, err := s.access.Handler.PurchaseLicenseHandler(r.Context(), caller, licenseID)
	if err != nil {
		writeAccessDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleRevokeGrant(w http.ResponseWriter, r *http.Request) {
	caller := r.Header.Get("X-User-Id")
	contentID, ok := parseID(w, r, "content_id", writeAccessError)
	if !ok {
		return
	}

	var req accesshttp.RevokeGrantRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeAccessError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}

	resp, err := s.access.Handler.RevokeGrantHandler(r.Context(), caller, contentID, req)
	if err != nil {
		writeAccessDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleHasAccess(w http.ResponseWriter, r *http.Request) {
	caller := r.Header.Get("X-User-Id")
	if strings.TrimSpace(caller) == "" {
		writeAccessError(w, http.StatusUnauthorized, "missing_user", "X-User-Id header is required")
		return
	}
	contentID, ok := parseID(w, r, "content_id", writeAccessError)
	if !ok {
		return
	}
	resp, err := s.access.Handler.HasAccessHandler(r.Context(), caller, contentID)
	if err != nil {
		writeAccessDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleGetGrant(w http.ResponseWriter, r *http.Request) {
	contentID, ok := parseID(w, r, "content_id", writeAccessError)
	if !ok {
		return
	}
	user := r.URL.Query().Get("user")
	if strings.TrimSpace(user) == "" {
		user = r.Header.Get("X-User-Id")
	}
	resp, err := s.access.Handler.GetGrantHandler(r.Context(), contentID, user)
	if err != nil {
		writeAccessDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleListGrants(w http.ResponseWriter, r *http.Request) {
	user := r.PathValue("user")
	resp, err := s.access.Handler.ListGrantsHandler(r.Context(), user)
	if err != nil {
		writeAccessDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleRotateAccessKey(w http.ResponseWriter, r *http.Request) {
	caller := r.Header.Get("X-User-Id")
	if strings.TrimSpace(caller) == "" {
		writeAccessError(w, http.StatusUnauthorized, "missing_user", "X-User-Id header is required")
		return
	}
	contentID, ok := parseID(w, r, "content_id", writeAccessError)
	if !ok {
		return
	}

	var req accesshttp.RotateAccessKeyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeAccessError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}

	resp, err := s.access.Handler.RotateAccessKeyHandler(r.Context(), caller, contentID, req)
	if err != nil {
		writeAccessDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleGetAccessKey(w http.ResponseWriter, r *http.Request) {
	caller := r.Header.Get("X-User-Id")
	if strings.TrimSpace(caller) == "" {
		writeAccessError(w, http.StatusUnauthorized, "missing_user", "X-User-Id header is required")
		return
	}
	contentID, ok := parseID(w, r, "content_id", writeAccessError)
	if !ok {
		return
	}
	resp, err := s.access.Handler.GetAccessKeyHandler(r.Context(), caller, contentID)
	if err != nil {
		writeAccessDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func writeContentDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, contenterrors.ErrContentNotFound):
		writeContentError(w, http.StatusNotFound, "content_not_found", err.Error())
	case errors.Is(err, authz.ErrUnauthorized):
		writeContentError(w, http.StatusForbidden, "forbidden", err.Error())
	case errors.Is(err, contenterrors.ErrInvalidContent),
		errors.Is(err, contenterrors.ErrInvalidMetadata),
		errors.Is(err, contenterrors.ErrInvalidOwner):
		writeContentError(w, http.StatusBadRequest, "invalid_request", err.Error())
	default:
		writeContentError(w, http.StatusInternalServerError, "internal_error", "internal server error")
	}
}

func writeLicenseDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, licenseerrors.ErrLicenseNotFound):
		writeLicenseError(w, http.StatusNotFound, "license_not_found", err.Error())
	case errors.Is(err, licenseerrors.ErrContentNotFound):
		writeLicenseError(w, http.StatusNotFound, "content_not_found", err.Error())
	case errors.Is(err, authz.ErrUnauthorized):
		writeLicenseError(w, http.StatusForbidden, "forbidden", err.Error())
	case errors.Is(err, licenseerrors.ErrInvalidLicenseTerms):
		writeLicenseError(w, http.StatusBadRequest, "invalid_license_terms", err.Error())
	default:
		writeLicenseError(w, http.StatusInternalServerError, "internal_error", "internal server error")
	}
}

func writeAccessDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, accesserrors.ErrLicenseNotFound):
		writeAccessError(w, http.StatusNotFound, "license_not_found", err.Error())
	case errors.Is(err, accesserrors.ErrContentNotFound):
		writeAccessError(w, http.StatusNotFound, "content_not_found", err.Error())
	case errors.Is(err, accesserrors.ErrGrantNotFound):
		writeAccessError(w, http.StatusNotFound, "grant_not_found", err.Error())
	case errors.Is(err, accesserrors.ErrAccessKeyNotFound):
		writeAccessError(w, http.StatusNotFound, "access_key_not_found", err.Error())
	case errors.Is(err, authz.ErrUnauthorized):
		writeAccessError(w, http.StatusForbidden, "forbidden", err.Error())
	case errors.Is(err, accesserrors.ErrAccessDenied):
		writeAccessError(w, http.StatusForbidden, "access_denied", err.Error())
	case errors.Is(err, accesserrors.ErrPaymentFailed):
		writeAccessError(w, http.StatusPaymentRequired, "payment_failed", err.Error())
	case errors.Is(err, accesserrors.ErrLicenseInactive),
		errors.Is(err, accesserrors.ErrInvalidPurchase),
		errors.Is(err, accesserrors.ErrInvalidRevocation),
		errors.Is(err, accesserrors.ErrInvalidKeyMaterial):
		writeAccessError(w, http.StatusBadRequest, "invalid_request", err.Error())
	default:
		writeAccessError(w, http.StatusInternalServerError, "internal_error", "internal server error")
	}
}

func writeContentError(w http.ResponseWriter, status int, code string, message string) {
	writeJSON(w, status, contenthttp.ErrorResponse{
		Code:    code,
		Message: message,
	})
}

func writeLicenseError(w http.ResponseWriter, status int, code string, message string) {
	writeJSON(w, status, licensehttp.ErrorResponse{
		Code:    code,
		Message: message,
	})
}

func writeAccessError(w http.ResponseWriter, status int, code string, message string) {
	writeJSON(w, status, accesshttp.ErrorResponse{
		Code:    code,
		Message: message,
	})
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func parseID(
	w http.ResponseWriter,
	r *http.Request,
	name string,
	writeErr func(http.ResponseWriter, int, string, string),
) (uint64, bool) {
	raw := r.PathValue(name)
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || id == 0 {
		writeErr(w, http.StatusBadRequest, "invalid_"+name, name+" must be a positive integer")
		return 0, false
	}
	return id, true
}
