package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/novabank/docgen/internal/adapter/http/dto"
	"github.com/novabank/docgen/internal/domain"
	"github.com/novabank/docgen/internal/export"
	"github.com/novabank/docgen/internal/usecase"
)

// DepositService defines the behavior needed by DepositHandler.
type DepositService interface {
	ListDeposits(ctx context.Context, userID string, limit, offset int) ([]usecase.DepositView, error)
	GetDeposit(ctx context.Context, id string) (*usecase.DepositView, error)
	Project(input usecase.ProjectInput) (decimal.Decimal, error)
	GetCertificate(ctx context.Context, depositID string) (*domain.Certificate, error)
	ExportCertificate(ctx context.Context, depositID string) (*export.File, error)
	ExportDeposits(ctx context.Context, userID string, format export.Format) (*export.File, error)
}

// DepositHandler handles fixed-deposit HTTP requests.
type DepositHandler struct {
	depositUC DepositService
}

// NewDepositHandler creates a new DepositHandler.
func NewDepositHandler(depositUC DepositService) *DepositHandler {
	return &DepositHandler{depositUC: depositUC}
}

// List lists the acting user's fixed deposits with current values.
func (h *DepositHandler) List(w http.ResponseWriter, r *http.Request) {
	limit := parseIntQuery(r, "limit", usecase.DefaultPageSize)
	offset := parseIntQuery(r, "offset", 0)

	views, err := h.depositUC.ListDeposits(r.Context(), requestUserID(r), limit, offset)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to list deposits", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.ListDepositsResponse{
		Deposits: dto.DepositsFromViews(views),
		Total:    int64(len(views)),
	})
}

// Get retrieves one deposit with its current value.
func (h *DepositHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing deposit ID", "")
		return
	}

	view, err := h.depositUC.GetDeposit(r.Context(), id)
	if err != nil {
		status := mapDomainError(err)
		writeError(w, status, "failed to get deposit", err.Error())

		return
	}

	writeJSON(w, http.StatusOK, dto.DepositFromView(*view))
}

// Project computes a maturity projection for hypothetical terms.
func (h *DepositHandler) Project(w http.ResponseWriter, r *http.Request) {
	var req dto.ProjectionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	value, err := h.depositUC.Project(req.ToUseCaseInput())
	if err != nil {
		status := mapDomainError(err)
		writeError(w, status, "failed to project maturity value", err.Error())

		return
	}

	writeJSON(w, http.StatusOK, dto.ProjectionResponse{
		Principal:      req.Principal,
		AnnualRate:     req.AnnualRate,
		DurationMonths: req.DurationMonths,
		MaturityValue:  value,
	})
}

// Certificate returns the issued certificate record as JSON.
func (h *DepositHandler) Certificate(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing deposit ID", "")
		return
	}

	cert, err := h.depositUC.GetCertificate(r.Context(), id)
	if err != nil {
		status := mapDomainError(err)
		writeError(w, status, "failed to get certificate", err.Error())

		return
	}

	writeJSON(w, http.StatusOK, dto.CertificateFromDomain(cert))
}

// DownloadCertificate renders the certificate PDF and streams it.
func (h *DepositHandler) DownloadCertificate(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing deposit ID", "")
		return
	}

	file, err := h.depositUC.ExportCertificate(r.Context(), id)
	if err != nil {
		status := mapDomainError(err)
		writeError(w, status, "failed to export certificate", err.Error())

		return
	}

	writeFile(w, file)
}

// Export renders the user's deposit list as a tabular document.
func (h *DepositHandler) Export(w http.ResponseWriter, r *http.Request) {
	format, err := parseFormatQuery(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid format", err.Error())
		return
	}

	file, err := h.depositUC.ExportDeposits(r.Context(), requestUserID(r), format)
	if err != nil {
		status := mapDomainError(err)
		writeError(w, status, "failed to export deposits", err.Error())

		return
	}

	writeFile(w, file)
}
