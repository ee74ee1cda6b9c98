package handler

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/novabank/docgen/internal/adapter/http/dto"
	"github.com/novabank/docgen/internal/domain"
	"github.com/novabank/docgen/internal/export"
	"github.com/novabank/docgen/internal/usecase"
)

// StatementService defines the behavior needed by TransactionHandler.
type StatementService interface {
	ListTransactions(ctx context.Context, accountID string, limit, offset int) ([]*domain.Transaction, error)
	GenerateStatement(ctx context.Context, input usecase.GenerateStatementInput) (*export.File, error)
	ExportHistory(ctx context.Context, input usecase.ExportHistoryInput) (*export.File, error)
}

// TransactionHandler handles transaction listing and document exports.
type TransactionHandler struct {
	statementUC StatementService
}

// NewTransactionHandler creates a new TransactionHandler.
func NewTransactionHandler(statementUC StatementService) *TransactionHandler {
	return &TransactionHandler{statementUC: statementUC}
}

// ListByAccount lists an account's transactions.
func (h *TransactionHandler) ListByAccount(w http.ResponseWriter, r *http.Request) {
	accountID := chi.URLParam(r, "id")
	if accountID == "" {
		writeError(w, http.StatusBadRequest, "missing account ID", "")
		return
	}

	limit := parseIntQuery(r, "limit", usecase.DefaultPageSize)
	offset := parseIntQuery(r, "offset", 0)

	transactions, err := h.statementUC.ListTransactions(r.Context(), accountID, limit, offset)
	if err != nil {
		status := mapDomainError(err)
		writeError(w, status, "failed to list transactions", err.Error())

		return
	}

	writeJSON(w, http.StatusOK, dto.ListTransactionsResponse{
		Transactions: dto.TransactionsFromDomain(transactions),
		Total:        int64(len(transactions)),
	})
}

// Statement generates an account statement for a date window and streams it
// as a download.
func (h *TransactionHandler) Statement(w http.ResponseWriter, r *http.Request) {
	accountID := chi.URLParam(r, "id")
	if accountID == "" {
		writeError(w, http.StatusBadRequest, "missing account ID", "")
		return
	}

	from, err := parseDateQuery(r, "from")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid from date", err.Error())
		return
	}
	to, err := parseDateQuery(r, "to")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid to date", err.Error())
		return
	}
	if to.Before(from) {
		writeError(w, http.StatusBadRequest, "invalid period", "to must not precede from")
		return
	}

	format, err := parseFormatQuery(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid format", err.Error())
		return
	}

	holderName := r.URL.Query().Get("holder_name")
	if user, ok := userFromRequest(r); ok && holderName == "" {
		holderName = user.Name
	}

	file, err := h.statementUC.GenerateStatement(r.Context(), usecase.GenerateStatementInput{
		AccountID:  accountID,
		HolderName: holderName,
		From:       from,
		To:         to.Add(endOfDay),
		Format:     format,
	})
	if err != nil {
		status := mapDomainError(err)
		writeError(w, status, "failed to generate statement", err.Error())

		return
	}

	writeFile(w, file)
}

// Export renders a transaction history document for an account.
func (h *TransactionHandler) Export(w http.ResponseWriter, r *http.Request) {
	accountID := r.URL.Query().Get("account_id")
	if accountID == "" {
		writeError(w, http.StatusBadRequest, "missing account_id parameter", "")
		return
	}

	format, err := parseFormatQuery(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid format", err.Error())
		return
	}

	file, err := h.statementUC.ExportHistory(r.Context(), usecase.ExportHistoryInput{
		AccountID: accountID,
		Limit:     parseIntQuery(r, "limit", usecase.DefaultPageSize),
		Format:    format,
	})
	if err != nil {
		status := mapDomainError(err)
		writeError(w, status, "failed to export transactions", err.Error())

		return
	}

	writeFile(w, file)
}
