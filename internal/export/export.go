// Package export assembles financial documents (statements, fixed-deposit
// certificates, transaction histories) into downloadable PDF or CSV files.
package export

import (
	"fmt"
	"strings"
	"time"

	"github.com/novabank/docgen/internal/currency"
	"github.com/novabank/docgen/internal/domain"
	"github.com/novabank/docgen/internal/ledger"
)

// Format selects the output representation.
type Format string

const (
	FormatPDF Format = "pdf"
	FormatCSV Format = "csv"
)

// ParseFormat validates a caller-supplied format string.
func ParseFormat(s string) (Format, error) {
	switch Format(strings.ToLower(s)) {
	case FormatPDF:
		return FormatPDF, nil
	case FormatCSV:
		return FormatCSV, nil
	default:
		return "", fmt.Errorf("%w: %q", domain.ErrUnsupportedFormat, s)
	}
}

// Document ID prefixes.
const (
	prefixStatement   = "STMT"
	prefixHistory     = "TXH"
	prefixCertificate = "FDC"
)

// File is a fully assembled export. The blob is complete in memory before it
// reaches the caller; a failed build never yields a partial file.
type File struct {
	Name        string
	ContentType string
	Data        []byte
}

// Filename builds the deterministic download name
// {type}-{identifier}-{YYYY-MM-DD}.{ext}. The identifier segment is omitted
// when empty (transaction history has none).
func Filename(docType, identifier string, date time.Time, format Format) string {
	parts := []string{docType}
	if identifier != "" {
		parts = append(parts, identifier)
	}
	parts = append(parts, date.Format("2006-01-02"))
	return strings.Join(parts, "-") + "." + string(format)
}

// DocumentID builds the synthetic footer ID {PREFIX}-{entityID}-{epochMillis}.
func DocumentID(prefix, entityID string, at time.Time) string {
	return fmt.Sprintf("%s-%s-%d", prefix, entityID, at.UnixMilli())
}

// StatementData is the input snapshot for an account statement.
type StatementData struct {
	Account     *domain.Account
	HolderName  string
	PeriodFrom  time.Time
	PeriodTo    time.Time
	Rows        []ledger.Row // chronological
	Summary     ledger.Summary
	GeneratedAt time.Time
}

// HistoryData is the input snapshot for a transaction history export.
type HistoryData struct {
	Transactions []*domain.Transaction // display order
	Currency     string
	GeneratedAt  time.Time
}

// CertificateData is the input snapshot for a fixed-deposit certificate.
type CertificateData struct {
	Certificate *domain.Certificate
	Value       domain.DepositValue
	GeneratedAt time.Time
}

// Engine renders documents. It is stateless apart from branding and the logo
// source; concurrent exports each work on their own captured input.
type Engine struct {
	branding  Branding
	logo      LogoSource
	formatter *currency.Formatter
}

// NewEngine creates an export engine. logo may be nil; every layout degrades
// to a text placeholder when no logo bytes are available.
func NewEngine(branding Branding, logo LogoSource, formatter *currency.Formatter) *Engine {
	return &Engine{branding: branding, logo: logo, formatter: formatter}
}

// Statement renders an account statement in the requested format.
func (e *Engine) Statement(data StatementData, format Format) (*File, error) {
	if data.Account == nil {
		return nil, domain.ErrEmptyDocument
	}

	name := Filename("statement", data.Account.AccountNumber, data.GeneratedAt, format)
	switch format {
	case FormatCSV:
		blob, err := e.statementCSV(data)
		if err != nil {
			return nil, err
		}
		return &File{Name: name, ContentType: "text/csv", Data: blob}, nil
	case FormatPDF:
		blob, err := e.statementPDF(data)
		if err != nil {
			return nil, fmt.Errorf("rendering statement pdf: %w", err)
		}
		return &File{Name: name, ContentType: "application/pdf", Data: blob}, nil
	default:
		return nil, fmt.Errorf("%w: %q", domain.ErrUnsupportedFormat, format)
	}
}

// TransactionHistory renders a transaction history export.
func (e *Engine) TransactionHistory(data HistoryData, format Format) (*File, error) {
	name := Filename("transaction-history", "", data.GeneratedAt, format)
	switch format {
	case FormatCSV:
		blob, err := e.historyCSV(data)
		if err != nil {
			return nil, err
		}
		return &File{Name: name, ContentType: "text/csv", Data: blob}, nil
	case FormatPDF:
		blob, err := e.historyPDF(data)
		if err != nil {
			return nil, fmt.Errorf("rendering history pdf: %w", err)
		}
		return &File{Name: name, ContentType: "application/pdf", Data: blob}, nil
	default:
		return nil, fmt.Errorf("%w: %q", domain.ErrUnsupportedFormat, format)
	}
}

// Certificate renders a fixed-deposit certificate. Certificates are PDF only.
func (e *Engine) Certificate(data CertificateData, format Format) (*File, error) {
	if data.Certificate == nil || data.Certificate.Deposit == nil {
		return nil, domain.ErrEmptyDocument
	}
	if format != FormatPDF {
		return nil, fmt.Errorf("%w: certificates are pdf only", domain.ErrUnsupportedFormat)
	}

	name := Filename("fd-certificate", data.Certificate.CertificateNumber, data.GeneratedAt, FormatPDF)
	blob, err := e.certificatePDF(data)
	if err != nil {
		return nil, fmt.Errorf("rendering certificate pdf: %w", err)
	}
	return &File{Name: name, ContentType: "application/pdf", Data: blob}, nil
}

// Table renders a generic tabular export (deposit lists, admin exports).
func (e *Engine) Table(docType string, headers []string, rows [][]string, generatedAt time.Time, format Format) (*File, error) {
	if len(headers) == 0 {
		return nil, domain.ErrEmptyDocument
	}

	name := Filename(docType, "", generatedAt, format)
	switch format {
	case FormatCSV:
		blob, err := writeCSV(headers, rows)
		if err != nil {
			return nil, err
		}
		return &File{Name: name, ContentType: "text/csv", Data: blob}, nil
	case FormatPDF:
		blob, err := e.tablePDF(docType, headers, rows, generatedAt)
		if err != nil {
			return nil, fmt.Errorf("rendering table pdf: %w", err)
		}
		return &File{Name: name, ContentType: "application/pdf", Data: blob}, nil
	default:
		return nil, fmt.Errorf("%w: %q", domain.ErrUnsupportedFormat, format)
	}
}
