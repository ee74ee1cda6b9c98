package export

import (
	"bytes"
	"fmt"
	"image/png"
	"strings"
	"time"

	"github.com/go-pdf/fpdf"
	"github.com/shopspring/decimal"

	"github.com/novabank/docgen/internal/domain"
)

const (
	pageMargin  = 15.0
	contentW    = 180.0 // A4 width minus margins
	rowHeight   = 7.0
	detailLabel = 55.0
)

// certificateTerms are the fixed terms rendered on every certificate.
var certificateTerms = []string{
	"The deposit is payable on the maturity date stated above.",
	"Premature withdrawal is subject to the bank's prevailing penalty schedule.",
	"Interest accrues daily and is credited at maturity.",
	"Renewal instructions must reach the bank before the maturity date.",
	"This certificate is not transferable and is not a negotiable instrument.",
}

// doc wraps an fpdf page with the shared layout helpers. All text flows
// through the cp1252 translator; characters outside the codepage degrade
// rather than corrupt the output.
type doc struct {
	pdf      *fpdf.Fpdf
	tr       func(string) string
	branding Branding
}

func (e *Engine) newDoc(title string, generatedAt time.Time) *doc {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetTitle(title, true)
	pdf.SetAuthor(e.branding.Name, true)
	pdf.SetCreationDate(generatedAt)
	pdf.SetMargins(pageMargin, pageMargin, pageMargin)
	pdf.SetAutoPageBreak(true, 20)
	pdf.AddPage()

	return &doc{
		pdf:      pdf,
		tr:       pdf.UnicodeTranslatorFromDescriptor(""),
		branding: e.branding,
	}
}

// validLogo reports whether data decodes as a PNG the renderer can embed.
func validLogo(data []byte) bool {
	_, err := png.DecodeConfig(bytes.NewReader(data))
	return err == nil
}

// header renders the institution block: logo (or text placeholder), name,
// address and contact lines, then a rule.
func (d *doc) header(logo []byte) {
	startY := d.pdf.GetY()

	if len(logo) > 0 && validLogo(logo) {
		d.pdf.RegisterImageOptionsReader("logo", fpdf.ImageOptions{ImageType: "PNG"}, bytes.NewReader(logo))
		d.pdf.ImageOptions("logo", pageMargin, startY, 22, 0, false, fpdf.ImageOptions{ImageType: "PNG"}, 0, "")
	} else {
		d.pdf.SetFont("Helvetica", "B", 11)
		d.pdf.SetTextColor(120, 120, 120)
		d.pdf.Text(pageMargin, startY+8, d.tr(d.branding.placeholder()))
	}

	d.pdf.SetXY(pageMargin+28, startY)
	d.pdf.SetFont("Helvetica", "B", 16)
	d.pdf.SetTextColor(20, 20, 20)
	d.pdf.CellFormat(0, 8, d.tr(d.branding.Name), "", 1, "L", false, 0, "")

	d.pdf.SetFont("Helvetica", "", 9)
	d.pdf.SetTextColor(90, 90, 90)
	for _, line := range d.branding.AddressLines {
		d.pdf.SetX(pageMargin + 28)
		d.pdf.CellFormat(0, 4.5, d.tr(line), "", 1, "L", false, 0, "")
	}
	d.pdf.SetX(pageMargin + 28)
	contact := fmt.Sprintf("%s | %s | %s", d.branding.SupportEmail, d.branding.SupportPhone, d.branding.Website)
	d.pdf.CellFormat(0, 4.5, d.tr(contact), "", 1, "L", false, 0, "")

	d.pdf.Ln(4)
	y := d.pdf.GetY()
	d.pdf.SetDrawColor(180, 180, 180)
	d.pdf.Line(pageMargin, y, pageMargin+contentW, y)
	d.pdf.Ln(6)
}

// watermark draws the logo at low opacity behind subsequent content.
func (d *doc) watermark(logo []byte) {
	if len(logo) == 0 || !validLogo(logo) {
		return
	}
	pageW, pageH := d.pdf.GetPageSize()
	d.pdf.RegisterImageOptionsReader("watermark", fpdf.ImageOptions{ImageType: "PNG"}, bytes.NewReader(logo))
	d.pdf.SetAlpha(0.08, "Normal")
	d.pdf.ImageOptions("watermark", pageW/2-50, pageH/2-50, 100, 0, false, fpdf.ImageOptions{ImageType: "PNG"}, 0, "")
	d.pdf.SetAlpha(1.0, "Normal")
}

func (d *doc) title(text string) {
	d.pdf.SetFont("Helvetica", "B", 14)
	d.pdf.SetTextColor(20, 20, 20)
	d.pdf.CellFormat(0, 9, d.tr(text), "", 1, "C", false, 0, "")
	d.pdf.Ln(3)
}

// detail renders one label:value pair of the entity detail block.
func (d *doc) detail(label, value string) {
	d.pdf.SetFont("Helvetica", "", 10)
	d.pdf.SetTextColor(90, 90, 90)
	d.pdf.CellFormat(detailLabel, 6, d.tr(label), "", 0, "L", false, 0, "")
	d.pdf.SetFont("Helvetica", "B", 10)
	d.pdf.SetTextColor(20, 20, 20)
	d.pdf.CellFormat(0, 6, d.tr(value), "", 1, "L", false, 0, "")
}

// tableHeader renders shaded column headers.
func (d *doc) tableHeader(headers []string, widths []float64) {
	d.pdf.SetFont("Helvetica", "B", 9)
	d.pdf.SetFillColor(235, 235, 235)
	d.pdf.SetTextColor(20, 20, 20)
	for i, h := range headers {
		d.pdf.CellFormat(widths[i], rowHeight, d.tr(h), "1", 0, "L", true, 0, "")
	}
	d.pdf.Ln(-1)
}

// tableRow renders one data row; aligns lists which cells are right-aligned.
func (d *doc) tableRow(cells []string, widths []float64, rightAligned map[int]bool) {
	d.pdf.SetFont("Helvetica", "", 9)
	d.pdf.SetTextColor(40, 40, 40)
	for i, c := range cells {
		align := "L"
		if rightAligned[i] {
			align = "R"
		}
		d.pdf.CellFormat(widths[i], rowHeight, d.tr(c), "1", 0, align, false, 0, "")
	}
	d.pdf.Ln(-1)
}

// summaryLine renders one total in the summary block.
func (d *doc) summaryLine(label, value string) {
	d.pdf.SetFont("Helvetica", "", 10)
	d.pdf.SetTextColor(90, 90, 90)
	d.pdf.CellFormat(contentW-45, 6, d.tr(label), "", 0, "R", false, 0, "")
	d.pdf.SetFont("Helvetica", "B", 10)
	d.pdf.SetTextColor(20, 20, 20)
	d.pdf.CellFormat(45, 6, d.tr(value), "", 1, "R", false, 0, "")
}

// footer renders the generation timestamp, synthetic document ID and the
// no-signature disclaimer.
func (d *doc) footer(documentID string, generatedAt time.Time) {
	d.pdf.Ln(8)
	d.pdf.SetFont("Helvetica", "", 8)
	d.pdf.SetTextColor(120, 120, 120)
	d.pdf.CellFormat(0, 4.5, d.tr("Generated: "+generatedAt.UTC().Format(time.RFC3339)), "", 1, "L", false, 0, "")
	d.pdf.CellFormat(0, 4.5, d.tr("Document ID: "+documentID), "", 1, "L", false, 0, "")
	d.pdf.CellFormat(0, 4.5, d.tr("This is a computer-generated document. No signature is required."), "", 1, "L", false, 0, "")
}

func (d *doc) bytes() ([]byte, error) {
	var buf bytes.Buffer
	if err := d.pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (e *Engine) statementPDF(data StatementData) ([]byte, error) {
	d := e.newDoc("Account Statement", data.GeneratedAt)
	d.header(e.logoBytes())
	d.title("Account Statement")

	code := data.Account.Currency
	d.detail("Account Holder", data.HolderName)
	d.detail("Account Number", data.Account.AccountNumber)
	d.detail("Account Type", data.Account.AccountType)
	d.detail("Currency", code)
	d.detail("Statement Period", fmt.Sprintf("%s to %s",
		data.PeriodFrom.Format(dateLayout), data.PeriodTo.Format(dateLayout)))
	d.pdf.Ln(4)

	headers := []string{"No", "Date", "Description", "Debit", "Credit", "Balance"}
	widths := []float64{10, 24, 66, 25, 25, 30}
	right := map[int]bool{3: true, 4: true, 5: true}
	d.tableHeader(headers, widths)

	serial := 1
	if data.Summary.OpeningBalance.IsPositive() {
		d.tableRow([]string{"", "", "Balance Carried Forward", "", "",
			data.Summary.OpeningBalance.StringFixed(2)}, widths, right)
	}
	for _, row := range data.Rows {
		tx := row.Transaction
		var debit, credit string
		switch tx.Type {
		case domain.TransactionDebit:
			debit = tx.Amount.StringFixed(2)
		case domain.TransactionCredit:
			credit = tx.Amount.StringFixed(2)
		}
		d.tableRow([]string{
			fmt.Sprintf("%d", serial),
			tx.CreatedAt.Format(dateLayout),
			tx.Description,
			debit,
			credit,
			row.Balance.StringFixed(2),
		}, widths, right)
		serial++
	}

	d.pdf.Ln(4)
	d.summaryLine("Total Credits", e.formatter.Format(data.Summary.TotalCredits, code))
	d.summaryLine("Total Debits", e.formatter.Format(data.Summary.TotalDebits, code))
	d.summaryLine("Closing Balance", e.formatter.Format(data.Summary.NetBalance, code))

	d.footer(DocumentID(prefixStatement, data.Account.AccountNumber, data.GeneratedAt), data.GeneratedAt)
	return d.bytes()
}

func (e *Engine) historyPDF(data HistoryData) ([]byte, error) {
	d := e.newDoc("Transaction History", data.GeneratedAt)
	d.header(e.logoBytes())
	d.title("Transaction History")

	headers := []string{"Date", "Type", "Amount", "Description", "Status", "Reference"}
	widths := []float64{32, 18, 26, 51, 24, 29}
	right := map[int]bool{2: true}
	d.tableHeader(headers, widths)

	totalCredits := decimal.Zero
	totalDebits := decimal.Zero
	for _, tx := range data.Transactions {
		d.tableRow([]string{
			tx.CreatedAt.Format(timestampLayout),
			string(tx.Type),
			tx.Amount.StringFixed(2),
			tx.Description,
			string(tx.Status),
			tx.Reference,
		}, widths, right)

		switch tx.Type {
		case domain.TransactionCredit:
			totalCredits = totalCredits.Add(tx.Amount)
		case domain.TransactionDebit:
			totalDebits = totalDebits.Add(tx.Amount)
		}
	}

	d.pdf.Ln(4)
	d.summaryLine("Total Credits", e.formatter.Format(totalCredits, data.Currency))
	d.summaryLine("Total Debits", e.formatter.Format(totalDebits, data.Currency))
	d.summaryLine("Net", e.formatter.Format(totalCredits.Sub(totalDebits), data.Currency))

	d.footer(DocumentID(prefixHistory, "all", data.GeneratedAt), data.GeneratedAt)
	return d.bytes()
}

func (e *Engine) certificatePDF(data CertificateData) ([]byte, error) {
	cert := data.Certificate
	dep := cert.Deposit

	d := e.newDoc("Fixed Deposit Certificate", data.GeneratedAt)
	logo := e.logoBytes()
	d.watermark(logo)
	d.header(logo)
	d.title("Fixed Deposit Certificate")

	code := cert.Currency
	d.detail("Certificate Number", cert.CertificateNumber)
	d.detail("Deposit Holder", cert.HolderName)
	d.detail("Linked Account", cert.AccountNumber)
	d.detail("Principal Amount", e.formatter.Format(dep.Amount, code))
	d.detail("Interest Rate", dep.InterestRate.StringFixed(2)+"% p.a.")
	d.detail("Term", fmt.Sprintf("%d months", dep.DurationMonths))
	d.detail("Value Date", dep.CreatedAt.Format(dateLayout))
	d.detail("Maturity Date", dep.MaturityDate.Format(dateLayout))
	d.detail("Status", string(dep.Status))
	if data.Value.IsMatured {
		d.detail("Maturity Value", e.formatter.Format(data.Value.Value, code))
	} else {
		d.detail("Current Value", e.formatter.Format(data.Value.Value, code))
		d.detail("Days To Maturity", fmt.Sprintf("%d", data.Value.DaysRemaining))
	}

	d.pdf.Ln(6)
	d.pdf.SetFont("Helvetica", "B", 10)
	d.pdf.SetTextColor(20, 20, 20)
	d.pdf.CellFormat(0, 6, "Terms and Conditions", "", 1, "L", false, 0, "")
	d.pdf.SetFont("Helvetica", "", 9)
	d.pdf.SetTextColor(70, 70, 70)
	for i, term := range certificateTerms {
		d.pdf.MultiCell(contentW, 5, d.tr(fmt.Sprintf("%d. %s", i+1, term)), "", "L", false)
	}

	d.footer(DocumentID(prefixCertificate, cert.CertificateNumber, data.GeneratedAt), data.GeneratedAt)
	return d.bytes()
}

func (e *Engine) tablePDF(docType string, headers []string, rows [][]string, generatedAt time.Time) ([]byte, error) {
	d := e.newDoc(docType, generatedAt)
	d.header(e.logoBytes())
	d.title(titleFromDocType(docType))

	width := contentW / float64(len(headers))
	widths := make([]float64, len(headers))
	for i := range widths {
		widths[i] = width
	}

	d.tableHeader(headers, widths)
	for _, row := range rows {
		d.tableRow(row, widths, nil)
	}

	d.footer(DocumentID("DOC", docType, generatedAt), generatedAt)
	return d.bytes()
}

// titleFromDocType turns a filename-style doc type like "fixed-deposits"
// into a display title.
func titleFromDocType(docType string) string {
	words := strings.Split(docType, "-")
	for i, w := range words {
		if w == "" {
			continue
		}
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}
