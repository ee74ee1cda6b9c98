package main

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"time"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/novabank/docgen/internal/domain"
)

var (
	baseURL string
	timeout time.Duration
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "docgen-cli",
		Short: "NovaBank document generation CLI",
		Long:  `A command line interface for interacting with the NovaBank document generation API.`,
	}

	rootCmd.PersistentFlags().StringVar(&baseURL, "url", "http://localhost:8080", "Base URL of the docgen API")
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", 30*time.Second, "Request timeout")

	// Statement commands
	var (
		stmtFrom   string
		stmtTo     string
		stmtFormat string
		stmtOut    string
	)
	statementCmd := &cobra.Command{
		Use:   "statement <account-id>",
		Short: "Download an account statement",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			downloadStatement(args[0], stmtFrom, stmtTo, stmtFormat, stmtOut)
		},
	}
	statementCmd.Flags().StringVar(&stmtFrom, "from", "", "Period start (YYYY-MM-DD)")
	statementCmd.Flags().StringVar(&stmtTo, "to", "", "Period end (YYYY-MM-DD)")
	statementCmd.Flags().StringVar(&stmtFormat, "format", "pdf", "Output format (pdf or csv)")
	statementCmd.Flags().StringVarP(&stmtOut, "output", "o", "", "Output file (defaults to the server-provided name)")
	rootCmd.AddCommand(statementCmd)

	// Transaction commands
	transactionsCmd := &cobra.Command{
		Use:   "transactions <account-id>",
		Short: "List recent transactions for an account",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			listTransactions(args[0])
		},
	}
	rootCmd.AddCommand(transactionsCmd)

	// Fixed deposit commands
	fdCmd := &cobra.Command{
		Use:   "fd",
		Short: "Fixed deposit operations",
	}

	var certOut string
	certificateCmd := &cobra.Command{
		Use:   "certificate <deposit-id>",
		Short: "Download a fixed deposit certificate PDF",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			downloadCertificate(args[0], certOut)
		},
	}
	certificateCmd.Flags().StringVarP(&certOut, "output", "o", "", "Output file (defaults to the server-provided name)")
	fdCmd.AddCommand(certificateCmd)

	var (
		projPrincipal string
		projRate      string
		projMonths    int
	)
	projectCmd := &cobra.Command{
		Use:   "project",
		Short: "Project the maturity value of a hypothetical deposit",
		Run: func(cmd *cobra.Command, args []string) {
			projectDeposit(projPrincipal, projRate, projMonths)
		},
	}
	projectCmd.Flags().StringVar(&projPrincipal, "principal", "", "Principal amount")
	projectCmd.Flags().StringVar(&projRate, "rate", "", "Annual interest rate in percent")
	projectCmd.Flags().IntVar(&projMonths, "months", 12, "Duration in months")
	fdCmd.AddCommand(projectCmd)
	rootCmd.AddCommand(fdCmd)

	// Exchange rate commands
	ratesCmd := &cobra.Command{
		Use:   "rates",
		Short: "Show current exchange rates",
		Run: func(cmd *cobra.Command, args []string) {
			showRates()
		},
	}
	rootCmd.AddCommand(ratesCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func downloadStatement(accountID, from, to, format, out string) {
	query := url.Values{}
	if from != "" {
		query.Set("from", from)
	}
	if to != "" {
		query.Set("to", to)
	}
	query.Set("format", format)

	path := fmt.Sprintf("/api/v1/accounts/%s/statement?%s", accountID, query.Encode())
	downloadFile(path, out)
}

func downloadCertificate(depositID, out string) {
	path := fmt.Sprintf("/api/v1/fixed-deposits/%s/certificate/download", depositID)
	downloadFile(path, out)
}

// downloadFile fetches path and writes the response body to out, or to the
// filename from the Content-Disposition header when out is empty.
func downloadFile(path, out string) {
	client := &http.Client{Timeout: timeout}
	resp, err := client.Get(baseURL + path)
	if err != nil {
		fmt.Printf("Error making request: %v\n", err)
		os.Exit(1)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		fmt.Printf("Download failed (Status: %d)\nResponse: %s\n", resp.StatusCode, string(body))
		os.Exit(1)
	}

	if out == "" {
		out = filenameFromDisposition(resp.Header.Get("Content-Disposition"))
	}
	if out == "" {
		out = "document.bin"
	}

	f, err := os.Create(out)
	if err != nil {
		fmt.Printf("Failed to create output file: %v\n", err)
		os.Exit(1)
	}
	defer f.Close()

	n, err := io.Copy(f, resp.Body)
	if err != nil {
		fmt.Printf("Failed to write output file: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Wrote %s (%d bytes)\n", out, n)
}

// filenameFromDisposition extracts the quoted filename from an
// attachment Content-Disposition header.
func filenameFromDisposition(header string) string {
	const marker = `filename="`
	start := 0
	for ; start+len(marker) <= len(header); start++ {
		if header[start:start+len(marker)] == marker {
			rest := header[start+len(marker):]
			for i := 0; i < len(rest); i++ {
				if rest[i] == '"' {
					return rest[:i]
				}
			}
			return ""
		}
	}
	return ""
}

func listTransactions(accountID string) {
	client := &http.Client{Timeout: timeout}
	resp, err := client.Get(fmt.Sprintf("%s/api/v1/accounts/%s/transactions", baseURL, accountID))
	if err != nil {
		fmt.Printf("Error making request: %v\n", err)
		os.Exit(1)
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusOK {
		fmt.Printf("Request failed (Status: %d)\nResponse: %s\n", resp.StatusCode, string(body))
		os.Exit(1)
	}

	var result struct {
		Transactions []struct {
			ID          string `json:"id"`
			Type        string `json:"type"`
			Amount      string `json:"amount"`
			Description string `json:"description"`
			Status      string `json:"status"`
		} `json:"transactions"`
	}
	if err := json.Unmarshal(body, &result); err != nil {
		fmt.Printf("Failed to parse response: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("%-28s %-8s %12s %-10s %s\n", "ID", "TYPE", "AMOUNT", "STATUS", "DESCRIPTION")
	for _, tx := range result.Transactions {
		fmt.Printf("%-28s %-8s %12s %-10s %s\n",
			truncate(tx.ID, 28), tx.Type, tx.Amount, tx.Status, truncate(tx.Description, 40))
	}
}

func projectDeposit(principal, rate string, months int) {
	p, err := decimal.NewFromString(principal)
	if err != nil {
		fmt.Printf("Invalid principal: %v\n", err)
		os.Exit(1)
	}
	r, err := decimal.NewFromString(rate)
	if err != nil {
		fmt.Printf("Invalid rate: %v\n", err)
		os.Exit(1)
	}
	if months <= 0 {
		fmt.Println("Duration must be at least one month")
		os.Exit(1)
	}

	value := domain.ProjectedMaturityValue(p, r, months)
	interest := value.Sub(p)
	fmt.Printf("Principal:      %s\n", p.StringFixed(2))
	fmt.Printf("Rate:           %s%% p.a.\n", r.StringFixed(2))
	fmt.Printf("Duration:       %d months\n", months)
	fmt.Printf("Maturity value: %s\n", value.StringFixed(2))
	fmt.Printf("Interest:       %s\n", interest.StringFixed(2))
}

func showRates() {
	client := &http.Client{Timeout: timeout}
	resp, err := client.Get(baseURL + "/api/v1/exchange-rates")
	if err != nil {
		fmt.Printf("Error making request: %v\n", err)
		os.Exit(1)
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusOK {
		fmt.Printf("Request failed (Status: %d)\nResponse: %s\n", resp.StatusCode, string(body))
		os.Exit(1)
	}

	var result struct {
		Base  string            `json:"base"`
		Rates map[string]string `json:"rates"`
	}
	if err := json.Unmarshal(body, &result); err != nil {
		fmt.Printf("Failed to parse response: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Base: %s\n", result.Base)
	for code, rate := range result.Rates {
		fmt.Printf("%-5s %s\n", code, rate)
	}
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	if max <= 3 {
		return s[:max]
	}
	return s[:max-3] + "..."
}
