package common

import (
	"fmt"
	"io"
	"strings"

	"topmart-admin/internal/models"
)

const (
	DefaultWidth = 80
	WideWidth    = 100
)

// ANSI color helpers for console output.
const (
	ColorReset  = "\033[0m"
	ColorRed    = "\033[31m"
	ColorGreen  = "\033[32m"
	ColorYellow = "\033[33m"
	ColorCyan   = "\033[36m"
	ColorGray   = "\033[90m"
)

// PrintSeparator prints a separator line with the specified character and width
func PrintSeparator(w io.Writer, char string, width int) {
	fmt.Fprintln(w, strings.Repeat(char, width))
}

// PrintHeader prints a formatted header with title and separators
func PrintHeader(w io.Writer, title string, width int) {
	fmt.Fprintln(w, "\n"+strings.Repeat("=", width))
	fmt.Fprintln(w, title)
	PrintSeparator(w, "=", width)
}

// PrintFooter prints a formatted footer with message and separators
func PrintFooter(w io.Writer, message string, width int) {
	fmt.Fprintln(w, "\n"+strings.Repeat("=", width))
	fmt.Fprintln(w, message)
	fmt.Fprintln(w, strings.Repeat("=", width)+"\n")
}

// BoxPrefix returns the box-drawing prefix for list items
func BoxPrefix(isLast bool) string {
	if isLast {
		return "└─"
	}
	return "├─"
}

// BoxDetailPrefix returns the prefix for detail lines under list items
func BoxDetailPrefix(isLast bool) string {
	if isLast {
		return "  "
	}
	return "│ "
}

// StatusColor picks the console color for a review status
func StatusColor(s models.DepositStatus) string {
	switch s {
	case models.StatusApproved:
		return ColorGreen
	case models.StatusRejected:
		return ColorRed
	default:
		return ColorYellow
	}
}

// ShortId truncates long ids for tables
func ShortId(id string) string {
	if id == "" {
		return "none"
	}
	if len(id) > 10 {
		return id[:10] + "…"
	}
	return id
}

// PrintRequestTable prints one line per request with a proof marker
func PrintRequestTable(w io.Writer, requests []models.DepositRequest) {
	for i, r := range requests {
		proof := ColorGray + "no proof" + ColorReset
		if r.HasProof() {
			proof = string(r.ProofKind())
		}
		fmt.Fprintf(w, "%s %-11s %s%-8s%s %-22s %14s  %-10s %-12s %s\n",
			BoxPrefix(i == len(requests)-1),
			ShortId(r.Id),
			StatusColor(r.Status), r.Status, ColorReset,
			truncate(r.UserName, 22),
			r.Amount.StringFixed(2),
			truncate(r.Plan, 10),
			r.SubmittedDate,
			proof)
	}
}

// PrintRequestDetail prints the review view of a single request, resolving
// the payment proof against baseURL.
func PrintRequestDetail(w io.Writer, r models.DepositRequest, baseURL string) {
	PrintHeader(w, "DEPOSIT REQUEST "+r.Id, DefaultWidth)
	fmt.Fprintf(w, "User:          %s (%s)\n", r.UserName, orNone(r.Email))
	fmt.Fprintf(w, "User ID:       %s\n", orNone(r.UserId))
	fmt.Fprintf(w, "Plan:          %s\n", r.Plan)
	fmt.Fprintf(w, "Amount:        %s\n", r.Amount.StringFixed(2))
	fmt.Fprintf(w, "Submitted:     %s\n", orNone(r.SubmittedDate))
	fmt.Fprintf(w, "Status:        %s%s%s\n", StatusColor(r.Status), r.Status, ColorReset)
	if r.HasProof() {
		fmt.Fprintf(w, "Payment proof: %s (%s)\n", r.ProofURL(baseURL), r.ProofKind())
	} else {
		fmt.Fprintln(w, "Payment proof: none submitted - approval unavailable")
	}
	PrintSeparator(w, "=", DefaultWidth)
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}

func orNone(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
