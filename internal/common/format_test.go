package common

import (
	"bytes"
	"strings"
	"testing"

	"topmart-admin/internal/models"

	"github.com/shopspring/decimal"
)

func TestShortId(t *testing.T) {
	tests := []struct {
		id   string
		want string
	}{
		{"", "none"},
		{"42", "42"},
		{"65f1c2a9b7e4d3", "65f1c2a9b7…"},
	}
	for _, tt := range tests {
		if got := ShortId(tt.id); got != tt.want {
			t.Errorf("ShortId(%q) = %q, want %q", tt.id, got, tt.want)
		}
	}
}

func TestPrintRequestDetail(t *testing.T) {
	var buf bytes.Buffer
	r := models.DepositRequest{
		Id:           "7",
		UserName:     "Ada",
		Email:        "ada@topmart.io",
		Amount:       decimal.NewFromInt(1500),
		PaymentProof: "proof.pdf",
		Status:       models.StatusPending,
	}
	PrintRequestDetail(&buf, r, "https://topmart.io/api")

	out := buf.String()
	for _, want := range []string{"DEPOSIT REQUEST 7", "1500.00", "https://topmart.io/uploads/proof.pdf (pdf)"} {
		if !strings.Contains(out, want) {
			t.Errorf("detail output missing %q:\n%s", want, out)
		}
	}

	buf.Reset()
	r.PaymentProof = ""
	PrintRequestDetail(&buf, r, "https://topmart.io/api")
	if !strings.Contains(buf.String(), "approval unavailable") {
		t.Errorf("expected missing proof notice, got:\n%s", buf.String())
	}
}
