package normalize

import (
	"errors"
	"testing"

	"topmart-admin/internal/models"

	"github.com/shopspring/decimal"
	"github.com/tidwall/gjson"
)

func TestParseAmount(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"1,500", "1500"},
		{"2,000", "2000"},
		{"1500", "1500"},
		{"  250.75 ", "250.75"},
		{"$1,000,000.50", "1000000.5"},
		{"₦5,000", "5000"},
		{"", "0"},
		{"abc", "0"},
		{"12abc", "0"},
	}
	for _, tt := range tests {
		got := ParseAmount(tt.input)
		if !got.Equal(decimal.RequireFromString(tt.want)) {
			t.Errorf("ParseAmount(%q) = %s, want %s", tt.input, got.String(), tt.want)
		}
	}
}

func TestNormalize_DataEnvelopeScenario(t *testing.T) {
	raw := []byte(`{"data":[{"_id":"1","userId":{"fullName":"Ada"},"amount":"2,000","status":"pending"}]}`)

	got, err := Normalize(raw)
	if err != nil {
		t.Fatalf("Normalize failed: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("expected 1 request, got %d", len(got))
	}

	r := got[0]
	if r.Id != "1" {
		t.Errorf("Id = %q, want 1", r.Id)
	}
	if r.UserName != "Ada" {
		t.Errorf("UserName = %q, want Ada", r.UserName)
	}
	if !r.Amount.Equal(decimal.NewFromInt(2000)) {
		t.Errorf("Amount = %s, want 2000", r.Amount.String())
	}
	if r.Status != models.StatusPending {
		t.Errorf("Status = %q, want pending", r.Status)
	}
	if r.PaymentProof != "" {
		t.Errorf("PaymentProof = %q, want empty", r.PaymentProof)
	}
	if r.Plan != "Unknown" {
		t.Errorf("Plan = %q, want Unknown", r.Plan)
	}
}

func TestNormalize_Envelopes(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want int
	}{
		{"bare array", `[{"_id":"a"},{"_id":"b"}]`, 2},
		{"data", `{"data":[{"_id":"a"}]}`, 1},
		{"proofs", `{"success":true,"proofs":[{"_id":"a"},{"_id":"b"},{"_id":"c"}]}`, 3},
		{"nested proofs", `{"data":{"proofs":[{"_id":"a"}]}}`, 1},
		{"empty array", `[]`, 0},
		{"non-object items skipped", `[{"_id":"a"},null,"x",3]`, 1},
	}
	for _, tt := range tests {
		got, err := Normalize([]byte(tt.raw))
		if err != nil {
			t.Fatalf("%s: Normalize failed: %v", tt.name, err)
		}
		if len(got) != tt.want {
			t.Errorf("%s: expected %d requests, got %d", tt.name, tt.want, len(got))
		}
	}
}

func TestNormalize_Malformed(t *testing.T) {
	for _, raw := range []string{``, `not json`, `{"message":"ok"}`, `{"data":{"id":1}}`, `"text"`} {
		_, err := Normalize([]byte(raw))
		if !errors.Is(err, ErrMalformedResponse) {
			t.Errorf("Normalize(%q) error = %v, want ErrMalformedResponse", raw, err)
		}
	}
}

func TestNormalizeOne_AmountAliases(t *testing.T) {
	tests := []struct {
		raw  string
		want int64
	}{
		{`{"amount":"1,500"}`, 1500},
		{`{"proofAmount":1500}`, 1500},
		{`{"investmentAmount":"700","proofAmount":"900"}`, 700},
		{`{"amount":"","proofAmount":"900"}`, 900},
		{`{"depositAmount":"12"}`, 12},
		{`{"amount":"n/a"}`, 0},
		{`{}`, 0},
	}
	for _, tt := range tests {
		got := NormalizeOne(gjson.Parse(tt.raw))
		if !got.Amount.Equal(decimal.NewFromInt(tt.want)) {
			t.Errorf("NormalizeOne(%s).Amount = %s, want %d", tt.raw, got.Amount.String(), tt.want)
		}
	}
}

func TestNormalizeOne_UserFields(t *testing.T) {
	tests := []struct {
		raw       string
		wantId    string
		wantName  string
		wantEmail string
	}{
		{`{"userId":{"_id":"u1","fullName":"Ada","email":"ada@x.io"}}`, "u1", "Ada", "ada@x.io"},
		{`{"userId":"u2","fullName":"Bob","email":"bob@x.io"}`, "u2", "Bob", "bob@x.io"},
		{`{"user":{"id":"u3","name":"Cy","email":"cy@x.io"}}`, "u3", "Cy", "cy@x.io"},
		{`{"userName":"Dee","userEmail":"dee@x.io"}`, "", "Dee", "dee@x.io"},
		{`{"userId":{"fullName":""},"name":"Eve"}`, "", "Eve", ""},
		{`{}`, "", "Unknown", ""},
	}
	for _, tt := range tests {
		got := NormalizeOne(gjson.Parse(tt.raw))
		if got.UserId != tt.wantId || got.UserName != tt.wantName || got.Email != tt.wantEmail {
			t.Errorf("NormalizeOne(%s) = (%q, %q, %q), want (%q, %q, %q)",
				tt.raw, got.UserId, got.UserName, got.Email, tt.wantId, tt.wantName, tt.wantEmail)
		}
	}
}

func TestNormalizeOne_PlanProofStatusDate(t *testing.T) {
	raw := `{"id":"7","plan":{"name":"Gold"},"proofImage":"receipt-7.png","status":"APPROVED","submittedAt":"2024-03-05T10:00:00Z"}`
	got := NormalizeOne(gjson.Parse(raw))

	if got.Id != "7" {
		t.Errorf("Id = %q, want 7", got.Id)
	}
	if got.Plan != "Gold" {
		t.Errorf("Plan = %q, want Gold", got.Plan)
	}
	if got.PaymentProof != "receipt-7.png" {
		t.Errorf("PaymentProof = %q", got.PaymentProof)
	}
	if got.Status != models.StatusApproved {
		t.Errorf("Status = %q, want approved", got.Status)
	}
	if got.SubmittedDate != "Mar 5, 2024" {
		t.Errorf("SubmittedDate = %q, want Mar 5, 2024", got.SubmittedDate)
	}

	got = NormalizeOne(gjson.Parse(`{"plan":"Silver","status":"weird","createdAt":"yesterday"}`))
	if got.Plan != "Silver" {
		t.Errorf("Plan = %q, want Silver", got.Plan)
	}
	if got.Status != models.StatusPending {
		t.Errorf("Status = %q, want pending", got.Status)
	}
	if got.SubmittedDate != "yesterday" {
		t.Errorf("SubmittedDate = %q, want verbatim value", got.SubmittedDate)
	}
}

func TestNormalizeOne_IdPriority(t *testing.T) {
	got := NormalizeOne(gjson.Parse(`{"_id":"mongo","id":"plain"}`))
	if got.Id != "mongo" {
		t.Errorf("Id = %q, want mongo", got.Id)
	}
	got = NormalizeOne(gjson.Parse(`{"id":42}`))
	if got.Id != "42" {
		t.Errorf("Id = %q, want 42", got.Id)
	}
}

func TestFormatDate(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"2024-01-31T23:59:59.123Z", "Jan 31, 2024"},
		{"2024-02-01", "Feb 1, 2024"},
		{"2024-02-01 08:00:00", "Feb 1, 2024"},
		{"", ""},
		{"1709632800000", "1709632800000"},
	}
	for _, tt := range tests {
		if got := FormatDate(tt.input); got != tt.want {
			t.Errorf("FormatDate(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}
