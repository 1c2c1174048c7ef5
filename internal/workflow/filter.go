package workflow

import (
	"strings"

	"topmart-admin/internal/models"
)

// Filter returns the requests whose status matches and whose user name or
// email contains search, case-insensitively. Order is preserved and the input
// is not modified. An empty search matches everything.
func Filter(requests []models.DepositRequest, status models.StatusFilter, search string) []models.DepositRequest {
	term := strings.ToLower(strings.TrimSpace(search))

	out := make([]models.DepositRequest, 0, len(requests))
	for _, r := range requests {
		if !status.Matches(r.Status) {
			continue
		}
		if term != "" &&
			!strings.Contains(strings.ToLower(r.UserName), term) &&
			!strings.Contains(strings.ToLower(r.Email), term) {
			continue
		}
		out = append(out, r)
	}
	return out
}
