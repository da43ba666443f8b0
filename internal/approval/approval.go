// Package approval classifies a proposed transaction by amount into an
// execution or escalation path. The chain is a fixed ordered table of
// threshold stages; the first stage whose limit covers the amount wins, and
// amounts above every limit always escalate to manager sign-off.
package approval

import (
	"github.com/shopspring/decimal"

	"github.com/ghazal-mohammad/advanced-banking-system/internal/models"
)

// Boundaries are inclusive on the lower stage: exactly 5000 is small,
// exactly 50000 is large.
var stages = []struct {
	limit  decimal.Decimal
	status models.TransactionStatus
}{
	{decimal.NewFromInt(5000), models.StatusApprovedSmall},
	{decimal.NewFromInt(50000), models.StatusApprovedLarge},
}

// Pipeline decides the approval outcome for pending transactions.
type Pipeline struct{}

func NewPipeline() *Pipeline {
	return &Pipeline{}
}

// Classify returns the approval status for the amount. It never falls
// through: amounts beyond the last stage are pending manager approval.
func (p *Pipeline) Classify(amount decimal.Decimal) models.TransactionStatus {
	for _, stage := range stages {
		if amount.LessThanOrEqual(stage.limit) {
			return stage.status
		}
	}
	return models.StatusPendingManagerApproval
}

// Approved reports whether a status permits immediate execution.
func Approved(status models.TransactionStatus) bool {
	return status == models.StatusApprovedSmall || status == models.StatusApprovedLarge
}
