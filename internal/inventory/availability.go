package inventory

import (
	"sort"

	"board-inventory-api-server/internal/models"
)

// AvailableForIssue is the single source of truth for "allocatable":
// the board is in stock and either new or repaired. Request validation,
// bulk preview, bulk commit and low-stock math all go through it.
func AvailableForIssue(b *models.Board) bool {
	return b.Location == models.LocationInStock &&
		(b.Condition == models.ConditionNew || b.Condition == models.ConditionRepaired)
}

// AvailableForDirectIssue extends the predicate for the direct-issue
// path only: a repaired board still sitting at the repair location may
// also be issued directly. Request workflows never use this.
func AvailableForDirectIssue(b *models.Board) bool {
	if AvailableForIssue(b) {
		return true
	}
	return b.Location == models.LocationRepairing && b.Condition == models.ConditionRepaired
}

// countableAsStock mirrors the stock count used by the low-stock report:
// strictly available boards plus repaired boards awaiting collection at
// the repair location.
func countableAsStock(b *models.Board) bool {
	return AvailableForDirectIssue(b)
}

// sortBySerial orders boards by ascending serial number string compare.
// Auto-selection depends on this being stable and deterministic.
func sortBySerial(boards []models.Board) {
	sort.SliceStable(boards, func(i, j int) bool {
		return boards[i].SerialNumber < boards[j].SerialNumber
	})
}
