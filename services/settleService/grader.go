package settleService

import (
	"encoding/json"
	"fmt"

	"fairwayBook/models"
)

// PickSettlementResult is the graded outcome for a single pick, carrying a
// human-readable reason and the stat snapshot used for the decision.
type PickSettlementResult struct {
	PickID       uint   `json:"pickId"`
	MatchupID    uint   `json:"matchupId"`
	Outcome      string `json:"outcome"`
	Reason       string `json:"reason"`
	StatSnapshot string `json:"statSnapshot"`
}

// GradePicks projects a matchup resolution onto every pick attached to
// that matchup. No side effects; persistence is the orchestrator's job.
func GradePicks(m *models.Matchup, picks []models.Pick, res *Resolution) []PickSettlementResult {
	snapshot, err := json.Marshal(res.Stats)
	if err != nil {
		snapshot = []byte("{}")
	}

	names := make(map[int]string, len(m.Slots()))
	for _, slot := range m.Slots() {
		names[slot.Slot] = slot.PlayerName
	}

	results := make([]PickSettlementResult, 0, len(picks))
	for _, pick := range picks {
		result := PickSettlementResult{
			PickID:       pick.ID,
			MatchupID:    m.ID,
			StatSnapshot: string(snapshot),
		}

		switch res.OutcomeKind {
		case models.OutcomeVoid:
			result.Outcome = models.OutcomeVoid
			result.Reason = res.Reason
		case models.OutcomePush:
			result.Outcome = models.OutcomePush
			result.Reason = res.Reason
		default:
			if pick.SelectedSlot == res.WinningSlot {
				result.Outcome = models.OutcomeWin
				result.Reason = res.Reason
			} else {
				result.Outcome = models.OutcomeLoss
				result.Reason = fmt.Sprintf("picked %s (slot %d); %s",
					names[pick.SelectedSlot], pick.SelectedSlot, res.Reason)
			}
		}

		results = append(results, result)
	}

	return results
}
