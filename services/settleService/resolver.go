package settleService

import (
	"fmt"
	"sort"
	"strings"

	"fairwayBook/models"
)

// Resolution is the decision for one matchup's round. WinningSlot is 0 for
// push and void outcomes.
type Resolution struct {
	WinningSlot int
	OutcomeKind string // models.OutcomeWin, OutcomePush or OutcomeVoid
	Reason      string
	Stats       map[int]models.PlayerRoundStat // slot -> stat the decision used
}

// MissingStatsError means one or more slots had no stat record for the
// matchup's round. The matchup stays unresolved this run.
type MissingStatsError struct {
	MatchupID uint
	Round     int
	Slots     []int
}

func (e *MissingStatsError) Error() string {
	return fmt.Sprintf("matchup %d: missing stats for slot(s) %s in round %d",
		e.MatchupID, joinInts(e.Slots), e.Round)
}

// RoundIncompleteError means at least one player is still on the course.
type RoundIncompleteError struct {
	MatchupID uint
	Round     int
	Thru      map[int]int // slot -> holes completed
}

func (e *RoundIncompleteError) Error() string {
	slots := make([]int, 0, len(e.Thru))
	for slot := range e.Thru {
		slots = append(slots, slot)
	}
	sort.Ints(slots)

	parts := make([]string, 0, len(slots))
	for _, slot := range slots {
		parts = append(parts, fmt.Sprintf("slot %d thru %d", slot, e.Thru[slot]))
	}
	return fmt.Sprintf("matchup %d: round %d incomplete (%s)", e.MatchupID, e.Round, strings.Join(parts, ", "))
}

// ResolveMatchup decides one matchup from the normalized stats of its
// round. Pure decision logic: withdrawal voids the matchup ahead of every
// other rule, an unfinished round blocks resolution, the strictly lowest
// round score wins and ties push.
func ResolveMatchup(m *models.Matchup, stats []models.PlayerRoundStat) (*Resolution, error) {
	slots := m.Slots()
	bySlot := make(map[int]models.PlayerRoundStat, len(slots))

	var missing []int
	for _, slot := range slots {
		stat, found := findStat(stats, slot.PlayerID, m.Round)
		if !found {
			missing = append(missing, slot.Slot)
			continue
		}
		bySlot[slot.Slot] = stat
	}
	if len(missing) > 0 {
		return nil, &MissingStatsError{MatchupID: m.ID, Round: m.Round, Slots: missing}
	}

	// Withdrawal takes priority over everything, including a clear winner
	// among the remaining players.
	var withdrew []string
	for _, slot := range slots {
		if bySlot[slot.Slot].Withdrawn {
			withdrew = append(withdrew, fmt.Sprintf("%s (slot %d)", slot.PlayerName, slot.Slot))
		}
	}
	if len(withdrew) > 0 {
		return &Resolution{
			OutcomeKind: models.OutcomeVoid,
			Reason:      fmt.Sprintf("matchup void: %s withdrew", strings.Join(withdrew, ", ")),
			Stats:       bySlot,
		}, nil
	}

	incomplete := make(map[int]int)
	for _, slot := range slots {
		if !bySlot[slot.Slot].RoundComplete {
			incomplete[slot.Slot] = bySlot[slot.Slot].Thru
		}
	}
	if len(incomplete) > 0 {
		return nil, &RoundIncompleteError{MatchupID: m.ID, Round: m.Round, Thru: incomplete}
	}

	best := slots[0]
	bestStat := bySlot[best.Slot]
	bestScore := bestStat.RoundScore()
	tiedSlots := []int{best.Slot}
	for _, slot := range slots[1:] {
		stat := bySlot[slot.Slot]
		score := stat.RoundScore()
		if score < bestScore {
			best, bestScore = slot, score
			tiedSlots = []int{slot.Slot}
		} else if score == bestScore {
			tiedSlots = append(tiedSlots, slot.Slot)
		}
	}

	if len(tiedSlots) > 1 {
		return &Resolution{
			OutcomeKind: models.OutcomePush,
			Reason:      fmt.Sprintf("push: slot(s) %s tied at %d in round %d", joinInts(tiedSlots), bestScore, m.Round),
			Stats:       bySlot,
		}, nil
	}

	return &Resolution{
		WinningSlot: best.Slot,
		OutcomeKind: models.OutcomeWin,
		Reason:      fmt.Sprintf("%s (slot %d) won round %d at %d", best.PlayerName, best.Slot, m.Round, bestScore),
		Stats:       bySlot,
	}, nil
}

func findStat(stats []models.PlayerRoundStat, playerID, round int) (models.PlayerRoundStat, bool) {
	for _, stat := range stats {
		if stat.PlayerID == playerID && stat.Round == round {
			return stat, true
		}
	}
	return models.PlayerRoundStat{}, false
}

func joinInts(ns []int) string {
	parts := make([]string, len(ns))
	for i, n := range ns {
		parts[i] = fmt.Sprintf("%d", n)
	}
	return strings.Join(parts, ", ")
}
