package settleService

import (
	"context"
	"fmt"
	"time"

	"fairwayBook/models"
	"fairwayBook/services/common"
	"fairwayBook/services/statService"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

type statFetcher interface {
	FetchTournamentStats(t models.Tournament) ([]models.PlayerRoundStat, error)
}

type pickStore interface {
	TournamentByID(id uint) (*models.Tournament, error)
	PendingPicks(tournamentID uint) ([]models.Pick, error)
	UpdatePickSettlement(pickID uint, outcome, reason string, settledAt time.Time) error
	AppendSettlementRecord(record *models.SettlementRecord) error
}

type statBackfiller interface {
	BackfillStats(ctx context.Context, tournamentID uint, stats []models.PlayerRoundStat) error
}

// SettlementResult reports exactly what one settlement run did: which
// picks were graded and which matchups failed with why, so an operator can
// target re-runs instead of getting an opaque all-or-nothing failure.
type SettlementResult struct {
	TournamentID uint                   `json:"tournamentId"`
	TourType     string                 `json:"tourType"`
	SettledPicks []PickSettlementResult `json:"settledPicks"`
	Errors       []string               `json:"errors"`
	TotalPicks   int                    `json:"totalPicks"`
	Method       string                 `json:"settlementMethod"`
	RunID        string                 `json:"runId"`
}

// SettleOrch coordinates one settlement run for a tournament. All
// collaborators are injected; the composition root in main owns their
// lifetimes.
type SettleOrch struct {
	db      *gorm.DB
	store   pickStore
	stats   statFetcher
	parlays *ParlayService
	cache   statBackfiller // nil when the cache is disabled
}

func NewSettleOrch(db *gorm.DB, store pickStore, stats statFetcher, parlays *ParlayService, cache statBackfiller) *SettleOrch {
	return &SettleOrch{db: db, store: store, stats: stats, parlays: parlays, cache: cache}
}

// SettleEvent grades every pending pick for the tournament and rolls up
// parlay outcomes. A failure in one matchup is recorded and skipped; only
// a missing tournament or a dead stat feed aborts the run. Safe to re-run:
// already-settled picks are excluded from the pending query.
func (o *SettleOrch) SettleEvent(tournamentID uint, method string) (*SettlementResult, error) {
	switch method {
	case models.MethodAutomatic, models.MethodManual, models.MethodOverride:
	default:
		return nil, fmt.Errorf("unknown settlement method %q", method)
	}

	tournament, err := o.store.TournamentByID(tournamentID)
	if err != nil {
		return nil, fmt.Errorf("tournament %d: %w", tournamentID, err)
	}

	result := &SettlementResult{
		TournamentID: tournamentID,
		TourType:     string(statService.ClassifyTour(*tournament)),
		SettledPicks: []PickSettlementResult{},
		Errors:       []string{},
		Method:       method,
		RunID:        uuid.NewString(),
	}

	picks, err := o.store.PendingPicks(tournamentID)
	if err != nil {
		return nil, fmt.Errorf("loading pending picks for tournament %d: %w", tournamentID, err)
	}
	result.TotalPicks = len(picks)
	if len(picks) == 0 {
		return result, nil
	}

	// One feed call covers every round and player in the tournament.
	stats, err := o.stats.FetchTournamentStats(*tournament)
	if err != nil {
		return nil, err
	}

	if o.cache != nil {
		if cacheErr := o.cache.BackfillStats(context.Background(), tournamentID, stats); cacheErr != nil {
			common.LogError(o.db, "statCache", cacheErr)
		}
	}

	for _, matchupID := range groupOrder(picks) {
		group := picksForMatchup(picks, matchupID)
		matchup := group[0].Matchup
		if matchup.ID == 0 {
			result.Errors = append(result.Errors, fmt.Sprintf("matchup %d: record not found", matchupID))
			continue
		}

		resolution, err := ResolveMatchup(&matchup, stats)
		if err != nil {
			result.Errors = append(result.Errors, err.Error())
			continue
		}

		for i, graded := range GradePicks(&matchup, group, resolution) {
			settledAt := time.Now().UTC()
			if err := o.store.UpdatePickSettlement(graded.PickID, graded.Outcome, graded.Reason, settledAt); err != nil {
				result.Errors = append(result.Errors, fmt.Sprintf("pick %d: %v", graded.PickID, err))
				continue
			}

			record := &models.SettlementRecord{
				PickID:          graded.PickID,
				RunID:           result.RunID,
				PreviousOutcome: group[i].Outcome,
				NewOutcome:      graded.Outcome,
				Reason:          graded.Reason,
				StatSnapshot:    graded.StatSnapshot,
				Method:          method,
				SettledAt:       settledAt,
			}
			if err := o.store.AppendSettlementRecord(record); err != nil {
				result.Errors = append(result.Errors, fmt.Sprintf("pick %d: settlement record: %v", graded.PickID, err))
				continue
			}

			result.SettledPicks = append(result.SettledPicks, graded)
		}
	}

	// Parlay rollup runs strictly after all pick persistence. Its failure
	// never fails the run or rolls back settled picks.
	if _, err := o.parlays.SettleParlays(tournamentID); err != nil {
		common.LogError(o.db, "parlayRollup", err)
	}

	log.WithFields(log.Fields{
		"tournamentId": tournamentID,
		"runId":        result.RunID,
		"settled":      len(result.SettledPicks),
		"errors":       len(result.Errors),
		"method":       method,
	}).Info("Settlement run finished")

	return result, nil
}

// groupOrder returns matchup ids in first-seen order so results are
// deterministic for a given pick list.
func groupOrder(picks []models.Pick) []uint {
	seen := make(map[uint]bool)
	var order []uint
	for _, pick := range picks {
		if !seen[pick.MatchupID] {
			seen[pick.MatchupID] = true
			order = append(order, pick.MatchupID)
		}
	}
	return order
}

func picksForMatchup(picks []models.Pick, matchupID uint) []models.Pick {
	var group []models.Pick
	for _, pick := range picks {
		if pick.MatchupID == matchupID {
			group = append(group, pick)
		}
	}
	return group
}
