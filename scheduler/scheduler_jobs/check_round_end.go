package scheduler_jobs

import (
	"fmt"
	"log"
	"runtime/debug"

	"fairwayBook/models"
	"fairwayBook/services/common"
	"fairwayBook/services/settleService"

	logrus "github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// CheckRoundEnd runs an automatic settlement sweep: every tournament that
// still has pending picks gets one SettleEvent call. One tournament's
// failure never stops the sweep.
func CheckRoundEnd(db *gorm.DB, orch *settleService.SettleOrch) (err error) {
	defer func() {
		if r := recover(); r != nil {
			log.Println("Recovered in CheckRoundEnd", r)
			debug.PrintStack()
			err = fmt.Errorf("panic recovered in CheckRoundEnd: %v", r)
		}
	}()

	tournamentIDs, err := TournamentsWithPendingPicks(db)
	if err != nil {
		return err
	}

	for _, tournamentID := range tournamentIDs {
		result, settleErr := orch.SettleEvent(tournamentID, models.MethodAutomatic)
		if settleErr != nil {
			common.LogError(db, "checkRoundEnd", settleErr)
			continue
		}

		logrus.WithFields(logrus.Fields{
			"tournamentId": tournamentID,
			"runId":        result.RunID,
			"totalPicks":   result.TotalPicks,
			"settled":      len(result.SettledPicks),
			"errors":       len(result.Errors),
		}).Info("Automatic settlement sweep finished for tournament")
	}

	return nil
}

// TournamentsWithPendingPicks returns the ids of tournaments that have at
// least one pick awaiting settlement.
func TournamentsWithPendingPicks(db *gorm.DB) ([]uint, error) {
	var tournamentIDs []uint
	err := db.Model(&models.Pick{}).
		Distinct("matchups.tournament_id").
		Joins("JOIN matchups ON matchups.id = picks.matchup_id").
		Where("picks.settlement_status = ?", models.SettlementPending).
		Pluck("matchups.tournament_id", &tournamentIDs).Error
	if err != nil {
		return nil, err
	}
	return tournamentIDs, nil
}
