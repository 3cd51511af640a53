package settleService

import (
	"fmt"

	"fairwayBook/models"
	"fairwayBook/services/common"

	log "github.com/sirupsen/logrus"
)

type parlayStore interface {
	ParlaysForTournament(tournamentID uint) ([]models.Parlay, error)
	UpdateParlayOutcome(parlayID uint, outcome string, actualPayout float64) error
}

// ParlayService folds settled pick outcomes up into parlay outcomes and
// payouts. A parlay is only combined once every one of its picks has been
// settled; anything still pending is left alone for the next run.
type ParlayService struct {
	store parlayStore
}

func NewParlayService(store parlayStore) *ParlayService {
	return &ParlayService{store: store}
}

// SettleParlays computes and persists outcomes for every outcome-less
// parlay in the tournament whose picks are all settled. Returns how many
// parlays were settled.
func (p *ParlayService) SettleParlays(tournamentID uint) (int, error) {
	parlays, err := p.store.ParlaysForTournament(tournamentID)
	if err != nil {
		return 0, fmt.Errorf("loading parlays for tournament %d: %w", tournamentID, err)
	}

	settled := 0
	for _, parlay := range parlays {
		outcome, payout, ready := CombineOutcomes(parlay)
		if !ready {
			continue
		}

		if err := p.store.UpdateParlayOutcome(parlay.ID, outcome, payout); err != nil {
			return settled, fmt.Errorf("updating parlay %d: %w", parlay.ID, err)
		}

		log.WithFields(log.Fields{
			"parlayId": parlay.ID,
			"outcome":  outcome,
			"payout":   payout,
		}).Info("Parlay settled")
		settled++
	}

	return settled, nil
}

// CombineOutcomes applies the combination rules to one parlay's picks.
// Precedence: any loss loses the parlay; all-void refunds the stake; a mix
// of wins with pushes or voids (and no loss) is a push with the payout
// recomputed over the winning legs only; all wins pay the precomputed
// potential payout. ready is false while any pick is still pending.
func CombineOutcomes(parlay models.Parlay) (outcome string, payout float64, ready bool) {
	if len(parlay.Picks) == 0 {
		return "", 0, false
	}

	wins, losses, pushes, voids := 0, 0, 0, 0
	var winOdds []int
	for _, pick := range parlay.Picks {
		if pick.SettlementStatus != models.SettlementSettled {
			return "", 0, false
		}
		switch pick.Outcome {
		case models.OutcomeWin:
			wins++
			winOdds = append(winOdds, pick.Odds)
		case models.OutcomeLoss:
			losses++
		case models.OutcomePush:
			pushes++
		case models.OutcomeVoid:
			voids++
		default:
			return "", 0, false
		}
	}

	switch {
	case losses > 0:
		return models.OutcomeLoss, 0, true
	case voids == len(parlay.Picks):
		return models.OutcomeVoid, float64(parlay.Stake), true
	case wins == len(parlay.Picks):
		return models.OutcomeWin, parlay.PotentialPayout, true
	default:
		// Pushed and voided legs drop out; the payout is re-multiplied over
		// the winning legs only. Zero winning legs degenerates to a refund.
		multiplier := common.CalculateParlayOddsMultiplier(winOdds)
		return models.OutcomePush, common.CalculateParlayPayout(parlay.Stake, multiplier), true
	}
}
