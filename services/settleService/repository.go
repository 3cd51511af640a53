package settleService

import (
	"time"

	"fairwayBook/models"

	"gorm.io/gorm"
)

// Repository is the persistence boundary for settlement. Each write is an
// independent unit of work; settlement never needs cross-matchup
// transactional atomicity.
type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

func (r *Repository) TournamentByID(id uint) (*models.Tournament, error) {
	var tournament models.Tournament
	if err := r.db.First(&tournament, id).Error; err != nil {
		return nil, err
	}
	return &tournament, nil
}

// PendingPicks returns every pick awaiting settlement for the tournament,
// with its matchup preloaded. Settled picks are excluded here, which is
// what makes re-running a settlement a pick-level no-op.
func (r *Repository) PendingPicks(tournamentID uint) ([]models.Pick, error) {
	var picks []models.Pick
	err := r.db.Joins("Matchup").
		Where("`Matchup`.`tournament_id` = ? AND `picks`.`settlement_status` = ?", tournamentID, models.SettlementPending).
		Find(&picks).Error
	if err != nil {
		return nil, err
	}
	return picks, nil
}

func (r *Repository) UpdatePickSettlement(pickID uint, outcome, reason string, settledAt time.Time) error {
	return r.db.Model(&models.Pick{}).Where("id = ?", pickID).Updates(map[string]interface{}{
		"settlement_status": models.SettlementSettled,
		"outcome":           outcome,
		"settlement_reason": reason,
		"settled_at":        settledAt,
	}).Error
}

// AppendSettlementRecord inserts one audit row. Records are insert-only;
// nothing in the codebase updates or deletes them.
func (r *Repository) AppendSettlementRecord(record *models.SettlementRecord) error {
	return r.db.Create(record).Error
}

// ParlaysForTournament returns parlays in the tournament that do not yet
// have an outcome, with their picks preloaded.
func (r *Repository) ParlaysForTournament(tournamentID uint) ([]models.Parlay, error) {
	var parlays []models.Parlay
	err := r.db.Preload("Picks").
		Where("tournament_id = ? AND outcome = ?", tournamentID, "").
		Find(&parlays).Error
	if err != nil {
		return nil, err
	}
	return parlays, nil
}

func (r *Repository) UpdateParlayOutcome(parlayID uint, outcome string, actualPayout float64) error {
	return r.db.Model(&models.Parlay{}).Where("id = ?", parlayID).Updates(map[string]interface{}{
		"outcome":       outcome,
		"actual_payout": actualPayout,
	}).Error
}
