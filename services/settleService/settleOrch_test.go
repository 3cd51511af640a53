package settleService

import (
	"errors"
	"strings"
	"testing"
	"time"

	"fairwayBook/models"

	"gorm.io/gorm"
)

type fakePickStore struct {
	tournament    *models.Tournament
	tournamentErr error

	pending []models.Pick

	updates map[uint]string // pickID -> outcome
	records []*models.SettlementRecord
}

func (f *fakePickStore) TournamentByID(id uint) (*models.Tournament, error) {
	if f.tournamentErr != nil {
		return nil, f.tournamentErr
	}
	return f.tournament, nil
}

func (f *fakePickStore) PendingPicks(tournamentID uint) ([]models.Pick, error) {
	out := make([]models.Pick, len(f.pending))
	copy(out, f.pending)
	return out, nil
}

func (f *fakePickStore) UpdatePickSettlement(pickID uint, outcome, reason string, settledAt time.Time) error {
	if f.updates == nil {
		f.updates = make(map[uint]string)
	}
	f.updates[pickID] = outcome

	remaining := f.pending[:0]
	for _, pick := range f.pending {
		if pick.ID != pickID {
			remaining = append(remaining, pick)
		}
	}
	f.pending = remaining
	return nil
}

func (f *fakePickStore) AppendSettlementRecord(record *models.SettlementRecord) error {
	f.records = append(f.records, record)
	return nil
}

type fakeStatFetcher struct {
	stats []models.PlayerRoundStat
	err   error
	calls int
}

func (f *fakeStatFetcher) FetchTournamentStats(t models.Tournament) ([]models.PlayerRoundStat, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.stats, nil
}

func twoWayMatchup(id uint, round int, p1, p2 int) models.Matchup {
	return models.Matchup{
		ID:          id,
		Round:       round,
		Type:        models.MatchupTwoWay,
		Player1ID:   p1,
		Player1Name: "Player A",
		Player2ID:   p2,
		Player2Name: "Player B",
	}
}

func completeStat(playerID, round, score int) models.PlayerRoundStat {
	s := score
	return models.PlayerRoundStat{
		PlayerID:      playerID,
		Round:         round,
		TodayScore:    &s,
		Thru:          18,
		RoundComplete: true,
	}
}

func newTestOrch(store *fakePickStore, fetcher *fakeStatFetcher) *SettleOrch {
	parlays := NewParlayService(&fakeParlayStore{})
	return NewSettleOrch(nil, store, fetcher, parlays, nil)
}

func TestSettleEvent_UnknownMethod(t *testing.T) {
	orch := newTestOrch(&fakePickStore{}, &fakeStatFetcher{})
	if _, err := orch.SettleEvent(1, "guess"); err == nil {
		t.Fatal("expected error for unknown method")
	}
}

func TestSettleEvent_TournamentNotFoundIsFatal(t *testing.T) {
	store := &fakePickStore{tournamentErr: gorm.ErrRecordNotFound}
	orch := newTestOrch(store, &fakeStatFetcher{})

	_, err := orch.SettleEvent(99, models.MethodManual)
	if err == nil {
		t.Fatal("expected fatal error")
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Errorf("expected wrapped ErrRecordNotFound, got %v", err)
	}
}

func TestSettleEvent_NoPendingPicksIsNoOp(t *testing.T) {
	store := &fakePickStore{tournament: &models.Tournament{ID: 1, Tour: "PGA Tour"}}
	fetcher := &fakeStatFetcher{}
	orch := newTestOrch(store, fetcher)

	result, err := orch.SettleEvent(1, models.MethodAutomatic)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.TotalPicks != 0 || len(result.SettledPicks) != 0 || len(result.Errors) != 0 {
		t.Errorf("expected empty result, got %+v", result)
	}
	if fetcher.calls != 0 {
		t.Errorf("stat feed must not be called with no pending picks, got %d calls", fetcher.calls)
	}
}

func TestSettleEvent_FetchFailureIsFatal(t *testing.T) {
	m := twoWayMatchup(10, 1, 301, 302)
	store := &fakePickStore{
		tournament: &models.Tournament{ID: 1, Tour: "PGA Tour"},
		pending: []models.Pick{
			{ID: 1, MatchupID: m.ID, Matchup: m, SelectedSlot: 1, SettlementStatus: models.SettlementPending},
		},
	}
	fetcher := &fakeStatFetcher{err: errors.New("feed unreachable")}
	orch := newTestOrch(store, fetcher)

	if _, err := orch.SettleEvent(1, models.MethodAutomatic); err == nil {
		t.Fatal("expected fatal error when the feed is unreachable")
	}
	if len(store.updates) != 0 {
		t.Error("no picks may be settled when the feed fails")
	}
}

func TestSettleEvent_PartialMatchupFailureIsolation(t *testing.T) {
	good := twoWayMatchup(10, 1, 301, 302)
	bad := twoWayMatchup(11, 1, 303, 304)

	incomplete := completeStat(304, 1, 0)
	incomplete.Thru = 11
	incomplete.RoundComplete = false

	store := &fakePickStore{
		tournament: &models.Tournament{ID: 1, Tour: "PGA Tour"},
		pending: []models.Pick{
			{ID: 1, MatchupID: good.ID, Matchup: good, SelectedSlot: 1, SettlementStatus: models.SettlementPending},
			{ID: 2, MatchupID: good.ID, Matchup: good, SelectedSlot: 2, SettlementStatus: models.SettlementPending},
			{ID: 3, MatchupID: bad.ID, Matchup: bad, SelectedSlot: 1, SettlementStatus: models.SettlementPending},
		},
	}
	fetcher := &fakeStatFetcher{stats: []models.PlayerRoundStat{
		completeStat(301, 1, -5),
		completeStat(302, 1, -2),
		completeStat(303, 1, -4),
		incomplete,
	}}
	orch := newTestOrch(store, fetcher)

	result, err := orch.SettleEvent(1, models.MethodAutomatic)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if result.TotalPicks != 3 {
		t.Errorf("expected 3 total picks, got %d", result.TotalPicks)
	}
	if len(result.SettledPicks) != 2 {
		t.Fatalf("expected the resolvable matchup's 2 picks settled, got %d", len(result.SettledPicks))
	}
	if len(result.Errors) != 1 {
		t.Fatalf("expected exactly 1 matchup error, got %v", result.Errors)
	}
	if !strings.Contains(result.Errors[0], "matchup 11") {
		t.Errorf("expected error naming matchup 11, got %q", result.Errors[0])
	}

	if store.updates[1] != models.OutcomeWin {
		t.Errorf("pick 1: expected win, got %s", store.updates[1])
	}
	if store.updates[2] != models.OutcomeLoss {
		t.Errorf("pick 2: expected loss, got %s", store.updates[2])
	}
	if _, settled := store.updates[3]; settled {
		t.Error("pick 3 belongs to the failing matchup and must stay pending")
	}

	if len(store.records) != 2 {
		t.Fatalf("expected 2 settlement records, got %d", len(store.records))
	}
	for _, record := range store.records {
		if record.RunID != result.RunID {
			t.Errorf("record for pick %d missing the run id", record.PickID)
		}
		if record.Method != models.MethodAutomatic {
			t.Errorf("record for pick %d: expected automatic method, got %s", record.PickID, record.Method)
		}
		if record.StatSnapshot == "" {
			t.Errorf("record for pick %d missing stat snapshot", record.PickID)
		}
	}
}

func TestSettleEvent_RerunIsIdempotent(t *testing.T) {
	m := twoWayMatchup(10, 1, 301, 302)
	store := &fakePickStore{
		tournament: &models.Tournament{ID: 1, Tour: "PGA Tour"},
		pending: []models.Pick{
			{ID: 1, MatchupID: m.ID, Matchup: m, SelectedSlot: 1, SettlementStatus: models.SettlementPending},
			{ID: 2, MatchupID: m.ID, Matchup: m, SelectedSlot: 2, SettlementStatus: models.SettlementPending},
		},
	}
	fetcher := &fakeStatFetcher{stats: []models.PlayerRoundStat{
		completeStat(301, 1, -5),
		completeStat(302, 1, -2),
	}}
	orch := newTestOrch(store, fetcher)

	first, err := orch.SettleEvent(1, models.MethodAutomatic)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(first.SettledPicks) != 2 {
		t.Fatalf("expected 2 settled picks on first run, got %d", len(first.SettledPicks))
	}

	second, err := orch.SettleEvent(1, models.MethodAutomatic)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if second.TotalPicks != 0 || len(second.SettledPicks) != 0 {
		t.Errorf("expected empty second run, got %+v", second)
	}
	if len(store.records) != 2 {
		t.Errorf("expected no duplicate settlement records, got %d", len(store.records))
	}
	if fetcher.calls != 1 {
		t.Errorf("second run must not hit the feed, got %d calls", fetcher.calls)
	}
}

func TestSettleEvent_WithdrawalVoidsEveryPickInMatchup(t *testing.T) {
	m := twoWayMatchup(10, 1, 301, 302)
	withdrawn := completeStat(302, 1, -2)
	withdrawn.Withdrawn = true
	withdrawn.Position = "WD"

	store := &fakePickStore{
		tournament: &models.Tournament{ID: 1, Tour: "PGA Tour"},
		pending: []models.Pick{
			{ID: 1, MatchupID: m.ID, Matchup: m, SelectedSlot: 1, SettlementStatus: models.SettlementPending},
			{ID: 2, MatchupID: m.ID, Matchup: m, SelectedSlot: 2, SettlementStatus: models.SettlementPending},
		},
	}
	fetcher := &fakeStatFetcher{stats: []models.PlayerRoundStat{
		completeStat(301, 1, -5), // would be the clear winner
		withdrawn,
	}}
	orch := newTestOrch(store, fetcher)

	result, err := orch.SettleEvent(1, models.MethodManual)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(result.SettledPicks) != 2 {
		t.Fatalf("expected both picks settled, got %d", len(result.SettledPicks))
	}
	for pickID, outcome := range store.updates {
		if outcome != models.OutcomeVoid {
			t.Errorf("pick %d: expected void, got %s", pickID, outcome)
		}
	}
}
