package statService

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"fairwayBook/models"
	"fairwayBook/models/external"
	"fairwayBook/services/common"

	log "github.com/sirupsen/logrus"
	"github.com/sony/gobreaker"
)

// TourType is the classification of a tournament's sanctioning tour. It
// selects which upstream feed organization is queried.
type TourType string

const (
	TourPGA       TourType = "pga"
	TourKornFerry TourType = "korn_ferry"
	TourDPWorld   TourType = "dp_world"
	TourLIV       TourType = "liv"
)

// feed organization ids per tour
var tourOrgIDs = map[TourType]string{
	TourPGA:       "1",
	TourKornFerry: "2",
	TourDPWorld:   "3",
	TourLIV:       "4",
}

const defaultFeedURL = "https://golf-leaderboard-data.p.rapidapi.com/v2"

// FetchError is a typed failure from the upstream feed. The orchestrator
// treats it as fatal for the run; retry policy belongs to the caller.
type FetchError struct {
	TournamentID uint
	Tour         TourType
	Err          error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("stat fetch failed for tournament %d (%s): %v", e.TournamentID, e.Tour, e.Err)
}

func (e *FetchError) Unwrap() error { return e.Err }

// ClassifyTour maps a tournament to its tour classification. The declared
// tour field wins; when it is unrecognized we fall back to substring
// matching on the tournament name, defaulting to the main tour.
func ClassifyTour(t models.Tournament) TourType {
	for _, s := range []string{t.Tour, t.Name} {
		switch lower := strings.ToLower(s); {
		case strings.Contains(lower, "korn ferry"):
			return TourKornFerry
		case strings.Contains(lower, "dp world"), strings.Contains(lower, "european tour"):
			return TourDPWorld
		case strings.Contains(lower, "liv"):
			return TourLIV
		case strings.Contains(lower, "pga"):
			return TourPGA
		}
	}
	return TourPGA
}

// StatOrch fetches and normalizes per-player round statistics from the
// tour feed. It is a pure fetch+normalize component: no storage writes,
// no retries.
type StatOrch struct {
	baseURL string
	breaker *gobreaker.CircuitBreaker
}

func NewStatOrch(baseURL string) *StatOrch {
	if baseURL == "" {
		baseURL = defaultFeedURL
	}

	cb := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        "golf-feed",
		MaxRequests: 1,
		Timeout:     60 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 3
		},
		OnStateChange: func(name string, from gobreaker.State, to gobreaker.State) {
			log.WithFields(log.Fields{
				"breaker": name,
				"from":    from.String(),
				"to":      to.String(),
			}).Warn("Feed circuit breaker state change")
		},
	})

	return &StatOrch{baseURL: baseURL, breaker: cb}
}

// FetchTournamentStats returns one normalized PlayerRoundStat per
// (player, round) for the whole tournament, covering historical rounds as
// well as the live one. Failures come back as a *FetchError.
func (o *StatOrch) FetchTournamentStats(t models.Tournament) ([]models.PlayerRoundStat, error) {
	tour := ClassifyTour(t)
	requestUrl := fmt.Sprintf("%s/leaderboard?orgId=%s&tournId=%s&year=%d",
		o.baseURL, tourOrgIDs[tour], t.ExternalID, t.Season)

	result, err := o.breaker.Execute(func() (interface{}, error) {
		resp, err := common.RapidGolfWrapper(requestUrl)
		if err != nil {
			return nil, err
		}
		defer resp.Body.Close()

		var leaderboard external.RapidGolf_Leaderboard
		if err := json.NewDecoder(resp.Body).Decode(&leaderboard); err != nil {
			return nil, fmt.Errorf("error parsing leaderboard json: %v", err)
		}
		return leaderboard, nil
	})
	if err != nil {
		return nil, &FetchError{TournamentID: t.ID, Tour: tour, Err: err}
	}

	leaderboard := result.(external.RapidGolf_Leaderboard)
	return normalizeLeaderboard(t, leaderboard), nil
}

// normalizeLeaderboard converts feed rows into the internal stat shape,
// deduplicated by (player, round). Malformed rows are logged and skipped
// rather than propagated.
func normalizeLeaderboard(t models.Tournament, lb external.RapidGolf_Leaderboard) []models.PlayerRoundStat {
	seen := make(map[[2]int]bool)
	var stats []models.PlayerRoundStat

	for _, row := range lb.Rows {
		playerID, err := strconv.Atoi(row.PlayerID)
		if err != nil || playerID <= 0 {
			log.WithField("playerId", row.PlayerID).Warn("Skipping leaderboard row with malformed player id")
			continue
		}

		name := strings.TrimSpace(row.FirstName + " " + row.LastName)
		pos := common.ParsePosition(row.Position)
		withdrawn := pos.Status == common.StatusWithdrawn || strings.EqualFold(row.Status, "wd")
		total, _ := common.ParseScore(row.Total)

		for _, rnd := range row.Rounds {
			key := [2]int{playerID, rnd.RoundID}
			if rnd.RoundID < 1 || seen[key] {
				continue
			}
			seen[key] = true

			stat := models.PlayerRoundStat{
				PlayerID:     playerID,
				PlayerName:   name,
				TournamentID: t.ID,
				Round:        rnd.RoundID,
				Position:     row.Position,
				TotalScore:   total,
				Withdrawn:    withdrawn,
			}
			if score, ok := common.ParseScore(rnd.ScoreToPar); ok {
				s := score
				stat.TodayScore = &s
			}

			if rnd.RoundID == lb.RoundID {
				stat.Thru = parseThru(row.Thru)
				if stat.TodayScore == nil {
					if score, ok := common.ParseScore(row.CurrentRoundScore); ok {
						s := score
						stat.TodayScore = &s
					}
				}
			} else {
				// historical round, already played in full
				stat.Thru = 18
			}
			stat.RoundComplete = stat.Thru >= 18 || pos.IsFinal()

			stats = append(stats, stat)
		}

		// the live round may not appear in the rounds list yet
		liveKey := [2]int{playerID, lb.RoundID}
		if lb.RoundID >= 1 && !seen[liveKey] {
			seen[liveKey] = true

			stat := models.PlayerRoundStat{
				PlayerID:     playerID,
				PlayerName:   name,
				TournamentID: t.ID,
				Round:        lb.RoundID,
				Position:     row.Position,
				TotalScore:   total,
				Thru:         parseThru(row.Thru),
				Withdrawn:    withdrawn,
			}
			if score, ok := common.ParseScore(row.CurrentRoundScore); ok {
				s := score
				stat.TodayScore = &s
			}
			stat.RoundComplete = stat.Thru >= 18 || pos.IsFinal()

			stats = append(stats, stat)
		}
	}

	return stats
}

func parseThru(s string) int {
	p := strings.ToUpper(strings.TrimSpace(s))
	p = strings.TrimSuffix(p, "*") // asterisk marks a back-nine start
	if p == "F" || p == "FIN" {
		return 18
	}
	n, err := strconv.Atoi(p)
	if err != nil || n < 0 {
		return 0
	}
	return n
}
