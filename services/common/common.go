package common

import (
	"fairwayBook/models"
	"fmt"
	"net/http"
	"os"
	"strconv"

	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// LogError writes an error to the log and to the error_logs table so
// operators can see failures without shell access.
func LogError(db *gorm.DB, source string, err error) {
	log.WithField("source", source).Error(err)

	errLog := models.ErrorLog{
		Source:  source,
		Message: fmt.Sprintf("%v", err),
	}
	db.Create(&errLog)
}

func FormatOdds(odds float64) string {
	response := ""

	if odds == float64(int(odds)) {
		response = strconv.Itoa(int(odds))
	} else {
		response = fmt.Sprintf("%.1f", odds)
	}

	if odds > 0 {
		return fmt.Sprintf("+%s", response)
	}
	return response
}

// DecimalOdds converts American odds to a decimal multiplier
// (e.g. +150 -> 2.5, -110 -> 1.909...).
func DecimalOdds(odds int) float64 {
	if odds > 0 {
		return (float64(odds) / 100.0) + 1.0
	}
	return (100.0 / float64(-odds)) + 1.0
}

// CalculateParlayOddsMultiplier calculates the combined odds multiplier for a parlay
// Takes a slice of odds (as integers in American format) and returns the multiplier
func CalculateParlayOddsMultiplier(oddsList []int) float64 {
	if len(oddsList) == 0 {
		return 1.0
	}

	multiplier := 1.0
	for _, odds := range oddsList {
		multiplier *= DecimalOdds(odds)
	}

	return multiplier
}

// CalculateParlayPayout calculates the payout for a parlay given the stake and odds multiplier
func CalculateParlayPayout(stake int, oddsMultiplier float64) float64 {
	return float64(stake) * oddsMultiplier
}

// ParseScore parses a score-to-par string from the feed ("E", "-4", "+2").
// Returns ok=false for empty or unparseable values.
func ParseScore(s string) (int, bool) {
	if s == "" || s == "-" {
		return 0, false
	}
	if s == "E" || s == "e" {
		return 0, true
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, false
	}
	return n, true
}

// RapidGolfWrapper performs an authenticated GET against the golf feed.
func RapidGolfWrapper(requestUrl string) (*http.Response, error) {
	feedKey := os.Getenv("GOLF_FEED_TOKEN")
	if feedKey == "" {
		return nil, fmt.Errorf("GOLF_FEED_TOKEN not set in environment variables")
	}

	client := &http.Client{}
	req, err := http.NewRequest("GET", requestUrl, nil)
	if err != nil {
		return nil, err
	}

	req.Header.Add("X-Api-Key", feedKey)
	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode != 200 {
		resp.Body.Close()
		return nil, fmt.Errorf("golf feed returned status %d", resp.StatusCode)
	}
	return resp, nil
}
