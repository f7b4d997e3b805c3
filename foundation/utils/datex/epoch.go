// File: epoch.go
// Title: Epoch Conversion
// Description: Conversion between Unix epoch seconds/milliseconds and canonical
//              UTC date-times.
// Author: msto63
// Version: v0.2.0
// Created: 2025-01-25
// Modified: 2026-10-12
//
// Change History:
// - 2025-01-25 v0.1.0: Unix and UnixMilli helpers on time.Time
// - 2026-10-12 v0.2.0: Canonical UTC date-time conversion with range checks

package datex

import (
	"time"
)

// Bounds of the epoch values whose UTC rendering is a canonical date-time
var (
	minEpochSec = time.Date(MinYear, time.January, 1, 0, 0, 0, 0, time.UTC).Unix()
	maxEpochSec = time.Date(MaxYear, time.December, 31, 23, 59, 59, 0, time.UTC).Unix()
)

// EpochSecToUTC renders epoch seconds as YYYYMMDD HHmmss in UTC
func EpochSecToUTC(sec int64) (string, error) {
	if sec < minEpochSec || sec > maxEpochSec {
		return "", invalidInput("EpochSecToUTC", sec)
	}
	out, _ := formatDateTime(time.Unix(sec, 0).UTC(), false)
	return out, nil
}

// EpochMilliSecToUTC renders epoch milliseconds as YYYYMMDD HHmmss.SSS in UTC
func EpochMilliSecToUTC(ms int64) (string, error) {
	if ms < minEpochSec*1000 || ms > maxEpochSec*1000+999 {
		return "", invalidInput("EpochMilliSecToUTC", ms)
	}
	out, _ := formatDateTime(time.UnixMilli(ms).UTC(), true)
	return out, nil
}

// UTCToEpochSec converts a YYYYMMDD HHmmss UTC date-time to epoch seconds
func UTCToEpochSec(s string) (int64, error) {
	return defaultConverter.UTCToEpochSec(s)
}

// UTCToEpochMilliSec converts a YYYYMMDD HHmmss or YYYYMMDD HHmmss.SSS UTC
// date-time to epoch milliseconds
func UTCToEpochMilliSec(s string) (int64, error) {
	return defaultConverter.UTCToEpochMilliSec(s)
}
