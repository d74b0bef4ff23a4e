package core

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/ZanzyTHEbar/errbuilder-go"
)

const DefaultDailyOffset = "00:00"

// ParseDailyOffset reads an "HH:MM" UTC time of day.
func ParseDailyOffset(value string) (time.Duration, error) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		trimmed = DefaultDailyOffset
	}
	parts := strings.Split(trimmed, ":")
	if len(parts) != 2 {
		return 0, invalidOffset(value)
	}
	hour, err := strconv.Atoi(parts[0])
	if err != nil || hour < 0 || hour > 23 {
		return 0, invalidOffset(value)
	}
	minute, err := strconv.Atoi(parts[1])
	if err != nil || minute < 0 || minute > 59 {
		return 0, invalidOffset(value)
	}
	return time.Duration(hour)*time.Hour + time.Duration(minute)*time.Minute, nil
}

// NextDailyRun returns the first instant strictly after now at the given
// offset from UTC midnight.
func NextDailyRun(now time.Time, offset time.Duration) time.Time {
	now = now.UTC()
	midnight := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	next := midnight.Add(offset)
	if !next.After(now) {
		next = midnight.AddDate(0, 0, 1).Add(offset)
	}
	return next
}

// CronExpression renders the offset as a five-field daily cron line.
func CronExpression(offset time.Duration) string {
	hour := int(offset / time.Hour)
	minute := int((offset % time.Hour) / time.Minute)
	return fmt.Sprintf("%d %d * * *", minute, hour)
}

func invalidOffset(value string) error {
	return errbuilder.New().
		WithCode(errbuilder.CodeInvalidArgument).
		WithMsg(fmt.Sprintf("invalid daily offset %q, expected HH:MM", value))
}
