package usecase

import (
	"fmt"
	"strconv"
	"strings"
)

const (
	ActivityIDPrefix = "ACT"
	GoalIDPrefix     = "GOAL"
	HabitIDPrefix    = "HAB"
)

// NextHumanID scans the existing PREFIX-NNNN identifiers of one (user, kind)
// and returns the next one, zero-padded to four digits. Malformed or
// non-numeric suffixes count as zero. Callers run this inside the same atomic
// unit as the insert that uses the result, otherwise two concurrent creations
// could draw the same suffix.
func NextHumanID(prefix string, existing []string) string {
	max := 0
	for _, id := range existing {
		rest, ok := strings.CutPrefix(id, prefix+"-")
		if !ok {
			continue
		}
		n, err := strconv.Atoi(rest)
		if err != nil || n < 0 {
			n = 0
		}
		if n > max {
			max = n
		}
	}
	return fmt.Sprintf("%s-%04d", prefix, max+1)
}
