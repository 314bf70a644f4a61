package ledger

import (
	"fmt"
	"log"
	"time"

	"pontual.app/pontual/model"
)

// DailyMinutes turns one day's effective punches into worked minutes.
// Only closed intervals count: morning is lunch-out minus clock-in,
// afternoon is clock-out minus lunch-in. A missing end leaves the whole
// interval uncounted. Without a clock-in the day is worth zero.
func DailyMinutes(punches []EffectivePunch) int {
	byKind := make(map[model.Kind]time.Time, len(punches))
	for _, p := range punches {
		byKind[p.Kind] = p.Timestamp
	}

	if _, ok := byKind[model.KindClockIn]; !ok {
		return 0
	}

	total := 0
	total += intervalMinutes(byKind, model.KindClockIn, model.KindLunchOut)
	total += intervalMinutes(byKind, model.KindLunchIn, model.KindClockOut)
	return total
}

func intervalMinutes(byKind map[model.Kind]time.Time, from, to model.Kind) int {
	start, ok := byKind[from]
	if !ok {
		return 0
	}
	end, ok := byKind[to]
	if !ok {
		return 0
	}
	minutes := int(end.Sub(start) / time.Minute)
	if minutes < 0 {
		// out-of-order timestamps, usually from a bad correction
		log.Printf("negative %s-%s interval (%s to %s), counting as zero", from, to, start.Format("15:04"), end.Format("15:04"))
		return 0
	}
	return minutes
}

// Complete reports whether all four kinds were punched.
func Complete(punches []EffectivePunch) bool {
	seen := make(map[model.Kind]bool, len(punches))
	for _, p := range punches {
		seen[p.Kind] = true
	}
	return len(seen) == len(model.Sequence)
}

// FormatMinutes renders worked minutes as HH:MM. Totals over a period can
// exceed 24 hours, so the hour part is not wrapped.
func FormatMinutes(minutes int) string {
	if minutes < 0 {
		minutes = 0
	}
	return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)
}
