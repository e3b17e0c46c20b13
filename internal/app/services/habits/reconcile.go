package habits

import (
	"time"

	"github.com/ascendapp/ascend/internal/app/domain/habit"
)

// Reconcile evaluates every habit's streak against today and returns the
// adjusted records plus the ids whose reset still needs persisting. The pass
// is pure: callers decide whether and how to write the resets back.
//
// A habit with no dated step is left untouched. Zero or one whole calendar
// days since the latest step completion holds the streak; anything older
// zeroes it. Increments never happen here, only on the registration path.
func Reconcile(list []habit.Habit, today time.Time) ([]habit.Habit, []string) {
	out := make([]habit.Habit, len(list))
	copy(out, list)

	var resets []string
	for i := range out {
		latest, ok := out[i].LatestStepCompletion()
		if !ok {
			continue
		}
		if habit.DaysBetween(latest, today) <= 1 {
			continue
		}
		if out[i].Streak != 0 {
			out[i].Streak = 0
			resets = append(resets, out[i].ID)
		}
	}
	return out, resets
}
