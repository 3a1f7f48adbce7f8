package allocation

import (
	"time"

	"github.com/himmu2625/baithkaGhar-sub018/models"

	"golang.org/x/exp/slices"
)

// recentMaintenanceWindow is how far back a maintenance visit still earns
// the freshness bonus.
const recentMaintenanceWindow = 30 * 24 * time.Hour

// ScoreRoom computes the additive preference-match score for one candidate.
// Pure; identical inputs always produce identical scores.
func ScoreRoom(room *models.Room, req *StayRequest, now time.Time) float64 {
	score := 0.0

	if p := req.Preferences; p != nil {
		if p.Floor != nil && room.Floor == *p.Floor {
			score += 10
		}
		if p.Wing != "" && room.Wing == p.Wing {
			score += 8
		}
		if len(p.Views) > 0 {
			have := map[string]bool{}
			for _, v := range room.ViewTagList() {
				have[v] = true
			}
			for _, want := range p.Views {
				if have[want] {
					score += 5
				}
			}
		}
	}

	switch room.Condition {
	case models.ConditionExcellent:
		score += 15
	case models.ConditionGood:
		score += 10
	case models.ConditionFair:
		score += 5
	}

	switch room.HousekeepingStatus {
	case models.HousekeepingInspected:
		score += 10
	case models.HousekeepingClean:
		score += 8
	case models.HousekeepingInProgress:
		score += 3
	}

	if room.OpenMaintenanceIssues > 0 {
		score -= 20
	}
	if room.OpenHousekeepingIssues > 0 {
		score -= 10
	}

	score += room.GuestRating * 2

	// a missing maintenance date counts as "not recent"
	if room.LastMaintainedAt != nil && now.Sub(*room.LastMaintainedAt) <= recentMaintenanceWindow {
		score += 5
	}

	return score
}

// RankCandidates orders candidates by descending score. The sort is stable,
// so ties keep the finder's floor/room-number order. Fewer than two
// candidates skip the scoring pass entirely.
func RankCandidates(candidates []models.Room, req *StayRequest, now time.Time) []models.Room {
	if len(candidates) < 2 {
		return candidates
	}
	type scored struct {
		room  models.Room
		score float64
	}
	entries := make([]scored, 0, len(candidates))
	for i := range candidates {
		entries = append(entries, scored{room: candidates[i], score: ScoreRoom(&candidates[i], req, now)})
	}
	slices.SortStableFunc(entries, func(a, b scored) int {
		switch {
		case a.score > b.score:
			return -1
		case a.score < b.score:
			return 1
		}
		return 0
	})
	ranked := make([]models.Room, 0, len(entries))
	for _, e := range entries {
		ranked = append(ranked, e.room)
	}
	return ranked
}

// SelectOptimal picks the best candidate: the head of the ranked order.
func SelectOptimal(candidates []models.Room, req *StayRequest, now time.Time) *models.Room {
	ranked := RankCandidates(candidates, req, now)
	if len(ranked) == 0 {
		return nil
	}
	return &ranked[0]
}
