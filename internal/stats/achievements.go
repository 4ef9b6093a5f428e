package stats

import (
	"fmt"

	"bicingwrapped/pkg/contracts/domain"
)

// buildAchievements evaluates the fixed threshold-based flags against an
// otherwise complete snapshot. Each flag carries a human-readable progress
// indicator toward its threshold.
func buildAchievements(s *domain.StatsSnapshot, genElecNew int, hourCounts [24]int) []domain.Achievement {
	explorerProgress := s.UniqueBikes
	if explorerProgress > 50 {
		explorerProgress = 50
	}

	veteranUnlocked := s.MinBikeID > 0 && s.MinBikeID < 1000
	veteranProgress := "Pendent"
	if veteranUnlocked {
		veteranProgress = "Trobat"
	}

	futuristProgress := "Pendent"
	if genElecNew > 0 {
		futuristProgress = "Desbloquejat"
	}

	loyalProgress := s.RepeatedBikes
	if loyalProgress > 10 {
		loyalProgress = 10
	}

	marathonUnlocked := false
	marathonProgress := "0m"
	if len(s.LongestTrips) > 0 {
		longest := s.LongestTrips[0].DurationMinutes
		marathonUnlocked = longest >= 45
		marathonProgress = fmt.Sprintf("%dm / 45m", longest)
	}

	nightTrips := 0
	for hour := 0; hour < 5; hour++ {
		nightTrips += hourCounts[hour]
	}
	nightowlProgress := "Mai"
	if nightTrips > 0 {
		nightowlProgress = "Sí"
	}

	return []domain.Achievement{
		{
			ID: "explorer", Icon: "🌍", Title: "Explorador",
			Desc:     "Utilitzar 50 bicis diferents",
			Unlocked: s.UniqueBikes >= 50,
			Progress: fmt.Sprintf("%d/50", explorerProgress),
		},
		{
			ID: "veteran", Icon: "🦖", Title: "Veterà",
			Desc:     "Trobar una bici < ID 1000",
			Unlocked: veteranUnlocked,
			Progress: veteranProgress,
		},
		{
			ID: "futurist", Icon: "⚡", Title: "Futurista",
			Desc:     "Provar la nova flota (IDs +8000)",
			Unlocked: genElecNew > 0,
			Progress: futuristProgress,
		},
		{
			ID: "loyal", Icon: "🐕", Title: "Fidel",
			Desc:     "Repetir bici 10+ vegades",
			Unlocked: s.RepeatedBikes > 10,
			Progress: fmt.Sprintf("%d/10", loyalProgress),
		},
		{
			ID: "marathon", Icon: "🏃", Title: "Marató",
			Desc:     "Un viatge > 45 minuts",
			Unlocked: marathonUnlocked,
			Progress: marathonProgress,
		},
		{
			ID: "nightowl", Icon: "🦉", Title: "Nocturn",
			Desc:     "Viatjar de matinada (0-5h)",
			Unlocked: nightTrips > 0,
			Progress: nightowlProgress,
		},
	}
}
