package station

import (
	"strings"

	"github.com/bbernstein/meetpoint/backend-go/internal/models"
)

// stationSuffix marks a place name as a station
const stationSuffix = "駅"

// MaxPredictions caps the filtered autocomplete list
const MaxPredictions = 10

var stationTypes = map[string]struct{}{
	"train_station":      {},
	"subway_station":     {},
	"transit_station":    {},
	"light_rail_station": {},
}

// Words that show a 駅-named place is a shop, office or building rather than the station itself
var excludeWords = []string{"店", "店舗", "支店", "営業所", "ショッピング", "モール", "ビル", "タワー"}

// NormalizeQuery appends 駅 unless the input already contains it
func NormalizeQuery(input string) string {
	if strings.Contains(input, stationSuffix) {
		return input
	}
	return input + stationSuffix
}

// HasStationType reports whether any of the upstream place types is a station type
func HasStationType(types []string) bool {
	for _, t := range types {
		if _, ok := stationTypes[t]; ok {
			return true
		}
	}
	return false
}

// LooksLikeStation applies the name rule: contains 駅 and none of the exclusion words
func LooksLikeStation(description string) bool {
	if !strings.Contains(description, stationSuffix) {
		return false
	}
	for _, w := range excludeWords {
		if strings.Contains(description, w) {
			return false
		}
	}
	return true
}

// FilterPredictions keeps likely stations: type matches first, then name matches,
// each group in upstream order, truncated to MaxPredictions
func FilterPredictions(predictions []models.Prediction) []models.Prediction {
	typed := make([]models.Prediction, 0, len(predictions))
	named := make([]models.Prediction, 0, len(predictions))

	for _, p := range predictions {
		switch {
		case HasStationType(p.Types):
			typed = append(typed, p)
		case LooksLikeStation(p.Description):
			named = append(named, p)
		}
	}

	result := append(typed, named...)
	if len(result) > MaxPredictions {
		result = result[:MaxPredictions]
	}
	return result
}
