package location

import "strings"

// UnknownCity is the bucket for names too short to key
const UnknownCity = "기타"

// cityPrefixes are checked in order; the first prefix the name starts with wins
var cityPrefixes = []struct {
	prefix string
	city   string
}{
	{"동서울", "서울"},
	{"서울", "서울"},
	{"부산", "부산"},
	{"대구", "대구"},
	{"인천", "인천"},
	{"광주", "광주"},
	{"대전", "대전"},
	{"울산", "울산"},
	{"세종", "세종"},
}

// Normalize maps free-text city or terminal names to a canonical city key.
// Normalize(Normalize(x)) == Normalize(x).
func Normalize(text string) string {
	name := strings.TrimSpace(text)

	for _, rule := range cityPrefixes {
		if strings.HasPrefix(name, rule.prefix) {
			return rule.city
		}
	}

	runes := []rune(name)
	if len(runes) < 2 {
		return UnknownCity
	}
	// "a b" would key as "a " and re-normalize differently
	key := strings.TrimSpace(string(runes[:2]))
	if len([]rune(key)) < 2 {
		return UnknownCity
	}
	return key
}
