package dates

import (
	"strings"
	"time"

	"github.com/markusmobius/go-dateparser"

	"github.com/nestlingapp/nestling/internal/errors"
)

// ParseDayArg resolves a user-supplied day argument to a DayKey.
// Accepts the literal YYYY-MM-DD form, the shortcuts "today" and
// "yesterday", and natural language such as "last tuesday".
func ParseDayArg(input string) (DayKey, error) {
	input = strings.TrimSpace(input)
	if input == "" || strings.EqualFold(input, "today") {
		return Today(), nil
	}
	if strings.EqualFold(input, "yesterday") {
		return KeyFor(time.Now().AddDate(0, 0, -1)), nil
	}

	if key := DayKey(input); len(input) == len(Layout) && key.Valid() {
		return key, nil
	}

	cfg := &dateparser.Configuration{
		CurrentTime: time.Now(),
	}
	result, err := dateparser.Parse(cfg, input)
	if err != nil {
		return "", errors.NewUserErrorWithField("day", input,
			"Could not understand that date",
			"Use YYYY-MM-DD, 'today', 'yesterday', or something like 'last tuesday'")
	}
	return KeyFor(result.Time), nil
}
