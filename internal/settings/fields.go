package settings

import (
	"fmt"
	"sort"
	"strconv"
)

// Field name registry for the settings CLI: maps the user-facing
// setting names onto typed reads and writes.

// Kind is the value type of a settings field.
type Kind int

const (
	KindInt Kind = iota
	KindBool
)

// Field describes one tunable setting.
type Field struct {
	Name string
	Kind Kind
	Help string
	get  func(Settings) string
	set  func(*Settings, string) error
}

var fields = []Field{
	intField("kick-goal", "Daily kick goal", func(s *Settings) *int { return &s.KickGoal }),
	intField("pee-goal", "Daily wet diaper goal", func(s *Settings) *int { return &s.PeeGoal }),
	intField("poop-goal", "Daily dirty diaper goal", func(s *Settings) *int { return &s.PoopGoal }),
	intField("feeding-goal", "Daily feeding goal", func(s *Settings) *int { return &s.FeedingGoal }),
	intField("feeding-ml-increment", "Step size for feed amounts (ml)", func(s *Settings) *int { return &s.FeedingMlIncrement }),
	boolField("feeding-log-amount", "Log feed amounts in ml", func(s *Settings) *bool { return &s.FeedingLogAmount }),
	boolField("feeding-separate-sections", "Show breast/formula separately", func(s *Settings) *bool { return &s.FeedingSeparateSections }),
	boolField("pee-enabled", "Track wet diapers", func(s *Settings) *bool { return &s.PeeEnabled }),
	boolField("poop-enabled", "Track dirty diapers", func(s *Settings) *bool { return &s.PoopEnabled }),
	boolField("breast-enabled", "Track breast feeds", func(s *Settings) *bool { return &s.BreastFeedEnabled }),
	boolField("formula-enabled", "Track formula feeds", func(s *Settings) *bool { return &s.FormulaFeedEnabled }),
}

// Fields returns all settings fields sorted by name.
func Fields() []Field {
	out := make([]Field, len(fields))
	copy(out, fields)
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// Lookup finds a field by name.
func Lookup(name string) (Field, bool) {
	for _, f := range fields {
		if f.Name == name {
			return f, true
		}
	}
	return Field{}, false
}

// Value renders the field's current value.
func (f Field) Value(s Settings) string {
	return f.get(s)
}

// Apply parses raw and writes it into the settings.
func (f Field) Apply(s *Settings, raw string) error {
	return f.set(s, raw)
}

func intField(name, help string, ref func(*Settings) *int) Field {
	return Field{
		Name: name,
		Kind: KindInt,
		Help: help,
		get: func(s Settings) string {
			return strconv.Itoa(*ref(&s))
		},
		set: func(s *Settings, raw string) error {
			v, err := strconv.Atoi(raw)
			if err != nil {
				return fmt.Errorf("%s wants a number, got %q", name, raw)
			}
			if v <= 0 {
				return fmt.Errorf("%s must be positive, got %d", name, v)
			}
			*ref(s) = v
			return nil
		},
	}
}

func boolField(name, help string, ref func(*Settings) *bool) Field {
	return Field{
		Name: name,
		Kind: KindBool,
		Help: help,
		get: func(s Settings) string {
			return strconv.FormatBool(*ref(&s))
		},
		set: func(s *Settings, raw string) error {
			v, err := strconv.ParseBool(raw)
			if err != nil {
				return fmt.Errorf("%s wants true or false, got %q", name, raw)
			}
			*ref(s) = v
			return nil
		},
	}
}
