package domain

import "fmt"

// Framework keys form a closed catalog; there is no plugin mechanism.
const (
	FrameworkEisenhower   = "eisenhower"
	FrameworkTimeboxing   = "timeboxing"
	FrameworkImpactEffort = "impact_effort"
	FrameworkKanban       = "kanban"
	FrameworkStopDoing    = "stop_doing"
	FrameworkPareto       = "pareto"
)

// Framework is one catalog entry: display metadata plus the payload
// schema its per-item data accepts.
type Framework struct {
	Key         string              `json:"key"`
	Name        string              `json:"name"`
	Author      string              `json:"author"`
	Description string              `json:"description"`
	Icon        string              `json:"icon"`
	Color       string              `json:"color"`
	Fields      map[string][]string `json:"fields"`
}

var frameworkCatalog = []Framework{
	{
		Key:         FrameworkEisenhower,
		Name:        "Eisenhower Matrix",
		Author:      "Dwight D. Eisenhower",
		Description: "Sort tasks by urgent vs important to stop treating everything like an emergency.",
		Icon:        "📋",
		Color:       "#6366f1",
		Fields:      map[string][]string{"quadrant": {"do", "schedule", "delegate", "eliminate"}},
	},
	{
		Key:         FrameworkTimeboxing,
		Name:        "Timeboxing",
		Author:      "James Martin",
		Description: "Give tasks a fixed time limit so they can’t expand and swallow your whole week.",
		Icon:        "⏱️",
		Color:       "#f59e0b",
		// minutes is an open non-negative number; an empty value list marks it numeric
		Fields: map[string][]string{"minutes": nil, "status": {"idle", "running", "done"}},
	},
	{
		Key:         FrameworkImpactEffort,
		Name:        "Impact / Effort Matrix",
		Author:      "Lean / Agile practices",
		Description: "Rank tasks by impact vs effort to pick the work that actually moves things forward.",
		Icon:        "📊",
		Color:       "#10b981",
		Fields:      map[string][]string{"quadrant": {"quick_wins", "big_bets", "fill_ins", "money_pit"}},
	},
	{
		Key:         FrameworkKanban,
		Name:        "Kanban Board",
		Author:      "Taiichi Ohno",
		Description: "Track tasks through stages so you can see what’s stuck.",
		Icon:        "📌",
		Color:       "#3b82f6",
		Fields:      map[string][]string{"column": {"backlog", "doing", "review", "done"}},
	},
	{
		Key:         FrameworkStopDoing,
		Name:        "Stop Doing List",
		Author:      "Jim Collins",
		Description: "Win by removing commitments instead of stacking more on top.",
		Icon:        "🚫",
		Color:       "#ef4444",
		Fields:      map[string][]string{"category": {"keep", "delegate", "stop"}},
	},
	{
		Key:         FrameworkPareto,
		Name:        "80/20 Principle",
		Author:      "Vilfredo Pareto",
		Description: "Focus on the 20% of inputs that drive 80% of results.",
		Icon:        "🎯",
		Color:       "#8b5cf6",
		Fields:      map[string][]string{"category": {"vital_few", "trivial_many"}},
	},
}

// FrameworkCatalog returns the fixed catalog in stable order.
func FrameworkCatalog() []Framework {
	out := make([]Framework, len(frameworkCatalog))
	copy(out, frameworkCatalog)
	return out
}

// FrameworkByKey looks up a catalog entry.
func FrameworkByKey(key string) (Framework, bool) {
	for _, f := range frameworkCatalog {
		if f.Key == key {
			return f, true
		}
	}
	return Framework{}, false
}

// ValidFrameworkKey reports whether key names a catalog entry.
func ValidFrameworkKey(key string) bool {
	_, ok := FrameworkByKey(key)
	return ok
}

// ValidateFrameworkPayload checks a partial per-item payload against the
// schema of the given framework key. Unknown keys fail outright; unknown
// fields and out-of-enum values are rejected.
func ValidateFrameworkPayload(key string, payload map[string]any) error {
	fw, ok := FrameworkByKey(key)
	if !ok {
		return fmt.Errorf("unknown framework %q", key)
	}
	for field, value := range payload {
		allowed, ok := fw.Fields[field]
		if !ok {
			return fmt.Errorf("framework %q does not accept field %q", key, field)
		}
		if allowed == nil {
			// numeric field; JSON numbers decode as float64
			n, ok := value.(float64)
			if !ok || n < 0 {
				return fmt.Errorf("field %q of framework %q must be a non-negative number", field, key)
			}
			continue
		}
		s, ok := value.(string)
		if !ok {
			return fmt.Errorf("field %q of framework %q must be a string", field, key)
		}
		valid := false
		for _, v := range allowed {
			if v == s {
				valid = true
				break
			}
		}
		if !valid {
			return fmt.Errorf("value %q is not valid for field %q of framework %q", s, field, key)
		}
	}
	return nil
}
