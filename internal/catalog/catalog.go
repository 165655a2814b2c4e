// Package catalog holds the built-in exercise list and the picker used to
// add exercises to the selected day.
package catalog

import (
	"sort"
	"strings"
)

type Group string

const (
	Chest     Group = "Chest"
	Arms      Group = "Arms"
	Legs      Group = "Legs"
	Back      Group = "Back"
	Shoulders Group = "Shoulders"
	Cardio    Group = "Cardio"
)

// Groups lists the muscle groups in display order.
var Groups = []Group{Chest, Arms, Legs, Back, Shoulders, Cardio}

var exercises = map[Group][]string{
	Chest: {
		"Bench Press", "Chest Fly", "Incline Bench Press", "Decline Bench Press", "Cable Crossover",
		"Push-Up", "Dumbbell Pullover", "Pec Deck Machine", "Incline Dumbbell Fly", "Dips for Chest",
	},
	Arms: {
		"Bicep Curl", "Tricep Extension", "Hammer Curl", "Skull Crusher", "Preacher Curl",
		"Tricep Dips", "Concentration Curl", "Tricep Kickback", "Cable Curl", "Overhead Tricep Extension",
	},
	Legs: {
		"Squat", "Lunge", "Leg Press", "Leg Extension", "Leg Curl",
		"Calf Raise", "Deadlift", "Step-Up", "Glute Bridge", "Bulgarian Split Squat",
	},
	Back: {
		"Pull Up", "Row", "Deadlift", "Lat Pulldown", "Back Extension",
		"T-Bar Row", "Seated Cable Row", "Bent Over Row", "Single-Arm Dumbbell Row", "Chin-Up",
	},
	Shoulders: {
		"Shoulder Press", "Lateral Raise", "Front Raise", "Reverse Fly", "Upright Row",
		"Arnold Press", "Shrugs", "Face Pull", "Single-Arm Dumbbell Press", "Cable Lateral Raise",
	},
	Cardio: {
		"Running", "Cycling", "Jump Rope", "Rowing", "Swimming",
		"Boxing", "Burpees", "Stair Climber", "High Knees", "Mountain Climbers",
	},
}

// ParseGroup matches name case-insensitively against the known groups.
func ParseGroup(name string) (Group, bool) {
	for _, g := range Groups {
		if strings.EqualFold(string(g), strings.TrimSpace(name)) {
			return g, true
		}
	}
	return "", false
}

// Exercises returns a copy of the group's exercises; nil for unknown groups.
func Exercises(g Group) []string {
	list, ok := exercises[g]
	if !ok {
		return nil
	}
	out := make([]string, len(list))
	copy(out, list)
	return out
}

// Search returns the distinct exercise names containing query, ignoring
// case, sorted. An empty query matches nothing.
func Search(query string) []string {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return nil
	}
	seen := map[string]struct{}{}
	var out []string
	for _, g := range Groups {
		for _, name := range exercises[g] {
			if _, dup := seen[name]; dup {
				continue
			}
			if strings.Contains(strings.ToLower(name), q) {
				seen[name] = struct{}{}
				out = append(out, name)
			}
		}
	}
	sort.Strings(out)
	return out
}
