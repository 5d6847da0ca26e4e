package intelligence

const fallbackIdentityStatement = "I am someone who takes consistent action toward my goals."

var fallbackHabitTips = []string{
	"Track your habit completion daily",
	"Use habit stacking to link to existing routines",
	"Make your environment support your habits",
}

// FallbackHabitTips returns a fresh copy of the fixed tip list.
func FallbackHabitTips() []string {
	return append([]string(nil), fallbackHabitTips...)
}
