package task

// Milestone is a completed-count threshold that earns a one-time congratulation.
type Milestone struct {
	Count   int
	Message string
}

var milestones = []Milestone{
	{Count: 5, Message: "🎉 Great start! You've completed 5 tasks!"},
	{Count: 10, Message: "🚀 Amazing! 10 tasks completed - you're on fire!"},
	{Count: 25, Message: "🌟 Incredible! 25 tasks done - you're a productivity superstar!"},
	{Count: 50, Message: "🏆 Outstanding! 50 tasks completed - you're unstoppable!"},
	{Count: 100, Message: "👑 Legendary! 100 tasks completed - you're the task master!"},
}

// Milestones returns the fixed milestone table in ascending order.
func Milestones() []Milestone {
	out := make([]Milestone, len(milestones))
	copy(out, milestones)
	return out
}

// milestoneFor returns the milestone whose count equals completed exactly.
func milestoneFor(completed int) (Milestone, bool) {
	for _, m := range milestones {
		if m.Count == completed {
			return m, true
		}
	}
	return Milestone{}, false
}
