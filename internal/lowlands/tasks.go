package lowlands

// Item is a reward collected by completing a task
type Item string

const (
	WarmSocks      Item = "warmSocks"
	SunlightRing   Item = "sunlightRing"
	SparkleBuff    Item = "sparkleBuff"
	ComfortBlanket Item = "comfortBlanket"
	MorningCoffee  Item = "morningCoffee"
	FreshClothes   Item = "freshClothes"
)

// Task is one small self-care step
type Task struct {
	ID                 string `json:"id"`
	Title              string `json:"title"`
	Description        string `json:"description"`
	Reward             Item   `json:"reward"`
	FogReduction       int    `json:"fogReduction"`
	BrightnessIncrease int    `json:"brightnessIncrease"`
	Encouragement      string `json:"encouragement"`
}

var tasks = []Task{
	{
		ID:                 "get-out-of-bed",
		Title:              "Get Out of Bed",
		Description:        "Take that first brave step out of bed",
		Reward:             ComfortBlanket,
		FogReduction:       15,
		BrightnessIncrease: 20,
		Encouragement:      "You did it! That first step is always the hardest. Your world is already getting brighter! 🌅",
	},
	{
		ID:                 "drink-water",
		Title:              "Drink Water",
		Description:        "Hydrate your body and mind",
		Reward:             SunlightRing,
		FogReduction:       10,
		BrightnessIncrease: 15,
		Encouragement:      "Wonderful! You're taking care of yourself. Feel that gentle energy flowing through you! 💧",
	},
	{
		ID:                 "brush-teeth",
		Title:              "Brush Teeth",
		Description:        "Fresh start for a fresh day",
		Reward:             SparkleBuff,
		FogReduction:       12,
		BrightnessIncrease: 18,
		Encouragement:      "Sparkling! You're building momentum one small step at a time. You're amazing! ✨",
	},
	{
		ID:                 "put-on-socks",
		Title:              "Put On Warm Socks",
		Description:        "Comfort your feet, comfort your soul",
		Reward:             WarmSocks,
		FogReduction:       8,
		BrightnessIncrease: 12,
		Encouragement:      "Cozy! Sometimes the smallest comforts make the biggest difference. You're worth this care! 🧦",
	},
	{
		ID:                 "make-coffee",
		Title:              "Make Coffee/Tea",
		Description:        "Warm beverage for your spirit",
		Reward:             MorningCoffee,
		FogReduction:       10,
		BrightnessIncrease: 15,
		Encouragement:      "Perfect! Taking time for simple pleasures is an act of self-love. Enjoy every sip! ☕",
	},
	{
		ID:                 "change-clothes",
		Title:              "Change Clothes",
		Description:        "Fresh clothes, fresh perspective",
		Reward:             FreshClothes,
		FogReduction:       12,
		BrightnessIncrease: 16,
		Encouragement:      "Fresh and renewed! You're transforming your day one choice at a time. So proud of you! 👕",
	},
}

// Tasks returns the checklist in display order
func Tasks() []Task {
	out := make([]Task, len(tasks))
	copy(out, tasks)
	return out
}

// FindTask looks up a task by id
func FindTask(id string) (Task, bool) {
	for _, t := range tasks {
		if t.ID == id {
			return t, true
		}
	}
	return Task{}, false
}
