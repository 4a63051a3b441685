package entity

// Story is one round of the game. Players only ever see Title and Riddle.
type Story struct {
	Title    string `json:"title"`
	Riddle   string `json:"riddle"`
	Solution string `json:"solution"`
}

// DefaultStory - the built-in riddle every new room starts with.
func DefaultStory() Story {
	return Story{
		Title:    "A törött gyufa",
		Riddle:   "Egy ember fekszik holtan a mezőn, kezében egy törött gyufaszállal. Nincs más nyom. Mi történt?",
		Solution: "Hőlégballonnal utaztak, de zuhanni kezdtek. Sorsot húztak, ki ugorjon ki. Ő húzta a rövidebbet.",
	}
}

func (that Story) IsZero() bool {
	return that == Story{}
}
