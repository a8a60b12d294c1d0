package activity

// Activity is an extracurricular offering. The registry keys activities by
// name, so the name is not part of the record.
type Activity struct {
	Description     string   `json:"description" mapstructure:"description"`
	Schedule        string   `json:"schedule" mapstructure:"schedule"`
	MaxParticipants int      `json:"max_participants" mapstructure:"max_participants"`
	Participants    []string `json:"participants" mapstructure:"participants"`
}

// SpotsLeft is the number of signups the activity can still accept.
func (a Activity) SpotsLeft() int {
	return a.MaxParticipants - len(a.Participants)
}

// HasParticipant reports whether email is on the roster. Matching is exact.
func (a Activity) HasParticipant(email string) bool {
	return a.indexOf(email) != -1
}

func (a Activity) indexOf(email string) int {
	for i, p := range a.Participants {
		if p == email {
			return i
		}
	}

	return -1
}

// clone returns a copy whose Participants slice is never nil and never shares
// storage with a.
func (a Activity) clone() Activity {
	participants := make([]string, len(a.Participants))
	copy(participants, a.Participants)
	a.Participants = participants
	return a
}
