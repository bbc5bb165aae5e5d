package swap

type Status string

const (
	StatusPending  Status = "pending"
	StatusChecking Status = "checking"
	StatusApproved Status = "approved"
	StatusSwapping Status = "swapping"
	StatusSuccess  Status = "success"
	StatusFailed   Status = "failed"
)

var transitions = map[Status][]Status{
	StatusPending:  {StatusChecking},
	StatusChecking: {StatusApproved, StatusSwapping, StatusFailed},
	StatusApproved: {StatusSwapping, StatusFailed},
	StatusSwapping: {StatusSuccess, StatusFailed},
}

func (s Status) IsTerminal() bool {
	return s == StatusSuccess || s == StatusFailed
}

func (s Status) CanTransition(to Status) bool {
	for _, next := range transitions[s] {
		if next == to {
			return true
		}
	}
	return false
}
