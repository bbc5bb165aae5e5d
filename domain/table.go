package domain

// Table is a mongo collection name
type Table string

const (
	TableSwapHistory Table = "swap_history"
)
