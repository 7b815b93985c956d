package cursor

import "fmt"

// Strategy selects how a cursor reaches the first line of its range.
type Strategy int

const (
	// Seek starts reading at a precomputed byte offset.
	Seek Strategy = iota
	// Skip reads and discards every line before the range.
	Skip
)

func (s Strategy) String() string {
	switch s {
	case Seek:
		return "seek"
	case Skip:
		return "skip"
	}
	return fmt.Sprintf("Strategy(%d)", int(s))
}

// ParseStrategy parses the names returned by Strategy.String.
func ParseStrategy(name string) (Strategy, error) {
	switch name {
	case "seek":
		return Seek, nil
	case "skip":
		return Skip, nil
	}
	return 0, fmt.Errorf("unknown start strategy %q", name)
}
