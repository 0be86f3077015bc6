package bookmaker

import "fmt"

// Bookmaker is a sportsbook known to the system, keyed by the provider's
// bookmaker key (e.g. "draftkings").
type Bookmaker struct {
	ID       int64
	Key      string
	Name     string
	IsActive bool
}

func (b Bookmaker) Validate() error {
	if b.Key == "" {
		return fmt.Errorf("bookmaker key is required")
	}
	if b.Name == "" {
		return fmt.Errorf("bookmaker name is required")
	}
	return nil
}
