package team

import "fmt"

// Team is a master-data row seeded out-of-band; ingestion only reads it.
type Team struct {
	ID           int64
	Name         string
	Abbreviation string
	Location     string
}

func (t Team) Validate() error {
	if t.Name == "" {
		return fmt.Errorf("team name is required")
	}
	if len(t.Abbreviation) != 3 {
		return fmt.Errorf("team abbreviation must be 3 letters")
	}
	return nil
}
