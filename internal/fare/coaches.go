package fare

import "github.com/AchintyaNigam/my-rail/internal/models"

// DefaultCoaches is the coach table used when no table file is configured.
var DefaultCoaches = []models.CoachType{
	{ID: "AC Second Class", Name: "AC Second Class", Surcharge: 100},
	{ID: "AC Third Class", Name: "AC Third Class", Surcharge: 75},
	{ID: "Sleeper", Name: "Sleeper", Surcharge: 50},
}

// CoachTable is an ordered, read-only set of coach types.
type CoachTable struct {
	coaches []models.CoachType
	byID    map[string]models.CoachType
}

func NewCoachTable(coaches []models.CoachType) *CoachTable {
	t := &CoachTable{
		coaches: append([]models.CoachType(nil), coaches...),
		byID:    make(map[string]models.CoachType, len(coaches)),
	}
	for _, c := range coaches {
		t.byID[c.ID] = c
	}
	return t
}

func (t *CoachTable) Lookup(id string) (models.CoachType, bool) {
	c, ok := t.byID[id]
	return c, ok
}

// Surcharge returns 0 for an empty or unknown id.
func (t *CoachTable) Surcharge(id string) int {
	return t.byID[id].Surcharge
}

func (t *CoachTable) All() []models.CoachType {
	return append([]models.CoachType(nil), t.coaches...)
}
