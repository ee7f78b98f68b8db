package world

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/lodestoneworks/gameserver/gametime"
)

// ScenarioEntity describes one entity to spawn at startup.
type ScenarioEntity struct {
	Name string  `json:"name"`
	X    float64 `json:"x"`
	Y    float64 `json:"y"`
}

// Scenario describes the initial world contents, typically loaded from a
// JSON file under configs/.
type Scenario struct {
	Entities []ScenarioEntity `json:"entities"`
}

// LoadScenario parses a scenario document from r.
func LoadScenario(r io.Reader) (*Scenario, error) {
	var sc Scenario
	dec := json.NewDecoder(r)
	if err := dec.Decode(&sc); err != nil {
		return nil, fmt.Errorf("decode scenario: %w", err)
	}
	for i, ent := range sc.Entities {
		if ent.Name == "" {
			return nil, fmt.Errorf("scenario entity %d has no name", i)
		}
	}
	return &sc, nil
}

// Populate spawns the scenario's entities into the heap at in-game time at
// and indexes their starting positions in the space. It returns the
// assigned IDs in scenario order.
func (sc *Scenario) Populate(sp *Space, h *Heap, at gametime.Time) []EntityID {
	ids := make([]EntityID, 0, len(sc.Entities))
	for _, ent := range sc.Entities {
		pos := Vec2{X: ent.X, Y: ent.Y}
		id := h.Spawn(Entity{
			Name:      ent.Name,
			Pos:       pos,
			UpdatedAt: at,
		})
		sp.Place(id, pos)
		ids = append(ids, id)
	}
	return ids
}
