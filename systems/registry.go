package systems

// SystemInfo describes one update phase for display next to its perf timing.
type SystemInfo struct {
	ID          string // Matches the telemetry phase name
	Name        string
	Description string
	Category    string // economy, squid or visual
}

// systemTable is in Game.Update order.
var systemTable = []SystemInfo{
	{"boost", "Boost", "Expires the temporary multiplier", "economy"},
	{"auto_click", "Auto Click", "Accrues auto-clicker earnings", "economy"},
	{"feeding", "Feeding", "Runs the consumption cycle", "squid"},
	{"food", "Food", "Fades and prunes food particles", "squid"},
	{"expression", "Expression", "Picks the squid's face", "squid"},
	{"ambient", "Ambient", "Moves background particles and cells", "visual"},
	{"effects", "Effects", "Updates floating numbers and sparks", "visual"},
}

// SystemRegistry indexes systemTable by phase ID.
type SystemRegistry struct {
	byID map[string]SystemInfo
}

// NewSystemRegistry builds the registry of game update phases.
func NewSystemRegistry() *SystemRegistry {
	r := &SystemRegistry{byID: make(map[string]SystemInfo, len(systemTable))}
	for _, info := range systemTable {
		r.byID[info.ID] = info
	}
	return r
}

// Get returns system info by ID.
func (r *SystemRegistry) Get(id string) (SystemInfo, bool) {
	info, ok := r.byID[id]
	return info, ok
}

// GetName returns the display name for id, or id itself when unknown.
func (r *SystemRegistry) GetName(id string) string {
	if info, ok := r.byID[id]; ok {
		return info.Name
	}
	return id
}

// ByCategory returns the phases in category, in update order.
func (r *SystemRegistry) ByCategory(category string) []SystemInfo {
	var out []SystemInfo
	for _, info := range systemTable {
		if info.Category == category {
			out = append(out, info)
		}
	}
	return out
}
