package game

import (
	"salvage-server/internal/entity"
	"salvage-server/internal/sector"
	"salvage-server/internal/ship"
)

// WorldInfo describes the grid and its generation progress.
type WorldInfo struct {
	Tick         uint64             `json:"tick"`
	WorldSize    int                `json:"world_size"`
	SectorSize   float64            `json:"sector_size"`
	VisibleRange int                `json:"visible_range"`
	Bounds       sector.Bounds      `json:"bounds"`
	Stats        sector.Stats       `json:"stats"`
	Active       []sector.GridPoint `json:"active_sectors"`
	Sectors      []sector.Sector    `json:"sectors"`
}

// SectorDetail is one sector with the entities inside its bounds.
type SectorDetail struct {
	sector.Sector
	Resources []entity.Resource `json:"resources"`
	Obstacles []entity.Obstacle `json:"obstacles"`
}

// Snapshot is the per-tick view pushed to stream subscribers. It holds
// copies, so it can be encoded without the session lock.
type Snapshot struct {
	Tick      uint64             `json:"tick"`
	Bounds    sector.Bounds      `json:"bounds"`
	Stats     sector.Stats       `json:"stats"`
	Entities  int                `json:"entities"`
	Ship      ship.Status        `json:"ship"`
	Active    []sector.GridPoint `json:"active_sectors"`
	Resources []entity.Resource  `json:"resources"`
	Obstacles []entity.Obstacle  `json:"obstacles"`
}

// CollectResult reports one collection sweep.
type CollectResult struct {
	Collected []entity.Resource `json:"collected"`
	Skipped   int               `json:"skipped"`
	Ship      ship.Status       `json:"ship"`
}
