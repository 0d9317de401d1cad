package sector

import (
	"slices"

	"salvage-server/internal/entity"

	"github.com/kamstrup/intmap"
)

// cell lists the entities whose position lies inside one sector.
type cell struct {
	resources []*entity.Resource
	obstacles []*entity.Obstacle
}

// spatialIndex buckets entities by the sector that contains their position,
// which is fixed once spawned.
type spatialIndex struct {
	cells     *intmap.Map[int, *cell]
	resources *intmap.Map[uint64, *entity.Resource]
}

func newSpatialIndex(sectorCount int) *spatialIndex {
	return &spatialIndex{
		cells:     intmap.New[int, *cell](sectorCount),
		resources: intmap.New[uint64, *entity.Resource](256),
	}
}

func (idx *spatialIndex) cell(sectorID int) *cell {
	c, ok := idx.cells.Get(sectorID)
	if !ok {
		c = &cell{}
		idx.cells.Put(sectorID, c)
	}
	return c
}

func (idx *spatialIndex) addResource(sectorID int, r *entity.Resource) {
	c := idx.cell(sectorID)
	c.resources = append(c.resources, r)
	idx.resources.Put(r.ID, r)
}

func (idx *spatialIndex) addObstacle(sectorID int, o *entity.Obstacle) {
	c := idx.cell(sectorID)
	c.obstacles = append(c.obstacles, o)
}

func (idx *spatialIndex) resource(id uint64) (*entity.Resource, bool) {
	return idx.resources.Get(id)
}

func (idx *spatialIndex) removeResource(sectorID int, id uint64) {
	idx.resources.Del(id)
	c, ok := idx.cells.Get(sectorID)
	if !ok {
		return
	}
	c.resources = slices.DeleteFunc(c.resources, func(r *entity.Resource) bool {
		return r.ID == id
	})
}

// setActive flips every entity contained in the sector.
func (idx *spatialIndex) setActive(sectorID int, active bool) (resources, obstacles int) {
	c, ok := idx.cells.Get(sectorID)
	if !ok {
		return 0, 0
	}
	for _, r := range c.resources {
		r.SetActive(active)
	}
	for _, o := range c.obstacles {
		o.SetActive(active)
	}
	return len(c.resources), len(c.obstacles)
}

func (idx *spatialIndex) clear() {
	idx.cells.Clear()
	idx.resources.Clear()
}
