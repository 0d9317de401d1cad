package sector

import (
	"fmt"
	"log/slog"
	"math"
	"slices"

	"salvage-server/internal/entity"
	"salvage-server/internal/shared/errors"
)

// World is the collaborator that hosts generated entities.
type World interface {
	SetBounds(bounds Bounds)
	Spawned(e entity.Entity)
	Despawned(e entity.Entity)
}

// NopWorld ignores every notification.
type NopWorld struct{}

func (NopWorld) SetBounds(Bounds)        {}
func (NopWorld) Spawned(entity.Entity)   {}
func (NopWorld) Despawned(entity.Entity) {}

// Generator owns the sector grid and every entity generated in it. It is not
// safe for concurrent use; callers drive it from a single simulation loop.
type Generator struct {
	world        World
	logger       *slog.Logger
	visibleRange int

	initialized bool
	worldSize   int
	sectorSize  float64
	bounds      Bounds

	sectors   []Sector
	resources []*entity.Resource
	obstacles []*entity.Obstacle
	index     *spatialIndex
}

func NewGenerator(world World, visibleRange int, logger *slog.Logger) *Generator {
	if world == nil {
		world = NopWorld{}
	}
	if visibleRange < 0 {
		visibleRange = DefaultVisibleRange
	}
	logger.Debug("Initializing sector generator", "visible_range", visibleRange)

	return &Generator{
		world:        world,
		logger:       logger,
		visibleRange: visibleRange,
		index:        newSpatialIndex(0),
	}
}

// Initialize builds the worldSize x worldSize grid. Sector content is not
// generated until the sector first enters the activation window.
func (g *Generator) Initialize(worldSize int, sectorSize float64) error {
	logger := g.logger.With("component", "sector_generator", "operation", "initialize",
		"world_size", worldSize, "sector_size", sectorSize)

	if g.initialized {
		return errors.Conflictf("sector grid already initialized")
	}
	if worldSize < 1 {
		return errors.Validationf("world size must be at least 1, got %d", worldSize)
	}
	if sectorSize <= 2*InteriorMargin {
		return errors.Validationf("sector size must exceed %d, got %g", 2*InteriorMargin, sectorSize)
	}

	g.worldSize = worldSize
	g.sectorSize = sectorSize
	g.bounds = Bounds{
		Width:  float64(worldSize) * sectorSize,
		Height: float64(worldSize) * sectorSize,
	}
	g.index = newSpatialIndex(worldSize * worldSize)
	g.sectors = make([]Sector, 0, worldSize*worldSize)

	for x := 0; x < worldSize; x++ {
		for y := 0; y < worldSize; y++ {
			g.sectors = append(g.sectors, Sector{
				GridX: x,
				GridY: y,
				X:     float64(x) * sectorSize,
				Y:     float64(y) * sectorSize,
				Size:  sectorSize,
				Type:  TypeAt(x, y),
			})
		}
	}

	g.initialized = true
	g.world.SetBounds(g.bounds)

	logger.Info("Sector grid initialized",
		"sectors", len(g.sectors),
		"width", g.bounds.Width,
		"height", g.bounds.Height,
	)
	return nil
}

func (g *Generator) sectorID(gridX, gridY int) int {
	return gridX*g.worldSize + gridY
}

func (g *Generator) inGrid(gridX, gridY int) bool {
	return gridX >= 0 && gridY >= 0 && gridX < g.worldSize && gridY < g.worldSize
}

// gridAt converts a world position to grid coordinates, unclipped.
func (g *Generator) gridAt(x, y float64) (int, int) {
	return int(math.Floor(x / g.sectorSize)), int(math.Floor(y / g.sectorSize))
}

// UpdateActiveSectors streams the world around the player: sectors within
// the visible range are generated on first sight and activated, every other
// active sector is deactivated.
func (g *Generator) UpdateActiveSectors(playerX, playerY float64) {
	if !g.initialized {
		return
	}

	px, py := g.gridAt(playerX, playerY)

	window := make([]int, 0, (2*g.visibleRange+1)*(2*g.visibleRange+1))
	desired := make(map[int]struct{}, cap(window))
	for x := px - g.visibleRange; x <= px+g.visibleRange; x++ {
		for y := py - g.visibleRange; y <= py+g.visibleRange; y++ {
			if !g.inGrid(x, y) {
				continue
			}
			id := g.sectorID(x, y)
			window = append(window, id)
			desired[id] = struct{}{}
		}
	}

	for _, id := range window {
		if !g.sectors[id].Generated {
			g.generate(id)
		}
	}

	for id := range g.sectors {
		if _, ok := desired[id]; ok || !g.sectors[id].Active {
			continue
		}
		g.setSectorActive(id, false)
	}

	for _, id := range window {
		if !g.sectors[id].Active {
			g.setSectorActive(id, true)
		}
	}
}

func (g *Generator) setSectorActive(id int, active bool) {
	s := &g.sectors[id]
	s.Active = active
	resources, obstacles := g.index.setActive(id, active)

	g.logger.Debug("Sector activation changed",
		"component", "sector_generator",
		"coordinates", fmt.Sprintf("(%d,%d)", s.GridX, s.GridY),
		"active", active,
		"resources", resources,
		"obstacles", obstacles,
	)
}

// generate fills the sector with content exactly once.
func (g *Generator) generate(id int) {
	s := &g.sectors[id]
	if s.Generated {
		panic(fmt.Sprintf("sector: (%d,%d) generated twice", s.GridX, s.GridY))
	}

	b := &builder{
		g:      g,
		id:     id,
		sector: *s,
		rng:    NewStream(Seed(s.GridX, s.GridY), labelContent),
	}

	switch s.Type {
	case TypeEmpty:
		b.emptySector()
	case TypeAsteroidField:
		b.asteroidField()
	case TypeDebrisField:
		b.debrisField()
	case TypeAbandonedStation:
		b.abandonedStation()
	default:
		panic(fmt.Sprintf("sector: unknown type %q at (%d,%d)", s.Type, s.GridX, s.GridY))
	}
	s.Generated = true

	g.logger.Debug("Sector generated",
		"component", "sector_generator",
		"coordinates", fmt.Sprintf("(%d,%d)", s.GridX, s.GridY),
		"type", s.Type,
		"resources", b.resources,
		"obstacles", b.obstacles,
	)
}

// clamp pulls a position into the world rectangle so it always has an
// owning sector.
func (g *Generator) clamp(x, y float64) (float64, float64) {
	maxX := math.Nextafter(g.bounds.Width, 0)
	maxY := math.Nextafter(g.bounds.Height, 0)
	return math.Min(math.Max(x, 0), maxX), math.Min(math.Max(y, 0), maxY)
}

// owner returns the id of the sector containing (x, y), which must already
// be clamped into the world.
func (g *Generator) owner(x, y float64) int {
	gx, gy := g.gridAt(x, y)
	return g.sectorID(gx, gy)
}

func (g *Generator) addResource(r *entity.Resource) {
	id := g.owner(r.X, r.Y)
	r.SetActive(g.sectors[id].Active)
	g.resources = append(g.resources, r)
	g.index.addResource(id, r)
	g.world.Spawned(r)
}

func (g *Generator) addObstacle(o *entity.Obstacle) {
	id := g.owner(o.X, o.Y)
	o.SetActive(g.sectors[id].Active)
	g.obstacles = append(g.obstacles, o)
	g.index.addObstacle(id, o)
	g.world.Spawned(o)
}

// RemoveResource is the single path by which a resource leaves the world
// before teardown. It reports false when no live resource has that id.
func (g *Generator) RemoveResource(id uint64) bool {
	r, ok := g.index.resource(id)
	if !ok {
		return false
	}

	g.index.removeResource(g.owner(r.X, r.Y), id)
	g.resources = slices.DeleteFunc(g.resources, func(candidate *entity.Resource) bool {
		return candidate.ID == id
	})
	r.Destroy()
	g.world.Despawned(r)
	return true
}

// Update advances the drift of every active obstacle by one tick.
func (g *Generator) Update() {
	for _, o := range g.obstacles {
		o.Drift()
	}
}

// Resources returns the live resources, including those in inactive sectors.
// The slice is a copy; the resources are shared.
func (g *Generator) Resources() []*entity.Resource {
	return slices.Clone(g.resources)
}

func (g *Generator) Obstacles() []*entity.Obstacle {
	return slices.Clone(g.obstacles)
}

func (g *Generator) WorldBounds() Bounds {
	return g.bounds
}

func (g *Generator) SectorSize() float64 {
	return g.sectorSize
}

func (g *Generator) WorldSize() int {
	return g.worldSize
}

func (g *Generator) Initialized() bool {
	return g.initialized
}

// Sectors returns a copy of the grid in column-major order.
func (g *Generator) Sectors() []Sector {
	return slices.Clone(g.sectors)
}

func (g *Generator) SectorAt(gridX, gridY int) (Sector, bool) {
	if !g.initialized || !g.inGrid(gridX, gridY) {
		return Sector{}, false
	}
	return g.sectors[g.sectorID(gridX, gridY)], true
}

// SectorContaining returns the sector whose bounds hold (x, y).
func (g *Generator) SectorContaining(x, y float64) (Sector, bool) {
	if !g.initialized {
		return Sector{}, false
	}
	return g.SectorAt(g.gridAt(x, y))
}

// ActiveSectors lists the grid coordinates of active sectors in grid order.
func (g *Generator) ActiveSectors() []GridPoint {
	var active []GridPoint
	for _, s := range g.sectors {
		if s.Active {
			active = append(active, GridPoint{X: s.GridX, Y: s.GridY})
		}
	}
	return active
}

func (g *Generator) Stats() Stats {
	stats := Stats{
		Sectors:   len(g.sectors),
		Resources: len(g.resources),
		Obstacles: len(g.obstacles),
	}
	for _, s := range g.sectors {
		if s.Generated {
			stats.GeneratedSectors++
		}
		if s.Active {
			stats.ActiveSectors++
		}
	}
	for _, r := range g.resources {
		if r.Active {
			stats.ActiveResources++
		}
	}
	for _, o := range g.obstacles {
		if o.Active {
			stats.ActiveObstacles++
		}
	}
	return stats
}

// Cleanup destroys every entity and forgets the grid. The generator can be
// initialized again afterwards.
func (g *Generator) Cleanup() {
	logger := g.logger.With("component", "sector_generator", "operation", "cleanup")

	for _, r := range g.resources {
		r.Destroy()
		g.world.Despawned(r)
	}
	for _, o := range g.obstacles {
		o.Destroy()
		g.world.Despawned(o)
	}

	logger.Debug("Sector generator cleaned up",
		"resources", len(g.resources),
		"obstacles", len(g.obstacles),
		"sectors", len(g.sectors),
	)

	g.resources = nil
	g.obstacles = nil
	g.sectors = nil
	g.index.clear()
	g.initialized = false
	g.worldSize = 0
	g.sectorSize = 0
	g.bounds = Bounds{}
}
