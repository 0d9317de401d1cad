package sector

import (
	"math"

	"salvage-server/internal/entity"
)

type asteroidClass struct {
	kind           entity.ObstacleKind
	minScale       float64
	maxScale       float64
	resourceChance float64
}

var (
	asteroidClasses = []weighted[asteroidClass]{
		{asteroidClass{entity.ObstacleAsteroidSmall, 0.6, 0.9, 0.3}, 5},
		{asteroidClass{entity.ObstacleAsteroidMedium, 0.8, 1.2, 0.6}, 3},
		{asteroidClass{entity.ObstacleAsteroidLarge, 1.0, 1.5, 0.9}, 2},
	}

	debrisVariants = []weighted[entity.ObstacleKind]{
		{entity.ObstacleDebris1, 1},
		{entity.ObstacleDebris2, 1},
	}

	emptyResources = []weighted[entity.ResourceKind]{
		{entity.ResourceMetal, 2},
		{entity.ResourceCrystal, 2},
		{entity.ResourceFuel, 6},
	}

	asteroidResources = []weighted[entity.ResourceKind]{
		{entity.ResourceMetal, 5},
		{entity.ResourceCrystal, 3},
		{entity.ResourceFuel, 2},
	}

	debrisResources = []weighted[entity.ResourceKind]{
		{entity.ResourceMetal, 4},
		{entity.ResourceCrystal, 3},
		{entity.ResourceFuel, 2},
		{entity.ResourceArtifact, 1},
	}

	stationResources = []weighted[entity.ResourceKind]{
		{entity.ResourceMetal, 3},
		{entity.ResourceCrystal, 3},
		{entity.ResourceFuel, 2},
		{entity.ResourceArtifact, 2},
	}
)

const (
	debrisResourceChance = 0.7
	stationScale         = 1.5
)

// builder generates the content of one sector from its own stream. Entity
// ids embed the sector id so they do not depend on generation order.
type builder struct {
	g      *Generator
	id     int
	sector Sector
	rng    *Stream

	seq       uint64
	resources int
	obstacles int
}

func (b *builder) nextID() uint64 {
	b.seq++
	return uint64(b.id+1)<<32 | b.seq
}

// interiorPoint picks a point at least InteriorMargin inside the sector.
func (b *builder) interiorPoint() (float64, float64) {
	hi := int(b.sector.Size) - InteriorMargin
	x := b.sector.X + float64(b.rng.Between(InteriorMargin, hi))
	y := b.sector.Y + float64(b.rng.Between(InteriorMargin, hi))
	return x, y
}

func (b *builder) resource(x, y float64, kind entity.ResourceKind, amount int) {
	x, y = b.g.clamp(x, y)
	b.g.addResource(entity.NewResource(b.nextID(), x, y, kind, amount, b.g))
	b.resources++
}

func (b *builder) obstacle(kind entity.ObstacleKind, x, y, scale, angle, drift float64) {
	x, y = b.g.clamp(x, y)
	b.g.addObstacle(entity.NewObstacle(b.nextID(), kind, x, y, scale, angle, drift))
	b.obstacles++
}

// emptySector scatters a few stray pickups, mostly fuel.
func (b *builder) emptySector() {
	count := b.rng.Between(0, 3)
	for i := 0; i < count; i++ {
		x, y := b.interiorPoint()
		kind := pick(b.rng, emptyResources)
		b.resource(x, y, kind, b.rng.Between(1, 2))
	}
}

func (b *builder) asteroidField() {
	count := b.rng.Between(10, 20)
	for i := 0; i < count; i++ {
		x, y := b.interiorPoint()
		class := pick(b.rng, asteroidClasses)
		scale := b.rng.RealInRange(class.minScale, class.maxScale)
		drift := b.rng.RealInRange(-0.2, 0.2)
		b.obstacle(class.kind, x, y, scale, 0, drift)

		if b.rng.Frac() < class.resourceChance {
			rx := x + float64(b.rng.Between(-50, 50))
			ry := y + float64(b.rng.Between(-50, 50))
			kind := pick(b.rng, asteroidResources)
			b.resource(rx, ry, kind, b.rng.Between(1, 3))
		}
	}
}

func (b *builder) debrisField() {
	count := b.rng.Between(8, 15)
	for i := 0; i < count; i++ {
		x, y := b.interiorPoint()
		b.debris(x, y, 0.7, 1.2, 0.3)

		if b.rng.Frac() < debrisResourceChance {
			rx := x + float64(b.rng.Between(-30, 30))
			ry := y + float64(b.rng.Between(-30, 30))
			kind := pick(b.rng, debrisResources)
			b.resource(rx, ry, kind, b.rng.Between(2, 4))
		}
	}
}

func (b *builder) debris(x, y, minScale, maxScale, maxDrift float64) {
	kind := pick(b.rng, debrisVariants)
	scale := b.rng.RealInRange(minScale, maxScale)
	angle := float64(b.rng.Between(0, 360))
	drift := b.rng.RealInRange(-maxDrift, maxDrift)
	b.obstacle(kind, x, y, scale, angle, drift)
}

// abandonedStation places one slowly turning station near the centre with a
// ring of rich pickups and a wider ring of wreckage.
func (b *builder) abandonedStation() {
	half := b.sector.Size / 2
	x := b.sector.X + half + float64(b.rng.Between(-200, 200))
	y := b.sector.Y + half + float64(b.rng.Between(-200, 200))
	b.obstacle(entity.ObstacleStation, x, y, stationScale, 0, b.rng.RealInRange(-0.05, 0.05))

	count := b.rng.Between(8, 12)
	for i := 0; i < count; i++ {
		angle := b.rng.Frac() * 2 * math.Pi
		distance := float64(b.rng.Between(100, 200))
		kind := pick(b.rng, stationResources)
		b.resource(x+math.Cos(angle)*distance, y+math.Sin(angle)*distance, kind, b.rng.Between(3, 5))
	}

	wreckage := b.rng.Between(5, 8)
	for i := 0; i < wreckage; i++ {
		angle := b.rng.Frac() * 2 * math.Pi
		distance := float64(b.rng.Between(220, 350))
		b.debris(x+math.Cos(angle)*distance, y+math.Sin(angle)*distance, 0.6, 1.0, 0.2)
	}
}
