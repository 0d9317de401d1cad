package entity

// ResourceKind identifies what a salvage pickup yields.
type ResourceKind string

const (
	ResourceMetal    ResourceKind = "metal"
	ResourceCrystal  ResourceKind = "crystal"
	ResourceFuel     ResourceKind = "fuel"
	ResourceArtifact ResourceKind = "artifact"
)

// FuelPerUnit is how much fuel one unit of a fuel pickup restores.
const FuelPerUnit = 10.0

// ObstacleKind identifies the body an obstacle represents.
type ObstacleKind string

const (
	ObstacleAsteroidSmall  ObstacleKind = "asteroid_small"
	ObstacleAsteroidMedium ObstacleKind = "asteroid_medium"
	ObstacleAsteroidLarge  ObstacleKind = "asteroid_large"
	ObstacleDebris1        ObstacleKind = "debris_1"
	ObstacleDebris2        ObstacleKind = "debris_2"
	ObstacleStation        ObstacleKind = "station"
)

// Entity is anything the generator places in the world.
type Entity interface {
	EntityID() uint64
	Position() (float64, float64)
	SetActive(active bool)
	IsActive() bool
}

// Collector is the ship-side half of a pickup.
type Collector interface {
	Position() (float64, float64)
	SalvageRadius() float64
	// CollectResource stores amount units of kind in cargo and reports whether
	// there was room for all of it.
	CollectResource(kind ResourceKind, amount int) bool
	// Refuel adds fuel and returns how much was actually taken on.
	Refuel(amount float64) float64
}

// Owner holds the authoritative resource collection; a collected resource
// removes itself through it.
type Owner interface {
	RemoveResource(id uint64) bool
}
