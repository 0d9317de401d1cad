package ship

import (
	"maps"
	"math"

	"salvage-server/internal/entity"
	"salvage-server/internal/shared/errors"
)

// Ship is the player's salvager. It satisfies entity.Collector.
type Ship struct {
	x, y     float64
	fuel     float64
	maxFuel  float64
	cargo    int
	holdings Holdings
	upgrades map[Upgrade]float64
}

func New(x, y float64) *Ship {
	upgrades := make(map[Upgrade]float64, len(Upgrades))
	for _, u := range Upgrades {
		upgrades[u] = 1
	}
	return &Ship{
		x:        x,
		y:        y,
		fuel:     BaseFuel,
		maxFuel:  BaseFuel,
		upgrades: upgrades,
	}
}

var _ entity.Collector = (*Ship)(nil)

func (s *Ship) Position() (float64, float64) { return s.x, s.y }

func (s *Ship) Fuel() float64 { return s.fuel }

func (s *Ship) Cargo() int { return s.cargo }

func (s *Ship) Holdings() Holdings { return s.holdings }

func (s *Ship) Level(u Upgrade) float64 { return s.upgrades[u] }

func (s *Ship) SalvageRadius() float64 {
	return BaseSalvageRadius * s.upgrades[UpgradeSalvageRange]
}

func (s *Ship) MaxCargo() int {
	return int(BaseCargo * s.upgrades[UpgradeCargoCapacity])
}

// MaxJump is the furthest a single move command may travel.
func (s *Ship) MaxJump() float64 {
	return BaseJumpDistance * s.upgrades[UpgradeEnginePower]
}

// MoveTo flies the ship to (x, y), burning fuel for the distance covered.
// The tank never drops below zero.
func (s *Ship) MoveTo(x, y float64) error {
	distance := math.Hypot(x-s.x, y-s.y)
	if distance == 0 {
		return nil
	}
	if s.fuel <= 0 {
		return errors.Conflictf("out of fuel")
	}
	if distance > s.MaxJump() {
		return errors.Validationf("jump of %.0f units exceeds engine limit of %.0f", distance, s.MaxJump())
	}

	burn := distance * FuelPerUnit / s.upgrades[UpgradeFuelEfficiency]
	s.fuel = math.Max(0, s.fuel-burn)
	s.x, s.y = x, y
	return nil
}

// Place moves the ship without burning fuel.
func (s *Ship) Place(x, y float64) {
	s.x, s.y = x, y
}

// CollectResource stores the goods if the hold has room for all of them.
func (s *Ship) CollectResource(kind entity.ResourceKind, amount int) bool {
	if amount <= 0 || s.cargo+amount > s.MaxCargo() {
		return false
	}

	switch kind {
	case entity.ResourceMetal:
		s.holdings.Metal += amount
	case entity.ResourceCrystal:
		s.holdings.Crystal += amount
	case entity.ResourceArtifact:
		s.holdings.Artifacts += amount
	default:
		return false
	}
	s.cargo += amount
	return true
}

// Refuel tops up the tank and returns the fuel actually taken on.
func (s *Ship) Refuel(amount float64) float64 {
	before := s.fuel
	s.fuel = math.Min(s.maxFuel, s.fuel+amount)
	return s.fuel - before
}

func (s *Ship) CanAffordUpgrade(u Upgrade) bool {
	cost, ok := upgradeCosts[u]
	if !ok {
		return false
	}
	return s.holdings.Metal >= cost.Metal && s.holdings.Crystal >= cost.Crystal
}

// PurchaseUpgrade spends metal and crystal to raise one upgrade level.
func (s *Ship) PurchaseUpgrade(u Upgrade) error {
	cost, ok := upgradeCosts[u]
	if !ok {
		return errors.Validationf("unknown upgrade %q", u)
	}
	if !s.CanAffordUpgrade(u) {
		return errors.Conflictf("upgrade %s needs %d metal and %d crystal", u, cost.Metal, cost.Crystal)
	}

	s.holdings.Metal -= cost.Metal
	s.holdings.Crystal -= cost.Crystal
	s.cargo -= cost.Metal + cost.Crystal
	s.upgrades[u] += UpgradeStep
	return nil
}

// UpgradeTotal sums the levels gained above the starting level.
func (s *Ship) UpgradeTotal() float64 {
	total := 0.0
	for _, level := range s.upgrades {
		total += level - 1
	}
	return total
}

func (s *Ship) Status() Status {
	return Status{
		X:             s.x,
		Y:             s.y,
		Fuel:          s.fuel,
		MaxFuel:       s.maxFuel,
		Cargo:         s.cargo,
		MaxCargo:      s.MaxCargo(),
		SalvageRadius: s.SalvageRadius(),
		Holdings:      s.holdings,
		Upgrades:      maps.Clone(s.upgrades),
		UpgradeTotal:  s.UpgradeTotal(),
	}
}
