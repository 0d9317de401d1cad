package ship

type Upgrade string

const (
	UpgradeCargoCapacity  Upgrade = "cargo_capacity"
	UpgradeFuelEfficiency Upgrade = "fuel_efficiency"
	UpgradeEnginePower    Upgrade = "engine_power"
	UpgradeSalvageRange   Upgrade = "salvage_range"
)

// Upgrades lists every upgrade in display order.
var Upgrades = []Upgrade{
	UpgradeCargoCapacity,
	UpgradeFuelEfficiency,
	UpgradeEnginePower,
	UpgradeSalvageRange,
}

type Cost struct {
	Metal   int `json:"metal"`
	Crystal int `json:"crystal"`
}

var upgradeCosts = map[Upgrade]Cost{
	UpgradeCargoCapacity:  {Metal: 10, Crystal: 5},
	UpgradeFuelEfficiency: {Metal: 5, Crystal: 10},
	UpgradeEnginePower:    {Metal: 15, Crystal: 15},
	UpgradeSalvageRange:   {Metal: 10, Crystal: 20},
}

const (
	BaseFuel          = 100.0
	BaseCargo         = 50
	BaseSalvageRadius = 100.0
	BaseJumpDistance  = 1500.0

	// FuelPerUnit is burned for every world unit travelled at efficiency 1.
	FuelPerUnit = 0.001

	UpgradeStep = 0.25
)

// Holdings counts salvaged goods by kind. Fuel goes straight to the tank.
type Holdings struct {
	Metal     int `json:"metal"`
	Crystal   int `json:"crystal"`
	Artifacts int `json:"artifacts"`
}

// Status is a read-only view of the ship for the API.
type Status struct {
	X             float64             `json:"x"`
	Y             float64             `json:"y"`
	Fuel          float64             `json:"fuel"`
	MaxFuel       float64             `json:"max_fuel"`
	Cargo         int                 `json:"cargo"`
	MaxCargo      int                 `json:"max_cargo"`
	SalvageRadius float64             `json:"salvage_radius"`
	Holdings      Holdings            `json:"holdings"`
	Upgrades      map[Upgrade]float64 `json:"upgrades"`
	UpgradeTotal  float64             `json:"upgrade_total"`
}

func CostOf(u Upgrade) (Cost, bool) {
	cost, ok := upgradeCosts[u]
	return cost, ok
}
