package ship_test

import (
	"testing"

	"salvage-server/internal/entity"
	"salvage-server/internal/ship"
	"salvage-server/internal/shared/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewShip(t *testing.T) {
	s := ship.New(10, 20)

	x, y := s.Position()
	assert.Equal(t, 10.0, x)
	assert.Equal(t, 20.0, y)
	assert.Equal(t, ship.BaseFuel, s.Fuel())
	assert.Equal(t, 50, s.MaxCargo())
	assert.Equal(t, 100.0, s.SalvageRadius())
	assert.Zero(t, s.UpgradeTotal())
}

func TestCollectResourceRespectsCapacity(t *testing.T) {
	s := ship.New(0, 0)

	assert.True(t, s.CollectResource(entity.ResourceMetal, 30))
	assert.True(t, s.CollectResource(entity.ResourceArtifact, 20))
	assert.False(t, s.CollectResource(entity.ResourceCrystal, 1))
	assert.False(t, s.CollectResource(entity.ResourceFuel, 1))

	assert.Equal(t, ship.Holdings{Metal: 30, Artifacts: 20}, s.Holdings())
	assert.Equal(t, 50, s.Cargo())
}

func TestRefuelCapsAtTank(t *testing.T) {
	s := ship.New(0, 0)
	require.NoError(t, s.MoveTo(1000, 0))

	assert.InDelta(t, 99.0, s.Fuel(), 1e-9)
	assert.InDelta(t, 1.0, s.Refuel(30), 1e-9)
	assert.Zero(t, s.Refuel(30))
}

func TestMoveTo(t *testing.T) {
	s := ship.New(0, 0)

	require.NoError(t, s.MoveTo(0, 0))
	assert.Equal(t, ship.BaseFuel, s.Fuel())

	err := s.MoveTo(5000, 0)
	assert.True(t, errors.Is(err, errors.ErrorTypeValidation))
	x, _ := s.Position()
	assert.Zero(t, x)

	require.NoError(t, s.MoveTo(1500, 0))
	assert.InDelta(t, 98.5, s.Fuel(), 1e-9)
}

func TestMoveWithEmptyTank(t *testing.T) {
	s := ship.New(0, 0)
	for i := 0; i < 67; i++ {
		x, _ := s.Position()
		if err := s.MoveTo(x+1500, 0); err != nil {
			break
		}
	}
	require.Zero(t, s.Fuel())

	err := s.MoveTo(0, 0)
	assert.True(t, errors.Is(err, errors.ErrorTypeConflict))
}

func TestPurchaseUpgrade(t *testing.T) {
	s := ship.New(0, 0)

	err := s.PurchaseUpgrade(ship.UpgradeSalvageRange)
	assert.True(t, errors.Is(err, errors.ErrorTypeConflict))

	err = s.PurchaseUpgrade(ship.Upgrade("warp_drive"))
	assert.True(t, errors.Is(err, errors.ErrorTypeValidation))

	require.True(t, s.CollectResource(entity.ResourceMetal, 10))
	require.True(t, s.CollectResource(entity.ResourceCrystal, 20))
	require.True(t, s.CanAffordUpgrade(ship.UpgradeSalvageRange))

	require.NoError(t, s.PurchaseUpgrade(ship.UpgradeSalvageRange))
	assert.Equal(t, 125.0, s.SalvageRadius())
	assert.Equal(t, ship.Holdings{}, s.Holdings())
	assert.Zero(t, s.Cargo())
	assert.Equal(t, 0.25, s.UpgradeTotal())
}

func TestCargoUpgradeRaisesCapacity(t *testing.T) {
	s := ship.New(0, 0)
	require.True(t, s.CollectResource(entity.ResourceMetal, 10))
	require.True(t, s.CollectResource(entity.ResourceCrystal, 5))
	require.NoError(t, s.PurchaseUpgrade(ship.UpgradeCargoCapacity))

	assert.Equal(t, 62, s.MaxCargo())
	status := s.Status()
	assert.Equal(t, 62, status.MaxCargo)
	assert.Equal(t, 1.25, status.Upgrades[ship.UpgradeCargoCapacity])
}
