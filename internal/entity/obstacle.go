package entity

import "math"

// Obstacle is a fixed collidable body. Only its facing changes over time.
type Obstacle struct {
	ID        uint64       `json:"id"`
	Kind      ObstacleKind `json:"kind"`
	X         float64      `json:"x"`
	Y         float64      `json:"y"`
	Scale     float64      `json:"scale"`
	Angle     float64      `json:"angle"`
	DriftRate float64      `json:"drift_rate"`
	Active    bool         `json:"active"`

	destroyed bool
}

func NewObstacle(id uint64, kind ObstacleKind, x, y, scale, angle, driftRate float64) *Obstacle {
	return &Obstacle{
		ID:        id,
		Kind:      kind,
		X:         x,
		Y:         y,
		Scale:     scale,
		Angle:     angle,
		DriftRate: driftRate,
	}
}

func (o *Obstacle) EntityID() uint64 { return o.ID }

func (o *Obstacle) Position() (float64, float64) { return o.X, o.Y }

func (o *Obstacle) SetActive(active bool) { o.Active = active }

func (o *Obstacle) IsActive() bool { return o.Active }

func (o *Obstacle) Destroyed() bool { return o.destroyed }

// Drift advances the facing angle by one tick of drift. Inactive obstacles
// stay put so reactivation does not jump.
func (o *Obstacle) Drift() {
	if !o.Active || o.destroyed {
		return
	}
	o.Angle = math.Mod(o.Angle+o.DriftRate, 360)
	if o.Angle < 0 {
		o.Angle += 360
	}
}

func (o *Obstacle) Destroy() {
	o.destroyed = true
	o.Active = false
}
