package entity

import "math"

type Resource struct {
	ID      uint64       `json:"id"`
	X       float64      `json:"x"`
	Y       float64      `json:"y"`
	Kind    ResourceKind `json:"kind"`
	Amount  int          `json:"amount"`
	InRange bool         `json:"in_range"`
	Active  bool         `json:"active"`

	owner     Owner
	destroyed bool
}

// NewResource builds an inactive resource. Amounts below one are raised to one.
func NewResource(id uint64, x, y float64, kind ResourceKind, amount int, owner Owner) *Resource {
	if amount < 1 {
		amount = 1
	}
	return &Resource{
		ID:     id,
		X:      x,
		Y:      y,
		Kind:   kind,
		Amount: amount,
		owner:  owner,
	}
}

func (r *Resource) EntityID() uint64 { return r.ID }

func (r *Resource) Position() (float64, float64) { return r.X, r.Y }

func (r *Resource) SetActive(active bool) { r.Active = active }

func (r *Resource) IsActive() bool { return r.Active }

// Scale grows with the amount the pickup carries.
func (r *Resource) Scale() float64 {
	return 0.5 + float64(r.Amount)*0.1
}

func (r *Resource) Destroyed() bool { return r.destroyed }

// IsInRange reports whether (x, y) lies within radius of the resource and
// remembers the answer for the collection hint.
func (r *Resource) IsInRange(x, y, radius float64) bool {
	r.InRange = math.Hypot(r.X-x, r.Y-y) <= radius
	return r.InRange
}

// Collect hands the resource to c when c is in range and has room for it.
// Fuel goes to the tank, everything else to cargo. On success the resource
// is removed from its owner and destroyed; a destroyed resource never
// collects again.
func (r *Resource) Collect(c Collector) bool {
	if r.destroyed || c == nil {
		return false
	}

	x, y := c.Position()
	if !r.IsInRange(x, y, c.SalvageRadius()) {
		return false
	}

	var collected bool
	switch r.Kind {
	case ResourceFuel:
		collected = c.Refuel(float64(r.Amount)*FuelPerUnit) > 0
	default:
		collected = c.CollectResource(r.Kind, r.Amount)
	}
	if !collected {
		return false
	}

	if r.owner != nil {
		r.owner.RemoveResource(r.ID)
	}
	r.Destroy()
	return true
}

// Destroy releases the resource. Safe to call more than once.
func (r *Resource) Destroy() {
	r.destroyed = true
	r.Active = false
	r.InRange = false
	r.owner = nil
}
