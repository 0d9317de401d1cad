package game

import (
	"context"
	"log/slog"
	"math"
	"sync"
	"time"

	"salvage-server/internal/entity"
	"salvage-server/internal/sector"
	"salvage-server/internal/ship"
	"salvage-server/internal/shared/config"
	"salvage-server/internal/shared/errors"

	"golang.org/x/time/rate"
)

// Session is the running scene: one sector generator, one ship and the tick
// loop that drives them. All methods are safe for concurrent use.
type Session struct {
	mu         sync.Mutex
	cfg        config.WorldConfig
	logger     *slog.Logger
	generator  *sector.Generator
	ship       *ship.Ship
	activation *rate.Sometimes

	started  bool
	tick     uint64
	bounds   sector.Bounds
	entities int
}

// sessionWorld receives generator notifications. The generator only calls it
// from inside a session method, with the lock already held.
type sessionWorld struct {
	s *Session
}

func (w sessionWorld) SetBounds(bounds sector.Bounds) { w.s.bounds = bounds }

func (w sessionWorld) Spawned(entity.Entity) { w.s.entities++ }

func (w sessionWorld) Despawned(entity.Entity) { w.s.entities-- }

func NewSession(cfg config.WorldConfig, logger *slog.Logger) *Session {
	logger.Debug("Initializing game session",
		"world_size", cfg.Size,
		"sector_size", cfg.SectorSize,
		"visible_range", cfg.VisibleRange,
		"activation_every", cfg.ActivationEvery,
	)

	s := &Session{
		cfg:    cfg,
		logger: logger,
	}
	s.generator = sector.NewGenerator(sessionWorld{s: s}, cfg.VisibleRange, logger)
	return s
}

// Start builds the grid, parks the ship at the centre of the world and
// streams in the sectors around it.
func (s *Session) Start() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.start()
}

func (s *Session) start() error {
	logger := s.logger.With("component", "game_session", "operation", "start")

	if s.started {
		return errors.Conflictf("session already started")
	}
	if err := s.generator.Initialize(s.cfg.Size, s.cfg.SectorSize); err != nil {
		return err
	}

	s.ship = ship.New(s.bounds.Width/2, s.bounds.Height/2)
	s.activation = &rate.Sometimes{Every: max(1, s.cfg.ActivationEvery)}
	s.tick = 0
	s.started = true

	s.generator.UpdateActiveSectors(s.ship.Position())
	s.refreshInRange()

	stats := s.generator.Stats()
	logger.Info("Session started",
		"sectors", stats.Sectors,
		"generated_sectors", stats.GeneratedSectors,
		"active_sectors", stats.ActiveSectors,
		"entities", s.entities,
	)
	return nil
}

// Tick advances the simulation by one step.
func (s *Session) Tick() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started {
		return
	}

	s.activation.Do(func() {
		s.generator.UpdateActiveSectors(s.ship.Position())
	})
	s.generator.Update()
	s.refreshInRange()
	s.tick++
}

// refreshInRange recomputes InRange for every live resource. Resources in
// inactive sectors are never in range.
func (s *Session) refreshInRange() {
	x, y := s.ship.Position()
	radius := s.ship.SalvageRadius()
	for _, r := range s.generator.Resources() {
		if r.Active {
			r.IsInRange(x, y, radius)
		} else {
			r.InRange = false
		}
	}
}

// Run ticks the session until ctx is cancelled.
func (s *Session) Run(ctx context.Context) {
	logger := s.logger.With("component", "game_session", "operation", "run")

	interval := s.cfg.TickInterval
	if interval <= 0 {
		interval = time.Second / 60
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	logger.Info("Simulation loop started", "interval", interval)
	for {
		select {
		case <-ctx.Done():
			logger.Info("Simulation loop stopped", "tick", s.TickCount())
			return
		case <-ticker.C:
			s.Tick()
		}
	}
}

// MoveShip flies the ship towards (x, y), clamped to the world.
func (s *Session) MoveShip(x, y float64) (ship.Status, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started {
		return ship.Status{}, errors.Conflictf("session not started")
	}
	if math.IsNaN(x) || math.IsNaN(y) || math.IsInf(x, 0) || math.IsInf(y, 0) {
		return ship.Status{}, errors.Validation("target coordinates must be finite")
	}

	x = math.Min(math.Max(x, 0), math.Nextafter(s.bounds.Width, 0))
	y = math.Min(math.Max(y, 0), math.Nextafter(s.bounds.Height, 0))
	if err := s.ship.MoveTo(x, y); err != nil {
		return ship.Status{}, err
	}
	s.refreshInRange()
	return s.ship.Status(), nil
}

// Collect picks up every active resource within salvage range. Candidates are
// gathered before any is collected, since a collection removes the resource
// from the generator.
func (s *Session) Collect() (CollectResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	logger := s.logger.With("component", "game_session", "operation", "collect")

	if !s.started {
		return CollectResult{}, errors.Conflictf("session not started")
	}

	x, y := s.ship.Position()
	radius := s.ship.SalvageRadius()

	var candidates []*entity.Resource
	for _, r := range s.generator.Resources() {
		if r.Active && r.IsInRange(x, y, radius) {
			candidates = append(candidates, r)
		}
	}

	result := CollectResult{Collected: []entity.Resource{}}
	for _, r := range candidates {
		if r.Collect(s.ship) {
			result.Collected = append(result.Collected, *r)
		} else {
			result.Skipped++
		}
	}
	result.Ship = s.ship.Status()

	if len(candidates) > 0 {
		logger.Debug("Resources collected",
			"collected", len(result.Collected),
			"skipped", result.Skipped,
			"cargo", result.Ship.Cargo,
		)
	}
	return result, nil
}

func (s *Session) PurchaseUpgrade(u ship.Upgrade) (ship.Status, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started {
		return ship.Status{}, errors.Conflictf("session not started")
	}
	if err := s.ship.PurchaseUpgrade(u); err != nil {
		return ship.Status{}, err
	}

	s.logger.Info("Upgrade purchased",
		"component", "game_session",
		"upgrade", u,
		"level", s.ship.Level(u),
	)
	return s.ship.Status(), nil
}

// Reset tears the world down and starts a fresh one with a new ship.
func (s *Session) Reset() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.generator.Cleanup()
	s.started = false
	s.logger.Info("Session reset", "component", "game_session", "previous_tick", s.tick)
	if err := s.start(); err != nil {
		return errors.WrapInternal("failed to rebuild world", err)
	}
	return nil
}

// Stop releases every generated entity.
func (s *Session) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.generator.Cleanup()
	s.started = false
	s.bounds = sector.Bounds{}
}

func (s *Session) Started() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.started
}

func (s *Session) TickCount() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.tick
}

func (s *Session) Ship() (ship.Status, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started {
		return ship.Status{}, errors.Conflictf("session not started")
	}
	return s.ship.Status(), nil
}

func (s *Session) World() WorldInfo {
	s.mu.Lock()
	defer s.mu.Unlock()

	return WorldInfo{
		Tick:         s.tick,
		WorldSize:    s.generator.WorldSize(),
		SectorSize:   s.generator.SectorSize(),
		VisibleRange: s.cfg.VisibleRange,
		Bounds:       s.bounds,
		Stats:        s.generator.Stats(),
		Active:       s.generator.ActiveSectors(),
		Sectors:      s.generator.Sectors(),
	}
}

// Sector looks up one grid cell along with the entities it currently holds.
func (s *Session) Sector(gridX, gridY int) (SectorDetail, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sec, ok := s.generator.SectorAt(gridX, gridY)
	if !ok {
		return SectorDetail{}, errors.NotFoundf("sector not found at (%d,%d)", gridX, gridY)
	}

	detail := SectorDetail{
		Sector:    sec,
		Resources: []entity.Resource{},
		Obstacles: []entity.Obstacle{},
	}
	for _, r := range s.generator.Resources() {
		if sec.Contains(r.X, r.Y) {
			detail.Resources = append(detail.Resources, *r)
		}
	}
	for _, o := range s.generator.Obstacles() {
		if sec.Contains(o.X, o.Y) {
			detail.Obstacles = append(detail.Obstacles, *o)
		}
	}
	return detail, nil
}

// Resources copies the live resources, optionally only those in active
// sectors.
func (s *Session) Resources(activeOnly bool) []entity.Resource {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.resources(activeOnly)
}

func (s *Session) resources(activeOnly bool) []entity.Resource {
	out := []entity.Resource{}
	for _, r := range s.generator.Resources() {
		if activeOnly && !r.Active {
			continue
		}
		out = append(out, *r)
	}
	return out
}

func (s *Session) Obstacles(activeOnly bool) []entity.Obstacle {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.obstacles(activeOnly)
}

func (s *Session) obstacles(activeOnly bool) []entity.Obstacle {
	out := []entity.Obstacle{}
	for _, o := range s.generator.Obstacles() {
		if activeOnly && !o.Active {
			continue
		}
		out = append(out, *o)
	}
	return out
}

// Snapshot captures the active part of the world.
func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap := Snapshot{
		Tick:      s.tick,
		Bounds:    s.bounds,
		Stats:     s.generator.Stats(),
		Entities:  s.entities,
		Active:    s.generator.ActiveSectors(),
		Resources: s.resources(true),
		Obstacles: s.obstacles(true),
	}
	if s.started {
		snap.Ship = s.ship.Status()
	}
	return snap
}
