package sector

// Type is the content theme of a sector. It is fixed when the grid is built.
type Type string

const (
	TypeEmpty            Type = "empty"
	TypeAsteroidField    Type = "asteroid_field"
	TypeDebrisField      Type = "debris_field"
	TypeAbandonedStation Type = "abandoned_station"
)

const (
	DefaultSectorSize   = 1000.0
	DefaultVisibleRange = 2

	// InteriorMargin keeps scattered content away from sector edges.
	InteriorMargin = 100
)

var sectorTypes = []weighted[Type]{
	{TypeEmpty, 10},
	{TypeAsteroidField, 40},
	{TypeDebrisField, 40},
	{TypeAbandonedStation, 10},
}

type Sector struct {
	GridX     int     `json:"grid_x"`
	GridY     int     `json:"grid_y"`
	X         float64 `json:"x"`
	Y         float64 `json:"y"`
	Size      float64 `json:"size"`
	Type      Type    `json:"type"`
	Generated bool    `json:"generated"`
	Active    bool    `json:"active"`
}

// Contains reports whether (x, y) lies in [X, X+Size) x [Y, Y+Size).
func (s Sector) Contains(x, y float64) bool {
	return x >= s.X && x < s.X+s.Size && y >= s.Y && y < s.Y+s.Size
}

// Bounds is the size of the world rectangle anchored at the origin.
type Bounds struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

type GridPoint struct {
	X int `json:"x"`
	Y int `json:"y"`
}

type Stats struct {
	Sectors          int `json:"sectors"`
	GeneratedSectors int `json:"generated_sectors"`
	ActiveSectors    int `json:"active_sectors"`
	Resources        int `json:"resources"`
	ActiveResources  int `json:"active_resources"`
	Obstacles        int `json:"obstacles"`
	ActiveObstacles  int `json:"active_obstacles"`
}

// TypeAt derives the type of the sector at (gridX, gridY). The result depends
// on the coordinates only.
func TypeAt(gridX, gridY int) Type {
	return pick(NewStream(Seed(gridX, gridY), labelType), sectorTypes)
}
