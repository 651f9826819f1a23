// Package constants provides shared constants for the artillery-calculator application.
package constants

// Rounding constants
const (
	// DecimalPrecision is the precision for reported results (1 decimal place)
	DecimalPrecision = 10

	// AngleTolerance is the tolerance for azimuth comparisons in degrees
	AngleTolerance = 1e-9

	// DistanceTolerance is the tolerance for distance comparisons in meters
	DistanceTolerance = 1e-9
)

// Compass constants
const (
	// FullTurn is the number of degrees in a full compass turn
	FullTurn = 360.0

	// HalfTurn is the number of degrees in half a compass turn
	HalfTurn = 180.0

	// QuarterTurn rotates compass bearings onto the mathematical angle convention
	QuarterTurn = 90.0
)

// Wind constants
const (
	// MinWindLevel means no wind
	MinWindLevel = 0

	// MaxWindLevel is the strongest wind level observable in game
	MaxWindLevel = 5

	// LightDeviationPerLevel is the wind displacement per level for 120mm, 150mm and rocket artillery
	LightDeviationPerLevel = 10.0

	// HeavyDeviationPerLevel is the wind displacement per level for 300mm artillery
	HeavyDeviationPerLevel = 50.0
)

// Group grid constants
const (
	// GridSizeX is the number of cells along the grid X axis
	GridSizeX = 50

	// GridSizeY is the number of cells along the grid Y axis
	GridSizeY = 20

	// CellSize is the size of one grid cell in meters
	CellSize = 1.0

	// CentralUnitNumber is the display number of the central unit
	CentralUnitNumber = 1
)

// Approximation limits
const (
	// MaxBearingSpread is the target/impact bearing difference in degrees
	// above which the triangulation correction loses accuracy
	MaxBearingSpread = 10.0

	// MaxGroupSpreadRatio is the grid offset to range ratio above which the
	// group corrections lose accuracy
	MaxGroupSpreadRatio = 0.1
)

// Calculation modes
const (
	// ModeDirect computes a firing solution from artillery and target observations
	ModeDirect = "direct"

	// ModeTriangulation computes a correction from target and impact observations
	ModeTriangulation = "triangulation"

	// ModeGroup computes per-unit corrections for a group of pieces
	ModeGroup = "group"
)

// Output format constants
const (
	// OutputFormatPretty is the human-readable output format
	OutputFormatPretty = "pretty"

	// OutputFormatCSV is the CSV output format
	OutputFormatCSV = "csv"

	// OutputFormatJSON is the JSON output format
	OutputFormatJSON = "json"
)

// Configuration file constants
const (
	// DefaultConfigFile is the default mission file name
	DefaultConfigFile = "mission.yaml"

	// ExampleConfigFile is the example mission file name
	ExampleConfigFile = "mission.yaml.example"

	// DefaultServerConfigFile is the default server configuration file name
	DefaultServerConfigFile = "server-config.yaml"
)

// Server configuration defaults
const (
	// DefaultServerAddress is the default HTTP listen address for the API
	DefaultServerAddress = ":8080"

	// DefaultMaxBodySizeBytes is the default maximum request body size (64 KB)
	DefaultMaxBodySizeBytes int64 = 64 * 1024

	// DefaultShutdownTimeoutSeconds bounds graceful shutdown of the HTTP server
	DefaultShutdownTimeoutSeconds = 30
)
