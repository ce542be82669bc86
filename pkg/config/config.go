package config

// this holds the resolved configuration values from CLI
var (
	ConfigDir    string // directory holding the league config files
	DataDir      string // directory holding race documents and season data
	Season       int    // current season number
	LogLevel     string // sets the log level (zap log level values)
	LogFilter    string // zapfilter rules for selective debug output
	NoGapFilling bool   // leave unclaimed warm-start grid slots empty
	Seed         int64  // fixed seed for qualifying/grid draws (0 = random)
)
