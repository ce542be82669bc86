package model

// DriverStanding is one row of the season driver standings.
type DriverStanding struct {
	Position      int    `json:"position"`
	CarNumber     int    `json:"carNumber"`
	Driver        string `json:"driver"`
	Team          string `json:"team"`
	Points        int    `json:"points"`
	Behind        int    `json:"behind"`
	Starts        int    `json:"starts"`
	Wins          int    `json:"wins"`
	Top5s         int    `json:"top5s"`
	Top10s        int    `json:"top10s"`
	TurnsLed      int    `json:"turnsLed"`
	PlayoffPoints int    `json:"playoffPoints"`
}

// OwnerStanding is one row of the season owner standings. Owner is empty
// when the team has no owner mapping.
type OwnerStanding struct {
	Position int    `json:"position"`
	Owner    string `json:"owner"`
	Team     string `json:"team"`
	Points   int    `json:"points"`
	Behind   int    `json:"behind"`
	Wins     int    `json:"wins"`
	Top5s    int    `json:"top5s"`
	Top10s   int    `json:"top10s"`
}

// PlayoffStanding is one row of the playoff picture. Margin is the signed
// gap to the cutline ("+12", "-3"), empty while fewer than 13 drivers have
// scored.
type PlayoffStanding struct {
	Position      int    `json:"position"`
	CarNumber     int    `json:"carNumber"`
	Driver        string `json:"driver"`
	Team          string `json:"team"`
	PlayoffPoints int    `json:"playoffPoints"`
	Wins          int    `json:"wins"`
	Top5s         int    `json:"top5s"`
	Top10s        int    `json:"top10s"`
	TurnsLed      int    `json:"turnsLed"`
	Margin        string `json:"margin"`
}
