package model

// PointsTable maps a finish place (as string, or the literal key "DNQ") to
// awarded points. Unknown keys are worth 0.
type PointsTable map[string]int

func (t PointsTable) For(pos Position) int {
	return t[pos.String()]
}

// PointsStructure bundles the three award tables of the league.
type PointsStructure struct {
	Points           PointsTable `json:"points"           yaml:"points"`
	PlayoffPoints    PointsTable `json:"playoffPoints"    yaml:"playoffPoints"`
	QualifyingPoints PointsTable `json:"qualifyingPoints" yaml:"qualifyingPoints"`
}
