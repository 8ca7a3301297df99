package league

type AccoladeType string

const (
	AccoladeIndividualScratchGame     AccoladeType = "IND-SCRATCH-GAME"
	AccoladeIndividualScratchSeries   AccoladeType = "IND-SCRATCH-SERIES"
	AccoladeTeamScratchGame           AccoladeType = "TEAM-SCRATCH-GAME"
	AccoladeTeamScratchSeries         AccoladeType = "TEAM-SCRATCH-SERIES"
	AccoladeIndividualGameOverAverage AccoladeType = "IND-GAME-OVER-AVERAGE"
	AccoladeIndividualSeriesOverAvg   AccoladeType = "IND-SERIES-OVER-AVERAGE"
	AccoladeIndividualHighAverage     AccoladeType = "IND-HIGH-AVERAGE"
)

// Accolade records who holds a league mark, when it was set and by how much.
type Accolade struct {
	Type        AccoladeType `json:"type"`
	ID          string       `json:"id"`
	Date        Date         `json:"when"`
	Value       float64      `json:"value"`
	Description string       `json:"description,omitempty"`
}

func NewAccolade(kind AccoladeType) Accolade {
	return Accolade{Type: kind, ID: UnknownID}
}
