package jobs

// Job is one internal posting in the catalog. Postings are seeded at process
// start and never mutated afterwards.
type Job struct {
	ID           string `json:"id"`
	Title        string `json:"title"`
	Department   string `json:"department"`
	Description  string `json:"description"`
	Requirements string `json:"requirements"`
	Location     string `json:"location"`
	GrowthPath   string `json:"growth_path"`
	PostedDate   string `json:"posted_date"`
	TeamSize     string `json:"team_size,omitempty"`
}
