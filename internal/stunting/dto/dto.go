package dto

// CalculateRequest carries the raw growth-check input.
type CalculateRequest struct {
	Gender    string  `json:"gender" validate:"required,oneof=boys girls"`
	Height    float64 `json:"height" validate:"required,gte=10,lte=200"`
	BirthDate string  `json:"birth_date" validate:"required,datetime=2006-01-02"`
}

// Standards holds one WHO length/height-for-age row: the SD band cutoffs in
// centimeters for a single (gender, age-in-months) combination.
type Standards struct {
	SD3neg float64 `json:"sd3neg"`
	SD2neg float64 `json:"sd2neg"`
	SD1neg float64 `json:"sd1neg"`
	Median float64 `json:"median"`
	SD1    float64 `json:"sd1"`
	SD2    float64 `json:"sd2"`
	SD3    float64 `json:"sd3"`
}

// Interpretation is the human-readable reading attached to a classification.
type Interpretation struct {
	Title          string `json:"title"`
	Description    string `json:"description"`
	Recommendation string `json:"recommendation"`
	Color          string `json:"color"`
}

// CalculateResult is the full growth-check outcome returned to clients.
type CalculateResult struct {
	AgeMonths      int            `json:"age_months"`
	Height         float64        `json:"height"`
	MedianHeight   float64        `json:"median_height"`
	HazScore       float64        `json:"haz_score"`
	Status         string         `json:"status"`
	Standards      Standards      `json:"standards"`
	Interpretation Interpretation `json:"interpretation"`
}
