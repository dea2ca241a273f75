package dto

// Bucket a (month, year) pair
type Bucket struct {
	Month int `json:"month"`
	Year  int `json:"year"`
}

// ImportResponse bulk import summary
type ImportResponse struct {
	Rows    int             `json:"rows"`
	Buckets []Bucket        `json:"buckets"`
	Scores  []ScoreResponse `json:"scores"`
}
