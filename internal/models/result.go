package models

// SimilarMatch is one hit from the vector index, aggregated per analysis.
type SimilarMatch struct {
	AnalysisID string  `json:"analysis_id"`
	Score      float32 `json:"score"`
	Snippet    string  `json:"snippet"`
}

type SimilarResponse struct {
	ID      string         `json:"id"`
	Matches []SimilarMatch `json:"matches"`
}

type ListResponse struct {
	Count    int        `json:"count"`
	Analyses []Analysis `json:"analyses"`
}
