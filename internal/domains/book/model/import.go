package model

// ImportRowError reports one rejected row by its 1-based data row number
type ImportRowError struct {
	Row     int    `json:"row"`
	Message string `json:"message"`
}

// ImportResult summarizes a bulk import. Imports are best-effort: valid
// rows are committed even when other rows fail.
type ImportResult struct {
	Total     int              `json:"total"`
	Succeeded int              `json:"succeeded"`
	Failed    int              `json:"failed"`
	Errors    []ImportRowError `json:"errors,omitempty"`
}
