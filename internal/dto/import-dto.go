package dto

type ImportSummaryDTO struct {
	BatchID         string   `json:"batch_id"`
	DryRun          bool     `json:"dry_run"`
	CartonsCreated  int      `json:"cartons_created"`
	CartonsExisting int      `json:"cartons_existing"`
	PostsCreated    int      `json:"posts_created"`
	UnitsCreated    int      `json:"units_created"`
	UnitsUpdated    int      `json:"units_updated"`
	Errors          int      `json:"errors"`
	ErrorSamples    []string `json:"error_samples,omitempty"`
}

type GPSBackfillResultDTO struct {
	Updated int `json:"updated"`
}
