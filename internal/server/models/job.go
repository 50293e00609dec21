package models

// ThumbnailJob asks the pipeline to derive renditions of one image.
type ThumbnailJob struct {
	FileID string `json:"fileId"`
	UserID string `json:"userId"`
}

// ThumbnailOutcome is the result of deriving a single width.
type ThumbnailOutcome struct {
	Width int
	Path  string
	Err   error
}

// ThumbnailResult aggregates the per-width outcomes of a job.
type ThumbnailResult struct {
	FileID   string
	Outcomes []ThumbnailOutcome
}

// Succeeded returns the number of widths written successfully.
func (r ThumbnailResult) Succeeded() int {
	n := 0
	for _, o := range r.Outcomes {
		if o.Err == nil {
			n++
		}
	}
	return n
}
