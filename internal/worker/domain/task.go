package domain

// Task represents a task row loaded for worker processing
type Task struct {
	TaskID         string
	TaskType       string
	Payload        string // JSON string
	Status         string
	WorkerID       string
	RetryCount     int
	MaxRetries     int
	TimeoutSeconds int
}

// TaskMessage represents a task message from RabbitMQ
type TaskMessage struct {
	TaskID      string `json:"task_id"`
	DeliveryTag uint64 `json:"-"`
}

// ScrapePayload is the payload for scrape_jobs tasks
type ScrapePayload struct {
	Query    string `json:"query"`
	Location string `json:"location"`
	Limit    int    `json:"limit"`
}

// AnalyzePayload is the payload for analyze_job tasks
type AnalyzePayload struct {
	AnalysisID int64   `json:"analysis_id"`
	JobID      int64   `json:"job_id"`
	UserID     *string `json:"user_id,omitempty"`
}

// CleanupPayload is the payload for cleanup_jobs tasks
type CleanupPayload struct {
	MaxAgeDays int `json:"max_age_days"`
}
