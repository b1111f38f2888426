package progress

// Realtime event names pushed to a user's room.
const (
	FileProcessing = "file_processing_progress"
	AIAnalysis     = "ai_analysis_progress"
	ProcessingErr  = "processing_error"
)

type Event struct {
	Progress int    `json:"progress"`
	Message  string `json:"message"`
	Result   any    `json:"result,omitempty"`
}
