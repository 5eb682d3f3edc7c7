package jobservice

// Job модель работы из JobService
type Job struct {
	ID         int64   `json:"id"`
	ClientID   int64   `json:"client_id"`
	CategoryID int64   `json:"category_id"`
	Title      string  `json:"title"`
	Status     string  `json:"status"`
	Location   *string `json:"location,omitempty"`
}

// ErrorResponse модель ошибки от JobService
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}
