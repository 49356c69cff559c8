package notifier

// Notification уведомление для шлюза push-доставки
type Notification struct {
	RecipientID    int64  `json:"recipientId"`
	Title          string `json:"title"`
	Body           string `json:"body"`
	LinkedRecordID string `json:"linkedRecordId,omitempty"` // например "booking:42"
}

// ErrorResponse модель ошибки шлюза
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}
