package smsprovider

// Запрос на отправку SMS через шлюз
type SendSMSRequest struct {
	Sender  string `json:"sender"`
	To      string `json:"to" validate:"required"`
	Message string `json:"message" validate:"required"`
}

// Ответ шлюза с идентификатором принятого сообщения
type SendSMSResponse struct {
	Success   bool   `json:"success"`
	MessageID string `json:"message_id"`
	ErrorText string `json:"error,omitempty"`
}
