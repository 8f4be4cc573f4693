package models

// StartResponse результат запуска мониторинга
type StartResponse struct {
	Result  string `json:"result"`
	Message string `json:"message"`
}
