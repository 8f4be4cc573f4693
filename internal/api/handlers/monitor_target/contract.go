package monitor_target

// MonitorController интерфейс контроллера мониторинга
type MonitorController interface {
	SetTarget(chatID int64)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
}
