package monitor_status

import "github.com/m04kA/SMC-TelegramMonitor/internal/domain"

// MonitorController интерфейс контроллера мониторинга
type MonitorController interface {
	Status() *domain.MonitorStatus
}
