package monitor

import "errors"

var (
	// ErrConnect возвращается, если клиент не смог подключиться
	ErrConnect = errors.New("service.monitor: failed to connect client")

	// ErrLoadDialogs возвращается при ошибке загрузки диалогов
	ErrLoadDialogs = errors.New("service.monitor: failed to load dialogs")

	// ErrResolveSelf возвращается, если не удалось получить данные аккаунта
	ErrResolveSelf = errors.New("service.monitor: failed to resolve current user")

	// ErrScheduleRefresh возвращается, если не удалось запланировать обновление справочника
	ErrScheduleRefresh = errors.New("service.monitor: failed to schedule directory refresh")
)
