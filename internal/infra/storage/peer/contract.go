package peer

import (
	"context"

	"github.com/m04kA/SMC-TelegramMonitor/pkg/txmanager"
)

// DBExecutor общий интерфейс *sql.DB и *sql.Tx
type DBExecutor = txmanager.DBExecutor

// TxManager выполняет функцию в транзакции
type TxManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}
