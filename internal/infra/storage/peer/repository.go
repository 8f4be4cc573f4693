package peer

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-TelegramMonitor/internal/domain"
	"github.com/m04kA/SMC-TelegramMonitor/pkg/psqlbuilder"
	"github.com/m04kA/SMC-TelegramMonitor/pkg/txmanager"
)

const (
	tablePeers = "peers"

	// upsertBatchSize строк в одном INSERT; 5 параметров на строку держат запрос ниже лимита PostgreSQL
	upsertBatchSize = 1000
)

// Repository снимок справочника адресатов в PostgreSQL.
// Хранит только отображаемые данные, содержимое сообщений сюда не попадает.
type Repository struct {
	db        DBExecutor
	txManager TxManager
}

// NewRepository создает новый экземпляр репозитория адресатов
func NewRepository(db DBExecutor, txManager TxManager) *Repository {
	return &Repository{
		db:        db,
		txManager: txManager,
	}
}

// SavePeers сохраняет снимок одной транзакцией, обновляя уже известных адресатов
func (r *Repository) SavePeers(ctx context.Context, peers []domain.PeerInfo) error {
	if len(peers) == 0 {
		return nil
	}

	return r.txManager.Do(ctx, func(ctx context.Context) error {
		for start := 0; start < len(peers); start += upsertBatchSize {
			end := start + upsertBatchSize
			if end > len(peers) {
				end = len(peers)
			}

			if err := r.upsert(ctx, peers[start:end]); err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *Repository) upsert(ctx context.Context, peers []domain.PeerInfo) error {
	executor := txmanager.GetExecutor(ctx, r.db)

	query, args, err := buildUpsert(peers).ToSql()
	if err != nil {
		return fmt.Errorf("%w: SavePeers - build upsert query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: SavePeers - execute upsert: %v", ErrExecQuery, err)
	}

	return nil
}

func buildUpsert(peers []domain.PeerInfo) squirrel.InsertBuilder {
	builder := psqlbuilder.Insert(tablePeers).
		Columns("kind", "peer_id", "title", "username", "access_hash", "updated_at")

	for _, p := range peers {
		builder = builder.Values(string(p.Ref.Kind), p.Ref.ID, p.Title, p.Username, p.AccessHash, squirrel.Expr("NOW()"))
	}

	return builder.Suffix(`ON CONFLICT (kind, peer_id) DO UPDATE SET
		title = EXCLUDED.title,
		username = EXCLUDED.username,
		access_hash = CASE WHEN EXCLUDED.access_hash <> 0 THEN EXCLUDED.access_hash ELSE peers.access_hash END,
		updated_at = EXCLUDED.updated_at`)
}

// LoadPeers читает весь снимок
func (r *Repository) LoadPeers(ctx context.Context) ([]domain.PeerInfo, error) {
	executor := txmanager.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("kind", "peer_id", "title", "username", "access_hash").
		From(tablePeers).
		OrderBy("kind", "peer_id").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: LoadPeers - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: LoadPeers - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	peers := make([]domain.PeerInfo, 0)
	for rows.Next() {
		var (
			kind string
			info domain.PeerInfo
		)
		if err := rows.Scan(&kind, &info.Ref.ID, &info.Title, &info.Username, &info.AccessHash); err != nil {
			return nil, fmt.Errorf("%w: LoadPeers - scan row: %v", ErrScanRow, err)
		}

		info.Ref.Kind, err = parseKind(kind)
		if err != nil {
			return nil, fmt.Errorf("LoadPeers - peer %d: %w", info.Ref.ID, err)
		}

		peers = append(peers, info)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: LoadPeers - rows error: %v", ErrScanRow, err)
	}

	return peers, nil
}

func parseKind(kind string) (domain.PeerKind, error) {
	switch k := domain.PeerKind(kind); k {
	case domain.PeerKindUser, domain.PeerKindChat, domain.PeerKindChannel:
		return k, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidKind, kind)
	}
}
