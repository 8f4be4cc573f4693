package psqlbuilder

import (
	"testing"

	"github.com/Masterminds/squirrel"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSelect_UsesDollarPlaceholders(t *testing.T) {
	query, args, err := Select("peer_id", "title").
		From("peers").
		Where(squirrel.Eq{"kind": "channel"}).
		Where(squirrel.Gt{"peer_id": 10}).
		ToSql()

	require.NoError(t, err)
	assert.Equal(t, "SELECT peer_id, title FROM peers WHERE kind = $1 AND peer_id > $2", query)
	assert.Equal(t, []interface{}{"channel", 10}, args)
}

func TestInsert_WithSuffix(t *testing.T) {
	query, args, err := Insert("peers").
		Columns("kind", "peer_id").
		Values("user", int64(1)).
		Suffix("ON CONFLICT (kind, peer_id) DO NOTHING").
		ToSql()

	require.NoError(t, err)
	assert.Equal(t, "INSERT INTO peers (kind,peer_id) VALUES ($1,$2) ON CONFLICT (kind, peer_id) DO NOTHING", query)
	assert.Len(t, args, 2)
}
