package levin

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBatch(t *testing.T) {
	t.Run("leaves requested dialogs", func(t *testing.T) {
		cl := &fakeTelegram{dialogs: stubDialogs(t)}
		require.NoError(t, Batch(context.Background(), cl, []int64{2, 3}, false))
		assert.Equal(t, []int64{2, 3}, cl.deleted)
	})
	t.Run("unknown id is skipped, not fatal", func(t *testing.T) {
		cl := &fakeTelegram{dialogs: stubDialogs(t)}
		require.NoError(t, Batch(context.Background(), cl, []int64{99, 1}, false))
		assert.Equal(t, []int64{1}, cl.deleted)
	})
	t.Run("dry run deletes nothing", func(t *testing.T) {
		cl := &fakeTelegram{dialogs: stubDialogs(t)}
		require.NoError(t, Batch(context.Background(), cl, []int64{1, 2, 3}, true))
		assert.Empty(t, cl.deleted)
	})
	t.Run("delete errors do not stop the batch", func(t *testing.T) {
		cl := &fakeTelegram{dialogs: stubDialogs(t), deleteErr: errBroken}
		require.NoError(t, Batch(context.Background(), cl, []int64{1, 2}, false))
		assert.Empty(t, cl.deleted)
	})
	t.Run("dialog list failure is fatal", func(t *testing.T) {
		cl := &fakeTelegram{getErr: errBroken}
		assert.ErrorIs(t, Batch(context.Background(), cl, []int64{1}, false), errBroken)
	})
}

func Test_findByID(t *testing.T) {
	dialogs := stubDialogs(t)

	d, err := findByID(dialogs, 2)
	require.NoError(t, err)
	assert.Equal(t, int64(2), d.ID())

	_, err = findByID(dialogs, 42)
	assert.ErrorIs(t, err, ErrNotFound)
}
