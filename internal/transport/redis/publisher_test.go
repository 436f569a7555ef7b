package redis

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/tictactoe-table/internal/entity"
	"github.com/rocketscienceinc/tictactoe-table/testing/suite"
)

const receiveTimeout = 5 * time.Second

func TestPublisher_NotifyAndSubscribe(t *testing.T) {
	ctx, st := suite.New(t)

	publisher := NewPublisher(st.Logger, st.Redis.Connection, "tictactoe:test")

	// Given: a subscriber on the channel
	views, err := publisher.Subscribe(ctx)
	require.NoError(t, err)

	board := entity.Board{entity.PlayerX, entity.PlayerO, entity.PlayerO, entity.PlayerX, "", "", entity.PlayerX}
	sent := entity.NewView(board, entity.PlayerO, entity.Scores{X: 1}, 1)

	// When: a view is published
	require.NoError(t, publisher.Notify(ctx, sent))

	// Then: the subscriber receives the same view
	select {
	case got := <-views:
		assert.Equal(t, sent, got)
		assert.Equal(t, "Winner: X", got.Status)
	case <-time.After(receiveTimeout):
		t.Fatal("view was not received")
	}
}

func TestPublisher_NotifyWithoutSubscribers(t *testing.T) {
	ctx, st := suite.New(t)

	publisher := NewPublisher(st.Logger, st.Redis.Connection, "tictactoe:nobody")

	// When: nobody listens
	err := publisher.Notify(ctx, entity.NewView(entity.Board{}, entity.PlayerX, entity.Scores{}, 1))

	// Then: publishing still succeeds
	require.NoError(t, err)
}
