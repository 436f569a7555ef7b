package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/redis/go-redis/v9"

	"github.com/rocketscienceinc/tictactoe-table/internal/entity"
)

// Publisher - pushes every table view to a pub/sub channel. Nothing is kept
// in keys, late subscribers only see later transitions.
type Publisher struct {
	logger  *slog.Logger
	client  *redis.Client
	channel string
}

func NewPublisher(logger *slog.Logger, client *redis.Client, channel string) *Publisher {
	return &Publisher{
		logger:  logger.With("component", "redis-publisher"),
		client:  client,
		channel: channel,
	}
}

// Notify - publishes the view as JSON.
func (that *Publisher) Notify(ctx context.Context, view entity.View) error {
	viewJSON, err := json.Marshal(view)
	if err != nil {
		return fmt.Errorf("could not marshal view: %w", err)
	}

	if err = that.client.Publish(ctx, that.channel, viewJSON).Err(); err != nil {
		return fmt.Errorf("failed to publish view: %w", err)
	}

	return nil
}

// Subscribe - decodes views published on the channel until ctx is done.
// The returned channel is closed when the subscription ends.
func (that *Publisher) Subscribe(ctx context.Context) (<-chan entity.View, error) {
	log := that.logger.With("method", "Subscribe")

	pubsub := that.client.Subscribe(ctx, that.channel)

	// wait for the confirmation so no message published after return is lost
	if _, err := pubsub.Receive(ctx); err != nil {
		_ = pubsub.Close()
		return nil, fmt.Errorf("failed to subscribe to %s: %w", that.channel, err)
	}

	views := make(chan entity.View)

	go func() {
		defer close(views)
		defer pubsub.Close()

		messages := pubsub.Channel()
		for {
			select {
			case <-ctx.Done():
				return
			case msg, ok := <-messages:
				if !ok {
					return
				}

				var view entity.View
				if err := json.Unmarshal([]byte(msg.Payload), &view); err != nil {
					log.Error("failed to unmarshal view", "error", err)
					continue
				}

				select {
				case views <- view:
				case <-ctx.Done():
					return
				}
			}
		}
	}()

	return views, nil
}
