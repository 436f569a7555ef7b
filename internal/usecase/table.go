package usecase

import (
	"context"
	"log/slog"
	"sync"

	"github.com/rocketscienceinc/tictactoe-table/internal/entity"
)

// Observer is notified with the new view after every successful transition.
type Observer interface {
	Notify(ctx context.Context, view entity.View) error
}

type gameController interface {
	Place(cell int) error
	NewRound()
	ResetScores()
	View() entity.View
}

type TableUseCase interface {
	State(ctx context.Context) entity.View
	Place(ctx context.Context, cell int) entity.View
	NewRound(ctx context.Context) entity.View
	ResetScores(ctx context.Context) entity.View

	Subscribe(observer Observer)
}

// table serialises interactions: each one runs to completion under mu.
type table struct {
	logger *slog.Logger

	mu   sync.Mutex
	game gameController

	observersMu sync.RWMutex
	observers   []Observer
}

func NewTableUseCase(logger *slog.Logger, game gameController) TableUseCase {
	return &table{
		logger: logger.With("component", "table"),
		game:   game,
	}
}

func (that *table) Subscribe(observer Observer) {
	that.observersMu.Lock()
	defer that.observersMu.Unlock()

	that.observers = append(that.observers, observer)
}

func (that *table) State(_ context.Context) entity.View {
	that.mu.Lock()
	defer that.mu.Unlock()

	return that.game.View()
}

func (that *table) Place(ctx context.Context, cell int) entity.View {
	log := that.logger.With("method", "Place", "cell", cell)

	that.mu.Lock()
	defer that.mu.Unlock()

	if err := that.game.Place(cell); err != nil {
		log.Debug("click ignored", "reason", err)
		return that.game.View()
	}

	view := that.game.View()
	if view.Winner != entity.EmptyCell {
		log.Info("round won", "winner", view.Winner, "round", view.Round)
	} else if view.Draw {
		log.Info("round drawn", "round", view.Round)
	}

	that.notify(ctx, view)

	return view
}

func (that *table) NewRound(ctx context.Context) entity.View {
	that.mu.Lock()
	defer that.mu.Unlock()

	that.game.NewRound()

	view := that.game.View()
	that.logger.Info("new round started", "round", view.Round)
	that.notify(ctx, view)

	return view
}

func (that *table) ResetScores(ctx context.Context) entity.View {
	that.mu.Lock()
	defer that.mu.Unlock()

	that.game.ResetScores()

	view := that.game.View()
	that.logger.Info("scores reset")
	that.notify(ctx, view)

	return view
}

// notify - observer failures are logged, the interaction already happened.
func (that *table) notify(ctx context.Context, view entity.View) {
	log := that.logger.With("method", "notify")

	that.observersMu.RLock()
	observers := make([]Observer, len(that.observers))
	copy(observers, that.observers)
	that.observersMu.RUnlock()

	for _, observer := range observers {
		if err := observer.Notify(ctx, view); err != nil {
			log.Error("failed to notify observer", "error", err)
		}
	}
}
