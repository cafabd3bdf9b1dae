package shutdown

import (
	"context"
	"os"
	"sync"
	palSignal "udpreceiver/infrastructure/PAL/signal"
	"udpreceiver/presentation/signals"

	"github.com/rs/zerolog"
)

type Handler struct {
	// appCtx is the application context. Once it is done the handler stops
	// listening for signals.
	appCtx context.Context
	// appCtxCancel cancels appCtx when a shutdown signal arrives.
	appCtxCancel context.CancelFunc
	signalChan   chan os.Signal
	once         sync.Once
	// signalProvider supplies the shutdown signal set for the current platform.
	signalProvider palSignal.Provider
	// notifier subscribes to and unsubscribes from OS signals.
	notifier signals.Notifier
	logger   zerolog.Logger
}

func NewHandler(
	appCtx context.Context,
	appCtxCancel context.CancelFunc,
	signalProvider palSignal.Provider,
	notifier signals.Notifier,
	logger zerolog.Logger,
) signals.Handler {
	return &Handler{
		appCtx:       appCtx,
		appCtxCancel: appCtxCancel,
		// os/signal sends without blocking, an unbuffered channel could drop the signal.
		signalChan:     make(chan os.Signal, 1),
		signalProvider: signalProvider,
		notifier:       notifier,
		logger:         logger,
	}
}

func (h *Handler) Handle() {
	h.once.Do(func() {
		h.listenAndHandleShutdownSignals()
	})
}

func (h *Handler) listenAndHandleShutdownSignals() {
	h.subscribe()
	go func() {
		defer h.unsubscribe()
		select {
		case sig := <-h.signalChan:
			h.logger.Info().Str("signal", sig.String()).Msg("shutdown signal received, shutting down")
			h.appCtxCancel()
		case <-h.appCtx.Done():
		}
	}()
}

func (h *Handler) subscribe() {
	h.notifier.Notify(h.signalChan, h.signalProvider.ShutdownSignals()...)
}

func (h *Handler) unsubscribe() {
	h.notifier.Stop(h.signalChan)
}
