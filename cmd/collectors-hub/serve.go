package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/TheRealTradeX/ARG-Collectors-Hub/internal/server"
)

func serveCmd() *cobra.Command {
	var address string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the JSON API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			store, err := openStore()
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			if address == "" {
				address = conf.Server.Address
			}

			httpServer := &http.Server{
				Addr:              address,
				Handler:           server.NewHandler(store, logger, version),
				ReadHeaderTimeout: 10 * time.Second,
			}

			errChan := make(chan error, 1)
			go func() {
				logger.Info("serving API", zap.String("op", "serve"), zap.String("address", address))
				errChan <- httpServer.ListenAndServe()
			}()

			select {
			case err := <-errChan:
				if err != nil && !errors.Is(err, http.ErrServerClosed) {
					return fmt.Errorf("server failed: %w", err)
				}
				return nil
			case <-cmd.Context().Done():
			}

			shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer shutdownCancel()

			if err := httpServer.Shutdown(shutdownCtx); err != nil {
				logger.Error("server shutdown error", zap.String("op", "serve"), zap.Error(err))
				return err
			}
			logger.Info("server stopped gracefully", zap.String("op", "serve"))
			return nil
		},
	}

	cmd.Flags().StringVarP(&address, "address", "a", "", "listen address (default from config)")
	return cmd
}
