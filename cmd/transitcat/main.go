// Command transitcat builds, queries, and serves a public-transport
// catalogue from a JSON request document, following the make_base /
// process_requests / serve contract.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/antigravity/transitcat/internal/audit"
	"github.com/antigravity/transitcat/internal/config"
	"github.com/antigravity/transitcat/internal/handler"
	"github.com/antigravity/transitcat/internal/httpapi"
	"github.com/antigravity/transitcat/internal/ingest"
	"github.com/antigravity/transitcat/internal/logging"
	"github.com/antigravity/transitcat/internal/persist"
	"github.com/antigravity/transitcat/internal/schema"
	"github.com/antigravity/transitcat/internal/transit"
	"github.com/antigravity/transitcat/internal/validation"
)

var (
	logLevel  string
	logFormat string
	statePath string
	auditDSN  string
	listen    string
)

func main() {
	root := &cobra.Command{
		Use:   "transitcat",
		Short: "Public-transport catalogue, router, and map renderer",
	}
	root.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level: debug, info, warn, error")
	root.PersistentFlags().StringVar(&logFormat, "log-format", "", "log format: json or console")
	root.PersistentFlags().StringVar(&statePath, "state", "", "state path resolved into config; make_base and process_requests read serialization_settings.file instead")
	root.PersistentFlags().StringVar(&auditDSN, "audit-dsn", "", "Postgres DSN for the audit sink; empty disables it")

	root.AddCommand(makeBaseCmd())
	root.AddCommand(processRequestsCmd())
	root.AddCommand(serveCmd())

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

func resolveConfig(cmd *cobra.Command) (config.Config, error) {
	cfg, err := config.Load(cmd.Flags())
	if err != nil {
		return config.Config{}, err
	}
	return cfg, nil
}

func buildLogger(cfg config.Config) *zap.Logger {
	level := logging.LevelInfo
	switch cfg.LogLevel {
	case "debug":
		level = logging.LevelDebug
	case "warn":
		level = logging.LevelWarn
	case "error":
		level = logging.LevelError
	}
	return logging.New(logging.Config{Level: level, Format: cfg.LogFormat})
}

func decodeDocument(r io.Reader) (schema.Document, error) {
	var doc schema.Document
	dec := json.NewDecoder(r)
	if err := dec.Decode(&doc); err != nil {
		return schema.Document{}, fmt.Errorf("decode request document: %w", err)
	}
	if err := validation.Document(&doc); err != nil {
		return schema.Document{}, err
	}
	return doc, nil
}

func makeBaseCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "make_base",
		Short: "Read a request document on stdin and persist the compiled catalogue",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := resolveConfig(cmd)
			if err != nil {
				return err
			}
			logger := buildLogger(cfg)
			defer logger.Sync()
			correlationID := uuid.NewString()
			logger = logger.With(zap.String("correlation_id", correlationID))

			doc, err := decodeDocument(cmd.InOrStdin())
			if err != nil {
				logger.Error("invalid request document", zap.Error(err))
				return err
			}
			if doc.SerializationSettings == nil || doc.SerializationSettings.File == "" {
				return fmt.Errorf("make_base: serialization_settings.file is required")
			}
			if doc.RenderSettings == nil || doc.RoutingSettings == nil {
				return fmt.Errorf("make_base: render_settings and routing_settings are required")
			}

			cat, err := ingest.Catalogue(doc.BaseRequests)
			if err != nil {
				logger.Error("catalogue build failed", zap.Error(err))
				return err
			}
			renderSettings, err := ingest.RenderSettings(doc.RenderSettings)
			if err != nil {
				return err
			}
			routingSettings := persist.RoutingSettings{
				BusWaitTimeMinutes: doc.RoutingSettings.BusWaitTime,
				BusVelocityKmh:     doc.RoutingSettings.BusVelocity,
			}

			f, err := os.Create(doc.SerializationSettings.File)
			if err != nil {
				return fmt.Errorf("make_base: create %q: %w", doc.SerializationSettings.File, err)
			}
			defer f.Close()

			if err := persist.Save(f, cat, renderSettings, routingSettings); err != nil {
				logger.Error("persist failed", zap.Error(err))
				return err
			}
			logger.Info("catalogue persisted", zap.String("path", doc.SerializationSettings.File))
			return nil
		},
	}
}

func processRequestsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "process_requests",
		Short: "Read a request document on stdin and print the reply array on stdout",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := resolveConfig(cmd)
			if err != nil {
				return err
			}
			logger := buildLogger(cfg)
			defer logger.Sync()
			correlationID := uuid.NewString()
			logger = logger.With(zap.String("correlation_id", correlationID))

			doc, err := decodeDocument(cmd.InOrStdin())
			if err != nil {
				logger.Error("invalid request document", zap.Error(err))
				return err
			}
			if doc.SerializationSettings == nil || doc.SerializationSettings.File == "" {
				return fmt.Errorf("process_requests: serialization_settings.file is required")
			}

			f, err := os.Open(doc.SerializationSettings.File)
			if err != nil {
				return fmt.Errorf("process_requests: open %q: %w", doc.SerializationSettings.File, err)
			}
			defer f.Close()

			snap, err := persist.Load(f)
			if err != nil {
				logger.Error("load failed", zap.Error(err))
				return err
			}

			router, err := transit.Build(snap.Catalogue, transit.Settings{
				BusWaitTimeMinutes: snap.Routing.BusWaitTimeMinutes,
				BusVelocityKmh:     snap.Routing.BusVelocityKmh,
			})
			if err != nil {
				logger.Error("routing graph build failed", zap.Error(err))
				return err
			}

			auditDSN := cfg.AuditDSN
			sink, err := audit.Connect(cmd.Context(), auditDSN, logger)
			if err != nil {
				logger.Warn("audit sink unavailable, continuing without it", zap.Error(err))
				sink = nil
			}
			defer sink.Close()

			h := handler.New(snap.Catalogue, router, snap.Render, sink, logger)
			replies := h.Answer(correlationID, doc.StatRequests)

			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(replies)
		},
	}
}

func serveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve base/requests/health over HTTP, reusing the request-document contract",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := resolveConfig(cmd)
			if err != nil {
				return err
			}
			logger := buildLogger(cfg)
			defer logger.Sync()

			sink, err := audit.Connect(context.Background(), cfg.AuditDSN, logger)
			if err != nil {
				logger.Warn("audit sink unavailable, continuing without it", zap.Error(err))
				sink = nil
			}
			defer sink.Close()

			srv := httpapi.New(sink, logger)
			logger.Info("listening", zap.String("addr", listen))
			return http.ListenAndServe(listen, srv)
		},
	}
	cmd.Flags().StringVar(&listen, "listen", ":8080", "HTTP listen address")
	return cmd
}
