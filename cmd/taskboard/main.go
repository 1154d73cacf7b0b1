package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/alexanderramin/taskboard/internal/api"
	"github.com/alexanderramin/taskboard/internal/config"
	"github.com/alexanderramin/taskboard/internal/db"
	"github.com/alexanderramin/taskboard/internal/repository"
	"github.com/alexanderramin/taskboard/internal/service"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	logger := newLogger()

	root := &cobra.Command{
		Use:   "taskboard",
		Short: "Multi-tenant project and todo backend",
	}
	root.AddCommand(
		newServeCmd(logger),
		newMigrateCmd(logger),
	)
	return root.Execute()
}

// newLogger picks a text handler on interactive terminals and JSON otherwise.
func newLogger() *slog.Logger {
	var handler slog.Handler
	if isatty.IsTerminal(os.Stderr.Fd()) || isatty.IsCygwinTerminal(os.Stderr.Fd()) {
		handler = slog.NewTextHandler(os.Stderr, nil)
	} else {
		handler = slog.NewJSONHandler(os.Stderr, nil)
	}
	return slog.New(handler)
}

func newServeCmd(logger *slog.Logger) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API server",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.Load()
			if addr, _ := cmd.Flags().GetString("addr"); addr != "" {
				cfg.Addr = addr
			}
			if dbPath, _ := cmd.Flags().GetString("db"); dbPath != "" {
				cfg.DBPath = dbPath
			}
			return serve(cmd.Context(), logger, cfg)
		},
	}
	cmd.Flags().String("addr", "", "listen address (overrides TASKBOARD_ADDR)")
	cmd.Flags().String("db", "", "SQLite database path (overrides TASKBOARD_DB)")
	return cmd
}

func newMigrateCmd(logger *slog.Logger) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply database migrations and exit",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.Load()
			database, err := db.OpenDB(cfg.DBPath)
			if err != nil {
				return fmt.Errorf("opening database: %w", err)
			}
			defer database.Close()
			logger.Info("migrations applied", "db", cfg.DBPath)
			return nil
		},
	}
}

func serve(ctx context.Context, logger *slog.Logger, cfg config.Config) error {
	database, err := db.OpenDB(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer database.Close()

	userRepo := repository.NewSQLiteUserRepo(database)
	tokenRepo := repository.NewSQLiteTokenRepo(database)
	resetRepo := repository.NewSQLitePasswordResetRepo(database)
	projectRepo := repository.NewSQLiteProjectRepo(database)
	milestoneRepo := repository.NewSQLiteMilestoneRepo(database)
	categoryRepo := repository.NewSQLiteCategoryRepo(database)
	tagRepo := repository.NewSQLiteTagRepo(database)
	todoRepo := repository.NewSQLiteTodoRepo(database)
	commentRepo := repository.NewSQLiteCommentRepo(database)
	attachmentRepo := repository.NewSQLiteAttachmentRepo(database)
	recurringRepo := repository.NewSQLiteRecurringTaskRepo(database)
	activityRepo := repository.NewSQLiteActivityLogRepo(database)

	uow := db.NewSQLiteUnitOfWork(database)
	perms := service.NewPermissions(projectRepo, todoRepo)
	mailer := service.NewLogMailer(logger)

	server := api.NewServer(logger, cfg.AttachmentsDir, api.Services{
		Auth:        service.NewAuthService(userRepo, tokenRepo, resetRepo, mailer, cfg.BaseURL, cfg.ResetTokenTTL),
		Projects:    service.NewProjectService(projectRepo, perms),
		Milestones:  service.NewMilestoneService(milestoneRepo, perms),
		Categories:  service.NewCategoryService(categoryRepo, perms),
		Tags:        service.NewTagService(tagRepo, perms),
		Todos:       service.NewTodoService(todoRepo, uow, perms),
		Comments:    service.NewCommentService(commentRepo, perms),
		Attachments: service.NewAttachmentService(attachmentRepo, perms),
		Recurring:   service.NewRecurringTaskService(recurringRepo, perms),
		Activity:    service.NewActivityLogService(activityRepo, perms),
	})

	httpServer := &http.Server{
		Addr:              cfg.Addr,
		Handler:           server.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server listening", "addr", cfg.Addr)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return httpServer.Shutdown(shutdownCtx)
}
