package main

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/opsdesk/opsdesk/internal/config"
	"github.com/opsdesk/opsdesk/internal/domain/client"
	"github.com/opsdesk/opsdesk/internal/domain/company"
	"github.com/opsdesk/opsdesk/internal/domain/contact"
	"github.com/opsdesk/opsdesk/internal/domain/invoice"
	"github.com/opsdesk/opsdesk/internal/domain/org"
	"github.com/opsdesk/opsdesk/internal/domain/project"
	"github.com/opsdesk/opsdesk/internal/domain/task"
	"github.com/opsdesk/opsdesk/internal/filestore"
	"github.com/opsdesk/opsdesk/internal/httpapi"
	"github.com/opsdesk/opsdesk/internal/sqlite"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config error: %v\n", err)
		os.Exit(1)
	}

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: parseLogLevel(cfg.Log.Level),
	}))

	if err := ensureDBDir(cfg.DB.Path); err != nil {
		logger.Error("failed to prepare database path", "error", err)
		os.Exit(1)
	}

	db, err := sqlite.New(cfg.DB.Path)
	if err != nil {
		logger.Error("failed to open database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	if err := db.Migrate(); err != nil {
		logger.Error("failed to run migrations", "error", err)
		os.Exit(1)
	}

	files, err := filestore.NewLocal(cfg.Files.Root)
	if err != nil {
		logger.Error("failed to prepare attachment storage", "error", err)
		os.Exit(1)
	}

	clientRepo := sqlite.NewClientRepository(db)
	projectRepo := sqlite.NewProjectRepository(db)
	taskRepo := sqlite.NewTaskRepository(db)
	invoiceRepo := sqlite.NewInvoiceRepository(db)
	userRepo := sqlite.NewUserRepository(db)
	roleRepo := sqlite.NewRoleRepository(db)
	deptRepo := sqlite.NewDepartmentRepository(db)
	contactRepo := sqlite.NewContactRepository(db)
	companyRepo := sqlite.NewCompanyRepository(db)
	tokenRepo := sqlite.NewTokenRepository(db)

	clientSvc := client.NewService(clientRepo, projectRepo, invoiceRepo, logger)
	orgSvc := org.NewService(userRepo, roleRepo, deptRepo, projectRepo, taskRepo, logger)
	projectSvc := project.NewService(projectRepo, clientRepo, userRepo, taskRepo, invoiceRepo, logger)
	taskSvc := task.NewService(taskRepo, projectRepo, files, logger)
	invoiceSvc := invoice.NewService(invoiceRepo, clientRepo, projectRepo, logger)
	contactSvc := contact.NewService(contactRepo, logger)
	companySvc := company.NewService(companyRepo)

	ctx := context.Background()
	if err := seed(ctx, logger, deptRepo, roleRepo, userRepo, tokenRepo); err != nil {
		logger.Error("failed to seed reference data", "error", err)
		os.Exit(1)
	}

	srv := httpapi.NewServer(clientSvc, orgSvc, projectSvc, taskSvc, invoiceSvc, contactSvc, companySvc, logger)

	authMW := httpapi.NoAuthMiddleware()
	if cfg.Auth.Enabled {
		authMW = httpapi.AuthMiddleware(&apiTokenResolver{
			tokens: tokenRepo,
			users:  userRepo,
			roles:  roleRepo,
			logger: logger,
		})
	} else {
		logger.Warn("authentication disabled; all requests run with full permissions")
	}

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	httpServer := &http.Server{
		Addr:    addr,
		Handler: srv.Handler(authMW),
	}

	go func() {
		logger.Info("server listening", "addr", addr, "auth", cfg.Auth.Enabled)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server error", "error", err)
		}
	}()

	waitForShutdown(logger, httpServer)
}

// apiTokenResolver maps a bearer token to the user it was issued for and
// that user's role permissions.
type apiTokenResolver struct {
	tokens *sqlite.TokenRepository
	users  *sqlite.UserRepository
	roles  *sqlite.RoleRepository
	logger *slog.Logger
}

func (r *apiTokenResolver) ResolvePrincipal(ctx context.Context, token string) (*httpapi.Principal, error) {
	hash := hashToken(token)
	userID, err := r.tokens.LookupUser(ctx, hash)
	if err != nil {
		return nil, httpapi.ErrUnauthorized
	}
	u, err := r.users.Get(ctx, userID)
	if err != nil {
		return nil, httpapi.ErrUnauthorized
	}
	role, err := r.roles.Get(ctx, u.RoleID)
	if err != nil {
		return nil, httpapi.ErrUnauthorized
	}
	if err := r.tokens.TouchLastUsed(ctx, hash, time.Now().UTC()); err != nil {
		r.logger.Warn("failed to record token use", "error", err)
	}
	return &httpapi.Principal{
		UserID:      u.ID,
		Name:        u.Name,
		Permissions: role.Permissions,
	}, nil
}

func hashToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}

func ensureDBDir(path string) error {
	if path == ":memory:" || path == "" {
		return nil
	}
	dir := filepath.Dir(path)
	if dir == "." {
		return nil
	}
	return os.MkdirAll(dir, 0o755)
}

func waitForShutdown(logger *slog.Logger, server *http.Server) {
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	logger.Info("shutting down")
	if err := server.Shutdown(ctx); err != nil {
		logger.Error("shutdown error", "error", err)
	}
}

func parseLogLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
