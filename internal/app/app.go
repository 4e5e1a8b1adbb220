package app

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/andy/gstbill/internal/ai"
	"github.com/andy/gstbill/internal/config"
	"github.com/andy/gstbill/internal/crypto"
	"github.com/andy/gstbill/internal/domain"
	"github.com/andy/gstbill/internal/repository"
	"github.com/andy/gstbill/internal/service"
	"github.com/andy/gstbill/internal/supabase"
)

// ErrNotConfigured means the Supabase credentials are missing.
var ErrNotConfigured = errors.New("supabase is not configured: set SUPABASE_URL and SUPABASE_ANON_KEY")

// App is the dependency injection container for all application components
type App struct {
	Config *config.Config
	Store  *supabase.Client

	// Repositories
	ClientRepo  repository.ClientRepository
	InvoiceRepo repository.InvoiceRepository

	// Services
	InvoiceService service.InvoiceService
	Extractor      *ai.Extractor

	Keyring crypto.Keyring

	// Signed-in state, guarded for TUI command goroutines
	mu       sync.RWMutex
	user     *domain.User
	clients  []*domain.Client
	invoices []*domain.Invoice
}

// New creates a new App instance, initializing all dependencies.
// It handles:
// 1. Loading config (yaml file, .env, env overrides)
// 2. Building the remote store client
// 3. Creating repositories and services
// 4. Restoring a stored session, when one exists
func New(ctx context.Context) (*App, error) {
	cfg, err := config.LoadDefault()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	return NewWithConfig(ctx, cfg)
}

// NewWithConfig creates an App with a provided config (useful for testing)
func NewWithConfig(ctx context.Context, cfg *config.Config) (*App, error) {
	if err := cfg.EnsureDirectories(); err != nil {
		return nil, fmt.Errorf("failed to create directories: %w", err)
	}
	if cfg.Supabase.URL == "" || cfg.Supabase.AnonKey == "" {
		return nil, ErrNotConfigured
	}

	store := supabase.New(cfg.Supabase.URL, cfg.Supabase.AnonKey)

	clientRepo := repository.NewClientRepo(store)
	invoiceRepo := repository.NewInvoiceRepo(store)

	a := &App{
		Config:         cfg,
		Store:          store,
		ClientRepo:     clientRepo,
		InvoiceRepo:    invoiceRepo,
		InvoiceService: service.NewInvoiceService(invoiceRepo, clientRepo),
		Extractor:      ai.NewExtractor(cfg.Gemini),
		Keyring:        crypto.NewKeyring(),
	}

	// A stored refresh token silently restores the session. Failure here
	// just means the user signs in again.
	if token, err := a.Keyring.GetToken(); err == nil && token != "" {
		if s, err := store.RefreshSession(ctx, token); err == nil {
			a.setUserFromSession(s)
			a.persistSession(s)
		}
	}

	return a, nil
}

// Close cleanly shuts down the application
func (a *App) Close() error {
	return nil
}

// User returns the signed-in user, or nil.
func (a *App) User() *domain.User {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.user
}

// UserID returns the signed-in user's id, or "".
func (a *App) UserID() string {
	if u := a.User(); u != nil {
		return u.ID
	}
	return ""
}

// Clients returns the loaded client list.
func (a *App) Clients() []*domain.Client {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.clients
}

// Invoices returns the loaded invoice list.
func (a *App) Invoices() []*domain.Invoice {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.invoices
}

// SignIn authenticates and persists the session for later runs.
func (a *App) SignIn(ctx context.Context, email, password string) error {
	s, err := a.Store.SignIn(ctx, email, password)
	if err != nil {
		return err
	}
	a.setUserFromSession(s)
	a.persistSession(s)
	return nil
}

// SignUp registers an account. Projects requiring email confirmation return
// a session without tokens; the caller shows the confirmation notice.
func (a *App) SignUp(ctx context.Context, name, email, password string) (confirmed bool, err error) {
	s, err := a.Store.SignUp(ctx, name, email, password)
	if err != nil {
		return false, err
	}
	if s.AccessToken == "" {
		return false, nil
	}
	a.setUserFromSession(s)
	a.persistSession(s)
	return true, nil
}

// SignOut revokes the session and clears all loaded data.
func (a *App) SignOut(ctx context.Context) error {
	err := a.Store.SignOut(ctx)
	_ = a.Keyring.DeleteToken()

	a.mu.Lock()
	a.user = nil
	a.clients = nil
	a.invoices = nil
	a.mu.Unlock()
	return err
}

// RefreshData reloads both lists from the store. Every mutation is followed
// by a full reload so the UI never reconciles partial state.
func (a *App) RefreshData(ctx context.Context) error {
	userID := a.UserID()
	if userID == "" {
		return service.ErrNotSignedIn
	}

	invoices, err := a.InvoiceService.ListInvoices(ctx, userID)
	if err != nil {
		return err
	}
	clients, err := a.InvoiceService.ListClients(ctx, userID)
	if err != nil {
		return err
	}

	a.mu.Lock()
	a.invoices = invoices
	a.clients = clients
	a.mu.Unlock()
	return nil
}

func (a *App) setUserFromSession(s *supabase.Session) {
	a.mu.Lock()
	a.user = &domain.User{
		ID:    s.User.ID,
		Name:  s.User.Name(),
		Email: s.User.Email,
	}
	a.mu.Unlock()
}

func (a *App) persistSession(s *supabase.Session) {
	if s.RefreshToken == "" {
		return
	}
	// Best effort: a keyring failure only costs a re-login next run.
	_ = a.Keyring.SetToken(s.RefreshToken)
}

// SaveConfig saves the current configuration to disk
func (a *App) SaveConfig() error {
	return a.Config.Save(config.DefaultConfigPath())
}
