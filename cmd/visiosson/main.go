package main

import (
	"fmt"
	"log"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"

	"github.com/aviy453/visiosson/internal/catalog"
	"github.com/aviy453/visiosson/internal/config"
	"github.com/aviy453/visiosson/internal/facts"
	"github.com/aviy453/visiosson/internal/server"
	"github.com/aviy453/visiosson/internal/store"
	"github.com/aviy453/visiosson/internal/tray"
)

// trackingSettingKey stores the persisted gesture tracking toggle.
const trackingSettingKey = "tracking_enabled"

func main() {
	fmt.Println("Visiosson - Pinch-to-Click Demo")

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize the store
	dataDir := cfg.Server.DataDir
	if dataDir == "" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			log.Fatalf("Failed to get home directory: %v", err)
		}
		dataDir = filepath.Join(homeDir, ".visiosson")
	}
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		log.Fatalf("Failed to create data directory: %v", err)
	}

	st, err := store.New(filepath.Join(dataDir, "visiosson.db"))
	if err != nil {
		log.Fatalf("Failed to initialize store: %v", err)
	}
	defer st.Close()

	cat, err := loadCatalog(st)
	if err != nil {
		log.Fatalf("Failed to load catalog: %v", err)
	}
	log.Printf("Loaded %d catalog items", cat.Len())

	provider := buildProvider(cfg, st)

	// Find web directory
	webDir := cfg.Server.StaticDir
	if webDir == "" {
		webDir = findWebDir()
	}
	if webDir != "" {
		fmt.Printf("Serving static files from: %s\n", webDir)
	}

	srv := server.New(server.Config{
		StaticDir:  webDir,
		Store:      st,
		Catalog:    cat,
		Provider:   provider,
		ReadyDelay: cfg.UI.ReadyDelay(),
	})

	// The tracking toggle survives restarts.
	tracking, err := st.Settings().GetBool(trackingSettingKey, true)
	if err != nil {
		log.Printf("Failed to read tracking setting: %v", err)
	}
	srv.SetGestureEnabled(tracking)

	addr := cfg.Server.Addr
	fmt.Printf("Starting server on %s\n", addr)

	if !cfg.UI.Tray {
		if err := srv.ListenAndServe(addr); err != nil {
			log.Fatalf("Server failed: %v", err)
		}
		return
	}

	// With the tray enabled, the server runs in the background and the
	// tray loop owns the main goroutine.
	go func() {
		if err := srv.ListenAndServe(addr); err != nil {
			log.Fatalf("Server failed: %v", err)
		}
	}()

	t := tray.New()
	t.SetEnabled(tracking)
	t.OnToggle(func(enabled bool) {
		srv.SetGestureEnabled(enabled)
		if err := st.Settings().SetBool(trackingSettingKey, enabled); err != nil {
			log.Printf("Failed to persist tracking setting: %v", err)
		}
	})
	t.OnOpen(func() { openBrowser("http://localhost" + addr) })
	srv.OnSessionCount(t.SetSessionCount)
	t.Run()
}

// loadCatalog seeds an empty store with the default items and returns the
// catalog the demo sessions will use for their lifetime.
func loadCatalog(st *store.Store) (*catalog.Catalog, error) {
	defaults := catalog.Default()
	seed := make([]*store.Item, len(defaults))
	for i, it := range defaults {
		seed[i] = &store.Item{ID: it.ID, Title: it.Title, ImageRef: it.ImageRef}
	}
	if err := st.Items().Seed(seed); err != nil {
		return nil, err
	}

	stored, err := st.Items().List()
	if err != nil {
		return nil, err
	}

	items := make([]catalog.Item, len(stored))
	for i, it := range stored {
		items[i] = catalog.Item{ID: it.ID, Title: it.Title, ImageRef: it.ImageRef}
	}
	return catalog.New(items), nil
}

// buildProvider assembles the fact provider chain from configuration: an
// exec command wins over an HTTP endpoint, and with neither configured the
// built-in facts keep the demo working offline. The store-backed cache wraps
// whichever provider is chosen.
func buildProvider(cfg *config.Config, st *store.Store) facts.Provider {
	var provider facts.Provider
	switch {
	case cfg.Facts.Exec != "":
		log.Printf("Using exec fact provider: %s", cfg.Facts.Exec)
		provider = facts.NewExecProvider(cfg.Facts.Exec, cfg.Facts.ExecTimeoutMs)
	case cfg.Facts.URL != "":
		log.Printf("Using HTTP fact provider: %s", cfg.Facts.URL)
		provider = facts.NewHTTPProvider(cfg.Facts.URL)
	default:
		log.Println("No fact provider configured, using built-in facts")
		provider = facts.NewStaticProvider(facts.DefaultFacts())
	}

	if cfg.Facts.Cache {
		provider = facts.NewCachedProvider(provider, st.Facts())
	}
	return provider
}

// findWebDir searches for the web directory in common locations.
// It checks: "web", "../web", "../../web", and ~/.visiosson/web.
// Returns the first existing directory or empty string if none found.
func findWebDir() string {
	// Check relative paths from current working directory
	relativePaths := []string{"web", "../web", "../../web"}
	for _, p := range relativePaths {
		if info, err := os.Stat(p); err == nil && info.IsDir() {
			absPath, err := filepath.Abs(p)
			if err == nil {
				return absPath
			}
			return p
		}
	}

	// Check home directory
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ""
	}

	homeWebDir := filepath.Join(homeDir, ".visiosson", "web")
	if info, err := os.Stat(homeWebDir); err == nil && info.IsDir() {
		return homeWebDir
	}

	return ""
}

// openBrowser opens the given URL with the platform's default browser.
func openBrowser(url string) {
	var cmd *exec.Cmd
	switch runtime.GOOS {
	case "darwin":
		cmd = exec.Command("open", url)
	case "windows":
		cmd = exec.Command("rundll32", "url.dll,FileProtocolHandler", url)
	default:
		cmd = exec.Command("xdg-open", url)
	}
	if err := cmd.Start(); err != nil {
		log.Printf("Failed to open browser: %v", err)
	}
}
