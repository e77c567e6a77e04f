// Package runtime provides the application runtime context for nestling.
package runtime

import (
	"os"

	"github.com/nestlingapp/nestling/internal/medicine"
	"github.com/nestlingapp/nestling/internal/notify"
	"github.com/nestlingapp/nestling/internal/output"
	"github.com/nestlingapp/nestling/internal/settings"
	"github.com/nestlingapp/nestling/internal/storage"
	"github.com/nestlingapp/nestling/internal/tracker"
)

// Context holds the application runtime context: the database, every
// store, and the output formatter.
type Context struct {
	DB        *storage.DB
	Formatter *output.Formatter

	Kicks    *tracker.EventStore
	Pees     *tracker.EventStore
	Poops    *tracker.EventStore
	Feedings *tracker.FeedingStore

	Medicine *medicine.Service

	Settings *settings.Store
	Mode     *settings.ModeStore

	Scheduler notify.Scheduler

	Debug bool

	localSched *notify.LocalScheduler
}

// Options configures the runtime context.
type Options struct {
	DBPath     string
	InMemory   bool
	Format     output.Format
	ColorMode  output.ColorMode
	WebhookURL string
	Debug      bool
}

// DefaultOptions returns default runtime options.
func DefaultOptions() Options {
	return Options{
		DBPath:    storage.DefaultPath(),
		InMemory:  false,
		Format:    output.FormatCLI,
		ColorMode: output.ColorAuto,
	}
}

// New creates a new runtime context. Stores come back un-hydrated;
// call Load before reading them.
func New(opts Options) (*Context, error) {
	// Environment overrides for the database location
	if envPath := os.Getenv("NESTLING_DATABASE"); envPath != "" {
		if envPath == ":memory:" {
			opts.InMemory = true
		} else {
			opts.DBPath = envPath
		}
	}
	if opts.WebhookURL == "" {
		opts.WebhookURL = os.Getenv("NESTLING_WEBHOOK")
	}

	db, err := storage.Open(storage.Options{
		Path:     opts.DBPath,
		InMemory: opts.InMemory,
	})
	if err != nil {
		return nil, err
	}

	var sender notify.Sender = notify.LogSender{}
	if opts.WebhookURL != "" {
		sender = notify.NewWebhookSender(opts.WebhookURL)
	}
	localSched := notify.NewLocalScheduler(sender)

	medStore := medicine.NewStore(db)

	formatter := output.NewFormatter()
	formatter.Format = opts.Format
	formatter.ColorMode = opts.ColorMode

	return &Context{
		DB:         db,
		Formatter:  formatter,
		Kicks:      tracker.NewKickStore(db),
		Pees:       tracker.NewPeeStore(db),
		Poops:      tracker.NewPoopStore(db),
		Feedings:   tracker.NewFeedingStore(db),
		Medicine:   medicine.NewService(medStore, localSched),
		Settings:   settings.NewStore(db),
		Mode:       settings.NewModeStore(db),
		Scheduler:  localSched,
		Debug:      opts.Debug,
		localSched: localSched,
	}, nil
}

// Load hydrates every store. Dependent commands run only after this
// completes; a store that has not loaded must never be read as
// confirmed empty.
func (c *Context) Load() {
	c.Kicks.Load()
	c.Pees.Load()
	c.Poops.Load()
	c.Feedings.Load()
	c.Medicine.Store().Load()
	c.Settings.Load()
	c.Mode.Load()
}

// Close drains pending persistence writes and closes the database.
func (c *Context) Close() error {
	c.Kicks.Close()
	c.Pees.Close()
	c.Poops.Close()
	c.Feedings.Close()
	c.Medicine.Store().Close()
	c.Settings.Close()
	c.Mode.Close()
	if c.localSched != nil {
		c.localSched.Stop()
	}
	if c.DB != nil {
		return c.DB.Close()
	}
	return nil
}

// IsJSON returns true if output format is JSON.
func (c *Context) IsJSON() bool {
	return c.Formatter.Format == output.FormatJSON
}
