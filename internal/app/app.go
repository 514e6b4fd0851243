package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/gabriel-vasile/mimetype"

	"jobboard/internal/board"
	"jobboard/internal/config"
	"jobboard/internal/database"
	"jobboard/internal/encryption"
	"jobboard/internal/model"
	"jobboard/internal/source"
	"jobboard/internal/storage"
	"jobboard/internal/validation"
)

// PassphraseEnv is read before prompting for the encryption passphrase.
const PassphraseEnv = "JOBBOARD_PASSPHRASE"

// ErrNoHistory is returned by History when the store keeps no change log.
var ErrNoHistory = errors.New("change history requires sqlite storage")

// PassphraseFunc supplies the passphrase that unlocks an encrypted store.
type PassphraseFunc func() (string, error)

// Options tune NewBoardApp. The zero value is usable.
type Options struct {
	// Command names the CLI command being run, for the log.
	Command string
	// Passphrase is consulted when encryption is enabled and PassphraseEnv
	// is unset.
	Passphrase PassphraseFunc
	// Verbose sends debug records to stderr as well as the log file.
	Verbose bool

	// Overrides for tests.
	Clock  board.Clock
	IDGen  board.IDGenerator
	Source board.JobSource
}

type historian interface {
	History(limit int) ([]database.EntryChange, error)
	CheckMigrations() error
	Path() string
}

// BoardApp is the application layer between the CLI and board.State.
// It constructs all dependencies from config, exposes the board operations
// that need more than the state itself, and closes resources on Close.
type BoardApp struct {
	cfg     *config.Config
	store   board.Store
	history historian
	state   *board.State
	logger  *slog.Logger
	clock   board.Clock
	run     *Run
	logFile *os.File
	closed  bool
}

// NewBoardApp creates a fully wired BoardApp from the given config and
// initializes the board state. The caller must call Close when done.
func NewBoardApp(ctx context.Context, cfg *config.Config, opts Options) (*BoardApp, error) {
	clock := opts.Clock
	if clock == nil {
		clock = board.RealClock{}
	}
	run := NewRun(opts.Command, clock.Now())

	stderrLevel := slog.LevelWarn
	if opts.Verbose {
		stderrLevel = slog.LevelDebug
	}
	logger, logFile, err := newLogger(cfg.LogDir, run.ID, stderrLevel)
	if err != nil {
		return nil, fmt.Errorf("creating logger: %w", err)
	}
	boardLogger := &slogAdapter{l: logger}

	store, err := storage.NewStoreFromConfig(ctx, cfg.Storage, clock)
	if err != nil {
		logFile.Close()
		return nil, fmt.Errorf("creating store: %w", err)
	}
	hist, _ := store.(historian)

	store, err = wrapEncryption(store, cfg.Encryption, opts.Passphrase)
	if err != nil {
		store.Close()
		logFile.Close()
		return nil, err
	}

	src := opts.Source
	if src == nil && (cfg.Source.Enabled || cfg.Source.APIKey != "") {
		src = source.NewClient(cfg.Source, boardLogger, clock)
	}

	state := board.NewState(store, src, boardLogger, clock, opts.IDGen)
	if err := state.Initialize(); err != nil {
		store.Close()
		logFile.Close()
		return nil, fmt.Errorf("initializing board: %w", err)
	}

	logger.Debug("command started", "command", run.Command, "storage", cfg.Storage.Type)

	return &BoardApp{
		cfg:     cfg,
		store:   store,
		history: hist,
		state:   state,
		logger:  logger,
		clock:   clock,
		run:     run,
		logFile: logFile,
	}, nil
}

// wrapEncryption returns store wrapped in an EncryptedStore when encryption
// is enabled. On error the original store is returned so it can be closed.
func wrapEncryption(store board.Store, cfg config.EncryptionConfig, prompt PassphraseFunc) (board.Store, error) {
	enc, err := encryption.NewEncryptorFromConfig(cfg)
	if err != nil {
		return store, fmt.Errorf("creating encryptor: %w", err)
	}
	if enc == nil {
		return store, nil
	}
	if !enc.IsConfigured() {
		return store, fmt.Errorf("encryption keys not found: run 'jobboard config init --encrypt'")
	}

	passphrase := os.Getenv(PassphraseEnv)
	if passphrase == "" {
		if prompt == nil {
			return store, fmt.Errorf("store is encrypted: set %s", PassphraseEnv)
		}
		if passphrase, err = prompt(); err != nil {
			return store, fmt.Errorf("reading passphrase: %w", err)
		}
	}

	dctx, err := enc.Unlock(passphrase)
	if err != nil {
		return store, fmt.Errorf("unlocking store: %w", err)
	}
	return storage.NewEncryptedStore(store, enc, dctx), nil
}

// State returns the board state for queries and simple mutations.
func (a *BoardApp) State() *board.State {
	return a.state
}

// Config returns the configuration the app was built from.
func (a *BoardApp) Config() *config.Config {
	return a.cfg
}

// ListJobs filters the jobs by c and moves to page.
func (a *BoardApp) ListJobs(c model.Criteria, page int) error {
	a.state.FilterJobs(c)
	if page > 1 {
		return a.state.SetPage(page)
	}
	return nil
}

// SearchJobs optionally refreshes external jobs before filtering by c.
// A failed fetch does not fail the search: the local jobs are filtered and
// the fetch error is returned as a warning alongside a nil error.
func (a *BoardApp) SearchJobs(ctx context.Context, c model.Criteria, useAPI bool) (fetched int, warning error) {
	if useAPI || a.cfg.Source.Enabled {
		query := strings.TrimSpace(c.Search)
		if query == "" {
			query = a.defaultQuery()
		}
		fetched, warning = a.state.FetchExternalJobs(ctx, query, strings.TrimSpace(c.Location))
		if warning != nil {
			a.run.Fail()
		}
	}
	a.state.FilterJobs(c)
	return fetched, warning
}

// FetchJobs replaces the external jobs with a fresh batch for query and
// location. An empty query uses the configured default.
func (a *BoardApp) FetchJobs(ctx context.Context, query, location string) (int, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		query = a.defaultQuery()
	}
	n, err := a.state.FetchExternalJobs(ctx, query, strings.TrimSpace(location))
	if err != nil {
		a.run.Fail()
	}
	return n, err
}

func (a *BoardApp) defaultQuery() string {
	if a.cfg.Source.DefaultQuery != "" {
		return a.cfg.Source.DefaultQuery
	}
	return config.DefaultQuery
}

// PostJob posts a job and refilters so it shows under the active criteria.
func (a *BoardApp) PostJob(p model.JobPosting) (model.Job, error) {
	job, err := a.state.PostJob(p)
	if err != nil {
		a.run.Fail()
		return model.Job{}, err
	}
	a.state.Refilter()
	return job, nil
}

// Apply submits an application for the signed-in user and waits out the
// configured processing delay.
func (a *BoardApp) Apply(ctx context.Context, form model.ApplicationForm) (model.Application, error) {
	if err := a.state.RequireSession(); err != nil {
		a.run.Fail()
		return model.Application{}, err
	}

	sub, err := a.state.SubmitApplication(ctx, form, a.cfg.Board.SubmitDelay.Duration)
	if err != nil {
		a.run.Fail()
		return model.Application{}, err
	}
	app, err := sub.Wait(ctx)
	if err != nil {
		a.run.Fail()
		return model.Application{}, err
	}
	return app, nil
}

// Fail marks the run as failed for the closing log record.
func (a *BoardApp) Fail() { a.run.Fail() }

// History returns the most recent store writes, newest first. The schema is
// checked first so an outdated database is reported rather than misread.
func (a *BoardApp) History(limit int) ([]database.EntryChange, error) {
	if a.history == nil {
		return nil, ErrNoHistory
	}
	if err := a.history.CheckMigrations(); err != nil {
		return nil, fmt.Errorf("checking %s: %w", a.history.Path(), err)
	}
	return a.history.History(limit)
}

// HistoryPath returns the database holding the change log, or "" when the
// store keeps none.
func (a *BoardApp) HistoryPath() string {
	if a.history == nil {
		return ""
	}
	return a.history.Path()
}

// Close logs the run outcome and closes all resources. Calling it again
// is a no-op.
func (a *BoardApp) Close() error {
	if a.closed {
		return nil
	}
	a.closed = true

	var firstErr error

	a.logger.Debug("command finished",
		"command", a.run.Command,
		"status", a.run.Status,
		"elapsed", a.run.Elapsed(a.clock.Now()))

	if err := a.store.Close(); err != nil {
		firstErr = fmt.Errorf("closing store: %w", err)
	}
	if a.logFile != nil {
		a.logFile.Close()
	}
	return firstErr
}

// LoadResume describes the resume file at path: its base name, the MIME
// type detected from its content and its size. The file itself is not kept.
func LoadResume(path string) (*model.ResumeMeta, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("reading resume: %w", err)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("resume %s is a directory", path)
	}

	mtype, err := mimetype.DetectFile(path)
	if err != nil {
		return nil, fmt.Errorf("detecting resume type: %w", err)
	}
	mime := mtype.String()
	for _, allowed := range validation.AllowedResumeTypes {
		if mtype.Is(allowed) {
			mime = allowed
			break
		}
	}

	return &model.ResumeMeta{
		FileName: info.Name(),
		MimeType: mime,
		Size:     info.Size(),
	}, nil
}
