package app

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"jobboard/internal/board"
	"jobboard/internal/config"
	"jobboard/internal/model"
	"jobboard/internal/testutil"
	"jobboard/internal/validation"
)

func newTestConfig(t *testing.T, storageType string) *config.Config {
	t.Helper()
	cfg := config.NewConfig(t.TempDir())
	cfg.Storage = config.StorageConfig{Type: storageType, Dir: filepath.Join(cfg.BaseDir, "data")}
	cfg.Board.SubmitDelay = config.Duration{}
	return cfg
}

func openApp(t *testing.T, cfg *config.Config, opts Options) *BoardApp {
	t.Helper()
	if opts.Clock == nil {
		opts.Clock = testutil.FixedClock()
	}
	if opts.IDGen == nil {
		opts.IDGen = testutil.NewStubIDGenerator()
	}
	a, err := NewBoardApp(context.Background(), cfg, opts)
	if err != nil {
		t.Fatalf("NewBoardApp() error = %v", err)
	}
	t.Cleanup(func() { a.Close() })
	return a
}

func TestNewBoardApp(t *testing.T) {
	t.Run("seeds a new board and logs the run", func(t *testing.T) {
		cfg := newTestConfig(t, "filesystem")
		a := openApp(t, cfg, Options{Command: "jobs list"})

		if got := len(a.State().Jobs()); got != 5 {
			t.Errorf("got %d jobs, want 5", got)
		}
		if _, err := os.Stat(filepath.Join(cfg.Storage.Dir, "jobs.json")); err != nil {
			t.Errorf("jobs not persisted: %v", err)
		}
		if _, err := os.Stat(filepath.Join(cfg.LogDir, LogFileName)); err != nil {
			t.Errorf("log file not created: %v", err)
		}
	})

	t.Run("state survives reopening", func(t *testing.T) {
		cfg := newTestConfig(t, "sqlite")
		first := openApp(t, cfg, Options{})
		if _, err := first.State().Signup("maria@example.com", "secret123"); err != nil {
			t.Fatalf("Signup() error = %v", err)
		}
		first.Close()

		second := openApp(t, cfg, Options{})
		if email, ok := second.State().CurrentUser(); !ok || email != "maria@example.com" {
			t.Errorf("CurrentUser() = (%q, %v) after reopen", email, ok)
		}
	})

	t.Run("unknown storage type", func(t *testing.T) {
		cfg := newTestConfig(t, "floppy")
		if _, err := NewBoardApp(context.Background(), cfg, Options{}); err == nil {
			t.Error("NewBoardApp() expected error")
		}
	})
}

func TestNewBoardApp_Encryption(t *testing.T) {
	newEncryptedConfig := func(t *testing.T) *config.Config {
		cfg := newTestConfig(t, "filesystem")
		cfg.Encryption.Enabled = true
		cfg.Encryption.Type = "test"
		return cfg
	}

	t.Run("stores ciphertext and reads it back", func(t *testing.T) {
		cfg := newEncryptedConfig(t)
		t.Setenv(PassphraseEnv, "correct horse")

		first := openApp(t, cfg, Options{})
		first.Close()

		raw, err := os.ReadFile(filepath.Join(cfg.Storage.Dir, "jobs.json"))
		if err != nil {
			t.Fatalf("reading stored jobs: %v", err)
		}
		if strings.Contains(string(raw), "Registered Nurse") {
			t.Error("jobs stored in plaintext")
		}

		second := openApp(t, cfg, Options{})
		if got := len(second.State().Jobs()); got != 5 {
			t.Errorf("got %d jobs after reopen, want 5", got)
		}
	})

	t.Run("prompts when the env var is unset", func(t *testing.T) {
		cfg := newEncryptedConfig(t)
		t.Setenv(PassphraseEnv, "")

		prompted := false
		openApp(t, cfg, Options{Passphrase: func() (string, error) {
			prompted = true
			return "correct horse", nil
		}})
		if !prompted {
			t.Error("passphrase prompt not used")
		}
	})

	t.Run("fails without a passphrase", func(t *testing.T) {
		cfg := newEncryptedConfig(t)
		t.Setenv(PassphraseEnv, "")

		if _, err := NewBoardApp(context.Background(), cfg, Options{}); err == nil {
			t.Error("NewBoardApp() expected error without a passphrase")
		}
	})
}

func TestBoardApp_SearchJobs(t *testing.T) {
	t.Run("fetches with the default query", func(t *testing.T) {
		src := &testutil.FakeJobSource{Jobs: []model.Job{testutil.ExternalJob("ext-1", "Remote Nurse")}}
		a := openApp(t, newTestConfig(t, "memory"), Options{Source: src})

		fetched, warning := a.SearchJobs(context.Background(), model.Criteria{Location: "remote"}, true)
		if warning != nil {
			t.Fatalf("SearchJobs() warning = %v", warning)
		}
		if fetched != 1 {
			t.Errorf("fetched = %d, want 1", fetched)
		}
		calls := src.Calls()
		if len(calls) != 1 || calls[0].Query != config.DefaultQuery || calls[0].Location != "remote" {
			t.Errorf("source calls = %+v", calls)
		}
		if got := a.State().FilteredJobs(); len(got) != 1 || got[0].ID != "ext-1" {
			t.Errorf("FilteredJobs() = %+v", got)
		}
	})

	t.Run("falls back to local jobs when the fetch fails", func(t *testing.T) {
		src := &testutil.FakeJobSource{Err: errors.New("connection refused")}
		a := openApp(t, newTestConfig(t, "memory"), Options{Source: src})

		_, warning := a.SearchJobs(context.Background(), model.Criteria{Search: "nurse"}, true)
		if !errors.Is(warning, board.ErrExternalSource) {
			t.Fatalf("SearchJobs() warning = %v, want EXTERNAL_SOURCE", warning)
		}
		if got := a.State().FilteredJobs(); len(got) != 1 || got[0].ID != "1" {
			t.Errorf("FilteredJobs() = %+v", got)
		}
		if a.run.Status != "error" {
			t.Errorf("run status = %q, want error", a.run.Status)
		}
	})

	t.Run("local only without the api flag", func(t *testing.T) {
		src := &testutil.FakeJobSource{}
		a := openApp(t, newTestConfig(t, "memory"), Options{Source: src})

		if _, warning := a.SearchJobs(context.Background(), model.Criteria{Search: "engineer"}, false); warning != nil {
			t.Fatalf("SearchJobs() warning = %v", warning)
		}
		if len(src.Calls()) != 0 {
			t.Error("source queried without --api")
		}
	})
}

func TestBoardApp_PostJob(t *testing.T) {
	a := openApp(t, newTestConfig(t, "memory"), Options{})
	if err := a.ListJobs(model.Criteria{Location: "chicago"}, 1); err != nil {
		t.Fatalf("ListJobs() error = %v", err)
	}

	job, err := a.PostJob(model.JobPosting{
		Title:       "Campus Tutor",
		Company:     "State University",
		Location:    "Chicago, IL",
		Type:        "Part-time",
		Description: "Help students.",
	})
	if err != nil {
		t.Fatalf("PostJob() error = %v", err)
	}

	filtered := a.State().FilteredJobs()
	if len(filtered) != 2 || filtered[0].ID != job.ID {
		t.Errorf("posted job not visible under the active filter: %+v", filtered)
	}
}

func TestBoardApp_Apply(t *testing.T) {
	form := model.ApplicationForm{
		JobID:       "1",
		Name:        "Maria",
		Email:       "maria@example.com",
		Resume:      &model.ResumeMeta{FileName: "cv.pdf", MimeType: "application/pdf", Size: 100},
		CoverLetter: "Hello.",
	}

	t.Run("requires a session", func(t *testing.T) {
		a := openApp(t, newTestConfig(t, "memory"), Options{})

		_, err := a.Apply(context.Background(), form)
		if !errors.Is(err, board.ErrUnauthorized) {
			t.Fatalf("Apply() error = %v, want UNAUTHORIZED", err)
		}
		if board.UserMessage(err) != board.MsgLoginRequired {
			t.Errorf("UserMessage() = %q", board.UserMessage(err))
		}
	})

	t.Run("records for a signed-in user", func(t *testing.T) {
		a := openApp(t, newTestConfig(t, "memory"), Options{})
		if _, err := a.State().Signup("maria@example.com", "secret123"); err != nil {
			t.Fatalf("Signup() error = %v", err)
		}

		app, err := a.Apply(context.Background(), form)
		if err != nil {
			t.Fatalf("Apply() error = %v", err)
		}
		if mine := a.State().MyApplications(); len(mine) != 1 || mine[0].ID != app.ID {
			t.Errorf("MyApplications() = %+v", mine)
		}
	})
}

func TestBoardApp_History(t *testing.T) {
	t.Run("sqlite keeps a change log", func(t *testing.T) {
		a := openApp(t, newTestConfig(t, "sqlite"), Options{})

		changes, err := a.History(10)
		if err != nil {
			t.Fatalf("History() error = %v", err)
		}
		if len(changes) == 0 {
			t.Fatal("no changes recorded for the initial persist")
		}
		for _, c := range changes {
			if c.Key == "" || c.Operation == "" {
				t.Errorf("incomplete change %+v", c)
			}
		}
		if want := filepath.Join(a.Config().Storage.Dir, "jobboard.db"); a.HistoryPath() != want {
			t.Errorf("HistoryPath() = %q, want %q", a.HistoryPath(), want)
		}
	})

	t.Run("other stores have none", func(t *testing.T) {
		a := openApp(t, newTestConfig(t, "memory"), Options{})

		if _, err := a.History(10); !errors.Is(err, ErrNoHistory) {
			t.Errorf("History() error = %v, want ErrNoHistory", err)
		}
		if a.HistoryPath() != "" {
			t.Errorf("HistoryPath() = %q, want empty", a.HistoryPath())
		}
	})
}

func TestLoadResume(t *testing.T) {
	dir := t.TempDir()

	t.Run("detects a pdf from its content", func(t *testing.T) {
		path := filepath.Join(dir, "resume.bin")
		content := []byte("%PDF-1.4\n1 0 obj\n<< /Type /Catalog >>\nendobj\n%%EOF\n")
		if err := os.WriteFile(path, content, 0600); err != nil {
			t.Fatal(err)
		}

		meta, err := LoadResume(path)
		if err != nil {
			t.Fatalf("LoadResume() error = %v", err)
		}
		if meta.FileName != "resume.bin" || meta.MimeType != "application/pdf" || meta.Size != int64(len(content)) {
			t.Errorf("LoadResume() = %+v", meta)
		}
	})

	t.Run("plain text is not an allowed type", func(t *testing.T) {
		path := filepath.Join(dir, "resume.pdf")
		if err := os.WriteFile(path, []byte("just some text"), 0600); err != nil {
			t.Fatal(err)
		}

		meta, err := LoadResume(path)
		if err != nil {
			t.Fatalf("LoadResume() error = %v", err)
		}
		if validation.New().IsResumeType(meta.MimeType) {
			t.Errorf("MimeType %q accepted as a resume type", meta.MimeType)
		}
	})

	t.Run("missing file", func(t *testing.T) {
		if _, err := LoadResume(filepath.Join(dir, "nope.pdf")); err == nil {
			t.Error("LoadResume() expected error")
		}
	})
}
