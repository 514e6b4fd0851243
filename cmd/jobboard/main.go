package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"jobboard/internal/app"
	"jobboard/internal/board"
	"jobboard/internal/config"
	"jobboard/internal/encryption"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := app.LoadEnv(); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
	}

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", board.UserMessage(err))
		os.Exit(1)
	}
}

// newApp reads the config and creates a BoardApp. The caller must defer a.Close().
// command identifies the CLI command being run (e.g. "jobs list", "apply").
func newApp(cmd *cobra.Command, command string) (*app.BoardApp, error) {
	defaults, err := app.GetDefaults()
	if err != nil {
		return nil, fmt.Errorf("getting defaults: %w", err)
	}

	cfg, err := app.LoadConfig(defaults["config_path"])
	if err != nil {
		return nil, fmt.Errorf("reading config (run 'jobboard config init' first): %w", err)
	}

	verbose, _ := cmd.Flags().GetBool("verbose")
	a, err := app.NewBoardApp(cmd.Context(), cfg, app.Options{
		Command: command,
		Verbose: verbose,
		Passphrase: func() (string, error) {
			return readSecret("Passphrase: ")
		},
	})
	if err != nil {
		return nil, fmt.Errorf("initializing app: %w", err)
	}
	return a, nil
}

// readSecret prompts on stderr and reads a line without echo when stdin is a
// terminal.
func readSecret(prompt string) (string, error) {
	fmt.Fprint(os.Stderr, prompt)
	fd := int(os.Stdin.Fd())
	if term.IsTerminal(fd) {
		secret, err := term.ReadPassword(fd)
		fmt.Fprintln(os.Stderr)
		if err != nil {
			return "", err
		}
		return string(secret), nil
	}
	line, err := bufio.NewReader(os.Stdin).ReadString('\n')
	if err != nil && line == "" {
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}

// confirm asks a yes/no question on stdin.
func confirm(question string) bool {
	fmt.Printf("%s [y/N] ", question)
	line, _ := bufio.NewReader(os.Stdin).ReadString('\n')
	answer := strings.ToLower(strings.TrimSpace(line))
	return answer == "y" || answer == "yes"
}

var rootCmd = &cobra.Command{
	Use:           "jobboard",
	Short:         "Student job board",
	SilenceErrors: true,
	SilenceUsage:  true,
}

// config command
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage configuration",
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		defaults, err := app.GetDefaults()
		if err != nil {
			return fmt.Errorf("failed to get defaults: %w", err)
		}

		cfg := config.NewConfig(defaults["base_dir"])
		if storageType, _ := cmd.Flags().GetString("storage"); storageType != "" {
			cfg.Storage.Type = storageType
		}

		if encrypt, _ := cmd.Flags().GetBool("encrypt"); encrypt {
			cfg.Encryption.Enabled = true
			if err := setupEncryption(cfg.Encryption); err != nil {
				return err
			}
		}

		if err := config.Init(defaults["config_path"], cfg); err != nil {
			return fmt.Errorf("failed to initialize config: %w", err)
		}

		fmt.Printf("Configuration initialized at %s\n", defaults["config_path"])
		fmt.Printf("Base Dir: %s\n", cfg.BaseDir)
		fmt.Printf("Storage:  %s\n", cfg.Storage.Type)
		return nil
	},
}

func setupEncryption(cfg config.EncryptionConfig) error {
	enc, err := encryption.NewEncryptorFromConfig(cfg)
	if err != nil {
		return fmt.Errorf("creating encryptor: %w", err)
	}

	passphrase, err := readSecret("New passphrase: ")
	if err != nil {
		return fmt.Errorf("reading passphrase: %w", err)
	}
	again, err := readSecret("Repeat passphrase: ")
	if err != nil {
		return fmt.Errorf("reading passphrase: %w", err)
	}
	if passphrase != again {
		return errors.New("passphrases do not match")
	}

	if err := enc.Setup(passphrase); err != nil {
		return fmt.Errorf("setting up encryption: %w", err)
	}
	fmt.Printf("Encryption keys written to %s\n", cfg.PublicKeyPath)
	return nil
}

var configListCmd = &cobra.Command{
	Use:   "list",
	Short: "View configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		defaults, err := app.GetDefaults()
		if err != nil {
			return fmt.Errorf("failed to get defaults: %w", err)
		}

		cfg, err := app.LoadConfig(defaults["config_path"])
		if err != nil {
			return fmt.Errorf("failed to read config: %w", err)
		}

		apiKey := "(not set)"
		if cfg.Source.APIKey != "" {
			apiKey = "(set)"
		}

		fmt.Printf("Configuration from %s:\n\n", defaults["config_path"])
		fmt.Printf("Base Dir:     %s\n", cfg.BaseDir)
		fmt.Printf("Log Dir:      %s\n", cfg.LogDir)
		fmt.Printf("Storage:      %s %s\n", cfg.Storage.Type, storageLocation(cfg.Storage))
		fmt.Printf("Encryption:   %v\n", cfg.Encryption.Enabled)
		fmt.Printf("Job Source:   %s (enabled: %v, api key: %s)\n", cfg.Source.Endpoint, cfg.Source.Enabled, apiKey)
		fmt.Printf("Submit Delay: %s\n", cfg.Board.SubmitDelay)
		return nil
	},
}

func storageLocation(cfg config.StorageConfig) string {
	switch cfg.Type {
	case "s3":
		return "s3://" + cfg.S3Bucket + "/" + cfg.S3Prefix
	case "memory":
		return ""
	default:
		return cfg.Dir
	}
}

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Delete all jobs, applications, users and the session",
	RunE: func(cmd *cobra.Command, args []string) error {
		yes, _ := cmd.Flags().GetBool("yes")
		if !yes && !confirm("This deletes all board data. Continue?") {
			fmt.Println("Aborted.")
			return nil
		}

		a, err := newApp(cmd, "reset")
		if err != nil {
			return err
		}
		defer a.Close()

		if err := a.State().Reset(); err != nil {
			return err
		}
		fmt.Println("Board data cleared.")
		return nil
	},
}

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "View recent store writes",
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")

		a, err := newApp(cmd, "history")
		if err != nil {
			return err
		}
		defer a.Close()

		changes, err := a.History(limit)
		if err != nil {
			return err
		}

		if len(changes) == 0 {
			fmt.Println("No changes recorded.")
			return nil
		}

		fmt.Printf("Changes in %s:\n\n", a.HistoryPath())

		for _, c := range changes {
			fmt.Printf("#%d  %-14s  %-6s  %8d  %s\n",
				c.ID,
				c.Key,
				c.Operation,
				c.Size,
				c.CreatedAt.Format("2006-01-02 15:04:05"),
			)
		}
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Log debug output to stderr")

	// config subcommands
	configCmd.AddCommand(configInitCmd)
	configInitCmd.Flags().Bool("encrypt", false, "Encrypt stored data with a passphrase-protected age key")
	configInitCmd.Flags().String("storage", "", "Storage type: memory, filesystem, sqlite, badger or s3")
	configCmd.AddCommand(configListCmd)

	// root commands
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(resetCmd)
	resetCmd.Flags().BoolP("yes", "y", false, "Do not ask for confirmation")
	rootCmd.AddCommand(historyCmd)
	historyCmd.Flags().IntP("limit", "n", 50, "Maximum number of changes to show")
}
