// Package main provides a small CLI around the Vestaboard SDK.
// It formats text or raw rows, previews them in the terminal, and posts them
// to a board through the cloud or local API.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/pflag"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/1set/vestaboard"
	"github.com/1set/vestaboard/internal/config"
	"github.com/1set/vestaboard/internal/preview"
)

var commands = []string{"text", "raw", "preview", "save-credentials", "help"}

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}
	var err error
	switch os.Args[1] {
	case "text":
		err = runText(os.Args[2:])
	case "raw":
		err = runRaw(os.Args[2:])
	case "preview":
		err = runPreview(os.Args[2:])
	case "save-credentials":
		err = runSaveCredentials(os.Args[2:])
	case "-h", "--help", "help":
		printUsage()
		return
	default:
		printUsage()
		err = unknownCommand(os.Args[1])
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "vestaboard: %v\n", err)
		os.Exit(1)
	}
}

func unknownCommand(name string) error {
	if hint := vestaboard.Suggest(name, commands); hint != "" {
		return fmt.Errorf("unknown command %q (did you mean %q?)", name, hint)
	}
	return fmt.Errorf("unknown command %q", name)
}

// setup parses flags and loads configuration for a subcommand.
func setup(name string, args []string, extra func(*pflag.FlagSet)) (config.Config, *pflag.FlagSet, *zap.Logger, error) {
	fs := pflag.NewFlagSet(name, pflag.ContinueOnError)
	config.RegisterFlags(fs)
	if extra != nil {
		extra(fs)
	}
	if err := fs.Parse(args); err != nil {
		return config.Config{}, nil, nil, err
	}
	cfg, err := config.Load(fs)
	if err != nil {
		return config.Config{}, nil, nil, err
	}
	logger, err := newLogger(cfg.LogLevel)
	if err != nil {
		return config.Config{}, nil, nil, err
	}
	return cfg, fs, logger, nil
}

func newLogger(level string) (*zap.Logger, error) {
	lvl, err := zapcore.ParseLevel(strings.TrimSpace(level))
	if err != nil {
		return nil, fmt.Errorf("log level: %w", err)
	}
	zc := zap.NewDevelopmentConfig()
	zc.Level = zap.NewAtomicLevelAt(lvl)
	zc.DisableStacktrace = true
	return zc.Build()
}

func newClient(cfg config.Config, logger *zap.Logger) (*vestaboard.Client, error) {
	opts := []vestaboard.ClientOption{
		vestaboard.WithLogger(logger),
		vestaboard.WithBaseURL(cfg.BaseURL),
	}
	if cfg.MinInterval > 0 {
		opts = append(opts, vestaboard.WithRateLimiter(vestaboard.NewFixedIntervalLimiter(cfg.MinInterval)))
	}

	store, err := vestaboard.NewFileStore(cfg.CredentialsFile)
	if err != nil {
		return nil, err
	}
	if cfg.Mode == config.ModeLocal {
		token := cfg.LocalToken()
		if strings.TrimSpace(token.APIKey) == "" && strings.TrimSpace(token.IP) == "" {
			return vestaboard.NewLocalClientFromSource(store, opts...)
		}
		return vestaboard.NewLocalClient(token, opts...)
	}
	creds := cfg.Credentials()
	if creds == (vestaboard.Credentials{}) {
		c, err := vestaboard.NewClientFromSource(store, opts...)
		if errors.Is(err, vestaboard.ErrCredentialsNotFound) {
			return nil, errors.New("missing credentials (use -api-key/-api-secret/-subscription-id, VESTABOARD_CLOUD_* or save-credentials)")
		}
		return c, err
	}
	return vestaboard.NewClient(creds, opts...)
}

func textRequest(cfg config.Config, fs *pflag.FlagSet) (vestaboard.TextRequest, error) {
	align, pad, strict, err := cfg.Layout()
	if err != nil {
		return vestaboard.TextRequest{}, err
	}
	text, err := readText(fs.Args())
	if err != nil {
		return vestaboard.TextRequest{}, err
	}
	return vestaboard.TextRequest{Text: text, Align: align, Pad: pad, Strictness: strict}, nil
}

// readText joins positional args; a single "-" reads stdin.
func readText(args []string) (string, error) {
	if len(args) == 1 && args[0] == "-" {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return "", err
		}
		return strings.TrimRight(string(data), "\n"), nil
	}
	if len(args) == 0 {
		return "", errors.New("text is required (pass it as arguments or use - for stdin)")
	}
	return strings.Join(args, " "), nil
}

func runText(args []string) error {
	cfg, fs, logger, err := setup("text", args, nil)
	if err != nil {
		return err
	}
	defer logger.Sync() //nolint:errcheck
	req, err := textRequest(cfg, fs)
	if err != nil {
		return err
	}
	client, err := newClient(cfg, logger)
	if err != nil {
		return err
	}
	resp, err := client.PostText(context.Background(), req)
	if err != nil {
		return err
	}
	fmt.Printf("Text sent (status=%d id=%s)\n", resp.StatusCode, resp.MessageID)
	return nil
}

func runRaw(args []string) error {
	var file *string
	var pad *string
	cfg, _, logger, err := setup("raw", args, func(fs *pflag.FlagSet) {
		file = fs.String("file", "", "JSON file with an array of rows of 22 codes (required)")
		pad = fs.String("rows-pad", "", "top, bottom or center for fewer than 6 rows")
	})
	if err != nil {
		return err
	}
	defer logger.Sync() //nolint:errcheck
	if strings.TrimSpace(*file) == "" {
		return errors.New("-file is required")
	}
	p := cfg.Format.Pad
	if strings.TrimSpace(*pad) != "" {
		p = *pad
	}
	vpad, err := vestaboard.ParseVerticalAlignment(p)
	if err != nil {
		return err
	}
	client, err := newClient(cfg, logger)
	if err != nil {
		return err
	}
	resp, err := client.PostRowsFile(context.Background(), *file, vestaboard.RowsRequest{Pad: vpad})
	if err != nil {
		return err
	}
	fmt.Printf("Rows sent (status=%d id=%s)\n", resp.StatusCode, resp.MessageID)
	return nil
}

func runPreview(args []string) error {
	cfg, fs, logger, err := setup("preview", args, nil)
	if err != nil {
		return err
	}
	defer logger.Sync() //nolint:errcheck
	req, err := textRequest(cfg, fs)
	if err != nil {
		return err
	}
	req.OnWarning = func(w vestaboard.Warning) {
		logger.Warn(w.Message, zap.Stringer("kind", w.Kind))
	}
	grid, err := req.Format()
	if err != nil {
		return err
	}
	fmt.Println(preview.Render(grid))
	return nil
}

func runSaveCredentials(args []string) error {
	cfg, _, logger, err := setup("save-credentials", args, nil)
	if err != nil {
		return err
	}
	defer logger.Sync() //nolint:errcheck
	store, err := vestaboard.NewFileStore(cfg.CredentialsFile)
	if err != nil {
		return err
	}
	if cfg.Mode == config.ModeLocal {
		err = store.SaveLocalToken(cfg.LocalToken())
	} else {
		err = store.SaveCredentials(cfg.Credentials())
	}
	if err != nil {
		return err
	}
	logger.Info("credentials saved", zap.String("path", store.Path), zap.String("mode", cfg.Mode))
	return nil
}

func printUsage() {
	fmt.Fprintf(os.Stderr, `vestaboard - Vestaboard SDK CLI

Usage:
  vestaboard text             [flags] TEXT...   (use - to read stdin)
  vestaboard raw              [flags] --file rows.json
  vestaboard preview          [flags] TEXT...
  vestaboard save-credentials [flags]

Common flags:
  --mode              cloud (default) or local
  --api-key           Cloud API key (or VESTABOARD_CLOUD_API_KEY)
  --api-secret        Cloud API secret (or VESTABOARD_CLOUD_API_SECRET)
  --subscription-id   Cloud subscription ID (or VESTABOARD_CLOUD_SUBSCRIPTION_ID)
  --local-key         Local API key (or VESTABOARD_LOCAL_API_KEY)
  --local-ip          Board IP address (or VESTABOARD_LOCAL_IP)
  --credentials-file  Saved credentials (default: <config dir>/vestaboard/credentials.toml)
  --base-url          Override the API base URL
  --min-interval      Minimum spacing between posts (e.g. 15s)
  --log-level         debug|info|warn|error

Layout flags:
  --align             left (default) | center | right
  --pad               top | bottom | center; empty centers with a warning
  --strict            Fail on unsupported characters instead of blanking them

Raw flags:
  --file              JSON array of rows, each exactly 22 integer codes
  --rows-pad          Padding for fewer than 6 rows (defaults to --pad)

Notes:
  - Settings may also live in <config dir>/vestaboard/config.toml or $VESTABOARD_CONFIG.
  - Text may embed codes as {NN}, e.g. {63} for a red tile.
`)
}
