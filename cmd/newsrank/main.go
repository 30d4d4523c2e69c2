package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	iofs "io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/fwojciec/newsrank"
	"github.com/fwojciec/newsrank/crawl"
	"github.com/fwojciec/newsrank/excelize"
	"github.com/fwojciec/newsrank/fs"
	"github.com/fwojciec/newsrank/gemini"
	"github.com/fwojciec/newsrank/goquery"
	nrhttp "github.com/fwojciec/newsrank/http"
	"github.com/fwojciec/newsrank/rod"
	nrslog "github.com/fwojciec/newsrank/slog"
	"github.com/fwojciec/newsrank/sqlite"
	"github.com/fwojciec/newsrank/timefmt"
	"github.com/joho/godotenv"
	"google.golang.org/genai"
)

func main() {
	ctx := context.Background()

	if err := loadEnvFile(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct {
	// Database path. Set before calling Run().
	DBPath string

	// Operator input for challenge prompts.
	Stdin io.Reader

	// SQLite database used by SQLite service implementations.
	DB *sqlite.DB

	closers []io.Closer
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{
		DBPath: defaultDBPath(),
		Stdin:  os.Stdin,
	}
}

// Close gracefully stops the program.
func (m *Main) Close() error {
	for i := len(m.closers) - 1; i >= 0; i-- {
		_ = m.closers[i].Close()
	}
	m.closers = nil
	if m.DB != nil {
		return m.DB.Close()
	}
	return nil
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	deps := &Dependencies{
		Ctx:    ctx,
		Stdout: stdout,
		Stderr: stderr,
	}

	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("newsrank"),
		kong.Description("Collect, score and rank news items from configured sites."),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}), // Don't exit on help
		kong.Bind(deps),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'newsrank --help' to see available commands")
	}
	if args[0] == "help" || args[0] == "--help" || args[0] == "-h" {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	kongCtx, err := parser.Parse(args)
	if err != nil {
		return err
	}
	defer m.Close()

	level := slog.LevelInfo
	if cli.Verbose {
		level = slog.LevelDebug
	}
	deps.Logger = slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))

	cmd := strings.Fields(kongCtx.Command())[0]
	switch cmd {
	case "run", "resume":
		if err := m.wirePipeline(deps, cli, cmd); err != nil {
			return err
		}
		if err := m.openDB(deps, stderr); err != nil {
			return err
		}
	case "extract":
		if err := m.loadConfig(deps, cli.ConfigDir); err != nil {
			return err
		}
		deps.Extractor = goquery.NewExtractor()
		deps.Normalizer = timefmt.NewNormalizer(deps.Config.DateFormats)
	case "list":
		if err := m.openDB(deps, stderr); err != nil {
			return err
		}
	}

	return kongCtx.Run(deps)
}

func (m *Main) loadConfig(deps *Dependencies, dir string) error {
	cfg, err := fs.LoadConfig(dir)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "Hint: Set NEWSRANK_CONFIG to use a different configuration directory\n")
		return fmt.Errorf("failed to load configuration from %q: %w", dir, err)
	}
	deps.Config = cfg
	return nil
}

func (m *Main) openDB(deps *Dependencies, stderr io.Writer) error {
	m.DB = sqlite.NewDB(m.DBPath)
	if err := m.DB.Open(); err != nil {
		fmt.Fprintf(stderr, "Hint: Set NEWSRANK_DB to use a different database path\n")
		return fmt.Errorf("failed to open database at %q: %w", m.DBPath, err)
	}
	deps.Items = sqlite.NewItemService(m.DB)
	return nil
}

// wirePipeline builds the collection pipeline and its collaborators for
// the run and resume commands.
func (m *Main) wirePipeline(deps *Dependencies, cli *CLI, cmd string) error {
	if err := m.loadConfig(deps, cli.ConfigDir); err != nil {
		return err
	}
	settings := deps.Config.Settings
	logger := deps.Logger

	store := fs.NewItemStore(cli.WorkDir)
	normalizer := timefmt.NewNormalizer(deps.Config.DateFormats)
	deps.Normalizer = normalizer
	deps.Digest = fs.NewDigestWriter(cli.WorkDir)
	deps.Pipeline = &crawl.Pipeline{
		Config:     deps.Config,
		Normalizer: normalizer,
		Items:      nrslog.NewLoggingItemStore(store, logger),
		Logger:     logFunc(logger),
	}

	translate := cli.Resume.Translate
	if cmd == "run" {
		translate = cli.Run.Translate

		source := cli.Run.Sources
		if source == "" {
			source = settings.SourceFile
			if !filepath.IsAbs(source) {
				source = filepath.Join(cli.ConfigDir, source)
			}
		}
		deps.Sources = excelize.NewSourceReader(source)

		var resolver newsrank.ChallengeResolver = newsrank.SkipChallenges{}
		if cli.Run.Interactive {
			resolver = NewPromptResolver(m.Stdin, deps.Stderr)
		}
		browser := &lazyBrowser{
			launch: func() (newsrank.Fetcher, error) {
				manager, err := rod.NewBrowserManager(rod.WithHeadless(!cli.Run.ShowBrowser))
				if err != nil {
					fmt.Fprintln(deps.Stderr, "Hint: Chrome, Chromium or Edge must be installed")
					return nil, fmt.Errorf("failed to start browser: %w", err)
				}
				return rod.NewFetcher(manager, resolver, rod.WithTimeout(settings.BrowserTimeout)), nil
			},
		}
		fetcher := &crawl.EngineFetcher{
			Browser: browser,
			Static:  nrhttp.NewFetcher(nrhttp.WithTimeout(settings.BrowserTimeout)),
		}
		m.closers = append(m.closers, fetcher)

		deps.Pipeline.Fetcher = nrslog.NewLoggingFetcher(fetcher, logger)
		deps.Pipeline.Extractor = nrslog.NewLoggingExtractor(goquery.NewExtractor(), logger)
		deps.Pipeline.RateLimiter = crawl.NewDomainLimiter(1.0)
	}

	if translate {
		t, err := newTranslate(deps, settings.TargetLanguage)
		if err != nil {
			return err
		}
		deps.Translate = t
	}
	return nil
}

func newTranslate(deps *Dependencies, targetLang string) (*crawl.Translate, error) {
	apiKey := os.Getenv("GEMINI_API_KEY")
	if apiKey == "" {
		fmt.Fprintln(deps.Stderr, "GEMINI_API_KEY environment variable not set. Get an API key at https://aistudio.google.com/apikey")
		return nil, fmt.Errorf("GEMINI_API_KEY not set. Get a key at https://aistudio.google.com/apikey")
	}

	client, err := genai.NewClient(deps.Ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		fmt.Fprintln(deps.Stderr, "Hint: Check your GEMINI_API_KEY is valid")
		return nil, fmt.Errorf("failed to connect to Gemini API: %w", err)
	}

	tokens, err := gemini.NewTokenCounter(gemini.Model)
	if err != nil {
		return nil, fmt.Errorf("failed to create token counter: %w", err)
	}

	return &crawl.Translate{
		Translator: nrslog.NewLoggingTranslator(gemini.NewTranslator(client), deps.Logger),
		Tokens:     tokens,
		TargetLang: targetLang,
		Logger:     logFunc(deps.Logger),
	}, nil
}

// logFunc adapts a structured logger to the printf-style hook used by the
// crawl package.
func logFunc(logger *slog.Logger) crawl.LogFunc {
	return func(format string, args ...any) {
		logger.Warn(strings.TrimSpace(fmt.Sprintf(format, args...)))
	}
}

// loadEnvFile reads NEWSRANK_* and GEMINI_API_KEY from .env, or from the
// file named by NEWSRANK_ENV_FILE. Variables already set are kept.
func loadEnvFile() error {
	path := ".env"
	if p := os.Getenv("NEWSRANK_ENV_FILE"); p != "" {
		path = p
	}
	if err := godotenv.Load(path); err != nil && !errors.Is(err, iofs.ErrNotExist) {
		return fmt.Errorf("load env file %s: %w", path, err)
	}
	return nil
}

func defaultDBPath() string {
	if path := os.Getenv("NEWSRANK_DB"); path != "" {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "newsrank.db"
	}
	dir := filepath.Join(home, ".newsrank")
	_ = os.MkdirAll(dir, 0755)
	return filepath.Join(dir, "newsrank.db")
}
