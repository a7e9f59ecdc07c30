package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/kpauljoseph/pdfreview/internal/anki"
	"github.com/kpauljoseph/pdfreview/internal/config"
	"github.com/kpauljoseph/pdfreview/internal/deck"
	"github.com/kpauljoseph/pdfreview/internal/pdf"
	"github.com/kpauljoseph/pdfreview/internal/review"
	"github.com/kpauljoseph/pdfreview/internal/scanner"
	"github.com/kpauljoseph/pdfreview/internal/shell"
	"github.com/kpauljoseph/pdfreview/internal/store"
	"github.com/kpauljoseph/pdfreview/pkg/logger"
	"github.com/kpauljoseph/pdfreview/pkg/updater"
	"github.com/kpauljoseph/pdfreview/pkg/version"
)

func main() {
	configPath := flag.String("config", "config.yaml", "path to config file")
	decksDir := flag.String("decks-dir", "", "directory containing PDF files (overrides config)")
	list := flag.Bool("list", false, "list the PDFs in the decks directory and exit")
	exportAnki := flag.Bool("export-anki", false, "export the flashcards of the PDF to Anki and exit")
	renderDir := flag.String("render-dir", "", "write the current page to a PNG in this directory (overrides config)")
	shuffled := flag.Bool("shuffle", false, "start in shuffled review mode")
	verbose := flag.Bool("verbose", false, "enable verbose logging")
	debug := flag.Bool("debug", false, "enable debug mode with trace logging")
	showVersion := flag.Bool("version", false, "print version information")
	checkUpdate := flag.Bool("check-update", false, "check GitHub for a newer release and exit")
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "Usage: %s [flags] <file.pdf>\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()

	if *showVersion {
		fmt.Print(version.GetDetailedVersionInfo())
		return
	}

	log := logger.New(logger.WithPrefix("[pdfreview] "))

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatal("Error loading config: %v", err)
	}
	if *decksDir != "" {
		cfg.DecksDir = *decksDir
	}
	if *renderDir != "" {
		cfg.RenderDir = *renderDir
	}
	if *shuffled {
		cfg.StartShuffled = true
	}

	log.SetVerbose(*verbose || cfg.Log.Verbose)
	if *debug || cfg.Log.Debug {
		log.SetVerbose(true)
		log.SetLevel(logger.LevelTrace)
	}
	log.Debug("%s", version.GetVersionInfo())

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if *checkUpdate {
		if err := reportUpdate(ctx, log); err != nil {
			log.Fatal("Error checking for updates: %v", err)
		}
		return
	}

	if *list {
		if err := listDecks(ctx, cfg, log); err != nil {
			log.Fatal("Error listing decks: %v", err)
		}
		return
	}

	if flag.NArg() != 1 {
		flag.Usage()
		os.Exit(2)
	}
	pdfPath := flag.Arg(0)

	counter := pdf.NewFallbackCounter(log, pdf.NewCounter(log), &pdf.Renderer{})
	numPages, err := counter.PageCount(ctx, pdfPath)
	if err != nil {
		log.Fatal("Error reading PDF: %v", err)
	}

	flashcardStore := store.New(log)
	snapshot, err := flashcardStore.Load(pdfPath, numPages)
	if err != nil {
		log.Fatal("Error loading flashcards: %v", err)
	}

	if *exportAnki {
		if err := exportDeck(cfg, pdfPath, snapshot, log); err != nil {
			log.Fatal("Error exporting to Anki: %v", err)
		}
		return
	}

	mode := deck.Ordered
	if cfg.StartShuffled {
		mode = deck.Shuffled
	}
	reviewer := review.New(snapshot.Deck, log,
		review.WithMode(mode),
		review.WithPasses(snapshot.Passes),
		review.WithFirstPass(snapshot.FirstPass),
	)

	save := func() error {
		return flashcardStore.Save(pdfPath, &store.Snapshot{
			Deck:      reviewer.Deck(),
			Passes:    reviewer.Passes(),
			FirstPass: reviewer.FirstPass(),
		})
	}

	var options []shell.Option
	if cfg.RenderDir != "" {
		renderer, err := pdf.NewRenderer(cfg.RenderDir, log)
		if err != nil {
			log.Fatal("Error initializing renderer: %v", err)
		}
		options = append(options, shell.WithRenderer(pdfPath, renderer))
	}

	log.Info("Reviewing %s: %d pages, %d flashcards. Type help for commands.",
		pdfPath, numPages, snapshot.Deck.NumFlashcards())

	if err := shell.New(reviewer, save, os.Stdout, log, options...).Run(ctx, os.Stdin); err != nil {
		log.Fatal("Error: %v", err)
	}
}

func listDecks(ctx context.Context, cfg *config.Config, log *logger.Logger) error {
	decks, err := scanner.New(log).FindDecks(ctx, cfg.DecksDir)
	if err != nil {
		return err
	}
	for _, d := range decks {
		marker := " "
		if d.HasFlashcards {
			marker = "*"
		}
		fmt.Printf("%s %s\n", marker, d.RelPath)
	}
	log.Info("Found %d PDFs in %s (* has flashcards)", len(decks), cfg.DecksDir)
	return nil
}

func exportDeck(cfg *config.Config, pdfPath string, snapshot *store.Snapshot, log *logger.Logger) error {
	service := anki.NewService(log, anki.WithURL(cfg.Anki.ConnectURL))

	log.Debug("Checking Anki connection...")
	if err := service.CheckConnection(); err != nil {
		return err
	}
	log.Info("Successfully connected to Anki")

	deckName := anki.GetDeckNameFromPath(cfg.Anki.RootDeck, deckRelPath(cfg.DecksDir, pdfPath))
	stats, err := service.ExportDeck(deckName, snapshot.Deck.Flashcards())
	if err != nil {
		return err
	}

	log.Info("Export complete:")
	log.Info("- Deck: %s", deckName)
	log.Info("- Flashcards added: %d", stats.Added)
	log.Info("- Already in Anki: %d", stats.Skipped)
	return nil
}

func reportUpdate(ctx context.Context, log *logger.Logger) error {
	info, err := updater.NewChecker(log).CheckForUpdates(ctx)
	if err != nil {
		return err
	}
	if !info.IsAvailable {
		log.Info("%s %s is the latest release", version.Name, info.CurrentVersion)
		return nil
	}
	log.Info("%s %s is available (running %s): %s", version.Name, info.LatestVersion, info.CurrentVersion, info.DownloadURL)
	if info.UpdateMessage != "" {
		fmt.Println(info.UpdateMessage)
	}
	return nil
}
