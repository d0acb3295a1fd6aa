package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"google.golang.org/api/option"

	"github.com/tejasm/munim/internal/analytics"
	"github.com/tejasm/munim/internal/config"
	"github.com/tejasm/munim/internal/database"
	"github.com/tejasm/munim/internal/ledger"
	"github.com/tejasm/munim/internal/logger"
	"github.com/tejasm/munim/internal/snapshot"
	"github.com/tejasm/munim/internal/voice"
	"github.com/tejasm/munim/internal/voice/gcpspeech"
)

func main() {
	ctx := logger.WithContext(context.Background(), logger.New())

	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	switch os.Args[1] {
	case "parse":
		runParse(ctx)
	case "listen":
		runListen(ctx)
	case "dashboard":
		runDashboard(ctx)
	case "tasks":
		runTasks(ctx)
	case "add-task":
		runAddTask(ctx)
	case "add-resource":
		runAddResource(ctx)
	case "activities":
		runActivities(ctx)
	case "help", "-h", "--help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", os.Args[1])
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println("munim - voice-driven small-business ledger")
	fmt.Println("\nUsage:")
	fmt.Println("  munim <command> [options]")
	fmt.Println("\nCommands:")
	fmt.Println("  parse         Parse a transcript into an intent and execute it")
	fmt.Println("  listen        Capture one utterance via Cloud Speech and execute it")
	fmt.Println("  dashboard     Show KPIs, growth metrics, and top products")
	fmt.Println("  tasks         List team tasks")
	fmt.Println("  add-task      Add a team task")
	fmt.Println("  add-resource  Add a company resource")
	fmt.Println("  activities    Show the recent activity feed")
	fmt.Println("  help          Show this help message")
}

// app bundles the wired stores and services.
type app struct {
	store     *ledger.SQLStore
	analytics *analytics.Service
	cfg       config.Config
	close     func()
}

func setup(ctx context.Context) *app {
	log := logger.FromContext(ctx)

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("config")
	}

	if err := os.MkdirAll(filepath.Dir(cfg.Database.Path), 0o755); err != nil {
		log.Fatal().Err(err).Msg("mkdir db dir")
	}
	db, err := database.Open(cfg.Database.Path)
	if err != nil {
		log.Fatal().Err(err).Msg("open db")
	}
	if err := database.RunMigrations(db); err != nil {
		log.Fatal().Err(err).Msg("migrate")
	}

	if err := ledger.SeedDefaults(ctx, db, database.Now()); err != nil {
		log.Fatal().Err(err).Msg("seed defaults")
	}

	snaps, err := snapshot.NewFileStore(filepath.Join(filepath.Dir(cfg.Database.Path), "snapshots"))
	if err != nil {
		log.Fatal().Err(err).Msg("snapshot store")
	}

	loc, err := time.LoadLocation(cfg.UI.Timezone)
	if err != nil {
		log.Warn().Err(err).Msg("using local timezone due to load failure")
		loc = time.Local
	}
	now := func() time.Time { return time.Now().In(loc) }

	store := ledger.NewSQLStore(db)
	return &app{
		store:     store,
		analytics: analytics.New(store, snaps, now, log),
		cfg:       cfg,
		close:     func() { _ = db.Close() },
	}
}

func runParse(ctx context.Context) {
	log := logger.FromContext(ctx)

	fs := flag.NewFlagSet("parse", flag.ExitOnError)
	lang := fs.String("lang", "", "transcript language: en, hi, or mr")
	fs.Parse(os.Args[2:])

	if fs.NArg() < 1 {
		log.Fatal().Msg("Usage: munim parse [-lang en|hi|mr] \"transcript\"")
	}
	transcript := fs.Arg(0)

	a := setup(ctx)
	defer a.close()

	language := voice.Language(*lang)
	if *lang == "" {
		language = voice.Language(a.cfg.Voice.DefaultLanguage)
	}

	executeTranscript(ctx, a, transcript, language)
}

func runListen(ctx context.Context) {
	log := logger.FromContext(ctx)

	fs := flag.NewFlagSet("listen", flag.ExitOnError)
	lang := fs.String("lang", "", "utterance language: en, hi, or mr")
	audioPath := fs.String("audio", "", "path to a LINEAR16 PCM recording of the utterance")
	fs.Parse(os.Args[2:])

	if *audioPath == "" {
		log.Fatal().Msg("Usage: munim listen -audio recording.raw [-lang en|hi|mr]")
	}

	a := setup(ctx)
	defer a.close()

	language := voice.Language(*lang)
	if *lang == "" {
		language = voice.Language(a.cfg.Voice.DefaultLanguage)
	}

	ctx, cancel := context.WithTimeout(ctx, time.Minute)
	defer cancel()

	var opts []option.ClientOption
	if a.cfg.Speech.CredentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(a.cfg.Speech.CredentialsFile))
	}
	source := func(context.Context) ([]byte, error) { return os.ReadFile(*audioPath) }
	rec, err := gcpspeech.New(ctx, source, a.cfg.Speech.SampleRateHertz, opts...)
	if err != nil {
		log.Fatal().Err(err).Msg("speech client")
	}
	defer rec.Close()

	assistant := voice.NewAssistant(rec, nil, log)
	captures, err := assistant.StartListening(ctx, language)
	if err != nil {
		log.Fatal().Err(err).Msg("start listening")
	}
	capture, ok := <-captures
	if !ok {
		log.Fatal().Msg("capture cancelled")
	}
	if capture.Err != nil {
		log.Fatal().Err(capture.Err).Msg("recognition failed")
	}

	fmt.Printf("Heard: %s\n", capture.Transcript)
	executeTranscript(ctx, a, capture.Transcript, language)
}

// executeTranscript parses and, for add_transaction intents, appends to the
// ledger. Other intents are printed for the caller to act on.
func executeTranscript(ctx context.Context, a *app, transcript string, language voice.Language) {
	intent := voice.Parse(transcript, language)
	if intent == nil {
		fmt.Println("Command not recognized.")
		if hint := voice.Suggest(transcript); hint != "" {
			fmt.Printf("Did you mean something like %q?\n", hint)
		}
		return
	}

	out, _ := json.MarshalIndent(intent, "", "  ")
	fmt.Println(string(out))

	if intent.Kind != voice.KindAddTransaction {
		return
	}
	p := intent.Transaction
	tx, err := a.store.AddTransaction(ctx, ledger.NewTransaction{
		Type:          p.Type,
		Amount:        p.Amount,
		Category:      defaultCategory(p.Type),
		Description:   p.Description,
		Date:          database.Now(),
		PaymentMethod: "Cash",
	})
	if err != nil {
		log := logger.FromContext(ctx)
		log.Fatal().Err(err).Msg("add transaction")
	}
	fmt.Printf("Recorded %s of %s%.0f: %s\n", tx.Type, a.cfg.UI.CurrencySymbol, tx.Amount, tx.Description)
}

func defaultCategory(txType string) string {
	if txType == ledger.TypeIncome {
		return "Sales"
	}
	return "Supplies"
}

func runDashboard(ctx context.Context) {
	log := logger.FromContext(ctx)
	a := setup(ctx)
	defer a.close()

	kpis, err := a.analytics.KPIs(ctx)
	if err != nil {
		log.Fatal().Err(err).Msg("kpis")
	}
	fmt.Println("Department expenses:")
	for _, k := range kpis {
		fmt.Printf("  %-12s %s%-10.2f %5.1f%%\n", k.Name, a.cfg.UI.CurrencySymbol, k.Value, k.Percentage)
	}

	m, err := a.analytics.Metrics(ctx)
	if err != nil {
		log.Fatal().Err(err).Msg("metrics")
	}
	fmt.Printf("\nMonthly revenue:  %s%.2f\n", a.cfg.UI.CurrencySymbol, m.MonthlyRevenue)
	fmt.Printf("Total revenue:    %s%.2f\n", a.cfg.UI.CurrencySymbol, m.TotalRevenue)
	fmt.Printf("Growth rate:      %+.1f%%\n", m.MonthlyGrowthRate)
	fmt.Printf("Orders fulfilled: %d (estimated clients: %d, leads: %d)\n",
		m.OrdersFulfilled, m.NewClients, m.LeadsConverted)

	top, err := a.analytics.TopProducts(ctx)
	if err != nil {
		log.Fatal().Err(err).Msg("top products")
	}
	fmt.Println("\nTop products:")
	for i, p := range top {
		fmt.Printf("  %d. %-30s %s%-10.2f x%d\n", i+1, p.Name, a.cfg.UI.CurrencySymbol, p.Revenue, p.Quantity)
	}
}

func runTasks(ctx context.Context) {
	a := setup(ctx)
	defer a.close()
	for _, t := range a.analytics.Tasks() {
		fmt.Printf("%-38s %-11s %-6s %-12s due %s (%s)\n",
			t.Title, t.Status, t.Priority, t.Department, t.Deadline.Format("2006-01-02"), t.Assignee)
	}
}

func runAddTask(ctx context.Context) {
	log := logger.FromContext(ctx)

	fs := flag.NewFlagSet("add-task", flag.ExitOnError)
	title := fs.String("title", "", "task title")
	assignee := fs.String("assignee", "", "assignee")
	deadline := fs.String("deadline", "", "deadline (YYYY-MM-DD)")
	priority := fs.String("priority", analytics.PriorityMedium, "low, medium, or high")
	department := fs.String("department", "Operations", "department")
	fs.Parse(os.Args[2:])

	if *title == "" || *deadline == "" {
		log.Fatal().Msg("Usage: munim add-task -title TITLE -deadline YYYY-MM-DD [options]")
	}
	due, err := time.Parse("2006-01-02", *deadline)
	if err != nil {
		log.Fatal().Err(err).Msg("invalid deadline")
	}

	a := setup(ctx)
	defer a.close()
	t := a.analytics.AddTask(analytics.Task{
		Title:      *title,
		Assignee:   *assignee,
		Deadline:   due,
		Status:     analytics.TaskPending,
		Priority:   *priority,
		Department: *department,
	})
	fmt.Printf("Added task %s: %s\n", t.ID, t.Title)
}

func runAddResource(ctx context.Context) {
	log := logger.FromContext(ctx)

	fs := flag.NewFlagSet("add-resource", flag.ExitOnError)
	name := fs.String("name", "", "resource name")
	rtype := fs.String("type", analytics.ResourceSoftware, "software, hardware, subscription, or inventory")
	cost := fs.Float64("cost", 0, "cost")
	fs.Parse(os.Args[2:])

	if *name == "" {
		log.Fatal().Msg("Usage: munim add-resource -name NAME [-type TYPE] [-cost N]")
	}

	a := setup(ctx)
	defer a.close()
	r := a.analytics.AddResource(analytics.Resource{
		Name:   *name,
		Type:   *rtype,
		Cost:   *cost,
		Status: "active",
	})
	fmt.Printf("Added resource %s: %s\n", r.ID, r.Name)
}

func runActivities(ctx context.Context) {
	a := setup(ctx)
	defer a.close()
	acts, err := a.analytics.Activities(ctx)
	if err != nil {
		log := logger.FromContext(ctx)
		log.Fatal().Err(err).Msg("activities")
	}
	for _, act := range acts {
		amount := ""
		if act.Amount != nil {
			amount = fmt.Sprintf(" %s%.2f", a.cfg.UI.CurrencySymbol, *act.Amount)
		}
		fmt.Printf("%s  %-8s %s%s\n", act.Timestamp.Format("2006-01-02 15:04"), act.Type, act.Description, amount)
	}
}
