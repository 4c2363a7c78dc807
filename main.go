package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"log"
	"math/rand"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"linkedin-poster/internal/auth"
	"linkedin-poster/internal/config"
	"linkedin-poster/internal/content"
	"linkedin-poster/internal/database"
	"linkedin-poster/internal/history"
	"linkedin-poster/internal/linkedin"
	"linkedin-poster/internal/locales"
	"linkedin-poster/internal/scheduler"

	sentry "github.com/getsentry/sentry-go"
	"github.com/nicksnyder/go-i18n/v2/i18n"
)

func main() {
	env := config.LoadEnv()

	// Initialize localization bundle
	locales.Init(env.Language)
	localizer := locales.NewLocalizer(env.Language)

	// Initialize Sentry (if DSN is provided)
	err := sentry.Init(sentry.ClientOptions{
		Dsn:         env.SentryDSN,
		Environment: env.AppEnv,
		Release:     env.Version,
		Debug:       env.Debug,
	})
	if err != nil {
		log.Fatalf("sentry.Init: %s", err)
	}
	defer sentry.Flush(2 * time.Second)

	// Creating context for application lifecycle
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	app := &app{
		env:       env,
		localizer: localizer,
		hist:      history.New(),
		rng:       rand.New(rand.NewSource(time.Now().UnixNano())),
	}

	// "run" starts the automation directly, without the menu. Used for
	// unattended operation; configuration errors exit non-zero there.
	if len(os.Args) > 1 && os.Args[1] == "run" {
		if err := app.runAutomation(ctx); err != nil {
			sentry.CaptureException(err)
			log.Fatalf("Configuration error: %v", err)
		}
		return
	}

	app.menuLoop(ctx)
}

// app ties the interactive menu to its long-lived state. The post history
// lives here so statistics stay visible between menu actions.
type app struct {
	env       *config.Env
	localizer *i18n.Localizer
	hist      *history.History
	rng       *rand.Rand
}

func (a *app) menuLoop(ctx context.Context) {
	scanner := bufio.NewScanner(os.Stdin)

	for {
		fmt.Printf("\n⏰ %s\n", time.Now().Format("2006-01-02 15:04:05"))
		a.printMenu()

		if !scanner.Scan() {
			return
		}
		if ctx.Err() != nil {
			fmt.Println(a.msg("MsgGoodbye", nil))
			return
		}

		var err error
		switch strings.TrimSpace(scanner.Text()) {
		case "1":
			err = a.runAutomation(ctx)
		case "2":
			err = a.configureToken(ctx)
		case "3":
			err = a.testConnection(ctx)
		case "4":
			err = a.showConfig()
		case "5":
			a.showStats()
		case "6":
			fmt.Println(a.msg("MsgGoodbye", nil))
			return
		default:
			fmt.Println(a.msg("MsgMenuInvalidOption", nil))
		}

		if err != nil {
			fmt.Println(a.msg("MsgConfigError", map[string]interface{}{"Error": err.Error()}))
		}
		if ctx.Err() != nil {
			return
		}
	}
}

func (a *app) printMenu() {
	fmt.Println(a.msg("MsgMenuHeader", nil))
	fmt.Println(strings.Repeat("=", 40))
	for _, id := range []string{
		"MsgMenuStart", "MsgMenuConfigureToken", "MsgMenuTestConnection",
		"MsgMenuShowConfig", "MsgMenuStats", "MsgMenuExit",
	} {
		fmt.Println(a.msg(id, nil))
	}
	fmt.Print(a.msg("MsgMenuPrompt", nil))
}

// loadConfig loads and validates the runtime config, including the check that
// every configured topic exists in the corpus.
func (a *app) loadConfig() (*config.Config, error) {
	cfg, err := config.Load(a.env.ConfigPath)
	if errors.Is(err, config.ErrConfigCreated) {
		fmt.Println(a.msg("MsgConfigCreated", map[string]interface{}{"Path": a.env.ConfigPath}))
		return nil, err
	}
	if err != nil {
		return nil, err
	}

	corpus := content.DefaultCorpus(a.rng)
	if err := corpus.ValidateTopics(cfg.Topics); err != nil {
		return nil, err
	}
	return cfg, nil
}

// runAutomation blocks running the posting loop until the context is
// cancelled. Only configuration problems are returned as errors; everything
// else is contained inside the loop.
func (a *app) runAutomation(ctx context.Context) error {
	cfg, err := a.loadConfig()
	if err != nil {
		return err
	}

	client := linkedin.NewClient(cfg.AccessToken, cfg.PersonID)
	corpus := content.DefaultCorpus(a.rng)

	// Optional durable mirror of the post log.
	var postLogger database.PostLogger
	if a.env.MongoDBURI != "" {
		mongoClient, db, err := database.ConnectDB(ctx, a.env.MongoDBURI, a.env.MongoDBDatabase)
		if err != nil {
			log.Printf("Post log mirroring disabled: %v", err)
			sentry.CaptureException(err)
		} else {
			defer func() {
				if err := mongoClient.Disconnect(context.Background()); err != nil {
					log.Printf("Error disconnecting from MongoDB: %v", err)
				}
			}()
			postLogger = database.NewMongoPostLogger(db)
		}
	}

	sched, err := scheduler.New(scheduler.Deps{
		Config:     cfg,
		Selector:   corpus,
		Publisher:  client,
		History:    a.hist,
		PostLogger: postLogger,
		Rand:       a.rng,
	})
	if err != nil {
		return err
	}

	fmt.Println(a.msg("MsgAutomationStarting", nil))
	fmt.Println(a.msg("MsgAutomationStopPrompt", nil))
	sched.Run(ctx)
	fmt.Println(a.msg("MsgAutomationStopped", nil))
	return nil
}

func (a *app) configureToken(ctx context.Context) error {
	flow := auth.NewFlow(a.env, a.localizer)
	if _, err := flow.Run(ctx); err != nil {
		fmt.Println(a.msg("MsgAuthFailed", nil))
		sentry.CaptureException(err)
		return err
	}
	return nil
}

func (a *app) testConnection(ctx context.Context) error {
	cfg, err := a.loadConfig()
	if err != nil {
		return err
	}

	fmt.Println(a.msg("MsgConnectionTesting", nil))
	client := linkedin.NewClient(cfg.AccessToken, cfg.PersonID)
	profile, err := client.Me(ctx)
	if err != nil {
		fmt.Println(a.msg("MsgConnectionFailed", nil))
		return err
	}

	name := strings.TrimSpace(profile.LocalizedFirstName + " " + profile.LocalizedLastName)
	fmt.Println(a.msg("MsgConnectionOK", map[string]interface{}{"Name": name}))
	a.showStats()
	return nil
}

func (a *app) showConfig() error {
	cfg, err := a.loadConfig()
	if err != nil {
		return err
	}

	fmt.Println(a.msg("MsgConfigHeader", nil))
	fmt.Println(a.msg("MsgConfigInterval", map[string]interface{}{"Minutes": cfg.PostIntervalMinutes}))
	fmt.Println(a.msg("MsgConfigJitter", map[string]interface{}{"Minutes": cfg.RandomDelayMinutes}))
	fmt.Println(a.msg("MsgConfigMaxPerDay", map[string]interface{}{"Max": cfg.MaxPostsPerDay}))
	if cfg.WorkingHoursOnly {
		fmt.Println(a.msg("MsgConfigWorkingHours", map[string]interface{}{
			"Start": cfg.WorkingHoursStart,
			"End":   cfg.WorkingHoursEnd,
		}))
	} else {
		fmt.Println(a.msg("MsgConfigWorkingHoursOff", nil))
	}
	fmt.Println(a.msg("MsgConfigTopics", map[string]interface{}{"Topics": strings.Join(cfg.Topics, ", ")}))
	return nil
}

func (a *app) showStats() {
	stats := a.hist.Stats(time.Now())
	if stats.TotalPosts == 0 {
		fmt.Println(a.msg("MsgStatsEmpty", nil))
		return
	}
	fmt.Println(a.msg("MsgStatsHeader", nil))
	fmt.Println(a.msg("MsgStatsTotal", map[string]interface{}{"Total": stats.TotalPosts}))
	fmt.Println(a.msg("MsgStatsToday", map[string]interface{}{"Today": stats.TodayPosts}))
	fmt.Println(a.msg("MsgStatsSuccessRate", map[string]interface{}{"Rate": fmt.Sprintf("%.1f", stats.SuccessRate)}))
	fmt.Println(a.msg("MsgStatsLastPost", map[string]interface{}{"Time": stats.LastPost.Format("2006-01-02 15:04:05")}))
}

func (a *app) msg(id string, data map[string]interface{}) string {
	return locales.GetMessage(a.localizer, id, data)
}
