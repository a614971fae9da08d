package cmd

import (
	"context"
	"embed"
	"os"
	"time"

	"github.com/joho/godotenv"
	coreconfig "github.com/shiurnotes/shiurnotes/core/config"
	domainCache "github.com/shiurnotes/shiurnotes/domains/cache"
	domainHealth "github.com/shiurnotes/shiurnotes/domains/health"
	domainLecture "github.com/shiurnotes/shiurnotes/domains/lecture"
	"github.com/shiurnotes/shiurnotes/infrastructure/cachestore"
	"github.com/shiurnotes/shiurnotes/infrastructure/valkey"
	"github.com/shiurnotes/shiurnotes/integrations/gemini"
	"github.com/shiurnotes/shiurnotes/integrations/yutorah"
	"github.com/shiurnotes/shiurnotes/pkg/guard"
	"github.com/shiurnotes/shiurnotes/pkg/runmonitor"
	"github.com/shiurnotes/shiurnotes/pkg/utils"
	"github.com/shiurnotes/shiurnotes/usecase"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const resolverTimeout = 30 * time.Second

var (
	EmbedViews embed.FS

	vkClient *valkey.Client

	// Usecase
	cacheGateway   domainCache.IGateway
	processGuard   *guard.Guard
	runMonitor     *runmonitor.Monitor
	processUsecase domainLecture.IProcessUsecase
	healthUsecase  domainHealth.IHealthUsecase
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "shiurnotes",
	Short: "Generate notes and transcripts for YUTorah shiurim",
	Long: `Fetches the audio behind a YUTorah lecture page, asks Gemini for notes or a
transcript and caches the result so every lecture is generated once.`,
	Run: restServer,
}

func init() {
	// .env is optional; real environment variables win.
	_ = godotenv.Load()

	time.Local = time.UTC

	rootCmd.CompletionOptions.DisableDefaultCmd = true

	initFlags()

	cobra.OnInitialize(initApp)
}

func initFlags() {
	flags := rootCmd.PersistentFlags()
	flags.StringP("port", "p", "", "change port number with --port <number> | example: --port=8080")
	flags.BoolP("debug", "d", false, "enable debug logging with --debug <true/false> | example: --debug=true")
	flags.String("cache-file", "", `flat JSON cache used when no networked cache is available | example: --cache-file="storages/notes_cache.json"`)
	flags.String("redis-url", "", `networked cache connection string | example: --redis-url="redis://localhost:6379/0"`)

	_ = viper.BindPFlag("app_port", flags.Lookup("port"))
	_ = viper.BindPFlag("app_debug", flags.Lookup("debug"))
	_ = viper.BindPFlag("cache_file", flags.Lookup("cache-file"))
	_ = viper.BindPFlag("redis_url", flags.Lookup("redis-url"))
}

// applyFlagOverrides lets command line flags win over the environment.
func applyFlagOverrides(cfg *coreconfig.Config) {
	if v := viper.GetString("app_port"); v != "" {
		cfg.App.Port = v
	}
	if viper.GetBool("app_debug") {
		cfg.App.Debug = true
	}
	if v := viper.GetString("cache_file"); v != "" {
		cfg.Cache.File = v
	}
	if v := viper.GetString("redis_url"); v != "" {
		cfg.Cache.URL = v
	}
}

func initApp() {
	cfg, err := coreconfig.LoadConfig()
	if err != nil {
		logrus.Fatalf("failed to load config: %v", err)
	}
	applyFlagOverrides(cfg)

	if cfg.App.Debug {
		logrus.SetLevel(logrus.DebugLevel)
	}

	if err := cfg.Validate(); err != nil {
		logrus.Fatalln(err)
	}

	//preparing folder if not exist
	if err := utils.CreateFolder(cfg.Paths.Storages, cfg.Paths.Temp); err != nil {
		logrus.Errorln(err)
	}
	cfg.App.ServerID = utils.GetPersistentServerID(cfg.App.ServerID, cfg.Paths.Storages)

	ctx := context.Background()

	// 1. Cache: networked store when configured and reachable, flat file always.
	fileStore := cachestore.NewFileStore(cfg.Cache.File)
	var primary domainCache.Store
	if cfg.Cache.URL != "" {
		vkClient, err = valkey.NewClient(valkey.Config{URL: cfg.Cache.URL, KeyPrefix: cfg.Cache.KeyPrefix})
		if err != nil {
			logrus.WithError(err).Warnf("[CACHE] networked cache unavailable, using file cache at %s", fileStore.Path())
		} else {
			primary = cachestore.NewValkeyStore(vkClient)
			logrus.Info("[CACHE] using valkey with file fallback")
		}
	} else {
		logrus.Infof("[CACHE] no REDIS_URL set, using file cache at %s", fileStore.Path())
	}
	cacheGateway = usecase.NewCacheService(primary, fileStore)

	// 2. External collaborators
	resolver := yutorah.NewResolver(cfg.Pipeline.UserAgent, resolverTimeout)
	generator, err := gemini.NewClient(ctx, gemini.Config{
		APIKey:       cfg.AI.APIKey,
		Models:       cfg.AI.Models,
		PollInterval: cfg.AI.PollInterval,
		PollAttempts: cfg.AI.PollAttempts,
	})
	if err != nil {
		logrus.Fatalf("failed to init gemini client: %v", err)
	}

	// 3. Usecases
	processGuard = guard.New()
	runMonitor = runmonitor.New(cfg.Monitor.Buffer, cfg.Monitor.TTL)
	processUsecase = usecase.NewProcessService(cacheGateway, processGuard, resolver, generator, runMonitor, usecase.ProcessConfig{
		TempDir:   cfg.Paths.Temp,
		ChunkSize: cfg.Pipeline.DownloadChunk,
		Timeout:   cfg.Pipeline.Timeout,
		UserAgent: cfg.Pipeline.UserAgent,
	})
	var pinger domainHealth.Pinger
	if vkClient != nil {
		pinger = vkClient
	}
	healthUsecase = usecase.NewHealthService(processGuard, cacheGateway, pinger, cfg.App.ServerID, cfg.App.Version)

	logrus.Debugf("[APP] settings: %v", coreconfig.GetAllSettings())
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute(embedViews embed.FS) {
	EmbedViews = embedViews
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// StopApp releases connections held by the application.
func StopApp() {
	logrus.Info("[APP] Stopping application...")
	if vkClient != nil {
		vkClient.Close()
	}
	logrus.Info("[APP] Application stopped cleanly.")
}
