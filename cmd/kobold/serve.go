package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"github.com/spf13/cobra"

	"github.com/fernway/kobold/internal/catalog"
	"github.com/fernway/kobold/internal/config"
	enginegrowth "github.com/fernway/kobold/internal/engine/growth"
	"github.com/fernway/kobold/internal/handlers/api"
	"github.com/fernway/kobold/internal/orchestrators/encounter"
	"github.com/fernway/kobold/internal/orchestrators/evolution"
	"github.com/fernway/kobold/internal/orchestrators/growth"
	"github.com/fernway/kobold/internal/orchestrators/moves"
	"github.com/fernway/kobold/internal/orchestrators/trade"
	"github.com/fernway/kobold/internal/pkg/clock"
	"github.com/fernway/kobold/internal/pkg/idgen"
	"github.com/fernway/kobold/internal/pkg/rng"
	"github.com/fernway/kobold/internal/redis"
	"github.com/fernway/kobold/internal/registry"
	"github.com/fernway/kobold/internal/repositories/bag"
	"github.com/fernway/kobold/internal/repositories/creature"
	"github.com/fernway/kobold/internal/repositories/trainer"
	"github.com/fernway/kobold/internal/transport/ws"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the simulation server",
	Long:  `Start the websocket gateway and the simulation core behind it.`,
	RunE:  runServe,
}

func runServe(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigChan
		slog.Info("received shutdown signal, stopping")
		cancel()
	}()

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	gameData, err := catalog.LoadMemory(cfg.SpeciesDataPath, cfg.MoveDataPath, cfg.LocationDataPath)
	if err != nil {
		return err
	}

	redisClient, err := redis.NewClient(cfg.RedisAddr, nil)
	if err != nil {
		return err
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			slog.Error("failed to close redis client", "error", err)
		}
	}()

	creatureRepo, err := creature.NewRedisRepository(&creature.Config{Client: redisClient})
	if err != nil {
		return err
	}
	trainerRepo, err := trainer.NewRedisRepository(&trainer.Config{Client: redisClient})
	if err != nil {
		return err
	}
	bagRepo, err := bag.NewRedisRepository(&bag.Config{Client: redisClient})
	if err != nil {
		return err
	}

	clk := &clock.Real{}
	sessions := registry.New(clk)
	gateway := ws.NewGateway()

	movesService, err := moves.NewOrchestrator(&moves.Config{
		SpeciesCatalog: gameData,
		MoveCatalog:    gameData,
		Messenger:      gateway,
		Registry:       sessions,
		TeachTimeout:   cfg.TeachMoveTimeout,
	})
	if err != nil {
		return err
	}

	evolutionService, err := evolution.NewOrchestrator(&evolution.Config{
		SpeciesCatalog: gameData,
		CreatureRepo:   creatureRepo,
		TrainerRepo:    trainerRepo,
		BagRepo:        bagRepo,
		Registry:       sessions,
		MovesService:   movesService,
		Clock:          clk,
		IDGenerator:    idgen.NewUUID("creature"),
	})
	if err != nil {
		return err
	}

	growthService, err := growth.New(&growth.Config{
		SpeciesCatalog:   gameData,
		ExperienceTable:  enginegrowth.NewTables(),
		CreatureRepo:     creatureRepo,
		MovesService:     movesService,
		EvolutionService: evolutionService,
	})
	if err != nil {
		return err
	}

	encounterService, err := encounter.New(&encounter.Config{
		SpeciesCatalog:  gameData,
		MoveCatalog:     gameData,
		LocationCatalog: gameData,
		CreatureRepo:    creatureRepo,
		TrainerRepo:     trainerRepo,
		BagRepo:         bagRepo,
		Registry:        sessions,
		Clock:           clk,
		IDGenerator:     idgen.NewUUID("creature"),
		RNG:             rng.New(),
	})
	if err != nil {
		return err
	}

	tradeService, err := trade.New(&trade.Config{
		CreatureRepo:     creatureRepo,
		TrainerRepo:      trainerRepo,
		Registry:         sessions,
		Messenger:        gateway,
		EvolutionService: evolutionService,
		Clock:            clk,
		AcceptTimeout:    cfg.TradeAcceptTimeout,
		SelectTimeout:    cfg.TradeSelectTimeout,
	})
	if err != nil {
		return err
	}

	// pending evolutions survive restarts; rebuild them before serving
	rebuilt, err := evolutionService.Rebuild(ctx, &evolution.RebuildInput{})
	if err != nil {
		return err
	}
	slog.Info("evolution sessions rebuilt", "count", len(rebuilt.Sessions))

	apiHandler, err := api.NewHandler(&api.HandlerConfig{
		GrowthService:    growthService,
		EncounterService: encounterService,
		EvolutionService: evolutionService,
		TradeService:     tradeService,
	})
	if err != nil {
		return err
	}

	router := mux.NewRouter()
	gateway.Routes(router)
	apiHandler.Routes(router)
	router.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	}).Methods("GET")

	srv := &http.Server{
		Addr:    cfg.ListenAddr,
		Handler: router,
	}

	errChan := make(chan error, 1)
	go func() {
		slog.Info("server starting", "addr", cfg.ListenAddr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errChan <- err
		}
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer shutdownCancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return err
		}
		slog.Info("server stopped")
		return nil
	case err := <-errChan:
		return err
	}
}
