package api_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	enginegrowth "github.com/fernway/kobold/internal/engine/growth"
	"github.com/fernway/kobold/internal/handlers/api"
	messengermock "github.com/fernway/kobold/internal/messenger/mock"
	"github.com/fernway/kobold/internal/orchestrators/encounter"
	"github.com/fernway/kobold/internal/orchestrators/evolution"
	"github.com/fernway/kobold/internal/orchestrators/growth"
	"github.com/fernway/kobold/internal/orchestrators/moves"
	"github.com/fernway/kobold/internal/orchestrators/trade"
	"github.com/fernway/kobold/internal/pkg/clock"
	"github.com/fernway/kobold/internal/pkg/idgen"
	"github.com/fernway/kobold/internal/pkg/rng"
	"github.com/fernway/kobold/internal/registry"
	"github.com/fernway/kobold/internal/repositories/bag"
	"github.com/fernway/kobold/internal/repositories/creature"
	"github.com/fernway/kobold/internal/repositories/trainer"
	"github.com/fernway/kobold/internal/testutils"
)

type HandlerTestSuite struct {
	suite.Suite
	ctrl         *gomock.Controller
	cleanup      func()
	creatureRepo creature.Repository
	trainerRepo  trainer.Repository
	server       *httptest.Server
	ctx          context.Context
}

func (s *HandlerTestSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	client, cleanup := testutils.CreateTestRedisClient(s.T())
	s.cleanup = cleanup

	var err error
	s.creatureRepo, err = creature.NewRedisRepository(&creature.Config{Client: client})
	s.Require().NoError(err)
	s.trainerRepo, err = trainer.NewRedisRepository(&trainer.Config{Client: client})
	s.Require().NoError(err)
	bagRepo, err := bag.NewRedisRepository(&bag.Config{Client: client})
	s.Require().NoError(err)

	fixed := clock.NewFixed(time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC))
	reg := registry.New(fixed)
	cat := testutils.CreateTestCatalog()
	msgr := messengermock.NewMockMessenger(s.ctrl)

	movesService, err := moves.NewOrchestrator(&moves.Config{
		SpeciesCatalog: cat,
		MoveCatalog:    cat,
		Messenger:      msgr,
		Registry:       reg,
	})
	s.Require().NoError(err)

	evolutionService, err := evolution.NewOrchestrator(&evolution.Config{
		SpeciesCatalog: cat,
		CreatureRepo:   s.creatureRepo,
		TrainerRepo:    s.trainerRepo,
		BagRepo:        bagRepo,
		Registry:       reg,
		MovesService:   movesService,
		Clock:          fixed,
		IDGenerator:    idgen.NewSequential("creature"),
	})
	s.Require().NoError(err)

	growthService, err := growth.New(&growth.Config{
		SpeciesCatalog:   cat,
		ExperienceTable:  enginegrowth.NewTables(),
		CreatureRepo:     s.creatureRepo,
		MovesService:     movesService,
		EvolutionService: evolutionService,
	})
	s.Require().NoError(err)

	encounterService, err := encounter.New(&encounter.Config{
		SpeciesCatalog:  cat,
		MoveCatalog:     cat,
		LocationCatalog: cat,
		CreatureRepo:    s.creatureRepo,
		TrainerRepo:     s.trainerRepo,
		BagRepo:         bagRepo,
		Registry:        reg,
		Clock:           fixed,
		IDGenerator:     idgen.NewSequential("wild"),
		RNG:             rng.NewSeeded(7),
	})
	s.Require().NoError(err)

	tradeService, err := trade.New(&trade.Config{
		CreatureRepo:     s.creatureRepo,
		TrainerRepo:      s.trainerRepo,
		Registry:         reg,
		Messenger:        msgr,
		EvolutionService: evolutionService,
		Clock:            fixed,
	})
	s.Require().NoError(err)

	handler, err := api.NewHandler(&api.HandlerConfig{
		GrowthService:    growthService,
		EncounterService: encounterService,
		EvolutionService: evolutionService,
		TradeService:     tradeService,
	})
	s.Require().NoError(err)

	router := mux.NewRouter()
	handler.Routes(router)
	s.server = httptest.NewServer(router)
	s.ctx = context.Background()
}

func (s *HandlerTestSuite) TearDownTest() {
	s.server.Close()
	s.ctrl.Finish()
	s.cleanup()
}

func (s *HandlerTestSuite) post(path, body string) (*http.Response, map[string]any) {
	resp, err := http.Post(s.server.URL+path, "application/json", strings.NewReader(body))
	s.Require().NoError(err)
	defer func() { _ = resp.Body.Close() }()

	var payload map[string]any
	s.Require().NoError(json.NewDecoder(resp.Body).Decode(&payload))
	return resp, payload
}

func (s *HandlerTestSuite) setupTrainer() {
	t := testutils.CreateTestTrainer(testutils.TestTrainerID)
	t.LeadCreatureID = "lead-1"
	_, err := s.trainerRepo.Save(s.ctx, trainer.SaveInput{Trainer: t})
	s.Require().NoError(err)

	lead := testutils.NewCreature("lead-1", t.ID).Level(10).Lead().Build()
	_, err = s.creatureRepo.Save(s.ctx, creature.SaveInput{Creature: lead})
	s.Require().NoError(err)
}

func (s *HandlerTestSuite) TestAwardExperience() {
	c := testutils.NewCreature("c1", testutils.TestTrainerID).Level(5).Exp(135).Build()
	_, err := s.creatureRepo.Save(s.ctx, creature.SaveInput{Creature: c})
	s.Require().NoError(err)

	resp, payload := s.post("/api/experience", `{"creature_id": "c1", "xp": 10}`)
	s.Equal(http.StatusOK, resp.StatusCode)
	s.EqualValues(0, payload["LevelsGained"])
}

func (s *HandlerTestSuite) TestAwardExperienceUnknownCreature() {
	resp, payload := s.post("/api/experience", `{"creature_id": "missing", "xp": 10}`)
	s.Equal(http.StatusNotFound, resp.StatusCode)
	s.Contains(payload["error"], "missing")
}

func (s *HandlerTestSuite) TestGenerateAndFlee() {
	s.setupTrainer()

	resp, payload := s.post("/api/encounters", `{"trainer_id": "`+testutils.TestTrainerID+`"}`)
	s.Equal(http.StatusOK, resp.StatusCode)
	s.NotNil(payload["Session"])

	resp, _ = s.post("/api/encounters/flee", `{"trainer_id": "`+testutils.TestTrainerID+`"}`)
	s.Equal(http.StatusOK, resp.StatusCode)

	resp, _ = s.post("/api/encounters/flee", `{"trainer_id": "`+testutils.TestTrainerID+`"}`)
	s.Equal(http.StatusNotFound, resp.StatusCode)
}

func (s *HandlerTestSuite) TestSecondGenerateConflicts() {
	s.setupTrainer()

	resp, _ := s.post("/api/encounters", `{"trainer_id": "`+testutils.TestTrainerID+`"}`)
	s.Equal(http.StatusOK, resp.StatusCode)

	resp, _ = s.post("/api/encounters", `{"trainer_id": "`+testutils.TestTrainerID+`"}`)
	s.Equal(http.StatusConflict, resp.StatusCode)
}

func (s *HandlerTestSuite) TestAcceptWithoutPendingEvolution() {
	resp, _ := s.post("/api/evolutions/accept", `{"trainer_id": "`+testutils.TestTrainerID+`"}`)
	s.Equal(http.StatusNotFound, resp.StatusCode)
}

func (s *HandlerTestSuite) TestUseItemOnUnknownCreature() {
	body := `{"trainer_id": "` + testutils.TestTrainerID + `", "creature_id": "missing", "item": "water stone"}`
	resp, _ := s.post("/api/evolutions/use-item", body)
	s.Equal(http.StatusNotFound, resp.StatusCode)
}

func (s *HandlerTestSuite) TestSelfTradeRejected() {
	s.setupTrainer()
	body := `{"initiator_id": "` + testutils.TestTrainerID + `", "partner_id": "` + testutils.TestTrainerID + `"}`
	resp, _ := s.post("/api/trades", body)
	s.Equal(http.StatusBadRequest, resp.StatusCode)
}

func (s *HandlerTestSuite) TestMalformedBody() {
	resp, err := http.Post(s.server.URL+"/api/experience", "application/json", strings.NewReader("{"))
	s.Require().NoError(err)
	defer func() { _ = resp.Body.Close() }()
	s.Equal(http.StatusBadRequest, resp.StatusCode)
}

func TestHandlerSuite(t *testing.T) {
	suite.Run(t, new(HandlerTestSuite))
}
