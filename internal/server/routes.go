package server

import (
	"context"
	"net/http"

	"buzzroom/internal/config"
	"buzzroom/internal/db"
	"buzzroom/internal/events"
	"buzzroom/internal/rooms"
	"buzzroom/internal/stats"

	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func Run() error {
	cfg := config.Load()

	if lvl, err := zerolog.ParseLevel(cfg.LogLevel); err == nil {
		zerolog.SetGlobalLevel(lvl)
	}

	bus := events.NewBus()
	store := rooms.NewStore(clockwork.NewRealClock(), bus, cfg.RoomTTL)

	srv := &Server{
		Rooms: store,
		Cfg:   cfg,
	}

	// Optional database connection
	if cfg.DatabaseURL != "" {
		database, err := db.Connect(cfg.DatabaseURL)
		if err != nil {
			log.Warn().Err(err).Msg("database unavailable, running without persistence")
		} else {
			if err := database.Migrate(); err != nil {
				log.Warn().Err(err).Msg("migration failed")
			}
			writer := stats.NewWriter(database, bus)
			go writer.Run(context.Background())
			log.Info().Msg("stats writer running")
		}
	} else {
		log.Info().Msg("DATABASE_URL not set, running without persistence")
	}

	mux := http.NewServeMux()
	srv.Register(mux)

	addr := "0.0.0.0:" + cfg.Port
	log.Info().Str("addr", addr).Msg("server listening")
	return http.ListenAndServe(addr, mux)
}

// Register installs the command surface and the subscription endpoint.
func (s *Server) Register(mux *http.ServeMux) {
	mux.HandleFunc("POST /rooms", s.handleCreateRoom)
	mux.HandleFunc("GET /rooms/{code}", s.handleGetRoom)
	mux.HandleFunc("POST /rooms/{code}/join", s.handleJoin)
	mux.HandleFunc("POST /rooms/{code}/leave", s.handleLeave)
	mux.HandleFunc("POST /rooms/{code}/question", s.handleStartQuestion)
	mux.HandleFunc("POST /rooms/{code}/buzz", s.handleBuzz)
	mux.HandleFunc("POST /rooms/{code}/answer", s.handleSubmitAnswer)
	mux.HandleFunc("POST /rooms/{code}/judge/correct", s.handleJudgeCorrect)
	mux.HandleFunc("POST /rooms/{code}/judge/wrong", s.handleJudgeWrong)
	mux.HandleFunc("POST /rooms/{code}/reset", s.handleResetQuestion)
	mux.HandleFunc("POST /rooms/{code}/close", s.handleCloseRoom)
	mux.HandleFunc("POST /rooms/{code}/teams/toggle", s.handleToggleTeams)
	mux.HandleFunc("POST /rooms/{code}/teams/add", s.handleAddTeam)
	mux.HandleFunc("POST /rooms/{code}/teams/remove", s.handleRemoveTeam)
	mux.HandleFunc("POST /rooms/{code}/teams/assign", s.handleAssignTeam)
	mux.HandleFunc("POST /rooms/{code}/mute", s.handleMute)
	mux.HandleFunc("POST /rooms/{code}/kick", s.handleKick)
	mux.HandleFunc("GET /rooms/{code}/ws", s.handleSubscribe)
	mux.HandleFunc("GET /health", s.handleHealth)
}
