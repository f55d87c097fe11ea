// Command trivially-server is a thin, non-core demonstration surface: a
// read-only HTTP endpoint over a KnowledgeBase, JWT-authenticated the way
// the teacher's auth middleware gates its REST API, plus a websocket channel
// that pushes freshly generated Trivia to subscribers. It is not the hard
// core (see internal/tinylang, internal/deck, internal/selector,
// internal/trivia for that) — it exists only to give the teacher's
// networked-I/O dependencies an honest, non-core home.
package main

import (
	"encoding/json"
	"net/http"
	"os"
	"strconv"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"go.opentelemetry.io/otel"

	"github.com/smilemakc/trivially"
	"github.com/smilemakc/trivially/internal/config"
)

var tracer = otel.Tracer("trivially-server")

type jwtClaims struct {
	jwt.RegisteredClaims
}

func authMiddleware(secret []byte, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		if !strings.HasPrefix(header, "Bearer ") {
			http.Error(w, "missing bearer token", http.StatusUnauthorized)
			return
		}
		tokenStr := strings.TrimPrefix(header, "Bearer ")
		_, err := jwt.ParseWithClaims(tokenStr, &jwtClaims{}, func(t *jwt.Token) (interface{}, error) {
			return secret, nil
		})
		if err != nil {
			http.Error(w, "invalid token", http.StatusUnauthorized)
			return
		}
		next(w, r)
	}
}

// triviaHandler serves GET /decks/{id}/trivia/{defID}, wrapping each lookup
// in an otel span the way the teacher's engine traces node execution.
func triviaHandler(kb *trivially.KnowledgeBase, hub *Hub, difficulty float64) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		_, span := tracer.Start(r.Context(), "GetTrivia")
		defer span.End()

		parts := strings.Split(strings.Trim(r.URL.Path, "/"), "/")
		if len(parts) != 4 || parts[0] != "decks" || parts[2] != "trivia" {
			http.NotFound(w, r)
			return
		}
		defIdx, err := strconv.Atoi(parts[3])
		if err != nil || defIdx < 0 || defIdx >= len(kb.TriviaDefs) {
			http.Error(w, "unknown trivia definition", http.StatusNotFound)
			return
		}

		def := kb.TriviaDefs[defIdx]
		tv, _, err := def.GetTrivia(kb, difficulty)
		if err != nil {
			span.RecordError(err)
			if trivially.IsNotEnoughData(err) {
				http.Error(w, err.Error(), http.StatusConflict)
				return
			}
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}

		hub.Broadcast(tv)

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(tv)
	}
}

func main() {
	cfg := config.Load()
	log := trivially.SetupLogging(cfg.LogLevel)

	secret := []byte(os.Getenv("JWT_SECRET"))
	if len(secret) == 0 {
		log.Warn().Msg("JWT_SECRET not set, using an insecure development default")
		secret = []byte("dev-secret-do-not-use-in-production")
	}

	kb := trivially.MustBuildKnowledgeBase(func(b *trivially.Builder) {
		// A real deployment loads decks from internal/infrastructure/storage;
		// the demo server starts with an empty KnowledgeBase and relies on
		// an operator to POST decks through a separate admin path (not
		// implemented here, out of scope for this demo surface).
	})

	hub := NewHub()
	go hub.Run()

	mux := http.NewServeMux()
	mux.Handle("/ws", hub)
	mux.HandleFunc("/decks/", authMiddleware(secret, triviaHandler(kb, hub, cfg.DefaultDifficulty)))

	addr := ":" + getEnv("PORT", "8080")
	log.Info().Str("addr", addr).Msg("trivially-server listening")
	if err := http.ListenAndServe(addr, mux); err != nil {
		log.Fatal().Err(err).Msg("server exited")
	}
}

func getEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok {
		return v
	}
	return fallback
}
