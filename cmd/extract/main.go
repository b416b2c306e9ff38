package main

import (
	"log"
	"os"

	"github.com/gin-gonic/gin"

	"mitrahire-backend/internal/extract"
	"mitrahire-backend/internal/shared/config"
	"mitrahire-backend/internal/shared/server"
	"mitrahire-backend/internal/shared/server/middleware"
)

// Standalone PDF extraction server. Kept separate from the API binary
// so resume uploads can scale independently of the LLM routes.
func main() {
	cfg := config.Load()
	if cfg.Env != "dev" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(middleware.RequestID())
	r.Use(middleware.Logging())
	r.Use(middleware.Recovery())
	r.Use(middleware.CORS(cfg.CORSAllowOrigin))

	extract.NewHandler(os.TempDir()).Register(r)

	addr := server.Addr(cfg.ExtractPort)
	log.Printf("Starting extract server on %s", addr)

	if err := r.Run(addr); err != nil {
		log.Fatalf("server error: %v", err)
	}
}
