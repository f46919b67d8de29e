// ABOUTME: Main entry point for the PlantVerse API server
// ABOUTME: Wires together all components and starts the HTTP server

package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"plantverse-api/api"
	"plantverse-api/api/handlers"
	"plantverse-api/core/classify"
	"plantverse-api/core/geoip"
	"plantverse-api/core/interfaces"
	"plantverse-api/core/occurrence"
	"plantverse-api/core/services"
	"plantverse-api/core/taxonomy"
	"plantverse-api/core/translate"
	"plantverse-api/core/wikipedia"
	"plantverse-api/infrastructure/cache/memory"
	"plantverse-api/infrastructure/cache/redis"
	"plantverse-api/infrastructure/cache/sqlite"
	stdhttp "plantverse-api/infrastructure/http/standard"
	stdlogger "plantverse-api/infrastructure/logger/standard"
	"plantverse-api/pkg/config"
)

func main() {
	cfg, err := config.LoadFromEnv()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	logger := stdlogger.NewStandardLogger()
	logger.Info("Starting PlantVerse API", map[string]interface{}{
		"port":       cfg.Server.Port,
		"cache_type": cfg.Cache.Type,
		"model":      cfg.Endpoints.ClassifierModel,
	})

	// Create cache, falling back to memory if the backend is unavailable
	var cache interfaces.Cache
	switch cfg.Cache.Type {
	case "redis":
		redisCache, err := redis.NewRedisCache(cfg.Cache.Redis)
		if err != nil {
			logger.Error("Failed to create Redis cache, falling back to memory", map[string]interface{}{
				"error": err.Error(),
			})
			cache = memory.NewMemoryCache()
		} else {
			cache = redisCache
			logger.Info("Using Redis cache", map[string]interface{}{
				"address": cfg.Cache.Redis.Address,
			})
		}
	case "sqlite":
		sqliteCache, err := sqlite.NewSQLiteCache(cfg.Cache.SQLite.Path)
		if err != nil {
			logger.Error("Failed to create SQLite cache, falling back to memory", map[string]interface{}{
				"error": err.Error(),
			})
			cache = memory.NewMemoryCache()
		} else {
			cache = sqliteCache
			logger.Info("Using SQLite cache", map[string]interface{}{
				"path": cfg.Cache.SQLite.Path,
			})
		}
	default:
		cache = memory.NewMemoryCache()
		logger.Info("Using memory cache", nil)
	}

	httpClient := stdhttp.NewStandardHTTPClient(time.Duration(cfg.Server.RequestTimeout) * time.Second)

	deps := interfaces.Dependencies{
		Cache:      cache,
		HTTPClient: httpClient,
		Logger:     logger,
	}

	// Create services
	translator := translate.NewTranslateService(deps, cfg.Endpoints.TranslateAPI)
	taxonomyService := taxonomy.NewTaxonomyService(deps, cfg.Endpoints.WikidataAPI)
	wikipediaService := wikipedia.NewWikipediaService(deps, cfg.Endpoints.WikipediaAPI, cfg.Endpoints.WikipediaREST, translator)
	classifyService := classify.NewClassifyService(deps, cfg.Endpoints.ClassifierAPI, cfg.Endpoints.ClassifierModel)
	occurrenceService := occurrence.NewOccurrenceService(deps, cfg.Endpoints.INaturalistAPI)
	geoipService := geoip.NewGeoIPService(deps, cfg.Endpoints.GeoIPAPI)
	photoColorService := services.NewPhotoColorService(deps)

	// Create API with middleware
	apiConfig := api.APIConfig{
		Logger:     logger,
		RateLimit:  100, // 100 requests per minute per IP
		RateWindow: time.Minute,
	}
	humaAPI, router := api.NewAPIWithMiddleware(apiConfig)

	// Create and register handlers
	identifyHandler := handlers.NewIdentifyHandler(classifyService, taxonomyService, wikipediaService)
	identifyHandler.RegisterRoutes(humaAPI)

	locationsHandler := handlers.NewLocationsHandler(occurrenceService, wikipediaService, geoipService, photoColorService, cfg.Search.DefaultRadiusKm)
	locationsHandler.RegisterRoutes(humaAPI)

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("HTTP server starting", map[string]interface{}{
			"address": srv.Addr,
		})
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("HTTP server error", map[string]interface{}{
				"error": err.Error(),
			})
			log.Fatalf("Server failed to start: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...", nil)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("Server forced to shutdown", map[string]interface{}{
			"error": err.Error(),
		})
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	logger.Info("Server stopped", nil)
}

func init() {
	fmt.Println(`
    ____  __            __ _    __
   / __ \/ /___ _____  / /| |  / /__  _____________
  / /_/ / / __ '/ __ \/ __/ | / / _ \/ ___/ ___/ _ \
 / ____/ / /_/ / / / / /_ | |/ /  __/ /  (__  )  __/
/_/   /_/\__,_/_/ /_/\__/ |___/\___/_/  /____/\___/
	`)
}
