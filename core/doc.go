// Package core contains the business logic for the PlantVerse API.
// It is designed to be framework-agnostic and can be used independently
// of any web framework or infrastructure concerns.
//
// The core package is organized into several sub-packages:
//
// - domain: Pure domain models (Point, Plant, Observation, Lineage, etc.)
// - classify: Image classification through an external inference API
// - taxonomy: Taxonomic lineage resolution from Wikidata
// - wikipedia: Article title, summary and medicinal uses extraction
// - occurrence: Species search and nearby observation ranking
// - translate: Best-effort text translation
// - geoip: IP-based approximate geolocation
// - services: Cross-cutting enrichment (photo colors)
// - errors: Custom error types for better error handling
// - interfaces: Contracts for external dependencies (cache, HTTP, logger)
//
// # Design Principles
//
// The core package follows clean architecture principles:
// - No external framework dependencies
// - All external dependencies are injected via interfaces
// - Business logic is testable in isolation
// - Domain models are free from persistence concerns
//
// # Usage Example
//
//	import (
//	    "plantverse-api/core/interfaces"
//	    "plantverse-api/core/taxonomy"
//	)
//
//	deps := interfaces.Dependencies{
//	    Cache:      myCache,      // implements interfaces.Cache
//	    HTTPClient: myHTTPClient, // implements interfaces.HTTPClient
//	    Logger:     myLogger,     // implements interfaces.Logger
//	}
//
//	service := taxonomy.NewTaxonomyService(deps, "https://www.wikidata.org/w/api.php")
//
//	lineage, err := service.Resolve(ctx, "Azadirachta indica")
package core
