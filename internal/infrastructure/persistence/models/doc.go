// Package models contains GORM-specific persistence models that map to database tables.
// These models are separate from domain entities to keep the domain layer pure and free
// from ORM concerns.
//
// Key Principles:
// 1. Domain entities should be free of GORM tags and infrastructure concerns
// 2. Persistence models contain all GORM annotations and table mappings
// 3. Value objects are stored as JSON documents and validated on load
// 4. Mappers rebuild domain entities through their Restore factories, so a
//    corrupt row surfaces as an error instead of an invalid entity
package models
