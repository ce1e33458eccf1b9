// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package constants provides centralized, immutable values for the entire platform.

It defines the fixed parameters of the material combiner, default timeouts,
rate limits, and cross-cutting keys shared between layers.

Categories:

  - Combination: Subset size, quantities, caps, and naming affixes.
  - Server Timing: Read/Write/Idle timeouts for the HTTP server.
  - Rate Limiting: Burst capacities and IP tracking TTLs.
  - Cache Taxonomy: Redis key prefixes.

Using this package ensures Magic Strings and Magic Numbers are eliminated
from the business logic.
*/
package constants

import "time"

// # Metadata

const (
	AppName    = "alloyforge"
	AppVersion = "0.1.0-dev"
)

// # Combination

const (
	// SubsetSize is the number of source materials combined into one derived material.
	SubsetSize = 2

	// CostCount is the quantity of each source material in a derived material's cost list.
	CostCount = 25

	// ProductCount is the quantity produced by one run of a generated recipe.
	ProductCount = 25

	// StackLimitCap is the ceiling applied to every generated stack limit.
	StackLimitCap = 75

	// ColorLerpT is the interpolation factor used when blending source colors.
	ColorLerpT = 0.5

	// AdjectiveGolden is the only adjective tag propagated from sources.
	AdjectiveGolden = "golden"
)

// # Naming

const (
	MaterialIDPrefix    = "AutoMaterial_"
	MaterialIDSeparator = "_"
	MaterialIDSuffix    = "GeneratedDef"

	MaterialLabelPrefix = "AutoMaterial"
	MaterialLabelSuffix = "GeneratedDef"

	MaterialDescription = "Brand new material created by combining %d other materials."

	RecipeIDPrefix    = "Make_"
	RecipeLabelPrefix = "Make "
	RecipeDescription = "Alloy made from two metals."
)

// # Producers

const (
	ProducerFueledSmithy   = "FueledSmithy"
	ProducerElectricSmithy = "ElectricSmithy"
)

// # Categories

const (
	CategoryMetallic     = "Metallic"
	CategoryResourcesRaw = "ResourcesRaw"
)

// # Server Timing

const (
	// DefaultReadTimeout is the maximum duration for reading the entire request.
	DefaultReadTimeout = 5 * time.Second

	// DefaultWriteTimeout is the maximum duration before timing out writes of the response.
	DefaultWriteTimeout = 10 * time.Second

	// DefaultIdleTimeout is the maximum amount of time to wait for the next request.
	DefaultIdleTimeout = 120 * time.Second

	// DefaultReadHeaderTimeout is the amount of time allowed to read request headers.
	DefaultReadHeaderTimeout = 2 * time.Second

	// GlobalRequestTimeout is the deadline for the entire request lifecycle.
	GlobalRequestTimeout = 30 * time.Second

	// ShutdownTimeout is how long we wait for in-flight requests to complete during shutdown.
	ShutdownTimeout = 30 * time.Second

	// BatchTimeout bounds the I/O of the one-shot combination batch at startup.
	BatchTimeout = 2 * time.Minute
)

// # Rate Limiting

const (
	// DefaultRateLimitRPS is the requests per second allowed per IP.
	DefaultRateLimitRPS = 100.0

	// DefaultRateLimitBurst is the maximum burst allowed for the rate limiter.
	DefaultRateLimitBurst = 150

	// RateLimitCleanupInterval is how often old IP entries are removed from memory.
	RateLimitCleanupInterval = 1 * time.Minute

	// RateLimitClientTTL is how long a client must be idle before its entry is deleted.
	RateLimitClientTTL = 3 * time.Minute
)

// # HTTP Headers

const (
	HeaderXRequestID    = "X-Request-ID"
	HeaderXRealIP       = "X-Real-IP"
	HeaderXForwardedFor = "X-Forwarded-For"
	HeaderOrigin        = "Origin"

	// CORSAllowedOriginSuffix is the origin suffix accepted outside development.
	CORSAllowedOriginSuffix = "alloyforge.app"
)

// # JSON Field Identifiers

const (
	FieldData    = "data"
	FieldMeta    = "meta"
	FieldError   = "error"
	FieldCode    = "code"
	FieldDetails = "details"
	FieldStatus  = "status"
	FieldChecks  = "checks"
)

// # Database Schemas

const (
	SchemaCatalog = "catalog"
)

// # Redis Prefixes (Cache Taxonomy)

const (
	RedisPrefixCatalog  = "catalog:"
	RedisPrefixMaterial = "catalog:material:"
	RedisPrefixRecipe   = "catalog:recipe:"

	// CacheTTL is how long a cached catalog entry lives before it is re-read.
	CacheTTL = 10 * time.Minute
)
