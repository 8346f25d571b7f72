package analytics

import (
	"sort"
	"strings"

	"github.com/samber/lo"

	"github.com/s3nik/ccjournal/internal/core"
)

// Deliverable buckets, from most to least specific. Generic catch-alls sort
// after feature-specific buckets in rendered output.
const (
	BucketTests    = "Test suites"
	BucketAPI      = "API layer"
	BucketFrontend = "Frontend/UI"
	BucketDatabase = "Database"
	BucketScripts  = "Scripts & tooling"
	BucketDocs     = "Documentation"
	BucketConfig   = "Configuration"
	BucketCode     = "Code"
)

var genericBuckets = map[string]bool{
	BucketDocs:   true,
	BucketConfig: true,
	BucketCode:   true,
}

// BucketGroup is one deliverable bucket with its deduplicated paths.
type BucketGroup struct {
	Bucket string
	Paths  []string
}

// Deliverables groups every file created or modified across sessions into
// semantic buckets. Scratch paths are dropped, repeated touches of the same
// path collapse to one deliverable, and specific buckets order before the
// generic catch-alls.
func Deliverables(sessions []core.Session) []BucketGroup {
	var paths []string
	for _, s := range sessions {
		paths = append(paths, s.FilesCreated...)
		paths = append(paths, s.FilesModified...)
	}
	paths = lo.Uniq(lo.Filter(paths, func(p string, _ int) bool {
		return p != "" && !isScratchPath(p)
	}))

	byBucket := lo.GroupBy(paths, bucketFor)
	groups := make([]BucketGroup, 0, len(byBucket))
	for bucket, bucketPaths := range byBucket {
		sort.Strings(bucketPaths)
		groups = append(groups, BucketGroup{Bucket: bucket, Paths: bucketPaths})
	}

	sort.Slice(groups, func(i, j int) bool {
		gi, gj := genericBuckets[groups[i].Bucket], genericBuckets[groups[j].Bucket]
		if gi != gj {
			return !gi
		}
		if len(groups[i].Paths) != len(groups[j].Paths) {
			return len(groups[i].Paths) > len(groups[j].Paths)
		}
		return groups[i].Bucket < groups[j].Bucket
	})
	return groups
}

func isScratchPath(p string) bool {
	lower := strings.ToLower(p)
	for _, frag := range []string{"/tmp/", "/var/folders/", "/.cache/", "node_modules/", "/scratch", ".tmp"} {
		if strings.Contains(lower, frag) {
			return true
		}
	}
	return strings.HasPrefix(lower, "tmp/")
}

// bucketFor classifies one path. Token checks on the base name keep "api"
// from matching inside unrelated words like "capital".
func bucketFor(p string) string {
	lower := strings.ToLower(p)
	tokens := pathTokens(lower)

	switch {
	case hasToken(tokens, "test", "spec") || strings.Contains(lower, "__test__"):
		return BucketTests
	case hasToken(tokens, "api", "endpoint", "route", "handler", "server"):
		return BucketAPI
	case hasSuffix(lower, ".svelte", ".vue", ".jsx", ".tsx", ".css", ".scss", ".less") ||
		hasToken(tokens, "component", "page", "view", "style"):
		return BucketFrontend
	case hasToken(tokens, "schema", "migration", "migrations", "model", "models", "db", "database"):
		return BucketDatabase
	case hasSuffix(lower, ".sh", ".bash") || strings.Contains(lower, "scripts/") ||
		strings.Contains(lower, "makefile"):
		return BucketScripts
	case hasSuffix(lower, ".md", ".rst", ".txt") || hasToken(tokens, "readme", "docs", "doc"):
		return BucketDocs
	case hasSuffix(lower, ".json", ".yaml", ".yml", ".toml", ".ini", ".env") ||
		hasToken(tokens, "config", "settings"):
		return BucketConfig
	default:
		return BucketCode
	}
}

// pathTokens splits a path into lowercase words across /, ., _, - boundaries.
func pathTokens(lower string) []string {
	return strings.FieldsFunc(lower, func(r rune) bool {
		return r == '/' || r == '.' || r == '_' || r == '-' || r == ' '
	})
}

func hasToken(tokens []string, wanted ...string) bool {
	for _, tok := range tokens {
		for _, w := range wanted {
			if tok == w {
				return true
			}
		}
	}
	return false
}

func hasSuffix(s string, suffixes ...string) bool {
	for _, suf := range suffixes {
		if strings.HasSuffix(s, suf) {
			return true
		}
	}
	return false
}
