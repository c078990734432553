// Package forge drives the compile pipeline: parse, resolve, plan,
// emit and generate, for every record in a DSL file.
package forge

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/iancoleman/strcase"
	"go.uber.org/zap"

	"github.com/hidforge/hidforge/hiddesc"
	"github.com/hidforge/hidforge/hiddsl"
	"github.com/hidforge/hidforge/hidgen"
	"github.com/hidforge/hidforge/hidlayout"
	"github.com/hidforge/hidforge/hidspec"
	"github.com/hidforge/hidforge/internal/diag"
)

// Version participates in cache keys so a new compiler never serves
// stale artifacts.
const Version = "0.3.0"

type Forge struct {
	log    *zap.Logger
	config Config
	cache  *Cache
}

func New(log *zap.Logger, config Config) (*Forge, error) {
	f := &Forge{
		log:    log,
		config: config,
	}
	if config.CacheDir != "" {
		cache, err := OpenCache(log.Named("cache"), config.CacheDir)
		if err != nil {
			return nil, fmt.Errorf("failed to open build cache: %w", err)
		}
		f.cache = cache
	}
	return f, nil
}

func (f *Forge) Close() error {
	if f.cache != nil {
		return f.cache.Close()
	}
	return nil
}

// ReportInfo summarizes one wire report of a compiled record.
type ReportInfo struct {
	Kind       string `json:"kind"`
	ReportID   uint8  `json:"reportId,omitempty"`
	ByteLength int    `json:"byteLength"`
}

// Artifact is everything the compiler produces for one record.
type Artifact struct {
	Name       string       `json:"name"`
	Descriptor []byte       `json:"descriptor"`
	GoSource   []byte       `json:"goSource"`
	Reports    []ReportInfo `json:"reports"`
}

type CompileResult struct {
	Artifacts []Artifact `json:"artifacts"`
}

// CompileFile compiles every record in path, consulting the build
// cache when one is configured. Cache hits return byte-identical
// artifacts.
func (f *Forge) CompileFile(path string) (*CompileResult, error) {
	source, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	if f.cache != nil {
		key := f.cache.Key(source, f.config.Package)
		if result, ok := f.cache.Get(key); ok {
			f.log.Debug("Cache hit", zap.String("file", path))
			return result, nil
		}
		result, err := f.CompileSource(path, string(source))
		if err != nil {
			return nil, err
		}
		f.cache.Put(key, result)
		return result, nil
	}
	return f.CompileSource(path, string(source))
}

// CompileSource runs the full pipeline over DSL source. All
// diagnostics are accumulated and returned as one error; no artifact
// is produced for an ill-formed file.
func (f *Forge) CompileSource(filename, source string) (*CompileResult, error) {
	var diags diag.List
	file := hiddsl.ParseString(filename, source, &diags)
	if diags.HasErrors() {
		return nil, diags.Err()
	}

	records := hidspec.Resolve(file, &diags)
	if diags.HasErrors() {
		return nil, diags.Err()
	}

	result := &CompileResult{}
	for _, rec := range records {
		artifact, err := f.compileRecord(rec)
		if err != nil {
			return nil, err
		}
		result.Artifacts = append(result.Artifacts, artifact)
	}
	return result, nil
}

func (f *Forge) compileRecord(rec *hidspec.Record) (Artifact, error) {
	plan := hidlayout.PlanRecord(rec)
	descriptor, err := hiddesc.Encode(hidlayout.Lower(rec, plan))
	if err != nil {
		return Artifact{}, fmt.Errorf("failed to emit descriptor for %s: %w", rec.Name, err)
	}
	src, err := hidgen.GenerateRecord(rec, plan, descriptor, hidgen.Options{
		Package: f.config.Package,
	})
	if err != nil {
		return Artifact{}, err
	}

	artifact := Artifact{
		Name:       rec.Name,
		Descriptor: descriptor,
		GoSource:   src,
	}
	for _, group := range plan.Groups {
		artifact.Reports = append(artifact.Reports, ReportInfo{
			Kind:       group.Kind.String(),
			ReportID:   group.ReportID,
			ByteLength: group.ByteLength,
		})
	}
	f.log.Info("Compiled record",
		zap.String("record", rec.Name),
		zap.Int("descriptorBytes", len(descriptor)),
		zap.Int("reports", len(plan.Groups)),
	)
	return artifact, nil
}

// WriteArtifacts writes the generated sources (and raw descriptor
// blobs when configured) into the output directory.
func (f *Forge) WriteArtifacts(result *CompileResult) error {
	if err := os.MkdirAll(f.config.OutDir, 0o755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}
	for _, artifact := range result.Artifacts {
		base := strcase.ToSnake(artifact.Name)
		goPath := filepath.Join(f.config.OutDir, base+"_gen.go")
		if err := os.WriteFile(goPath, artifact.GoSource, 0o644); err != nil {
			return fmt.Errorf("failed to write %s: %w", goPath, err)
		}
		f.log.Info("Wrote artifact", zap.String("path", goPath))
		if f.config.EmitBinary {
			binPath := filepath.Join(f.config.OutDir, base+".bin")
			if err := os.WriteFile(binPath, artifact.Descriptor, 0o644); err != nil {
				return fmt.Errorf("failed to write %s: %w", binPath, err)
			}
			f.log.Info("Wrote descriptor blob", zap.String("path", binPath))
		}
	}
	return nil
}

// IsSourceFile reports whether path looks like a record DSL file.
func IsSourceFile(path string) bool {
	return strings.HasSuffix(path, ".hid")
}
