// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Pikifen Contributors

package content

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"math"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/Masterminds/semver/v3"
	"github.com/gobwas/glob"
	"github.com/jakecoffman/cp"
	"github.com/samber/oops"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"gopkg.in/yaml.v3"

	"github.com/Espyo/Pikifen-sub018/internal/datafile"
	"github.com/Espyo/Pikifen-sub018/internal/mob"
	"github.com/Espyo/Pikifen-sub018/internal/mob/actions"
	"github.com/Espyo/Pikifen-sub018/internal/mob/luacode"
	"github.com/Espyo/Pikifen-sub018/internal/mobscript"
	"github.com/Espyo/Pikifen-sub018/pkg/errutil"
)

var tracer = otel.Tracer("pikifen/content")

// EngineVersion is the script engine version checked against requires.
const EngineVersion = "1.4.0"

// LuaPrefix marks a statement that runs a custom code chunk.
const LuaPrefix = "lua:"

// DefaultPatterns select the files LoadDir reads.
var DefaultPatterns = []string{"**.yaml", "**.yml", "**.txt"}

// Error codes.
const (
	CodeInvalidDefinition = "INVALID_DEFINITION"
	CodeIncompatible      = "INCOMPATIBLE_ENGINE"
	CodeUnknownEvent      = "UNKNOWN_EVENT"
	CodeReadFailed        = "READ_FAILED"
	CodeBadPattern        = "BAD_PATTERN"
)

// Loader turns definition files into compiled mob types.
type Loader struct {
	registry *mobscript.Registry
	host     *luacode.Host
	engine   *semver.Version
	logger   *slog.Logger
}

// LoaderOption configures a Loader.
type LoaderOption func(*Loader)

// WithRegistry sets the instruction registry. The default is the full mob
// catalog.
func WithRegistry(r *mobscript.Registry) LoaderOption {
	return func(l *Loader) {
		if r != nil {
			l.registry = r
		}
	}
}

// WithLuaHost sets the host custom code chunks are compiled into.
func WithLuaHost(h *luacode.Host) LoaderOption {
	return func(l *Loader) {
		if h != nil {
			l.host = h
		}
	}
}

// WithEngineVersion overrides the version requires constraints are
// checked against.
func WithEngineVersion(v *semver.Version) LoaderOption {
	return func(l *Loader) {
		if v != nil {
			l.engine = v
		}
	}
}

// WithLogger sets the loader logger.
func WithLogger(lg *slog.Logger) LoaderOption {
	return func(l *Loader) {
		if lg != nil {
			l.logger = lg
		}
	}
}

// NewLoader creates a loader.
func NewLoader(opts ...LoaderOption) *Loader {
	l := &Loader{
		engine: semver.MustParse(EngineVersion),
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(l)
	}
	if l.registry == nil {
		l.registry = actions.NewRegistry()
	}
	if l.host == nil {
		l.host = luacode.NewHost(luacode.WithLogger(l.logger))
	}
	return l
}

// Registry returns the instruction registry in use.
func (l *Loader) Registry() *mobscript.Registry { return l.registry }

// Decode reads a definition. Files ending in .yaml or .yml are YAML checked
// against the schema; anything else is a data file.
func (l *Loader) Decode(filename string, data []byte) (*TypeDef, error) {
	var def *TypeDef
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".yaml", ".yml":
		if err := ValidateSchema(data); err != nil {
			return nil, oops.In("content").Code(CodeInvalidDefinition).
				With("file", filename).
				Hint(FormatSchemaError(err)).
				Wrap(err)
		}
		var doc yaml.Node
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return nil, oops.In("content").Code(CodeInvalidDefinition).With("file", filename).Wrap(err)
		}
		def = &TypeDef{}
		if err := doc.Decode(def); err != nil {
			return nil, oops.In("content").Code(CodeInvalidDefinition).With("file", filename).Wrap(err)
		}
		def.lines = yamlLines(&doc)
	default:
		f, err := datafile.Parse(filename, data)
		if err != nil {
			return nil, err
		}
		def, err = fromDataFile(f)
		if err != nil {
			return nil, oops.In("content").Code(CodeInvalidDefinition).With("file", filename).Wrap(err)
		}
	}

	if err := def.Validate(); err != nil {
		return nil, oops.In("content").Code(CodeInvalidDefinition).With("file", filename).Wrap(err)
	}
	return def, nil
}

// LoadFile reads, decodes and builds one definition file.
func (l *Loader) LoadFile(ctx context.Context, path string) (*mob.Type, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, oops.In("content").Code(CodeReadFailed).With("file", path).Wrap(err)
	}
	return l.LoadBytes(ctx, path, data)
}

// LoadBytes decodes and builds a definition held in memory. filename picks
// the format and labels errors.
func (l *Loader) LoadBytes(ctx context.Context, filename string, data []byte) (*mob.Type, error) {
	def, err := l.Decode(filename, data)
	if err != nil {
		return nil, err
	}
	t, err := l.Build(ctx, def)
	if err != nil {
		return nil, oops.In("content").With("file", filename).Wrap(err)
	}
	return t, nil
}

// Build compiles a definition into a mob type. Every state is declared
// before any script compiles so set_state may name any of them.
func (l *Loader) Build(ctx context.Context, def *TypeDef) (t *mob.Type, err error) {
	_, span := tracer.Start(ctx, "content.build",
		trace.WithAttributes(attribute.String("mob.type", def.Name)),
	)
	defer func() {
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		span.End()
	}()

	if err := l.checkRequires(def); err != nil {
		return nil, err
	}

	t = mob.NewType(def.Name)
	t.Category = def.Category
	t.Requires = def.Requires
	t.MaxHealth = def.MaxHealth
	t.Radius = def.Radius
	t.Height = def.Height
	t.Speed = def.Speed

	t.AddResources(mobscript.ResourceAnimation, def.Animations...)
	t.AddResources(mobscript.ResourceBodyPart, def.BodyParts...)
	t.AddResources(mobscript.ResourceSound, def.Sounds...)
	t.AddResources(mobscript.ResourceStatus, def.Statuses...)
	t.AddResources(mobscript.ResourceParticle, def.Particles...)
	for name, r := range def.Reaches {
		t.Reaches[name] = mob.Reach{Radius: r.Radius, Angle: r.Angle * math.Pi / 180}
	}
	for name, s := range def.Spawns {
		t.Spawns[name] = mob.Spawn{
			TypeName:   s.Type,
			Offset:     cp.Vector{X: s.X, Y: s.Y},
			Z:          s.Z,
			Angle:      s.Angle,
			LinkParent: s.LinkParent,
			LinkChild:  s.LinkChild,
			Momentum:   s.Momentum,
		}
	}

	// A failed build leaves none of its chunks behind.
	loaded := make([]string, 0, len(def.Lua))
	defer func() {
		if err == nil {
			return
		}
		for _, name := range loaded {
			_ = l.host.Unload(name)
		}
	}()
	for _, name := range sortedKeys(def.Lua) {
		chunk := chunkName(def.Name, name)
		if err := l.host.Load(chunk, def.Lua[name]); err != nil {
			return nil, err
		}
		loaded = append(loaded, chunk)
	}

	states := def.StateNames()
	for _, name := range states {
		t.AddState(name)
	}
	if def.InitialState != "" {
		t.InitialState = def.InitialState
	}

	for _, state := range states {
		events := def.States[state]
		for _, ev := range sortedKeys(events) {
			p, err := l.compile(t, def, state, ev, events[ev])
			if err != nil {
				return nil, oops.In("content").With("state", state).Wrap(err)
			}
			t.States[state].Events[mobscript.EventID(ev)] = p
		}
	}
	for _, ev := range sortedKeys(def.GlobalEvents) {
		p, err := l.compile(t, def, globalState, ev, def.GlobalEvents[ev])
		if err != nil {
			return nil, oops.In("content").With("state", "global").Wrap(err)
		}
		t.Global[mobscript.EventID(ev)] = p
	}

	span.SetAttributes(attribute.Int("mob.states", len(states)))
	l.logger.Debug("mob type built", "type", t.Name, "states", len(states))
	return t, nil
}

func (l *Loader) checkRequires(def *TypeDef) error {
	if def.Requires == "" {
		return nil
	}
	c, err := semver.NewConstraint(def.Requires)
	if err != nil {
		return oops.In("content").Code(CodeInvalidDefinition).
			With("type", def.Name).
			With("requires", def.Requires).
			Wrapf(err, "invalid requires constraint")
	}
	if !c.Check(l.engine) {
		return oops.In("content").Code(CodeIncompatible).
			With("type", def.Name).
			With("requires", def.Requires).
			With("engine", l.engine.String()).
			Errorf("type %q requires engine %s, running %s", def.Name, def.Requires, l.engine)
	}
	return nil
}

// compile builds one event program. Statements starting with the custom
// code prefix become calls into the Lua host.
func (l *Loader) compile(t *mob.Type, def *TypeDef, state, ev string, texts []string) (*mobscript.Program, error) {
	event := mobscript.EventID(ev)
	if !mob.IsEvent(event) {
		return nil, oops.In("content").Code(CodeUnknownEvent).
			With("event", ev).
			Errorf("unknown event %q", ev)
	}
	stmts := def.statements(state, ev, texts)

	return mobscript.CompileWith(l.registry, stmts, t, event,
		func(s mobscript.Statement, event mobscript.EventID) (*mobscript.ActionCall, bool, error) {
			name, ok := strings.CutPrefix(s.Text, LuaPrefix)
			if !ok {
				return nil, false, nil
			}
			call, err := l.host.Call(chunkName(def.Name, strings.TrimSpace(name)), event)
			return call, true, err
		})
}

// LoadDir loads every file under dir whose slash-separated relative path
// matches one of patterns. Files that fail are reported in the joined
// error and skipped. The returned types are sorted by name.
func (l *Loader) LoadDir(ctx context.Context, dir string, patterns []string) ([]*mob.Type, error) {
	ctx, span := tracer.Start(ctx, "content.load_dir",
		trace.WithAttributes(attribute.String("content.dir", dir)),
	)
	defer span.End()

	matchers, err := compilePatterns(patterns)
	if err != nil {
		return nil, err
	}

	var types []*mob.Type
	var errs []error
	seen := make(map[string]string)
	walkErr := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		rel, err := filepath.Rel(dir, path)
		if err != nil {
			return err
		}
		if !matchAny(matchers, filepath.ToSlash(rel)) {
			return nil
		}

		t, err := l.LoadFile(ctx, path)
		if err != nil {
			errutil.LogWarn(l.logger, "mob type failed to load", err)
			errs = append(errs, err)
			return nil
		}
		if prev, dup := seen[t.Name]; dup {
			errs = append(errs, oops.In("content").Code(CodeInvalidDefinition).
				With("file", path).
				With("type", t.Name).
				Errorf("type %q already defined in %s", t.Name, prev))
			return nil
		}
		seen[t.Name] = path
		types = append(types, t)
		return nil
	})
	if walkErr != nil {
		errs = append(errs, oops.In("content").Code(CodeReadFailed).With("dir", dir).Wrap(walkErr))
	}

	sort.Slice(types, func(i, j int) bool { return types[i].Name < types[j].Name })
	warnMissingSpawns(l.logger, types)

	span.SetAttributes(attribute.Int("content.types", len(types)), attribute.Int("content.errors", len(errs)))
	if len(errs) > 0 {
		err := errors.Join(errs...)
		span.RecordError(err)
		span.SetStatus(codes.Error, "some files failed to load")
		return types, err
	}
	return types, nil
}

// Describe renders a load error for a script author.
func Describe(err error) string {
	if err == nil {
		return ""
	}
	msg := mobscript.AuthorMessage(err)
	if o, ok := oops.AsOops(err); ok {
		ctx := o.Context()
		var where []string
		if f, ok := ctx["file"].(string); ok {
			where = append(where, f)
		}
		if s, ok := ctx["state"].(string); ok {
			where = append(where, "state "+s)
		}
		if e, ok := ctx["event"].(string); ok {
			where = append(where, e)
		}
		if len(where) > 0 {
			msg = strings.Join(where, ": ") + ": " + msg
		}
		if code := errutil.Code(err); code != "" {
			msg = fmt.Sprintf("[%s] %s", code, msg)
		}
	}
	return msg
}

func warnMissingSpawns(logger *slog.Logger, types []*mob.Type) {
	names := make(map[string]bool, len(types))
	for _, t := range types {
		names[t.Name] = true
	}
	for _, t := range types {
		for spawn, s := range t.Spawns {
			if !names[s.TypeName] {
				logger.Warn("spawn refers to a type that is not loaded",
					"type", t.Name, "spawn", spawn, "spawn_type", s.TypeName)
			}
		}
	}
}

func compilePatterns(patterns []string) ([]glob.Glob, error) {
	if len(patterns) == 0 {
		patterns = DefaultPatterns
	}
	out := make([]glob.Glob, 0, len(patterns))
	for _, p := range patterns {
		g, err := glob.Compile(p, '/')
		if err != nil {
			return nil, oops.In("content").Code(CodeBadPattern).With("pattern", p).Wrap(err)
		}
		out = append(out, g)
	}
	return out, nil
}

func matchAny(globs []glob.Glob, path string) bool {
	for _, g := range globs {
		if g.Match(path) {
			return true
		}
	}
	return false
}

func chunkName(typeName, chunk string) string { return typeName + "/" + chunk }

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
