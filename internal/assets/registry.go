package assets

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/patrickmn/go-cache"

	"github.com/iniside/velesarc-craft/internal/engine/datacheck"
	"github.com/iniside/velesarc-craft/internal/engine/material"
	"github.com/iniside/velesarc-craft/internal/engine/modifier"
	"github.com/iniside/velesarc-craft/internal/engine/quality"
	"github.com/iniside/velesarc-craft/internal/engine/randompool"
	"github.com/iniside/velesarc-craft/internal/engine/recipe"
	"github.com/iniside/velesarc-craft/internal/entities/item"
	"github.com/iniside/velesarc-craft/internal/entities/tags"
	"github.com/iniside/velesarc-craft/internal/errors"
	"github.com/iniside/velesarc-craft/internal/pkg/softref"
	"github.com/iniside/velesarc-craft/internal/pkg/suggest"
	assetsrepo "github.com/iniside/velesarc-craft/internal/repositories/assets"
)

// Config configures a Registry
type Config struct {
	Store assetsrepo.Repository
	// CacheTTL evicts decoded assets after the given time; zero keeps them
	// until Invalidate
	CacheTTL time.Duration
}

// Validate validates the config
func (c *Config) Validate() error {
	vb := errors.NewValidationBuilder()

	if c.Store == nil {
		vb.RequiredField("Store")
	}
	if c.CacheTTL < 0 {
		vb.Fieldf("CacheTTL", "must not be negative, got %s", c.CacheTTL)
	}

	return vb.Build()
}

// Registry loads assets from a store, binds their soft references and caches
// the decoded result. Loaded assets are shared and must be treated as
// read-only.
type Registry struct {
	store assetsrepo.Repository
	cache *cache.Cache

	// mu serializes loads so a graph is decoded and bound once
	mu sync.Mutex
}

// NewRegistry creates a registry over cfg.Store
func NewRegistry(cfg *Config) (*Registry, error) {
	if cfg == nil {
		return nil, errors.InvalidArgument("config is required")
	}
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	ttl, cleanup := cache.NoExpiration, time.Duration(0)
	if cfg.CacheTTL > 0 {
		ttl, cleanup = cfg.CacheTTL, 2*cfg.CacheTTL
	}

	return &Registry{
		store: cfg.Store,
		cache: cache.New(ttl, cleanup),
	}, nil
}

// Load returns the asset at path with every reachable soft reference bound.
// References that cannot be loaded stay unbound.
func (r *Registry) Load(ctx context.Context, path string) (any, error) {
	if path == "" {
		return nil, errors.InvalidArgument("asset path is required")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	return r.load(ctx, path, make(map[string]bool))
}

// LoadResult is one outcome of LoadAsync
type LoadResult struct {
	Path  string
	Asset any
	Err   error
}

// LoadAsync loads paths in the background. The channel yields one result per
// path, in order, and is closed afterwards.
func (r *Registry) LoadAsync(ctx context.Context, paths ...string) <-chan LoadResult {
	ch := make(chan LoadResult, len(paths))
	go func() {
		defer close(ch)
		for _, p := range paths {
			if err := ctx.Err(); err != nil {
				ch <- LoadResult{Path: p, Err: errors.Wrap(err, "load cancelled")}
				continue
			}
			v, err := r.Load(ctx, p)
			ch <- LoadResult{Path: p, Asset: v, Err: err}
		}
	}()
	return ch
}

func (r *Registry) load(ctx context.Context, path string, loading map[string]bool) (any, error) {
	if v, ok := r.cache.Get(path); ok {
		return v, nil
	}

	out, err := r.store.Get(ctx, assetsrepo.GetInput{Path: path})
	if err != nil {
		if errors.IsNotFound(err) {
			return nil, r.notFound(ctx, path)
		}
		return nil, errors.Wrapf(err, "failed to read asset %s", path)
	}

	v, err := Decode(path, out.Record.Body)
	if err != nil {
		return nil, err
	}

	loading[path] = true
	r.bind(ctx, path, v, loading)
	delete(loading, path)

	r.cache.Set(path, v, cache.DefaultExpiration)
	slog.Debug("asset loaded", "asset_path", path, "type", string(TypeOf(v)))
	return v, nil
}

func (r *Registry) notFound(ctx context.Context, path string) error {
	err := errors.NotFoundf("asset %s not found", path).
		WithMeta(errors.MetaAssetPath, path)

	list, listErr := r.store.List(ctx, assetsrepo.ListInput{})
	if listErr != nil {
		return err
	}
	known := make([]string, len(list.Summaries))
	for i, s := range list.Summaries {
		known[i] = s.Path
	}
	return err.WithSuggestion(suggest.Closest(path, known))
}

func bindRef[T any](ctx context.Context, r *Registry, owner string, ref *softref.Ref[T], loading map[string]bool) {
	if !ref.IsSet() || ref.IsBound() {
		return
	}
	if loading[ref.Path] {
		slog.Warn("asset reference cycle, leaving reference unbound",
			"asset_path", owner,
			"ref", ref.Path)
		return
	}

	v, err := r.load(ctx, ref.Path, loading)
	if err != nil {
		slog.Warn("soft reference could not be loaded",
			"asset_path", owner,
			"ref", ref.Path,
			"error", err)
		return
	}
	target, ok := v.(*T)
	if !ok {
		slog.Warn("soft reference points at the wrong asset type",
			"asset_path", owner,
			"ref", ref.Path,
			"type", string(TypeOf(v)))
		return
	}
	ref.Bind(target)
}

func (r *Registry) bindCraftModifiers(ctx context.Context, owner string, mods []modifier.CraftModifier, loading map[string]bool) {
	for _, m := range mods {
		if pool, ok := m.(*randompool.Modifier); ok {
			bindRef(ctx, r, owner, &pool.Pool, loading)
		}
	}
}

func (r *Registry) bindBands(ctx context.Context, owner string, bands []material.Band, loading map[string]bool) {
	for i := range bands {
		r.bindCraftModifiers(ctx, owner, bands[i].Modifiers, loading)
	}
}

func (r *Registry) bind(ctx context.Context, path string, v any, loading map[string]bool) {
	switch a := v.(type) {
	case *recipe.Definition:
		bindRef(ctx, r, path, &a.OutputItemDefinition, loading)
		bindRef(ctx, r, path, &a.QualityTierTable, loading)
		for _, m := range a.OutputModifiers {
			switch om := m.(type) {
			case *recipe.RandomPool:
				bindRef(ctx, r, path, &om.Pool, loading)
			case *recipe.MaterialProperties:
				bindRef(ctx, r, path, &om.Table, loading)
			}
		}
	case *material.Table:
		bindRef(ctx, r, path, &a.DefaultTierTable, loading)
		for i := range a.Rules {
			bindRef(ctx, r, path, &a.Rules[i].Preset, loading)
			r.bindBands(ctx, path, a.Rules[i].Bands, loading)
		}
	case *material.Preset:
		r.bindBands(ctx, path, a.Bands, loading)
	case *randompool.Definition:
		for i := range a.Entries {
			r.bindCraftModifiers(ctx, path, a.Entries[i].Modifiers, loading)
		}
	}
}

func get[T any](ctx context.Context, r *Registry, path string, want Type) (*T, error) {
	v, err := r.Load(ctx, path)
	if err != nil {
		return nil, err
	}
	t, ok := v.(*T)
	if !ok {
		return nil, errors.InvalidArgumentf("asset %s is a %s, not a %s", path, TypeOf(v), want).
			WithMeta(errors.MetaAssetPath, path)
	}
	return t, nil
}

// Recipe loads a recipe definition
func (r *Registry) Recipe(ctx context.Context, path string) (*recipe.Definition, error) {
	return get[recipe.Definition](ctx, r, path, TypeRecipe)
}

// Table loads a material property table
func (r *Registry) Table(ctx context.Context, path string) (*material.Table, error) {
	return get[material.Table](ctx, r, path, TypeTable)
}

// Preset loads a quality band preset
func (r *Registry) Preset(ctx context.Context, path string) (*material.Preset, error) {
	return get[material.Preset](ctx, r, path, TypePreset)
}

// Pool loads a random pool definition
func (r *Registry) Pool(ctx context.Context, path string) (*randompool.Definition, error) {
	return get[randompool.Definition](ctx, r, path, TypePool)
}

// TierTable loads a quality tier table
func (r *Registry) TierTable(ctx context.Context, path string) (*quality.TierTable, error) {
	return get[quality.TierTable](ctx, r, path, TypeTierTable)
}

// Item loads an item definition
func (r *Registry) Item(ctx context.Context, path string) (*item.Definition, error) {
	return get[item.Definition](ctx, r, path, TypeItem)
}

// Paths lists the stored asset paths of type t, every path when t is empty
func (r *Registry) Paths(ctx context.Context, t Type) ([]string, error) {
	out, err := r.store.List(ctx, assetsrepo.ListInput{Type: string(t)})
	if err != nil {
		return nil, errors.Wrap(err, "failed to list assets")
	}
	paths := make([]string, len(out.Summaries))
	for i, s := range out.Summaries {
		paths[i] = s.Path
	}
	return paths, nil
}

// ListRecipes loads every stored recipe. Recipes that fail to load are
// skipped.
func (r *Registry) ListRecipes(ctx context.Context) ([]*recipe.Definition, error) {
	paths, err := r.Paths(ctx, TypeRecipe)
	if err != nil {
		return nil, err
	}
	out := make([]*recipe.Definition, 0, len(paths))
	for _, p := range paths {
		d, err := r.Recipe(ctx, p)
		if err != nil {
			slog.Warn("skipping recipe that failed to load", "asset_path", p, "error", err)
			continue
		}
		out = append(out, d)
	}
	return out, nil
}

// KnownTags collects every tag authored on items, tier tables, recipes and
// material rules. It is the dictionary data checks compare against.
func (r *Registry) KnownTags(ctx context.Context) (tags.Container, error) {
	paths, err := r.Paths(ctx, "")
	if err != nil {
		return tags.Container{}, err
	}

	var known tags.Container
	for _, p := range paths {
		v, err := r.Load(ctx, p)
		if err != nil {
			continue
		}
		switch a := v.(type) {
		case *item.Definition:
			known.Append(a.Tags)
		case *quality.TierTable:
			for _, m := range a.Tiers {
				known.Add(m.TierTag)
			}
		case *recipe.Definition:
			known.Append(a.Tags)
			known.Append(a.RequiredStationTags)
			known.Append(a.RequiredInstigatorTags)
			for _, s := range a.ModifierSlots {
				known.Add(s.SlotTag)
			}
		case *material.Table:
			for _, rule := range a.Rules {
				known.Append(rule.OutputTags)
			}
		}
	}
	return known, nil
}

// Validate loads the asset at path and runs the data checks for its type
func (r *Registry) Validate(ctx context.Context, path string) (*datacheck.Report, error) {
	v, err := r.Load(ctx, path)
	if err != nil {
		return nil, err
	}
	known, err := r.KnownTags(ctx)
	if err != nil {
		return nil, err
	}
	checker := datacheck.NewChecker(known)

	switch a := v.(type) {
	case *recipe.Definition:
		return checker.CheckRecipe(path, a), nil
	case *material.Table:
		return checker.CheckTable(path, a), nil
	case *material.Preset:
		return checker.CheckPreset(path, a), nil
	case *randompool.Definition:
		return checker.CheckPool(path, a), nil
	case *quality.TierTable:
		return checker.CheckTierTable(path, a), nil
	default:
		return &datacheck.Report{Asset: path}, nil
	}
}

// Import validates and stores a raw document at path, then drops every
// cached asset so dependents rebind
func (r *Registry) Import(ctx context.Context, path string, body []byte) (bool, error) {
	if _, err := Decode(path, body); err != nil {
		return false, err
	}
	out, err := r.store.Put(ctx, assetsrepo.PutInput{Record: &assetsrepo.Record{
		Path: path,
		Type: string(Sniff(body)),
		Body: body,
	}})
	if err != nil {
		return false, errors.Wrapf(err, "failed to store asset %s", path)
	}
	r.Invalidate()
	slog.Info("asset imported", "asset_path", path, "created", out.Created)
	return out.Created, nil
}

// Invalidate drops every cached asset
func (r *Registry) Invalidate() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.cache.Flush()
}
