package assets

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/tidwall/gjson"

	"github.com/iniside/velesarc-craft/internal/errors"
)

const documentExt = ".json"

// FilesystemConfig holds the configuration for the directory repository
type FilesystemConfig struct {
	// Root directory holding *.json documents
	Root string
}

// Validate ensures all required fields are provided
func (c *FilesystemConfig) Validate() error {
	vb := errors.NewValidationBuilder()
	errors.ValidateRequired("root", c.Root, vb)
	return vb.Build()
}

// filesystemRepository maps "<root>/recipes/sword.json" to path
// "recipes/sword". A file holding a JSON array contributes one document per
// element, addressed by the element's "id" or "<file path>#<index>".
type filesystemRepository struct {
	root string
}

// NewFilesystemRepository creates a repository over a directory tree
func NewFilesystemRepository(cfg *FilesystemConfig) (Repository, error) {
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	info, err := os.Stat(cfg.Root)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to stat asset directory %s", cfg.Root)
	}
	if !info.IsDir() {
		return nil, errors.InvalidArgumentf("asset root %s is not a directory", cfg.Root)
	}

	return &filesystemRepository{root: cfg.Root}, nil
}

var _ Repository = (*filesystemRepository)(nil)

func (r *filesystemRepository) file(path string) string {
	return filepath.Join(r.root, filepath.FromSlash(path)+documentExt)
}

// scan reads every document under the root
func (r *filesystemRepository) scan(ctx context.Context) (map[string]*Record, error) {
	docs := make(map[string]*Record)
	err := filepath.WalkDir(r.root, func(name string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if d.IsDir() || !strings.HasSuffix(d.Name(), documentExt) {
			return nil
		}

		rel, err := filepath.Rel(r.root, name)
		if err != nil {
			return err
		}
		base := strings.TrimSuffix(filepath.ToSlash(rel), documentExt)

		body, err := os.ReadFile(name)
		if err != nil {
			return err
		}
		info, err := d.Info()
		if err != nil {
			return err
		}

		for path, doc := range splitDocuments(base, body) {
			docs[path] = &Record{
				Path:      path,
				Type:      SniffType(doc),
				Body:      doc,
				UpdatedAt: info.ModTime().UTC(),
			}
		}
		return nil
	})
	if err != nil {
		return nil, errors.Wrapf(err, "failed to scan asset directory %s", r.root)
	}
	return docs, nil
}

func splitDocuments(base string, body []byte) map[string][]byte {
	parsed := gjson.ParseBytes(body)
	if !parsed.IsArray() {
		return map[string][]byte{base: body}
	}

	out := make(map[string][]byte)
	i := 0
	parsed.ForEach(func(_, v gjson.Result) bool {
		path := base + "#" + strconv.Itoa(i)
		if id := v.Get("id").String(); id != "" {
			path = id
		}
		out[path] = []byte(v.Raw)
		i++
		return true
	})
	return out
}

// Get retrieves a document by path
func (r *filesystemRepository) Get(ctx context.Context, input GetInput) (*GetOutput, error) {
	if input.Path == "" {
		return nil, errors.InvalidArgument(errPathEmpty)
	}

	if body, err := os.ReadFile(r.file(input.Path)); err == nil && gjson.ParseBytes(body).IsObject() {
		rec := &Record{Path: input.Path, Type: SniffType(body), Body: body}
		if info, err := os.Stat(r.file(input.Path)); err == nil {
			rec.UpdatedAt = info.ModTime().UTC()
		}
		return &GetOutput{Record: rec}, nil
	}

	docs, err := r.scan(ctx)
	if err != nil {
		return nil, err
	}
	rec, ok := docs[input.Path]
	if !ok {
		return nil, errors.NotFoundf("asset %s not found", input.Path).
			WithMeta(errors.MetaAssetPath, input.Path)
	}
	return &GetOutput{Record: rec}, nil
}

// Put writes the document to its own file
func (r *filesystemRepository) Put(_ context.Context, input PutInput) (*PutOutput, error) {
	if err := validateRecord(input.Record); err != nil {
		return nil, err
	}

	name := r.file(input.Record.Path)
	_, statErr := os.Stat(name)
	if err := os.MkdirAll(filepath.Dir(name), 0o755); err != nil {
		return nil, errors.Wrapf(err, "failed to create directory for %s", input.Record.Path)
	}
	if err := os.WriteFile(name, input.Record.Body, 0o644); err != nil {
		return nil, errors.Wrapf(err, "failed to write asset %s", input.Record.Path)
	}

	return &PutOutput{Created: os.IsNotExist(statErr)}, nil
}

// List returns every document under the root
func (r *filesystemRepository) List(ctx context.Context, input ListInput) (*ListOutput, error) {
	docs, err := r.scan(ctx)
	if err != nil {
		return nil, err
	}

	out := &ListOutput{}
	for _, rec := range docs {
		if input.Type != "" && rec.Type != input.Type {
			continue
		}
		out.Summaries = append(out.Summaries, Summary{Path: rec.Path, Type: rec.Type})
	}
	sort.Slice(out.Summaries, func(i, j int) bool {
		return out.Summaries[i].Path < out.Summaries[j].Path
	})
	return out, nil
}

// Delete removes a single-document file
func (r *filesystemRepository) Delete(ctx context.Context, input DeleteInput) error {
	if input.Path == "" {
		return errors.InvalidArgument(errPathEmpty)
	}

	err := os.Remove(r.file(input.Path))
	if err == nil {
		return nil
	}
	if !os.IsNotExist(err) {
		return errors.Wrapf(err, "failed to delete asset %s", input.Path)
	}

	docs, scanErr := r.scan(ctx)
	if scanErr != nil {
		return scanErr
	}
	if _, ok := docs[input.Path]; ok {
		return errors.FailedPreconditionf("asset %s is part of a multi-document file", input.Path)
	}
	return errors.NotFoundf("asset %s not found", input.Path).
		WithMeta(errors.MetaAssetPath, input.Path)
}
