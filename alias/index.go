// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package alias

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/rishika0212/termalign/core"
	"github.com/rishika0212/termalign/storage"
	"github.com/rishika0212/termalign/text"
)

// ErrNoSourceFiles indicates the release directory holds no usable JSON files.
var ErrNoSourceFiles = errors.New("no source files")

// aliasFields are the document fields harvested as labels, in priority
// order. The title comes first so the primary alias of every entry is the
// official display label.
var aliasFields = []string{"title", "definition", "synonym", "indexTerm", "inclusion", "exclusion"}

// Builder builds the alias index of one target system from its release
// directory and persists it with a fingerprint for change detection.
type Builder struct {
	dir    string
	store  storage.AliasRepository
	logger *slog.Logger
}

// NewBuilder creates a Builder over a release directory.
func NewBuilder(dir string, store storage.AliasRepository) *Builder {
	return &Builder{
		dir:    dir,
		store:  store,
		logger: slog.Default().With("component", "alias-builder"),
	}
}

// Fingerprint computes the change-detection fingerprint of the release
// directory: the number of JSON files and the latest modification time among
// them. Files whose name starts with "_" are working files, not release
// content, and are skipped.
func (b *Builder) Fingerprint() (core.AliasFingerprint, error) {
	files, err := b.sourceFiles()
	if err != nil {
		return core.AliasFingerprint{}, err
	}

	fp := core.AliasFingerprint{FileCount: int64(len(files))}
	for _, path := range files {
		info, err := os.Stat(path)
		if err != nil {
			return core.AliasFingerprint{}, err
		}
		if mt := info.ModTime().UnixMicro(); mt > fp.LatestModTime {
			fp.LatestModTime = mt
		}
	}
	return fp, nil
}

// BuildOrLoad returns the alias index of a target system, reusing the stored
// index when the release directory is unchanged since it was built. A stored
// index that fails to load is rebuilt rather than trusted.
func (b *Builder) BuildOrLoad(ctx context.Context, system string) ([]*core.TargetAlias, error) {
	fp, err := b.Fingerprint()
	if err != nil {
		return nil, err
	}

	stored, err := b.store.GetFingerprint(ctx, system)
	if err == nil && stored.Equal(fp) {
		aliases, loadErr := b.store.LoadAliasIndex(ctx, system)
		if loadErr == nil {
			b.logger.Debug("loaded alias index", "system", system, "entries", len(aliases))
			return aliases, nil
		}
		b.logger.Warn("stored alias index unreadable, rebuilding", "system", system, "err", loadErr)
	} else if err != nil && !errors.Is(err, storage.ErrNotFound) {
		return nil, err
	}

	aliases, err := b.build(system)
	if err != nil {
		return nil, err
	}
	if err := b.store.SaveAliasIndex(ctx, system, aliases, fp); err != nil {
		return nil, err
	}
	b.logger.Info("built alias index", "system", system, "entries", len(aliases), "files", fp.FileCount)
	return aliases, nil
}

// build parses every release file and assembles the alias entries.
func (b *Builder) build(system string) ([]*core.TargetAlias, error) {
	files, err := b.sourceFiles()
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrNoSourceFiles, b.dir)
	}

	byCode := make(map[string]*core.TargetAlias)
	var order []string

	for _, path := range files {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, err
		}

		var raw any
		if err := json.Unmarshal(data, &raw); err != nil {
			b.logger.Warn("skipping unparseable release file", "file", filepath.Base(path), "err", err)
			continue
		}

		for _, doc := range documents(FromJSON(raw)) {
			code, labels := harvest(doc)
			if code == "" || len(labels) == 0 {
				continue
			}

			entry, ok := byCode[code]
			if !ok {
				entry = &core.TargetAlias{System: system, Code: code}
				byCode[code] = entry
				order = append(order, code)
			}
			entry.Aliases = mergeLabels(entry.Aliases, labels)
		}
	}

	aliases := make([]*core.TargetAlias, 0, len(byCode))
	for _, code := range order {
		aliases = append(aliases, byCode[code])
	}
	return aliases, nil
}

// sourceFiles lists the release JSON files sorted by name.
func (b *Builder) sourceFiles() ([]string, error) {
	entries, err := os.ReadDir(b.dir)
	if err != nil {
		return nil, err
	}

	var files []string
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || strings.HasPrefix(name, "_") || !strings.HasSuffix(name, ".json") {
			continue
		}
		files = append(files, filepath.Join(b.dir, name))
	}
	sort.Strings(files)
	return files, nil
}

// childFields are the document fields that nest further entity documents.
var childFields = []string{"child", "children"}

// documents walks a parsed release file and collects every entity document.
// A file is one document or a list of them, and documents nest children under
// child arrays. The walk is iterative with an explicit queue; a visited set
// keyed by code guarantees termination on releases that repeat subtrees.
func documents(root TreeValue) []TreeValue {
	queue := []TreeValue{root}
	visited := make(map[string]struct{})
	var docs []TreeValue

	for len(queue) > 0 {
		v := queue[0]
		queue = queue[1:]

		switch v.Kind {
		case KindList:
			queue = append(queue, v.List...)
		case KindObject:
			if c, ok := v.Object["code"]; ok && c.Kind == KindString {
				code := strings.TrimSpace(c.Str)
				if code != "" {
					if _, seen := visited[code]; seen {
						continue
					}
					visited[code] = struct{}{}
					docs = append(docs, v)
				}
			}
			for _, field := range childFields {
				if child, ok := v.Object[field]; ok {
					queue = append(queue, child)
				}
			}
		}
	}
	return docs
}

// harvest extracts the code and label strings of one entity document.
func harvest(doc TreeValue) (code string, labels []string) {
	if c, ok := doc.Object["code"]; ok && c.Kind == KindString {
		code = strings.TrimSpace(c.Str)
	}
	if code == "" {
		return "", nil
	}

	for _, field := range aliasFields {
		if child, ok := doc.Object[field]; ok {
			labels = append(labels, CollectStrings(child)...)
		}
	}
	return code, labels
}

// mergeLabels appends new labels and their normalized variants, keeping the
// existing order and dropping duplicates and blanks.
func mergeLabels(existing, incoming []string) []string {
	seen := make(map[string]struct{}, len(existing))
	for _, label := range existing {
		seen[label] = struct{}{}
	}

	add := func(label string) {
		if label == "" {
			return
		}
		if _, dup := seen[label]; dup {
			return
		}
		seen[label] = struct{}{}
		existing = append(existing, label)
	}

	for _, label := range incoming {
		add(strings.TrimSpace(label))
	}
	// Normalized variants match the pipeline's normalized source text without
	// re-normalizing every alias on every comparison
	for _, label := range incoming {
		add(text.Normalize(label))
	}
	return existing
}
