package assets

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"sort"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spaghettifunk/prism/engine/assets/loaders"
	"github.com/spaghettifunk/prism/engine/containers"
	"github.com/spaghettifunk/prism/engine/core"
	"github.com/spaghettifunk/prism/engine/renderer/metadata"
)

const (
	KindLayout = "layout"
	KindShader = "shader"
)

// Pending watcher events above this count are dropped until the queue is polled.
const maxPendingEvents = 256

type AssetInfo struct {
	// Name the asset is looked up by: the file name without its extension for
	// layouts, the file name without the language extension for shaders.
	Name string
	// Path relative to the asset directory, with forward slashes.
	Path       string
	Kind       string
	LastLoaded time.Time
}

/** @brief A watched asset was created, written or removed. */
type AssetEvent struct {
	Path    string
	Name    string
	Kind    string
	Removed bool
}

type AssetManager struct {
	baseDir string
	assets  map[string]AssetInfo

	layouts Loader[*metadata.PipelineLayoutDescriptor]
	shaders Loader[*metadata.ShaderDescriptor]

	mutex   sync.RWMutex
	pending *containers.RingQueue[AssetEvent]

	done     chan struct{}
	wg       sync.WaitGroup
	fsnotify *fsnotify.Watcher
	isClosed bool
}

func NewAssetManager() *AssetManager {
	return &AssetManager{
		assets:  make(map[string]AssetInfo),
		layouts: &loaders.LayoutLoader{},
		shaders: &loaders.ShaderLoader{},
		pending: containers.NewRingQueue[AssetEvent](maxPendingEvents),
		done:    make(chan struct{}),
	}
}

// Initialize indexes every asset under assetsDir. With watch set, changes
// below assetsDir are tracked until Shutdown and reported by PollEvents.
func (am *AssetManager) Initialize(assetsDir string, watch bool) error {
	dir, err := filepath.Abs(assetsDir)
	if err != nil {
		return err
	}
	if s, err := os.Stat(dir); err != nil || !s.IsDir() {
		err := fmt.Errorf("%w: asset directory `%s`", core.ErrAssetNotFound, assetsDir)
		core.LogError("%s", err.Error())
		return err
	}
	am.baseDir = dir

	if err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			am.indexFile(path)
		}
		return nil
	}); err != nil {
		return err
	}

	if !watch {
		return nil
	}
	am.fsnotify, err = fsnotify.NewWatcher()
	if err != nil {
		core.LogError("failed to create asset watcher: %s", err)
		return err
	}
	if err := am.addRecursive(dir); err != nil {
		am.fsnotify.Close()
		am.fsnotify = nil
		return err
	}
	am.wg.Add(1)
	go am.start()
	return nil
}

func (am *AssetManager) Shutdown() error {
	am.mutex.Lock()
	if am.isClosed {
		am.mutex.Unlock()
		return nil
	}
	am.isClosed = true
	am.mutex.Unlock()

	close(am.done)
	am.wg.Wait()
	return nil
}

func (am *AssetManager) BaseDir() string {
	return am.baseDir
}

// Find returns the asset of the given kind and name.
func (am *AssetManager) Find(kind, name string) (AssetInfo, bool) {
	am.mutex.RLock()
	defer am.mutex.RUnlock()
	for _, a := range am.assets {
		if a.Kind == kind && a.Name == name {
			return a, true
		}
	}
	return AssetInfo{}, false
}

// List returns the assets of the given kind sorted by path.
func (am *AssetManager) List(kind string) []AssetInfo {
	am.mutex.RLock()
	var out []AssetInfo
	for _, a := range am.assets {
		if a.Kind == kind {
			out = append(out, a)
		}
	}
	am.mutex.RUnlock()
	sort.Slice(out, func(i, j int) bool { return out[i].Path < out[j].Path })
	return out
}

func (am *AssetManager) LoadLayout(name string) (*metadata.PipelineLayoutDescriptor, error) {
	asset, err := am.acquire(KindLayout, name)
	if err != nil {
		return nil, err
	}
	return am.layouts.Load(am.fullPath(asset.Path))
}

func (am *AssetManager) LoadShader(name string) (*metadata.ShaderDescriptor, error) {
	asset, err := am.acquire(KindShader, name)
	if err != nil {
		return nil, err
	}
	return am.shaders.Load(am.fullPath(asset.Path))
}

// PollEvents returns the asset changes seen by the watcher since the last call.
func (am *AssetManager) PollEvents() []AssetEvent {
	am.mutex.Lock()
	defer am.mutex.Unlock()
	return am.pending.Drain()
}

func (am *AssetManager) acquire(kind, name string) (AssetInfo, error) {
	am.mutex.Lock()
	defer am.mutex.Unlock()
	for path, a := range am.assets {
		if a.Kind == kind && a.Name == name {
			a.LastLoaded = time.Now()
			am.assets[path] = a
			return a, nil
		}
	}
	err := fmt.Errorf("%w: %s `%s`", core.ErrAssetNotFound, kind, name)
	core.LogError("%s", err.Error())
	return AssetInfo{}, err
}

func (am *AssetManager) fullPath(rel string) string {
	return filepath.Join(am.baseDir, filepath.FromSlash(rel))
}

func (am *AssetManager) relPath(path string) string {
	rel, err := filepath.Rel(am.baseDir, path)
	if err != nil {
		return filepath.ToSlash(path)
	}
	return filepath.ToSlash(rel)
}

// AddRecursive starts watching the named directory and all sub-directories.
func (am *AssetManager) addRecursive(name string) error {
	return filepath.WalkDir(name, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return am.fsnotify.Add(path)
		}
		return nil
	})
}

func (am *AssetManager) start() {
	defer am.wg.Done()
	defer am.fsnotify.Close()
	for {
		select {
		case e, ok := <-am.fsnotify.Events:
			if !ok {
				return
			}
			am.handleWatchEvent(e)

		case err, ok := <-am.fsnotify.Errors:
			if !ok {
				return
			}
			core.LogError("asset watcher: %s", err)

		case <-am.done:
			return
		}
	}
}

func (am *AssetManager) handleWatchEvent(e fsnotify.Event) {
	if e.Has(fsnotify.Create) {
		if s, err := os.Stat(e.Name); err == nil && s.IsDir() {
			if err := am.addRecursive(e.Name); err != nil {
				core.LogWarn("failed to watch `%s`: %s", e.Name, err)
			}
			return
		}
	}
	switch {
	case e.Has(fsnotify.Create) || e.Has(fsnotify.Write):
		if info, ok := am.indexFile(e.Name); ok {
			am.enqueue(AssetEvent{Path: info.Path, Name: info.Name, Kind: info.Kind})
		}
	case e.Has(fsnotify.Remove) || e.Has(fsnotify.Rename):
		if info, ok := am.removeAsset(e.Name); ok {
			am.enqueue(AssetEvent{Path: info.Path, Name: info.Name, Kind: info.Kind, Removed: true})
		}
	}
}

func (am *AssetManager) enqueue(e AssetEvent) {
	am.mutex.Lock()
	defer am.mutex.Unlock()
	// Editors write a file several times per save, one pending event is enough.
	for _, p := range am.pending.Drain() {
		if p != e {
			_ = am.pending.Enqueue(p)
		}
	}
	if errors.Is(am.pending.Enqueue(e), containers.ErrQueueFull) {
		core.LogWarn("asset event queue is full, dropping change of `%s`", e.Path)
	}
}

// Handle the creation or modification of a file
func (am *AssetManager) indexFile(path string) (AssetInfo, bool) {
	kind, name := determineAssetKind(path)
	if kind == "" {
		return AssetInfo{}, false
	}
	info := AssetInfo{Name: name, Path: am.relPath(path), Kind: kind}

	am.mutex.Lock()
	defer am.mutex.Unlock()
	am.assets[info.Path] = info
	return info, true
}

// Remove the asset from the index if it was deleted
func (am *AssetManager) removeAsset(path string) (AssetInfo, bool) {
	rel := am.relPath(path)
	am.mutex.Lock()
	defer am.mutex.Unlock()
	info, ok := am.assets[rel]
	delete(am.assets, rel)
	return info, ok
}

func determineAssetKind(path string) (string, string) {
	file := filepath.Base(path)
	ext := filepath.Ext(file)
	switch {
	case ext == ".toml":
		return KindLayout, file[:len(file)-len(ext)]
	case slices.Contains(loaders.ShaderExtensions, ext):
		return KindShader, loaders.ShaderName(file)
	default:
		return "", ""
	}
}
