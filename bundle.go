package tagstr

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"

	"github.com/tagstr/tagstr/parse"
)

// Logger prints notifications and template errors from the WatchFiles
// reloader.
var Logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen}).
	With().Timestamp().Str("component", "tagstr").Logger()

type templateFile struct{ name, content string }

// Bundle is a collection of template files and globals.  It acts as input
// for the template compiler.
type Bundle struct {
	files   []templateFile
	globals map[string]interface{}
	err     error
	watcher *fsnotify.Watcher
	reload  func(*Registry)
}

// NewBundle returns an empty bundle.
func NewBundle() *Bundle {
	return &Bundle{globals: make(map[string]interface{})}
}

// WatchFiles tells the bundle to watch any template files added to it,
// re-parse as necessary, and propagate the updates to the compiled
// registry.  It should be called once, before adding any files.
func (b *Bundle) WatchFiles(watch bool) *Bundle {
	if watch && b.err == nil && b.watcher == nil {
		b.watcher, b.err = fsnotify.NewWatcher()
	}
	return b
}

// AddTemplateDir adds all *.html files found within the given directory
// (including sub-directories) to the bundle.
func (b *Bundle) AddTemplateDir(root string) *Bundle {
	var err = filepath.Walk(root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() || !strings.HasSuffix(path, ".html") {
			return nil
		}
		b.AddTemplateFile(path)
		return nil
	})
	if err != nil {
		b.err = err
	}
	return b
}

// AddTemplateFile adds the given template file to this bundle.  If
// WatchFiles is on, it will be subsequently watched for updates.
func (b *Bundle) AddTemplateFile(filename string) *Bundle {
	content, err := os.ReadFile(filename)
	if err != nil {
		b.err = err
	}
	if b.err == nil && b.watcher != nil {
		b.err = b.watcher.Add(filename)
	}
	return b.AddTemplateString(filename, string(content))
}

// AddTemplateString adds the given template text to the bundle under the
// given name.  The name is how the template is addressed in the registry;
// it does not need to be a real filename.
func (b *Bundle) AddTemplateString(name, text string) *Bundle {
	b.files = append(b.files, templateFile{name, text})
	return b
}

// AddGlobalsFile opens and parses the given YAML file and adds the
// resulting data map to the bundle.
func (b *Bundle) AddGlobalsFile(filename string) *Bundle {
	content, err := os.ReadFile(filename)
	if err != nil {
		b.err = err
		return b
	}
	var globals map[string]interface{}
	if err := yaml.Unmarshal(content, &globals); err != nil {
		b.err = fmt.Errorf("globals %s: %v", filename, err)
		return b
	}
	return b.AddGlobalsMap(globals)
}

// AddGlobalsMap merges the given data into the bundle's globals.  Redefining
// a global is an error.
func (b *Bundle) AddGlobalsMap(globals map[string]interface{}) *Bundle {
	for k, v := range globals {
		if existing, ok := b.globals[k]; ok {
			b.err = fmt.Errorf("global %q already defined as %v", k, existing)
			return b
		}
		b.globals[k] = v
	}
	return b
}

// SetReloadCallback assigns the bundle a function to call after the watcher
// re-parses changed templates.  This is called before updating the in-use
// registry.
func (b *Bundle) SetReloadCallback(c func(*Registry)) *Bundle {
	b.reload = c
	return b
}

// Compile parses all templates in this bundle and returns the completed
// registry.
func (b *Bundle) Compile() (*Registry, error) {
	if b.err != nil {
		return nil, b.err
	}

	var registry = Registry{
		templates: make(map[string]*parse.Template),
		globals:   b.globals,
	}
	for _, file := range b.files {
		tmpl, err := parse.New(file.name, file.content)
		if err != nil {
			return nil, err
		}
		registry.templates[file.name] = tmpl
	}

	if b.watcher != nil {
		go b.reloader(&registry)
	}
	return &registry, nil
}

func (b *Bundle) reloader(reg *Registry) {
	for {
		select {
		case ev, ok := <-b.watcher.Events:
			if !ok {
				return
			}
			// A rename removes the watch; add it back after a delay.
			if ev.Has(fsnotify.Rename) || ev.Has(fsnotify.Remove) {
				time.Sleep(10 * time.Millisecond)
				if err := b.watcher.Add(ev.Name); err != nil {
					Logger.Error().Err(err).Str("file", ev.Name).Msg("re-watch failed")
				}
			}

			// Re-read and re-parse every template.
			var bundle = NewBundle().AddGlobalsMap(b.globals)
			for _, file := range b.files {
				bundle.AddTemplateFile(file.name)
			}
			registry, err := bundle.Compile()
			if err != nil {
				Logger.Error().Err(err).Msg("reload failed")
				continue
			}

			if b.reload != nil {
				b.reload(registry)
			}

			// Update the existing registry in place.  This is not
			// goroutine-safe, but that seems ok for a development aid.
			*reg = *registry
			Logger.Info().Str("event", ev.String()).Msg("templates reloaded")

		case err, ok := <-b.watcher.Errors:
			if !ok {
				return
			}
			Logger.Error().Err(err).Msg("watch error")
		}
	}
}
