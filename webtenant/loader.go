// SPDX-FileCopyrightText: 2026 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

package webtenant

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"github.com/xmidt-org/multiweb/webplugin"
	"github.com/xmidt-org/multiweb/webroute"
	"go.uber.org/multierr"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const (
	// DefaultExtension is the file extension a tenant package must have.
	DefaultExtension = ".so"

	// DefaultConcurrency is the number of packages LoadAll opens at the same time.
	DefaultConcurrency = 4
)

// ErrExtension indicates a tenant package path without the expected extension.
var ErrExtension = errors.New("not a tenant package")

// Assignment binds a tenant package to a port.
type Assignment struct {
	Package string `json:"package" mapstructure:"package"`
	Port    int    `json:"port" mapstructure:"port"`
}

// Tenant describes a successfully loaded package.
type Tenant struct {
	Package  string    `json:"package"`
	Port     int       `json:"port"`
	Scope    string    `json:"scope"`
	Routes   int       `json:"routes"`
	OptedOut int       `json:"optedOut"`
	Failures int       `json:"failures"`
	LoadedAt time.Time `json:"loadedAt"`
}

// Event is sent to observers after every load attempt.
type Event struct {
	Package  string
	Port     int
	Duration time.Duration

	// Skipped is true when the package did not exist.
	Skipped bool

	// Tenant is set when the package was published.
	Tenant *Tenant

	// Err is the error that prevented the tenant from loading.
	Err error
}

// Observer receives load events.
type Observer func(Event)

// Opener loads the archive at a path.  webplugin.Open is the default.
type Opener func(path string) (webplugin.Archive, error)

// Loader loads tenant packages into a Registry.  The zero value is not usable.
// Use NewLoader.
type Loader struct {
	registry    *webroute.Registry
	host        webplugin.Archive
	open        Opener
	logger      *zap.Logger
	extension   string
	concurrency int
	observers   []Observer
	now         func() time.Time

	lock    sync.Mutex
	tenants map[int]Tenant
}

// Option tailors a Loader.
type Option func(*Loader)

// WithHost supplies the built-in symbols that every scope falls back to.
func WithHost(host webplugin.Archive) Option {
	return func(l *Loader) {
		l.host = host
	}
}

// WithOpener changes how archives are opened.
func WithOpener(o Opener) Option {
	return func(l *Loader) {
		if o != nil {
			l.open = o
		}
	}
}

// WithLogger sets the logger used for load results.
func WithLogger(logger *zap.Logger) Option {
	return func(l *Loader) {
		if logger != nil {
			l.logger = logger
		}
	}
}

// WithExtension changes the required package extension, which includes the leading dot.
func WithExtension(ext string) Option {
	return func(l *Loader) {
		if len(ext) > 0 {
			l.extension = ext
		}
	}
}

// WithConcurrency sets how many packages LoadAll opens at once.
func WithConcurrency(n int) Option {
	return func(l *Loader) {
		if n > 0 {
			l.concurrency = n
		}
	}
}

// WithObservers appends load event observers.
func WithObservers(o ...Observer) Option {
	return func(l *Loader) {
		l.observers = append(l.observers, o...)
	}
}

// NewLoader creates a Loader that publishes into the given registry.
func NewLoader(r *webroute.Registry, opts ...Option) *Loader {
	l := &Loader{
		registry:    r,
		open:        webplugin.Open,
		logger:      zap.NewNop(),
		extension:   DefaultExtension,
		concurrency: DefaultConcurrency,
		now:         time.Now,
		tenants:     make(map[int]Tenant),
	}

	for _, o := range opts {
		o(l)
	}

	return l
}

// LoadTenant loads the package at path and publishes its routes for port.
//
// A path without the expected extension is a *webplugin.LoadError.  A path that does
// not exist is skipped with a notice and a nil error.  Once the package is open, a fresh
// Scope is created for it, its manifest is discovered, and the resulting table replaces
// whatever was previously published for port.  Nothing is published if any step before
// that fails.
func (l *Loader) LoadTenant(ctx context.Context, path string, port int) error {
	p, err := l.prepare(ctx, path, port)
	if p != nil {
		l.commit(p)
	}

	return err
}

// LoadArchive is like LoadTenant, but for an archive that is already open.
// The source is used in place of a package path.
func (l *Loader) LoadArchive(ctx context.Context, source string, archive webplugin.Archive, port int) error {
	start := l.now()
	logger := l.logger.With(zap.String("package", source), zap.Int("port", port))
	if err := ctx.Err(); err != nil {
		return l.failed(logger, start, source, port, err)
	}

	p, err := l.build(logger, start, source, archive, port)
	if p != nil {
		l.commit(p)
	}

	return err
}

// LoadAll loads a set of assignments.  Packages are opened and discovered concurrently,
// but their tables are published one at a time in the order given.  The last assignment
// for a port therefore owns that port, and in ModeGlobal the last assignment declaring
// a path owns that path, no matter which package finished loading first.
// A failure for one tenant never stops the others.  The returned error aggregates
// every failure.
func (l *Loader) LoadAll(ctx context.Context, assignments []Assignment) error {
	var (
		g       errgroup.Group
		pending = make([]*pendingTenant, len(assignments))
		errs    = make([]error, len(assignments))
	)

	g.SetLimit(l.concurrency)
	for i, a := range assignments {
		g.Go(func() error {
			pending[i], errs[i] = l.prepare(ctx, a.Package, a.Port)
			return nil
		})
	}

	g.Wait()

	var err error
	for i := range assignments {
		if pending[i] != nil {
			l.commit(pending[i])
		}

		err = multierr.Append(err, errs[i])
	}

	return err
}

// Tenants returns the most recently loaded tenant for each port, sorted by port.
func (l *Loader) Tenants() []Tenant {
	l.lock.Lock()
	defer l.lock.Unlock()

	tenants := make([]Tenant, 0, len(l.tenants))
	for _, t := range l.tenants {
		tenants = append(tenants, t)
	}

	sort.Slice(tenants, func(i, j int) bool {
		return tenants[i].Port < tenants[j].Port
	})

	return tenants
}

// Registry returns the registry this loader publishes into.
func (l *Loader) Registry() *webroute.Registry {
	return l.registry
}

// pendingTenant is a discovered package whose table has not been published yet
type pendingTenant struct {
	logger    *zap.Logger
	start     time.Time
	source    string
	port      int
	scope     string
	discovery *webplugin.Discovery
	table     *webroute.Table
}

// prepare opens and discovers the package at path.  A nil pendingTenant with a nil
// error means the package was skipped.
func (l *Loader) prepare(ctx context.Context, path string, port int) (*pendingTenant, error) {
	start := l.now()
	logger := l.logger.With(zap.String("package", path), zap.Int("port", port))

	if filepath.Ext(path) != l.extension {
		err := &webplugin.LoadError{Path: path, Err: fmt.Errorf("%w: expected a %s file", ErrExtension, l.extension)}
		return nil, l.failed(logger, start, path, port, err)
	}

	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		logger.Info("tenant package does not exist, skipping")
		l.dispatch(Event{Package: path, Port: port, Duration: l.now().Sub(start), Skipped: true})
		return nil, nil
	} else if err != nil {
		return nil, l.failed(logger, start, path, port, &webplugin.LoadError{Path: path, Err: err})
	}

	if err := ctx.Err(); err != nil {
		return nil, l.failed(logger, start, path, port, err)
	}

	archive, err := l.open(path)
	if err != nil {
		return nil, l.failed(logger, start, path, port, err)
	}

	return l.build(logger, start, path, archive, port)
}

func (l *Loader) build(logger *zap.Logger, start time.Time, source string, archive webplugin.Archive, port int) (*pendingTenant, error) {
	scope := webplugin.NewScope(source, archive, l.host)
	d, err := webplugin.Discover(scope, logger)
	if err != nil {
		return nil, l.failed(logger, start, source, port, err)
	}

	// the table is private until commit, so readers never see it partially built
	tb := webroute.NewTableBuilder()
	if err := d.AddTo(tb); err != nil {
		return nil, l.failed(logger, start, source, port, err)
	}

	return &pendingTenant{
		logger:    logger,
		start:     start,
		source:    source,
		port:      port,
		scope:     scope.ID(),
		discovery: d,
		table:     tb.Build(),
	}, nil
}

func (l *Loader) commit(p *pendingTenant) {
	l.registry.Publish(p.port, p.table)

	t := Tenant{
		Package:  p.source,
		Port:     p.port,
		Scope:    p.scope,
		Routes:   p.table.Len(),
		OptedOut: len(p.discovery.OptedOut),
		Failures: len(p.discovery.Failures),
		LoadedAt: l.now(),
	}

	l.lock.Lock()
	l.tenants[p.port] = t
	l.lock.Unlock()

	p.logger.Info(
		"tenant loaded",
		zap.String("scope", t.Scope),
		zap.Int("routes", t.Routes),
		zap.Int("optedOut", t.OptedOut),
		zap.Int("failures", t.Failures),
	)

	l.dispatch(Event{Package: p.source, Port: p.port, Duration: l.now().Sub(p.start), Tenant: &t})
}

func (l *Loader) failed(logger *zap.Logger, start time.Time, path string, port int, err error) error {
	logger.Error("unable to load tenant", zap.Error(err))
	l.dispatch(Event{Package: path, Port: port, Duration: l.now().Sub(start), Err: err})
	return err
}

func (l *Loader) dispatch(e Event) {
	for _, f := range l.observers {
		f(e)
	}
}
