// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package installer brings the events module from absent to fully
// configured: schema, registry entries, rights, settings, extras, one
// default category and page per language, optional example content and
// the interface translations. Installation is an ordered list of steps
// that stops at the first failure.
package installer

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"eventscms/internal/config"
	"eventscms/internal/models"
)

// SchemaApplier applies the module's table definitions. Applying an
// already-applied schema must be a no-op.
type SchemaApplier interface {
	ApplySchema(ctx context.Context) error
}

// ModuleRegistry records installed modules, group rights and search registration.
type ModuleRegistry interface {
	RegisterModule(ctx context.Context, name, description string) error
	GrantModuleRights(ctx context.Context, groupID int, module string) error
	GrantActionRights(ctx context.Context, groupID int, module, action string) error
	MarkSearchable(ctx context.Context, module string) error
}

// SettingsStore reads and writes module settings. Set overwrites,
// SetDefault keeps an existing value.
type SettingsStore interface {
	Get(ctx context.Context, key models.SettingKey, dst any) (bool, error)
	Set(ctx context.Context, key models.SettingKey, value any) error
	SetDefault(ctx context.Context, key models.SettingKey, value any) error
}

// ExtraRegistry registers blocks and widgets with the page builder.
type ExtraRegistry interface {
	RegisterExtra(ctx context.Context, e models.Extra) (int64, error)
}

// LocaleStore stores translations. inserted is false when the
// translation already existed and was left untouched.
type LocaleStore interface {
	InsertLocale(ctx context.Context, l models.LocaleString) (inserted bool, err error)
}

// PageBuilder creates site pages holding a module block.
type PageBuilder interface {
	PageExistsForExtra(ctx context.Context, extraID int64, language string) (bool, error)
	InsertPage(ctx context.Context, p models.Page, extraID int64) (int64, error)
}

// CategoryStore reads and creates event categories.
type CategoryStore interface {
	FirstCategory(ctx context.Context, language string) (id int64, found bool, err error)
	CategoryExists(ctx context.Context, language string, id int64) (bool, error)
	CreateCategory(ctx context.Context, c models.Category) (int64, error)
}

// ContentStore writes example events, comments and their meta rows.
type ContentStore interface {
	CountEvents(ctx context.Context, language string) (int, error)
	InsertEvent(ctx context.Context, e models.Event) error
	InsertComment(ctx context.Context, c models.Comment) (int64, error)
	InsertMeta(ctx context.Context, m models.Meta) (int64, error)
}

// UserDirectory resolves the user that owns installer-created content.
type UserDirectory interface {
	DefaultUserID(ctx context.Context) (int64, error)
}

// Deps are the collaborators an Installer writes through.
type Deps struct {
	Schema     SchemaApplier
	Modules    ModuleRegistry
	Settings   SettingsStore
	Extras     ExtraRegistry
	Locale     LocaleStore
	Pages      PageBuilder
	Categories CategoryStore
	Content    ContentStore
	Users      UserDirectory
}

// Options are chosen by the operator for a single run.
type Options struct {
	// Languages are the site languages to provision. Empty means none;
	// the locale catalog is inserted regardless.
	Languages []string
	// InstallExample seeds example events into languages without events.
	InstallExample bool
}

// Result summarises what a run changed.
type Result struct {
	RunID             uuid.UUID
	Languages         []string
	CategoriesCreated int
	DefaultsRepaired  int
	PagesCreated      int
	ExamplesSeeded    int
	LocaleInserted    int
	LocaleSkipped     int

	// SeededLanguages lists the languages example events were added to.
	SeededLanguages []string
}

// Summary returns the counters keyed by name, for journaling.
func (r *Result) Summary() map[string]int {
	return map[string]int{
		"categories_created": r.CategoriesCreated,
		"defaults_repaired":  r.DefaultsRepaired,
		"pages_created":      r.PagesCreated,
		"examples_seeded":    r.ExamplesSeeded,
		"locale_inserted":    r.LocaleInserted,
		"locale_skipped":     r.LocaleSkipped,
	}
}

// StepError reports the step an installation stopped at.
type StepError struct {
	Step string
	Err  error
}

func (e *StepError) Error() string {
	return fmt.Sprintf("install %s: step %s: %v", ModuleName, e.Step, e.Err)
}

func (e *StepError) Unwrap() error { return e.Err }

// Installer installs the events module.
type Installer struct {
	deps         Deps
	adminGroupID int
	samples      fs.FS
	catalog      func() ([]models.LocaleString, error)
	now          func() time.Time
	tracer       trace.Tracer
}

// Option configures an Installer.
type Option func(*Installer)

// WithAdminGroup sets the group that receives module and action rights.
func WithAdminGroup(id int) Option {
	return func(in *Installer) { in.adminGroupID = id }
}

// WithClock replaces time.Now for example content timestamps.
func WithClock(now func() time.Time) Option {
	return func(in *Installer) { in.now = now }
}

// WithSamples replaces the embedded example texts. fsys must contain
// data/<lang>/sample1.md files.
func WithSamples(fsys fs.FS) Option {
	return func(in *Installer) { in.samples = fsys }
}

// WithLocaleCatalog replaces the embedded translation catalog.
func WithLocaleCatalog(catalog []models.LocaleString) Option {
	return func(in *Installer) {
		in.catalog = func() ([]models.LocaleString, error) { return catalog, nil }
	}
}

// WithTracerProvider replaces the global tracer provider.
func WithTracerProvider(tp trace.TracerProvider) Option {
	return func(in *Installer) { in.tracer = tp.Tracer(tracerName) }
}

const tracerName = "eventscms/internal/installer"

// New creates an Installer writing through deps.
func New(deps Deps, opts ...Option) *Installer {
	in := &Installer{
		deps:         deps,
		adminGroupID: 1,
		samples:      dataFS,
		catalog:      LocaleCatalog,
		now:          time.Now,
		tracer:       otel.Tracer(tracerName),
	}
	for _, opt := range opts {
		opt(in)
	}
	return in
}

// step is one independently testable part of an installation.
type step struct {
	name string
	run  func(ctx context.Context, r *run) error
}

// run carries the state shared by the steps of one installation.
type run struct {
	opts         Options
	result       *Result
	blockExtraID int64
}

// steps returns the installation steps in execution order.
func (in *Installer) steps() []step {
	return []step{
		{"schema", in.applySchema},
		{"module", in.registerModule},
		{"search", in.makeSearchable},
		{"settings", in.writeGlobalSettings},
		{"extras", in.registerExtras},
		{"languages", in.provisionLanguages},
		{"locale", in.insertLocale},
	}
}

// Install runs every step in order and stops at the first failure,
// returned as a *StepError. Steps that completed are not rolled back.
//
// Install is not safe to run concurrently with itself: the default
// category check and write are not locked, so parallel runs on the same
// language can create two default categories.
func (in *Installer) Install(ctx context.Context, opts Options) (*Result, error) {
	langs, err := validLanguages(opts.Languages)
	if err != nil {
		return nil, err
	}
	opts.Languages = langs

	r := &run{
		opts: opts,
		result: &Result{
			RunID:     uuid.New(),
			Languages: langs,
		},
	}

	ctx, span := in.tracer.Start(ctx, "install "+ModuleName, trace.WithAttributes(
		attribute.String("install.run_id", r.result.RunID.String()),
		attribute.StringSlice("install.languages", langs),
		attribute.Bool("install.example_data", opts.InstallExample),
	))
	defer span.End()

	slog.Info("installing module",
		"module", ModuleName,
		"run_id", r.result.RunID,
		"languages", langs,
		"example_data", opts.InstallExample,
	)

	for _, s := range in.steps() {
		err := ctx.Err()
		if err == nil {
			err = in.runStep(ctx, s, r)
		}
		if err != nil {
			slog.Error("install step failed", "module", ModuleName, "step", s.name, "error", err)
			span.RecordError(err)
			span.SetStatus(codes.Error, "step "+s.name+" failed")
			return r.result, &StepError{Step: s.name, Err: err}
		}
		slog.Info("install step done", "module", ModuleName, "step", s.name)
	}

	for name, n := range r.result.Summary() {
		span.SetAttributes(attribute.Int("install."+name, n))
	}
	slog.Info("module installed", "module", ModuleName, "run_id", r.result.RunID, "summary", r.result.Summary())
	return r.result, nil
}

// runStep runs a single step in its own span.
func (in *Installer) runStep(ctx context.Context, s step, r *run) error {
	ctx, span := in.tracer.Start(ctx, "step "+s.name)
	defer span.End()
	if err := s.run(ctx, r); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return err
	}
	return nil
}

// ErrInvalidLanguage is returned for a language that is not a valid BCP 47 tag.
var ErrInvalidLanguage = errors.New("invalid language")

// validLanguages rejects malformed tags before anything is written and
// canonicalises the rest the way the configuration does, so settings keys
// match the languages the widget is served in.
func validLanguages(in []string) ([]string, error) {
	langs, err := config.NormalizeLanguages(in)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidLanguage, err)
	}
	return langs, nil
}

func (in *Installer) applySchema(ctx context.Context, _ *run) error {
	return in.deps.Schema.ApplySchema(ctx)
}

func (in *Installer) registerModule(ctx context.Context, _ *run) error {
	if err := in.deps.Modules.RegisterModule(ctx, ModuleName, ModuleDescription); err != nil {
		return err
	}
	if err := in.deps.Modules.GrantModuleRights(ctx, in.adminGroupID, ModuleName); err != nil {
		return err
	}
	for _, action := range Actions {
		if err := in.deps.Modules.GrantActionRights(ctx, in.adminGroupID, ModuleName, action); err != nil {
			return err
		}
	}
	return nil
}

func (in *Installer) makeSearchable(ctx context.Context, _ *run) error {
	return in.deps.Modules.MarkSearchable(ctx, ModuleName)
}

// writeGlobalSettings resets every global setting to its default.
func (in *Installer) writeGlobalSettings(ctx context.Context, _ *run) error {
	for _, s := range GlobalSettings {
		if err := in.deps.Settings.Set(ctx, models.GlobalSetting(ModuleName, s.Name), s.Value); err != nil {
			return err
		}
	}
	return nil
}

func (in *Installer) registerExtras(ctx context.Context, r *run) error {
	for _, e := range Extras {
		id, err := in.deps.Extras.RegisterExtra(ctx, e)
		if err != nil {
			return err
		}
		if e.Type == models.ExtraTypeBlock && e.Name == BlockName {
			r.blockExtraID = id
		}
	}
	return nil
}

func (in *Installer) provisionLanguages(ctx context.Context, r *run) error {
	for _, lang := range r.opts.Languages {
		if err := in.provisionLanguage(ctx, r, lang); err != nil {
			return fmt.Errorf("language %s: %w", lang, err)
		}
		slog.Info("language provisioned", "module", ModuleName, "language", lang)
	}
	return nil
}

func (in *Installer) provisionLanguage(ctx context.Context, r *run, lang string) error {
	outcome, err := in.ensureDefaultCategory(ctx, lang)
	if err != nil {
		return err
	}
	switch outcome {
	case categoryCreated:
		r.result.CategoriesCreated++
	case categoryRepaired:
		r.result.DefaultsRepaired++
	}

	for _, s := range LanguageSettings {
		if err := in.deps.Settings.SetDefault(ctx, models.LanguageSetting(ModuleName, s.Name, lang), s.Value); err != nil {
			return err
		}
	}

	created, err := in.ensurePage(ctx, r.blockExtraID, lang)
	if err != nil {
		return err
	}
	if created {
		r.result.PagesCreated++
	}

	if r.opts.InstallExample {
		seeded, err := in.installExampleData(ctx, lang)
		if err != nil {
			return fmt.Errorf("example data: %w", err)
		}
		if seeded {
			r.result.ExamplesSeeded++
			r.result.SeededLanguages = append(r.result.SeededLanguages, lang)
		}
	}
	return nil
}

// ensurePage creates the events page of a language unless a page
// already shows the events block.
func (in *Installer) ensurePage(ctx context.Context, extraID int64, lang string) (bool, error) {
	exists, err := in.deps.Pages.PageExistsForExtra(ctx, extraID, lang)
	if err != nil {
		return false, err
	}
	if exists {
		slog.Debug("events page exists, skipping", "language", lang, "extra_id", extraID)
		return false, nil
	}
	id, err := in.deps.Pages.InsertPage(ctx, models.Page{Title: PageTitle, Language: lang}, extraID)
	if err != nil {
		return false, fmt.Errorf("insert page: %w", err)
	}
	slog.Info("events page created", "language", lang, "page_id", id)
	return true, nil
}

func (in *Installer) insertLocale(ctx context.Context, r *run) error {
	catalog, err := in.catalog()
	if err != nil {
		return err
	}
	for _, l := range catalog {
		inserted, err := in.deps.Locale.InsertLocale(ctx, l)
		if err != nil {
			return err
		}
		if inserted {
			r.result.LocaleInserted++
		} else {
			r.result.LocaleSkipped++
		}
	}
	if r.result.LocaleSkipped > 0 {
		slog.Debug("existing translations kept", "module", ModuleName, "count", r.result.LocaleSkipped)
	}
	return nil
}
