// Copyright File Chooser Authors
// SPDX-License-Identifier: Apache-2.0

package engine

import (
	"context"
	"fmt"
	"log/slog"
	"maps"

	"github.com/leseb/filechooser/pkg/core/config"
	"github.com/leseb/filechooser/pkg/filestore"
	"github.com/leseb/filechooser/pkg/importer"
	"github.com/leseb/filechooser/pkg/picker"
	"github.com/leseb/filechooser/pkg/provider"
	"github.com/leseb/filechooser/pkg/typefilter"
	"github.com/leseb/filechooser/pkg/uttype"
)

// Setup is a Chooser together with the backends built for it.
type Setup struct {
	Chooser *Chooser
	Store   filestore.FileStore
	Types   *uttype.Registry
}

// FromConfig builds the storage and picker backends named in cfg and wires
// a Chooser over them. pickerParams override the picker section. Backend
// packages must be linked in with blank imports.
func FromConfig(ctx context.Context, cfg *config.Config, pickerParams provider.Params, logger *slog.Logger) (*Setup, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if !picker.Providers.Has(cfg.Picker.Type) {
		return nil, fmt.Errorf("create picker: unknown picker backend %q (available: %v)", cfg.Picker.Type, picker.Providers.Available())
	}
	types := TypeRegistry(cfg)

	store, err := filestore.Providers.New(ctx, cfg.Storage.Type, cfg.StorageParams())
	if err != nil {
		return nil, fmt.Errorf("create file store: %w", err)
	}

	params := provider.Params(cfg.PickerParams())
	maps.Copy(params, pickerParams)
	session, err := picker.Providers.New(ctx, cfg.Picker.Type, params)
	if err != nil {
		store.Close(ctx)
		return nil, fmt.Errorf("create picker: %w", err)
	}

	im := importer.New(importer.Options{
		Store:       store,
		Types:       types,
		Coordinator: &importer.FileCoordinator{LockTimeout: cfg.Import.LockTimeout},
		KeepSource:  cfg.Import.Mode == config.ImportModeCopy,
		Logger:      logger,
	})

	chooser, err := New(Options{
		Picker:    session,
		Importer:  im,
		Resolver:  typefilter.NewResolver(types),
		OnFailure: cfg.Import.OnFailure,
		Logger:    logger,
	})
	if err != nil {
		store.Close(ctx)
		return nil, err
	}

	return &Setup{Chooser: chooser, Store: store, Types: types}, nil
}

// Close waits for in-flight requests and releases the backends.
func (s *Setup) Close(ctx context.Context) error {
	s.Chooser.Wait()
	return s.Store.Close(ctx)
}

// TypeRegistry returns the builtin types extended with cfg's declarations.
func TypeRegistry(cfg *config.Config) *uttype.Registry {
	types := uttype.Builtin()
	for _, d := range cfg.Types {
		types.Declare(uttype.Type{
			Identifier: d.Identifier,
			MIMETypes:  d.MIMETypes,
			Extensions: d.Extensions,
			ConformsTo: d.ConformsTo,
		})
	}
	return types
}
