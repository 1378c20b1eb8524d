package main

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"time"

	jsoniter "github.com/json-iterator/go"
	"go.uber.org/zap"

	"github.com/suparena/healthprofile"
	"github.com/suparena/healthprofile/cleaner"
	"github.com/suparena/healthprofile/config"
	"github.com/suparena/healthprofile/datastore"
	"github.com/suparena/healthprofile/datastore/ddb"
	"github.com/suparena/healthprofile/jsonstream"
	"github.com/suparena/healthprofile/logging"
	"github.com/suparena/healthprofile/profile"
	"github.com/suparena/healthprofile/records"
	"github.com/suparena/healthprofile/registry"
	"github.com/suparena/healthprofile/sink"
	"github.com/suparena/healthprofile/storagemodels"
)

// exportTarget is written as the "type" of exported documents.
const exportTarget = "JsonSingleDocExportTarget"

// openStore connects to the configured store. Tests replace it.
var openStore = func(ctx context.Context, cfg *config.Config, log *zap.Logger) (datastore.SampleStore, error) {
	if err := cfg.ValidateStore(); err != nil {
		return nil, err
	}
	return ddb.NewDynamodbSampleStore(ctx,
		cfg.AWS.AccessKey, cfg.AWS.SecretKey, cfg.AWS.Region, cfg.AWS.Endpoint, cfg.AWS.Table,
		ddb.WithLogger(log),
	)
}

type app struct {
	cfg    *config.Config
	log    *zap.Logger
	reader *jsonstream.Reader
	out    io.Writer
}

func newApp(configPath string, out io.Writer) (*app, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}
	log, err := logging.New(cfg.Logging)
	if err != nil {
		return nil, err
	}
	return &app{
		cfg:    cfg,
		log:    log,
		reader: jsonstream.NewReader(jsonstream.WithBufferSize(cfg.Reader.BufferSize)),
		out:    out,
	}, nil
}

func (a *app) openProfile(path string) (*profile.Profile, error) {
	return profile.Open(path, profile.WithReader(a.reader), profile.WithLogger(a.log))
}

func (a *app) recordTypes() []string {
	if len(a.cfg.Sync.RecordTypes) > 0 {
		return a.cfg.Sync.RecordTypes
	}
	return registry.Default().Tags()
}

func (a *app) metadata(path string) error {
	p, err := a.openProfile(path)
	if err != nil {
		return err
	}
	defer p.Close()

	done := make(chan profile.Metadata, 1)
	if err := p.LoadMetadata(true, func(m profile.Metadata) { done <- m }); err != nil {
		return err
	}
	meta := <-done

	b, err := jsoniter.ConfigCompatibleWithStandardLibrary.MarshalIndent(meta, "", "  ")
	if err != nil {
		return fmt.Errorf("encode metadata: %w", err)
	}
	fmt.Fprintf(a.out, "%s\n%s\n", p, b)
	return nil
}

func (a *app) importFile(ctx context.Context, path string) error {
	p, err := a.openProfile(path)
	if err != nil {
		return err
	}
	defer p.Close()

	store, err := openStore(ctx, a.cfg, a.log)
	if err != nil {
		return err
	}

	var (
		batch   = make([]records.Record, 0, a.cfg.Sync.BatchSize)
		saved   int
		saveErr error
	)
	flush := func() {
		if len(batch) == 0 || saveErr != nil {
			return
		}
		if err := store.Save(ctx, a.cfg.Sync.Source, batch); err != nil {
			saveErr = fmt.Errorf("save records: %w", err)
			return
		}
		saved += len(batch)
		batch = batch[:0]
	}

	stats, err := p.ImportRecords(func(rec records.Record) {
		batch = append(batch, rec)
		if len(batch) >= a.cfg.Sync.BatchSize {
			flush()
		}
	})
	if err != nil {
		return err
	}
	flush()
	if saveErr != nil {
		return saveErr
	}

	fmt.Fprintf(a.out, "%s: %d saved, %d unknown, %d malformed\n", p.FileName(), saved, stats.Unknown, stats.Malformed)
	return nil
}

func (a *app) clean(ctx context.Context) error {
	store, err := openStore(ctx, a.cfg, a.log)
	if err != nil {
		return err
	}

	c := cleaner.New(store, a.cfg.Sync.Source,
		cleaner.WithPageSize(a.cfg.Sync.PageSize),
		cleaner.WithRecordTypes(a.recordTypes()...),
		cleaner.WithLogger(a.log),
	)
	c.Clean(ctx, func(msg string) { fmt.Fprintln(a.out, msg) })
	return ctx.Err()
}

func (a *app) export(ctx context.Context, dir, name string) error {
	fileName := profile.NormalizeName(name)
	if fileName == "" {
		return fmt.Errorf("export name %q is empty once normalized", name)
	}
	path := filepath.Join(dir, fileName+".json")

	store, err := openStore(ctx, a.cfg, a.log)
	if err != nil {
		return err
	}

	w, err := jsonstream.NewWriter(sink.NewFileSink(path), jsonstream.WithBufferSize(a.cfg.Reader.BufferSize))
	if err != nil {
		return err
	}
	defer w.Close()

	meta := []struct {
		key   string
		value any
	}{
		{profile.KeyProfileName, name},
		{profile.KeyCreationDate, time.Now().UnixMilli()},
		{profile.KeyVersion, healthprofile.Version},
		{profile.KeyType, exportTarget},
	}
	for _, m := range meta {
		if err := w.WriteMetadata(m.key, m.value); err != nil {
			return err
		}
	}

	for _, recordType := range a.recordTypes() {
		var anchor storagemodels.Anchor
		for {
			page, err := store.PagedQuery(ctx, recordType, a.cfg.Sync.Source, anchor, a.cfg.Sync.PageSize)
			if err != nil {
				return fmt.Errorf("export %s: %w", recordType, err)
			}
			if page.Len() == 0 {
				break
			}
			for _, stored := range page.Records {
				if stored.Record == nil {
					continue
				}
				if err := w.WriteRecord(stored.Record.Tag(), stored.Record.Fields()); err != nil {
					return err
				}
			}
			anchor = page.Anchor
		}
	}

	if err := w.Close(); err != nil {
		return err
	}
	fmt.Fprintf(a.out, "exported %d records to %s\n", w.Records(), path)
	return nil
}
