package model

import (
	"archive/zip"
	"encoding"
	"encoding/gob"
	"io"

	"go-ml.dev/pkg/iokit"
	"go-ml.dev/pkg/zorros"
	"golang.org/x/xerrors"
)

// ErrCorruptBundle is returned when a persisted bundle does not match the
// expected shape.
var ErrCorruptBundle = xerrors.New("corrupt model bundle")

// FormatVersion gates the persisted bundle layout.
const FormatVersion = 1

const (
	manifestEntry = "manifest"
	modelEntry    = "model"
	featuresEntry = "scale.features"
	targetEntry   = "scale.target"
)

type manifest struct {
	FormatVersion int
	Backend       string
	Inputs        int
	Config        Config
}

/*
Memorize writes a trained bundle as a single zip artifact. The write goes
through the output's commit protocol, so an aborted write leaves no partial
file behind.
*/
func Memorize(output iokit.Output, b *Bundle) error {
	if !b.Complete() {
		return xerrors.Errorf("memorize: %w", ErrNotTrained)
	}
	marshaler, ok := b.Net.(encoding.BinaryMarshaler)
	if !ok {
		return zorros.Errorf("memorize: regressor `%T` is not serializable", b.Net)
	}
	weights, err := marshaler.MarshalBinary()
	if err != nil {
		return zorros.Trace(err)
	}

	wh, err := output.Create()
	if err != nil {
		return zorros.Trace(err)
	}
	defer wh.End()

	zw := zip.NewWriter(wh)
	mlp, _ := b.Net.(*MLP)
	mf := manifest{
		FormatVersion: FormatVersion,
		Backend:       "go-deep",
		Inputs:        b.Features.Columns(),
	}
	if mlp != nil {
		mf.Config = mlp.Config
	}
	if err = writeGob(zw, manifestEntry, mf); err != nil {
		return zorros.Trace(err)
	}
	if err = writeRaw(zw, modelEntry, weights); err != nil {
		return zorros.Trace(err)
	}
	if err = writeGob(zw, featuresEntry, b.Features); err != nil {
		return zorros.Trace(err)
	}
	if err = writeGob(zw, targetEntry, b.Target); err != nil {
		return zorros.Trace(err)
	}
	if err = zw.Close(); err != nil {
		return zorros.Trace(err)
	}
	return wh.Commit()
}

/*
Lookup reads a bundle persisted by Memorize. Structural mismatches, missing
entries and format-version drift all surface as ErrCorruptBundle before any
weight deserialization happens.
*/
func Lookup(path string) (*Bundle, error) {
	zr, err := zip.OpenReader(path)
	if err != nil {
		return nil, xerrors.Errorf("%s: %v: %w", path, err, ErrCorruptBundle)
	}
	defer zr.Close()

	entries := map[string]*zip.File{}
	for _, f := range zr.File {
		entries[f.Name] = f
	}
	for _, name := range []string{manifestEntry, modelEntry, featuresEntry, targetEntry} {
		if _, ok := entries[name]; !ok {
			return nil, xerrors.Errorf("%s: missing `%s` entry: %w", path, name, ErrCorruptBundle)
		}
	}

	var mf manifest
	if err = readGob(entries[manifestEntry], &mf); err != nil {
		return nil, xerrors.Errorf("%s: bad manifest: %v: %w", path, err, ErrCorruptBundle)
	}
	if mf.FormatVersion != FormatVersion {
		return nil, xerrors.Errorf("%s: format version %d, want %d: %w",
			path, mf.FormatVersion, FormatVersion, ErrCorruptBundle)
	}

	b := &Bundle{}
	if err = readGob(entries[featuresEntry], &b.Features); err != nil {
		return nil, xerrors.Errorf("%s: bad feature scaling: %v: %w", path, err, ErrCorruptBundle)
	}
	if err = readGob(entries[targetEntry], &b.Target); err != nil {
		return nil, xerrors.Errorf("%s: bad target scaling: %v: %w", path, err, ErrCorruptBundle)
	}
	if !b.Features.Fitted() || !b.Target.Fitted() || b.Features.Columns() != mf.Inputs {
		return nil, xerrors.Errorf("%s: scaling does not match manifest: %w", path, ErrCorruptBundle)
	}

	weights, err := readRaw(entries[modelEntry])
	if err != nil {
		return nil, xerrors.Errorf("%s: bad model entry: %v: %w", path, err, ErrCorruptBundle)
	}
	mlp := NewMLP(mf.Config)
	if err = mlp.UnmarshalBinary(weights); err != nil {
		return nil, xerrors.Errorf("%s: bad model weights: %v: %w", path, err, ErrCorruptBundle)
	}
	b.Net = mlp
	return b, nil
}

func writeGob(zw *zip.Writer, name string, v interface{}) error {
	w, err := zw.Create(name)
	if err != nil {
		return err
	}
	return gob.NewEncoder(w).Encode(v)
}

func writeRaw(zw *zip.Writer, name string, data []byte) error {
	w, err := zw.Create(name)
	if err != nil {
		return err
	}
	_, err = w.Write(data)
	return err
}

func readGob(f *zip.File, v interface{}) error {
	r, err := f.Open()
	if err != nil {
		return err
	}
	defer r.Close()
	return gob.NewDecoder(r).Decode(v)
}

func readRaw(f *zip.File) ([]byte, error) {
	r, err := f.Open()
	if err != nil {
		return nil, err
	}
	defer r.Close()
	return io.ReadAll(r)
}
