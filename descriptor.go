package bip

import (
	"encoding/binary"
	"fmt"
	"strings"

	"github.com/kr/logfmt"
	"github.com/mitchellh/mapstructure"
	"github.com/pkg/errors"
	"github.com/spf13/afero"
	"gopkg.in/yaml.v3"

	"github.com/scigolib/bip/internal/backend"
	"github.com/scigolib/bip/internal/compose"
	"github.com/scigolib/bip/internal/core"
)

// Descriptor declares the on-disk layout of a BIP raster and how it is
// presented to callers. Rows and Cols are the raw (pre-symmetry) shape.
type Descriptor struct {
	Rows   int64
	Cols   int64
	Type   DataType
	Offset int64 // byte offset of the first sample
	// Bands is the declared number of bands per pixel. Any complex mode
	// stores twice as many raw bands. Zero means one band.
	Bands int

	Symmetry Symmetry
	Complex  ComplexMode

	// ReadTransform, WriteTransform and Domain configure ComplexTransform.
	ReadTransform  TransformFunc
	WriteTransform TransformFunc
	Domain         Kind

	Backend BackendKind
}

// withDefaults fills zero values that have a natural default.
func (d Descriptor) withDefaults() Descriptor {
	if d.Bands == 0 {
		d.Bands = 1
	}
	if d.Type.Order == nil {
		d.Type.Order = binary.LittleEndian
	}
	return d
}

// LogicalShape returns the caller-visible (rows, cols) after symmetry.
func (d Descriptor) LogicalShape() (rows, cols int64) {
	return d.Symmetry.LogicalShape(d.Rows, d.Cols)
}

// RawBands returns the number of bands stored per pixel on disk.
func (d Descriptor) RawBands() int {
	d = d.withDefaults()
	if d.Complex == ComplexNone {
		return d.Bands
	}
	return 2 * d.Bands
}

func (d Descriptor) composeConfig() compose.Config {
	return compose.Config{
		Mode:   d.Complex,
		Read:   d.ReadTransform,
		Write:  d.WriteTransform,
		Domain: d.Domain,
	}
}

// prepare validates d for one direction and derives the composer and the
// storage layout. Errors are not yet tagged as construction failures.
func (d Descriptor) prepare(dir compose.Direction) (*compose.Composer, backend.Layout, error) {
	if d.Rows < 0 || d.Cols < 0 {
		return nil, backend.Layout{}, fmt.Errorf("negative raw shape (%d, %d)", d.Rows, d.Cols)
	}
	if d.Offset < 0 {
		return nil, backend.Layout{}, fmt.Errorf("negative data offset %d", d.Offset)
	}
	comp, err := compose.New(d.composeConfig(), d.Type, d.Bands, dir)
	if err != nil {
		return nil, backend.Layout{}, err
	}
	l := backend.Layout{
		Offset:   d.Offset,
		Rows:     d.Rows,
		Cols:     d.Cols,
		ElemSize: int64(d.Type.Size() * comp.RawBands()),
	}
	if err := l.Validate(); err != nil {
		return nil, backend.Layout{}, err
	}
	return comp, l, nil
}

// descriptorFields is the flat, text-friendly form of a Descriptor used by
// descriptor files and inline key=value strings.
type descriptorFields struct {
	Rows      int64  `mapstructure:"rows" yaml:"rows"`
	Cols      int64  `mapstructure:"cols" yaml:"cols"`
	Type      string `mapstructure:"type" yaml:"type"`
	Order     string `mapstructure:"order" yaml:"order"`
	Offset    int64  `mapstructure:"offset" yaml:"offset"`
	Bands     int    `mapstructure:"bands" yaml:"bands"`
	FlipRows  bool   `mapstructure:"flip_rows" yaml:"flip_rows"`
	FlipCols  bool   `mapstructure:"flip_cols" yaml:"flip_cols"`
	Transpose bool   `mapstructure:"transpose" yaml:"transpose"`
	Complex   string `mapstructure:"complex" yaml:"complex"`
	Domain    string `mapstructure:"domain" yaml:"domain,omitempty"`
	Backend   string `mapstructure:"backend" yaml:"backend"`
}

func fieldsOf(d Descriptor) descriptorFields {
	f := descriptorFields{
		Rows:      d.Rows,
		Cols:      d.Cols,
		Offset:    d.Offset,
		Bands:     d.Bands,
		FlipRows:  d.Symmetry.FlipRows,
		FlipCols:  d.Symmetry.FlipCols,
		Transpose: d.Symmetry.Transpose,
		Complex:   d.Complex.String(),
		Backend:   d.Backend.String(),
	}
	if d.Type.Kind.Valid() {
		f.Type = d.Type.Kind.String()
		f.Order = "little"
		if d.Type.ByteOrder() == binary.BigEndian {
			f.Order = "big"
		}
	}
	if d.Domain.Valid() {
		f.Domain = d.Domain.String()
	}
	return f
}

// apply converts the text form onto base, keeping base's transform
// functions.
func (f descriptorFields) apply(base Descriptor) (Descriptor, error) {
	d := base
	d.Rows, d.Cols, d.Offset, d.Bands = f.Rows, f.Cols, f.Offset, f.Bands
	d.Symmetry = Symmetry{FlipRows: f.FlipRows, FlipCols: f.FlipCols, Transpose: f.Transpose}

	kind, err := core.ParseKind(f.Type)
	if err != nil {
		return Descriptor{}, err
	}
	order := f.Order
	if order == "" && strings.HasPrefix(strings.TrimSpace(f.Type), ">") {
		order = "big"
	}
	bo, err := core.ParseByteOrder(order)
	if err != nil {
		return Descriptor{}, err
	}
	d.Type = DataType{Kind: kind, Order: bo}

	if d.Complex, err = compose.ParseMode(strings.ToLower(f.Complex)); err != nil {
		return Descriptor{}, err
	}
	if f.Domain != "" {
		if d.Domain, err = core.ParseKind(f.Domain); err != nil {
			return Descriptor{}, err
		}
	}
	if d.Backend, err = parseBackend(f.Backend); err != nil {
		return Descriptor{}, err
	}
	return d, nil
}

func parseBackend(s string) (BackendKind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "auto":
		return BackendAuto, nil
	case "mapped", "mmap", "memmap":
		return BackendMapped, nil
	case "manual":
		return BackendManual, nil
	default:
		return BackendAuto, fmt.Errorf("unknown backend %q", s)
	}
}

// decodeFields decodes loosely typed values onto f. Unknown keys fail.
func decodeFields(m map[string]interface{}, f *descriptorFields) error {
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		WeaklyTypedInput: true,
		ErrorUnused:      true,
		Result:           f,
	})
	if err != nil {
		return err
	}
	return dec.Decode(m)
}

// LoadDescriptor reads a YAML or JSON descriptor file from the local
// filesystem.
func LoadDescriptor(name string) (Descriptor, error) {
	return LoadDescriptorFS(afero.NewOsFs(), name)
}

// LoadDescriptorFS reads a YAML or JSON descriptor file from fs.
//
// Example:
//
//	rows: 1024
//	cols: 512
//	type: <f4
//	offset: 0
//	bands: 1
//	complex: adjacent
//	transpose: true
func LoadDescriptorFS(fs afero.Fs, name string) (Descriptor, error) {
	data, err := afero.ReadFile(fs, name)
	if err != nil {
		return Descriptor{}, errors.Wrapf(err, "could not read descriptor %s", name)
	}

	var m map[string]interface{}
	if err := yaml.Unmarshal(data, &m); err != nil {
		return Descriptor{}, errors.Wrapf(err, "could not parse descriptor %s", name)
	}

	var f descriptorFields
	if err := decodeFields(m, &f); err != nil {
		return Descriptor{}, errors.Wrapf(err, "invalid descriptor %s", name)
	}
	d, err := f.apply(Descriptor{})
	if err != nil {
		return Descriptor{}, errors.Wrapf(err, "invalid descriptor %s", name)
	}
	return d, nil
}

// SaveDescriptorFS writes d to fs as YAML. Transform functions are not
// representable and are dropped.
func SaveDescriptorFS(fs afero.Fs, name string, d Descriptor) error {
	data, err := yaml.Marshal(fieldsOf(d))
	if err != nil {
		return errors.Wrapf(err, "could not encode descriptor %s", name)
	}
	if err := afero.WriteFile(fs, name, data, 0o644); err != nil {
		return errors.Wrapf(err, "could not write descriptor %s", name)
	}
	return nil
}

// ParseDescriptor builds a descriptor from a logfmt line such as
//
//	rows=100 cols=200 type=int16 offset=512 transpose=true
func ParseDescriptor(line string) (Descriptor, error) {
	return Descriptor{}.Override(line)
}

// Override returns a copy of d with the keys of the logfmt line replaced.
// Keys absent from the line keep their current value.
func (d Descriptor) Override(line string) (Descriptor, error) {
	kv := make(logfmtFields)
	if err := logfmt.Unmarshal([]byte(line), kv); err != nil {
		return Descriptor{}, errors.Wrapf(err, "could not parse descriptor %q", line)
	}

	f := fieldsOf(d)
	if err := decodeFields(kv.values(), &f); err != nil {
		return Descriptor{}, errors.Wrapf(err, "invalid descriptor %q", line)
	}
	out, err := f.apply(d)
	if err != nil {
		return Descriptor{}, errors.Wrapf(err, "invalid descriptor %q", line)
	}
	return out, nil
}

// logfmtFields collects logfmt pairs. A bare key reads as "true".
type logfmtFields map[string]string

func (m logfmtFields) HandleLogfmt(key, val []byte) error {
	v := string(val)
	if len(val) == 0 {
		v = "true"
	}
	m[strings.ToLower(string(key))] = v
	return nil
}

func (m logfmtFields) values() map[string]interface{} {
	out := make(map[string]interface{}, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}
