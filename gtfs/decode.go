package gtfs

import (
	"encoding"
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"
)

// ErrUnsupportedField is returned when a record type has a field the decoder
// has no rule for.
var ErrUnsupportedField = errors.New("unsupported field type")

// CSVUnmarshaler is implemented by caller types that decode themselves from a
// single cell. It matches the gocsv TypeUnmarshaller interface.
type CSVUnmarshaler interface {
	UnmarshalCSV(string) error
}

type valueDecoder func(raw string, dst reflect.Value) error

type fieldPlan struct {
	column   string
	index    []int
	optional bool
	pointer  bool
	kind     string
	decode   valueDecoder
}

// recordPlan is the list of columns a record type reads, in field order.
type recordPlan struct {
	typ    reflect.Type
	fields []fieldPlan
}

var plans sync.Map // reflect.Type -> *recordPlan

func planOf[T any]() (*recordPlan, error) {
	return planFor(reflect.TypeOf((*T)(nil)).Elem())
}

func planFor(t reflect.Type) (*recordPlan, error) {
	if p, ok := plans.Load(t); ok {
		return p.(*recordPlan), nil
	}
	if t.Kind() != reflect.Struct {
		return nil, fmt.Errorf("%w: %s is not a struct", ErrUnsupportedField, t)
	}
	p := &recordPlan{typ: t}
	if err := p.collect(t, nil); err != nil {
		return nil, err
	}
	actual, _ := plans.LoadOrStore(t, p)
	return actual.(*recordPlan), nil
}

func (p *recordPlan) collect(t reflect.Type, parent []int) error {
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		index := append(append([]int{}, parent...), i)

		tag, hasTag := f.Tag.Lookup("csv")
		if tag == "-" {
			continue
		}
		if f.Anonymous && !hasTag && f.Type.Kind() == reflect.Struct {
			if err := p.collect(f.Type, index); err != nil {
				return err
			}
			continue
		}
		if !f.IsExported() {
			continue
		}

		name, opts, _ := strings.Cut(tag, ",")
		if name == "" {
			name = strings.ToLower(f.Name)
		}

		ft := f.Type
		pointer := ft.Kind() == reflect.Pointer
		if pointer {
			ft = ft.Elem()
		}
		kind, dec := decoderFor(ft)
		if dec == nil {
			return fmt.Errorf("%w: %s.%s (%s)", ErrUnsupportedField, t.Name(), f.Name, f.Type)
		}
		p.fields = append(p.fields, fieldPlan{
			column:   name,
			index:    index,
			optional: pointer || strings.Contains(opts, "omitempty"),
			pointer:  pointer,
			kind:     kind,
			decode:   dec,
		})
	}
	return nil
}

var (
	csvUnmarshalerType  = reflect.TypeOf((*CSVUnmarshaler)(nil)).Elem()
	textUnmarshalerType = reflect.TypeOf((*encoding.TextUnmarshaler)(nil)).Elem()

	dateType        = reflect.TypeOf(Date{})
	serviceTimeType = reflect.TypeOf(ServiceTime(0))
	colorType       = reflect.TypeOf(Color{})
	latitudeType    = reflect.TypeOf(Latitude(0))
	longitudeType   = reflect.TypeOf(Longitude(0))
	flagType        = reflect.TypeOf(Flag(false))
)

// decoderFor picks the value decoder for a field type. Caller-defined
// unmarshalers take precedence over the built-in kinds.
func decoderFor(t reflect.Type) (string, valueDecoder) {
	if reflect.PointerTo(t).Implements(csvUnmarshalerType) {
		return "custom", func(raw string, dst reflect.Value) error {
			return dst.Addr().Interface().(CSVUnmarshaler).UnmarshalCSV(raw)
		}
	}

	switch t {
	case dateType:
		return "date", typed(DecodeDate)
	case serviceTimeType:
		return "time", typed(DecodeServiceTime)
	case colorType:
		return "color", typed(DecodeColor)
	case latitudeType:
		return "latitude", typed(DecodeLatitude)
	case longitudeType:
		return "longitude", typed(DecodeLongitude)
	case flagType:
		return "flag", typed(DecodeFlag)
	}

	if reflect.PointerTo(t).Implements(textUnmarshalerType) {
		return "text", func(raw string, dst reflect.Value) error {
			return dst.Addr().Interface().(encoding.TextUnmarshaler).UnmarshalText([]byte(raw))
		}
	}

	switch t.Kind() {
	case reflect.String:
		return "string", func(raw string, dst reflect.Value) error {
			dst.SetString(raw)
			return nil
		}
	case reflect.Bool:
		return "flag", func(raw string, dst reflect.Value) error {
			v, err := DecodeFlag(raw)
			if err != nil {
				return err
			}
			dst.SetBool(bool(v))
			return nil
		}
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		kind := "integer"
		if _, isEnum := t.MethodByName("Known"); isEnum {
			kind = "enum"
		}
		return kind, func(raw string, dst reflect.Value) error {
			v, err := decodeInt(raw, t.Bits())
			if err != nil {
				return err
			}
			dst.SetInt(v)
			return nil
		}
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return "integer", func(raw string, dst reflect.Value) error {
			v, err := decodeInt(raw, 64)
			if err != nil {
				return err
			}
			if v < 0 || dst.OverflowUint(uint64(v)) {
				return decodeErr(ErrOutOfRange, raw)
			}
			dst.SetUint(uint64(v))
			return nil
		}
	case reflect.Float32, reflect.Float64:
		return "float", func(raw string, dst reflect.Value) error {
			v, err := decodeFloat(raw)
			if err != nil {
				return err
			}
			if dst.OverflowFloat(v) {
				return decodeErr(ErrOutOfRange, raw)
			}
			dst.SetFloat(v)
			return nil
		}
	}
	return "", nil
}

func typed[V any](decode func(string) (V, error)) valueDecoder {
	return func(raw string, dst reflect.Value) error {
		v, err := decode(raw)
		if err != nil {
			return err
		}
		dst.Set(reflect.ValueOf(v))
		return nil
	}
}

// missingColumn returns the first required column the header lacks.
func (p *recordPlan) missingColumn(h *Header) (string, bool) {
	for _, f := range p.fields {
		if !f.optional && !h.Has(f.column) {
			return f.column, true
		}
	}
	return "", false
}

// decodeInto fills dst from row, stopping at the first column that fails.
// Registry files and caller types go through the same path.
func (p *recordPlan) decodeInto(row RawRow, dst reflect.Value) (string, error) {
	if err := row.Err(); err != nil {
		return "", err
	}
	for _, f := range p.fields {
		raw, ok := row.Get(f.column)
		if !ok {
			if f.optional {
				continue
			}
			return f.column, ErrMissingField
		}

		field := dst.FieldByIndex(f.index)
		target := field
		if f.pointer {
			target = reflect.New(field.Type().Elem()).Elem()
		}
		if err := f.decode(raw, target); err != nil {
			return f.column, err
		}
		if f.pointer {
			field.Set(target.Addr())
		}
	}
	return "", nil
}

// DecodeRow decodes one raw row into a T. The error, if any, is a *RowError.
func DecodeRow[T any](file string, row RawRow) (T, error) {
	var rec T
	p, err := planOf[T]()
	if err != nil {
		return rec, err
	}
	if col, err := p.decodeInto(row, reflect.ValueOf(&rec).Elem()); err != nil {
		return rec, &RowError{File: file, Line: row.Line, Column: col, Err: err}
	}
	return rec, nil
}

// decodeRows drains rows into a slice of T, collecting row errors. The lines
// slice records the source line of each decoded record.
func decodeRows[T any](p *recordPlan, rows *Rows) ([]T, []int, RowErrors, error) {
	var (
		out   []T
		lines []int
		errs  RowErrors
	)
	for rows.Next() {
		row := rows.Row()
		var rec T
		if col, err := p.decodeInto(row, reflect.ValueOf(&rec).Elem()); err != nil {
			errs = append(errs, &RowError{File: rows.File(), Line: row.Line, Column: col, Err: err})
			continue
		}
		out = append(out, rec)
		lines = append(lines, row.Line)
	}
	return out, lines, errs, rows.Err()
}
