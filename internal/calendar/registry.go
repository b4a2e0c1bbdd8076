package calendar

import "fmt"

// Registry maps each calendar kind to its converter. The default registry is
// built once by NewRegistry and never mutated afterwards; Register exists
// only for embedders wiring additional systems at startup, under a
// single-owner discipline.
type Registry struct {
	converters map[Kind]Converter
}

// NewRegistry builds the registry with all seventeen built-in converters.
func NewRegistry() *Registry {
	r := &Registry{converters: make(map[Kind]Converter, int(numKinds))}

	r.Register(Gregorian, &gregorianConverter{})
	r.Register(Julian, &julianConverter{})
	r.Register(Islamic, &islamicConverter{})
	r.Register(Hebrew, newHebrewConverter())
	r.Register(Persian, &persianConverter{})
	r.Register(Chinese, &chineseConverter{})
	r.Register(Ethiopian, newEthiopianConverter())
	r.Register(Coptic, newCopticConverter())
	r.Register(IndianSaka, &indianSakaConverter{})
	r.Register(Bahai, &bahaiConverter{})
	r.Register(ThaiBuddhist, &thaiBuddhistConverter{})
	r.Register(MayanTzolkin, &tzolkinConverter{})
	r.Register(MayanHaab, &haabConverter{})
	r.Register(MayanLongCount, &longCountConverter{})
	r.Register(Cherokee, &cherokeeConverter{})
	r.Register(Iroquois, &iroquoisConverter{})
	r.Register(AztecXiuhpohualli, &aztecConverter{})

	return r
}

// Register wires a converter for a kind. Intended for startup wiring only;
// the registry is not safe for concurrent mutation.
func (r *Registry) Register(kind Kind, conv Converter) {
	r.converters[kind] = conv
}

// Converter returns the converter for a kind, or ErrConverterNotFound for an
// unregistered kind.
func (r *Registry) Converter(kind Kind) (Converter, error) {
	conv, ok := r.converters[kind]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrConverterNotFound, kind)
	}
	return conv, nil
}

// Convert translates a date into the target calendar. Every cross-calendar
// path is the same two hops: source.ToJDN, then target.FromJDN.
func (r *Registry) Convert(d Date, target Kind) (Date, error) {
	src, err := r.Converter(d.Kind)
	if err != nil {
		return Date{}, fmt.Errorf("%w (source %s, target %s)", ErrConverterNotFound, d.Kind, target)
	}
	dst, err := r.Converter(target)
	if err != nil {
		return Date{}, fmt.Errorf("%w (source %s, target %s)", ErrConverterNotFound, d.Kind, target)
	}
	jdn, err := src.ToJDN(d.Year, d.Month, d.Day)
	if err != nil {
		return Date{}, err
	}
	return dst.FromJDN(jdn), nil
}

// Format renders a date through its owning converter.
func (r *Registry) Format(d Date, pattern string) (string, error) {
	conv, err := r.Converter(d.Kind)
	if err != nil {
		return "", err
	}
	return conv.Format(d, pattern), nil
}

// Parse interprets input in the grammar of the named calendar. It reports
// false on malformed input, mirroring the per-converter contract.
func (r *Registry) Parse(s string, kind Kind) (Date, bool) {
	conv, err := r.Converter(kind)
	if err != nil {
		return Date{}, false
	}
	return conv.Parse(s)
}

// Infos returns the static descriptors of every registered calendar, in
// kind declaration order.
func (r *Registry) Infos() []Info {
	out := make([]Info, 0, len(r.converters))
	for _, k := range Kinds() {
		if conv, ok := r.converters[k]; ok {
			out = append(out, conv.Info())
		}
	}
	return out
}
