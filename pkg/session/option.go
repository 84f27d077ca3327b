package session

import (
	"strconv"

	"github.com/chess-backend/uci-arbiter/pkg/uci"
)

// OptionField is the discovered, validated shape of one engine option,
// keyed by name in a Session's option table. Exactly one of the
// concrete types below is stored per name.
type OptionField interface {
	isOptionField()
}

type CheckField struct{ Value bool }
type SpinField struct{ Value, Min, Max int64 }
type ComboField struct {
	Value  int // index into Labels
	Labels []string
}
type StringField struct{ Value string }

func (CheckField) isOptionField()  {}
func (SpinField) isOptionField()   {}
func (ComboField) isOptionField()  {}
func (StringField) isOptionField() {}

// OptionValue is what a caller supplies to SetOption; its variant must
// match the target field's variant.
type OptionValue interface {
	isOptionValue()
}

type BoolValue struct{ Value bool }
type IntValue struct{ Value int64 }
type StringValue struct{ Value string }

func (BoolValue) isOptionValue()   {}
func (IntValue) isOptionValue()    {}
func (StringValue) isOptionValue() {}

// buildField validates a raw option remark into an OptionField, per the
// handshake rules: a Spin with min > max or default outside [min,max]
// is InvalidOption; a Combo whose default isn't among its labels is
// InvalidOption; Check/String store their default verbatim; Button is
// acknowledged by the caller and never reaches here.
func buildField(name string, info uci.OptionInfo) (OptionField, error) {
	switch info.Type {
	case uci.OptionCheck:
		return CheckField{Value: info.Default == "true"}, nil
	case uci.OptionSpin:
		if info.Min > info.Max {
			return nil, &InvalidOptionError{Name: name, Reason: "min > max"}
		}
		v, err := strconv.ParseInt(info.Default, 10, 64)
		if err != nil {
			return nil, &InvalidOptionError{Name: name, Reason: "default is not an integer"}
		}
		if v < info.Min || v > info.Max {
			return nil, &InvalidOptionError{Name: name, Reason: "default outside [min, max]"}
		}
		return SpinField{Value: v, Min: info.Min, Max: info.Max}, nil
	case uci.OptionCombo:
		idx := -1
		for i, label := range info.Vars {
			if label == info.Default {
				idx = i
				break
			}
		}
		if idx < 0 {
			return nil, &InvalidOptionError{Name: name, Reason: "default not among labels"}
		}
		return ComboField{Value: idx, Labels: info.Vars}, nil
	case uci.OptionString:
		return StringField{Value: info.Default}, nil
	default:
		return nil, &InvalidOptionError{Name: name, Reason: "unsupported option type"}
	}
}

// valueText renders a field's current value to the wire-format text
// used in `setoption ... value <text>`.
func valueText(f OptionField) string {
	switch v := f.(type) {
	case CheckField:
		return strconv.FormatBool(v.Value)
	case SpinField:
		return strconv.FormatInt(v.Value, 10)
	case ComboField:
		return v.Labels[v.Value]
	case StringField:
		return v.Value
	default:
		return ""
	}
}

// applyValue validates value against f's variant and range, returning
// the updated field or a SetOptionError.
func applyValue(name string, f OptionField, value OptionValue) (OptionField, error) {
	switch field := f.(type) {
	case CheckField:
		bv, ok := value.(BoolValue)
		if !ok {
			return nil, &SetOptionError{Kind: TypeMismatch, Name: name}
		}
		return CheckField{Value: bv.Value}, nil
	case SpinField:
		iv, ok := value.(IntValue)
		if !ok {
			return nil, &SetOptionError{Kind: TypeMismatch, Name: name}
		}
		if iv.Value < field.Min || iv.Value > field.Max {
			return nil, &SetOptionError{Kind: OutOfRange, Name: name}
		}
		field.Value = iv.Value
		return field, nil
	case ComboField:
		iv, ok := value.(IntValue)
		if !ok {
			return nil, &SetOptionError{Kind: TypeMismatch, Name: name}
		}
		if iv.Value < 0 || int(iv.Value) >= len(field.Labels) {
			return nil, &SetOptionError{Kind: OutOfRange, Name: name}
		}
		field.Value = int(iv.Value)
		return field, nil
	case StringField:
		sv, ok := value.(StringValue)
		if !ok {
			return nil, &SetOptionError{Kind: TypeMismatch, Name: name}
		}
		field.Value = sv.Value
		return field, nil
	default:
		return nil, &SetOptionError{Kind: TypeMismatch, Name: name}
	}
}
