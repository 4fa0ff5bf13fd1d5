package corpus

import (
	"fmt"

	"github.com/roach88/tckview/internal/cypher"
	"github.com/roach88/tckview/internal/scenario"
)

// Step kind names accepted in corpus files.
const (
	kindSetup             = "setup"
	kindParameters        = "parameters"
	kindRegisterProcedure = "register-procedure"
	kindMeasure           = "measure"
	kindExecute           = "execute"
	kindExpectResult      = "expect-result"
	kindSideEffects       = "side-effects"
	kindExpectError       = "expect-error"
)

func (sd *stepDoc) toStep() (scenario.Step, error) {
	switch sd.Kind {
	case kindSetup:
		return scenario.Setup{}, nil

	case kindParameters:
		params := make([]scenario.Param, len(sd.Params))
		seen := make(map[string]bool, len(sd.Params))
		for i, pd := range sd.Params {
			if pd.Name == "" {
				return nil, fmt.Errorf("params[%d]: name is required", i)
			}
			if seen[pd.Name] {
				return nil, fmt.Errorf("params[%d]: duplicate parameter %q", i, pd.Name)
			}
			seen[pd.Name] = true
			value, err := toValue(pd.Value)
			if err != nil {
				return nil, fmt.Errorf("params[%d]: %w", i, err)
			}
			params[i] = scenario.Param{Name: pd.Name, Value: value}
		}
		return scenario.Parameters{Params: params}, nil

	case kindRegisterProcedure:
		if sd.Signature == "" {
			return nil, fmt.Errorf("signature is required for %s", kindRegisterProcedure)
		}
		if sd.Values == nil {
			return nil, fmt.Errorf("values is required for %s", kindRegisterProcedure)
		}
		values, err := toRecords(sd.Values)
		if err != nil {
			return nil, err
		}
		return scenario.RegisterProcedure{Signature: sd.Signature, Values: values}, nil

	case kindMeasure:
		return scenario.Measure{}, nil

	case kindExecute:
		if sd.Query == "" {
			return nil, fmt.Errorf("query is required for %s", kindExecute)
		}
		role, ok := validRoles[sd.Role]
		if !ok {
			return nil, fmt.Errorf("unknown role %q: must be one of %s", sd.Role, roleNames())
		}
		return scenario.Execute{Query: sd.Query, Role: role}, nil

	case kindExpectResult:
		if sd.Records == nil {
			return nil, fmt.Errorf("records is required for %s", kindExpectResult)
		}
		expected, err := toRecords(sd.Records)
		if err != nil {
			return nil, err
		}
		return scenario.ExpectResult{Expected: expected, Sorted: sd.Sorted}, nil

	case kindSideEffects:
		counts := make(map[scenario.SideEffectKind]int, len(sd.Counts))
		for name, count := range sd.Counts {
			kind, err := toSideEffectKind(name)
			if err != nil {
				return nil, err
			}
			if count < 0 {
				return nil, fmt.Errorf("count for %s must be non-negative", name)
			}
			counts[kind] = count
		}
		return scenario.SideEffects{Counts: counts}, nil

	case kindExpectError:
		if sd.Type == "" {
			return nil, fmt.Errorf("type is required for %s", kindExpectError)
		}
		return scenario.ExpectError{Type: sd.Type, Phase: sd.Phase, Detail: sd.Detail}, nil

	case "":
		return nil, fmt.Errorf("kind is required")

	default:
		return nil, fmt.Errorf("unknown step kind %q", sd.Kind)
	}
}

func toRecords(rd *recordsDoc) (scenario.ValueRecords, error) {
	rows := make([]map[string]cypher.Value, len(rd.Rows))
	for i, rowDoc := range rd.Rows {
		row := make(map[string]cypher.Value, len(rowDoc))
		for column, raw := range rowDoc {
			value, err := toValue(raw)
			if err != nil {
				return scenario.ValueRecords{}, fmt.Errorf("rows[%d].%s: %w", i, column, err)
			}
			row[column] = value
		}
		rows[i] = row
	}
	return scenario.ValueRecords{Header: rd.Header, Rows: rows}, nil
}

func toSideEffectKind(name string) (scenario.SideEffectKind, error) {
	for _, kind := range scenario.SideEffectKinds {
		if string(kind) == name {
			return kind, nil
		}
	}
	return "", fmt.Errorf("unknown side-effect kind %q", name)
}

// toValue converts a decoded YAML value into a cypher.Value. Scalars map
// directly; sequences become lists and mappings become maps, recursively.
func toValue(raw any) (cypher.Value, error) {
	switch v := raw.(type) {
	case nil:
		return cypher.Null{}, nil
	case bool:
		return cypher.Bool(v), nil
	case int:
		return cypher.Int(v), nil
	case int64:
		return cypher.Int(v), nil
	case uint64:
		if v > 1<<63-1 {
			return nil, fmt.Errorf("integer %d overflows int64", v)
		}
		return cypher.Int(v), nil
	case float64:
		return cypher.Float(v), nil
	case string:
		return cypher.Str(v), nil
	case []any:
		list := make(cypher.List, len(v))
		for i, item := range v {
			value, err := toValue(item)
			if err != nil {
				return nil, err
			}
			list[i] = value
		}
		return list, nil
	case map[string]any:
		m := make(cypher.Map, len(v))
		for key, item := range v {
			value, err := toValue(item)
			if err != nil {
				return nil, err
			}
			m[key] = value
		}
		return m, nil
	default:
		return nil, fmt.Errorf("unsupported value type %T", raw)
	}
}
