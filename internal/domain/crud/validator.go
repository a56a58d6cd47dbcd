package crud

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"

	"wapoki-api/internal/domain/catalog"
)

var validate = validator.New()

// BindRecord valida presencia de campos requeridos y devuelve los valores
// listos para ligar al statement, en el orden de campos del catálogo.
//
// El chequeo es deliberadamente grueso (presencia, no tipos), con una
// distinción explícita: en campos numéricos y FK el cero ES un valor
// presente; faltante es solo ausente o null. Campos FK y numéricos que
// llegan como texto se coaccionan antes de ligar, de forma uniforme.
// Cualquier falta se agrega en un único ErrMissingFields antes de tocar
// la base.
func BindRecord(e catalog.Entity, body map[string]any) ([]any, error) {
	var missing []string

	// Texto requerido: regla declarativa "required" sobre el mapa crudo
	// (string vacío o null cuentan como faltante).
	textData := map[string]any{}
	textRules := map[string]any{}
	for _, f := range e.Fields {
		if f.Kind != catalog.Text || !f.Required {
			continue
		}
		textRules[f.Name] = "required"
		if v, ok := body[f.Name]; ok {
			if s, isStr := v.(string); isStr {
				textData[f.Name] = strings.TrimSpace(s)
			} else {
				textData[f.Name] = v
			}
		}
	}
	for name := range validate.ValidateMap(textData, textRules) {
		missing = append(missing, name)
	}

	values := make([]any, 0, len(e.Fields))
	for _, f := range e.Fields {
		raw, present := body[f.Name]
		if raw == nil {
			present = false
		}

		switch f.Kind {
		case catalog.Text:
			if !present {
				values = append(values, nil)
				continue
			}
			if s, ok := raw.(string); ok {
				values = append(values, strings.TrimSpace(s))
			} else {
				values = append(values, raw)
			}

		case catalog.Numeric:
			if !present {
				if f.Required {
					missing = append(missing, f.Name)
				}
				values = append(values, nil)
				continue
			}
			n, err := coerceFloat(raw)
			if err != nil {
				missing = append(missing, f.Name)
				values = append(values, nil)
				continue
			}
			values = append(values, n)

		case catalog.ForeignKey:
			if !present {
				if f.Required {
					missing = append(missing, f.Name)
				}
				values = append(values, nil)
				continue
			}
			id, err := coerceInt(raw)
			if err != nil {
				missing = append(missing, f.Name)
				values = append(values, nil)
				continue
			}
			values = append(values, id)
		}
	}

	if len(missing) > 0 {
		sort.Strings(missing)
		return nil, fmt.Errorf("%w: %s", ErrMissingFields, strings.Join(missing, ", "))
	}
	return values, nil
}

func coerceFloat(v any) (float64, error) {
	switch n := v.(type) {
	case float64:
		return n, nil
	case int:
		return float64(n), nil
	case int64:
		return float64(n), nil
	case string:
		return strconv.ParseFloat(strings.TrimSpace(n), 64)
	default:
		return 0, fmt.Errorf("valor no numérico: %T", v)
	}
}

func coerceInt(v any) (int64, error) {
	switch n := v.(type) {
	case float64:
		return int64(n), nil
	case int:
		return int64(n), nil
	case int64:
		return n, nil
	case string:
		return strconv.ParseInt(strings.TrimSpace(n), 10, 64)
	default:
		return 0, fmt.Errorf("valor no entero: %T", v)
	}
}
