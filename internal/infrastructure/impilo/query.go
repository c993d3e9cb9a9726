package impilo

import (
	"encoding/json"
	"fmt"
	"net/url"
	"reflect"
	"time"
)

// Params parámetros de query de una petición.
//   - nil se omite
//   - slices y arrays se repiten (k=a&k=b)
//   - QueryEncoder se aplana a sí mismo (Pageable -> page, size, sort)
//   - time.Time viaja en ISO-8601
//   - otros mapas y structs se envían como JSON
//   - el resto con su forma de texto
type Params map[string]any

// QueryEncoder valores que saben escribirse como parámetros de query.
type QueryEncoder interface {
	EncodeQuery(values url.Values)
}

func encodeParams(params Params) (url.Values, error) {
	values := url.Values{}
	for key, raw := range params {
		if raw == nil {
			continue
		}
		rv := reflect.ValueOf(raw)
		for rv.Kind() == reflect.Pointer && !rv.IsNil() {
			rv = rv.Elem()
		}
		if rv.Kind() == reflect.Pointer {
			continue
		}
		if enc, ok := rv.Interface().(QueryEncoder); ok {
			enc.EncodeQuery(values)
			continue
		}
		switch rv.Kind() {
		case reflect.Slice, reflect.Array:
			if rv.Kind() == reflect.Slice && rv.IsNil() {
				continue
			}
			for i := 0; i < rv.Len(); i++ {
				s, err := scalar(rv.Index(i).Interface())
				if err != nil {
					return nil, fmt.Errorf("parámetro %s: %w", key, err)
				}
				values.Add(key, s)
			}
		default:
			s, err := scalar(rv.Interface())
			if err != nil {
				return nil, fmt.Errorf("parámetro %s: %w", key, err)
			}
			values.Add(key, s)
		}
	}
	return values, nil
}

func scalar(v any) (string, error) {
	switch x := v.(type) {
	case string:
		return x, nil
	case time.Time:
		return x.UTC().Format(time.RFC3339Nano), nil
	case fmt.Stringer:
		return x.String(), nil
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Map, reflect.Struct, reflect.Slice, reflect.Array:
		b, err := json.Marshal(v)
		if err != nil {
			return "", err
		}
		return string(b), nil
	}
	return fmt.Sprint(v), nil
}
