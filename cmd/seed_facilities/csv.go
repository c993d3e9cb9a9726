package main

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"

	"github.com/jhoicas/impilo-stock/internal/domain/entity"
)

// row fila del CSV: id del centro en el backend y los campos DATIM a fijar.
type row struct {
	line     int
	id       int64
	facility entity.Facility
}

// Columnas reconocidas (encabezado sin distinguir mayúsculas). Solo id es obligatoria.
var columns = map[string]func(f *entity.Facility, v string) error{
	"datimorgid":    func(f *entity.Facility, v string) error { f.DatimOrgID = v; return nil },
	"datimsitename": func(f *entity.Facility, v string) error { f.DatimSiteName = v; return nil },
	"facilityid":    func(f *entity.Facility, v string) error { f.FacilityID = v; return nil },
	"provincecode":  func(f *entity.Facility, v string) error { f.ProvinceCode = v; return nil },
	"districtcode":  func(f *entity.Facility, v string) error { f.DistrictCode = v; return nil },
	"ehrversion":    func(f *entity.Facility, v string) error { f.EHRVersion = v; return nil },
	"activation":    func(f *entity.Facility, v string) error { f.Activation = v; return nil },
	"latitude":      coordinate(func(f *entity.Facility, c *float64) { f.Latitude = c }, 90),
	"longitude":     coordinate(func(f *entity.Facility, c *float64) { f.Longitude = c }, 180),
}

func coordinate(set func(*entity.Facility, *float64), limit float64) func(*entity.Facility, string) error {
	return func(f *entity.Facility, v string) error {
		c, err := strconv.ParseFloat(v, 64)
		if err != nil || c < -limit || c > limit {
			return fmt.Errorf("coordenada inválida %q", v)
		}
		set(f, &c)
		return nil
	}
}

// readRows lee el CSV. Los exportes de DATIM vienen en ISO-8859-1; latin1 los decodifica.
func readRows(r io.Reader, latin1 bool) ([]row, error) {
	if latin1 {
		r = transform.NewReader(r, charmap.ISO8859_1.NewDecoder())
	}
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("leer encabezado: %w", err)
	}
	idCol := -1
	for i, h := range header {
		header[i] = strings.ToLower(strings.TrimSpace(h))
		if header[i] == "id" {
			idCol = i
		}
	}
	if idCol < 0 {
		return nil, errors.New("el CSV no tiene columna id")
	}

	var rows []row
	for line := 2; ; line++ {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("línea %d: %w", line, err)
		}
		id, err := strconv.ParseInt(strings.TrimSpace(rec[idCol]), 10, 64)
		if err != nil || id <= 0 {
			return nil, fmt.Errorf("línea %d: id inválido %q", line, rec[idCol])
		}
		r := row{line: line, id: id}
		for i, v := range rec {
			set, ok := columns[header[i]]
			v = strings.TrimSpace(v)
			if !ok || v == "" {
				continue
			}
			if err := set(&r.facility, v); err != nil {
				return nil, fmt.Errorf("línea %d: %s: %w", line, header[i], err)
			}
		}
		rows = append(rows, r)
	}
	return rows, nil
}

// merge aplica sobre el centro actual los campos no vacíos de la fila.
func merge(current entity.Facility, patch entity.Facility) entity.Facility {
	pick := func(dst *string, v string) {
		if v != "" {
			*dst = v
		}
	}
	pick(&current.DatimOrgID, patch.DatimOrgID)
	pick(&current.DatimSiteName, patch.DatimSiteName)
	pick(&current.FacilityID, patch.FacilityID)
	pick(&current.ProvinceCode, patch.ProvinceCode)
	pick(&current.DistrictCode, patch.DistrictCode)
	pick(&current.EHRVersion, patch.EHRVersion)
	pick(&current.Activation, patch.Activation)
	if patch.Latitude != nil {
		current.Latitude = patch.Latitude
	}
	if patch.Longitude != nil {
		current.Longitude = patch.Longitude
	}
	return current
}
