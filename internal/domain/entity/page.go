package entity

import (
	"net/url"
	"strconv"
)

// Pageable parámetros de paginación estilo Spring: página base 0, tamaño y
// lista de ordenamientos "campo,dirección".
type Pageable struct {
	Page int      `json:"page"`
	Size int      `json:"size"`
	Sort []string `json:"sort,omitempty"`
}

// EncodeQuery agrega page, size y sort (repetido) a los parámetros de la URL.
func (p Pageable) EncodeQuery(values url.Values) {
	values.Set("page", strconv.Itoa(p.Page))
	if p.Size > 0 {
		values.Set("size", strconv.Itoa(p.Size))
	}
	for _, s := range p.Sort {
		values.Add("sort", s)
	}
}

// SortObject metadatos de ordenamiento de una página.
type SortObject struct {
	Sorted   bool `json:"sorted,omitempty"`
	Unsorted bool `json:"unsorted,omitempty"`
	Empty    bool `json:"empty,omitempty"`
}

// PageableObject eco del Pageable que devuelve el backend.
type PageableObject struct {
	Paged      bool        `json:"paged,omitempty"`
	PageNumber int         `json:"pageNumber"`
	PageSize   int         `json:"pageSize"`
	Unpaged    bool        `json:"unpaged,omitempty"`
	Offset     int64       `json:"offset"`
	Sort       *SortObject `json:"sort,omitempty"`
}

// Page sobre de paginación del backend.
type Page[T any] struct {
	TotalElements    int64           `json:"totalElements"`
	TotalPages       int             `json:"totalPages"`
	Pageable         *PageableObject `json:"pageable,omitempty"`
	First            bool            `json:"first"`
	Last             bool            `json:"last"`
	Size             int             `json:"size"`
	Content          []T             `json:"content"`
	Number           int             `json:"number"`
	Sort             *SortObject     `json:"sort,omitempty"`
	NumberOfElements int             `json:"numberOfElements"`
	Empty            bool            `json:"empty"`
}
