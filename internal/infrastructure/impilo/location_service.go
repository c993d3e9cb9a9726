package impilo

import (
	"context"
	"net/url"
	"strconv"

	"github.com/jhoicas/impilo-stock/internal/domain/entity"
)

// LocationService provincias, distritos y centros de salud.
type LocationService struct {
	Provinces  *ProvinceService
	Districts  *DistrictService
	Facilities *FacilityService
}

func NewLocationService(client *Client) *LocationService {
	return &LocationService{
		Provinces:  &ProvinceService{client: client},
		Districts:  &DistrictService{client: client},
		Facilities: &FacilityService{client: client},
	}
}

func id(n int64) string { return strconv.FormatInt(n, 10) }

// ── Provincias ───────────────────────────────────────────────────────────────

type ProvinceService struct {
	client *Client
}

func (s *ProvinceService) GetAll(ctx context.Context) ([]entity.Province, error) {
	var out []entity.Province
	if err := s.client.Get(ctx, "/provinces", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (s *ProvinceService) GetByID(ctx context.Context, provinceID int64) (*entity.Province, error) {
	var out entity.Province
	if err := s.client.Get(ctx, "/provinces/"+id(provinceID), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *ProvinceService) GetByName(ctx context.Context, name string) (*entity.Province, error) {
	var out entity.Province
	if err := s.client.Get(ctx, "/provinces/name/"+url.PathEscape(name), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Create POST /provinces?name=.
func (s *ProvinceService) Create(ctx context.Context, name string) (*entity.Province, error) {
	var out entity.Province
	if err := s.client.Post(ctx, "/provinces", nil, Params{"name": name}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Update PUT /provinces/{id}?name=.
func (s *ProvinceService) Update(ctx context.Context, provinceID int64, name string) (*entity.Province, error) {
	var out entity.Province
	if err := s.client.Put(ctx, "/provinces/"+id(provinceID), nil, Params{"name": name}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ── Distritos ────────────────────────────────────────────────────────────────

type DistrictService struct {
	client *Client
}

func (s *DistrictService) GetAll(ctx context.Context) ([]entity.District, error) {
	var out []entity.District
	if err := s.client.Get(ctx, "/districts", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// GetByID GET /districts/{id}; el backend también espera el id como query.
func (s *DistrictService) GetByID(ctx context.Context, districtID int64) (*entity.District, error) {
	var out entity.District
	if err := s.client.Get(ctx, "/districts/"+id(districtID), Params{"id": districtID}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *DistrictService) GetByName(ctx context.Context, name string) (*entity.District, error) {
	var out entity.District
	if err := s.client.Get(ctx, "/districts/name/"+url.PathEscape(name), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *DistrictService) GetByProvince(ctx context.Context, provinceID int64) ([]entity.District, error) {
	var out []entity.District
	if err := s.client.Get(ctx, "/districts/province/"+id(provinceID), nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (s *DistrictService) Create(ctx context.Context, name string) (*entity.District, error) {
	var out entity.District
	if err := s.client.Post(ctx, "/districts", nil, Params{"name": name}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *DistrictService) Update(ctx context.Context, districtID int64, name string) (*entity.District, error) {
	var out entity.District
	if err := s.client.Put(ctx, "/districts/"+id(districtID), nil, Params{"name": name}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ── Centros de salud ─────────────────────────────────────────────────────────

type FacilityService struct {
	client *Client
}

// GetAll GET /facilities paginado.
func (s *FacilityService) GetAll(ctx context.Context, p entity.Pageable) (*entity.Page[entity.Facility], error) {
	var out entity.Page[entity.Facility]
	if err := s.client.Get(ctx, "/facilities", Params{"pageable": p}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// GetAllNoPagination GET /facilities/all.
func (s *FacilityService) GetAllNoPagination(ctx context.Context) ([]entity.Facility, error) {
	var out []entity.Facility
	if err := s.client.Get(ctx, "/facilities/all", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (s *FacilityService) GetByID(ctx context.Context, facilityID int64) (*entity.Facility, error) {
	var out entity.Facility
	if err := s.client.Get(ctx, "/facilities/"+id(facilityID), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *FacilityService) GetByDistrict(ctx context.Context, districtID int64) ([]entity.Facility, error) {
	var out []entity.Facility
	if err := s.client.Get(ctx, "/facilities/district/"+id(districtID), nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Search GET /facilities/search?searchTerm= paginado.
func (s *FacilityService) Search(ctx context.Context, term string, p entity.Pageable) (*entity.Page[entity.Facility], error) {
	var out entity.Page[entity.Facility]
	if err := s.client.Get(ctx, "/facilities/search", Params{"searchTerm": term, "pageable": p}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Update PUT /facilities/{id}.
func (s *FacilityService) Update(ctx context.Context, facilityID int64, in entity.Facility) (*entity.Facility, error) {
	var out entity.Facility
	if err := s.client.Put(ctx, "/facilities/"+id(facilityID), in, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
