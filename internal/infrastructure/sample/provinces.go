package sample

import "github.com/jhoicas/impilo-stock/internal/domain/entity"

type district struct {
	id, name string
	// medicamentos, insumos, equipos, vacunas: total y críticos/advertencia
	counts [4][3]int
}

type province struct {
	id, code, name, short string
	districts             []district
}

var provinceSeeds = []province{
	{"harare", "ZW-HA", "Harare", "Harare", []district{
		{"harare_central", "Harare Central", [4][3]int{{760, 60, 140}, {1320, 120, 260}, {350, 8, 22}, {470, 30, 60}}},
		{"chitungwiza", "Chitungwiza", [4][3]int{{490, 45, 90}, {980, 110, 190}, {210, 12, 20}, {310, 28, 45}}},
	}},
	{"bulawayo", "ZW-BU", "Bulawayo", "Bulawayo", []district{
		{"bulawayo_central", "Bulawayo Central", [4][3]int{{590, 40, 95}, {1060, 70, 210}, {240, 10, 30}, {330, 15, 50}}},
		{"bulawayo_east", "Bulawayo East", [4][3]int{{380, 20, 70}, {820, 45, 140}, {190, 6, 18}, {290, 12, 35}}},
	}},
	{"manicaland", "ZW-MA", "Manicaland", "Manicaland", []district{
		{"mutare", "Mutare", [4][3]int{{440, 95, 105}, {860, 210, 190}, {170, 45, 50}, {260, 90, 70}}},
		{"chipinge", "Chipinge", [4][3]int{{410, 55, 95}, {790, 95, 210}, {190, 25, 45}, {290, 48, 70}}},
	}},
	{"mash_central", "ZW-MC", "Mashonaland Central", "Mash. Central", []district{
		{"bindura", "Bindura", [4][3]int{{330, 10, 40}, {610, 20, 80}, {120, 2, 10}, {200, 6, 20}}},
		{"shamva", "Shamva", [4][3]int{{260, 8, 30}, {470, 15, 60}, {90, 2, 8}, {160, 5, 15}}},
	}},
	{"mash_east", "ZW-ME", "Mashonaland East", "Mash. East", []district{
		{"marondera", "Marondera", [4][3]int{{360, 30, 80}, {690, 60, 150}, {140, 9, 25}, {220, 18, 40}}},
		{"mutoko", "Mutoko", [4][3]int{{240, 8, 35}, {450, 14, 70}, {80, 2, 10}, {150, 4, 20}}},
	}},
	{"mash_west", "ZW-MW", "Mashonaland West", "Mash. West", []district{
		{"chinhoyi", "Chinhoyi", [4][3]int{{370, 12, 50}, {720, 25, 100}, {150, 3, 15}, {240, 8, 30}}},
		{"kariba", "Kariba", [4][3]int{{210, 6, 25}, {380, 12, 45}, {70, 1, 6}, {120, 3, 12}}},
	}},
	{"masvingo", "ZW-MV", "Masvingo", "Masvingo", []district{
		{"masvingo_city", "Masvingo City", [4][3]int{{420, 35, 90}, {800, 70, 170}, {160, 10, 25}, {280, 30, 60}}},
		{"chiredzi", "Chiredzi", [4][3]int{{300, 60, 70}, {560, 100, 120}, {110, 20, 25}, {190, 35, 40}}},
	}},
	{"mat_north", "ZW-MN", "Matabeleland North", "Mat. North", []district{
		{"hwange", "Hwange", [4][3]int{{280, 55, 60}, {520, 95, 110}, {100, 18, 22}, {170, 30, 35}}},
		{"binga", "Binga", [4][3]int{{190, 18, 45}, {350, 30, 80}, {60, 4, 10}, {110, 9, 20}}},
	}},
	{"mat_south", "ZW-MS", "Matabeleland South", "Mat. South", []district{
		{"gwanda", "Gwanda", [4][3]int{{270, 9, 35}, {500, 18, 70}, {95, 2, 10}, {160, 5, 18}}},
		{"beitbridge", "Beitbridge", [4][3]int{{230, 16, 45}, {430, 30, 85}, {80, 5, 12}, {140, 10, 25}}},
	}},
	{"midlands", "ZW-MI", "Midlands", "Midlands", []district{
		{"gweru", "Gweru", [4][3]int{{450, 40, 100}, {860, 75, 180}, {180, 12, 30}, {300, 25, 60}}},
		{"kwekwe", "Kwekwe", [4][3]int{{350, 12, 50}, {650, 25, 90}, {130, 4, 15}, {230, 8, 30}}},
	}},
}

func seedProvinces() []entity.ProvinceStock {
	out := make([]entity.ProvinceStock, 0, len(provinceSeeds))
	for _, p := range provinceSeeds {
		ps := entity.ProvinceStock{ID: p.id, Code: p.code, Name: p.name, ShortName: p.short}
		for _, d := range p.districts {
			ds := entity.DistrictStock{ID: d.id, Name: d.name, Categories: make(map[entity.ItemCategory]entity.CategoryStock, 4)}
			for i, cat := range entity.ChartCategories {
				total, critical, warning := d.counts[i][0], d.counts[i][1], d.counts[i][2]
				ds.Categories[cat] = entity.CategoryStock{
					Total:    total,
					Critical: critical,
					Warning:  warning,
					Normal:   total - critical - warning,
				}
			}
			ps.Districts = append(ps.Districts, ds)
		}
		out = append(out, ps)
	}
	return out
}
