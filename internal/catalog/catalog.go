package catalog

import (
	"github.com/experium/bookingapi/internal/domain"
)

// Catalog is an immutable, pre-loaded collection of experiences.
// Filtering never mutates the underlying records.
type Catalog struct {
	records []domain.Experience
	byID    map[int]int
}

// New creates a catalog from a fixed set of records
func New(records []domain.Experience) *Catalog {
	c := &Catalog{
		records: make([]domain.Experience, len(records)),
		byID:    make(map[int]int, len(records)),
	}
	copy(c.records, records)
	for i, r := range c.records {
		c.byID[r.ID] = i
	}
	return c
}

// All returns a copy of every record in catalog order
func (c *Catalog) All() []domain.Experience {
	out := make([]domain.Experience, len(c.records))
	copy(out, c.records)
	return out
}

// Get looks up a single experience by ID
func (c *Catalog) Get(id int) (domain.Experience, bool) {
	i, ok := c.byID[id]
	if !ok {
		return domain.Experience{}, false
	}
	return c.records[i], true
}

// Len returns the number of records in the catalog
func (c *Catalog) Len() int {
	return len(c.records)
}

// Apply returns the records matching the filter state, sorted per its
// sort order. The result is a new slice; the catalog is untouched.
func (c *Catalog) Apply(state FilterState) []domain.Experience {
	return Apply(c.records, state)
}

// Seed returns the static launch catalog
func Seed() *Catalog {
	return New(seedExperiences)
}

var seedExperiences = []domain.Experience{
	{
		ID: 1, Title: "Zbor cu balonul peste Țara Bârsei", Location: "Brașov",
		Category: "Aventură", Region: "Transilvania", County: "Brașov", City: "Brașov",
		Price: 850, Rating: 4.9, Reviews: 214, DurationMinutes: 180,
		Image: "https://cdn.experium.ro/img/balon-brasov.jpg",
	},
	{
		ID: 2, Title: "Degustare de vinuri la cramă", Location: "Urlați",
		Category: "Gastronomie", Region: "Muntenia", County: "Prahova", City: "Urlați",
		Price: 220, Rating: 4.7, Reviews: 156, DurationMinutes: 150,
		Image: "https://cdn.experium.ro/img/crama-dealu-mare.jpg",
	},
	{
		ID: 3, Title: "Via ferrata în Cheile Râșnoavei", Location: "Râșnov",
		Category: "Aventură", Region: "Transilvania", County: "Brașov", City: "Râșnov",
		Price: 190, Rating: 4.8, Reviews: 98, DurationMinutes: 240,
		Image: "https://cdn.experium.ro/img/via-ferrata-rasnov.jpg",
	},
	{
		ID: 4, Title: "Zi de răsfăț la spa", Location: "București",
		Category: "Relaxare", Region: "Muntenia", County: "București", City: "București",
		Price: 450, Rating: 4.5, Reviews: 320, DurationMinutes: 300,
		Image: "https://cdn.experium.ro/img/spa-bucuresti.jpg",
	},
	{
		ID: 5, Title: "Pilotaj pe circuit cu mașină sport", Location: "Titu",
		Category: "Adrenalină", Region: "Muntenia", County: "Dâmbovița", City: "Titu",
		Price: 990, Rating: 4.6, Reviews: 187, DurationMinutes: 90,
		Image: "https://cdn.experium.ro/img/circuit-titu.jpg",
	},
	{
		ID: 6, Title: "Excursie cu barca în Delta Dunării", Location: "Tulcea",
		Category: "Natură", Region: "Dobrogea", County: "Tulcea", City: "Tulcea",
		Price: 380, Rating: 4.8, Reviews: 142, DurationMinutes: 540,
		Image: "https://cdn.experium.ro/img/delta-dunarii.jpg",
	},
	{
		ID: 7, Title: "Curs de gătit tradițional maramureșean", Location: "Baia Mare",
		Category: "Gastronomie", Region: "Maramureș", County: "Maramureș", City: "Baia Mare",
		Price: 260, Rating: 4.4, Reviews: 61, DurationMinutes: 210,
		Image: "https://cdn.experium.ro/img/curs-gatit-maramures.jpg",
	},
	{
		ID: 8, Title: "Weekend de echitație la Cluj", Location: "Cluj-Napoca",
		Category: "Aventură", Region: "Transilvania", County: "Cluj", City: "Cluj-Napoca",
		Price: 1200, Rating: 4.7, Reviews: 84, DurationMinutes: 2880,
		Image: "https://cdn.experium.ro/img/echitatie-cluj.jpg",
	},
	{
		ID: 9, Title: "Plimbare cu hidrobicicleta pe lac", Location: "Snagov",
		Category: "Relaxare", Region: "Muntenia", County: "Ilfov", City: "Snagov",
		Price: 120, Rating: 4.2, Reviews: 45, DurationMinutes: 60,
		Image: "https://cdn.experium.ro/img/snagov-lac.jpg",
	},
	{
		ID: 10, Title: "Tur ghidat al salinei Turda", Location: "Turda",
		Category: "Natură", Region: "Transilvania", County: "Cluj", City: "Turda",
		Price: 95, Rating: 4.6, Reviews: 412, DurationMinutes: 120,
		Image: "https://cdn.experium.ro/img/salina-turda.jpg",
	},
}
