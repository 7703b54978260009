package domain

import "strings"

// AllCities é a pseudo-cidade que significa "sem filtro"
const AllCities = "all"

// DefaultCityID é a cidade padrão quando nenhum identificador válido é encontrado (London)
const DefaultCityID = "LYGRRATQ7EGG2"

// City representa uma cidade conhecida da operação
type City struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// CityTable é a tabela imutável de cidades conhecidas, injetada nos
// serviços de agregação e projeção em vez de estado global mutável
type CityTable struct {
	cities []City
	names  map[string]string
}

// DefaultCities retorna a tabela com as 5 cidades da operação mais a pseudo-cidade "all"
func DefaultCities() CityTable {
	return NewCityTable([]City{
		{ID: "LYGRRATQ7EGG2", Name: "London"},
		{ID: "L4NE8GPX89J3A", Name: "Ottawa"},
		{ID: "LDK6Z980JTKXY", Name: "Kitchener-Waterloo"},
		{ID: "LXMC6DWVJ5N7W", Name: "Hamilton"},
		{ID: "LG0VGFKQ25XED", Name: "Calgary"},
		{ID: AllCities, Name: "All Cities"},
	})
}

// NewCityTable cria uma tabela de cidades a partir de uma lista fixa
func NewCityTable(cities []City) CityTable {
	names := make(map[string]string, len(cities))
	for _, c := range cities {
		names[c.ID] = c.Name
	}
	return CityTable{cities: cities, names: names}
}

// Has verifica se o ID pertence à tabela (inclui a pseudo-cidade "all")
func (t CityTable) Has(id string) bool {
	_, ok := t.names[id]
	return ok
}

// Name retorna o nome de exibição de uma cidade
func (t CityTable) Name(id string) (string, bool) {
	name, ok := t.names[id]
	return name, ok
}

// IDByName faz a busca reversa pelo nome de exibição (comparação exata, sem case)
func (t CityTable) IDByName(name string) (string, bool) {
	for _, c := range t.cities {
		if strings.EqualFold(c.Name, name) {
			return c.ID, true
		}
	}
	return "", false
}

// Cities retorna as cidades reais, excluindo a pseudo-cidade "all"
func (t CityTable) Cities() []City {
	out := make([]City, 0, len(t.cities))
	for _, c := range t.cities {
		if c.ID == AllCities {
			continue
		}
		out = append(out, c)
	}
	return out
}

// All retorna todas as entradas da tabela, na ordem de declaração
func (t CityTable) All() []City {
	out := make([]City, len(t.cities))
	copy(out, t.cities)
	return out
}
