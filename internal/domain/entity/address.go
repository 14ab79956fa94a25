package entity

// CountryHaiti selects the domestic address form.
const CountryHaiti = "Ayiti"

type AddressKind string

const (
	AddressDomestic AddressKind = "domestic"
	AddressForeign  AddressKind = "foreign"
)

// Address is a tagged variant: domestic addresses use Department and City,
// foreign ones use State and DiasporaCity.
type Address struct {
	Country      string `json:"country" firestore:"country" form:"country"`
	Department   string `json:"department,omitempty" firestore:"department" form:"department"`
	City         string `json:"city,omitempty" firestore:"city" form:"city"`
	State        string `json:"state,omitempty" firestore:"state" form:"state"`
	DiasporaCity string `json:"diaspora_city,omitempty" firestore:"diasporaCity" form:"diaspora_city"`
	ZipCode      string `json:"zip_code,omitempty" firestore:"zipCode" form:"zip_code"`
}

func (a Address) Kind() AddressKind {
	if a.Country == CountryHaiti {
		return AddressDomestic
	}
	return AddressForeign
}

// ResolvedCity is the city that gets persisted for either variant.
func (a Address) ResolvedCity() string {
	if a.Kind() == AddressDomestic {
		return a.City
	}
	return a.DiasporaCity
}

// HaitiGeography maps each department to its cities.
var HaitiGeography = map[string][]string{
	"Lwès":      {"Pòtoprens", "Kafou", "Dèlma", "Petyonvil", "Kenskòf", "Grangwav", "Tigwav", "Leyogàn", "Kabasè", "Lakayè", "Akayè"},
	"Latibonit": {"Gonayiv", "Sen Mak", "Vèrèt", "Dechalon", "Dèdin", "Lestè", "Ansagalèt"},
	"Nò":        {"Okap", "Lenbe", "Pò Mago", "Akil dinò", "Plèn dinò", "Obòy", "Bastè"},
	"Nòdès":     {"Fòliberte", "Wanament", "Twou dinò", "Karis", "Valyè"},
	"Nòdwès":    {"Pòdepè", "Sen Lwi dinò", "Ansàfo", "Mòl Sen Nikola", "Latòti"},
	"Sant":      {"Ench", "Mibalè", "Laskawobas", "Sèka Lasous", "Tomonn"},
	"Sid":       {"Okay", "Aken", "Koto", "Pòsali", "Sen Lwi disid", "Lilavach"},
	"Sidès":     {"Jakmèl", "Marigo", "Bèlans", "Benè", "Kòt Defè"},
	"Grandans":  {"Jeremi", "Koray", "Ansdeno", "Pestèl", "Dam Mari"},
	"Nip":       {"Miragwàn", "Ansavo", "Baradè", "Fondènèg"},
}

func CityInDepartment(department, city string) bool {
	for _, c := range HaitiGeography[department] {
		if c == city {
			return true
		}
	}
	return false
}
