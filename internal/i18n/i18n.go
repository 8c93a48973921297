// Package i18n holds the static UI label tables and language negotiation.
//
// Lookups are pure: (language, key) falls back to English, then to the raw
// key. Nothing here touches the network.
package i18n

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/language"
)

// Supported UI languages.
const (
	English    = "en"
	Indonesian = "id"
)

// Default is the fallback language for every lookup.
const Default = English

var supported = []language.Tag{language.English, language.Indonesian}

var matcher = language.NewMatcher(supported)

var tables = map[string]map[string]string{
	English: {
		"nav_home": "PokemonREST", "nav_list": "Pokemon List", "nav_detail": "Detail", "nav_about": "About", "nav_language": "Language",
		"back": "← Back", "welcome": "Welcome, Trainer!", "hero_desc": "Explore the Pokemon collection or search by name or ID.",
		"search_placeholder": "Search Pokemon (name or id)", "search_button": "Search",
		"list_title": "Pokemon List", "prev": "Prev", "next": "Next",
		"label_total": "Total Pokemon", "label_types": "Types",
		"loading": "Loading...", "failed_fetch": "Failed to fetch data. Try refresh.",
		"failed_detail": "Failed to load detail.", "not_found_alert": "Pokemon not found",
		"no_selection": "No Pokemon selected.",
		"stat_title": "Statistics", "versions": "Version",
		"height": "Height", "weight": "Weight", "category": "Category", "abilities": "Abilities", "gender": "Gender",
		"type": "Type", "weaknesses": "Weaknesses", "show_moves": "Show Moves", "evolution": "Evolution",
		"hidden": "(hidden)", "auto_translation_note": " (auto-translation)",
		"gender_unknown": "Unknown", "gender_genderless": "Genderless",
		"theme_light": "Light", "theme_dark": "Dark",
		"stat.hp": "HP", "stat.attack": "Attack", "stat.defense": "Defense",
		"stat.special-attack": "Special Attack", "stat.special-defense": "Special Defense", "stat.speed": "Speed",
		"type.grass": "Grass", "type.poison": "Poison", "type.fire": "Fire", "type.water": "Water", "type.bug": "Bug",
		"type.flying": "Flying", "type.ice": "Ice", "type.ground": "Ground", "type.psychic": "Psychic", "type.rock": "Rock",
		"type.ghost": "Ghost", "type.dragon": "Dragon", "type.dark": "Dark", "type.steel": "Steel", "type.fairy": "Fairy",
		"type.electric": "Electric", "type.normal": "Normal", "type.fighting": "Fighting",
	},
	Indonesian: {
		"nav_home": "PokemonREST", "nav_list": "Daftar Pokemon", "nav_detail": "Detail", "nav_about": "Tentang", "nav_language": "Bahasa",
		"back": "← Kembali", "welcome": "Selamat datang, Trainer!", "hero_desc": "Jelajahi koleksi Pokemon atau cari langsung dengan nama atau ID.",
		"search_placeholder": "Cari Pokemon (nama atau id)", "search_button": "Cari",
		"list_title": "Daftar Pokemon", "prev": "Sebelumnya", "next": "Berikutnya",
		"label_total": "Jumlah Pokemon", "label_types": "Tipe",
		"loading": "Memuat...", "failed_fetch": "Gagal mengambil data. Coba refresh.",
		"failed_detail": "Gagal memuat detail.", "not_found_alert": "Pokemon tidak ditemukan",
		"no_selection": "Tidak ada Pokémon dipilih.",
		"stat_title": "Statistik", "versions": "Versi",
		"height": "Tinggi", "weight": "Berat", "category": "Kategori", "abilities": "Kemampuan", "gender": "Jenis Kelamin",
		"type": "Tipe", "weaknesses": "Kelemahan", "show_moves": "Tampilkan Gerakan", "evolution": "Evolusi",
		"hidden": "(tersembunyi)", "auto_translation_note": " (terjemahan otomatis)",
		"gender_unknown": "Tidak diketahui", "gender_genderless": "Tanpa jenis kelamin",
		"theme_light": "Terang", "theme_dark": "Gelap",
		"stat.hp": "HP", "stat.attack": "Serangan", "stat.defense": "Pertahanan",
		"stat.special-attack": "Serangan Spesial", "stat.special-defense": "Pertahanan Spesial", "stat.speed": "Kecepatan",
		"type.grass": "Rumput", "type.poison": "Racun", "type.fire": "Api", "type.water": "Air", "type.bug": "Serangga",
		"type.flying": "Terbang", "type.ice": "Es", "type.ground": "Tanah", "type.psychic": "Psikis", "type.rock": "Batu",
		"type.ghost": "Hantu", "type.dragon": "Naga", "type.dark": "Gelap", "type.steel": "Baja", "type.fairy": "Peri",
		"type.electric": "Listrik", "type.normal": "Normal", "type.fighting": "Pertarungan",
	},
}

// Label returns the UI string for key in lang, falling back to English and
// then to the key itself.
func Label(lang, key string) string {
	if s, ok := tables[lang][key]; ok {
		return s
	}
	if s, ok := tables[Default][key]; ok {
		return s
	}
	return key
}

// TypeLabel localizes a type name, falling back to the capitalized name.
func TypeLabel(lang, name string) string {
	return labelOr(lang, "type."+name, Capitalize(name))
}

// StatLabel localizes a stat name, falling back to the capitalized name.
func StatLabel(lang, name string) string {
	return labelOr(lang, "stat."+name, Capitalize(name))
}

func labelOr(lang, key, fallback string) string {
	if s := Label(lang, key); s != key {
		return s
	}
	return fallback
}

// Table returns a copy of the merged label table for lang (English keys
// fill any gap).
func Table(lang string) map[string]string {
	out := make(map[string]string, len(tables[Default]))
	for k, v := range tables[Default] {
		out[k] = v
	}
	for k, v := range tables[lang] {
		out[k] = v
	}
	return out
}

// IsSupported reports whether lang has its own table.
func IsSupported(lang string) bool {
	_, ok := tables[lang]
	return ok
}

// Languages lists the supported language codes.
func Languages() []string {
	return []string{English, Indonesian}
}

// Normalize maps any BCP 47-ish tag ("id-ID", "id_ID.UTF-8", "EN") onto a
// supported language, or "" when nothing matches.
func Normalize(tag string) string {
	tag = strings.TrimSpace(tag)
	if i := strings.IndexAny(tag, ".@"); i >= 0 {
		tag = tag[:i]
	}
	tag = strings.ReplaceAll(tag, "_", "-")
	if tag == "" || tag == "C" || tag == "POSIX" {
		return ""
	}
	t, err := language.Parse(tag)
	if err != nil {
		return ""
	}
	_, idx, conf := matcher.Match(t)
	if conf == language.No {
		return ""
	}
	return baseOf(supported[idx])
}

// Negotiate picks a supported language from an Accept-Language header value.
// It returns "" when the header names nothing supported.
func Negotiate(acceptLanguage string) string {
	tags, _, err := language.ParseAcceptLanguage(acceptLanguage)
	if err != nil || len(tags) == 0 {
		return ""
	}
	_, idx, conf := matcher.Match(tags...)
	if conf == language.No {
		return ""
	}
	return baseOf(supported[idx])
}

// Resolve returns the first candidate that normalizes to a supported
// language, or Default.
func Resolve(candidates ...string) string {
	for _, c := range candidates {
		if l := Normalize(c); l != "" {
			return l
		}
	}
	return Default
}

// Toggle flips between the two UI languages.
func Toggle(lang string) string {
	if lang == Indonesian {
		return English
	}
	return Indonesian
}

func baseOf(t language.Tag) string {
	b, _ := t.Base()
	return b.String()
}

// Capitalize upper-cases the first rune.
func Capitalize(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}
