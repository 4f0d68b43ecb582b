package models

// FontCatalog is the set of font families a style may use.
var FontCatalog = []string{
	"Alexandria", "Almarai", "Amiri", "Aref Ruqaa", "Baloo Bhaijaan 2",
	"Bebas Neue", "Cairo", "Changa", "El Messiri", "IBM Plex Sans Arabic",
	"Inter", "Jomhuria", "Kufam", "Lateef", "Lemonada",
	"Mada", "Markazi Text", "Montserrat", "Noto Sans Arabic", "Oswald",
	"Playfair Display", "Poppins", "Qahiri", "Readex Pro", "Reem Kufi",
	"Roboto Condensed", "Tajawal", "Vibur", "Anton", "Righteous",
}

func IsCatalogFont(name string) bool {
	for _, f := range FontCatalog {
		if f == name {
			return true
		}
	}
	return false
}
