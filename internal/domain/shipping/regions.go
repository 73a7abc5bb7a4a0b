// internal/domain/shipping/regions.go
package shipping

// Governorate tier assignment. This is enumerated business data carried over
// as-is; governorate names are matched case-sensitively against the checkout
// form's own option values, so no normalization happens here.

var northernGovernorates = []string{
	"Cairo", "Giza", "Alexandria", "Dakahlia", "Red Sea", "Beheira",
	"Fayoum", "Gharbiya", "Ismailia", "Menoufia", "Qaliubiya",
	"New Valley", "Suez", "Port Said", "Damietta", "Sharkia",
	"North Sinai", "South Sinai",
}

var southernGovernorates = []string{
	"Minya", "Assiut", "Beni Suef", "Sohag", "Qena", "Kafr Al sheikh",
	"Matrouh", "Luxor", "Aswan",
}
