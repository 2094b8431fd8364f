package device

type marketing struct {
	vendor string
	name   string
}

// models maps build model codes to retail names. Keys are upper case.
var models = map[string]marketing{
	"IPHONE": {"Apple", "iPhone"},
	"IPAD":   {"Apple", "iPad"},
	"MAC":    {"Apple", "Mac"},

	"SM-S928B": {"Samsung", "Galaxy S24 Ultra"},
	"SM-S921B": {"Samsung", "Galaxy S24"},
	"SM-S918B": {"Samsung", "Galaxy S23 Ultra"},
	"SM-S911B": {"Samsung", "Galaxy S23"},
	"SM-S908E": {"Samsung", "Galaxy S22 Ultra"},
	"SM-A556E": {"Samsung", "Galaxy A55"},
	"SM-A546E": {"Samsung", "Galaxy A54"},
	"SM-A356E": {"Samsung", "Galaxy A35"},
	"SM-A346E": {"Samsung", "Galaxy A34"},
	"SM-A256E": {"Samsung", "Galaxy A25"},
	"SM-A155F": {"Samsung", "Galaxy A15"},
	"SM-A145F": {"Samsung", "Galaxy A14"},
	"SM-A057F": {"Samsung", "Galaxy A05s"},
	"SM-A055F": {"Samsung", "Galaxy A05"},
	"SM-M146B": {"Samsung", "Galaxy M14"},
	"SM-G991B": {"Samsung", "Galaxy S21"},
	"SM-G998B": {"Samsung", "Galaxy S21 Ultra"},
	"SM-A525F": {"Samsung", "Galaxy A52"},

	"23108RN04Y": {"Xiaomi", "Redmi 13C"},
	"23106RN0DA": {"Xiaomi", "Redmi 13C"},
	"2312DRAABG": {"Xiaomi", "Redmi Note 13"},
	"23129RAA4G": {"Xiaomi", "Redmi Note 13 5G"},
	"23021RAA2Y": {"Xiaomi", "Redmi Note 12"},
	"22111317G":  {"Xiaomi", "Redmi Note 12 Pro"},
	"220333QAG":  {"Xiaomi", "Redmi 10C"},
	"2201117TG":  {"Xiaomi", "Redmi Note 11"},
	"M2101K7BG":  {"Xiaomi", "Redmi Note 10"},
	"M2003J15SC": {"Xiaomi", "Redmi 10X"},
	"2201116SG":  {"Xiaomi", "Redmi Note 11 Pro 5G"},
	"2311DRK48G": {"Xiaomi", "POCO X6 Pro"},

	"CPH2591": {"OPPO", "A18"},
	"CPH2579": {"OPPO", "A58"},
	"CPH2477": {"OPPO", "A17"},
	"CPH2471": {"OPPO", "A17k"},
	"CPH2565": {"OPPO", "Reno11 F"},

	"RMX3910": {"realme", "C65"},
	"RMX3830": {"realme", "C53"},
	"RMX3760": {"realme", "C53"},
	"RMX3710": {"realme", "C55"},
	"RMX3630": {"realme", "C55"},

	"V2312": {"vivo", "Y28"},
	"V2247": {"vivo", "Y27"},
	"V2207": {"vivo", "Y22s"},
	"V2111": {"vivo", "Y21"},

	"INFINIX X6831": {"Infinix", "Hot 40i"},
	"INFINIX X6528": {"Infinix", "Hot 40i"},
	"INFINIX X669":  {"Infinix", "Hot 30i"},
	"TECNO KJ5":     {"Tecno", "Spark 20"},
	"TECNO BG6":     {"Tecno", "Spark Go 2024"},

	"PIXEL 8":     {"Google", "Pixel 8"},
	"PIXEL 8 PRO": {"Google", "Pixel 8 Pro"},
	"PIXEL 7":     {"Google", "Pixel 7"},
	"PIXEL 7A":    {"Google", "Pixel 7a"},
}

type prefixVendor struct {
	prefix string
	vendor string
}

var vendorPrefixes = []prefixVendor{
	{"SM-", "Samsung"},
	{"GALAXY", "Samsung"},
	{"REDMI", "Xiaomi"},
	{"POCO", "Xiaomi"},
	{"MI ", "Xiaomi"},
	{"M2", "Xiaomi"},
	{"CPH", "OPPO"},
	{"RMX", "realme"},
	{"V2", "vivo"},
	{"VIVO", "vivo"},
	{"INFINIX", "Infinix"},
	{"TECNO", "Tecno"},
	{"PIXEL", "Google"},
	{"NOKIA", "Nokia"},
	{"MOTO", "Motorola"},
	{"ONEPLUS", "OnePlus"},
	{"HUAWEI", "Huawei"},
}
