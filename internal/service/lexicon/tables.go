package lexicon

// synonyms maps common misspellings and regional terms to the canonical
// English words used in the sheet descriptions. Applied token-by-token after
// the stop-word pass.
var synonyms = map[string]string{
	"wipol":   "wypall",
	"wypal":   "wypall",
	"waipol":  "wypall",
	"hendel":  "handle",
	"handel":  "handle",
	"sok":     "shock",
	"sox":     "shock",
	"breket":  "bracket",
	"briket":  "bracket",
	"fiter":   "filter",
	"filtir":  "filter",
	"hos":     "hose",
	"hosing":  "hose",
	"sealtep": "seal tape",
	"siltep":  "seal tape",
	"ban":     "tire",
	"tyre":    "tire",
	"oli":     "oil",
	"lube":    "oil",
	"aki":     "battery",
	"accu":    "battery",
	"baut":    "bolt",
	"mur":     "nut",
	"laher":   "bearing",
	"klem":    "clamp",
	"oring":   "o-ring",
}

// stopWords are filler, politeness, preposition and bot-name words that carry
// no search signal.
var stopWords = map[string]struct{}{
	"tolong": {}, "mohon": {}, "minta": {}, "dong": {}, "ya": {},
	"pak": {}, "bapak": {}, "bu": {}, "ibu": {}, "mas": {}, "om": {},
	"bos": {}, "gan": {}, "min": {}, "bro": {},
	"laden": {}, "den": {},
	"tanya": {}, "cek": {}, "stok": {}, "stock": {},
	"ada": {}, "gak": {}, "ga": {}, "nggak": {}, "ndak": {},
	"berapa": {}, "brp": {},
	"yg": {}, "yang": {}, "itu": {}, "ini": {}, "nya": {},
	"di": {}, "ke": {}, "dari": {}, "untuk": {}, "buat": {},
	"barang": {},
}

// fastenerWords are dropped only when the phrase already contains a digit: a
// lone digit next to "bolt" is a dimension, not a product request.
var fastenerWords = map[string]struct{}{
	"baut": {}, "bolt": {}, "mur": {}, "nut": {},
	"skrup": {}, "sekrup": {}, "screw": {},
}

// documentPrefixes are the leading two digits of SAP document numbers
// (purchase orders, reservations) that users paste alongside item names.
var documentPrefixes = map[string]struct{}{
	"10": {}, "12": {}, "45": {}, "48": {}, "49": {},
}
