package keycodes

// code holds the key code of one named key for each supported platform.
// Scan codes (set 1) double as Linux evdev KEY_* codes for every key below.
type code struct {
	scan uint16
	mac  uint16
}

// shifts maps a shifted symbol to the unshifted key that produces it.
var shifts = map[string]string{
	"!": "1", "A": "a", "K": "k", "U": "u",
	"@": "2", "B": "b", "L": "l", "V": "v",
	"#": "3", "C": "c", "M": "m", "W": "w",
	"$": "4", "D": "d", "N": "n", "X": "x",
	"%": "5", "E": "e", "O": "o", "Y": "y",
	"^": "6", "F": "f", "P": "p", "Z": "z",
	"&": "7", "G": "g", "Q": "q",
	"*": "8", "H": "h", "R": "r",
	"(": "9", "I": "i", "S": "s",
	")": "0", "J": "j", "T": "t",
}

// codes only carries keys some output method emits, plus a few neighbours that
// release-all should cover. Comma, period and slash are intentionally absent.
var codes = map[string]code{
	"1":          {scan: 2, mac: 0x12},
	"2":          {scan: 3, mac: 0x13},
	"3":          {scan: 4, mac: 0x14},
	"4":          {scan: 5, mac: 0x15},
	"5":          {scan: 6, mac: 0x17},
	"6":          {scan: 7, mac: 0x16},
	"7":          {scan: 8, mac: 0x1a},
	"8":          {scan: 9, mac: 0x1c},
	"9":          {scan: 10, mac: 0x19},
	"0":          {scan: 11, mac: 0x1d},
	"backspace":  {scan: 14, mac: 0x33},
	"q":          {scan: 16, mac: 0x0c},
	"w":          {scan: 17, mac: 0x0d},
	"e":          {scan: 18, mac: 0x0e},
	"r":          {scan: 19, mac: 0x0f},
	"t":          {scan: 20, mac: 0x11},
	"y":          {scan: 21, mac: 0x10},
	"u":          {scan: 22, mac: 0x20},
	"i":          {scan: 23, mac: 0x22},
	"o":          {scan: 24, mac: 0x1f},
	"p":          {scan: 25, mac: 0x23},
	"leftbrace":  {scan: 26, mac: 0x21},
	"rightbrace": {scan: 27, mac: 0x1e},
	"leftctrl":   {scan: 29, mac: 0x3b},
	"a":          {scan: 30, mac: 0x00},
	"s":          {scan: 31, mac: 0x01},
	"d":          {scan: 32, mac: 0x02},
	"f":          {scan: 33, mac: 0x03},
	"g":          {scan: 34, mac: 0x05},
	"h":          {scan: 35, mac: 0x04},
	"j":          {scan: 36, mac: 0x26},
	"k":          {scan: 37, mac: 0x28},
	"l":          {scan: 38, mac: 0x25},
	"semicolon":  {scan: 39, mac: 0x29},
	"grave":      {scan: 41, mac: 0x32},
	"shift":      {scan: 42, mac: 0x38},
	"z":          {scan: 44, mac: 0x06},
	"x":          {scan: 45, mac: 0x07},
	"c":          {scan: 46, mac: 0x08},
	"v":          {scan: 47, mac: 0x09},
	"b":          {scan: 48, mac: 0x0b},
	"n":          {scan: 49, mac: 0x2d},
	"m":          {scan: 50, mac: 0x2e},
	"kpasterisk": {scan: 55, mac: 0x43},
	"leftalt":    {scan: 56, mac: 0x3a},
	"space":      {scan: 57, mac: 0x31},
	"kp7":        {scan: 71, mac: 0x59},
	"kp8":        {scan: 72, mac: 0x5b},
	"kp9":        {scan: 73, mac: 0x5c},
	"kpminus":    {scan: 74, mac: 0x4e},
	"kp4":        {scan: 75, mac: 0x56},
	"kp5":        {scan: 76, mac: 0x57},
	"kp6":        {scan: 77, mac: 0x58},
	"kpplus":     {scan: 78, mac: 0x45},
	"kp1":        {scan: 79, mac: 0x53},
	"kp2":        {scan: 80, mac: 0x54},
	"kp3":        {scan: 81, mac: 0x55},
	"kp0":        {scan: 82, mac: 0x52},
}

// Names of the modifier and control keys the output methods bracket with.
const (
	Shift     = "shift"
	Alt       = "leftalt"
	Ctrl      = "leftctrl"
	Space     = "space"
	Delimiter = "kpasterisk"
)
