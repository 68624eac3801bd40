package refdata

// KeyboardLayouts maps a layout name to its physical row layout, used by
// the keyboard-walk detector to find contiguous horizontal, vertical and
// diagonal substrings in a local part. Rows are listed top to bottom;
// adjacency within a row is horizontal, adjacency across rows at the same
// column index is vertical, and one column of offset in either direction is
// diagonal.
var KeyboardLayouts = map[string][]string{
	"qwerty": {
		"1234567890",
		"qwertyuiop",
		"asdfghjkl",
		"zxcvbnm",
	},
	"azerty": {
		"1234567890",
		"azertyuiop",
		"qsdfghjklm",
		"wxcvbn",
	},
	"qwertz": {
		"1234567890",
		"qwertzuiop",
		"asdfghjkl",
		"yxcvbnm",
	},
	"dvorak": {
		"1234567890",
		"pyfgcrl",
		"aoeuidhtns",
		"qjkxbmwvz",
	},
	"colemak": {
		"1234567890",
		"qwfpgjluy",
		"arstdhneio",
		"zxcvbkm",
	},
	"numpad": {
		"789",
		"456",
		"123",
	},
}
