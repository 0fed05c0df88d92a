package translation

// Languages maps supported language codes to their English name
var Languages = map[string]string{
	"zh":    "Chinese (Simplified)",
	"zh-TW": "Chinese (Traditional)",
	"en":    "English",
	"es":    "Spanish",
	"fr":    "French",
	"de":    "German",
	"it":    "Italian",
	"pt":    "Portuguese",
	"ru":    "Russian",
	"ja":    "Japanese",
	"ko":    "Korean",
	"ar":    "Arabic",
	"hi":    "Hindi",
	"nl":    "Dutch",
	"sv":    "Swedish",
	"da":    "Danish",
	"no":    "Norwegian",
	"fi":    "Finnish",
	"pl":    "Polish",
	"cs":    "Czech",
	"hu":    "Hungarian",
	"tr":    "Turkish",
	"el":    "Greek",
	"he":    "Hebrew",
	"th":    "Thai",
	"vi":    "Vietnamese",
	"id":    "Indonesian",
	"ms":    "Malay",
	"tl":    "Filipino",
	"uk":    "Ukrainian",
	"bg":    "Bulgarian",
	"hr":    "Croatian",
	"sr":    "Serbian",
	"sl":    "Slovenian",
	"sk":    "Slovak",
	"ro":    "Romanian",
	"et":    "Estonian",
	"lv":    "Latvian",
	"lt":    "Lithuanian",
}
