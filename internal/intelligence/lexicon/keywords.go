package lexicon

var criminalKeywords = []string{
	"murder", "homicide", "culpable homicide", "rape", "sexual assault", "molestation",
	"pocso", "kidnapping", "abduction", "robbery", "dacoity", "theft", "burglary",
	"assault", "hurt", "grievous hurt", "cheating", "fraud", "forgery", "ndps",
	"narcotic drugs", "psychotropic", "bail", "custody", "remand", "sentence",
	"convicted", "acquitted", "protection of children from sexual offences",
	"dowry death", "cruelty", "498a", "304b", "extortion", "intimidation",
	"counterfeiting", "human trafficking", "acid attack",
}

var trafficKeywords = []string{
	"motor vehicles act", "motor vehicle act", "mv act", "m.v. act", "m v act",
	"m.v.act", "mvact", "motor vehicles act, 1988", "motor vehicles act 1988", "mva",
	"m.v.a.", "road accident", "motor accident", "traffic accident",
	"rash and negligent driving", "rash driving", "driving licence", "driving license",
	"learner's licence", "regional transport", "transport authority", "hit and run",
	"hit-and-run", "motor accident claims tribunal", "mact", "304a", "negligent driving",
	"vehicle accident", "compensation tribunal", "third party insurance",
}

var civilKeywords = []string{
	"contract", "specific performance", "property", "ownership", "title", "possession",
	"land acquisition", "compensation", "service matter", "employment",
	"dismissal from service", "matrimonial", "divorce", "maintenance", "alimony",
	"custody of child", "guardianship", "arbitration", "commercial dispute", "tax",
	"income tax", "gst", "excise", "customs", "company law", "insolvency", "bankruptcy",
	"ibc", "writ petition", "mandamus", "certiorari", "habeas corpus", "civil suit",
	"injunction", "declaration", "succession", "probate", "will", "partition", "rent",
	"tenancy", "eviction", "consumer", "deficiency of service",
}

// summaryVocabulary scores sentences for the crime summary. Terms match as
// substrings, so "kidnap" also counts "kidnapping".
var summaryVocabulary = []string{
	"accused", "victim", "deceased", "complainant", "murder", "rape", "robbery",
	"dacoity", "kidnap", "assault", "hurt", "cheating", "fraud", "forgery",
	"convicted", "acquitted", "offence", "crime", "fir", "arrest", "chargesheet",
	"prosecution", "section", "ipc", "sentence", "bail", "evidence", "witness",
	"court", "held",
}
