// Package lexicon holds the curated Indian Penal Code tables used by the
// extraction engines: offense metadata, the primary-section priority order,
// offense keywords, category keyword lists and the summary vocabulary.
//
// Tables are package-private. Callers obtain a Lexicon through Default,
// which returns fresh copies, and hand it to component constructors.
package lexicon

// Offense is the canonical name and category of a penal-code section.
type Offense struct {
	Name     string
	Category string
}

// UnknownOffense resolves any section missing from the offense table.
var UnknownOffense = Offense{Name: "Unknown Provision", Category: "Other"}

// KeywordSection maps an offense keyword to its representative section.
type KeywordSection struct {
	Keyword string
	Section string
}

var offenses = map[string]Offense{
	"34":   {"Common Intention", "Common Intention"},
	"107":  {"Abetment", "Abetment"},
	"120A": {"Criminal Conspiracy (Definition)", "Conspiracy"},
	"120B": {"Criminal Conspiracy", "Conspiracy"},
	"147":  {"Rioting", "Violent Crime"},
	"148":  {"Rioting with Deadly Weapon", "Violent Crime"},
	"149":  {"Unlawful Assembly", "Unlawful Assembly"},
	"201":  {"Causing Disappearance of Evidence", "Obstruction of Justice"},
	"279":  {"Rash Driving on Public Way", "Traffic Offence"},
	"302":  {"Murder", "Violent Crime"},
	"303":  {"Murder by Life Convict", "Violent Crime"},
	"304":  {"Culpable Homicide Not Amounting to Murder", "Violent Crime"},
	"304A": {"Causing Death by Negligence", "Traffic Offence"},
	"304B": {"Dowry Death", "Domestic Violence"},
	"305":  {"Abetment of Suicide of Child", "Violent Crime"},
	"306":  {"Abetment of Suicide", "Violent Crime"},
	"307":  {"Attempt to Murder", "Violent Crime"},
	"308":  {"Attempt Culpable Homicide", "Violent Crime"},
	"323":  {"Voluntarily Causing Hurt", "Violent Crime"},
	"324":  {"Hurt by Dangerous Weapons", "Violent Crime"},
	"325":  {"Grievous Hurt", "Violent Crime"},
	"326":  {"Grievous Hurt by Dangerous Weapons", "Violent Crime"},
	"326A": {"Acid Attack", "Violent Crime"},
	"326B": {"Attempt Acid Attack", "Violent Crime"},
	"337":  {"Causing Hurt by Rash Act", "Traffic Offence"},
	"338":  {"Causing Grievous Hurt by Rash Act", "Traffic Offence"},
	"354":  {"Assault on Woman", "Sexual Offence"},
	"354A": {"Sexual Harassment", "Sexual Offence"},
	"354B": {"Disrobing", "Sexual Offence"},
	"354C": {"Voyeurism", "Sexual Offence"},
	"354D": {"Stalking", "Sexual Offence"},
	"363":  {"Kidnapping", "Violent Crime"},
	"364":  {"Kidnapping for Murder", "Violent Crime"},
	"364A": {"Kidnapping for Ransom", "Violent Crime"},
	"365":  {"Abduction", "Violent Crime"},
	"366":  {"Kidnapping Woman for Marriage", "Violent Crime"},
	"370":  {"Human Trafficking", "Violent Crime"},
	"370A": {"Trafficking of Minor", "Violent Crime"},
	"375":  {"Rape (Definition)", "Sexual Offence"},
	"376":  {"Rape", "Sexual Offence"},
	"376A": {"Rape Causing Death", "Sexual Offence"},
	"376D": {"Gang Rape", "Sexual Offence"},
	"379":  {"Theft", "Property Crime"},
	"380":  {"Theft in Dwelling House", "Property Crime"},
	"381":  {"Theft by Employee", "Property Crime"},
	"382":  {"Theft with Preparation to Hurt", "Property Crime"},
	"383":  {"Extortion", "Property Crime"},
	"384":  {"Extortion by Threat", "Property Crime"},
	"385":  {"Extortion with Fear", "Property Crime"},
	"386":  {"Extortion by Death Threat", "Property Crime"},
	"392":  {"Robbery", "Property Crime"},
	"393":  {"Attempt to Commit Robbery", "Property Crime"},
	"394":  {"Robbery with Hurt", "Property Crime"},
	"395":  {"Dacoity", "Property Crime"},
	"396":  {"Dacoity with Murder", "Property Crime"},
	"397":  {"Robbery or Dacoity with Deadly Weapon", "Property Crime"},
	"405":  {"Criminal Breach of Trust (Definition)", "Economic Offence"},
	"406":  {"Criminal Breach of Trust", "Economic Offence"},
	"407":  {"Breach of Trust by Carrier", "Economic Offence"},
	"408":  {"Breach of Trust by Employee", "Economic Offence"},
	"409":  {"Breach of Trust by Public Servant", "Economic Offence"},
	"411":  {"Dishonestly Receiving Stolen Property", "Property Crime"},
	"415":  {"Cheating (Definition)", "Economic Offence"},
	"416":  {"Cheating by Personation", "Economic Offence"},
	"419":  {"Cheating by Impersonation", "Economic Offence"},
	"420":  {"Cheating and Dishonest Delivery of Property", "Economic Offence"},
	"427":  {"Mischief Causing Damage", "Property Crime"},
	"435":  {"Mischief by Fire", "Property Crime"},
	"436":  {"Mischief by Fire to Dwelling", "Property Crime"},
	"441":  {"Criminal Trespass", "Property Crime"},
	"457":  {"Lurking House Trespass", "Property Crime"},
	"458":  {"Lurking House Trespass with Hurt", "Property Crime"},
	"463":  {"Forgery (Definition)", "Economic Offence"},
	"465":  {"Punishment for Forgery", "Economic Offence"},
	"467":  {"Forgery of Valuable Security", "Economic Offence"},
	"468":  {"Forgery for Cheating", "Economic Offence"},
	"471":  {"Using Forged Documents as Genuine", "Economic Offence"},
	"489A": {"Counterfeiting Currency Notes", "Economic Offence"},
	"489B": {"Selling Counterfeit Currency", "Economic Offence"},
	"489C": {"Possession of Counterfeit Currency", "Economic Offence"},
	"489D": {"Making Instruments for Counterfeiting", "Economic Offence"},
	"493":  {"Cohabitation by Deceit", "Domestic Violence"},
	"494":  {"Bigamy", "Domestic Violence"},
	"498A": {"Cruelty by Husband or Relatives", "Domestic Violence"},
	"499":  {"Defamation", "Other"},
	"500":  {"Punishment for Defamation", "Other"},
	"504":  {"Intentional Insult", "Other"},
	"505":  {"Statements Causing Public Mischief", "Other"},
	"506":  {"Criminal Intimidation", "Other"},
	"509":  {"Insulting Modesty of Woman", "Sexual Offence"},
}

// priority is the order in which a primary citation is chosen.
var priority = []string{
	"302", "376", "376A", "376D", "395", "396", "420", "304B", "307", "364A",
	"370", "489A", "326A", "498A", "304", "363", "392", "406", "467", "147",
	"120B", "306", "379", "499", "506",
}

var keywordSections = []KeywordSection{
	{"murder", "302"},
	{"culpable homicide", "304"},
	{"rape", "376"},
	{"kidnapping", "363"},
	{"abduction", "365"},
	{"dacoity", "395"},
	{"robbery", "392"},
	{"theft", "379"},
	{"hurt", "323"},
	{"grievous hurt", "325"},
	{"cheating", "420"},
	{"fraud", "420"},
	{"forgery", "463"},
	{"dowry death", "304B"},
	{"cruelty", "498A"},
	{"extortion", "383"},
	{"intimidation", "506"},
	{"counterfeiting", "489A"},
	{"human trafficking", "370"},
	{"acid attack", "326A"},
	{"rash driving", "279"},
	{"negligent driving", "304A"},
}
