package entities

// Nature modifies one stat up 10% and one down 10%; five natures are
// neutral. The multiplier never touches HP.
type Nature string

// Natures
const (
	NatureHardy   Nature = "hardy"
	NatureLonely  Nature = "lonely"
	NatureBrave   Nature = "brave"
	NatureAdamant Nature = "adamant"
	NatureNaughty Nature = "naughty"
	NatureBold    Nature = "bold"
	NatureDocile  Nature = "docile"
	NatureRelaxed Nature = "relaxed"
	NatureImpish  Nature = "impish"
	NatureLax     Nature = "lax"
	NatureTimid   Nature = "timid"
	NatureHasty   Nature = "hasty"
	NatureSerious Nature = "serious"
	NatureJolly   Nature = "jolly"
	NatureNaive   Nature = "naive"
	NatureModest  Nature = "modest"
	NatureMild    Nature = "mild"
	NatureQuiet   Nature = "quiet"
	NatureBashful Nature = "bashful"
	NatureRash    Nature = "rash"
	NatureCalm    Nature = "calm"
	NatureGentle  Nature = "gentle"
	NatureSassy   Nature = "sassy"
	NatureCareful Nature = "careful"
	NatureQuirky  Nature = "quirky"
)

type natureEffect struct {
	boosted Stat
	reduced Stat
}

// Neutral natures map a stat onto itself so the multiplier cancels.
var natureEffects = map[Nature]natureEffect{
	NatureHardy:   {StatAttack, StatAttack},
	NatureLonely:  {StatAttack, StatDefense},
	NatureBrave:   {StatAttack, StatSpeed},
	NatureAdamant: {StatAttack, StatSpAttack},
	NatureNaughty: {StatAttack, StatSpDefense},
	NatureBold:    {StatDefense, StatAttack},
	NatureDocile:  {StatDefense, StatDefense},
	NatureRelaxed: {StatDefense, StatSpeed},
	NatureImpish:  {StatDefense, StatSpAttack},
	NatureLax:     {StatDefense, StatSpDefense},
	NatureTimid:   {StatSpeed, StatAttack},
	NatureHasty:   {StatSpeed, StatDefense},
	NatureSerious: {StatSpeed, StatSpeed},
	NatureJolly:   {StatSpeed, StatSpAttack},
	NatureNaive:   {StatSpeed, StatSpDefense},
	NatureModest:  {StatSpAttack, StatAttack},
	NatureMild:    {StatSpAttack, StatDefense},
	NatureQuiet:   {StatSpAttack, StatSpeed},
	NatureBashful: {StatSpAttack, StatSpAttack},
	NatureRash:    {StatSpAttack, StatSpDefense},
	NatureCalm:    {StatSpDefense, StatAttack},
	NatureGentle:  {StatSpDefense, StatDefense},
	NatureSassy:   {StatSpDefense, StatSpeed},
	NatureCareful: {StatSpDefense, StatSpAttack},
	NatureQuirky:  {StatSpDefense, StatSpDefense},
}

// AllNatures lists every nature, for random assignment
var AllNatures = []Nature{
	NatureHardy, NatureLonely, NatureBrave, NatureAdamant, NatureNaughty,
	NatureBold, NatureDocile, NatureRelaxed, NatureImpish, NatureLax,
	NatureTimid, NatureHasty, NatureSerious, NatureJolly, NatureNaive,
	NatureModest, NatureMild, NatureQuiet, NatureBashful, NatureRash,
	NatureCalm, NatureGentle, NatureSassy, NatureCareful, NatureQuirky,
}

// Multiplier returns the nature's multiplier for a stat: 1.1 for the
// boosted stat, 0.9 for the reduced stat, 1.0 otherwise. Unknown
// natures are treated as neutral.
func (n Nature) Multiplier(stat Stat) float64 {
	eff, ok := natureEffects[n]
	if !ok || eff.boosted == eff.reduced {
		return 1.0
	}
	switch stat {
	case eff.boosted:
		return 1.1
	case eff.reduced:
		return 0.9
	default:
		return 1.0
	}
}
