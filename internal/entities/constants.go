package entities

// Stat indexes the six battle stats in formula order
type Stat int

// Battle stats
const (
	StatHP Stat = iota
	StatAttack
	StatDefense
	StatSpAttack
	StatSpDefense
	StatSpeed

	// NumStats is the length of every per-stat vector
	NumStats = 6
)

// String returns the display name of the stat
func (s Stat) String() string {
	switch s {
	case StatHP:
		return "HP"
	case StatAttack:
		return "Attack"
	case StatDefense:
		return "Defense"
	case StatSpAttack:
		return "Sp. Attack"
	case StatSpDefense:
		return "Sp. Defense"
	case StatSpeed:
		return "Speed"
	default:
		return "Unknown"
	}
}

// StatVector holds one value per battle stat, indexed by Stat
type StatVector [NumStats]int

// Sum returns the total across all six entries
func (v StatVector) Sum() int {
	total := 0
	for _, n := range v {
		total += n
	}
	return total
}

// Gender of a creature
type Gender string

// Genders
const (
	GenderMale       Gender = "male"
	GenderFemale     Gender = "female"
	GenderGenderless Gender = "genderless"
)

// TimeOfDay bands used by rarity tiers and evolution gates
type TimeOfDay string

// Time-of-day bands
const (
	TimeMorning TimeOfDay = "morning"
	TimeDay     TimeOfDay = "day"
	TimeEvening TimeOfDay = "evening"
	TimeNight   TimeOfDay = "night"
)

// Region a trainer is adventuring in
type Region string

// Regions
const (
	RegionKanto  Region = "kanto"
	RegionJohto  Region = "johto"
	RegionHoenn  Region = "hoenn"
	RegionSinnoh Region = "sinnoh"
	RegionUnova  Region = "unova"
)

// Field is the encounter method a trainer is currently engaged in
type Field string

// Fields
const (
	FieldWalk      Field = "walk"
	FieldSurf      Field = "surf"
	FieldOldRod    Field = "old-rod"
	FieldGoodRod   Field = "good-rod"
	FieldSuperRod  Field = "super-rod"
	FieldHeadbutt  Field = "headbutt"
	FieldRockSmash Field = "rock-smash"
	FieldDive      Field = "dive"
)

// Ball kinds a capture attempt can use
type Ball string

// Balls
const (
	BallPoke    Ball = "poke"
	BallGreat   Ball = "great"
	BallUltra   Ball = "ultra"
	BallMaster  Ball = "master"
	BallNet     Ball = "net"
	BallNest    Ball = "nest"
	BallDive    Ball = "dive"
	BallRepeat  Ball = "repeat"
	BallTimer   Ball = "timer"
	BallQuick   Ball = "quick"
	BallDusk    Ball = "dusk"
	BallHeal    Ball = "heal"
	BallLuxury  Ball = "luxury"
	BallPremier Ball = "premier"
	BallLevel   Ball = "level"
	BallLure    Ball = "lure"
	BallMoon    Ball = "moon"
	BallLove    Ball = "love"
	BallHeavy   Ball = "heavy"
	BallFast    Ball = "fast"
	BallFriend  Ball = "friend"
)

// Activity labels a transaction lock with the flow that holds it
type Activity string

// Activities that take the owner's transaction lock
const (
	ActivityShopping  Activity = "shopping"
	ActivityItemGive  Activity = "giving an item"
	ActivityItemUse   Activity = "using an item"
	ActivityRelease   Activity = "releasing"
	ActivityDayCare   Activity = "the day care"
	ActivityRod       Activity = "choosing a rod"
	ActivityTrade     Activity = "trading"
	ActivityTeachMove Activity = "learning a move"
	ActivityAdventure Activity = "starting an adventure"
	ActivityEncounter Activity = "a wild encounter"
	ActivityEvolution Activity = "evolving"
)

// MoveCategory partitions moves by which offensive stat they use
type MoveCategory string

// Move categories
const (
	CategoryPhysical MoveCategory = "physical"
	CategorySpecial  MoveCategory = "special"
	CategoryStatus   MoveCategory = "status"
)

// Caps on trainable and innate modifiers
const (
	MaxIV         = 31
	MaxEVPerStat  = 252
	MaxEVTotal    = 510
	MaxFriendship = 255
	MaxLevel      = 100
	MaxMoves      = 4
)
